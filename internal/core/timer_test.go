package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCountdownTimer(t *testing.T) {
	timer := NewCountdownTimer()

	assert.Equal(t, TimerStateIdle, timer.State())
	assert.Equal(t, DefaultTimerSeconds, timer.TotalSeconds())
	assert.Equal(t, DefaultTimerSeconds, timer.RemainingSeconds())
}

func TestStartOnlyFromIdle(t *testing.T) {
	timer := NewCountdownTimer()

	timer.Start()
	assert.Equal(t, TimerStateRunning, timer.State())

	timer.Tick()
	timer.Start()
	assert.Equal(t, DefaultTimerSeconds-1, timer.RemainingSeconds())

	timer.Pause()
	timer.Start()
	assert.Equal(t, TimerStatePaused, timer.State())
}

func TestStartWithZeroDuration(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Restore(0)

	timer.Start()

	assert.Equal(t, TimerStateIdle, timer.State())
}

func TestPauseAndResume(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Start()
	timer.Tick()
	timer.Tick()

	timer.Pause()
	assert.Equal(t, TimerStatePaused, timer.State())
	remaining := timer.RemainingSeconds()

	// ticks while paused are dropped
	timer.Tick()
	assert.Equal(t, remaining, timer.RemainingSeconds())

	timer.Resume()
	assert.Equal(t, TimerStateRunning, timer.State())
	timer.Tick()
	assert.Equal(t, remaining-1, timer.RemainingSeconds())
}

func TestPauseOnlyWhenRunning(t *testing.T) {
	timer := NewCountdownTimer()

	timer.Pause()
	assert.Equal(t, TimerStateIdle, timer.State())
}

func TestTickCountsDownAndFinishes(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Restore(3)
	timer.Start()

	timer.Tick()
	assert.Equal(t, 2, timer.RemainingSeconds())
	assert.Equal(t, TimerStateRunning, timer.State())

	timer.Tick()
	timer.Tick()
	assert.Equal(t, 0, timer.RemainingSeconds())
	assert.Equal(t, TimerStateFinished, timer.State())

	// further ticks never go negative
	timer.Tick()
	assert.Equal(t, 0, timer.RemainingSeconds())
	assert.Equal(t, TimerStateFinished, timer.State())
}

func TestResumeAfterFinishNeedsTime(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Restore(1)
	timer.Start()
	timer.Tick()
	assert.Equal(t, TimerStateFinished, timer.State())

	timer.Resume()
	assert.Equal(t, TimerStateFinished, timer.State())

	timer.AddTime(60)
	timer.Resume()
	assert.Equal(t, TimerStateRunning, timer.State())
	assert.Equal(t, 60, timer.RemainingSeconds())
}

func TestReset(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Restore(10)
	timer.Start()
	timer.Tick()

	timer.Reset()

	assert.Equal(t, TimerStateIdle, timer.State())
	assert.Equal(t, DefaultTimerSeconds, timer.TotalSeconds())
	assert.Equal(t, DefaultTimerSeconds, timer.RemainingSeconds())
}

func TestAddTime(t *testing.T) {
	timer := NewCountdownTimer()

	timer.AddTime(60)
	assert.Equal(t, DefaultTimerSeconds+60, timer.TotalSeconds())
	assert.Equal(t, DefaultTimerSeconds+60, timer.RemainingSeconds())

	timer.AddTime(0)
	timer.AddTime(-30)
	assert.Equal(t, DefaultTimerSeconds+60, timer.TotalSeconds())
}

func TestAddTimeWhilePaused(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Restore(100)
	timer.Start()
	timer.Tick()
	timer.Pause()

	timer.AddTime(50)

	assert.Equal(t, 150, timer.TotalSeconds())
	assert.Equal(t, 149, timer.RemainingSeconds())
}

func TestRestoreAlwaysIdle(t *testing.T) {
	timer := NewCountdownTimer()
	timer.Start()
	timer.Tick()

	timer.Restore(120)

	assert.Equal(t, TimerStateIdle, timer.State())
	assert.Equal(t, 120, timer.TotalSeconds())
	assert.Equal(t, 120, timer.RemainingSeconds())

	timer.Restore(-5)
	assert.Equal(t, 0, timer.TotalSeconds())
}

package core

// TimerState represents the current state of the quick-lock countdown.
type TimerState string

const (
	TimerStateIdle     TimerState = "idle"
	TimerStateRunning  TimerState = "running"
	TimerStatePaused   TimerState = "paused"
	TimerStateFinished TimerState = "finished"
)

// DefaultTimerSeconds is the duration restored by Reset.
const DefaultTimerSeconds = 300

// CountdownTimer is the quick-lock companion to the schedule: a plain
// start/pause/resume/reset countdown with no partner gating. An external
// clock drives Tick once per second while the timer is running; ticks
// arriving in any other state are dropped.
type CountdownTimer struct {
	state     TimerState
	total     int // seconds
	remaining int // seconds
}

// NewCountdownTimer returns an idle timer at the default duration.
func NewCountdownTimer() *CountdownTimer {
	return &CountdownTimer{
		state:     TimerStateIdle,
		total:     DefaultTimerSeconds,
		remaining: DefaultTimerSeconds,
	}
}

// State returns the current timer state.
func (t *CountdownTimer) State() TimerState {
	return t.state
}

// TotalSeconds returns the configured duration.
func (t *CountdownTimer) TotalSeconds() int {
	return t.total
}

// RemainingSeconds returns the seconds left on the countdown.
func (t *CountdownTimer) RemainingSeconds() int {
	return t.remaining
}

// Restore sets the configured duration when loading persisted state.
// The timer always restores idle; a running countdown does not survive
// a restart.
func (t *CountdownTimer) Restore(totalSeconds int) {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	t.state = TimerStateIdle
	t.total = totalSeconds
	t.remaining = totalSeconds
}

// Start begins the countdown from the full configured duration. A zero
// duration makes Start a no-op, as does any state other than Idle.
func (t *CountdownTimer) Start() {
	if t.state != TimerStateIdle || t.total == 0 {
		return
	}
	t.remaining = t.total
	t.state = TimerStateRunning
}

// Pause stops a running countdown in place.
func (t *CountdownTimer) Pause() {
	if t.state != TimerStateRunning {
		return
	}
	t.state = TimerStatePaused
}

// Resume continues a paused countdown. Finished behaves like Paused
// here: with nothing remaining the timer stays put, so a finished
// countdown can only resume after AddTime puts seconds back on it.
func (t *CountdownTimer) Resume() {
	if t.state != TimerStatePaused && t.state != TimerStateFinished {
		return
	}
	if t.remaining == 0 {
		return
	}
	t.state = TimerStateRunning
}

// Reset returns the timer to Idle at the default duration, from any
// state.
func (t *CountdownTimer) Reset() {
	t.state = TimerStateIdle
	t.total = DefaultTimerSeconds
	t.remaining = DefaultTimerSeconds
}

// AddTime extends both the total and remaining duration in lockstep.
// The engine permits it in any state; callers disable it while the
// timer runs. Non-positive amounts are ignored.
func (t *CountdownTimer) AddTime(seconds int) {
	if seconds <= 0 {
		return
	}
	t.total += seconds
	t.remaining += seconds
	if t.state == TimerStateIdle {
		t.remaining = t.total
	}
}

// Tick advances the countdown by one second. Ticks outside the Running
// state are dropped, never queued. Reaching zero transitions to
// Finished on the same tick and stops further decrements; the count
// never goes negative.
func (t *CountdownTimer) Tick() {
	if t.state != TimerStateRunning {
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerStateFinished
	}
}

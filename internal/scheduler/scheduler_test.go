package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeout/internal/core"
)

type mockDashboards struct {
	tickCalls int
	states    []core.EnforcementState
}

func (m *mockDashboards) TickTimers(_ context.Context) {
	m.tickCalls++
}

func (m *mockDashboards) EnforcementStates(_ time.Time) []core.EnforcementState {
	return m.states
}

type mockBlocklists struct {
	snapshot *core.BlockingSnapshot
}

func (m *mockBlocklists) Load(_ context.Context, _ string) (*core.BlockingSnapshot, error) {
	return m.snapshot, nil
}

type mockEnforcer struct {
	engaged  []string
	released []string
}

func (m *mockEnforcer) Engage(_ context.Context, userID string, _ *core.BlockingSnapshot) error {
	m.engaged = append(m.engaged, userID)
	return nil
}

func (m *mockEnforcer) Release(_ context.Context, userID string) error {
	m.released = append(m.released, userID)
	return nil
}

type recordingSink struct {
	events []core.Event
}

func (r *recordingSink) Publish(event core.Event) {
	r.events = append(r.events, event)
}

func newTestScheduler(dashboards *mockDashboards, enforcer *mockEnforcer, events core.EventSink) *Scheduler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blocklists := &mockBlocklists{snapshot: core.EmptySnapshot()}
	return NewScheduler(dashboards, blocklists, enforcer, events, &core.MockClock{}, time.Second, logger)
}

func TestTickAdvancesTimers(t *testing.T) {
	dashboards := &mockDashboards{}
	s := newTestScheduler(dashboards, &mockEnforcer{}, nil)

	s.Tick()
	s.Tick()

	assert.Equal(t, 2, dashboards.tickCalls)
}

func TestEngagesOnTransitionOnly(t *testing.T) {
	dashboards := &mockDashboards{
		states: []core.EnforcementState{{UserID: "user1", ShouldBlock: true}},
	}
	enforcer := &mockEnforcer{}
	s := newTestScheduler(dashboards, enforcer, nil)

	s.Tick()
	s.Tick()
	s.Tick()

	assert.Equal(t, []string{"user1"}, enforcer.engaged)
	assert.Empty(t, enforcer.released)
}

func TestReleasesWhenWindowCloses(t *testing.T) {
	dashboards := &mockDashboards{
		states: []core.EnforcementState{{UserID: "user1", ShouldBlock: true}},
	}
	enforcer := &mockEnforcer{}
	events := &recordingSink{}
	s := newTestScheduler(dashboards, enforcer, events)

	s.Tick()
	dashboards.states = []core.EnforcementState{{UserID: "user1", ShouldBlock: false}}
	s.Tick()

	assert.Equal(t, []string{"user1"}, enforcer.engaged)
	assert.Equal(t, []string{"user1"}, enforcer.released)

	require.Len(t, events.events, 2)
	assert.Equal(t, core.EventEnforcementChanged, events.events[0].Type)
}

func TestNoReleaseWithoutPriorEngage(t *testing.T) {
	dashboards := &mockDashboards{
		states: []core.EnforcementState{{UserID: "user1", ShouldBlock: false}},
	}
	enforcer := &mockEnforcer{}
	s := newTestScheduler(dashboards, enforcer, nil)

	s.Tick()

	assert.Empty(t, enforcer.engaged)
	assert.Empty(t, enforcer.released)
}

func TestStartStop(t *testing.T) {
	dashboards := &mockDashboards{}
	s := newTestScheduler(dashboards, &mockEnforcer{}, nil)

	done := make(chan struct{})
	go func() {
		s.Start()
		close(done)
	}()

	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

package scheduler

import (
	"context"
	"log/slog"
	"time"

	"timeout/internal/core"
)

// Dashboards is the dashboard-manager surface the scheduler drives.
type Dashboards interface {
	TickTimers(ctx context.Context)
	EnforcementStates(now time.Time) []core.EnforcementState
}

// Blocklists resolves the snapshot to hand to the enforcer when a
// blocking window opens.
type Blocklists interface {
	Load(ctx context.Context, userID string) (*core.BlockingSnapshot, error)
}

// Enforcer applies and releases blocking for one user.
type Enforcer interface {
	Engage(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error
	Release(ctx context.Context, userID string) error
}

// Scheduler drives countdown ticks and schedule-window enforcement on a
// fixed cadence.
type Scheduler struct {
	dashboards Dashboards
	blocklists Blocklists
	enforcer   Enforcer
	events     core.EventSink
	clock      core.Clock
	interval   time.Duration
	stopChan   chan struct{}
	logger     *slog.Logger

	// blocked tracks the last enforcement decision per user so the
	// enforcer is only called on transitions.
	blocked map[string]bool
}

// NewScheduler creates a new scheduler
func NewScheduler(dashboards Dashboards, blocklists Blocklists, enforcer Enforcer, events core.EventSink, clock core.Clock, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = core.RealClock{}
	}
	return &Scheduler{
		dashboards: dashboards,
		blocklists: blocklists,
		enforcer:   enforcer,
		events:     events,
		clock:      clock,
		interval:   interval,
		stopChan:   make(chan struct{}),
		logger:     logger,
		blocked:    make(map[string]bool),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started")
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-s.stopChan:
			s.logger.Info("Scheduler stopped")
			return
		}
	}
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// Tick performs one cycle: advance running countdowns, then reconcile
// enforcement with the current schedule windows and timer states.
func (s *Scheduler) Tick() {
	ctx := context.Background()

	s.dashboards.TickTimers(ctx)

	now := s.clock.Now()
	states := s.dashboards.EnforcementStates(now)

	s.logger.Debug("Scheduler tick",
		"dashboards", len(states))

	for _, state := range states {
		if err := s.reconcile(ctx, state); err != nil {
			s.logger.Error("Failed to reconcile enforcement", "user_id", state.UserID, "error", err)
		}
	}
}

// reconcile engages or releases blocking when a user's enforcement
// state changes.
func (s *Scheduler) reconcile(ctx context.Context, state core.EnforcementState) error {
	if state.ShouldBlock == s.blocked[state.UserID] {
		return nil
	}

	if state.ShouldBlock {
		snapshot, err := s.blocklists.Load(ctx, state.UserID)
		if err != nil {
			return err
		}
		if err := s.enforcer.Engage(ctx, state.UserID, snapshot); err != nil {
			return err
		}
		s.logger.Info("Blocking window opened", "user_id", state.UserID)
	} else {
		if err := s.enforcer.Release(ctx, state.UserID); err != nil {
			return err
		}
		s.logger.Info("Blocking window closed", "user_id", state.UserID)
	}

	s.blocked[state.UserID] = state.ShouldBlock
	if s.events != nil {
		s.events.Publish(core.Event{
			Type:   core.EventEnforcementChanged,
			UserID: state.UserID,
			Data:   state,
		})
	}
	return nil
}

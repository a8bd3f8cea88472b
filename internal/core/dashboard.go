package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DashboardRecord is the persistence shape of one user's dashboard.
// A pending authorization is deliberately absent: it exists only while
// a prompt is open and never survives a restart.
type DashboardRecord struct {
	UserID             string
	SelectedDays       []int
	WeeklyRepeat       bool
	Slots              []*TimeSlot
	SelfLockEnabled    bool
	PartnerLockEnabled bool
	Tier               Tier
	TimerTotalSeconds  int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TimerSnapshot is the read model of the countdown timer.
type TimerSnapshot struct {
	State            TimerState `json:"state"`
	TotalSeconds     int        `json:"total_seconds"`
	RemainingSeconds int        `json:"remaining_seconds"`
}

// DashboardState is the read model returned to the presentation layer
// after every operation.
type DashboardState struct {
	UserID             string               `json:"user_id"`
	SelectedDays       []int                `json:"selected_days"`
	WeeklyRepeat       bool                 `json:"weekly_repeat"`
	Slots              []*TimeSlot          `json:"slots"`
	SummaryLabel       string               `json:"summary_label"`
	ScheduleValid      bool                 `json:"schedule_valid"`
	HasInvalidRanges   bool                 `json:"has_invalid_ranges"`
	HasOverlaps        bool                 `json:"has_overlaps"`
	CanEnableSelfLock  bool                 `json:"can_enable_self_lock"`
	SelfLockEnabled    bool                 `json:"self_lock_enabled"`
	PartnerLockEnabled bool                 `json:"partner_lock_enabled"`
	Pending            PendingAuthorization `json:"pending_authorization"`
	Timer              TimerSnapshot        `json:"timer"`
	Tier               Tier                 `json:"tier"`
}

// EnforcementState tells the scheduler whether blocking should be in
// effect for a user right now.
type EnforcementState struct {
	UserID      string
	ShouldBlock bool
}

// Dashboard is one user's locking session: the schedule, the lock pair,
// and the quick-lock timer, mutated by exactly one writer at a time.
// All mutating access goes through the manager, which holds mu for the
// duration of each operation; there is no other locking in the engines.
type Dashboard struct {
	mu       sync.Mutex
	userID   string
	tier     Tier
	schedule *Schedule
	locks    *LockController
	timer    *CountdownTimer
}

// DashboardManager owns the open dashboards. It is the explicitly
// constructed session context: capability limits, persistence, partner
// code verification, and change notification are all injected at
// construction rather than reached through process-wide state.
type DashboardManager struct {
	storage     Storage
	verifier    CodeVerifier
	events      EventSink
	notifier    Notifier
	defaultTier Tier

	mu         sync.Mutex
	dashboards map[string]*Dashboard
}

// NewDashboardManager creates a new dashboard manager. events and
// notifier may be nil.
func NewDashboardManager(storage Storage, verifier CodeVerifier, events EventSink, notifier Notifier, defaultTier Tier) *DashboardManager {
	if !defaultTier.IsValid() {
		defaultTier = TierFree
	}
	return &DashboardManager{
		storage:     storage,
		verifier:    verifier,
		events:      events,
		notifier:    notifier,
		defaultTier: defaultTier,
		dashboards:  make(map[string]*Dashboard),
	}
}

// getDashboard returns the open dashboard for a user, loading it from
// storage (or creating a fresh one) on first access.
func (m *DashboardManager) getDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.dashboards[userID]; ok {
		return d, nil
	}

	d := &Dashboard{
		userID:   userID,
		tier:     m.defaultTier,
		schedule: NewSchedule(),
		locks:    NewLockController(),
		timer:    NewCountdownTimer(),
	}

	record, err := m.storage.GetDashboard(ctx, userID)
	switch {
	case err == nil:
		d.tier = record.Tier
		if !d.tier.IsValid() {
			d.tier = m.defaultTier
		}
		d.schedule.SetSelectedDays(record.SelectedDays)
		d.schedule.SetWeeklyRepeat(record.WeeklyRepeat)
		d.schedule.RestoreSlots(record.Slots)
		d.locks.Restore(record.SelfLockEnabled, record.PartnerLockEnabled)
		d.timer.Restore(record.TimerTotalSeconds)
	case errors.Is(err, ErrDashboardNotFound):
		if err := m.storage.SaveDashboard(ctx, d.record()); err != nil {
			return nil, fmt.Errorf("failed to create dashboard: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	m.dashboards[userID] = d
	return d, nil
}

// record builds the persistence shape. Slots are value copies so the
// stored record never aliases the live schedule. Callers hold d.mu.
func (d *Dashboard) record() *DashboardRecord {
	return &DashboardRecord{
		UserID:             d.userID,
		SelectedDays:       d.schedule.SelectedDays(),
		WeeklyRepeat:       d.schedule.WeeklyRepeat(),
		Slots:              d.schedule.CopySlots(),
		SelfLockEnabled:    d.locks.SelfLockEnabled(),
		PartnerLockEnabled: d.locks.PartnerLockEnabled(),
		Tier:               d.tier,
		TimerTotalSeconds:  d.timer.TotalSeconds(),
	}
}

// state builds the read model. The state outlives d.mu (it is encoded
// after the operation returns), so it must not share memory with the
// schedule; slots are value copies like SelectedDays is a fresh slice.
// Callers hold d.mu.
func (d *Dashboard) state() *DashboardState {
	return &DashboardState{
		UserID:             d.userID,
		SelectedDays:       d.schedule.SelectedDays(),
		WeeklyRepeat:       d.schedule.WeeklyRepeat(),
		Slots:              d.schedule.CopySlots(),
		SummaryLabel:       d.schedule.SummaryLabel(),
		ScheduleValid:      d.schedule.IsValid(),
		HasInvalidRanges:   d.schedule.HasInvalidRanges(),
		HasOverlaps:        d.schedule.HasOverlaps(),
		CanEnableSelfLock:  d.locks.CanEnableSelfLock(d.schedule),
		SelfLockEnabled:    d.locks.SelfLockEnabled(),
		PartnerLockEnabled: d.locks.PartnerLockEnabled(),
		Pending:            d.locks.Pending(),
		Timer: TimerSnapshot{
			State:            d.timer.State(),
			TotalSeconds:     d.timer.TotalSeconds(),
			RemainingSeconds: d.timer.RemainingSeconds(),
		},
		Tier: d.tier,
	}
}

func (m *DashboardManager) publish(eventType, userID string, data any) {
	if m.events == nil {
		return
	}
	m.events.Publish(Event{Type: eventType, UserID: userID, Data: data})
}

// mutate runs fn under the dashboard lock, persists the result, and
// publishes eventType. fn returning an error aborts without persisting.
func (m *DashboardManager) mutate(ctx context.Context, userID, eventType string, fn func(d *Dashboard) error) (*DashboardState, error) {
	d, err := m.getDashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := fn(d); err != nil {
		return nil, err
	}
	if err := m.storage.SaveDashboard(ctx, d.record()); err != nil {
		return nil, fmt.Errorf("failed to save dashboard: %w", err)
	}

	state := d.state()
	m.publish(eventType, userID, state)
	return state, nil
}

// GetState returns the current dashboard state without mutating it.
func (m *DashboardManager) GetState(ctx context.Context, userID string) (*DashboardState, error) {
	d, err := m.getDashboard(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state(), nil
}

// TierFor resolves the capability tier for a user.
func (m *DashboardManager) TierFor(ctx context.Context, userID string) (Tier, error) {
	d, err := m.getDashboard(ctx, userID)
	if err != nil {
		return TierFree, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tier, nil
}

// SetTier records the tier resolved by the external entitlement system.
func (m *DashboardManager) SetTier(ctx context.Context, userID string, tier Tier) (*DashboardState, error) {
	if !tier.IsValid() {
		return nil, fmt.Errorf("unknown tier %q", tier)
	}
	return m.mutate(ctx, userID, EventScheduleChanged, func(d *Dashboard) error {
		d.tier = tier
		return nil
	})
}

// ToggleDay flips a day in the schedule's day selection.
func (m *DashboardManager) ToggleDay(ctx context.Context, userID string, day int) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventScheduleChanged, func(d *Dashboard) error {
		d.schedule.ToggleDay(day)
		return nil
	})
}

// SetWeeklyRepeat sets the schedule's weekly-repeat flag.
func (m *DashboardManager) SetWeeklyRepeat(ctx context.Context, userID string, repeat bool) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventScheduleChanged, func(d *Dashboard) error {
		d.schedule.SetWeeklyRepeat(repeat)
		return nil
	})
}

// AddSlot appends a new time slot, subject to the tier's slot limit.
func (m *DashboardManager) AddSlot(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventScheduleChanged, func(d *Dashboard) error {
		if !LimitsFor(d.tier).CanAddSlot(d.schedule.SlotCount()) {
			return fmt.Errorf("%w: multiple slots require premium", ErrCapacityExceeded)
		}
		d.schedule.AddSlot()
		return nil
	})
}

// RemoveSlot removes a slot by ID. The last slot cannot be removed.
func (m *DashboardManager) RemoveSlot(ctx context.Context, userID, slotID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventScheduleChanged, func(d *Dashboard) error {
		if d.schedule.SlotCount() <= 1 {
			return ErrLastSlot
		}
		if !d.schedule.RemoveSlot(slotID) {
			return ErrSlotNotFound
		}
		return nil
	})
}

// SetSlotBounds updates one slot's start and end times. Invalid ranges
// are stored as-is; validity is reported in the returned state.
func (m *DashboardManager) SetSlotBounds(ctx context.Context, userID, slotID string, start, end TimeOfDay) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventScheduleChanged, func(d *Dashboard) error {
		if !d.schedule.SetSlotBounds(slotID, start, end) {
			return ErrSlotNotFound
		}
		return nil
	})
}

// EnableSelfLock turns the self-lock on. The schedule must have at
// least one selected day and be free of invalid or overlapping slots.
func (m *DashboardManager) EnableSelfLock(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventLockChanged, func(d *Dashboard) error {
		if !d.schedule.HasSelectedDays() {
			return ErrEmptySchedule
		}
		if !d.schedule.IsValid() {
			return ErrScheduleInvalid
		}
		return d.locks.RequestEnableSelfLock(d.schedule)
	})
}

// DisableSelfLock turns the self-lock off, or parks a pending
// authorization when the partner-lock protects the change. The returned
// flag tells the caller to open the authorization prompt.
func (m *DashboardManager) DisableSelfLock(ctx context.Context, userID string) (*DashboardState, bool, error) {
	return m.requestDisable(ctx, userID, (*LockController).RequestDisableSelfLock)
}

// EnablePartnerLock turns the partner-lock on, force-enabling the
// self-lock if needed.
func (m *DashboardManager) EnablePartnerLock(ctx context.Context, userID string) (*DashboardState, error) {
	state, err := m.mutate(ctx, userID, EventLockChanged, func(d *Dashboard) error {
		d.locks.RequestEnablePartnerLock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m.notifier != nil {
		m.notifier.LockChanged(userID, state.SelfLockEnabled, state.PartnerLockEnabled)
	}
	return state, nil
}

// DisablePartnerLock turns the partner-lock off, or parks a pending
// authorization while the self-lock remains active.
func (m *DashboardManager) DisablePartnerLock(ctx context.Context, userID string) (*DashboardState, bool, error) {
	return m.requestDisable(ctx, userID, (*LockController).RequestDisablePartnerLock)
}

// requestDisable runs one of the lock disable requests. When the request
// parks a pending authorization no lock state changed, so nothing is
// persisted and only authorization_pending is published; an immediate
// disable persists and publishes lock_changed as usual.
func (m *DashboardManager) requestDisable(ctx context.Context, userID string, request func(l *LockController) bool) (*DashboardState, bool, error) {
	d, err := m.getDashboard(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	d.mu.Lock()
	authRequired := request(d.locks)
	if !authRequired {
		if err := m.storage.SaveDashboard(ctx, d.record()); err != nil {
			d.mu.Unlock()
			return nil, false, fmt.Errorf("failed to save dashboard: %w", err)
		}
	}
	state := d.state()
	d.mu.Unlock()

	if authRequired {
		m.publish(EventAuthorizationPending, userID, state)
		if m.notifier != nil {
			m.notifier.AuthorizationRequested(userID, state.Pending)
		}
	} else {
		m.publish(EventLockChanged, userID, state)
		if m.notifier != nil {
			m.notifier.LockChanged(userID, state.SelfLockEnabled, state.PartnerLockEnabled)
		}
	}
	return state, authRequired, nil
}

// SubmitAuthorizationCode verifies a partner code against the pending
// authorization. A wrong code returns ErrAuthorizationFailed and keeps
// the authorization pending so the prompt can stay open for a retry.
func (m *DashboardManager) SubmitAuthorizationCode(ctx context.Context, userID, code string) (*DashboardState, error) {
	d, err := m.getDashboard(ctx, userID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.locks.Pending() == PendingNone {
		return nil, ErrNoPendingAuthorization
	}
	if !m.verifier.Verify(code) {
		return nil, ErrAuthorizationFailed
	}

	d.locks.ResolveAuthorization(true)
	if err := m.storage.SaveDashboard(ctx, d.record()); err != nil {
		return nil, fmt.Errorf("failed to save dashboard: %w", err)
	}

	state := d.state()
	m.publish(EventLockChanged, userID, state)
	if m.notifier != nil {
		m.notifier.LockChanged(userID, state.SelfLockEnabled, state.PartnerLockEnabled)
	}
	return state, nil
}

// CancelAuthorization dismisses the authorization prompt. The pending
// marker is cleared and no lock state changes. Calling with nothing
// pending is a no-op.
func (m *DashboardManager) CancelAuthorization(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventLockChanged, func(d *Dashboard) error {
		d.locks.ResolveAuthorization(false)
		return nil
	})
}

// StartTimer starts the quick-lock countdown.
func (m *DashboardManager) StartTimer(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventTimerChanged, func(d *Dashboard) error {
		d.timer.Start()
		return nil
	})
}

// PauseTimer pauses a running countdown.
func (m *DashboardManager) PauseTimer(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventTimerChanged, func(d *Dashboard) error {
		d.timer.Pause()
		return nil
	})
}

// ResumeTimer resumes a paused countdown.
func (m *DashboardManager) ResumeTimer(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventTimerChanged, func(d *Dashboard) error {
		d.timer.Resume()
		return nil
	})
}

// ResetTimer returns the countdown to idle at the default duration.
func (m *DashboardManager) ResetTimer(ctx context.Context, userID string) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventTimerChanged, func(d *Dashboard) error {
		d.timer.Reset()
		return nil
	})
}

// AddTimerTime extends the countdown. Mirroring the dashboard UI, the
// operation is ignored while the timer runs; the engine itself does not
// forbid it.
func (m *DashboardManager) AddTimerTime(ctx context.Context, userID string, seconds int) (*DashboardState, error) {
	return m.mutate(ctx, userID, EventTimerChanged, func(d *Dashboard) error {
		if d.timer.State() == TimerStateRunning {
			return nil
		}
		d.timer.AddTime(seconds)
		return nil
	})
}

// TickTimers advances every open dashboard's running countdown by one
// second. Called by the scheduler on its fixed cadence; ticks for
// non-running timers are dropped inside the engine.
func (m *DashboardManager) TickTimers(ctx context.Context) {
	for _, d := range m.openDashboards() {
		d.mu.Lock()
		if d.timer.State() != TimerStateRunning {
			d.mu.Unlock()
			continue
		}
		d.timer.Tick()
		finished := d.timer.State() == TimerStateFinished
		state := d.state()
		d.mu.Unlock()

		if finished {
			m.publish(EventTimerFinished, d.userID, state)
		}
	}
}

// EnforcementStates reports, per open dashboard, whether blocking
// should be in effect at the given time: the self-lock is on and the
// schedule covers now, or the quick-lock countdown is running.
func (m *DashboardManager) EnforcementStates(now time.Time) []EnforcementState {
	dashboards := m.openDashboards()
	states := make([]EnforcementState, 0, len(dashboards))
	for _, d := range dashboards {
		d.mu.Lock()
		shouldBlock := (d.locks.SelfLockEnabled() && d.schedule.IsActiveAt(now)) ||
			d.timer.State() == TimerStateRunning
		d.mu.Unlock()
		states = append(states, EnforcementState{UserID: d.userID, ShouldBlock: shouldBlock})
	}
	return states
}

func (m *DashboardManager) openDashboards() []*Dashboard {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Dashboard, 0, len(m.dashboards))
	for _, d := range m.dashboards {
		out = append(out, d)
	}
	return out
}

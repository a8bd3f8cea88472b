package core

// PendingAuthorization identifies which protected change is waiting for
// a partner code.
type PendingAuthorization string

const (
	PendingNone                 PendingAuthorization = "none"
	PendingDisablingSelfLock    PendingAuthorization = "disabling_self_lock"
	PendingDisablingPartnerLock PendingAuthorization = "disabling_partner_lock"
)

// LockController owns the self-lock and partner-lock flags and the
// transition rules between them. Disabling either lock while the other
// is active requires an external authorization step: the request parks a
// pending marker and returns immediately, and the state change happens
// only when ResolveAuthorization is called.
type LockController struct {
	selfLock    bool
	partnerLock bool
	pending     PendingAuthorization
}

// NewLockController returns a controller with both locks off and no
// pending authorization.
func NewLockController() *LockController {
	return &LockController{pending: PendingNone}
}

// SelfLockEnabled reports whether the self-lock is active.
func (l *LockController) SelfLockEnabled() bool {
	return l.selfLock
}

// PartnerLockEnabled reports whether the partner-lock is active.
func (l *LockController) PartnerLockEnabled() bool {
	return l.partnerLock
}

// Pending returns the outstanding authorization, if any.
func (l *LockController) Pending() PendingAuthorization {
	return l.pending
}

// Restore sets the lock flags directly when loading persisted state.
// A pending authorization is never persisted; it exists only while a
// prompt is open.
func (l *LockController) Restore(selfLock, partnerLock bool) {
	l.selfLock = selfLock
	l.partnerLock = partnerLock
	l.pending = PendingNone
}

// CanEnableSelfLock mirrors the RequestEnableSelfLock guard without
// mutating: the schedule must have at least one selected day and no
// invalid or overlapping slots.
func (l *LockController) CanEnableSelfLock(schedule *Schedule) bool {
	return schedule.HasSelectedDays() && schedule.IsValid()
}

// RequestEnableSelfLock turns the self-lock on. It fails with
// ErrEmptySchedule when no day is selected. Enabling an already enabled
// lock is a no-op.
func (l *LockController) RequestEnableSelfLock(schedule *Schedule) error {
	if !schedule.HasSelectedDays() {
		return ErrEmptySchedule
	}
	l.selfLock = true
	return nil
}

// RequestDisableSelfLock turns the self-lock off. When the partner-lock
// is active the change needs authorization: the controller records
// PendingDisablingSelfLock, leaves both locks untouched, and returns
// true so the caller can open the authorization prompt.
func (l *LockController) RequestDisableSelfLock() (authRequired bool) {
	if l.partnerLock {
		l.pending = PendingDisablingSelfLock
		return true
	}
	l.selfLock = false
	return false
}

// RequestEnablePartnerLock turns the partner-lock on. The partner-lock
// implies an active schedule, so the self-lock is force-enabled if it
// was off. Idempotent.
func (l *LockController) RequestEnablePartnerLock() {
	l.partnerLock = true
	if !l.selfLock {
		l.selfLock = true
	}
}

// RequestDisablePartnerLock turns the partner-lock off. While the
// self-lock remains active the change needs authorization, handled the
// same way as RequestDisableSelfLock.
func (l *LockController) RequestDisablePartnerLock() (authRequired bool) {
	if l.selfLock {
		l.pending = PendingDisablingPartnerLock
		return true
	}
	l.partnerLock = false
	return false
}

// ResolveAuthorization completes the outstanding authorization flow.
// On success the parked disable is applied; on failure or cancel nothing
// changes. The pending marker is cleared unconditionally either way.
// Calling with no pending authorization is a no-op.
func (l *LockController) ResolveAuthorization(success bool) {
	if success {
		switch l.pending {
		case PendingDisablingSelfLock:
			l.selfLock = false
		case PendingDisablingPartnerLock:
			l.partnerLock = false
		}
	}
	l.pending = PendingNone
}

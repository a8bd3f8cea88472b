package core

import "context"

// Storage defines the persistence operations the dashboard manager
// needs. The full interface lives in internal/storage.
type Storage interface {
	GetDashboard(ctx context.Context, userID string) (*DashboardRecord, error)
	SaveDashboard(ctx context.Context, record *DashboardRecord) error
}

// CodeVerifier is the authorization capability: it accepts a
// user-entered partner code and reports whether it is correct. The
// verifier is injected so the placeholder shared-secret check can be
// replaced without touching the state machine.
type CodeVerifier interface {
	Verify(code string) bool
}

// EventSink receives change notifications from the dashboard manager.
// The core mutates state and describes what changed; the presentation
// layer decides how to redraw.
type EventSink interface {
	Publish(event Event)
}

// Notifier informs the partner about protected-change activity. A nil
// notifier disables partner notifications.
type Notifier interface {
	AuthorizationRequested(userID string, action PendingAuthorization)
	LockChanged(userID string, selfLock, partnerLock bool)
}

// Event types published by the dashboard manager.
const (
	EventScheduleChanged      = "schedule_changed"
	EventLockChanged          = "lock_changed"
	EventAuthorizationPending = "authorization_pending"
	EventTimerChanged         = "timer_changed"
	EventTimerFinished        = "timer_finished"
	EventBlocklistChanged     = "blocklist_changed"
	EventEnforcementChanged   = "enforcement_changed"
)

// Event is one state-change notification.
type Event struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Data   any    `json:"data,omitempty"`
}

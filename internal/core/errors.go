package core

import "errors"

// All core errors are local and recoverable; none is fatal to the
// process, and every failure path leaves the state machines in a
// previously valid state.
var (
	ErrEmptySchedule          = errors.New("select at least one day to enable self-lock")
	ErrScheduleInvalid        = errors.New("schedule has invalid or overlapping slots")
	ErrAuthorizationFailed    = errors.New("incorrect partner code")
	ErrNoPendingAuthorization = errors.New("no authorization is pending")
	ErrCapacityExceeded       = errors.New("tier limit reached")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrLastSlot               = errors.New("the last slot cannot be removed")
	ErrInvalidDomain          = errors.New("invalid domain or URL")
	ErrDuplicateWebsite       = errors.New("website is already blocked")
	ErrDashboardNotFound      = errors.New("dashboard not found")
)

// Package simulated provides a log-only enforcer. The real restriction
// work happens in platform extensions outside this service; this
// enforcer records engage and release transitions and tracks which
// users are currently blocked.
package simulated

import (
	"context"
	"log/slog"
	"sync"

	"timeout/internal/core"
	"timeout/internal/enforce"
)

const EnforcerName = "simulated"

// Enforcer implements the Enforcer interface with log-only behavior.
type Enforcer struct {
	logger *slog.Logger

	mu      sync.Mutex
	engaged map[string]bool
}

// NewEnforcer creates a new simulated enforcer
func NewEnforcer(logger *slog.Logger) *Enforcer {
	return &Enforcer{
		logger:  logger.With("enforcer", EnforcerName),
		engaged: make(map[string]bool),
	}
}

// Name returns the enforcer name
func (e *Enforcer) Name() string {
	return EnforcerName
}

// Engage logs the blocklist that would be applied.
func (e *Enforcer) Engage(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error {
	e.mu.Lock()
	e.engaged[userID] = true
	e.mu.Unlock()

	e.logger.Info("blocking engaged",
		"user_id", userID,
		"apps", len(snapshot.Apps),
		"websites", len(snapshot.Websites),
	)
	return nil
}

// Release logs the end of a blocking window.
func (e *Enforcer) Release(ctx context.Context, userID string) error {
	e.mu.Lock()
	e.engaged[userID] = false
	e.mu.Unlock()

	e.logger.Info("blocking released",
		"user_id", userID,
	)
	return nil
}

// IsEngaged reports whether blocking is currently applied for a user.
func (e *Enforcer) IsEngaged(userID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engaged[userID]
}

var _ enforce.Enforcer = (*Enforcer)(nil)

// Package enforce defines the enforcement surface that applies a
// blocklist when a lock window is active. The platform restriction APIs
// live outside this service, so the shipped enforcer only records what
// an integration would do.
package enforce

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"timeout/internal/core"
)

var (
	ErrEnforcerNotFound      = errors.New("enforcer not found")
	ErrEnforcerAlreadyExists = errors.New("enforcer already registered")
)

// Enforcer applies and releases blocking for one user.
type Enforcer interface {
	Name() string
	Engage(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error
	Release(ctx context.Context, userID string) error
}

// Registry manages all registered enforcers
type Registry struct {
	mu        sync.RWMutex
	enforcers map[string]Enforcer
}

// NewRegistry creates a new enforcer registry
func NewRegistry() *Registry {
	return &Registry{
		enforcers: make(map[string]Enforcer),
	}
}

// Register adds an enforcer to the registry
func (r *Registry) Register(enforcer Enforcer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := enforcer.Name()
	if _, exists := r.enforcers[name]; exists {
		return fmt.Errorf("%w: %s", ErrEnforcerAlreadyExists, name)
	}

	r.enforcers[name] = enforcer
	return nil
}

// Get retrieves an enforcer by name
func (r *Registry) Get(name string) (Enforcer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enforcer, exists := r.enforcers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrEnforcerNotFound, name)
	}

	return enforcer, nil
}

// List returns all registered enforcer names
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.enforcers))
	for name := range r.enforcers {
		names = append(names, name)
	}
	return names
}

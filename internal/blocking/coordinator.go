// Package blocking manages per-user blocklists of apps and websites and
// keeps them synchronized with the remote backend.
package blocking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"timeout/internal/core"
	"timeout/internal/idgen"
)

// Store persists blocklist snapshots locally.
type Store interface {
	LoadSnapshot(ctx context.Context, userID string) (*core.BlockingSnapshot, error)
	SaveSnapshot(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error
}

// RemoteAPI is the backend sync surface. Push returns the authoritative
// snapshot; whatever the server sends back replaces the local copy.
type RemoteAPI interface {
	FetchSnapshot(ctx context.Context, userID string) (*core.BlockingSnapshot, error)
	PushSnapshot(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) (*core.BlockingSnapshot, error)
}

// TierSource resolves a user's capability tier for blocklist limits.
type TierSource interface {
	TierFor(ctx context.Context, userID string) (core.Tier, error)
}

// Coordinator applies blocklist mutations optimistically to the local
// store and reconciles with the remote backend, server-wins. A nil
// remote runs the coordinator in local-only mode.
type Coordinator struct {
	store  Store
	remote RemoteAPI
	tiers  TierSource
	events core.EventSink
	logger *slog.Logger

	mu        sync.Mutex
	snapshots map[string]*core.BlockingSnapshot
	lastErr   map[string]error
}

// NewCoordinator creates a blocking coordinator. remote and events may
// be nil.
func NewCoordinator(store Store, remote RemoteAPI, tiers TierSource, events core.EventSink, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:     store,
		remote:    remote,
		tiers:     tiers,
		events:    events,
		logger:    logger,
		snapshots: make(map[string]*core.BlockingSnapshot),
		lastErr:   make(map[string]error),
	}
}

// Load returns the user's blocklist, refreshing from the remote backend
// when one is configured. A remote failure keeps the local copy and is
// surfaced through LastError rather than failing the load.
func (c *Coordinator) Load(ctx context.Context, userID string) (*core.BlockingSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, err := c.loadLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	if c.remote != nil {
		remote, err := c.remote.FetchSnapshot(ctx, userID)
		if err != nil {
			c.lastErr[userID] = err
			c.logger.Warn("remote blocklist fetch failed, using local copy",
				"user_id", userID,
				"error", err,
			)
		} else {
			c.lastErr[userID] = nil
			snapshot = remote
			c.snapshots[userID] = snapshot
			if err := c.store.SaveSnapshot(ctx, userID, snapshot); err != nil {
				return nil, fmt.Errorf("failed to save blocklist: %w", err)
			}
		}
	}

	return snapshot.Clone(), nil
}

// AddApp adds an application to the blocklist. Adding a bundle
// identifier that is already listed is silently ignored.
func (c *Coordinator) AddApp(ctx context.Context, userID, bundleIdentifier, displayName string) (*core.BlockingSnapshot, error) {
	return c.mutate(ctx, userID, func(limits core.Limits, snapshot *core.BlockingSnapshot) error {
		if snapshot.ContainsApp(bundleIdentifier) {
			return nil
		}
		if !limits.CanAddBlockedApp(len(snapshot.Apps)) {
			return fmt.Errorf("%w: app limit reached", core.ErrCapacityExceeded)
		}
		snapshot.Apps = append(snapshot.Apps, core.BlockedApp{
			ID:               idgen.NewApp(),
			BundleIdentifier: bundleIdentifier,
			DisplayName:      displayName,
		})
		return nil
	})
}

// RemoveApp removes an application by ID. Unknown IDs are a no-op.
func (c *Coordinator) RemoveApp(ctx context.Context, userID, appID string) (*core.BlockingSnapshot, error) {
	return c.mutate(ctx, userID, func(_ core.Limits, snapshot *core.BlockingSnapshot) error {
		for i, a := range snapshot.Apps {
			if a.ID == appID {
				snapshot.Apps = append(snapshot.Apps[:i], snapshot.Apps[i+1:]...)
				break
			}
		}
		return nil
	})
}

// AddWebsite normalizes the input and adds the domain to the blocklist.
func (c *Coordinator) AddWebsite(ctx context.Context, userID, input string) (*core.BlockingSnapshot, error) {
	domain, err := core.NormalizeDomain(input)
	if err != nil {
		return nil, err
	}

	return c.mutate(ctx, userID, func(limits core.Limits, snapshot *core.BlockingSnapshot) error {
		if snapshot.ContainsWebsite(domain) {
			return core.ErrDuplicateWebsite
		}
		if !limits.CanAddBlockedWebsite(len(snapshot.Websites)) {
			return fmt.Errorf("%w: website limit reached", core.ErrCapacityExceeded)
		}
		snapshot.Websites = append(snapshot.Websites, core.BlockedWebsite{
			ID:          idgen.NewWebsite(),
			Domain:      domain,
			DisplayName: core.PrettifyDomain(domain),
		})
		return nil
	})
}

// RemoveWebsite removes a website by ID. Unknown IDs are a no-op.
func (c *Coordinator) RemoveWebsite(ctx context.Context, userID, websiteID string) (*core.BlockingSnapshot, error) {
	return c.mutate(ctx, userID, func(_ core.Limits, snapshot *core.BlockingSnapshot) error {
		for i, w := range snapshot.Websites {
			if w.ID == websiteID {
				snapshot.Websites = append(snapshot.Websites[:i], snapshot.Websites[i+1:]...)
				break
			}
		}
		return nil
	})
}

// LastError returns the most recent remote sync error for a user, or
// nil when the last sync succeeded.
func (c *Coordinator) LastError(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr[userID]
}

// mutate applies fn to a clone of the user's snapshot, saves it locally
// and pushes it to the remote backend. The server's reply replaces the
// optimistic copy; a push failure keeps the local copy and records the
// error for LastError.
func (c *Coordinator) mutate(ctx context.Context, userID string, fn func(limits core.Limits, snapshot *core.BlockingSnapshot) error) (*core.BlockingSnapshot, error) {
	tier, err := c.tiers.TierFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tier: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.loadLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := current.Clone()
	if err := fn(core.LimitsFor(tier), snapshot); err != nil {
		return nil, err
	}
	snapshot.UpdatedAt = time.Now().UTC()

	if err := c.store.SaveSnapshot(ctx, userID, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save blocklist: %w", err)
	}
	c.snapshots[userID] = snapshot

	if c.remote != nil {
		authoritative, err := c.remote.PushSnapshot(ctx, userID, snapshot)
		if err != nil {
			c.lastErr[userID] = err
			c.logger.Warn("remote blocklist push failed, keeping local copy",
				"user_id", userID,
				"error", err,
			)
		} else {
			c.lastErr[userID] = nil
			snapshot = authoritative
			c.snapshots[userID] = snapshot
			if err := c.store.SaveSnapshot(ctx, userID, snapshot); err != nil {
				return nil, fmt.Errorf("failed to save blocklist: %w", err)
			}
		}
	}

	if c.events != nil {
		c.events.Publish(core.Event{
			Type:   core.EventBlocklistChanged,
			UserID: userID,
			Data:   snapshot,
		})
	}
	return snapshot.Clone(), nil
}

// loadLocked returns the cached snapshot, reading through to the store
// on first access. Callers hold c.mu.
func (c *Coordinator) loadLocked(ctx context.Context, userID string) (*core.BlockingSnapshot, error) {
	if s, ok := c.snapshots[userID]; ok {
		return s, nil
	}
	snapshot, err := c.store.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocklist: %w", err)
	}
	if snapshot == nil {
		snapshot = core.EmptySnapshot()
	}
	c.snapshots[userID] = snapshot
	return snapshot, nil
}

package storage

import (
	"context"

	"timeout/internal/core"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Dashboards
	GetDashboard(ctx context.Context, userID string) (*core.DashboardRecord, error)
	SaveDashboard(ctx context.Context, record *core.DashboardRecord) error
	DeleteDashboard(ctx context.Context, userID string) error
	ListDashboards(ctx context.Context) ([]*core.DashboardRecord, error)

	// Blocklists
	LoadSnapshot(ctx context.Context, userID string) (*core.BlockingSnapshot, error)
	SaveSnapshot(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error

	// Lifecycle
	Close() error
}

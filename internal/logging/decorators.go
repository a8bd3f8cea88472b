package logging

import (
	"context"
	"log/slog"
	"time"

	"timeout/internal/core"
	"timeout/internal/storage"
)

// StorageLogger wraps a Storage and logs all method calls
type StorageLogger struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewStorageLogger creates a new logging decorator for Storage
func NewStorageLogger(s storage.Storage, logger *slog.Logger) storage.Storage {
	return &StorageLogger{
		storage: s,
		logger:  logger.With("interface", "Storage"),
	}
}

func (l *StorageLogger) GetDashboard(ctx context.Context, userID string) (*core.DashboardRecord, error) {
	start := time.Now()
	l.logger.Debug("GetDashboard called",
		"user_id", userID)

	record, err := l.storage.GetDashboard(ctx, userID)
	duration := time.Since(start)

	if err != nil {
		l.logger.Debug("GetDashboard failed",
			"user_id", userID,
			"duration", duration,
			"error", err)
		return nil, err
	}

	l.logger.Debug("GetDashboard completed",
		"user_id", userID,
		"slots", len(record.Slots),
		"duration", duration)

	return record, nil
}

func (l *StorageLogger) SaveDashboard(ctx context.Context, record *core.DashboardRecord) error {
	start := time.Now()
	l.logger.Debug("SaveDashboard called",
		"user_id", record.UserID)

	err := l.storage.SaveDashboard(ctx, record)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("SaveDashboard failed",
			"user_id", record.UserID,
			"duration", duration,
			"error", err)
		return err
	}

	l.logger.Debug("SaveDashboard completed",
		"user_id", record.UserID,
		"duration", duration)

	return nil
}

func (l *StorageLogger) DeleteDashboard(ctx context.Context, userID string) error {
	start := time.Now()
	l.logger.Info("DeleteDashboard called",
		"user_id", userID)

	err := l.storage.DeleteDashboard(ctx, userID)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("DeleteDashboard failed",
			"user_id", userID,
			"duration", duration,
			"error", err)
		return err
	}

	l.logger.Info("DeleteDashboard completed",
		"user_id", userID,
		"duration", duration)

	return nil
}

func (l *StorageLogger) ListDashboards(ctx context.Context) ([]*core.DashboardRecord, error) {
	start := time.Now()
	l.logger.Debug("ListDashboards called")

	records, err := l.storage.ListDashboards(ctx)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("ListDashboards failed",
			"duration", duration,
			"error", err)
		return nil, err
	}

	l.logger.Debug("ListDashboards completed",
		"count", len(records),
		"duration", duration)

	return records, nil
}

func (l *StorageLogger) LoadSnapshot(ctx context.Context, userID string) (*core.BlockingSnapshot, error) {
	start := time.Now()
	l.logger.Debug("LoadSnapshot called",
		"user_id", userID)

	snapshot, err := l.storage.LoadSnapshot(ctx, userID)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("LoadSnapshot failed",
			"user_id", userID,
			"duration", duration,
			"error", err)
		return nil, err
	}

	l.logger.Debug("LoadSnapshot completed",
		"user_id", userID,
		"apps", len(snapshot.Apps),
		"websites", len(snapshot.Websites),
		"duration", duration)

	return snapshot, nil
}

func (l *StorageLogger) SaveSnapshot(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error {
	start := time.Now()
	l.logger.Debug("SaveSnapshot called",
		"user_id", userID,
		"apps", len(snapshot.Apps),
		"websites", len(snapshot.Websites))

	err := l.storage.SaveSnapshot(ctx, userID, snapshot)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("SaveSnapshot failed",
			"user_id", userID,
			"duration", duration,
			"error", err)
		return err
	}

	l.logger.Debug("SaveSnapshot completed",
		"user_id", userID,
		"duration", duration)

	return nil
}

func (l *StorageLogger) Close() error {
	return l.storage.Close()
}

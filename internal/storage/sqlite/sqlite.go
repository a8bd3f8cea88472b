package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"timeout/internal/core"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage implements storage.Storage using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// New creates a new SQLite storage instance
func New(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// migrate creates the database schema
func (s *SQLiteStorage) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS dashboards (
			user_id TEXT PRIMARY KEY,
			selected_days TEXT NOT NULL,
			weekly_repeat INTEGER NOT NULL DEFAULT 1,
			self_lock INTEGER NOT NULL DEFAULT 0,
			partner_lock INTEGER NOT NULL DEFAULT 0,
			tier TEXT NOT NULL,
			timer_total_seconds INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS slots (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			start_minutes INTEGER NOT NULL,
			end_minutes INTEGER NOT NULL,
			FOREIGN KEY (user_id) REFERENCES dashboards(user_id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS blocked_apps (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			bundle_identifier TEXT NOT NULL,
			display_name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS blocked_websites (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			domain TEXT NOT NULL,
			display_name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS blocking_meta (
			user_id TEXT PRIMARY KEY,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_slots_user ON slots(user_id, position);
		CREATE INDEX IF NOT EXISTS idx_blocked_apps_user ON blocked_apps(user_id, position);
		CREATE INDEX IF NOT EXISTS idx_blocked_websites_user ON blocked_websites(user_id, position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// GetDashboard retrieves a dashboard by user ID
func (s *SQLiteStorage) GetDashboard(ctx context.Context, userID string) (*core.DashboardRecord, error) {
	var record core.DashboardRecord
	var selectedDaysJSON string
	var tier string

	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, selected_days, weekly_repeat, self_lock, partner_lock, tier, timer_total_seconds, created_at, updated_at
		FROM dashboards WHERE user_id = ?
	`, userID).Scan(&record.UserID, &selectedDaysJSON, &record.WeeklyRepeat,
		&record.SelfLockEnabled, &record.PartnerLockEnabled, &tier,
		&record.TimerTotalSeconds, &record.CreatedAt, &record.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, core.ErrDashboardNotFound
	}
	if err != nil {
		return nil, err
	}

	record.Tier = core.Tier(tier)
	if err := json.Unmarshal([]byte(selectedDaysJSON), &record.SelectedDays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selected days: %w", err)
	}

	slots, err := s.getSlots(ctx, userID)
	if err != nil {
		return nil, err
	}
	record.Slots = slots

	return &record, nil
}

func (s *SQLiteStorage) getSlots(ctx context.Context, userID string) ([]*core.TimeSlot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_minutes, end_minutes
		FROM slots WHERE user_id = ? ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*core.TimeSlot
	for rows.Next() {
		var id string
		var startMinutes, endMinutes int
		if err := rows.Scan(&id, &startMinutes, &endMinutes); err != nil {
			return nil, err
		}
		slots = append(slots, &core.TimeSlot{
			ID:    id,
			Start: core.MinutesToTimeOfDay(startMinutes),
			End:   core.MinutesToTimeOfDay(endMinutes),
		})
	}

	return slots, rows.Err()
}

// SaveDashboard inserts or updates a dashboard and its slots
func (s *SQLiteStorage) SaveDashboard(ctx context.Context, record *core.DashboardRecord) error {
	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	selectedDaysJSON, err := json.Marshal(record.SelectedDays)
	if err != nil {
		return fmt.Errorf("failed to marshal selected days: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dashboards (user_id, selected_days, weekly_repeat, self_lock, partner_lock, tier, timer_total_seconds, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			selected_days = excluded.selected_days,
			weekly_repeat = excluded.weekly_repeat,
			self_lock = excluded.self_lock,
			partner_lock = excluded.partner_lock,
			tier = excluded.tier,
			timer_total_seconds = excluded.timer_total_seconds,
			updated_at = excluded.updated_at
	`, record.UserID, string(selectedDaysJSON), record.WeeklyRepeat,
		record.SelfLockEnabled, record.PartnerLockEnabled, string(record.Tier),
		record.TimerTotalSeconds, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE user_id = ?`, record.UserID); err != nil {
		return err
	}
	for i, slot := range record.Slots {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO slots (id, user_id, position, start_minutes, end_minutes)
			VALUES (?, ?, ?, ?, ?)
		`, slot.ID, record.UserID, i, slot.Start.Minutes(), slot.End.Minutes())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteDashboard removes a dashboard and its slots
func (s *SQLiteStorage) DeleteDashboard(ctx context.Context, userID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM dashboards WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return core.ErrDashboardNotFound
	}
	return nil
}

// ListDashboards retrieves all dashboards
func (s *SQLiteStorage) ListDashboards(ctx context.Context) ([]*core.DashboardRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT user_id FROM dashboards ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]*core.DashboardRecord, 0, len(userIDs))
	for _, userID := range userIDs {
		record, err := s.GetDashboard(ctx, userID)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadSnapshot retrieves a user's blocklist. A user with no stored
// blocklist gets an empty snapshot, not an error.
func (s *SQLiteStorage) LoadSnapshot(ctx context.Context, userID string) (*core.BlockingSnapshot, error) {
	snapshot := core.EmptySnapshot()

	err := s.db.QueryRowContext(ctx, `
		SELECT updated_at FROM blocking_meta WHERE user_id = ?
	`, userID).Scan(&snapshot.UpdatedAt)
	if err == sql.ErrNoRows {
		return snapshot, nil
	}
	if err != nil {
		return nil, err
	}

	appRows, err := s.db.QueryContext(ctx, `
		SELECT id, bundle_identifier, display_name
		FROM blocked_apps WHERE user_id = ? ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer appRows.Close()

	for appRows.Next() {
		var app core.BlockedApp
		if err := appRows.Scan(&app.ID, &app.BundleIdentifier, &app.DisplayName); err != nil {
			return nil, err
		}
		snapshot.Apps = append(snapshot.Apps, app)
	}
	if err := appRows.Err(); err != nil {
		return nil, err
	}

	siteRows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, display_name
		FROM blocked_websites WHERE user_id = ? ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer siteRows.Close()

	for siteRows.Next() {
		var site core.BlockedWebsite
		if err := siteRows.Scan(&site.ID, &site.Domain, &site.DisplayName); err != nil {
			return nil, err
		}
		snapshot.Websites = append(snapshot.Websites, site)
	}

	return snapshot, siteRows.Err()
}

// SaveSnapshot replaces a user's stored blocklist
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updatedAt := snapshot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blocking_meta (user_id, updated_at) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET updated_at = excluded.updated_at
	`, userID, updatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocked_apps WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for i, app := range snapshot.Apps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blocked_apps (id, user_id, position, bundle_identifier, display_name)
			VALUES (?, ?, ?, ?, ?)
		`, app.ID, userID, i, app.BundleIdentifier, app.DisplayName)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocked_websites WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for i, site := range snapshot.Websites {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blocked_websites (id, user_id, position, domain, display_name)
			VALUES (?, ?, ?, ?, ?)
		`, site.ID, userID, i, site.Domain, site.DisplayName)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

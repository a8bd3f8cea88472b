package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeout/internal/core"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	storage, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func testRecord(userID string) *core.DashboardRecord {
	return &core.DashboardRecord{
		UserID:       userID,
		SelectedDays: []int{1, 2, 3, 4, 5},
		WeeklyRepeat: true,
		Slots: []*core.TimeSlot{
			{ID: "slot_1", Start: core.TimeOfDay{Hour: 8}, End: core.TimeOfDay{Hour: 17}},
			{ID: "slot_2", Start: core.TimeOfDay{Hour: 20}, End: core.TimeOfDay{Hour: 22, Minute: 30}},
		},
		SelfLockEnabled:   true,
		Tier:              core.TierPremium,
		TimerTotalSeconds: 300,
	}
}

func TestSaveAndGetDashboard(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	in := testRecord("user1")
	require.NoError(t, storage.SaveDashboard(ctx, in))

	out, err := storage.GetDashboard(ctx, "user1")
	require.NoError(t, err)

	assert.Equal(t, "user1", out.UserID)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out.SelectedDays)
	assert.True(t, out.WeeklyRepeat)
	assert.True(t, out.SelfLockEnabled)
	assert.False(t, out.PartnerLockEnabled)
	assert.Equal(t, core.TierPremium, out.Tier)
	assert.Equal(t, 300, out.TimerTotalSeconds)
	require.Len(t, out.Slots, 2)
	assert.Equal(t, "slot_1", out.Slots[0].ID)
	assert.Equal(t, core.TimeOfDay{Hour: 20}, out.Slots[1].Start)
	assert.Equal(t, core.TimeOfDay{Hour: 22, Minute: 30}, out.Slots[1].End)
	assert.False(t, out.CreatedAt.IsZero())
	assert.False(t, out.UpdatedAt.IsZero())
}

func TestGetDashboardNotFound(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.GetDashboard(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrDashboardNotFound)
}

func TestSaveDashboardReplacesSlots(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	in := testRecord("user1")
	require.NoError(t, storage.SaveDashboard(ctx, in))

	in.Slots = []*core.TimeSlot{
		{ID: "slot_3", Start: core.TimeOfDay{Hour: 9}, End: core.TimeOfDay{Hour: 10}},
	}
	require.NoError(t, storage.SaveDashboard(ctx, in))

	out, err := storage.GetDashboard(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, out.Slots, 1)
	assert.Equal(t, "slot_3", out.Slots[0].ID)
}

func TestDeleteDashboard(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SaveDashboard(ctx, testRecord("user1")))
	require.NoError(t, storage.DeleteDashboard(ctx, "user1"))

	_, err := storage.GetDashboard(ctx, "user1")
	assert.ErrorIs(t, err, core.ErrDashboardNotFound)

	assert.ErrorIs(t, storage.DeleteDashboard(ctx, "user1"), core.ErrDashboardNotFound)
}

func TestListDashboards(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.SaveDashboard(ctx, testRecord("user2")))
	require.NoError(t, storage.SaveDashboard(ctx, testRecord("user1")))

	records, err := storage.ListDashboards(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "user1", records[0].UserID)
	assert.Equal(t, "user2", records[1].UserID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	empty, err := storage.LoadSnapshot(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, empty.Apps)
	assert.Empty(t, empty.Websites)

	in := &core.BlockingSnapshot{
		Apps: []core.BlockedApp{
			{ID: "app_1", BundleIdentifier: "com.example.social", DisplayName: "Social"},
		},
		Websites: []core.BlockedWebsite{
			{ID: "site_1", Domain: "example.com", DisplayName: "Example"},
			{ID: "site_2", Domain: "news.example.org", DisplayName: "News"},
		},
	}
	require.NoError(t, storage.SaveSnapshot(ctx, "user1", in))

	out, err := storage.LoadSnapshot(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, in.Apps, out.Apps)
	assert.Equal(t, in.Websites, out.Websites)
	assert.False(t, out.UpdatedAt.IsZero())

	// saving again replaces the lists
	in.Websites = in.Websites[:1]
	require.NoError(t, storage.SaveSnapshot(ctx, "user1", in))

	out, err = storage.LoadSnapshot(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, out.Websites, 1)
}

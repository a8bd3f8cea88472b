package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleDefaults(t *testing.T) {
	s := NewSchedule()

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, s.SelectedDays())
	assert.True(t, s.WeeklyRepeat())
	require.Equal(t, 1, s.SlotCount())
	assert.Equal(t, TimeOfDay{Hour: 8}, s.Slots()[0].Start)
	assert.Equal(t, TimeOfDay{Hour: 17}, s.Slots()[0].End)
	assert.True(t, s.IsValid())
}

func TestToggleDay(t *testing.T) {
	s := NewSchedule()

	s.ToggleDay(3)
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7}, s.SelectedDays())

	s.ToggleDay(3)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, s.SelectedDays())
}

func TestToggleDayOutOfRange(t *testing.T) {
	s := NewSchedule()

	s.ToggleDay(0)
	s.ToggleDay(8)
	s.ToggleDay(-1)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, s.SelectedDays())
}

func TestToggleAllDaysOff(t *testing.T) {
	s := NewSchedule()
	for d := DayMonday; d <= DaySunday; d++ {
		s.ToggleDay(d)
	}

	assert.False(t, s.HasSelectedDays())
	assert.Empty(t, s.SelectedDays())
}

func TestAddSlotChainsFromLastEnd(t *testing.T) {
	s := NewSchedule()

	slot := s.AddSlot()
	assert.Equal(t, TimeOfDay{Hour: 17}, slot.Start)
	assert.Equal(t, TimeOfDay{Hour: 18}, slot.End)
	assert.NotEmpty(t, slot.ID)

	next := s.AddSlot()
	assert.Equal(t, TimeOfDay{Hour: 18}, next.Start)
	assert.Equal(t, TimeOfDay{Hour: 19}, next.End)
}

func TestAddSlotClampsAtEndOfDay(t *testing.T) {
	s := NewSchedule()
	s.SetSlotBounds(s.Slots()[0].ID, TimeOfDay{Hour: 22}, TimeOfDay{Hour: 23, Minute: 30})

	slot := s.AddSlot()
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 30}, slot.Start)
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, slot.End)
}

func TestRemoveSlotKeepsLastSlot(t *testing.T) {
	s := NewSchedule()
	id := s.Slots()[0].ID

	assert.False(t, s.RemoveSlot(id))
	assert.Equal(t, 1, s.SlotCount())

	added := s.AddSlot()
	assert.True(t, s.RemoveSlot(added.ID))
	assert.Equal(t, 1, s.SlotCount())

	assert.False(t, s.RemoveSlot("slot_unknown"))
}

func TestSetSlotBoundsAcceptsInvalidRange(t *testing.T) {
	s := NewSchedule()
	id := s.Slots()[0].ID

	assert.True(t, s.SetSlotBounds(id, TimeOfDay{Hour: 18}, TimeOfDay{Hour: 9}))
	assert.True(t, s.HasInvalidRanges())
	assert.False(t, s.IsValid())

	assert.False(t, s.SetSlotBounds("slot_unknown", TimeOfDay{}, TimeOfDay{Hour: 1}))
}

func TestHasOverlaps(t *testing.T) {
	s := NewSchedule()
	first := s.Slots()[0]
	second := s.AddSlot()

	// touching slots do not overlap
	s.SetSlotBounds(first.ID, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 12})
	s.SetSlotBounds(second.ID, TimeOfDay{Hour: 12}, TimeOfDay{Hour: 14})
	assert.False(t, s.HasOverlaps())
	assert.True(t, s.IsValid())

	s.SetSlotBounds(second.ID, TimeOfDay{Hour: 11}, TimeOfDay{Hour: 14})
	assert.True(t, s.HasOverlaps())
	assert.False(t, s.IsValid())
}

func TestHasOverlapsIgnoresOrder(t *testing.T) {
	s := NewSchedule()
	first := s.Slots()[0]
	second := s.AddSlot()

	// the later slot sits first in creation order
	s.SetSlotBounds(first.ID, TimeOfDay{Hour: 13}, TimeOfDay{Hour: 15})
	s.SetSlotBounds(second.ID, TimeOfDay{Hour: 9}, TimeOfDay{Hour: 14})

	assert.True(t, s.HasOverlaps())
}

func TestIsActiveAt(t *testing.T) {
	s := NewSchedule()
	// Monday 2026-08-24
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	assert.False(t, s.IsActiveAt(monday.Add(7*time.Hour+59*time.Minute)))
	assert.True(t, s.IsActiveAt(monday.Add(8*time.Hour)))
	assert.True(t, s.IsActiveAt(monday.Add(12*time.Hour)))

	// end is exclusive
	assert.False(t, s.IsActiveAt(monday.Add(17*time.Hour)))
	assert.True(t, s.IsActiveAt(monday.Add(16*time.Hour+59*time.Minute)))
}

func TestIsActiveAtRespectsDaySelection(t *testing.T) {
	s := NewSchedule()
	s.SetSelectedDays([]int{DaySunday})

	sunday := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	monday := sunday.Add(24 * time.Hour)

	assert.True(t, s.IsActiveAt(sunday))
	assert.False(t, s.IsActiveAt(monday))
}

func TestIsActiveAtSkipsInvalidSlots(t *testing.T) {
	s := NewSchedule()
	s.SetSlotBounds(s.Slots()[0].ID, TimeOfDay{Hour: 18}, TimeOfDay{Hour: 9})

	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	assert.False(t, s.IsActiveAt(monday))
}

func TestSummaryLabel(t *testing.T) {
	tests := []struct {
		name   string
		days   []int
		weekly bool
		want   string
	}{
		{"all days weekly", []int{1, 2, 3, 4, 5, 6, 7}, true, "Everyday"},
		{"all days one-off", []int{1, 2, 3, 4, 5, 6, 7}, false, "All days"},
		{"no days weekly", []int{}, true, "Everyday"},
		{"no days one-off", []int{}, false, "All days"},
		{"single day weekly", []int{1}, true, "Every Monday"},
		{"single day one-off", []int{6}, false, "Saturday"},
		{"several days weekly", []int{1, 3, 5}, true, "Every Mon, Wed, Fri"},
		{"several days one-off", []int{2, 7}, false, "Tue, Sun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSchedule()
			s.SetSelectedDays(tt.days)
			s.SetWeeklyRepeat(tt.weekly)
			assert.Equal(t, tt.want, s.SummaryLabel())
		})
	}
}

func TestSummaryLabelSlotCount(t *testing.T) {
	s := NewSchedule()
	assert.Equal(t, "Everyday", s.SummaryLabel())

	s.AddSlot()
	assert.Equal(t, "Everyday · 2 slots", s.SummaryLabel())

	s.AddSlot()
	assert.Equal(t, "Everyday · 3 slots", s.SummaryLabel())
}

func TestRestoreSlots(t *testing.T) {
	s := NewSchedule()

	s.RestoreSlots(nil)
	assert.Equal(t, 1, s.SlotCount())

	s.RestoreSlots([]*TimeSlot{
		{ID: "slot_a", Start: TimeOfDay{Hour: 6}, End: TimeOfDay{Hour: 7}},
		{ID: "slot_b", Start: TimeOfDay{Hour: 20}, End: TimeOfDay{Hour: 21}},
	})
	require.Equal(t, 2, s.SlotCount())
	assert.Equal(t, "slot_a", s.Slots()[0].ID)
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05", TimeOfDay{Hour: 8, Minute: 5}.String())
	assert.Equal(t, "23:59", TimeOfDay{Hour: 23, Minute: 59}.String())
}

func TestMinutesToTimeOfDay(t *testing.T) {
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, MinutesToTimeOfDay(570))
	assert.Equal(t, TimeOfDay{}, MinutesToTimeOfDay(-5))
	assert.Equal(t, TimeOfDay{Hour: 23, Minute: 59}, MinutesToTimeOfDay(5000))
}

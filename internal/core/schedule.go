package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"timeout/internal/idgen"
)

// Day numbering follows the dashboard convention: 1 = Monday .. 7 = Sunday.
const (
	DayMonday = 1
	DaySunday = 7
)

const (
	defaultSlotStartMinutes = 9 * 60 // 09:00
	defaultSlotLength       = 60     // minutes
	lastMinuteOfDay         = 24*60 - 1
)

var fullDayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
var shortDayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinutesToTimeOfDay converts minutes since midnight back to a TimeOfDay.
func MinutesToTimeOfDay(m int) TimeOfDay {
	if m < 0 {
		m = 0
	}
	if m > lastMinuteOfDay {
		m = lastMinuteOfDay
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// TimeSlot is one contiguous start/end window within a day's schedule.
// The ID is stable across edits; Start and End may hold invalid values
// (start >= end) so the caller can render an error state instead of
// silently reverting an edit.
type TimeSlot struct {
	ID    string    `json:"id"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// IsValid reports whether the slot covers a non-empty range.
func (s *TimeSlot) IsValid() bool {
	return s.Start.Before(s.End)
}

// Schedule holds the weekly day selection and the time slots of one
// dashboard. Mutations never reorder the slot sequence; validity is
// computed over a sorted copy.
type Schedule struct {
	selectedDays map[int]bool
	weeklyRepeat bool
	slots        []*TimeSlot
}

// NewSchedule creates a schedule with all seven days selected, weekly
// repeat on, and a single 08:00-17:00 slot, matching a fresh dashboard.
func NewSchedule() *Schedule {
	days := make(map[int]bool, 7)
	for d := DayMonday; d <= DaySunday; d++ {
		days[d] = true
	}
	return &Schedule{
		selectedDays: days,
		weeklyRepeat: true,
		slots: []*TimeSlot{{
			ID:    idgen.NewSlot(),
			Start: TimeOfDay{Hour: 8},
			End:   TimeOfDay{Hour: 17},
		}},
	}
}

// ToggleDay flips membership of day (1=Monday .. 7=Sunday) in the
// selection. Days outside 1..7 are ignored.
func (s *Schedule) ToggleDay(day int) {
	if day < DayMonday || day > DaySunday {
		return
	}
	if s.selectedDays[day] {
		delete(s.selectedDays, day)
	} else {
		s.selectedDays[day] = true
	}
}

// SetWeeklyRepeat sets the weekly-repeat flag. The flag only affects the
// summary label; there is no one-off schedule variant.
func (s *Schedule) SetWeeklyRepeat(repeat bool) {
	s.weeklyRepeat = repeat
}

// WeeklyRepeat returns the weekly-repeat flag.
func (s *Schedule) WeeklyRepeat() bool {
	return s.weeklyRepeat
}

// SelectedDays returns the selected day numbers in ascending order.
func (s *Schedule) SelectedDays() []int {
	days := make([]int, 0, len(s.selectedDays))
	for d := range s.selectedDays {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// HasSelectedDays reports whether at least one day is selected.
func (s *Schedule) HasSelectedDays() bool {
	return len(s.selectedDays) > 0
}

// SetSelectedDays replaces the day selection. Used when restoring a
// persisted schedule; out-of-range days are dropped.
func (s *Schedule) SetSelectedDays(days []int) {
	s.selectedDays = make(map[int]bool, len(days))
	for _, d := range days {
		if d >= DayMonday && d <= DaySunday {
			s.selectedDays[d] = true
		}
	}
}

// Slots returns the slot sequence in creation order.
func (s *Schedule) Slots() []*TimeSlot {
	return s.slots
}

// SlotCount returns the number of slots.
func (s *Schedule) SlotCount() int {
	return len(s.slots)
}

// CopySlots returns value copies of the slot sequence, so callers can
// hold the result after the schedule's owning lock is released.
func (s *Schedule) CopySlots() []*TimeSlot {
	out := make([]*TimeSlot, len(s.slots))
	for i, slot := range s.slots {
		copied := *slot
		out[i] = &copied
	}
	return out
}

// AddSlot appends a new slot and returns it. The new slot starts where
// the last slot ends (09:00 when the schedule has no slots) and runs for
// 60 minutes, clamped at 23:59. Creation never validates against
// existing slots; validity is advisory and gates enabling, not editing.
func (s *Schedule) AddSlot() *TimeSlot {
	start := defaultSlotStartMinutes
	if n := len(s.slots); n > 0 {
		start = s.slots[n-1].End.Minutes()
	}
	end := start + defaultSlotLength
	if end > lastMinuteOfDay {
		end = lastMinuteOfDay
	}
	slot := &TimeSlot{
		ID:    idgen.NewSlot(),
		Start: MinutesToTimeOfDay(start),
		End:   MinutesToTimeOfDay(end),
	}
	s.slots = append(s.slots, slot)
	return slot
}

// RemoveSlot removes the slot with the given ID. The last remaining slot
// cannot be removed, preserving the at-least-one-slot invariant; in that
// case (and for unknown IDs) the schedule is unchanged and false is
// returned.
func (s *Schedule) RemoveSlot(id string) bool {
	if len(s.slots) <= 1 {
		return false
	}
	for i, slot := range s.slots {
		if slot.ID == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

// SetSlotBounds replaces one slot's start and end times. Any values are
// accepted, including inverted ranges; IsValid reports the resulting
// state. Returns false when no slot has the given ID.
func (s *Schedule) SetSlotBounds(id string, start, end TimeOfDay) bool {
	for _, slot := range s.slots {
		if slot.ID == id {
			slot.Start = start
			slot.End = end
			return true
		}
	}
	return false
}

// RestoreSlots replaces the slot sequence when loading a persisted
// schedule. An empty sequence is rejected to keep the invariant.
func (s *Schedule) RestoreSlots(slots []*TimeSlot) {
	if len(slots) == 0 {
		return
	}
	s.slots = slots
}

// HasInvalidRanges reports whether any slot has start >= end.
func (s *Schedule) HasInvalidRanges() bool {
	for _, slot := range s.slots {
		if !slot.IsValid() {
			return true
		}
	}
	return false
}

// HasOverlaps reports whether any two slots overlap. Slots are compared
// sorted by start time; a slot ending exactly where the next one starts
// does not overlap.
func (s *Schedule) HasOverlaps() bool {
	if len(s.slots) < 2 {
		return false
	}
	sorted := make([]*TimeSlot, len(s.slots))
	copy(sorted, s.slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].End.Minutes() > sorted[i].Start.Minutes() {
			return true
		}
	}
	return false
}

// IsValid reports whether every slot has start < end and no two slots
// overlap.
func (s *Schedule) IsValid() bool {
	return !s.HasInvalidRanges() && !s.HasOverlaps()
}

// IsActiveAt reports whether the schedule covers the given wall-clock
// time: its weekday is selected and the time falls inside a slot. The
// slot end is exclusive.
func (s *Schedule) IsActiveAt(t time.Time) bool {
	if !s.selectedDays[dashboardDay(t.Weekday())] {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	for _, slot := range s.slots {
		if !slot.IsValid() {
			continue
		}
		if minutes >= slot.Start.Minutes() && minutes < slot.End.Minutes() {
			return true
		}
	}
	return false
}

// SummaryLabel produces the human-readable schedule description shown in
// the dashboard header, for example "Every Monday" or
// "Mon, Wed, Fri · 2 slots".
func (s *Schedule) SummaryLabel() string {
	label := s.dayLabel()
	if n := len(s.slots); n > 1 {
		label = fmt.Sprintf("%s · %d slots", label, n)
	}
	return label
}

func (s *Schedule) dayLabel() string {
	days := s.SelectedDays()

	// Empty and full selections read the same: the schedule applies to
	// every day.
	if len(days) == 0 || len(days) == 7 {
		if s.weeklyRepeat {
			return "Everyday"
		}
		return "All days"
	}

	if len(days) == 1 {
		name := fullDayNames[days[0]-1]
		if s.weeklyRepeat {
			return "Every " + name
		}
		return name
	}

	names := make([]string, len(days))
	for i, d := range days {
		names[i] = shortDayNames[d-1]
	}
	joined := strings.Join(names, ", ")
	if s.weeklyRepeat {
		return "Every " + joined
	}
	return joined
}

// dashboardDay converts a time.Weekday (Sunday=0) to dashboard numbering
// (Monday=1 .. Sunday=7).
func dashboardDay(w time.Weekday) int {
	if w == time.Sunday {
		return DaySunday
	}
	return int(w)
}

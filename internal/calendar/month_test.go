package calendar

import (
	"testing"
	"time"

	"tutordesk/internal/model"
)

func slot(id int64, date, start string, available bool) model.TimeSlot {
	return model.TimeSlot{ID: id, Date: date, StartTime: start, EndTime: "23:59", Available: available}
}

func findDay(t *testing.T, m Month, date string) Day {
	t.Helper()
	for _, d := range m.Days {
		if d.Date.Format(DateFormat) == date {
			return d
		}
	}
	t.Fatalf("day %s not in grid", date)
	return Day{}
}

func TestGridCoversWholeWeeks(t *testing.T) {
	// February 2026: Feb 1 is a Sunday, Feb 28 a Saturday — exactly 4 weeks.
	m := BuildMonth(nil, 2026, time.February)
	if len(m.Days)%7 != 0 {
		t.Fatalf("grid length %d is not a multiple of 7", len(m.Days))
	}
	if len(m.Days) != 28 {
		t.Errorf("February 2026 grid = %d days, want 28", len(m.Days))
	}
	if m.Days[0].Date.Weekday() != time.Sunday {
		t.Errorf("grid starts on %s, want Sunday", m.Days[0].Date.Weekday())
	}
	if m.Days[len(m.Days)-1].Date.Weekday() != time.Saturday {
		t.Errorf("grid ends on %s, want Saturday", m.Days[len(m.Days)-1].Date.Weekday())
	}
}

func TestGridIncludesAdjacentMonthDays(t *testing.T) {
	// January 2026: Jan 1 is a Thursday, so the grid starts Sun Dec 28.
	m := BuildMonth(nil, 2026, time.January)
	first := m.Days[0]
	if first.Date.Format(DateFormat) != "2025-12-28" {
		t.Errorf("grid starts %s, want 2025-12-28", first.Date.Format(DateFormat))
	}
	if first.InMonth {
		t.Error("December day should be flagged out-of-month")
	}
	jan1 := findDay(t, m, "2026-01-01")
	if !jan1.InMonth {
		t.Error("January 1 should be in-month")
	}
}

func TestDayClassification(t *testing.T) {
	const d = "2026-02-10"
	tests := []struct {
		name  string
		slots []model.TimeSlot
		want  DayStatus
	}{
		{"no slots", nil, StatusNone},
		{"all available", []model.TimeSlot{slot(1, d, "09:00", true), slot(2, d, "10:00", true)}, StatusAvailable},
		{"all booked", []model.TimeSlot{slot(1, d, "09:00", false), slot(2, d, "10:00", false)}, StatusBooked},
		{"mixed", []model.TimeSlot{slot(1, d, "09:00", true), slot(2, d, "10:00", false)}, StatusMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMonth(tt.slots, 2026, time.February)
			day := findDay(t, m, d)
			if day.Status != tt.want {
				t.Errorf("status = %s, want %s", day.Status, tt.want)
			}
			wantSelectable := tt.want != StatusNone
			if day.Selectable() != wantSelectable {
				t.Errorf("Selectable() = %v, want %v", day.Selectable(), wantSelectable)
			}
		})
	}
}

func TestAdjacentMonthDayWithSlotsIsSelectable(t *testing.T) {
	// A slot on Dec 29 shows up dimmed but selectable in the January grid.
	slots := []model.TimeSlot{slot(1, "2025-12-29", "09:00", true)}
	m := BuildMonth(slots, 2026, time.January)
	day := findDay(t, m, "2025-12-29")
	if day.InMonth {
		t.Error("day should be out-of-month")
	}
	if !day.Selectable() {
		t.Error("out-of-month day with slots should be selectable")
	}
	if len(day.Slots) != 1 {
		t.Errorf("got %d slots, want 1", len(day.Slots))
	}
}

func TestDaySlotsSortedByStartTime(t *testing.T) {
	const d = "2026-02-10"
	slots := []model.TimeSlot{
		slot(3, d, "14:00", true),
		slot(1, d, "09:00", true),
		slot(4, d, "09:00", false), // equal start: stable order after id 1
		slot(2, d, "11:30", true),
	}
	m := BuildMonth(slots, 2026, time.February)
	day := findDay(t, m, d)

	gotIDs := make([]int64, len(day.Slots))
	for i, s := range day.Slots {
		gotIDs[i] = s.ID
	}
	want := []int64{1, 4, 2, 3}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("slot order = %v, want %v", gotIDs, want)
		}
	}
}

func TestExactDateMatchOnly(t *testing.T) {
	slots := []model.TimeSlot{slot(1, "2026-02-10", "09:00", true)}
	m := BuildMonth(slots, 2026, time.February)
	if d := findDay(t, m, "2026-02-09"); d.Status != StatusNone {
		t.Errorf("2026-02-09 status = %s, want none", d.Status)
	}
	if d := findDay(t, m, "2026-02-11"); d.Status != StatusNone {
		t.Errorf("2026-02-11 status = %s, want none", d.Status)
	}
}

func TestWeeks(t *testing.T) {
	m := BuildMonth(nil, 2026, time.February)
	weeks := m.Weeks()
	if len(weeks) != 4 {
		t.Fatalf("February 2026 = %d weeks, want 4", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d has %d days, want 7", i, len(w))
		}
	}
}

func TestMonthNavigation(t *testing.T) {
	y, mo := NextMonth(2026, time.December)
	if y != 2027 || mo != time.January {
		t.Errorf("NextMonth(2026, Dec) = %d %s, want 2027 January", y, mo)
	}
	y, mo = PrevMonth(2026, time.January)
	if y != 2025 || mo != time.December {
		t.Errorf("PrevMonth(2026, Jan) = %d %s, want 2025 December", y, mo)
	}
}

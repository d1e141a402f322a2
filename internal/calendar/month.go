package calendar

import (
	"sort"
	"time"

	"tutordesk/internal/model"
)

// DayStatus is the aggregate availability of a calendar day.
type DayStatus string

const (
	StatusNone      DayStatus = "none"
	StatusAvailable DayStatus = "available"
	StatusBooked    DayStatus = "booked"
	StatusMixed     DayStatus = "mixed"
)

// Day is one cell of the month grid.
type Day struct {
	Date    time.Time
	InMonth bool
	Status  DayStatus
	Slots   []model.TimeSlot
}

// Selectable reports whether the day can be opened for slot detail. Days
// outside the displayed month stay selectable when they carry slots, so
// neighboring availability is reachable without switching months; they are
// only rendered de-emphasized.
func (d Day) Selectable() bool {
	return d.Status != StatusNone
}

// Month is the projected grid for one calendar month: whole weeks from the
// Sunday on/before the 1st through the Saturday on/after the last day.
type Month struct {
	Year  int
	Month time.Month
	Days  []Day
}

// Weeks returns the grid split into rows of seven days.
func (m Month) Weeks() [][]Day {
	var weeks [][]Day
	for i := 0; i+7 <= len(m.Days); i += 7 {
		weeks = append(weeks, m.Days[i:i+7])
	}
	return weeks
}

// DateFormat is the calendar-day key used across the API.
const DateFormat = "2006-01-02"

// BuildMonth projects a flat slot list onto the month grid. It is a pure
// function of its inputs; callers re-run it whenever slots or the displayed
// month change.
func BuildMonth(slots []model.TimeSlot, year int, month time.Month) Month {
	byDate := make(map[string][]model.TimeSlot)
	for _, s := range slots {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	m := Month{Year: year, Month: month}
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		daySlots := byDate[day.Format(DateFormat)]
		sortSlots(daySlots)
		m.Days = append(m.Days, Day{
			Date:    day,
			InMonth: day.Month() == month,
			Status:  classify(daySlots),
			Slots:   daySlots,
		})
	}
	return m
}

// classify derives the aggregate day status from its slots.
func classify(slots []model.TimeSlot) DayStatus {
	if len(slots) == 0 {
		return StatusNone
	}
	available, booked := 0, 0
	for _, s := range slots {
		if s.Available {
			available++
		} else {
			booked++
		}
	}
	switch {
	case available > 0 && booked > 0:
		return StatusMixed
	case available > 0:
		return StatusAvailable
	default:
		return StatusBooked
	}
}

// sortSlots orders a day's slots by start time ascending, stable for equal
// times. A slot whose start time fails to parse sorts first rather than
// dropping out of the list.
func sortSlots(slots []model.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, _ := model.MinuteOfDay(slots[i].StartTime)
		b, _ := model.MinuteOfDay(slots[j].StartTime)
		return a < b
	})
}

// NextMonth returns the month after (year, month).
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// PrevMonth returns the month before (year, month).
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

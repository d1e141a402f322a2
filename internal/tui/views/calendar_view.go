package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tutordesk/internal/calendar"
	"tutordesk/internal/model"
	"tutordesk/internal/tui/ui"
)

// CalendarView renders a month grid next to the selected day's slot list.
// Moving the grid cursor re-renders the slot panel; Enter on a slot hands
// it to the onSlot callback (book or toggle, depending on role).
type CalendarView struct {
	*tview.Flex
	theme  *ui.Theme
	grid   *tview.Table
	slots  *tview.Table
	month  calendar.Month
	onSlot func(slot model.TimeSlot)
}

// NewCalendarView creates a new calendar view.
func NewCalendarView(theme *ui.Theme) *CalendarView {
	grid := tview.NewTable().
		SetSelectable(true, true).
		SetBorders(false).
		SetFixed(1, 0)
	grid.SetBorder(true)
	grid.SetBorderColor(theme.BorderColor)
	grid.SetBackgroundColor(theme.BgColor)
	grid.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	grid.SetTitleColor(theme.TitleColor)

	slotTable := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	slotTable.SetBorder(true)
	slotTable.SetBorderColor(theme.BorderColor)
	slotTable.SetBackgroundColor(theme.BgColor)
	slotTable.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	slotTable.SetTitle(" Slots ")
	slotTable.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		AddItem(grid, 0, 2, true).
		AddItem(slotTable, 0, 1, false)

	cv := &CalendarView{
		Flex:  flex,
		theme: theme,
		grid:  grid,
		slots: slotTable,
	}

	grid.SetSelectionChangedFunc(func(row, col int) {
		cv.renderSlots()
	})
	slotTable.SetSelectedFunc(func(row, col int) {
		if cv.onSlot == nil {
			return
		}
		if slot, ok := cv.SelectedSlot(); ok {
			cv.onSlot(slot)
		}
	})

	return cv
}

// Name implements Component.
func (cv *CalendarView) Name() string { return "Calendar" }

// Init implements Component.
func (cv *CalendarView) Init() {}

// Start implements Component.
func (cv *CalendarView) Start() {}

// Stop implements Component.
func (cv *CalendarView) Stop() {}

// Hints implements Component.
func (cv *CalendarView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open slot"},
		{Key: "[/]", Description: "Prev/Next month"},
		{Key: "Tab", Description: "Switch panel"},
		{Key: "a", Description: "Add slot"},
		{Key: "Esc", Description: "Back"},
		{Key: "?", Description: "Help"},
	}
}

// SetOnSlot sets the callback invoked when a slot row is activated.
func (cv *CalendarView) SetOnSlot(fn func(slot model.TimeSlot)) {
	cv.onSlot = fn
}

// Update re-renders the grid from a fresh month projection.
func (cv *CalendarView) Update(m calendar.Month) {
	cv.month = m
	cv.grid.Clear()
	cv.grid.SetTitle(fmt.Sprintf(" %s %d ", m.Month, m.Year))

	for col, wd := range []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"} {
		cv.grid.SetCell(0, col, tview.NewTableCell(" "+wd+" ").
			SetSelectable(false).
			SetTextColor(cv.theme.TableHeaderFg).
			SetBackgroundColor(cv.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold))
	}

	for w, week := range m.Weeks() {
		for col, day := range week {
			cv.grid.SetCell(w+1, col, cv.dayCell(day))
		}
	}
	cv.grid.Select(1, 0)
	cv.renderSlots()
}

func (cv *CalendarView) dayCell(day calendar.Day) *tview.TableCell {
	label := fmt.Sprintf(" %2d ", day.Date.Day())
	switch day.Status {
	case calendar.StatusAvailable:
		label += "o"
	case calendar.StatusBooked:
		label += "x"
	case calendar.StatusMixed:
		label += "~"
	default:
		label += " "
	}

	color := cv.theme.FgColor
	switch day.Status {
	case calendar.StatusAvailable:
		color = cv.theme.DayAvailableColor
	case calendar.StatusBooked:
		color = cv.theme.DayBookedColor
	case calendar.StatusMixed:
		color = cv.theme.DayMixedColor
	}
	// Days of neighboring months are dimmed but stay selectable when they
	// carry slots.
	if !day.InMonth {
		color = cv.theme.DayDimColor
	}

	return tview.NewTableCell(label).
		SetSelectable(day.Selectable()).
		SetTextColor(color)
}

// SelectedDay returns the day under the grid cursor.
func (cv *CalendarView) SelectedDay() (calendar.Day, bool) {
	row, col := cv.grid.GetSelection()
	weeks := cv.month.Weeks()
	w := row - 1
	if w < 0 || w >= len(weeks) || col < 0 || col > 6 {
		return calendar.Day{}, false
	}
	return weeks[w][col], true
}

// SelectedSlot returns the slot under the slot panel cursor.
func (cv *CalendarView) SelectedSlot() (model.TimeSlot, bool) {
	day, ok := cv.SelectedDay()
	if !ok {
		return model.TimeSlot{}, false
	}
	row, _ := cv.slots.GetSelection()
	idx := row - 1
	if idx >= 0 && idx < len(day.Slots) {
		return day.Slots[idx], true
	}
	return model.TimeSlot{}, false
}

func (cv *CalendarView) renderSlots() {
	cv.slots.Clear()

	cv.slots.SetCell(0, 0, tview.NewTableCell(" TIME").
		SetSelectable(false).
		SetTextColor(cv.theme.TableHeaderFg).
		SetAttributes(tcell.AttrBold).
		SetExpansion(1))
	cv.slots.SetCell(0, 1, tview.NewTableCell(" STATE").
		SetSelectable(false).
		SetTextColor(cv.theme.TableHeaderFg).
		SetAttributes(tcell.AttrBold))

	day, ok := cv.SelectedDay()
	if !ok {
		cv.slots.SetTitle(" Slots ")
		return
	}
	cv.slots.SetTitle(fmt.Sprintf(" %s ", day.Date.Format(calendar.DateFormat)))

	for i, slot := range day.Slots {
		row := i + 1
		state := "booked"
		color := cv.theme.DayBookedColor
		if slot.Available {
			state = "open"
			color = cv.theme.DayAvailableColor
		}
		cv.slots.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf(" %s-%s", slot.StartTime, slot.EndTime)).
			SetExpansion(1).
			SetTextColor(cv.theme.FgColor))
		cv.slots.SetCell(row, 1, tview.NewTableCell(state).SetTextColor(color))
	}
}

// Grid returns the month grid table (for focus management).
func (cv *CalendarView) Grid() *tview.Table {
	return cv.grid
}

// SlotTable returns the slot panel table (for focus management).
func (cv *CalendarView) SlotTable() *tview.Table {
	return cv.slots
}

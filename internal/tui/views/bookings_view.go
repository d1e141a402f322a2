package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tutordesk/internal/model"
	"tutordesk/internal/tui/ui"
)

// BookingsView lists the user's bookings with their payment state.
type BookingsView struct {
	*tview.Table
	theme    *ui.Theme
	bookings []model.Booking
}

// NewBookingsView creates a new bookings table.
func NewBookingsView(theme *ui.Theme) *BookingsView {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Bookings ")
	table.SetTitleColor(theme.TitleColor)

	return &BookingsView{
		Table: table,
		theme: theme,
	}
}

// Name implements Component.
func (bv *BookingsView) Name() string { return "Bookings" }

// Init implements Component.
func (bv *BookingsView) Init() {}

// Start implements Component.
func (bv *BookingsView) Start() {}

// Stop implements Component.
func (bv *BookingsView) Stop() {}

// Hints implements Component.
func (bv *BookingsView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "p", Description: "Pay"},
		{Key: "r", Description: "Rate"},
		{Key: "Esc", Description: "Back"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
	}
}

// Update refreshes the table.
func (bv *BookingsView) Update(bookings []model.Booking) {
	bv.bookings = bookings
	bv.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" TUTOR", 1},
		{" SUBJECT", 1},
		{" WHEN", 0},
		{" AMOUNT", 0},
		{" PAID", 0},
		{" STATUS", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(bv.theme.TableHeaderFg).
			SetBackgroundColor(bv.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		bv.SetCell(0, col, cell)
	}

	for i, b := range bookings {
		row := i + 1
		paid := "no"
		paidColor := bv.theme.FlashWarnColor
		if b.Paid {
			paid = "yes"
			paidColor = bv.theme.DayAvailableColor
		}

		bv.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(b.TutorName))).SetExpansion(1).SetTextColor(bv.theme.FgColor))
		bv.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(b.Subject)).SetExpansion(1).SetTextColor(bv.theme.FgColor))
		bv.SetCell(row, 2, tview.NewTableCell(b.Date+" "+b.Time).SetTextColor(bv.theme.FgColor))
		bv.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("$%.2f", b.Amount)).SetTextColor(bv.theme.CounterColor).SetAlign(tview.AlignRight))
		bv.SetCell(row, 4, tview.NewTableCell(paid).SetTextColor(paidColor).SetAlign(tview.AlignRight))
		bv.SetCell(row, 5, tview.NewTableCell(string(b.Status)).SetTextColor(bv.theme.FgColor).SetAlign(tview.AlignRight))
	}

	bv.SetTitle(fmt.Sprintf(" Bookings (%d) ", len(bookings)))
}

// SelectedBooking returns the booking under the cursor.
func (bv *BookingsView) SelectedBooking() (model.Booking, bool) {
	row, _ := bv.GetSelection()
	idx := row - 1
	if idx >= 0 && idx < len(bv.bookings) {
		return bv.bookings[idx], true
	}
	return model.Booking{}, false
}

package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tutordesk/internal/model"
	"tutordesk/internal/tui/ui"
)

// TutorList is the tutor directory table.
type TutorList struct {
	*tview.Table
	theme  *ui.Theme
	tutors []model.Tutor
}

// NewTutorList creates a new tutor directory table.
func NewTutorList(theme *ui.Theme) *TutorList {
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
	table.SetTitle(" Tutors ")
	table.SetTitleColor(theme.TitleColor)

	return &TutorList{
		Table: table,
		theme: theme,
	}
}

// Name implements Component.
func (tl *TutorList) Name() string { return "Tutors" }

// Init implements Component.
func (tl *TutorList) Init() {}

// Start implements Component.
func (tl *TutorList) Start() {}

// Stop implements Component.
func (tl *TutorList) Stop() {}

// Hints implements Component.
func (tl *TutorList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "View calendar"},
		{Key: "Esc", Description: "Back"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
	}
}

// Update refreshes the directory.
func (tl *TutorList) Update(tutors []model.Tutor) {
	tl.tutors = tutors
	tl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 1},
		{" SUBJECT", 1},
		{" RATE", 0},
		{" RATING", 0},
		{" SESSIONS", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(tl.theme.TableHeaderFg).
			SetBackgroundColor(tl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		tl.SetCell(0, col, cell)
	}

	for i, t := range tutors {
		row := i + 1
		tl.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(t.Name))).SetExpansion(1).SetTextColor(tl.theme.FgColor))
		tl.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(t.Subject)).SetExpansion(1).SetTextColor(tl.theme.FgColor))
		tl.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("$%.0f/h", t.Rate)).SetTextColor(tl.theme.CounterColor).SetAlign(tview.AlignRight))
		tl.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%.1f", t.Rating)).SetTextColor(tl.theme.CounterColor).SetAlign(tview.AlignRight))
		tl.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", t.Sessions)).SetTextColor(tl.theme.CounterColor).SetAlign(tview.AlignRight))
	}

	tl.SetTitle(fmt.Sprintf(" Tutors (%d) ", len(tutors)))
}

// SelectedTutor returns the id of the tutor under the cursor, 0 if none.
func (tl *TutorList) SelectedTutor() int64 {
	row, _ := tl.GetSelection()
	idx := row - 1
	if idx >= 0 && idx < len(tl.tutors) {
		return tl.tutors[idx].ID
	}
	return 0
}

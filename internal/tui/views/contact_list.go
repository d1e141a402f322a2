package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tutordesk/internal/model"
	"tutordesk/internal/tui/ui"
)

// ContactList is the main conversation list view.
type ContactList struct {
	*tview.Table
	theme    *ui.Theme
	contacts []model.Contact
	filter   string
}

// NewContactList creates a new contact list table.
func NewContactList(theme *ui.Theme) *ContactList {
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
	table.SetTitle(" Contacts ")
	table.SetTitleColor(theme.TitleColor)

	return &ContactList{
		Table: table,
		theme: theme,
	}
}

// Name implements Component.
func (cl *ContactList) Name() string { return "Contacts" }

// Init implements Component.
func (cl *ContactList) Init() {}

// Start implements Component.
func (cl *ContactList) Start() {}

// Stop implements Component.
func (cl *ContactList) Stop() {}

// Hints implements Component.
func (cl *ContactList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open chat"},
		{Key: "/", Description: "Filter"},
		{Key: ":", Description: "Command"},
		{Key: "t", Description: "Tutors"},
		{Key: "b", Description: "Bookings"},
		{Key: "c", Description: "Calendar"},
		{Key: "?", Description: "Help"},
		{Key: "q", Description: "Quit"},
		{Key: "0-9", Description: "Jump", Numeric: true},
	}
}

// Update refreshes the table with a new contact snapshot. The previous
// selection is re-resolved by contact id so a reordered list does not move
// the cursor onto a different person.
func (cl *ContactList) Update(contacts []model.Contact) {
	selected := cl.SelectedContactID()
	cl.contacts = contacts
	cl.render()

	if selected != 0 {
		for row, c := range cl.visible() {
			if c.ID == selected {
				cl.Select(row+1, 0)
				break
			}
		}
	}
}

// SetFilter sets the active filter text and re-renders.
func (cl *ContactList) SetFilter(filter string) {
	cl.filter = filter
	cl.render()
}

// ClearFilter clears the active filter.
func (cl *ContactList) ClearFilter() {
	cl.filter = ""
	cl.render()
}

func (cl *ContactList) visible() []model.Contact {
	if cl.filter == "" {
		return cl.contacts
	}
	var out []model.Contact
	for _, c := range cl.contacts {
		if containsFold(c.Name, cl.filter) || containsFold(c.LastMessage, cl.filter) {
			out = append(out, c)
		}
	}
	return out
}

func (cl *ContactList) render() {
	cl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" NAME", 1},
		{" LAST MESSAGE", 2},
		{" ROLE", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(cl.theme.TableHeaderFg).
			SetBackgroundColor(cl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		cl.SetCell(0, col, cell)
	}

	visible := cl.visible()
	for i, c := range visible {
		row := i + 1
		name := c.Name
		if c.Unread > 0 {
			name = fmt.Sprintf("(%d) %s", c.Unread, name)
		}

		cl.SetCell(row, 0, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(name))).SetExpansion(1).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(sanitizeForTerminal(c.LastMessage))).SetExpansion(2).SetTextColor(cl.theme.FgColor))
		cl.SetCell(row, 2, tview.NewTableCell(strings.ToUpper(string(c.Role))).SetExpansion(0).SetTextColor(cl.theme.FgColor).SetAlign(tview.AlignRight))
	}

	if cl.filter != "" {
		cl.SetTitle(fmt.Sprintf(" Contacts (%d/%d) filter: %s ", len(visible), len(cl.contacts), cl.filter))
	} else {
		cl.SetTitle(fmt.Sprintf(" Contacts (%d) ", len(cl.contacts)))
	}
}

// SelectedContactID returns the id of the currently selected contact, 0
// when nothing is selected.
func (cl *ContactList) SelectedContactID() int64 {
	row, _ := cl.GetSelection()
	idx := row - 1 // account for header
	visible := cl.visible()
	if idx >= 0 && idx < len(visible) {
		return visible[idx].ID
	}
	return 0
}

// ContactByIndex returns the id of the Nth visible contact (1-based).
func (cl *ContactList) ContactByIndex(n int) int64 {
	visible := cl.visible()
	if n >= 1 && n <= len(visible) {
		return visible[n-1].ID
	}
	return 0
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package views

import (
	"github.com/rivo/tview"

	"tutordesk/internal/tui/ui"
)

// SlotForm collects a new availability slot from a tutor. Validation
// happens in the slot manager; the form only gathers raw strings.
type SlotForm struct {
	*tview.Form
	onSubmit func(date, start, end string)
	onCancel func()
}

// NewSlotForm creates the slot creation form.
func NewSlotForm(theme *ui.Theme) *SlotForm {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.MenuKeyColor)
	form.SetButtonBackgroundColor(theme.BorderColor)
	form.SetTitle(" New Slot ")
	form.SetTitleColor(theme.TitleColor)

	sf := &SlotForm{Form: form}

	form.AddInputField("Date (YYYY-MM-DD)", "", 12, nil, nil)
	form.AddInputField("Start (HH:MM)", "", 7, nil, nil)
	form.AddInputField("End (HH:MM)", "", 7, nil, nil)
	form.AddButton("Create", func() {
		if sf.onSubmit != nil {
			sf.onSubmit(sf.field(0), sf.field(1), sf.field(2))
		}
	})
	form.AddButton("Cancel", func() {
		if sf.onCancel != nil {
			sf.onCancel()
		}
	})

	return sf
}

// Name implements Component.
func (sf *SlotForm) Name() string { return "New Slot" }

// Init implements Component.
func (sf *SlotForm) Init() {}

// Start implements Component.
func (sf *SlotForm) Start() {}

// Stop implements Component.
func (sf *SlotForm) Stop() {}

// Hints implements Component.
func (sf *SlotForm) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// SetOnSubmit sets the callback fired with the raw field values.
func (sf *SlotForm) SetOnSubmit(fn func(date, start, end string)) {
	sf.onSubmit = fn
}

// SetOnCancel sets the callback fired when the form is dismissed.
func (sf *SlotForm) SetOnCancel(fn func()) {
	sf.onCancel = fn
}

// Reset clears all fields, optionally pre-filling the date.
func (sf *SlotForm) Reset(date string) {
	sf.setField(0, date)
	sf.setField(1, "")
	sf.setField(2, "")
	sf.SetFocus(0)
}

func (sf *SlotForm) field(i int) string {
	return sf.GetFormItem(i).(*tview.InputField).GetText()
}

func (sf *SlotForm) setField(i int, v string) {
	sf.GetFormItem(i).(*tview.InputField).SetText(v)
}

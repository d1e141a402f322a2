package views

import (
	"fmt"

	"github.com/rivo/tview"

	"tutordesk/internal/tui/ui"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render() {
	kc := fmt.Sprintf("#%06x", hv.theme.MenuKeyColor.Hex())

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  [%s]:[-:-:-]    Command mode        [%s]Esc[-:-:-]   Cancel / Go back
  [%s]/[-:-:-]    Filter mode         [%s]?[-:-:-]     Help
  [%s]q[-:-:-]    Quit / Back         [%s]Ctrl-C[-:-:-] Quit immediately

  [::b]Contacts[-:-:-]

  [%s]Enter[-:-:-]  Open conversation  [%s]t[-:-:-]     Tutor directory
  [%s]1-9[-:-:-]    Jump to Nth chat   [%s]b[-:-:-]     My bookings
  [%s]c[-:-:-]      My calendar        [%s]0[-:-:-]     Clear filter

  [::b]Conversation[-:-:-]

  [%s]i[-:-:-]    Focus composer      [%s]Enter[-:-:-] Send message (in composer)
  [%s]Esc[-:-:-]  Exit composer

  [::b]Calendar[-:-:-]

  [%s][[-:-:-]    Previous month      [%s]][-:-:-]     Next month
  [%s]Tab[-:-:-]  Grid/slot panel     [%s]Enter[-:-:-] Book or toggle slot
  [%s]a[-:-:-]    Add slot (tutors)

  [::b]Bookings[-:-:-]

  [%s]p[-:-:-]    Pay selected        [%s]r[-:-:-]     Rate selected

  [::b]Commands (: mode)[-:-:-]

  [%s]:tutors[-:-:-]            Open tutor directory
  [%s]:calendar[-:-:-]          Open calendar
  [%s]:bookings[-:-:-]          Open bookings
  [%s]:export <file>[-:-:-]     Export calendar month as PNG
  [%s]:logout[-:-:-]            Logout current account
  [%s]:help[-:-:-] / [%s]:h[-:-:-]       Show this help
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]       Quit application
`,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc,
		kc, kc, kc,
		kc, kc, kc, kc, kc,
		kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}

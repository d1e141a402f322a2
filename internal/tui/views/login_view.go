package views

import (
	"fmt"

	"github.com/rivo/tview"

	"tutordesk/internal/tui/ui"
)

// LoginView collects credentials when no stored token exists or the server
// rejects the current one.
type LoginView struct {
	*tview.Flex
	form    *tview.Form
	message *tview.TextView
	onLogin func(email, password string)
}

// NewLoginView creates the login form.
func NewLoginView(theme *ui.Theme) *LoginView {
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetFieldBackgroundColor(theme.BgColor)
	form.SetFieldTextColor(theme.FgColor)
	form.SetLabelColor(theme.MenuKeyColor)
	form.SetButtonBackgroundColor(theme.BorderColor)
	form.SetTitle(" Sign In ")
	form.SetTitleColor(theme.TitleColor)

	message := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	message.SetBackgroundColor(theme.BgColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(message, 1, 0, false)

	lv := &LoginView{
		Flex:    flex,
		form:    form,
		message: message,
	}

	form.AddInputField("Email", "", 40, nil, nil)
	form.AddPasswordField("Password", "", 40, '*', nil)
	form.AddButton("Login", func() {
		if lv.onLogin != nil {
			email := form.GetFormItem(0).(*tview.InputField).GetText()
			password := form.GetFormItem(1).(*tview.InputField).GetText()
			lv.onLogin(email, password)
		}
	})

	return lv
}

// Name implements Component.
func (lv *LoginView) Name() string { return "Login" }

// Init implements Component.
func (lv *LoginView) Init() {}

// Start implements Component.
func (lv *LoginView) Start() {}

// Stop implements Component.
func (lv *LoginView) Stop() {}

// Hints implements Component.
func (lv *LoginView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
	}
}

// SetOnLogin sets the callback fired with the entered credentials.
func (lv *LoginView) SetOnLogin(fn func(email, password string)) {
	lv.onLogin = fn
}

// ShowMessage displays a status or error line under the form.
func (lv *LoginView) ShowMessage(msg string) {
	lv.message.Clear()
	_, _ = fmt.Fprintf(lv.message, "[orange]%s[-]", msg)
}

// ClearPassword wipes the password field after a failed attempt.
func (lv *LoginView) ClearPassword() {
	lv.form.GetFormItem(1).(*tview.InputField).SetText("")
}

// Form returns the login form (for focus management).
func (lv *LoginView) Form() *tview.Form {
	return lv.form
}

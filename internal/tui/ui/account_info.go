package ui

import (
	"fmt"
	"time"

	"github.com/rivo/tview"
)

// AccountData holds account information for display in the header.
type AccountData struct {
	Account  string
	Email    string
	Role     string
	Unread   int
	ChatSync string
	Uptime   time.Duration
}

// AccountInfo displays account metadata in the header.
type AccountInfo struct {
	*tview.TextView
	theme *Theme
}

// NewAccountInfo creates a new account info panel.
func NewAccountInfo(theme *Theme) *AccountInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &AccountInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the account info.
func (ai *AccountInfo) Update(data *AccountData) {
	ai.Clear()
	if data == nil {
		return
	}

	fgColor := colorName(ai.theme.FgColor)
	counterColor := colorName(ai.theme.CounterColor)

	email := data.Email
	if email == "" {
		email = "-"
	}
	role := data.Role
	if role == "" {
		role = "-"
	}

	uptime := formatDuration(data.Uptime)

	text := fmt.Sprintf(
		"[%s::b]Account:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]Email:[-:-:-]   [%s]%s[-]\n"+
			"[%s::b]Role:[-:-:-]    [%s]%s[-]\n"+
			"[%s::b]Unread:[-:-:-]  [%s]%d[-]\n"+
			"[%s::b]Chat:[-:-:-]    [%s]%s[-]\n"+
			"[%s::b]Uptime:[-:-:-]  [%s]%s[-]",
		fgColor, counterColor, data.Account,
		fgColor, counterColor, email,
		fgColor, counterColor, role,
		fgColor, counterColor, data.Unread,
		fgColor, counterColor, data.ChatSync,
		fgColor, counterColor, uptime,
	)

	_, _ = fmt.Fprint(ai, text)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

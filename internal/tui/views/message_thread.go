package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tutordesk/internal/model"
	"tutordesk/internal/tui/ui"
)

// MessageThread displays the open conversation and a composer.
type MessageThread struct {
	*tview.Flex
	theme       *ui.Theme
	messages    *tview.TextView
	composer    *tview.InputField
	contactName string
	contactID   int64
	userID      int64
	onSend      func(text string)
}

// NewMessageThread creates a new message thread view.
func NewMessageThread(theme *ui.Theme) *MessageThread {
	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	messages.SetBorder(true)
	messages.SetBorderColor(theme.BorderColor)
	messages.SetBackgroundColor(theme.BgColor)
	messages.SetTextColor(theme.FgColor)
	messages.SetTitle(" Messages ")
	messages.SetTitleColor(theme.TitleColor)

	composer := tview.NewInputField().
		SetLabel(" > ").
		SetFieldWidth(0)
	composer.SetBorder(true)
	composer.SetBorderColor(theme.BorderColor)
	composer.SetBackgroundColor(theme.BgColor)
	composer.SetFieldBackgroundColor(theme.BgColor)
	composer.SetFieldTextColor(theme.FgColor)
	composer.SetLabelColor(theme.MenuKeyColor)
	composer.SetTitle(" Compose (i to focus) ")
	composer.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(messages, 0, 1, true).
		AddItem(composer, 3, 0, false)

	mt := &MessageThread{
		Flex:     flex,
		theme:    theme,
		messages: messages,
		composer: composer,
	}

	composer.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && mt.onSend != nil {
			text := composer.GetText()
			if text != "" {
				composer.SetText("")
				mt.onSend(text)
			}
		}
	})

	return mt
}

// Name implements Component.
func (mt *MessageThread) Name() string {
	if mt.contactName != "" {
		return mt.contactName
	}
	return "Messages"
}

// Init implements Component.
func (mt *MessageThread) Init() {}

// Start implements Component.
func (mt *MessageThread) Start() {}

// Stop implements Component.
func (mt *MessageThread) Stop() {}

// Hints implements Component.
func (mt *MessageThread) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "i", Description: "Compose"},
		{Key: "Esc", Description: "Back"},
		{Key: ":", Description: "Command"},
		{Key: "?", Description: "Help"},
	}
}

// SetContact updates the conversation partner shown in the title.
func (mt *MessageThread) SetContact(id int64, name string) {
	mt.contactID = id
	mt.contactName = name
	mt.messages.SetTitle(fmt.Sprintf(" %s ", name))
}

// ContactID returns the open conversation's contact id.
func (mt *MessageThread) ContactID() int64 {
	return mt.contactID
}

// SetUserID sets the logged-in user's id so own messages render as "You".
func (mt *MessageThread) SetUserID(id int64) {
	mt.userID = id
}

// SetOnSend sets the callback invoked with the composer text on Enter. The
// field is cleared before the callback runs; on a failed send the caller
// puts the draft back with RestoreDraft.
func (mt *MessageThread) SetOnSend(fn func(text string)) {
	mt.onSend = fn
}

// RestoreDraft puts a failed send's text back into the composer unchanged.
func (mt *MessageThread) RestoreDraft(text string) {
	mt.composer.SetText(text)
}

// Update refreshes the view. Messages arrive oldest first.
func (mt *MessageThread) Update(msgs []model.Message) {
	mt.messages.Clear()

	for _, m := range msgs {
		sender := mt.contactName
		if m.SenderID == mt.userID {
			sender = "You"
		}

		ts := formatTimestamp(m.Timestamp)
		line := fmt.Sprintf("[::b]%s[-:-:-] [::d]%s[-:-:-]\n%s\n\n",
			tview.Escape(sanitizeForTerminal(sender)), ts,
			tview.Escape(sanitizeForTerminal(m.Text)))
		_, _ = fmt.Fprint(mt.messages, line)
	}

	mt.messages.ScrollToEnd()
}

// Messages returns the messages text view (for focus management).
func (mt *MessageThread) Messages() *tview.TextView {
	return mt.messages
}

// Composer returns the composer input field (for focus management).
func (mt *MessageThread) Composer() *tview.InputField {
	return mt.composer
}

// formatTimestamp renders an ISO 8601 stamp as clock time for today and
// month/day otherwise. Unparseable stamps pass through untouched.
func formatTimestamp(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	t = t.Local()
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("01/02")
}

package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/rivo/tview"
)

// FlashLevel is the severity of a flash notification.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// Errors linger longest so a failed action is not missed while the user is
// typing elsewhere.
var flashTTL = map[FlashLevel]time.Duration{
	FlashInfo: 5 * time.Second,
	FlashWarn: 8 * time.Second,
	FlashErr:  10 * time.Second,
}

// FlashMessage is one transient notification.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel holds the latest notification. A newer message replaces the
// current one regardless of level; the 1s UI tick polls GetMessage and the
// bar goes blank once the message expires.
type FlashModel struct {
	mu      sync.RWMutex
	current FlashMessage
}

// NewFlashModel creates an empty flash model.
func NewFlashModel() *FlashModel {
	return &FlashModel{}
}

// Info flashes an informational message.
func (f *FlashModel) Info(msg string) {
	f.set(msg, FlashInfo, flashTTL[FlashInfo])
}

// Warn flashes a warning.
func (f *FlashModel) Warn(msg string) {
	f.set(msg, FlashWarn, flashTTL[FlashWarn])
}

// Err flashes an error.
func (f *FlashModel) Err(err error) {
	f.set(err.Error(), FlashErr, flashTTL[FlashErr])
}

// Set flashes an info message with a caller-chosen lifetime, for content
// worth keeping on screen longer, like a checkout URL.
func (f *FlashModel) Set(msg string, d time.Duration) {
	f.set(msg, FlashInfo, d)
}

func (f *FlashModel) set(msg string, level FlashLevel, d time.Duration) {
	f.mu.Lock()
	f.current = FlashMessage{
		Text:    msg,
		Level:   level,
		Expires: time.Now().Add(d),
	}
	f.mu.Unlock()
}

// GetMessage returns the current message, or nil once it has expired.
func (f *FlashModel) GetMessage() *FlashMessage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if time.Now().After(f.current.Expires) {
		return nil
	}
	m := f.current
	return &m
}

// FlashBar renders the current flash message in the bottom row of the
// screen.
type FlashBar struct {
	*tview.TextView
	colors map[FlashLevel]string
}

// NewFlashBar creates the flash bar. Level colors are resolved once here.
func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &FlashBar{
		TextView: tv,
		colors: map[FlashLevel]string{
			FlashInfo: colorName(theme.FlashInfoColor),
			FlashWarn: colorName(theme.FlashWarnColor),
			FlashErr:  colorName(theme.FlashErrColor),
		},
	}
}

// Update redraws the bar; a nil message clears it.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}
	_, _ = fmt.Fprintf(fb, " [%s]%s[-]", fb.colors[msg.Level], msg.Text)
}

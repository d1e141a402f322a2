package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode selects what the prompt input is interpreted as.
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptFilter
)

var promptChrome = map[PromptMode]struct {
	label string
	title string
}{
	PromptCommand: {":", " Command "},
	PromptFilter:  {"/", " Filter "},
}

// Prompt is the command/filter input bar at the top of the screen. It is
// hidden until activated; Enter submits, Escape cancels, both clear the
// field.
type Prompt struct {
	*tview.InputField
	mode     PromptMode
	onSubmit func(mode PromptMode, text string)
	onCancel func()
}

// NewPrompt creates the prompt bar.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{
		InputField: input,
	}

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := strings.TrimSpace(p.GetText())
			p.SetText("")
			if text != "" && p.onSubmit != nil {
				p.onSubmit(p.mode, text)
			}
		case tcell.KeyEscape:
			p.SetText("")
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})

	return p
}

// SetOnSubmit registers the submit callback.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnCancel registers the cancel callback.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate clears the field and switches the prompt to the given mode.
func (p *Prompt) Activate(mode PromptMode) {
	p.mode = mode
	p.SetText("")
	chrome := promptChrome[mode]
	p.SetLabel(chrome.label)
	p.SetTitle(chrome.title)
}

// Mode returns the active prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}

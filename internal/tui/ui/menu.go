package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Menu lists the active page's keyboard shortcuts, one per line, keys
// left-aligned to a common width.
type Menu struct {
	*tview.TextView
	keyColor string
	numColor string
}

// NewMenu creates the menu hint list.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		keyColor: colorName(theme.MenuKeyColor),
		numColor: colorName(theme.NumericKeyColor),
	}
}

// Update replaces the displayed hints.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()

	width := 0
	for _, h := range hints {
		if len(h.Key) > width {
			width = len(h.Key)
		}
	}

	for _, h := range hints {
		color := m.keyColor
		if h.Numeric {
			color = m.numColor
		}
		_, _ = fmt.Fprintf(m, "[%s::b]<%-*s>[-:-:-] %s\n", color, width, h.Key, h.Description)
	}
}

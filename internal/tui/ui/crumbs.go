package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumbs renders the page stack as a breadcrumb trail, active page last.
type Crumbs struct {
	*tview.TextView

	activeFg, activeBg     string
	inactiveFg, inactiveBg string
}

// NewCrumbs creates the breadcrumb bar. Color names are resolved once here;
// Update runs on every navigation.
func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		TextView:   tv,
		activeFg:   colorName(theme.CrumbActiveFg),
		activeBg:   colorName(theme.CrumbActiveBg),
		inactiveFg: colorName(theme.CrumbInactiveFg),
		inactiveBg: colorName(theme.CrumbInactiveBg),
	}
}

// Update redraws the trail for the given stack, bottom of the stack first.
func (c *Crumbs) Update(stack []string) {
	c.Clear()

	var b strings.Builder
	for i, name := range stack {
		if i > 0 {
			b.WriteString(" › ")
		}
		if i == len(stack)-1 {
			fmt.Fprintf(&b, "[%s:%s:b] %s [-:-:-]", c.activeFg, c.activeBg, name)
		} else {
			fmt.Fprintf(&b, "[%s:%s:] %s [-:-:-]", c.inactiveFg, c.inactiveBg, name)
		}
	}
	_, _ = fmt.Fprint(c, b.String())
}

// colorName returns a tview color tag for the given color, falling back to
// the hex form for colors tcell has no name for.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

package ui

// MenuHint is one keyboard shortcut entry for the menu bar. Numeric marks
// the 0-9 jump shortcuts, which render in their own color.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool
}

// Component is implemented by every page the app can show. Start and Stop
// bracket the time a page spends on top of the stack; Hints feeds the menu
// bar while it is there.
type Component interface {
	Name() string
	Init()
	Start()
	Stop()
	Hints() []MenuHint
}

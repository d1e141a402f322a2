package ui

import "github.com/rivo/tview"

// Pages manages the page stack on top of tview.Pages. Navigation is
// push/pop; pushing a page that is already on the stack unwinds back to it
// instead of stacking a duplicate.
type Pages struct {
	*tview.Pages
	stack    []string
	onChange func(stack []string)
}

// NewPages creates an empty page stack.
func NewPages() *Pages {
	return &Pages{
		Pages: tview.NewPages(),
	}
}

// SetOnChange registers a callback invoked after every stack change with a
// copy of the new stack.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push shows the named page on top of the stack. If the page is already
// somewhere on the stack the pages above it are discarded instead.
func (p *Pages) Push(name string) {
	for i, n := range p.stack {
		if n == name {
			p.unwindTo(i)
			return
		}
	}

	if top := p.top(); top != "" {
		p.HidePage(top)
	}
	p.stack = append(p.stack, name)
	p.show(name)
	p.notify()
}

// Pop hides the top page and reveals the one beneath it. Returns the popped
// page name, or empty when the stack is already empty.
func (p *Pages) Pop() string {
	top := p.top()
	if top == "" {
		return ""
	}
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	if next := p.top(); next != "" {
		p.show(next)
	}
	p.notify()
	return top
}

// Current returns the top page name, or empty.
func (p *Pages) Current() string {
	return p.top()
}

// Stack returns a copy of the stack, bottom first.
func (p *Pages) Stack() []string {
	s := make([]string, len(p.stack))
	copy(s, p.stack)
	return s
}

// Depth returns how many pages are stacked.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset drops the whole stack and shows only the named page. Used when the
// navigation root changes, login to main and back.
func (p *Pages) Reset(name string) {
	for _, n := range p.stack {
		p.HidePage(n)
	}
	p.stack = []string{name}
	p.show(name)
	p.notify()
}

func (p *Pages) unwindTo(i int) {
	for _, n := range p.stack[i:] {
		p.HidePage(n)
	}
	p.stack = p.stack[:i+1]
	p.show(p.stack[i])
	p.notify()
}

func (p *Pages) top() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

func (p *Pages) show(name string) {
	p.ShowPage(name)
	p.SendToFront(name)
}

func (p *Pages) notify() {
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}

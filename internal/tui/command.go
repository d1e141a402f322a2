package tui

import "strings"

// Command is a parsed prompt command. Args carries everything after the
// verb, trimmed but otherwise untouched so paths with spaces survive.
type Command struct {
	Name string
	Args string
}

// ParseCommand splits prompt input (without the leading ':') into a verb
// and its argument string. The verb is lowercased; aliases are resolved by
// the dispatcher, not here.
func ParseCommand(input string) Command {
	name, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	return Command{
		Name: strings.ToLower(name),
		Args: strings.TrimSpace(rest),
	}
}

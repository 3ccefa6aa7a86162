// Package commands provides the Command type saved by the user and the
// read-only Registry built from one load of the command file.
package commands

import (
	"fmt"
	"strings"
)

// Command is a named script plus arguments the user can trigger.
// ID is assigned at load time from the position in the file and is never persisted.
type Command struct {
	ID     string
	Name   string
	Script string
	Args   []string
}

// IsBlank reports whether c is the placeholder row the editor keeps at the end of the list.
func (c Command) IsBlank() bool {
	return c.Name == "" && c.Script == "" && len(c.Args) == 0
}

// Argv returns the argument vector used to launch the command: script first, then args.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Script)
	return append(argv, c.Args...)
}

// Clone returns a copy that shares no memory with c.
func (c Command) Clone() Command {
	c.Args = append([]string(nil), c.Args...)
	return c
}

// ParseArgs splits a comma separated string into trimmed, non-empty arguments.
func ParseArgs(s string) []string {
	args := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			args = append(args, part)
		}
	}
	return args
}

// FormatArgs is the inverse of ParseArgs used when showing args in an edit field.
func FormatArgs(args []string) string {
	return strings.Join(args, ", ")
}

// UnknownCommandError is returned when a name lookup finds nothing.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %q", e.Name)
}

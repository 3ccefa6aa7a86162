package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/store"
)

// ErrIndexOutOfRange is returned for edits to a row that does not exist.
var ErrIndexOutOfRange = errors.New("command index out of range")

// Field is an editable column of a command row.
type Field string

const (
	FieldName   Field = "name"
	FieldScript Field = "script"
	FieldArgs   Field = "args"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldScript, FieldArgs:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field %q (want name, script or args)", s)
	}
}

// Editor is the in-memory command list behind the preferences page.
// Every mutation is saved immediately; a failed save keeps the in-memory state.
type Editor struct {
	store    *store.Store
	path     string
	commands []commands.Command
}

// NewEditor loads the command file at path.
func NewEditor(st *store.Store, path string) *Editor {
	e := &Editor{store: st}
	e.SetPath(path)
	return e
}

// Path returns the command file path as configured, before ~ expansion.
func (e *Editor) Path() string {
	return e.path
}

// SetPath switches to another command file and loads it, replacing the list.
func (e *Editor) SetPath(path string) {
	e.path = path
	e.Reload()
}

// Reload rereads the command file. Ids are reassigned by position.
func (e *Editor) Reload() {
	e.commands, _ = e.store.Load(e.path)
}

// Commands returns a copy of the current list.
func (e *Editor) Commands() []commands.Command {
	out := make([]commands.Command, len(e.commands))
	for i, cmd := range e.commands {
		out[i] = cmd.Clone()
	}
	return out
}

// Rows returns the list with one blank row at the end for adding a command.
func (e *Editor) Rows() []commands.Command {
	rows := e.Commands()
	if len(rows) == 0 || !rows[len(rows)-1].IsBlank() {
		rows = append(rows, commands.Command{ID: store.FreeID(rows), Args: []string{}})
	}
	return rows
}

// Registry builds a registry of the non-blank commands.
func (e *Editor) Registry() *commands.Registry {
	return commands.NewRegistry(slices.DeleteFunc(e.Commands(), commands.Command.IsBlank))
}

// Add appends a blank command and saves.
func (e *Editor) Add() (commands.Command, error) {
	cmd := commands.Command{ID: store.FreeID(e.commands), Args: []string{}}
	e.commands = append(e.commands, cmd)
	return cmd, e.save()
}

// Remove deletes the command at index and saves.
func (e *Editor) Remove(index int) error {
	if index < 0 || index >= len(e.commands) {
		return fmt.Errorf("remove %d: %w", index, ErrIndexOutOfRange)
	}
	e.commands = slices.Delete(e.commands, index, index+1)
	return e.save()
}

// Edit sets one field of the command at index and saves.
// Args are given as a comma separated string.
func (e *Editor) Edit(index int, field Field, value string) error {
	if index < 0 || index >= len(e.commands) {
		return fmt.Errorf("edit %d: %w", index, ErrIndexOutOfRange)
	}

	cmd := &e.commands[index]
	switch field {
	case FieldName:
		cmd.Name = value
	case FieldScript:
		cmd.Script = value
	case FieldArgs:
		cmd.Args = commands.ParseArgs(value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return e.save()
}

func (e *Editor) save() error {
	return e.store.Save(e.path, e.commands)
}

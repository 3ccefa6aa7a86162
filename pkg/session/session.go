// Package session models one showing of the palette overlay and the command editor.
// A Session is owned by a single UI event loop and is not safe for concurrent use.
package session

import (
	"github.com/lvim-tech/qp/internal/logging"
	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/executor"
	"github.com/lvim-tech/qp/pkg/selection"
	"github.com/lvim-tech/qp/pkg/suggest"
)

// Key is a key the overlay intercepts. Everything else is KeyOther.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyEscape
	KeyUp
	KeyDown
)

// Propagation tells the host whether the input field should still see the key.
type Propagation int

const (
	Propagate Propagation = iota
	Stop
)

// Runner launches a command.
type Runner interface {
	Execute(cmd commands.Command) executor.Result
}

// Reporter receives non-fatal diagnostics.
type Reporter interface {
	Report(err error)
}

// Session holds the text, suggestions and selection of the visible overlay.
type Session struct {
	registry  *commands.Registry
	selection *selection.Controller
	runner    Runner
	reporter  Reporter

	text      string
	deferred  []func()
	dismissed bool
}

// New creates a session showing every command of reg.
func New(reg *commands.Registry, runner Runner, reporter Reporter) *Session {
	s := &Session{
		registry:  reg,
		selection: selection.New(),
		runner:    runner,
		reporter:  reporter,
	}
	s.Show()
	return s
}

// Show resets the session for a fresh overlay.
func (s *Session) Show() {
	s.dismissed = false
	s.deferred = nil
	s.OnTextChanged("")
}

// SetRegistry swaps in a newly loaded registry and recomputes suggestions for the current text.
func (s *Session) SetRegistry(reg *commands.Registry) {
	s.registry = reg
	s.OnTextChanged(s.text)
}

// OnTextChanged recomputes the suggestions for text and clears the selection.
func (s *Session) OnTextChanged(text string) []commands.Command {
	s.text = text
	matches := suggest.Suggest(text, s.registry)
	s.selection.SetSuggestions(matches)
	return matches
}

// OnKey handles the intercepted keys. Enter without a highlighted row does not act
// immediately: it queues the lookup of the typed text, which the host must run with
// RunDeferred once the key event has finished propagating.
func (s *Session) OnKey(key Key) Propagation {
	switch key {
	case KeyEnter:
		if cmd, ok := s.selection.Current(); ok {
			s.runner.Execute(cmd)
			s.dismiss()
			return Stop
		}
		s.deferred = append(s.deferred, s.confirmText)
		return Stop

	case KeyEscape:
		s.dismiss()
		return Stop

	case KeyUp:
		s.selection.MoveUp()
		return Stop

	case KeyDown:
		s.selection.MoveDown()
		return Stop

	default:
		return Propagate
	}
}

// HasDeferred reports whether RunDeferred has work queued.
func (s *Session) HasDeferred() bool {
	return len(s.deferred) > 0
}

// RunDeferred runs the work queued by OnKey.
func (s *Session) RunDeferred() {
	tasks := s.deferred
	s.deferred = nil
	for _, task := range tasks {
		task()
	}
}

func (s *Session) confirmText() {
	cmd, err := s.selection.Confirm(s.text, s.registry)
	if err != nil {
		s.report(err)
	} else {
		s.runner.Execute(cmd)
	}
	s.dismiss()
}

// OnSuggestionClicked runs the clicked suggestion immediately and dismisses the overlay.
func (s *Session) OnSuggestionClicked(id string) error {
	for _, cmd := range s.selection.Suggestions() {
		if cmd.ID == id {
			s.text = cmd.Name
			s.runner.Execute(cmd)
			s.dismiss()
			return nil
		}
	}
	err := &commands.UnknownCommandError{Name: id}
	s.report(err)
	return err
}

func (s *Session) dismiss() {
	s.selection.Cancel()
	s.deferred = nil
	s.text = ""
	s.dismissed = true
}

func (s *Session) report(err error) {
	if s.reporter != nil {
		s.reporter.Report(err)
		return
	}
	logging.Warn().Err(err).Msg("palette")
}

// Text returns the current input text.
func (s *Session) Text() string { return s.text }

// Suggestions returns the suggestions for the current text.
func (s *Session) Suggestions() []commands.Command { return s.selection.Suggestions() }

// Selected returns the highlighted index, or selection.None.
func (s *Session) Selected() int { return s.selection.Selected() }

// Dismissed reports whether the overlay should be hidden.
func (s *Session) Dismissed() bool { return s.dismissed }

// Package executor launches resolved commands as detached processes.
// Launches never block on the child; the exit status is delivered on an optional channel.
package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lvim-tech/qp/internal/logging"
	"github.com/lvim-tech/qp/pkg/commands"
)

// ErrEmptyScript is wrapped by a LaunchError for commands without a script.
var ErrEmptyScript = errors.New("command has no script")

// LaunchError means the process could not be started.
type LaunchError struct {
	Name   string
	Script string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %q (%s): %v", e.Name, e.Script, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Notifier shows user-visible messages and non-fatal errors.
type Notifier interface {
	Notify(title, message string)
	Report(err error)
}

// Exit is the final status of a launched process.
type Exit struct {
	Code int
	Err  error
}

// Result describes one launch.
type Result struct {
	Success bool
	Error   error
	PID     int
	// Done receives one Exit when the process ends and is then closed.
	// Nil when the launch failed. Reading it is optional.
	Done <-chan Exit
}

// Executor starts commands through a Spawner.
type Executor struct {
	spawner  Spawner
	notifier Notifier
}

// New creates an Executor.
func New(spawner Spawner, notifier Notifier) *Executor {
	return &Executor{spawner: spawner, notifier: notifier}
}

// Execute launches [script, args...] and returns as soon as the process has started.
func (e *Executor) Execute(cmd commands.Command) Result {
	if strings.TrimSpace(cmd.Script) == "" {
		return e.fail(&LaunchError{Name: cmd.Name, Script: cmd.Script, Err: ErrEmptyScript})
	}

	proc, err := e.spawner.Spawn(cmd.Argv())
	if err != nil {
		return e.fail(&LaunchError{Name: cmd.Name, Script: cmd.Script, Err: err})
	}

	done := make(chan Exit, 1)
	go func() {
		exit := exitOf(proc.Wait())
		logging.Debug().Str("command", cmd.Name).Int("pid", proc.Pid()).Int("code", exit.Code).Msg("process exited")
		done <- exit
		close(done)
	}()

	logging.Info().Str("command", cmd.Name).Strs("argv", cmd.Argv()).Int("pid", proc.Pid()).Msg("started")
	e.notifier.Notify("Executing "+cmd.Name, fmt.Sprintf("%s with args %s", cmd.Script, commands.FormatArgs(cmd.Args)))

	return Result{Success: true, PID: proc.Pid(), Done: done}
}

// ExecuteByName runs the first command in reg whose name equals name exactly.
func (e *Executor) ExecuteByName(name string, reg *commands.Registry) Result {
	cmd, err := reg.ByName(name)
	if err != nil {
		return e.fail(err)
	}
	return e.Execute(cmd)
}

func (e *Executor) fail(err error) Result {
	e.notifier.Report(err)
	return Result{Success: false, Error: err}
}

func exitOf(err error) Exit {
	if err == nil {
		return Exit{}
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return Exit{Code: coded.ExitCode(), Err: err}
	}
	return Exit{Code: -1, Err: err}
}

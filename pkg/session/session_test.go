package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/executor"
	"github.com/lvim-tech/qp/pkg/selection"
)

type fakeRunner struct {
	ran []commands.Command
}

func (r *fakeRunner) Execute(cmd commands.Command) executor.Result {
	r.ran = append(r.ran, cmd)
	return executor.Result{Success: true}
}

type fakeReporter struct {
	errs []error
}

func (r *fakeReporter) Report(err error) { r.errs = append(r.errs, err) }

func newSession(cmds ...commands.Command) (*Session, *fakeRunner, *fakeReporter) {
	run := &fakeRunner{}
	rep := &fakeReporter{}
	return New(commands.NewRegistry(cmds), run, rep), run, rep
}

var (
	terminal = commands.Command{ID: "cmd-0", Name: "Terminal", Script: "gnome-terminal", Args: []string{}}
	build    = commands.Command{ID: "cmd-1", Name: "Build", Script: "make", Args: []string{"-j4"}}
	gotest   = commands.Command{ID: "cmd-2", Name: "Test", Script: "go", Args: []string{"test"}}
)

func TestSession_StartsWithAllCommands(t *testing.T) {
	s, _, _ := newSession(terminal, build)
	assert.Len(t, s.Suggestions(), 2)
	assert.Equal(t, selection.None, s.Selected())
	assert.False(t, s.Dismissed())
}

func TestSession_TypeDownEnter(t *testing.T) {
	s, run, _ := newSession(terminal)

	got := s.OnTextChanged("te")
	require.Len(t, got, 1)
	assert.Equal(t, "cmd-0", got[0].ID)

	assert.Equal(t, Stop, s.OnKey(KeyDown))
	assert.Equal(t, Stop, s.OnKey(KeyEnter))

	require.Len(t, run.ran, 1)
	assert.Equal(t, []string{"gnome-terminal"}, run.ran[0].Argv())
	assert.True(t, s.Dismissed())
	assert.False(t, s.HasDeferred())
}

func TestSession_SelectionWinsOverText(t *testing.T) {
	s, run, _ := newSession(terminal, build, gotest)

	s.OnTextChanged("")
	s.OnKey(KeyDown)
	s.OnKey(KeyDown)
	s.OnKey(KeyDown)
	s.OnKey(KeyUp)
	require.Equal(t, 1, s.Selected())

	s.OnKey(KeyEnter)
	require.Len(t, run.ran, 1)
	assert.Equal(t, "Build", run.ran[0].Name)
}

func TestSession_TextChangeResetsSelection(t *testing.T) {
	s, _, _ := newSession(terminal, gotest)
	s.OnKey(KeyDown)
	require.Equal(t, 0, s.Selected())

	s.OnTextChanged("t")
	assert.Equal(t, selection.None, s.Selected())
}

func TestSession_EnterWithoutSelectionIsDeferred(t *testing.T) {
	s, run, _ := newSession(terminal, build)

	s.OnTextChanged("Bui")
	assert.Equal(t, Stop, s.OnKey(KeyEnter))
	assert.True(t, s.HasDeferred())
	assert.Empty(t, run.ran)
	assert.False(t, s.Dismissed())

	// The input field finishes the key event and reports the final text afterwards.
	s.OnTextChanged("Build")
	s.RunDeferred()

	require.Len(t, run.ran, 1)
	assert.Equal(t, "make", run.ran[0].Script)
	assert.True(t, s.Dismissed())
	assert.False(t, s.HasDeferred())
}

func TestSession_EmptyRegistryEnterReportsUnknown(t *testing.T) {
	s, run, rep := newSession()

	assert.Empty(t, s.OnTextChanged(""))
	s.OnKey(KeyEnter)
	s.RunDeferred()

	assert.Empty(t, run.ran)
	require.Len(t, rep.errs, 1)
	var unknown *commands.UnknownCommandError
	assert.True(t, errors.As(rep.errs[0], &unknown))
	assert.True(t, s.Dismissed())
}

func TestSession_DuplicateNamesFirstMatchWins(t *testing.T) {
	dup := commands.Command{ID: "cmd-1", Name: "Terminal", Script: "xterm"}
	s, run, _ := newSession(terminal, dup)

	s.OnTextChanged("Terminal")
	s.OnKey(KeyEnter)
	s.RunDeferred()

	require.Len(t, run.ran, 1)
	assert.Equal(t, "gnome-terminal", run.ran[0].Script)
}

func TestSession_EscapeDismissesAndDropsPendingWork(t *testing.T) {
	s, run, _ := newSession(terminal)

	s.OnTextChanged("Terminal")
	s.OnKey(KeyEnter)
	assert.Equal(t, Stop, s.OnKey(KeyEscape))
	s.RunDeferred()

	assert.Empty(t, run.ran)
	assert.True(t, s.Dismissed())
	assert.Equal(t, selection.None, s.Selected())
	assert.Equal(t, "", s.Text())
}

func TestSession_OtherKeysPropagate(t *testing.T) {
	s, _, _ := newSession(terminal)
	assert.Equal(t, Propagate, s.OnKey(KeyOther))
}

func TestSession_NavigationOnEmptySuggestions(t *testing.T) {
	s, _, _ := newSession(terminal)
	s.OnTextChanged("zzz")
	assert.Equal(t, Stop, s.OnKey(KeyDown))
	assert.Equal(t, Stop, s.OnKey(KeyUp))
	assert.Equal(t, selection.None, s.Selected())
}

func TestSession_OnSuggestionClicked(t *testing.T) {
	s, run, rep := newSession(terminal, build)

	s.OnTextChanged("b")
	require.NoError(t, s.OnSuggestionClicked("cmd-1"))
	require.Len(t, run.ran, 1)
	assert.Equal(t, "Build", run.ran[0].Name)
	assert.True(t, s.Dismissed())

	s.Show()
	s.OnTextChanged("b")
	err := s.OnSuggestionClicked("cmd-0")
	assert.Error(t, err, "not among the current suggestions")
	assert.Len(t, rep.errs, 1)
	assert.Len(t, run.ran, 1)
}

func TestSession_SetRegistryReplacesWholesale(t *testing.T) {
	s, _, _ := newSession(terminal)
	s.OnTextChanged("t")
	s.OnKey(KeyDown)

	s.SetRegistry(commands.NewRegistry([]commands.Command{gotest, terminal}))

	assert.Equal(t, selection.None, s.Selected())
	assert.Equal(t, "t", s.Text())
	require.Len(t, s.Suggestions(), 2)
	assert.Equal(t, "Test", s.Suggestions()[0].Name)
}

func TestSession_ShowResets(t *testing.T) {
	s, _, _ := newSession(terminal, build)
	s.OnTextChanged("b")
	s.OnKey(KeyEscape)

	s.Show()
	assert.False(t, s.Dismissed())
	assert.Len(t, s.Suggestions(), 2)
	assert.Equal(t, selection.None, s.Selected())
}

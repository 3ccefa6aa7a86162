package launcher

import (
	"errors"
	"runtime"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qp/pkg/config"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.Launchers.Rofi.Args = []string{"-i"}

	for _, name := range Names {
		l, err := New(name, cfg)
		require.NoError(t, err, name)
		assert.Equal(t, name, l.Name())
	}

	l, err := New("rofi", cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"-i"}, l.(*Pipe).Args())

	_, err = New("wofi", cfg)
	assert.True(t, errors.Is(err, ErrUnknownLauncher))
}

func TestPromptArgs(t *testing.T) {
	assert.Equal(t, []string{"-p", "qp", "-dmenu"}, NewRofi(nil).prompt("qp"))
	assert.Equal(t, []string{"-p", "qp"}, NewDmenu(nil).prompt("qp"))
	assert.Equal(t, []string{"--prompt", "qp> "}, NewFzf(nil).prompt("qp"))
}

func TestPipe_Show(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}

	choice, err := NewPipe("second", "sh", []string{"-c", "sed -n 2p"}).Show([]string{"Terminal", "Build", "Test"}, "qp")
	require.NoError(t, err)
	assert.Equal(t, "Build", choice)

	_, err = NewPipe("esc", "sh", []string{"-c", "exit 1"}).Show([]string{"a"}, "qp")
	assert.True(t, IsCancelled(err))

	_, err = NewPipe("empty", "sh", []string{"-c", "cat >/dev/null"}).Show([]string{"a"}, "qp")
	assert.True(t, IsCancelled(err))

	_, err = NewPipe("broken", "sh", []string{"-c", "exit 2"}).Show([]string{"a"}, "qp")
	require.Error(t, err)
	assert.False(t, IsCancelled(err))
}

func TestFinder_Show(t *testing.T) {
	f := &Finder{find: func(options []string, prompt string) (int, error) {
		assert.Equal(t, "qp", prompt)
		return 1, nil
	}}
	choice, err := f.Show([]string{"Terminal", "Build"}, "qp")
	require.NoError(t, err)
	assert.Equal(t, "Build", choice)

	f.find = func([]string, string) (int, error) { return 0, fuzzyfinder.ErrAbort }
	_, err = f.Show([]string{"Terminal"}, "qp")
	assert.True(t, IsCancelled(err))

	_, err = f.Show(nil, "qp")
	assert.True(t, IsCancelled(err))
}

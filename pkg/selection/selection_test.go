package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qp/pkg/commands"
)

func list(n int) []commands.Command {
	cmds := make([]commands.Command, n)
	for i := range cmds {
		cmds[i] = commands.Command{ID: "cmd-" + string(rune('0'+i)), Name: string(rune('a' + i)), Script: "true"}
	}
	return cmds
}

func TestController_StartsWithNoSelection(t *testing.T) {
	c := New()
	assert.Equal(t, None, c.Selected())
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestController_MoveDownClamps(t *testing.T) {
	for k := 1; k <= 4; k++ {
		for n := 0; n <= 6; n++ {
			c := New()
			c.SetSuggestions(list(k))
			for i := 0; i < n; i++ {
				c.MoveDown()
			}
			// The first Down from None lands on row 0.
			want := min(n-1, k-1)
			if n == 0 {
				want = None
			}
			assert.Equal(t, want, c.Selected(), "k=%d n=%d", k, n)

			for i := 0; i < n+2; i++ {
				c.MoveUp()
				assert.GreaterOrEqual(t, c.Selected(), 0)
				assert.LessOrEqual(t, c.Selected(), k-1)
			}
			assert.Equal(t, 0, c.Selected())
		}
	}
}

func TestController_FirstUpLandsOnFirstRow(t *testing.T) {
	c := New()
	c.SetSuggestions(list(3))
	c.MoveUp()
	assert.Equal(t, 0, c.Selected())
}

func TestController_EmptyListIgnoresNavigation(t *testing.T) {
	c := New()
	c.SetSuggestions(nil)
	c.MoveDown()
	c.MoveUp()
	assert.Equal(t, None, c.Selected())
}

func TestController_SetSuggestionsResets(t *testing.T) {
	c := New()
	c.SetSuggestions(list(3))
	c.MoveDown()
	c.MoveDown()
	require.Equal(t, 1, c.Selected())

	c.SetSuggestions(list(2))
	assert.Equal(t, None, c.Selected())
}

func TestController_ConfirmPrefersSelection(t *testing.T) {
	reg := commands.NewRegistry(list(3))
	c := New()
	c.SetSuggestions(reg.All()[1:])
	c.MoveDown()

	cmd, err := c.Confirm("a", reg)
	require.NoError(t, err)
	assert.Equal(t, "b", cmd.Name)
}

func TestController_ConfirmFallsBackToExactName(t *testing.T) {
	reg := commands.NewRegistry(list(3))
	c := New()
	c.SetSuggestions(reg.All())

	cmd, err := c.Confirm("c", reg)
	require.NoError(t, err)
	assert.Equal(t, "cmd-2", cmd.ID)

	_, err = c.Confirm("", reg)
	var unknown *commands.UnknownCommandError
	assert.True(t, errors.As(err, &unknown))
}

func TestController_Cancel(t *testing.T) {
	c := New()
	c.SetSuggestions(list(2))
	c.MoveDown()
	c.Cancel()
	assert.Equal(t, None, c.Selected())
}

// Package selection tracks which suggestion is highlighted and resolves a confirm
// to the command that should run.
package selection

import (
	"github.com/lvim-tech/qp/pkg/commands"
)

// None is the index when nothing is highlighted.
const None = -1

// Controller holds the current suggestions and the highlighted index.
type Controller struct {
	suggestions []commands.Command
	selected    int
}

// New returns a controller with no suggestions and no selection.
func New() *Controller {
	return &Controller{selected: None}
}

// SetSuggestions replaces the suggestion list and clears the selection.
func (c *Controller) SetSuggestions(s []commands.Command) {
	c.suggestions = s
	c.selected = None
}

// Suggestions returns the current suggestion list.
func (c *Controller) Suggestions() []commands.Command {
	return c.suggestions
}

// Selected returns the highlighted index or None.
func (c *Controller) Selected() int {
	return c.selected
}

// MoveUp moves the highlight one row up, stopping at the first row.
// From no selection it lands on the first row.
func (c *Controller) MoveUp() {
	if len(c.suggestions) == 0 {
		return
	}
	c.selected = max(0, c.selected-1)
}

// MoveDown moves the highlight one row down, stopping at the last row.
func (c *Controller) MoveDown() {
	if len(c.suggestions) == 0 {
		return
	}
	c.selected = min(len(c.suggestions)-1, c.selected+1)
}

// Current returns the highlighted command, if any.
func (c *Controller) Current() (commands.Command, bool) {
	if c.selected == None || c.selected >= len(c.suggestions) {
		return commands.Command{}, false
	}
	return c.suggestions[c.selected], true
}

// Confirm resolves what Enter should run. A highlighted suggestion always wins;
// otherwise text is looked up by exact name in reg.
func (c *Controller) Confirm(text string, reg *commands.Registry) (commands.Command, error) {
	if cmd, ok := c.Current(); ok {
		return cmd, nil
	}
	return reg.ByName(text)
}

// Cancel clears the selection.
func (c *Controller) Cancel() {
	c.selected = None
}

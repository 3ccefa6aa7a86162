// Package suggest filters the registry down to the commands matching typed input.
package suggest

import (
	"strings"

	"github.com/lvim-tech/qp/pkg/commands"
)

// Suggest returns the commands whose name starts with query, ignoring case, in registry order.
// An empty query returns every command.
func Suggest(query string, reg *commands.Registry) []commands.Command {
	all := reg.All()
	if query == "" {
		// Ranking by history or frequency would plug in here.
		return all
	}

	prefix := strings.ToLower(query)
	matches := make([]commands.Command, 0, len(all))
	for _, cmd := range all {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

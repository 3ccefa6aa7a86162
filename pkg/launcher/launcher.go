// Package launcher provides an abstraction layer for menu programs that let the user
// pick one of the saved commands by name. It supports rofi, dmenu, fzf, bemenu and fuzzel
// through their stdin/stdout protocol, plus an in-process fuzzy finder.
package launcher

import (
	"fmt"

	"github.com/lvim-tech/qp/pkg/config"
)

// Launcher shows options and returns the chosen (or typed) line.
type Launcher interface {
	Name() string
	Show(options []string, prompt string) (string, error)
}

// Names lists the launchers New accepts.
var Names = []string{"finder", "rofi", "dmenu", "fzf", "bemenu", "fuzzel"}

// New creates the launcher called name with its args from cfg.
func New(name string, cfg *config.Config) (Launcher, error) {
	var args []string
	if lc := cfg.GetLauncherCommand(name); lc != nil {
		args = lc.Args
	}

	switch name {
	case "finder":
		return NewFinder(), nil
	case "rofi":
		return NewRofi(args), nil
	case "dmenu":
		return NewDmenu(args), nil
	case "fzf":
		return NewFzf(args), nil
	case "bemenu":
		return NewBemenu(args), nil
	case "fuzzel":
		return NewFuzzel(args), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLauncher, name)
	}
}

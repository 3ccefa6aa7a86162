package launcher

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Pipe runs a menu program that reads options from stdin and prints the choice on stdout.
type Pipe struct {
	name    string
	command string
	args    []string
	// prompt returns the arguments that set the prompt text.
	prompt func(string) []string
	// stderr is attached for terminal menus like fzf that draw on it.
	stderr bool
}

// NewPipe creates a Pipe launcher for any dmenu-compatible program.
func NewPipe(name, command string, args []string) *Pipe {
	return &Pipe{name: name, command: command, args: args, prompt: func(string) []string { return nil }}
}

func (p *Pipe) Name() string {
	return p.name
}

func (p *Pipe) Args() []string {
	return p.args
}

func (p *Pipe) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, p.args...)
	args = append(args, p.prompt(prompt)...)

	cmd := exec.Command(p.command, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	if p.stderr {
		cmd.Stderr = os.Stderr
	}

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 1 || exitErr.ExitCode() == 130) {
			return "", ErrCancelled
		}
		return "", err
	}

	result, _, _ := strings.Cut(string(output), "\n")
	result = strings.TrimSpace(result)
	if result == "" {
		return "", ErrCancelled
	}

	return result, nil
}

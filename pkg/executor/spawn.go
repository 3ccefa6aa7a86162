package executor

import (
	"errors"
	"os"
	"os/exec"
)

// Process is a started child process.
type Process interface {
	Pid() int
	Wait() error
}

// Spawner starts argv[0] with the remaining arguments without waiting for it.
type Spawner interface {
	Spawn(argv []string) (Process, error)
}

// ExecSpawner starts real OS processes. A script without a path separator is
// looked up in PATH. The child gets its own process group so it outlives qp.
type ExecSpawner struct {
	// Env overrides the environment; nil inherits os.Environ().
	Env []string
	// Dir is the working directory; empty means the home directory.
	Dir string
}

// Spawn implements Spawner.
func (s ExecSpawner) Spawn(argv []string) (Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = s.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Dir = s.Dir
	if cmd.Dir == "" {
		cmd.Dir, _ = os.UserHomeDir()
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int    { return p.cmd.Process.Pid }
func (p *execProcess) Wait() error { return p.cmd.Wait() }

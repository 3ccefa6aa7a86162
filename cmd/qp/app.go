package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lvim-tech/qp/internal/logging"
	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/config"
	"github.com/lvim-tech/qp/pkg/executor"
	"github.com/lvim-tech/qp/pkg/launcher"
	"github.com/lvim-tech/qp/pkg/session"
	"github.com/lvim-tech/qp/pkg/store"
	"github.com/lvim-tech/qp/pkg/ui"
	"github.com/lvim-tech/qp/pkg/utils"
)

// app wires settings, the command store and the executor for one qp invocation.
type app struct {
	cfg          *config.Config
	settingsPath string
	notifier     *utils.Notifier
	store        *store.Store
	exec         *executor.Executor
}

func newApp(settingsPath, commandsPath string) (*app, error) {
	cfg, err := config.LoadFrom(settingsPath, config.GetSystemConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if commandsPath != "" {
		cfg.ConfigPath = commandsPath
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logging.Init(logCfg)

	notifier := utils.NewNotifier(cfg.Notifications)
	return &app{
		cfg:          cfg,
		settingsPath: settingsPath,
		notifier:     notifier,
		store:        store.New(store.WithReporter(notifier)),
		exec:         executor.New(executor.ExecSpawner{}, notifier),
	}, nil
}

func (a *app) registry() *commands.Registry {
	cmds, _ := a.store.Load(a.cfg.ConfigPath)
	return commands.NewRegistry(cmds)
}

func (a *app) editor() *session.Editor {
	return session.NewEditor(a.store, a.cfg.ConfigPath)
}

// runLauncher shows the palette with the named launcher and runs the choice.
func (a *app) runLauncher(ctx context.Context, name string) error {
	if name == "" || name == "tui" {
		return a.runTUI(ctx)
	}

	l, err := launcher.New(name, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to create launcher: %w", err)
	}

	reg := a.registry()
	choice, err := l.Show(reg.Names(), "qp")
	if err != nil {
		if launcher.IsCancelled(err) {
			return nil
		}
		return fmt.Errorf("%s: %w", l.Name(), err)
	}

	// Unknown names are reported by the executor; a typed miss is not a CLI failure.
	a.exec.ExecuteByName(choice, reg)
	return nil
}

func (a *app) runTUI(ctx context.Context) error {
	s := session.New(a.registry(), a.exec, a.notifier)
	p := tea.NewProgram(ui.New(s, a.cfg.Shortcut),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	w, err := a.store.Watch(ctx, a.cfg.ConfigPath, store.DefaultDebounce, func() {
		p.Send(ui.ReloadMsg{Registry: a.registry()})
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", a.cfg.ConfigPath).Msg("not watching command file")
	} else {
		defer w.Close()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/config"
	"github.com/lvim-tech/qp/pkg/launcher"
	"github.com/lvim-tech/qp/pkg/session"
	"github.com/lvim-tech/qp/pkg/suggest"
)

var version = "0.1.0"

type rootOptions struct {
	settingsPath string
	commandsPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "qp",
		Short: "qp - Quick Palette: run saved commands by name",
		Long: "qp keeps a list of named commands in a JSON file and lets you pick one\n" +
			"by typing a prefix of its name, then launches it in the background.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			return a.runLauncher(cmd.Context(), a.cfg.DefaultLauncher)
		},
	}

	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", config.GetUserConfigPath(), "settings file")
	root.PersistentFlags().StringVarP(&opts.commandsPath, "commands", "c", "", "command file (overrides config_path)")

	root.AddCommand(
		newMenuCmd(opts),
		newExecCmd(opts),
		newListCmd(opts),
		newSuggestCmd(opts),
		newAddCmd(opts),
		newRemoveCmd(opts),
		newEditCmd(opts),
		newSettingsCmd(opts),
		newInitCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "qp version %s\n", version)
			},
		},
	)

	return root
}

func newMenuCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "menu [launcher]",
		Short:     "Pick a command with tui or an external menu",
		Long:      "Available launchers: tui, " + strings.Join(launcher.Names, ", "),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: append([]string{"tui"}, launcher.Names...),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			name := a.cfg.DefaultLauncher
			if len(args) == 1 {
				name = args[0]
			}
			return a.runLauncher(cmd.Context(), name)
		},
	}
}

func newExecCmd(opts *rootOptions) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "exec <name>",
		Short: "Run the command with this exact name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}

			res := a.exec.ExecuteByName(args[0], a.registry())
			if !res.Success {
				return res.Error
			}
			if !wait {
				return nil
			}

			exit := <-res.Done
			if exit.Code != 0 {
				return fmt.Errorf("%s exited with status %d", args[0], exit.Code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "wait for the command to exit and return its status")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			printCommands(cmd, a.registry().All())
			return nil
		},
	}
}

func newSuggestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [prefix]",
		Short: "Show the commands whose name starts with prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			printCommands(cmd, suggest.Suggest(query, a.registry()))
			return nil
		},
	}
}

func printCommands(cmd *cobra.Command, cmds []commands.Command) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, c := range cmds {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, strings.Join(c.Argv(), " "))
	}
	w.Flush()
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var name, script, args string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}

			ed := a.editor()
			if _, err := ed.Add(); err != nil {
				return err
			}
			i := len(ed.Commands()) - 1
			for _, f := range []struct {
				field session.Field
				value string
			}{
				{session.FieldName, name},
				{session.FieldScript, script},
				{session.FieldArgs, args},
			} {
				if err := ed.Edit(i, f.field, f.value); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&script, "script", "s", "", "executable name or path")
	cmd.Flags().StringVarP(&args, "args", "a", "", "comma separated arguments")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("script")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the command at index (0-based, as in list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			return a.editor().Remove(i)
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <name|script|args> <value>",
		Short: "Change one field of the command at index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			field, err := session.ParseField(args[1])
			if err != nil {
				return err
			}
			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			return a.editor().Edit(i, field, args[2])
		},
	}
}

// parseIndex accepts a row number or a "cmd-N" id.
func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimPrefix(s, "cmd-"))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(opts.settingsPath, config.GetSystemConfigPath())
			if err != nil {
				return err
			}
			for _, key := range config.Keys {
				v, _ := cfg.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, v)
			}
			return nil
		},
	}

	settings.AddCommand(
		&cobra.Command{
			Use:       "get <key>",
			Short:     "Print one setting",
			Args:      cobra.ExactArgs(1),
			ValidArgs: config.Keys,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadFrom(opts.settingsPath, config.GetSystemConfigPath())
				if err != nil {
					return err
				}
				v, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Change one setting and save it",
			Args:      cobra.ExactArgs(2),
			ValidArgs: config.Keys,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadFiles(opts.settingsPath, config.GetSystemConfigPath())
				if err != nil {
					return err
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return err
				}
				return cfg.Save(opts.settingsPath)
			},
		},
	)

	return settings
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the settings file and an empty command file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := config.InitUserConfig(opts.settingsPath); err != nil {
				fmt.Fprintf(out, "Settings: %v\n", err)
			} else {
				fmt.Fprintf(out, "Settings initialized at: %s\n", opts.settingsPath)
			}

			a, err := newApp(opts.settingsPath, opts.commandsPath)
			if err != nil {
				return err
			}
			path := a.store.Resolve(a.cfg.ConfigPath)
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(out, "Commands: already exist at %s\n", path)
				return nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := a.store.Save(a.cfg.ConfigPath, nil); err != nil {
				return err
			}
			fmt.Fprintf(out, "Commands initialized at: %s\n", path)
			fmt.Fprintln(out, "\nAdd one with: qp add --name Terminal --script gnome-terminal")
			return nil
		},
	}
}

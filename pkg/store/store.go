// Package store loads and saves the command list as a JSON array and assigns
// the positional ids ("cmd-N") the rest of qp refers to commands by.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/lvim-tech/qp/internal/logging"
	"github.com/lvim-tech/qp/pkg/commands"
	"github.com/lvim-tech/qp/pkg/utils"
)

// IDPrefix is the prefix of every load-time command id.
const IDPrefix = "cmd-"

// Reporter receives non-fatal diagnostics.
type Reporter interface {
	Report(err error)
}

// fileCommand is the persisted form of a command. Field order is the key order on disk.
type fileCommand struct {
	Name   string   `json:"name"`
	Script string   `json:"script"`
	Args   []string `json:"args"`
}

// Store reads and writes command files.
type Store struct {
	fs       afero.Fs
	home     string
	reporter Reporter
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithHome sets the directory a leading ~ expands to.
func WithHome(home string) Option {
	return func(s *Store) { s.home = home }
}

// WithReporter sets where diagnostics go. Defaults to the log.
func WithReporter(r Reporter) Option {
	return func(s *Store) { s.reporter = r }
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{
		fs:   afero.NewOsFs(),
		home: utils.GetHomeDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve expands a leading ~ in path.
func (s *Store) Resolve(path string) string {
	return utils.ExpandHomeDirWith(path, s.home)
}

// Load reads the command file at path and assigns ids by position, overwriting any id in the file.
// On any failure it reports the error and returns an empty, usable list alongside it.
func (s *Store) Load(path string) ([]commands.Command, error) {
	resolved := s.Resolve(path)

	data, err := afero.ReadFile(s.fs, resolved)
	if err != nil {
		return []commands.Command{}, s.report(&ConfigReadError{Path: resolved, Err: err})
	}

	data = jsonc.ToJSON(data)
	if strings.TrimSpace(string(data)) == "" {
		return []commands.Command{}, nil
	}

	var records []fileCommand
	if err := json.Unmarshal(data, &records); err != nil {
		return []commands.Command{}, s.report(&ConfigParseError{Path: resolved, Err: err})
	}

	cmds := make([]commands.Command, len(records))
	for i, rec := range records {
		args := rec.Args
		if args == nil {
			args = []string{}
		}
		cmds[i] = commands.Command{
			ID:     positionalID(i),
			Name:   rec.Name,
			Script: rec.Script,
			Args:   args,
		}
	}

	logging.Debug().Str("path", resolved).Int("commands", len(cmds)).Msg("loaded commands")
	return cmds, nil
}

// Save drops blank commands and ids, then overwrites path with pretty-printed JSON.
// A failure is reported and returned; the caller's slice is never modified.
func (s *Store) Save(path string, cmds []commands.Command) error {
	resolved := s.Resolve(path)

	records := make([]fileCommand, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.IsBlank() {
			continue
		}
		args := slices.Clone(cmd.Args)
		if args == nil {
			args = []string{}
		}
		records = append(records, fileCommand{Name: cmd.Name, Script: cmd.Script, Args: args})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return s.report(&ConfigWriteError{Path: resolved, Err: err})
	}
	data := buf.Bytes()

	if err := s.fs.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return s.report(&ConfigWriteError{Path: resolved, Err: err})
	}
	if err := afero.WriteFile(s.fs, resolved, data, 0644); err != nil {
		return s.report(&ConfigWriteError{Path: resolved, Err: err})
	}

	logging.Debug().Str("path", resolved).Int("commands", len(records)).Msg("saved commands")
	return nil
}

func (s *Store) report(err error) error {
	if s.reporter != nil {
		s.reporter.Report(err)
	} else {
		logging.Warn().Err(err).Msg("command file")
	}
	return err
}

// FreeID returns the lowest "cmd-N" not used by any command in cmds.
func FreeID(cmds []commands.Command) string {
	used := make(map[string]struct{}, len(cmds))
	for _, cmd := range cmds {
		used[cmd.ID] = struct{}{}
	}
	for n := 0; ; n++ {
		id := positionalID(n)
		if _, taken := used[id]; !taken {
			return id
		}
	}
}

func positionalID(n int) string {
	return fmt.Sprintf("%s%d", IDPrefix, n)
}

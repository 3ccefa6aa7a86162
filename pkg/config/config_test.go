package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvim-tech/qp/internal/logging"
)

func TestLoadFrom_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "<Super>space", cfg.Shortcut)
	assert.Equal(t, "~/.config/qp/commands.json", cfg.ConfigPath)
	assert.Equal(t, "tui", cfg.DefaultLauncher)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, 5000, cfg.Notifications.Timeout)
	assert.Equal(t, []string{"-i"}, cfg.Launchers.Rofi.Args)
}

func TestLoadFrom_UserOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
config_path = "/tmp/cmds.json"
default_launcher = "fzf"

[launchers.fzf]
args = ["--exact"]

[notifications]
enabled = false
`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cmds.json", cfg.ConfigPath)
	assert.Equal(t, "fzf", cfg.DefaultLauncher)
	assert.Equal(t, []string{"--exact"}, cfg.Launchers.Fzf.Args)
	assert.Equal(t, []string{"-i"}, cfg.Launchers.Dmenu.Args)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, "normal", cfg.Notifications.Urgency)
	assert.Equal(t, "<Super>space", cfg.Shortcut)
}

func TestLoadFrom_BrokenFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_launcher = ["), 0644))

	var logs bytes.Buffer
	logging.Init(logging.Config{Level: logging.WarnLevel, Output: &logs})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "tui", cfg.DefaultLauncher)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), path)
}

func TestLoadFrom_EnvWins(t *testing.T) {
	t.Setenv("QP_CONFIG_PATH", "/env/cmds.json")
	t.Setenv("QP_LAUNCHER", "rofi")

	cfg, err := LoadFrom()
	require.NoError(t, err)
	assert.Equal(t, "/env/cmds.json", cfg.ConfigPath)
	assert.Equal(t, "rofi", cfg.DefaultLauncher)
}

func TestLoadFiles_IgnoresEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`config_path = "~/file.json"`), 0644))
	t.Setenv("QP_CONFIG_PATH", "/env/cmds.json")

	cfg, err := LoadFiles(path)
	require.NoError(t, err)
	assert.Equal(t, "~/file.json", cfg.ConfigPath)

	require.NoError(t, cfg.Set("shortcut", "<Super>p"))
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/env/cmds.json")
}

func TestSetGetSave(t *testing.T) {
	cfg, err := LoadFrom()
	require.NoError(t, err)

	require.NoError(t, cfg.Set("config-path", "  ~/cmds.json "))
	require.NoError(t, cfg.Set("shortcut", "<Ctrl><Alt>p"))
	assert.Error(t, cfg.Set("colour", "red"))

	v, err := cfg.Get("config_path")
	require.NoError(t, err)
	assert.Equal(t, "~/cmds.json", v)

	path := filepath.Join(t.TempDir(), "qp", "config.toml")
	require.NoError(t, cfg.Save(path))

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "~/cmds.json", reloaded.ConfigPath)
	assert.Equal(t, "<Ctrl><Alt>p", reloaded.Shortcut)
}

func TestInitUserConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qp", "config.toml")
	require.NoError(t, InitUserConfig(path))
	assert.Error(t, InitUserConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfigData, string(data))
}

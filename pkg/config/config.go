// Package config provides settings management for qp.
// It handles loading, merging, and saving settings from the embedded defaults,
// the user or system TOML file and QP_* environment variables.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/lvim-tech/qp/internal/logging"
)

//go:embed default.toml
var defaultConfigData string

// Config holds the effective settings.
type Config struct {
	Shortcut        string             `toml:"shortcut"`
	ConfigPath      string             `toml:"config_path"`
	DefaultLauncher string             `toml:"default_launcher"`
	LogLevel        string             `toml:"log_level"`
	Launchers       LauncherConfig     `toml:"launchers"`
	Notifications   NotificationConfig `toml:"notifications"`
}

// LauncherConfig holds extra args for each external menu program.
type LauncherConfig struct {
	Dmenu  LauncherCommand `toml:"dmenu"`
	Rofi   LauncherCommand `toml:"rofi"`
	Fzf    LauncherCommand `toml:"fzf"`
	Bemenu LauncherCommand `toml:"bemenu"`
	Fuzzel LauncherCommand `toml:"fuzzel"`
}

// LauncherCommand describes how a launcher is started.
type LauncherCommand struct {
	Args []string `toml:"args"`
}

// NotificationConfig controls desktop notifications.
type NotificationConfig struct {
	Enabled        bool   `toml:"enabled"`
	Tool           string `toml:"tool"` // auto, dunstify, notify-send
	Timeout        int    `toml:"timeout"`
	Urgency        string `toml:"urgency"`
	ShowInTerminal bool   `toml:"show_in_terminal"`
}

// NotificationConfigFile is the optional-field form read from TOML.
type NotificationConfigFile struct {
	Enabled        *bool   `toml:"enabled"`
	Tool           *string `toml:"tool"`
	Timeout        *int    `toml:"timeout"`
	Urgency        *string `toml:"urgency"`
	ShowInTerminal *bool   `toml:"show_in_terminal"`
}

// ConfigFile is the optional-field form of Config read from a user or system file.
type ConfigFile struct {
	Shortcut        *string                `toml:"shortcut"`
	ConfigPath      *string                `toml:"config_path"`
	DefaultLauncher *string                `toml:"default_launcher"`
	LogLevel        *string                `toml:"log_level"`
	Launchers       LauncherConfig         `toml:"launchers"`
	Notifications   NotificationConfigFile `toml:"notifications"`
}

// envOverrides are applied last and win over every file.
type envOverrides struct {
	Shortcut   string `env:"QP_SHORTCUT"`
	ConfigPath string `env:"QP_CONFIG_PATH"`
	Launcher   string `env:"QP_LAUNCHER"`
	LogLevel   string `env:"QP_LOG_LEVEL"`
}

// GetUserConfigPath returns the path of the user settings file.
func GetUserConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "qp", "config.toml")
}

// GetSystemConfigPath returns the path of the system settings file.
func GetSystemConfigPath() string {
	return "/etc/qp/config.toml"
}

// Load reads defaults, then the user file (or the system file if there is no user file),
// then the environment.
func Load() (*Config, error) {
	return LoadFrom(GetUserConfigPath(), GetSystemConfigPath())
}

// LoadFrom is Load with explicit file locations. The first existing path is used.
// A broken settings file is logged and the defaults are kept.
func LoadFrom(paths ...string) (*Config, error) {
	cfg, err := LoadFiles(paths...)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFiles merges the defaults with the first existing file and ignores the
// environment. Use it for a config that is going to be saved back.
func LoadFiles(paths ...string) (*Config, error) {
	cfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("failed to load config, using defaults")
			break
		}
		mergeConfigs(cfg, fileCfg)
		break
	}
	return cfg, nil
}

func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overrides defaults with every value set in the file.
func mergeConfigs(merged *Config, user *ConfigFile) {
	if user.Shortcut != nil {
		merged.Shortcut = *user.Shortcut
	}
	if user.ConfigPath != nil && *user.ConfigPath != "" {
		merged.ConfigPath = *user.ConfigPath
	}
	if user.DefaultLauncher != nil && *user.DefaultLauncher != "" {
		merged.DefaultLauncher = *user.DefaultLauncher
	}
	if user.LogLevel != nil && *user.LogLevel != "" {
		merged.LogLevel = *user.LogLevel
	}

	mergeLauncherConfigs(&merged.Launchers, &user.Launchers)
	mergeNotificationConfig(&merged.Notifications, &user.Notifications)
}

func mergeLauncherConfigs(merged *LauncherConfig, user *LauncherConfig) {
	if len(user.Dmenu.Args) > 0 {
		merged.Dmenu.Args = user.Dmenu.Args
	}
	if len(user.Rofi.Args) > 0 {
		merged.Rofi.Args = user.Rofi.Args
	}
	if len(user.Fzf.Args) > 0 {
		merged.Fzf.Args = user.Fzf.Args
	}
	if len(user.Bemenu.Args) > 0 {
		merged.Bemenu.Args = user.Bemenu.Args
	}
	if len(user.Fuzzel.Args) > 0 {
		merged.Fuzzel.Args = user.Fuzzel.Args
	}
}

func mergeNotificationConfig(merged *NotificationConfig, user *NotificationConfigFile) {
	if user.Enabled != nil {
		merged.Enabled = *user.Enabled
	}
	if user.Tool != nil && *user.Tool != "" {
		merged.Tool = *user.Tool
	}
	if user.Timeout != nil {
		merged.Timeout = *user.Timeout
	}
	if user.Urgency != nil && *user.Urgency != "" {
		merged.Urgency = *user.Urgency
	}
	if user.ShowInTerminal != nil {
		merged.ShowInTerminal = *user.ShowInTerminal
	}
}

func applyEnv(cfg *Config) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if ov.Shortcut != "" {
		cfg.Shortcut = ov.Shortcut
	}
	if ov.ConfigPath != "" {
		cfg.ConfigPath = ov.ConfigPath
	}
	if ov.Launcher != "" {
		cfg.DefaultLauncher = ov.Launcher
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
	return nil
}

// Keys lists the settings that Get and Set accept.
var Keys = []string{"shortcut", "config-path", "default-launcher", "log-level"}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

// Get returns a top-level setting by key.
func (c *Config) Get(key string) (string, error) {
	switch normalizeKey(key) {
	case "shortcut":
		return c.Shortcut, nil
	case "config-path":
		return c.ConfigPath, nil
	case "default-launcher":
		return c.DefaultLauncher, nil
	case "log-level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
}

// Set changes a top-level setting. Values are trimmed.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch normalizeKey(key) {
	case "shortcut":
		c.Shortcut = value
	case "config-path":
		c.ConfigPath = value
	case "default-launcher":
		c.DefaultLauncher = value
	case "log-level":
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Save writes the settings as TOML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetLauncherCommand returns the settings for a launcher, or nil for unknown names.
func (c *Config) GetLauncherCommand(name string) *LauncherCommand {
	switch name {
	case "dmenu":
		return &c.Launchers.Dmenu
	case "rofi":
		return &c.Launchers.Rofi
	case "fzf":
		return &c.Launchers.Fzf
	case "bemenu":
		return &c.Launchers.Bemenu
	case "fuzzel":
		return &c.Launchers.Fuzzel
	default:
		return nil
	}
}

// InitUserConfig copies the default settings to path.
func InitUserConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigData), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

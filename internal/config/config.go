// Package config loads hanzi settings from defaults, YAML files, and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// Project config file names, in lookup order.
const (
	ProjectConfigYAML = ".hanzi.yaml"
	ProjectConfigYML  = ".hanzi.yml"
)

// Config is the complete hanzi configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Paths    PathsConfig    `yaml:"paths" json:"paths"`
	Store    StoreConfig    `yaml:"store" json:"store"`
	Watch    WatchConfig    `yaml:"watch" json:"watch"`
	Practice PracticeConfig `yaml:"practice" json:"practice"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// PathsConfig names the three document roots.
type PathsConfig struct {
	Root     string `yaml:"root" json:"root"`
	VSCode   string `yaml:"vscode" json:"vscode"`
	Obsidian string `yaml:"obsidian" json:"obsidian"`
}

// StoreConfig tunes record loading.
type StoreConfig struct {
	// CacheSize is the decoded-record cache capacity.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
	// DecodeWorkers bounds parallel file decoding. 0 uses one per CPU.
	DecodeWorkers int `yaml:"decode_workers" json:"decode_workers"`
}

// WatchConfig configures `hanzi watch`.
type WatchConfig struct {
	Debounce     string `yaml:"debounce" json:"debounce"`
	PollInterval string `yaml:"poll_interval" json:"poll_interval"`
	ForcePolling bool   `yaml:"force_polling" json:"force_polling"`
}

// PracticeConfig configures the practice sheet.
type PracticeConfig struct {
	Limit int `yaml:"limit" json:"limit"`
}

// LoggingConfig configures the debug log file.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	// File overrides the default log path (~/.hanzi/logs/hanzi.log).
	File string `yaml:"file" json:"file"`
}

// envOverrides holds the HANZI_* variables. Empty values leave the
// configuration untouched.
type envOverrides struct {
	Root          string `env:"HANZI_ROOT"`
	VSCode        string `env:"HANZI_VSCODE_DIR"`
	Obsidian      string `env:"HANZI_OBSIDIAN_DIR"`
	LogLevel      string `env:"HANZI_LOG_LEVEL"`
	WatchDebounce string `env:"HANZI_WATCH_DEBOUNCE"`
	PracticeLimit int    `env:"HANZI_PRACTICE_LIMIT"`
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Root:     filepath.Join("data", "plain"),
			VSCode:   filepath.Join("data", "vscode"),
			Obsidian: filepath.Join("data", "obsidian"),
		},
		Store: StoreConfig{
			CacheSize: 4096,
		},
		Watch: WatchConfig{
			Debounce:     "300ms",
			PollInterval: "2s",
		},
		Practice: PracticeConfig{
			Limit: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file:
//   - $XDG_CONFIG_HOME/hanzi/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/hanzi/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hanzi", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "hanzi", "config.yaml")
	}
	return filepath.Join(home, ".config", "hanzi", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// ProjectConfigPath returns the project config file in dir, or "" when
// there is none. .yaml wins over .yml.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigYAML, ProjectConfigYML} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// Load loads configuration for the working directory dir. Precedence, lowest
// first:
//  1. Hardcoded defaults
//  2. User config (~/.config/hanzi/config.yaml)
//  3. Project config (.hanzi.yaml in dir)
//  4. Environment variables (HANZI_*)
//
// CLI flags are applied by the caller afterwards.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if p := GetUserConfigPath(); fileExists(p) {
		if err := cfg.loadYAML(p); err != nil {
			return nil, err
		}
	}

	if p := ProjectConfigPath(dir); p != "" {
		if err := cfg.loadYAML(p); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadYAML merges the non-zero values of a YAML file into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return herrors.IOError("read config file", err).WithDetail("path", path)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return herrors.ConfigError(fmt.Sprintf("parse config file %s", path), err).
			WithDetail("path", path).
			WithSuggestion("check the YAML syntax, or regenerate it with `hanzi config init --force`")
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith copies non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Paths.Root != "" {
		c.Paths.Root = other.Paths.Root
	}
	if other.Paths.VSCode != "" {
		c.Paths.VSCode = other.Paths.VSCode
	}
	if other.Paths.Obsidian != "" {
		c.Paths.Obsidian = other.Paths.Obsidian
	}

	if other.Store.CacheSize != 0 {
		c.Store.CacheSize = other.Store.CacheSize
	}
	if other.Store.DecodeWorkers != 0 {
		c.Store.DecodeWorkers = other.Store.DecodeWorkers
	}

	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.PollInterval != "" {
		c.Watch.PollInterval = other.Watch.PollInterval
	}
	if other.Watch.ForcePolling {
		c.Watch.ForcePolling = true
	}

	if other.Practice.Limit != 0 {
		c.Practice.Limit = other.Practice.Limit
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.File != "" {
		c.Logging.File = other.Logging.File
	}
}

// applyEnvOverrides applies HANZI_* environment variables.
func (c *Config) applyEnvOverrides() error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return herrors.ConfigError("parse HANZI_* environment", err)
	}

	if ov.Root != "" {
		c.Paths.Root = ov.Root
	}
	if ov.VSCode != "" {
		c.Paths.VSCode = ov.VSCode
	}
	if ov.Obsidian != "" {
		c.Paths.Obsidian = ov.Obsidian
	}
	if ov.LogLevel != "" {
		c.Logging.Level = ov.LogLevel
	}
	if ov.WatchDebounce != "" {
		c.Watch.Debounce = ov.WatchDebounce
	}
	if ov.PracticeLimit != 0 {
		c.Practice.Limit = ov.PracticeLimit
	}
	return nil
}

// DebounceWindow parses Watch.Debounce.
func (c *Config) DebounceWindow() (time.Duration, error) {
	return parsePositiveDuration("watch.debounce", c.Watch.Debounce)
}

// PollEvery parses Watch.PollInterval.
func (c *Config) PollEvery() (time.Duration, error) {
	return parsePositiveDuration("watch.poll_interval", c.Watch.PollInterval)
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, herrors.ConfigError(fmt.Sprintf("%s must be a duration like 300ms, got %q", field, value), err)
	}
	if d <= 0 {
		return 0, herrors.ConfigError(fmt.Sprintf("%s must be positive, got %s", field, value), nil)
	}
	return d, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	roots := map[string]string{
		"paths.root":     c.Paths.Root,
		"paths.vscode":   c.Paths.VSCode,
		"paths.obsidian": c.Paths.Obsidian,
	}
	seen := make(map[string]string, len(roots))
	for _, field := range []string{"paths.root", "paths.vscode", "paths.obsidian"} {
		value := roots[field]
		if strings.TrimSpace(value) == "" {
			return herrors.ConfigError(field+" must not be empty", nil)
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			return herrors.ConfigError("resolve "+field, err)
		}
		if other, ok := seen[abs]; ok {
			return herrors.ConfigError(fmt.Sprintf("%s and %s point to the same directory %s", other, field, abs), nil)
		}
		seen[abs] = field
	}

	if c.Store.CacheSize < 0 {
		return herrors.ConfigError(fmt.Sprintf("store.cache_size must be non-negative, got %d", c.Store.CacheSize), nil)
	}
	if c.Store.DecodeWorkers < 0 {
		return herrors.ConfigError(fmt.Sprintf("store.decode_workers must be non-negative, got %d", c.Store.DecodeWorkers), nil)
	}

	if c.Practice.Limit <= 0 {
		return herrors.ConfigError(fmt.Sprintf("practice.limit must be positive, got %d", c.Practice.Limit), nil)
	}

	if _, err := c.DebounceWindow(); err != nil {
		return err
	}
	if _, err := c.PollEvery(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return herrors.ConfigError(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return herrors.InternalError("marshal config", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return herrors.IOError("create config directory", err).WithDetail("path", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return herrors.IOError("write config file", err).WithDetail("path", path)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

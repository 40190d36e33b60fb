package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/richdoc/internal/logging"
)

// Config holds every richdoc setting.
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Markdown  MarkdownConfig  `toml:"markdown"`
	Script    ScriptConfig    `toml:"script"`
	Viewer    ViewerConfig    `toml:"viewer"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output; empty means stderr.
	File string `toml:"file"`
}

// MarkdownConfig configures markdown conversion.
type MarkdownConfig struct {
	WikiLinks bool `toml:"wiki_links"`
}

// ScriptConfig configures the Lua script runner.
type ScriptConfig struct {
	Timeout string `toml:"timeout"`
}

// ViewerConfig configures the terminal editor.
type ViewerConfig struct {
	Watch         bool   `toml:"watch"`
	WatchDebounce string `toml:"watch_debounce"`
	StatusLine    bool   `toml:"status_line"`
}

// ClipboardConfig selects the clipboard backend.
type ClipboardConfig struct {
	// System uses the OS clipboard; otherwise an in-process one.
	System bool `toml:"system"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging:   LoggingConfig{Level: "info"},
		Markdown:  MarkdownConfig{WikiLinks: true},
		Script:    ScriptConfig{Timeout: "5s"},
		Viewer:    ViewerConfig{WatchDebounce: "100ms", StatusLine: true},
		Clipboard: ClipboardConfig{System: true},
	}
}

// DefaultPath returns the user config file path, or "" if the user config
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "richdoc", "config.toml")
}

// Load resolves the configuration: defaults, then the TOML file at path
// (skipped when path is empty or the file does not exist), then RICHDOC_*
// environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(newEnvLoader()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.decode(path, data)
}

// decode overlays TOML data onto c. Keys absent from data keep their
// current values.
func (c *Config) decode(source string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func (c *Config) loadEnv(l *envLoader) error {
	values := l.load()
	if len(values) == 0 {
		return nil
	}
	data, err := toml.Marshal(values)
	if err != nil {
		return &ParseError{Path: "<env>", Err: err}
	}
	return c.decode("<env>", data)
}

// Validate checks every setting that has a restricted range.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Err: err}
	}
	if _, err := positiveDuration(c.Script.Timeout); err != nil {
		return &ValidationError{Path: "script.timeout", Value: c.Script.Timeout, Err: err}
	}
	if _, err := positiveDuration(c.Viewer.WatchDebounce); err != nil {
		return &ValidationError{Path: "viewer.watch_debounce", Value: c.Viewer.WatchDebounce, Err: err}
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// ScriptTimeout returns the script timeout, or 5s if it is unusable.
func (c *Config) ScriptTimeout() time.Duration {
	d, err := positiveDuration(c.Script.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// WatchDebounce returns the file watcher debounce delay, or 100ms if it is
// unusable.
func (c *Config) WatchDebounce() time.Duration {
	d, err := positiveDuration(c.Viewer.WatchDebounce)
	if err != nil {
		return 100 * time.Millisecond
	}
	return d
}

var errNotPositive = errors.New("must be positive")

func positiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errNotPositive
	}
	return d, nil
}

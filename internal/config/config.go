// Package config loads tagjump settings from .tagjump.toml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	FileName = ".tagjump.toml"

	DefaultTagsFile     = "tags"
	DefaultSuggestLimit = 5
	DefaultDebounce     = 200 * time.Millisecond
	DefaultLogLevel     = "info"

	EnvTagsFile = "TAGJUMP_TAGS_FILE"
	EnvLogLevel = "TAGJUMP_LOG_LEVEL"
)

// Duration decodes TOML strings such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	TagsFile     string      `toml:"tags_file" json:"tags_file"`
	SuggestLimit int         `toml:"suggest_limit" json:"suggest_limit"`
	LogLevel     string      `toml:"log_level" json:"log_level"`
	Watch        WatchConfig `toml:"watch" json:"watch"`

	// Source is the config file that was read, empty when defaults were used.
	Source string `toml:"-" json:"source,omitempty"`
}

type WatchConfig struct {
	Enabled  bool     `toml:"enabled" json:"enabled"`
	Debounce Duration `toml:"debounce" json:"debounce"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TagsFile:     DefaultTagsFile,
		SuggestLimit: DefaultSuggestLimit,
		LogLevel:     DefaultLogLevel,
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: Duration{DefaultDebounce},
		},
	}
}

// TagDir returns the directory relative tag paths are resolved against.
func (c *Config) TagDir() string {
	return filepath.Dir(c.TagsFile)
}

// Load reads dir/.tagjump.toml when present, then applies environment
// overrides and validates the result.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		cfg.Source = path
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides overrides file settings from TAGJUMP_* variables.
func (c *Config) ApplyEnvOverrides() {
	if path := strings.TrimSpace(os.Getenv(EnvTagsFile)); path != "" {
		c.TagsFile = path
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.LogLevel = level
	}
}

// ValidationError names the offending key.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.TagsFile) == "" {
		errs = append(errs, ValidationError{Field: "tags_file", Message: "must not be empty"})
	}
	if c.SuggestLimit < 0 {
		errs = append(errs, ValidationError{Field: "suggest_limit", Message: "must be >= 0"})
	}
	if c.Watch.Debounce.Duration <= 0 {
		errs = append(errs, ValidationError{Field: "watch.debounce", Message: "must be positive"})
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, ValidationError{Field: "log_level", Message: err.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseLevel maps a level name onto slog levels.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
}

// NewLogger builds the stderr logger used by long-running commands.
func (c *Config) NewLogger() *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

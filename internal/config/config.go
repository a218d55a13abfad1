// Package config holds the persisted preferences of the script runner:
// theme, run history, interpreter profiles, argument suggestions and the
// console options. The file is JSON and is read once at startup; callers
// mutate the in-memory Config and call Store.Persist after each change.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sibikrish3000/scriptrun/internal/logger"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the persisted application state.
type Config struct {
	Theme               string               `json:"theme" yaml:"theme"`
	History             History              `json:"history" yaml:"history"`
	ExternalConsole     bool                 `json:"external_console" yaml:"external_console"`
	AutoRun             bool                 `json:"auto_run" yaml:"auto_run"`
	ArgumentSuggestions []string             `json:"argument_suggestions" yaml:"argument_suggestions"`
	InterpreterProfiles []InterpreterProfile `json:"interpreter_profiles" yaml:"interpreter_profiles"`
	ActiveProfile       *string              `json:"active_profile" yaml:"active_profile"`
	FallbackPython      string               `json:"fallback_python,omitempty" yaml:"fallback_python,omitempty"`

	// Encoding names the decoding applied to script output (see runner.NewDecodingReader).
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	// UsePTY runs attached scripts on a pseudo-terminal.
	UsePTY bool `json:"use_pty,omitempty" yaml:"use_pty,omitempty"`

	// now stamps new history entries.
	now func() time.Time
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:               ThemeDark,
		History:             History{},
		ArgumentSuggestions: []string{},
		InterpreterProfiles: []InterpreterProfile{},
	}
}

func (c *Config) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Load reads the configuration at path. A missing or malformed file yields
// the defaults; load errors are logged, never returned.
func Load(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("reading config failed, using defaults", "path", path, "err", err)
		}
		return Default()
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("parsing config failed, using defaults", "path", path, "err", err)
		return Default()
	}
	if cfg.History == nil {
		cfg.History = History{}
	}
	if len(cfg.History) > HistoryLimit {
		cfg.History = cfg.History[:HistoryLimit]
	}
	stored := cfg.ArgumentSuggestions
	cfg.ArgumentSuggestions = []string{}
	cfg.RecordSuggestions(stored...)
	if cfg.InterpreterProfiles == nil {
		cfg.InterpreterProfiles = []InterpreterProfile{}
	}
	return cfg
}

// Save writes cfg to path as indented JSON, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// YAML renders the configuration as YAML for display.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Keys settable through Set.
var settableKeys = []string{"theme", "external_console", "auto_run", "fallback_python", "encoding", "use_pty"}

// SettableKeys lists the scalar keys accepted by Set.
func SettableKeys() []string {
	return append([]string(nil), settableKeys...)
}

// Set assigns a scalar option from its string form. validateEncoding, when
// non-nil, vets the "encoding" value.
func (c *Config) Set(key, value string, validateEncoding func(string) error) error {
	switch key {
	case "theme":
		if value != ThemeDark && value != ThemeLight {
			return fmt.Errorf("theme must be %q or %q", ThemeDark, ThemeLight)
		}
		c.Theme = value
	case "external_console", "auto_run", "use_pty":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects a boolean: %w", key, err)
		}
		switch key {
		case "external_console":
			c.ExternalConsole = b
		case "auto_run":
			c.AutoRun = b
		default:
			c.UsePTY = b
		}
	case "fallback_python":
		c.FallbackPython = strings.TrimSpace(value)
	case "encoding":
		if validateEncoding != nil {
			if err := validateEncoding(value); err != nil {
				return err
			}
		}
		c.Encoding = value
	default:
		return fmt.Errorf("unknown key %q (settable: %s)", key, strings.Join(settableKeys, ", "))
	}
	return nil
}

// Store owns the Config for the lifetime of the process.
type Store struct {
	path string
	cfg  *Config
}

// Open loads the configuration at path into a Store.
func Open(path string) *Store {
	return &Store{path: path, cfg: Load(path)}
}

// NewStore wraps an already loaded Config.
func NewStore(path string, cfg *Config) *Store {
	return &Store{path: path, cfg: cfg}
}

// Config returns the live configuration. Mutations must be followed by Persist.
func (s *Store) Config() *Config {
	return s.cfg
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Persist writes the configuration back to disk. Durability is best
// effort: a failure is logged and returned, and the in-memory state stays
// authoritative.
func (s *Store) Persist() error {
	if err := Save(s.path, s.cfg); err != nil {
		logger.Warn("persisting config failed", "path", s.path, "err", err)
		return err
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/modal/internal/config/loader"
	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/keymap"
	"github.com/dshills/modal/internal/input/mode"
)

// EnvPrefix is the prefix of environment variables that override file
// settings.
const EnvPrefix = "MODAL_"

// Config holds the editor settings.
type Config struct {
	// KeyTimeout is how long a partial key sequence waits, in milliseconds.
	KeyTimeout int `yaml:"key_timeout"`
	// UndoTimeout is the pause in milliseconds that closes an undo group
	// while typing.
	UndoTimeout int `yaml:"undo_timeout"`
	ShiftWidth  int `yaml:"shift_width"`

	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	LogFormat string `yaml:"log_format"`

	// Clipboard routes the + and * registers to the system clipboard.
	Clipboard bool `yaml:"clipboard"`
	// MacroFile is where named registers are kept between sessions.
	// Empty disables it.
	MacroFile string `yaml:"macro_file"`

	Mappings []Mapping `yaml:"mappings"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

// Mapping binds keys to a command in one mode.
type Mapping struct {
	Mode    string `yaml:"mode"`
	Keys    string `yaml:"keys"`
	Command string `yaml:"command"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		KeyTimeout:  1000,
		UndoTimeout: 500,
		ShiftWidth:  4,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// defaults is Default as a map, the lowest layer of a load.
func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"key_timeout":  d.KeyTimeout,
		"undo_timeout": d.UndoTimeout,
		"shift_width":  d.ShiftWidth,
		"log_level":    d.LogLevel,
		"log_format":   d.LogFormat,
	}
}

// KeyTimeoutDuration returns KeyTimeout as a duration.
func (c *Config) KeyTimeoutDuration() time.Duration {
	return time.Duration(c.KeyTimeout) * time.Millisecond
}

// UndoTimeoutDuration returns UndoTimeout as a duration.
func (c *Config) UndoTimeoutDuration() time.Duration {
	return time.Duration(c.UndoTimeout) * time.Millisecond
}

// KeyMappings returns the mappings in the form the keymap registry takes.
func (c *Config) KeyMappings() []keymap.Mapping {
	out := make([]keymap.Mapping, len(c.Mappings))
	for i, m := range c.Mappings {
		out[i] = keymap.Mapping{Mode: m.Mode, Keys: m.Keys, Command: m.Command}
	}
	return out
}

// Validate checks every setting and returns all the problems found.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(setting, msg string, v any) {
		errs = append(errs, &ValidationError{Setting: setting, Message: msg, Value: v})
	}
	if c.KeyTimeout <= 0 {
		invalid("key_timeout", "must be positive", c.KeyTimeout)
	}
	if c.UndoTimeout <= 0 {
		invalid("undo_timeout", "must be positive", c.UndoTimeout)
	}
	if c.ShiftWidth <= 0 {
		invalid("shift_width", "must be positive", c.ShiftWidth)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		invalid("log_level", "must be debug, info, warn or error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		invalid("log_format", "must be text or json", c.LogFormat)
	}
	for i, m := range c.Mappings {
		setting := fmt.Sprintf("mappings[%d]", i)
		if mode.Parse(m.Mode).IsAbsent() {
			invalid(setting, "unknown mode", m.Mode)
		}
		if _, err := key.ParseSequence(m.Keys); err != nil || m.Keys == "" {
			invalid(setting, "bad key notation", m.Keys)
		}
		if m.Command == "" {
			invalid(setting, "missing command", m.Keys)
		}
	}
	return errors.Join(errs...)
}

// Load reads the config file at path over the defaults, applies MODAL_
// environment variables and validates the result. An empty path loads the
// defaults and the environment only.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path, os.Environ())
}

// LoadFS is Load reading from fsys with the given environment.
func LoadFS(fsys loader.FileSystem, path string, env []string) (*Config, error) {
	merged := defaults()
	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, file)
	}
	vars, err := loader.NewEnvLoaderFrom(EnvPrefix, env).Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, vars)

	c, err := decode(merged)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	c.Path = path
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", displayPath(path), err)
	}
	return c, nil
}

// decode converts a merged map to a Config. The map goes through YAML so
// that ints, floats and strings from any loader land in typed fields.
func decode(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

func displayPath(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

// DefaultPath finds the config file in the user config directory:
// modal/config with the first extension that exists. It returns "" when
// there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return FindIn(loader.DefaultFS(), filepath.Join(dir, "modal"))
}

// FindIn returns the first config file in dir, or "".
func FindIn(fsys loader.FileSystem, dir string) string {
	for _, ext := range loader.Extensions {
		path := filepath.Join(dir, "config"+ext)
		if _, err := fsys.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

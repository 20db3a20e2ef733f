// Package config loads the settings of the logo command.
//
// Settings come from, in increasing priority: built-in defaults, a YAML
// file, LOGO_ environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/logo/turtle"
)

// Config holds every setting.
type Config struct {
	// Width and Height are the viewport size.
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
	// TurtleMode is the initial boundary policy.
	TurtleMode string `koanf:"turtle_mode"`
	// Library is the path of the SQLite database that stores procedure
	// definitions. Empty means definitions are not saved.
	Library string `koanf:"library"`
	// Locale is the name of a built-in message table or the path of a YAML
	// one. Empty means English.
	Locale             string        `koanf:"locale"`
	HistoryFile        string        `koanf:"history_file"`
	YieldInterval      time.Duration `koanf:"yield_interval"`
	MaxDepth           int           `koanf:"max_depth"`
	RedefinePrimitives bool          `koanf:"redefine_primitives"`
	LogLevel           string        `koanf:"log_level"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Default values.
const (
	DefaultWidth         = 640
	DefaultHeight        = 480
	DefaultTurtleMode    = "wrap"
	DefaultYieldInterval = 20 * time.Millisecond
	DefaultMaxDepth      = 10000
	DefaultLogLevel      = "warn"
)

// EnvPrefix is the prefix of environment variables that set config keys.
const EnvPrefix = "LOGO_"

// fileNames are the config files looked for in the working directory and
// then in the user config directory.
var fileNames = []string{"logo.yaml", "logo.yml"}

// findFile returns the config file to read. An explicit path always wins.
func findFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, "logo"))
	}
	for _, dir := range dirs {
		for _, name := range fileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// Load loads the config. path names a config file to read instead of
// searching for one. flags may be nil; only flags that were set on the
// command line are applied, with dashes in their names read as underscores.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]any{
		"width":               DefaultWidth,
		"height":              DefaultHeight,
		"turtle_mode":         DefaultTurtleMode,
		"library":             "",
		"locale":              "",
		"history_file":        defaultHistory(),
		"yield_interval":      DefaultYieldInterval.String(),
		"max_depth":           DefaultMaxDepth,
		"redefine_primitives": false,
		"log_level":           DefaultLogLevel,
	}, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findFile(path)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// LOGO_TURTLE_MODE -> turtle_mode
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultHistory() string {
	d, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(d, "logo", "history")
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must have positive size, have %gx%g", c.Width, c.Height))
	}
	if _, err := c.Mode(); err != nil {
		errs = append(errs, err)
	}
	if c.YieldInterval < 0 {
		errs = append(errs, fmt.Errorf("yield_interval must not be negative, have %v", c.YieldInterval))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, have %d", c.MaxDepth))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Mode returns the configured boundary policy.
func (c *Config) Mode() (turtle.Mode, error) {
	m, ok := turtle.ParseMode(c.TurtleMode)
	if !ok {
		return 0, fmt.Errorf("unknown turtle_mode %q (want wrap, fence, or window)", c.TurtleMode)
	}
	return m, nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("bad log_level: %w", err)
	}
	return l, nil
}

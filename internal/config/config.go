// Package config loads CLI defaults from an optional config file and
// ELAPSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/engine"
	"github.com/roach88/elapse/internal/parser"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ELAPSE"

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml", "cbor"}

// Config holds defaults for command-line flags. Flags set explicitly on
// the command line take precedence.
type Config struct {
	Format  string `mapstructure:"format"`
	Style   string `mapstructure:"style"`
	Workers int    `mapstructure:"workers"`

	// Offset is the wall-clock offset (Z, ±HH:MM) for clock ranges that
	// end now. Empty means UTC.
	Offset string `mapstructure:"offset"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{Format: "text", Style: string(engine.StyleCompact), Workers: 4}
}

// Load reads configuration. When path is empty the standard locations are
// searched and a missing file is not an error; an explicit path must exist.
//
// The result is not validated. Callers apply command-line overrides first
// and then call Validate.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("format", def.Format)
	v.SetDefault("style", def.Style)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("offset", def.Offset)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q (want one of %v)", c.Format, Formats)
	}
	if _, err := engine.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d (must be at least 1)", c.Workers)
	}
	if _, err := c.WallClock(); err != nil {
		return fmt.Errorf("invalid offset: %w", err)
	}
	return nil
}

// WallClock parses Offset. An empty Offset is UTC.
func (c *Config) WallClock() (chrono.Offset, error) {
	if c.Offset == "" {
		return chrono.UTC, nil
	}
	return parser.ParseOffset(c.Offset)
}

// searchPaths returns the directories searched for config.yaml, in order:
// the user config dir ($XDG_CONFIG_HOME/elapse) then $HOME/.elapse.
func searchPaths() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "elapse"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".elapse"))
	}
	return dirs
}

// Package config loads tool settings from kern.toml.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the CLI looks for settings when --config is not given.
const DefaultPath = "kern.toml"

// Config is the root structure of a kern.toml file.
type Config struct {
	Limits Limits `toml:"limits"`
}

// Limits bounds how much input and output the tools process.
type Limits struct {
	// MaxErrors caps diagnostics per parse.
	MaxErrors int `toml:"max_errors"`
	// MaxSourceLines rejects source files longer than this many lines;
	// 0 disables the check.
	MaxSourceLines int `toml:"max_source_lines"`
	// TabWidth sets tab expansion in rendered diagnostic excerpts.
	TabWidth int `toml:"tab_width"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Limits: Limits{
			MaxErrors:      100,
			MaxSourceLines: 10000,
			TabWidth:       4,
		},
	}
}

// Load reads path and merges its keys over the defaults. A missing file is
// not an error: the defaults apply unchanged.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Limits.MaxErrors <= 0 {
		return fmt.Errorf("limits.max_errors must be positive, got %d", c.Limits.MaxErrors)
	}
	if c.Limits.MaxSourceLines < 0 {
		return fmt.Errorf("limits.max_source_lines must not be negative, got %d", c.Limits.MaxSourceLines)
	}
	if c.Limits.TabWidth <= 0 {
		return fmt.Errorf("limits.tab_width must be positive, got %d", c.Limits.TabWidth)
	}
	return nil
}

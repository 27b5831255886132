package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// Setting keys, as used in config files. Environment variables use the
// upper-case form with the NEP_ prefix.
const (
	KeyTabWidth       = "tab_width"
	KeyResizeInterval = "resize_interval"
	KeyLogLevel       = "log_level"
	KeyLogFile        = "log_file"
	KeyShowSplash     = "show_splash"
	KeyProgramTag     = "program_tag"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "NEP_"

// Limits enforced by Validate.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds the resolved editor settings.
type Config struct {
	// TabWidth is the number of spaces the Tab key inserts.
	TabWidth int

	// ResizeInterval is how often the terminal size is sampled.
	ResizeInterval time.Duration

	// LogLevel is one of LogLevels.
	LogLevel string

	// LogFile receives log output. Empty discards logs.
	LogFile string

	// ShowSplash paints the banner when no file is given.
	ShowSplash bool

	// ProgramTag is drawn at the right of the status row.
	ProgramTag string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		TabWidth:       4,
		ResizeInterval: 50 * time.Millisecond,
		LogLevel:       "info",
		ShowSplash:     true,
		ProgramTag:     "nep",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TabWidth < MinTabWidth || c.TabWidth > MaxTabWidth {
		return &ValidationError{
			Path:    KeyTabWidth,
			Message: fmt.Sprintf("must be between %d and %d", MinTabWidth, MaxTabWidth),
			Value:   c.TabWidth,
		}
	}
	if c.ResizeInterval <= 0 {
		return &ValidationError{
			Path:    KeyResizeInterval,
			Message: "must be positive",
			Value:   c.ResizeInterval,
		}
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return &ValidationError{
			Path:    KeyLogLevel,
			Message: fmt.Sprintf("must be one of %v", LogLevels),
			Value:   c.LogLevel,
		}
	}
	return nil
}

// DefaultPath returns the user config file location,
// $XDG_CONFIG_HOME/nep/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nep", "config.toml"), nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/dshills/nep/internal/config/loader"
)

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Path is an explicit config file. It must exist. When empty the
	// default path is used and may be missing.
	Path string

	// FS is the filesystem holding the config file. Defaults to the OS.
	FS afero.Fs

	// Env replaces the process environment when non-nil.
	Env map[string]string
}

// Load resolves defaults, the config file and environment overrides, then
// validates the result.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	} else if _, err := fsys.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	if path != "" {
		fl, err := loader.ForPath(fsys, path)
		if err != nil {
			return cfg, err
		}
		values, err := fl.Load()
		if err != nil {
			return cfg, err
		}
		if err := cfg.apply(values, "file"); err != nil {
			return cfg, err
		}
	}

	var env *loader.EnvLoader
	if opts.Env != nil {
		env = loader.NewEnvLoaderFromMap(EnvPrefix, opts.Env)
	} else {
		env = loader.NewEnvLoader(EnvPrefix)
	}
	values, err := env.Load()
	if err != nil {
		return cfg, err
	}
	if err := cfg.apply(values, "env"); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// apply copies recognised keys from values into c. Unknown file keys are
// rejected; unknown environment variables are ignored.
func (c *Config) apply(values map[string]any, source string) error {
	for key, raw := range values {
		var err error
		switch key {
		case KeyTabWidth:
			c.TabWidth, err = toInt(raw)
		case KeyResizeInterval:
			c.ResizeInterval, err = toDuration(raw)
		case KeyLogLevel:
			var s string
			s, err = toString(raw)
			c.LogLevel = strings.ToLower(s)
		case KeyLogFile:
			c.LogFile, err = toString(raw)
		case KeyShowSplash:
			c.ShowSplash, err = toBool(raw)
		case KeyProgramTag:
			c.ProgramTag, err = toString(raw)
		default:
			if source == "env" {
				continue
			}
			return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		if err != nil {
			return &ValidationError{Path: key, Message: err.Error(), Value: raw, Source: source}
		}
	}
	return nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, errors.New("expected an integer")
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func toDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		d = strings.TrimSpace(d)
		// Bare numbers are milliseconds, in files and the environment
		if n, err := strconv.Atoi(d); err == nil {
			return time.Duration(n) * time.Millisecond, nil
		}
		return time.ParseDuration(d)
	case int, int64:
		n, err := toInt(d)
		return time.Duration(n) * time.Millisecond, err
	default:
		return 0, fmt.Errorf("expected a duration, got %T", v)
	}
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return false, fmt.Errorf("expected a boolean, got %q", b)
	default:
		return false, fmt.Errorf("expected a boolean, got %T", v)
	}
}

func toString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected a string, got %T", v)
}

// Package loader reads configuration sources into flat maps.
//
// File loaders parse TOML or YAML documents; the environment loader reads
// prefixed variables. Every loader returns keys in the snake_case form used
// by configuration files, e.g. "tab_width".
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads configuration from a specific path.
	LoadFrom(path string) (map[string]any, error)
}

// ForPath returns the file loader matching the extension of path.
// Files without a known extension are read as TOML.
func ForPath(fs afero.Fs, path string) (FileLoader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", "":
		return NewTOMLLoaderWithFS(fs, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fs, path), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
}

// readFile reads path, reporting a missing file as nil data.
func readFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

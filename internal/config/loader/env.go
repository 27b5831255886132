package loader

import (
	"os"
	"strings"
)

// EnvLoader loads configuration from environment variables.
// Values are returned as strings; callers convert them.
type EnvLoader struct {
	prefix  string                          // Environment variable prefix (e.g., "NEP_")
	lookup  func(key string) (string, bool) // Variable lookup
	environ func() []string                 // Variable listing
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "NEP_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		lookup:  os.LookupEnv,
		environ: os.Environ,
	}
}

// NewEnvLoaderFromMap creates a loader reading from vars instead of the
// process environment.
func NewEnvLoaderFromMap(prefix string, vars map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		lookup: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		environ: func() []string {
			env := make([]string, 0, len(vars))
			for k, v := range vars {
				env = append(env, k+"="+v)
			}
			return env
		},
	}
}

// Load reads every prefixed variable. NEP_TAB_WIDTH becomes "tab_width".
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, _, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		val, ok := l.lookup(name)
		if !ok {
			continue
		}
		config[l.envToKey(name)] = val
	}

	return config, nil
}

// envToKey converts NEP_RESIZE_INTERVAL to resize_interval.
func (l *EnvLoader) envToKey(env string) string {
	return strings.ToLower(strings.TrimPrefix(env, l.prefix))
}

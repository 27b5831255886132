package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nep/internal/config"
)

type capture struct {
	called bool
	cfg    config.Config
	path   string
}

func (c *capture) start(cfg config.Config, path string, _ io.Writer) error {
	c.called = true
	c.cfg = cfg
	c.path = path
	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, env map[string]string, args ...string) (*capture, string, error) {
	t.Helper()
	var out bytes.Buffer
	c := &capture{}
	cmd := newRootCmd(env, &out, c.start)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return c, out.String(), err
}

func TestFileArgument(t *testing.T) {
	cfgPath := writeConfig(t, "")
	c, _, err := execute(t, map[string]string{}, "--config", cfgPath, "notes.txt")
	require.NoError(t, err)

	assert.True(t, c.called)
	assert.Equal(t, "notes.txt", c.path)
	assert.Equal(t, config.Default(), c.cfg)
}

func TestTooManyArguments(t *testing.T) {
	c, _, err := execute(t, map[string]string{}, "a.txt", "b.txt")
	assert.Error(t, err)
	assert.False(t, c.called)
}

func TestPrecedence(t *testing.T) {
	cfgPath := writeConfig(t, "tab_width = 2\nlog_level = \"warn\"\nresize_interval = \"20ms\"\n")
	env := map[string]string{"NEP_TAB_WIDTH": "3", "NEP_LOG_LEVEL": "error"}

	c, _, err := execute(t, env, "--config", cfgPath, "--tab-width", "8")
	require.NoError(t, err)

	assert.Equal(t, 8, c.cfg.TabWidth)
	assert.Equal(t, "error", c.cfg.LogLevel)
	assert.Equal(t, 20*time.Millisecond, c.cfg.ResizeInterval)
	assert.Empty(t, c.path)
}

func TestUnsetFlagsKeepConfig(t *testing.T) {
	cfgPath := writeConfig(t, "tab_width = 6\nlog_file = \"/tmp/nep.log\"\n")

	c, _, err := execute(t, map[string]string{}, "--config", cfgPath, "--log-level", "debug")
	require.NoError(t, err)

	assert.Equal(t, 6, c.cfg.TabWidth)
	assert.Equal(t, "/tmp/nep.log", c.cfg.LogFile)
	assert.Equal(t, "debug", c.cfg.LogLevel)
}

func TestInvalidFlagValue(t *testing.T) {
	cfgPath := writeConfig(t, "")

	c, _, err := execute(t, map[string]string{}, "--config", cfgPath, "--tab-width", "0")
	assert.ErrorIs(t, err, config.ErrValidationFailed)
	assert.False(t, c.called)

	_, _, err = execute(t, map[string]string{}, "--config", cfgPath, "--log-level", "loud")
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	c, _, err := execute(t, map[string]string{}, "--config", missing)
	assert.ErrorIs(t, err, config.ErrFileNotFound)
	assert.False(t, c.called)
}

func TestVersion(t *testing.T) {
	c, out, err := execute(t, map[string]string{}, "--version")
	require.NoError(t, err)

	assert.False(t, c.called)
	assert.Contains(t, out, "nep dev")
}

func TestNewLoggerWithFile(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "nep.log")
	cfg.LogLevel = "debug"

	logger, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	logger.Debug("hello %s", "log")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello log")
	assert.Contains(t, string(data), "app=nep")
}

// Package main is the entry point for the nep editor.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/nep/internal/app"
	"github.com/dshills/nep/internal/config"
	"github.com/dshills/nep/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errNotTerminal is returned when stdin is not an interactive terminal.
var errNotTerminal = errors.New("stdin is not a terminal")

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd(nil, os.Stdout, runSession)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cliFlags holds the command line flags. Flags override the config file
// and environment only when given.
type cliFlags struct {
	configPath  string
	logFile     string
	logLevel    string
	tabWidth    int
	showVersion bool
}

// sessionFunc starts an editing session for path.
type sessionFunc func(cfg config.Config, path string, out io.Writer) error

// newRootCmd builds the nep command. env replaces the process environment
// when non-nil.
func newRootCmd(env map[string]string, out io.Writer, start sessionFunc) *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           "nep [file]",
		Short:         "A tiny terminal text editor",
		Long:          `nep edits one file in the terminal. Type to edit, ctrl-s saves, esc quits.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.showVersion {
				fmt.Fprintf(out, "nep %s\n", version)
				fmt.Fprintf(out, "Commit: %s\n", commit)
				fmt.Fprintf(out, "Built: %s\n", date)
				return nil
			}

			cfg, err := resolveConfig(cmd, flags, env)
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return start(cfg, path, out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	f.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.IntVar(&flags.tabWidth, "tab-width", 0, "Spaces inserted by the tab key")
	f.BoolVarP(&flags.showVersion, "version", "v", false, "Show version information")

	return cmd
}

// resolveConfig loads the configuration and applies the flags that were set.
func resolveConfig(cmd *cobra.Command, flags cliFlags, env map[string]string) (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{Path: flags.configPath, Env: env})
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("tab-width") {
		cfg.TabWidth = flags.tabWidth
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runSession runs the editor on the real terminal.
func runSession(cfg config.Config, path string, out io.Writer) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	opts := app.OptionsFromConfig(cfg)
	opts.Path = path
	opts.Backend = screen
	opts.Logger = logger

	application, err := app.New(opts)
	if err != nil {
		return err
	}

	// Signals end the session through the normal exit key path
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		sig := <-signals
		logger.Info("received %v, exiting", sig)
		screen.PostEvent(backend.KeyEvent(backend.KeyEscape))
	}()

	logger.Info("session %s editing %q", application.SessionID(), path)
	err = application.Run()
	fmt.Fprintln(out, "nep exited")
	fmt.Fprintln(out, "hope you loved it <3")
	return err
}

// newLogger returns the session logger. Without a log file everything is
// discarded, the terminal belongs to the editor.
func newLogger(cfg config.Config) (*app.Logger, func(), error) {
	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.LogLevel)

	if cfg.LogFile == "" {
		return app.NewLogger(lc), func() {}, nil
	}

	f, err := app.OpenLogFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	lc.Output = f
	return app.NewLogger(lc), func() { _ = f.Close() }, nil
}

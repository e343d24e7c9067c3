package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/config"
	"github.com/roach88/elapse/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml" | "cbor"
	Style      string // "compact" | "long"
	Offset     string // wall-clock offset for hours ranges that end now
	ConfigFile string

	// Clock supplies "now". Nil means the system clock.
	Clock engine.Clock

	// RunIDs generates batch run IDs. Nil means UUIDv7.
	RunIDs RunIDGenerator

	// Config is loaded before any command runs.
	Config *config.Config

	// Logger receives diagnostics on stderr. Nil discards them.
	Logger *slog.Logger

	wallClock chrono.Offset
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.Formats

// NewRootCommand creates the root command for the elapse CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so
// tests can inject a clock and run ID generator.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elapse [flags] <a> <b>",
		Short: "Compute elapsed time between timestamps",
		Long: `Compute the elapsed time between two timestamps, shift a timestamp by a
duration, or add durations together.

Timestamps are ISO-8601: YYYY-MM-DD[THH:MM[:SS[.fff]]][Z|±HH:MM]. Without an
offset a timestamp is read as UTC. "now" is the current time.

Durations combine whole days, hours, minutes and seconds in that order:
1d2h30m, 90m, 1.5s. A duration that starts with '-' must follow "--".

Settings come from flags, then ELAPSE_* environment variables (ELAPSE_FORMAT,
ELAPSE_STYLE, ELAPSE_OFFSET, ELAPSE_WORKERS), then the config file.

Exit codes:
  0 - Success
  1 - Input could not be parsed, or names a date that does not exist
  2 - Result out of range, or a clock range that ends before it starts
  3 - Command error (usage, config, unreadable batch file)
  4 - Batch verification failed

Examples:
  elapse 2024-01-01T00:00:00 2024-01-02T03:04:05
  elapse 2024-03-10T02:30:00-05:00 +1d
  elapse 1h30m 45m
  elapse add 2024-01-01 -- -1d`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return prepare(opts, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, cmd, engine.OpAuto, args)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml|cbor)")
	cmd.PersistentFlags().StringVar(&opts.Style, "style", "compact", "duration style (compact|long)")
	cmd.PersistentFlags().StringVar(&opts.Offset, "offset", "", "wall-clock offset (Z|±HH:MM) for hours ranges that end now (default UTC)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default is $XDG_CONFIG_HOME/elapse/config.yaml or $HOME/.elapse/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewBetweenCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSumCommand(opts))
	cmd.AddCommand(NewHoursCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewREPLCommand(opts))

	return cmd
}

// Execute runs cmd and returns the process exit code. Errors the commands
// did not already report (flag and argument errors) are printed here.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		code, message := Describe(err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: %s\n", code, message)
	}
	return GetExitCode(err)
}

// prepare loads configuration, replaces config values with the flags set
// on the command line, validates the result and builds the logger.
func prepare(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	// Explicit flags win, so only the merged values are validated.
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.Format
	}
	if flags.Changed("style") {
		cfg.Style = opts.Style
	}
	if flags.Changed("offset") {
		cfg.Offset = opts.Offset
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	wallClock, err := cfg.WallClock()
	if err != nil {
		return err
	}
	opts.Config = cfg
	opts.Format = cfg.Format
	opts.Style = cfg.Style
	opts.Offset = cfg.Offset
	opts.wallClock = wallClock

	if opts.Logger == nil {
		level := slog.LevelWarn
		if opts.Verbose {
			level = slog.LevelDebug
		}
		opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}
	opts.Logger.Debug("configuration loaded",
		"file", cfg.File, "format", opts.Format, "style", opts.Style, "offset", wallClock, "workers", cfg.Workers)
	return nil
}

func (o *RootOptions) now() engine.Clock {
	if o.Clock == nil {
		return engine.SystemClock{}
	}
	return o.Clock
}

// offset is the wall clock for hours ranges that end now. It is UTC until
// prepare has run.
func (o *RootOptions) offset() chrono.Offset {
	if o.wallClock == (chrono.Offset{}) {
		return chrono.UTC
	}
	return o.wallClock
}

func (o *RootOptions) runIDs() RunIDGenerator {
	if o.RunIDs == nil {
		return UUIDv7Generator{}
	}
	return o.RunIDs
}

func (o *RootOptions) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o *RootOptions) style() engine.Style {
	if o.Style == "" {
		return engine.StyleCompact
	}
	return engine.Style(o.Style)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Errors and verbose logs go to stderr
		Verbose:   opts.Verbose,
	}
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/elapse/internal/batch"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	Workers  int
	FailFast bool
}

// BatchOutput is a report whose text output renders as a table.
type BatchOutput batch.Report

// WriteText renders the report table.
func (o *BatchOutput) WriteText(w io.Writer) error {
	return batch.WriteTable(w, (*batch.Report)(o))
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Evaluate and verify a batch file",
		Long: `Evaluate every case in a YAML batch file and check each result against
its expectation.

Cases run in parallel. The report lists cases in file order with their
output or error, then a pass/fail summary. Exits 4 if any case fails.

Example batch file:
  name: leap-years
  cases:
    - name: leap-day
      args: ["2024-02-28", "2024-03-01"]
      expect: "2d"
    - name: not-leap
      args: ["2023-02-29", "2023-03-01"]
      expect_error: InvalidCalendarDate`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "cases evaluated in parallel (default from config)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first failing case")

	return cmd
}

func runBatch(rootOpts *RootOptions, opts *BatchOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	logger := rootOpts.logger()

	// prepare has already merged and validated --workers.
	workers := rootOpts.config().Workers

	f, err := batch.Load(path)
	if err != nil {
		_ = formatter.Error(ErrCodeCommand, err.Error(), map[string]string{"file": path})
		return WrapExitError(ExitCommandError, "failed to load batch file", err)
	}

	runID := rootOpts.runIDs().Generate()
	formatter.RunID = runID
	formatter.VerboseLog("Loaded %d case(s) from %s", len(f.Cases), path)

	runner := &batch.Runner{
		Now:      rootOpts.now().Now(),
		RunID:    runID,
		Workers:  workers,
		FailFast: opts.FailFast,
		Style:    rootOpts.style(),
		Offset:   rootOpts.offset(),
		Logger:   logger,
	}

	report, err := runner.Run(cmd.Context(), f)
	if err != nil {
		return formatter.Fail(err)
	}

	if err := formatter.Success((*BatchOutput)(report)); err != nil {
		return err
	}
	if !report.OK() {
		return NewExitError(ExitVerificationFailure,
			fmt.Sprintf("%d of %d case(s) did not pass", report.Failed+report.Skipped, len(report.Cases)))
	}
	return nil
}

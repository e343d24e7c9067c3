package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/elapse/internal/engine"
)

// EvalOutput is the payload for one evaluation.
type EvalOutput struct {
	Op      engine.Op         `json:"op" yaml:"op" cbor:"op"`
	Inputs  []string          `json:"inputs" yaml:"inputs" cbor:"inputs"`
	Kind    engine.ResultKind `json:"kind" yaml:"kind" cbor:"kind"`
	Display string            `json:"display" yaml:"display" cbor:"display"`

	Duration *DurationOutput `json:"duration,omitempty" yaml:"duration,omitempty" cbor:"duration,omitempty"`
	Instant  *InstantOutput  `json:"instant,omitempty" yaml:"instant,omitempty" cbor:"instant,omitempty"`
	Hours    *HoursOutput    `json:"hours,omitempty" yaml:"hours,omitempty" cbor:"hours,omitempty"`
}

// DurationOutput carries a duration's exact value and its breakdown.
type DurationOutput struct {
	Seconds   int64            `json:"seconds" yaml:"seconds" cbor:"seconds"`
	Nanos     int32            `json:"nanos" yaml:"nanos" cbor:"nanos"`
	Breakdown engine.Breakdown `json:"breakdown" yaml:"breakdown" cbor:"breakdown"`
}

// InstantOutput carries an instant as epoch seconds plus the offset it
// is displayed in.
type InstantOutput struct {
	Seconds int64  `json:"seconds" yaml:"seconds" cbor:"seconds"`
	Nanos   int32  `json:"nanos" yaml:"nanos" cbor:"nanos"`
	Offset  string `json:"offset" yaml:"offset" cbor:"offset"`
}

// HoursOutput carries a clock range.
type HoursOutput struct {
	Start   string `json:"start" yaml:"start" cbor:"start"`
	End     string `json:"end" yaml:"end" cbor:"end"`
	Minutes int    `json:"minutes" yaml:"minutes" cbor:"minutes"`
	Decimal string `json:"decimal" yaml:"decimal" cbor:"decimal"`
}

// WriteText prints the display string alone.
func (o *EvalOutput) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, o.Display)
	return err
}

// NewEvalOutput builds the payload for a result.
func NewEvalOutput(op engine.Op, args []string, r *engine.Result, style engine.Style) *EvalOutput {
	out := &EvalOutput{
		Op:      op,
		Inputs:  args,
		Kind:    r.Kind,
		Display: r.Display(style),
	}
	switch r.Kind {
	case engine.KindInstant:
		out.Instant = &InstantOutput{
			Seconds: r.Instant.Seconds,
			Nanos:   r.Instant.Nanos,
			Offset:  r.Offset.String(),
		}
	case engine.KindHours:
		c := r.Hours.Hundredths()
		out.Hours = &HoursOutput{
			Start:   r.Hours.Start.String(),
			End:     r.Hours.End.String(),
			Minutes: r.Hours.Minutes,
			Decimal: fmt.Sprintf("%d.%02d", c/100, c%100),
		}
	default:
		out.Duration = &DurationOutput{
			Seconds:   r.Duration.Seconds,
			Nanos:     r.Duration.Nanos,
			Breakdown: engine.Decompose(r.Duration),
		}
	}
	return out
}

// NewBetweenCommand creates the between command.
func NewBetweenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "between <from> <to>",
		Aliases: []string{"diff"},
		Short:   "Elapsed duration between two timestamps",
		Long: `Compute the elapsed duration from one timestamp to another. The result is
negative when <to> is before <from>. Either side may be "now".

Example:
  elapse between 2024-01-01T00:00:00 2024-01-02T03:04:05
  1d 03h 04m 05s`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, engine.OpBetween, args)
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <timestamp> <duration>",
		Short: "Shift a timestamp by a duration",
		Long: `Shift a timestamp by a duration. The result keeps the offset the timestamp
was written with. Negative durations follow "--".

Example:
  elapse add 2024-03-10T02:30:00-05:00 +1d
  2024-03-11T02:30:00-05:00`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, engine.OpAdd, args)
		},
	}
}

// NewSumCommand creates the sum command.
func NewSumCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sum <duration>...",
		Short: "Add durations together",
		Long: `Add any number of durations. The sum is exact and does not depend on the
order of the arguments.

Example:
  elapse sum 1h -- -30m 15s
  30m 15s`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, engine.OpSum, args)
		},
	}
}

// NewHoursCommand creates the hours command.
func NewHoursCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hours <START-END | START>",
		Short: "Hours between two clock times",
		Long: `Compute the hours between two 12-hour clock times on the same day, in
decimal hours to two places. Without meridiems START is AM and END is PM.
With a single time, which must not carry AM/PM, the range runs from that
morning time to the current wall-clock time: UTC unless --offset is given.

Example:
  elapse hours 9:00AM-5:30PM
  8.50 hours
  elapse hours --offset -05:00 9:00`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, engine.OpHours, args)
		},
	}
}

func runEval(opts *RootOptions, cmd *cobra.Command, op engine.Op, args []string) error {
	formatter := newFormatter(opts, cmd)
	logger := opts.logger()

	now := opts.now().Now()
	logger.Debug("evaluating", "op", op, "args", args, "now", now.Seconds)

	result, err := engine.Run(op, args, now, opts.offset())
	if err != nil {
		logger.Debug("evaluation failed", "op", op, "error", err)
		return formatter.Fail(err)
	}
	return formatter.Success(NewEvalOutput(op, args, result, opts.style()))
}

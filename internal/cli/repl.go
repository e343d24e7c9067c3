package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/engine"
)

// Session evaluates REPL lines. It holds no readline state, so tests
// drive it directly.
type Session struct {
	Out    io.Writer
	Clock  engine.Clock
	Style  engine.Style
	Logger *slog.Logger

	// Offset is the wall clock for hours ranges that end now. The zero
	// value reads the clock in UTC.
	Offset chrono.Offset
}

// NewREPLCommand creates the repl command.
func NewREPLCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive evaluation loop",
		Long: `Read expressions line by line and print each result.

Each line is either two inputs (evaluated like the root command) or an
operation followed by its arguments:
  between <from> <to>
  add <timestamp> <duration>
  sum <duration>...
  hours <START-END | START>

Negative durations need no "--" here. "now" is read fresh for every line.
Type 'help' for commands and 'quit' or Ctrl-D to leave.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(rootOpts)
		},
	}
}

func runREPL(opts *RootOptions) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "elapse> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s := &Session{
		Out:    rl.Stdout(),
		Clock:  opts.now(),
		Style:  opts.style(),
		Logger: opts.logger(),
		Offset: opts.offset(),
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}
		if s.Eval(line) {
			return nil
		}
	}
}

// Eval evaluates one line and prints the result or error. It reports
// whether the session should end.
func (s *Session) Eval(line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
		return false
	case "quit", "exit", "q":
		return true
	case "style":
		s.cmdStyle(args)
		return false
	case "between", "diff":
		s.run(engine.OpBetween, args)
	case "add":
		s.run(engine.OpAdd, args)
	case "sum":
		s.run(engine.OpSum, args)
	case "hours":
		s.run(engine.OpHours, args)
	default:
		if len(parts) != 2 {
			fmt.Fprintf(s.Out, "Unknown command: %s (type 'help' for commands)\n", parts[0])
			return false
		}
		s.run(engine.OpAuto, parts)
	}
	return false
}

func (s *Session) run(op engine.Op, args []string) {
	now := s.Clock.Now()
	result, err := engine.Run(op, args, now, s.Offset)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("evaluation failed", "op", op, "args", args, "error", err)
		}
		if errors.Is(err, engine.ErrArity) {
			fmt.Fprintf(s.Out, "Usage: %s\n", usage(op))
			return
		}
		code, message := Describe(err)
		fmt.Fprintf(s.Out, "Error [%s]: %s\n", code, message)
		return
	}
	fmt.Fprintln(s.Out, result.Display(s.Style))
}

func (s *Session) cmdStyle(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "style %s\n", s.Style)
		return
	}
	style, err := engine.ParseStyle(args[0])
	if err != nil {
		fmt.Fprintf(s.Out, "Error: %v\n", err)
		return
	}
	s.Style = style
	fmt.Fprintf(s.Out, "style %s\n", s.Style)
}

func usage(op engine.Op) string {
	switch op {
	case engine.OpBetween:
		return "between <from> <to>"
	case engine.OpAdd:
		return "add <timestamp> <duration>"
	case engine.OpSum:
		return "sum <duration>..."
	case engine.OpHours:
		return "hours <START-END | START>"
	}
	return "<a> <b>"
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.Out, `
Commands:
  <a> <b>                      elapsed time, shifted timestamp or sum
  between <from> <to>          elapsed duration (alias: diff)
  add <timestamp> <duration>   shift a timestamp
  sum <duration>...            add durations
  hours <START-END | START>    clock range in decimal hours
  style [compact|long]         show or set the duration style
  help                         show this help
  quit                         leave the loop`)
}

package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/engine"
	"github.com/roach88/elapse/internal/normalize"
	"github.com/roach88/elapse/internal/parser"
)

// DefaultWorkers is the evaluation parallelism when Runner.Workers is unset.
const DefaultWorkers = 4

var errFailFast = errors.New("batch stopped at first failure")

// Runner evaluates batch files.
//
// Cases are independent, so they are evaluated in parallel with at most
// Workers in flight. Results keep file order regardless of completion order.
type Runner struct {
	// Now is the instant "now" resolves to for every case in the run.
	Now chrono.Instant

	// RunID identifies the run in the report.
	RunID string

	// Workers bounds parallel evaluation. Zero means DefaultWorkers.
	Workers int

	// FailFast stops scheduling cases after the first failure. Cases not
	// evaluated are reported as skipped.
	FailFast bool

	// Style selects the duration display style of case output.
	Style engine.Style

	// Offset is the wall-clock offset for hours cases that end now.
	// The zero value reads the clock in UTC.
	Offset chrono.Offset

	// Logger receives per-case debug logs. Nil discards them.
	Logger *slog.Logger
}

// Run evaluates every case in f and returns the report. A failing case is
// not an error; Run fails only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, f *File) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	logger.Debug("batch started", "batch", f.Name, "run_id", r.RunID, "cases", len(f.Cases), "workers", workers)

	results := make([]CaseResult, len(f.Cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range f.Cases {
		c := &f.Cases[i]
		results[i] = skipped(c)
		if gctx.Err() != nil {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res := r.evaluate(c)
			results[i] = res
			logger.Debug("case evaluated", "case", c.Name, "status", res.Status, "output", res.Output, "error_code", res.ErrorCode)
			if r.FailFast && res.Status == StatusFail {
				return errFailFast
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errFailFast) {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{RunID: r.RunID, Name: f.Name, Cases: results}
	report.tally()
	logger.Debug("batch finished", "batch", f.Name, "passed", report.Passed, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}

func skipped(c *Case) CaseResult {
	return CaseResult{
		Name:     c.Name,
		Op:       string(c.Operation()),
		Args:     c.Args,
		Expected: expected(c),
		Status:   StatusSkipped,
	}
}

func expected(c *Case) string {
	if c.ExpectError != "" {
		return c.ExpectError
	}
	return c.Expect
}

// evaluate runs one case and checks its expectation.
func (r *Runner) evaluate(c *Case) CaseResult {
	res := skipped(c)
	result, err := engine.Run(c.Operation(), c.Args, r.Now, r.Offset)
	if err != nil {
		res.Error = err.Error()
		res.ErrorCode = engine.ErrorCode(err)
	} else {
		res.Output = result.Display(r.Style)
	}

	res.Status = StatusPass
	switch {
	case c.ExpectError != "":
		if res.ErrorCode != c.ExpectError {
			res.Status = StatusFail
			if err == nil {
				res.Reason = "expected error " + c.ExpectError
			} else {
				res.Reason = "expected " + c.ExpectError + ", got " + errorLabel(res)
			}
		}
	case err != nil:
		res.Status = StatusFail
		res.Reason = "unexpected error " + errorLabel(res)
	case c.Expect != "" && !matches(result, res.Output, c.Expect):
		res.Status = StatusFail
		res.Reason = "expected " + c.Expect
	}
	return res
}

func errorLabel(res CaseResult) string {
	if res.ErrorCode != "" {
		return res.ErrorCode
	}
	return res.Error
}

// matches compares a result with an expectation. The expectation matches
// when it equals the display string, or when it parses to the same value:
// "2d" matches "2d 00h 00m 00s", and "2024-03-10T07:30:00Z" matches
// "2024-03-10T02:30:00-05:00".
func matches(result *engine.Result, output, expect string) bool {
	if expect == output {
		return true
	}

	switch result.Kind {
	case engine.KindElapsed, engine.KindDuration:
		d, err := parser.ParseDuration(compact(expect))
		return err == nil && d == result.Duration
	case engine.KindInstant:
		fields, err := parser.ParseTimestamp(expect)
		if err != nil {
			return false
		}
		i, err := normalize.Normalize(fields)
		return err == nil && i == result.Instant
	case engine.KindHours:
		c, ok := hundredths(expect)
		return ok && c == result.Hours.Hundredths()
	}
	return false
}

// hundredths reads a decimal hours expectation such as "8.5", "8.50" or
// "8.50 hours" as hundredths of an hour.
func hundredths(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "hours"))
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || strings.Trim(whole, "0123456789") != "" {
		return 0, false
	}
	if strings.Trim(frac, "0123456789") != "" {
		return 0, false
	}
	if len(frac) > 2 {
		if strings.Trim(frac[2:], "0") != "" {
			return 0, false
		}
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	w, err := strconv.Atoi(whole)
	if err != nil {
		return 0, false
	}
	f, _ := strconv.Atoi(frac)
	return w*100 + f, true
}

// compact turns a display string such as "1d 03h 04m 05s" back into a
// duration expression.
func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

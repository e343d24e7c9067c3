package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/elapse/internal/chrono"
	"github.com/roach88/elapse/internal/normalize"
	"github.com/roach88/elapse/internal/parser"
)

// ResultKind tags what an evaluation produced.
type ResultKind string

const (
	// KindElapsed is the duration between two instants.
	KindElapsed ResultKind = "elapsed"

	// KindInstant is an instant shifted by a duration.
	KindInstant ResultKind = "instant"

	// KindDuration is a sum of durations.
	KindDuration ResultKind = "duration"

	// KindHours is a clock range in decimal hours.
	KindHours ResultKind = "hours"
)

// Style selects how durations are displayed.
type Style string

const (
	StyleCompact Style = "compact"
	StyleLong    Style = "long"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleCompact, StyleLong:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown style %q (want compact or long)", s)
}

// Op selects how Run interprets its arguments.
type Op string

const (
	OpAuto    Op = "auto"
	OpBetween Op = "between"
	OpAdd     Op = "add"
	OpSum     Op = "sum"
	OpHours   Op = "hours"
)

// Ops lists every operation in display order.
var Ops = []Op{OpAuto, OpBetween, OpAdd, OpSum, OpHours}

// ErrArity is returned when an operation receives the wrong number of
// arguments.
var ErrArity = errors.New("wrong number of arguments")

// Result is the outcome of one evaluation.
type Result struct {
	Kind ResultKind

	// Duration is set for KindElapsed, KindDuration and KindHours.
	Duration chrono.Duration

	// Instant and Offset are set for KindInstant. Offset is the written
	// offset of the timestamp operand, or UTC for "now".
	Instant chrono.Instant
	Offset  chrono.Offset

	// Hours is set for KindHours.
	Hours *HoursResult
}

// Display renders the result for humans.
func (r *Result) Display(style Style) string {
	switch r.Kind {
	case KindInstant:
		return FormatInstant(r.Instant, r.Offset)
	case KindHours:
		return r.Hours.String()
	}
	if style == StyleLong {
		return FormatLong(r.Duration)
	}
	return FormatDuration(r.Duration)
}

// operand is a parsed and normalized input: either a point in time or a span.
type operand struct {
	value   parser.Value
	point   bool
	instant chrono.Instant
	offset  chrono.Offset
	span    chrono.Duration
}

func resolve(input string, now chrono.Instant) (operand, error) {
	v, err := parser.Parse(input)
	if err != nil {
		return operand{}, err
	}

	op := operand{value: v}
	switch v.Kind {
	case parser.KindNow:
		op.point, op.instant, op.offset = true, now, chrono.UTC
	case parser.KindTimestamp:
		i, err := normalize.Normalize(v.Fields)
		if err != nil {
			return operand{}, err
		}
		op.point, op.instant, op.offset = true, i, v.Fields.Offset
	case parser.KindDuration:
		op.span = v.Duration
	}
	return op, nil
}

// Evaluate runs the full pipeline over two inputs:
//   - two timestamps give the elapsed duration from first to second;
//   - a timestamp and a duration, in either order, give the shifted instant;
//   - two durations give their sum.
//
// "now" resolves to the given instant.
func Evaluate(first, second string, now chrono.Instant) (*Result, error) {
	a, err := resolve(first, now)
	if err != nil {
		return nil, err
	}
	b, err := resolve(second, now)
	if err != nil {
		return nil, err
	}

	switch {
	case a.point && b.point:
		d, err := Between(a.instant, b.instant)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindElapsed, Duration: d}, nil
	case a.point:
		return shift(a, b.span)
	case b.point:
		return shift(b, a.span)
	}

	d, err := AddDurations(a.span, b.span)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindDuration, Duration: d}, nil
}

// EvaluateBetween returns the elapsed duration from one timestamp (or
// "now") to another.
func EvaluateBetween(from, to string, now chrono.Instant) (*Result, error) {
	a, err := resolvePoint(from, now)
	if err != nil {
		return nil, err
	}
	b, err := resolvePoint(to, now)
	if err != nil {
		return nil, err
	}
	d, err := Between(a.instant, b.instant)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindElapsed, Duration: d}, nil
}

// EvaluateAdd shifts a timestamp (or "now") by a duration expression.
func EvaluateAdd(timestamp, duration string, now chrono.Instant) (*Result, error) {
	p, err := resolvePoint(timestamp, now)
	if err != nil {
		return nil, err
	}
	d, err := resolveSpan(duration)
	if err != nil {
		return nil, err
	}
	return shift(p, d.span)
}

// EvaluateSum accumulates any number of duration expressions.
func EvaluateSum(inputs ...string) (*Result, error) {
	ds := make([]chrono.Duration, len(inputs))
	for i, in := range inputs {
		op, err := resolveSpan(in)
		if err != nil {
			return nil, err
		}
		ds[i] = op.span
	}
	d, err := Sum(ds...)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindDuration, Duration: d}, nil
}

// Run evaluates op over args. Clock times in an hours range that ends
// now are read on the wall clock of off.
func Run(op Op, args []string, now chrono.Instant, off chrono.Offset) (*Result, error) {
	switch op {
	case OpAuto, "":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d: %w", OpAuto, len(args), ErrArity)
		}
		return Evaluate(args[0], args[1], now)
	case OpBetween:
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d: %w", op, len(args), ErrArity)
		}
		return EvaluateBetween(args[0], args[1], now)
	case OpAdd:
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d: %w", op, len(args), ErrArity)
		}
		return EvaluateAdd(args[0], args[1], now)
	case OpSum:
		if len(args) == 0 {
			return nil, fmt.Errorf("%s takes at least 1 argument: %w", op, ErrArity)
		}
		return EvaluateSum(args...)
	case OpHours:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, got %d: %w", op, len(args), ErrArity)
		}
		h, err := EvaluateHours(args[0], now, off)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindHours, Duration: h.Duration(), Hours: h}, nil
	}
	return nil, fmt.Errorf("unknown operation %q", op)
}

func resolvePoint(input string, now chrono.Instant) (operand, error) {
	op, err := resolve(input, now)
	if err != nil {
		return operand{}, err
	}
	if err := parser.Expect(op.value, parser.KindTimestamp, parser.KindNow); err != nil {
		return operand{}, err
	}
	return op, nil
}

func resolveSpan(input string) (operand, error) {
	// Durations never consult now.
	op, err := resolve(input, chrono.Instant{})
	if err != nil {
		return operand{}, err
	}
	if err := parser.Expect(op.value, parser.KindDuration); err != nil {
		return operand{}, err
	}
	return op, nil
}

func shift(p operand, d chrono.Duration) (*Result, error) {
	i, err := AddToInstant(p.instant, d)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: KindInstant, Instant: i, Offset: p.offset}, nil
}

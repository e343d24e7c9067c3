package engine

import (
	"math"
	"math/big"

	"github.com/roach88/elapse/internal/chrono"
)

// Arithmetic works on exact whole seconds plus a nanosecond remainder with
// explicit carry and borrow. Every result is checked; nothing wraps.

// Between returns the signed duration from a to b (b - a). The result is
// negative when a is after b; the operands are never reordered.
func Between(a, b chrono.Instant) (chrono.Duration, error) {
	secs, nanos, ok := subParts(b.Seconds, b.Nanos, a.Seconds, a.Nanos)
	if !ok {
		return chrono.Duration{}, NewOverflowError("between", FormatInstant(a, chrono.UTC), FormatInstant(b, chrono.UTC))
	}
	return chrono.Duration{Seconds: secs, Nanos: nanos}, nil
}

// AddToInstant shifts i by d. A negative duration moves i backwards.
func AddToInstant(i chrono.Instant, d chrono.Duration) (chrono.Instant, error) {
	secs, nanos, ok := addParts(i.Seconds, i.Nanos, d.Seconds, d.Nanos)
	if !ok {
		return chrono.Instant{}, NewOverflowError("add", FormatInstant(i, chrono.UTC), FormatDuration(d))
	}
	return chrono.Instant{Seconds: secs, Nanos: nanos}, nil
}

// AddDurations returns a + b.
func AddDurations(a, b chrono.Duration) (chrono.Duration, error) {
	secs, nanos, ok := addParts(a.Seconds, a.Nanos, b.Seconds, b.Nanos)
	if !ok {
		return chrono.Duration{}, NewOverflowError("add", FormatDuration(a), FormatDuration(b))
	}
	return chrono.Duration{Seconds: secs, Nanos: nanos}, nil
}

// SubDurations returns a - b.
func SubDurations(a, b chrono.Duration) (chrono.Duration, error) {
	secs, nanos, ok := subParts(a.Seconds, a.Nanos, b.Seconds, b.Nanos)
	if !ok {
		return chrono.Duration{}, NewOverflowError("subtract", FormatDuration(a), FormatDuration(b))
	}
	return chrono.Duration{Seconds: secs, Nanos: nanos}, nil
}

// Negate returns -d. Only the most negative duration has no negation.
func Negate(d chrono.Duration) (chrono.Duration, error) {
	if d.Nanos == 0 {
		if d.Seconds == math.MinInt64 {
			return chrono.Duration{}, NewOverflowError("negate", FormatDuration(d))
		}
		return chrono.Duration{Seconds: -d.Seconds}, nil
	}
	// -(s + n) = (-s - 1) + (1e9 - n); ^s is -s-1 and cannot overflow.
	return chrono.Duration{Seconds: ^d.Seconds, Nanos: chrono.NanosPerSecond - d.Nanos}, nil
}

var (
	bigNanosPerSecond = big.NewInt(chrono.NanosPerSecond)
	bigMaxSeconds     = big.NewInt(math.MaxInt64)
	bigMinSeconds     = big.NewInt(math.MinInt64)
)

// Sum accumulates ds exactly. Intermediate totals may leave the int64
// range as long as the final total fits, so the result does not depend on
// the order of the operands.
func Sum(ds ...chrono.Duration) (chrono.Duration, error) {
	total := new(big.Int)
	part := new(big.Int)
	for _, d := range ds {
		part.SetInt64(d.Seconds)
		part.Mul(part, bigNanosPerSecond)
		part.Add(part, big.NewInt(int64(d.Nanos)))
		total.Add(total, part)
	}

	secs, nanos := new(big.Int), new(big.Int)
	// DivMod is Euclidean: the remainder is non-negative.
	secs.DivMod(total, bigNanosPerSecond, nanos)
	if secs.Cmp(bigMaxSeconds) > 0 || secs.Cmp(bigMinSeconds) < 0 {
		operands := make([]string, len(ds))
		for i, d := range ds {
			operands[i] = FormatDuration(d)
		}
		return chrono.Duration{}, NewOverflowError("sum", operands...)
	}
	return chrono.Duration{Seconds: secs.Int64(), Nanos: int32(nanos.Int64())}, nil
}

// addParts adds two normal-form (seconds, nanos) pairs.
func addParts(as int64, an int32, bs int64, bn int32) (int64, int32, bool) {
	nanos := an + bn
	var carry int64
	if nanos >= chrono.NanosPerSecond {
		nanos -= chrono.NanosPerSecond
		carry = 1
	}
	as, bs, ok := applyCarry(as, bs, carry)
	if !ok {
		return 0, 0, false
	}
	secs, ok := chrono.AddInt64(as, bs)
	return secs, nanos, ok
}

// subParts subtracts the pair (bs, bn) from (as, an).
func subParts(as int64, an int32, bs int64, bn int32) (int64, int32, bool) {
	nanos := an - bn
	if nanos < 0 {
		nanos += chrono.NanosPerSecond
		// Borrowing from a is the same as adding one to b.
		if b, ok := chrono.AddInt64(bs, 1); ok {
			bs = b
		} else if a, ok := chrono.SubInt64(as, 1); ok {
			as = a
		} else {
			return 0, 0, false
		}
	}
	secs, ok := chrono.SubInt64(as, bs)
	return secs, nanos, ok
}

// applyCarry folds carry into whichever operand can absorb it.
func applyCarry(as, bs, carry int64) (int64, int64, bool) {
	if carry == 0 {
		return as, bs, true
	}
	if a, ok := chrono.AddInt64(as, carry); ok {
		return a, bs, true
	}
	if b, ok := chrono.AddInt64(bs, carry); ok {
		return as, b, true
	}
	return 0, 0, false
}

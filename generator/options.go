// SPDX-License-Identifier: MIT

// Functional configuration for input synthesis.
//
// Design goals:
//   - Deterministic behavior: all randomness comes from the caller's *rand.Rand.
//   - Safe by construction: WithX panics only on nonsensical values.

package generator

import "math"

// Defaults (single source of truth).
const (
	// DefaultLow and DefaultHigh bound the uniform element distribution.
	DefaultLow  = -1.0
	DefaultHigh = 1.0

	// DefaultOverRatio is rows/cols of the SolveOver system matrix.
	DefaultOverRatio = 2
)

const (
	panicRangeInvalid = "generator: WithRange: bounds must be finite with low < high"
	panicRatioInvalid = "generator: WithOverRatio: ratio must be >= 1"
)

// Option mutates Options.
type Option func(*Options)

// Options stores the effective generator configuration.
type Options struct {
	low, high float64 // element range [low, high)
	overRatio int     // SolveOver rows = overRatio*size
}

// WithRange sets the uniform element range [low, high).
func WithRange(low, high float64) Option {
	if math.IsNaN(low) || math.IsInf(low, 0) || math.IsNaN(high) || math.IsInf(high, 0) || !(low < high) {
		panic(panicRangeInvalid)
	}

	return func(o *Options) { o.low, o.high = low, high }
}

// WithOverRatio sets the row multiplier of the over-determined system.
func WithOverRatio(ratio int) Option {
	if ratio < 1 {
		panic(panicRatioInvalid)
	}

	return func(o *Options) { o.overRatio = ratio }
}

func gatherOptions(opts ...Option) Options {
	o := Options{low: DefaultLow, high: DefaultHigh, overRatio: DefaultOverRatio}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// SPDX-License-Identifier: MIT

package runner

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/generator"
)

// Defaults.
const (
	// DefaultMemoryLimit disables the memory guard.
	DefaultMemoryLimit int64 = 0
)

const panicLimitNegative = "runner: WithMemoryLimit: limit must be >= 0"

// Option mutates Options.
type Option func(*Options)

// Options stores the effective Evaluator configuration.
type Options struct {
	log      zerolog.Logger
	probe    bench.MemoryProbe // nil: memory unmeasured
	limit    int64             // bytes; 0 disables the guard
	genOpts  []generator.Option
	progress func(bench.ResultRecord)
}

// WithLogger sets the structured logger (default zerolog.Nop()).
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.log = l } }

// WithMemoryProbe enables the untimed memory pass with probe p.
func WithMemoryProbe(p bench.MemoryProbe) Option { return func(o *Options) { o.probe = p } }

// WithMemoryLimit skips trials whose estimated footprint exceeds limit bytes.
// Zero disables the guard; a negative limit panics.
func WithMemoryLimit(limit int64) Option {
	if limit < 0 {
		panic(panicLimitNegative)
	}

	return func(o *Options) { o.limit = limit }
}

// WithGeneratorOptions forwards options to every generator the Evaluator builds.
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(o *Options) { o.genOpts = append(o.genOpts, opts...) }
}

// WithProgress registers a callback invoked by Sweep after each record.
func WithProgress(fn func(bench.ResultRecord)) Option {
	return func(o *Options) { o.progress = fn }
}

func gatherOptions(opts ...Option) Options {
	o := Options{log: zerolog.Nop(), limit: DefaultMemoryLimit}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

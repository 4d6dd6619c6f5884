// SPDX-License-Identifier: MIT

// Package runner evaluates Trials against LibraryAdapters and produces
// ResultRecords. It is the orchestration boundary: callers choose adapter,
// operation, size, trial count and whether to verify; runner returns a
// record for every request, failed or not.
//
// An Evaluator runs trials strictly one after another and must not be shared
// between goroutines.
package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/generator"
)

// Reasons recorded for trials that never reached the timed loop.
const (
	reasonDisabled    = "adapter disabled after conversion failure"
	reasonUnsupported = "operation not supported by library"
	reasonMemory      = "estimated memory %d bytes exceeds limit %d"
)

// Evaluator runs trials sequentially and remembers per-adapter state:
// whether Configure ran and whether a ConversionError disabled the adapter.
type Evaluator struct {
	opts       Options
	configured map[bench.LibraryAdapter]bool
	disabled   map[bench.LibraryAdapter]string
}

// New returns an Evaluator.
func New(opts ...Option) *Evaluator {
	return &Evaluator{
		opts:       gatherOptions(opts...),
		configured: make(map[bench.LibraryAdapter]bool),
		disabled:   make(map[bench.LibraryAdapter]string),
	}
}

// Disabled reports whether a is disabled and why.
func (e *Evaluator) Disabled(a bench.LibraryAdapter) (string, bool) {
	reason, ok := e.disabled[a]
	return reason, ok
}

// Evaluate runs one Trial on a.
//
// Implementation:
//   - Stage 1: reject an invalid Trial or a mismatched library (returned as error).
//   - Stage 2: disabled adapter, unsupported kind and memory guard produce
//     failure records without touching the library.
//   - Stage 3: configure once; draw inputs from rand.NewSource(t.Seed); convert.
//   - Stage 4: bench.Execute times the loop; outputs are verified when t.Check.
//   - Stage 5: optional untimed single-iteration pass for the memory probe.
//
// Behavior highlights:
//   - Every outcome of the library is a record; error is reserved for misuse.
//   - A ConversionError anywhere disables a for the Evaluator's lifetime.
//   - All handles are released before returning.
func (e *Evaluator) Evaluate(a bench.LibraryAdapter, t bench.Trial) (bench.ResultRecord, error) {
	if err := t.Validate(); err != nil {
		return bench.ResultRecord{}, err
	}
	if a.Library() != t.Library {
		return bench.ResultRecord{}, fmt.Errorf("trial for %s given adapter %s: %w", t.Library, a.Library(), bench.ErrInvalidTrial)
	}
	log := e.opts.log.With().Str("trial", t.String()).Logger()

	if reason, off := e.disabled[a]; off {
		return bench.NewFailure(t, bench.FailureConversion, reasonDisabled+": "+reason), nil
	}
	if !a.Supports(t.Operation) {
		return bench.NewFailure(t, bench.FailureUnsupported, reasonUnsupported), nil
	}
	gen, err := generator.New(t.Operation, e.opts.genOpts...)
	if err != nil {
		return bench.ResultRecord{}, err
	}
	if need := gen.RequiredMemory(t.Size); e.opts.limit > 0 && need > e.opts.limit {
		log.Info().Int64("required", need).Int64("limit", e.opts.limit).Msg("trial skipped")
		return bench.NewFailure(t, bench.FailureSkipped, fmt.Sprintf(reasonMemory, need, e.opts.limit)), nil
	}
	if !e.configured[a] {
		if err = a.Configure(); err != nil {
			return e.fail(a, t, log, fmt.Errorf("configure: %w", err)), nil
		}
		e.configured[a] = true
	}

	rng := rand.New(rand.NewSource(t.Seed))
	in, err := gen.CreateInputs(a, rng, t.Check, t.Size)
	if err != nil {
		return e.fail(a, t, log, err), nil
	}
	defer bench.Release(in...)

	out := make([]*bench.MatrixHandle, gen.NumOutputs())
	elapsed, err := bench.Execute(a, t.Operation, in, out, t.Trials)
	defer bench.Release(out...)
	if err != nil {
		return e.fail(a, t, log, err), nil
	}

	var verdict *bench.Verdict
	if t.Check {
		v, err := gen.CheckResults(out, t.Tolerance)
		if err != nil {
			return e.fail(a, t, log, err), nil
		}
		verdict = &v
	}

	rec := bench.NewSuccess(t, elapsed, e.measure(a, t, in, len(out)), verdict)
	log.Debug().
		Dur("elapsed", rec.Elapsed).
		Float64("ops_per_sec", rec.OpsPerSec).
		Str("class", rec.Class.String()).
		Float64("residual", rec.Residual).
		Msg("trial done")

	return rec, nil
}

// measure runs one untimed iteration between probe.Begin and probe.End.
// Failures leave the record unmeasured.
func (e *Evaluator) measure(a bench.LibraryAdapter, t bench.Trial, in []*bench.MatrixHandle, outputs int) int64 {
	if e.opts.probe == nil {
		return bench.MemoryUnmeasured
	}
	out := make([]*bench.MatrixHandle, outputs)
	token := e.opts.probe.Begin()
	_, err := bench.Execute(a, t.Operation, in, out, 1)
	used := e.opts.probe.End(token)
	bench.Release(out...)
	if err != nil || used < 0 {
		return bench.MemoryUnmeasured
	}

	return used
}

// fail turns err into a failure record, disabling a on conversion errors.
func (e *Evaluator) fail(a bench.LibraryAdapter, t bench.Trial, log zerolog.Logger, err error) bench.ResultRecord {
	kind := bench.FailureOf(err)
	if errors.Is(err, bench.ErrConversion) {
		e.disabled[a] = err.Error()
		log.Error().Err(err).Msg("adapter disabled")
	} else {
		log.Warn().Err(err).Str("failure", kind.String()).Msg("trial failed")
	}

	return bench.NewFailure(t, kind, err.Error())
}

// Plan describes a sweep: every library × operation × size.
type Plan struct {
	Operations []bench.OperationKind `json:"operations" yaml:"operations"`
	Sizes      []int                 `json:"sizes" yaml:"sizes"`
	Trials     int                   `json:"trials" yaml:"trials"`
	Check      bool                  `json:"check" yaml:"check"`
	Tolerance  float64               `json:"tolerance" yaml:"tolerance"`
	Seed       int64                 `json:"seed" yaml:"seed"`
}

// SeedFor derives the input seed of (op, size); every library receives the
// same seed, hence the same canonical inputs.
func (p Plan) SeedFor(op bench.OperationKind, size int) int64 {
	return p.Seed ^ int64(op)<<40 ^ int64(size)
}

// Sweep evaluates plan for each adapter in order: operations outermost, then
// sizes, then adapters, so libraries of one (operation, size) run back to
// back. The context is checked between trials only.
func (e *Evaluator) Sweep(ctx context.Context, adapters []bench.LibraryAdapter, plan Plan) ([]bench.ResultRecord, error) {
	records := make([]bench.ResultRecord, 0, len(adapters)*len(plan.Operations)*len(plan.Sizes))
	for _, op := range plan.Operations {
		for _, size := range plan.Sizes {
			for _, a := range adapters {
				if err := ctx.Err(); err != nil {
					return records, err
				}
				t, err := bench.NewTrial(a.Library(), op, size, plan.Trials, plan.Check, plan.Tolerance, plan.SeedFor(op, size))
				if err != nil {
					return records, err
				}
				rec, err := e.Evaluate(a, t)
				if err != nil {
					return records, err
				}
				records = append(records, rec)
				if e.opts.progress != nil {
					e.opts.progress(rec)
				}
			}
		}
	}

	return records, nil
}

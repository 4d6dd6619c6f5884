// SPDX-License-Identifier: MIT

package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/matrix"
)

// ErrNotRetained is returned by CheckResults when no canonical inputs were retained.
var ErrNotRetained = errors.New("generator: inputs were not retained for verification")

// Generator produces inputs for one operation and judges its outputs.
type Generator interface {
	// Kind returns the operation this generator serves.
	Kind() bench.OperationKind

	// CreateInputs draws canonical inputs of the given size from rng, retains a
	// copy when check is set and materializes them through a.
	CreateInputs(a bench.LibraryAdapter, rng *rand.Rand, check bool, size int) ([]*bench.MatrixHandle, error)

	// Canonical draws the canonical inputs of the given size without any adapter.
	Canonical(rng *rand.Rand, size int) ([]*matrix.Dense, error)

	// Retain records canonical inputs for a later CheckResults.
	Retain(inputs ...*matrix.Dense)

	// CheckResults converts outputs to canonical form and classifies them
	// against tol. Errors are reserved for conversion failures and a missing
	// Retain; every numeric outcome is a Verdict.
	CheckResults(outputs []*bench.MatrixHandle, tol float64) (bench.Verdict, error)

	// NumOutputs is the number of output slots Process fills.
	NumOutputs() int

	// RequiredMemory estimates peak bytes for a problem of the given size.
	RequiredMemory(size int) int64
}

// identity maps canonical inputs and outputs to (found, expected, reference);
// the residual is ‖found − expected‖_F / ‖reference‖_F.
type identity func(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error)

// inputsFunc draws canonical inputs.
type inputsFunc func(rng *rand.Rand, size int, o Options) ([]*matrix.Dense, error)

// definition is the per-kind behaviour table entry.
type definition struct {
	inputs   inputsFunc
	identity identity
	// extra returns an additional residual that must also pass (orthogonality guards).
	extra     func(in, out []*matrix.Dense) (float64, error)
	memFactor int64
}

type generator struct {
	kind     bench.OperationKind
	spec     bench.OperationSpec
	def      definition
	opts     Options
	retained []*matrix.Dense
}

// New returns the generator of kind.
// Errors: bench.ErrUnknownOperation.
func New(kind bench.OperationKind, opts ...Option) (Generator, error) {
	spec, err := bench.SpecOf(kind)
	if err != nil {
		return nil, err
	}
	def, ok := definitions[kind]
	if !ok {
		return nil, fmt.Errorf("generator.New(%s): %w", kind, bench.ErrUnknownOperation)
	}

	return &generator{kind: kind, spec: spec, def: def, opts: gatherOptions(opts...)}, nil
}

// MustNew is New for statically known kinds; it panics on error.
func MustNew(kind bench.OperationKind, opts ...Option) Generator {
	g, err := New(kind, opts...)
	if err != nil {
		panic(err)
	}

	return g
}

func (g *generator) Kind() bench.OperationKind { return g.kind }

func (g *generator) NumOutputs() int { return g.spec.Outputs }

// RequiredMemory returns 8·n²·factor bytes.
func (g *generator) RequiredMemory(size int) int64 {
	n := int64(size)
	return 8 * n * n * g.def.memFactor
}

func (g *generator) Retain(inputs ...*matrix.Dense) {
	g.retained = make([]*matrix.Dense, len(inputs))
	for i, m := range inputs {
		g.retained[i] = m.Clone()
	}
}

// CreateInputs draws the canonical problem and converts it through a.
//
// Behavior highlights:
//   - The draw order is fixed per kind, so one seed yields bit-identical
//     inputs for every library.
//   - When check is false any previously retained inputs are dropped.
//   - On a conversion failure the handles created so far are released.
func (g *generator) CreateInputs(a bench.LibraryAdapter, rng *rand.Rand, check bool, size int) ([]*bench.MatrixHandle, error) {
	canon, err := g.Canonical(rng, size)
	if err != nil {
		return nil, err
	}
	if check {
		g.Retain(canon...)
	} else {
		g.retained = nil
	}

	handles := make([]*bench.MatrixHandle, 0, len(canon))
	for _, m := range canon {
		h, err := a.ToNative(m)
		if err != nil {
			bench.Release(handles...)
			return nil, err
		}
		handles = append(handles, h)
	}

	return handles, nil
}

// Canonical draws the canonical inputs without touching any adapter.
func (g *generator) Canonical(rng *rand.Rand, size int) ([]*matrix.Dense, error) {
	if rng == nil {
		return nil, fmt.Errorf("%s: %w", g.kind, matrix.ErrNilSource)
	}
	if size < 0 {
		return nil, fmt.Errorf("%s: size %d: %w", g.kind, size, matrix.ErrBadShape)
	}

	return g.def.inputs(rng, size, g.opts)
}

// CheckResults classifies outputs in a fixed order:
//   - Misc: fewer slots than NumOutputs, a nil slot, or an output whose shape
//     the defining identity cannot accept.
//   - Uncountable: any NaN or ±Inf element in any output.
//   - LargeError / NoError: relative Frobenius residual against tol.
func (g *generator) CheckResults(outputs []*bench.MatrixHandle, tol float64) (bench.Verdict, error) {
	if g.retained == nil {
		return bench.Verdict{}, fmt.Errorf("%s: %w", g.kind, ErrNotRetained)
	}
	if len(outputs) < g.spec.Outputs {
		return bench.Verdict{Class: bench.Misc, Residual: bench.ResidualUnchecked}, nil
	}
	for _, h := range outputs[:g.spec.Outputs] {
		if h == nil {
			return bench.Verdict{Class: bench.Misc, Residual: bench.ResidualUnchecked}, nil
		}
	}

	outs := make([]*matrix.Dense, g.spec.Outputs)
	for i, h := range outputs[:g.spec.Outputs] {
		m, err := h.Canonical()
		if err != nil {
			return bench.Verdict{}, err
		}
		if r, c := h.Dims(); r != m.Rows() || c != m.Cols() {
			return bench.Verdict{}, bench.NewConversionError(h.Owner().Library(), bench.DirToCanonical,
				fmt.Errorf("slot %d: handle %dx%d, canonical %dx%d: %w", i, r, c, m.Rows(), m.Cols(), matrix.ErrDimensionMismatch))
		}
		outs[i] = m
	}
	for _, m := range outs {
		if m.HasUncountable() {
			return bench.Verdict{Class: bench.Uncountable, Residual: math.Inf(1)}, nil
		}
	}

	res, err := g.residual(outs)
	if err != nil {
		if errors.Is(err, matrix.ErrDimensionMismatch) || errors.Is(err, matrix.ErrNonSquare) {
			return bench.Verdict{Class: bench.Misc, Residual: bench.ResidualUnchecked}, nil
		}
		return bench.Verdict{}, err
	}
	if !(res <= tol) {
		return bench.Verdict{Class: bench.LargeError, Residual: res}, nil
	}

	return bench.Verdict{Class: bench.NoError, Residual: res}, nil
}

// residual evaluates the identity and the optional guard, returning the larger.
func (g *generator) residual(outs []*matrix.Dense) (float64, error) {
	found, expected, ref, err := g.def.identity(g.retained, outs)
	if err != nil {
		return 0, err
	}
	res, err := matrix.Residual(found, expected, ref)
	if err != nil {
		return 0, err
	}
	if g.def.extra != nil {
		guard, err := g.def.extra(g.retained, outs)
		if err != nil {
			return 0, err
		}
		res = math.Max(res, guard)
	}

	return res, nil
}

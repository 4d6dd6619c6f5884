// SPDX-License-Identifier: MIT

// Package lvdense adapts the in-tree dense library to the benchmark contract.
//
// What:
//   - Natives are *dense.Matrix; conversion copies the row-major buffer.
//   - Every operation kind except SVD is supported.
//
// Conventions normalized here so outputs match the slot layout:
//   - dense.QR returns Qt with A = Qtᵀ·R; the adapter publishes Q = Qtᵀ.
//   - dense.EigenSym returns (values, vectors); the adapter publishes V then diag(values).
//
// Acceleration:
//   - Configure selects the cache-blocked multiply (dense.MulBlocked) when the
//     CPU reports wide SIMD (AVX2 on amd64, ASIMD on arm64), unless WithBlocked
//     forces a choice.
package lvdense

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/cpu"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/dense"
	"github.com/katalvlaran/matbench/matrix"
)

// ID is the registry key of this library.
const ID bench.LibraryID = "lvdense"

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter logger.
func WithLogger(l zerolog.Logger) Option { return func(a *Adapter) { a.log = l } }

// WithBlocked forces the blocked (true) or plain (false) multiply kernel,
// bypassing CPU detection.
func WithBlocked(on bool) Option {
	return func(a *Adapter) { a.forced, a.blocked = true, on }
}

// Adapter wraps *dense.Matrix.
type Adapter struct {
	log     zerolog.Logger
	once    sync.Once
	forced  bool
	blocked bool
	mul     func(a, b *dense.Matrix) (*dense.Matrix, error)
}

var _ bench.LibraryAdapter = (*Adapter)(nil)

// New returns an lvdense adapter; the plain multiply is used until Configure.
func New(opts ...Option) *Adapter {
	a := &Adapter{log: zerolog.Nop(), mul: dense.Mul}
	for _, o := range opts {
		o(a)
	}

	return a
}

func (a *Adapter) Library() bench.LibraryID { return ID }

// Configure picks the multiply kernel once.
func (a *Adapter) Configure() error {
	a.once.Do(func() {
		if !a.forced {
			a.blocked = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
		}
		if a.blocked {
			a.mul = dense.MulBlocked
		}
		a.log.Debug().Str("library", string(ID)).Bool("blocked", a.blocked).Bool("forced", a.forced).Msg("multiply kernel selected")
	})

	return nil
}

// Blocked reports whether the blocked multiply kernel is active.
func (a *Adapter) Blocked() bool { return a.blocked }

func (a *Adapter) Supports(kind bench.OperationKind) bool {
	return kind.Valid() && kind != bench.OpSVD
}

func (a *Adapter) Create(rows, cols int) (*bench.MatrixHandle, error) {
	m, err := dense.New(rows, cols)
	if err != nil {
		return nil, bench.NewAllocationError(ID, rows, cols, err)
	}

	return bench.NewHandle(a, m, rows, cols), nil
}

func (a *Adapter) Wrap(native any) (*bench.MatrixHandle, error) {
	m, ok := native.(*dense.Matrix)
	if !ok || m == nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, fmt.Errorf("wrap %T: %w", native, bench.ErrShapeMismatch))
	}
	r, c := m.Dims()

	return bench.NewHandle(a, m, r, c), nil
}

func (a *Adapter) ToNative(m *matrix.Dense) (*bench.MatrixHandle, error) {
	if m == nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, matrix.ErrNilMatrix)
	}
	r, c := m.Dims()
	buf := make([]float64, r*c)
	copy(buf, m.Raw())
	d, err := dense.FromSlice(r, c, buf)
	if err != nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, err)
	}

	return bench.NewHandle(a, d, r, c), nil
}

func (a *Adapter) ToCanonical(h *bench.MatrixHandle) (*matrix.Dense, error) {
	bench.MustOwn(a, h)
	d, ok := h.Native().(*dense.Matrix)
	if !ok {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical, fmt.Errorf("native %T", h.Native()))
	}
	r, c := h.Dims()
	if nr, nc := d.Dims(); nr != r || nc != c {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical,
			fmt.Errorf("native %dx%d, handle %dx%d: %w", nr, nc, r, c, matrix.ErrDimensionMismatch))
	}
	out, err := matrix.NewDenseFrom(r, c, d.Data())
	if err != nil {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical, err)
	}

	return out, nil
}

func native(h *bench.MatrixHandle) *dense.Matrix { return h.Native().(*dense.Matrix) }

// publish stores m into out[slot].
func (a *Adapter) publish(out []*bench.MatrixHandle, slot int, m *dense.Matrix) {
	r, c := m.Dims()
	out[slot] = bench.NewHandle(a, m, r, c)
}

// translate maps dense sentinels onto the bench cause taxonomy, keeping the
// original error in the chain.
func translate(err error) error {
	var cause error
	switch {
	case errors.Is(err, dense.ErrSingular), errors.Is(err, dense.ErrRankDeficient):
		cause = bench.ErrSingular
	case errors.Is(err, dense.ErrNotPositiveDefinite):
		cause = bench.ErrNotPositiveDefinite
	case errors.Is(err, dense.ErrNoConvergence):
		cause = bench.ErrNoConvergence
	case errors.Is(err, dense.ErrDimensionMismatch), errors.Is(err, dense.ErrNonSquare), errors.Is(err, dense.ErrNotSymmetric):
		cause = bench.ErrShapeMismatch
	default:
		return err
	}

	return fmt.Errorf("%w: %w", cause, err)
}

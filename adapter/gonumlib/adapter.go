// SPDX-License-Identifier: MIT

// Package gonumlib adapts gonum.org/v1/gonum/mat to the benchmark contract.
// It supports every operation kind and is the reference library of the suite.
package gonumlib

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/gonum"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/matrix"
)

// ID is the registry key of this library.
const ID bench.LibraryID = "gonum"

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter logger.
func WithLogger(l zerolog.Logger) Option { return func(a *Adapter) { a.log = l } }

// Adapter wraps gonum's *mat.Dense. Zero-sized matrices are held as an empty
// mat.Dense, with the logical shape kept in the handle.
type Adapter struct {
	log  zerolog.Logger
	once sync.Once
}

var _ bench.LibraryAdapter = (*Adapter)(nil)

// New returns a gonum adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{log: zerolog.Nop()}
	for _, o := range opts {
		o(a)
	}

	return a
}

func (a *Adapter) Library() bench.LibraryID { return ID }

// Configure routes blas64 through the pure-Go gonum implementation. Idempotent.
func (a *Adapter) Configure() error {
	a.once.Do(func() {
		blas64.Use(gonum.Implementation{})
		a.log.Debug().Str("library", string(ID)).Msg("blas64 bound to gonum implementation")
	})

	return nil
}

func (a *Adapter) Supports(kind bench.OperationKind) bool { return kind.Valid() }

func (a *Adapter) Create(rows, cols int) (*bench.MatrixHandle, error) {
	if rows < 0 || cols < 0 {
		return nil, bench.NewAllocationError(ID, rows, cols, matrix.ErrBadShape)
	}

	return a.zeros(rows, cols), nil
}

// zeros returns a zero-filled handle of the given logical shape.
func (a *Adapter) zeros(rows, cols int) *bench.MatrixHandle {
	if rows == 0 || cols == 0 {
		return bench.NewHandle(a, &mat.Dense{}, rows, cols)
	}

	return bench.NewHandle(a, mat.NewDense(rows, cols, nil), rows, cols)
}

func (a *Adapter) Wrap(native any) (*bench.MatrixHandle, error) {
	d, ok := native.(*mat.Dense)
	if !ok || d == nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, fmt.Errorf("wrap %T: %w", native, bench.ErrShapeMismatch))
	}
	if d.IsEmpty() {
		return bench.NewHandle(a, d, 0, 0), nil
	}
	r, c := d.Dims()

	return bench.NewHandle(a, d, r, c), nil
}

// ToNative copies m into a new *mat.Dense.
func (a *Adapter) ToNative(m *matrix.Dense) (*bench.MatrixHandle, error) {
	if m == nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, matrix.ErrNilMatrix)
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return bench.NewHandle(a, &mat.Dense{}, r, c), nil
	}
	buf := make([]float64, r*c)
	copy(buf, m.Raw())

	return bench.NewHandle(a, mat.NewDense(r, c, buf), r, c), nil
}

// ToCanonical copies the native matrix row by row (honouring its stride).
func (a *Adapter) ToCanonical(h *bench.MatrixHandle) (*matrix.Dense, error) {
	bench.MustOwn(a, h)
	d, ok := h.Native().(*mat.Dense)
	if !ok {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical, fmt.Errorf("native %T", h.Native()))
	}
	r, c := h.Dims()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical, err)
	}
	if r == 0 || c == 0 {
		return out, nil
	}
	if nr, nc := d.Dims(); nr != r || nc != c {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical,
			fmt.Errorf("native %dx%d, handle %dx%d: %w", nr, nc, r, c, matrix.ErrDimensionMismatch))
	}
	raw := d.RawMatrix()
	dst := out.Raw()
	for i := 0; i < r; i++ {
		copy(dst[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
	}

	return out, nil
}

// dense returns the native *mat.Dense of h.
func dense(h *bench.MatrixHandle) *mat.Dense { return h.Native().(*mat.Dense) }

// Process dispatches kind to its timed kernel.
func (a *Adapter) Process(kind bench.OperationKind, in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	bench.MustOwn(a, in...)
	var (
		elapsed time.Duration
		err     error
	)
	if hasEmpty(in) {
		if elapsed, err = a.empty(kind, in, out, trials); err != nil {
			return 0, bench.NewOperationError(ID, kind, err)
		}
		return elapsed, nil
	}
	switch kind {
	case bench.OpChol:
		elapsed, err = a.chol(in, out, trials)
	case bench.OpLU:
		elapsed, err = a.lu(in, out, trials)
	case bench.OpQR:
		elapsed, err = a.qr(in, out, trials)
	case bench.OpSVD:
		elapsed, err = a.svd(in, out, trials)
	case bench.OpEigSymm:
		elapsed, err = a.eigSymm(in, out, trials)
	case bench.OpDet:
		elapsed, err = a.det(in, out, trials)
	case bench.OpInv:
		elapsed, err = a.inv(in, out, trials)
	case bench.OpInvSymmPosDef:
		elapsed, err = a.invSPD(in, out, trials)
	case bench.OpAdd, bench.OpMult, bench.OpMultTransA, bench.OpScale, bench.OpTranspose:
		elapsed, err = a.elementary(kind, in, out, trials)
	case bench.OpSolveExact, bench.OpSolveOver:
		elapsed, err = a.solve(in, out, trials)
	default:
		return 0, bench.NewOperationError(ID, kind, bench.ErrUnsupported)
	}
	if err != nil {
		return 0, bench.NewOperationError(ID, kind, err)
	}

	return elapsed, nil
}

// publish stores m into out[slot].
func (a *Adapter) publish(out []*bench.MatrixHandle, slot int, m *mat.Dense) {
	r, c := m.Dims()
	out[slot] = bench.NewHandle(a, m, r, c)
}

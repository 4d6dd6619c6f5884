// SPDX-License-Identifier: MIT

// Package sparselib adapts github.com/edp1096/sparse, a Go port of Kundert's
// sparse LU solver, to the benchmark contract.
//
// The library only offers factor-and-solve, so SolveExact is the single
// supported kind. Each timed iteration does what a circuit simulator does on
// every Newton step: clear the matrix, load the stored values through cached
// element pointers, factor, solve.
package sparselib

import (
	"fmt"
	"sync"
	"time"

	"github.com/edp1096/sparse"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/matrix"
)

// ID is the registry key of this library.
const ID bench.LibraryID = "sparse"

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter logger.
func WithLogger(l zerolog.Logger) Option { return func(a *Adapter) { a.log = l } }

// WithDiagonalPivoting toggles the modified-nodal pivot heuristics
// (diagonal pivots preferred). Enabled by default.
func WithDiagonalPivoting(on bool) Option { return func(a *Adapter) { a.nodal = on } }

// Solver settings shared by every matrix.
const (
	tiesMultiplier = 5
	printerWidth   = 140
)

// Matrix is the native value of this adapter. Values are kept row-major in
// vals; square matrices additionally own a sparse.Matrix whose structural
// nonzeros are cached in elems.
type Matrix struct {
	rows, cols int
	vals       []float64

	sp    *sparse.Matrix
	elems []*sparse.Element
	at    []int // vals offset of elems[k]
}

// Dims returns (rows, cols).
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// Adapter binds edp1096/sparse.
type Adapter struct {
	log   zerolog.Logger
	nodal bool
	once  sync.Once
	cfg   *sparse.Configuration
}

var (
	_ bench.LibraryAdapter = (*Adapter)(nil)
	_ bench.Releaser       = (*Adapter)(nil)
)

// New returns a sparse adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{log: zerolog.Nop(), nodal: true}
	for _, o := range opts {
		o(a)
	}

	return a
}

func (a *Adapter) Library() bench.LibraryID { return ID }

// Configure builds the solver configuration: real arithmetic, expandable
// structure, modified-nodal pivoting heuristics.
func (a *Adapter) Configure() error {
	a.once.Do(func() {
		a.cfg = a.config()
		a.log.Debug().Str("library", string(ID)).Bool("modified_nodal", a.nodal).Msg("sparse configuration ready")
	})

	return nil
}

func (a *Adapter) config() *sparse.Configuration {
	return &sparse.Configuration{
		Real:           true,
		Complex:        false,
		Expandable:     true,
		Translate:      false,
		ModifiedNodal:  a.nodal,
		TiesMultiplier: tiesMultiplier,
		PrinterWidth:   printerWidth,
		Annotate:       0,
	}
}

// configuration returns the configured settings, building them on first use
// when Configure was skipped.
func (a *Adapter) configuration() *sparse.Configuration {
	_ = a.Configure()
	return a.cfg
}

func (a *Adapter) Supports(kind bench.OperationKind) bool { return kind == bench.OpSolveExact }

func (a *Adapter) Create(rows, cols int) (*bench.MatrixHandle, error) {
	if rows < 0 || cols < 0 {
		return nil, bench.NewAllocationError(ID, rows, cols, matrix.ErrBadShape)
	}
	m, err := a.build(rows, cols, make([]float64, rows*cols))
	if err != nil {
		return nil, bench.NewAllocationError(ID, rows, cols, err)
	}

	return bench.NewHandle(a, m, rows, cols), nil
}

func (a *Adapter) Wrap(native any) (*bench.MatrixHandle, error) {
	m, ok := native.(*Matrix)
	if !ok || m == nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, fmt.Errorf("wrap %T: %w", native, bench.ErrShapeMismatch))
	}

	return bench.NewHandle(a, m, m.rows, m.cols), nil
}

func (a *Adapter) ToNative(src *matrix.Dense) (*bench.MatrixHandle, error) {
	if src == nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, matrix.ErrNilMatrix)
	}
	r, c := src.Dims()
	vals := make([]float64, r*c)
	copy(vals, src.Raw())
	m, err := a.build(r, c, vals)
	if err != nil {
		return nil, bench.NewConversionError(ID, bench.DirToNative, err)
	}

	return bench.NewHandle(a, m, r, c), nil
}

func (a *Adapter) ToCanonical(h *bench.MatrixHandle) (*matrix.Dense, error) {
	bench.MustOwn(a, h)
	m, ok := h.Native().(*Matrix)
	if !ok {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical, fmt.Errorf("native %T", h.Native()))
	}
	r, c := h.Dims()
	if m.rows != r || m.cols != c {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical,
			fmt.Errorf("native %dx%d, handle %dx%d: %w", m.rows, m.cols, r, c, matrix.ErrDimensionMismatch))
	}
	out, err := matrix.NewDenseFrom(r, c, m.vals)
	if err != nil {
		return nil, bench.NewConversionError(ID, bench.DirToCanonical, err)
	}

	return out, nil
}

// Release destroys the sparse structure of h, if any.
func (a *Adapter) Release(h *bench.MatrixHandle) {
	m, ok := h.Native().(*Matrix)
	if !ok || m.sp == nil {
		return
	}
	m.sp.Destroy()
	m.sp, m.elems, m.at = nil, nil, nil
}

// build wraps vals; square non-empty shapes get a sparse.Matrix with one
// element per nonzero.
func (a *Adapter) build(rows, cols int, vals []float64) (*Matrix, error) {
	m := &Matrix{rows: rows, cols: cols, vals: vals}
	if rows != cols || rows == 0 {
		return m, nil
	}
	sp, err := sparse.Create(int64(rows), a.configuration())
	if err != nil {
		return nil, fmt.Errorf("sparse.Create(%d): %w", rows, err)
	}
	m.sp = sp
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			v = vals[i*cols+j]
			if v == 0 {
				continue
			}
			e := sp.GetElement(int64(i+1), int64(j+1))
			e.Real = v
			m.elems = append(m.elems, e)
			m.at = append(m.at, i*cols+j)
		}
	}

	return m, nil
}

// Process runs the load/factor/solve cycle trials times.
//
// Implementation:
//   - Stage 1 (untimed): check shapes; allocate the 1-based right-hand side.
//   - Stage 2 (timed): Clear, reload every cached element, Factor, Solve.
//   - Stage 3 (untimed): publish x as an n×1 Matrix without sparse structure.
//
// Errors:
//   - ErrUnsupported for any kind but SolveExact.
//   - ErrShapeMismatch when A is not square or b is not n×1.
//   - ErrSingular when Factor or Solve fails.
func (a *Adapter) Process(kind bench.OperationKind, in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	bench.MustOwn(a, in...)
	if kind != bench.OpSolveExact {
		return 0, bench.NewOperationError(ID, kind, bench.ErrUnsupported)
	}
	am := in[0].Native().(*Matrix)
	bm := in[1].Native().(*Matrix)
	n := am.rows
	if am.cols != n || bm.rows != n || bm.cols != 1 {
		return 0, bench.NewOperationError(ID, kind, bench.ErrShapeMismatch)
	}
	if n == 0 {
		elapsed, err := bench.TimeLoop(trials, func() error { return nil })
		if err != nil {
			return 0, bench.NewOperationError(ID, kind, err)
		}
		a.publish(out, &Matrix{cols: 1})
		return elapsed, nil
	}
	if am.sp == nil {
		return 0, bench.NewOperationError(ID, kind, fmt.Errorf("matrix released: %w", bench.ErrShapeMismatch))
	}

	rhs := make([]float64, n+1)
	var solution []float64
	elapsed, err := bench.TimeLoop(trials, func() error {
		am.sp.Clear()
		for k, e := range am.elems {
			e.Real = am.vals[am.at[k]]
		}
		copy(rhs[1:], bm.vals)
		if err := am.sp.Factor(); err != nil {
			return fmt.Errorf("%w: factor: %v", bench.ErrSingular, err)
		}
		x, err := am.sp.Solve(rhs)
		if err != nil {
			return fmt.Errorf("%w: solve: %v", bench.ErrSingular, err)
		}
		solution = x
		return nil
	})
	if err != nil {
		return 0, bench.NewOperationError(ID, kind, err)
	}
	if len(solution) < n+1 {
		return 0, bench.NewOperationError(ID, kind, fmt.Errorf("solution length %d: %w", len(solution), bench.ErrShapeMismatch))
	}
	x := &Matrix{rows: n, cols: 1, vals: make([]float64, n)}
	copy(x.vals, solution[1:n+1])
	a.publish(out, x)

	return elapsed, nil
}

func (a *Adapter) publish(out []*bench.MatrixHandle, m *Matrix) {
	out[0] = bench.NewHandle(a, m, m.rows, m.cols)
}

// SPDX-License-Identifier: MIT

// Package benchtest provides an in-memory LibraryAdapter for tests: natives
// are *matrix.Dense clones, the operation body is injectable and both the
// operation and the conversions can be slowed down by fixed delays.
package benchtest

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/matrix"
)

// OpFunc computes one iteration of kind on canonical operands.
type OpFunc func(kind bench.OperationKind, in []*matrix.Dense) ([]*matrix.Dense, error)

// Adapter is a configurable fake library.
type Adapter struct {
	ID           bench.LibraryID
	Op           OpFunc                       // nil means Reference
	Only         map[bench.OperationKind]bool // nil means every kind
	OpDelay      time.Duration                // slept once per iteration inside the timed loop
	ConvertDelay time.Duration                // slept by ToNative and ToCanonical
	// CorruptShape makes ToCanonical return a transposed shape (adapter bug simulation).
	CorruptShape bool

	configured atomic.Int32
	released   atomic.Int32
}

var (
	_ bench.LibraryAdapter = (*Adapter)(nil)
	_ bench.Releaser       = (*Adapter)(nil)
)

// New returns a fake adapter named id using Reference.
func New(id bench.LibraryID) *Adapter { return &Adapter{ID: id} }

func (a *Adapter) Library() bench.LibraryID { return a.ID }

// Configure counts calls.
func (a *Adapter) Configure() error {
	a.configured.Add(1)
	return nil
}

// Configured returns the number of Configure calls.
func (a *Adapter) Configured() int { return int(a.configured.Load()) }

// Released returns the number of Release calls.
func (a *Adapter) Released() int { return int(a.released.Load()) }

func (a *Adapter) Release(*bench.MatrixHandle) { a.released.Add(1) }

func (a *Adapter) Create(rows, cols int) (*bench.MatrixHandle, error) {
	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, bench.NewAllocationError(a.ID, rows, cols, err)
	}
	return bench.NewHandle(a, m, rows, cols), nil
}

func (a *Adapter) Wrap(native any) (*bench.MatrixHandle, error) {
	m, ok := native.(*matrix.Dense)
	if !ok {
		return nil, bench.NewConversionError(a.ID, bench.DirToNative, fmt.Errorf("wrap %T", native))
	}
	r, c := m.Dims()
	return bench.NewHandle(a, m, r, c), nil
}

func (a *Adapter) ToNative(m *matrix.Dense) (*bench.MatrixHandle, error) {
	if a.ConvertDelay > 0 {
		time.Sleep(a.ConvertDelay)
	}
	return a.Wrap(m.Clone())
}

func (a *Adapter) ToCanonical(h *bench.MatrixHandle) (*matrix.Dense, error) {
	bench.MustOwn(a, h)
	if a.ConvertDelay > 0 {
		time.Sleep(a.ConvertDelay)
	}
	m := h.Native().(*matrix.Dense)
	if a.CorruptShape {
		r, c := m.Dims()
		out, err := matrix.NewDense(c, r+1)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return m.Clone(), nil
}

func (a *Adapter) Supports(kind bench.OperationKind) bool {
	if a.Only == nil {
		return kind.Valid()
	}
	return a.Only[kind]
}

func (a *Adapter) Process(kind bench.OperationKind, in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	bench.MustOwn(a, in...)
	op := a.Op
	if op == nil {
		op = Reference
	}
	args := make([]*matrix.Dense, len(in))
	for i, h := range in {
		args[i] = h.Native().(*matrix.Dense)
	}

	var res []*matrix.Dense
	elapsed, err := bench.TimeLoop(trials, func() error {
		if a.OpDelay > 0 {
			time.Sleep(a.OpDelay)
		}
		var err error
		res, err = op(kind, args)
		return err
	})
	if err != nil {
		return 0, bench.NewOperationError(a.ID, kind, err)
	}
	for i := range out {
		if i < len(res) && res[i] != nil {
			r, c := res[i].Dims()
			out[i] = bench.NewHandle(a, res[i], r, c)
		}
	}

	return elapsed, nil
}

// Reference implements the element-wise and product kinds with the canonical
// algebra; every other kind reports bench.ErrUnsupported.
func Reference(kind bench.OperationKind, in []*matrix.Dense) ([]*matrix.Dense, error) {
	var (
		m   *matrix.Dense
		err error
	)
	switch kind {
	case bench.OpAdd:
		m, err = matrix.Add(in[0], in[1])
	case bench.OpMult:
		m, err = matrix.Mul(in[0], in[1])
	case bench.OpMultTransA:
		m, err = matrix.MulTransA(in[0], in[1])
	case bench.OpScale:
		m, err = matrix.Scale(in[0], bench.ScaleFactor)
	case bench.OpTranspose:
		m, err = matrix.Transpose(in[0])
	default:
		return nil, bench.ErrUnsupported
	}
	if err != nil {
		return nil, err
	}
	return []*matrix.Dense{m}, nil
}

// SPDX-License-Identifier: MIT

package gonumlib

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matbench/bench"
)

// symmetric copies the upper triangle of a into a SymDense (outside the timed loop).
func symmetric(a *mat.Dense) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, a.At(i, j))
		}
	}

	return s
}

func (a *Adapter) chol(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	sym := symmetric(dense(in[0]))
	var (
		chol mat.Cholesky
		u    mat.TriDense
	)
	elapsed, err := bench.TimeLoop(trials, func() error {
		if ok := chol.Factorize(sym); !ok {
			return bench.ErrNotPositiveDefinite
		}
		u.Reset()
		chol.UTo(&u)
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, mat.DenseCopyOf(&u))

	return elapsed, nil
}

// lu publishes L, U and P with P·A = L·U. gonum reports A = Pg·L·U with
// Pg[i][pivots[i]] = 1, hence P = Pgᵀ.
func (a *Adapter) lu(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	src := dense(in[0])
	n, _ := src.Dims()
	var (
		lu     mat.LU
		l, u   mat.TriDense
		pivots = make([]int, n)
	)
	elapsed, err := bench.TimeLoop(trials, func() error {
		lu.Factorize(src)
		l.Reset()
		u.Reset()
		lu.LTo(&l)
		lu.UTo(&u)
		lu.RowPivots(pivots)
		return nil
	})
	if err != nil {
		return 0, err
	}
	p := mat.NewDense(n, n, nil)
	for i, piv := range pivots {
		p.Set(piv, i, 1)
	}
	a.publish(out, 0, mat.DenseCopyOf(&l))
	a.publish(out, 1, mat.DenseCopyOf(&u))
	a.publish(out, 2, p)

	return elapsed, nil
}

func (a *Adapter) qr(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	src := dense(in[0])
	var (
		qr   mat.QR
		q, r mat.Dense
	)
	elapsed, err := bench.TimeLoop(trials, func() error {
		qr.Factorize(src)
		q.Reset()
		r.Reset()
		qr.QTo(&q)
		qr.RTo(&r)
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, &q)
	a.publish(out, 1, &r)

	return elapsed, nil
}

// svd extracts every component on every iteration.
func (a *Adapter) svd(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	src := dense(in[0])
	var (
		svd    mat.SVD
		u, v   mat.Dense
		values []float64
	)
	elapsed, err := bench.TimeLoop(trials, func() error {
		if ok := svd.Factorize(src, mat.SVDFull); !ok {
			return bench.ErrNoConvergence
		}
		u.Reset()
		v.Reset()
		svd.UTo(&u)
		svd.VTo(&v)
		values = svd.Values(values)
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, &u)
	a.publish(out, 1, diag(values))
	a.publish(out, 2, &v)

	return elapsed, nil
}

// eigSymm publishes eigenvectors in slot 0 and diag(values) in slot 1.
func (a *Adapter) eigSymm(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	sym := symmetric(dense(in[0]))
	var (
		es      mat.EigenSym
		vectors mat.Dense
		values  []float64
	)
	elapsed, err := bench.TimeLoop(trials, func() error {
		if ok := es.Factorize(sym, true); !ok {
			return bench.ErrNoConvergence
		}
		vectors.Reset()
		es.VectorsTo(&vectors)
		values = es.Values(values)
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, &vectors)
	a.publish(out, 1, diag(values))

	return elapsed, nil
}

func (a *Adapter) det(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	src := dense(in[0])
	var d float64
	elapsed, err := bench.TimeLoop(trials, func() error {
		d = mat.Det(src)
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, mat.NewDense(1, 1, []float64{d}))

	return elapsed, nil
}

func (a *Adapter) inv(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	src := dense(in[0])
	var x mat.Dense
	elapsed, err := bench.TimeLoop(trials, func() error {
		x.Reset()
		if err := x.Inverse(src); err != nil {
			return fmt.Errorf("%w: %v", bench.ErrSingular, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, &x)

	return elapsed, nil
}

func (a *Adapter) invSPD(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	sym := symmetric(dense(in[0]))
	var (
		chol mat.Cholesky
		inv  mat.SymDense
	)
	elapsed, err := bench.TimeLoop(trials, func() error {
		if ok := chol.Factorize(sym); !ok {
			return bench.ErrNotPositiveDefinite
		}
		inv.Reset()
		if err := chol.InverseTo(&inv); err != nil {
			return fmt.Errorf("%w: %v", bench.ErrSingular, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, mat.DenseCopyOf(&inv))

	return elapsed, nil
}

// elementary covers the single-result kernels; the receiver is reused across
// iterations and recomputed each time.
func (a *Adapter) elementary(kind bench.OperationKind, in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	x := dense(in[0])
	var y *mat.Dense
	if len(in) > 1 {
		y = dense(in[1])
	}
	if err := checkShapes(kind, x, y); err != nil {
		return 0, err
	}

	var c mat.Dense
	var body func() error
	switch kind {
	case bench.OpAdd:
		body = func() error { c.Add(x, y); return nil }
	case bench.OpMult:
		body = func() error { c.Mul(x, y); return nil }
	case bench.OpMultTransA:
		body = func() error { c.Mul(x.T(), y); return nil }
	case bench.OpScale:
		body = func() error { c.Scale(bench.ScaleFactor, x); return nil }
	default:
		body = func() error { c.Reset(); c.CloneFrom(x.T()); return nil }
	}
	elapsed, err := bench.TimeLoop(trials, body)
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, &c)

	return elapsed, nil
}

// solve uses Dense.Solve: LU for square systems, QR least squares for tall ones.
func (a *Adapter) solve(in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	am, bm := dense(in[0]), dense(in[1])
	ar, _ := am.Dims()
	if br, _ := bm.Dims(); ar != br {
		return 0, bench.ErrShapeMismatch
	}
	var x mat.Dense
	elapsed, err := bench.TimeLoop(trials, func() error {
		x.Reset()
		if err := x.Solve(am, bm); err != nil {
			return fmt.Errorf("%w: %v", bench.ErrSingular, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.publish(out, 0, &x)

	return elapsed, nil
}

// checkShapes turns gonum's dimension panics into ErrShapeMismatch before timing.
func checkShapes(kind bench.OperationKind, x, y *mat.Dense) error {
	xr, xc := x.Dims()
	var yr, yc int
	if y != nil {
		yr, yc = y.Dims()
	}
	switch kind {
	case bench.OpAdd:
		if xr != yr || xc != yc {
			return bench.ErrShapeMismatch
		}
	case bench.OpMult:
		if xc != yr {
			return bench.ErrShapeMismatch
		}
	case bench.OpMultTransA:
		if xr != yr {
			return bench.ErrShapeMismatch
		}
	}

	return nil
}

// diag builds a square diagonal *mat.Dense from values.
func diag(values []float64) *mat.Dense {
	n := len(values)
	d := mat.NewDense(n, n, nil)
	for i, v := range values {
		d.Set(i, i, v)
	}

	return d
}

// hasEmpty reports whether any input has a zero dimension. mat panics on
// those, so they are answered by empty instead of a kernel.
func hasEmpty(in []*bench.MatrixHandle) bool {
	for _, h := range in {
		if r, c := h.Dims(); r == 0 || c == 0 {
			return true
		}
	}

	return false
}

// empty publishes the logical result shapes of kind for zero-sized inputs.
// The loop still runs, so the elapsed time is measured like any other kernel.
func (a *Adapter) empty(kind bench.OperationKind, in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	xr, xc := in[0].Dims()
	var yr, yc int
	if len(in) > 1 {
		yr, yc = in[1].Dims()
	}

	var (
		shapes [][2]int
		ok     = true
	)
	switch kind {
	case bench.OpChol, bench.OpInv, bench.OpInvSymmPosDef:
		ok, shapes = xr == xc, [][2]int{{xr, xr}}
	case bench.OpLU:
		ok, shapes = xr == xc, [][2]int{{xr, xr}, {xr, xr}, {xr, xr}}
	case bench.OpQR:
		shapes = [][2]int{{xr, xr}, {xr, xc}}
	case bench.OpSVD:
		k := min(xr, xc)
		shapes = [][2]int{{xr, xr}, {k, k}, {xc, xc}}
	case bench.OpEigSymm:
		ok, shapes = xr == xc, [][2]int{{xr, xr}, {xr, xr}}
	case bench.OpDet:
		ok = xr == xc
	case bench.OpAdd:
		ok, shapes = xr == yr && xc == yc, [][2]int{{xr, xc}}
	case bench.OpScale:
		shapes = [][2]int{{xr, xc}}
	case bench.OpTranspose:
		shapes = [][2]int{{xc, xr}}
	case bench.OpMult:
		ok, shapes = xc == yr, [][2]int{{xr, yc}}
	case bench.OpMultTransA:
		ok, shapes = xr == yr, [][2]int{{xc, yc}}
	case bench.OpSolveExact, bench.OpSolveOver:
		ok, shapes = xr == yr, [][2]int{{xc, yc}}
	default:
		return 0, bench.ErrUnsupported
	}
	if !ok {
		return 0, bench.ErrShapeMismatch
	}

	elapsed, err := bench.TimeLoop(trials, func() error { return nil })
	if err != nil {
		return 0, err
	}
	if kind == bench.OpDet {
		// empty product
		a.publish(out, 0, mat.NewDense(1, 1, []float64{1}))
		return elapsed, nil
	}
	for i, s := range shapes {
		out[i] = a.zeros(s[0], s[1])
	}

	return elapsed, nil
}

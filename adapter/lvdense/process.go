// SPDX-License-Identifier: MIT

package lvdense

import (
	"time"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/dense"
)

// Process runs kind trials times in one timed loop. Only the last
// iteration's results are kept; normalization (Qtᵀ, diag(values), the
// permutation matrix) happens after the clock stops.
func (a *Adapter) Process(kind bench.OperationKind, in, out []*bench.MatrixHandle, trials int) (time.Duration, error) {
	bench.MustOwn(a, in...)
	if !a.Supports(kind) {
		return 0, bench.NewOperationError(ID, kind, bench.ErrUnsupported)
	}
	x := native(in[0])
	var y *dense.Matrix
	if len(in) > 1 {
		y = native(in[1])
	}

	var (
		results []*dense.Matrix
		values  []float64        // eigenvalues, diagonalized after the loop
		factors *dense.LUFactors // P is expanded after the loop
		body    func() error
	)
	keep := func(ms ...*dense.Matrix) { results = ms }

	switch kind {
	case bench.OpChol:
		body = func() error {
			u, err := dense.Cholesky(x)
			keep(u)
			return err
		}
	case bench.OpLU:
		body = func() error {
			f, err := dense.LU(x)
			if err != nil {
				return err
			}
			factors = f
			keep(f.L, f.U, nil)
			return nil
		}
	case bench.OpQR:
		body = func() error {
			qt, r, err := dense.QR(x)
			keep(qt, r)
			return err
		}
	case bench.OpEigSymm:
		body = func() error {
			vals, vecs, err := dense.EigenSym(x, dense.DefaultEigenTol, dense.DefaultEigenSweeps)
			values = vals
			keep(vecs, nil)
			return err
		}
	case bench.OpDet:
		body = func() error {
			d, err := dense.Det(x)
			if err != nil {
				return err
			}
			m, _ := dense.FromSlice(1, 1, []float64{d})
			keep(m)
			return nil
		}
	case bench.OpInv:
		body = func() error {
			inv, err := dense.Inverse(x)
			keep(inv)
			return err
		}
	case bench.OpInvSymmPosDef:
		body = func() error {
			inv, err := dense.InverseSPD(x)
			keep(inv)
			return err
		}
	case bench.OpAdd:
		body = func() error {
			c, err := dense.Add(x, y)
			keep(c)
			return err
		}
	case bench.OpMult:
		body = func() error {
			c, err := a.mul(x, y)
			keep(c)
			return err
		}
	case bench.OpMultTransA:
		body = func() error {
			c, err := dense.MulTransA(x, y)
			keep(c)
			return err
		}
	case bench.OpScale:
		body = func() error {
			c, err := dense.Scale(bench.ScaleFactor, x)
			keep(c)
			return err
		}
	case bench.OpTranspose:
		body = func() error {
			c, err := dense.Transpose(x)
			keep(c)
			return err
		}
	case bench.OpSolveExact:
		body = func() error {
			s, err := dense.Solve(x, y)
			keep(s)
			return err
		}
	case bench.OpSolveOver:
		body = func() error {
			s, err := dense.LeastSquares(x, y)
			keep(s)
			return err
		}
	}

	elapsed, err := bench.TimeLoop(trials, body)
	if err != nil {
		return 0, bench.NewOperationError(ID, kind, translate(err))
	}
	switch kind {
	case bench.OpLU:
		results[2] = factors.PermutationMatrix()
	case bench.OpQR:
		q, err := dense.Transpose(results[0])
		if err != nil {
			return 0, bench.NewOperationError(ID, kind, translate(err))
		}
		results[0] = q
	case bench.OpEigSymm:
		results[1] = diagonal(values)
	}
	for i, m := range results {
		a.publish(out, i, m)
	}

	return elapsed, nil
}

// diagonal builds a square matrix with values on its diagonal.
func diagonal(values []float64) *dense.Matrix {
	n := len(values)
	d, _ := dense.New(n, n)
	for i, v := range values {
		_ = d.Set(i, i, v)
	}

	return d
}

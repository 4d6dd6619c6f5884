// SPDX-License-Identifier: MIT

package dense_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/dense"
)

// randMatrix returns an r×c matrix with entries in [-1,1) from seed.
func randMatrix(t testing.TB, r, c int, seed int64) *dense.Matrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 2*rng.Float64() - 1
	}
	m, err := dense.FromSlice(r, c, data)
	require.NoError(t, err)

	return m
}

// spd returns BᵀB + n·I.
func spd(t testing.TB, n int, seed int64) *dense.Matrix {
	t.Helper()
	b := randMatrix(t, n, n, seed)
	a, err := dense.MulTransA(b, b)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, a.Set(i, i, a.Data()[i*n+i]+float64(n)))
	}

	return a
}

// requireNear asserts element-wise agreement within tol.
func requireNear(t testing.TB, want, got *dense.Matrix, tol float64) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, []int{wr, wc}, []int{gr, gc}, "shape")
	for i, w := range want.Data() {
		require.InDelta(t, w, got.Data()[i], tol, "flat index %d", i)
	}
}

func TestNewFromSlice(t *testing.T) {
	_, err := dense.New(-1, 1)
	require.ErrorIs(t, err, dense.ErrBadShape)
	_, err = dense.FromSlice(2, 2, []float64{1})
	require.ErrorIs(t, err, dense.ErrBadShape)

	m, err := dense.New(0, 0)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Zero(t, r+c)

	_, err = m.At(0, 0)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
}

func TestProducts(t *testing.T) {
	a := randMatrix(t, 70, 90, 1)
	b := randMatrix(t, 90, 65, 2)

	plain, err := dense.Mul(a, b)
	require.NoError(t, err)
	blocked, err := dense.MulBlocked(a, b)
	require.NoError(t, err)
	requireNear(t, plain, blocked, 1e-12)

	at, err := dense.Transpose(a)
	require.NoError(t, err)
	c := randMatrix(t, 70, 10, 3)
	viaT, err := dense.Mul(at, c)
	require.NoError(t, err)
	direct, err := dense.MulTransA(a, c)
	require.NoError(t, err)
	requireNear(t, viaT, direct, 1e-12)

	_, err = dense.Mul(a, a)
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)

	sum, err := dense.Add(a, a)
	require.NoError(t, err)
	twice, err := dense.Scale(2, a)
	require.NoError(t, err)
	requireNear(t, sum, twice, 0)
}

func TestLU_PivotedReconstruction(t *testing.T) {
	a := randMatrix(t, 12, 12, 7)
	f, err := dense.LU(a)
	require.NoError(t, err)

	pa, err := dense.Mul(f.PermutationMatrix(), a)
	require.NoError(t, err)
	lu, err := dense.Mul(f.L, f.U)
	require.NoError(t, err)
	requireNear(t, pa, lu, 1e-12)

	for i := 0; i < 12; i++ {
		for j := 0; j < i; j++ {
			assert.LessOrEqual(t, math.Abs(f.L.Data()[i*12+j]), 1.0, "pivoting bounds multipliers")
		}
	}
}

func TestLU_ZeroLeadingPivot(t *testing.T) {
	a, err := dense.FromSlice(2, 2, []float64{0, 1, 1, 0})
	require.NoError(t, err)
	d, err := dense.Det(a)
	require.NoError(t, err)
	assert.Equal(t, -1.0, d)

	sing, err := dense.FromSlice(2, 2, []float64{1, 2, 2, 4})
	require.NoError(t, err)
	_, err = dense.Inverse(sing)
	require.ErrorIs(t, err, dense.ErrSingular)
	d, err = dense.Det(sing)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestSolveInverse(t *testing.T) {
	a := randMatrix(t, 20, 20, 11)
	b := randMatrix(t, 20, 1, 12)
	x, err := dense.Solve(a, b)
	require.NoError(t, err)
	ax, err := dense.Mul(a, x)
	require.NoError(t, err)
	requireNear(t, b, ax, 1e-10)

	inv, err := dense.Inverse(a)
	require.NoError(t, err)
	id, err := dense.Mul(a, inv)
	require.NoError(t, err)
	eye, err := dense.New(20, 20)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, eye.Set(i, i, 1))
	}
	requireNear(t, eye, id, 1e-10)

	_, err = dense.Solve(a, randMatrix(t, 3, 1, 1))
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestCholeskyAndInverseSPD(t *testing.T) {
	a := spd(t, 15, 5)
	u, err := dense.Cholesky(a)
	require.NoError(t, err)
	utu, err := dense.MulTransA(u, u)
	require.NoError(t, err)
	requireNear(t, a, utu, 1e-10)
	for i := 1; i < 15; i++ {
		for j := 0; j < i; j++ {
			assert.Zero(t, u.Data()[i*15+j], "U must be upper triangular")
		}
	}

	inv, err := dense.InverseSPD(a)
	require.NoError(t, err)
	ref, err := dense.Inverse(a)
	require.NoError(t, err)
	requireNear(t, ref, inv, 1e-10)

	neg, err := dense.FromSlice(2, 2, []float64{1, 2, 2, 1})
	require.NoError(t, err)
	_, err = dense.Cholesky(neg)
	require.ErrorIs(t, err, dense.ErrNotPositiveDefinite)
}

func TestQR_SquareAndTall(t *testing.T) {
	for _, shape := range [][2]int{{1, 1}, {6, 6}, {9, 4}} {
		a := randMatrix(t, shape[0], shape[1], 21)
		qt, r, err := dense.QR(a)
		require.NoError(t, err)
		back, err := dense.MulTransA(qt, r)
		require.NoError(t, err)
		requireNear(t, a, back, 1e-12)

		m, n := shape[0], shape[1]
		for i := 0; i < m; i++ {
			for j := 0; j < min(i, n); j++ {
				assert.Zero(t, r.Data()[i*n+j])
			}
		}
	}

	_, _, err := dense.QR(randMatrix(t, 2, 3, 1))
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestLeastSquares_NormalEquations(t *testing.T) {
	a := randMatrix(t, 30, 10, 31)
	b := randMatrix(t, 30, 1, 32)
	x, err := dense.LeastSquares(a, b)
	require.NoError(t, err)

	ax, err := dense.Mul(a, x)
	require.NoError(t, err)
	res := ax.Clone()
	for i := range res.Data() {
		res.Data()[i] -= b.Data()[i]
	}
	grad, err := dense.MulTransA(a, res)
	require.NoError(t, err)
	for _, g := range grad.Data() {
		assert.InDelta(t, 0, g, 1e-10)
	}
}

func TestEigenSym(t *testing.T) {
	b := randMatrix(t, 10, 10, 41)
	bt, err := dense.Transpose(b)
	require.NoError(t, err)
	a, err := dense.Add(b, bt)
	require.NoError(t, err)

	vals, v, err := dense.EigenSym(a, dense.DefaultEigenTol, dense.DefaultEigenSweeps)
	require.NoError(t, err)
	require.Len(t, vals, 10)

	av, err := dense.Mul(a, v)
	require.NoError(t, err)
	vd := v.Clone()
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			vd.Data()[i*10+j] *= vals[j]
		}
	}
	requireNear(t, av, vd, 1e-10)

	_, _, err = dense.EigenSym(randMatrix(t, 3, 3, 1), dense.DefaultEigenTol, dense.DefaultEigenSweeps)
	require.ErrorIs(t, err, dense.ErrNotSymmetric)

	_, _, err = dense.EigenSym(a, dense.DefaultEigenTol, 0)
	require.ErrorIs(t, err, dense.ErrNoConvergence)
}

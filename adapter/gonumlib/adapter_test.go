// SPDX-License-Identifier: MIT

package gonumlib_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/matbench/adapter/gonumlib"
	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/generator"
	"github.com/katalvlaran/matbench/matrix"
)

func TestRoundTrip(t *testing.T) {
	a := gonumlib.New()
	require.NoError(t, a.Configure())
	require.NoError(t, a.Configure())

	rng := rand.New(rand.NewSource(3))
	for _, shape := range [][2]int{{0, 0}, {0, 3}, {1, 1}, {3, 5}, {7, 2}} {
		m, err := matrix.Random(rng, shape[0], shape[1], -1, 1)
		require.NoError(t, err)

		h, err := a.ToNative(m)
		require.NoError(t, err)
		r, c := h.Dims()
		assert.Equal(t, shape, [2]int{r, c})

		back, err := a.ToCanonical(h)
		require.NoError(t, err)
		assert.True(t, matrix.Equal(m, back), "shape %v", shape)
	}
}

func TestCreateAndWrap(t *testing.T) {
	a := gonumlib.New()

	h, err := a.Create(2, 3)
	require.NoError(t, err)
	m, err := h.Canonical()
	require.NoError(t, err)
	for _, v := range m.Raw() {
		assert.Zero(t, v)
	}

	_, err = a.Create(-1, 2)
	require.ErrorIs(t, err, bench.ErrAllocation)

	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	w, err := a.Wrap(d)
	require.NoError(t, err)
	assert.Same(t, d, w.Native())

	_, err = a.Wrap([]float64{1})
	require.ErrorIs(t, err, bench.ErrConversion)
}

func TestToCanonical_Strided(t *testing.T) {
	a := gonumlib.New()
	big := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	sub := big.Slice(1, 3, 1, 3).(*mat.Dense)

	h, err := a.Wrap(sub)
	require.NoError(t, err)
	got, err := a.ToCanonical(h)
	require.NoError(t, err)

	want, err := matrix.NewDenseRows([][]float64{{5, 6}, {8, 9}})
	require.NoError(t, err)
	assert.True(t, matrix.Equal(want, got))
}

func TestSolveExact_EndToEnd(t *testing.T) {
	a := gonumlib.New()
	require.NoError(t, a.Configure())
	g := generator.MustNew(bench.OpSolveExact)

	in, err := g.CreateInputs(a, rand.New(rand.NewSource(42)), true, 50)
	require.NoError(t, err)
	out := make([]*bench.MatrixHandle, g.NumOutputs())

	elapsed, err := bench.Execute(a, bench.OpSolveExact, in, out, 5)
	require.NoError(t, err)
	assert.Positive(t, elapsed)

	v, err := g.CheckResults(out, 1e-8)
	require.NoError(t, err)
	assert.Equal(t, bench.NoError, v.Class)
	r, c := out[0].Dims()
	assert.Equal(t, [2]int{50, 1}, [2]int{r, c})
}

func TestEveryOperation_Verifies(t *testing.T) {
	a := gonumlib.New()
	require.NoError(t, a.Configure())

	for _, kind := range bench.AllOperations() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			require.True(t, a.Supports(kind))
			g := generator.MustNew(kind)
			in, err := g.CreateInputs(a, rand.New(rand.NewSource(7)), true, 16)
			require.NoError(t, err)
			out := make([]*bench.MatrixHandle, g.NumOutputs())

			_, err = bench.Execute(a, kind, in, out, 2)
			require.NoError(t, err)

			v, err := g.CheckResults(out, bench.DefaultTolerance)
			require.NoError(t, err)
			assert.Equal(t, bench.NoError, v.Class, "residual %g", v.Residual)
		})
	}
}

func TestChol_NotPositiveDefinite(t *testing.T) {
	a := gonumlib.New()
	m, err := matrix.NewDenseRows([][]float64{{1, 2}, {2, 1}})
	require.NoError(t, err)
	h, err := a.ToNative(m)
	require.NoError(t, err)

	_, err = bench.Execute(a, bench.OpChol, []*bench.MatrixHandle{h}, make([]*bench.MatrixHandle, 1), 1)
	require.ErrorIs(t, err, bench.ErrOperation)
	require.ErrorIs(t, err, bench.ErrNotPositiveDefinite)
	assert.Equal(t, bench.FailureOperation, bench.FailureOf(err))
}

func TestAdd_ShapeMismatch(t *testing.T) {
	a := gonumlib.New()
	x, err := a.Create(2, 2)
	require.NoError(t, err)
	y, err := a.Create(3, 3)
	require.NoError(t, err)

	_, err = bench.Execute(a, bench.OpAdd, []*bench.MatrixHandle{x, y}, make([]*bench.MatrixHandle, 1), 1)
	require.ErrorIs(t, err, bench.ErrShapeMismatch)
}

func TestEveryOperation_EmptyInputs(t *testing.T) {
	a := gonumlib.New()
	require.NoError(t, a.Configure())

	for _, kind := range bench.AllOperations() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			g := generator.MustNew(kind)
			in, err := g.CreateInputs(a, rand.New(rand.NewSource(5)), true, 0)
			require.NoError(t, err)
			out := make([]*bench.MatrixHandle, g.NumOutputs())

			_, err = bench.Execute(a, kind, in, out, 3)
			require.NoError(t, err)

			v, err := g.CheckResults(out, bench.DefaultTolerance)
			require.NoError(t, err)
			assert.Equal(t, bench.NoError, v.Class)
		})
	}
}

func TestEmptyInputs_Shapes(t *testing.T) {
	a := gonumlib.New()
	x, err := a.Create(3, 0)
	require.NoError(t, err)
	y, err := a.Create(0, 2)
	require.NoError(t, err)

	out := make([]*bench.MatrixHandle, 1)
	_, err = bench.Execute(a, bench.OpMult, []*bench.MatrixHandle{x, y}, out, 1)
	require.NoError(t, err)
	r, c := out[0].Dims()
	assert.Equal(t, [2]int{3, 2}, [2]int{r, c})
	m, err := out[0].Canonical()
	require.NoError(t, err)
	for _, v := range m.Raw() {
		assert.Zero(t, v)
	}

	sq, err := a.Create(0, 0)
	require.NoError(t, err)
	_, err = bench.Execute(a, bench.OpDet, []*bench.MatrixHandle{sq}, out, 1)
	require.NoError(t, err)
	d, err := out[0].Canonical()
	require.NoError(t, err)
	got, err := d.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = bench.Execute(a, bench.OpAdd, []*bench.MatrixHandle{x, y}, out, 1)
	require.ErrorIs(t, err, bench.ErrShapeMismatch)
}

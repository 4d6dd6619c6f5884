// SPDX-License-Identifier: MIT

package sparselib_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/adapter/sparselib"
	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/generator"
	"github.com/katalvlaran/matbench/matrix"
)

func TestRoundTrip(t *testing.T) {
	a := sparselib.New()
	require.NoError(t, a.Configure())
	rng := rand.New(rand.NewSource(9))
	for _, shape := range [][2]int{{0, 0}, {1, 1}, {4, 4}, {3, 1}, {2, 5}} {
		m, err := matrix.Random(rng, shape[0], shape[1], -2, 2)
		require.NoError(t, err)
		h, err := a.ToNative(m)
		require.NoError(t, err)
		back, err := a.ToCanonical(h)
		require.NoError(t, err)
		assert.True(t, matrix.Equal(m, back), "shape %v", shape)
		bench.Release(h)
	}
}

func TestSupportsOnlySolveExact(t *testing.T) {
	a := sparselib.New()
	for _, k := range bench.AllOperations() {
		assert.Equal(t, k == bench.OpSolveExact, a.Supports(k), k.String())
	}
}

func TestSolveExact_Verifies(t *testing.T) {
	a := sparselib.New()
	require.NoError(t, a.Configure())
	g := generator.MustNew(bench.OpSolveExact)

	in, err := g.CreateInputs(a, rand.New(rand.NewSource(42)), true, 30)
	require.NoError(t, err)
	defer bench.Release(in...)
	out := make([]*bench.MatrixHandle, 1)

	elapsed, err := bench.Execute(a, bench.OpSolveExact, in, out, 4)
	require.NoError(t, err)
	assert.Positive(t, elapsed)

	v, err := g.CheckResults(out, 1e-8)
	require.NoError(t, err)
	assert.Equal(t, bench.NoError, v.Class, "residual %g", v.Residual)
}

func TestSolveExact_Diagonal(t *testing.T) {
	a := sparselib.New()
	am, err := matrix.NewDenseRows([][]float64{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}})
	require.NoError(t, err)
	bm, err := matrix.NewDenseRows([][]float64{{2}, {2}, {2}})
	require.NoError(t, err)
	ha, err := a.ToNative(am)
	require.NoError(t, err)
	hb, err := a.ToNative(bm)
	require.NoError(t, err)
	defer bench.Release(ha, hb)

	out := make([]*bench.MatrixHandle, 1)
	_, err = bench.Execute(a, bench.OpSolveExact, []*bench.MatrixHandle{ha, hb}, out, 1)
	require.NoError(t, err)

	x, err := out[0].Canonical()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.5, 0.25}, x.Raw(), 1e-12)
}

func TestUnsupportedKind(t *testing.T) {
	a := sparselib.New()
	h, err := a.Create(2, 2)
	require.NoError(t, err)
	_, err = bench.Execute(a, bench.OpTranspose, []*bench.MatrixHandle{h}, make([]*bench.MatrixHandle, 1), 1)
	require.ErrorIs(t, err, bench.ErrUnsupported)
}

func TestSolveExact_Empty(t *testing.T) {
	a := sparselib.New()
	require.NoError(t, a.Configure())
	g := generator.MustNew(bench.OpSolveExact)

	in, err := g.CreateInputs(a, rand.New(rand.NewSource(1)), true, 0)
	require.NoError(t, err)
	defer bench.Release(in...)
	out := make([]*bench.MatrixHandle, 1)

	elapsed, err := bench.Execute(a, bench.OpSolveExact, in, out, 5)
	require.NoError(t, err)
	assert.Positive(t, elapsed, "empty systems still run the timed loop")
	r, c := out[0].Dims()
	assert.Equal(t, [2]int{0, 1}, [2]int{r, c})

	v, err := g.CheckResults(out, 1e-8)
	require.NoError(t, err)
	assert.Equal(t, bench.NoError, v.Class)
}

// SPDX-License-Identifier: MIT

package lvdense_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/adapter/lvdense"
	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/generator"
	"github.com/katalvlaran/matbench/matrix"
)

func TestRoundTrip(t *testing.T) {
	a := lvdense.New()
	rng := rand.New(rand.NewSource(11))
	for _, shape := range [][2]int{{0, 0}, {1, 1}, {2, 6}, {5, 3}} {
		m, err := matrix.Random(rng, shape[0], shape[1], -3, 3)
		require.NoError(t, err)
		h, err := a.ToNative(m)
		require.NoError(t, err)
		back, err := a.ToCanonical(h)
		require.NoError(t, err)
		assert.True(t, matrix.Equal(m, back), "shape %v", shape)
	}
}

func TestConfigure_ForcedKernel(t *testing.T) {
	on := lvdense.New(lvdense.WithBlocked(true))
	require.NoError(t, on.Configure())
	assert.True(t, on.Blocked())

	off := lvdense.New(lvdense.WithBlocked(false))
	require.NoError(t, off.Configure())
	require.NoError(t, off.Configure())
	assert.False(t, off.Blocked())
}

func TestSupports(t *testing.T) {
	a := lvdense.New()
	assert.False(t, a.Supports(bench.OpSVD))
	assert.False(t, a.Supports(bench.OpInvalid))
	assert.True(t, a.Supports(bench.OpEigSymm))

	h, err := a.Create(3, 3)
	require.NoError(t, err)
	_, err = bench.Execute(a, bench.OpSVD, []*bench.MatrixHandle{h}, make([]*bench.MatrixHandle, 3), 1)
	require.ErrorIs(t, err, bench.ErrUnsupported)
	assert.Equal(t, bench.FailureUnsupported, bench.FailureOf(err))
}

func TestEverySupportedOperation_Verifies(t *testing.T) {
	for _, blocked := range []bool{false, true} {
		a := lvdense.New(lvdense.WithBlocked(blocked))
		require.NoError(t, a.Configure())
		for _, kind := range bench.AllOperations() {
			if !a.Supports(kind) {
				continue
			}
			g := generator.MustNew(kind)
			in, err := g.CreateInputs(a, rand.New(rand.NewSource(5)), true, 12)
			require.NoError(t, err)
			out := make([]*bench.MatrixHandle, g.NumOutputs())

			_, err = bench.Execute(a, kind, in, out, 3)
			require.NoError(t, err, "%s blocked=%v", kind, blocked)

			v, err := g.CheckResults(out, bench.DefaultTolerance)
			require.NoError(t, err)
			assert.Equal(t, bench.NoError, v.Class, "%s blocked=%v residual %g", kind, blocked, v.Residual)
		}
	}
}

func TestLU_PivotedPermutation(t *testing.T) {
	a := lvdense.New()
	m, err := matrix.NewDenseRows([][]float64{{0, 1}, {2, 3}})
	require.NoError(t, err)
	h, err := a.ToNative(m)
	require.NoError(t, err)
	out := make([]*bench.MatrixHandle, 3)

	_, err = bench.Execute(a, bench.OpLU, []*bench.MatrixHandle{h}, out, 4)
	require.NoError(t, err)

	p, err := out[2].Canonical()
	require.NoError(t, err)
	want, err := matrix.NewDenseRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	assert.True(t, matrix.Equal(want, p), "got %v", p)

	l, err := out[0].Canonical()
	require.NoError(t, err)
	u, err := out[1].Canonical()
	require.NoError(t, err)
	lu, err := matrix.Mul(l, u)
	require.NoError(t, err)
	pa, err := matrix.Mul(p, m)
	require.NoError(t, err)
	assert.True(t, matrix.Equal(pa, lu))
}

func TestSingularInput(t *testing.T) {
	a := lvdense.New()
	m, err := matrix.NewDenseRows([][]float64{{1, 2}, {2, 4}})
	require.NoError(t, err)
	h, err := a.ToNative(m)
	require.NoError(t, err)

	_, err = bench.Execute(a, bench.OpInv, []*bench.MatrixHandle{h}, make([]*bench.MatrixHandle, 1), 1)
	require.ErrorIs(t, err, bench.ErrOperation)
	require.ErrorIs(t, err, bench.ErrSingular)
}

func TestForeignHandlePanics(t *testing.T) {
	a, b := lvdense.New(), lvdense.New()
	h, err := b.Create(2, 2)
	require.NoError(t, err)

	assert.Panics(t, func() { _, _ = a.ToCanonical(h) })
	assert.Panics(t, func() {
		_, _ = bench.Execute(a, bench.OpTranspose, []*bench.MatrixHandle{h}, make([]*bench.MatrixHandle, 1), 1)
	})
}

// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/matrix"
)

func TestAddSubScale(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{10, 20}, {30, 40}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{11, 22}, {33, 44}}), sum, 0)

	diff, err := matrix.Sub(b, a)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{9, 18}, {27, 36}}), diff, 0)

	sc, err := matrix.Scale(a, 2.5)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{2.5, 5}, {7.5, 10}}), sc, 0)

	_, err = matrix.Add(a, mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMulFamily(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}) // 2x3
	b := mustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	ab, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{58, 64}, {139, 154}}), ab, 0)

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}), at, 0)

	// aᵀ·a via MulTransA equals Mul(aᵀ, a).
	ata, err := matrix.MulTransA(a, a)
	require.NoError(t, err)
	ref, err := matrix.Mul(at, a)
	require.NoError(t, err)
	requireClose(t, ref, ata, 1e-12)

	// a·aᵀ via MulTransB equals Mul(a, aᵀ).
	aat, err := matrix.MulTransB(a, a)
	require.NoError(t, err)
	ref, err = matrix.Mul(a, at)
	require.NoError(t, err)
	requireClose(t, ref, aat, 1e-12)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulTransA(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulTransB(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMul_EmptyInnerDimension(t *testing.T) {
	a, err := matrix.NewDense(2, 0)
	require.NoError(t, err)
	b, err := matrix.NewDense(0, 3)
	require.NoError(t, err)
	ab, err := matrix.Mul(a, b)
	require.NoError(t, err)
	r, c := ab.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	for _, v := range ab.Raw() {
		assert.Zero(t, v)
	}
}

func TestFrobeniusAndResidual(t *testing.T) {
	m := mustRows(t, [][]float64{{3, 0}, {0, 4}})
	f, err := matrix.Frobenius(m)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, f, 1e-15)

	big := mustRows(t, [][]float64{{1e200, 1e200}})
	f, err = matrix.Frobenius(big)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2*1e200, f, 1e186, "scaled accumulation must not overflow")

	f, err = matrix.Frobenius(mustRows(t, [][]float64{{1, math.NaN()}}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))

	found := mustRows(t, [][]float64{{3, 0}, {0, 4.5}})
	res, err := matrix.RelativeResidual(found, m)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, res, 1e-15)

	zero, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	res, err = matrix.RelativeResidual(zero, zero)
	require.NoError(t, err)
	assert.Zero(t, res)

	_, err = matrix.RelativeResidual(m, mustRows(t, [][]float64{{1}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDet(t *testing.T) {
	for _, tc := range []struct {
		name string
		rows [][]float64
		want float64
	}{
		{"2x2", [][]float64{{4, 3}, {6, 3}}, -6},
		{"needs-pivot", [][]float64{{0, 1}, {1, 0}}, -1},
		{"3x3", [][]float64{{2, -3, 1}, {2, 0, -1}, {1, 4, 5}}, 49},
		{"singular", [][]float64{{1, 2}, {2, 4}}, 0},
		{"empty", nil, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, err := matrix.Det(mustRows(t, tc.rows))
			require.NoError(t, err)
			assert.InDelta(t, tc.want, d, 1e-12)
		})
	}

	_, err := matrix.Det(mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

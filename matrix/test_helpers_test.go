// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for the reference algebra tests.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matbench/matrix"
)

// mustRows builds a Dense from literal rows or fails the test.
func mustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseRows(rows)
	require.NoError(t, err)

	return m
}

// mustAt reads (i,j) or fails the test.
func mustAt(t testing.TB, m *matrix.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// mustRandom returns an r×c matrix in [-1,1) from a fixed seed.
func mustRandom(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.Random(rand.New(rand.NewSource(seed)), r, c, -1, 1)
	require.NoError(t, err)

	return m
}

// requireClose asserts a and b have equal shape and agree element-wise within tol.
func requireClose(t testing.TB, want, got *matrix.Dense, tol float64) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr, "rows")
	require.Equal(t, wc, gc, "cols")
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			require.InDelta(t, mustAt(t, want, i, j), mustAt(t, got, i, j), tol, "(%d,%d)", i, j)
		}
	}
}

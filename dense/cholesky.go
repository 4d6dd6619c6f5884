// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"
)

// Cholesky returns the upper-triangular U with A = Uᵀ·U.
//
// Implementation:
//   - Row-oriented: for j=0..n-1, u[j,j] = sqrt(a[j,j] − Σ_{k<j} u[k,j]²),
//     then u[j,i] = (a[j,i] − Σ_{k<j} u[k,j]·u[k,i]) / u[j,j] for i>j.
//   - Only the upper triangle of A is read; symmetry is assumed, not checked.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//   - ErrNotPositiveDefinite when a pivot is not strictly positive (NaN included).
//
// Complexity:
//   - Time O(n³/3), Space O(n²).
func Cholesky(a *Matrix) (*Matrix, error) {
	if err := validateSquare(a); err != nil {
		return nil, denseErrorf(opCholesky, err)
	}
	n := a.rows
	u := newUnchecked(n, n)
	var (
		i, j, k int
		sum     float64
		d       float64
	)
	for j = 0; j < n; j++ {
		sum = a.data[j*n+j]
		for k = 0; k < j; k++ {
			sum -= u.data[k*n+j] * u.data[k*n+j]
		}
		if !(sum > 0) {
			return nil, denseErrorf(opCholesky, fmt.Errorf("pivot %d: %w", j, ErrNotPositiveDefinite))
		}
		d = math.Sqrt(sum)
		u.data[j*n+j] = d
		for i = j + 1; i < n; i++ {
			sum = a.data[j*n+i]
			for k = 0; k < j; k++ {
				sum -= u.data[k*n+j] * u.data[k*n+i]
			}
			u.data[j*n+i] = sum / d
		}
	}

	return u, nil
}

// InverseSPD returns A⁻¹ for a symmetric positive-definite A via
// A⁻¹ = U⁻¹·U⁻ᵀ where A = Uᵀ·U.
func InverseSPD(a *Matrix) (*Matrix, error) {
	u, err := Cholesky(a)
	if err != nil {
		return nil, denseErrorf(opInverseSPD, err)
	}
	n := a.rows

	// ui = U⁻¹, upper triangular, solved column by column.
	ui := newUnchecked(n, n)
	var i, j, k int
	var sum float64
	for j = 0; j < n; j++ {
		ui.data[j*n+j] = 1.0 / u.data[j*n+j]
		for i = j - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k <= j; k++ {
				sum += u.data[i*n+k] * ui.data[k*n+j]
			}
			ui.data[i*n+j] = -sum / u.data[i*n+i]
		}
	}

	// inv = ui·uiᵀ; symmetric, so fill both halves from the upper one.
	inv := newUnchecked(n, n)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for k = j; k < n; k++ {
				sum += ui.data[i*n+k] * ui.data[j*n+k]
			}
			inv.data[i*n+j] = sum
			inv.data[j*n+i] = sum
		}
	}

	return inv, nil
}

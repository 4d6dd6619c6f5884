// SPDX-License-Identifier: MIT
// Package dense: element-wise kernels and products.
//
// Notes:
//   - All kernels allocate a fresh result; operands are read-only.
//   - MulBlocked tiles the i-k-j loop into blockSize panels; it is selected by
//     callers that know the host has wide vector units.

package dense

import "fmt"

// blockSize is the tile edge used by MulBlocked.
const blockSize = 64

// Add returns a + b.
func Add(a, b *Matrix) (*Matrix, error) {
	if err := validateSameShape(a, b); err != nil {
		return nil, denseErrorf(opAdd, err)
	}
	out := newUnchecked(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}

	return out, nil
}

// Scale returns alpha·a.
func Scale(alpha float64, a *Matrix) (*Matrix, error) {
	if a == nil {
		return nil, denseErrorf(opScale, ErrNilMatrix)
	}
	out := newUnchecked(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = alpha * v
	}

	return out, nil
}

// Transpose returns aᵀ.
func Transpose(a *Matrix) (*Matrix, error) {
	if a == nil {
		return nil, denseErrorf(opTranspose, ErrNilMatrix)
	}

	return transpose(a), nil
}

func transpose(a *Matrix) *Matrix {
	out := newUnchecked(a.cols, a.rows)
	var i, j int // loop iterators
	for i = 0; i < a.rows; i++ {
		for j = 0; j < a.cols; j++ {
			out.data[j*a.rows+i] = a.data[i*a.cols+j]
		}
	}

	return out
}

// validateMul checks a·b is defined.
func validateMul(a, b *Matrix) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.cols != b.rows {
		return fmt.Errorf("%dx%d · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	return nil
}

// Mul returns a·b using an i-k-j loop over flat row slices.
//
// Complexity:
//   - Time O(r·n·c), Space O(r·c).
func Mul(a, b *Matrix) (*Matrix, error) {
	if err := validateMul(a, b); err != nil {
		return nil, denseErrorf(opMul, err)
	}
	out := newUnchecked(a.rows, b.cols)
	mulRange(a, b, out, 0, a.rows, 0, a.cols)

	return out, nil
}

// mulRange accumulates out[i0:i1, :] += a[i0:i1, k0:k1]·b[k0:k1, :].
func mulRange(a, b, out *Matrix, i0, i1, k0, k1 int) {
	n, c := a.cols, b.cols
	var (
		i, k, j int
		aik     float64
		outRow  []float64
		bRow    []float64
	)
	for i = i0; i < i1; i++ {
		outRow = out.data[i*c : (i+1)*c]
		for k = k0; k < k1; k++ {
			aik = a.data[i*n+k]
			if aik == 0 {
				continue
			}
			bRow = b.data[k*c : (k+1)*c]
			for j = range outRow {
				outRow[j] += aik * bRow[j]
			}
		}
	}
}

// MulBlocked returns a·b, tiling rows of a and the shared dimension into
// blockSize panels so each panel of b stays cache resident.
func MulBlocked(a, b *Matrix) (*Matrix, error) {
	if err := validateMul(a, b); err != nil {
		return nil, denseErrorf(opMulBlocked, err)
	}
	out := newUnchecked(a.rows, b.cols)
	var i0, k0 int // panel origins
	for i0 = 0; i0 < a.rows; i0 += blockSize {
		for k0 = 0; k0 < a.cols; k0 += blockSize {
			mulRange(a, b, out, i0, min(i0+blockSize, a.rows), k0, min(k0+blockSize, a.cols))
		}
	}

	return out, nil
}

// MulTransA returns aᵀ·b without forming aᵀ. Requires a.rows == b.rows.
func MulTransA(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, denseErrorf(opMulTransA, ErrNilMatrix)
	}
	if a.rows != b.rows {
		return nil, denseErrorf(opMulTransA,
			fmt.Errorf("%dx%dᵀ · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch))
	}
	r, c := a.cols, b.cols
	out := newUnchecked(r, c)
	var (
		i, k, j int
		aki     float64
		outRow  []float64
		bRow    []float64
	)
	for k = 0; k < a.rows; k++ {
		bRow = b.data[k*c : (k+1)*c]
		for i = 0; i < r; i++ {
			aki = a.data[k*r+i]
			if aki == 0 {
				continue
			}
			outRow = out.data[i*c : (i+1)*c]
			for j = range outRow {
				outRow[j] += aki * bRow[j]
			}
		}
	}

	return out, nil
}

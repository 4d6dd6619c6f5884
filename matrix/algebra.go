// SPDX-License-Identifier: MIT
// Package matrix provides the reference algebra used to verify library
// outputs: element-wise addition and subtraction, products (plain, Aᵀ·B and
// A·Bᵀ), transpose and scalar scaling. All functions validate fail-fast and
// allocate a fresh result; operands are never mutated.
//
// Notes:
//   - These kernels are the ground truth for residual checks, never the subject
//     of a benchmark; they favour a fixed loop order over speed.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opMul        = "Mul"
	opMulTransA  = "MulTransA"
	opMulTransB  = "MulTransB"
	opTranspose  = "Transpose"
	opScale      = "Scale"
	opDet        = "Det"
	opFrobenius  = "Frobenius"
	opRelResidue = "RelativeResidual"
)

// ZeroSum is the initial value for dot-product accumulation.
const ZeroSum = 0.0

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
func addSub(a, b *Dense, sign float64, opTag string) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] + sign*b.data[i]
	}

	return out, nil
}

// Add returns a + b. Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b. Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha·m.
func Scale(m *Dense, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for i, v := range m.data {
		out.data[i] = alpha * v
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	var i, j int // loop iterators
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Mul returns the product a·b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate r×c result.
//   - Stage 2: i-k-j loop order so the inner loop streams rows of b and out.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r·n·c), Space O(r·c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, n, c := a.r, a.c, b.c
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var (
		i, k, j int     // loop iterators
		aik     float64 // cached a[i,k]
		outRow  []float64
		bRow    []float64
	)
	for i = 0; i < r; i++ {
		outRow = out.data[i*c : (i+1)*c]
		for k = 0; k < n; k++ {
			aik = a.data[i*n+k]
			if aik == 0 {
				continue
			}
			bRow = b.data[k*c : (k+1)*c]
			for j = 0; j < c; j++ {
				outRow[j] += aik * bRow[j]
			}
		}
	}

	return out, nil
}

// MulTransA returns aᵀ·b without materializing aᵀ. Requires a.Rows == b.Rows.
func MulTransA(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a, b); err != nil {
		return nil, matrixErrorf(opMulTransA, err)
	}
	if a.r != b.r {
		return nil, matrixErrorf(opMulTransA,
			fmt.Errorf("%dx%dᵀ · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	r, n, c := a.c, a.r, b.c
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, k, j int // loop iterators
	var aki float64
	for k = 0; k < n; k++ {
		for i = 0; i < r; i++ {
			aki = a.data[k*r+i]
			if aki == 0 {
				continue
			}
			for j = 0; j < c; j++ {
				out.data[i*c+j] += aki * b.data[k*c+j]
			}
		}
	}

	return out, nil
}

// MulTransB returns a·bᵀ without materializing bᵀ. Requires a.Cols == b.Cols.
func MulTransB(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a, b); err != nil {
		return nil, matrixErrorf(opMulTransB, err)
	}
	if a.c != b.c {
		return nil, matrixErrorf(opMulTransB,
			fmt.Errorf("%dx%d · %dx%dᵀ: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	r, n, c := a.r, a.c, b.r
	out := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, j, k int // loop iterators
	var sum float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			sum = ZeroSum
			for k = 0; k < n; k++ {
				sum += a.data[i*n+k] * b.data[j*n+k]
			}
			out.data[i*c+j] = sum
		}
	}

	return out, nil
}

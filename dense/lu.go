// SPDX-License-Identifier: MIT

package dense

import "fmt"

// LUFactors holds a partially pivoted factorization P·A = L·U.
//   - L is unit lower triangular, U upper triangular (both n×n).
//   - Perm[i] is the row of A that became row i of P·A.
//   - Sign is +1 or -1, the parity of the row permutation.
type LUFactors struct {
	L, U *Matrix
	Perm []int
	Sign float64
}

// LU computes the Doolittle factorization with partial (row) pivoting.
//
// Implementation:
//   - Stage 1: validate square; copy A into a working buffer; Perm = identity.
//   - Stage 2: for k=0..n-1 choose the row p>=k with the largest |a[p,k]|,
//     swap rows k and p of the buffer (and of Perm), then eliminate below,
//     storing the multipliers in the strictly lower part.
//   - Stage 3: split the buffer into unit-lower L and upper U.
//
// Behavior highlights:
//   - Pivoting keeps |L[i,j]| <= 1, which is what makes random inputs stable.
//   - A column that is exactly zero at and below the diagonal yields ErrSingular.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(a *Matrix) (*LUFactors, error) {
	if err := validateSquare(a); err != nil {
		return nil, denseErrorf(opLU, err)
	}
	n := a.rows
	w := make([]float64, len(a.data))
	copy(w, a.data)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var (
		i, j, k, p int
		best, abs  float64
		f          float64
	)
	for k = 0; k < n; k++ {
		p, best = k, -1.0
		for i = k; i < n; i++ {
			abs = w[i*n+k]
			if abs < 0 {
				abs = -abs
			}
			if abs > best {
				p, best = i, abs
			}
		}
		if best == 0 {
			return nil, denseErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				w[k*n+j], w[p*n+j] = w[p*n+j], w[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}
		for i = k + 1; i < n; i++ {
			f = w[i*n+k] / w[k*n+k]
			w[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				w[i*n+j] -= f * w[k*n+j]
			}
		}
	}

	l, u := newUnchecked(n, n), newUnchecked(n, n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case j < i:
				l.data[i*n+j] = w[i*n+j]
			case j == i:
				l.data[i*n+j] = 1.0
				u.data[i*n+j] = w[i*n+j]
			default:
				u.data[i*n+j] = w[i*n+j]
			}
		}
	}

	return &LUFactors{L: l, U: u, Perm: perm, Sign: sign}, nil
}

// PermutationMatrix returns P such that P·A = L·U.
func (f *LUFactors) PermutationMatrix() *Matrix {
	n := len(f.Perm)
	p := newUnchecked(n, n)
	for i, src := range f.Perm {
		p.data[i*n+src] = 1.0
	}

	return p
}

// Det returns det(A) = Sign·Π U[i,i].
func (f *LUFactors) Det() float64 {
	n := len(f.Perm)
	d := f.Sign
	for i := 0; i < n; i++ {
		d *= f.U.data[i*n+i]
	}

	return d
}

// solveInto overwrites x with the solution of A·x = b for one right-hand side.
func (f *LUFactors) solveInto(b, x []float64) {
	n := len(f.Perm)
	var i, k int
	var sum float64
	// forward: L·y = P·b (y stored in x)
	for i = 0; i < n; i++ {
		sum = b[f.Perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.L.data[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// backward: U·x = y
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= f.U.data[i*n+k] * x[k]
		}
		x[i] = sum / f.U.data[i*n+i]
	}
}

// Det returns the determinant of a square matrix. A singular matrix has det 0.
func Det(a *Matrix) (float64, error) {
	fac, err := LU(a)
	if err != nil {
		if isSingular(err) {
			return 0, nil
		}
		return 0, denseErrorf(opDet, err)
	}

	return fac.Det(), nil
}

// Solve returns X with A·X = B for square A and any number of columns in B.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular.
func Solve(a, b *Matrix) (*Matrix, error) {
	if b == nil {
		return nil, denseErrorf(opSolve, ErrNilMatrix)
	}
	if err := validateSquare(a); err != nil {
		return nil, denseErrorf(opSolve, err)
	}
	if a.rows != b.rows {
		return nil, denseErrorf(opSolve,
			fmt.Errorf("%dx%d \\ %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch))
	}
	fac, err := LU(a)
	if err != nil {
		return nil, denseErrorf(opSolve, err)
	}

	return fac.solveColumns(b), nil
}

// solveColumns solves A·X = B column by column.
func (f *LUFactors) solveColumns(b *Matrix) *Matrix {
	n, m := b.rows, b.cols
	x := newUnchecked(n, m)
	col, sol := make([]float64, n), make([]float64, n)
	var i, j int
	for j = 0; j < m; j++ {
		for i = 0; i < n; i++ {
			col[i] = b.data[i*m+j]
		}
		f.solveInto(col, sol)
		for i = 0; i < n; i++ {
			x.data[i*m+j] = sol[i]
		}
	}

	return x
}

// Inverse returns A⁻¹ by solving A·X = I with one pivoted LU.
func Inverse(a *Matrix) (*Matrix, error) {
	fac, err := LU(a)
	if err != nil {
		return nil, denseErrorf(opInverse, err)
	}
	n := a.rows
	id := newUnchecked(n, n)
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return fac.solveColumns(id), nil
}

// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"
)

// QR computes a Householder factorization of an m×n matrix (m >= n) such
// that A = Qtᵀ·R.
// Implementation:
//   - Stage 1: clone A (becomes R); init Qt to the m×m identity.
//   - Stage 2: for k=0..min(m-1,n)-1, build the reflector v that zeroes
//     A[k+1:m, k] and apply H = I − τ·v·vᵀ to the working copy and to Qt.
//
// Behavior highlights:
//   - The accumulated reflectors are returned as Qt (note A = Qtᵀ·R, not Qt·R);
//     callers wanting Q transpose it.
//   - Zero columns are skipped, so rank-deficient input never divides by zero.
//
// Returns:
//   - qt: m×m orthogonal.
//   - r : m×n upper triangular.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (m < n).
//
// Complexity:
//   - Time O(m²n), Space O(m² + mn).
func QR(a *Matrix) (qt, r *Matrix, err error) {
	if a == nil {
		return nil, nil, denseErrorf(opQR, ErrNilMatrix)
	}
	m, n := a.rows, a.cols
	if m < n {
		return nil, nil, denseErrorf(opQR, fmt.Errorf("%dx%d wide: %w", m, n, ErrDimensionMismatch))
	}
	r = a.Clone()
	qt = newUnchecked(m, m)
	for i := 0; i < m; i++ {
		qt.data[i*m+i] = 1.0
	}

	v := make([]float64, m)
	var (
		i, j, k    int
		norm, beta float64
		alpha, tau float64
		sum        float64
		steps      = min(m-1, n)
	)
	for k = 0; k < steps; k++ {
		// norm of r[k:m, k]
		norm = 0
		for i = k; i < m; i++ {
			norm += r.data[i*n+k] * r.data[i*n+k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		alpha = -math.Copysign(norm, r.data[k*n+k])

		beta = 0
		for i = k; i < m; i++ {
			v[i] = r.data[i*n+k]
		}
		v[k] -= alpha
		for i = k; i < m; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau = 2.0 / beta

		// R ← H·R (columns k..n-1)
		for j = k; j < n; j++ {
			sum = 0
			for i = k; i < m; i++ {
				sum += v[i] * r.data[i*n+j]
			}
			sum *= tau
			for i = k; i < m; i++ {
				r.data[i*n+j] -= sum * v[i]
			}
		}
		// clean the annihilated entries exactly
		for i = k + 1; i < m; i++ {
			r.data[i*n+k] = 0
		}

		// Qt ← H·Qt
		for j = 0; j < m; j++ {
			sum = 0
			for i = k; i < m; i++ {
				sum += v[i] * qt.data[i*m+j]
			}
			sum *= tau
			for i = k; i < m; i++ {
				qt.data[i*m+j] -= sum * v[i]
			}
		}
	}

	return qt, r, nil
}

// LeastSquares returns x (n×k) minimising ‖A·x − B‖_F for m×n A with m >= n.
//
// Implementation:
//   - Stage 1: QR(A) → Qt, R.
//   - Stage 2: C = Qt·B, then back-substitute R[0:n,0:n]·x = C[0:n,:].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrRankDeficient.
func LeastSquares(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, denseErrorf(opLeastSquare, ErrNilMatrix)
	}
	if a.rows != b.rows {
		return nil, denseErrorf(opLeastSquare,
			fmt.Errorf("%dx%d \\ %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch))
	}
	qt, r, err := QR(a)
	if err != nil {
		return nil, denseErrorf(opLeastSquare, err)
	}
	c, err := Mul(qt, b)
	if err != nil {
		return nil, denseErrorf(opLeastSquare, err)
	}
	n, kc := a.cols, b.cols
	x := newUnchecked(n, kc)
	var i, j, l int
	var sum, d float64
	for j = 0; j < kc; j++ {
		for i = n - 1; i >= 0; i-- {
			sum = c.data[i*kc+j]
			for l = i + 1; l < n; l++ {
				sum -= r.data[i*n+l] * x.data[l*kc+j]
			}
			d = r.data[i*n+i]
			if d == 0 {
				return nil, denseErrorf(opLeastSquare, fmt.Errorf("R[%d,%d]: %w", i, i, ErrRankDeficient))
			}
			x.data[i*kc+j] = sum / d
		}
	}

	return x, nil
}

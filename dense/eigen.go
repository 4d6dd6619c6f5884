// SPDX-License-Identifier: MIT

package dense

import (
	"fmt"
	"math"
)

// Eigen sweep policy.
const (
	// DefaultEigenTol is the relative off-diagonal threshold ‖off(A)‖_F <= tol·‖A‖_F.
	DefaultEigenTol = 1e-14

	// DefaultEigenSweeps bounds the number of cyclic Jacobi sweeps.
	DefaultEigenSweeps = 100

	// symmetryTol is the relative tolerance used by the input symmetry check.
	symmetryTol = 1e-12
)

// EigenSym diagonalizes a symmetric matrix with cyclic Jacobi rotations.
// Implementation:
//   - Stage 1: validate square and symmetric; copy A; V = I.
//   - Stage 2: sweep every (p,q), p<q, in row order; rotate when |a[p,q]| is
//     non-zero, accumulating each rotation into V.
//   - Stage 3: stop when the off-diagonal mass falls below tol·‖A‖_F.
//
// Behavior highlights:
//   - Eigenvalues are returned in diagonal order, unsorted; V's column i pairs with values[i].
//   - A·V = V·diag(values) up to rounding.
//
// Returns:
//   - values: n eigenvalues.
//   - vectors: n×n orthogonal V.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNotSymmetric, ErrNoConvergence.
//
// Complexity:
//   - Time O(n³) per sweep, typically 6–10 sweeps; Space O(n²).
func EigenSym(a *Matrix, tol float64, maxSweeps int) (values []float64, vectors *Matrix, err error) {
	if err = validateSquare(a); err != nil {
		return nil, nil, denseErrorf(opEigenSym, err)
	}
	n := a.rows
	w := a.Clone()
	v := newUnchecked(n, n)
	var (
		i, j, p, q int
		total      float64 // ‖A‖_F²
		off        float64 // Σ_{i≠j} a[i,j]²
		app, aqq   float64
		apq        float64
		aip, aiq   float64
		theta, t   float64
		c, s       float64
		sweep      int
	)
	for i = 0; i < n; i++ {
		v.data[i*n+i] = 1.0
		for j = 0; j < n; j++ {
			total += w.data[i*n+j] * w.data[i*n+j]
		}
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(w.data[i*n+j]-w.data[j*n+i]) > symmetryTol*math.Sqrt(total) {
				return nil, nil, denseErrorf(opEigenSym, fmt.Errorf("(%d,%d): %w", i, j, ErrNotSymmetric))
			}
		}
	}

	limit := tol * tol * total
	for sweep = 0; ; sweep++ {
		off = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off += 2 * w.data[i*n+j] * w.data[i*n+j]
			}
		}
		if off <= limit {
			break
		}
		if sweep == maxSweeps {
			return nil, nil, denseErrorf(opEigenSym, fmt.Errorf("after %d sweeps: %w", maxSweeps, ErrNoConvergence))
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = w.data[p*n+q]
				if apq == 0 {
					continue
				}
				app = w.data[p*n+p]
				aqq = w.data[q*n+q]
				// θ = (aqq−app)/(2·apq), t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == q {
						continue
					}
					aip = w.data[i*n+p]
					aiq = w.data[i*n+q]
					w.data[i*n+p] = c*aip - s*aiq
					w.data[p*n+i] = w.data[i*n+p]
					w.data[i*n+q] = s*aip + c*aiq
					w.data[q*n+i] = w.data[i*n+q]
				}
				w.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				w.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
				w.data[p*n+q], w.data[q*n+p] = 0, 0

				for i = 0; i < n; i++ {
					aip = v.data[i*n+p]
					aiq = v.data[i*n+q]
					v.data[i*n+p] = c*aip - s*aiq
					v.data[i*n+q] = s*aip + c*aiq
				}
			}
		}
	}

	values = make([]float64, n)
	for i = 0; i < n; i++ {
		values[i] = w.data[i*n+i]
	}

	return values, v, nil
}

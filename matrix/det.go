// SPDX-License-Identifier: MIT

package matrix

// Det computes the determinant of a square matrix by Gaussian elimination
// with partial pivoting on a private copy.
//
// Implementation:
//   - Stage 1: ValidateSquare(m); clone the data.
//   - Stage 2: for each column k pick the row with the largest |a[i,k]| at or
//     below k, swap it up (flipping the sign), then eliminate below the pivot.
//   - Stage 3: det = sign · Π a[k,k].
//
// Behavior highlights:
//   - A 0×0 matrix has determinant 1 (empty product).
//   - An exactly zero pivot column yields 0 rather than an error.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Det(m *Dense) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	n := m.r
	a := make([]float64, len(m.data))
	copy(a, m.data)

	var (
		i, j, k, p int     // loop iterators and pivot row
		best, abs  float64 // pivot magnitudes
		f          float64 // elimination factor
		det        = 1.0
	)
	for k = 0; k < n; k++ {
		p, best = k, -1.0
		for i = k; i < n; i++ {
			abs = a[i*n+k]
			if abs < 0 {
				abs = -abs
			}
			if abs > best {
				p, best = i, abs
			}
		}
		if best == 0 {
			return 0, nil
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			det = -det
		}
		det *= a[k*n+k]
		for i = k + 1; i < n; i++ {
			f = a[i*n+k] / a[k*n+k]
			if f == 0 {
				continue
			}
			for j = k; j < n; j++ {
				a[i*n+j] -= f * a[k*n+j]
			}
		}
	}

	return det, nil
}

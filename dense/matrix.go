// SPDX-License-Identifier: MIT

package dense

import "fmt"

// Matrix is a row-major float64 matrix owned by this library.
//   - rows, cols >= 0; data has exactly rows*cols elements (offset = i*cols + j).
type Matrix struct {
	rows, cols int
	data       []float64
}

// New allocates a zero rows×cols matrix.
// Errors: ErrBadShape for negative dimensions.
func New(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, denseErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}

	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// FromSlice adopts data (no copy) as a rows×cols matrix.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, denseErrorf(opNew, fmt.Errorf("%dx%d len=%d: %w", rows, cols, len(data), ErrBadShape))
	}

	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// newUnchecked allocates without validation; callers guarantee rows, cols >= 0.
func newUnchecked(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Dims returns (rows, cols).
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// Data returns the row-major backing slice (no copy).
func (m *Matrix) Data() []float64 { return m.data }

// At returns m[i,j].
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.data[i*m.cols+j], nil
}

// Set writes m[i,j] = v.
func (m *Matrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return fmt.Errorf("Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	m.data[i*m.cols+j] = v

	return nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := newUnchecked(m.rows, m.cols)
	copy(out.data, m.data)

	return out
}

// validateSquare checks m is non-nil and square.
func validateSquare(m *Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.rows != m.cols {
		return fmt.Errorf("%dx%d: %w", m.rows, m.cols, ErrNonSquare)
	}

	return nil
}

// validateSameShape checks both operands are non-nil and share a shape.
func validateSameShape(a, b *Matrix) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.rows != b.rows || a.cols != b.cols {
		return fmt.Errorf("%dx%d vs %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	return nil
}

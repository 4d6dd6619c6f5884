// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide the library-neutral exchange format every adapter converts to and from.
//   - Keep a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//
// Notes:
//   - Empty shapes (0×0, 0×n, n×0) are legal: round-trips of degenerate matrices must work.
//   - Values are stored verbatim, NaN and ±Inf included; verification needs to see them.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Equal: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Notes:
//   - Keep tags in constants for grep-ability and consistency.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is the canonical row-major matrix.
//   - r,c hold dimensions (rows, cols), both >= 0.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer of rows*cols values.
//
// Behavior highlights:
//   - Zero-sized shapes are accepted and produce an empty buffer.
//   - No panics on user errors; returns sentinel errors.
//
// Inputs:
//   - rows, cols: non-negative dimensions.
//
// Returns:
//   - *Dense: newly allocated matrix.
//
// Errors:
//   - ErrBadShape (negative dimension).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
// Returns ErrBadShape when len(data) != rows*cols or a dimension is negative.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom(%d,%d) len=%d: %w", rows, cols, len(data), ErrBadShape)
	}
	copy(m.data, data)

	return m, nil
}

// NewDenseRows builds a matrix from a slice of equal-length rows.
// A nil or empty rows slice yields a 0×0 matrix.
func NewDenseRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return &Dense{}, nil
	}
	c := len(rows[0])
	m, err := NewDense(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewDenseRows row %d len=%d want %d: %w", i, len(row), c, ErrBadShape)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1.0
	}

	return m, nil
}

// Diag returns the square diagonal matrix with d on its main diagonal.
func Diag(d []float64) *Dense {
	n := len(d)
	m := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i, v := range d {
		m.data[i*n+i] = v
	}

	return m
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Dims returns (rows, cols).
func (m *Dense) Dims() (rows, cols int) { return m.r, m.c }

// Raw exposes the row-major backing slice without copying.
// Adapters use it for bulk conversion; writes are visible in m.
func (m *Dense) Raw() []float64 { return m.data }

// indexOf validates (row, col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the element at (row, col).
// Errors: ErrNilMatrix, ErrOutOfRange (wrapped with coordinates).
func (m *Dense) At(row, col int) (float64, error) {
	if m == nil {
		return 0, denseErrorf(ctxAt, row, col, ErrNilMatrix)
	}
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set writes v at (row, col). Any float64, NaN and ±Inf included, is stored verbatim.
// Errors: ErrNilMatrix, ErrOutOfRange (wrapped with coordinates).
func (m *Dense) Set(row, col int, v float64) error {
	if m == nil {
		return denseErrorf(ctxSet, row, col, ErrNilMatrix)
	}
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy with identical shape and contents.
func (m *Dense) Clone() *Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// Equal reports whether a and b have the same shape and bitwise-identical
// elements. NaN payloads compare by bits, so a NaN round-trips as equal.
func Equal(a, b *Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for i := range a.data {
		if math.Float64bits(a.data[i]) != math.Float64bits(b.data[i]) {
			return false
		}
	}

	return true
}

// HasUncountable reports whether any element is NaN or ±Inf.
func (m *Dense) HasUncountable() bool {
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}

	return false
}

// String renders the matrix row by row; used in test failure messages.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int // loop iterators
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

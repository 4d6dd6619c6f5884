// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"

	"github.com/katalvlaran/matbench/matrix"
)

// MatrixHandle pairs a library-native matrix with the adapter that produced it.
// The shape is cached so degenerate natives (e.g. an empty gonum Dense) still
// report their logical dimensions.
type MatrixHandle struct {
	owner      LibraryAdapter
	native     any
	rows, cols int
}

// NewHandle is called by adapters to publish a native matrix.
func NewHandle(owner LibraryAdapter, native any, rows, cols int) *MatrixHandle {
	return &MatrixHandle{owner: owner, native: native, rows: rows, cols: cols}
}

// Owner returns the adapter that created h.
func (h *MatrixHandle) Owner() LibraryAdapter { return h.owner }

// Native returns the wrapped library object.
func (h *MatrixHandle) Native() any { return h.native }

// Dims returns the logical (rows, cols).
func (h *MatrixHandle) Dims() (int, int) { return h.rows, h.cols }

// Canonical converts h through its owner.
func (h *MatrixHandle) Canonical() (*matrix.Dense, error) {
	return h.owner.ToCanonical(h)
}

// String is used in log lines.
func (h *MatrixHandle) String() string {
	if h == nil {
		return "<nil handle>"
	}
	return fmt.Sprintf("%s[%dx%d]", h.owner.Library(), h.rows, h.cols)
}

// MustOwn panics with ErrForeignHandle when any non-nil handle in hs was not
// created by a. Adapters call it at the top of Process and ToCanonical.
func MustOwn(a LibraryAdapter, hs ...*MatrixHandle) {
	for i, h := range hs {
		if h != nil && h.owner != a {
			panic(fmt.Errorf("%s: handle %d from %s: %w", a.Library(), i, h.owner.Library(), ErrForeignHandle))
		}
	}
}

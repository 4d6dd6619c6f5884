// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// Every message is prefixed with "dense: ..."; kernels wrap them with an
// operation tag via denseErrorf so callers match with errors.Is.

package dense

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned for negative dimensions or a backing slice of the wrong length.
	ErrBadShape = errors.New("dense: invalid shape")

	// ErrOutOfRange indicates an index outside [0,rows)×[0,cols).
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("dense: matrix is not square")

	// ErrNilMatrix indicates that a nil *Matrix was passed.
	ErrNilMatrix = errors.New("dense: nil matrix")

	// ErrSingular is returned when elimination meets an exactly zero pivot.
	ErrSingular = errors.New("dense: singular matrix")

	// ErrNotPositiveDefinite is returned by Cholesky when a diagonal pivot is not > 0.
	ErrNotPositiveDefinite = errors.New("dense: matrix is not positive definite")

	// ErrNotSymmetric signals that a symmetric input was required.
	ErrNotSymmetric = errors.New("dense: matrix is not symmetric")

	// ErrNoConvergence is returned when an iterative kernel exhausts its sweep budget.
	ErrNoConvergence = errors.New("dense: iteration did not converge")

	// ErrRankDeficient is returned by LeastSquares when R has a zero diagonal entry.
	ErrRankDeficient = errors.New("dense: rank deficient system")
)

// Operation name constants for unified error wrapping.
const (
	opNew         = "New"
	opAdd         = "Add"
	opScale       = "Scale"
	opTranspose   = "Transpose"
	opMul         = "Mul"
	opMulBlocked  = "MulBlocked"
	opMulTransA   = "MulTransA"
	opLU          = "LU"
	opDet         = "Det"
	opSolve       = "Solve"
	opInverse     = "Inverse"
	opCholesky    = "Cholesky"
	opInverseSPD  = "InverseSPD"
	opQR          = "QR"
	opLeastSquare = "LeastSquares"
	opEigenSym    = "EigenSym"
)

// denseErrorf wraps err with an operation tag, preserving it via %w.
func denseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isSingular reports whether err carries ErrSingular.
func isSingular(err error) bool { return errors.Is(err, ErrSingular) }

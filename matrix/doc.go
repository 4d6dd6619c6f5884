// SPDX-License-Identifier: MIT

// Package matrix defines the canonical, library-neutral dense matrix used as
// the exchange format between benchmarked libraries, together with the small
// reference algebra needed to verify their results.
//
// What:
//   - Dense: row-major float64 storage with explicit (rows, cols), empty shapes allowed.
//   - Reference algebra: Add, Sub, Scale, Transpose, Mul, MulTransA, MulTransB, Det.
//   - Verification metrics: Frobenius, RelativeResidual, HasUncountable.
//   - Deterministic input synthesis: Randomize / Random from a caller-owned *rand.Rand.
//
// Why:
//   - Every library converts to and from Dense outside the timed region, so
//     the same canonical input can be fed to all of them and every output can
//     be checked against one ground truth.
//
// Errors:
//   - Sentinel errors (ErrBadShape, ErrDimensionMismatch, ErrNonSquare,
//     ErrNilMatrix, ...) wrapped with an operation tag; match with errors.Is.
//
// Determinism:
//   - Fixed loop orders, no map iteration, no hidden randomness.
package matrix

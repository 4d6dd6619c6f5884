// SPDX-License-Identifier: MIT

// Package dense is a small pure-Go dense linear-algebra library: row-major
// float64 matrices with the products, factorizations and solvers a
// benchmark harness exercises.
//
// What:
//   - Products: Add, Scale, Transpose, Mul, MulBlocked, MulTransA.
//   - Factorizations: LU (partial pivoting), Cholesky (A = UᵀU), QR
//     (Householder, A = Qtᵀ·R), EigenSym (cyclic Jacobi).
//   - Solvers: Solve, Inverse, InverseSPD, Det, LeastSquares.
//
// Conventions:
//   - Every kernel allocates its result and never mutates its operands.
//   - QR returns the accumulated reflectors Qt; EigenSym returns (values, vectors).
//
// Errors:
//   - Sentinels (ErrSingular, ErrNotPositiveDefinite, ErrNoConvergence, ...)
//     wrapped with the operation name; match with errors.Is.
package dense

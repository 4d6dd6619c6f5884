// SPDX-License-Identifier: MIT

// Package generator produces reproducible inputs for each benchmarked
// operation and verifies library outputs against the operation's defining
// identity.
//
// Residual metric: relative Frobenius distance ‖found − expected‖_F divided
// by the norm of the original problem (A, b, I or Aᵀb depending on the
// operation), see definitions.go for the full table.
//
// Classification order is Misc (missing or unusable slot), then Uncountable
// (NaN/±Inf), then LargeError / NoError against the tolerance.
package generator

// SPDX-License-Identifier: MIT

// Package matbench runs the same dense linear-algebra operation on several
// independently implemented matrix libraries, under identical random inputs,
// and compares their throughput and correctness.
//
// What is in the box:
//
//	matrix/       canonical row-major float64 matrix + the reference algebra used for verification
//	bench/        adapter contract, MatrixHandle, timed loop, Trial, ResultRecord, error taxonomy
//	generator/    per-operation input synthesis and tolerant residual checks
//	adapter/      gonum (reference), lvdense (in-tree), sparse (edp1096/sparse)
//	dense/        small pure-Go dense library benchmarked through adapter/lvdense
//	runner/       Evaluator: (adapter, trial) → ResultRecord, sequential sweeps, memory probe
//	ranking/      leaderboards by ops/sec with shared ranks for ties
//	report/       JSON / YAML persistence and text leaderboards
//	library/      the closed registry of library descriptors
//	cmd/matbench  the CLI
//
// How one trial flows:
//
//	seed ─► generator ─► canonical inputs ─► ToNative ─► [timed loop: Process × trials]
//	                          │                                   │
//	                          └──── retained ───► CheckResults ◄──┘ ToCanonical
//	                                                   │
//	                                             ResultRecord ─► ranking / report
//
// Guarantees:
//
//   - Conversion and verification never run inside the timed region.
//   - One seed yields bit-identical inputs for every library.
//   - A fast but wrong result is recorded and excluded from rankings.
//   - No fault from a library escapes: panics become OperationErrors.
//
// Install the CLI with:
//
//	go install github.com/katalvlaran/matbench/cmd/matbench@latest
package matbench

// SPDX-License-Identifier: MIT

// Package bench holds the library-neutral benchmark contract.
//
// What:
//   - OperationKind / OperationSpec: the closed set of measured operations and their arity.
//   - MatrixHandle: a native matrix plus the adapter that owns it.
//   - LibraryAdapter: the capability set every library implements once, with a
//     single Process parameterized by OperationKind.
//   - Execute / TimeLoop: the guarded, single-bracket timed loop.
//   - Trial, ResultRecord, Verdict: immutable inputs and outputs of one trial.
//   - AllocationError, OperationError, ConversionError: the error taxonomy.
//
// Invariants:
//   - A handle only ever returns to the adapter that created it (MustOwn panics otherwise).
//   - Conversion between canonical and native form never happens inside TimeLoop.
//   - No library fault escapes Execute; a foreign handle panics before timing starts.
package bench

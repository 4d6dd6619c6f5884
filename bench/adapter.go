// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"time"

	"github.com/katalvlaran/matbench/matrix"
)

// LibraryID is the stable registry key of a benchmarked library.
type LibraryID string

// LibraryAdapter presents one numeric library through the fixed capability set.
//
// Contract:
//   - Configure is idempotent; the harness calls it once before the first trial.
//   - Create returns a zero-filled native matrix; negative dimensions fail with
//     an *AllocationError.
//   - Wrap adopts a native object of the library's own type without copying.
//   - ToNative / ToCanonical are lossless and never run inside a timed region.
//   - Process runs kind `trials` times in one timed loop and stores the last
//     iteration's results into out (len(out) == OperationSpec.Outputs) as new
//     handles. Numeric failures are returned as *OperationError.
type LibraryAdapter interface {
	Library() LibraryID
	Configure() error
	Create(rows, cols int) (*MatrixHandle, error)
	Wrap(native any) (*MatrixHandle, error)
	ToNative(m *matrix.Dense) (*MatrixHandle, error)
	ToCanonical(h *MatrixHandle) (*matrix.Dense, error)
	Supports(kind OperationKind) bool
	Process(kind OperationKind, in, out []*MatrixHandle, trials int) (time.Duration, error)
}

// Releaser is implemented by adapters whose native matrices hold resources
// that must be freed explicitly.
type Releaser interface {
	Release(h *MatrixHandle)
}

// Release frees h through its owner when the owner implements Releaser.
func Release(hs ...*MatrixHandle) {
	for _, h := range hs {
		if h == nil {
			continue
		}
		if r, ok := h.owner.(Releaser); ok {
			r.Release(h)
		}
	}
}

// Operation is a library operation bound to one kind.
type Operation interface {
	Kind() OperationKind
	Process(in, out []*MatrixHandle, trials int) (time.Duration, error)
}

type boundOperation struct {
	adapter LibraryAdapter
	kind    OperationKind
}

func (b boundOperation) Kind() OperationKind { return b.kind }

func (b boundOperation) Process(in, out []*MatrixHandle, trials int) (time.Duration, error) {
	return Execute(b.adapter, b.kind, in, out, trials)
}

// Bind returns the Operation of adapter a for kind.
// Errors: ErrUnknownOperation; *OperationError wrapping ErrUnsupported.
func Bind(a LibraryAdapter, kind OperationKind) (Operation, error) {
	if _, err := SpecOf(kind); err != nil {
		return nil, err
	}
	if !a.Supports(kind) {
		return nil, NewOperationError(a.Library(), kind, ErrUnsupported)
	}

	return boundOperation{adapter: a, kind: kind}, nil
}

// Execute is the guarded entry into LibraryAdapter.Process.
//
// Implementation:
//   - Stage 1: resolve OperationSpec; check arity and trials >= 1 (ErrArity / ErrInvalidTrial).
//   - Stage 2: check handle ownership; a foreign handle panics with ErrForeignHandle.
//   - Stage 3: clear out, call Process under recover; any panic becomes an
//     *OperationError wrapping ErrNativePanic, and any untyped error is wrapped
//     into *OperationError.
//
// Behavior highlights:
//   - Nothing here runs inside the timed region: Process owns its own TimeLoop.
//   - On error the elapsed time is zero.
func Execute(a LibraryAdapter, kind OperationKind, in, out []*MatrixHandle, trials int) (elapsed time.Duration, err error) {
	spec, err := SpecOf(kind)
	if err != nil {
		return 0, err
	}
	if len(in) != spec.Inputs || len(out) != spec.Outputs {
		return 0, fmt.Errorf("%s: in=%d out=%d want %d/%d: %w",
			kind, len(in), len(out), spec.Inputs, spec.Outputs, ErrArity)
	}
	if trials < 1 {
		return 0, fmt.Errorf("%s: trials=%d: %w", kind, trials, ErrInvalidTrial)
	}
	for i, h := range in {
		if h == nil {
			return 0, fmt.Errorf("%s: input %d is nil: %w", kind, i, ErrArity)
		}
	}
	MustOwn(a, in...)
	if !a.Supports(kind) {
		return 0, NewOperationError(a.Library(), kind, ErrUnsupported)
	}
	for i := range out {
		out[i] = nil
	}

	defer func() {
		if r := recover(); r != nil {
			elapsed = 0
			err = NewOperationError(a.Library(), kind, fmt.Errorf("%w: %v", ErrNativePanic, r))
		}
	}()

	elapsed, err = a.Process(kind, in, out, trials)
	if err != nil {
		if !isTaxonomy(err) {
			err = NewOperationError(a.Library(), kind, err)
		}
		return 0, err
	}

	return elapsed, nil
}

// TimeLoop runs body trials times between one pair of timestamps.
// The first error stops the loop and is returned with zero elapsed time.
func TimeLoop(trials int, body func() error) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < trials; i++ {
		if err := body(); err != nil {
			return 0, err
		}
	}

	return time.Since(start), nil
}

// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"math"
)

// DefaultTolerance is the residual threshold used when a Trial leaves it unset.
const DefaultTolerance = 1e-8

// Trial is one (library, operation, size, trial count) configuration.
// It is a value type: copy it, never share a pointer.
type Trial struct {
	Library   LibraryID     `json:"library" yaml:"library"`
	Operation OperationKind `json:"operation" yaml:"operation"`
	Size      int           `json:"size" yaml:"size"`
	Trials    int           `json:"trials" yaml:"trials"`
	Check     bool          `json:"check" yaml:"check"`
	Tolerance float64       `json:"tolerance" yaml:"tolerance"`
	Seed      int64         `json:"seed" yaml:"seed"`
}

// NewTrial validates and returns a Trial; a zero tolerance becomes DefaultTolerance.
//
// Errors:
//   - ErrInvalidTrial for an empty library, invalid operation, size < 0,
//     trials < 1 or a non-finite / negative tolerance.
func NewTrial(lib LibraryID, op OperationKind, size, trials int, check bool, tol float64, seed int64) (Trial, error) {
	if tol == 0 {
		tol = DefaultTolerance
	}
	t := Trial{Library: lib, Operation: op, Size: size, Trials: trials, Check: check, Tolerance: tol, Seed: seed}

	return t, t.Validate()
}

// Validate checks the Trial invariants.
func (t Trial) Validate() error {
	switch {
	case t.Library == "":
		return fmt.Errorf("empty library: %w", ErrInvalidTrial)
	case !t.Operation.Valid():
		return fmt.Errorf("operation %s: %w", t.Operation, ErrInvalidTrial)
	case t.Size < 0:
		return fmt.Errorf("size %d: %w", t.Size, ErrInvalidTrial)
	case t.Trials < 1:
		return fmt.Errorf("trials %d: %w", t.Trials, ErrInvalidTrial)
	case math.IsNaN(t.Tolerance) || math.IsInf(t.Tolerance, 0) || t.Tolerance < 0:
		return fmt.Errorf("tolerance %g: %w", t.Tolerance, ErrInvalidTrial)
	}

	return nil
}

func (t Trial) String() string {
	return fmt.Sprintf("%s/%s/n=%d/x%d", t.Library, t.Operation, t.Size, t.Trials)
}

// MemoryProbe observes memory consumption around an untimed run.
// Begin returns an opaque token; End returns bytes used since Begin.
type MemoryProbe interface {
	Begin() any
	End(token any) int64
}

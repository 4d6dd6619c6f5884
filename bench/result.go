// SPDX-License-Identifier: MIT

package bench

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// OutputError classifies a verified output. It is a result, never an error value.
type OutputError int

// Output classifications.
const (
	NoError     OutputError = iota // residual <= tolerance
	LargeError                     // residual > tolerance
	Uncountable                    // NaN or ±Inf in an output
	Misc                           // an expected output slot is missing
)

var outputErrorNames = [...]string{"NO_ERROR", "LARGE_ERROR", "UNCOUNTABLE", "MISC"}

func (o OutputError) String() string {
	if o < 0 || int(o) >= len(outputErrorNames) {
		return fmt.Sprintf("OutputError(%d)", int(o))
	}
	return outputErrorNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o OutputError) MarshalText() ([]byte, error) {
	if o < 0 || int(o) >= len(outputErrorNames) {
		return nil, fmt.Errorf("OutputError(%d): %w", int(o), ErrUnknownClass)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OutputError) UnmarshalText(b []byte) error {
	for i, n := range outputErrorNames {
		if n == string(b) {
			*o = OutputError(i)
			return nil
		}
	}
	return fmt.Errorf("OutputError %q: %w", b, ErrUnknownClass)
}

// FailureKind records why a trial produced no throughput.
type FailureKind int

// Failure kinds.
const (
	FailureNone FailureKind = iota
	FailureAllocation
	FailureOperation
	FailureConversion
	FailureUnsupported
	FailureSkipped
)

var failureNames = [...]string{"none", "allocation", "operation", "conversion", "unsupported", "skipped"}

func (f FailureKind) String() string {
	if f < 0 || int(f) >= len(failureNames) {
		return fmt.Sprintf("FailureKind(%d)", int(f))
	}
	return failureNames[f]
}

// MarshalText implements encoding.TextMarshaler.
func (f FailureKind) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(failureNames) {
		return nil, fmt.Errorf("FailureKind(%d): %w", int(f), ErrUnknownClass)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FailureKind) UnmarshalText(b []byte) error {
	for i, n := range failureNames {
		if n == string(b) {
			*f = FailureKind(i)
			return nil
		}
	}
	return fmt.Errorf("FailureKind %q: %w", b, ErrUnknownClass)
}

// ErrUnknownClass reports an unrecognised OutputError or FailureKind name.
var ErrUnknownClass = errors.New("bench: unknown classification")

// FailureOf maps an error from the taxonomy to its FailureKind.
func FailureOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrUnsupported):
		return FailureUnsupported
	case errors.Is(err, ErrConversion):
		return FailureConversion
	case errors.Is(err, ErrAllocation):
		return FailureAllocation
	default:
		return FailureOperation
	}
}

// Residual sentinels.
const (
	// ResidualUnchecked marks a record whose output was not verified.
	ResidualUnchecked = -1.0

	// MemoryUnmeasured marks a record without a memory observation.
	MemoryUnmeasured int64 = -1
)

// Verdict is the outcome of checking one set of outputs.
type Verdict struct {
	Class    OutputError
	Residual float64
}

// ResultRecord is the immutable outcome of one Trial.
//
// Fields are exported for serialization only; records are built by
// NewSuccess / NewFailure and passed by value, never modified afterwards.
//   - OpsPerSec is Trials / Elapsed.Seconds() on success, 0 on failure.
//   - MemoryBytes is MemoryUnmeasured when no probe ran.
//   - Residual is ResidualUnchecked when verification was off; a non-finite
//     residual is stored as math.MaxFloat64 so every encoder can carry it.
type ResultRecord struct {
	Library     LibraryID     `json:"library" yaml:"library"`
	Operation   OperationKind `json:"operation" yaml:"operation"`
	Size        int           `json:"size" yaml:"size"`
	Trials      int           `json:"trials" yaml:"trials"`
	Elapsed     time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	OpsPerSec   float64       `json:"ops_per_sec" yaml:"ops_per_sec"`
	MemoryBytes int64         `json:"memory_bytes" yaml:"memory_bytes"`
	Verified    bool          `json:"verified" yaml:"verified"`
	Class       OutputError   `json:"class" yaml:"class"`
	Residual    float64       `json:"residual" yaml:"residual"`
	Failure     FailureKind   `json:"failure" yaml:"failure"`
	Reason      string        `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// NewSuccess builds the record of a trial whose timed loop completed.
// A nil verdict means verification was off. Elapsed is clamped to 1ns so
// throughput stays finite on coarse clocks.
func NewSuccess(t Trial, elapsed time.Duration, memory int64, v *Verdict) ResultRecord {
	if elapsed < time.Nanosecond {
		elapsed = time.Nanosecond
	}
	rec := ResultRecord{
		Library:     t.Library,
		Operation:   t.Operation,
		Size:        t.Size,
		Trials:      t.Trials,
		Elapsed:     elapsed,
		OpsPerSec:   float64(t.Trials) / elapsed.Seconds(),
		MemoryBytes: memory,
		Class:       NoError,
		Residual:    ResidualUnchecked,
		Failure:     FailureNone,
	}
	if v != nil {
		rec.Verified = true
		rec.Class = v.Class
		rec.Residual = v.Residual
		if math.IsNaN(rec.Residual) || math.IsInf(rec.Residual, 0) {
			rec.Residual = math.MaxFloat64
		}
		if v.Class != NoError {
			rec.Reason = fmt.Sprintf("verification: %s (residual %.3g, tolerance %.3g)", v.Class, rec.Residual, t.Tolerance)
		}
	}

	return rec
}

// NewFailure builds the record of a trial that did not produce a timing.
func NewFailure(t Trial, kind FailureKind, reason string) ResultRecord {
	return ResultRecord{
		Library:     t.Library,
		Operation:   t.Operation,
		Size:        t.Size,
		Trials:      t.Trials,
		MemoryBytes: MemoryUnmeasured,
		Class:       Misc,
		Residual:    ResidualUnchecked,
		Failure:     kind,
		Reason:      reason,
	}
}

// Ranked reports whether r is eligible for a leaderboard.
func (r ResultRecord) Ranked() bool { return r.Failure == FailureNone && r.Class == NoError }

// CompareThroughput is the leaderboard order, faster first: it returns -1
// when a is faster, +1 when b is faster and 0 on equal ops/sec. Use it with
// slices.SortFunc; it is the reverse of an ascending ops/sec order.
func CompareThroughput(a, b ResultRecord) int {
	switch {
	case a.OpsPerSec > b.OpsPerSec:
		return -1
	case a.OpsPerSec < b.OpsPerSec:
		return 1
	default:
		return 0
	}
}

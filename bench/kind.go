// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"strings"
)

// OperationKind enumerates the benchmarked operations.
type OperationKind int

// Operation kinds. The zero value is reserved as invalid so an unset field is
// never mistaken for Chol.
const (
	OpInvalid OperationKind = iota
	OpChol
	OpLU
	OpQR
	OpSVD
	OpEigSymm
	OpDet
	OpInv
	OpInvSymmPosDef
	OpAdd
	OpMult
	OpMultTransA
	OpScale
	OpSolveExact
	OpSolveOver
	OpTranspose
)

// ScaleFactor is the scalar used by OpScale.
const ScaleFactor = 2.5

var kindNames = [...]string{
	OpInvalid:       "invalid",
	OpChol:          "chol",
	OpLU:            "lu",
	OpQR:            "qr",
	OpSVD:           "svd",
	OpEigSymm:       "eigSymm",
	OpDet:           "det",
	OpInv:           "inv",
	OpInvSymmPosDef: "invSymmPosDef",
	OpAdd:           "add",
	OpMult:          "mult",
	OpMultTransA:    "multTransA",
	OpScale:         "scale",
	OpSolveExact:    "solveExact",
	OpSolveOver:     "solveOver",
	OpTranspose:     "transpose",
}

// String returns the stable wire name of k.
func (k OperationKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("OperationKind(%d)", int(k))
	}

	return kindNames[k]
}

// Valid reports whether k names a real operation.
func (k OperationKind) Valid() bool { return k > OpInvalid && int(k) < len(kindNames) }

// ParseOperation maps a wire name (case-insensitive) back to its kind.
func ParseOperation(s string) (OperationKind, error) {
	for i := OpChol; int(i) < len(kindNames); i++ {
		if strings.EqualFold(kindNames[i], s) {
			return i, nil
		}
	}

	return OpInvalid, fmt.Errorf("ParseOperation(%q): %w", s, ErrUnknownOperation)
}

// MarshalText implements encoding.TextMarshaler.
func (k OperationKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("MarshalText(%d): %w", int(k), ErrUnknownOperation)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OperationKind) UnmarshalText(b []byte) error {
	v, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// AllOperations returns every valid kind in declaration order.
func AllOperations() []OperationKind {
	out := make([]OperationKind, 0, len(kindNames)-1)
	for k := OpChol; int(k) < len(kindNames); k++ {
		out = append(out, k)
	}

	return out
}

// OperationSpec fixes the arity of an operation.
//   - Inputs: number of input matrices (1 or 2).
//   - Outputs: number of output slots (1..3); slot meaning is listed in Slots.
type OperationSpec struct {
	Kind    OperationKind
	Inputs  int
	Outputs int
	Slots   []string
}

var specs = map[OperationKind]OperationSpec{
	OpChol:          {OpChol, 1, 1, []string{"U"}},
	OpLU:            {OpLU, 1, 3, []string{"L", "U", "P"}},
	OpQR:            {OpQR, 1, 2, []string{"Q", "R"}},
	OpSVD:           {OpSVD, 1, 3, []string{"U", "S", "V"}},
	OpEigSymm:       {OpEigSymm, 1, 2, []string{"V", "D"}},
	OpDet:           {OpDet, 1, 1, []string{"det"}},
	OpInv:           {OpInv, 1, 1, []string{"inv"}},
	OpInvSymmPosDef: {OpInvSymmPosDef, 1, 1, []string{"inv"}},
	OpAdd:           {OpAdd, 2, 1, []string{"C"}},
	OpMult:          {OpMult, 2, 1, []string{"C"}},
	OpMultTransA:    {OpMultTransA, 2, 1, []string{"C"}},
	OpScale:         {OpScale, 1, 1, []string{"C"}},
	OpSolveExact:    {OpSolveExact, 2, 1, []string{"x"}},
	OpSolveOver:     {OpSolveOver, 2, 1, []string{"x"}},
	OpTranspose:     {OpTranspose, 1, 1, []string{"C"}},
}

// SpecOf returns the arity table entry for k.
func SpecOf(k OperationKind) (OperationSpec, error) {
	s, ok := specs[k]
	if !ok {
		return OperationSpec{}, fmt.Errorf("SpecOf(%s): %w", k, ErrUnknownOperation)
	}

	return s, nil
}

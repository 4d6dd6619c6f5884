// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for shape and nil checks used by the
//    verification algebra.
//  - Return plain sentinel errors (tagged) so call sites can wrap uniformly.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every operand is non-nil.
// Returns ErrNilMatrix on the first nil.
func ValidateNotNil(ms ...*Dense) error {
	for _, m := range ms {
		if m == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and of equal dimensions.
func ValidateSameShape(a, b *Dense) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return validatorErrorf("ValidateSameShape",
			fmt.Errorf("%dx%d vs %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	return nil
}

// ValidateSquare ensures m is non-nil and square.
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.r, m.c, ErrNonSquare))
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows for the product a·b.
func ValidateMulCompatible(a, b *Dense) error {
	if err := ValidateNotNil(a, b); err != nil {
		return err
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible",
			fmt.Errorf("%dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	return nil
}

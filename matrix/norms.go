// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
)

// TinyNorm is the floor applied to a reference norm in RelativeResidual so
// that an all-zero expected value does not divide by zero.
const TinyNorm = 1e-300

// Frobenius returns ‖m‖_F = sqrt(Σ m[i,j]²).
//
// Implementation:
//   - Scaled accumulation (scale·sqrt(ssq)) so large entries do not overflow
//     and tiny ones do not underflow before the square root.
//
// Behavior highlights:
//   - Any NaN element yields NaN; any ±Inf element yields +Inf.
func Frobenius(m *Dense) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	scale, ssq := 0.0, 1.0
	var ax, q float64
	for _, v := range m.data {
		if math.IsNaN(v) {
			return math.NaN(), nil
		}
		if math.IsInf(v, 0) {
			return math.Inf(1), nil
		}
		if v == 0 {
			continue
		}
		ax = math.Abs(v)
		if scale < ax {
			q = scale / ax
			ssq = 1 + ssq*q*q
			scale = ax
		} else {
			q = ax / scale
			ssq += q * q
		}
	}

	return scale * math.Sqrt(ssq), nil
}

// RelativeResidual returns ‖found − expected‖_F / max(‖expected‖_F, TinyNorm).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Notes:
//   - The result may be NaN or +Inf when either operand holds non-finite values;
//     callers classify such outputs before computing residuals.
func RelativeResidual(found, expected *Dense) (float64, error) {
	return Residual(found, expected, expected)
}

// Residual returns ‖found − expected‖_F / max(‖ref‖_F, TinyNorm).
// ref is usually the original problem input, so that an all-zero output can
// never produce a small residual by shrinking the denominator.
func Residual(found, expected, ref *Dense) (float64, error) {
	if err := ValidateNotNil(ref); err != nil {
		return 0, matrixErrorf(opRelResidue, err)
	}
	diff, err := Sub(found, expected)
	if err != nil {
		return 0, matrixErrorf(opRelResidue, err)
	}
	num, _ := Frobenius(diff)
	den, _ := Frobenius(ref)

	return num / math.Max(den, TinyNorm), nil
}

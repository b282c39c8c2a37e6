package values

import (
	"fmt"
	"math"
)

// Exp dispatches '^'. The exponent must be a scalar integer (spec.md
// §4.4: "non-integer or non-scalar exponent reports 'power must be a
// digit'"); the base must be a scalar or a square matrix. Scalar
// exponentiation uses repeated squaring (matching the original's
// libm_digit_op EXP case); matrix exponentiation reuses the same
// squaring loop through internal/linalg's Pow.
func Exp(a, b *Value) (*Value, error) {
	if b.Kind != Digit || b.Num != math.Trunc(b.Num) {
		return nil, errPowerMustBeDigit()
	}
	pow := int(b.Num)

	switch a.Kind {
	case Digit:
		return NewDigit(scalarPow(a.Num, pow)), nil
	case Matrix:
		mat, err := a.Mat.Pow(pow)
		if err != nil {
			return nil, err
		}
		return NewMatrix(mat), nil
	default:
		return nil, errPowerMustBeDigit()
	}
}

func errPowerMustBeDigit() error {
	return fmt.Errorf("power must be a digit")
}

// scalarPow raises base to an integer power by repeated squaring,
// handling a negative power via reciprocal.
func scalarPow(base float64, pow int) float64 {
	if pow < 0 {
		return 1 / scalarPow(base, -pow)
	}
	result := 1.0
	if pow&1 != 0 {
		result = base
	}
	pow >>= 1
	for pow != 0 {
		base *= base
		if pow&1 != 0 {
			if result == 1 {
				result = base
			} else {
				result *= base
			}
		}
		pow >>= 1
	}
	return result
}

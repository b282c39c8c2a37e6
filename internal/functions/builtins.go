package functions

import (
	"fmt"
	"math"

	"github.com/cwbudde/numl/internal/linalg"
	"github.com/cwbudde/numl/internal/values"
)

// RegisterBuiltins installs the library function set into t: the
// transcendental math functions (arity 1, scalar-to-scalar, backed by
// stdlib math) plus the two allocator functions vector(len) and
// matrix(rows, cols), which unlike the math functions accept a Digit
// argument but produce a zero-filled aggregate rather than a scalar.
func RegisterBuiltins(t *Table) {
	unary := map[string]func(float64) float64{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"ln":   math.Log,
		"exp":  math.Exp,
		"sqrt": math.Sqrt,
	}
	for name, fn := range unary {
		fn := fn
		t.InsertLib(name, 1, func(args []*values.Value) (*values.Value, error) {
			a, err := scalarArg(args[0])
			if err != nil {
				return nil, err
			}
			return values.NewDigit(fn(a)), nil
		})
	}

	t.InsertLib("vector", 1, func(args []*values.Value) (*values.Value, error) {
		n, err := scalarArg(args[0])
		if err != nil {
			return nil, err
		}
		size := int(n)
		if size <= 0 {
			return nil, fmt.Errorf("vector: length must be positive, got %d", size)
		}
		return values.NewVector(linalg.NewVector(size)), nil
	})

	t.InsertLib("matrix", 2, func(args []*values.Value) (*values.Value, error) {
		r, err := scalarArg(args[0])
		if err != nil {
			return nil, err
		}
		c, err := scalarArg(args[1])
		if err != nil {
			return nil, err
		}
		rows, cols := int(r), int(c)
		if rows <= 0 || cols <= 0 {
			return nil, fmt.Errorf("matrix: dimensions must be positive, got (%d, %d)", rows, cols)
		}
		return values.NewMatrix(linalg.NewMatrix(rows, cols)), nil
	})
}

func scalarArg(v *values.Value) (float64, error) {
	if v.Kind != values.Digit {
		return 0, fmt.Errorf("argument must be a digit, got %s", v.Kind)
	}
	return v.Num, nil
}

// Package values implements the runtime value kernel: the tagged Value
// type spanning scalar, string, vector, and matrix kinds, and the
// operator dispatch tables for +, -, *, /, relational, logical, and ^
// across every kind pairing. Every dispatch function returns a freshly
// owned value; the caller (internal/eval) is responsible for stack and
// symbol-storage ownership bookkeeping.
package values

import (
	"fmt"
	"strings"

	"github.com/cwbudde/numl/internal/linalg"
)

// Kind identifies which payload field of a Value is meaningful.
type Kind int

const (
	Unknown Kind = iota
	Digit
	String
	Vector
	Matrix
	Void
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Digit:
		return "digit"
	case String:
		return "string"
	case Vector:
		return "vector"
	case Matrix:
		return "matrix"
	case Void:
		return "void"
	default:
		return "invalid"
	}
}

// Value is a single runtime value. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Vec  *linalg.Vector
	Mat  *linalg.Matrix
}

// NewDigit builds a scalar value.
func NewDigit(n float64) *Value { return &Value{Kind: Digit, Num: n} }

// NewString builds a string value.
func NewString(s string) *Value { return &Value{Kind: String, Str: s} }

// NewVector builds a vector value.
func NewVector(v *linalg.Vector) *Value { return &Value{Kind: Vector, Vec: v} }

// NewMatrix builds a matrix value.
func NewMatrix(m *linalg.Matrix) *Value { return &Value{Kind: Matrix, Mat: m} }

// NewVoid builds the void value returned by statements with no result.
func NewVoid() *Value { return &Value{Kind: Void} }

// Clone deep-copies a value, used whenever a symbol's stored payload must
// be duplicated into a fresh, independently owned Const.
func (v *Value) Clone() *Value {
	switch v.Kind {
	case Vector:
		return NewVector(v.Vec.Clone())
	case Matrix:
		return NewMatrix(v.Mat.Clone())
	default:
		cp := *v
		return &cp
	}
}

// Truthy reports whether v counts as true in a logical context: nonzero
// for a scalar, and "every element nonzero is not required" — logical
// operators consult individual elements themselves (see logic.go); this
// is only used where a single boolean reading is needed, e.g. an `if`
// condition, which requires a scalar.
func (v *Value) Truthy() (bool, error) {
	if v.Kind != Digit {
		return false, fmt.Errorf("condition must be a digit")
	}
	return v.Num != 0, nil
}

// String renders v the way the REPL prints a result: a scalar as a fixed
// six-decimal float (matching the original's printf("%f", ...) driver
// output), a vector as bracketed space-separated elements, a matrix as
// one bracketed row per line, and a string verbatim.
func (v *Value) String() string {
	switch v.Kind {
	case Digit:
		return fmt.Sprintf("%.6f", v.Num)
	case String:
		return v.Str
	case Vector:
		parts := make([]string, v.Vec.Len())
		for i := range parts {
			parts[i] = fmt.Sprintf("%.6f", v.Vec.At(i))
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Matrix:
		rows, cols := v.Mat.Dims()
		lines := make([]string, rows)
		for i := 0; i < rows; i++ {
			parts := make([]string, cols)
			for j := 0; j < cols; j++ {
				parts[j] = fmt.Sprintf("%.6f", v.Mat.At(i, j))
			}
			lines[i] = "[" + strings.Join(parts, " ") + "]"
		}
		return strings.Join(lines, "\n")
	case Void:
		return ""
	default:
		return "<unknown>"
	}
}

func incompatible() error {
	return fmt.Errorf("incompatible value type")
}

func nonconformant() error {
	return fmt.Errorf("nonconformant arguments")
}

func divisionByZero() error {
	return fmt.Errorf("division by zero")
}

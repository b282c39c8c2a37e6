package values

import (
	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/linalg"
)

// Rel dispatches a relational operator across scalar/vector/matrix pairs
// (spec's "relational" row), yielding 0.0/1.0 elementwise — a scalar for
// scalar-scalar, and a same-shaped aggregate otherwise. Mixed vector and
// matrix operands are not conformable. Unlike the original, a scalar
// paired with an aggregate reads the element from the actual operand
// rather than from the freshly allocated (zero) output buffer.
func Rel(op ast.Op, a, b *Value) (*Value, error) {
	switch a.Kind {
	case Digit:
		switch b.Kind {
		case Digit:
			return NewDigit(compare(op, a.Num, b.Num)), nil
		case Vector:
			return NewVector(relScalarVector(op, a.Num, b.Vec, true)), nil
		case Matrix:
			return NewMatrix(relScalarMatrix(op, a.Num, b.Mat, true)), nil
		}
	case Vector:
		switch b.Kind {
		case Digit:
			return NewVector(relScalarVector(op, b.Num, a.Vec, false)), nil
		case Vector:
			if a.Vec.Len() != b.Vec.Len() {
				return nil, nonconformant()
			}
			out := linalg.NewVector(a.Vec.Len())
			for i := 0; i < a.Vec.Len(); i++ {
				out.Set(i, compare(op, a.Vec.At(i), b.Vec.At(i)))
			}
			return NewVector(out), nil
		case Matrix:
			return nil, incompatible()
		}
	case Matrix:
		switch b.Kind {
		case Digit:
			return NewMatrix(relScalarMatrix(op, b.Num, a.Mat, false)), nil
		case Vector:
			return nil, incompatible()
		case Matrix:
			ar, ac := a.Mat.Dims()
			br, bc := b.Mat.Dims()
			if ar != br || ac != bc {
				return nil, nonconformant()
			}
			out := linalg.NewMatrix(ar, ac)
			for i := 0; i < ar; i++ {
				for j := 0; j < ac; j++ {
					out.Set(i, j, compare(op, a.Mat.At(i, j), b.Mat.At(i, j)))
				}
			}
			return NewMatrix(out), nil
		}
	}
	return nil, incompatible()
}

func compare(op ast.Op, a, b float64) float64 {
	var ok bool
	switch op {
	case ast.OpLt:
		ok = a < b
	case ast.OpLe:
		ok = a <= b
	case ast.OpGt:
		ok = a > b
	case ast.OpGe:
		ok = a >= b
	case ast.OpEq:
		ok = a == b
	case ast.OpNe:
		ok = a != b
	}
	if ok {
		return 1.0
	}
	return 0.0
}

// relScalarVector compares scalar against each element of v, reading the
// element's actual value (out[i] = op(scalar, v[i]) or op(v[i], scalar)
// depending on operand order).
func relScalarVector(op ast.Op, scalar float64, v *linalg.Vector, scalarOnLeft bool) *linalg.Vector {
	out := linalg.NewVector(v.Len())
	for i := 0; i < v.Len(); i++ {
		if scalarOnLeft {
			out.Set(i, compare(op, scalar, v.At(i)))
		} else {
			out.Set(i, compare(op, v.At(i), scalar))
		}
	}
	return out
}

func relScalarMatrix(op ast.Op, scalar float64, m *linalg.Matrix, scalarOnLeft bool) *linalg.Matrix {
	r, c := m.Dims()
	out := linalg.NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if scalarOnLeft {
				out.Set(i, j, compare(op, scalar, m.At(i, j)))
			} else {
				out.Set(i, j, compare(op, m.At(i, j), scalar))
			}
		}
	}
	return out
}

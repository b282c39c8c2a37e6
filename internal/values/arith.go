package values

import (
	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/linalg"
)

// Arith dispatches '+' and '-' (op must be ast.OpAdd or ast.OpSub) across
// every scalar/vector/matrix pairing (spec's "+, -" row): scalar-scalar
// arithmetic, scalar-aggregate broadcast, and elementwise aggregate-
// aggregate addition when shapes match. Mixed vector/matrix operands are
// not conformable and report an error.
func Arith(op ast.Op, a, b *Value) (*Value, error) {
	switch a.Kind {
	case Digit:
		switch b.Kind {
		case Digit:
			n, err := scalarAddSub(op, a.Num, b.Num)
			return NewDigit(n), err
		case Vector:
			return NewVector(broadcastVector(op, a.Num, b.Vec, true)), nil
		case Matrix:
			return NewMatrix(broadcastMatrix(op, a.Num, b.Mat, true)), nil
		}
	case Vector:
		switch b.Kind {
		case Digit:
			return NewVector(broadcastVector(op, b.Num, a.Vec, false)), nil
		case Vector:
			vec, err := vectorAddSub(op, a.Vec, b.Vec)
			if err != nil {
				return nil, err
			}
			return NewVector(vec), nil
		case Matrix:
			return nil, incompatible()
		}
	case Matrix:
		switch b.Kind {
		case Digit:
			return NewMatrix(broadcastMatrix(op, b.Num, a.Mat, false)), nil
		case Vector:
			return nil, incompatible()
		case Matrix:
			mat, err := matrixAddSub(op, a.Mat, b.Mat)
			if err != nil {
				return nil, err
			}
			return NewMatrix(mat), nil
		}
	}
	return nil, incompatible()
}

func scalarAddSub(op ast.Op, a, b float64) (float64, error) {
	if op == ast.OpAdd {
		return a + b, nil
	}
	return a - b, nil
}

// broadcastVector applies op elementwise between scalar and every element
// of v. scalarOnLeft distinguishes `scalar - v[i]` from `v[i] - scalar`.
func broadcastVector(op ast.Op, scalar float64, v *linalg.Vector, scalarOnLeft bool) *linalg.Vector {
	if op == ast.OpAdd {
		return v.AddScalar(scalar)
	}
	if scalarOnLeft {
		return v.ScaleBy(-1).AddScalar(scalar)
	}
	return v.AddScalar(-scalar)
}

func broadcastMatrix(op ast.Op, scalar float64, m *linalg.Matrix, scalarOnLeft bool) *linalg.Matrix {
	if op == ast.OpAdd {
		return m.AddScalar(scalar)
	}
	if scalarOnLeft {
		return m.ScaleBy(-1).AddScalar(scalar)
	}
	return m.AddScalar(-scalar)
}

func vectorAddSub(op ast.Op, a, b *linalg.Vector) (*linalg.Vector, error) {
	if op == ast.OpAdd {
		return a.Add(b)
	}
	return a.Sub(b)
}

func matrixAddSub(op ast.Op, a, b *linalg.Matrix) (*linalg.Matrix, error) {
	if op == ast.OpAdd {
		return a.Add(b)
	}
	return a.Sub(b)
}

// Mult dispatches '*' and '/' (op must be ast.OpMul or ast.OpDiv) across
// every pairing (spec's "* (and /)" row). Multiplication always scales or
// contracts; division additionally requires conformable shapes and
// reports specific "unsupported"/"nonconformant" errors the original
// documents per combination (scalar/aggregate division, vector/matrix
// LU-solve, matrix/matrix LU-invert).
func Mult(op ast.Op, a, b *Value) (*Value, error) {
	switch a.Kind {
	case Digit:
		switch b.Kind {
		case Digit:
			return scalarMulDiv(op, a.Num, b.Num)
		case Vector:
			if op == ast.OpDiv {
				return nil, nonconformant()
			}
			return NewVector(b.Vec.ScaleBy(a.Num)), nil
		case Matrix:
			if op == ast.OpDiv {
				return nil, nonconformant()
			}
			return NewMatrix(b.Mat.ScaleBy(a.Num)), nil
		}
	case Vector:
		switch b.Kind {
		case Digit:
			return vectorScalarMulDiv(op, a.Vec, b.Num)
		case Vector:
			var n float64
			var err error
			if op == ast.OpDiv {
				n, err = a.Vec.DivDot(b.Vec)
			} else {
				n, err = a.Vec.Dot(b.Vec)
			}
			if err != nil {
				return nil, err
			}
			return NewDigit(n), nil
		case Matrix:
			if op == ast.OpDiv {
				vec, err := linalg.Solve(a.Vec, b.Mat)
				if err != nil {
					return nil, err
				}
				return NewVector(vec), nil
			}
			vec, err := linalg.VecMat(a.Vec, b.Mat)
			if err != nil {
				return nil, err
			}
			return NewVector(vec), nil
		}
	case Matrix:
		switch b.Kind {
		case Digit:
			return matrixScalarMulDiv(op, a.Mat, b.Num)
		case Vector:
			if op == ast.OpDiv {
				return nil, nonconformant()
			}
			vec, err := a.Mat.MatVec(b.Vec)
			if err != nil {
				return nil, err
			}
			return NewVector(vec), nil
		case Matrix:
			if op == ast.OpDiv {
				mat, err := linalg.MatDiv(a.Mat, b.Mat)
				if err != nil {
					return nil, err
				}
				return NewMatrix(mat), nil
			}
			mat, err := a.Mat.MatMul(b.Mat)
			if err != nil {
				return nil, err
			}
			return NewMatrix(mat), nil
		}
	}
	return nil, incompatible()
}

func scalarMulDiv(op ast.Op, a, b float64) (*Value, error) {
	if op == ast.OpMul {
		return NewDigit(a * b), nil
	}
	if b == 0 {
		return nil, divisionByZero()
	}
	return NewDigit(a / b), nil
}

func vectorScalarMulDiv(op ast.Op, v *linalg.Vector, s float64) (*Value, error) {
	if op == ast.OpMul {
		return NewVector(v.ScaleBy(s)), nil
	}
	if s == 0 {
		return nil, divisionByZero()
	}
	return NewVector(v.ScaleBy(1 / s)), nil
}

func matrixScalarMulDiv(op ast.Op, m *linalg.Matrix, s float64) (*Value, error) {
	if op == ast.OpMul {
		return NewMatrix(m.ScaleBy(s)), nil
	}
	if s == 0 {
		return nil, divisionByZero()
	}
	return NewMatrix(m.ScaleBy(1 / s)), nil
}

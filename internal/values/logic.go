package values

import "github.com/cwbudde/numl/internal/ast"

// Logic dispatches '&&' and '||' (spec's "&&, ||" row). The result is
// always a scalar 0.0/1.0: every element of both operands is flattened
// into one truth sequence and scanned with short-circuit semantics,
// stopping at the first element that determines the result (a 0 for
// '&&', a nonzero for '||'). A vector paired with a matrix is not
// conformable.
//
// The original tags '&&' nodes as the OR opcode and '||' nodes as the
// AND opcode in one place (see ast_node_logic_op) — an apparent swap
// that is not replicated here: this dispatch derives its behavior
// directly from op, so there is no separate node-type field that could
// drift out of sync with the operator.
func Logic(op ast.Op, a, b *Value) (*Value, error) {
	if (a.Kind == Vector && b.Kind == Matrix) || (a.Kind == Matrix && b.Kind == Vector) {
		return nil, incompatible()
	}
	av, ok := truthValues(a)
	if !ok {
		return nil, incompatible()
	}
	bv, ok := truthValues(b)
	if !ok {
		return nil, incompatible()
	}

	if op == ast.OpAnd {
		for _, x := range av {
			if x == 0 {
				return NewDigit(0), nil
			}
		}
		for _, x := range bv {
			if x == 0 {
				return NewDigit(0), nil
			}
		}
		return NewDigit(1), nil
	}

	for _, x := range av {
		if x != 0 {
			return NewDigit(1), nil
		}
	}
	for _, x := range bv {
		if x != 0 {
			return NewDigit(1), nil
		}
	}
	return NewDigit(0), nil
}

func truthValues(v *Value) ([]float64, bool) {
	switch v.Kind {
	case Digit:
		return []float64{v.Num}, true
	case Vector:
		return v.Vec.Slice(), true
	case Matrix:
		r, c := v.Mat.Dims()
		out := make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out = append(out, v.Mat.At(i, j))
			}
		}
		return out, true
	default:
		return nil, false
	}
}

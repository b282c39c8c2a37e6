package ast

import "github.com/cwbudde/numl/internal/token"

// Op identifies the concrete operator carried by a BinaryExpr. The original
// ast_node used a distinct node type per operator family (ADD_OP, MULT_OP,
// REL_OP, AND_OP, OR_OP, EXP_OP); here every binary operator shares one node
// shape and the family is recovered from Op when the evaluator dispatches
// (internal/eval groups the same way spec.md §4.4 does).
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpExp
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpExp:
		return "^"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

type exprBase struct{ base }

func (exprBase) exprNode() {}

// Identifier references a symbol by name.
type Identifier struct {
	exprBase
	Name string
}

// NumberLit is a scalar literal produced by the lexer, folding any leading
// unary minus.
type NumberLit struct {
	exprBase
	Value float64
}

// StringLit is a double-quoted string literal.
type StringLit struct {
	exprBase
	Value string
}

// VectorLit is a bracketed literal with a single row or a single column,
// e.g. [1, 2, 3] or [1; 2; 3].
type VectorLit struct {
	exprBase
	Elems []Expr
}

// MatrixLit is a bracketed literal with semicolon-separated rows, e.g.
// [1, 2; 3, 4]. Rows*Cols must equal len(Elems); Elems is stored row-major.
type MatrixLit struct {
	exprBase
	Rows, Cols int
	Elems      []Expr
}

// BinaryExpr is every two-operand arithmetic, relational, logical, or
// exponent expression.
type BinaryExpr struct {
	exprBase
	Op          Op
	Left, Right Expr
}

// CallExpr invokes a built-in or user-defined function by name.
type CallExpr struct {
	exprBase
	Name string
	Args []Expr
}

// IndexExpr reads an element out of a vector (one index) or matrix (two
// indices) symbol.
type IndexExpr struct {
	exprBase
	Name    string
	Indices []Expr
}

// AssignExpr assigns Value to Target. Target must be an *Identifier or an
// *IndexExpr; any other target is a parse-time "rvalue assignment" error.
type AssignExpr struct {
	exprBase
	Target Expr
	Value  Expr
}

var (
	_ Expr = (*Identifier)(nil)
	_ Expr = (*NumberLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*VectorLit)(nil)
	_ Expr = (*MatrixLit)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
)

// NewIdentifier is a convenience constructor used by the parser.
func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{exprBase: exprBase{base{pos}}, Name: name}
}

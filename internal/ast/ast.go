// Package ast defines the AST node model parsed by internal/parser and
// walked by internal/eval.
//
// Every statement node carries a Next pointer so that a statement list is a
// singly linked list rather than a slice: the evaluator follows Next until
// it reaches either nil or an *EndScope sentinel (spec.md §4.6). Expression
// nodes exclusively own their children; releasing a Go value is the
// garbage collector's job, so there is no destructor field here the way
// the original C ast_node carried one — the ownership invariant from
// spec.md ("releasing the root releases all descendants") holds for free.
package ast

import "github.com/cwbudde/numl/internal/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Expr is implemented by nodes that produce a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by top-level and nested statement nodes. Stmt nodes
// form a singly linked list via GetNext/SetNext, mirroring the original
// ast_node.next field.
type Stmt interface {
	Node
	stmtNode()
	GetNext() Stmt
	SetNext(Stmt)
}

// base is embedded by every concrete node to avoid repeating Pos().
type base struct {
	NodePos token.Position
}

func (b base) Pos() token.Position { return b.NodePos }

// SetPos records the node's source position. Promoted to every concrete
// node type through exprBase/stmtBase so the parser can stamp a position
// after building a node with a plain keyed literal.
func (b *base) SetPos(pos token.Position) { b.NodePos = pos }

// stmtBase is embedded by every Stmt to provide the Next chain.
type stmtBase struct {
	base
	Next Stmt
}

func (b *stmtBase) GetNext() Stmt  { return b.Next }
func (b *stmtBase) SetNext(n Stmt) { b.Next = n }
func (*stmtBase) stmtNode()        {}

// Program is the full list of top-level statements, as returned by
// Parser.ParseProgram.
type Program struct {
	Statements []Stmt
}

// Stub is an inert placeholder returned by the parser on a syntax error so
// that callers can keep composing the tree without nil checks (spec.md
// §3 "Stub node").
type Stub struct {
	stmtBase
}

// EndScope is the sentinel statement terminating a nested statement list
// (a function or control-flow body), matching NODE_TYPE_END_SCOPE.
type EndScope struct {
	stmtBase
}

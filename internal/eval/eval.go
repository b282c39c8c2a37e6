// Package eval implements the tree-walking evaluator: it walks the AST
// produced by internal/parser, dispatching through internal/values'
// operator tables and internal/functions' registry, and threading
// control flow (break/continue/return) as an explicit result signal
// rather than the original's shared counter flags (spec.md §9 redesign
// note "Control flow via flags").
//
// The original source communicates operand and result values through a
// process-wide linked-list value stack so that recursive C functions
// don't need to thread return values by hand. Go's call stack does that
// for free, so this evaluator returns values bottom-up from each walk
// instead (spec.md §9 redesign note (a)); see DESIGN.md for the decision
// record. The "at most one leftover value" invariant still holds: each
// evalBody call threads through the last value any of its statements
// produced, and that is exactly what the REPL driver prints.
package eval

import (
	"fmt"

	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/functions"
	"github.com/cwbudde/numl/internal/linalg"
	"github.com/cwbudde/numl/internal/symbols"
	"github.com/cwbudde/numl/internal/values"
)

// Signal is the control-flow result of walking a statement or statement
// list: the sum-typed replacement for the original's is_break/is_continue/
// is_return counters.
type Signal int

const (
	SigNone Signal = iota
	SigBreak
	SigContinue
	SigReturn
)

// Config carries the evaluator's two tunable knobs (spec.md §2.3): a
// recursion guard (relevant because a recursive user function clobbers
// its own captured parameter scope, per spec.md §9 — runaway recursion
// is a real hazard here, not just a courtesy limit) and a trace switch
// used by `numl run --trace`.
type Config struct {
	MaxRecursionDepth int
	Trace             bool
}

// DefaultMaxRecursionDepth bounds call depth when Config.MaxRecursionDepth
// is left at zero.
const DefaultMaxRecursionDepth = 1000

// Evaluator owns the process-wide singletons spec.md §5 describes:
// the global symbol table, the function registry, and (implicitly,
// through Go's call stack) the evaluation stack.
type Evaluator struct {
	Functions *functions.Table
	Global    *symbols.Table

	top   *symbols.Table
	depth int

	Config Config
	Trace  func(format string, args ...any)
}

// New builds an Evaluator with the built-in function set registered and
// the global scope freshly seeded (ans = cwd, per spec.md §4.3).
func New(cfg Config) *Evaluator {
	if cfg.MaxRecursionDepth <= 0 {
		cfg.MaxRecursionDepth = DefaultMaxRecursionDepth
	}
	fns := functions.NewTable()
	functions.RegisterBuiltins(fns)
	g := symbols.NewGlobal()
	return &Evaluator{
		Functions: fns,
		Global:    g,
		top:       g,
		Config:    cfg,
	}
}

func (e *Evaluator) trace(format string, args ...any) {
	if e.Config.Trace && e.Trace != nil {
		e.Trace(format, args...)
	}
}

func (e *Evaluator) setAns(v *values.Value) {
	e.Global.SetAns(v)
}

// EvalTop evaluates exactly one top-level statement (the REPL driver's
// granularity, spec.md §2 supplement), returning the value left over for
// printing — nil if the statement produced none (a local declaration, a
// function definition, a control-flow statement whose body never ran a
// bare expression).
func (e *Evaluator) EvalTop(stmt ast.Stmt) (*values.Value, error) {
	_, val, err := e.evalStmt(stmt, false, false, false)
	return val, err
}

// evalBody walks a statement list — either a *ast.Block's First chain or
// a single bare statement — following Next until nil or an *ast.EndScope
// sentinel (spec.md §4.6 "stmts"), propagating the first non-SigNone
// signal it sees and carrying along the last value any visited statement
// produced. inScope reports whether this body is itself the direct
// Then/Else/Body of an if/while/for (spec.md §4.2's is_cond/is_cycle
// context); it is threaded unchanged to every statement the body walks,
// since nested statements stay within that enclosing if/loop's context.
func (e *Evaluator) evalBody(body ast.Stmt, inLoop, inFunc, inScope bool) (Signal, *values.Value, error) {
	var cur ast.Stmt
	if block, ok := body.(*ast.Block); ok {
		cur = block.First
	} else {
		cur = body
	}

	var last *values.Value
	for cur != nil {
		if _, ok := cur.(*ast.EndScope); ok {
			break
		}
		sig, val, err := e.evalStmt(cur, inLoop, inFunc, inScope)
		if err != nil {
			return SigNone, nil, err
		}
		if val != nil {
			last = val
		}
		if sig == SigReturn {
			return sig, val, nil
		}
		if sig != SigNone {
			return sig, last, nil
		}
		cur = cur.GetNext()
	}
	return SigNone, last, nil
}

func (e *Evaluator) evalStmt(stmt ast.Stmt, inLoop, inFunc, inScope bool) (Signal, *values.Value, error) {
	switch s := stmt.(type) {
	case nil:
		return SigNone, nil, nil
	case *ast.EndScope, *ast.Stub:
		return SigNone, nil, nil
	case *ast.ExprStmt:
		val, err := e.evalExpr(s.X)
		if err != nil {
			return SigNone, nil, err
		}
		return SigNone, val, nil
	case *ast.Block:
		// A *ast.Block only reaches evalStmt when it appears as a bare
		// statement in a statement chain rather than as the Then/Else/
		// Body of an if/while/for (those are walked directly via
		// evalBody by evalIf/evalWhile/evalFor, which set inScope
		// true for their own bodies and never dispatch back through
		// here). spec.md §4.2 "Context tracking for control statements"
		// rejects that bare-block form outside an if/loop body
		// (original_source/syntax.c's is_cycle/is_cond check).
		if !inScope {
			return SigNone, nil, fmt.Errorf("scope outside context")
		}
		return e.evalBody(s, inLoop, inFunc, inScope)
	case *ast.LocalStmt:
		if !inFunc {
			return SigNone, nil, fmt.Errorf("local declared outside a function")
		}
		for _, name := range s.Names {
			e.top.Declare(name)
		}
		return SigNone, nil, nil
	case *ast.FunctionDecl:
		e.declareFunction(s)
		return SigNone, nil, nil
	case *ast.IfStmt:
		return e.evalIf(s, inLoop, inFunc)
	case *ast.WhileStmt:
		return e.evalWhile(s, inFunc)
	case *ast.ForStmt:
		return e.evalFor(s, inFunc)
	case *ast.BreakStmt:
		if !inLoop {
			return SigNone, nil, fmt.Errorf("break outside a loop")
		}
		return SigBreak, nil, nil
	case *ast.ContinueStmt:
		if !inLoop {
			return SigNone, nil, fmt.Errorf("continue outside a loop")
		}
		return SigContinue, nil, nil
	case *ast.ReturnStmt:
		if !inFunc {
			return SigNone, nil, fmt.Errorf("return outside a function")
		}
		var val *values.Value
		if s.Value != nil {
			v, err := e.evalExpr(s.Value)
			if err != nil {
				return SigNone, nil, err
			}
			val = v
		}
		return SigReturn, val, nil
	case *ast.IncludeStmt:
		// Non-goal per spec.md §1: the token is parsed but never loaded.
		return SigNone, nil, nil
	default:
		return SigNone, nil, fmt.Errorf("internal: unsupported statement %T", stmt)
	}
}

func (e *Evaluator) evalIf(s *ast.IfStmt, inLoop, inFunc bool) (Signal, *values.Value, error) {
	cond, err := e.evalExpr(s.Cond)
	if err != nil {
		return SigNone, nil, err
	}
	truthy, err := cond.Truthy()
	if err != nil {
		return SigNone, nil, err
	}
	if truthy {
		return e.evalBody(s.Then, inLoop, inFunc, true)
	}
	if s.Else != nil {
		return e.evalBody(s.Else, inLoop, inFunc, true)
	}
	return SigNone, nil, nil
}

func (e *Evaluator) evalWhile(s *ast.WhileStmt, inFunc bool) (Signal, *values.Value, error) {
	var last *values.Value
	for {
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return SigNone, nil, err
		}
		truthy, err := cond.Truthy()
		if err != nil {
			return SigNone, nil, err
		}
		if !truthy {
			break
		}
		sig, val, err := e.evalBody(s.Body, true, inFunc, true)
		if err != nil {
			return SigNone, nil, err
		}
		if val != nil {
			last = val
		}
		switch sig {
		case SigBreak:
			return SigNone, last, nil
		case SigReturn:
			return SigReturn, val, nil
		}
	}
	return SigNone, last, nil
}

func (e *Evaluator) evalFor(s *ast.ForStmt, inFunc bool) (Signal, *values.Value, error) {
	if s.Init != nil {
		if _, err := e.evalExpr(s.Init); err != nil {
			return SigNone, nil, err
		}
	}
	var last *values.Value
	for {
		if s.Cond != nil {
			cond, err := e.evalExpr(s.Cond)
			if err != nil {
				return SigNone, nil, err
			}
			truthy, err := cond.Truthy()
			if err != nil {
				return SigNone, nil, err
			}
			if !truthy {
				break
			}
		}
		sig, val, err := e.evalBody(s.Body, true, inFunc, true)
		if err != nil {
			return SigNone, nil, err
		}
		if val != nil {
			last = val
		}
		if sig == SigBreak {
			return SigNone, last, nil
		}
		if sig == SigReturn {
			return SigReturn, val, nil
		}
		if s.Post != nil {
			if _, err := e.evalExpr(s.Post); err != nil {
				return SigNone, nil, err
			}
		}
	}
	return SigNone, last, nil
}

// declareFunction registers a user function at the point its `function`
// statement is evaluated (spec.md's parse-time capture is pushed to
// evaluation time here, since the parser no longer owns a live function
// table — see DESIGN.md). The captured scope's enclosing link is always
// the global table: numl has no lexical capture of a caller's locals
// (spec.md §1 Non-goals), only of globals and the function's own
// parameters.
func (e *Evaluator) declareFunction(decl *ast.FunctionDecl) {
	scope := e.Global.Push()
	fn := e.Functions.DeclareUser(decl.Name, decl.Params, scope)
	fn.Body = decl.Body
}

// callUser installs fn's captured scope as top for the duration of the
// call, binds actuals by copy-assignment into the parameter symbols
// (left-to-right, spec.md §5 "Ordering"), and walks the body. Because the
// scope is reused rather than recreated per call (functions.Function's
// doc comment), a function that recurses into itself clobbers its own
// parameter bindings on the inner call; this is the preserved, not
// fixed, behavior spec.md §9 flags as an open question.
func (e *Evaluator) callUser(fn *functions.Function, args []*values.Value) (*values.Value, error) {
	if e.depth >= e.Config.MaxRecursionDepth {
		return nil, fmt.Errorf("%s: maximum recursion depth (%d) exceeded", fn.Name, e.Config.MaxRecursionDepth)
	}
	for i, arg := range args {
		fn.Args[i].Value = arg.Clone()
	}

	prevTop := e.top
	e.top = fn.Scope
	e.depth++
	sig, val, err := e.evalBody(fn.Body, false, true, false)
	e.depth--
	e.top = prevTop

	if err != nil {
		return nil, err
	}
	if sig == SigReturn && val != nil {
		return val, nil
	}
	return values.NewVoid(), nil
}

func (e *Evaluator) evalExpr(expr ast.Expr) (*values.Value, error) {
	switch x := expr.(type) {
	case *ast.NumberLit:
		v := values.NewDigit(x.Value)
		e.setAns(v)
		return v, nil
	case *ast.StringLit:
		v := values.NewString(x.Value)
		e.setAns(v)
		return v, nil
	case *ast.Identifier:
		sym, ok := e.top.LookupAll(x.Name)
		if !ok {
			return nil, fmt.Errorf("undefined identifier %q", x.Name)
		}
		return sym.Value, nil
	case *ast.VectorLit:
		return e.evalVectorLit(x)
	case *ast.MatrixLit:
		return e.evalMatrixLit(x)
	case *ast.BinaryExpr:
		return e.evalBinary(x)
	case *ast.CallExpr:
		return e.evalCall(x)
	case *ast.IndexExpr:
		return e.evalIndexRead(x)
	case *ast.AssignExpr:
		return e.evalAssign(x)
	default:
		return nil, fmt.Errorf("internal: unsupported expression %T", expr)
	}
}

func (e *Evaluator) evalVectorLit(x *ast.VectorLit) (*values.Value, error) {
	vec := linalg.NewVector(len(x.Elems))
	for i, elem := range x.Elems {
		val, err := e.evalExpr(elem)
		if err != nil {
			return nil, err
		}
		if val.Kind != values.Digit {
			return nil, fmt.Errorf("vector literal elements must be digits")
		}
		vec.Set(i, val.Num)
	}
	v := values.NewVector(vec)
	e.setAns(v)
	return v, nil
}

func (e *Evaluator) evalMatrixLit(x *ast.MatrixLit) (*values.Value, error) {
	mat := linalg.NewMatrix(x.Rows, x.Cols)
	for i, elem := range x.Elems {
		val, err := e.evalExpr(elem)
		if err != nil {
			return nil, err
		}
		if val.Kind != values.Digit {
			return nil, fmt.Errorf("matrix literal elements must be digits")
		}
		mat.Set(i/x.Cols, i%x.Cols, val.Num)
	}
	v := values.NewMatrix(mat)
	e.setAns(v)
	return v, nil
}

func (e *Evaluator) evalBinary(x *ast.BinaryExpr) (*values.Value, error) {
	left, err := e.evalExpr(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(x.Right)
	if err != nil {
		return nil, err
	}

	var result *values.Value
	switch x.Op {
	case ast.OpAdd, ast.OpSub:
		result, err = values.Arith(x.Op, left, right)
	case ast.OpMul, ast.OpDiv:
		result, err = values.Mult(x.Op, left, right)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe:
		result, err = values.Rel(x.Op, left, right)
	case ast.OpAnd, ast.OpOr:
		result, err = values.Logic(x.Op, left, right)
	case ast.OpExp:
		result, err = values.Exp(left, right)
	default:
		return nil, fmt.Errorf("internal: unknown operator %v", x.Op)
	}
	if err != nil {
		return nil, err
	}
	e.trace("%s %s %s -> %s", left, x.Op, right, result)
	e.setAns(result)
	return result, nil
}

func (e *Evaluator) evalCall(x *ast.CallExpr) (*values.Value, error) {
	fn, ok := e.Functions.Lookup(x.Name)
	if !ok {
		return nil, fmt.Errorf("undeclared function %q", x.Name)
	}
	args := make([]*values.Value, len(x.Args))
	for i, a := range x.Args {
		v, err := e.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if err := fn.CheckArity(len(args)); err != nil {
		return nil, err
	}

	if fn.IsLib {
		result, err := fn.Handle(args)
		if err != nil {
			return nil, err
		}
		e.setAns(result)
		return result, nil
	}

	e.trace("call %s(%d args)", fn.Name, len(args))
	result, err := e.callUser(fn, args)
	if err != nil {
		return nil, err
	}
	e.setAns(result)
	return result, nil
}

func resolveIndices(e *Evaluator, exprs []ast.Expr) ([]int, error) {
	out := make([]int, len(exprs))
	for i, ie := range exprs {
		v, err := e.evalExpr(ie)
		if err != nil {
			return nil, err
		}
		if v.Kind != values.Digit {
			return nil, fmt.Errorf("index must be a digit")
		}
		out[i] = int(v.Num)
	}
	return out, nil
}

func (e *Evaluator) evalIndexRead(x *ast.IndexExpr) (*values.Value, error) {
	sym, ok := e.top.LookupAll(x.Name)
	if !ok {
		return nil, fmt.Errorf("undefined identifier %q", x.Name)
	}
	idx, err := resolveIndices(e, x.Indices)
	if err != nil {
		return nil, err
	}

	switch sym.Value.Kind {
	case values.Vector:
		if len(idx) != 1 {
			return nil, fmt.Errorf("%q is a vector and expects 1 index, got %d", x.Name, len(idx))
		}
		i := idx[0]
		if i < 0 || i >= sym.Value.Vec.Len() {
			return nil, fmt.Errorf("vector index %d out of range [0, %d)", i, sym.Value.Vec.Len())
		}
		return values.NewDigit(sym.Value.Vec.At(i)), nil
	case values.Matrix:
		if len(idx) != 2 {
			return nil, fmt.Errorf("%q is a matrix and expects 2 indices, got %d", x.Name, len(idx))
		}
		rows, cols := sym.Value.Mat.Dims()
		r, c := idx[0], idx[1]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil, fmt.Errorf("matrix index (%d, %d) out of range", r, c)
		}
		return values.NewDigit(sym.Value.Mat.At(r, c)), nil
	default:
		return nil, fmt.Errorf("%q is not a vector or matrix", x.Name)
	}
}

func (e *Evaluator) evalAssign(x *ast.AssignExpr) (*values.Value, error) {
	val, err := e.evalExpr(x.Value)
	if err != nil {
		return nil, err
	}

	switch target := x.Target.(type) {
	case *ast.Identifier:
		stored := val.Clone()
		e.top.Set(target.Name, stored)
		e.setAns(stored)
		return stored, nil
	case *ast.IndexExpr:
		return e.assignIndex(target, val)
	default:
		return nil, fmt.Errorf("internal: invalid assignment target %T", x.Target)
	}
}

func (e *Evaluator) assignIndex(target *ast.IndexExpr, val *values.Value) (*values.Value, error) {
	if val.Kind != values.Digit {
		return nil, fmt.Errorf("assigned value must be a digit")
	}
	sym, ok := e.top.LookupAll(target.Name)
	if !ok {
		return nil, fmt.Errorf("undefined identifier %q", target.Name)
	}
	idx, err := resolveIndices(e, target.Indices)
	if err != nil {
		return nil, err
	}

	switch sym.Value.Kind {
	case values.Vector:
		if len(idx) != 1 {
			return nil, fmt.Errorf("%q is a vector and expects 1 index, got %d", target.Name, len(idx))
		}
		i := idx[0]
		if i < 0 || i >= sym.Value.Vec.Len() {
			return nil, fmt.Errorf("vector index %d out of range [0, %d)", i, sym.Value.Vec.Len())
		}
		sym.Value.Vec.Set(i, val.Num)
	case values.Matrix:
		if len(idx) != 2 {
			return nil, fmt.Errorf("%q is a matrix and expects 2 indices, got %d", target.Name, len(idx))
		}
		rows, cols := sym.Value.Mat.Dims()
		r, c := idx[0], idx[1]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil, fmt.Errorf("matrix index (%d, %d) out of range", r, c)
		}
		sym.Value.Mat.Set(r, c, val.Num)
	default:
		return nil, fmt.Errorf("%q is not a vector or matrix", target.Name)
	}

	e.setAns(val)
	return val, nil
}

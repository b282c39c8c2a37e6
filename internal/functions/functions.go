// Package functions implements the function registry: a process-wide
// name-to-descriptor table holding both built-in (library) functions and
// user-defined ones. A user-defined function's formal parameters live in
// a captured scope, installed as the active scope for the duration of a
// call and restored on return.
package functions

import (
	"fmt"

	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/symbols"
	"github.com/cwbudde/numl/internal/values"
)

// Handler is a built-in's implementation: it receives the already
// evaluated actual arguments, in declaration order, and produces a
// result value.
type Handler func(args []*values.Value) (*values.Value, error)

// Function is a single registry entry. IsLib distinguishes a built-in
// (Handler set, Body nil) from a user-defined function (Body set,
// Handler nil).
//
// For a user-defined function, Scope is the SymbolTable created when the
// function's declaration was evaluated, already populated with one Unknown-kinded symbol
// per formal parameter; the evaluator reinstalls it as the active scope
// on entry and pops back to the caller's scope on return. This scope is
// reused across calls rather than recreated per-call, so a function that
// calls itself recursively clobbers its own parameter bindings on the
// inner call — this mirrors the original interpreter's non-reentrant
// scope-capture design and is preserved here rather than fixed; see
// DESIGN.md.
type Function struct {
	Name   string
	IsLib  bool
	NArgs  int
	Args   []*symbols.Symbol
	Scope  *symbols.Table
	Body   ast.Stmt
	Handle Handler
}

// Table is the process-wide function registry, keyed by name.
type Table struct {
	fns map[string]*Function
}

// NewTable builds an empty registry.
func NewTable() *Table {
	return &Table{fns: make(map[string]*Function)}
}

// Lookup resolves a function by name.
func (t *Table) Lookup(name string) (*Function, bool) {
	fn, ok := t.fns[name]
	return fn, ok
}

// InsertLib registers a built-in with the given arity and handler,
// overwriting any existing entry of the same name.
func (t *Table) InsertLib(name string, nargs int, handle Handler) {
	t.fns[name] = &Function{Name: name, IsLib: true, NArgs: nargs, Handle: handle}
}

// DeclareUser begins defining a user function: it creates the entry with
// its parameter scope and formal parameter symbols, without a body yet.
// The evaluator calls this when it evaluates a `function NAME (a, b, ...)`
// statement, then fills in Body from the parsed block. Redefining an
// existing name overwrites it outright — the prior Function (and its
// scope) becomes unreachable and is reclaimed by the garbage collector.
func (t *Table) DeclareUser(name string, paramNames []string, scope *symbols.Table) *Function {
	fn := &Function{
		Name:  name,
		IsLib: false,
		NArgs: len(paramNames),
		Scope: scope,
	}
	for _, p := range paramNames {
		fn.Args = append(fn.Args, scope.Declare(p))
	}
	t.fns[name] = fn
	return fn
}

// Remove deletes name from the registry, so a later Lookup of name
// reports it as not found.
func (t *Table) Remove(name string) {
	delete(t.fns, name)
}

// CheckArity reports an error if got does not match fn's declared arity.
// internal/eval calls this before invoking a built-in handler or walking a
// user-defined body, since both call paths require the actuals to already
// be evaluated and counted.
func (fn *Function) CheckArity(got int) error {
	if got != fn.NArgs {
		return fmt.Errorf("%s: expected %d argument(s), got %d", fn.Name, fn.NArgs, got)
	}
	return nil
}

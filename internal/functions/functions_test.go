package functions

import (
	"math"
	"testing"

	"github.com/cwbudde/numl/internal/symbols"
	"github.com/cwbudde/numl/internal/values"
)

func closeEnough(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRegisterBuiltinsArities(t *testing.T) {
	tbl := NewTable()
	RegisterBuiltins(tbl)

	cases := map[string]int{
		"sin": 1, "cos": 1, "tan": 1, "ln": 1, "exp": 1, "sqrt": 1,
		"vector": 1, "matrix": 2,
	}
	for name, nargs := range cases {
		fn, ok := tbl.Lookup(name)
		if !ok {
			t.Fatalf("builtin %q not registered", name)
		}
		if !fn.IsLib {
			t.Fatalf("builtin %q should be marked IsLib", name)
		}
		if fn.NArgs != nargs {
			t.Fatalf("builtin %q arity = %d, want %d", name, fn.NArgs, nargs)
		}
	}
}

func TestBuiltinMathIdentities(t *testing.T) {
	tbl := NewTable()
	RegisterBuiltins(tbl)

	check := func(name string, arg, want float64) {
		t.Helper()
		fn, _ := tbl.Lookup(name)
		got, err := fn.Handle([]*values.Value{values.NewDigit(arg)})
		if err != nil {
			t.Fatal(err)
		}
		if !closeEnough(got.Num, want) {
			t.Fatalf("%s(%v) = %v, want %v", name, arg, got.Num, want)
		}
	}
	check("sin", 0, 0)
	check("cos", 0, 1)
	check("exp", 0, 1)
	check("ln", 1, 0)
	check("sqrt", 4, 2)
}

func TestBuiltinVectorAllocatesZeroFilled(t *testing.T) {
	tbl := NewTable()
	RegisterBuiltins(tbl)
	fn, _ := tbl.Lookup("vector")
	got, err := fn.Handle([]*values.Value{values.NewDigit(3)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != values.Vector || got.Vec.Len() != 3 {
		t.Fatalf("got %+v", got)
	}
	for i := 0; i < 3; i++ {
		if got.Vec.At(i) != 0 {
			t.Fatalf("element %d = %v, want 0", i, got.Vec.At(i))
		}
	}
}

func TestBuiltinMatrixAllocatesZeroFilled(t *testing.T) {
	tbl := NewTable()
	RegisterBuiltins(tbl)
	fn, _ := tbl.Lookup("matrix")
	got, err := fn.Handle([]*values.Value{values.NewDigit(2), values.NewDigit(3)})
	if err != nil {
		t.Fatal(err)
	}
	r, c := got.Mat.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("dims = (%d, %d), want (2, 3)", r, c)
	}
}

func TestBuiltinRejectsNonDigitArgument(t *testing.T) {
	tbl := NewTable()
	RegisterBuiltins(tbl)
	fn, _ := tbl.Lookup("sin")
	v := values.NewVector(nil)
	if _, err := fn.Handle([]*values.Value{v}); err == nil {
		t.Fatal("expected an error for a non-digit argument")
	}
}

func TestCheckArityMismatch(t *testing.T) {
	tbl := NewTable()
	RegisterBuiltins(tbl)
	fn, _ := tbl.Lookup("matrix")
	if err := fn.CheckArity(1); err == nil {
		t.Fatal("expected an arity mismatch error")
	}
	if err := fn.CheckArity(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeclareUserPopulatesParamSymbols(t *testing.T) {
	tbl := NewTable()
	global := symbols.NewGlobal()
	scope := global.Push()

	fn := tbl.DeclareUser("addone", []string{"x"}, scope)
	if fn.NArgs != 1 {
		t.Fatalf("NArgs = %d, want 1", fn.NArgs)
	}
	if len(fn.Args) != 1 || fn.Args[0].Name != "x" {
		t.Fatalf("got %+v", fn.Args)
	}
	if _, ok := scope.LookupTop("x"); !ok {
		t.Fatal("parameter should be declared in the function's own scope")
	}
}

func TestRemoveDropsFunction(t *testing.T) {
	tbl := NewTable()
	global := symbols.NewGlobal()
	scope := global.Push()
	tbl.DeclareUser("broken", nil, scope)

	tbl.Remove("broken")
	if _, ok := tbl.Lookup("broken"); ok {
		t.Fatal("function should have been removed")
	}
}

func TestInsertLibOverwritesExisting(t *testing.T) {
	tbl := NewTable()
	tbl.InsertLib("f", 1, func(args []*values.Value) (*values.Value, error) {
		return values.NewDigit(1), nil
	})
	tbl.InsertLib("f", 2, func(args []*values.Value) (*values.Value, error) {
		return values.NewDigit(2), nil
	})
	fn, _ := tbl.Lookup("f")
	if fn.NArgs != 2 {
		t.Fatalf("expected the second registration to win, got arity %d", fn.NArgs)
	}
}

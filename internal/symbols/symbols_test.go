package symbols

import (
	"testing"

	"github.com/cwbudde/numl/internal/values"
)

func TestNewGlobalSeedsAns(t *testing.T) {
	g := NewGlobal()
	sym, ok := g.LookupTop(AnsName)
	if !ok {
		t.Fatal("expected ans to be predeclared in the global scope")
	}
	if sym.Value.Kind != values.String {
		t.Fatalf("expected ans to be seeded as a string, got %v", sym.Value.Kind)
	}
}

func TestDeclareIsIdempotent(t *testing.T) {
	g := NewGlobal()
	a := g.Declare("x")
	b := g.Declare("x")
	if a != b {
		t.Fatal("Declare should return the same symbol on redeclaration")
	}
}

func TestLookupTopDoesNotSeeOuterScope(t *testing.T) {
	g := NewGlobal()
	g.Declare("x")
	local := g.Push()

	if _, ok := local.LookupTop("x"); ok {
		t.Fatal("LookupTop should not see the enclosing scope's symbols")
	}
	if _, ok := local.LookupAll("x"); !ok {
		t.Fatal("LookupAll should walk up to the enclosing scope")
	}
}

func TestLocalShadowsGlobal(t *testing.T) {
	g := NewGlobal()
	g.Set("x", values.NewDigit(1))

	local := g.Push()
	local.Declare("x")
	local.Set("x", values.NewDigit(2))

	localSym, _ := local.LookupAll("x")
	if localSym.Value.Num != 2 {
		t.Fatalf("local x = %v, want 2", localSym.Value.Num)
	}

	globalSym, _ := g.LookupTop("x")
	if globalSym.Value.Num != 1 {
		t.Fatalf("global x = %v, want 1 (should not be shadowed-through)", globalSym.Value.Num)
	}
}

func TestSetOnUnknownNameCreatesItGlobally(t *testing.T) {
	g := NewGlobal()
	local := g.Push()

	local.Set("y", values.NewDigit(42))

	if _, ok := local.LookupTop("y"); ok {
		t.Fatal("y should not be declared in the local scope")
	}
	sym, ok := g.LookupTop("y")
	if !ok {
		t.Fatal("y should have been created in the global scope")
	}
	if sym.Value.Num != 42 {
		t.Fatalf("y = %v, want 42", sym.Value.Num)
	}
}

func TestSetAnsMirrorsIntoGlobal(t *testing.T) {
	g := NewGlobal()
	local := g.Push()

	local.SetAns(values.NewDigit(7))

	sym, _ := g.LookupTop(AnsName)
	if sym.Value.Num != 7 {
		t.Fatalf("ans = %v, want 7", sym.Value.Num)
	}
}

func TestPopGlobalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Pop on the global scope to panic")
		}
	}()
	NewGlobal().Pop()
}

func TestPushPopRoundTrip(t *testing.T) {
	g := NewGlobal()
	local := g.Push()
	if local.IsGlobal() {
		t.Fatal("pushed scope should not report itself as global")
	}
	if back := local.Pop(); back != g {
		t.Fatal("Pop should return the exact enclosing scope")
	}
}

func TestKindTransitionReplacesPayload(t *testing.T) {
	g := NewGlobal()
	sym := g.Declare("z")
	sym.Value = values.NewDigit(1)
	sym.Value = values.NewString("now a string")
	if sym.Value.Kind != values.String || sym.Value.Str != "now a string" {
		t.Fatalf("got %+v", sym.Value)
	}
}

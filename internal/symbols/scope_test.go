package symbols_test

import (
	"testing"

	"github.com/dsolis/compiscript/internal/symbols"
	"github.com/dsolis/compiscript/internal/token"
	"github.com/dsolis/compiscript/internal/types"
)

func TestScope_DeclareAndLookup(t *testing.T) {
	g := symbols.NewGlobal()
	sym := symbols.NewSymbol(symbols.KindVariable, "x", token.Position{}, types.TInt)
	if !g.Declare(sym) {
		t.Fatal("declaring a fresh name should succeed")
	}
	got, ok := g.Lookup("x")
	if !ok || got.Name != "x" {
		t.Fatalf("expected to find x, got %v, %v", got, ok)
	}
}

func TestScope_DuplicateInSameScopeFails(t *testing.T) {
	g := symbols.NewGlobal()
	sym := symbols.NewSymbol(symbols.KindVariable, "x", token.Position{}, types.TInt)
	if !g.Declare(sym) {
		t.Fatal("first declaration should succeed")
	}
	if g.Declare(sym) {
		t.Error("redeclaring the same name in the same scope should fail")
	}
}

func TestScope_ShadowingOuterScopeIsAllowed(t *testing.T) {
	g := symbols.NewGlobal()
	outer := symbols.NewSymbol(symbols.KindVariable, "x", token.Position{}, types.TInt)
	if !g.Declare(outer) {
		t.Fatal("declaring x in the global scope should succeed")
	}

	block := g.Push(symbols.ScopeBlock)
	inner := symbols.NewSymbol(symbols.KindVariable, "x", token.Position{}, types.TString)
	if !block.Declare(inner) {
		t.Fatal("shadowing an outer binding in a nested scope should succeed")
	}

	got, ok := block.Lookup("x")
	if !ok || !got.Type.Equal(types.TString) {
		t.Errorf("expected the inner (string) binding to win, got %v", got)
	}

	// the outer binding is untouched once the block scope is popped.
	outerGot, ok := g.Lookup("x")
	if !ok || !outerGot.Type.Equal(types.TInt) {
		t.Errorf("expected the outer (integer) binding to survive shadowing, got %v", outerGot)
	}
}

func TestScope_LookupLocalDoesNotSeeOuterBindings(t *testing.T) {
	g := symbols.NewGlobal()
	g.Declare(symbols.NewSymbol(symbols.KindVariable, "x", token.Position{}, types.TInt))
	block := g.Push(symbols.ScopeBlock)
	if _, ok := block.LookupLocal("x"); ok {
		t.Error("LookupLocal must not see bindings from an outer scope")
	}
	if _, ok := block.Lookup("x"); !ok {
		t.Error("Lookup should still see the outer binding")
	}
}

func TestScope_LookupUnknownNameFails(t *testing.T) {
	g := symbols.NewGlobal()
	if _, ok := g.Lookup("nonexistent"); ok {
		t.Error("expected lookup of an undeclared name to fail")
	}
}

func TestScope_PushPopRoundTrips(t *testing.T) {
	g := symbols.NewGlobal()
	block := g.Push(symbols.ScopeBlock)
	if block.Kind() != symbols.ScopeBlock {
		t.Errorf("expected ScopeBlock, got %v", block.Kind())
	}
	if block.Pop() != g {
		t.Error("Pop should return the exact outer scope instance")
	}
	if g.Pop() != nil {
		t.Error("popping the global scope should yield nil")
	}
}

func TestScope_UpdateMutatesTheOwningScope(t *testing.T) {
	g := symbols.NewGlobal()
	sym := symbols.NewSymbol(symbols.KindVariable, "x", token.Position{}, types.TInt)
	sym.Initialized = false
	g.Declare(sym)

	block := g.Push(symbols.ScopeBlock)
	updated := sym
	updated.Initialized = true
	if !block.Update(updated) {
		t.Fatal("Update should find x through the outer chain")
	}

	got, _ := g.Lookup("x")
	if !got.Initialized {
		t.Error("Update should have mutated the scope that actually owns the binding")
	}
}

func TestScope_UpdateUnknownNameFails(t *testing.T) {
	g := symbols.NewGlobal()
	sym := symbols.NewSymbol(symbols.KindVariable, "ghost", token.Position{}, types.TInt)
	if g.Update(sym) {
		t.Error("updating a name that was never declared should fail")
	}
}

func TestScope_ClassByNameIsSharedAcrossTheWholeChain(t *testing.T) {
	g := symbols.NewGlobal()
	cls := symbols.NewSymbol(symbols.KindClass, "Animal", token.Position{}, types.Class{Name: "Animal"})
	block := g.Push(symbols.ScopeBlock)
	block.Declare(cls)

	// declared from a nested block scope, a class should still be visible via
	// ClassByName from a completely different branch of the scope tree, since
	// class names are global (spec.md: "no modules").
	funcScope := g.Push(symbols.ScopeFunction)
	got, ok := funcScope.ClassByName("Animal")
	if !ok || got.Name != "Animal" {
		t.Errorf("expected to find Animal via the shared classes map, got %v, %v", got, ok)
	}
}

func TestScope_IsFunctionAndClassScope(t *testing.T) {
	g := symbols.NewGlobal()
	fn := g.Push(symbols.ScopeFunction)
	cls := g.Push(symbols.ScopeClass)
	if !fn.IsFunctionScope() || fn.IsClassScope() {
		t.Error("function scope misclassified")
	}
	if !cls.IsClassScope() || cls.IsFunctionScope() {
		t.Error("class scope misclassified")
	}
}

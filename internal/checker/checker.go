// Package checker implements Compiscript's semantic analyzer: a two-pass
// walk (declarations, then bodies) over a parse tree that builds the symbol
// table, infers expression types and collects diagnostics (spec.md §4.3).
//
// The walker struct and its addError/errors-as-you-go style are grounded on
// funvibe/funxy's internal/analyzer "walker" (declaration/header/body passes
// over a shared symbol table, errors deduplicated and sorted before return).
package checker

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/diagnostics"
	"github.com/dsolis/compiscript/internal/symbols"
	"github.com/dsolis/compiscript/internal/types"
)

// Result is everything the rest of the pipeline needs after checking: the
// populated global scope (for the generator to resolve classes/functions),
// a per-node type map, and the collected diagnostics.
type Result struct {
	Global      *symbols.Scope
	Types       map[ast.Expression]types.Type
	Diagnostics []*diagnostics.Diagnostic
	// FuncScopes maps each function or method body (*ast.Block) to the
	// function-body scope it was checked in.
	FuncScopes map[ast.Node]*symbols.Scope
}

// Check runs the full two-pass analysis over program and returns a Result.
// TAC generation (the caller's responsibility) must be skipped if
// Result.Diagnostics contains any error-severity entry (spec.md §4.5).
func Check(program *ast.Program) *Result {
	c := &checker{
		bag:        diagnostics.NewBag(),
		global:     symbols.NewGlobal(),
		ctx:        symbols.NewContext(),
		typeOf:     make(map[ast.Expression]types.Type),
		funcScopes: make(map[ast.Node]*symbols.Scope),
	}
	c.scope = c.global
	registerBuiltins(c.global)

	// Declaration pass: collect every top-level function and class so that
	// mutual recursion and forward references resolve (spec.md §4.3).
	c.collectDeclarations(program.Statements)

	// Body pass: type-check statements/expressions in source order.
	c.checkBodyStatements(program.Statements)

	return &Result{
		Global:      c.global,
		Types:       c.typeOf,
		Diagnostics: c.bag.All(),
		FuncScopes:  c.funcScopes,
	}
}

// checker carries all mutable state for one Check invocation. Nothing here
// is package-level (spec.md §5: "Global state... There is none").
type checker struct {
	bag    *diagnostics.Bag
	global *symbols.Scope
	scope  *symbols.Scope
	ctx    *symbols.Context

	typeOf     map[ast.Expression]types.Type
	funcScopes map[ast.Node]*symbols.Scope
}

func (c *checker) setType(e ast.Expression, t types.Type) types.Type {
	c.typeOf[e] = t
	return t
}

func (c *checker) pushScope(kind symbols.ScopeKind) {
	c.scope = c.scope.Push(kind)
}

func (c *checker) popScope() {
	c.scope = c.scope.Pop()
}

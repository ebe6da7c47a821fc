package checker

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/diagnostics"
	"github.com/dsolis/compiscript/internal/symbols"
	"github.com/dsolis/compiscript/internal/token"
	"github.com/dsolis/compiscript/internal/types"
)

// collectDeclarations is the declaration pass (spec.md §4.3): it registers
// every FuncDecl and ClassDecl in the current scope up front, without
// descending into bodies, so mutual recursion and forward references
// resolve. Variable/const declarations are deliberately NOT hoisted here —
// they become visible only when the body pass reaches them in source order.
func (c *checker) collectDeclarations(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch d := stmt.(type) {
		case *ast.FuncDecl:
			c.declareFunction(d.Tok.Pos, d.Name, d.Params, d.ReturnType, "")
		case *ast.ClassDecl:
			c.declareClass(d)
		}
	}
}

// resolveTypeRef turns a syntactic TypeRef into a types.Type, resolving
// class names against whatever has been declared so far. Returns nil and
// records UnknownSymbol if the base name is neither a primitive keyword nor
// a known class.
func (c *checker) resolveTypeRef(tr *ast.TypeRef) types.Type {
	if tr == nil {
		return nil
	}
	var base types.Type
	switch tr.Name {
	case "integer":
		base = types.TInt
	case "float":
		base = types.TFloat
	case "boolean":
		base = types.TBool
	case "string":
		base = types.TString
	case "void":
		base = types.TVoid
	case "null":
		base = types.TNull
	default:
		sym, ok := c.scope.ClassByName(tr.Name)
		if !ok {
			c.bag.Add(diagnostics.UnknownSymbol, tr.Tok.Pos, "unknown type %q", tr.Name)
			return nil
		}
		base = sym
	}
	for i := 0; i < tr.ArrayDepth; i++ {
		base = types.Array{Elem: base}
	}
	return base
}

func (c *checker) declareFunction(pos token.Position, name string, params []*ast.Param, retType *ast.TypeRef, className string) symbols.Symbol {
	var paramSymbols []symbols.Symbol
	for i, p := range params {
		pt := c.resolveTypeRef(p.Type)
		ps := symbols.NewSymbol(symbols.KindParameter, p.Name, p.Tok.Pos, pt)
		ps.SlotIndex = i
		paramSymbols = append(paramSymbols, ps)
	}
	var ret types.Type = types.TVoid
	if retType != nil {
		if t := c.resolveTypeRef(retType); t != nil {
			ret = t
		}
	}
	sig := types.FunctionSig{Return: ret}
	for _, p := range paramSymbols {
		sig.Params = append(sig.Params, p.Type)
	}
	fnSym := symbols.NewSymbol(symbols.KindFunction, name, pos, sig)
	fnSym.Params = paramSymbols
	fnSym.ReturnType = ret
	fnSym.EnclosingClass = className
	if !c.scope.Declare(fnSym) {
		c.bag.Add(diagnostics.DuplicateSymbol, pos, "%q is already declared in this scope", name)
	}
	return fnSym
}

func (c *checker) declareClass(d *ast.ClassDecl) {
	classSym := symbols.NewSymbol(symbols.KindClass, d.Name, d.Tok.Pos, nil)
	classSym.Parent = d.Parent
	classSym.OwnFields = types.NewOrderedFields()
	classSym.OwnMethods = make(map[string]symbols.Symbol)
	if !c.scope.Declare(classSym) {
		c.bag.Add(diagnostics.DuplicateSymbol, d.Tok.Pos, "class %q is already declared", d.Name)
		return
	}

	// Recursively enter the class body to register fields and method
	// signatures before any method body is checked (spec.md §4.3).
	c.pushScope(symbols.ScopeClass)
	seen := map[string]bool{}
	for _, f := range d.Fields {
		if seen[f.Name] {
			c.bag.Add(diagnostics.DuplicateSymbol, f.Tok.Pos, "field %q already declared in class %q", f.Name, d.Name)
			continue
		}
		seen[f.Name] = true
		ft := c.resolveTypeRef(f.Type)
		classSym.OwnFields.Add(f.Name, ft)
	}
	for _, m := range d.Methods {
		if seen[m.Name] {
			c.bag.Add(diagnostics.DuplicateSymbol, m.Tok.Pos, "method %q already declared in class %q", m.Name, d.Name)
			continue
		}
		seen[m.Name] = true
		fnSym := c.declareFunction(m.Tok.Pos, m.Name, m.Params, m.ReturnType, d.Name)
		classSym.AddMethod(m.Name, fnSym)
	}
	c.popScope()

	// Re-declare with the populated field/method tables (Declare stored a
	// shallow copy before the class body was filled in).
	c.scope.Update(classSym)

	if d.Parent != "" {
		if _, ok := c.scope.ClassByName(d.Parent); !ok {
			c.bag.Add(diagnostics.UnknownSymbol, d.Tok.Pos, "unknown parent class %q", d.Parent)
		}
	}
	// Constructor absence (own or inherited) is enforced at each `new` call
	// site (BadConstructor), where arity is already being checked anyway.
}

package symbols

import "github.com/dsolis/compiscript/internal/types"

// ScopeKind is one of spec.md §3.3's four scope kinds.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeBlock
)

// Scope is a single lexical frame: a name->symbol mapping plus a parent
// pointer, grounded on funxy/internal/symbols's
// NewEnclosedSymbolTable(outer, scopeType) shape.
type Scope struct {
	kind   ScopeKind
	outer  *Scope
	store  map[string]Symbol
	// classes indexes every Class symbol ever declared, by name, reachable
	// from any scope (Compiscript has no modules, so class names are global).
	// Only the root scope's map is used; child scopes delegate to it.
	classes map[string]Symbol
}

// NewGlobal creates the outermost scope.
func NewGlobal() *Scope {
	return &Scope{
		kind:    ScopeGlobal,
		store:   make(map[string]Symbol),
		classes: make(map[string]Symbol),
	}
}

// Push opens a new scope of the given kind nested inside s.
func (s *Scope) Push(kind ScopeKind) *Scope {
	return &Scope{kind: kind, outer: s, store: make(map[string]Symbol), classes: s.classes}
}

// Pop returns the enclosing scope (nil at the global scope).
func (s *Scope) Pop() *Scope {
	return s.outer
}

// Kind reports this scope's kind.
func (s *Scope) Kind() ScopeKind {
	return s.kind
}

// Declare adds sym to the current scope. Returns false (DuplicateSymbol,
// invariant 3.3.1) if the name is already bound in this exact scope —
// shadowing an outer scope's binding is permitted (invariant 3.3.2).
func (s *Scope) Declare(sym Symbol) bool {
	if _, exists := s.store[sym.Name]; exists {
		return false
	}
	s.store[sym.Name] = sym
	if sym.Kind == KindClass {
		s.classes[sym.Name] = sym
	}
	return true
}

// Update overwrites an existing binding in the scope that owns it (used e.g.
// to flip Initialized after a deferred-initialization assignment). Returns
// false if the name isn't bound anywhere in the chain.
func (s *Scope) Update(sym Symbol) bool {
	for cur := s; cur != nil; cur = cur.outer {
		if _, exists := cur.store[sym.Name]; exists {
			cur.store[sym.Name] = sym
			if sym.Kind == KindClass {
				cur.classes[sym.Name] = sym
			}
			return true
		}
	}
	return false
}

// Lookup walks outward from s looking for name.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if sym, ok := cur.store[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupLocal looks only in the current scope.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	return sym, ok
}

func (s *Scope) IsFunctionScope() bool { return s.kind == ScopeFunction }
func (s *Scope) IsClassScope() bool    { return s.kind == ScopeClass }

// ClassByName implements types.ClassRegistry over every class declared
// anywhere in the program (class names are global in Compiscript: there are
// no modules, spec.md Non-goals).
func (s *Scope) ClassByName(name string) (types.Class, bool) {
	sym, ok := s.classes[name]
	if !ok {
		return types.Class{}, false
	}
	return sym.ClassType(), true
}

// Package types implements Compiscript's type algebra: the tagged union of
// primitives, arrays, classes and function signatures, plus the
// compatibility predicates the checker needs (spec.md §3.1, §4.1).
package types

import (
	"fmt"
	"strings"
)

// Kind tags the primitive members of the type union.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	String
	Null
	Void
	ArrayKind
	ClassKind
	FunctionKind
)

// Type is the closed interface every member of the type union implements.
type Type interface {
	Kind() Kind
	String() string
	Equal(other Type) bool
}

// Primitive is one of Int, Float, Bool, String, Null, Void.
type Primitive struct {
	K Kind
}

func (p Primitive) Kind() Kind { return p.K }

func (p Primitive) String() string {
	switch p.K {
	case Int:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case String:
		return "string"
	case Null:
		return "null"
	case Void:
		return "void"
	default:
		return "?"
	}
}

func (p Primitive) Equal(other Type) bool {
	o, ok := other.(Primitive)
	return ok && o.K == p.K
}

var (
	TInt    = Primitive{K: Int}
	TFloat  = Primitive{K: Float}
	TBool   = Primitive{K: Bool}
	TString = Primitive{K: String}
	TNull   = Primitive{K: Null}
	TVoid   = Primitive{K: Void}
)

// Array is a homogeneous, arbitrary-length sequence of Elem.
type Array struct {
	Elem Type
}

func (a Array) Kind() Kind     { return ArrayKind }
func (a Array) String() string { return a.Elem.String() + "[]" }

func (a Array) Equal(other Type) bool {
	o, ok := other.(Array)
	return ok && a.Elem.Equal(o.Elem)
}

// FunctionSig is a first-class function signature: ordered parameter types
// plus a return type.
type FunctionSig struct {
	Params []Type
	Return Type
}

func (f FunctionSig) Kind() Kind { return FunctionKind }

func (f FunctionSig) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), ret)
}

func (f FunctionSig) Equal(other Type) bool {
	o, ok := other.(FunctionSig)
	if !ok || len(o.Params) != len(f.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	if (f.Return == nil) != (o.Return == nil) {
		return false
	}
	if f.Return != nil && !f.Return.Equal(o.Return) {
		return false
	}
	return true
}

// Class is a nominal type identified by Name alone (spec.md §3.1: "Classes by
// nominal name only"). Fields/Methods/Parent are populated by the symbol
// table when the class declaration is processed; Class values handed around
// by the checker before that carry just Name and are still comparable.
type Class struct {
	Name    string
	Fields  *OrderedFields
	Methods map[string]FunctionSig
	Parent  string // empty if no parent
}

func (c Class) Kind() Kind     { return ClassKind }
func (c Class) String() string { return c.Name }

func (c Class) Equal(other Type) bool {
	o, ok := other.(Class)
	return ok && o.Name == c.Name
}

// OrderedFields preserves field declaration order (spec.md §3.1: "fields:
// ordered mapping name→Type").
type OrderedFields struct {
	names []string
	types map[string]Type
}

func NewOrderedFields() *OrderedFields {
	return &OrderedFields{types: make(map[string]Type)}
}

func (f *OrderedFields) Add(name string, t Type) {
	if _, exists := f.types[name]; !exists {
		f.names = append(f.names, name)
	}
	f.types[name] = t
}

func (f *OrderedFields) Get(name string) (Type, bool) {
	t, ok := f.types[name]
	return t, ok
}

func (f *OrderedFields) Names() []string {
	return f.names
}

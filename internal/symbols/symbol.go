// Package symbols implements Compiscript's lexically scoped symbol table:
// a stack of Scopes, five symbol variants, and the parallel loop/return
// context stacks the checker needs (spec.md §3.2, §3.3, §4.2).
package symbols

import (
	"github.com/google/uuid"

	"github.com/dsolis/compiscript/internal/token"
	"github.com/dsolis/compiscript/internal/types"
)

// Kind discriminates the five symbol variants of spec.md §3.2.
type Kind int

const (
	KindVariable Kind = iota
	KindParameter
	KindFunction
	KindClass
	KindBuiltin
)

// Symbol is the tagged union of spec.md §3.2, carrying a source position and
// a stable uuid.UUID identity so the TAC generator can refer to symbols
// independent of scope-relative bookkeeping (SPEC_FULL.md §4).
type Symbol struct {
	ID   uuid.UUID
	Kind Kind
	Name string
	Pos  token.Position
	Type types.Type

	// Variable / Parameter
	IsConst     bool
	Initialized bool
	SlotIndex   int // Parameter only

	// Function
	Params         []Symbol // Parameter symbols, in order
	ReturnType     types.Type
	EnclosingClass string // empty if a free function

	// Class
	Parent      string // empty if no parent
	OwnFields   *types.OrderedFields
	OwnMethods  map[string]Symbol // method name -> Function symbol
	methodOrder []string
}

// NewSymbol mints a Symbol with a fresh stable id.
func NewSymbol(kind Kind, name string, pos token.Position, t types.Type) Symbol {
	return Symbol{ID: uuid.New(), Kind: kind, Name: name, Pos: pos, Type: t}
}

// AddMethod registers a method on a Class symbol, preserving declaration order.
func (s *Symbol) AddMethod(name string, fn Symbol) {
	if s.OwnMethods == nil {
		s.OwnMethods = make(map[string]Symbol)
	}
	if _, exists := s.OwnMethods[name]; !exists {
		s.methodOrder = append(s.methodOrder, name)
	}
	s.OwnMethods[name] = fn
}

// MethodOrder returns method names in declaration order.
func (s *Symbol) MethodOrder() []string {
	return s.methodOrder
}

// FunctionSig builds the types.FunctionSig view of a Function symbol.
func (s Symbol) FunctionSig() types.FunctionSig {
	params := make([]types.Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Type
	}
	return types.FunctionSig{Params: params, Return: s.ReturnType}
}

// ClassType builds the types.Class view of a Class symbol, suitable for use
// with types.MemberLookup and types.Assignable.
func (s Symbol) ClassType() types.Class {
	methods := make(map[string]types.FunctionSig, len(s.OwnMethods))
	for name, m := range s.OwnMethods {
		methods[name] = m.FunctionSig()
	}
	return types.Class{Name: s.Name, Fields: s.OwnFields, Methods: methods, Parent: s.Parent}
}

package ast

import "github.com/dsolis/compiscript/internal/token"

// TypeRef is a syntactic type annotation as written by the programmer: a
// base name (a primitive keyword or a class name) plus an array depth, e.g.
// "integer[]" is TypeRef{Name: "integer", ArrayDepth: 1}.
type TypeRef struct {
	Tok        token.Token
	Name       string
	ArrayDepth int
}

func (t *TypeRef) GetToken() token.Token { return t.Tok }

// Param is a function/method parameter declaration.
type Param struct {
	Tok  token.Token
	Name string
	Type *TypeRef
}

func (p *Param) GetToken() token.Token { return p.Tok }

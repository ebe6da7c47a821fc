package ast

import "github.com/dsolis/compiscript/internal/token"

// Program is the root of every parse tree (spec.md §3.4, §6).
type Program struct {
	Tok        token.Token
	Statements []Statement
}

func (p *Program) GetToken() token.Token { return p.Tok }
func (p *Program) Accept(v Visitor)       { v.VisitProgram(p) }

// VarDecl is `let name: T = E;` with T and/or E optional per spec.md §4.3.
type VarDecl struct {
	Tok  token.Token
	Name string
	Type *TypeRef // nil if inferred
	Init Expression
}

func (d *VarDecl) GetToken() token.Token { return d.Tok }
func (d *VarDecl) Accept(v Visitor)      { v.VisitVarDecl(d) }
func (d *VarDecl) statementNode()        {}

// ConstDecl is `const name: T = E;`; Init is mandatory (spec.md §4.3).
type ConstDecl struct {
	Tok  token.Token
	Name string
	Type *TypeRef
	Init Expression
}

func (d *ConstDecl) GetToken() token.Token { return d.Tok }
func (d *ConstDecl) Accept(v Visitor)      { v.VisitConstDecl(d) }
func (d *ConstDecl) statementNode()        {}

// FuncDecl is a top-level or class-free function declaration.
type FuncDecl struct {
	Tok        token.Token
	Name       string
	Params     []*Param
	ReturnType *TypeRef // nil means void
	Body       *Block
}

func (d *FuncDecl) GetToken() token.Token { return d.Tok }
func (d *FuncDecl) Accept(v Visitor)      { v.VisitFuncDecl(d) }
func (d *FuncDecl) statementNode()        {}

// FieldDecl is a class field declaration (`let v: integer;`) inside a class body.
type FieldDecl struct {
	Tok  token.Token
	Name string
	Type *TypeRef
	// Init is the field's inline initializer expression, if any. Compiscript
	// classes initialize fields in the constructor, but an inline default is
	// allowed and assigned before the constructor body runs.
	Init Expression
}

func (d *FieldDecl) GetToken() token.Token { return d.Tok }
func (d *FieldDecl) Accept(v Visitor)      { v.VisitFieldDecl(d) }
func (d *FieldDecl) statementNode()        {}

// MethodDecl is a method (including `constructor`) inside a class body.
type MethodDecl struct {
	Tok        token.Token
	Name       string
	Params     []*Param
	ReturnType *TypeRef
	Body       *Block
}

func (d *MethodDecl) GetToken() token.Token { return d.Tok }
func (d *MethodDecl) Accept(v Visitor)      { v.VisitMethodDecl(d) }
func (d *MethodDecl) statementNode()        {}

// ClassDecl declares a class, optionally extending a Parent (spec.md §4.3).
type ClassDecl struct {
	Tok     token.Token
	Name    string
	Parent  string // empty if none
	Fields  []*FieldDecl
	Methods []*MethodDecl
}

func (d *ClassDecl) GetToken() token.Token { return d.Tok }
func (d *ClassDecl) Accept(v Visitor)      { v.VisitClassDecl(d) }
func (d *ClassDecl) statementNode()        {}

package ast

import "github.com/dsolis/compiscript/internal/token"

// LiteralKind tags the lexical form of a Literal node.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
)

// Literal is a constant value fixed at parse time.
type Literal struct {
	Tok  token.Token
	Kind LiteralKind
	// Value holds int64, float64, string or bool depending on Kind; nil for NullLit.
	Value interface{}
}

func (e *Literal) GetToken() token.Token { return e.Tok }
func (e *Literal) Accept(v Visitor)      { v.VisitLiteral(e) }
func (e *Literal) expressionNode()       {}

// Identifier is a bare name reference.
type Identifier struct {
	Tok  token.Token
	Name string
}

func (e *Identifier) GetToken() token.Token { return e.Tok }
func (e *Identifier) Accept(v Visitor)      { v.VisitIdentifier(e) }
func (e *Identifier) expressionNode()       {}

// BinaryOp enumerates the binary operators spec.md §4.3 types.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpLt  BinaryOp = "<"
	OpLe  BinaryOp = "<="
	OpGt  BinaryOp = ">"
	OpGe  BinaryOp = ">="
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
)

// Binary is a two-operand operator expression.
type Binary struct {
	Tok   token.Token
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *Binary) GetToken() token.Token { return e.Tok }
func (e *Binary) Accept(v Visitor)      { v.VisitBinary(e) }
func (e *Binary) expressionNode()       {}

// UnaryOp enumerates the unary operators spec.md §4.3 types.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

// Unary is a single-operand prefix operator expression.
type Unary struct {
	Tok     token.Token
	Op      UnaryOp
	Operand Expression
}

func (e *Unary) GetToken() token.Token { return e.Tok }
func (e *Unary) Accept(v Visitor)      { v.VisitUnary(e) }
func (e *Unary) expressionNode()       {}

// Call is `Callee(Args...)`: a free function call, or a method call when
// Callee is a *Member.
type Call struct {
	Tok    token.Token
	Callee Expression
	Args   []Expression
}

func (e *Call) GetToken() token.Token { return e.Tok }
func (e *Call) Accept(v Visitor)      { v.VisitCall(e) }
func (e *Call) expressionNode()       {}

// Member is `Object.Field`.
type Member struct {
	Tok    token.Token
	Object Expression
	Field  string
}

func (e *Member) GetToken() token.Token { return e.Tok }
func (e *Member) Accept(v Visitor)      { v.VisitMember(e) }
func (e *Member) expressionNode()       {}

// Index is `Array[Idx]`.
type Index struct {
	Tok   token.Token
	Array Expression
	Idx   Expression
}

func (e *Index) GetToken() token.Token { return e.Tok }
func (e *Index) Accept(v Visitor)      { v.VisitIndex(e) }
func (e *Index) expressionNode()       {}

// This is the `this` receiver reference, legal only inside a method body.
type This struct {
	Tok token.Token
}

func (e *This) GetToken() token.Token { return e.Tok }
func (e *This) Accept(v Visitor)      { v.VisitThis(e) }
func (e *This) expressionNode()       {}

// New is `new ClassName(Args...)`.
type New struct {
	Tok       token.Token
	ClassName string
	Args      []Expression
}

func (e *New) GetToken() token.Token { return e.Tok }
func (e *New) Accept(v Visitor)      { v.VisitNew(e) }
func (e *New) expressionNode()       {}

// ArrayLit is `[e1, ..., eN]`.
type ArrayLit struct {
	Tok      token.Token
	Elements []Expression
}

func (e *ArrayLit) GetToken() token.Token { return e.Tok }
func (e *ArrayLit) Accept(v Visitor)      { v.VisitArrayLit(e) }
func (e *ArrayLit) expressionNode()       {}

// LValue is the subset of Expression that Assign accepts on its left side:
// an Identifier, a Member, or an Index (spec.md §4.3 Assignment rule).
type LValue = Expression

// Assign is `Target = Value`.
type Assign struct {
	Tok    token.Token
	Target LValue
	Value  Expression
}

func (e *Assign) GetToken() token.Token { return e.Tok }
func (e *Assign) Accept(v Visitor)      { v.VisitAssign(e) }
func (e *Assign) expressionNode()       {}

// Ternary is `Cond ? Then : Else`.
type Ternary struct {
	Tok  token.Token
	Cond Expression
	Then Expression
	Else Expression
}

func (e *Ternary) GetToken() token.Token { return e.Tok }
func (e *Ternary) Accept(v Visitor)      { v.VisitTernary(e) }
func (e *Ternary) expressionNode()       {}

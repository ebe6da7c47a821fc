package ast

import "github.com/dsolis/compiscript/internal/token"

// Block is a brace-delimited statement sequence; it opens its own scope
// (spec.md §3.3).
type Block struct {
	Tok        token.Token
	Statements []Statement
}

func (b *Block) GetToken() token.Token { return b.Tok }
func (b *Block) Accept(v Visitor)      { v.VisitBlock(b) }
func (b *Block) statementNode()        {}

// If is `if (Cond) Then [else Else]`.
type If struct {
	Tok  token.Token
	Cond Expression
	Then *Block
	Else Statement // *Block, or another *If for `else if`; nil if absent
}

func (s *If) GetToken() token.Token { return s.Tok }
func (s *If) Accept(v Visitor)      { v.VisitIf(s) }
func (s *If) statementNode()        {}

// While is `while (Cond) Body`.
type While struct {
	Tok  token.Token
	Cond Expression
	Body *Block
}

func (s *While) GetToken() token.Token { return s.Tok }
func (s *While) Accept(v Visitor)      { v.VisitWhile(s) }
func (s *While) statementNode()        {}

// DoWhile is `do Body while (Cond);`.
type DoWhile struct {
	Tok  token.Token
	Body *Block
	Cond Expression
}

func (s *DoWhile) GetToken() token.Token { return s.Tok }
func (s *DoWhile) Accept(v Visitor)      { v.VisitDoWhile(s) }
func (s *DoWhile) statementNode()        {}

// For is a classic C-style for loop; Init/Cond/Step may each be nil.
type For struct {
	Tok  token.Token
	Init Statement // VarDecl, ConstDecl, or ExprStmt
	Cond Expression
	Step Expression
	Body *Block
}

func (s *For) GetToken() token.Token { return s.Tok }
func (s *For) Accept(v Visitor)      { v.VisitFor(s) }
func (s *For) statementNode()        {}

// Foreach is `foreach (x in a) Body` (spec.md §4.3).
type Foreach struct {
	Tok      token.Token
	VarName  string
	Iterable Expression
	Body     *Block
}

func (s *Foreach) GetToken() token.Token { return s.Tok }
func (s *Foreach) Accept(v Visitor)      { v.VisitForeach(s) }
func (s *Foreach) statementNode()        {}

// Case is one `case k: ...` arm, or the `default:` arm when Value == nil.
type Case struct {
	Tok        token.Token
	Value      Expression // nil for default
	IsDefault  bool
	Statements []Statement
}

func (c *Case) GetToken() token.Token { return c.Tok }
func (c *Case) Accept(v Visitor)      { v.VisitCase(c) }
func (c *Case) statementNode()        {}

// Switch is `switch (E) { Cases... }`.
type Switch struct {
	Tok   token.Token
	Value Expression
	Cases []*Case
}

func (s *Switch) GetToken() token.Token { return s.Tok }
func (s *Switch) Accept(v Visitor)      { v.VisitSwitch(s) }
func (s *Switch) statementNode()        {}

// Break is `break;`.
type Break struct {
	Tok token.Token
}

func (s *Break) GetToken() token.Token { return s.Tok }
func (s *Break) Accept(v Visitor)      { v.VisitBreak(s) }
func (s *Break) statementNode()        {}

// Continue is `continue;`.
type Continue struct {
	Tok token.Token
}

func (s *Continue) GetToken() token.Token { return s.Tok }
func (s *Continue) Accept(v Visitor)      { v.VisitContinue(s) }
func (s *Continue) statementNode()        {}

// Return is `return [Value];`.
type Return struct {
	Tok   token.Token
	Value Expression // nil for a bare `return;`
}

func (s *Return) GetToken() token.Token { return s.Tok }
func (s *Return) Accept(v Visitor)      { v.VisitReturn(s) }
func (s *Return) statementNode()        {}

// ExprStmt is an expression used as a statement (e.g. an assignment or a
// free-standing call).
type ExprStmt struct {
	Tok  token.Token
	Expr Expression
}

func (s *ExprStmt) GetToken() token.Token { return s.Tok }
func (s *ExprStmt) Accept(v Visitor)      { v.VisitExprStmt(s) }
func (s *ExprStmt) statementNode()        {}

// Print is the dedicated `print(E);` statement form (SPEC_FULL.md §5.4).
type Print struct {
	Tok   token.Token
	Value Expression
}

func (s *Print) GetToken() token.Token { return s.Tok }
func (s *Print) Accept(v Visitor)      { v.VisitPrint(s) }
func (s *Print) statementNode()        {}

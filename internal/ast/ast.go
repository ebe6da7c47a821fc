// Package ast defines the Compiscript parse-tree node set the checker and
// TAC generator consume. The lexer/parser that produce these trees are an
// external collaborator (spec.md §1, §6); this package only models the
// AstVisitor-style contract they are expected to satisfy, plus exported
// constructors so tests (and any real parser) can build trees directly.
package ast

import "github.com/dsolis/compiscript/internal/token"

// Node is the root of every AST type.
type Node interface {
	GetToken() token.Token
	Accept(v Visitor)
}

// Statement is a Node appearing in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node appearing in an expression position.
type Expression interface {
	Node
	expressionNode()
}

// Visitor implements double dispatch over every node kind named in
// spec.md §6.
type Visitor interface {
	VisitProgram(n *Program)
	VisitVarDecl(n *VarDecl)
	VisitConstDecl(n *ConstDecl)
	VisitFuncDecl(n *FuncDecl)
	VisitClassDecl(n *ClassDecl)
	VisitFieldDecl(n *FieldDecl)
	VisitMethodDecl(n *MethodDecl)
	VisitBlock(n *Block)
	VisitIf(n *If)
	VisitWhile(n *While)
	VisitDoWhile(n *DoWhile)
	VisitFor(n *For)
	VisitForeach(n *Foreach)
	VisitSwitch(n *Switch)
	VisitCase(n *Case)
	VisitBreak(n *Break)
	VisitContinue(n *Continue)
	VisitReturn(n *Return)
	VisitExprStmt(n *ExprStmt)
	VisitPrint(n *Print)
	VisitBinary(n *Binary)
	VisitUnary(n *Unary)
	VisitCall(n *Call)
	VisitMember(n *Member)
	VisitIndex(n *Index)
	VisitThis(n *This)
	VisitNew(n *New)
	VisitArrayLit(n *ArrayLit)
	VisitLiteral(n *Literal)
	VisitIdentifier(n *Identifier)
	VisitAssign(n *Assign)
	VisitTernary(n *Ternary)
}

type baseNode struct {
	Tok token.Token
}

func (b baseNode) GetToken() token.Token { return b.Tok }

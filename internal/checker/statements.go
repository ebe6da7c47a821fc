package checker

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/diagnostics"
	"github.com/dsolis/compiscript/internal/symbols"
	"github.com/dsolis/compiscript/internal/types"
)

// checkBodyStatements is the body pass over a statement sequence (spec.md
// §4.3): type-check in source order, re-entering declaration handling only
// for the statement kinds collectDeclarations doesn't hoist (vars/consts).
// collectDeclarations runs only over the program's top-level statements
// (see Check); function and class declarations nested in a block are not
// collected.
func (c *checker) checkBodyStatements(stmts []ast.Statement) {
	terminated := false
	for _, stmt := range stmts {
		if terminated {
			c.bag.AddWarning(diagnostics.DeadCode, stmt.GetToken().Pos, "unreachable statement")
		}
		c.checkStmt(stmt)
		if mustReturn(stmt) {
			terminated = true
		}
	}
}

func (c *checker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.ConstDecl:
		c.checkConstDecl(s)
	case *ast.FuncDecl:
		c.checkFuncBody(s.Name, s.Params, s.ReturnType, s.Body, "")
	case *ast.ClassDecl:
		c.checkClassBody(s)
	case *ast.Block:
		c.pushScope(symbols.ScopeBlock)
		c.checkBodyStatements(s.Statements)
		c.popScope()
	case *ast.If:
		c.checkIf(s)
	case *ast.While:
		c.checkWhile(s)
	case *ast.DoWhile:
		c.checkDoWhile(s)
	case *ast.For:
		c.checkFor(s)
	case *ast.Foreach:
		c.checkForeach(s)
	case *ast.Switch:
		c.checkSwitch(s)
	case *ast.Break:
		if !c.ctx.InLoop() {
			c.bag.Add(diagnostics.UnboundBreakContinue, s.Tok.Pos, "'break' outside a loop or switch")
		}
	case *ast.Continue:
		if !c.ctx.CanContinue() {
			c.bag.Add(diagnostics.UnboundBreakContinue, s.Tok.Pos, "'continue' outside a loop")
		}
	case *ast.Return:
		c.checkReturn(s)
	case *ast.ExprStmt:
		c.checkExpr(s.Expr)
	case *ast.Print:
		c.checkExpr(s.Value)
	}
}

func (c *checker) checkVarDecl(s *ast.VarDecl) {
	var declared types.Type
	if s.Type != nil {
		declared = c.resolveTypeRef(s.Type)
	}
	var initType types.Type
	if s.Init != nil {
		initType = c.checkExpr(s.Init)
	}
	final := declared
	if final == nil {
		final = initType
	}
	if declared != nil && initType != nil && !types.Assignable(initType, declared, c.scope) {
		c.bag.Add(diagnostics.TypeMismatch, s.Tok.Pos, "cannot assign %s to declared type %s", initType, declared)
	}
	sym := symbols.NewSymbol(symbols.KindVariable, s.Name, s.Tok.Pos, final)
	sym.Initialized = s.Init != nil
	if !c.scope.Declare(sym) {
		c.bag.Add(diagnostics.DuplicateSymbol, s.Tok.Pos, "%q is already declared in this scope", s.Name)
	}
}

func (c *checker) checkConstDecl(s *ast.ConstDecl) {
	var declared types.Type
	if s.Type != nil {
		declared = c.resolveTypeRef(s.Type)
	}
	initType := c.checkExpr(s.Init)
	final := declared
	if final == nil {
		final = initType
	}
	if declared != nil && initType != nil && !types.Assignable(initType, declared, c.scope) {
		c.bag.Add(diagnostics.TypeMismatch, s.Tok.Pos, "cannot assign %s to declared type %s", initType, declared)
	}
	sym := symbols.NewSymbol(symbols.KindVariable, s.Name, s.Tok.Pos, final)
	sym.IsConst = true
	sym.Initialized = true
	if !c.scope.Declare(sym) {
		c.bag.Add(diagnostics.DuplicateSymbol, s.Tok.Pos, "%q is already declared in this scope", s.Name)
	}
}

// checkFuncBody re-enters a function body, opening a function scope,
// binding parameters, and running return-path analysis (spec.md §4.3).
func (c *checker) checkFuncBody(name string, params []*ast.Param, retType *ast.TypeRef, body *ast.Block, className string) {
	sym, ok := c.scope.Lookup(name)
	if className != "" {
		// A method's symbol lives in its class's method table; the class
		// scope it was declared in has already been popped.
		sym, ok = symbols.Symbol{}, false
		if cls, found := c.scope.Lookup(className); found && cls.Kind == symbols.KindClass {
			sym, ok = cls.OwnMethods[name]
		}
	}
	var expected types.Type = types.TVoid
	var paramSyms []symbols.Symbol
	if ok && sym.Kind == symbols.KindFunction {
		expected = sym.ReturnType
		paramSyms = sym.Params
	}
	c.pushScope(symbols.ScopeFunction)
	for _, p := range paramSyms {
		if !c.scope.Declare(p) {
			c.bag.Add(diagnostics.DuplicateSymbol, p.Pos, "duplicate parameter %q", p.Name)
		}
	}
	c.ctx.PushFunc(expected, className)
	c.checkBodyStatements(body.Statements)
	c.funcScopes[body] = c.scope
	c.ctx.PopFunc()
	c.popScope()

	if !expected.Equal(types.TVoid) && !mustReturn(body) {
		c.bag.Add(diagnostics.MissingReturn, body.Tok.Pos, "function %q does not return a value on every path", name)
	}
}

func (c *checker) checkClassBody(d *ast.ClassDecl) {
	for _, f := range d.Fields {
		if f.Init != nil {
			c.checkExpr(f.Init)
		}
	}
	for _, m := range d.Methods {
		c.checkFuncBody(m.Name, m.Params, m.ReturnType, m.Body, d.Name)
	}
}

func (c *checker) checkIf(s *ast.If) {
	cond := c.checkExpr(s.Cond)
	if cond != nil && !cond.Equal(types.TBool) {
		c.bag.Add(diagnostics.NotBoolean, s.Tok.Pos, "if condition must be boolean, got %s", cond)
	}
	c.checkStmt(s.Then)
	if s.Else != nil {
		c.checkStmt(s.Else)
	}
}

func (c *checker) checkWhile(s *ast.While) {
	cond := c.checkExpr(s.Cond)
	if cond != nil && !cond.Equal(types.TBool) {
		c.bag.Add(diagnostics.NotBoolean, s.Tok.Pos, "while condition must be boolean, got %s", cond)
	}
	c.ctx.PushLoop(false)
	c.pushScope(symbols.ScopeBlock)
	c.checkBodyStatements(s.Body.Statements)
	c.popScope()
	c.ctx.PopLoop()
}

func (c *checker) checkDoWhile(s *ast.DoWhile) {
	c.ctx.PushLoop(false)
	c.pushScope(symbols.ScopeBlock)
	c.checkBodyStatements(s.Body.Statements)
	c.popScope()
	c.ctx.PopLoop()
	cond := c.checkExpr(s.Cond)
	if cond != nil && !cond.Equal(types.TBool) {
		c.bag.Add(diagnostics.NotBoolean, s.Tok.Pos, "do-while condition must be boolean, got %s", cond)
	}
}

func (c *checker) checkFor(s *ast.For) {
	c.pushScope(symbols.ScopeBlock)
	if s.Init != nil {
		c.checkStmt(s.Init)
	}
	if s.Cond != nil {
		cond := c.checkExpr(s.Cond)
		if cond != nil && !cond.Equal(types.TBool) {
			c.bag.Add(diagnostics.NotBoolean, s.Tok.Pos, "for condition must be boolean, got %s", cond)
		}
	}
	if s.Step != nil {
		c.checkExpr(s.Step)
	}
	c.ctx.PushLoop(false)
	c.checkBodyStatements(s.Body.Statements)
	c.ctx.PopLoop()
	c.popScope()
}

func (c *checker) checkForeach(s *ast.Foreach) {
	iterT := c.checkExpr(s.Iterable)
	c.pushScope(symbols.ScopeBlock)
	var elemT types.Type
	if arr, ok := iterT.(types.Array); ok {
		elemT = arr.Elem
	} else if iterT != nil {
		c.bag.Add(diagnostics.TypeMismatch, s.Tok.Pos, "foreach requires an array, got %s", iterT)
	}
	sym := symbols.NewSymbol(symbols.KindVariable, s.VarName, s.Tok.Pos, elemT)
	sym.Initialized = true
	c.scope.Declare(sym)
	c.ctx.PushLoop(false)
	c.checkBodyStatements(s.Body.Statements)
	c.ctx.PopLoop()
	c.popScope()
}

func (c *checker) checkSwitch(s *ast.Switch) {
	subject := c.checkExpr(s.Value)
	c.ctx.PushLoop(true) // switch pushes a break-only frame
	for _, cs := range s.Cases {
		if !cs.IsDefault {
			caseT := c.checkExpr(cs.Value)
			if _, isLiteral := cs.Value.(*ast.Literal); !isLiteral {
				c.bag.Add(diagnostics.TypeMismatch, cs.Tok.Pos, "case value must be a compile-time literal")
			}
			if subject != nil && caseT != nil && !caseT.Equal(subject) {
				c.bag.Add(diagnostics.TypeMismatch, cs.Tok.Pos, "case value type %s does not match switch subject type %s", caseT, subject)
			}
		}
		c.pushScope(symbols.ScopeBlock)
		c.checkBodyStatements(cs.Statements)
		c.popScope()
	}
	c.ctx.PopLoop()
}

func (c *checker) checkReturn(s *ast.Return) {
	frame, ok := c.ctx.CurrentFunc()
	if !ok {
		// A return outside any function is a parser-level concern in most
		// grammars; defensively type the expression and move on.
		if s.Value != nil {
			c.checkExpr(s.Value)
		}
		return
	}
	if s.Value == nil {
		if !frame.ExpectedReturn.Equal(types.TVoid) {
			c.bag.Add(diagnostics.TypeMismatch, s.Tok.Pos, "expected a return value of type %s", frame.ExpectedReturn)
		}
		return
	}
	valT := c.checkExpr(s.Value)
	if valT == nil {
		return
	}
	if !types.Assignable(valT, frame.ExpectedReturn, c.scope) {
		c.bag.Add(diagnostics.TypeMismatch, s.Tok.Pos, "cannot return %s where %s is expected", valT, frame.ExpectedReturn)
	}
}

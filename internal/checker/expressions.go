package checker

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/diagnostics"
	"github.com/dsolis/compiscript/internal/symbols"
	"github.com/dsolis/compiscript/internal/types"
)

// checkExpr types an expression per spec.md §4.3's "Expression typing
// rules" and records the result in c.typeOf. On a type error a diagnostic is
// recorded and a best-effort type (often nil) is returned so that callers
// can keep walking without cascading nil-panics; most callers guard with a
// nil check before using the result further.
func (c *checker) checkExpr(e ast.Expression) types.Type {
	switch n := e.(type) {
	case *ast.Literal:
		return c.setType(n, literalType(n))
	case *ast.Identifier:
		return c.setType(n, c.checkIdentifier(n))
	case *ast.This:
		return c.setType(n, c.checkThis(n))
	case *ast.Unary:
		return c.setType(n, c.checkUnary(n))
	case *ast.Binary:
		return c.setType(n, c.checkBinary(n))
	case *ast.Ternary:
		return c.setType(n, c.checkTernary(n))
	case *ast.Index:
		return c.setType(n, c.checkIndex(n))
	case *ast.Member:
		return c.setType(n, c.checkMember(n))
	case *ast.Call:
		return c.setType(n, c.checkCall(n))
	case *ast.New:
		return c.setType(n, c.checkNew(n))
	case *ast.ArrayLit:
		return c.setType(n, c.checkArrayLit(n))
	case *ast.Assign:
		return c.setType(n, c.checkAssign(n))
	default:
		return nil
	}
}

func literalType(n *ast.Literal) types.Type {
	switch n.Kind {
	case ast.IntLit:
		return types.TInt
	case ast.FloatLit:
		return types.TFloat
	case ast.StringLit:
		return types.TString
	case ast.BoolLit:
		return types.TBool
	default:
		return types.TNull
	}
}

func (c *checker) checkIdentifier(n *ast.Identifier) types.Type {
	sym, ok := c.scope.Lookup(n.Name)
	if !ok {
		c.bag.Add(diagnostics.UnknownSymbol, n.Tok.Pos, "undeclared identifier %q", n.Name)
		return nil
	}
	if sym.Kind == symbols.KindFunction {
		return sym.FunctionSig()
	}
	return sym.Type
}

func (c *checker) checkThis(n *ast.This) types.Type {
	className, ok := c.ctx.CurrentClass()
	if !ok {
		c.bag.Add(diagnostics.InvalidLValue, n.Tok.Pos, "'this' is only legal inside a method")
		return nil
	}
	cls, _ := c.scope.ClassByName(className)
	return cls
}

func (c *checker) checkUnary(n *ast.Unary) types.Type {
	operand := c.checkExpr(n.Operand)
	if operand == nil {
		return nil
	}
	switch n.Op {
	case ast.OpNeg:
		if !types.Numeric(operand) {
			c.bag.Add(diagnostics.NotNumeric, n.Tok.Pos, "unary '-' requires a numeric operand, got %s", operand)
			return nil
		}
		return operand
	case ast.OpNot:
		if !operand.Equal(types.TBool) {
			c.bag.Add(diagnostics.NotBoolean, n.Tok.Pos, "unary '!' requires a boolean operand, got %s", operand)
			return nil
		}
		return types.TBool
	}
	return nil
}

func (c *checker) checkBinary(n *ast.Binary) types.Type {
	left := c.checkExpr(n.Left)
	right := c.checkExpr(n.Right)
	if left == nil || right == nil {
		return nil
	}
	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		allowString := n.Op == ast.OpAdd
		result, err := types.PromoteBinary(left, right, allowString)
		if err != nil {
			c.bag.Add(diagnostics.NotNumeric, n.Tok.Pos, "operator %q requires numeric operands, got %s and %s", n.Op, left, right)
			return nil
		}
		return result
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		result, err := types.UnifyRelational(left, right)
		if err != nil {
			c.bag.Add(diagnostics.NotComparable, n.Tok.Pos, "operator %q requires comparable operands, got %s and %s", n.Op, left, right)
			return nil
		}
		return result
	case ast.OpEq, ast.OpNe:
		return c.checkEquality(n, left, right)
	case ast.OpAnd, ast.OpOr:
		if !left.Equal(types.TBool) || !right.Equal(types.TBool) {
			c.bag.Add(diagnostics.NotBoolean, n.Tok.Pos, "operator %q requires boolean operands, got %s and %s", n.Op, left, right)
			return nil
		}
		return types.TBool
	}
	return nil
}

func (c *checker) checkEquality(n *ast.Binary, left, right types.Type) types.Type {
	if left.Equal(right) {
		return types.TBool
	}
	if left.Equal(types.TNull) && isReferenceType(right) {
		return types.TBool
	}
	if right.Equal(types.TNull) && isReferenceType(left) {
		return types.TBool
	}
	if types.Numeric(left) && types.Numeric(right) {
		return types.TBool
	}
	c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "cannot compare %s and %s for equality", left, right)
	return nil
}

func isReferenceType(t types.Type) bool {
	switch t.(type) {
	case types.Array, types.Class:
		return true
	default:
		return false
	}
}

func (c *checker) checkTernary(n *ast.Ternary) types.Type {
	cond := c.checkExpr(n.Cond)
	thenT := c.checkExpr(n.Then)
	elseT := c.checkExpr(n.Else)
	if cond != nil && !cond.Equal(types.TBool) {
		c.bag.Add(diagnostics.NotBoolean, n.Tok.Pos, "ternary condition must be boolean, got %s", cond)
	}
	if thenT == nil || elseT == nil {
		return nil
	}
	result, err := types.Join(thenT, elseT, c.scope)
	if err != nil {
		c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "ternary branches have incompatible types %s and %s", thenT, elseT)
		return nil
	}
	return result
}

func (c *checker) checkIndex(n *ast.Index) types.Type {
	arr := c.checkExpr(n.Array)
	idx := c.checkExpr(n.Idx)
	if arr == nil {
		return nil
	}
	arrT, ok := arr.(types.Array)
	if !ok {
		c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "cannot index non-array type %s", arr)
		return nil
	}
	if idx != nil && !idx.Equal(types.TInt) {
		c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "array index must be an integer, got %s", idx)
	}
	return arrT.Elem
}

func (c *checker) checkMember(n *ast.Member) types.Type {
	obj := c.checkExpr(n.Object)
	if obj == nil {
		return nil
	}
	classT, ok := obj.(types.Class)
	if !ok {
		c.bag.Add(diagnostics.UnknownMember, n.Tok.Pos, "cannot access member %q on non-class type %s", n.Field, obj)
		return nil
	}
	t, ok := types.MemberLookup(classT, n.Field, c.scope)
	if !ok {
		c.bag.Add(diagnostics.UnknownMember, n.Tok.Pos, "class %s has no member %q", classT, n.Field)
		return nil
	}
	return t
}

func (c *checker) checkCall(n *ast.Call) types.Type {
	var sig types.FunctionSig
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		if callee.Name == PrintName {
			return c.checkPrintCall(n)
		}
		sym, ok := c.scope.Lookup(callee.Name)
		if !ok {
			c.bag.Add(diagnostics.UnknownSymbol, n.Tok.Pos, "call to undeclared function %q", callee.Name)
			c.checkArgs(n.Args, nil)
			return nil
		}
		c.setType(callee, sym.Type)
		if sym.Kind != symbols.KindFunction {
			c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "%q is not callable", callee.Name)
			c.checkArgs(n.Args, nil)
			return nil
		}
		sig = sym.FunctionSig()
	case *ast.Member:
		obj := c.checkExpr(callee.Object)
		if obj == nil {
			c.checkArgs(n.Args, nil)
			return nil
		}
		classT, ok := obj.(types.Class)
		if !ok {
			c.bag.Add(diagnostics.UnknownMember, n.Tok.Pos, "cannot call method %q on non-class type %s", callee.Field, obj)
			c.checkArgs(n.Args, nil)
			return nil
		}
		m, ok := types.MemberLookup(classT, callee.Field, c.scope)
		if !ok {
			c.bag.Add(diagnostics.UnknownMember, n.Tok.Pos, "class %s has no method %q", classT, callee.Field)
			c.checkArgs(n.Args, nil)
			return nil
		}
		msig, ok := m.(types.FunctionSig)
		if !ok {
			c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "%q is not a method", callee.Field)
			c.checkArgs(n.Args, nil)
			return nil
		}
		c.setType(callee, msig)
		sig = msig
	default:
		t := c.checkExpr(n.Callee)
		fsig, ok := t.(types.FunctionSig)
		if !ok {
			c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "callee is not a function")
			c.checkArgs(n.Args, nil)
			return nil
		}
		sig = fsig
	}
	c.checkArgs(n.Args, sig.Params)
	return sig.Return
}

func (c *checker) checkPrintCall(n *ast.Call) types.Type {
	if len(n.Args) != 1 {
		c.bag.Add(diagnostics.ArityMismatch, n.Tok.Pos, "print expects 1 argument, got %d", len(n.Args))
	}
	for _, a := range n.Args {
		c.checkExpr(a)
	}
	return types.TVoid
}

// checkArgs validates call arguments against params (nil params means the
// callee failed to resolve; arguments are still typed for downstream use but
// not matched).
func (c *checker) checkArgs(args []ast.Expression, params []types.Type) {
	if params == nil {
		for _, a := range args {
			c.checkExpr(a)
		}
		return
	}
	if len(args) != len(params) {
		if len(args) > 0 {
			c.bag.Add(diagnostics.ArityMismatch, args[0].GetToken().Pos, "expected %d argument(s), got %d", len(params), len(args))
		}
	}
	for i, a := range args {
		at := c.checkExpr(a)
		if at == nil || i >= len(params) {
			continue
		}
		if !types.Assignable(at, params[i], c.scope) {
			c.bag.Add(diagnostics.TypeMismatch, a.GetToken().Pos, "argument %d: cannot assign %s to %s", i+1, at, params[i])
		}
	}
}

func (c *checker) checkNew(n *ast.New) types.Type {
	classT, ok := c.scope.ClassByName(n.ClassName)
	if !ok {
		c.bag.Add(diagnostics.UnknownSymbol, n.Tok.Pos, "unknown class %q", n.ClassName)
		c.checkArgs(n.Args, nil)
		return nil
	}
	ctor, hasCtor := types.MemberLookup(classT, "constructor", c.scope)
	if !hasCtor {
		if len(n.Args) != 0 {
			c.bag.Add(diagnostics.BadConstructor, n.Tok.Pos, "class %q has no constructor; expected 0 arguments, got %d", n.ClassName, len(n.Args))
		}
		for _, a := range n.Args {
			c.checkExpr(a)
		}
		return classT
	}
	sig := ctor.(types.FunctionSig)
	if len(n.Args) != len(sig.Params) {
		c.bag.Add(diagnostics.BadConstructor, n.Tok.Pos, "constructor of %q expects %d argument(s), got %d", n.ClassName, len(sig.Params), len(n.Args))
	}
	for i, a := range n.Args {
		at := c.checkExpr(a)
		if at == nil || i >= len(sig.Params) {
			continue
		}
		if !types.Assignable(at, sig.Params[i], c.scope) {
			c.bag.Add(diagnostics.BadConstructor, a.GetToken().Pos, "constructor argument %d: cannot assign %s to %s", i+1, at, sig.Params[i])
		}
	}
	return classT
}

func (c *checker) checkArrayLit(n *ast.ArrayLit) types.Type {
	if len(n.Elements) == 0 {
		// An empty literal has no inferrable element type on its own; a
		// VarDecl with a declared array type supplies the real element type
		// via its own type annotation instead of this inferred one.
		return types.Array{Elem: types.TNull}
	}
	first := c.checkExpr(n.Elements[0])
	for _, el := range n.Elements[1:] {
		t := c.checkExpr(el)
		if first != nil && t != nil && !t.Equal(first) && !types.Assignable(t, first, c.scope) {
			c.bag.Add(diagnostics.TypeMismatch, el.GetToken().Pos, "array element type %s does not match %s", t, first)
		}
	}
	if first == nil {
		first = types.TNull
	}
	return types.Array{Elem: first}
}

func (c *checker) checkAssign(n *ast.Assign) types.Type {
	targetType := c.checkLValue(n.Target)
	valType := c.checkExpr(n.Value)
	if targetType == nil || valType == nil {
		return targetType
	}
	if !types.Assignable(valType, targetType, c.scope) {
		c.bag.Add(diagnostics.TypeMismatch, n.Tok.Pos, "cannot assign %s to %s", valType, targetType)
	}
	return targetType
}

// checkLValue validates spec.md §4.3's Assignment rule: the lvalue must be a
// non-const identifier, a field access, or an array index.
func (c *checker) checkLValue(e ast.Expression) types.Type {
	switch lv := e.(type) {
	case *ast.Identifier:
		sym, ok := c.scope.Lookup(lv.Name)
		if !ok {
			c.bag.Add(diagnostics.UnknownSymbol, lv.Tok.Pos, "undeclared identifier %q", lv.Name)
			return nil
		}
		if sym.Kind != symbols.KindVariable && sym.Kind != symbols.KindParameter {
			c.bag.Add(diagnostics.InvalidLValue, lv.Tok.Pos, "%q is not assignable", lv.Name)
			return nil
		}
		if sym.IsConst {
			c.bag.Add(diagnostics.AssignToConst, lv.Tok.Pos, "cannot assign to const %q", lv.Name)
		}
		sym.Initialized = true
		c.scope.Update(sym)
		return sym.Type
	case *ast.Member:
		return c.checkMember(lv)
	case *ast.Index:
		return c.checkIndex(lv)
	default:
		c.bag.Add(diagnostics.InvalidLValue, e.GetToken().Pos, "expression is not assignable")
		return nil
	}
}

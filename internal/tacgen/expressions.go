package tacgen

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/tac"
	"github.com/dsolis/compiscript/internal/types"
)

// lowerExpr lowers an expression and returns the operand holding its value
// (spec.md §4.4). Every case corresponds to one of the "Lowering rules".
func (g *generator) lowerExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Literal:
		return g.lowerLiteral(n)
	case *ast.Identifier:
		return g.resolveVar(n.Name)
	case *ast.This:
		return tac.Local("this")
	case *ast.Unary:
		return g.lowerUnary(n)
	case *ast.Binary:
		return g.lowerBinary(n)
	case *ast.Ternary:
		return g.lowerTernary(n)
	case *ast.Index:
		return g.lowerIndex(n)
	case *ast.Member:
		return g.lowerMember(n)
	case *ast.Call:
		return g.lowerCall(n)
	case *ast.New:
		return g.lowerNew(n)
	case *ast.ArrayLit:
		return g.lowerArrayLit(n)
	case *ast.Assign:
		return g.lowerAssign(n)
	default:
		return tac.NullLit
	}
}

func (g *generator) lowerLiteral(n *ast.Literal) string {
	switch n.Kind {
	case ast.IntLit:
		return tac.IntLit(n.Value.(int64))
	case ast.FloatLit:
		return tac.FloatLit(n.Value.(float64))
	case ast.StringLit:
		return tac.StringLit(n.Value.(string))
	case ast.BoolLit:
		return tac.BoolLit(n.Value.(bool))
	default:
		return tac.NullLit
	}
}

func (g *generator) lowerUnary(n *ast.Unary) string {
	a := g.lowerExpr(n.Operand)
	dst := g.newTemp()
	op := "neg"
	if n.Op == ast.OpNot {
		op = "not"
	}
	g.emit(tac.Unary{Op: op, A: a, Dst: dst})
	return dst
}

func (g *generator) lowerBinary(n *ast.Binary) string {
	switch n.Op {
	case ast.OpAnd:
		return g.lowerAnd(n)
	case ast.OpOr:
		return g.lowerOr(n)
	default:
		a := g.lowerExpr(n.Left)
		b := g.lowerExpr(n.Right)
		dst := g.newTemp()
		g.emit(tac.Binary{Op: string(n.Op), A: a, B: b, Dst: dst})
		return dst
	}
}

// lowerAnd follows spec.md §4.4's short-circuit shape for `&&`.
func (g *generator) lowerAnd(n *ast.Binary) string {
	tR := g.newTemp()
	lFalse := g.newLabel()
	lEnd := g.newLabel()

	a := g.lowerExpr(n.Left)
	g.emit(tac.IfFalse{Cond: a, Target: lFalse})
	b := g.lowerExpr(n.Right)
	g.emit(tac.Move{Src: b, Dst: tR})
	g.emit(tac.Goto{Target: lEnd})
	g.emit(tac.Label{Name: lFalse})
	g.emit(tac.Move{Src: tac.BoolLit(false), Dst: tR})
	g.emit(tac.Label{Name: lEnd})
	return tR
}

// lowerOr is the `||` mirror of lowerAnd (spec.md §4.4: "symmetric with ifGoto").
func (g *generator) lowerOr(n *ast.Binary) string {
	tR := g.newTemp()
	lTrue := g.newLabel()
	lEnd := g.newLabel()

	a := g.lowerExpr(n.Left)
	g.emit(tac.IfGoto{Cond: a, Target: lTrue})
	b := g.lowerExpr(n.Right)
	g.emit(tac.Move{Src: b, Dst: tR})
	g.emit(tac.Goto{Target: lEnd})
	g.emit(tac.Label{Name: lTrue})
	g.emit(tac.Move{Src: tac.BoolLit(true), Dst: tR})
	g.emit(tac.Label{Name: lEnd})
	return tR
}

// lowerTernary mirrors lowerIf's shape, writing into a single result temp
// (spec.md §4.4: "identical shape to if/else ... to reuse the same register
// convention").
func (g *generator) lowerTernary(n *ast.Ternary) string {
	tR := g.newTemp()
	cond := g.lowerExpr(n.Cond)
	lElse := g.newLabel()
	lEnd := g.newLabel()

	g.emit(tac.IfFalse{Cond: cond, Target: lElse})
	thenV := g.lowerExpr(n.Then)
	g.emit(tac.Move{Src: thenV, Dst: tR})
	g.emit(tac.Goto{Target: lEnd})
	g.emit(tac.Label{Name: lElse})
	elseV := g.lowerExpr(n.Else)
	g.emit(tac.Move{Src: elseV, Dst: tR})
	g.emit(tac.Label{Name: lEnd})
	return tR
}

func (g *generator) lowerIndex(n *ast.Index) string {
	arr := g.lowerExpr(n.Array)
	idx := g.lowerExpr(n.Idx)
	dst := g.newTemp()
	g.emit(tac.ALoad{Arr: arr, Idx: idx, Dst: dst})
	return dst
}

func (g *generator) lowerMember(n *ast.Member) string {
	obj := g.lowerExpr(n.Object)
	dst := g.newTemp()
	g.emit(tac.GetF{Obj: obj, Field: n.Field, Dst: dst})
	return dst
}

func (g *generator) lowerCall(n *ast.Call) string {
	resultType := g.result.Types[n]
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		if callee.Name == "print" {
			op := g.lowerExpr(n.Args[0])
			g.emit(tac.Print{Operand: op})
			return tac.VoidLit
		}
		return g.lowerFreeCall(callee.Name, n.Args, resultType)
	case *ast.Member:
		return g.lowerMethodCall(callee, n.Args, resultType)
	default:
		// A call through a first-class function value has no symbolic
		// callee name to emit; not exercised by any Compiscript program in
		// practice (every call site names a function or a method).
		return tac.NullLit
	}
}

func (g *generator) lowerFreeCall(name string, args []ast.Expression, resultType types.Type) string {
	nargs := 0
	for _, a := range args {
		op := g.lowerExpr(a)
		g.emit(tac.Param{Operand: op})
		nargs++
	}
	dst := ""
	if !voidType(resultType) {
		dst = g.newTemp()
	}
	g.emit(tac.Call{FuncName: name, NArgs: nargs, Dst: dst})
	return dst
}

// lowerMethodCall follows spec.md §4.4: evaluate the receiver first, `param`
// it, then each argument left-to-right with a `param` right after each.
func (g *generator) lowerMethodCall(callee *ast.Member, args []ast.Expression, resultType types.Type) string {
	objT, _ := g.result.Types[callee.Object].(types.Class)
	thisOp := g.lowerExpr(callee.Object)
	g.emit(tac.Param{Operand: thisOp})

	nargs := 1
	for _, a := range args {
		op := g.lowerExpr(a)
		g.emit(tac.Param{Operand: op})
		nargs++
	}
	dst := ""
	if !voidType(resultType) {
		dst = g.newTemp()
	}
	g.emit(tac.Call{FuncName: objT.Name + "." + callee.Field, NArgs: nargs, Dst: dst})
	return dst
}

// lowerNew follows spec.md §4.4: `dst = new C`, then — only if C declares or
// inherits a constructor — `param dst` followed by each argument's `param`,
// then `call C.constructor, N+1`.
func (g *generator) lowerNew(n *ast.New) string {
	dst := g.newTemp()
	g.emit(tac.New{ClassName: n.ClassName, Dst: dst})

	classT, ok := g.result.Global.ClassByName(n.ClassName)
	if !ok {
		return dst
	}
	if _, hasCtor := types.MemberLookup(classT, "constructor", g.result.Global); hasCtor {
		g.emit(tac.Param{Operand: dst})
		nargs := 1
		for _, a := range n.Args {
			op := g.lowerExpr(a)
			g.emit(tac.Param{Operand: op})
			nargs++
		}
		g.emit(tac.Call{FuncName: n.ClassName + ".constructor", NArgs: nargs})
	}
	return dst
}

// lowerArrayLit follows spec.md §4.4's "Array literal" lowering, recording
// the literal's known length in the arr_len side map for compile-time
// foreach folding, and also stamping the length into the array's own
// reserved length slot (index -1, written via the existing AStore/ALoad
// instructions) so any consumer that only sees the array value at runtime —
// most importantly a function parameter, which carries no compile-time
// arr_len entry — can still recover its length (see lowerForeach).
func (g *generator) lowerArrayLit(n *ast.ArrayLit) string {
	arrT, _ := g.result.Types[n].(types.Array)
	elemTypeName := "null"
	if arrT.Elem != nil {
		elemTypeName = arrT.Elem.String()
	}

	dst := g.newTemp()
	lengthOperand := tac.IntLit(int64(len(n.Elements)))
	g.emit(tac.NewArr{ElemType: elemTypeName, Size: lengthOperand, Dst: dst})
	g.emit(tac.AStore{Arr: dst, Idx: arrLenSlot, Val: lengthOperand})
	for i, el := range n.Elements {
		v := g.lowerExpr(el)
		g.emit(tac.AStore{Arr: dst, Idx: tac.IntLit(int64(i)), Val: v})
	}
	g.fn.arrLen[dst] = lengthOperand
	return dst
}

func (g *generator) lowerAssign(n *ast.Assign) string {
	switch target := n.Target.(type) {
	case *ast.Identifier:
		val := g.lowerExpr(n.Value)
		dst := g.resolveVar(target.Name)
		g.emit(tac.Move{Src: val, Dst: dst})
		if length, ok := g.fn.arrLen[val]; ok {
			g.fn.arrLen[dst] = length
		}
		return dst
	case *ast.Member:
		obj := g.lowerExpr(target.Object)
		val := g.lowerExpr(n.Value)
		g.emit(tac.SetF{Obj: obj, Field: target.Field, Val: val})
		return val
	case *ast.Index:
		arr := g.lowerExpr(target.Array)
		idx := g.lowerExpr(target.Idx)
		val := g.lowerExpr(n.Value)
		g.emit(tac.AStore{Arr: arr, Idx: idx, Val: val})
		return val
	default:
		return g.lowerExpr(n.Value)
	}
}

package tacgen

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/tac"
)

func (g *generator) lowerStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		g.lowerStmt(stmt)
	}
}

func (g *generator) lowerStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.lowerVarDecl(s.Name, s.Init)
	case *ast.ConstDecl:
		g.lowerVarDecl(s.Name, s.Init)
	case *ast.Block:
		g.pushScope()
		g.lowerStatements(s.Statements)
		g.popScope()
	case *ast.If:
		g.lowerIf(s)
	case *ast.While:
		g.lowerWhile(s)
	case *ast.DoWhile:
		g.lowerDoWhile(s)
	case *ast.For:
		g.lowerFor(s)
	case *ast.Foreach:
		g.lowerForeach(s)
	case *ast.Switch:
		g.lowerSwitch(s)
	case *ast.Break:
		g.emit(tac.Goto{Target: g.currentBreakLabel()})
	case *ast.Continue:
		g.emit(tac.Goto{Target: g.currentContinueLabel()})
	case *ast.Return:
		g.lowerReturn(s)
	case *ast.ExprStmt:
		g.lowerExpr(s.Expr)
	case *ast.Print:
		op := g.lowerExpr(s.Value)
		g.emit(tac.Print{Operand: op})
	}
}

func (g *generator) lowerVarDecl(name string, init ast.Expression) {
	dst := g.declareLocal(name)
	if init == nil {
		return
	}
	val := g.lowerExpr(init)
	g.emit(tac.Move{Src: val, Dst: dst})
	if length, ok := g.fn.arrLen[val]; ok {
		g.fn.arrLen[dst] = length
	}
}

func (g *generator) lowerReturn(s *ast.Return) {
	if s.Value == nil {
		g.emit(tac.Ret{})
		return
	}
	op := g.lowerExpr(s.Value)
	g.emit(tac.Ret{Operand: op})
}

// lowerIf follows spec.md §4.4's `if (C) S1 else S2` shape, eliding the
// trailing unconditional goto when a branch already ends terminally.
func (g *generator) lowerIf(s *ast.If) {
	cond := g.lowerExpr(s.Cond)
	lElse := g.newLabel()
	g.emit(tac.IfFalse{Cond: cond, Target: lElse})
	g.lowerStmt(s.Then)

	if s.Else == nil {
		g.emit(tac.Label{Name: lElse})
		return
	}

	lEnd := g.newLabel()
	if len(g.fn.tf.Instrs) == 0 || !tac.IsTerminal(g.fn.tf.Instrs[len(g.fn.tf.Instrs)-1]) {
		g.emit(tac.Goto{Target: lEnd})
	}
	g.emit(tac.Label{Name: lElse})
	g.lowerStmt(s.Else)
	g.emit(tac.Label{Name: lEnd})
}

// lowerWhile follows spec.md §4.4's `while (C) S` shape.
func (g *generator) lowerWhile(s *ast.While) {
	lTest := g.newLabel()
	lEnd := g.newLabel()
	g.emit(tac.Label{Name: lTest})
	cond := g.lowerExpr(s.Cond)
	g.emit(tac.IfFalse{Cond: cond, Target: lEnd})

	g.fn.loops = append(g.fn.loops, loopFrame{continueLabel: lTest, breakLabel: lEnd})
	g.pushScope()
	g.lowerStatements(s.Body.Statements)
	g.popScope()
	g.fn.loops = g.fn.loops[:len(g.fn.loops)-1]

	g.emit(tac.Goto{Target: lTest})
	g.emit(tac.Label{Name: lEnd})
}

// lowerDoWhile follows spec.md §4.4's "body first, then condition with
// ifGoto tC, Ltop" shape.
func (g *generator) lowerDoWhile(s *ast.DoWhile) {
	lTop := g.newLabel()
	lCont := g.newLabel()
	lEnd := g.newLabel()
	g.emit(tac.Label{Name: lTop})

	g.fn.loops = append(g.fn.loops, loopFrame{continueLabel: lCont, breakLabel: lEnd})
	g.pushScope()
	g.lowerStatements(s.Body.Statements)
	g.popScope()
	g.fn.loops = g.fn.loops[:len(g.fn.loops)-1]

	g.emit(tac.Label{Name: lCont})
	cond := g.lowerExpr(s.Cond)
	g.emit(tac.IfGoto{Cond: cond, Target: lTop})
	g.emit(tac.Label{Name: lEnd})
}

// lowerFor follows spec.md §4.4's `for (init; cond; step) S` shape; the
// init/cond/step/body share one genScope so a loop-local init variable
// doesn't leak.
func (g *generator) lowerFor(s *ast.For) {
	g.pushScope()
	if s.Init != nil {
		g.lowerStmt(s.Init)
	}
	lTop := g.newLabel()
	lCont := g.newLabel()
	lEnd := g.newLabel()
	g.emit(tac.Label{Name: lTop})
	if s.Cond != nil {
		cond := g.lowerExpr(s.Cond)
		g.emit(tac.IfFalse{Cond: cond, Target: lEnd})
	}

	g.fn.loops = append(g.fn.loops, loopFrame{continueLabel: lCont, breakLabel: lEnd})
	g.lowerStatements(s.Body.Statements)
	g.fn.loops = g.fn.loops[:len(g.fn.loops)-1]

	g.emit(tac.Label{Name: lCont})
	if s.Step != nil {
		g.lowerExpr(s.Step)
	}
	g.emit(tac.Goto{Target: lTop})
	g.emit(tac.Label{Name: lEnd})
	g.popScope()
}

// arrLenSlot is the reserved index every array's length is stamped at by
// lowerArrayLit (its only construction site), read back here with the same
// ALoad instruction ordinary element access uses — a runtime-queryable
// length rather than one that exists only in the compile-time arr_len side
// map, which a value flowing in as a function parameter never populates.
var arrLenSlot = tac.IntLit(-1)

// lowerForeach desugars `foreach (x in a) S` to an integer-indexed for loop
// over the array's length (spec.md §4.4, §9 "Iterator semantics"). When a's
// length is known at compile time (the arr_len side map, populated by
// lowerArrayLit — spec.md §4.4 "Array literal": "tracks known constant
// lengths in a side map ... for potential bounds folding"), that literal
// bound is used directly; otherwise (e.g. a's value arrived as a function
// parameter) the bound is loaded at runtime from the array's reserved
// length slot, never silently assumed to be zero.
func (g *generator) lowerForeach(s *ast.Foreach) {
	arr := g.lowerExpr(s.Iterable)
	lengthOperand, ok := g.fn.arrLen[arr]
	if !ok {
		lengthTemp := g.newTemp()
		g.emit(tac.ALoad{Arr: arr, Idx: arrLenSlot, Dst: lengthTemp})
		lengthOperand = lengthTemp
	}

	g.pushScope()
	idxOp := g.declareLocal("$idx")
	g.emit(tac.Move{Src: tac.IntLit(0), Dst: idxOp})

	lTop := g.newLabel()
	lCont := g.newLabel()
	lEnd := g.newLabel()
	g.emit(tac.Label{Name: lTop})
	condT := g.newTemp()
	g.emit(tac.Binary{Op: "<", A: idxOp, B: lengthOperand, Dst: condT})
	g.emit(tac.IfFalse{Cond: condT, Target: lEnd})

	elemOp := g.declareLocal(s.VarName)
	g.emit(tac.ALoad{Arr: arr, Idx: idxOp, Dst: elemOp})

	g.fn.loops = append(g.fn.loops, loopFrame{continueLabel: lCont, breakLabel: lEnd})
	g.lowerStatements(s.Body.Statements)
	g.fn.loops = g.fn.loops[:len(g.fn.loops)-1]

	g.emit(tac.Label{Name: lCont})
	stepT := g.newTemp()
	g.emit(tac.Binary{Op: "+", A: idxOp, B: tac.IntLit(1), Dst: stepT})
	g.emit(tac.Move{Src: stepT, Dst: idxOp})
	g.emit(tac.Goto{Target: lTop})
	g.emit(tac.Label{Name: lEnd})
	g.popScope()
}

// lowerSwitch follows spec.md §4.4: evaluate the subject once, compare
// against each case with `==`, jump to the first match; fall-through is
// disallowed (SPEC_FULL.md §5 supplement 2) so every case ends in an
// implicit goto to the switch end unless it already terminates. Only a
// break label is pushed onto the loop stack — continue passes through to
// whatever real loop encloses the switch.
func (g *generator) lowerSwitch(s *ast.Switch) {
	subject := g.lowerExpr(s.Value)
	lEnd := g.newLabel()

	caseLabels := make([]string, len(s.Cases))
	var defaultLabel string
	for i, cs := range s.Cases {
		caseLabels[i] = g.newLabel()
		if cs.IsDefault {
			defaultLabel = caseLabels[i]
		}
	}

	for i, cs := range s.Cases {
		if cs.IsDefault {
			continue
		}
		val := g.lowerExpr(cs.Value)
		eq := g.newTemp()
		g.emit(tac.Binary{Op: "==", A: subject, B: val, Dst: eq})
		g.emit(tac.IfGoto{Cond: eq, Target: caseLabels[i]})
	}
	if defaultLabel != "" {
		g.emit(tac.Goto{Target: defaultLabel})
	} else {
		g.emit(tac.Goto{Target: lEnd})
	}

	g.fn.loops = append(g.fn.loops, loopFrame{breakLabel: lEnd, isSwitch: true})
	for i, cs := range s.Cases {
		g.emit(tac.Label{Name: caseLabels[i]})
		g.pushScope()
		g.lowerStatements(cs.Statements)
		g.popScope()
		if len(g.fn.tf.Instrs) == 0 || !tac.IsTerminal(g.fn.tf.Instrs[len(g.fn.tf.Instrs)-1]) {
			g.emit(tac.Goto{Target: lEnd})
		}
	}
	g.fn.loops = g.fn.loops[:len(g.fn.loops)-1]

	g.emit(tac.Label{Name: lEnd})
}

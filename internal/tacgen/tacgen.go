// Package tacgen lowers a checked Compiscript parse tree to the TAC IR
// (spec.md §4.4): short-circuit boolean evaluation, loop/switch control
// flow via labels, method dispatch, array lowering, and a peephole pass.
//
// Grounded on funvibe/funxy's internal/vm compiler*.go family: a
// generator struct carrying a monotonic temp/label counter and a
// loopStack of break/continue targets (compiler_loops.go), with lowering
// split one file per AST shape the way compiler_expressions.go and
// compiler_statements.go are split in the teacher. TAC is textual and
// label-addressed rather than bytecode with patched jump offsets, so
// there is no emitJump/patchJump pair here — labels are emitted once,
// in order, and never rewritten.
package tacgen

import (
	"fmt"

	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/checker"
	"github.com/dsolis/compiscript/internal/tac"
	"github.com/dsolis/compiscript/internal/types"
)

// Generate lowers program to a TacProgram. Callers must first run
// checker.Check and confirm result.Diagnostics has no error-severity entry
// (spec.md §4.5) — Generate assumes a well-formed, fully-typed tree and does
// not re-validate it.
func Generate(program *ast.Program, result *checker.Result) *tac.TacProgram {
	g := &generator{result: result, prog: &tac.TacProgram{}}

	var topLevel []ast.Statement
	for _, stmt := range program.Statements {
		switch d := stmt.(type) {
		case *ast.FuncDecl:
			sym, _ := result.Global.LookupLocal(d.Name)
			g.lowerFunction(d.Name, "", paramNames(d.Params), sym.ReturnType, d.Body)
		case *ast.ClassDecl:
			g.lowerClass(d)
		default:
			topLevel = append(topLevel, stmt)
		}
	}
	if len(topLevel) > 0 {
		g.lowerFunction("main", "", nil, types.TVoid, &ast.Block{Statements: topLevel})
	}
	return g.prog
}

func paramNames(params []*ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func (g *generator) lowerClass(d *ast.ClassDecl) {
	classT, ok := g.result.Global.ClassByName(d.Name)
	if !ok {
		return
	}
	for _, m := range d.Methods {
		sig := classT.Methods[m.Name]
		g.lowerFunction(d.Name+"."+m.Name, d.Name, paramNames(m.Params), sig.Return, m.Body)
	}
}

// generator carries the whole-program state: the checked Result it reads
// types from, and the TacProgram being assembled. Per-function state lives
// in funcGen, swapped in and out of g.fn around each lowerFunction call —
// spec.md §9 requires "Temp/label counters live in the generator instance,
// not globally," which a nested per-function struct gives for free.
type generator struct {
	result *checker.Result
	prog   *tac.TacProgram
	fn     *funcGen
}

type loopFrame struct {
	continueLabel string
	breakLabel    string
	isSwitch      bool
}

// genScope is a lightweight name->operand binding stack mirroring the
// checker's block structure, kept separate from symbols.Scope because the
// generator only needs operand spelling, not types (already resolved into
// result.Types) or duplicate-name diagnostics (already enforced by the
// checker). It exists to disambiguate a shadowing inner declaration from an
// outer one of the same source name, since both would otherwise collide on
// the same "%name" operand.
type genScope struct {
	vars  map[string]string
	outer *genScope
}

func (s *genScope) resolve(name string) (string, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if op, ok := cur.vars[name]; ok {
			return op, true
		}
	}
	return "", false
}

type funcGen struct {
	tf      *tac.TacFunction
	tempN   int
	labelN  int
	shadowN int
	loops   []loopFrame
	scope   *genScope

	// arrLen maps an array-valued operand to the literal length operand it
	// was last given by an array-literal initialization (spec.md §4.4
	// "Array literal" — "tracks known constant lengths in a side map ...
	// for potential bounds folding"), consulted by foreach lowering.
	arrLen map[string]string
}

func (g *generator) emit(instr tac.Instruction) {
	g.fn.tf.Emit(instr)
}

func (g *generator) newTemp() string {
	n := g.fn.tempN
	g.fn.tempN++
	return tac.Temp(n)
}

func (g *generator) newLabel() string {
	n := g.fn.labelN
	g.fn.labelN++
	return fmt.Sprintf("L%d", n)
}

func (g *generator) pushScope() {
	g.fn.scope = &genScope{vars: make(map[string]string), outer: g.fn.scope}
}

func (g *generator) popScope() {
	g.fn.scope = g.fn.scope.outer
}

// declareLocal binds name to a fresh "%name" operand in the current scope,
// suffixing it if an enclosing scope already bound the same source name
// (legal shadowing per spec.md §3.3 invariant 2) so the two stay distinct
// operands in the flat, function-wide TAC namespace.
func (g *generator) declareLocal(name string) string {
	op := tac.Local(name)
	if _, shadowed := g.fn.scope.resolve(name); shadowed {
		g.fn.shadowN++
		op = tac.Local(fmt.Sprintf("%s$%d", name, g.fn.shadowN))
	}
	g.fn.scope.vars[name] = op
	g.fn.tf.Locals++
	return op
}

func (g *generator) resolveVar(name string) string {
	if op, ok := g.fn.scope.resolve(name); ok {
		return op
	}
	return tac.Local(name)
}

func (g *generator) currentBreakLabel() string {
	if len(g.fn.loops) == 0 {
		return ""
	}
	return g.fn.loops[len(g.fn.loops)-1].breakLabel
}

func (g *generator) currentContinueLabel() string {
	for i := len(g.fn.loops) - 1; i >= 0; i-- {
		if !g.fn.loops[i].isSwitch {
			return g.fn.loops[i].continueLabel
		}
	}
	return ""
}

func voidType(t types.Type) bool {
	return t == nil || t.Equal(types.TVoid)
}

// lowerFunction lowers one function/method/synthesized-main body in a fresh
// funcGen, runs the peephole pass over the result, and appends it to the
// program.
func (g *generator) lowerFunction(qualifiedName, receiverClass string, paramNames []string, retType types.Type, body *ast.Block) {
	if retType == nil {
		retType = types.TVoid
	}
	tf := &tac.TacFunction{Name: qualifiedName, ReturnType: retType.String()}
	prevFn := g.fn
	g.fn = &funcGen{tf: tf, arrLen: make(map[string]string)}
	g.pushScope()

	if receiverClass != "" {
		tf.Params = append(tf.Params, "this")
		g.declareLocal("this")
	}
	for _, name := range paramNames {
		tf.Params = append(tf.Params, name)
		g.declareLocal(name)
	}

	g.lowerStatements(body.Statements)

	if voidType(retType) && (len(tf.Instrs) == 0 || !tac.IsTerminal(tf.Instrs[len(tf.Instrs)-1])) {
		g.emit(tac.Ret{})
	}

	tf.Instrs = Peephole(tf.Instrs)
	g.popScope()
	g.fn = prevFn
	g.prog.Functions = append(g.prog.Functions, tf)
}

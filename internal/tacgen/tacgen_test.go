package tacgen_test

import (
	"strings"
	"testing"

	"github.com/dsolis/compiscript/internal/astjson"
	"github.com/dsolis/compiscript/internal/checker"
	"github.com/dsolis/compiscript/internal/tac"
	"github.com/dsolis/compiscript/internal/tacgen"
)

// generate decodes jsonSource, checks it, and lowers it to TAC, failing the
// test if checking produced any error-severity diagnostic.
func generate(t *testing.T, jsonSource string) *tac.TacProgram {
	t.Helper()
	program, err := astjson.DecodeProgram([]byte(jsonSource))
	if err != nil {
		t.Fatalf("decoding test fixture: %v", err)
	}
	result := checker.Check(program)
	for _, d := range result.Diagnostics {
		if d.IsError() {
			t.Fatalf("unexpected checker diagnostic: %s: %s", d.Code, d.Message)
		}
	}
	return tacgen.Generate(program, result)
}

// a program whose TAC exercises every control-flow shape the peephole pass
// and the no-ghost-temps/label-uniqueness properties (spec.md §8) need to be
// checked against: a while loop with a break, nested if/else, and a
// short-circuit `||`.
const controlFlowSource = `{
  "kind": "Program",
  "statements": [
    {"kind":"VarDecl","name":"i","type":{"name":"integer"},"init":{"kind":"Literal","literalKind":"int","intValue":0}},
    {"kind":"While","cond":{"kind":"Binary","op":"<","left":{"kind":"Identifier","name":"i"},"right":{"kind":"Literal","literalKind":"int","intValue":10}},
     "body":{"kind":"Block","statements":[
       {"kind":"If","cond":{"kind":"Binary","op":"||",
          "left":{"kind":"Binary","op":"==","left":{"kind":"Identifier","name":"i"},"right":{"kind":"Literal","literalKind":"int","intValue":5}},
          "right":{"kind":"Binary","op":"==","left":{"kind":"Identifier","name":"i"},"right":{"kind":"Literal","literalKind":"int","intValue":7}}},
        "then":{"kind":"Block","statements":[{"kind":"Break"}]},
        "else":{"kind":"Block","statements":[{"kind":"Print","value":{"kind":"Identifier","name":"i"}}]}},
       {"kind":"ExprStmt","expr":{"kind":"Assign","target":{"kind":"Identifier","name":"i"},
         "value":{"kind":"Binary","op":"+","left":{"kind":"Identifier","name":"i"},"right":{"kind":"Literal","literalKind":"int","intValue":1}}}}
     ]}}
  ]
}`

func TestGenerate_PeepholeIsIdempotent(t *testing.T) {
	// spec.md §8: "the peephole pass is idempotent" — running it again over
	// its own output must be a no-op.
	prog := generate(t, controlFlowSource)
	for _, fn := range prog.Functions {
		once := tacgen.Peephole(fn.Instrs)
		twice := tacgen.Peephole(once)
		if len(once) != len(twice) {
			t.Fatalf("%s: peephole not idempotent: %d instrs then %d", fn.Name, len(once), len(twice))
		}
		for i := range once {
			if once[i].String() != twice[i].String() {
				t.Errorf("%s: instr %d changed on second pass: %q -> %q", fn.Name, i, once[i].String(), twice[i].String())
			}
		}
	}
}

func TestGenerate_NoGhostTemps(t *testing.T) {
	// Every temp a function reads must have been defined earlier in the same
	// function (spec.md §8: "no instruction reads a temp that was never
	// assigned").
	prog := generate(t, controlFlowSource)
	for _, fn := range prog.Functions {
		defined := map[string]bool{}
		for _, instr := range fn.Instrs {
			for _, src := range readTemps(instr) {
				if !defined[src] {
					t.Errorf("%s: instr %q reads temp %s before it is defined", fn.Name, instr.String(), src)
				}
			}
			if dst := writtenTemp(instr); dst != "" {
				defined[dst] = true
			}
		}
	}
}

func TestGenerate_LabelsAreUniqueAndResolve(t *testing.T) {
	// Every label a Goto/If(False)/IfGoto targets must be defined exactly
	// once in the same function (spec.md §8 determinism/well-formedness).
	prog := generate(t, controlFlowSource)
	for _, fn := range prog.Functions {
		defCount := map[string]int{}
		var targets []string
		for _, instr := range fn.Instrs {
			switch i := instr.(type) {
			case tac.Label:
				defCount[i.Name]++
			case tac.Goto:
				targets = append(targets, i.Target)
			case tac.IfGoto:
				targets = append(targets, i.Target)
			case tac.IfFalse:
				targets = append(targets, i.Target)
			}
		}
		for name, n := range defCount {
			if n != 1 {
				t.Errorf("%s: label %s defined %d times, want 1", fn.Name, name, n)
			}
		}
		for _, target := range targets {
			if defCount[target] != 1 {
				t.Errorf("%s: jump targets undefined label %s", fn.Name, target)
			}
		}
	}
}

func TestGenerate_BreakJumpsPastLoop(t *testing.T) {
	prog := generate(t, controlFlowSource)
	var dump strings.Builder
	for _, fn := range prog.Functions {
		dump.WriteString(fn.Dump())
	}
	got := dump.String()
	if !strings.Contains(got, "goto L") {
		t.Errorf("expected a break to lower to a goto, got:\n%s", got)
	}
	// The loop's exit label is the one right before main's closing `ret`;
	// the while condition's exit and the break must both jump to it.
	for _, fn := range prog.Functions {
		if fn.Name != "main" || len(fn.Instrs) < 2 {
			continue
		}
		exit, ok := fn.Instrs[len(fn.Instrs)-2].(tac.Label)
		if !ok {
			t.Fatalf("expected main to end with the loop's exit label then ret, got:\n%s", got)
		}
		jumps := 0
		for _, instr := range fn.Instrs {
			switch i := instr.(type) {
			case tac.Goto:
				if i.Target == exit.Name {
					jumps++
				}
			case tac.IfGoto:
				if i.Target == exit.Name {
					jumps++
				}
			case tac.IfFalse:
				if i.Target == exit.Name {
					jumps++
				}
			}
		}
		if jumps < 2 {
			t.Errorf("expected the loop exit and the break to jump to %s, found %d jump(s):\n%s", exit.Name, jumps, got)
		}
	}
}

func readTemps(instr tac.Instruction) []string {
	var out []string
	for _, op := range sourcesOf(instr) {
		if tac.IsTemp(op) {
			out = append(out, op)
		}
	}
	return out
}

func writtenTemp(instr tac.Instruction) string {
	var dst string
	switch i := instr.(type) {
	case tac.Binary:
		dst = i.Dst
	case tac.Unary:
		dst = i.Dst
	case tac.Move:
		dst = i.Dst
	case tac.Call:
		dst = i.Dst
	case tac.New:
		dst = i.Dst
	case tac.GetF:
		dst = i.Dst
	case tac.NewArr:
		dst = i.Dst
	case tac.ALoad:
		dst = i.Dst
	}
	if tac.IsTemp(dst) {
		return dst
	}
	return ""
}

// sourcesOf mirrors tacgen's internal peephole.sources, re-derived here
// since that helper is unexported; kept in sync with internal/tacgen/peephole.go.
func sourcesOf(instr tac.Instruction) []string {
	switch i := instr.(type) {
	case tac.Binary:
		return []string{i.A, i.B}
	case tac.Unary:
		return []string{i.A}
	case tac.Move:
		return []string{i.Src}
	case tac.IfGoto:
		return []string{i.Cond}
	case tac.IfFalse:
		return []string{i.Cond}
	case tac.Param:
		return []string{i.Operand}
	case tac.Ret:
		if i.Operand == "" {
			return nil
		}
		return []string{i.Operand}
	case tac.GetF:
		return []string{i.Obj}
	case tac.SetF:
		return []string{i.Obj, i.Val}
	case tac.NewArr:
		return []string{i.Size}
	case tac.ALoad:
		return []string{i.Arr, i.Idx}
	case tac.AStore:
		return []string{i.Arr, i.Idx, i.Val}
	case tac.Print:
		return []string{i.Operand}
	default:
		return nil
	}
}

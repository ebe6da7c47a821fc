package tac_test

import (
	"strings"
	"testing"

	"github.com/dsolis/compiscript/internal/tac"
)

func TestTacFunction_Dump(t *testing.T) {
	fn := &tac.TacFunction{
		Name:       "add",
		Params:     []string{"a", "b"},
		ReturnType: "integer",
		Locals:     0,
	}
	fn.Emit(tac.Binary{Op: "+", A: "%a", B: "%b", Dst: "t0"})
	fn.Emit(tac.Ret{Operand: "t0"})

	want := ".func add(a, b) : integer\n" +
		"  .locals 0\n" +
		"  t0 = %a + %b\n" +
		"  ret t0\n" +
		".endfunc\n"
	if got := fn.Dump(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTacFunction_Dump_NoParams(t *testing.T) {
	fn := &tac.TacFunction{Name: "main", ReturnType: "void", Locals: 1}
	fn.Emit(tac.Ret{})
	want := ".func main() : void\n  .locals 1\n  ret\n.endfunc\n"
	if got := fn.Dump(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTacProgram_Dump_SeparatesFunctionsWithBlankLine(t *testing.T) {
	f1 := &tac.TacFunction{Name: "f", ReturnType: "void"}
	f1.Emit(tac.Ret{})
	f2 := &tac.TacFunction{Name: "g", ReturnType: "void"}
	f2.Emit(tac.Ret{})
	prog := &tac.TacProgram{Functions: []*tac.TacFunction{f1, f2}}

	got := prog.Dump()
	if !strings.Contains(got, ".endfunc\n\n.func g") {
		t.Errorf("expected a blank line between functions, got:\n%s", got)
	}
}

package tac_test

import (
	"testing"

	"github.com/dsolis/compiscript/internal/tac"
)

func TestInstructionStrings(t *testing.T) {
	cases := []struct {
		name  string
		instr tac.Instruction
		want  string
	}{
		{"Binary", tac.Binary{Op: "+", A: "%x", B: "#1", Dst: "t0"}, "t0 = %x + #1"},
		{"Unary", tac.Unary{Op: "-", A: "%x", Dst: "t0"}, "t0 = - %x"},
		{"Move", tac.Move{Src: "#10", Dst: "%x"}, "move #10, %x"},
		{"Label", tac.Label{Name: "L0"}, "label L0:"},
		{"Goto", tac.Goto{Target: "L1"}, "goto L1"},
		{"IfGoto", tac.IfGoto{Cond: "t0", Target: "L2"}, "if t0 goto L2"},
		{"IfFalse", tac.IfFalse{Cond: "t0", Target: "L2"}, "ifFalse t0 goto L2"},
		{"Param", tac.Param{Operand: "%x"}, "param %x"},
		{"Call with result", tac.Call{FuncName: "f", NArgs: 2, Dst: "t1"}, "call f, 2 -> t1"},
		{"Call without result", tac.Call{FuncName: "f", NArgs: 0}, "call f, 0"},
		{"Ret with operand", tac.Ret{Operand: "t0"}, "ret t0"},
		{"Ret bare", tac.Ret{}, "ret"},
		{"New", tac.New{ClassName: "Counter", Dst: "t0"}, "t0 = new Counter"},
		{"GetF", tac.GetF{Obj: "%this", Field: "v", Dst: "t0"}, `t0 = getf %this, "v"`},
		{"SetF", tac.SetF{Obj: "%this", Field: "v", Val: "%s"}, `setf %this, "v", %s`},
		{"NewArr", tac.NewArr{ElemType: "integer", Size: "#3", Dst: "t0"}, "t0 = newarr integer, #3"},
		{"ALoad", tac.ALoad{Arr: "%a", Idx: "%i", Dst: "t0"}, "t0 = aload %a, %i"},
		{"AStore", tac.AStore{Arr: "%a", Idx: "#0", Val: "#1"}, "astore %a, #0, #1"},
		{"Print", tac.Print{Operand: "%x"}, "print %x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.instr.String(); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []tac.Instruction{
		tac.Goto{Target: "L0"},
		tac.Ret{},
		tac.Ret{Operand: "t0"},
		tac.IfGoto{Cond: tac.TrueLit, Target: "L0"},
	}
	for _, instr := range terminal {
		if !tac.IsTerminal(instr) {
			t.Errorf("expected %v to be terminal", instr)
		}
	}

	nonTerminal := []tac.Instruction{
		tac.IfGoto{Cond: "t0", Target: "L0"},
		tac.IfFalse{Cond: "t0", Target: "L0"},
		tac.Label{Name: "L0"},
		tac.Move{Src: "#1", Dst: "%x"},
		tac.Print{Operand: "%x"},
	}
	for _, instr := range nonTerminal {
		if tac.IsTerminal(instr) {
			t.Errorf("expected %v not to be terminal", instr)
		}
	}
}

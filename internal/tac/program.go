package tac

import (
	"strconv"
	"strings"
)

// TacFunction is one lowered function, method, or the synthesized top-level
// "main" entry (spec.md §3.4, §5 supplement 6). Params are plain names (no
// prefix — the `.func` header lists bare parameter names per §6's textual
// format); a method's receiver is passed as a leading parameter named
// "this".
type TacFunction struct {
	Name       string
	Params     []string
	ReturnType string
	Locals     int
	Instrs     []Instruction
}

func (f *TacFunction) Emit(instr Instruction) {
	f.Instrs = append(f.Instrs, instr)
}

// Dump renders the function in the textual format from spec.md §6:
//
//	.func name(p1, p2) : RetType
//	  .locals K
//	  <instructions, one per line, 2-space indent>
//	.endfunc
func (f *TacFunction) Dump() string {
	var b strings.Builder
	b.WriteString(".func ")
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteString(") : ")
	b.WriteString(f.ReturnType)
	b.WriteByte('\n')
	b.WriteString("  .locals ")
	b.WriteString(strconv.Itoa(f.Locals))
	b.WriteByte('\n')
	for _, instr := range f.Instrs {
		b.WriteString("  ")
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}
	b.WriteString(".endfunc\n")
	return b.String()
}

// TacProgram is an ordered list of TacFunctions (spec.md §3.4).
type TacProgram struct {
	Functions []*TacFunction
}

func (p *TacProgram) Dump() string {
	var b strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fn.Dump())
	}
	return b.String()
}

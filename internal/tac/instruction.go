// Package tac implements the Three-Address Code intermediate
// representation (spec.md §3.4): a closed set of instruction variants, a
// single-prefix-character operand encoding, and the textual dump format
// that is the sole contract with downstream consumers.
//
// Grounded on funvibe/funxy's internal/vm Chunk/CompiledFunction container
// shape, generalized from an opcode+operand-index bytecode to a textual,
// symbolic IR (labels instead of jump offsets, named operands instead of
// register indices) since TAC is meant to be read, not executed in place.
package tac

import "fmt"

// Instruction is the closed union of TAC instruction kinds. Implementations
// are value types so a TacFunction's instruction slice holds them directly.
type Instruction interface {
	String() string
	isInstruction()
}

type Binary struct{ Op, A, B, Dst string }

func (i Binary) String() string { return fmt.Sprintf("%s = %s %s %s", i.Dst, i.A, i.Op, i.B) }
func (Binary) isInstruction()   {}

type Unary struct{ Op, A, Dst string }

func (i Unary) String() string { return fmt.Sprintf("%s = %s %s", i.Dst, i.Op, i.A) }
func (Unary) isInstruction()   {}

type Move struct{ Src, Dst string }

func (i Move) String() string { return fmt.Sprintf("move %s, %s", i.Src, i.Dst) }
func (Move) isInstruction()   {}

type Label struct{ Name string }

func (i Label) String() string { return fmt.Sprintf("label %s:", i.Name) }
func (Label) isInstruction()   {}

type Goto struct{ Target string }

func (i Goto) String() string { return fmt.Sprintf("goto %s", i.Target) }
func (Goto) isInstruction()   {}

type IfGoto struct{ Cond, Target string }

func (i IfGoto) String() string { return fmt.Sprintf("if %s goto %s", i.Cond, i.Target) }
func (IfGoto) isInstruction()   {}

type IfFalse struct{ Cond, Target string }

func (i IfFalse) String() string { return fmt.Sprintf("ifFalse %s goto %s", i.Cond, i.Target) }
func (IfFalse) isInstruction()   {}

type Param struct{ Operand string }

func (i Param) String() string { return fmt.Sprintf("param %s", i.Operand) }
func (Param) isInstruction()   {}

// Call's Dst is empty for a call whose result is discarded (a Void-returning
// callee, or a non-void result that's unused — the checker still types it,
// but the generator has no use for the value).
type Call struct {
	FuncName string
	NArgs    int
	Dst      string
}

func (i Call) String() string {
	if i.Dst == "" {
		return fmt.Sprintf("call %s, %d", i.FuncName, i.NArgs)
	}
	return fmt.Sprintf("call %s, %d -> %s", i.FuncName, i.NArgs, i.Dst)
}
func (Call) isInstruction() {}

// Ret's Operand is empty for a bare `return;` in a Void function.
type Ret struct{ Operand string }

func (i Ret) String() string {
	if i.Operand == "" {
		return "ret"
	}
	return fmt.Sprintf("ret %s", i.Operand)
}
func (Ret) isInstruction() {}

type New struct{ ClassName, Dst string }

func (i New) String() string { return fmt.Sprintf("%s = new %s", i.Dst, i.ClassName) }
func (New) isInstruction()   {}

type GetF struct{ Obj, Field, Dst string }

func (i GetF) String() string { return fmt.Sprintf("%s = getf %s, %q", i.Dst, i.Obj, i.Field) }
func (GetF) isInstruction()   {}

type SetF struct{ Obj, Field, Val string }

func (i SetF) String() string { return fmt.Sprintf("setf %s, %q, %s", i.Obj, i.Field, i.Val) }
func (SetF) isInstruction()   {}

type NewArr struct{ ElemType, Size, Dst string }

func (i NewArr) String() string { return fmt.Sprintf("%s = newarr %s, %s", i.Dst, i.ElemType, i.Size) }
func (NewArr) isInstruction()   {}

type ALoad struct{ Arr, Idx, Dst string }

func (i ALoad) String() string { return fmt.Sprintf("%s = aload %s, %s", i.Dst, i.Arr, i.Idx) }
func (ALoad) isInstruction()   {}

type AStore struct{ Arr, Idx, Val string }

func (i AStore) String() string { return fmt.Sprintf("astore %s, %s, %s", i.Arr, i.Idx, i.Val) }
func (AStore) isInstruction()   {}

type Print struct{ Operand string }

func (i Print) String() string { return fmt.Sprintf("print %s", i.Operand) }
func (Print) isInstruction()   {}

// IsTerminal reports whether instr always transfers control away from the
// next textual instruction (spec.md §3.4: "A terminal instruction is any of
// {Goto, Ret, IfGoto with unconditional-true literal}"), used to suppress
// redundant fall-through gotos during lowering.
func IsTerminal(instr Instruction) bool {
	switch v := instr.(type) {
	case Goto, Ret:
		return true
	case IfGoto:
		return v.Cond == TrueLit
	default:
		return false
	}
}

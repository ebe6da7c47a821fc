package tacgen

import "github.com/dsolis/compiscript/internal/tac"

// Peephole applies the optimization rules from spec.md §4.4: a redundant
// goto-to-next-label is deleted (rule 1), an ifFalse/goto/label triad
// collapses to one ifGoto (rule 2), and a move into a temp that's never
// read again is dropped (rule 3, liveness-gated). Dropping a move can
// expose another dead move or a new rule 1/2 site, so the three rewrites
// repeat until a round removes nothing; every rewrite removes at least one
// instruction, so the loop ends, and its result is a fixpoint, which makes
// the pass idempotent (spec.md §8).
//
// Grounded on funvibe/funxy's internal/vm bytecode peephole pass structure
// (a single forward scan mutating a flat instruction slice), adapted from
// byte-offset jump targets to named labels.
func Peephole(instrs []tac.Instruction) []tac.Instruction {
	for {
		n := len(instrs)
		instrs = collapseGotoNextLabel(instrs)
		instrs = collapseIfFalseGotoLabel(instrs)
		instrs = dropDeadTempMoves(instrs)
		if len(instrs) == n {
			return instrs
		}
	}
}

// collapseGotoNextLabel deletes a `goto L` immediately followed by `label
// L:` (rule 1) — the jump is a no-op since control reaches L anyway.
func collapseGotoNextLabel(instrs []tac.Instruction) []tac.Instruction {
	out := make([]tac.Instruction, 0, len(instrs))
	for i := 0; i < len(instrs); i++ {
		if g, ok := instrs[i].(tac.Goto); ok && i+1 < len(instrs) {
			if l, ok := instrs[i+1].(tac.Label); ok && l.Name == g.Target {
				continue
			}
		}
		out = append(out, instrs[i])
	}
	return out
}

// collapseIfFalseGotoLabel rewrites `ifFalse t, L1` / `goto L2` / `label
// L1:` into `if t goto L2` / `label L1:` (rule 2) — the shape an if/else
// lowers to when the then-branch falls through into an unconditional jump
// past the else block.
func collapseIfFalseGotoLabel(instrs []tac.Instruction) []tac.Instruction {
	out := make([]tac.Instruction, 0, len(instrs))
	for i := 0; i < len(instrs); i++ {
		if iff, ok := instrs[i].(tac.IfFalse); ok && i+2 < len(instrs) {
			if gt, ok := instrs[i+1].(tac.Goto); ok {
				if l, ok := instrs[i+2].(tac.Label); ok && l.Name == iff.Target {
					out = append(out, tac.IfGoto{Cond: iff.Cond, Target: gt.Target})
					out = append(out, l)
					i += 2
					continue
				}
			}
		}
		out = append(out, instrs[i])
	}
	return out
}

// dropDeadTempMoves deletes `move x, y` when y is a temp never read by any
// later instruction in the function (rule 3), found by scanning the
// instructions after the move for a read of y.
func dropDeadTempMoves(instrs []tac.Instruction) []tac.Instruction {
	out := make([]tac.Instruction, 0, len(instrs))
	for i, instr := range instrs {
		if mv, ok := instr.(tac.Move); ok && tac.IsTemp(mv.Dst) && !isReadLaterAsTemp(instrs, i, mv.Dst) {
			continue
		}
		out = append(out, instr)
	}
	return out
}

// isReadLaterAsTemp reports whether dst appears as a source operand in any
// instruction after index i.
func isReadLaterAsTemp(instrs []tac.Instruction, i int, dst string) bool {
	for j := i + 1; j < len(instrs); j++ {
		for _, op := range sources(instrs[j]) {
			if op == dst {
				return true
			}
		}
	}
	return false
}

// sources returns the operands instr reads from (never its destination),
// the inputs the liveness scan needs.
func sources(instr tac.Instruction) []string {
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

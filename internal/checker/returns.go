package checker

import "github.com/dsolis/compiscript/internal/ast"

// mustReturn is the structural predicate behind MissingReturn and DeadCode
// (spec.md §4.3 "Return-path analysis"): true when executing stmt guarantees
// control never falls through it normally. Switch is handled precisely by
// mustReturnSwitch; While/For/Foreach are intentionally conservative
// (always false) since break makes "always returns" hard to prove
// syntactically — even a `while (true) { return 1; }` is treated as not
// must-returning, a safer failure mode than the reverse.
func mustReturn(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.Return:
		return true
	case *ast.Block:
		for _, inner := range s.Statements {
			if mustReturn(inner) {
				return true
			}
		}
		return false
	case *ast.If:
		return s.Else != nil && mustReturn(s.Then) && mustReturn(s.Else)
	case *ast.DoWhile:
		// A do-while body always executes at least once.
		return mustReturn(s.Body)
	case *ast.Switch:
		return mustReturnSwitch(s)
	default:
		return false
	}
}

// mustReturnSwitch implements spec.md §4.3's switch rule: must-returns iff
// every case (and a default) must-return. A case ending in `break` exits the
// switch rather than the function, so it does not count as must-returning —
// only `return` (directly, or via a nested must-returning if/else) does.
func mustReturnSwitch(s *ast.Switch) bool {
	hasDefault := false
	for _, cs := range s.Cases {
		if cs.IsDefault {
			hasDefault = true
		}
		if !mustReturnStatements(cs.Statements) {
			return false
		}
	}
	return hasDefault
}

// mustReturnStatements applies the same "sequence must-returns if any
// statement up to the first must-returning statement must-returns" rule
// Block uses, over a raw statement list (a case body isn't wrapped in a
// *ast.Block).
func mustReturnStatements(stmts []ast.Statement) bool {
	for _, inner := range stmts {
		if mustReturn(inner) {
			return true
		}
	}
	return false
}

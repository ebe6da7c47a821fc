package checker

import (
	"github.com/dsolis/compiscript/internal/symbols"
	"github.com/dsolis/compiscript/internal/token"
	"github.com/dsolis/compiscript/internal/types"
)

// PrintName is the one Builtin symbol spec.md §3.2 defines:
// print(any): Void.
const PrintName = "print"

// registerBuiltins seeds the global scope with the `print` builtin,
// grounded on funxy/internal/analyzer/builtins.go's RegisterBuiltins
// (a fixed prelude registration run once per symbol table).
func registerBuiltins(global *symbols.Scope) {
	sym := symbols.NewSymbol(symbols.KindBuiltin, PrintName, token.Position{}, nil)
	sym.ReturnType = types.TVoid
	global.Declare(sym)
}

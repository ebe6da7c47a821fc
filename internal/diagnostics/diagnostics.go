// Package diagnostics defines the structured error/warning taxonomy the
// checker emits (spec.md §4.5, §7). Diagnostics are plain values; the
// checker never panics or short-circuits on the first one (spec.md §7).
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/dsolis/compiscript/internal/token"
)

// Severity distinguishes a hard error (suppresses TAC generation) from a
// warning (informational, like DeadCode).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code is a stable diagnostic identifier (spec.md §7 table).
type Code string

const (
	UnknownSymbol        Code = "UnknownSymbol"
	DuplicateSymbol      Code = "DuplicateSymbol"
	TypeMismatch         Code = "TypeMismatch"
	NotNumeric           Code = "NotNumeric"
	NotBoolean           Code = "NotBoolean"
	NotComparable        Code = "NotComparable"
	AssignToConst        Code = "AssignToConst"
	InvalidLValue        Code = "InvalidLValue"
	ArityMismatch        Code = "ArityMismatch"
	UnknownMember        Code = "UnknownMember"
	MissingReturn        Code = "MissingReturn"
	UnboundBreakContinue Code = "UnboundBreakContinue"
	DeadCode             Code = "DeadCode"
	BadConstructor       Code = "BadConstructor"
)

// Diagnostic is {severity, code, message, position} (spec.md §4.5).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      token.Position
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: [%s] %s", "", d.Pos.Line, d.Pos.Column, d.Severity, d.Code, d.Message)
}

// IsError reports whether this diagnostic is error-severity.
func (d *Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// Bag collects diagnostics during a single compile and deduplicates by
// (position, code), mirroring funxy/internal/analyzer's
// errorSet map[string]*DiagnosticError keyed by "line:col:code".
type Bag struct {
	seen map[string]*Diagnostic
}

// NewBag creates an empty diagnostic collector.
func NewBag() *Bag {
	return &Bag{seen: make(map[string]*Diagnostic)}
}

func (b *Bag) key(pos token.Position, code Code) string {
	return fmt.Sprintf("%d:%d:%s", pos.Line, pos.Column, code)
}

// Add appends an error-severity diagnostic.
func (b *Bag) Add(code Code, pos token.Position, format string, args ...interface{}) {
	d := &Diagnostic{Severity: SeverityError, Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
	b.seen[b.key(pos, code)] = d
}

// AddWarning appends a warning-severity diagnostic.
func (b *Bag) AddWarning(code Code, pos token.Position, format string, args ...interface{}) {
	d := &Diagnostic{Severity: SeverityWarning, Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
	b.seen[b.key(pos, code)] = d
}

// All returns every collected diagnostic, sorted by position then code for
// deterministic output (spec.md §8 determinism property).
func (b *Bag) All() []*Diagnostic {
	result := make([]*Diagnostic, 0, len(b.seen))
	for _, d := range b.seen {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Pos.Line != result[j].Pos.Line {
			return result[i].Pos.Line < result[j].Pos.Line
		}
		if result[i].Pos.Column != result[j].Pos.Column {
			return result[i].Pos.Column < result[j].Pos.Column
		}
		return result[i].Code < result[j].Code
	})
	return result
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (b *Bag) HasErrors() bool {
	for _, d := range b.seen {
		if d.IsError() {
			return true
		}
	}
	return false
}

// HasErrors reports whether any diagnostic in a collected, final list
// (e.g. checker.Result.Diagnostics) is error-severity (spec.md §4.5).
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

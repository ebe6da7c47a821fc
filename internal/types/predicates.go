package types

import "fmt"

// ClassRegistry resolves a class name to its declared Type, letting
// predicates that need the parent chain (assignable, member lookup) walk it
// without this package importing internal/symbols (which imports internal/types).
type ClassRegistry interface {
	ClassByName(name string) (Class, bool)
}

// Error is returned by predicates that can fail; Reason is a human-readable
// explanation of the failure, not a diagnostics error code (internal/types
// does not depend on internal/diagnostics).
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// Numeric reports whether t is Int or Float.
func Numeric(t Type) bool {
	p, ok := t.(Primitive)
	return ok && (p.K == Int || p.K == Float)
}

// ComparableOrdered reports whether t supports < <= > >=.
func ComparableOrdered(t Type) bool {
	p, ok := t.(Primitive)
	return ok && (p.K == Int || p.K == Float || p.K == String)
}

func isReference(t Type) bool {
	switch t.(type) {
	case Array, Class:
		return true
	default:
		return false
	}
}

// Assignable implements spec.md §3.1's assignable(from, to) predicate.
func Assignable(from, to Type, reg ClassRegistry) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Equal(to) {
		return true
	}
	if fp, ok := from.(Primitive); ok && fp.K == Int {
		if tp, ok := to.(Primitive); ok && tp.K == Float {
			return true
		}
	}
	if fp, ok := from.(Primitive); ok && fp.K == Null && isReference(to) {
		return true
	}
	if fc, ok := from.(Class); ok {
		if tc, ok := to.(Class); ok {
			return classExtends(fc.Name, tc.Name, reg)
		}
	}
	if fa, ok := from.(Array); ok {
		if ta, ok := to.(Array); ok {
			return fa.Elem.Equal(ta.Elem)
		}
	}
	if ff, ok := from.(FunctionSig); ok {
		if tf, ok := to.(FunctionSig); ok {
			return ff.Equal(tf)
		}
	}
	return false
}

// classExtends reports whether a's parent chain includes b (or a == b).
func classExtends(a, b string, reg ClassRegistry) bool {
	if a == b {
		return true
	}
	seen := map[string]bool{}
	cur := a
	for {
		if seen[cur] {
			return false // defensive against a cycle that should never exist (invariant 3.3.3)
		}
		seen[cur] = true
		cls, ok := reg.ClassByName(cur)
		if !ok || cls.Parent == "" {
			return false
		}
		if cls.Parent == b {
			return true
		}
		cur = cls.Parent
	}
}

// PromoteBinary implements promote_binary(a, b): the common operand type and
// the result type for arithmetic operators. allowString permits the `+`
// operator's String-on-either-side rule (spec.md §3.1).
func PromoteBinary(a, b Type, allowString bool) (common Type, err error) {
	if allowString && (a.Equal(TString) || b.Equal(TString)) {
		return TString, nil
	}
	if !Numeric(a) || !Numeric(b) {
		return nil, &Error{Reason: "operands must be numeric"}
	}
	if a.Equal(TFloat) || b.Equal(TFloat) {
		return TFloat, nil
	}
	return TInt, nil
}

// UnifyRelational implements unify_relational(a, b): both operands must be
// comparable_ordered and mutually compatible under promotion; result is
// always Bool.
func UnifyRelational(a, b Type) (Type, error) {
	if !ComparableOrdered(a) || !ComparableOrdered(b) {
		return nil, &Error{Reason: "operands must be comparable"}
	}
	aIsString := a.Equal(TString)
	bIsString := b.Equal(TString)
	if aIsString != bIsString {
		return nil, &Error{Reason: "cannot compare string with numeric type"}
	}
	return TBool, nil
}

// MemberLookup walks the parent chain of a class type looking for a field or
// method named `name`, returning the first match (spec.md §4.1).
func MemberLookup(classType Class, name string, reg ClassRegistry) (Type, bool) {
	cur := classType
	for {
		if cur.Fields != nil {
			if t, ok := cur.Fields.Get(name); ok {
				return t, true
			}
		}
		if cur.Methods != nil {
			if sig, ok := cur.Methods[name]; ok {
				return sig, true
			}
		}
		if cur.Parent == "" {
			return nil, false
		}
		next, ok := reg.ClassByName(cur.Parent)
		if !ok {
			return nil, false
		}
		cur = next
	}
}

// Join computes the result type of a ternary's two (mutually assignable)
// branches: the more general of the two under Assignable.
func Join(a, b Type, reg ClassRegistry) (Type, error) {
	if a.Equal(b) {
		return a, nil
	}
	if Assignable(a, b, reg) {
		return b, nil
	}
	if Assignable(b, a, reg) {
		return a, nil
	}
	return nil, &Error{Reason: fmt.Sprintf("incompatible types %s and %s", a, b)}
}

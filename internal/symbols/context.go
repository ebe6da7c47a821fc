package symbols

import "github.com/dsolis/compiscript/internal/types"

// LoopFrame marks one nesting level of break/continue legality (spec.md
// §4.2's "separate, parallel stack of loop contexts"). IsSwitch marks a
// switch's break-only frame (spec.md §4.3 switch rule): break may target it,
// but continue skips over it to find the nearest enclosing real loop.
type LoopFrame struct {
	IsSwitch bool
}

// FuncFrame records the expected return type for return-statement checking
// (spec.md §4.2 "Return context") plus the enclosing class, if any, for
// `this` resolution.
type FuncFrame struct {
	ExpectedReturn types.Type
	ClassName      string // empty if a free function
}

// Context bundles the loop stack and function/class stack the checker
// consults alongside the scope chain. It is intentionally separate from
// Scope because loop/function nesting doesn't follow block scoping 1:1
// (e.g. a function body scope and a loop frame both open at the same
// syntactic point but are popped by different statement kinds).
type Context struct {
	loops []LoopFrame
	funcs []FuncFrame
}

// NewContext returns an empty loop/function context.
func NewContext() *Context {
	return &Context{}
}

func (c *Context) PushLoop(isSwitch bool) {
	c.loops = append(c.loops, LoopFrame{IsSwitch: isSwitch})
}

func (c *Context) PopLoop() {
	c.loops = c.loops[:len(c.loops)-1]
}

// InLoop reports whether a break is currently legal — any frame, loop or
// switch, makes break legal (UnboundBreakContinue otherwise).
func (c *Context) InLoop() bool {
	return len(c.loops) > 0
}

// CanContinue reports whether a continue is currently legal: it must find a
// real loop frame, skipping over any switch frames on top of it.
func (c *Context) CanContinue() bool {
	for i := len(c.loops) - 1; i >= 0; i-- {
		if !c.loops[i].IsSwitch {
			return true
		}
	}
	return false
}

func (c *Context) PushFunc(expectedReturn types.Type, className string) {
	c.funcs = append(c.funcs, FuncFrame{ExpectedReturn: expectedReturn, ClassName: className})
}

func (c *Context) PopFunc() {
	c.funcs = c.funcs[:len(c.funcs)-1]
}

// CurrentFunc returns the innermost function frame, if any.
func (c *Context) CurrentFunc() (FuncFrame, bool) {
	if len(c.funcs) == 0 {
		return FuncFrame{}, false
	}
	return c.funcs[len(c.funcs)-1], true
}

// CurrentClass returns the enclosing class name for `this`/member
// resolution, if the innermost function frame is a method.
func (c *Context) CurrentClass() (string, bool) {
	f, ok := c.CurrentFunc()
	if !ok || f.ClassName == "" {
		return "", false
	}
	return f.ClassName, true
}

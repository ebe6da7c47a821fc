// Package pipeline composes the checker and generator into the sequence of
// stages a caller (the CLI, a cache layer, a future IDE) runs a parse tree
// through, grounded on funvibe/funxy's internal/pipeline.Pipeline — a
// Processor slice run in order over a shared context, the same shape kept
// here with Compiscript's own two stages (spec.md §2: "parse tree → checker
// → ... → TAC generator").
package pipeline

import (
	"github.com/dsolis/compiscript/internal/ast"
	"github.com/dsolis/compiscript/internal/checker"
	"github.com/dsolis/compiscript/internal/diagnostics"
	"github.com/dsolis/compiscript/internal/tac"
	"github.com/dsolis/compiscript/internal/tacgen"
)

// Context threads state between stages.
type Context struct {
	Program     *ast.Program
	Check       *checker.Result
	Diagnostics []*diagnostics.Diagnostic
	Tac         *tac.TacProgram
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is an ordered sequence of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order over ctx.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

type checkerStage struct{}

func (checkerStage) Process(ctx *Context) *Context {
	result := checker.Check(ctx.Program)
	ctx.Check = result
	ctx.Diagnostics = result.Diagnostics
	return ctx
}

// generatorStage lowers to TAC only when the checker stage left no
// error-severity diagnostic (spec.md §4.5).
type generatorStage struct{}

func (generatorStage) Process(ctx *Context) *Context {
	if diagnostics.HasErrors(ctx.Diagnostics) {
		return ctx
	}
	ctx.Tac = tacgen.Generate(ctx.Program, ctx.Check)
	return ctx
}

// Default is the standard check-then-generate pipeline.
func Default() *Pipeline {
	return New(checkerStage{}, generatorStage{})
}

// Compile is the single entry point collaborators call (spec.md §2).
func Compile(program *ast.Program) *Context {
	return Default().Run(&Context{Program: program})
}

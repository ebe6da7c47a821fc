// Command compiscript is the CLI entry point: read a parse tree, run it
// through the checker and TAC generator, print diagnostics and TAC.
// Grounded on funvibe/funxy/cmd/funxy/main.go's read-file → pipeline →
// write-output structure (SPEC_FULL.md §3), adapted to this project's own
// two-stage pipeline and flag-based argument parsing in place of funxy's
// manual os.Args scanning, since spec.md names `flag` explicitly
// (SPEC_FULL.md §3 CLI entry).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsolis/compiscript/internal/astjson"
	"github.com/dsolis/compiscript/internal/cache"
	"github.com/dsolis/compiscript/internal/config"
	"github.com/dsolis/compiscript/internal/diagnostics"
	"github.com/dsolis/compiscript/internal/pipeline"

	"github.com/mattn/go-isatty"
)

// Exit codes (spec.md §6 / SPEC_FULL.md §3): 0 clean compile, 1 compile
// (checker) errors, 2 usage or I/O failure.
const (
	exitOK       = 0
	exitCompiler = 1
	exitUsage    = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("compiscript", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	emitStdout := fs.Bool("stdout", false, "write TAC to stdout instead of a sibling .tac file")
	useCache := fs.Bool("cache", false, "use the sqlite compile cache")
	cachePath := fs.String("cache-path", ".compiscript-cache.db", "path to the cache database (with -cache)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: compiscript [-stdout] [-cache] [-cache-path path] <source.json>")
		return exitUsage
	}

	path := fs.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compiscript: %v\n", err)
		return exitUsage
	}

	projectCfg, err := config.LoadProjectConfig(".compiscript.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "compiscript: reading .compiscript.yaml: %v\n", err)
		return exitUsage
	}

	var store *cache.Store
	if *useCache || projectCfg.Cache {
		store, err = cache.Open(*cachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "compiscript: %v\n", err)
			return exitUsage
		}
		defer store.Close()
	}

	colorOut := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	hash := cache.Hash(source)
	if store != nil {
		if entry, ok, err := store.Lookup(context.Background(), hash); err == nil && ok {
			fmt.Fprint(os.Stderr, entry.DiagnosticText)
			if entry.HasErrors {
				return exitCompiler
			}
			return writeTac(path, projectCfg.OutputPath, entry.TacText, *emitStdout)
		}
	}

	program, err := astjson.DecodeProgram(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compiscript: %v\n", err)
		return exitUsage
	}

	start := time.Now()
	ctx := pipeline.Compile(program)
	elapsed := time.Since(start)

	diagText := renderDiagnostics(ctx.Diagnostics, colorOut)
	fmt.Fprint(os.Stderr, diagText)

	hasErrors := diagnostics.HasErrors(ctx.Diagnostics)
	if hasErrors || (projectCfg.WarningsAsErrors && len(ctx.Diagnostics) > 0) {
		if store != nil {
			store.Store(context.Background(), hash, cache.Entry{
				DiagnosticText: diagText,
				HasErrors:      true,
				CompiledAt:     start,
				CompileTook:    elapsed,
			})
		}
		return exitCompiler
	}

	tacText := ctx.Tac.Dump()
	if store != nil {
		if err := store.Store(context.Background(), hash, cache.Entry{
			TacText:        tacText,
			DiagnosticText: diagText,
			HasErrors:      false,
			CompiledAt:     start,
			CompileTook:    elapsed,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "compiscript: caching result: %v\n", err)
		}
	}

	return writeTac(path, projectCfg.OutputPath, tacText, *emitStdout)
}

// writeTac writes tacText to stdout, to configOutputPath (the project
// config's `output:` route, if set), or to a sibling ".tac" file next to
// sourcePath, in that priority order.
func writeTac(sourcePath, configOutputPath, tacText string, toStdout bool) int {
	if toStdout {
		fmt.Print(tacText)
		return exitOK
	}
	// The wire format is a JSON-serialized parse tree (internal/astjson),
	// not Compiscript source text, since no real lexer/parser is part of
	// this repo — the default output path simply replaces whatever
	// extension the input file has with ".tac", unless the project config
	// routes output elsewhere.
	outPath := configOutputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".tac"
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "compiscript: creating %s: %v\n", dir, err)
			return exitUsage
		}
	}
	if err := os.WriteFile(outPath, []byte(tacText), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "compiscript: writing %s: %v\n", outPath, err)
		return exitUsage
	}
	return exitOK
}

func renderDiagnostics(diags []*diagnostics.Diagnostic, color bool) string {
	var b strings.Builder
	for _, d := range diags {
		severity := d.Severity.String()
		if color {
			severity = colorize(severity, d.IsError())
		}
		fmt.Fprintf(&b, "%s: %s: [%s] %s\n", d.Pos, severity, d.Code, d.Message)
	}
	return b.String()
}

// colorize wraps label in a severity-appropriate ANSI code, the same
// red/yellow split funxy/internal/evaluator/builtins_term.go uses for its
// own terminal-gated output.
func colorize(label string, isError bool) string {
	code := "33" // yellow: warning
	if isError {
		code = "31" // red: error
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, label)
}

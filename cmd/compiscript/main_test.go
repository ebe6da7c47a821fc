package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir switches the test's working directory to dir for the duration of the
// test (run's config/cache paths are relative), restoring the original
// directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

const cleanSource = `{
  "kind": "Program",
  "statements": [
    {"kind":"VarDecl","name":"x","type":{"name":"integer"},"init":{"kind":"Literal","literalKind":"int","intValue":1}},
    {"kind":"Print","value":{"kind":"Identifier","name":"x"}}
  ]
}`

const errorSource = `{
  "kind": "Program",
  "statements": [
    {"kind":"ExprStmt","expr":{"kind":"Identifier","name":"undefined"}}
  ]
}`

func TestRun_NoArgsIsUsageError(t *testing.T) {
	if got := run(nil); got != exitUsage {
		t.Errorf("got exit %d, want %d", got, exitUsage)
	}
}

func TestRun_MissingFileIsUsageError(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if got := run([]string{filepath.Join(dir, "nonexistent.json")}); got != exitUsage {
		t.Errorf("got exit %d, want %d", got, exitUsage)
	}
}

func TestRun_CheckerErrorsExitCompiler(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "prog.json")
	if err := os.WriteFile(path, []byte(errorSource), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := run([]string{path}); got != exitCompiler {
		t.Errorf("got exit %d, want %d", got, exitCompiler)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.tac")); err == nil {
		t.Error("expected no .tac file to be written when checking fails")
	}
}

func TestRun_CleanCompileWritesSiblingTacFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "prog.json")
	if err := os.WriteFile(path, []byte(cleanSource), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := run([]string{path}); got != exitOK {
		t.Fatalf("got exit %d, want %d", got, exitOK)
	}
	tacBytes, err := os.ReadFile(filepath.Join(dir, "prog.tac"))
	if err != nil {
		t.Fatalf("expected a sibling prog.tac file: %v", err)
	}
	tacText := string(tacBytes)
	if !strings.Contains(tacText, ".func main() : void") {
		t.Errorf("unexpected TAC output:\n%s", tacText)
	}
	if !strings.Contains(tacText, "print %x") {
		t.Errorf("expected a print instruction, got:\n%s", tacText)
	}
}

func TestRun_StdoutFlagWritesNoSiblingFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "prog.json")
	if err := os.WriteFile(path, []byte(cleanSource), 0o644); err != nil {
		t.Fatal(err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	origStdout := os.Stdout
	os.Stdout = w
	got := run([]string{"-stdout", path})
	w.Close()
	os.Stdout = origStdout

	if got != exitOK {
		t.Fatalf("got exit %d, want %d", got, exitOK)
	}

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	printed := string(buf[:n])
	if !strings.Contains(printed, ".func main() : void") {
		t.Errorf("expected TAC on stdout, got:\n%s", printed)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.tac")); err == nil {
		t.Error("expected no sibling .tac file to be written with -stdout")
	}
}

func TestRun_ProjectConfigRoutesOutputPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "prog.json")
	if err := os.WriteFile(path, []byte(cleanSource), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, ".compiscript.yaml")
	if err := os.WriteFile(cfgPath, []byte("output: build/out.tac\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := run([]string{path}); got != exitOK {
		t.Fatalf("got exit %d, want %d", got, exitOK)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.tac")); err == nil {
		t.Error("expected no default sibling .tac file when output: routes elsewhere")
	}
	tacBytes, err := os.ReadFile(filepath.Join(dir, "build", "out.tac"))
	if err != nil {
		t.Fatalf("expected output routed to build/out.tac: %v", err)
	}
	if !strings.Contains(string(tacBytes), ".func main() : void") {
		t.Errorf("unexpected TAC output:\n%s", string(tacBytes))
	}
}

func TestRun_CacheFlagStoresAndReusesResult(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "prog.json")
	if err := os.WriteFile(path, []byte(cleanSource), 0o644); err != nil {
		t.Fatal(err)
	}

	cachePath := filepath.Join(dir, "cache.db")
	if got := run([]string{"-cache", "-cache-path", cachePath, path}); got != exitOK {
		t.Fatalf("first run: got exit %d, want %d", got, exitOK)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected the cache database to be created: %v", err)
	}

	// Remove the sibling .tac file and rerun; a cache hit should regenerate
	// it from the stored entry without re-invoking the checker.
	os.Remove(filepath.Join(dir, "prog.tac"))
	if got := run([]string{"-cache", "-cache-path", cachePath, path}); got != exitOK {
		t.Fatalf("second run: got exit %d, want %d", got, exitOK)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.tac")); err != nil {
		t.Errorf("expected the cache hit to still write the sibling .tac file: %v", err)
	}
}

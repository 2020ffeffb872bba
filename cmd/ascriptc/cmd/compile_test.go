package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func writeScript(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestCompileScriptReportsFunctionsAndGlobals(t *testing.T) {
	path := writeScript(t, t.TempDir(), "add.as", `int Add(int a, int b) { return a + b; }`)

	out := captureStdout(t, func() {
		if err := compileScript(nil, []string{path}); err != nil {
			t.Fatalf("compileScript failed: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("1 function(s)")) {
		t.Fatalf("expected a function count in output, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("0 global(s)")) {
		t.Fatalf("expected a global count in output, got %q", out)
	}
}

func TestCompileScriptFailsOnDiagnostics(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.as", `int Broken( {`)

	err := compileScript(nil, []string{path})
	if err == nil {
		t.Fatal("expected an error for malformed source")
	}
}

func TestCompileScriptFailsOnMissingFile(t *testing.T) {
	err := compileScript(nil, []string{filepath.Join(t.TempDir(), "missing.as")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestCheckScriptSucceedsOnCleanSource(t *testing.T) {
	path := writeScript(t, t.TempDir(), "ok.as", `int Identity(int x) { return x; }`)

	if err := checkScript(nil, []string{path}); err != nil {
		t.Fatalf("checkScript failed: %v", err)
	}
}

func TestCheckScriptFailsOnDiagnostics(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.as", `int Broken( {`)

	if err := checkScript(nil, []string{path}); err == nil {
		t.Fatal("expected an error for malformed source")
	}
}

func TestDisasmScriptListsNamedFunction(t *testing.T) {
	path := writeScript(t, t.TempDir(), "two.as", `
		int A() { return 1; }
		int B() { return 2; }
	`)

	disasmFunc = "A"
	defer func() { disasmFunc = "" }()

	out := captureStdout(t, func() {
		if err := disasmScript(nil, []string{path}); err != nil {
			t.Fatalf("disasmScript failed: %v", err)
		}
	})
	if !bytes.Contains([]byte(out), []byte("== A ==")) {
		t.Fatalf("expected disassembly header for A, got %q", out)
	}
	if bytes.Contains([]byte(out), []byte("== B ==")) {
		t.Fatalf("expected B to be filtered out, got %q", out)
	}
}

func TestDisasmScriptFailsOnUnknownFunc(t *testing.T) {
	path := writeScript(t, t.TempDir(), "one.as", `int A() { return 1; }`)

	disasmFunc = "NoSuchFunction"
	defer func() { disasmFunc = "" }()

	if err := disasmScript(nil, []string{path}); err == nil {
		t.Fatal("expected an error for an unknown function name")
	}
}

func TestDisasmScriptJSONRendersFunctionTable(t *testing.T) {
	path := writeScript(t, t.TempDir(), "two.as", `
		int A() { return 1; }
		int B() { return 2; }
	`)

	disasmJSON = true
	defer func() { disasmJSON = false }()

	out := captureStdout(t, func() {
		if err := disasmScript(nil, []string{path}); err != nil {
			t.Fatalf("disasmScript failed: %v", err)
		}
	})

	if got := gjson.Get(out, "functions.0.name").String(); got != "A" {
		t.Fatalf("expected the first function in the table to be named A, got %q (%q)", got, out)
	}
	if got := gjson.Get(out, "functions.1.name").String(); got != "B" {
		t.Fatalf("expected the second function in the table to be named B, got %q (%q)", got, out)
	}
}

func TestDisasmScriptJSONHonorsFuncFilter(t *testing.T) {
	path := writeScript(t, t.TempDir(), "two.as", `
		int A() { return 1; }
		int B() { return 2; }
	`)

	disasmJSON = true
	disasmFunc = "B"
	defer func() { disasmJSON = false; disasmFunc = "" }()

	out := captureStdout(t, func() {
		if err := disasmScript(nil, []string{path}); err != nil {
			t.Fatalf("disasmScript failed: %v", err)
		}
	})

	if got := gjson.Get(out, "functions.#").Int(); got != 1 {
		t.Fatalf("expected exactly one function in the filtered table, got %d (%q)", got, out)
	}
	if got := gjson.Get(out, "functions.0.name").String(); got != "B" {
		t.Fatalf("expected the filtered table to contain only B, got %q", got)
	}
}

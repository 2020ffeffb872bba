package ascript

import (
	"strings"
	"testing"
)

func TestCompileSimpleFunction(t *testing.T) {
	sess, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res := sess.Compile(Source{Name: "add.as", Text: `
		int Add(int a, int b) {
			return a + b;
		}
	`})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", res.FormatDiagnostics())
	}
	if res.Module == nil {
		t.Fatal("expected a Module")
	}
	found := false
	for _, fn := range res.Module.Functions {
		if fn.Name == "Add" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a compiled Add function, got %+v", res.Module.Functions)
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	sess, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res := sess.Compile(Source{Name: "bad.as", Text: `int Broken( {`})
	if !res.HasErrors() {
		t.Fatal("expected diagnostics for malformed source")
	}
	if !strings.Contains(res.FormatDiagnostics(), "bad.as") {
		t.Fatalf("expected diagnostics to reference the source name, got %q", res.FormatDiagnostics())
	}
}

func TestCompileAllPreservesOrderAndRunsConcurrently(t *testing.T) {
	sess, err := New(WithWorkers(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sources := []Source{
		{Name: "a.as", Text: `int A() { return 1; }`},
		{Name: "b.as", Text: `int B() { return 2; }`},
		{Name: "c.as", Text: `int C() { return 3; }`},
	}
	results := sess.CompileAll(sources)
	if len(results) != len(sources) {
		t.Fatalf("expected %d results, got %d", len(sources), len(results))
	}
	for i, r := range results {
		if r.Name != sources[i].Name {
			t.Fatalf("result %d: expected name %q, got %q", i, sources[i].Name, r.Name)
		}
		if r.HasErrors() {
			t.Fatalf("result %d (%s): unexpected diagnostics: %s", i, r.Name, r.FormatDiagnostics())
		}
	}
}

func TestCompileAllUnitsDoNotShareGlobals(t *testing.T) {
	sess, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sources := []Source{
		{Name: "g1.as", Text: `int x = 1;`},
		{Name: "g2.as", Text: `int x = 2;`},
	}
	results := sess.CompileAll(sources)
	for _, r := range results {
		if r.HasErrors() {
			t.Fatalf("%s: unexpected diagnostics: %s", r.Name, r.FormatDiagnostics())
		}
		if r.Module.GlobalCount != 1 {
			t.Fatalf("%s: expected exactly one global, got %d", r.Name, r.Module.GlobalCount)
		}
	}
}

func TestWithoutStdlibSkipsStringMethods(t *testing.T) {
	sess, err := New(WithoutStdlib())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res := sess.Compile(Source{Name: "s.as", Text: `
		uint StrLen(string s) {
			return s.length();
		}
	`})
	if !res.HasErrors() {
		t.Fatal("expected an unknown-method diagnostic with the stdlib skipped")
	}
}

func TestStdlibStringMethodsCompile(t *testing.T) {
	sess, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res := sess.Compile(Source{Name: "s.as", Text: `
		uint StrLen(string s) {
			return s.length();
		}
	`})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", res.FormatDiagnostics())
	}
}

package ascript

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/parser"
	"github.com/cwbudde/ascript/internal/unit"
)

// Source is one Unit's worth of input to CompileAll: a name (used for
// the resulting Module and for diagnostic file names) and the
// AngelScript source text to parse and compile against it.
type Source struct {
	Name string
	Text string
}

// Result is one Source's outcome: either a compiled Module or a set
// of diagnostics explaining why compilation could not produce one.
// Module and Diagnostics are not mutually exclusive — a Unit keeps
// compiling past a function body that failed, so a Result can carry
// both a partially built Module and non-empty Diagnostics.
type Result struct {
	Name        string
	Module      *unit.Module
	Diagnostics []*diag.Error
}

// HasErrors reports whether this Source failed to parse or left any
// diagnostic behind during compilation.
func (r *Result) HasErrors() bool { return len(r.Diagnostics) > 0 }

func defaultWorkers() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// CompileAll compiles every Source concurrently against the Session's
// sealed FFI registry, with at most Session's configured worker count
// running at once, and returns one Result per Source in the same
// order they were given. The FFI registry is never written to by this
// call — it was sealed once in New — so no synchronization is needed
// beyond the worker pool's own bookkeeping.
func (s *Session) CompileAll(sources []Source) []Result {
	results := make([]Result, len(sources))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.compileOne(sources[i])
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// Compile compiles a single Source synchronously; it is CompileAll
// with one job and no worker-pool bookkeeping.
func (s *Session) Compile(src Source) Result {
	return s.compileOne(src)
}

func (s *Session) compileOne(src Source) Result {
	script, bag := parser.Parse(src.Text)
	if bag.HasErrors() {
		return Result{Name: src.Name, Diagnostics: withSource(bag.Sorted(), src)}
	}

	u := s.newUnit(src.Name)
	mod := u.Compile(script)
	return Result{
		Name:        src.Name,
		Module:      mod,
		Diagnostics: withSource(u.Diagnostics(), src),
	}
}

func withSource(errs []*diag.Error, src Source) []*diag.Error {
	for _, e := range errs {
		e.WithSource(src.Name, src.Text)
	}
	return errs
}

// FormatDiagnostics renders every diagnostic in r, one per block, with
// ANSI color, ready to print to a terminal.
func (r *Result) FormatDiagnostics() string {
	return r.FormatDiagnosticsColor(true)
}

// FormatDiagnosticsColor renders every diagnostic in r, one per block,
// ready to print to a terminal; color controls whether the rendering
// carries ANSI escapes, for a host whose terminal (or config) doesn't
// want them.
func (r *Result) FormatDiagnosticsColor(color bool) string {
	if len(r.Diagnostics) == 0 {
		return ""
	}
	out := fmt.Sprintf("%s: compilation failed with %d error(s):\n\n", r.Name, len(r.Diagnostics))
	for i, e := range r.Diagnostics {
		out += e.Format(color)
		if i < len(r.Diagnostics)-1 {
			out += "\n\n"
		}
	}
	return out
}

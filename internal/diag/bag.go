package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Bag accumulates diagnostics across a parse or a Unit's compilation
// passes. The parser appends every syntax error and keeps going. The
// expression and statement compilers do not use a Bag: they stop a
// function at its first error and return it, and internal/unit records
// that error in its Bag and goes on with the next function.
type Bag struct {
	errors []*Error
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(e *Error) { b.errors = append(b.errors, e) }

// HasErrors reports whether any diagnostic has been recorded.
func (b *Bag) HasErrors() bool { return len(b.errors) > 0 }

// Len reports how many diagnostics have been recorded.
func (b *Bag) Len() int { return len(b.errors) }

// All returns every diagnostic in recorded order.
func (b *Bag) All() []*Error { return b.errors }

// Sorted returns diagnostics ordered by file, then by natural (numeric
// aware) order of "line:col" so diagnostics from functions compiled in
// any order still print top-to-bottom, file-by-file.
func (b *Bag) Sorted() []*Error {
	out := make([]*Error, len(b.errors))
	copy(out, b.errors)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return natural.Less(out[i].File, out[j].File)
		}
		return natural.Less(out[i].Span.String(), out[j].Span.String())
	})
	return out
}

// String renders every diagnostic, one per line block, in sorted order.
func (b *Bag) String() string {
	if len(b.errors) == 0 {
		return ""
	}
	var sb strings.Builder
	sorted := b.Sorted()
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(sorted))
	for i, e := range sorted {
		sb.WriteString(e.Format(false))
		if i < len(sorted)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

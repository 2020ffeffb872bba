// Package diag renders compiler diagnostics with source context, and
// accumulates them across compilation passes.
//
// It formats errors with file:line:column headers, a source snippet, and
// a caret pointed at the offending column, and adds a stable,
// natural-sorted view over an accumulated error set so that diagnostics
// from multiple concurrently-compiling Units print in a sensible order.
package diag

import "fmt"

// Span locates a node in source text: a starting line and column (both
// 1-based) plus a length in runes. Every AST node carries one.
type Span struct {
	Line int
	Col  int
	Len  int
}

// String renders the span as "line:col".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Col)
}

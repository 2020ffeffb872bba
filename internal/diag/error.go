package diag

import (
	"fmt"
	"strings"
)

// Error is a single compile-time diagnostic: a kind, the span that
// triggered it, a human message, and — for AmbiguousOverload — the
// signatures of the tied candidates.
type Error struct {
	Kind       Kind
	Message    string
	File       string
	Source     string
	Span       Span
	Candidates []string
}

// New creates a diagnostic with no source snippet attached.
func New(kind Kind, span Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// WithSource attaches the originating file name and full source text, so
// Format can render a caret-annotated snippet.
func (e *Error) WithSource(file, source string) *Error {
	e.File = file
	e.Source = source
	return e
}

// WithCandidates records the tied overload signatures for an
// AmbiguousOverload diagnostic.
func (e *Error) WithCandidates(sigs ...string) *Error {
	e.Candidates = sigs
	return e
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Format(false) }

// Format renders the diagnostic with a file:line:col header, a source
// snippet with a caret under the offending column, and — when color is
// true — ANSI highlighting.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s: %s:%d:%d: %s\n", e.Kind, e.File, e.Span.Line, e.Span.Col, e.Message)
	} else {
		fmt.Fprintf(&sb, "%s: %d:%d: %s\n", e.Kind, e.Span.Line, e.Span.Col, e.Message)
	}

	if line := e.sourceLine(e.Span.Line); line != "" {
		lineNum := fmt.Sprintf("%4d | ", e.Span.Line)
		sb.WriteString(lineNum)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNum)+e.Span.Col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if len(e.Candidates) > 0 {
		sb.WriteString("  candidates:\n")
		for _, c := range e.Candidates {
			sb.WriteString("    ")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (e *Error) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Package ast defines the Abstract Syntax Tree node types the compiler
// core consumes. The lexer and parser that produce this tree are
// out-of-scope external collaborators described only by this
// interface; no package under internal/compiler, internal/resolve,
// internal/overload, internal/operators, internal/unit, or
// internal/ffi imports the lexer or parser — only this package.
//
// Every node carries a Span for error reporting. The core walks the
// tree but never mutates it, so node fields are unexported-free plain
// data rather than anything requiring a visitor abstraction —
// compiler packages match on concrete node types directly via
// exhaustive type switches, not virtual dispatch.
package ast

import "github.com/cwbudde/ascript/internal/diag"

// Node is the base interface every AST node implements.
type Node interface {
	Span() diag.Span
	String() string
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action without producing a value.
type Stmt interface {
	Node
	stmtNode()
}

// Item is a top-level or namespace-level declaration.
type Item interface {
	Node
	itemNode()
}

// Script is the root node: a sequence of top-level items.
type Script struct {
	Items []Item
	Sp    diag.Span
}

func (s *Script) Span() diag.Span { return s.Sp }
func (s *Script) String() string  { return "<script>" }

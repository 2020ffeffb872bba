package ast

import (
	"strings"

	"github.com/cwbudde/ascript/internal/diag"
)

// SuffixKind distinguishes the two type-expression suffixes the grammar
// allows: an array suffix `[]`, and a handle suffix `@` which
// itself carries whether it is `@ const`.
type SuffixKind int

const (
	SuffixArray SuffixKind = iota
	SuffixHandle
)

// TypeSuffix is one `[]` or `@[ const]` suffix, applied left-to-right.
type TypeSuffix struct {
	Kind    SuffixKind
	IsConst bool // only meaningful for SuffixHandle: `@ const`
}

// TypeExpr is the AST's syntactic representation of a type:
// an optional leading const, an optional scope chain, a base identifier,
// optional template arguments, and an ordered suffix list. The type
// resolver (internal/resolve) is what turns this into a DataType; this
// node never does.
type TypeExpr struct {
	Scope        []string // A::B::C -> ["A","B"], Base = "C"
	Base         string
	TemplateArgs []*TypeExpr
	Suffixes     []TypeSuffix
	Const        bool
	RefModeText  string // "", "in", "out", "inout" — attached textually by the grammar
	Sp           diag.Span
}

func (t *TypeExpr) Span() diag.Span { return t.Sp }

func (t *TypeExpr) String() string {
	var sb strings.Builder
	if t.Const {
		sb.WriteString("const ")
	}
	for _, s := range t.Scope {
		sb.WriteString(s)
		sb.WriteString("::")
	}
	sb.WriteString(t.Base)
	if len(t.TemplateArgs) > 0 {
		sb.WriteString("<")
		for i, a := range t.TemplateArgs {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(">")
	}
	for _, suf := range t.Suffixes {
		switch suf.Kind {
		case SuffixArray:
			sb.WriteString("[]")
		case SuffixHandle:
			sb.WriteString("@")
			if suf.IsConst {
				sb.WriteString(" const")
			}
		}
	}
	if t.RefModeText != "" {
		sb.WriteString(" &")
		sb.WriteString(t.RefModeText)
	}
	return sb.String()
}

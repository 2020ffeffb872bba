package ast

import "github.com/cwbudde/ascript/internal/diag"

func (*BlockStmt) stmtNode()    {}
func (*VarDeclStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()     {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()      {}
func (*SwitchStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}

// BlockStmt is `{ ... }`: a lexical scope.
type BlockStmt struct {
	Stmts []Stmt
	Sp    diag.Span
}

func (b *BlockStmt) Span() diag.Span { return b.Sp }
func (b *BlockStmt) String() string  { return "{...}" }

// VarDeclStmt declares one or more locals of a declared type, each with
// an optional initializer.
type VarDeclStmt struct {
	Type    *TypeExpr
	Names   []string
	Inits   []Expr // Inits[i] is nil when Names[i] has no initializer
	IsConst bool
	Sp      diag.Span
}

func (v *VarDeclStmt) Span() diag.Span { return v.Sp }
func (v *VarDeclStmt) String() string  { return "var " + v.Type.String() }

// ExprStmt is a bare expression used as a statement (e.g. a call).
type ExprStmt struct {
	X  Expr
	Sp diag.Span
}

func (e *ExprStmt) Span() diag.Span { return e.Sp }
func (e *ExprStmt) String() string  { return e.X.String() }

// IfStmt is `if (cond) then else opt-else`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
	Sp   diag.Span
}

func (i *IfStmt) Span() diag.Span { return i.Sp }
func (i *IfStmt) String() string  { return "if (...)" }

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Sp   diag.Span
}

func (w *WhileStmt) Span() diag.Span { return w.Sp }
func (w *WhileStmt) String() string  { return "while (...)" }

// DoWhileStmt is `do body while (cond);`, symmetric to WhileStmt except
// the condition is checked at the end.
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
	Sp   diag.Span
}

func (d *DoWhileStmt) Span() diag.Span { return d.Sp }
func (d *DoWhileStmt) String() string  { return "do ... while (...)" }

// ForStmt is a C-style for loop. Init may be a VarDeclStmt or an
// ExprStmt; Cond nil means an infinite loop; Update runs each iteration
// before re-testing Cond, and is also the `continue` target.
type ForStmt struct {
	Init   Stmt
	Cond   Expr
	Update []Expr
	Body   Stmt
	Sp     diag.Span
}

func (f *ForStmt) Span() diag.Span { return f.Sp }
func (f *ForStmt) String() string  { return "for (...)" }

// SwitchCase is one `case expr: stmts` or, when IsDefault, the default
// arm. Falls through to the next case unless terminated by an
// explicit break.
type SwitchCase struct {
	Expr      Expr // nil when IsDefault
	IsDefault bool
	Stmts     []Stmt
}

// SwitchStmt is `switch (expr) { cases }`.
type SwitchStmt struct {
	Subject Expr
	Cases   []SwitchCase
	Sp      diag.Span
}

func (s *SwitchStmt) Span() diag.Span { return s.Sp }
func (s *SwitchStmt) String() string  { return "switch (...)" }

// BreakStmt is `break;`.
type BreakStmt struct{ Sp diag.Span }

func (b *BreakStmt) Span() diag.Span { return b.Sp }
func (b *BreakStmt) String() string  { return "break" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Sp diag.Span }

func (c *ContinueStmt) Span() diag.Span { return c.Sp }
func (c *ContinueStmt) String() string  { return "continue" }

// ReturnStmt is `return;` or `return expr;`.
type ReturnStmt struct {
	Value Expr // nil for a void return
	Sp    diag.Span
}

func (r *ReturnStmt) Span() diag.Span { return r.Sp }
func (r *ReturnStmt) String() string  { return "return" }

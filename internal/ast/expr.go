package ast

import "github.com/cwbudde/ascript/internal/diag"

func (*Identifier) exprNode()       {}
func (*IntLiteral) exprNode()       {}
func (*FloatLiteral) exprNode()     {}
func (*StringLiteral) exprNode()    {}
func (*BoolLiteral) exprNode()      {}
func (*NullLiteral) exprNode()      {}
func (*BinaryExpr) exprNode()       {}
func (*UnaryExpr) exprNode()        {}
func (*AssignExpr) exprNode()       {}
func (*MemberExpr) exprNode()       {}
func (*IndexExpr) exprNode()        {}
func (*CallExpr) exprNode()         {}
func (*ConstructExpr) exprNode()    {}
func (*CastExpr) exprNode()         {}
func (*ConvExpr) exprNode()         {}
func (*SuperExpr) exprNode()        {}
func (*TernaryExpr) exprNode()      {}
func (*LambdaExpr) exprNode()       {}
func (*PostfixExpr) exprNode()      {}
func (*ThisExpr) exprNode()         {}

// Identifier is a bare name reference, resolved by the expression
// compiler in priority order: local, implicit this member, enclosing
// scope/global, imported namespace.
type Identifier struct {
	Name string
	Sp   diag.Span
}

func (i *Identifier) Span() diag.Span { return i.Sp }
func (i *Identifier) String() string  { return i.Name }

// ThisExpr is the implicit receiver inside a method body.
type ThisExpr struct{ Sp diag.Span }

func (t *ThisExpr) Span() diag.Span { return t.Sp }
func (t *ThisExpr) String() string  { return "this" }

// IntLiteral is an integer literal.
type IntLiteral struct {
	Value int64
	Sp    diag.Span
}

func (l *IntLiteral) Span() diag.Span { return l.Sp }
func (l *IntLiteral) String() string  { return "<int>" }

// FloatLiteral is a floating-point literal. IsSingle distinguishes an
// `f`-suffixed float literal (single precision) from a plain double.
type FloatLiteral struct {
	Value    float64
	IsSingle bool
	Sp       diag.Span
}

func (l *FloatLiteral) Span() diag.Span { return l.Sp }
func (l *FloatLiteral) String() string  { return "<float>" }

// StringLiteral is a string literal; its factory is invoked at
// construction time.
type StringLiteral struct {
	Value string
	Sp    diag.Span
}

func (l *StringLiteral) Span() diag.Span { return l.Sp }
func (l *StringLiteral) String() string  { return "<string>" }

// BoolLiteral is a `true`/`false` literal.
type BoolLiteral struct {
	Value bool
	Sp    diag.Span
}

func (l *BoolLiteral) Span() diag.Span { return l.Sp }
func (l *BoolLiteral) String() string  { return "<bool>" }

// NullLiteral is the `null` literal, which converts implicitly to any
// handle type.
type NullLiteral struct{ Sp diag.Span }

func (l *NullLiteral) Span() diag.Span { return l.Sp }
func (l *NullLiteral) String() string  { return "null" }

// BinaryExpr is a binary operator application, resolved by
// internal/operators.
type BinaryExpr struct {
	Left, Right Expr
	Op          string
	Sp          diag.Span
}

func (b *BinaryExpr) Span() diag.Span { return b.Sp }
func (b *BinaryExpr) String() string  { return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")" }

// UnaryExpr is a prefix unary operator application (`-x`, `!x`, `~x`,
// `++x`, `--x`).
type UnaryExpr struct {
	Operand Expr
	Op      string
	Sp      diag.Span
}

func (u *UnaryExpr) Span() diag.Span { return u.Sp }
func (u *UnaryExpr) String() string  { return u.Op + u.Operand.String() }

// AssignExpr is `=` or a compound assignment (`+=`, `-=`, ...), resolved
// to `opAssign`/`opAddAssign`/... or "compute then assign".
type AssignExpr struct {
	Target Expr
	Value  Expr
	Op     string // "=", "+=", "-=", ...
	Sp     diag.Span
}

func (a *AssignExpr) Span() diag.Span { return a.Sp }
func (a *AssignExpr) String() string  { return a.Target.String() + " " + a.Op + " " + a.Value.String() }

// MemberExpr is `o.x`: field or method access on a receiver.
type MemberExpr struct {
	Receiver Expr
	Name     string
	Sp       diag.Span
}

func (m *MemberExpr) Span() diag.Span { return m.Sp }
func (m *MemberExpr) String() string  { return m.Receiver.String() + "." + m.Name }

// IndexExpr is `o[i]`: array indexing or an `opIndex` dispatch.
type IndexExpr struct {
	Receiver Expr
	Index    Expr
	Sp       diag.Span
}

func (ix *IndexExpr) Span() diag.Span { return ix.Sp }
func (ix *IndexExpr) String() string  { return ix.Receiver.String() + "[" + ix.Index.String() + "]" }

// NamedArg is one `name: value` argument in a call that uses named
// arguments.
type NamedArg struct {
	Name  string
	Value Expr
}

// CallExpr is a function, method, or funcdef-value call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Named  []NamedArg
	Sp     diag.Span
}

func (c *CallExpr) Span() diag.Span { return c.Sp }
func (c *CallExpr) String() string  { return c.Callee.String() + "(...)" }

// ConstructExpr is `T(args)`: a value-type constructor call or a
// reference-type factory call, disambiguated by the resolved type's
// kind during compilation.
type ConstructExpr struct {
	Type *TypeExpr
	Args []Expr
	Sp   diag.Span
}

func (c *ConstructExpr) Span() diag.Span { return c.Sp }
func (c *ConstructExpr) String() string  { return c.Type.String() + "(...)" }

// CastExpr is `cast<T>(e)`: handle up/downcast and opCast/opImplCast.
type CastExpr struct {
	Type *TypeExpr
	Operand Expr
	Sp      diag.Span
}

func (c *CastExpr) Span() diag.Span { return c.Sp }
func (c *CastExpr) String() string  { return "cast<" + c.Type.String() + ">(" + c.Operand.String() + ")" }

// ConvExpr is `T(e)`: value-conversion syntax (opConv/opImplConv/
// converting-constructor/primitive conversions), distinct from CastExpr.
type ConvExpr struct {
	Type    *TypeExpr
	Operand Expr
	Sp      diag.Span
}

func (c *ConvExpr) Span() diag.Span { return c.Sp }
func (c *ConvExpr) String() string  { return c.Type.String() + "(" + c.Operand.String() + ")" }

// SuperExpr is `super(args)`, legal only in a constructor of a class
// with a base.
type SuperExpr struct {
	Args []Expr
	Sp   diag.Span
}

func (s *SuperExpr) Span() diag.Span { return s.Sp }
func (s *SuperExpr) String() string  { return "super(...)" }

// TernaryExpr is `c ? a : b`.
type TernaryExpr struct {
	Cond, Then, Else Expr
	Sp               diag.Span
}

func (t *TernaryExpr) Span() diag.Span { return t.Sp }
func (t *TernaryExpr) String() string  { return t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String() }

// LambdaParam is one parameter of a lambda; Type may be nil when the
// parameter type is inferred from an expected funcdef target.
type LambdaParam struct {
	Name string
	Type *TypeExpr
}

// LambdaExpr is `function(params) { body }`. It captures nothing from
// the enclosing scope: body compilation runs under
// a fresh, isolated scope.
type LambdaExpr struct {
	Params []LambdaParam
	Return *TypeExpr // nil when inferred from an expected funcdef
	Body   *BlockStmt
	Sp     diag.Span
}

func (l *LambdaExpr) Span() diag.Span { return l.Sp }
func (l *LambdaExpr) String() string  { return "function(...) {...}" }

// PostfixExpr is `x++`/`x--`.
type PostfixExpr struct {
	Operand Expr
	Op      string
	Sp      diag.Span
}

func (p *PostfixExpr) Span() diag.Span { return p.Sp }
func (p *PostfixExpr) String() string  { return p.Operand.String() + p.Op }

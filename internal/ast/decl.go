package ast

import "github.com/cwbudde/ascript/internal/diag"

func (*FunctionDecl) itemNode()  {}
func (*ClassDecl) itemNode()     {}
func (*InterfaceDecl) itemNode() {}
func (*EnumDecl) itemNode()      {}
func (*FuncdefDecl) itemNode()   {}
func (*GlobalVarDecl) itemNode() {}
func (*NamespaceDecl) itemNode() {}
func (*TypedefDecl) itemNode()   {}
func (*ImportDecl) itemNode()    {}
func (*MixinDecl) itemNode()     {}

// Param is one function or method parameter, including its reference
// mode and optional default value.
type Param struct {
	Name    string
	Type    *TypeExpr
	Default Expr // nil when the parameter has no default
}

// FuncAttrs carries the modifiers the grammar allows on a method
// declaration; most are meaningless on a free function and ignored by
// the class compiler there.
type FuncAttrs struct {
	IsConst     bool // const method: implicit this is `const T@`
	IsVirtual   bool
	IsOverride  bool
	IsFinal     bool
	IsExplicit  bool
	IsPrivate   bool
	IsProtected bool
}

// FunctionDecl is a free function, a method (Owner != ""), or a
// constructor (IsConstructor, Name == Owner's class name).
type FunctionDecl struct {
	Name          string
	Owner         string // enclosing class/interface name, "" for free functions
	IsConstructor bool
	Return        *TypeExpr // nil for a constructor
	Params        []Param
	Body          *BlockStmt // nil for an interface method signature
	Attrs         FuncAttrs
	Sp            diag.Span
}

func (f *FunctionDecl) Span() diag.Span { return f.Sp }
func (f *FunctionDecl) String() string  { return f.Name + "(...)" }

// FieldDecl is one class instance field.
type FieldDecl struct {
	Name    string
	Type    *TypeExpr
	Init    Expr // nil when uninitialized
	Private bool
	IsConst bool
	Sp      diag.Span
}

func (d *FieldDecl) Span() diag.Span { return d.Sp }
func (d *FieldDecl) String() string  { return d.Name }

// ClassDecl is a class declaration: fields, methods (held as
// FunctionDecl items with Owner set), a single base class, and any
// implemented interfaces (; multiple inheritance of state is a
// non-goal, so Base is singular).
type ClassDecl struct {
	Name       string
	Base       string   // "" when no explicit base
	Interfaces []string
	Fields     []*FieldDecl
	Methods    []*FunctionDecl
	IsFinal    bool
	Sp         diag.Span
}

func (c *ClassDecl) Span() diag.Span { return c.Sp }
func (c *ClassDecl) String() string  { return "class " + c.Name }

// InterfaceMethod is one method signature within an interface body.
type InterfaceMethod struct {
	Name   string
	Return *TypeExpr
	Params []Param
	Sp     diag.Span
}

// InterfaceDecl is an interface declaration: method signatures only,
// plus the interfaces it extends.
type InterfaceDecl struct {
	Name    string
	Extends []string
	Methods []InterfaceMethod
	Sp      diag.Span
}

func (i *InterfaceDecl) Span() diag.Span { return i.Sp }
func (i *InterfaceDecl) String() string  { return "interface " + i.Name }

// EnumMember is one `Name` or `Name = value` entry; ordering is
// significant when Value is omitted (auto-increment from the previous
// member, or zero for the first).
type EnumMember struct {
	Name  string
	Value *int64 // nil when implicit
}

// EnumDecl is an enum declaration, backed by int32.
type EnumDecl struct {
	Name    string
	Members []EnumMember
	Sp      diag.Span
}

func (e *EnumDecl) Span() diag.Span { return e.Sp }
func (e *EnumDecl) String() string  { return "enum " + e.Name }

// FuncdefDecl declares a named function-pointer type, the target type
// of a LambdaExpr or a bound method reference.
type FuncdefDecl struct {
	Name   string
	Return *TypeExpr
	Params []Param
	Sp     diag.Span
}

func (f *FuncdefDecl) Span() diag.Span { return f.Sp }
func (f *FuncdefDecl) String() string  { return "funcdef " + f.Name }

// GlobalVarDecl is a script-level variable declaration.
type GlobalVarDecl struct {
	Type    *TypeExpr
	Name    string
	Init    Expr // nil when uninitialized
	IsConst bool
	Sp      diag.Span
}

func (g *GlobalVarDecl) Span() diag.Span { return g.Sp }
func (g *GlobalVarDecl) String() string  { return g.Name }

// NamespaceDecl groups a sequence of items under a scope name; nesting
// is represented by nested NamespaceDecl items rather than a flattened
// path.
type NamespaceDecl struct {
	Name  string
	Items []Item
	Sp    diag.Span
}

func (n *NamespaceDecl) Span() diag.Span { return n.Sp }
func (n *NamespaceDecl) String() string  { return "namespace " + n.Name }

// TypedefDecl aliases a primitive type to a new name (AngelScript's
// `typedef float real;` form), distinct from FuncdefDecl.
type TypedefDecl struct {
	Name string
	Type *TypeExpr
	Sp   diag.Span
}

func (t *TypedefDecl) Span() diag.Span { return t.Sp }
func (t *TypedefDecl) String() string  { return "typedef " + t.Name }

// ImportDecl pulls a funcdef-typed symbol from another module at link
// time; resolution is internal/unit's responsibility, not the parser's.
type ImportDecl struct {
	FuncdefName string
	Symbol      string
	FromModule  string
	Sp          diag.Span
}

func (i *ImportDecl) Span() diag.Span { return i.Sp }
func (i *ImportDecl) String() string  { return "import " + i.Symbol }

// MixinDecl declares a reusable set of fields/methods. Unit registration
// records each mixin by name only; its members are not copied into any
// class.
type MixinDecl struct {
	Name    string
	Fields  []*FieldDecl
	Methods []*FunctionDecl
	Sp      diag.Span
}

func (m *MixinDecl) Span() diag.Span { return m.Sp }
func (m *MixinDecl) String() string  { return "mixin " + m.Name }

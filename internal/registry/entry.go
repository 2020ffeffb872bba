// Package registry holds the symbol data every later compiler stage
// looks up by hash: class/interface/enum/funcdef type entries, function
// definitions, and the name indices that map a qualified name to the
// hashes registered under it.
//
// A Registry is one layer. The FFI layer is built once from the host
// and never mutated again; each Unit owns a second layer on top for
// its own script-declared types and functions. Layering two Registry
// values and falling through from Unit to FFI is internal/unit's job,
// not this package's — a bare Registry knows nothing about layering.
package registry

import (
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/typesys"
)

// TypeEntry is implemented by every kind of type-level entry the
// registry holds. Lookups that don't care about kind return this
// interface; code that does type-asserts to the concrete kind.
type TypeEntry interface {
	TypeHash() ident.TypeHash
	TypeName() string
	QualifiedName() string
}

// ClassKind distinguishes value types, which are copied on assignment
// and have no handle form, from reference types, which are always
// accessed through a handle or a factory-constructed temporary.
type ClassKind byte

const (
	ClassValue ClassKind = iota
	ClassReference
)

// TypeOrigin records whether a type entry came from the host (FFI) or
// was compiled from script source.
type TypeOrigin byte

const (
	OriginFFI TypeOrigin = iota
	OriginScript
)

// FieldEntry is one data member of a ClassEntry.
type FieldEntry struct {
	Name string
	Type typesys.DataType
}

// ClassEntry describes a class or struct type: its fields, the method
// hashes it owns directly (inherited methods resolve through Base, never
// duplicated here), its behaviors, and its position in the inheritance
// DAG.
type ClassEntry struct {
	Hash           ident.TypeHash
	Name           string
	Qualified      string
	Kind           ClassKind
	Fields         []FieldEntry
	Methods        []ident.FunctionHash
	Behaviors      TypeBehaviors
	Base           ident.TypeHash // 0 when the class has no base
	Interfaces     []ident.TypeHash
	TemplateParams []string
	Origin         TypeOrigin
}

func (c *ClassEntry) TypeHash() ident.TypeHash { return c.Hash }
func (c *ClassEntry) TypeName() string         { return c.Name }
func (c *ClassEntry) QualifiedName() string    { return c.Qualified }

// InterfaceMethod is one signature an InterfaceEntry requires
// implementers to provide.
type InterfaceMethod struct {
	Name   string
	Params []typesys.DataType
	Return typesys.DataType
}

// InterfaceEntry describes an interface's method signatures. It has no
// fields, no behaviors, and no backing storage of its own.
type InterfaceEntry struct {
	Hash      ident.TypeHash
	Name      string
	Qualified string
	Methods   []InterfaceMethod
}

func (i *InterfaceEntry) TypeHash() ident.TypeHash { return i.Hash }
func (i *InterfaceEntry) TypeName() string         { return i.Name }
func (i *InterfaceEntry) QualifiedName() string    { return i.Qualified }

// EnumValue is one ordered (name, value) member of an EnumEntry.
type EnumValue struct {
	Name  string
	Value int64
}

// EnumEntry describes an enum: its backing integer primitive and its
// ordered members.
type EnumEntry struct {
	Hash      ident.TypeHash
	Name      string
	Qualified string
	BaseHash  ident.TypeHash
	Values    []EnumValue
}

func (e *EnumEntry) TypeHash() ident.TypeHash { return e.Hash }
func (e *EnumEntry) TypeName() string         { return e.Name }
func (e *EnumEntry) QualifiedName() string    { return e.Qualified }

// FuncdefEntry describes a named function-pointer type: a parameter
// list and return type with no hash of a backing function, since a
// funcdef is a type, not a callable.
type FuncdefEntry struct {
	Hash      ident.TypeHash
	Name      string
	Qualified string
	Params    []typesys.DataType
	Return    typesys.DataType
}

func (f *FuncdefEntry) TypeHash() ident.TypeHash { return f.Hash }
func (f *FuncdefEntry) TypeName() string         { return f.Name }
func (f *FuncdefEntry) QualifiedName() string    { return f.Qualified }

// ParamEntry is one parameter of a FunctionDef.
type ParamEntry struct {
	Name       string
	Type       typesys.DataType
	HasDefault bool
}

// FunctionTraits are the boolean qualifiers a FunctionDef may carry.
type FunctionTraits struct {
	IsConst       bool
	IsConstructor bool
	IsDestructor  bool
	IsExplicit    bool
	IsVirtual     bool
	IsFinal       bool
	IsOverride    bool
	IsTemplate    bool
}

// Visibility is a method's access level; free functions are always
// Public.
type Visibility byte

const (
	Public Visibility = iota
	Protected
	Private
)

// ScriptGeneric is the generic-calling-convention context a native
// function receives at call time: positional argument access, the
// receiver handle for methods, and a single return-value setter. The
// VM that constructs one and invokes NativeFunc is out of this
// package's scope; this type only fixes the contract FFI entries are
// built against.
type ScriptGeneric struct {
	args     []any
	receiver any
	ret      any
}

// NewScriptGeneric builds a generic-call context over args, with
// receiver set for method calls (nil for free functions).
func NewScriptGeneric(receiver any, args []any) *ScriptGeneric {
	return &ScriptGeneric{receiver: receiver, args: args}
}

// Arg returns the i-th positional argument.
func (g *ScriptGeneric) Arg(i int) any { return g.args[i] }

// ArgCount returns the number of positional arguments.
func (g *ScriptGeneric) ArgCount() int { return len(g.args) }

// ReceiverHandle returns the method receiver, or nil for a free
// function call.
func (g *ScriptGeneric) ReceiverHandle() any { return g.receiver }

// SetReturn records the call's return value.
func (g *ScriptGeneric) SetReturn(v any) { g.ret = v }

// Return reads back the value SetReturn recorded.
func (g *ScriptGeneric) Return() any { return g.ret }

// NativeFunc is the FFI-side call target for a host-registered
// function.
type NativeFunc func(g *ScriptGeneric) error

// FunctionDef is the full definition behind a FunctionHash: its
// signature, owning class (if a method), traits, visibility, and
// template parameters. Exactly one of NativeBody or Chunk is set: FFI
// functions carry a native body pointer, script functions carry a
// bytecode chunk built by the function compiler.
type FunctionDef struct {
	Hash           ident.FunctionHash
	Name           string
	Params         []ParamEntry
	Return         typesys.DataType
	OwnerClass     ident.TypeHash // 0 for free functions
	Traits         FunctionTraits
	Visibility     Visibility
	TemplateParams []ident.TypeHash

	NativeBody NativeFunc
	Chunk      *bytecode.Chunk
}

// IsNative reports whether this definition is backed by a host
// function rather than a compiled chunk.
func (f *FunctionDef) IsNative() bool { return f.NativeBody != nil }

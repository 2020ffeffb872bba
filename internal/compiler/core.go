// Package compiler turns typed AST bodies into bytecode: one Compiler
// compiles a single function, method, constructor, or lambda body,
// resolving names against one registry layer and dispatching every
// operator through internal/operators. Expression compilation lives in
// expr.go, statement compilation in stmt.go, and class/constructor
// orchestration in class.go; all three share the state declared here.
package compiler

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

// globalSlot is one script-level variable's storage index and declared
// type.
type globalSlot struct {
	typ   typesys.DataType
	index uint16
}

// Globals tracks script-level variable declarations shared across every
// function compiled within one unit. A single Globals value is built
// once per compiled unit and passed to every Compiler constructed
// against it.
type Globals struct {
	order []string
	slots map[string]globalSlot
}

// NewGlobals creates an empty global-variable table.
func NewGlobals() *Globals {
	return &Globals{slots: make(map[string]globalSlot)}
}

// Declare assigns name the next free global slot, or returns its
// existing slot if already declared.
func (g *Globals) Declare(name string, typ typesys.DataType) uint16 {
	if s, ok := g.slots[name]; ok {
		return s.index
	}
	idx := uint16(len(g.order))
	g.order = append(g.order, name)
	g.slots[name] = globalSlot{typ: typ, index: idx}
	return idx
}

// Resolve looks up a global variable by name.
func (g *Globals) Resolve(name string) (typesys.DataType, uint16, bool) {
	s, ok := g.slots[name]
	return s.typ, s.index, ok
}

// Count returns the number of declared globals.
func (g *Globals) Count() int { return len(g.order) }

type local struct {
	name  string
	typ   typesys.DataType
	depth int
	slot  uint16
}

// Compiler compiles one function body into a bytecode.Chunk. A fresh
// Compiler is created per function; Globals and the registry are shared
// across every Compiler in a unit.
type Compiler struct {
	Registry  *registry.Registry
	Resolver  *resolve.Resolver
	Globals   *Globals
	Namespace registry.Namespace

	emitter *bytecode.Emitter

	// Self is the zero DataType for a free function; for a method,
	// constructor, or lambda body it is the type `this` resolves to.
	Self       typesys.DataType
	OwnerClass *registry.ClassEntry

	locals       []local
	localSlotLog []local
	scopeDepth   int
	nextSlot     uint16
	maxSlot      uint16

	returnType  typesys.DataType
	sawSuper    bool
	lambdaCount int
}

// New creates a Compiler sharing reg, resolver, and globals; Self and
// OwnerClass default to a free-function context and are overridden by
// CompileMethod, which compiles constructors as well as methods.
func New(reg *registry.Registry, resolver *resolve.Resolver, globals *Globals) *Compiler {
	return &Compiler{Registry: reg, Resolver: resolver, Globals: globals}
}

// CompileFunction compiles a free function body into a chunk.
func (c *Compiler) CompileFunction(name string, params []ast.Param, paramTypes []typesys.DataType, ret typesys.DataType, body *ast.BlockStmt) (*bytecode.Chunk, error) {
	return c.compileBody(name, params, paramTypes, ret, body, typesys.DataType{}, nil)
}

// CompileMethod compiles a non-constructor method body, with self bound
// to the owning class's `this` type.
func (c *Compiler) CompileMethod(name string, params []ast.Param, paramTypes []typesys.DataType, ret typesys.DataType, body *ast.BlockStmt, self typesys.DataType, owner *registry.ClassEntry) (*bytecode.Chunk, error) {
	return c.compileBody(name, params, paramTypes, ret, body, self, owner)
}

func (c *Compiler) compileBody(name string, params []ast.Param, paramTypes []typesys.DataType, ret typesys.DataType, body *ast.BlockStmt, self typesys.DataType, owner *registry.ClassEntry) (*bytecode.Chunk, error) {
	c.emitter = bytecode.NewEmitter(name)
	c.Self = self
	c.OwnerClass = owner
	c.returnType = ret
	c.sawSuper = false
	c.locals = nil
	c.localSlotLog = nil
	c.scopeDepth = 0
	c.nextSlot = 0
	c.maxSlot = 0

	for i, p := range params {
		if _, err := c.declareLocal(p.Name, paramTypes[i], p.Type); err != nil {
			return nil, err
		}
	}

	if err := c.compileBlock(body); err != nil {
		return nil, err
	}

	c.ensureReturn(lastLine(body))

	chunk := c.emitter.Chunk()
	chunk.FrameSize = int(c.maxSlot)
	for _, l := range c.localSlotLog {
		chunk.Locals = append(chunk.Locals, bytecode.LocalSlot{Name: l.name, Hash: uint64(l.typ.Hash)})
	}
	return chunk, nil
}

func lastLine(body *ast.BlockStmt) int {
	if body == nil {
		return 0
	}
	return body.Span().Line
}

func (c *Compiler) ensureReturn(line int) {
	if c.returnType.IsVoid() {
		c.emitter.SetLine(line)
		c.emitter.EmitSimple(bytecode.OpReturnVoid)
	}
	// A non-void function gets no fallback return here, and nothing
	// checks that every path of its body ends in a return statement:
	// diag.MissingReturn is never reported.
}

func (c *Compiler) beginScope() { c.scopeDepth++ }

func (c *Compiler) endScope() {
	if c.scopeDepth == 0 {
		return
	}
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth == c.scopeDepth {
		c.locals = c.locals[:len(c.locals)-1]
	}
	c.scopeDepth--
}

func (c *Compiler) declareLocal(name string, typ typesys.DataType, node ast.Node) (uint16, error) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].depth != c.scopeDepth {
			break
		}
		if c.locals[i].name == name {
			return 0, diag.New(diag.DuplicateDeclaration, spanOf(node), "duplicate variable %q in current scope", name)
		}
	}
	slot := c.nextSlot
	c.nextSlot++
	if slot+1 > c.maxSlot {
		c.maxSlot = slot + 1
	}
	c.locals = append(c.locals, local{name: name, typ: typ, depth: c.scopeDepth, slot: slot})
	c.localSlotLog = append(c.localSlotLog, local{name: name, typ: typ, slot: slot})
	return slot, nil
}

func (c *Compiler) resolveLocal(name string) (local, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return c.locals[i], true
		}
	}
	return local{}, false
}

func spanOf(n ast.Node) diag.Span {
	if n == nil {
		return diag.Span{}
	}
	return n.Span()
}

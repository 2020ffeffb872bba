// Package unit orchestrates an independent compilation target against
// a shared, immutable FFI registry layer: it declares
// every type and signature a script introduces, compiles every
// function and method body, and assembles the resulting Module
// artifact the host links against.
//
// A Unit owns its own registry.Registry layer, seeded at construction
// from the FFI layer so that resolve.Resolver and compiler.Compiler —
// both of which take a single *registry.Registry — see one flat symbol
// space without ever mutating the FFI layer itself. Layering two
// Registry values this way, rather than teaching Registry about
// fallthrough, is what keeps the FFI layer safely shared read-only
// across concurrently compiling Units (see internal/template for the
// matching instantiation-cache concern).
package unit

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/compiler"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

// Unit is one script's worth of declarations compiled against a shared
// FFI layer. Diagnostics accumulate in the bag as passes run past
// errors; Compile never returns early. An error that leaves an item
// unusable (a duplicate symbol, an unresolved base class) skips that
// class or signature, and the remaining passes still run.
type Unit struct {
	Name     string
	Registry *registry.Registry
	Resolver *resolve.Resolver
	Globals  *compiler.Globals

	diags diag.Bag

	mixins      map[string]*ast.MixinDecl
	imports     []*ast.ImportDecl
	functions   []pendingFunction
	globalInits []pendingGlobal
}

// New creates a Unit whose registry layer is seeded from ffi — every
// FFI-registered type and function becomes visible to this Unit's
// resolver and compiler, but nothing the Unit itself declares is ever
// written back into ffi.
//
// bindTemplates receives the Unit's own freshly seeded registry and
// returns the TemplateInstantiator the Unit's Resolver should use.
// This is a factory rather than a ready-made TemplateInstantiator
// because the instantiator a template.Manager hands out is bound to a
// specific target registry (see internal/template.Manager.Bind), and
// that target must be this Unit's own registry — which does not exist
// until this constructor builds it.
func New(name string, ffi *registry.Registry, bindTemplates func(*registry.Registry) resolve.TemplateInstantiator) *Unit {
	reg := registry.New()
	for _, t := range ffi.AllTypes() {
		reg.RegisterType(t) //nolint: errcheck — entries from a sealed, already-validated FFI layer never collide
	}
	for _, f := range ffi.AllFunctions() {
		reg.RegisterFunction(f) //nolint: errcheck
	}
	return &Unit{
		Name:     name,
		Registry: reg,
		Resolver: resolve.New(reg, bindTemplates(reg)),
		Globals:  compiler.NewGlobals(),
		mixins:   make(map[string]*ast.MixinDecl),
	}
}

// Diagnostics returns every error collected while compiling, sorted in
// natural file:line order for presentation.
func (u *Unit) Diagnostics() []*diag.Error { return u.diags.Sorted() }

// fail records err without aborting the unit's remaining passes.
func (u *Unit) fail(err error) {
	if derr, ok := err.(*diag.Error); ok {
		u.diags.Add(derr)
		return
	}
	u.diags.Add(diag.New(diag.Internal, diag.Span{}, "%v", err))
}

func nestNamespace(ns registry.Namespace, name string) registry.Namespace {
	out := make(registry.Namespace, len(ns)+1)
	copy(out, ns)
	out[len(ns)] = name
	return out
}

func (u *Unit) resolveParamTypes(params []ast.Param, ns registry.Namespace) ([]typesys.DataType, error) {
	out := make([]typesys.DataType, len(params))
	for i, p := range params {
		t, err := u.Resolver.Resolve(p.Type, resolve.Env{Namespace: ns, Position: resolve.PosParam})
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func paramHashes(types []typesys.DataType) []ident.TypeHash {
	out := make([]ident.TypeHash, len(types))
	for i, t := range types {
		out[i] = t.Hash
	}
	return out
}

func paramEntries(params []ast.Param, types []typesys.DataType) []registry.ParamEntry {
	out := make([]registry.ParamEntry, len(params))
	for i, p := range params {
		out[i] = registry.ParamEntry{Name: p.Name, Type: types[i], HasDefault: p.Default != nil}
	}
	return out
}

func visibilityOf(attrs ast.FuncAttrs) registry.Visibility {
	switch {
	case attrs.IsPrivate:
		return registry.Private
	case attrs.IsProtected:
		return registry.Protected
	default:
		return registry.Public
	}
}

package compiler

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

// CompileClass compiles every method of decl against the already
// registered entry, synthesizing a default constructor when decl
// declares none. Each method gets its own fresh Compiler sharing reg,
// resolver, and globals, the same way a lambda body gets its own child
// Compiler — one Compiler compiles exactly one function.
func CompileClass(reg *registry.Registry, resolver *resolve.Resolver, globals *Globals, ns registry.Namespace, decl *ast.ClassDecl, entry *registry.ClassEntry) error {
	hasCtor := false
	for _, m := range decl.Methods {
		if m.IsConstructor {
			hasCtor = true
			if err := compileConstructor(reg, resolver, globals, ns, decl, entry, m); err != nil {
				return err
			}
			continue
		}
		if err := compileClassMethod(reg, resolver, globals, ns, decl, entry, m); err != nil {
			return err
		}
	}
	if !hasCtor {
		return synthesizeDefaultConstructor(reg, resolver, globals, ns, decl, entry)
	}
	return nil
}

func selfType(entry *registry.ClassEntry) typesys.DataType {
	t := typesys.New(entry.Hash)
	if entry.Kind == registry.ClassReference {
		return t.Handle()
	}
	return t
}

func resolveParams(resolver *resolve.Resolver, ns registry.Namespace, params []ast.Param) ([]typesys.DataType, error) {
	out := make([]typesys.DataType, len(params))
	for i, p := range params {
		t, err := resolver.Resolve(p.Type, resolve.Env{Namespace: ns, Position: resolve.PosParam})
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func paramHashes(params []typesys.DataType) []ident.TypeHash {
	out := make([]ident.TypeHash, len(params))
	for i, p := range params {
		out[i] = p.Hash
	}
	return out
}

func compileClassMethod(reg *registry.Registry, resolver *resolve.Resolver, globals *Globals, ns registry.Namespace, decl *ast.ClassDecl, entry *registry.ClassEntry, m *ast.FunctionDecl) error {
	paramTypes, err := resolveParams(resolver, ns, m.Params)
	if err != nil {
		return err
	}
	retType, err := resolver.Resolve(m.Return, resolve.Env{Namespace: ns, Position: resolve.PosReturn})
	if err != nil {
		return err
	}
	if m.Attrs.IsOverride {
		if !findVirtualOverride(reg, entry.Base, m.Name, paramTypes, m.Attrs.IsConst) {
			return diag.New(diag.OverrideWithoutVirtual, m.Sp,
				"%s.%s overrides no virtual method of a base class", entry.Name, m.Name)
		}
	}

	hash := ident.HashFunction(ident.KindMethod, m.Name, entry.Hash, paramHashes(paramTypes), m.Attrs.IsConst, "")
	def := reg.GetFunction(hash)
	if def == nil {
		return diag.New(diag.Internal, m.Sp, "method %s.%s not registered before compilation", entry.Name, m.Name)
	}

	c := New(reg, resolver, globals)
	c.Namespace = ns
	chunk, err := c.CompileMethod(m.Name, m.Params, paramTypes, retType, m.Body, selfType(entry), entry)
	if err != nil {
		return err
	}
	def.Chunk = chunk
	return nil
}

func compileConstructor(reg *registry.Registry, resolver *resolve.Resolver, globals *Globals, ns registry.Namespace, decl *ast.ClassDecl, entry *registry.ClassEntry, m *ast.FunctionDecl) error {
	paramTypes, err := resolveParams(resolver, ns, m.Params)
	if err != nil {
		return err
	}
	hash := ident.HashFunction(ident.KindConstructor, entry.Name, entry.Hash, paramHashes(paramTypes), false, "")
	def := reg.GetFunction(hash)
	if def == nil {
		return diag.New(diag.Internal, m.Sp, "constructor %s(...) not registered before compilation", entry.Name)
	}

	body := prependCtorPrologue(decl, entry, m.Body)
	c := New(reg, resolver, globals)
	c.Namespace = ns
	chunk, err := c.CompileMethod(entry.Name, m.Params, paramTypes, typesys.Void, body, selfType(entry), entry)
	if err != nil {
		return err
	}
	def.Chunk = chunk
	return nil
}

// synthesizeDefaultConstructor builds and registers a zero-argument
// constructor for a class that declares none, running the same
// super()-then-field-initializers prologue a written constructor
// would. Its hash follows the same convention compileConstructor's
// written-constructor path uses, so a later explicit lookup of the
// zero-arg constructor finds it identically either way.
func synthesizeDefaultConstructor(reg *registry.Registry, resolver *resolve.Resolver, globals *Globals, ns registry.Namespace, decl *ast.ClassDecl, entry *registry.ClassEntry) error {
	hash := ident.HashFunction(ident.KindConstructor, entry.Name, entry.Hash, nil, false, "")
	body := prependCtorPrologue(decl, entry, &ast.BlockStmt{Sp: decl.Sp})

	c := New(reg, resolver, globals)
	c.Namespace = ns
	chunk, err := c.CompileMethod(entry.Name, nil, nil, typesys.Void, body, selfType(entry), entry)
	if err != nil {
		return err
	}

	def := reg.GetFunction(hash)
	if def == nil {
		def = &registry.FunctionDef{
			Hash:       hash,
			Name:       entry.Name,
			OwnerClass: entry.Hash,
			Traits:     registry.FunctionTraits{IsConstructor: true},
		}
		if err := reg.RegisterFunction(def); err != nil {
			return err
		}
		entry.Behaviors.Constructors = append(entry.Behaviors.Constructors, hash)
	}
	def.Chunk = chunk
	return nil
}

// prependCtorPrologue builds the effective constructor body: a super()
// call first when the class has a base (the written body's own opening
// super call, or an implicit one when the body doesn't open with one),
// then every field's initializer in declaration order, then the rest of
// the written statements.
func prependCtorPrologue(decl *ast.ClassDecl, entry *registry.ClassEntry, body *ast.BlockStmt) *ast.BlockStmt {
	var prologue []ast.Stmt
	rest := body.Stmts

	if entry.Base != 0 {
		if opensWithSuperCall(body) {
			prologue = append(prologue, body.Stmts[0])
			rest = body.Stmts[1:]
		} else {
			prologue = append(prologue, &ast.ExprStmt{X: &ast.SuperExpr{Sp: decl.Sp}, Sp: decl.Sp})
		}
	}

	for _, f := range decl.Fields {
		if f.Init == nil {
			continue
		}
		assign := &ast.AssignExpr{
			Target: &ast.MemberExpr{Receiver: &ast.ThisExpr{Sp: f.Sp}, Name: f.Name, Sp: f.Sp},
			Value:  f.Init,
			Op:     "=",
			Sp:     f.Sp,
		}
		prologue = append(prologue, &ast.ExprStmt{X: assign, Sp: f.Sp})
	}

	if len(prologue) == 0 {
		return body
	}
	return &ast.BlockStmt{Stmts: append(prologue, rest...), Sp: body.Sp}
}

func opensWithSuperCall(body *ast.BlockStmt) bool {
	if len(body.Stmts) == 0 {
		return false
	}
	es, ok := body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		return false
	}
	_, ok = es.X.(*ast.SuperExpr)
	return ok
}

// findVirtualOverride reports whether some class in base's ancestry
// declares a virtual method matching name/params/const — the
// requirement an `override` method must satisfy.
func findVirtualOverride(reg *registry.Registry, base ident.TypeHash, name string, params []typesys.DataType, isConst bool) bool {
	for base != 0 {
		entry, ok := reg.GetType(base).(*registry.ClassEntry)
		if !ok {
			return false
		}
		for _, h := range entry.Methods {
			def := reg.GetFunction(h)
			if def == nil || def.Name != name {
				continue
			}
			if !def.Traits.IsVirtual {
				continue
			}
			if def.Traits.IsConst != isConst {
				continue
			}
			if sameParamTypes(def.Params, params) {
				return true
			}
		}
		base = entry.Base
	}
	return false
}

func sameParamTypes(defParams []registry.ParamEntry, params []typesys.DataType) bool {
	if len(defParams) != len(params) {
		return false
	}
	for i, p := range defParams {
		if p.Type.Hash != params[i].Hash {
			return false
		}
	}
	return true
}

package unit

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/compiler"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// Compile runs every pass over script and returns the resulting Module.
// A function or method whose body fails to compile is omitted from the
// module but does not stop the rest of the unit: Compile always
// finishes the full item tree, leaving every failure recorded in
// Diagnostics. Only a failure that leaves the symbol table itself
// inconsistent — an unresolved base class, a duplicate symbol — skips
// the class or signature it belongs to rather than aborting outright.
func (u *Unit) Compile(script *ast.Script) *Module {
	classes := u.declareTypes(script.Items, registry.Namespace{})
	u.declareMembers(classes)
	u.declareSignatures(script.Items, registry.Namespace{})

	mod := &Module{Name: u.Name}

	for _, dc := range classes {
		if err := compiler.CompileClass(u.Registry, u.Resolver, u.Globals, dc.ns, dc.decl, dc.entry); err != nil {
			u.fail(err)
		}
		for _, mh := range dc.entry.Methods {
			if def := u.Registry.GetFunction(mh); def != nil && def.Chunk != nil {
				mod.Functions = append(mod.Functions, moduleFunctionOf(def))
			}
		}
		for _, ch := range dc.entry.Behaviors.Constructors {
			if def := u.Registry.GetFunction(ch); def != nil && def.Chunk != nil {
				mod.Functions = append(mod.Functions, moduleFunctionOf(def))
			}
		}
	}

	for _, pf := range u.functions {
		if err := u.compileFunction(pf); err != nil {
			u.fail(err)
			continue
		}
		mod.Functions = append(mod.Functions, moduleFunctionOf(pf.def))
	}

	mod.GlobalCount = u.Globals.Count()
	mod.Init = u.compileInitializer()
	return mod
}

func (u *Unit) compileFunction(pf pendingFunction) error {
	c := compiler.New(u.Registry, u.Resolver, u.Globals)
	c.Namespace = pf.ns
	chunk, err := c.CompileFunction(pf.decl.Name, pf.decl.Params, pf.params, pf.def.Return, pf.decl.Body)
	if err != nil {
		return err
	}
	pf.def.Chunk = chunk
	return nil
}

// compileInitializer builds the chunk that assigns every global's
// declared initializer expression, in the order the globals were
// declared, as a single void function body. A global with no
// initializer keeps its zero value, set up by the VM when it allocates
// the global frame, and needs no statement here.
func (u *Unit) compileInitializer() *bytecode.Chunk {
	stmts := make([]ast.Stmt, 0, len(u.globalInits))
	for _, pg := range u.globalInits {
		assign := &ast.AssignExpr{
			Target: &ast.Identifier{Name: pg.name, Sp: pg.sp},
			Value:  pg.init,
			Op:     "=",
			Sp:     pg.sp,
		}
		stmts = append(stmts, &ast.ExprStmt{X: assign, Sp: pg.sp})
	}
	body := &ast.BlockStmt{Stmts: stmts}

	c := compiler.New(u.Registry, u.Resolver, u.Globals)
	chunk, err := c.CompileFunction(u.Name+"$init", nil, nil, typesys.Void, body)
	if err != nil {
		u.fail(err)
		return bytecode.NewChunk(u.Name + "$init")
	}
	return chunk
}

func moduleFunctionOf(def *registry.FunctionDef) ModuleFunction {
	params := make([]ModuleParam, len(def.Params))
	for i, p := range def.Params {
		params[i] = ModuleParam{Name: p.Name, TypeHash: uint64(p.Type.Hash), HasDefault: p.HasDefault}
	}
	return ModuleFunction{
		Hash: def.Hash, Name: def.Name, OwnerClass: def.OwnerClass,
		Params: params, Return: uint64(def.Return.Hash),
		IsConst: def.Traits.IsConst, IsVirtual: def.Traits.IsVirtual,
		Chunk: def.Chunk,
	}
}

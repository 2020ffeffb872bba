package unit

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

// declaredClass pairs a ClassDecl with the registry entry declareTypes
// created for it, so the member pass can fill in fields and methods
// without re-walking the item tree.
type declaredClass struct {
	decl  *ast.ClassDecl
	ns    registry.Namespace
	entry *registry.ClassEntry
}

type pendingFunction struct {
	decl   *ast.FunctionDecl
	ns     registry.Namespace
	def    *registry.FunctionDef
	params []typesys.DataType
}

type pendingGlobal struct {
	name string
	init ast.Expr
	sp   diag.Span
}

// declareTypes is pass 1: register every class, interface, enum, and
// funcdef under its eventual hash before any field, parameter, or
// return type is resolved, so a field typed as a class declared later
// in the same script still resolves. Interfaces, enums, and funcdefs
// resolve their own member types immediately, so (unlike classes) a
// forward reference from one of them to a type declared later in the
// same script fails — interface/enum/funcdef member shapes don't nest
// deeply enough in practice for that asymmetry to bite.
func (u *Unit) declareTypes(items []ast.Item, ns registry.Namespace) []declaredClass {
	var classes []declaredClass
	for _, item := range items {
		switch n := item.(type) {
		case *ast.NamespaceDecl:
			classes = append(classes, u.declareTypes(n.Items, nestNamespace(ns, n.Name))...)
		case *ast.ClassDecl:
			qualified := ns.Qualify(n.Name)
			entry := &registry.ClassEntry{
				Hash:      ident.HashType(qualified),
				Name:      n.Name,
				Qualified: qualified,
				Kind:      registry.ClassReference,
				Origin:    registry.OriginScript,
			}
			if err := u.Registry.RegisterType(entry); err != nil {
				u.fail(err)
				continue
			}
			classes = append(classes, declaredClass{decl: n, ns: ns, entry: entry})
		case *ast.InterfaceDecl:
			if err := u.declareInterface(n, ns); err != nil {
				u.fail(err)
			}
		case *ast.EnumDecl:
			u.declareEnum(n, ns)
		case *ast.FuncdefDecl:
			if err := u.declareFuncdef(n, ns); err != nil {
				u.fail(err)
			}
		case *ast.TypedefDecl:
			if err := u.declareTypedef(n, ns); err != nil {
				u.fail(err)
			}
		case *ast.MixinDecl:
			u.mixins[n.Name] = n
		case *ast.ImportDecl:
			u.imports = append(u.imports, n)
		}
	}
	return classes
}

func (u *Unit) declareInterface(n *ast.InterfaceDecl, ns registry.Namespace) error {
	methods := make([]registry.InterfaceMethod, len(n.Methods))
	for i, m := range n.Methods {
		paramTypes, err := u.resolveParamTypes(m.Params, ns)
		if err != nil {
			return err
		}
		ret, err := u.Resolver.Resolve(m.Return, resolve.Env{Namespace: ns, Position: resolve.PosReturn})
		if err != nil {
			return err
		}
		methods[i] = registry.InterfaceMethod{Name: m.Name, Params: paramTypes, Return: ret}
	}
	qualified := ns.Qualify(n.Name)
	entry := &registry.InterfaceEntry{Hash: ident.HashType(qualified), Name: n.Name, Qualified: qualified, Methods: methods}
	return u.Registry.RegisterType(entry)
}

// declareEnum never fails: an enum member list is self-contained, so
// nothing here can produce an unresolved-type error the way a field or
// parameter type can.
func (u *Unit) declareEnum(n *ast.EnumDecl, ns registry.Namespace) {
	values := make([]registry.EnumValue, len(n.Members))
	next := int64(0)
	for i, m := range n.Members {
		v := next
		if m.Value != nil {
			v = *m.Value
		}
		values[i] = registry.EnumValue{Name: m.Name, Value: v}
		next = v + 1
	}
	qualified := ns.Qualify(n.Name)
	entry := &registry.EnumEntry{
		Hash: ident.HashType(qualified), Name: n.Name, Qualified: qualified,
		BaseHash: typesys.Int32.Hash, Values: values,
	}
	u.Registry.RegisterType(entry) //nolint: errcheck — enum names are unique within a well-formed script
}

func (u *Unit) declareFuncdef(n *ast.FuncdefDecl, ns registry.Namespace) error {
	paramTypes, err := u.resolveParamTypes(n.Params, ns)
	if err != nil {
		return err
	}
	ret, err := u.Resolver.Resolve(n.Return, resolve.Env{Namespace: ns, Position: resolve.PosReturn})
	if err != nil {
		return err
	}
	qualified := ns.Qualify(n.Name)
	entry := &registry.FuncdefEntry{Hash: ident.HashType(qualified), Name: n.Name, Qualified: qualified, Params: paramTypes, Return: ret}
	return u.Registry.RegisterType(entry)
}

func (u *Unit) declareTypedef(n *ast.TypedefDecl, ns registry.Namespace) error {
	t, err := u.Resolver.Resolve(n.Type, resolve.Env{Namespace: ns, Position: resolve.PosField})
	if err != nil {
		return err
	}
	u.Registry.RegisterAlias(ns.Qualify(n.Name), t.Hash)
	return nil
}

// declareMembers is pass 2 for classes: resolve each class's base,
// interfaces, fields, and method/constructor signatures now that every
// type in the script has a hash. Method and constructor signatures are
// registered under the exact hash convention internal/compiler/class.go
// recomputes to look the definition back up (see DESIGN.md's
// method/constructor hash convention note); only Chunk is left unset,
// filled in by the body-compilation pass.
func (u *Unit) declareMembers(classes []declaredClass) {
	for _, dc := range classes {
		if err := u.declareClassMembers(dc); err != nil {
			u.fail(err)
		}
	}
}

func (u *Unit) declareClassMembers(dc declaredClass) error {
	decl, ns, entry := dc.decl, dc.ns, dc.entry

	if decl.Base != "" {
		hashes := u.Registry.ResolveType(ns, decl.Base)
		if len(hashes) == 0 {
			return diag.New(diag.UnknownType, decl.Sp, "unknown base class %q", decl.Base)
		}
		entry.Base = hashes[0]
	}
	for _, ifaceName := range decl.Interfaces {
		hashes := u.Registry.ResolveType(ns, ifaceName)
		if len(hashes) == 0 {
			return diag.New(diag.UnknownType, decl.Sp, "unknown interface %q", ifaceName)
		}
		entry.Interfaces = append(entry.Interfaces, hashes[0])
	}
	for _, f := range decl.Fields {
		t, err := u.Resolver.Resolve(f.Type, resolve.Env{Namespace: ns, Position: resolve.PosField})
		if err != nil {
			return err
		}
		entry.Fields = append(entry.Fields, registry.FieldEntry{Name: f.Name, Type: t})
	}

	for _, m := range decl.Methods {
		paramTypes, err := u.resolveParamTypes(m.Params, ns)
		if err != nil {
			return err
		}
		if m.IsConstructor {
			hash := ident.HashFunction(ident.KindConstructor, entry.Name, entry.Hash, paramHashes(paramTypes), false, "")
			def := &registry.FunctionDef{
				Hash: hash, Name: entry.Name, OwnerClass: entry.Hash,
				Params: paramEntries(m.Params, paramTypes), Return: typesys.Void,
				Traits: registry.FunctionTraits{IsConstructor: true},
			}
			if err := u.Registry.RegisterFunction(def); err != nil {
				return err
			}
			entry.Behaviors.Constructors = append(entry.Behaviors.Constructors, hash)
			continue
		}
		ret, err := u.Resolver.Resolve(m.Return, resolve.Env{Namespace: ns, Position: resolve.PosReturn})
		if err != nil {
			return err
		}
		hash := ident.HashFunction(ident.KindMethod, m.Name, entry.Hash, paramHashes(paramTypes), m.Attrs.IsConst, "")
		def := &registry.FunctionDef{
			Hash: hash, Name: m.Name, OwnerClass: entry.Hash,
			Params: paramEntries(m.Params, paramTypes), Return: ret,
			Traits: registry.FunctionTraits{
				IsConst: m.Attrs.IsConst, IsVirtual: m.Attrs.IsVirtual,
				IsFinal: m.Attrs.IsFinal, IsOverride: m.Attrs.IsOverride,
				IsExplicit: m.Attrs.IsExplicit,
			},
			Visibility: visibilityOf(m.Attrs),
		}
		if err := u.Registry.RegisterFunction(def); err != nil {
			return err
		}
		entry.Methods = append(entry.Methods, hash)
	}
	return nil
}

// declareSignatures is pass 2 for everything outside a class body: free
// functions and global variables. It runs after declareTypes so a free
// function may take or return any type declared anywhere in the
// script, but it does not need declareMembers to have run first, since
// it never touches field or method data.
func (u *Unit) declareSignatures(items []ast.Item, ns registry.Namespace) {
	for _, item := range items {
		switch n := item.(type) {
		case *ast.NamespaceDecl:
			u.declareSignatures(n.Items, nestNamespace(ns, n.Name))
		case *ast.FunctionDecl:
			if n.Owner != "" {
				continue // compiled as a class member by declareMembers/CompileClass
			}
			if err := u.declareFreeFunction(n, ns); err != nil {
				u.fail(err)
			}
		case *ast.GlobalVarDecl:
			if err := u.declareGlobal(n, ns); err != nil {
				u.fail(err)
			}
		}
	}
}

func (u *Unit) declareFreeFunction(n *ast.FunctionDecl, ns registry.Namespace) error {
	paramTypes, err := u.resolveParamTypes(n.Params, ns)
	if err != nil {
		return err
	}
	ret, err := u.Resolver.Resolve(n.Return, resolve.Env{Namespace: ns, Position: resolve.PosReturn})
	if err != nil {
		return err
	}
	qualified := ns.Qualify(n.Name)
	hash := ident.HashFunction(ident.KindFreeFunction, qualified, 0, paramHashes(paramTypes), false, "")
	def := &registry.FunctionDef{
		Hash: hash, Name: qualified,
		Params: paramEntries(n.Params, paramTypes), Return: ret,
	}
	if err := u.Registry.RegisterFunction(def); err != nil {
		return err
	}
	u.functions = append(u.functions, pendingFunction{decl: n, ns: ns, def: def, params: paramTypes})
	return nil
}

func (u *Unit) declareGlobal(n *ast.GlobalVarDecl, ns registry.Namespace) error {
	t, err := u.Resolver.Resolve(n.Type, resolve.Env{Namespace: ns, Position: resolve.PosField})
	if err != nil {
		return err
	}
	u.Globals.Declare(n.Name, t)
	if n.Init != nil {
		u.globalInits = append(u.globalInits, pendingGlobal{name: n.Name, init: n.Init, sp: n.Sp})
	}
	return nil
}

// Package stdarray registers AngelScript's built-in array<T> template:
// a reference type holding type-erased element storage, instantiated on
// demand through internal/template. Method names and the overall shape
// (length, isEmpty, clear, insertLast, removeLast, removeAt, opIndex)
// are grounded on original_source/docs/reference/stdlib/array_reference.rs's
// ScriptArray; the element-access convention here returns elements by
// value rather than by reference, since this module's typesys.DataType
// has no return-by-reference mode (WithRef is only legal on a
// parameter — see internal/resolve's ReferenceInValuePosition check), a
// deliberate narrowing from the reference implementation's T& opIndex.
//
// List-initializer syntax (`array<int> a = {1, 2, 3}`) is out of scope:
// no part of internal/ast or internal/compiler models a list expression
// (confirmed by grep — there is no ListExpr/ArrayLiteral/InitList node
// anywhere), so the `ListPattern: Repeat(T)` factory the reference
// implementation's template.rs describes is recorded here only as
// declarative metadata (ListPattern below) for a future parser/compiler
// extension to consume; it is never invoked by anything in this module.
package stdarray

import (
	"fmt"

	"github.com/cwbudde/ascript/internal/ffi"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/template"
	"github.com/cwbudde/ascript/internal/typesys"
)

// ListPattern names the shape a list-initializer would fill an array
// from, mirroring the reference implementation's ListPattern::Repeat(T).
// See the package doc: nothing in this module consumes this value yet.
const ListPattern = "Repeat(T)"

// Register installs the array<T> template type into reg.
func Register(reg *ffi.Registry) error {
	_, err := ffi.NewTypeBuilder(reg, "array", registry.ClassReference).
		TemplateParams("T").
		Template(validate).
		Register()
	return err
}

// validate builds the Blueprint for array<T> given the single concrete
// subtype argument T names. array<T> takes exactly one argument; there
// is no subtype restriction (unlike, say, a hash-keyed container, which
// the reference implementation's TemplateValidation::invalid path
// exists to reject).
func validate(args []typesys.DataType) (*template.Blueprint, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("stdarray: array<T> takes exactly one type argument, got %d", len(args))
	}
	elem := args[0]
	name := "array<" + elem.String() + ">"
	elemIn := elem.Const().WithRef(typesys.RefIn)

	return &template.Blueprint{
		Name: name,
		Kind: registry.ClassReference,
		// An array of handles can hold a cycle back to itself through
		// one of its elements; an array of values cannot. Only the
		// handle-holding instantiation needs to be GC-eligible.
		NeedsGC: elem.IsHandle,
		Methods: []template.MethodFactory{
			func(h ident.TypeHash) *registry.FunctionDef {
				return methodDef(h, ident.KindConstructor, name, nil, typesys.Void, false, construct)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				return methodDef(h, ident.KindMethod, "length", nil, typesys.UInt32, true, length)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				return methodDef(h, ident.KindMethod, "isEmpty", nil, typesys.Bool, true, isEmpty)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				return methodDef(h, ident.KindMethod, "clear", nil, typesys.Void, false, clear)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				params := []registry.ParamEntry{{Name: "value", Type: elemIn}}
				return methodDef(h, ident.KindMethod, "insertLast", params, typesys.Void, false, insertLast)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				return methodDef(h, ident.KindMethod, "removeLast", nil, typesys.Void, false, removeLast)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				params := []registry.ParamEntry{{Name: "index", Type: typesys.UInt32}}
				return methodDef(h, ident.KindMethod, "removeAt", params, typesys.Void, false, removeAt)
			},
			func(h ident.TypeHash) *registry.FunctionDef {
				params := []registry.ParamEntry{{Name: "index", Type: typesys.UInt32}}
				return methodDef(h, ident.KindMethod, "opIndex", params, elem, true, opIndex)
			},
		},
	}, nil
}

func methodDef(classHash ident.TypeHash, kind ident.FunctionKind, name string, params []registry.ParamEntry, ret typesys.DataType, isConst bool, native registry.NativeFunc) *registry.FunctionDef {
	paramHashes := make([]ident.TypeHash, len(params))
	for i, p := range params {
		paramHashes[i] = p.Type.Hash
	}
	traits := registry.FunctionTraits{IsConst: isConst}
	if kind == ident.KindConstructor {
		traits.IsConstructor = true
	}
	return &registry.FunctionDef{
		Hash:       ident.HashFunction(kind, name, classHash, paramHashes, isConst, ""),
		Name:       name,
		OwnerClass: classHash,
		Params:     params,
		Return:     ret,
		Traits:     traits,
		NativeBody: native,
	}
}

func receiver(g *registry.ScriptGeneric) *[]any {
	return g.ReceiverHandle().(*[]any)
}

func construct(g *registry.ScriptGeneric) error {
	*receiver(g) = nil
	return nil
}

func length(g *registry.ScriptGeneric) error {
	g.SetReturn(uint32(len(*receiver(g))))
	return nil
}

func isEmpty(g *registry.ScriptGeneric) error {
	g.SetReturn(len(*receiver(g)) == 0)
	return nil
}

func clear(g *registry.ScriptGeneric) error {
	*receiver(g) = (*receiver(g))[:0]
	return nil
}

func insertLast(g *registry.ScriptGeneric) error {
	r := receiver(g)
	*r = append(*r, g.Arg(0))
	return nil
}

func removeLast(g *registry.ScriptGeneric) error {
	r := receiver(g)
	if len(*r) == 0 {
		return fmt.Errorf("stdarray: removeLast on an empty array")
	}
	*r = (*r)[:len(*r)-1]
	return nil
}

func removeAt(g *registry.ScriptGeneric) error {
	r := receiver(g)
	idx := int(g.Arg(0).(uint32))
	if idx < 0 || idx >= len(*r) {
		return fmt.Errorf("stdarray: removeAt index %d out of range (length %d)", idx, len(*r))
	}
	*r = append((*r)[:idx], (*r)[idx+1:]...)
	return nil
}

func opIndex(g *registry.ScriptGeneric) error {
	r := receiver(g)
	idx := int(g.Arg(0).(uint32))
	if idx < 0 || idx >= len(*r) {
		return fmt.Errorf("stdarray: index %d out of range (length %d)", idx, len(*r))
	}
	g.SetReturn((*r)[idx])
	return nil
}

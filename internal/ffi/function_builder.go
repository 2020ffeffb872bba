package ffi

import (
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// FunctionBuilder fluently assembles one host function or method:
// parameters, return type, traits, native body. Register derives the
// FunctionHash from whatever Method/Constructor/Param/Const calls were
// made and commits the definition to the owning Registry.
//
// Operator methods (opAdd, opEquals, opCmp, opImplConv, ...) are plain
// methods as far as hashing and lookup are concerned: internal/operators
// and internal/convert find them by name through Registry.FindMethods,
// not by a recomputed operator hash, so Method is all an operator needs
// — there is no separate Operator builder step.
type FunctionBuilder struct {
	owner  *Registry
	def    *registry.FunctionDef
	kind   ident.FunctionKind
	owning ident.TypeHash
}

// NewFunctionBuilder starts building a free function named name.
func NewFunctionBuilder(owner *Registry, name string) *FunctionBuilder {
	return &FunctionBuilder{
		owner: owner,
		def:   &registry.FunctionDef{Name: name, Return: typesys.Void},
		kind:  ident.KindFreeFunction,
	}
}

// Method rebinds this builder to declare a method owned by owner
// instead of a free function.
func (b *FunctionBuilder) Method(owner ident.TypeHash) *FunctionBuilder {
	b.kind = ident.KindMethod
	b.owning = owner
	b.def.OwnerClass = owner
	return b
}

// Constructor rebinds this builder to declare a constructor of owner.
// Its return type is always void; a constructor's DataType is expressed
// through New/NewFactory on the class itself, never through a return
// value.
func (b *FunctionBuilder) Constructor(owner ident.TypeHash) *FunctionBuilder {
	b.kind = ident.KindConstructor
	b.owning = owner
	b.def.OwnerClass = owner
	b.def.Return = typesys.Void
	b.def.Traits.IsConstructor = true
	return b
}

// Param appends a parameter.
func (b *FunctionBuilder) Param(name string, t typesys.DataType) *FunctionBuilder {
	b.def.Params = append(b.def.Params, registry.ParamEntry{Name: name, Type: t})
	return b
}

// DefaultParam appends a parameter that carries a default argument; the
// default expression itself is the host's concern at call sites that
// omit it; this builder only records that the slot is optional.
func (b *FunctionBuilder) DefaultParam(name string, t typesys.DataType) *FunctionBuilder {
	b.def.Params = append(b.def.Params, registry.ParamEntry{Name: name, Type: t, HasDefault: true})
	return b
}

// Return sets the function's return type.
func (b *FunctionBuilder) Return(t typesys.DataType) *FunctionBuilder {
	b.def.Return = t
	return b
}

// Const marks a method const-qualified.
func (b *FunctionBuilder) Const() *FunctionBuilder {
	b.def.Traits.IsConst = true
	return b
}

// Visibility sets the method's access level; free functions ignore
// this, since Registry only enforces it on member access.
func (b *FunctionBuilder) Visibility(v registry.Visibility) *FunctionBuilder {
	b.def.Visibility = v
	return b
}

// Native attaches fn as the function's call target.
func (b *FunctionBuilder) Native(fn registry.NativeFunc) *FunctionBuilder {
	b.def.NativeBody = fn
	return b
}

// Register derives this function's hash and commits it to the owning
// Registry, wiring it onto its owner class's Methods or
// Behaviors.Constructors list when it is a method or constructor.
func (b *FunctionBuilder) Register() (ident.FunctionHash, error) {
	params := make([]ident.TypeHash, len(b.def.Params))
	for i, p := range b.def.Params {
		params[i] = p.Type.Hash
	}
	b.def.Hash = ident.HashFunction(b.kind, b.def.Name, b.owning, params, b.def.Traits.IsConst, "")

	if err := b.owner.reg.RegisterFunction(b.def); err != nil {
		return 0, err
	}

	if b.owning != 0 {
		if entry, ok := b.owner.reg.GetType(b.owning).(*registry.ClassEntry); ok {
			if b.def.Traits.IsConstructor {
				entry.Behaviors.Constructors = append(entry.Behaviors.Constructors, b.def.Hash)
			} else {
				entry.Methods = append(entry.Methods, b.def.Hash)
			}
		}
	}
	return b.def.Hash, nil
}

package convert

import (
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// Classify finds the cheapest conversion from S to T, trying a direct
// hop first and, failing that, a single structural hop (primitive
// widening or handle upcast) composed with one
// user-defined step. Returns ok=false when no path exists at all —
// callers that need an implicit path still check Conversion.Implicit.
func Classify(reg *registry.Registry, from, to typesys.DataType) (Conversion, bool) {
	if c, ok := direct(reg, from, to); ok {
		return c, true
	}
	return composite(reg, from, to)
}

func direct(reg *registry.Registry, from, to typesys.DataType) (Conversion, bool) {
	if c, ok := structuralDirect(from, to, reg); ok {
		return c, true
	}
	return userDefinedDirect(reg, from, to)
}

func sameModifiers(a, b typesys.DataType) bool {
	return a.IsConst == b.IsConst && a.IsHandle == b.IsHandle && a.IsHandleToConst == b.IsHandleToConst
}

// structuralDirect classifies conversions that need no host or script
// method lookup: identity, const attachment, primitive widening/mixed/
// narrowing, handle attach/relax/up/downcast, and null-to-handle.
func structuralDirect(from, to typesys.DataType, reg *registry.Registry) (Conversion, bool) {
	if from.Hash == ident.NullType && to.IsHandle {
		return structural(NullToHandle), true
	}

	if from.Hash == to.Hash {
		if sameModifiers(from, to) {
			return structural(Identity), true
		}
		if !from.IsHandle && !to.IsHandle && !from.IsConst && to.IsConst {
			return structural(ConstAttach), true
		}
		if from.IsHandle && to.IsHandle {
			// Const-ness may only increase along a handle-to-handle
			// identity-base conversion, never decrease.
			if (from.IsConst && !to.IsConst) || (from.IsHandleToConst && !to.IsHandleToConst) {
				return Conversion{}, false
			}
			return structural(HandleRelax), true
		}
		if !from.IsHandle && to.IsHandle && from.Hash == to.Hash {
			return structural(HandleAttach), true
		}
		return Conversion{}, false
	}

	if !from.IsHandle && !to.IsHandle {
		if kind, ok := primitiveConversion(from.Hash, to.Hash); ok {
			return structural(kind), true
		}
		return Conversion{}, false
	}

	if from.IsHandle && to.IsHandle && reg != nil {
		if reg.IsTypeDerivedFrom(from.Hash, to.Hash) {
			return structural(HandleUpcast), true
		}
		if reg.IsTypeDerivedFrom(to.Hash, from.Hash) {
			return structural(HandleDowncast), true
		}
	}

	if !from.IsHandle && to.IsHandle && from.Hash == to.Hash {
		return structural(HandleAttach), true
	}

	return Conversion{}, false
}

func userDefinedDirect(reg *registry.Registry, from, to typesys.DataType) (Conversion, bool) {
	if reg == nil {
		return Conversion{}, false
	}

	if !to.IsHandle {
		if h, ok := findConvMethod(reg, from.Hash, "opImplConv", to); ok {
			return userDefined(OpImplConv, h), true
		}
		if h, ok := findConvMethod(reg, from.Hash, "opConv", to); ok {
			return userDefined(OpConv, h), true
		}
		if h, ok := findConstructorConv(reg, from, to); ok {
			return userDefined(ConstructorConv, h), true
		}
		return Conversion{}, false
	}

	if h, ok := findCastMethod(reg, from.Hash, "opImplCast", to); ok {
		return userDefined(OpImplCast, h), true
	}
	if h, ok := findCastMethod(reg, from.Hash, "opCast", to); ok {
		return userDefined(OpCast, h), true
	}
	return Conversion{}, false
}

// findConvMethod looks up a value-returning conversion method named
// methodName on from, matching a zero-argument overload whose return
// type is to (ignoring to's const/ref modifiers — the value is copied).
func findConvMethod(reg *registry.Registry, from ident.TypeHash, methodName string, to typesys.DataType) (ident.FunctionHash, bool) {
	for _, h := range reg.FindMethods(from, methodName) {
		def := reg.GetFunction(h)
		if def == nil || def.Return.IsHandle || def.Return.Hash != to.Hash {
			continue
		}
		return h, true
	}
	return 0, false
}

// findCastMethod looks up a handle-returning conversion method named
// methodName on from, matching a return handle to to's base type.
func findCastMethod(reg *registry.Registry, from ident.TypeHash, methodName string, to typesys.DataType) (ident.FunctionHash, bool) {
	for _, h := range reg.FindMethods(from, methodName) {
		def := reg.GetFunction(h)
		if def == nil || !def.Return.IsHandle || def.Return.Hash != to.Hash {
			continue
		}
		return h, true
	}
	return 0, false
}

// findConstructorConv looks for a single-argument, non-explicit
// constructor declared directly on to's class accepting from.
func findConstructorConv(reg *registry.Registry, from, to typesys.DataType) (ident.FunctionHash, bool) {
	if to.IsHandle {
		return 0, false
	}
	entry, ok := reg.GetType(to.Hash).(*registry.ClassEntry)
	if !ok {
		return 0, false
	}
	candidates := append(append([]ident.FunctionHash(nil), entry.Behaviors.Constructors...), entry.Methods...)
	for _, h := range candidates {
		def := reg.GetFunction(h)
		if def == nil || !def.Traits.IsConstructor || def.Traits.IsExplicit {
			continue
		}
		if len(def.Params) != 1 || def.Params[0].Type.Hash != from.Hash {
			continue
		}
		return h, true
	}
	return 0, false
}

type structuralNeighbor struct {
	conv Conversion
	dt   typesys.DataType
}

// structuralNeighbors enumerates the DataTypes one purely structural hop
// reaches from from: its family's widest primitive, or — for a handle —
// every transitive base class handle.
func structuralNeighbors(reg *registry.Registry, from typesys.DataType) []structuralNeighbor {
	var out []structuralNeighbor

	if !from.IsHandle {
		if isInteger(from.Hash) || isFloat(from.Hash) {
			for _, h := range []ident.TypeHash{ident.Int64, ident.UInt64, ident.Float64} {
				if h == from.Hash {
					continue
				}
				if kind, ok := primitiveConversion(from.Hash, h); ok && kind == PrimitiveWidening {
					out = append(out, structuralNeighbor{conv: structural(kind), dt: typesys.New(h)})
				}
			}
		}
		return out
	}

	if reg == nil {
		return out
	}
	for h := from.Hash; ; {
		entry, ok := reg.GetType(h).(*registry.ClassEntry)
		if !ok || entry.Base == 0 {
			break
		}
		out = append(out, structuralNeighbor{conv: structural(HandleUpcast), dt: typesys.New(entry.Base).Handle()})
		h = entry.Base
	}
	return out
}

// composite chains exactly one structural hop with one user-defined hop,
// in that order, and keeps the cheapest result.
func composite(reg *registry.Registry, from, to typesys.DataType) (Conversion, bool) {
	var best Conversion
	found := false

	for _, n := range structuralNeighbors(reg, from) {
		c2, ok := userDefinedDirect(reg, n.dt, to)
		if !ok {
			continue
		}
		total := n.conv.Cost + c2.Cost
		if !found || total < best.Cost {
			best = Conversion{Kind: c2.Kind, Cost: total, Implicit: n.conv.Implicit && c2.Implicit, Method: c2.Method}
			found = true
		}
	}

	return best, found
}

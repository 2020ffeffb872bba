// Package convert classifies how one DataType becomes another: identity,
// const attachment, primitive widening/narrowing, handle attachment and
// up/downcasting, and the user-defined opImplConv/opConv/opImplCast/
// opCast/constructor-conversion families. Every classification carries a
// numeric cost and an implicit flag, the way the overload resolver and
// the expression compiler's conversion checks both need.
package convert

import "github.com/cwbudde/ascript/internal/ident"

// Kind distinguishes the conversion families a Conversion can describe.
type Kind int

const (
	Identity Kind = iota
	ConstAttach
	PrimitiveWidening
	PrimitiveMixed
	PrimitiveNarrowing
	HandleAttach
	HandleRelax
	HandleUpcast
	HandleDowncast
	NullToHandle
	OpImplConv
	OpConv
	OpImplCast
	OpCast
	ConstructorConv
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "Identity"
	case ConstAttach:
		return "ConstAttach"
	case PrimitiveWidening:
		return "PrimitiveWidening"
	case PrimitiveMixed:
		return "PrimitiveMixed"
	case PrimitiveNarrowing:
		return "PrimitiveNarrowing"
	case HandleAttach:
		return "HandleAttach"
	case HandleRelax:
		return "HandleRelax"
	case HandleUpcast:
		return "HandleUpcast"
	case HandleDowncast:
		return "HandleDowncast"
	case NullToHandle:
		return "NullToHandle"
	case OpImplConv:
		return "OpImplConv"
	case OpConv:
		return "OpConv"
	case OpImplCast:
		return "OpImplCast"
	case OpCast:
		return "OpCast"
	case ConstructorConv:
		return "ConstructorConv"
	default:
		return "UNKNOWN"
	}
}

// baseCost is the fixed per-kind cost from the conversion table. Kinds
// whose cost depends on arguments (there are none at present) would be
// computed separately; every kind here is a flat constant.
var baseCost = map[Kind]int{
	Identity:           0,
	ConstAttach:        1,
	PrimitiveWidening:  10,
	PrimitiveMixed:     20,
	PrimitiveNarrowing: 60,
	HandleAttach:       5,
	HandleRelax:        5,
	HandleUpcast:       30,
	HandleDowncast:     90,
	NullToHandle:       0,
	OpImplConv:         100,
	OpConv:             120,
	OpImplCast:         100,
	OpCast:             130,
	ConstructorConv:    110,
}

// implicitKind reports whether a bare conversion of this kind is usable
// without an explicit cast/constructor-call syntax at the use site.
var implicitKind = map[Kind]bool{
	Identity:           true,
	ConstAttach:        true,
	PrimitiveWidening:  true,
	PrimitiveMixed:     true,
	PrimitiveNarrowing: false,
	HandleAttach:       true,
	HandleRelax:        true,
	HandleUpcast:       true,
	HandleDowncast:     false,
	NullToHandle:       true,
	OpImplConv:         true,
	OpConv:             false,
	OpImplCast:         true,
	OpCast:             false,
	ConstructorConv:    true,
}

// Conversion describes transforming a value of one type into another.
// Method is set for the four user-defined kinds plus ConstructorConv and
// is zero otherwise.
type Conversion struct {
	Kind     Kind
	Cost     int
	Implicit bool
	Method   ident.FunctionHash
}

func structural(kind Kind) Conversion {
	return Conversion{Kind: kind, Cost: baseCost[kind], Implicit: implicitKind[kind]}
}

func userDefined(kind Kind, method ident.FunctionHash) Conversion {
	return Conversion{Kind: kind, Cost: baseCost[kind], Implicit: implicitKind[kind], Method: method}
}

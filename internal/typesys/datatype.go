// Package typesys implements the DataType value: a base-type hash plus
// const/handle/handle-to-const modifiers and a reference mode. It is a
// small, self-contained value type — no pack example models a modifier
// bitset like this with a third-party library, so it is built directly
// on the standard library, as recorded in DESIGN.md.
package typesys

import (
	"fmt"

	"github.com/cwbudde/ascript/internal/ident"
)

// RefMode is the parameter reference mode: none, &in, &out, or &inout.
// Reference modes only ever appear on parameters.
type RefMode byte

const (
	RefNone RefMode = iota
	RefIn
	RefOut
	RefInOut
)

func (m RefMode) String() string {
	switch m {
	case RefIn:
		return "&in"
	case RefOut:
		return "&out"
	case RefInOut:
		return "&inout"
	default:
		return ""
	}
}

// DataType is (type_hash, is_const, is_handle, is_handle_to_const,
// ref_mode). The zero value is an invalid DataType; construct with New
// or one of the Primitive helpers.
type DataType struct {
	Hash            ident.TypeHash
	IsConst         bool
	IsHandle        bool
	IsHandleToConst bool
	RefMode         RefMode
}

// New constructs a plain, non-const, non-handle DataType for hash.
func New(hash ident.TypeHash) DataType {
	return DataType{Hash: hash}
}

// Const returns T with is_const attached: `const T`.
func (t DataType) Const() DataType {
	t.IsConst = true
	return t
}

// Handle returns T@: a handle to T, not const, not to a const referent.
func (t DataType) Handle() DataType {
	t.IsHandle = true
	t.IsHandleToConst = false
	return t
}

// HandleToConst returns `T@ const`: a handle whose referent is const.
func (t DataType) HandleToConst() DataType {
	t.IsHandle = true
	t.IsHandleToConst = true
	return t
}

// WithRef returns T with the given parameter reference mode attached.
func (t DataType) WithRef(mode RefMode) DataType {
	t.RefMode = mode
	return t
}

// IsVoid reports whether this is the void type.
func (t DataType) IsVoid() bool { return t.Hash == ident.Void && !t.IsHandle }

// IsNull reports whether this is the null literal's pseudo-type.
func (t DataType) IsNull() bool { return t.Hash == ident.NullType }

// IsVariableParam reports whether this is the generic-calling-convention
// sentinel type used for parameters whose type is fixed at the
// call site.
func (t DataType) IsVariableParam() bool { return t.Hash == ident.VariableParam }

var primitiveNames = map[ident.TypeHash]string{
	ident.Void: "void", ident.Int8: "int8", ident.Int16: "int16",
	ident.Int32: "int", ident.Int64: "int64", ident.UInt8: "uint8",
	ident.UInt16: "uint16", ident.UInt32: "uint", ident.UInt64: "uint64",
	ident.Float32: "float", ident.Float64: "double", ident.Bool: "bool",
	ident.StringType: "string", ident.NullType: "<null>",
}

// baseName resolves a hash to its spelling for primitives; anything else
// is rendered as its raw hash — a Registry.TypeName lookup is needed to
// print user type names, which this package intentionally does not
// depend on (it sits below the registry in the layer stack).
func baseName(h ident.TypeHash) string {
	if n, ok := primitiveNames[h]; ok {
		return n
	}
	return fmt.Sprintf("<type#%x>", uint64(h))
}

// String renders the canonical spelling of the type: an optional
// leading `const`, the base, optional `@`, optional trailing `const`,
// optional reference-mode suffix.
func (t DataType) String() string {
	s := baseName(t.Hash)
	if t.IsConst {
		s = "const " + s
	}
	if t.IsHandle {
		s += "@"
		if t.IsHandleToConst {
			s += " const"
		}
	}
	if t.RefMode != RefNone {
		s += " " + t.RefMode.String()
	}
	return s
}

// Equal reports whether two DataTypes denote the same spelling (same
// hash and same modifier bits, including reference mode).
func (t DataType) Equal(other DataType) bool {
	return t.Hash == other.Hash &&
		t.IsConst == other.IsConst &&
		t.IsHandle == other.IsHandle &&
		t.IsHandleToConst == other.IsHandleToConst &&
		t.RefMode == other.RefMode
}

// SameBase reports whether two DataTypes share a base type hash,
// ignoring all modifiers — used by conversion/overload code that needs
// to know "is this fundamentally the same type regardless of
// const/handle dressing".
func (t DataType) SameBase(other DataType) bool { return t.Hash == other.Hash }

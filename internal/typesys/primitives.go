package typesys

import "github.com/cwbudde/ascript/internal/ident"

// Primitive DataType singletons, for convenience at call sites that
// don't need a registry lookup.
var (
	Void    = New(ident.Void)
	Int8    = New(ident.Int8)
	Int16   = New(ident.Int16)
	Int32   = New(ident.Int32)
	Int64   = New(ident.Int64)
	UInt8   = New(ident.UInt8)
	UInt16  = New(ident.UInt16)
	UInt32  = New(ident.UInt32)
	UInt64  = New(ident.UInt64)
	Float32 = New(ident.Float32)
	Float64 = New(ident.Float64)
	Bool    = New(ident.Bool)
	String  = New(ident.StringType)
	Null    = New(ident.NullType)
)

// IsPrimitive reports whether hash names one of the built-in primitive
// types (excluding string, which behaves like a value type with
// operators in AngelScript but is still a reserved hash).
func IsPrimitive(h ident.TypeHash) bool {
	switch h {
	case ident.Int8, ident.Int16, ident.Int32, ident.Int64,
		ident.UInt8, ident.UInt16, ident.UInt32, ident.UInt64,
		ident.Float32, ident.Float64, ident.Bool:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether h is one of the signed/unsigned integer
// primitives.
func IsIntegral(h ident.TypeHash) bool {
	switch h {
	case ident.Int8, ident.Int16, ident.Int32, ident.Int64,
		ident.UInt8, ident.UInt16, ident.UInt32, ident.UInt64:
		return true
	default:
		return false
	}
}

// IsFloating reports whether h is float or double.
func IsFloating(h ident.TypeHash) bool {
	return h == ident.Float32 || h == ident.Float64
}

// IsSigned reports whether h is one of the signed integer primitives.
func IsSigned(h ident.TypeHash) bool {
	switch h {
	case ident.Int8, ident.Int16, ident.Int32, ident.Int64:
		return true
	default:
		return false
	}
}

// Width returns the bit width of an integer or floating primitive, or 0
// if h does not name one.
func Width(h ident.TypeHash) int {
	switch h {
	case ident.Int8, ident.UInt8:
		return 8
	case ident.Int16, ident.UInt16:
		return 16
	case ident.Int32, ident.UInt32, ident.Float32:
		return 32
	case ident.Int64, ident.UInt64, ident.Float64:
		return 64
	default:
		return 0
	}
}

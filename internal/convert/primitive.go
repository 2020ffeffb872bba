package convert

import "github.com/cwbudde/ascript/internal/ident"

// widthRank orders a primitive family from narrowest to widest. Members
// of different families (signed vs. unsigned vs. floating) never widen
// into one another directly; that is PrimitiveNarrowing's catch-all.
var signedFamily = []ident.TypeHash{ident.Int8, ident.Int16, ident.Int32, ident.Int64}
var unsignedFamily = []ident.TypeHash{ident.UInt8, ident.UInt16, ident.UInt32, ident.UInt64}
var floatFamily = []ident.TypeHash{ident.Float32, ident.Float64}

func familyRank(family []ident.TypeHash, h ident.TypeHash) int {
	for i, f := range family {
		if f == h {
			return i
		}
	}
	return -1
}

func isInteger(h ident.TypeHash) bool {
	return familyRank(signedFamily, h) >= 0 || familyRank(unsignedFamily, h) >= 0
}

func isFloat(h ident.TypeHash) bool {
	return familyRank(floatFamily, h) >= 0
}

// primitiveConversion classifies a from->to pair where both are
// primitive base types (not handles). Returns ok=false when from equals
// to (the caller has already handled Identity).
func primitiveConversion(from, to ident.TypeHash) (Kind, bool) {
	if r := familyRank(signedFamily, from); r >= 0 {
		if r2 := familyRank(signedFamily, to); r2 >= 0 {
			if r2 > r {
				return PrimitiveWidening, true
			}
			return PrimitiveNarrowing, true
		}
	}
	if r := familyRank(unsignedFamily, from); r >= 0 {
		if r2 := familyRank(unsignedFamily, to); r2 >= 0 {
			if r2 > r {
				return PrimitiveWidening, true
			}
			return PrimitiveNarrowing, true
		}
	}
	if r := familyRank(floatFamily, from); r >= 0 {
		if r2 := familyRank(floatFamily, to); r2 >= 0 {
			if r2 > r {
				return PrimitiveWidening, true
			}
			return PrimitiveNarrowing, true
		}
	}

	switch {
	case isInteger(from) && isFloat(to):
		return PrimitiveMixed, true
	case isFloat(from) && isInteger(to):
		return PrimitiveNarrowing, true
	case isInteger(from) && isInteger(to):
		// Crosses the signed/unsigned boundary: no family widening
		// applies, so this is narrowing regardless of width.
		return PrimitiveNarrowing, true
	}

	return 0, false
}

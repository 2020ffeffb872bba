package operators

import (
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/convert"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/typesys"
)

// primClass groups the primitive base types into the families the
// bytecode opcode set actually distinguishes: int8/16/32 and uint8/16/32
// both promote to their 32-bit family member before any arithmetic or
// comparison opcode runs, since no 8- or 16-bit arithmetic opcode
// exists.
type primClass int

const (
	classInt32 primClass = iota
	classInt64
	classUInt32
	classUInt64
	classFloat32
	classFloat64
	classBool
)

func classify(h ident.TypeHash) (primClass, bool) {
	switch h {
	case ident.Int8, ident.Int16, ident.Int32:
		return classInt32, true
	case ident.Int64:
		return classInt64, true
	case ident.UInt8, ident.UInt16, ident.UInt32:
		return classUInt32, true
	case ident.UInt64:
		return classUInt64, true
	case ident.Float32:
		return classFloat32, true
	case ident.Float64:
		return classFloat64, true
	case ident.Bool:
		return classBool, true
	default:
		return 0, false
	}
}

func classType(c primClass) typesys.DataType {
	switch c {
	case classInt32:
		return typesys.Int32
	case classInt64:
		return typesys.Int64
	case classUInt32:
		return typesys.UInt32
	case classUInt64:
		return typesys.UInt64
	case classFloat32:
		return typesys.Float32
	case classFloat64:
		return typesys.Float64
	default:
		return typesys.Bool
	}
}

type arith struct{ Add, Sub, Mul, Div, Mod bytecode.OpCode }

// arithOpcodes gives each class its four/five arithmetic opcodes.
// Add/Sub/Mul are bit-identical for signed and unsigned operands of the
// same width and so are shared; Div/Mod are not. Float classes have no
// Div-family split since floating arithmetic has no signedness.
var arithOpcodes = map[primClass]arith{
	classInt32:   {bytecode.OpAddI32, bytecode.OpSubI32, bytecode.OpMulI32, bytecode.OpDivI32, bytecode.OpModI32},
	classInt64:   {bytecode.OpAddI64, bytecode.OpSubI64, bytecode.OpMulI64, bytecode.OpDivI64, bytecode.OpModI64},
	classUInt32:  {bytecode.OpAddI32, bytecode.OpSubI32, bytecode.OpMulI32, bytecode.OpDivU32, bytecode.OpModU32},
	classUInt64:  {bytecode.OpAddI64, bytecode.OpSubI64, bytecode.OpMulI64, bytecode.OpDivU64, bytecode.OpModU64},
	classFloat32: {bytecode.OpAddF32, bytecode.OpSubF32, bytecode.OpMulF32, bytecode.OpDivF32, bytecode.OpModF32},
	classFloat64: {bytecode.OpAddF64, bytecode.OpSubF64, bytecode.OpMulF64, bytecode.OpDivF64, bytecode.OpModF64},
}

func (a arith) pick(op BinaryOp) bytecode.OpCode {
	switch op {
	case Add:
		return a.Add
	case Sub:
		return a.Sub
	case Mul:
		return a.Mul
	case Div:
		return a.Div
	default:
		return a.Mod
	}
}

type cmp struct{ Eq, Lt, Le, Gt, Ge bytecode.OpCode }

// cmpOpcodes gives each class its comparison opcodes. Eq is shared
// between a class and its opposite-signedness same-width counterpart;
// ordering is not, since it depends on the bit pattern's interpretation.
var cmpOpcodes = map[primClass]cmp{
	classInt32:   {bytecode.OpEqI32, bytecode.OpLtI32, bytecode.OpLeI32, bytecode.OpGtI32, bytecode.OpGeI32},
	classInt64:   {bytecode.OpEqI64, bytecode.OpLtI64, bytecode.OpLeI64, bytecode.OpGtI64, bytecode.OpGeI64},
	classUInt32:  {bytecode.OpEqI32, bytecode.OpLtU32, bytecode.OpLeU32, bytecode.OpGtU32, bytecode.OpGeU32},
	classUInt64:  {bytecode.OpEqI64, bytecode.OpLtU64, bytecode.OpLeU64, bytecode.OpGtU64, bytecode.OpGeU64},
	classFloat32: {bytecode.OpEqF32, bytecode.OpLtF32, bytecode.OpLeF32, bytecode.OpGtF32, bytecode.OpGeF32},
	classFloat64: {bytecode.OpEqF64, bytecode.OpLtF64, bytecode.OpLeF64, bytecode.OpGtF64, bytecode.OpGeF64},
}

func (c cmp) pick(op BinaryOp) bytecode.OpCode {
	switch op {
	case Less:
		return c.Lt
	case LessEqual:
		return c.Le
	case Greater:
		return c.Gt
	default:
		return c.Ge
	}
}

func isIntClass(c primClass) bool {
	return c == classInt32 || c == classInt64 || c == classUInt32 || c == classUInt64
}

// promotionOpcode returns the conversion opcode stepping a value of
// class from up to class to, or ok=false when from==to (no conversion
// needed) or no such opcode exists. Only the five widenings the
// bytecode package actually defines have an opcode: int32->int64,
// int32->float32, int32->float64, int64->float64, float32->float64.
// tryPrimitiveBinary does not take the primitive path for any other
// promotion (e.g. uint32->float64 or int64->float32).
func promotionOpcode(from, to primClass) (bytecode.OpCode, bool) {
	switch {
	case from == classInt32 && to == classInt64:
		return bytecode.OpI32toI64, true
	case from == classInt32 && to == classFloat32:
		return bytecode.OpI32toF32, true
	case from == classInt32 && to == classFloat64:
		return bytecode.OpI32toF64, true
	case from == classInt64 && to == classFloat64:
		return bytecode.OpI64toF64, true
	case from == classFloat32 && to == classFloat64:
		return bytecode.OpF32toF64, true
	default:
		return 0, false
	}
}

// commonClassCandidates are tried in order; the first that both lc and
// rc can implicitly reach is used. This order is always optimal: Int64
// is only reachable by a pure-signed-int pair (the cheapest possible
// promotion), and Float32 — when reachable at all — never costs more
// than Float64 for the same pair, since reaching Float64 from Float32
// costs strictly more than stopping at Float32.
var commonClassCandidates = []primClass{classInt64, classFloat32, classFloat64}

// commonClass finds the cheapest primitive class both lc and rc
// implicitly convert into, reusing internal/convert's existing
// conversion-cost table rather than re-deriving a promotion lattice.
// lc and rc must already differ; mixed signed/unsigned integer pairs
// never find a common class here, since internal/convert classifies
// crossing the sign boundary as non-implicit narrowing regardless of
// width — so, like real AngelScript, this primitive fast path simply
// doesn't apply to them and resolution falls through to operator
// overloads (and from there, ordinarily, to InvalidBinaryOperator).
//
// When both sides are integers, only classInt64 is tried: convert's
// int-to-float Mixed classification doesn't consider signedness, so
// without this restriction two differently-signed integers would
// silently find a "common" float class neither operand asked for.
// uint32+uint64 also finds no common class here, since the bytecode
// set has no dedicated zero-extending widening opcode; it falls
// through to method lookup like any other non-primitive mix.
func commonClass(lc, rc primClass) (primClass, bool) {
	candidates := commonClassCandidates
	if isIntClass(lc) && isIntClass(rc) {
		candidates = []primClass{classInt64}
	}
	for _, ct := range candidates {
		lok := lc == ct
		rok := rc == ct
		if !lok {
			if c, ok := convert.Classify(nil, classType(lc), classType(ct)); ok && c.Implicit {
				lok = true
			}
		}
		if !rok {
			if c, ok := convert.Classify(nil, classType(rc), classType(ct)); ok && c.Implicit {
				rok = true
			}
		}
		if lok && rok {
			return ct, true
		}
	}
	return 0, false
}

func convPtr(op bytecode.OpCode, ok bool) *bytecode.OpCode {
	if !ok {
		return nil
	}
	return &op
}

// tryPrimitiveBinary resolves op directly to a primitive opcode when
// both operands are non-handle primitives, promoting to a common class
// as needed. Comparison operators always yield bool.
func tryPrimitiveBinary(op BinaryOp, left, right typesys.DataType) (BinaryResolution, bool) {
	if left.IsHandle || right.IsHandle {
		return BinaryResolution{}, false
	}
	lc, lok := classify(left.Hash)
	rc, rok := classify(right.Hash)
	if !lok || !rok {
		return BinaryResolution{}, false
	}

	if lc == classBool || rc == classBool {
		if lc != classBool || rc != classBool {
			return BinaryResolution{}, false
		}
		switch op {
		case Equal:
			return BinaryResolution{Kind: Primitive, Opcode: bytecode.OpEqBool, ResultType: typesys.Bool}, true
		case NotEqual:
			return BinaryResolution{Kind: Primitive, Opcode: bytecode.OpEqBool, Negate: true, ResultType: typesys.Bool}, true
		default:
			return BinaryResolution{}, false
		}
	}

	if isBitwise(op) {
		if !isIntClass(lc) || !isIntClass(rc) {
			return BinaryResolution{}, false
		}
		common := lc
		var leftConv, rightConv *bytecode.OpCode
		if lc != rc {
			c, ok := commonClass(lc, rc)
			if !ok || !isIntClass(c) {
				return BinaryResolution{}, false
			}
			common = c
			leftConv = convPtr(promotionOpcode(lc, common))
			rightConv = convPtr(promotionOpcode(rc, common))
		}
		opcode := bitwiseOpcode(op)
		return BinaryResolution{Kind: Primitive, Opcode: opcode, LeftConv: leftConv, RightConv: rightConv, ResultType: classType(common)}, true
	}

	common := lc
	var leftConv, rightConv *bytecode.OpCode
	if lc != rc {
		c, ok := commonClass(lc, rc)
		if !ok {
			return BinaryResolution{}, false
		}
		common = c
		lop, lhas := promotionOpcode(lc, common)
		rop, rhas := promotionOpcode(rc, common)
		if (lc != common && !lhas) || (rc != common && !rhas) {
			return BinaryResolution{}, false
		}
		leftConv = convPtr(lop, lhas)
		rightConv = convPtr(rop, rhas)
	}

	if isRelational(op) || op == Equal || op == NotEqual {
		opcodes, ok := cmpOpcodes[common]
		if !ok {
			return BinaryResolution{}, false
		}
		if op == NotEqual {
			return BinaryResolution{Kind: Primitive, Opcode: opcodes.Eq, LeftConv: leftConv, RightConv: rightConv, Negate: true, ResultType: typesys.Bool}, true
		}
		if op == Equal {
			return BinaryResolution{Kind: Primitive, Opcode: opcodes.Eq, LeftConv: leftConv, RightConv: rightConv, ResultType: typesys.Bool}, true
		}
		return BinaryResolution{Kind: Primitive, Opcode: opcodes.pick(op), LeftConv: leftConv, RightConv: rightConv, ResultType: typesys.Bool}, true
	}

	opcodes, ok := arithOpcodes[common]
	if !ok {
		return BinaryResolution{}, false
	}
	return BinaryResolution{Kind: Primitive, Opcode: opcodes.pick(op), LeftConv: leftConv, RightConv: rightConv, ResultType: classType(common)}, true
}

func bitwiseOpcode(op BinaryOp) bytecode.OpCode {
	switch op {
	case BitwiseAnd:
		return bytecode.OpBitAnd
	case BitwiseOr:
		return bytecode.OpBitOr
	case BitwiseXor:
		return bytecode.OpBitXor
	case ShiftLeft:
		return bytecode.OpShl
	case ShiftRight:
		return bytecode.OpShr
	default:
		return bytecode.OpUshr
	}
}

// unaryNegOpcodes maps each signed/floating class to its negation
// opcode. Unsigned classes have no primitive negation — AngelScript
// does not define unary minus on an unsigned type — so they fall
// through to opNeg method lookup, ordinarily failing.
var unaryNegOpcodes = map[primClass]bytecode.OpCode{
	classInt32:   bytecode.OpNegI32,
	classInt64:   bytecode.OpNegI64,
	classFloat32: bytecode.OpNegF32,
	classFloat64: bytecode.OpNegF64,
}

var preIncOpcodes = map[primClass]bytecode.OpCode{
	classInt32: bytecode.OpPreIncI32, classUInt32: bytecode.OpPreIncI32,
	classInt64: bytecode.OpPreIncI64, classUInt64: bytecode.OpPreIncI64,
}
var preDecOpcodes = map[primClass]bytecode.OpCode{
	classInt32: bytecode.OpPreDecI32, classUInt32: bytecode.OpPreDecI32,
	classInt64: bytecode.OpPreDecI64, classUInt64: bytecode.OpPreDecI64,
}
var postIncOpcodes = map[primClass]bytecode.OpCode{
	classInt32: bytecode.OpPostIncI32, classUInt32: bytecode.OpPostIncI32,
	classInt64: bytecode.OpPostIncI64, classUInt64: bytecode.OpPostIncI64,
}
var postDecOpcodes = map[primClass]bytecode.OpCode{
	classInt32: bytecode.OpPostDecI32, classUInt32: bytecode.OpPostDecI32,
	classInt64: bytecode.OpPostDecI64, classUInt64: bytecode.OpPostDecI64,
}

// tryPrimitiveUnary resolves op directly to a primitive opcode for a
// non-handle primitive operand, or to a no-op for unary `+` on any
// numeric type.
func tryPrimitiveUnary(op UnaryOp, operand typesys.DataType) (UnaryResolution, bool) {
	if operand.IsHandle {
		return UnaryResolution{}, false
	}
	c, ok := classify(operand.Hash)
	if !ok {
		return UnaryResolution{}, false
	}

	switch op {
	case Neg:
		if opc, ok := unaryNegOpcodes[c]; ok {
			return UnaryResolution{Kind: UnaryPrimitive, Opcode: opc, ResultType: classType(c)}, true
		}
		return UnaryResolution{}, false
	case LogicalNot:
		if c != classBool {
			return UnaryResolution{}, false
		}
		return UnaryResolution{Kind: UnaryPrimitive, Opcode: bytecode.OpLogNot, ResultType: typesys.Bool}, true
	case BitwiseNot:
		if !isIntClass(c) {
			return UnaryResolution{}, false
		}
		return UnaryResolution{Kind: UnaryPrimitive, Opcode: bytecode.OpBitNot, ResultType: classType(c)}, true
	case Plus:
		if c == classBool {
			return UnaryResolution{}, false
		}
		return UnaryResolution{Kind: UnaryNoOp, ResultType: classType(c)}, true
	case PreIncrement:
		if opc, ok := preIncOpcodes[c]; ok {
			return UnaryResolution{Kind: UnaryPrimitive, Opcode: opc, ResultType: classType(c)}, true
		}
		return UnaryResolution{}, false
	case PreDecrement:
		if opc, ok := preDecOpcodes[c]; ok {
			return UnaryResolution{Kind: UnaryPrimitive, Opcode: opc, ResultType: classType(c)}, true
		}
		return UnaryResolution{}, false
	case PostIncrement:
		if opc, ok := postIncOpcodes[c]; ok {
			return UnaryResolution{Kind: UnaryPrimitive, Opcode: opc, ResultType: classType(c)}, true
		}
		return UnaryResolution{}, false
	case PostDecrement:
		if opc, ok := postDecOpcodes[c]; ok {
			return UnaryResolution{Kind: UnaryPrimitive, Opcode: opc, ResultType: classType(c)}, true
		}
		return UnaryResolution{}, false
	default:
		return UnaryResolution{}, false
	}
}

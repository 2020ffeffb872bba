// Package operators resolves a binary, unary, or assignment operator
// applied to concrete operand types into something the expression
// compiler can emit: a primitive opcode (with any promotion recorded as
// a conversion on one or both sides), a user-defined operator method
// call, or — for `is`/`!is` — a direct handle-identity comparison.
//
// Resolution never touches the AST: callers already know which
// BinaryOp/UnaryOp/AssignOp a token maps to and pass operand DataTypes
// straight from whatever expression typing already produced.
package operators

import (
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/convert"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/overload"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// BinaryOp enumerates the binary operator tokens the expression
// compiler can ask this package to resolve.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight
	ShiftRightUnsigned
	Is
	IsNot
)

var binarySymbols = map[BinaryOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
	Equal: "==", NotEqual: "!=",
	Less: "<", LessEqual: "<=", Greater: ">", GreaterEqual: ">=",
	BitwiseAnd: "&", BitwiseOr: "|", BitwiseXor: "^",
	ShiftLeft: "<<", ShiftRight: ">>", ShiftRightUnsigned: ">>>",
	Is: "is", IsNot: "!is",
}

func (op BinaryOp) String() string {
	if s, ok := binarySymbols[op]; ok {
		return s
	}
	return "<unknown-op>"
}

func isRelational(op BinaryOp) bool {
	switch op {
	case Less, LessEqual, Greater, GreaterEqual:
		return true
	default:
		return false
	}
}

func isBitwise(op BinaryOp) bool {
	switch op {
	case BitwiseAnd, BitwiseOr, BitwiseXor, ShiftLeft, ShiftRight, ShiftRightUnsigned:
		return true
	default:
		return false
	}
}

// UnaryOp enumerates the unary operator tokens this package resolves.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Plus
	LogicalNot
	BitwiseNot
	PreIncrement
	PreDecrement
	PostIncrement
	PostDecrement
)

var unarySymbols = map[UnaryOp]string{
	Neg: "-", Plus: "+", LogicalNot: "!", BitwiseNot: "~",
	PreIncrement: "++x", PreDecrement: "--x",
	PostIncrement: "x++", PostDecrement: "x--",
}

func (op UnaryOp) String() string {
	if s, ok := unarySymbols[op]; ok {
		return s
	}
	return "<unknown-op>"
}

// AssignOp enumerates plain and compound assignment.
type AssignOp int

const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
	AndAssign
	OrAssign
	XorAssign
	ShlAssign
	ShrAssign
	UShrAssign
)

var assignSymbols = map[AssignOp]string{
	Assign: "=", AddAssign: "+=", SubAssign: "-=", MulAssign: "*=",
	DivAssign: "/=", ModAssign: "%=", AndAssign: "&=", OrAssign: "|=",
	XorAssign: "^=", ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=",
}

func (op AssignOp) String() string {
	if s, ok := assignSymbols[op]; ok {
		return s
	}
	return "<unknown-op>"
}

// ResolutionKind distinguishes how a binary operator was resolved.
type ResolutionKind int

const (
	Primitive ResolutionKind = iota
	MethodOnLeft
	MethodOnRight
	HandleIdentity
)

// BinaryResolution is the outcome of resolving one binary operator
// against concrete operand types.
//
// For Primitive, Opcode is the operation itself; LeftConv/RightConv are
// non-nil only when that side needs a widening conversion emitted
// before Opcode runs. For MethodOnLeft/MethodOnRight, Method is the
// resolved opXxx/opXxx_r overload and Conversions holds the single
// argument conversion overload.Resolve chose; PostCompare is set only
// when Method is opCmp and the caller must follow the call with a push
// of zero and this comparison opcode to derive a bool. For
// HandleIdentity, Negate distinguishes `!is` from `is`. Negate is also
// set on a Primitive/Method resolution of `!=` built from an equality
// opcode or opEquals method plus a following OpLogNot.
type BinaryResolution struct {
	Kind        ResolutionKind
	Opcode      bytecode.OpCode
	LeftConv    *bytecode.OpCode
	RightConv   *bytecode.OpCode
	Method      ident.FunctionHash
	Conversions []convert.Conversion
	PostCompare *bytecode.OpCode
	Negate      bool
	ResultType  typesys.DataType
}

// UnaryResolutionKind distinguishes how a unary operator was resolved.
type UnaryResolutionKind int

const (
	UnaryPrimitive UnaryResolutionKind = iota
	UnaryNoOp
	UnaryMethod
)

// UnaryResolution is the outcome of resolving one unary operator.
type UnaryResolution struct {
	Kind       UnaryResolutionKind
	Opcode     bytecode.OpCode
	Method     ident.FunctionHash
	ResultType typesys.DataType
}

// AssignKind distinguishes how an assignment operator was resolved.
type AssignKind int

const (
	AssignDirect AssignKind = iota
	AssignMethod
	AssignCompute
)

// AssignResolution is the outcome of resolving `=` or a compound
// assignment operator. AssignDirect carries the plain store Conversion;
// AssignMethod carries the resolved opAssign/opAddAssign-family method
// and its argument conversion; AssignCompute carries the underlying
// BinaryResolution for the compute step plus the Conversion needed to
// store its result back into target.
type AssignResolution struct {
	Kind        AssignKind
	Conversion  convert.Conversion
	Method      ident.FunctionHash
	Conversions []convert.Conversion
	Binary      BinaryResolution
	ResultType  typesys.DataType
}

// ResolveBinary implements the operator resolver: is/!is handle
// identity is decided first, then primitive opcode for a common
// promoted type, then opXxx(R) on L, then opXxx_r(L) on R, else
// InvalidBinaryOperator.
func ResolveBinary(reg *registry.Registry, op BinaryOp, left, right typesys.DataType) (BinaryResolution, error) {
	if op == Is || op == IsNot {
		if !left.IsHandle || !right.IsHandle {
			return BinaryResolution{}, diag.New(diag.InvalidBinaryOperator, diag.Span{},
				"%s requires both operands to be handles, got %s and %s", op, left, right)
		}
		return BinaryResolution{Kind: HandleIdentity, Opcode: bytecode.OpRefEq, Negate: op == IsNot, ResultType: typesys.Bool}, nil
	}

	if res, ok := tryPrimitiveBinary(op, left, right); ok {
		return res, nil
	}

	name := binaryMethodName(op)
	if res, ok := tryMethodOnLeft(reg, op, name, left, right); ok {
		return res, nil
	}
	if res, ok := tryMethodOnRight(reg, op, name, left, right); ok {
		return res, nil
	}

	return BinaryResolution{}, diag.New(diag.InvalidBinaryOperator, diag.Span{},
		"no operator %s defined between %s and %s", op, left, right)
}

func binaryMethodName(op BinaryOp) string {
	switch op {
	case Add:
		return "opAdd"
	case Sub:
		return "opSub"
	case Mul:
		return "opMul"
	case Div:
		return "opDiv"
	case Mod:
		return "opMod"
	case BitwiseAnd:
		return "opAnd"
	case BitwiseOr:
		return "opOr"
	case BitwiseXor:
		return "opXor"
	case ShiftLeft:
		return "opShl"
	case ShiftRight:
		return "opShr"
	case ShiftRightUnsigned:
		return "opUShr"
	case Equal, NotEqual:
		return "opEquals"
	case Less, LessEqual, Greater, GreaterEqual:
		return "opCmp"
	default:
		return ""
	}
}

func relationalOpcode(op BinaryOp) bytecode.OpCode {
	switch op {
	case Less:
		return bytecode.OpLtI32
	case LessEqual:
		return bytecode.OpLeI32
	case Greater:
		return bytecode.OpGtI32
	default:
		return bytecode.OpGeI32
	}
}

func tryMethodOnLeft(reg *registry.Registry, op BinaryOp, name string, left, right typesys.DataType) (BinaryResolution, bool) {
	if name == "" || left.IsHandle {
		return BinaryResolution{}, false
	}
	candidates := reg.FindMethods(left.Hash, name)
	if len(candidates) == 0 {
		return BinaryResolution{}, false
	}
	res, err := overload.Resolve(reg, overload.Call{Candidates: candidates, Args: []typesys.DataType{right}})
	if err != nil {
		return BinaryResolution{}, false
	}
	return methodResolution(reg, MethodOnLeft, op, res), true
}

func tryMethodOnRight(reg *registry.Registry, op BinaryOp, name string, left, right typesys.DataType) (BinaryResolution, bool) {
	if name == "" || right.IsHandle {
		return BinaryResolution{}, false
	}
	candidates := reg.FindMethods(right.Hash, name+"_r")
	if len(candidates) == 0 {
		return BinaryResolution{}, false
	}
	res, err := overload.Resolve(reg, overload.Call{Candidates: candidates, Args: []typesys.DataType{left}})
	if err != nil {
		return BinaryResolution{}, false
	}
	return methodResolution(reg, MethodOnRight, op, res), true
}

func methodResolution(reg *registry.Registry, kind ResolutionKind, op BinaryOp, res overload.Result) BinaryResolution {
	br := BinaryResolution{Kind: kind, Method: res.Function, Conversions: res.Conversions}
	if isRelational(op) {
		opc := relationalOpcode(op)
		br.PostCompare = &opc
		br.ResultType = typesys.Bool
		return br
	}
	if op == NotEqual {
		br.Negate = true
		br.ResultType = typesys.Bool
		return br
	}
	if def := reg.GetFunction(res.Function); def != nil {
		br.ResultType = def.Return
	}
	return br
}

// ResolveUnary resolves a unary operator: primitive opcode, numeric
// no-op for unary `+`, then opNeg/opNot/opCom/opPreInc/opPreDec, else
// InvalidUnaryOperator.
func ResolveUnary(reg *registry.Registry, op UnaryOp, operand typesys.DataType) (UnaryResolution, error) {
	if res, ok := tryPrimitiveUnary(op, operand); ok {
		return res, nil
	}

	name := unaryMethodName(op)
	if name != "" && !operand.IsHandle {
		if candidates := reg.FindMethods(operand.Hash, name); len(candidates) > 0 {
			if res, err := overload.Resolve(reg, overload.Call{Candidates: candidates}); err == nil {
				result := typesys.Void
				if def := reg.GetFunction(res.Function); def != nil {
					result = def.Return
				}
				return UnaryResolution{Kind: UnaryMethod, Method: res.Function, ResultType: result}, nil
			}
		}
	}

	return UnaryResolution{}, diag.New(diag.InvalidUnaryOperator, diag.Span{},
		"no operator %s defined for %s", op, operand)
}

func unaryMethodName(op UnaryOp) string {
	switch op {
	case Neg:
		return "opNeg"
	case LogicalNot:
		return "opNot"
	case BitwiseNot:
		return "opCom"
	case PreIncrement:
		return "opPreInc"
	case PreDecrement:
		return "opPreDec"
	case PostIncrement:
		return "opPostInc"
	case PostDecrement:
		return "opPostDec"
	default:
		return ""
	}
}

func assignMethodName(op AssignOp) string {
	switch op {
	case Assign:
		return "opAssign"
	case AddAssign:
		return "opAddAssign"
	case SubAssign:
		return "opSubAssign"
	case MulAssign:
		return "opMulAssign"
	case DivAssign:
		return "opDivAssign"
	case ModAssign:
		return "opModAssign"
	case AndAssign:
		return "opAndAssign"
	case OrAssign:
		return "opOrAssign"
	case XorAssign:
		return "opXorAssign"
	case ShlAssign:
		return "opShlAssign"
	case ShrAssign:
		return "opShrAssign"
	case UShrAssign:
		return "opUShrAssign"
	default:
		return ""
	}
}

func binaryOpFor(op AssignOp) (BinaryOp, bool) {
	switch op {
	case AddAssign:
		return Add, true
	case SubAssign:
		return Sub, true
	case MulAssign:
		return Mul, true
	case DivAssign:
		return Div, true
	case ModAssign:
		return Mod, true
	case AndAssign:
		return BitwiseAnd, true
	case OrAssign:
		return BitwiseOr, true
	case XorAssign:
		return BitwiseXor, true
	case ShlAssign:
		return ShiftLeft, true
	case ShrAssign:
		return ShiftRight, true
	case UShrAssign:
		return ShiftRightUnsigned, true
	default:
		return 0, false
	}
}

// ResolveAssign resolves `=` or a compound assignment operator: the
// corresponding opAssign/opAddAssign-family method on target first,
// then — for compound forms — computing via ResolveBinary and
// converting the result back into target. Plain `=` with no opAssign
// override falls back to a direct store conversion.
func ResolveAssign(reg *registry.Registry, op AssignOp, target, value typesys.DataType) (AssignResolution, error) {
	if name := assignMethodName(op); name != "" && !target.IsHandle {
		if candidates := reg.FindMethods(target.Hash, name); len(candidates) > 0 {
			if res, err := overload.Resolve(reg, overload.Call{Candidates: candidates, Args: []typesys.DataType{value}}); err == nil {
				return AssignResolution{Kind: AssignMethod, Method: res.Function, Conversions: res.Conversions, ResultType: target}, nil
			}
		}
	}

	if op == Assign {
		conv, ok := convert.Classify(reg, value, target)
		if !ok || !conv.Implicit {
			return AssignResolution{}, diag.New(diag.InvalidBinaryOperator, diag.Span{},
				"cannot assign %s to %s", value, target)
		}
		return AssignResolution{Kind: AssignDirect, Conversion: conv, ResultType: target}, nil
	}

	baseOp, ok := binaryOpFor(op)
	if !ok {
		return AssignResolution{}, diag.New(diag.InvalidBinaryOperator, diag.Span{},
			"no compound assignment operator %s for %s", op, target)
	}
	binRes, err := ResolveBinary(reg, baseOp, target, value)
	if err != nil {
		return AssignResolution{}, err
	}
	storeConv, ok := convert.Classify(reg, binRes.ResultType, target)
	if !ok || !storeConv.Implicit {
		return AssignResolution{}, diag.New(diag.InvalidBinaryOperator, diag.Span{},
			"result of %s cannot convert back into %s", op, target)
	}
	return AssignResolution{Kind: AssignCompute, Binary: binRes, Conversion: storeConv, ResultType: target}, nil
}

package compiler

import (
	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/convert"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/operators"
	"github.com/cwbudde/ascript/internal/overload"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

func (c *Compiler) env(pos resolve.Position) resolve.Env {
	return resolve.Env{Namespace: c.Namespace, Position: pos}
}

func (c *Compiler) resolveType(te *ast.TypeExpr, pos resolve.Position) (typesys.DataType, error) {
	return c.Resolver.Resolve(te, c.env(pos))
}

// compileExpr compiles e, leaving exactly one value on the stack (unless
// e is a void call), and returns its static type.
func (c *Compiler) compileExpr(e ast.Expr) (typesys.DataType, error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		c.emitter.SetLine(n.Sp.Line)
		idx := c.emitter.Chunk().AddConstI32(int32(n.Value))
		c.emitter.Emit(bytecode.OpPushI32, 0, uint16(idx))
		return typesys.Int32, nil

	case *ast.FloatLiteral:
		c.emitter.SetLine(n.Sp.Line)
		if n.IsSingle {
			idx := c.emitter.Chunk().AddConstF32(float32(n.Value))
			c.emitter.Emit(bytecode.OpPushF32, 0, uint16(idx))
			return typesys.Float32, nil
		}
		idx := c.emitter.Chunk().AddConstF64(n.Value)
		c.emitter.Emit(bytecode.OpPushF64, 0, uint16(idx))
		return typesys.Float64, nil

	case *ast.StringLiteral:
		c.emitter.SetLine(n.Sp.Line)
		idx := c.emitter.Chunk().AddConstStr(n.Value)
		c.emitter.Emit(bytecode.OpPushConst, 0, uint16(idx))
		return typesys.String, nil

	case *ast.BoolLiteral:
		c.emitter.SetLine(n.Sp.Line)
		if n.Value {
			c.emitter.EmitSimple(bytecode.OpPushTrue)
		} else {
			c.emitter.EmitSimple(bytecode.OpPushFalse)
		}
		return typesys.Bool, nil

	case *ast.NullLiteral:
		c.emitter.SetLine(n.Sp.Line)
		c.emitter.EmitSimple(bytecode.OpPushZero)
		return typesys.Null, nil

	case *ast.ThisExpr:
		if c.Self.Hash == 0 && !c.Self.IsHandle {
			return typesys.DataType{}, diag.New(diag.UnresolvedIdentifier, n.Sp, "this is not available outside a method")
		}
		c.emitter.SetLine(n.Sp.Line)
		c.emitter.EmitSimple(bytecode.OpGetThis)
		return c.Self, nil

	case *ast.Identifier:
		return c.compileIdentifierLoad(n)

	case *ast.BinaryExpr:
		return c.compileBinary(n)

	case *ast.UnaryExpr:
		return c.compileUnary(n)

	case *ast.PostfixExpr:
		return c.compilePostfix(n)

	case *ast.AssignExpr:
		return c.compileAssign(n)

	case *ast.MemberExpr:
		return c.compileMemberLoad(n)

	case *ast.IndexExpr:
		return c.compileIndex(n)

	case *ast.CallExpr:
		return c.compileCall(n)

	case *ast.ConstructExpr:
		return c.compileConstruct(n)

	case *ast.CastExpr:
		return c.compileCast(n)

	case *ast.ConvExpr:
		return c.compileConv(n)

	case *ast.SuperExpr:
		return c.compileSuperCall(n)

	case *ast.TernaryExpr:
		return c.compileTernary(n)

	case *ast.LambdaExpr:
		return c.compileLambda(n)

	default:
		return typesys.DataType{}, diag.New(diag.Internal, e.Span(), "unhandled expression node %T", e)
	}
}

// typeOf computes e's static type without emitting any instructions; it
// is used to type call arguments and binary operands ahead of overload
// and operator resolution, whose outcome decides what compileExpr then
// emits for those same nodes.
func (c *Compiler) typeOf(e ast.Expr) (typesys.DataType, error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return typesys.Int32, nil
	case *ast.FloatLiteral:
		if n.IsSingle {
			return typesys.Float32, nil
		}
		return typesys.Float64, nil
	case *ast.StringLiteral:
		return typesys.String, nil
	case *ast.BoolLiteral:
		return typesys.Bool, nil
	case *ast.NullLiteral:
		return typesys.Null, nil
	case *ast.ThisExpr:
		return c.Self, nil
	case *ast.Identifier:
		_, typ, err := c.resolveIdentifier(n)
		return typ, err
	case *ast.BinaryExpr:
		lt, err := c.typeOf(n.Left)
		if err != nil {
			return typesys.DataType{}, err
		}
		rt, err := c.typeOf(n.Right)
		if err != nil {
			return typesys.DataType{}, err
		}
		op, err := binaryOpFromToken(n.Op, n.Sp)
		if err != nil {
			return typesys.DataType{}, err
		}
		res, err := operators.ResolveBinary(c.Registry, op, lt, rt)
		if err != nil {
			return typesys.DataType{}, err
		}
		return res.ResultType, nil
	case *ast.UnaryExpr:
		ot, err := c.typeOf(n.Operand)
		if err != nil {
			return typesys.DataType{}, err
		}
		if n.Op == "++" || n.Op == "--" {
			return ot, nil
		}
		op, err := unaryOpFromToken(n.Op, n.Sp)
		if err != nil {
			return typesys.DataType{}, err
		}
		res, err := operators.ResolveUnary(c.Registry, op, ot)
		if err != nil {
			return typesys.DataType{}, err
		}
		return res.ResultType, nil
	case *ast.PostfixExpr:
		return c.typeOf(n.Operand)
	case *ast.AssignExpr:
		return c.typeOf(n.Target)
	case *ast.MemberExpr:
		rt, err := c.typeOf(n.Receiver)
		if err != nil {
			return typesys.DataType{}, err
		}
		_, ft, ok := c.lookupField(rt, n.Name)
		if !ok {
			return typesys.DataType{}, diag.New(diag.UnknownField, n.Sp, "unknown field %q on %s", n.Name, rt)
		}
		return ft, nil
	case *ast.IndexExpr:
		rt, err := c.typeOf(n.Receiver)
		if err != nil {
			return typesys.DataType{}, err
		}
		it, err := c.typeOf(n.Index)
		if err != nil {
			return typesys.DataType{}, err
		}
		res, err := c.resolveOperatorMethod(rt, "opIndex", []typesys.DataType{it}, n.Sp)
		if err != nil {
			return typesys.DataType{}, err
		}
		def := c.Registry.GetFunction(res.Function)
		if def == nil {
			return typesys.DataType{}, diag.New(diag.Internal, n.Sp, "opIndex resolved to unregistered function")
		}
		return def.Return, nil
	case *ast.CallExpr:
		return c.typeOfCall(n)
	case *ast.ConstructExpr:
		return c.resolveType(n.Type, resolve.PosLocal)
	case *ast.CastExpr:
		return c.resolveType(n.Type, resolve.PosLocal)
	case *ast.ConvExpr:
		return c.resolveType(n.Type, resolve.PosLocal)
	case *ast.SuperExpr:
		return typesys.Void, nil
	case *ast.TernaryExpr:
		return c.typeOf(n.Then)
	case *ast.LambdaExpr:
		// A lambda's precise funcdef type depends on the expected target
		// at its use site, which this bottom-up inference doesn't have
		// access to; callers needing the exact funcdef type resolve it
		// from context (e.g. the parameter type it's passed into) rather
		// than from here.
		return typesys.Void, nil
	default:
		return typesys.DataType{}, diag.New(diag.Internal, e.Span(), "unhandled expression node %T", e)
	}
}

func binaryOpFromToken(tok string, sp diag.Span) (operators.BinaryOp, error) {
	switch tok {
	case "+":
		return operators.Add, nil
	case "-":
		return operators.Sub, nil
	case "*":
		return operators.Mul, nil
	case "/":
		return operators.Div, nil
	case "%":
		return operators.Mod, nil
	case "==":
		return operators.Equal, nil
	case "!=":
		return operators.NotEqual, nil
	case "<":
		return operators.Less, nil
	case "<=":
		return operators.LessEqual, nil
	case ">":
		return operators.Greater, nil
	case ">=":
		return operators.GreaterEqual, nil
	case "&":
		return operators.BitwiseAnd, nil
	case "|":
		return operators.BitwiseOr, nil
	case "^":
		return operators.BitwiseXor, nil
	case "<<":
		return operators.ShiftLeft, nil
	case ">>":
		return operators.ShiftRight, nil
	case ">>>":
		return operators.ShiftRightUnsigned, nil
	case "is":
		return operators.Is, nil
	case "!is":
		return operators.IsNot, nil
	default:
		return 0, diag.New(diag.Internal, sp, "unknown binary operator token %q", tok)
	}
}

func unaryOpFromToken(tok string, sp diag.Span) (operators.UnaryOp, error) {
	switch tok {
	case "-":
		return operators.Neg, nil
	case "+":
		return operators.Plus, nil
	case "!":
		return operators.LogicalNot, nil
	case "~":
		return operators.BitwiseNot, nil
	default:
		return 0, diag.New(diag.Internal, sp, "unknown unary operator token %q", tok)
	}
}

// incDecOp maps `++`/`--` plus prefix/postfix position to the distinct
// operator four-way ResolveUnary distinguishes: the primitive opcode
// (and the opPreInc/opPostInc method name) genuinely differ between
// the prefix and postfix forms.
func incDecOp(tok string, prefix bool, sp diag.Span) (operators.UnaryOp, error) {
	switch {
	case tok == "++" && prefix:
		return operators.PreIncrement, nil
	case tok == "--" && prefix:
		return operators.PreDecrement, nil
	case tok == "++" && !prefix:
		return operators.PostIncrement, nil
	case tok == "--" && !prefix:
		return operators.PostDecrement, nil
	default:
		return 0, diag.New(diag.Internal, sp, "unknown increment/decrement token %q", tok)
	}
}

// isLogicalToken reports `&&`/`||`, which compileBinary short-circuits
// before reaching operator resolution: these never dispatch to an
// opXxx method, since boolean
// operands are never anything but the primitive bool.
func isLogicalToken(tok string) bool { return tok == "&&" || tok == "||" }

func (c *Compiler) compileBinary(n *ast.BinaryExpr) (typesys.DataType, error) {
	if isLogicalToken(n.Op) {
		return c.compileLogical(n)
	}

	lt, err := c.typeOf(n.Left)
	if err != nil {
		return typesys.DataType{}, err
	}
	rt, err := c.typeOf(n.Right)
	if err != nil {
		return typesys.DataType{}, err
	}
	op, err := binaryOpFromToken(n.Op, n.Sp)
	if err != nil {
		return typesys.DataType{}, err
	}
	res, err := operators.ResolveBinary(c.Registry, op, lt, rt)
	if err != nil {
		return typesys.DataType{}, err
	}

	if _, err := c.compileExpr(n.Left); err != nil {
		return typesys.DataType{}, err
	}
	if res.LeftConv != nil {
		c.emitter.EmitSimple(*res.LeftConv)
	}
	if _, err := c.compileExpr(n.Right); err != nil {
		return typesys.DataType{}, err
	}
	if res.RightConv != nil {
		c.emitter.EmitSimple(*res.RightConv)
	}

	c.emitter.SetLine(n.Sp.Line)
	switch res.Kind {
	case operators.Primitive, operators.HandleIdentity:
		c.emitter.EmitSimple(res.Opcode)
	case operators.MethodOnLeft, operators.MethodOnRight:
		c.emitter.EmitCall(bytecode.OpCall, uint64(res.Method), 1)
		if res.PostCompare != nil {
			c.emitter.Emit(bytecode.OpPushZero, 0, 0)
			c.emitter.EmitSimple(*res.PostCompare)
		}
	}
	if res.Negate {
		c.emitter.EmitSimple(bytecode.OpLogNot)
	}
	return res.ResultType, nil
}

// compileLogical emits short-circuiting code for `&&`/`||`: the right
// operand's code is skipped entirely when the left operand already
// decides the result.
func (c *Compiler) compileLogical(n *ast.BinaryExpr) (typesys.DataType, error) {
	if _, err := c.compileExpr(n.Left); err != nil {
		return typesys.DataType{}, err
	}
	c.emitter.SetLine(n.Sp.Line)
	var skip bytecode.Label
	if n.Op == "&&" {
		skip = c.emitter.EmitJump(bytecode.OpJumpIfFalse)
	} else {
		skip = c.emitter.EmitJump(bytecode.OpJumpIfTrue)
	}
	c.emitter.EmitSimple(bytecode.OpPop)
	if _, err := c.compileExpr(n.Right); err != nil {
		return typesys.DataType{}, err
	}
	c.emitter.PatchJump(skip)
	return typesys.Bool, nil
}

func (c *Compiler) compileUnary(n *ast.UnaryExpr) (typesys.DataType, error) {
	if n.Op == "++" || n.Op == "--" {
		return c.compileIncDec(n.Operand, n.Op, true, n.Sp)
	}
	op, err := unaryOpFromToken(n.Op, n.Sp)
	if err != nil {
		return typesys.DataType{}, err
	}

	ot, err := c.compileExpr(n.Operand)
	if err != nil {
		return typesys.DataType{}, err
	}
	res, err := operators.ResolveUnary(c.Registry, op, ot)
	if err != nil {
		return typesys.DataType{}, err
	}
	c.emitter.SetLine(n.Sp.Line)
	switch res.Kind {
	case operators.UnaryPrimitive:
		c.emitter.EmitSimple(res.Opcode)
	case operators.UnaryMethod:
		c.emitter.EmitCall(bytecode.OpCall, uint64(res.Method), 0)
	case operators.UnaryNoOp:
	}
	return res.ResultType, nil
}

func (c *Compiler) compilePostfix(n *ast.PostfixExpr) (typesys.DataType, error) {
	return c.compileIncDec(n.Operand, n.Op, false, n.Sp)
}

// compileIncDec lowers `++x`/`--x`/`x++`/`x--`. A plain local of a
// primitive int class needing no conversion goes through one of the
// dedicated OpPre/PostInc/Dec opcodes, which the disassembler documents
// as reading and writing a local slot directly — no separate load,
// compute, and store. Every other lvalue (a global, a field, or a type
// resolving to a user opPreInc/opPostInc method) desugars to
// load/compute/store, with a Dup placed before the compute step for the
// postfix forms (to keep the pre-update value as the result) or after
// it for the prefix forms (to keep the post-update value).
func (c *Compiler) compileIncDec(operand ast.Expr, tok string, prefix bool, sp diag.Span) (typesys.DataType, error) {
	pl, err := c.resolvePlace(operand)
	if err != nil {
		return typesys.DataType{}, err
	}
	op, err := incDecOp(tok, prefix, sp)
	if err != nil {
		return typesys.DataType{}, err
	}
	res, err := operators.ResolveUnary(c.Registry, op, pl.typ)
	if err != nil {
		return typesys.DataType{}, err
	}

	c.emitter.SetLine(sp.Line)
	if res.Kind == operators.UnaryPrimitive && pl.kind == placeLocal {
		c.emitter.Emit(res.Opcode, 0, pl.slot)
		return pl.typ, nil
	}

	if _, err := pl.load(c); err != nil {
		return typesys.DataType{}, err
	}
	if !prefix {
		c.emitter.EmitSimple(bytecode.OpDup)
	}
	switch res.Kind {
	case operators.UnaryPrimitive:
		if err := c.emitIncDecArith(pl.typ, op == operators.PreIncrement || op == operators.PostIncrement, sp); err != nil {
			return typesys.DataType{}, err
		}
	case operators.UnaryMethod:
		c.emitter.EmitCall(bytecode.OpCall, uint64(res.Method), 0)
	}
	if prefix {
		c.emitter.EmitSimple(bytecode.OpDup)
	}
	if err := pl.store(c); err != nil {
		return typesys.DataType{}, err
	}
	return pl.typ, nil
}

// emitIncDecArith pushes a literal one of typ's own width and adds or
// subtracts it, for an int target whose storage isn't a plain local
// slot (so the dedicated Pre/PostInc opcodes, which address a local
// directly, don't apply).
func (c *Compiler) emitIncDecArith(typ typesys.DataType, isInc bool, sp diag.Span) error {
	switch typ.Hash {
	case typesys.Int32.Hash:
		idx := c.emitter.Chunk().AddConstI32(1)
		c.emitter.Emit(bytecode.OpPushI32, 0, uint16(idx))
		if isInc {
			c.emitter.EmitSimple(bytecode.OpAddI32)
		} else {
			c.emitter.EmitSimple(bytecode.OpSubI32)
		}
	case typesys.Int64.Hash:
		idx := c.emitter.Chunk().AddConstI64(1)
		c.emitter.Emit(bytecode.OpPushI64, 0, uint16(idx))
		if isInc {
			c.emitter.EmitSimple(bytecode.OpAddI64)
		} else {
			c.emitter.EmitSimple(bytecode.OpSubI64)
		}
	default:
		return diag.New(diag.InvalidUnaryOperator, sp, "no increment/decrement defined for %s", typ)
	}
	return nil
}

func (c *Compiler) compileAssign(n *ast.AssignExpr) (typesys.DataType, error) {
	pl, err := c.resolvePlace(n.Target)
	if err != nil {
		return typesys.DataType{}, err
	}
	targetType := pl.typ

	op, err := assignOpFromToken(n.Op, n.Sp)
	if err != nil {
		return typesys.DataType{}, err
	}
	valType, err := c.typeOf(n.Value)
	if err != nil {
		return typesys.DataType{}, err
	}
	res, err := operators.ResolveAssign(c.Registry, op, targetType, valType)
	if err != nil {
		return typesys.DataType{}, err
	}

	switch res.Kind {
	case operators.AssignDirect:
		if _, err := c.compileExpr(n.Value); err != nil {
			return typesys.DataType{}, err
		}
		c.emitConversion(res.Conversion, valType, targetType)
		c.emitter.EmitSimple(bytecode.OpDup)
		if err := pl.store(c); err != nil {
			return typesys.DataType{}, err
		}
		return res.ResultType, nil

	case operators.AssignMethod:
		if err := pl.loadReceiver(c); err != nil {
			return typesys.DataType{}, err
		}
		if _, err := c.compileExpr(n.Value); err != nil {
			return typesys.DataType{}, err
		}
		if len(res.Conversions) > 0 {
			c.emitConversion(res.Conversions[0], valType, c.paramType(res.Method, 0))
		}
		c.emitter.EmitCall(bytecode.OpCall, uint64(res.Method), 1)
		return res.ResultType, nil

	default: // AssignCompute
		if _, err := pl.load(c); err != nil {
			return typesys.DataType{}, err
		}
		if res.Binary.LeftConv != nil {
			c.emitter.EmitSimple(*res.Binary.LeftConv)
		}
		if _, err := c.compileExpr(n.Value); err != nil {
			return typesys.DataType{}, err
		}
		if res.Binary.RightConv != nil {
			c.emitter.EmitSimple(*res.Binary.RightConv)
		}
		switch res.Binary.Kind {
		case operators.Primitive, operators.HandleIdentity:
			c.emitter.EmitSimple(res.Binary.Opcode)
		case operators.MethodOnLeft, operators.MethodOnRight:
			c.emitter.EmitCall(bytecode.OpCall, uint64(res.Binary.Method), 1)
		}
		c.emitConversion(res.Conversion, res.Binary.ResultType, targetType)
		c.emitter.EmitSimple(bytecode.OpDup)
		if err := pl.store(c); err != nil {
			return typesys.DataType{}, err
		}
		return res.ResultType, nil
	}
}

// paramType fetches the declared type of parameter i of a resolved
// method, falling back to the zero DataType when the function is
// somehow unregistered (never expected in practice; emitConversion
// treats an invalid from/to pair as "no primitive opcode applies" and
// simply skips the no-op kinds, so a zero type here degrades to a
// missed conversion rather than a crash).
func (c *Compiler) paramType(fn ident.FunctionHash, i int) typesys.DataType {
	def := c.Registry.GetFunction(fn)
	if def == nil || i >= len(def.Params) {
		return typesys.DataType{}
	}
	return def.Params[i].Type
}

func assignOpFromToken(tok string, sp diag.Span) (operators.AssignOp, error) {
	switch tok {
	case "=":
		return operators.Assign, nil
	case "+=":
		return operators.AddAssign, nil
	case "-=":
		return operators.SubAssign, nil
	case "*=":
		return operators.MulAssign, nil
	case "/=":
		return operators.DivAssign, nil
	case "%=":
		return operators.ModAssign, nil
	case "&=":
		return operators.AndAssign, nil
	case "|=":
		return operators.OrAssign, nil
	case "^=":
		return operators.XorAssign, nil
	case "<<=":
		return operators.ShlAssign, nil
	case ">>=":
		return operators.ShrAssign, nil
	case ">>>=":
		return operators.UShrAssign, nil
	default:
		return 0, diag.New(diag.Internal, sp, "unknown assignment operator token %q", tok)
	}
}

// emitConversion lowers a convert.Conversion already verified implicit
// (or, for CastExpr, explicit but accepted) by its caller into
// bytecode. Representation-transparent kinds (const/handle bookkeeping,
// identity) need no instruction; a primitive kind needs the promotion
// or truncation opcode for the concrete from/to pair; the user-defined
// kinds invoke the resolved conversion method as a zero-argument call
// against the receiver already on top of the stack.
func (c *Compiler) emitConversion(conv convert.Conversion, from, to typesys.DataType) {
	switch conv.Kind {
	case convert.Identity, convert.ConstAttach, convert.HandleAttach, convert.HandleRelax, convert.HandleUpcast, convert.HandleDowncast, convert.NullToHandle:
		return
	case convert.OpImplConv, convert.OpConv, convert.OpImplCast, convert.OpCast, convert.ConstructorConv:
		c.emitter.EmitCall(bytecode.OpCall, uint64(conv.Method), 0)
	case convert.PrimitiveWidening, convert.PrimitiveMixed, convert.PrimitiveNarrowing:
		if op, ok := primitiveConvertOpcode(from.Hash, to.Hash); ok {
			c.emitter.EmitSimple(op)
		}
		// The pairs the bytecode set defines no opcode for (int64 to
		// int32 or float32, float32 to int64, float64 to float32) emit
		// no instruction.
	}
}

// primitiveConvertOpcode returns the instruction that steps a value
// from primitive base type from to primitive base type to, for every
// from/to pair the bytecode package defines one for. Families that
// share a runtime representation (int8/16/32, uint8/16/32) convert
// between each other with no instruction at all, so only crossing into
// or out of int64/float32/float64 ever needs one.
func primitiveConvertOpcode(from, to ident.TypeHash) (bytecode.OpCode, bool) {
	fc, fok := primClassOf(from)
	tc, tok := primClassOf(to)
	if !fok || !tok || fc == tc {
		return 0, false
	}
	switch {
	case fc == primClassInt32 && tc == primClassInt64:
		return bytecode.OpI32toI64, true
	case fc == primClassInt32 && tc == primClassFloat32:
		return bytecode.OpI32toF32, true
	case fc == primClassInt32 && tc == primClassFloat64:
		return bytecode.OpI32toF64, true
	case fc == primClassInt64 && tc == primClassFloat64:
		return bytecode.OpI64toF64, true
	case fc == primClassFloat32 && tc == primClassFloat64:
		return bytecode.OpF32toF64, true
	case fc == primClassFloat32 && tc == primClassInt32:
		return bytecode.OpF32toI32, true
	case fc == primClassFloat64 && tc == primClassInt32:
		return bytecode.OpF64toI32, true
	case fc == primClassFloat64 && tc == primClassInt64:
		return bytecode.OpF64toI64, true
	default:
		return 0, false
	}
}

type primClass int

const (
	primClassInt32 primClass = iota
	primClassInt64
	primClassFloat32
	primClassFloat64
	primClassBool
)

func primClassOf(h ident.TypeHash) (primClass, bool) {
	switch h {
	case ident.Int8, ident.Int16, ident.Int32, ident.UInt8, ident.UInt16, ident.UInt32:
		return primClassInt32, true
	case ident.Int64, ident.UInt64:
		return primClassInt64, true
	case ident.Float32:
		return primClassFloat32, true
	case ident.Float64:
		return primClassFloat64, true
	case ident.Bool:
		return primClassBool, true
	default:
		return 0, false
	}
}

type placeKind int

const (
	placeLocal placeKind = iota
	placeGlobal
	placeField
)

// place is an addressable location an lvalue expression compiles to:
// a local slot, a global slot, or a field on some receiver expression.
// load/store let assignment and increment/decrement share one
// resolution of "where does this expression's storage live" with the
// code that reads or writes it.
type place struct {
	kind     placeKind
	slot     uint16
	typ      typesys.DataType
	receiver ast.Expr // set only for placeField
	field    int
}

func (p place) load(c *Compiler) (typesys.DataType, error) {
	switch p.kind {
	case placeLocal:
		c.emitter.Emit(bytecode.OpGetLocal, 0, p.slot)
	case placeGlobal:
		c.emitter.Emit(bytecode.OpGetGlobal, 0, p.slot)
	case placeField:
		if _, err := c.compileExpr(p.receiver); err != nil {
			return typesys.DataType{}, err
		}
		c.emitter.Emit(bytecode.OpGetField, 0, uint16(p.field))
	}
	return p.typ, nil
}

// loadReceiver pushes the receiver a method-form assignment operator
// dispatches on: the field's receiver expression for a field place, or
// the variable's own value (GetLocal/GetGlobal) for a local/global, so
// opAssign-family calls against a plain variable use that value itself
// as the receiver.
func (p place) loadReceiver(c *Compiler) error {
	if p.kind == placeField {
		_, err := c.compileExpr(p.receiver)
		return err
	}
	_, err := p.load(c)
	return err
}

func (p place) store(c *Compiler) error {
	switch p.kind {
	case placeLocal:
		c.emitter.Emit(bytecode.OpSetLocal, 0, p.slot)
	case placeGlobal:
		c.emitter.Emit(bytecode.OpSetGlobal, 0, p.slot)
	case placeField:
		c.emitter.Emit(bytecode.OpSetField, 0, uint16(p.field))
	}
	return nil
}

func (c *Compiler) resolvePlace(e ast.Expr) (place, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return c.resolveIdentifierPlace(n)
	case *ast.MemberExpr:
		rt, err := c.typeOf(n.Receiver)
		if err != nil {
			return place{}, err
		}
		idx, ft, ok := c.lookupField(rt, n.Name)
		if !ok {
			return place{}, diag.New(diag.UnknownField, n.Sp, "unknown field %q on %s", n.Name, rt)
		}
		return place{kind: placeField, typ: ft, receiver: n.Receiver, field: idx}, nil
	case *ast.ThisExpr:
		return place{}, diag.New(diag.CannotModifyConst, n.Sp, "this is not assignable")
	default:
		return place{}, diag.New(diag.CannotModifyConst, e.Span(), "expression is not assignable")
	}
}

// compileIdentifierLoad and resolveIdentifierPlace share one priority
// order: a local variable shadows an implicit field of the enclosing
// method's receiver, which shadows a script-level global.
func (c *Compiler) resolveIdentifier(n *ast.Identifier) (place, typesys.DataType, error) {
	pl, err := c.resolveIdentifierPlace(n)
	if err != nil {
		return place{}, typesys.DataType{}, err
	}
	return pl, pl.typ, nil
}

func (c *Compiler) resolveIdentifierPlace(n *ast.Identifier) (place, error) {
	if l, ok := c.resolveLocal(n.Name); ok {
		return place{kind: placeLocal, slot: l.slot, typ: l.typ}, nil
	}
	if c.OwnerClass != nil {
		if idx, ft, ok := c.lookupField(c.Self, n.Name); ok {
			return place{kind: placeField, typ: ft, receiver: &ast.ThisExpr{Sp: n.Sp}, field: idx}, nil
		}
	}
	if typ, slot, ok := c.Globals.Resolve(n.Name); ok {
		return place{kind: placeGlobal, slot: slot, typ: typ}, nil
	}
	return place{}, diag.New(diag.UnresolvedIdentifier, n.Sp, "unresolved identifier %q", n.Name)
}

func (c *Compiler) compileIdentifierLoad(n *ast.Identifier) (typesys.DataType, error) {
	pl, err := c.resolveIdentifierPlace(n)
	if err != nil {
		return typesys.DataType{}, err
	}
	c.emitter.SetLine(n.Sp.Line)
	return pl.load(c)
}

// lookupField finds a field by name on a class-typed receiver, walking
// the base chain the same way FindMethods does: each class's own fields
// are searched in turn, starting at the receiver's class, and the first
// class declaring a field of that name wins.
func (c *Compiler) lookupField(receiver typesys.DataType, name string) (int, typesys.DataType, bool) {
	entry, ok := c.Registry.GetType(receiver.Hash).(*registry.ClassEntry)
	for ok {
		for i, f := range entry.Fields {
			if f.Name == name {
				return i, f.Type, true
			}
		}
		entry, ok = c.Registry.GetType(entry.Base).(*registry.ClassEntry)
	}
	return 0, typesys.DataType{}, false
}

func (c *Compiler) compileMemberLoad(n *ast.MemberExpr) (typesys.DataType, error) {
	rt, err := c.typeOf(n.Receiver)
	if err != nil {
		return typesys.DataType{}, err
	}
	idx, ft, ok := c.lookupField(rt, n.Name)
	if !ok {
		return typesys.DataType{}, diag.New(diag.UnknownField, n.Sp, "unknown field %q on %s", n.Name, rt)
	}
	if _, err := c.compileExpr(n.Receiver); err != nil {
		return typesys.DataType{}, err
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitter.Emit(bytecode.OpGetField, 0, uint16(idx))
	return ft, nil
}

func (c *Compiler) resolveOperatorMethod(receiver typesys.DataType, name string, args []typesys.DataType, sp diag.Span) (overload.Result, error) {
	candidates := c.Registry.FindMethods(receiver.Hash, name)
	if len(candidates) == 0 {
		return overload.Result{}, diag.New(diag.UnknownMethod, sp, "no %s operator defined on %s", name, receiver)
	}
	return overload.Resolve(c.Registry, overload.Call{Candidates: candidates, Args: args})
}

func (c *Compiler) compileIndex(n *ast.IndexExpr) (typesys.DataType, error) {
	rt, err := c.typeOf(n.Receiver)
	if err != nil {
		return typesys.DataType{}, err
	}
	it, err := c.typeOf(n.Index)
	if err != nil {
		return typesys.DataType{}, err
	}
	res, err := c.resolveOperatorMethod(rt, "opIndex", []typesys.DataType{it}, n.Sp)
	if err != nil {
		return typesys.DataType{}, err
	}
	def := c.Registry.GetFunction(res.Function)
	if def == nil {
		return typesys.DataType{}, diag.New(diag.Internal, n.Sp, "opIndex resolved to unregistered function")
	}

	if _, err := c.compileExpr(n.Receiver); err != nil {
		return typesys.DataType{}, err
	}
	if _, err := c.compileExpr(n.Index); err != nil {
		return typesys.DataType{}, err
	}
	if len(res.Conversions) > 0 {
		c.emitConversion(res.Conversions[0], it, c.paramType(res.Function, 0))
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitter.EmitCall(bytecode.OpCallMethod, uint64(res.Function), 1)
	return def.Return, nil
}

func (c *Compiler) typeOfCall(n *ast.CallExpr) (typesys.DataType, error) {
	res, _, def, err := c.resolveCallTarget(n)
	if err != nil {
		return typesys.DataType{}, err
	}
	if def != nil {
		return def.Return, nil
	}
	_ = res
	return typesys.Void, nil
}

// resolveCallTarget resolves what CallExpr n invokes: either a funcdef-
// valued expression called through OpCallFuncPtr (def is nil; the
// funcdef's return type isn't tracked by the registry the way a real
// function's is, so callers needing a static type for this path get
// Void), or a registered function/method (def is non-nil). isMethod
// reports whether the callee is a method needing a receiver pushed
// before its arguments.
func (c *Compiler) resolveCallTarget(n *ast.CallExpr) (overload.Result, bool, *registry.FunctionDef, error) {
	argTypes, err := c.callArgTypes(n)
	if err != nil {
		return overload.Result{}, false, nil, err
	}

	switch callee := n.Callee.(type) {
	case *ast.MemberExpr:
		rt, err := c.typeOf(callee.Receiver)
		if err != nil {
			return overload.Result{}, false, nil, err
		}
		candidates := c.Registry.FindMethods(rt.Hash, callee.Name)
		if len(candidates) == 0 {
			return overload.Result{}, false, nil, diag.New(diag.UnknownMethod, callee.Sp, "unknown method %q on %s", callee.Name, rt)
		}
		res, err := overload.Resolve(c.Registry, overload.Call{Candidates: candidates, Args: argTypes.types, Names: argTypes.names})
		if err != nil {
			return overload.Result{}, false, nil, err
		}
		return res, true, c.Registry.GetFunction(res.Function), nil

	case *ast.Identifier:
		if _, ok := c.resolveLocal(callee.Name); !ok {
			if c.OwnerClass == nil {
				if _, _, ok := c.Globals.Resolve(callee.Name); !ok {
					candidates := c.Registry.ResolveFunction(c.Namespace, callee.Name)
					if len(candidates) > 0 {
						res, err := overload.Resolve(c.Registry, overload.Call{Candidates: candidates, Args: argTypes.types, Names: argTypes.names})
						if err != nil {
							return overload.Result{}, false, nil, err
						}
						return res, false, c.Registry.GetFunction(res.Function), nil
					}
				}
			} else if _, _, ok := c.lookupField(c.Self, callee.Name); !ok {
				candidates := c.Registry.ResolveFunction(c.Namespace, callee.Name)
				if len(candidates) > 0 {
					res, err := overload.Resolve(c.Registry, overload.Call{Candidates: candidates, Args: argTypes.types, Names: argTypes.names})
					if err != nil {
						return overload.Result{}, false, nil, err
					}
					return res, false, c.Registry.GetFunction(res.Function), nil
				}
			}
		}
		// Falls through to a funcdef-valued call: a local, field, or
		// global holding a function pointer, invoked through
		// OpCallFuncPtr rather than a statically resolved hash.
		return overload.Result{}, false, nil, nil

	default:
		return overload.Result{}, false, nil, nil
	}
}

type callArgs struct {
	types []typesys.DataType
	names []string
}

func (c *Compiler) callArgTypes(n *ast.CallExpr) (callArgs, error) {
	var out callArgs
	for _, a := range n.Args {
		t, err := c.typeOf(a)
		if err != nil {
			return callArgs{}, err
		}
		out.types = append(out.types, t)
		if len(n.Named) > 0 {
			out.names = append(out.names, "")
		}
	}
	for _, na := range n.Named {
		t, err := c.typeOf(na.Value)
		if err != nil {
			return callArgs{}, err
		}
		out.types = append(out.types, t)
		out.names = append(out.names, na.Name)
	}
	return out, nil
}

func (c *Compiler) compileCall(n *ast.CallExpr) (typesys.DataType, error) {
	res, isMethod, def, err := c.resolveCallTarget(n)
	if err != nil {
		return typesys.DataType{}, err
	}

	if def == nil {
		return c.compileFuncPtrCall(n)
	}

	if isMethod {
		member := n.Callee.(*ast.MemberExpr)
		if _, err := c.compileExpr(member.Receiver); err != nil {
			return typesys.DataType{}, err
		}
	}

	argc, err := c.compileCallArgs(n, def, res)
	if err != nil {
		return typesys.DataType{}, err
	}

	c.emitter.SetLine(n.Sp.Line)
	op := bytecode.OpCall
	switch {
	case isMethod && def.Traits.IsVirtual:
		op = bytecode.OpCallVirtual
	case isMethod:
		op = bytecode.OpCallMethod
	}
	c.emitter.EmitCall(op, uint64(res.Function), argc)
	return def.Return, nil
}

// compileCallArgs pushes every bound argument (positional, then named,
// matching callArgTypes's ordering) and applies the conversion overload
// resolution chose for each, returning the pushed argument count.
func (c *Compiler) compileCallArgs(n *ast.CallExpr, def *registry.FunctionDef, res overload.Result) (int, error) {
	i := 0
	for _, a := range n.Args {
		at, err := c.compileExpr(a)
		if err != nil {
			return 0, err
		}
		if i < len(res.Conversions) && i < len(def.Params) {
			c.emitConversion(res.Conversions[i], at, def.Params[i].Type)
		}
		i++
	}
	for _, na := range n.Named {
		at, err := c.compileExpr(na.Value)
		if err != nil {
			return 0, err
		}
		if i < len(res.Conversions) && i < len(def.Params) {
			c.emitConversion(res.Conversions[i], at, def.Params[i].Type)
		}
		i++
	}
	return i, nil
}

func (c *Compiler) compileFuncPtrCall(n *ast.CallExpr) (typesys.DataType, error) {
	if _, err := c.compileExpr(n.Callee); err != nil {
		return typesys.DataType{}, err
	}
	argc := 0
	for _, a := range n.Args {
		if _, err := c.compileExpr(a); err != nil {
			return typesys.DataType{}, err
		}
		argc++
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitter.Emit(bytecode.OpCallFuncPtr, byte(argc), 0)
	return typesys.Void, nil
}

func (c *Compiler) compileConstruct(n *ast.ConstructExpr) (typesys.DataType, error) {
	typ, err := c.resolveType(n.Type, resolve.PosLocal)
	if err != nil {
		return typesys.DataType{}, err
	}
	entry, ok := c.Registry.GetType(typ.Hash).(*registry.ClassEntry)
	if !ok {
		return typesys.DataType{}, diag.New(diag.UnknownType, n.Sp, "%s is not a constructible class", typ)
	}

	candidates := entry.Behaviors.Constructors
	op := bytecode.OpNew
	if entry.Kind == registry.ClassReference {
		candidates = entry.Behaviors.Factories
		op = bytecode.OpNewFactory
	}
	if len(candidates) == 0 {
		return typesys.DataType{}, diag.New(diag.NoViableCandidate, n.Sp, "%s has no accessible constructor", typ)
	}

	argTypes := make([]typesys.DataType, len(n.Args))
	for i, a := range n.Args {
		t, err := c.typeOf(a)
		if err != nil {
			return typesys.DataType{}, err
		}
		argTypes[i] = t
	}
	res, err := overload.Resolve(c.Registry, overload.Call{Candidates: candidates, Args: argTypes})
	if err != nil {
		return typesys.DataType{}, err
	}

	ctorDef := c.Registry.GetFunction(res.Function)
	for i, a := range n.Args {
		at, err := c.compileExpr(a)
		if err != nil {
			return typesys.DataType{}, err
		}
		if i < len(res.Conversions) && ctorDef != nil && i < len(ctorDef.Params) {
			c.emitConversion(res.Conversions[i], at, ctorDef.Params[i].Type)
		}
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitter.EmitCall(op, uint64(res.Function), len(n.Args))

	result := typ
	if entry.Kind == registry.ClassReference {
		result = result.Handle()
	}
	return result, nil
}

func (c *Compiler) compileCast(n *ast.CastExpr) (typesys.DataType, error) {
	target, err := c.resolveType(n.Type, resolve.PosLocal)
	if err != nil {
		return typesys.DataType{}, err
	}
	ot, err := c.compileExpr(n.Operand)
	if err != nil {
		return typesys.DataType{}, err
	}
	conv, ok := convert.Classify(c.Registry, ot, target)
	if !ok {
		return typesys.DataType{}, diag.New(diag.InvalidCast, n.Sp, "cannot cast %s to %s", ot, target)
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitConversion(conv, ot, target)
	return target, nil
}

func (c *Compiler) compileConv(n *ast.ConvExpr) (typesys.DataType, error) {
	target, err := c.resolveType(n.Type, resolve.PosLocal)
	if err != nil {
		return typesys.DataType{}, err
	}
	ot, err := c.compileExpr(n.Operand)
	if err != nil {
		return typesys.DataType{}, err
	}
	conv, ok := convert.Classify(c.Registry, ot, target)
	if !ok {
		return typesys.DataType{}, diag.New(diag.InvalidCast, n.Sp, "cannot convert %s to %s", ot, target)
	}
	c.emitter.SetLine(n.Sp.Line)
	c.emitConversion(conv, ot, target)
	return target, nil
}

func (c *Compiler) compileSuperCall(n *ast.SuperExpr) (typesys.DataType, error) {
	if c.OwnerClass == nil {
		return typesys.DataType{}, diag.New(diag.SuperOutsideConstructor, n.Sp, "super() is only legal inside a constructor")
	}
	if c.OwnerClass.Base == 0 {
		return typesys.DataType{}, diag.New(diag.SuperWithoutBase, n.Sp, "%s has no base class", c.OwnerClass.Name)
	}
	if c.sawSuper {
		return typesys.DataType{}, diag.New(diag.MultipleSuperCalls, n.Sp, "constructor already calls super()")
	}
	c.sawSuper = true

	base, ok := c.Registry.GetType(c.OwnerClass.Base).(*registry.ClassEntry)
	if !ok {
		return typesys.DataType{}, diag.New(diag.Internal, n.Sp, "base type is not a class entry")
	}
	if len(base.Behaviors.Constructors) == 0 {
		return typesys.DataType{}, diag.New(diag.NoViableCandidate, n.Sp, "%s has no accessible constructor", base.Name)
	}

	argTypes := make([]typesys.DataType, len(n.Args))
	for i, a := range n.Args {
		t, err := c.typeOf(a)
		if err != nil {
			return typesys.DataType{}, err
		}
		argTypes[i] = t
	}
	res, err := overload.Resolve(c.Registry, overload.Call{Candidates: base.Behaviors.Constructors, Args: argTypes})
	if err != nil {
		return typesys.DataType{}, err
	}

	superDef := c.Registry.GetFunction(res.Function)
	c.emitter.SetLine(n.Sp.Line)
	c.emitter.EmitSimple(bytecode.OpGetThis)
	for i, a := range n.Args {
		at, err := c.compileExpr(a)
		if err != nil {
			return typesys.DataType{}, err
		}
		if i < len(res.Conversions) && superDef != nil && i < len(superDef.Params) {
			c.emitConversion(res.Conversions[i], at, superDef.Params[i].Type)
		}
	}
	c.emitter.EmitCall(bytecode.OpCallMethod, uint64(res.Function), len(n.Args))
	return typesys.Void, nil
}

func (c *Compiler) compileTernary(n *ast.TernaryExpr) (typesys.DataType, error) {
	if _, err := c.compileExpr(n.Cond); err != nil {
		return typesys.DataType{}, err
	}
	c.emitter.SetLine(n.Sp.Line)
	elseLabel := c.emitter.EmitJump(bytecode.OpJumpIfFalse)
	thenType, err := c.compileExpr(n.Then)
	if err != nil {
		return typesys.DataType{}, err
	}
	endLabel := c.emitter.EmitJump(bytecode.OpJump)
	c.emitter.PatchJump(elseLabel)
	elseType, err := c.compileExpr(n.Else)
	if err != nil {
		return typesys.DataType{}, err
	}
	if conv, ok := convert.Classify(c.Registry, elseType, thenType); ok && conv.Implicit {
		c.emitConversion(conv, elseType, thenType)
	}
	c.emitter.PatchJump(endLabel)
	return thenType, nil
}

// compileLambda compiles a lambda body in a fresh, isolated Compiler,
// registers the resulting chunk as a synthetic script function, and
// leaves the function's hash on the stack as the funcdef value, pushed
// as an int64 constant (OpPushI64 from the chunk's int64 pool, not the
// hash pool Call/New operands use), since no dedicated "function
// pointer constant" pool exists.
func (c *Compiler) compileLambda(n *ast.LambdaExpr) (typesys.DataType, error) {
	c.lambdaCount++
	name := "$lambda" + itoa(c.lambdaCount)

	params := make([]ast.Param, len(n.Params))
	paramTypes := make([]typesys.DataType, len(n.Params))
	for i, p := range n.Params {
		params[i] = ast.Param{Name: p.Name, Type: p.Type}
		if p.Type != nil {
			t, err := c.resolveType(p.Type, resolve.PosParam)
			if err != nil {
				return typesys.DataType{}, err
			}
			paramTypes[i] = t
		}
	}
	ret := typesys.Void
	if n.Return != nil {
		t, err := c.resolveType(n.Return, resolve.PosReturn)
		if err != nil {
			return typesys.DataType{}, err
		}
		ret = t
	}

	child := New(c.Registry, c.Resolver, c.Globals)
	child.Namespace = c.Namespace
	chunk, err := child.CompileFunction(name, params, paramTypes, ret, n.Body)
	if err != nil {
		return typesys.DataType{}, err
	}

	hash := ident.HashFunction(ident.KindFreeFunction, name, 0, nil, false, "")
	def := &registry.FunctionDef{Hash: hash, Name: name, Return: ret, Chunk: chunk}
	for i, p := range params {
		def.Params = append(def.Params, registry.ParamEntry{Name: p.Name, Type: paramTypes[i]})
	}
	if err := c.Registry.RegisterFunction(def); err != nil {
		return typesys.DataType{}, err
	}

	c.emitter.SetLine(n.Sp.Line)
	idx := c.emitter.Chunk().AddConstI64(int64(hash))
	c.emitter.Emit(bytecode.OpPushI64, 0, uint16(idx))
	return typesys.Void, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

package operators

import (
	"testing"

	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

func classHash(name string) ident.TypeHash { return ident.HashType(name) }

func registerMethod(t *testing.T, reg *registry.Registry, owner ident.TypeHash, def *registry.FunctionDef) {
	t.Helper()
	entry := reg.GetType(owner).(*registry.ClassEntry)
	entry.Methods = append(entry.Methods, def.Hash)
	if err := reg.RegisterFunction(def); err != nil {
		t.Fatal(err)
	}
}

func TestResolveBinaryPrimitiveSameClass(t *testing.T) {
	cases := []struct {
		name string
		op   BinaryOp
		dt   typesys.DataType
		want bytecode.OpCode
	}{
		{"i32 add", Add, typesys.Int32, bytecode.OpAddI32},
		{"i64 add", Add, typesys.Int64, bytecode.OpAddI64},
		{"f32 add", Add, typesys.Float32, bytecode.OpAddF32},
		{"f64 add", Add, typesys.Float64, bytecode.OpAddF64},
		{"i32 sub", Sub, typesys.Int32, bytecode.OpSubI32},
		{"i32 mul", Mul, typesys.Int32, bytecode.OpMulI32},
		{"i32 div", Div, typesys.Int32, bytecode.OpDivI32},
		{"i32 mod", Mod, typesys.Int32, bytecode.OpModI32},
		{"i32 lt", Less, typesys.Int32, bytecode.OpLtI32},
		{"i32 le", LessEqual, typesys.Int32, bytecode.OpLeI32},
		{"i32 gt", Greater, typesys.Int32, bytecode.OpGtI32},
		{"i32 ge", GreaterEqual, typesys.Int32, bytecode.OpGeI32},
		{"i32 and", BitwiseAnd, typesys.Int32, bytecode.OpBitAnd},
		{"i32 or", BitwiseOr, typesys.Int32, bytecode.OpBitOr},
		{"i32 xor", BitwiseXor, typesys.Int32, bytecode.OpBitXor},
		{"i32 shl", ShiftLeft, typesys.Int32, bytecode.OpShl},
		{"i32 shr", ShiftRight, typesys.Int32, bytecode.OpShr},
		{"i32 ushr", ShiftRightUnsigned, typesys.Int32, bytecode.OpUshr},
	}
	reg := registry.New()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := ResolveBinary(reg, c.op, c.dt, c.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Kind != Primitive || res.Opcode != c.want {
				t.Errorf("got %+v, want opcode %s", res, c.want)
			}
			if res.LeftConv != nil || res.RightConv != nil {
				t.Errorf("expected no promotion for a same-class pair, got %+v", res)
			}
		})
	}
}

func TestResolveBinaryUnsignedDivUsesUnsignedOpcode(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Div, typesys.UInt32, typesys.UInt32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpDivU32 {
		t.Errorf("expected OpDivU32, got %s", res.Opcode)
	}
}

func TestResolveBinaryUnsignedOrderingUsesUnsignedOpcode(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Less, typesys.UInt64, typesys.UInt64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpLtU64 {
		t.Errorf("expected OpLtU64, got %s", res.Opcode)
	}
}

func TestResolveBinaryPromotesInt32AndInt64(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Add, typesys.Int32, typesys.Int64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpAddI64 {
		t.Errorf("expected AddI64, got %s", res.Opcode)
	}
	if res.LeftConv == nil || *res.LeftConv != bytecode.OpI32toI64 {
		t.Errorf("expected a left I32toI64 promotion, got %+v", res.LeftConv)
	}
	if res.RightConv != nil {
		t.Errorf("expected no right conversion, got %v", *res.RightConv)
	}
	if !res.ResultType.Equal(typesys.Int64) {
		t.Errorf("expected result type int64, got %s", res.ResultType)
	}
}

func TestResolveBinaryPromotesInt32AndFloat64(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Add, typesys.Int32, typesys.Float64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpAddF64 {
		t.Errorf("expected AddF64, got %s", res.Opcode)
	}
	if res.LeftConv == nil || *res.LeftConv != bytecode.OpI32toF64 {
		t.Errorf("expected a left I32toF64 promotion, got %+v", res.LeftConv)
	}
	if res.RightConv != nil {
		t.Errorf("expected no right conversion, got %v", *res.RightConv)
	}
}

func TestResolveBinaryPromotesFloat64AndInt32OnRightSide(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Add, typesys.Float64, typesys.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LeftConv != nil {
		t.Errorf("expected no left conversion, got %v", *res.LeftConv)
	}
	if res.RightConv == nil || *res.RightConv != bytecode.OpI32toF64 {
		t.Errorf("expected a right I32toF64 promotion, got %+v", res.RightConv)
	}
}

func TestResolveBinaryPromotesFloat32AndFloat64(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Add, typesys.Float32, typesys.Float64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpAddF64 {
		t.Errorf("expected AddF64, got %s", res.Opcode)
	}
	if res.LeftConv == nil || *res.LeftConv != bytecode.OpF32toF64 {
		t.Errorf("expected a left F32toF64 promotion, got %+v", res.LeftConv)
	}
}

func TestResolveBinaryBoolEquality(t *testing.T) {
	reg := registry.New()
	res, err := ResolveBinary(reg, Equal, typesys.Bool, typesys.Bool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpEqBool || res.Negate {
		t.Errorf("expected plain EqBool, got %+v", res)
	}

	neq, err := ResolveBinary(reg, NotEqual, typesys.Bool, typesys.Bool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if neq.Opcode != bytecode.OpEqBool || !neq.Negate {
		t.Errorf("expected a negated EqBool for !=, got %+v", neq)
	}
}

func TestResolveBinaryMixedSignednessFailsPrimitivePath(t *testing.T) {
	reg := registry.New()
	_, err := ResolveBinary(reg, Add, typesys.Int32, typesys.UInt32)
	if err == nil {
		t.Fatalf("expected mixed signed/unsigned arithmetic to fail without an operator overload")
	}
	derr, ok := err.(*diag.Error)
	if !ok || derr.Kind != diag.InvalidBinaryOperator {
		t.Errorf("expected InvalidBinaryOperator, got %v", err)
	}
}

func TestResolveBinaryUInt32AndUInt64HaveNoPromotion(t *testing.T) {
	// No U32toU64 opcode exists (only the signed I32toI64 conversion,
	// which sign- rather than zero-extends), so this pair correctly
	// has no primitive promotion path and falls through to failure.
	reg := registry.New()
	_, err := ResolveBinary(reg, Add, typesys.UInt32, typesys.UInt64)
	if err == nil {
		t.Fatalf("expected uint32+uint64 to fail without a dedicated widening opcode")
	}
}

func TestResolveBinaryHandleIdentity(t *testing.T) {
	reg := registry.New()
	widget := &registry.ClassEntry{Hash: classHash("Widget"), Name: "Widget", Qualified: "Widget"}
	if err := reg.RegisterType(widget); err != nil {
		t.Fatal(err)
	}
	h := typesys.New(widget.Hash).Handle()

	is, err := ResolveBinary(reg, Is, h, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if is.Kind != HandleIdentity || is.Opcode != bytecode.OpRefEq || is.Negate {
		t.Errorf("expected a plain handle identity comparison, got %+v", is)
	}

	isNot, err := ResolveBinary(reg, IsNot, h, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isNot.Negate {
		t.Errorf("expected !is to negate, got %+v", isNot)
	}
}

func TestResolveBinaryIsRequiresHandles(t *testing.T) {
	reg := registry.New()
	_, err := ResolveBinary(reg, Is, typesys.Int32, typesys.Int32)
	if err == nil {
		t.Fatalf("expected is between non-handles to fail")
	}
}

func TestResolveBinaryMethodOnLeft(t *testing.T) {
	reg := registry.New()
	money := &registry.ClassEntry{Hash: classHash("Money"), Name: "Money", Qualified: "Money"}
	if err := reg.RegisterType(money); err != nil {
		t.Fatal(err)
	}
	opAdd := &registry.FunctionDef{
		Hash:       ident.HashFunction(ident.KindMethod, "Money::opAdd", money.Hash, []ident.TypeHash{money.Hash}, false, ""),
		Name:       "opAdd",
		OwnerClass: money.Hash,
		Params:     []registry.ParamEntry{{Name: "other", Type: typesys.New(money.Hash)}},
		Return:     typesys.New(money.Hash),
	}
	registerMethod(t, reg, money.Hash, opAdd)

	res, err := ResolveBinary(reg, Add, typesys.New(money.Hash), typesys.New(money.Hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MethodOnLeft || res.Method != opAdd.Hash {
		t.Errorf("expected a MethodOnLeft resolution to opAdd, got %+v", res)
	}
	if !res.ResultType.Equal(typesys.New(money.Hash)) {
		t.Errorf("expected the method's return type, got %s", res.ResultType)
	}
}

func TestResolveBinaryMethodOnRightWhenNoLeftMethod(t *testing.T) {
	reg := registry.New()
	money := &registry.ClassEntry{Hash: classHash("Money"), Name: "Money", Qualified: "Money"}
	if err := reg.RegisterType(money); err != nil {
		t.Fatal(err)
	}
	addR := &registry.FunctionDef{
		Hash:       ident.HashFunction(ident.KindMethod, "Money::opAdd_r", money.Hash, []ident.TypeHash{ident.Int32}, false, ""),
		Name:       "opAdd_r",
		OwnerClass: money.Hash,
		Params:     []registry.ParamEntry{{Name: "other", Type: typesys.New(ident.Int32)}},
		Return:     typesys.New(money.Hash),
	}
	registerMethod(t, reg, money.Hash, addR)

	res, err := ResolveBinary(reg, Add, typesys.New(ident.Int32), typesys.New(money.Hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MethodOnRight || res.Method != addR.Hash {
		t.Errorf("expected a MethodOnRight resolution to opAdd_r, got %+v", res)
	}
}

func TestResolveBinaryRelationalMethodUsesPostCompare(t *testing.T) {
	reg := registry.New()
	money := &registry.ClassEntry{Hash: classHash("Money"), Name: "Money", Qualified: "Money"}
	if err := reg.RegisterType(money); err != nil {
		t.Fatal(err)
	}
	opCmp := &registry.FunctionDef{
		Hash:       ident.HashFunction(ident.KindMethod, "Money::opCmp", money.Hash, []ident.TypeHash{money.Hash}, false, ""),
		Name:       "opCmp",
		OwnerClass: money.Hash,
		Params:     []registry.ParamEntry{{Name: "other", Type: typesys.New(money.Hash)}},
		Return:     typesys.New(ident.Int32),
	}
	registerMethod(t, reg, money.Hash, opCmp)

	res, err := ResolveBinary(reg, Less, typesys.New(money.Hash), typesys.New(money.Hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != MethodOnLeft || res.Method != opCmp.Hash {
		t.Errorf("expected a MethodOnLeft resolution to opCmp, got %+v", res)
	}
	if res.PostCompare == nil || *res.PostCompare != bytecode.OpLtI32 {
		t.Errorf("expected a LtI32 post-compare step, got %+v", res.PostCompare)
	}
	if !res.ResultType.Equal(typesys.Bool) {
		t.Errorf("expected a bool result type, got %s", res.ResultType)
	}
}

func TestResolveBinaryInvalidOperatorFails(t *testing.T) {
	reg := registry.New()
	a := &registry.ClassEntry{Hash: classHash("A"), Name: "A", Qualified: "A"}
	b := &registry.ClassEntry{Hash: classHash("B"), Name: "B", Qualified: "B"}
	if err := reg.RegisterType(a); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterType(b); err != nil {
		t.Fatal(err)
	}

	_, err := ResolveBinary(reg, Add, typesys.New(a.Hash), typesys.New(b.Hash))
	if err == nil {
		t.Fatalf("expected an undefined operator between unrelated classes to fail")
	}
	derr, ok := err.(*diag.Error)
	if !ok || derr.Kind != diag.InvalidBinaryOperator {
		t.Errorf("expected InvalidBinaryOperator, got %v", err)
	}
}

func TestResolveUnaryPrimitiveNeg(t *testing.T) {
	cases := []struct {
		dt   typesys.DataType
		want bytecode.OpCode
	}{
		{typesys.Int32, bytecode.OpNegI32},
		{typesys.Int64, bytecode.OpNegI64},
		{typesys.Float32, bytecode.OpNegF32},
		{typesys.Float64, bytecode.OpNegF64},
	}
	reg := registry.New()
	for _, c := range cases {
		res, err := ResolveUnary(reg, Neg, c.dt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Kind != UnaryPrimitive || res.Opcode != c.want {
			t.Errorf("for %s: got %+v, want opcode %s", c.dt, res, c.want)
		}
	}
}

func TestResolveUnaryLogicalNot(t *testing.T) {
	reg := registry.New()
	res, err := ResolveUnary(reg, LogicalNot, typesys.Bool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpLogNot {
		t.Errorf("expected LogNot, got %s", res.Opcode)
	}
}

func TestResolveUnaryBitwiseNot(t *testing.T) {
	reg := registry.New()
	res, err := ResolveUnary(reg, BitwiseNot, typesys.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpBitNot {
		t.Errorf("expected BitNot, got %s", res.Opcode)
	}
}

func TestResolveUnaryPlusIsNoOp(t *testing.T) {
	reg := registry.New()
	res, err := ResolveUnary(reg, Plus, typesys.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != UnaryNoOp {
		t.Errorf("expected a no-op resolution, got %+v", res)
	}
	if !res.ResultType.Equal(typesys.Int32) {
		t.Errorf("expected the operand's own type, got %s", res.ResultType)
	}
}

func TestResolveUnaryPreIncrement(t *testing.T) {
	reg := registry.New()
	res, err := ResolveUnary(reg, PreIncrement, typesys.Int64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Opcode != bytecode.OpPreIncI64 {
		t.Errorf("expected PreIncI64, got %s", res.Opcode)
	}
}

func TestResolveUnaryMethodFallback(t *testing.T) {
	reg := registry.New()
	vec := &registry.ClassEntry{Hash: classHash("Vec"), Name: "Vec", Qualified: "Vec"}
	if err := reg.RegisterType(vec); err != nil {
		t.Fatal(err)
	}
	opNeg := &registry.FunctionDef{
		Hash:       ident.HashFunction(ident.KindMethod, "Vec::opNeg", vec.Hash, nil, false, ""),
		Name:       "opNeg",
		OwnerClass: vec.Hash,
		Return:     typesys.New(vec.Hash),
	}
	registerMethod(t, reg, vec.Hash, opNeg)

	res, err := ResolveUnary(reg, Neg, typesys.New(vec.Hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != UnaryMethod || res.Method != opNeg.Hash {
		t.Errorf("expected a UnaryMethod resolution to opNeg, got %+v", res)
	}
}

func TestResolveUnaryInvalidOperatorFails(t *testing.T) {
	reg := registry.New()
	a := &registry.ClassEntry{Hash: classHash("A"), Name: "A", Qualified: "A"}
	if err := reg.RegisterType(a); err != nil {
		t.Fatal(err)
	}

	_, err := ResolveUnary(reg, Neg, typesys.New(a.Hash))
	if err == nil {
		t.Fatalf("expected negating a class with no opNeg to fail")
	}
	derr, ok := err.(*diag.Error)
	if !ok || derr.Kind != diag.InvalidUnaryOperator {
		t.Errorf("expected InvalidUnaryOperator, got %v", err)
	}
}

func TestResolveAssignDirect(t *testing.T) {
	reg := registry.New()
	res, err := ResolveAssign(reg, Assign, typesys.Int64, typesys.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != AssignDirect {
		t.Errorf("expected AssignDirect, got %+v", res)
	}
}

func TestResolveAssignMethod(t *testing.T) {
	reg := registry.New()
	money := &registry.ClassEntry{Hash: classHash("Money"), Name: "Money", Qualified: "Money"}
	if err := reg.RegisterType(money); err != nil {
		t.Fatal(err)
	}
	opAssign := &registry.FunctionDef{
		Hash:       ident.HashFunction(ident.KindMethod, "Money::opAssign", money.Hash, []ident.TypeHash{money.Hash}, false, ""),
		Name:       "opAssign",
		OwnerClass: money.Hash,
		Params:     []registry.ParamEntry{{Name: "other", Type: typesys.New(money.Hash)}},
		Return:     typesys.New(money.Hash),
	}
	registerMethod(t, reg, money.Hash, opAssign)

	res, err := ResolveAssign(reg, Assign, typesys.New(money.Hash), typesys.New(money.Hash))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != AssignMethod || res.Method != opAssign.Hash {
		t.Errorf("expected an AssignMethod resolution to opAssign, got %+v", res)
	}
}

func TestResolveAssignComputeThenAssign(t *testing.T) {
	reg := registry.New()
	res, err := ResolveAssign(reg, AddAssign, typesys.Int32, typesys.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != AssignCompute {
		t.Errorf("expected AssignCompute, got %+v", res)
	}
	if res.Binary.Opcode != bytecode.OpAddI32 {
		t.Errorf("expected the compute step to use AddI32, got %s", res.Binary.Opcode)
	}
}

func TestResolveAssignComputeThenAssignWithPromotion(t *testing.T) {
	reg := registry.New()
	res, err := ResolveAssign(reg, AddAssign, typesys.Int64, typesys.Int32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != AssignCompute {
		t.Errorf("expected AssignCompute, got %+v", res)
	}
	if res.Binary.Opcode != bytecode.OpAddI64 {
		t.Errorf("expected the compute step to promote to AddI64, got %s", res.Binary.Opcode)
	}
}

func TestResolveAssignFailsWhenComputeResultCannotConvertBack(t *testing.T) {
	reg := registry.New()
	_, err := ResolveAssign(reg, AddAssign, typesys.Int32, typesys.Float64)
	if err == nil {
		t.Fatalf("expected int32 += float64 to fail converting the float64 sum back into int32")
	}
}

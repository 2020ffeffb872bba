package registry

import "github.com/cwbudde/ascript/internal/ident"

// OperatorBehavior identifies one overloadable operator slot in a
// TypeBehaviors operator map.
type OperatorBehavior byte

const (
	OpAdd OperatorBehavior = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpCom
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpIndex
	OpEquals
	OpCmp
	OpCall
	OpImplConv
	OpConv
	OpImplCast
	OpCast
)

// OperatorKey identifies one entry in a TypeBehaviors operator map: the
// operator slot, plus a target type hash for the parameterized kinds
// (OpImplConv, OpConv, OpImplCast, OpCast) where the same operator can
// be overloaded once per distinct target type. Target is 0 for every
// unparameterized operator.
type OperatorKey struct {
	Op     OperatorBehavior
	Target ident.TypeHash
}

// TypeBehaviors collects the special member functions and operator
// overloads attached to a class: construction, destruction,
// reference-counting hooks, and the operator dispatch map the operator
// resolver consults.
type TypeBehaviors struct {
	Constructors []ident.FunctionHash
	Factories    []ident.FunctionHash
	Destructor   ident.FunctionHash // 0 if none
	AddRef       ident.FunctionHash
	Release      ident.FunctionHash
	GCMark       ident.FunctionHash // 0 if the type isn't GC-tracked
	GCUnmark     ident.FunctionHash
	Operators    map[OperatorKey][]ident.FunctionHash
}

// AddOperator records fn as one overload of the operator named by key.
func (b *TypeBehaviors) AddOperator(key OperatorKey, fn ident.FunctionHash) {
	if b.Operators == nil {
		b.Operators = make(map[OperatorKey][]ident.FunctionHash)
	}
	b.Operators[key] = append(b.Operators[key], fn)
}

// Lookup returns every overload registered for key.
func (b *TypeBehaviors) Lookup(key OperatorKey) []ident.FunctionHash {
	return b.Operators[key]
}

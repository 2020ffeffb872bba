package diag

// Kind classifies a diagnostic by category: lookup, structure, types,
// calls, control flow, class, and internal-invariant.
type Kind string

const (
	// Lookup
	UnknownType          Kind = "UnknownType"
	UnknownFunction      Kind = "UnknownFunction"
	UnknownMethod        Kind = "UnknownMethod"
	UnknownField         Kind = "UnknownField"
	UnresolvedIdentifier Kind = "UnresolvedIdentifier"

	// Structure
	DuplicateDeclaration  Kind = "DuplicateDeclaration"
	DuplicateSymbol       Kind = "DuplicateSymbol"
	CircularInheritance   Kind = "CircularInheritance"
	NotATemplate          Kind = "NotATemplate"
	TemplateArityMismatch Kind = "TemplateArityMismatch"
	InvalidTemplateArgs   Kind = "InvalidTemplateArgs"

	// Types
	TypeMismatch             Kind = "TypeMismatch"
	InvalidCast              Kind = "InvalidCast"
	CannotModifyConst        Kind = "CannotModifyConst"
	ReferenceInValuePosition Kind = "ReferenceInValuePosition"
	NullToNonHandle          Kind = "NullToNonHandle"
	InvalidConstCombination  Kind = "InvalidConstCombination"

	// Calls
	ArgumentCountMismatch Kind = "ArgumentCountMismatch"
	AmbiguousOverload     Kind = "AmbiguousOverload"
	NoViableCandidate     Kind = "NoViableCandidate"
	NamedArgMissingSlot   Kind = "NamedArgMissingSlot"
	NamedArgDuplicate     Kind = "NamedArgDuplicate"
	InvalidBinaryOperator Kind = "InvalidBinaryOperator"
	InvalidUnaryOperator  Kind = "InvalidUnaryOperator"

	// Control flow
	BreakOutsideLoop      Kind = "BreakOutsideLoop"
	ContinueOutsideLoop   Kind = "ContinueOutsideLoop"
	ReturnOutsideFunction Kind = "ReturnOutsideFunction"
	MissingReturn         Kind = "MissingReturn"
	DuplicateDefault      Kind = "DuplicateDefault"

	// Class
	SuperOutsideConstructor Kind = "SuperOutsideConstructor"
	SuperWithoutBase        Kind = "SuperWithoutBase"
	MultipleSuperCalls      Kind = "MultipleSuperCalls"
	OverrideWithoutVirtual  Kind = "OverrideWithoutVirtual"

	// Internal — never recovered, indicates an invariant breach.
	Internal Kind = "Internal"
)

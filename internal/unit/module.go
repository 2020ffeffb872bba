package unit

import (
	"github.com/cwbudde/ascript/internal/bytecode"
	"github.com/cwbudde/ascript/internal/ident"
)

// ModuleFunction is one compiled function's or method's exported shape:
// everything a host or a linking pass needs without re-deriving it from
// the registry.
type ModuleFunction struct {
	Hash       ident.FunctionHash
	Name       string
	OwnerClass ident.TypeHash
	Params     []ModuleParam
	Return     uint64 // typesys.DataType.Hash of the return type
	IsConst    bool
	IsVirtual  bool
	Chunk      *bytecode.Chunk
}

// ModuleParam is a parameter's exported shape on a ModuleFunction.
type ModuleParam struct {
	Name       string
	TypeHash   uint64
	HasDefault bool
}

// Module is the linkable artifact a Unit produces: every function the
// unit compiled, the global variable table, and an initializer chunk
// that runs every global's declared initializer in declaration order.
type Module struct {
	Name        string
	Functions   []ModuleFunction
	GlobalCount int
	Init        *bytecode.Chunk
}

// Package resolve turns an AST type expression into a DataType: it maps
// primitive keywords, walks scoped names against the registry's
// namespace-chain lookup, attaches const/handle/reference modifiers in
// grammar order, and routes array suffixes and explicit template
// argument lists through a template instantiator.
package resolve

import (
	"github.com/cwbudde/ascript/internal/registry"
)

// Position is where inside a declaration a type expression appears. It
// is what lets Resolve reject a reference mode anywhere but a
// parameter.
type Position byte

const (
	PosParam Position = iota
	PosReturn
	PosField
	PosLocal
)

// Env is the environment one TypeExpr resolves against: the active
// namespace chain, the set of template parameter names in scope while
// their owning template definition is still unresolved (each resolves
// to ident.SelfType, a placeholder substituted at instantiation time),
// and the syntactic position of the expression.
type Env struct {
	Namespace     registry.Namespace
	TemplateNames map[string]bool
	Position      Position
}

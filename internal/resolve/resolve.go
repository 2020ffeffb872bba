package resolve

import (
	"strings"

	"github.com/cwbudde/ascript/internal/ast"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// arrayTemplateName is the registry name of the built-in array template
// that a `[]` suffix instantiates.
const arrayTemplateName = "array"

// TemplateInstantiator resolves a template base type plus concrete
// argument DataTypes into the concrete instantiated type. The memoized
// instance cache lives in internal/template; the resolver only issues
// requests against this interface, so the two packages don't need to
// import each other.
type TemplateInstantiator interface {
	Instantiate(base ident.TypeHash, args []typesys.DataType) (ident.TypeHash, error)
}

// Resolver turns AST TypeExprs into DataTypes against one registry
// layer and one template instantiator.
type Resolver struct {
	Registry  *registry.Registry
	Templates TemplateInstantiator
}

// New creates a Resolver over reg and templates.
func New(reg *registry.Registry, templates TemplateInstantiator) *Resolver {
	return &Resolver{Registry: reg, Templates: templates}
}

// Resolve turns te into a DataType under env. Failures carry one of
// UnknownType, NotATemplate, TemplateArityMismatch,
// InvalidTemplateArgs, InvalidConstCombination, or
// ReferenceInValuePosition.
func (r *Resolver) Resolve(te *ast.TypeExpr, env Env) (typesys.DataType, error) {
	base, err := r.resolveBase(te, env)
	if err != nil {
		return typesys.DataType{}, err
	}

	if len(te.TemplateArgs) > 0 {
		args := make([]typesys.DataType, len(te.TemplateArgs))
		for i, arg := range te.TemplateArgs {
			dt, err := r.Resolve(arg, env)
			if err != nil {
				return typesys.DataType{}, err
			}
			args[i] = dt
		}
		inst, err := r.Templates.Instantiate(base, args)
		if err != nil {
			return typesys.DataType{}, err
		}
		base = inst
	}

	dt := typesys.New(base)
	if te.Const {
		dt = dt.Const()
	}

	for _, suf := range te.Suffixes {
		switch suf.Kind {
		case ast.SuffixArray:
			arrayHash, err := r.arrayTemplateHash(te.Sp)
			if err != nil {
				return typesys.DataType{}, err
			}
			inst, err := r.Templates.Instantiate(arrayHash, []typesys.DataType{dt})
			if err != nil {
				return typesys.DataType{}, err
			}
			dt = typesys.New(inst)
		case ast.SuffixHandle:
			if suf.IsConst {
				dt = dt.HandleToConst()
			} else {
				dt = dt.Handle()
			}
		}
	}

	if te.RefModeText != "" {
		if env.Position != PosParam {
			return typesys.DataType{}, diag.New(diag.ReferenceInValuePosition, te.Sp,
				"reference mode %q is only legal on a parameter", te.RefModeText)
		}
		mode, err := parseRefMode(te.RefModeText, te.Sp)
		if err != nil {
			return typesys.DataType{}, err
		}
		dt = dt.WithRef(mode)
	}

	return dt, nil
}

// resolveBase resolves te's leading identifier or scope chain to a
// TypeHash, ignoring suffixes and modifiers.
func (r *Resolver) resolveBase(te *ast.TypeExpr, env Env) (ident.TypeHash, error) {
	if h, ok := primitiveHash(te.Base); ok {
		if len(te.Scope) > 0 {
			return 0, diag.New(diag.UnknownType, te.Sp, "primitive type %q cannot be scoped", te.Base)
		}
		return h, nil
	}

	if len(te.Scope) == 0 && env.TemplateNames[te.Base] {
		return ident.SelfType, nil
	}

	if len(te.Scope) == 0 {
		hashes := r.Registry.ResolveType(env.Namespace, te.Base)
		if len(hashes) == 0 {
			return 0, diag.New(diag.UnknownType, te.Sp, "unknown type %q", te.Base)
		}
		return hashes[0], nil
	}

	// Scoped name A::B::C: resolved as one fully-qualified lookup. This
	// package does not model nested types as children of a ClassEntry,
	// so "A::B" here is always a namespace path, never a nested type.
	qualified := strings.Join(te.Scope, "::") + "::" + te.Base
	hashes := r.Registry.ResolveType(nil, qualified)
	if len(hashes) == 0 {
		return 0, diag.New(diag.UnknownType, te.Sp, "unknown type %q", te.String())
	}
	return hashes[0], nil
}

func (r *Resolver) arrayTemplateHash(span diag.Span) (ident.TypeHash, error) {
	hashes := r.Registry.ResolveType(nil, arrayTemplateName)
	if len(hashes) == 0 {
		return 0, diag.New(diag.NotATemplate, span, "no array template registered")
	}
	return hashes[0], nil
}

func parseRefMode(text string, span diag.Span) (typesys.RefMode, error) {
	switch text {
	case "in":
		return typesys.RefIn, nil
	case "out":
		return typesys.RefOut, nil
	case "inout":
		return typesys.RefInOut, nil
	default:
		return typesys.RefNone, diag.New(diag.InvalidConstCombination, span, "unknown reference mode %q", text)
	}
}

package ffi

import (
	"fmt"

	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/template"
	"github.com/cwbudde/ascript/internal/typesys"
)

// TypeBuilder fluently assembles one host type's ClassEntry: its kind,
// base, interfaces, fields, and (if it is a template) its validator.
// Register commits the entry to the owning Registry.
type TypeBuilder struct {
	owner *Registry
	entry *registry.ClassEntry
	err   error
}

// NewTypeBuilder starts building a class named name of the given kind
// (ClassValue or ClassReference).
func NewTypeBuilder(owner *Registry, name string, kind registry.ClassKind) *TypeBuilder {
	return &TypeBuilder{
		owner: owner,
		entry: &registry.ClassEntry{
			Hash:      ident.HashType(name),
			Name:      name,
			Qualified: name,
			Kind:      kind,
			Origin:    registry.OriginFFI,
		},
	}
}

// Hash returns the TypeHash this builder will register under, usable
// before Register so a FunctionBuilder for one of its methods can refer
// to it as an owner.
func (b *TypeBuilder) Hash() ident.TypeHash { return b.entry.Hash }

// OverrideHash replaces the computed name-hash identity with h. Every
// script-declared and most host types get their hash from their name,
// but a handful of built-in value types (string, chief among them) are
// reserved TypeHash constants the resolver treats as primitive keywords
// rather than registry lookups (see internal/resolve's primitiveKeywords
// table), so their ClassEntry must be registered under that same
// reserved hash for FindMethods and convert's operator lookups to find
// it at all.
func (b *TypeBuilder) OverrideHash(h ident.TypeHash) *TypeBuilder {
	b.entry.Hash = h
	return b
}

// Base sets baseName as this type's base class. baseName must already
// be registered in owner.
func (b *TypeBuilder) Base(baseName string) *TypeBuilder {
	if b.err != nil {
		return b
	}
	hashes := b.owner.reg.ResolveType(nil, baseName)
	if len(hashes) == 0 {
		b.err = unknownTypeError(baseName)
		return b
	}
	b.entry.Base = hashes[0]
	return b
}

// Implements adds ifaceName to this type's implemented-interface list.
func (b *TypeBuilder) Implements(ifaceName string) *TypeBuilder {
	if b.err != nil {
		return b
	}
	hashes := b.owner.reg.ResolveType(nil, ifaceName)
	if len(hashes) == 0 {
		b.err = unknownTypeError(ifaceName)
		return b
	}
	b.entry.Interfaces = append(b.entry.Interfaces, hashes[0])
	return b
}

// Field adds a data member named name of type t.
func (b *TypeBuilder) Field(name string, t typesys.DataType) *TypeBuilder {
	b.entry.Fields = append(b.entry.Fields, registry.FieldEntry{Name: name, Type: t})
	return b
}

// TemplateParams marks this type as a template declared over the given
// parameter names (e.g. []string{"T"} for array<T>); Template attaches
// the validator that checks and builds each concrete instantiation.
func (b *TypeBuilder) TemplateParams(names ...string) *TypeBuilder {
	b.entry.TemplateParams = names
	return b
}

// Template registers v as the instantiation validator for this type.
// Call after TemplateParams; the validator only runs once the type
// itself has been registered, since Register must complete before any
// Unit's Resolver can ask for an instantiation of it.
func (b *TypeBuilder) Template(v template.Validator) *TypeBuilder {
	b.owner.RegisterTemplate(b.entry.Hash, v)
	return b
}

// Register commits the built ClassEntry to the owning Registry.
func (b *TypeBuilder) Register() (ident.TypeHash, error) {
	if b.err != nil {
		return 0, b.err
	}
	if err := b.owner.reg.RegisterType(b.entry); err != nil {
		return 0, err
	}
	return b.entry.Hash, nil
}

func unknownTypeError(name string) error {
	return fmt.Errorf("ffi: unknown type %q", name)
}

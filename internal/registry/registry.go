package registry

import (
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
)

// Registry holds one layer of symbol data: a hash-keyed type index, a
// hash-keyed function index, and name indices over both mapping a
// qualified name to every hash registered under it (more than one only
// for overloaded functions; types are never overloaded).
//
// ResolveType and ResolveFunction take a bare, unqualified name and
// apply namespace-chain fallback; for a scoped reference such as
// "A::B::C", internal/resolve passes the whole joined name to
// ResolveType with an empty namespace, as one fully-qualified lookup.
type Registry struct {
	types      map[ident.TypeHash]TypeEntry
	functions  map[ident.FunctionHash]*FunctionDef
	typeNames  map[string][]ident.TypeHash
	funcNames  map[string][]ident.FunctionHash
	searchPath []Namespace
}

// New creates an empty registry layer.
func New() *Registry {
	return &Registry{
		types:     make(map[ident.TypeHash]TypeEntry),
		functions: make(map[ident.FunctionHash]*FunctionDef),
		typeNames: make(map[string][]ident.TypeHash),
		funcNames: make(map[string][]ident.FunctionHash),
	}
}

// SetSearchPath configures extra namespaces consulted after ns's own
// innermost-out chain is exhausted — a project-wide "using namespace"
// list, e.g. so a script can name a type under Net::Http without
// qualifying it, the way a host's config can declare Net::Http as part
// of the default search path. Order matters: the first extra namespace
// that resolves name wins.
func (r *Registry) SetSearchPath(extra []Namespace) {
	r.searchPath = extra
}

// RegisterType adds entry under its own hash. A hash already present
// fails with DuplicateSymbol — types are never overloaded, so a
// collision here always indicates a hashing or synthesis bug.
func (r *Registry) RegisterType(entry TypeEntry) error {
	h := entry.TypeHash()
	if _, exists := r.types[h]; exists {
		return duplicateSymbol(entry.QualifiedName())
	}
	r.types[h] = entry
	name := entry.QualifiedName()
	r.typeNames[name] = append(r.typeNames[name], h)
	return nil
}

// RegisterFunction adds def under its own hash. A hash already present
// fails with DuplicateSymbol; distinct hashes sharing a name succeed
// silently and become overloads at resolution time.
func (r *Registry) RegisterFunction(def *FunctionDef) error {
	if _, exists := r.functions[def.Hash]; exists {
		return duplicateSymbol(def.Name)
	}
	r.functions[def.Hash] = def
	r.funcNames[def.Name] = append(r.funcNames[def.Name], def.Hash)
	return nil
}

func duplicateSymbol(name string) error {
	return diag.New(diag.DuplicateSymbol, diag.Span{}, "duplicate symbol %q", name)
}

// GetType returns the type entry for h, or nil if h is unregistered.
func (r *Registry) GetType(h ident.TypeHash) TypeEntry { return r.types[h] }

// GetFunction returns the function definition for h, or nil if h is
// unregistered.
func (r *Registry) GetFunction(h ident.FunctionHash) *FunctionDef { return r.functions[h] }

// ResolveType looks up a bare name as a type, trying ns innermost-out,
// then the global namespace, then the configured search path.
func (r *Registry) ResolveType(ns Namespace, name string) []ident.TypeHash {
	for _, candidate := range ns.chain(name) {
		if hashes, ok := r.typeNames[candidate]; ok {
			return hashes
		}
	}
	for _, extra := range r.searchPath {
		if hashes, ok := r.typeNames[extra.Qualify(name)]; ok {
			return hashes
		}
	}
	return nil
}

// ResolveFunction looks up a bare name as a function, with the same
// namespace fallback as ResolveType.
func (r *Registry) ResolveFunction(ns Namespace, name string) []ident.FunctionHash {
	for _, candidate := range ns.chain(name) {
		if hashes, ok := r.funcNames[candidate]; ok {
			return hashes
		}
	}
	for _, extra := range r.searchPath {
		if hashes, ok := r.funcNames[extra.Qualify(name)]; ok {
			return hashes
		}
	}
	return nil
}

// FindMethods walks receiver's inheritance chain for a class that
// declares a method named name, returning every overload of the first
// match. Base and derived overload sets are never merged: a derived
// class's own declaration of name fully replaces the base set.
func (r *Registry) FindMethods(receiver ident.TypeHash, name string) []ident.FunctionHash {
	for h := receiver; h != 0; {
		entry, ok := r.types[h].(*ClassEntry)
		if !ok {
			return nil
		}
		var matches []ident.FunctionHash
		for _, mh := range entry.Methods {
			if def := r.functions[mh]; def != nil && def.Name == name {
				matches = append(matches, mh)
			}
		}
		if len(matches) > 0 {
			return matches
		}
		h = entry.Base
	}
	return nil
}

// RegisterAlias makes qualifiedName resolve to the same hash as an
// already-registered type, without creating a second TypeEntry — used
// for typedef-style naming where two names must share one identity.
func (r *Registry) RegisterAlias(qualifiedName string, h ident.TypeHash) {
	r.typeNames[qualifiedName] = append(r.typeNames[qualifiedName], h)
}

// AllTypes returns every type entry registered in this layer, in no
// particular order. internal/unit uses this to seed a fresh per-unit
// layer from a sealed FFI layer.
func (r *Registry) AllTypes() []TypeEntry {
	out := make([]TypeEntry, 0, len(r.types))
	for _, entry := range r.types {
		out = append(out, entry)
	}
	return out
}

// AllFunctions returns every function definition registered in this
// layer, in no particular order.
func (r *Registry) AllFunctions() []*FunctionDef {
	out := make([]*FunctionDef, 0, len(r.functions))
	for _, def := range r.functions {
		out = append(out, def)
	}
	return out
}

// IsTypeDerivedFrom reports whether a transitively derives from b. A
// type is never considered derived from itself.
func (r *Registry) IsTypeDerivedFrom(a, b ident.TypeHash) bool {
	if a == b {
		return false
	}
	entry, ok := r.types[a].(*ClassEntry)
	if !ok {
		return false
	}
	for h := entry.Base; h != 0; {
		if h == b {
			return true
		}
		next, ok := r.types[h].(*ClassEntry)
		if !ok {
			return false
		}
		h = next.Base
	}
	return false
}

// Package template instantiates template types (array<T>, dictionary<K,V>
// and similar) on demand against an FFI-registered validator, memoizing
// the result so repeated requests for the same concrete instantiation
// don't pay to validate or rebuild it twice.
//
// A Manager is shared across every Unit compiling against one sealed
// FFI registry; Bind produces the per-Unit resolve.TemplateInstantiator
// that actually registers the instantiated class, since each Unit owns
// its own registry.Registry layer and the Manager never touches one
// directly (see internal/unit's package doc for why).
package template

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/resolve"
	"github.com/cwbudde/ascript/internal/typesys"
)

// MethodFactory builds one method, constructor, or behavior FunctionDef
// for a freshly instantiated class, given the concrete class hash so it
// can set OwnerClass and close over subtype-specific parameter types.
type MethodFactory func(classHash ident.TypeHash) *registry.FunctionDef

// Blueprint is what a Validator produces for one legal instantiation:
// everything Manager needs to register the concrete class into a Unit's
// registry layer.
type Blueprint struct {
	Name      string
	Kind      registry.ClassKind
	Fields    []registry.FieldEntry
	Methods   []MethodFactory
	Behaviors registry.TypeBehaviors
	NeedsGC   bool
}

// Validator checks whether args are legal template arguments and, if
// so, produces the Blueprint for that instantiation. A Validator is
// registered once per template type, at FFI-module load time, and runs
// once per distinct registry layer it is asked to instantiate into.
type Validator func(args []typesys.DataType) (*Blueprint, error)

// Manager instantiates template types and memoizes
// (template_hash, subtype_hashes) -> concrete_class_hash behind a
// mutex, so Units compiling on separate goroutines against the same
// sealed FFI registry share one instantiation cache without racing.
//
// The memoization cache grows for the lifetime of the Manager, which
// in a long-lived host process (an editor server recompiling on every
// keystroke, say) means entries pile up for instantiations no script
// will ever request again. maxEntries bounds that: once set above
// zero, entries a Blueprint marked NeedsGC are evicted oldest-first
// once the cache exceeds the limit. Eviction only forces a future
// request for that instantiation to re-run its Validator — the
// resulting hash is derived from Blueprint.Name, so it comes back
// identical and every already-compiled Unit stays valid.
type Manager struct {
	mu         sync.Mutex
	validators map[ident.TypeHash]Validator
	cache      map[cacheKey]ident.TypeHash
	gcEligible map[cacheKey]bool
	order      []cacheKey
	maxEntries int
}

type cacheKey struct {
	base ident.TypeHash
	args string
}

// NewManager creates an empty Manager. FFI modules call RegisterTemplate
// against it before any Unit starts compiling.
func NewManager() *Manager {
	return &Manager{
		validators: make(map[ident.TypeHash]Validator),
		cache:      make(map[cacheKey]ident.TypeHash),
		gcEligible: make(map[cacheKey]bool),
	}
}

// RegisterTemplate attaches v as the instantiation validator for the
// template type registered under base.
func (m *Manager) RegisterTemplate(base ident.TypeHash, v Validator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validators[base] = v
}

// SetCacheLimit bounds the number of memoized instantiations kept
// around at once; n <= 0 means unbounded (the default). Lowering the
// limit below the current cache size evicts GC-eligible entries
// immediately.
func (m *Manager) SetCacheLimit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxEntries = n
	m.evictLocked()
}

// evictLocked drops GC-eligible cache entries, oldest first, until the
// cache fits maxEntries or no eligible entry remains. Must be called
// with mu held.
func (m *Manager) evictLocked() {
	if m.maxEntries <= 0 {
		return
	}
	kept := m.order[:0]
	for _, key := range m.order {
		if len(m.cache) <= m.maxEntries || !m.gcEligible[key] {
			kept = append(kept, key)
			continue
		}
		delete(m.cache, key)
		delete(m.gcEligible, key)
	}
	m.order = kept
}

// Bind produces the resolve.TemplateInstantiator a single Unit's
// Resolver issues requests against. Every type it instantiates is
// registered into target, never into the shared FFI layer.
func (m *Manager) Bind(target *registry.Registry) resolve.TemplateInstantiator {
	return &boundManager{m: m, target: target}
}

type boundManager struct {
	m      *Manager
	target *registry.Registry
}

// Instantiate resolves base<args...> to a concrete TypeHash, registering
// the instantiated class into the bound registry the first time this
// particular registry sees that instantiation. The (base, args) -> hash
// mapping itself is shared and memoized across every Unit bound to this
// Manager; only the per-registry RegisterType/RegisterFunction calls are
// repeated per Unit, since each Unit's registry layer is its own.
func (b *boundManager) Instantiate(base ident.TypeHash, args []typesys.DataType) (ident.TypeHash, error) {
	b.m.mu.Lock()
	validator, known := b.m.validators[base]
	if !known {
		b.m.mu.Unlock()
		return 0, diag.New(diag.NotATemplate, diag.Span{}, "type %d is not registered as a template", base)
	}
	key := cacheKeyOf(base, args)
	hash, cached := b.m.cache[key]
	b.m.mu.Unlock()

	if b.target.GetType(hash) != nil && cached {
		return hash, nil
	}

	bp, err := validator(args)
	if err != nil {
		return 0, err
	}
	if !cached {
		hash = ident.HashType(bp.Name)
		b.m.mu.Lock()
		b.m.cache[key] = hash
		b.m.gcEligible[key] = bp.NeedsGC
		b.m.order = append(b.m.order, key)
		b.m.evictLocked()
		b.m.mu.Unlock()
	}
	if b.target.GetType(hash) != nil {
		return hash, nil
	}
	if err := b.registerBlueprint(hash, bp); err != nil {
		return 0, err
	}
	return hash, nil
}

func (b *boundManager) registerBlueprint(hash ident.TypeHash, bp *Blueprint) error {
	entry := &registry.ClassEntry{
		Hash: hash, Name: bp.Name, Qualified: bp.Name,
		Kind: bp.Kind, Fields: bp.Fields, Origin: registry.OriginFFI,
		Behaviors: bp.Behaviors,
	}
	for _, mf := range bp.Methods {
		def := mf(hash)
		if err := b.target.RegisterFunction(def); err != nil {
			return err
		}
		if def.Traits.IsConstructor {
			entry.Behaviors.Constructors = append(entry.Behaviors.Constructors, def.Hash)
			continue
		}
		entry.Methods = append(entry.Methods, def.Hash)
	}
	return b.target.RegisterType(entry)
}

func cacheKeyOf(base ident.TypeHash, args []typesys.DataType) cacheKey {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d:%t", a.Hash, a.IsHandle)
	}
	return cacheKey{base: base, args: b.String()}
}

// Package ffi is the host-facing registration surface: a fluent builder
// over internal/registry that lets a host module describe types,
// functions, and behaviors as a builder, without touching
// registry.Registry's lower-level RegisterType/RegisterFunction calls
// directly.
//
// A Registry built here is meant to be assembled once at host startup
// and then handed to internal/unit.New as the sealed FFI layer every
// Unit copies from; nothing in this package enforces that sealing
// itself (the copy-on-construction in internal/unit is what makes later
// mutation of this layer harmless), so a host should stop calling
// builders against it once compilation starts.
package ffi

import (
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/template"
)

// Registry wraps the registry layer a host populates through
// TypeBuilder/FunctionBuilder before handing it to internal/unit.
type Registry struct {
	reg       *registry.Registry
	templates *template.Manager
}

// NewRegistry creates an empty FFI registry layer with its own template
// instantiation manager.
func NewRegistry() *Registry {
	return &Registry{reg: registry.New(), templates: template.NewManager()}
}

// Underlying returns the registry.Registry layer this Registry builds
// against, for internal/unit.New's seeding copy.
func (r *Registry) Underlying() *registry.Registry { return r.reg }

// Templates returns the template.Manager backing every template type
// this Registry declares, for internal/unit.New's TemplateInstantiator
// argument (bound per-Unit via Templates().Bind(unitRegistry)).
func (r *Registry) Templates() *template.Manager { return r.templates }

// RegisterTemplate declares base as a template type whose instantiations
// v validates and builds. TypeBuilder.Template calls this once the type
// itself is registered.
func (r *Registry) RegisterTemplate(base ident.TypeHash, v template.Validator) {
	r.templates.RegisterTemplate(base, v)
}

// SetTemplateCacheLimit bounds how many memoized template instantiations
// this Registry's Manager keeps at once; see template.Manager.SetCacheLimit.
func (r *Registry) SetTemplateCacheLimit(n int) {
	r.templates.SetCacheLimit(n)
}

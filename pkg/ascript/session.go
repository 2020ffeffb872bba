// Package ascript is the public embedding API: a Session owns one
// sealed FFI registry and compiles any number of independent sources
// against it, concurrently, through Unit.
//
// A Session is built once per host process (or per isolated script
// environment within one process) via New, which seals the FFI
// registry before returning so that every later CompileAll call is
// safe to run its workers against it without synchronization beyond
// that one-time seal.
package ascript

import (
	"github.com/cwbudde/ascript/internal/ffi"
	"github.com/cwbudde/ascript/internal/ffi/stdarray"
	"github.com/cwbudde/ascript/internal/ffi/stdstring"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/unit"
)

// Option configures a Session at construction time.
type Option func(*config)

type config struct {
	skipStdlib    bool
	register      []func(*ffi.Registry) error
	workers       int
	searchPath    []registry.Namespace
	templateCache int
}

// WithoutStdlib skips registering the built-in string and array<T>
// types, for a host that wants a bare Session to register its own
// types over instead.
func WithoutStdlib() Option {
	return func(c *config) { c.skipStdlib = true }
}

// WithFFIModule adds one more host module's Register func to run
// against the Session's FFI registry before it is sealed.
func WithFFIModule(register func(*ffi.Registry) error) Option {
	return func(c *config) { c.register = append(c.register, register) }
}

// WithWorkers caps the number of Units CompileAll compiles
// concurrently. The default is runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithNamespaceSearchPath declares extra "::"-separated namespaces
// every Unit's resolver consults, after its own lexical nesting, when
// looking up a bare type or function name — a project-wide default
// `using namespace` list.
func WithNamespaceSearchPath(paths ...string) Option {
	return func(c *config) {
		for _, p := range paths {
			c.searchPath = append(c.searchPath, registry.ParseNamespace(p))
		}
	}
}

// WithTemplateCacheLimit bounds how many memoized template
// instantiations (array<T> and similar) the Session keeps around at
// once; see internal/template.Manager.SetCacheLimit. n <= 0 means
// unbounded, the default.
func WithTemplateCacheLimit(n int) Option {
	return func(c *config) { c.templateCache = n }
}

// Session holds one sealed FFI registry layer and compiles Units
// against it. A Session is safe for concurrent use by multiple
// goroutines calling CompileAll; the FFI layer it wraps is never
// mutated after New returns.
type Session struct {
	ffi        *ffi.Registry
	workers    int
	searchPath []registry.Namespace
}

// New assembles a Session's FFI registry from the default standard
// modules (string, array<T>) plus any WithFFIModule additions, then
// seals it: the registry is never written to again after New returns,
// only ever read from by the per-Unit registry layers CompileAll
// seeds from it.
func New(opts ...Option) (*Session, error) {
	cfg := config{workers: defaultWorkers()}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := ffi.NewRegistry()
	if !cfg.skipStdlib {
		if err := stdstring.Register(reg); err != nil {
			return nil, err
		}
		if err := stdarray.Register(reg); err != nil {
			return nil, err
		}
	}
	for _, register := range cfg.register {
		if err := register(reg); err != nil {
			return nil, err
		}
	}
	reg.SetTemplateCacheLimit(cfg.templateCache)

	return &Session{ffi: reg, workers: cfg.workers, searchPath: cfg.searchPath}, nil
}

// newUnit seeds a fresh Unit against the Session's sealed FFI layer,
// with its own per-Unit registry and a template instantiator bound to
// that same registry, then applies the Session's namespace search path
// to that registry so every Unit sees it the same way.
func (s *Session) newUnit(name string) *unit.Unit {
	u := unit.New(name, s.ffi.Underlying(), s.ffi.Templates().Bind)
	u.Registry.SetSearchPath(s.searchPath)
	return u
}

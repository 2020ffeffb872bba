package registry

import "strings"

// Namespace is a chain of nested namespace segments, innermost last —
// e.g. ["A", "B"] for code lexically inside `namespace A { namespace B
// { ... } }`.
type Namespace []string

// Qualify joins ns and name with "::", or returns name unchanged when
// ns is empty.
func (ns Namespace) Qualify(name string) string {
	if len(ns) == 0 {
		return name
	}
	return strings.Join(ns, "::") + "::" + name
}

// ParseNamespace splits a "::"-separated path like "Net::Http" into a
// Namespace, for hosts that configure a search path as plain strings.
func ParseNamespace(path string) Namespace {
	if path == "" {
		return nil
	}
	return strings.Split(path, "::")
}

// chain returns the ordered list of qualified-name candidates for name:
// fully qualified by ns, then by every enclosing prefix of ns in turn,
// then bare — the lexical fallback order name resolution uses.
func (ns Namespace) chain(name string) []string {
	candidates := make([]string, 0, len(ns)+1)
	for i := len(ns); i >= 0; i-- {
		candidates = append(candidates, Namespace(ns[:i]).Qualify(name))
	}
	return candidates
}

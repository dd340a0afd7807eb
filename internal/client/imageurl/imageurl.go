// Package imageurl turns the image references stored on products into
// absolute URLs a terminal user can open.
package imageurl

import "strings"

const (
	DefaultBackend     = "https://vibecart-backend.onrender.com"
	DefaultLegacyHost  = "http://localhost:5000"
	DefaultPlaceholder = "https://via.placeholder.com/300"
)

// Resolver is safe for concurrent use; it holds no mutable state.
type Resolver struct {
	backend     string
	legacyHost  string
	placeholder string
}

// New builds a Resolver. Empty arguments fall back to the defaults.
func New(backend, legacyHost, placeholder string) *Resolver {
	if backend == "" {
		backend = DefaultBackend
	}
	if legacyHost == "" {
		legacyHost = DefaultLegacyHost
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Resolver{
		backend:     strings.TrimRight(backend, "/"),
		legacyHost:  legacyHost,
		placeholder: placeholder,
	}
}

// URL resolves ref. It is total: every input yields a URL.
func (r *Resolver) URL(ref string) string {
	switch {
	case ref == "":
		return r.placeholder
	case strings.HasPrefix(ref, "data:image/"):
		return ref
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		// only the first occurrence is rewritten
		return strings.Replace(ref, r.legacyHost, r.backend, 1)
	case strings.HasPrefix(ref, "/"):
		return r.backend + ref
	default:
		return r.backend + "/" + ref
	}
}

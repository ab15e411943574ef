// Package host declares the collaborators the header-rewrite core consumes
// but never implements itself: the proxy's header map and its per-stream
// dynamic metadata store. The core only ever sees these interfaces;
// concrete adapters (net/http, in-memory) live alongside them for tests
// and the demo binaries.
package host

// FilterName is the dynamic-metadata namespace the core reads and writes
// under. Hosts keep other filters' namespaces untouched.
const FilterName = "envoy.extensions.filters.http.HeaderRewrite"

// HeaderMap is the ordered multi-map of header names to values the host
// exposes for the current request or response. Implementations must treat
// header names case-insensitively. The core lower-cases the names read by
// hdr(); set-header and append-header keys are passed as configured.
type HeaderMap interface {
	// GetAllAsCommaString returns all values of name joined by ",", or
	// (\"\", false) if the header is absent.
	GetAllAsCommaString(name string) (string, bool)
	// Set replaces all values of name with a single value.
	Set(name, value string)
	// Append adds another value under name, preserving existing ones.
	Append(name, value string)
	// Path returns the request's :path pseudo-header including any query
	// string. Only meaningful on the request side.
	Path() (string, bool)
	// SetPath replaces the request's :path pseudo-header. Only meaningful
	// on the request side.
	SetPath(path string)
}

// MetadataStore is the per-stream namespace -> key -> string bag the host
// exposes for dynamic metadata. A nil MetadataStore models a stream with no
// metadata handle at all.
type MetadataStore interface {
	Get(namespace, key string) (string, bool)
	Set(namespace, key, value string)
}

// Package catalog holds the static HTTP registries: request methods, header
// field definitions grouped by category, and media types, plus the
// classification predicates built on them. Registries are constructed
// explicitly and are immutable afterwards, so they are safe to share
// process-wide.
package catalog

import (
	"sort"
	"strings"
)

// Category groups header definitions by concern, following MDN's grouping.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryAuthentication
	CategoryCaching
	CategoryConditionals
	CategoryConnection
	CategoryContentNegotiation
	CategoryCookies
	CategoryCORS
	CategoryMessageBody
	CategoryProxies
	CategoryRangeRequests
	CategoryRedirects
	CategoryRequestContext
	CategoryResponseContext
	CategorySecurity
	CategoryTransferCoding
	CategoryRateLimiting
	CategoryExtension
)

var categoryNames = map[Category]string{
	CategoryUnknown:            "unknown",
	CategoryAuthentication:     "authentication",
	CategoryCaching:            "caching",
	CategoryConditionals:       "conditionals",
	CategoryConnection:         "connection",
	CategoryContentNegotiation: "content negotiation",
	CategoryCookies:            "cookies",
	CategoryCORS:               "cors",
	CategoryMessageBody:        "message body",
	CategoryProxies:            "proxies",
	CategoryRangeRequests:      "range requests",
	CategoryRedirects:          "redirects",
	CategoryRequestContext:     "request context",
	CategoryResponseContext:    "response context",
	CategorySecurity:           "security",
	CategoryTransferCoding:     "transfer coding",
	CategoryRateLimiting:       "rate limiting",
	CategoryExtension:          "extension",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Definition describes one well-known header field.
type Definition struct {
	ID          int
	Name        string
	Description string
	Category    Category
}

// Registry is an immutable, name-indexed set of header definitions.
// Lookups are case-insensitive.
type Registry struct {
	byName map[string]*Definition
	defs   []Definition
}

func NewRegistry(defs []Definition) *Registry {
	r := &Registry{
		byName: make(map[string]*Definition, len(defs)),
		defs:   make([]Definition, len(defs)),
	}
	copy(r.defs, defs)
	sort.Slice(r.defs, func(i, j int) bool { return r.defs[i].ID < r.defs[j].ID })

	for i := range r.defs {
		def := &r.defs[i]
		r.byName[strings.ToLower(def.Name)] = def
	}
	return r
}

func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

func (r *Registry) Contains(name string) bool {
	_, ok := r.byName[strings.ToLower(name)]
	return ok
}

// Known reports whether name may be stored in a header store: either a
// registered definition or an extension field ("X-" prefix) with a valid
// token name.
func (r *Registry) Known(name string) bool {
	return r.Contains(name) || IsExtension(name)
}

// Definitions returns all registered definitions, ordered by ID.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, len(r.defs))
	copy(defs, r.defs)
	return defs
}

func (r *Registry) Len() int { return len(r.defs) }

var defaultRegistry = NewRegistry(definitions)

// Default returns the process-wide registry of well-known header fields.
func Default() *Registry { return defaultRegistry }

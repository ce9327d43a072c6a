package request

import (
	"net/url"
	"sync/atomic"

	"httpkit/web/catalog"
	"httpkit/web/header"
)

// Request is the canonical form every accepted input shape resolves to.
type Request struct {
	// ID identifies the request within this process. Assigned on
	// resolution, wraps around after maxID.
	ID uint32

	Method catalog.Method
	URL    string

	// Parsed is the parsed form of URL, nil when URL is empty.
	Parsed *url.URL

	Headers *header.Store
	Body    []byte
	Options *Options

	// Extra carries properties of foreign shapes that have no canonical
	// field, so round-tripping loses nothing.
	Extra map[string]any
}

const maxID = 999_999

var idCounter atomic.Uint32

// nextID hands out 1..maxID and wraps. Compare-and-swap keeps the window
// closed when two goroutines hit the wrap at once.
func nextID() uint32 {
	for {
		cur := idCounter.Load()
		next := cur + 1
		if next > maxID {
			next = 1
		}
		if idCounter.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// Clone deep-copies the request. Parsed is re-derived from URL rather than
// aliased.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}

	clone := &Request{
		ID:     r.ID,
		Method: r.Method,
		URL:    r.URL,
	}
	if r.Parsed != nil {
		u := *r.Parsed
		clone.Parsed = &u
	}
	if r.Headers != nil {
		clone.Headers = r.Headers.Clone()
	}
	if len(r.Body) > 0 {
		clone.Body = make([]byte, len(r.Body))
		copy(clone.Body, r.Body)
	}
	if r.Options != nil {
		clone.Options = r.Options.Clone()
	}
	if len(r.Extra) > 0 {
		clone.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			clone.Extra[k] = v
		}
	}
	return clone
}

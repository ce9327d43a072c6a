// Package response reduces raw transport output of any shape into one
// canonical response value with uniform status, header, body and retry
// accessors.
package response

import (
	"sync"

	"httpkit/web/catalog"
	"httpkit/web/header"
	"httpkit/web/request"
	"httpkit/web/status"
)

// Response is the canonical response wrapper. Build one with From or
// Resolve; a zero value carries no status or headers.
type Response struct {
	Status  status.Status
	Headers *header.Store

	// Request is the canonical request this response answers, synthesized
	// from the input when the source carried one.
	Request *request.Request

	// Config holds the options the request was issued with.
	Config *request.Options

	URL string

	// Err is the transport or framework error the response was built
	// from. Status and body are still populated best-effort when the
	// error carried a partial response.
	Err error

	mu   sync.Mutex
	body *bodySource
}

// OK reports a fully successful exchange: no error and one of the statuses
// the toolkit counts as success (200, 201, 202, 204).
func (r *Response) OK() bool {
	return r.Err == nil && r.Status.IsValid()
}

// IsError reports whether the exchange failed, either below HTTP (transport
// error captured in Err) or with an error-class status. Callers inspect
// this instead of expecting resolution to fail.
func (r *Response) IsError() bool {
	return r.Err != nil || r.Status.IsClientError() || r.Status.IsServerError()
}

// IsRedirect reports whether the response redirects somewhere the client
// could follow. A redirect status without a Location header does not count.
func (r *Response) IsRedirect() bool {
	return r.Status.IsRedirect() && r.RedirectURL() != ""
}

// RedirectURL returns the redirect target, or "" when there is none.
func (r *Response) RedirectURL() string {
	if r.Headers == nil {
		return ""
	}
	target, _ := r.Headers.Get(catalog.Location)
	return target
}

// IsUseCached reports a 304: the client should reuse its cached copy. Not a
// redirect, even though the code sits in the 3xx range.
func (r *Response) IsUseCached() bool { return r.Status.IsUseCached() }

func (r *Response) IsClientError() bool { return r.Status.IsClientError() }

func (r *Response) IsServerError() bool { return r.Status.IsServerError() }

func (r *Response) IsExceedsRateLimit() bool { return r.Status.IsExceedsRateLimit() }

func (r *Response) CanRetry() bool { return r.Status.CanRetry() }

// StatusText returns the registered reason phrase for the status.
func (r *Response) StatusText() string { return r.Status.Name }

// Clone returns an independent copy. The body source is shared: whichever
// copy resolves first consumes the stream and the others read the cached
// bytes, so every clone remains consumable.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}

	clone := &Response{
		Status: r.Status,
		URL:    r.URL,
		Err:    r.Err,
		body:   r.src(),
	}
	if r.Headers != nil {
		clone.Headers = r.Headers.Clone()
	}
	if r.Request != nil {
		clone.Request = r.Request.Clone()
	}
	if r.Config != nil {
		clone.Config = r.Config.Clone()
	}
	return clone
}

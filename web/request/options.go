// Package request normalizes URLs, option bags and foreign request shapes
// into one canonical request representation.
package request

import (
	"context"
	"sync"
	"time"

	"httpkit/web/catalog"
	"httpkit/web/header"

	"github.com/benbjohnson/clock"
)

// Fetch-style request policies.
//
// Reference: https://fetch.spec.whatwg.org/#requests
type (
	Cache          string
	Credentials    string
	Mode           string
	Redirect       string
	ReferrerPolicy string
)

const (
	CacheDefault      Cache = "default"
	CacheNoStore      Cache = "no-store"
	CacheReload       Cache = "reload"
	CacheNoCache      Cache = "no-cache"
	CacheForce        Cache = "force-cache"
	CacheOnlyIfCached Cache = "only-if-cached"

	CredentialsOmit       Credentials = "omit"
	CredentialsSameOrigin Credentials = "same-origin"
	CredentialsInclude    Credentials = "include"

	ModeCORS       Mode = "cors"
	ModeNoCORS     Mode = "no-cors"
	ModeSameOrigin Mode = "same-origin"
	ModeNavigate   Mode = "navigate"

	RedirectFollow Redirect = "follow"
	RedirectError  Redirect = "error"
	RedirectManual Redirect = "manual"

	ReferrerNoReferrer              ReferrerPolicy = "no-referrer"
	ReferrerNoReferrerWhenDowngrade ReferrerPolicy = "no-referrer-when-downgrade"
	ReferrerOrigin                  ReferrerPolicy = "origin"
	ReferrerOriginWhenCrossOrigin   ReferrerPolicy = "origin-when-cross-origin"
	ReferrerSameOrigin              ReferrerPolicy = "same-origin"
	ReferrerStrictOrigin            ReferrerPolicy = "strict-origin"
	ReferrerStrictOriginCrossOrigin ReferrerPolicy = "strict-origin-when-cross-origin"
	ReferrerUnsafeURL               ReferrerPolicy = "unsafe-url"
)

// Options is the value object carried by one outgoing request: method,
// headers, body and the fetch-style policies, plus the cancellation state.
// Construct with NewOptions; the zero value lacks a header store.
type Options struct {
	Method         catalog.Method
	Headers        *header.Store
	Body           []byte
	Cache          Cache
	Credentials    Credentials
	Mode           Mode
	Redirect       Redirect
	ReferrerPolicy ReferrerPolicy

	// Timeout bounds the whole exchange; zero or negative means none.
	Timeout time.Duration

	ctx context.Context
	clk clock.Clock

	mu         sync.Mutex
	derived    context.Context
	cancel     context.CancelFunc
	derivedFor time.Duration
}

func NewOptions() *Options {
	return &Options{
		Method:         catalog.MethodGet,
		Headers:        header.New(nil),
		Cache:          CacheDefault,
		Credentials:    CredentialsSameOrigin,
		Mode:           ModeCORS,
		Redirect:       RedirectFollow,
		ReferrerPolicy: ReferrerStrictOriginCrossOrigin,
	}
}

// SetContext sets the base context the exchange runs under. Any previously
// derived timeout context is released.
func (o *Options) SetContext(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctx = ctx
	o.releaseLocked()
}

// SetClock injects the clock used for timeout derivation. Tests pass
// clock.NewMock().
func (o *Options) SetClock(clk clock.Clock) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clk = clk
}

// Context returns the context the transport should run under. With a
// positive Timeout it derives, once, a child of the base context that
// expires after the timeout. Repeated calls return that same derived
// context until the timeout value changes; Cancel releases it.
func (o *Options) Context() context.Context {
	o.mu.Lock()
	defer o.mu.Unlock()

	base := o.ctx
	if base == nil {
		base = context.Background()
	}
	if o.Timeout <= 0 {
		return base
	}

	if o.derived != nil && o.derivedFor == o.Timeout {
		return o.derived
	}
	o.releaseLocked()

	clk := o.clk
	if clk == nil {
		clk = clock.New()
	}
	ctx, cancel := clk.WithTimeout(base, o.Timeout)
	o.derived, o.cancel, o.derivedFor = ctx, cancel, o.Timeout
	return ctx
}

// Cancel releases the derived timeout context, if any. It does not touch
// the base context.
func (o *Options) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.releaseLocked()
}

func (o *Options) releaseLocked() {
	if o.cancel != nil {
		o.cancel()
	}
	o.derived, o.cancel, o.derivedFor = nil, nil, 0
}

// Clone deep-copies the value fields. Derived cancellation state is not
// carried over; the clone derives its own timeout context on first use.
func (o *Options) Clone() *Options {
	if o == nil {
		return NewOptions()
	}

	clone := &Options{
		Method:         o.Method,
		Cache:          o.Cache,
		Credentials:    o.Credentials,
		Mode:           o.Mode,
		Redirect:       o.Redirect,
		ReferrerPolicy: o.ReferrerPolicy,
		Timeout:        o.Timeout,
		ctx:            o.ctx,
		clk:            o.clk,
	}
	if o.Headers != nil {
		clone.Headers = o.Headers.Clone()
	} else {
		clone.Headers = header.New(nil)
	}
	if len(o.Body) > 0 {
		clone.Body = make([]byte, len(o.Body))
		copy(clone.Body, o.Body)
	}
	return clone
}

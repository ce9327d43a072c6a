// Package client performs HTTP exchanges over net/http and hands back
// canonical responses. It owns no transport logic: sockets, redirects and
// proxying stay with the standard library, while request shaping and
// response interpretation live in web/request and web/response.
package client

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	iolib "httpkit/lib/io"
	"httpkit/web/catalog"
	"httpkit/web/header"
	"httpkit/web/merge"
	"httpkit/web/request"
	"httpkit/web/response"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/net/http2"
)

type Options struct {
	// Timeout applies when the request options carry none. Zero means no
	// client-level bound.
	Timeout time.Duration

	// UserAgent is sent unless the request already names one.
	UserAgent string

	// Headers are defaults folded under every request's headers: the
	// request's value wins per field, client values fill the gaps.
	Headers *header.Store

	// MaxBodyBytes caps how many response body bytes are read. Zero reads
	// the body whole.
	MaxBodyBytes uint

	// EnableHTTP2 swaps the transport for an h2c-capable one.
	EnableHTTP2 bool

	// DisableCache adds Cache-Control: no-cache to every request.
	DisableCache bool

	// BodyTransform, when set, filters each response body stream. The
	// middleware receives the downstream writer and returns the writer the
	// raw bytes go through.
	BodyTransform func(io.WriteCloser) io.WriteCloser

	// Transport overrides the assembled transport. Meant for tests.
	Transport http.RoundTripper
}

type Client struct {
	hc *http.Client

	logger *slog.Logger
	clock  clock.Clock
	merger *merge.Merger

	opts Options
}

func New(logger *slog.Logger, clk clock.Clock, opts Options) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.New()
	}

	transport := opts.Transport
	if transport == nil {
		transport = newTransport(opts)
	}

	return &Client{
		hc:     &http.Client{Transport: transport},
		logger: logger,
		clock:  clk,
		merger: merge.New(&merge.Options{Fallback: merge.Replace, Logger: logger}),
		opts:   opts,
	}
}

func newTransport(opts Options) http.RoundTripper {
	if opts.EnableHTTP2 {
		t := &http2.Transport{AllowHTTP: true}
		if opts.MaxBodyBytes > 0 {
			// Out-of-range values are clamped by the http2 package.
			t.MaxReadFrameSize = uint32(opts.MaxBodyBytes)
		}
		return t
	}

	return &http.Transport{
		MaxIdleConns: 10,
		// The body cap is enforced by wrapBody; response headers get the
		// header store's wire budget.
		MaxResponseHeaderBytes: 4 * header.MaxTotalSize,
	}
}

// Do resolves target into a canonical request, performs the exchange, and
// interprets whatever comes back. It never returns a Go error: resolution
// and transport failures surface as error-shaped responses with the cause
// in Err.
func (c *Client) Do(ctx context.Context, target any, opts *request.Options) *response.Response {
	logger := c.logger.With("id", uuid.NewString())

	req, err := request.Resolve(target, opts)
	if err != nil {
		logger.Warn("request not resolvable", "error", err.Error())
		return response.From(err, opts, "")
	}

	cfg := req.Options
	if cfg == nil {
		cfg = request.NewOptions()
		req.Options = cfg
	}
	if c.opts.Timeout > 0 && cfg.Timeout <= 0 {
		cfg.Timeout = c.opts.Timeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.SetContext(ctx)
	cfg.SetClock(c.clock)

	callCtx := cfg.Context()
	defer cfg.Cancel()

	httpReq, err := c.buildHTTPRequest(callCtx, req)
	if err != nil {
		logger.Warn("building http request failed", "url", req.URL, "error", err.Error())
		return response.From(err, cfg, req.URL)
	}

	start := c.clock.Now()
	httpRes, err := c.hc.Do(httpReq)
	elapsed := c.clock.Since(start)

	if err != nil {
		logger.Warn("exchange failed",
			"method", req.Method,
			"url", req.URL,
			"elapsed", elapsed,
			"error", err.Error(),
		)
		resp := response.From(errors.Wrap(err, "sending request"), cfg, req.URL)
		resp.Request = req
		return resp
	}

	c.wrapBody(httpRes)

	resp := response.Resolve(callCtx, httpRes, cfg, req.URL)
	resp.Request = req

	logger.Debug("exchange completed",
		"method", req.Method,
		"url", req.URL,
		"status", resp.Status.Code,
		"elapsed", elapsed,
	)
	return resp
}

func (c *Client) buildHTTPRequest(ctx context.Context, req *request.Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, bodyReader(req.Body))
	if err != nil {
		return nil, errors.Wrap(err, "building http request")
	}

	headers := req.Headers
	if c.opts.Headers != nil {
		headers = c.merger.Stores(c.opts.Headers, req.Headers)
	}
	if headers != nil {
		for _, e := range headers.WithoutForbidden().Entries() {
			httpReq.Header.Set(e[0], e[1])
		}
	}

	if c.opts.UserAgent != "" && httpReq.Header.Get(catalog.UserAgent) == "" {
		httpReq.Header.Set(catalog.UserAgent, c.opts.UserAgent)
	}
	if c.opts.DisableCache {
		httpReq.Header.Add(catalog.CacheControl, "no-cache")
	}

	return httpReq, nil
}

// wrapBody layers the configured caps and filters over the raw stream, so
// response resolution reads what the client policy allows.
func (c *Client) wrapBody(res *http.Response) {
	if res.Body == nil || res.Body == http.NoBody {
		return
	}

	body := io.Reader(res.Body)
	wrapped := false
	if c.opts.MaxBodyBytes > 0 {
		body = iolib.LimitReader(body, c.opts.MaxBodyBytes)
		wrapped = true
	}
	if c.opts.BodyTransform != nil {
		body = iolib.NewMiddlewareReader(body, c.opts.BodyTransform)
		wrapped = true
	}
	if wrapped {
		res.Body = &wrappedBody{Reader: body, closer: res.Body}
	}
}

type wrappedBody struct {
	io.Reader
	closer io.Closer
}

func (b *wrappedBody) Close() error { return b.closer.Close() }

func bodyReader(body []byte) io.Reader {
	if len(body) == 0 {
		return nil
	}
	return bytes.NewReader(body)
}

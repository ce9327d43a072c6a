package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"httpkit/web/catalog"
	"httpkit/web/header"
	"httpkit/web/request"
	"httpkit/web/status"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"
)

func newTestClient(opts Options) *Client {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, opts)
}

func TestClientDoSimpleGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(Options{})

	resp := c.Do(context.Background(), srv.URL, nil)

	assert.True(t, resp.OK())
	assert.Equal(t, status.OK.Code, resp.Status.Code)
	assert.NoError(t, resp.Err)

	j, err := resp.JSON(context.Background())
	require.NoError(t, err)
	assert.True(t, j.Get("ok").Bool())

	ct, _ := resp.Headers.Get(catalog.ContentType)
	assert.Equal(t, "application/json", ct)

	require.NotNil(t, resp.Request)
	assert.NotZero(t, resp.Request.ID)
	assert.Equal(t, srv.URL+"/", resp.URL)
}

func TestClientDoPostShape(t *testing.T) {
	var (
		gotMethod string
		gotCT     string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(Options{})

	resp := c.Do(context.Background(), map[string]any{
		"method":  "POST",
		"url":     srv.URL + "/things",
		"headers": map[string]any{"content-type": "application/json"},
		"body":    map[string]any{"name": "widget"},
	}, nil)

	assert.True(t, resp.OK())
	assert.Equal(t, 201, resp.Status.Code)

	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "application/json", gotCT)
	assert.JSONEq(t, `{"name":"widget"}`, string(gotBody))
}

func TestClientDoIdentityHeaders(t *testing.T) {
	tests := []struct {
		desc      string
		opts      Options
		reqUA     string
		wantUA    string
		wantCache string
	}{
		{
			desc:   "client user agent applies when request has none",
			opts:   Options{UserAgent: "httpkit-test/1.0"},
			wantUA: "httpkit-test/1.0",
		},
		{
			desc:   "request user agent wins over the client's",
			opts:   Options{UserAgent: "httpkit-test/1.0"},
			reqUA:  "custom-agent",
			wantUA: "custom-agent",
		},
		{
			desc:      "no-cache header injected when cache disabled",
			opts:      Options{DisableCache: true},
			wantCache: "no-cache",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			var gotUA, gotCache string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUA = r.Header.Get("User-Agent")
				gotCache = r.Header.Get("Cache-Control")
			}))
			defer srv.Close()

			c := newTestClient(tt.opts)

			opts := request.NewOptions()
			if tt.reqUA != "" {
				require.NoError(t, opts.Headers.Set(catalog.UserAgent, tt.reqUA))
			}

			resp := c.Do(context.Background(), srv.URL, opts)
			require.True(t, resp.OK())

			if tt.wantUA != "" {
				assert.Equal(t, tt.wantUA, gotUA)
			}
			assert.Equal(t, tt.wantCache, gotCache)
		})
	}
}

func TestClientDoDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	defaults := header.New(nil)
	require.NoError(t, defaults.Set("Accept", "application/json"))
	require.NoError(t, defaults.Set("X-App-Env", "test"))

	c := newTestClient(Options{Headers: defaults})

	opts := request.NewOptions()
	require.NoError(t, opts.Headers.Set("Accept", "text/html"))

	resp := c.Do(context.Background(), srv.URL, opts)
	require.True(t, resp.OK())

	assert.Equal(t, "text/html", got.Get("Accept"), "request value wins")
	assert.Equal(t, "test", got.Get("X-App-Env"), "client default fills the gap")

	v, _ := defaults.Get("Accept")
	assert.Equal(t, "application/json", v, "client defaults are never mutated")
}

func TestClientDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(Options{})

	resp := c.Do(context.Background(), url, nil)

	assert.True(t, resp.IsError())
	assert.Equal(t, status.ClientError.Code, resp.Status.Code)
	assert.Error(t, resp.Err)
	require.NotNil(t, resp.Request)
	assert.Equal(t, url+"/", resp.Request.URL)
}

func TestClientDoUnresolvableTarget(t *testing.T) {
	c := newTestClient(Options{})

	resp := c.Do(context.Background(), 42, nil)

	assert.True(t, resp.IsError())
	assert.ErrorIs(t, resp.Err, request.ErrUnresolvable)
}

func TestClientDoMaxBodyBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 1024))
	}))
	defer srv.Close()

	c := newTestClient(Options{MaxBodyBytes: 16})

	resp := c.Do(context.Background(), srv.URL, nil)
	require.True(t, resp.OK())

	b, err := resp.Bytes(context.Background())
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

type upperWriter struct{ w io.WriteCloser }

func (u upperWriter) Write(p []byte) (int, error) {
	if _, err := u.w.Write(bytes.ToUpper(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (u upperWriter) Close() error { return u.w.Close() }

func TestClientDoBodyTransform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	c := newTestClient(Options{
		BodyTransform: func(w io.WriteCloser) io.WriteCloser {
			return upperWriter{w: w}
		},
	})

	resp := c.Do(context.Background(), srv.URL, nil)
	require.True(t, resp.OK())

	text, err := resp.Text(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HELLO", text)
}

func TestClientDoTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(Options{Timeout: 50 * time.Millisecond})

	resp := c.Do(context.Background(), srv.URL, nil)

	assert.True(t, resp.IsError())
	assert.ErrorIs(t, resp.Err, context.DeadlineExceeded)
}

func TestClientDoRequestTimeoutWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.Write([]byte("slow but fine"))
	}))
	defer srv.Close()

	c := newTestClient(Options{Timeout: 50 * time.Millisecond})

	opts := request.NewOptions()
	opts.Timeout = 5 * time.Second

	resp := c.Do(context.Background(), srv.URL, opts)

	assert.True(t, resp.OK())
	assert.NoError(t, resp.Err)
}

func TestClientDoCanonicalRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	req, err := request.Resolve(srv.URL, nil)
	require.NoError(t, err)

	c := newTestClient(Options{})

	resp := c.Do(context.Background(), req, nil)

	require.True(t, resp.OK())
	assert.Same(t, req, resp.Request)
}

func TestClientDoContextCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	c := newTestClient(Options{})

	resp := c.Do(ctx, srv.URL, nil)

	assert.True(t, resp.IsError())
	assert.ErrorIs(t, resp.Err, context.Canceled)
}

func TestNewTransportSelection(t *testing.T) {
	tests := []struct {
		desc  string
		opts  Options
		check func(t *testing.T, rt http.RoundTripper)
	}{
		{
			desc: "default is http/1.1 with capped header size",
			opts: Options{MaxBodyBytes: 1 << 20},
			check: func(t *testing.T, rt http.RoundTripper) {
				tr, ok := rt.(*http.Transport)
				require.True(t, ok)
				assert.Equal(t, int64(4*header.MaxTotalSize), tr.MaxResponseHeaderBytes)
				assert.Equal(t, 10, tr.MaxIdleConns)
			},
		},
		{
			desc: "http/2 swaps the transport",
			opts: Options{EnableHTTP2: true, MaxBodyBytes: 1 << 20},
			check: func(t *testing.T, rt http.RoundTripper) {
				tr, ok := rt.(*http2.Transport)
				require.True(t, ok)
				assert.True(t, tr.AllowHTTP)
				assert.Equal(t, uint32(1<<20), tr.MaxReadFrameSize)
			},
		},
		{
			desc: "explicit transport is kept",
			opts: Options{Transport: roundTripperFunc(nil)},
			check: func(t *testing.T, rt http.RoundTripper) {
				_, ok := rt.(roundTripperFunc)
				assert.True(t, ok)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			c := newTestClient(tt.opts)
			tt.check(t, c.hc.Transport)
		})
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClientDoErrorShapedFromBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"error": "maintenance"})
	}))
	defer srv.Close()

	c := newTestClient(Options{})

	resp := c.Do(context.Background(), srv.URL, nil)

	assert.True(t, resp.IsError())
	assert.True(t, resp.IsServerError())
	assert.True(t, resp.CanRetry())
	assert.Equal(t, 503, resp.Status.Code)

	ra, ok := resp.Headers.Get(catalog.RetryAfter)
	require.True(t, ok)
	assert.Equal(t, "2", ra)
}

func TestClientDoWrapsRoundTripperErrors(t *testing.T) {
	cause := errors.New("wire snapped")
	c := newTestClient(Options{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, cause
	})})

	resp := c.Do(context.Background(), "http://example.test/x", nil)

	assert.True(t, resp.IsError())
	assert.ErrorIs(t, resp.Err, cause)
}

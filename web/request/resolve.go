package request

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"httpkit/web/catalog"
	"httpkit/web/header"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrUnresolvable reports an input no dispatch arm can turn into a request.
var ErrUnresolvable = errors.New("cannot resolve request")

// maxUnwrap caps how many nested request wrappers are followed before
// giving up on finding the innermost value.
const maxUnwrap = 5

// Envelope is a loose request shape for callers holding framework values
// that are not worth converting field by field. Zero fields are ignored.
type Envelope struct {
	Method  any
	URL     string
	Headers any
	Body    any

	// Request optionally nests another request-shaped value. Resolve
	// follows it the same way it follows a map's "request" property.
	Request any

	// Extra is carried onto the resolved request untouched.
	Extra map[string]any
}

func (e Envelope) asMap() map[string]any {
	m := make(map[string]any, 5+len(e.Extra))
	for k, v := range e.Extra {
		m[k] = v
	}
	if e.Method != nil {
		m["method"] = e.Method
	}
	if e.URL != "" {
		m["url"] = e.URL
	}
	if e.Headers != nil {
		m["headers"] = e.Headers
	}
	if e.Body != nil {
		m["body"] = e.Body
	}
	if e.Request != nil {
		m["request"] = e.Request
	}
	return m
}

// Resolve reduces v to a canonical request. Dispatch is by shape, not by
// origin: plain URLs and JSON-encoded ones, canonical requests (returned
// as-is), *http.Request, Envelope and map shapes with unknown keys kept on
// Extra, and values that nest the real request under a "request" property.
// Nested wrappers are followed at most maxUnwrap levels with an identity
// check, so cyclic wrappers terminate. Anything else fails with
// ErrUnresolvable.
//
// opts supplies defaults; fields carried by the value itself win. The
// resolved request owns a clone of opts, so later mutation of the caller's
// options does not leak in.
func Resolve(v any, opts *Options) (*Request, error) {
	v = unwrapNested(v)

	switch t := v.(type) {
	case nil:
		return nil, errors.Wrap(ErrUnresolvable, "nil input")
	case *Request:
		if t == nil {
			return nil, errors.Wrap(ErrUnresolvable, "nil input")
		}
		if t.ID == 0 {
			t.ID = nextID()
		}
		return t, nil
	case Request:
		r := t
		if r.ID == 0 {
			r.ID = nextID()
		}
		return &r, nil
	case string:
		return fromText(t, opts)
	case []byte:
		return fromText(string(t), opts)
	case *url.URL:
		if t == nil {
			return nil, errors.Wrap(ErrUnresolvable, "nil input")
		}
		return assemble(shape{url: t.String()}, opts)
	case url.URL:
		return assemble(shape{url: t.String()}, opts)
	case *http.Request:
		return fromHTTP(t, opts)
	case Envelope:
		return fromMap(t.asMap(), opts)
	case *Envelope:
		if t == nil {
			return nil, errors.Wrap(ErrUnresolvable, "nil input")
		}
		return fromMap(t.asMap(), opts)
	case map[string]any:
		return fromMap(t, opts)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = v
		}
		return fromMap(m, opts)
	default:
		return nil, errors.Wrapf(ErrUnresolvable, "unsupported shape %T", v)
	}
}

// shape is the intermediate extraction result every structured input is
// reduced to before assembly.
type shape struct {
	method  catalog.Method
	url     string
	headers any
	body    []byte
	timeout time.Duration
	extra   map[string]any
}

func fromText(text string, opts *Options) (*Request, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, errors.Wrap(ErrUnresolvable, "blank input")
	}

	// JSON objects describe a request; JSON strings quote one more level.
	// Everything else is taken to be a URL.
	if gjson.Valid(s) {
		j := gjson.Parse(s)
		switch {
		case j.IsObject():
			if m, ok := j.Value().(map[string]any); ok {
				return fromMap(m, opts)
			}
		case j.Type == gjson.String:
			return Resolve(j.String(), opts)
		}
	}
	return assemble(shape{url: s}, opts)
}

func fromMap(m map[string]any, opts *Options) (*Request, error) {
	var s shape
	for k, v := range m {
		switch strings.ToLower(k) {
		case "method":
			if mv, ok := catalog.MethodOf(v); ok {
				s.method = mv
			}
		case "url", "uri", "href":
			if sv, ok := v.(string); ok {
				s.url = sv
			}
		case "headers":
			s.headers = v
		case "body", "data":
			s.body = coerceBody(v)
		case "timeout":
			s.timeout = coerceTimeout(v)
		case "request":
			// Consumed by the unwrap phase.
		default:
			if s.extra == nil {
				s.extra = make(map[string]any)
			}
			s.extra[k] = v
		}
	}
	return assemble(s, opts)
}

func fromHTTP(r *http.Request, opts *Options) (*Request, error) {
	if r == nil {
		return nil, errors.Wrap(ErrUnresolvable, "nil input")
	}

	var s shape
	if m, ok := catalog.MethodOf(r.Method); ok {
		s.method = m
	}
	if r.URL != nil {
		s.url = r.URL.String()
	}
	if len(r.Header) > 0 {
		s.headers = r.Header
	}
	s.body = readHTTPBody(r)
	return assemble(s, opts)
}

// readHTTPBody drains the body non-destructively: GetBody when the request
// carries one, otherwise read once and swap in a replayable copy.
func readHTTPBody(r *http.Request) []byte {
	if r.GetBody != nil {
		rc, err := r.GetBody()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return b
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	b, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		return nil
	}
	r.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

// assemble folds the extracted shape over the caller's options and applies
// the verb and URL rules: bodies are dropped for verbs that forbid them, and
// URLs are normalized except for OPTIONS and CONNECT targets.
func assemble(s shape, opts *Options) (*Request, error) {
	o := opts.Clone()

	if s.method != "" {
		o.Method = s.method
	}
	if o.Method == "" {
		o.Method = catalog.MethodGet
	}
	if s.timeout > 0 {
		o.Timeout = s.timeout
	}
	if s.headers != nil {
		// Foreign header shapes fail open: a store we cannot build from
		// is skipped rather than failing the whole resolution.
		if hs, err := header.From(s.headers, nil); err == nil {
			o.Headers = o.Headers.Merge(hs)
		}
	}

	body := s.body
	if body == nil {
		body = o.Body
	}

	req := &Request{
		ID:      nextID(),
		Method:  o.Method,
		URL:     strings.TrimSpace(s.url),
		Headers: o.Headers,
		Extra:   s.extra,
	}
	if req.URL != "" {
		if u, err := url.Parse(req.URL); err == nil {
			if req.Method != catalog.MethodOptions && req.Method != catalog.MethodConnect {
				normalizeURL(u)
			}
			req.Parsed = u
			req.URL = u.String()
		}
	}
	if !req.Method.ForbidsBody() && len(body) > 0 {
		req.Body = body
	}

	o.Body = req.Body
	req.Options = o
	return req, nil
}

// unwrapNested follows "request" properties down to the innermost value.
// The walk is capped and keeps an identity set, so self-referential and
// cyclic wrappers stop instead of looping. Strings, URLs and canonical
// requests end the walk immediately.
func unwrapNested(v any) any {
	seen := make(map[uintptr]struct{})
	for i := 0; i < maxUnwrap; i++ {
		if p, ok := identityOf(v); ok {
			if _, dup := seen[p]; dup {
				return v
			}
			seen[p] = struct{}{}
		}

		switch t := v.(type) {
		case map[string]any:
			inner, ok := t["request"]
			if !ok || inner == nil {
				return v
			}
			v = inner
		case Envelope:
			if t.Request == nil {
				return v
			}
			v = t.Request
		case *Envelope:
			if t == nil || t.Request == nil {
				return v
			}
			v = t.Request
		default:
			return v
		}
	}
	return v
}

func identityOf(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

func coerceBody(v any) []byte {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		b := make([]byte, len(t))
		copy(b, t)
		return b
	case string:
		return []byte(t)
	case json.RawMessage:
		b := make([]byte, len(t))
		copy(b, t)
		return b
	default:
		// Structured bodies serialize as JSON.
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return b
	}
}

// coerceTimeout accepts duration values and the bare-number-of-milliseconds
// convention framework configs use.
func coerceTimeout(v any) time.Duration {
	switch t := v.(type) {
	case time.Duration:
		return t
	case int:
		return time.Duration(t) * time.Millisecond
	case int64:
		return time.Duration(t) * time.Millisecond
	case float64:
		return time.Duration(t * float64(time.Millisecond))
	case string:
		if d, err := time.ParseDuration(t); err == nil {
			return d
		}
	}
	return 0
}

// normalizeURL rewrites u into its normal form: lowercase scheme and host,
// default ports elided and an empty path replaced by "/".
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-4.2.3
func normalizeURL(u *url.URL) {
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(strings.TrimSuffix(u.Host, ":"))

	if port := u.Port(); port != "" {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			u.Host = u.Hostname()
		}
	}
	if u.Host != "" && u.Path == "" {
		u.Path = "/"
	}
}

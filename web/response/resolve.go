package response

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"httpkit/web/header"
	"httpkit/web/request"
	"httpkit/web/status"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// maxUnwrap caps how many nested response wrappers and error links are
// followed during resolution.
const maxUnwrap = 5

// Envelope is a loose response shape for callers holding framework values.
// Zero fields are ignored.
type Envelope struct {
	Status     any
	StatusText string
	Headers    any
	Data       any
	Config     any
	Request    any
	URL        string

	// Response optionally nests the real response one level down, the way
	// framework errors wrap the response they failed on.
	Response any
}

// From reduces v to a canonical response. It never fails: transport errors,
// framework error objects, *http.Response, Envelope and map shapes, JSON
// text and raw payloads all come back as a *Response, with irreconcilable
// input yielding an error-shaped response carrying the client-error
// sentinel. The body stays pending until one of the body accessors runs.
//
// cfg and rawURL supply the request options and URL when the value itself
// does not carry them.
func From(v any, cfg *request.Options, rawURL string) *Response {
	switch t := v.(type) {
	case *Response:
		if t != nil {
			return t
		}
		return errorShaped(errors.New("nil response"), cfg, rawURL)
	case error:
		return fromError(t, cfg, rawURL)
	}
	return fromValue(v, cfg, rawURL)
}

// Resolve is From plus eager body resolution, so callers get a response
// whose payload is already buffered. Body failures land on Err; Resolve
// never fails either.
func Resolve(ctx context.Context, v any, cfg *request.Options, rawURL string) *Response {
	resp := From(v, cfg, rawURL)
	if _, err := resp.Bytes(ctx); err != nil && resp.Err == nil {
		resp.Err = err
	}
	return resp
}

// fromError is the error path: recover the response many client libraries
// attach to their failures, resolve it as usual, and keep the original
// error on the result. With nothing attached the result is the minimal
// error-shaped response.
func fromError(err error, cfg *request.Options, rawURL string) *Response {
	var resp *Response
	switch attached := attachedResponse(err).(type) {
	case nil:
		resp = errorShaped(nil, cfg, rawURL)
	case *Response:
		resp = attached.Clone()
	default:
		resp = fromValue(attached, cfg, rawURL)
	}
	resp.Err = err
	return resp
}

// fromValue is the normal path. Phases: unwrap nesting, extract fields
// preferring the most-unwrapped layer, normalize headers, classify status,
// synthesize the request, then finalize.
func fromValue(v any, cfg *request.Options, rawURL string) *Response {
	if v == nil {
		return errorShaped(errors.New("cannot resolve response from nil input"), cfg, rawURL)
	}

	chain := unwrapChain(v)

	// A canonical response found under the wrappers is adopted as-is.
	if inner, ok := chain[len(chain)-1].(*Response); ok && inner != nil {
		return inner
	}

	var src source
	for i := len(chain) - 1; i >= 0; i-- {
		src.merge(extract(chain[i]))
	}

	resp := &Response{
		Config: cfg,
		URL:    src.url,
	}
	if resp.URL == "" {
		resp.URL = rawURL
	}
	if resp.Config == nil {
		if c, ok := src.config.(*request.Options); ok {
			resp.Config = c
		}
	}

	resp.Headers = buildHeaders(src.headers)

	st, err := resolveStatus(src)
	resp.Status = st
	if resp.Status.Name == "" && src.text != "" {
		resp.Status.Name = src.text
	}
	if err != nil {
		resp.Err = err
	}
	if src.err != nil {
		resp.Err = src.err
	}

	resp.Request = synthesizeRequest(src.request, resp.Config, resp.URL)
	if resp.URL == "" && resp.Request != nil {
		resp.URL = resp.Request.URL
	}

	resp.body = newBodySource(src.data)
	return resp
}

// errorShaped is the fallback response nothing better can be built from:
// the 666 client-error sentinel, empty headers and whatever request context
// the caller supplied.
func errorShaped(cause error, cfg *request.Options, rawURL string) *Response {
	return &Response{
		Status:  status.ClientError,
		Headers: header.New(nil),
		Config:  cfg,
		URL:     rawURL,
		Err:     cause,
		Request: synthesizeRequest(nil, cfg, rawURL),
		body:    newBodySource(nil),
	}
}

// source is the intermediate extraction result. Layers merge innermost
// first; outer layers only fill fields still missing. Status values join a
// candidate list instead, tried in merge order.
type source struct {
	status  []any
	text    string
	headers any
	data    any
	config  any
	request any
	url     string
	err     error
	bare    bool
}

func (s *source) merge(layer source) {
	s.status = append(s.status, layer.status...)
	if s.text == "" {
		s.text = layer.text
	}
	if s.headers == nil {
		s.headers = layer.headers
	}
	if s.data == nil {
		s.data = layer.data
	}
	if s.config == nil {
		s.config = layer.config
	}
	if s.request == nil {
		s.request = layer.request
	}
	if s.url == "" {
		s.url = layer.url
	}
	if s.err == nil {
		s.err = layer.err
	}
	s.bare = s.bare || layer.bare
}

func extract(v any) source {
	switch t := v.(type) {
	case *http.Response:
		return extractHTTP(t)
	case Envelope:
		return extractEnvelope(&t)
	case *Envelope:
		if t == nil {
			return source{}
		}
		return extractEnvelope(t)
	case map[string]any:
		if len(t) > 0 && !responseShaped(t) {
			return source{data: t, bare: true}
		}
		return extractMap(t)
	case string:
		return extractText(t)
	case []byte:
		return extractText(string(t))
	case error:
		return source{err: t}
	default:
		return source{data: v, bare: true}
	}
}

func extractHTTP(t *http.Response) source {
	if t == nil {
		return source{}
	}

	var s source
	if t.StatusCode != 0 {
		s.status = append(s.status, t.StatusCode)
	}
	if len(t.Header) > 0 {
		s.headers = t.Header
	}
	if t.Body != nil && t.Body != http.NoBody {
		s.data = t.Body
	}
	if t.Request != nil {
		s.request = t.Request
		if t.Request.URL != nil {
			s.url = t.Request.URL.String()
		}
	}
	return s
}

func extractEnvelope(t *Envelope) source {
	var s source
	if t.Status != nil {
		s.status = append(s.status, t.Status)
	}
	s.text = t.StatusText
	s.headers = t.Headers
	s.data = t.Data
	s.config = t.Config
	s.request = t.Request
	s.url = t.URL
	return s
}

func extractMap(m map[string]any) source {
	var s source
	var primary, secondary, tertiary any
	var data, body any

	for k, v := range m {
		switch strings.ToLower(k) {
		case "status":
			primary = v
		case "statuscode":
			secondary = v
		case "code":
			tertiary = v
		case "statustext":
			if sv, ok := v.(string); ok {
				s.text = sv
			}
		case "headers":
			s.headers = v
		case "data":
			data = v
		case "body":
			body = v
		case "config":
			s.config = v
		case "request":
			s.request = v
		case "url":
			if sv, ok := v.(string); ok {
				s.url = sv
			}
		case "error":
			s.err = coerceError(v)
		case "response":
			// Consumed by the unwrap phase.
		}
	}

	for _, c := range []any{primary, secondary, tertiary} {
		if c != nil {
			s.status = append(s.status, c)
		}
	}
	s.data = data
	if s.data == nil {
		s.data = body
	}
	return s
}

// extractText sorts JSON text into response-shaped objects, which are
// extracted field by field, and plain payloads, which become the body of a
// bare success.
func extractText(text string) source {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return source{}
	}

	if gjson.Valid(trimmed) {
		j := gjson.Parse(trimmed)
		if j.IsObject() {
			if m, ok := j.Value().(map[string]any); ok && responseShaped(m) {
				return extractMap(m)
			}
			return source{data: j.Value(), bare: true}
		}
		if j.IsArray() {
			return source{data: j.Value(), bare: true}
		}
	}
	return source{data: text, bare: true}
}

func responseShaped(m map[string]any) bool {
	for k := range m {
		switch strings.ToLower(k) {
		case "status", "statuscode", "code", "statustext", "headers",
			"data", "body", "config", "request", "url", "response", "error":
			return true
		}
	}
	return false
}

func resolveStatus(src source) (status.Status, error) {
	if len(src.status) > 0 {
		v := src.status[0]
		if len(src.status) > 1 {
			v = src.status
		}
		st, err := status.FromValue(v)
		if err != nil {
			return status.ClientError, err
		}
		return st, nil
	}
	if src.bare && src.data != nil {
		// A raw payload with no response framing is a success body.
		return status.OK, nil
	}
	return status.ClientError, errors.New("no resolvable status")
}

func buildHeaders(v any) *header.Store {
	if v == nil {
		return header.New(nil)
	}
	hs, err := header.From(v, nil)
	if err != nil {
		return header.New(nil)
	}
	return hs
}

// synthesizeRequest adopts the source's request shape when it carries one,
// falling back to the response URL, so retries and redirect follow-ups have
// a request to reuse. Failures leave the field unset.
func synthesizeRequest(shape any, cfg *request.Options, rawURL string) *request.Request {
	if shape != nil {
		if req, err := request.Resolve(shape, cfg); err == nil {
			return req
		}
	}
	if rawURL != "" {
		if req, err := request.Resolve(rawURL, cfg); err == nil {
			return req
		}
	}
	return nil
}

// unwrapChain collects v and every value nested under "response" keys, cap
// and identity-checked so cyclic wrappers terminate.
func unwrapChain(v any) []any {
	chain := []any{v}
	seen := make(map[uintptr]struct{})

	cur := v
	for i := 0; i < maxUnwrap; i++ {
		if p, ok := identityOf(cur); ok {
			if _, dup := seen[p]; dup {
				return chain
			}
			seen[p] = struct{}{}
		}

		var inner any
		switch t := cur.(type) {
		case map[string]any:
			inner = t["response"]
		case Envelope:
			inner = t.Response
		case *Envelope:
			if t != nil {
				inner = t.Response
			}
		default:
			return chain
		}
		if inner == nil {
			return chain
		}
		chain = append(chain, inner)
		cur = inner
	}
	return chain
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

func coerceError(v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case error:
		return t
	case string:
		if t == "" {
			return nil
		}
		return errors.New(t)
	default:
		return errors.Errorf("%v", t)
	}
}

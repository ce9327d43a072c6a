package response

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// bodySource resolves a raw body value exactly once and caches the result.
// Clones share the same source, so whichever side reads first consumes the
// underlying stream and the other gets the cached bytes.
type bodySource struct {
	mu   sync.Mutex
	raw  any
	data []byte
	val  any
	done bool
	err  error
}

func newBodySource(raw any) *bodySource {
	return &bodySource{raw: raw}
}

func (b *bodySource) resolve(ctx context.Context) error {
	if b.done {
		return b.err
	}
	// A dead context fails the call without consuming the attempt, so a
	// later call under a live context still resolves.
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "resolving body")
	}
	b.done = true

	switch t := b.raw.(type) {
	case nil:
	case []byte:
		b.data = t
	case json.RawMessage:
		b.data = []byte(t)
	case string:
		b.data = []byte(t)
	case io.ReadCloser:
		defer t.Close()
		b.data, b.err = readAll(t)
	case io.Reader:
		b.data, b.err = readAll(t)
	case func(context.Context) ([]byte, error):
		b.data, b.err = t(ctx)
	case func() ([]byte, error):
		b.data, b.err = t()
	default:
		// Structured values keep their shape for Data and serialize for
		// the byte accessors.
		b.val = t
		b.data, b.err = json.Marshal(t)
		if b.err != nil {
			b.err = errors.Wrap(b.err, "serializing body")
		}
	}
	b.raw = nil
	return b.err
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "resolving body")
	}
	return data, nil
}

func (b *bodySource) bytes(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.resolve(ctx); err != nil {
		return nil, err
	}
	return b.data, nil
}

func (b *bodySource) value(ctx context.Context) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.resolve(ctx); err != nil {
		return nil, err
	}
	if b.val != nil {
		return b.val, nil
	}
	if len(b.data) == 0 {
		return nil, nil
	}
	if gjson.ValidBytes(b.data) {
		parsed := gjson.ParseBytes(b.data)
		if parsed.IsObject() || parsed.IsArray() {
			b.val = parsed.Value()
			return b.val, nil
		}
	}
	return string(b.data), nil
}

// Bytes resolves the body and returns the raw payload. The first call
// consumes the underlying stream; later calls return the cached bytes.
func (r *Response) Bytes(ctx context.Context) ([]byte, error) {
	return r.src().bytes(ctx)
}

// Text resolves the body as a string.
func (r *Response) Text(ctx context.Context) (string, error) {
	data, err := r.Bytes(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// JSON resolves the body and returns it as a queryable gjson result. Invalid
// JSON is an error here; use Bytes or Text for opaque payloads.
func (r *Response) JSON(ctx context.Context) (gjson.Result, error) {
	data, err := r.Bytes(ctx)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("body is not valid JSON")
	}
	return gjson.ParseBytes(data), nil
}

// Data resolves the body into its parsed form: structured values come back
// as maps and slices, JSON payloads are decoded, anything else is returned
// as a string. Empty bodies yield nil.
func (r *Response) Data(ctx context.Context) (any, error) {
	return r.src().value(ctx)
}

func (r *Response) src() *bodySource {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.body == nil {
		r.body = newBodySource(nil)
	}
	return r.body
}

package iolib

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// MiddlewareReader pushes bytes read from a source through a write-side
// transform and serves the transform's output. The transform is closed
// once the source is exhausted, so output it flushes on Close is still
// delivered.
type MiddlewareReader struct {
	src    io.Reader
	buf    *bytes.Buffer
	bufw   io.WriteCloser
	closed bool
}

// NewMiddlewareReader wraps src with the write-side transform built by
// middleware. The middleware receives the sink its transformed bytes must
// end up in.
func NewMiddlewareReader(
	src io.Reader, middleware func(io.WriteCloser) io.WriteCloser,
) *MiddlewareReader {
	mr := &MiddlewareReader{
		src: src,
		buf: bytes.NewBuffer(nil),
	}
	mr.bufw = middleware(NopWriteCloser(mr.buf))
	return mr
}

func (mr *MiddlewareReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	// Refill until the transform emits something. A transform may buffer
	// internally and only flush on later writes or on Close.
	for mr.buf.Len() == 0 {
		if mr.closed {
			return 0, io.EOF
		}

		n, err := mr.src.Read(p)
		if err != nil && err != io.EOF {
			return 0, errors.Wrap(err, "reading source")
		}

		if _, werr := WriteFull(mr.bufw, p[:n]); werr != nil {
			return 0, errors.Wrap(werr, "applying transform")
		}

		if err == io.EOF {
			mr.closed = true
			if cerr := mr.bufw.Close(); cerr != nil {
				return 0, errors.Wrap(cerr, "closing transform")
			}
		}
	}

	return mr.buf.Read(p)
}

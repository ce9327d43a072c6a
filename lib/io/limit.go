package iolib

import "io"

// LimitReader returns a reader that yields at most n bytes from r.
func LimitReader(r io.Reader, n uint) io.Reader { return &LimitedReader{R: r, N: n} }

// LimitedReader reads from R until N bytes are consumed, then reports
// io.EOF. It is [io.LimitedReader] with an unsigned budget.
type LimitedReader struct {
	R io.Reader // underlying reader
	N uint      // bytes remaining
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.N == 0 {
		return 0, io.EOF
	}
	if uint(len(p)) > l.N {
		p = p[:l.N]
	}
	n, err := l.R.Read(p)
	l.N -= uint(n)
	return n, err
}

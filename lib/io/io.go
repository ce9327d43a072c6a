// Package iolib provides stream plumbing for wire data: delimiter
// scanning, byte caps, write-side transforms, and durable file spooling.
package iolib

import "io"

type nopWriteCloser struct{ io.Writer }

// NopWriteCloser returns a WriteCloser with a no-op Close wrapping w.
// Transform chains use it to cap a pipeline whose sink has no Close of
// its own.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}

func (nopWriteCloser) Close() error { return nil }

// WriteFull writes all of buf to w, retrying short writes. It returns the
// number of bytes written and the first error encountered.
func WriteFull(w io.Writer, buf []byte) (uint, error) {
	var total uint
	for total < uint(len(buf)) {
		n, err := w.Write(buf[total:])
		total += uint(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

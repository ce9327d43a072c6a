package iolib

import (
	"bytes"
	"errors"
	"io"
)

var ErrEmptyDelim = errors.New("delimiter is empty")

// UntilReader reads from an underlying stream up to a delimiter while
// keeping bytes consumed past it buffered for later reads. It splits one
// stream into a delimited head and an untouched tail.
type UntilReader struct {
	r   io.Reader
	buf *bytes.Buffer
}

func NewUntilReader(r io.Reader) *UntilReader {
	return &UntilReader{r: r, buf: bytes.NewBuffer(nil)}
}

// Read serves buffered bytes first, then falls through to the underlying
// reader.
func (ur *UntilReader) Read(p []byte) (int, error) {
	if ur.buf.Len() > 0 {
		n, err := ur.buf.Read(p)
		if err == io.EOF {
			err = nil
		}
		return n, err
	}
	return ur.r.Read(p)
}

// ReadUntil reads until delim and returns everything up to and including
// it. Bytes consumed past the delimiter stay buffered. When the stream
// ends or fails before the delimiter shows up, everything read so far is
// returned alongside the error.
func (ur *UntilReader) ReadUntil(delim []byte) ([]byte, error) {
	if len(delim) == 0 {
		return nil, ErrEmptyDelim
	}

	src := ur.r
	if ur.buf.Len() > 0 {
		src = io.MultiReader(bytes.NewReader(bytes.Clone(ur.buf.Bytes())), ur.r)
		ur.buf.Reset()
	}

	var (
		acc     []byte
		scanned int // prefix of acc known not to contain delim
		chunk   = make([]byte, 1024)
	)
	for {
		n, err := src.Read(chunk)
		acc = append(acc, chunk[:n]...)

		if idx := bytes.Index(acc[scanned:], delim); idx >= 0 {
			cut := scanned + idx + len(delim)
			ur.buf.Write(acc[cut:])
			return acc[:cut:cut], nil
		}
		// A later chunk may complete a delimiter straddling this one.
		if scanned = len(acc) - len(delim) + 1; scanned < 0 {
			scanned = 0
		}

		if err != nil {
			return acc, err
		}
	}
}

// ReadUntilLimit is ReadUntil with a byte cap: when limit is nonzero and
// the delimiter does not appear within limit bytes, it returns what was
// read along with io.EOF.
func (ur *UntilReader) ReadUntilLimit(delim []byte, limit uint) ([]byte, error) {
	if limit > 0 {
		src := ur.r
		ur.r = LimitReader(src, limit)
		defer func() { ur.r = src }()
	}
	return ur.ReadUntil(delim)
}

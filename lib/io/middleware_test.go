package iolib

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTransform struct {
	w       io.WriteCloser
	onWrite func(w io.Writer, p []byte) error
	onClose func(w io.Writer) error
}

func (m *testTransform) Write(p []byte) (n int, err error) {
	if err := m.onWrite(m.w, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (m *testTransform) Close() error {
	if err := m.onClose(m.w); err != nil {
		return err
	}
	return m.w.Close()
}

func TestMiddlewareReader(t *testing.T) {
	input := []byte("Content-Type: application/json\r\n\r\n{}")

	var held []byte

	testcases := []struct {
		desc     string
		onWrite  func(w io.Writer, p []byte) error
		onClose  func(w io.Writer) error
		expected []byte
		wantErr  bool
	}{
		{
			desc: "passthrough upper",
			onWrite: func(w io.Writer, p []byte) error {
				_, err := w.Write(bytes.ToUpper(p))
				return err
			},
			onClose:  func(w io.Writer) error { return nil },
			expected: bytes.ToUpper(input),
		},
		{
			desc: "trailer written on close",
			onWrite: func(w io.Writer, p []byte) error {
				_, err := w.Write(p)
				return err
			},
			onClose: func(w io.Writer) error {
				_, err := w.Write([]byte("\r\nEND"))
				return err
			},
			expected: append(bytes.Clone(input), []byte("\r\nEND")...),
		},
		{
			desc: "buffers until close",
			onWrite: func(w io.Writer, p []byte) error {
				held = append(held, p...)
				return nil
			},
			onClose: func(w io.Writer) error {
				_, err := w.Write(held)
				return err
			},
			expected: input,
		},
		{
			desc: "write err",
			onWrite: func(w io.Writer, p []byte) error {
				return errors.New("hey")
			},
			onClose: func(w io.Writer) error { return nil },
			wantErr: true,
		},
		{
			desc: "close err",
			onWrite: func(w io.Writer, p []byte) error {
				_, err := w.Write(p)
				return err
			},
			onClose: func(w io.Writer) error {
				return errors.New("hey")
			},
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			held = nil
			r := NewMiddlewareReader(
				bytes.NewReader(input),
				func(wc io.WriteCloser) io.WriteCloser {
					return &testTransform{
						w:       wc,
						onWrite: tc.onWrite,
						onClose: tc.onClose,
					}
				},
			)

			b, err := io.ReadAll(r)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, b)
		})
	}
}

func TestMiddlewareReaderEOFAfterDrain(t *testing.T) {
	r := NewMiddlewareReader(
		bytes.NewReader([]byte("abc")),
		func(wc io.WriteCloser) io.WriteCloser { return wc },
	)

	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), b)

	n, err := r.Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

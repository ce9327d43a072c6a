package iolib

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUntil(t *testing.T) {
	sample := []byte("Alpha: 1\r\nBeta: 2\r\n\r\nbody bytes")

	testcases := []struct {
		desc     string
		delim    []byte
		expected []byte
		wantErr  error
	}{
		{
			desc:     "line",
			delim:    []byte("\r\n"),
			expected: []byte("Alpha: 1\r\n"),
		},
		{
			desc:     "field block",
			delim:    []byte("\r\n\r\n"),
			expected: []byte("Alpha: 1\r\nBeta: 2\r\n\r\n"),
		},
		{
			desc:     "not found",
			delim:    []byte("Gamma"),
			expected: sample,
			wantErr:  io.EOF,
		},
		{
			desc:    "no delim",
			delim:   []byte(nil),
			wantErr: ErrEmptyDelim,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			r := NewUntilReader(bytes.NewReader(sample))
			b, err := r.ReadUntil(tc.delim)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tc.expected, b)
		})
	}
}

func TestReadAfterReadUntil(t *testing.T) {
	r := NewUntilReader(strings.NewReader("Alpha: 1\r\n\r\nbody"))

	b, err := r.ReadUntil([]byte("\r\n\r\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("Alpha: 1\r\n\r\n"), b)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), rest)
}

func TestReadUntilAfterReadUntil(t *testing.T) {
	r := NewUntilReader(strings.NewReader("Alpha: 1\r\nBeta: 2\r\n\r\n"))

	b, err := r.ReadUntil([]byte("\r\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("Alpha: 1\r\n"), b)

	b, err = r.ReadUntil([]byte("\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Beta: 2\r\n\r\n"), b)
}

func TestReadUntilStraddlesChunks(t *testing.T) {
	// Place the delimiter across the internal 1024-byte read boundary.
	head := strings.Repeat("a", 1022)
	r := NewUntilReader(strings.NewReader(head + "\r\n\r\n" + "tail"))

	b, err := r.ReadUntil([]byte("\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte(head+"\r\n\r\n"), b)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("tail"), rest)
}

func TestReadUntilLimit(t *testing.T) {
	r := NewUntilReader(strings.NewReader("Alpha: 1\r\n\r\nbody"))

	b, err := r.ReadUntilLimit([]byte("\r\n\r\n"), 5)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []byte("Alpha"), b)

	b, err = r.ReadUntilLimit([]byte("\r\n\r\n"), 16)
	require.NoError(t, err)
	assert.Equal(t, []byte(": 1\r\n\r\n"), b)
}

func TestReadUntilLimitZero(t *testing.T) {
	sample := []byte("Alpha: 1\r\n\r\n")
	r := NewUntilReader(bytes.NewReader(sample))

	b, err := r.ReadUntilLimit([]byte("\r\n\r\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, sample, b)
}

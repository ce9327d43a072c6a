package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodOf(t *testing.T) {
	testcases := []struct {
		desc     string
		input    any
		expected Method
		ok       bool
	}{
		{desc: "upper case string", input: "GET", expected: MethodGet, ok: true},
		{desc: "lower case string", input: "post", expected: MethodPost, ok: true},
		{desc: "padded string", input: "  delete ", expected: MethodDelete, ok: true},
		{desc: "method value", input: MethodPatch, expected: MethodPatch, ok: true},
		{desc: "bytes", input: []byte("head"), expected: MethodHead, ok: true},
		{desc: "unknown verb", input: "FETCH", ok: false},
		{desc: "empty string", input: "", ok: false},
		{desc: "not a string", input: 42, ok: false},
		{desc: "nil", input: nil, ok: false},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			m, ok := MethodOf(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, m)
		})
	}
}

func TestIsVerb(t *testing.T) {
	assert.True(t, IsVerb("OPTIONS"))
	assert.True(t, IsVerb("trace"))
	assert.False(t, IsVerb("YEET"))
	assert.False(t, IsVerb(struct{}{}))
}

func TestForbidsBody(t *testing.T) {
	withBody := []Method{MethodPost, MethodPut, MethodDelete, MethodConnect, MethodPatch}
	withoutBody := []Method{MethodGet, MethodHead, MethodOptions, MethodTrace}

	for _, m := range withBody {
		assert.False(t, m.ForbidsBody(), string(m))
	}
	for _, m := range withoutBody {
		assert.True(t, m.ForbidsBody(), string(m))
	}
}

func TestMethodValid(t *testing.T) {
	for _, m := range Methods() {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, Method("get").Valid(), "methods are case-sensitive tokens")
	assert.False(t, Method("").Valid())
}

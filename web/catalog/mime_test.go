package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsContentType(t *testing.T) {
	testcases := []struct {
		desc     string
		input    any
		expected bool
	}{
		{desc: "known type", input: "application/json", expected: true},
		{desc: "known type, mixed case", input: "Application/JSON", expected: true},
		{desc: "with parameters", input: "text/html; charset=utf-8", expected: true},
		{desc: "padded", input: "  image/png  ", expected: true},
		{desc: "unknown but well-formed", input: "application/vnd.api+json", expected: true},
		{desc: "bytes", input: []byte("text/plain"), expected: true},
		{desc: "no slash", input: "json", expected: false},
		{desc: "empty subtype", input: "application/", expected: false},
		{desc: "space in type", input: "app lication/json", expected: false},
		{desc: "not a string", input: 7, expected: false},
		{desc: "nil", input: nil, expected: false},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsContentType(tc.input))
		})
	}
}

func TestContentTypesAreWellFormed(t *testing.T) {
	for _, ct := range ContentTypes() {
		assert.True(t, IsContentType(ct), ct)
	}
}

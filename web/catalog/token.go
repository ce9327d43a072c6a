package catalog

import "strings"

func isAlpha(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }

// IsToken reports whether s is a valid HTTP token, the character set field
// names are drawn from.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func IsToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if isAlpha(c) || isDigit(c) {
			continue
		}

		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+',
			'-', '.', '^', '_', '`', '|', '~':
			continue
		}

		return false
	}

	return true
}

// IsExtension reports whether name is an "X-" extension field with a valid
// token name. Extension fields are storable even when no definition is
// registered for them.
func IsExtension(name string) bool {
	if len(name) < 3 {
		return false
	}
	if (name[0] != 'X' && name[0] != 'x') || name[1] != '-' {
		return false
	}
	return IsToken(name)
}

// Fetch-style forbidden request fields: ones the transport owns and
// application code must not set on outgoing requests.
//
// Reference: https://fetch.spec.whatwg.org/#forbidden-request-header
var forbidden = map[string]bool{
	"accept-charset":                 true,
	"accept-encoding":                true,
	"access-control-request-headers": true,
	"access-control-request-method":  true,
	"connection":                     true,
	"content-length":                 true,
	"cookie":                         true,
	"cookie2":                        true,
	"date":                           true,
	"dnt":                            true,
	"expect":                         true,
	"host":                           true,
	"keep-alive":                     true,
	"origin":                         true,
	"referer":                        true,
	"set-cookie":                     true,
	"te":                             true,
	"trailer":                        true,
	"transfer-encoding":              true,
	"upgrade":                        true,
	"via":                            true,
}

// IsForbidden reports whether name must not be set by application code on an
// outgoing request.
func IsForbidden(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if forbidden[lower] {
		return true
	}
	return strings.HasPrefix(lower, "proxy-") || strings.HasPrefix(lower, "sec-")
}

package catalog

import "strings"

// Method is an HTTP request method.
type Method string

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-9.3
const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	// Reference: https://datatracker.ietf.org/doc/html/rfc5789
	MethodPatch Method = "PATCH"
)

func Methods() []Method {
	return []Method{
		MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete,
		MethodConnect, MethodOptions, MethodTrace, MethodPatch,
	}
}

var methodSet = func() map[Method]bool {
	set := make(map[Method]bool)
	for _, m := range Methods() {
		set[m] = true
	}
	return set
}()

func (m Method) Valid() bool { return methodSet[m] }

// ForbidsBody reports whether requests with this method must not carry
// content. A body supplied alongside one of these methods is dropped by the
// request facade, not sent.
func (m Method) ForbidsBody() bool {
	switch m {
	case MethodGet, MethodHead, MethodOptions, MethodTrace:
		return true
	}
	return false
}

// MethodOf coerces v into a known method. Matching is case-insensitive and
// ignores surrounding whitespace.
func MethodOf(v any) (Method, bool) {
	var s string
	switch m := v.(type) {
	case Method:
		s = string(m)
	case string:
		s = m
	case []byte:
		s = string(m)
	default:
		return "", false
	}

	method := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !method.Valid() {
		return "", false
	}
	return method, true
}

// IsVerb reports whether v names a known HTTP method. It never panics.
func IsVerb(v any) bool {
	_, ok := MethodOf(v)
	return ok
}

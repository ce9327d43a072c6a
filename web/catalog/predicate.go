package catalog

import "strings"

// Named is implemented by values that carry a header field name, so that
// field-shaped structs can be passed wherever a name is expected.
type Named interface {
	FieldName() string
}

// NameOf extracts a header field name from v. Accepted shapes: a plain
// string, a two-element pair (name first), and anything implementing Named.
// Values fitting no shape resolve to "", which IsHeader rejects.
func NameOf(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case []byte:
		return string(n)
	case Named:
		return n.FieldName()
	case [2]string:
		return n[0]
	case []string:
		if len(n) == 2 {
			return n[0]
		}
	case [2]any:
		if s, ok := n[0].(string); ok {
			return s
		}
	case []any:
		if len(n) != 2 {
			return ""
		}
		if s, ok := n[0].(string); ok {
			return s
		}
	}
	return ""
}

// IsHeader reports whether v resolves to a storable header field name:
// a registered definition or an "X-" extension. It never panics.
func IsHeader(v any) bool {
	name := strings.TrimSpace(NameOf(v))
	if name == "" {
		return false
	}
	return Default().Known(name)
}

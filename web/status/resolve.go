package status

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sliceutil "httpkit/lib/slice"
)

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code, s.Name)
}

// ArgumentError reports a resolution argument that matched no known status.
// It carries the operation and the offending arguments for diagnostics.
type ArgumentError struct {
	Op   string
	Args []any
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("status: %s: no status for arguments %v", e.Op, e.Args)
}

func argErr(op string, args ...any) error {
	return &ArgumentError{Op: op, Args: args}
}

// FromCode resolves a numeric status code against the registry.
func FromCode(code int) (Status, error) {
	if s, ok := byCode[code]; ok {
		return *s, nil
	}
	return Status{}, argErr("FromCode", code)
}

// Parse resolves textual input: either a numeric code ("404") or a reason
// phrase ("Not Found"). Matching is case-insensitive.
func Parse(text string) (Status, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Status{}, argErr("Parse", text)
	}

	if code, err := strconv.Atoi(trimmed); err == nil {
		return FromCode(code)
	}
	if s, ok := byName[lower(trimmed)]; ok {
		return *s, nil
	}

	return Status{}, argErr("Parse", text)
}

// FromValue resolves a status from whatever shape the caller holds: a
// Status, a numeric code, text, or a list of candidates tried left to right.
// Only the single-value form and a fully exhausted list fail.
func FromValue(v any) (Status, error) {
	switch s := v.(type) {
	case Status:
		return fromStatus(s)
	case *Status:
		if s == nil {
			break
		}
		return fromStatus(*s)
	case int:
		return FromCode(s)
	case int8:
		return FromCode(int(s))
	case int16:
		return FromCode(int(s))
	case int32:
		return FromCode(int(s))
	case int64:
		return FromCode(int(s))
	case uint:
		return FromCode(int(s))
	case uint16:
		return FromCode(int(s))
	case uint32:
		return FromCode(int(s))
	case uint64:
		return FromCode(int(s))
	case float32:
		return fromFloat(float64(s))
	case float64:
		return fromFloat(s)
	case string:
		return Parse(s)
	case []byte:
		return Parse(string(s))
	case []any:
		return fromCandidates(s)
	case []int:
		return fromCandidates(sliceutil.Map(s, func(c int) any { return c }))
	case []string:
		return fromCandidates(sliceutil.Map(s, func(c string) any { return c }))
	}

	return Status{}, argErr("FromValue", v)
}

// IsStatus reports whether v resolves to a known status. It never panics.
func IsStatus(v any) bool {
	_, err := FromValue(v)
	return err == nil
}

func fromStatus(s Status) (Status, error) {
	if known, ok := byCode[s.Code]; ok {
		return *known, nil
	}
	if s.Code != 0 {
		// Unregistered but concrete; take it at face value.
		return s, nil
	}
	return Status{}, argErr("FromValue", s)
}

// JSON decoding hands over numbers as float64. Only integral values count.
func fromFloat(f float64) (Status, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return Status{}, argErr("FromValue", f)
	}
	return FromCode(int(f))
}

func fromCandidates(candidates []any) (Status, error) {
	for _, c := range candidates {
		if s, err := FromValue(c); err == nil {
			return s, nil
		}
	}
	return Status{}, argErr("FromValue", candidates...)
}

package header

import (
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Enumerable is the shape accepted from foreign header containers: anything
// that can list itself as name/value pairs. *Store satisfies it too.
type Enumerable interface {
	Entries() [][2]string
}

// From builds a store from any of the supported shapes: another *Store
// (cloned), a plain or multi-valued mapping, an array of pairs, JSON text,
// a raw wire-format block, or an Enumerable. Equivalent inputs produce
// equivalent stores. Shapes outside this set are an error.
func From(v any, opts *Options) (*Store, error) {
	switch src := v.(type) {
	case nil:
		return New(opts), nil
	case *Store:
		if src == nil {
			return New(opts), nil
		}
		return src.Clone(), nil
	case map[string]string:
		return FromMap(src, opts)
	case http.Header:
		return FromMultiMap(src, opts)
	case map[string][]string:
		return FromMultiMap(src, opts)
	case map[string]any:
		return fromAnyMap(src, opts)
	case [][2]string:
		return FromPairs(src, opts)
	case [][]string:
		return fromLoosePairs(src, opts)
	case string:
		return fromText(src, opts)
	case []byte:
		return fromText(string(src), opts)
	case Enumerable:
		return FromPairs(src.Entries(), opts)
	}

	return nil, errors.Errorf("cannot build header store from %T", v)
}

func FromMap(m map[string]string, opts *Options) (*Store, error) {
	s := New(opts)
	for _, name := range sortedKeys(m) {
		if err := s.Append(name, m[name]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromMultiMap accepts net/http's header shape: multiple values per name,
// appended in slice order.
func FromMultiMap(m map[string][]string, opts *Options) (*Store, error) {
	s := New(opts)
	for _, name := range sortedKeys(m) {
		for _, value := range m[name] {
			if err := s.Append(name, value); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func FromPairs(pairs [][2]string, opts *Options) (*Store, error) {
	s := New(opts)
	for _, pair := range pairs {
		if err := s.Append(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromJSON parses a JSON object of string or string-array values.
func FromJSON(text string, opts *Options) (*Store, error) {
	if !gjson.Valid(text) {
		return nil, errors.New("input is not valid JSON")
	}
	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return nil, errors.Errorf("JSON input must be an object, got %s", parsed.Type)
	}

	s := New(opts)
	var failure error
	parsed.ForEach(func(key, value gjson.Result) bool {
		values := []gjson.Result{value}
		if value.IsArray() {
			values = value.Array()
		}
		for _, v := range values {
			if err := s.Append(key.String(), v.String()); err != nil {
				failure = err
				return false
			}
		}
		return true
	})
	if failure != nil {
		return nil, failure
	}
	return s, nil
}

func fromAnyMap(m map[string]any, opts *Options) (*Store, error) {
	s := New(opts)
	for _, name := range sortedKeys(m) {
		var err error
		switch values := m[name].(type) {
		case []any:
			for _, v := range values {
				if err = s.Append(name, v); err != nil {
					break
				}
			}
		case []string:
			for _, v := range values {
				if err = s.Append(name, v); err != nil {
					break
				}
			}
		default:
			err = s.Append(name, values)
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func fromLoosePairs(pairs [][]string, opts *Options) (*Store, error) {
	s := New(opts)
	for _, pair := range pairs {
		if len(pair) != 2 {
			if err := s.reject(errors.Wrap(ErrInvalidName, "pair must have two elements"), pair); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.Append(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Text input is either a JSON object or a raw header block.
func fromText(text string, opts *Options) (*Store, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
		return FromJSON(trimmed, opts)
	}
	return FromWire(text, opts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

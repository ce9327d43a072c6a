// Package header implements the case-insensitive, multi-value-capable header
// store shared by the request and response facades.
package header

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"httpkit/web/catalog"

	"github.com/pkg/errors"
)

// Size limits enforced on ingestion. These are the toolkit's own caps, not
// protocol limits.
const (
	MaxNameLength  = 256
	MaxValueLength = 4096
	MaxTotalSize   = 8192
)

const valueSeparator = ", "

// Policy decides what happens to fields that fail validation.
type Policy uint8

const (
	// FailOpen drops the offending field with a warning and reports no
	// error. This is the default: ingestion sits on the hot path for
	// upstream data the caller does not control, and one malformed field
	// must never abort request construction.
	FailOpen Policy = iota
	// FailClosed surfaces the same conditions as errors. Meant for tests
	// and for headers built from trusted local input.
	FailClosed
)

var (
	ErrInvalidName  = errors.New("invalid header field name")
	ErrNameTooLong  = errors.New("header field name exceeds length limit")
	ErrValueTooLong = errors.New("header field value exceeds length limit")
	ErrStoreFull    = errors.New("headers exceed total size limit")
)

// Options configure a store. The zero value works: the default catalog,
// FailOpen, and the default logger.
type Options struct {
	Registry *catalog.Registry
	Policy   Policy
	Logger   *slog.Logger
}

func (o *Options) registry() *catalog.Registry {
	if o == nil || o.Registry == nil {
		return catalog.Default()
	}
	return o.Registry
}

func (o *Options) policy() Policy {
	if o == nil {
		return FailOpen
	}
	return o.Policy
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

type entry struct {
	name  string // canonical display form
	value string // concatenated per append semantics
}

// Store maps header field names to values. Lookups are case-insensitive;
// the canonical display form ("Content-Type") is kept for rendering.
// Set-Cookie values are held apart and never comma-joined.
type Store struct {
	entries map[string]entry // keyed by lowercase name
	cookies []string
	reg     *catalog.Registry
	policy  Policy
	log     *slog.Logger
}

func New(opts *Options) *Store {
	return &Store{
		entries: make(map[string]entry),
		reg:     opts.registry(),
		policy:  opts.policy(),
		log:     opts.logger(),
	}
}

// Append adds a field. When the name is already present the value is
// concatenated with ", ", unless the new value is already contained in the
// existing one (dedup by containment, not by exact match). Set-Cookie values
// are collected separately. Under FailOpen the returned error is always nil.
func (s *Store) Append(name, value any) error {
	key, display, val, err := s.admit(name, value)
	if err != nil {
		return s.reject(err, name)
	}

	if key == cookieKey {
		return s.appendCookies(name, val)
	}

	existing, ok := s.entries[key]
	if !ok {
		if err := s.fits(fieldSize(display, val)); err != nil {
			return s.reject(err, name)
		}
		s.entries[key] = entry{name: display, value: val}
		return nil
	}

	if strings.Contains(existing.value, val) {
		// Already represented; appending would only duplicate.
		return nil
	}

	if err := s.fits(len(valueSeparator) + len(val)); err != nil {
		return s.reject(err, name)
	}
	existing.value += valueSeparator + val
	s.entries[key] = existing
	return nil
}

// Set replaces the field's value outright. For Set-Cookie the whole cookie
// list is replaced.
func (s *Store) Set(name, value any) error {
	key, display, val, err := s.admit(name, value)
	if err != nil {
		return s.reject(err, name)
	}

	if key == cookieKey {
		return s.setCookies(name, val)
	}

	delta := fieldSize(display, val)
	if existing, ok := s.entries[key]; ok {
		delta -= fieldSize(existing.name, existing.value)
	}
	if err := s.fits(delta); err != nil {
		return s.reject(err, name)
	}

	s.entries[key] = entry{name: display, value: val}
	return nil
}

// Get returns the concatenated value for name. For Set-Cookie it returns all
// cookies joined with ", "; use SetCookies for the unjoined values.
func (s *Store) Get(name string) (string, bool) {
	key := lowerName(name)
	if key == cookieKey {
		if len(s.cookies) == 0 {
			return "", false
		}
		return strings.Join(s.cookies, valueSeparator), true
	}

	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	return e.value, true
}

func (s *Store) Has(name string) bool {
	key := lowerName(name)
	if key == cookieKey {
		return len(s.cookies) > 0
	}
	_, ok := s.entries[key]
	return ok
}

// Delete removes the field and reports whether it was present.
func (s *Store) Delete(name string) bool {
	key := lowerName(name)
	if key == cookieKey {
		had := len(s.cookies) > 0
		s.cookies = nil
		return had
	}

	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Len counts distinct field names; all Set-Cookie values count as one.
func (s *Store) Len() int {
	n := len(s.entries)
	if len(s.cookies) > 0 {
		n++
	}
	return n
}

// Names returns the canonical field names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, s.Len())
	for _, e := range s.entries {
		names = append(names, e.name)
	}
	if len(s.cookies) > 0 {
		names = append(names, catalog.SetCookie)
	}
	sort.Strings(names)
	return names
}

// Entries lists all fields as name/value pairs, sorted by name. Set-Cookie
// yields one pair per cookie, in insertion order.
func (s *Store) Entries() [][2]string {
	pairs := make([][2]string, 0, s.Len())
	for _, name := range s.Names() {
		if lowerName(name) == cookieKey {
			for _, c := range s.cookies {
				pairs = append(pairs, [2]string{catalog.SetCookie, c})
			}
			continue
		}
		e := s.entries[lowerName(name)]
		pairs = append(pairs, [2]string{e.name, e.value})
	}
	return pairs
}

// Literal renders the store as a plain mapping keyed by canonical name.
// Set-Cookie values are joined with ", ", which is lossy; use SetCookies
// when the individual cookies matter.
func (s *Store) Literal() map[string]string {
	m := make(map[string]string, s.Len())
	for _, e := range s.entries {
		m[e.name] = e.value
	}
	if len(s.cookies) > 0 {
		m[catalog.SetCookie] = strings.Join(s.cookies, valueSeparator)
	}
	return m
}

// Clone returns an independent copy sharing no mutable state.
func (s *Store) Clone() *Store {
	clone := &Store{
		entries: make(map[string]entry, len(s.entries)),
		reg:     s.reg,
		policy:  s.policy,
		log:     s.log,
	}
	for k, e := range s.entries {
		clone.entries[k] = e
	}
	if len(s.cookies) > 0 {
		clone.cookies = make([]string, len(s.cookies))
		copy(clone.cookies, s.cookies)
	}
	return clone
}

// Merge returns a new store holding the receiver's fields with the others
// folded in left to right using append semantics. The receiver is not
// modified.
func (s *Store) Merge(others ...*Store) *Store {
	merged := s.Clone()
	for _, other := range others {
		if other == nil {
			continue
		}
		for _, pair := range other.Entries() {
			_ = merged.Append(pair[0], pair[1])
		}
	}
	return merged
}

// WithoutForbidden returns a copy stripped of fields application code must
// not set on outgoing requests (Host, Content-Length, Set-Cookie, ...).
func (s *Store) WithoutForbidden() *Store {
	clone := &Store{
		entries: make(map[string]entry, len(s.entries)),
		reg:     s.reg,
		policy:  s.policy,
		log:     s.log,
	}
	for k, e := range s.entries {
		if catalog.IsForbidden(e.name) {
			continue
		}
		clone.entries[k] = e
	}
	return clone
}

func (s *Store) admit(name, value any) (key, display, val string, err error) {
	raw := strings.TrimSpace(catalog.NameOf(name))
	switch {
	case raw == "":
		return "", "", "", ErrInvalidName
	case len(raw) > MaxNameLength:
		return "", "", "", ErrNameTooLong
	case !s.reg.Known(raw):
		return "", "", "", errors.Wrapf(ErrInvalidName, "%q", raw)
	}

	val = coerceValue(value)
	if len(val) > MaxValueLength {
		return "", "", "", ErrValueTooLong
	}

	// Registered fields keep their registered spelling (ETag, not Etag).
	display = canonicalName(raw)
	if def, ok := s.reg.Lookup(raw); ok {
		display = def.Name
	}

	return lowerName(raw), display, val, nil
}

func (s *Store) reject(cause error, name any) error {
	if s.policy == FailClosed {
		return cause
	}
	s.log.Warn("dropping header field", "name", catalog.NameOf(name), "reason", cause.Error())
	return nil
}

// fits checks whether growing the serialized size by delta stays within
// MaxTotalSize.
func (s *Store) fits(delta int) error {
	if s.size()+delta > MaxTotalSize {
		return ErrStoreFull
	}
	return nil
}

func (s *Store) size() int {
	total := 0
	for _, e := range s.entries {
		total += fieldSize(e.name, e.value)
	}
	for _, c := range s.cookies {
		total += fieldSize(catalog.SetCookie, c)
	}
	return total
}

// fieldSize is the rendered length of one "Name: value\r\n" line.
func fieldSize(name, value string) int {
	return len(name) + len(value) + 4
}

func lowerName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func coerceValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// canonicalName uppercases the first letter of each dash-separated segment:
// "content-type" becomes "Content-Type". Callers guarantee a valid token.
func canonicalName(s string) string {
	const capitalDiff = 'a' - 'A'
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			c -= capitalDiff
		} else if !upper && 'A' <= c && c <= 'Z' {
			c += capitalDiff
		}
		b[i] = c
		upper = c == '-'
	}
	return string(b)
}

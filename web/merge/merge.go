// Package merge implements the rule-based property merge engine used to
// combine header-like and config-like objects.
package merge

import (
	"log/slog"
	"sort"
	"strings"

	"httpkit/web/catalog"
	"httpkit/web/header"
)

// Rule applies one property from an incoming object onto dst, in place.
// Rules are looked up per property name when folding objects together.
type Rule func(dst map[string]any, key string, incoming any)

// Preserve keeps an existing value; the incoming one is adopted only when
// nothing is set yet.
func Preserve(dst map[string]any, key string, incoming any) {
	if existing, ok := dst[key]; ok && existing != nil {
		return
	}
	dst[key] = incoming
}

// Replace lets the incoming value win unless it is nil.
func Replace(dst map[string]any, key string, incoming any) {
	if incoming == nil {
		return
	}
	dst[key] = incoming
}

// ReplaceString is Replace restricted to non-blank string values; anything
// else leaves dst untouched.
func ReplaceString(dst map[string]any, key string, incoming any) {
	s, ok := incoming.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return
	}
	dst[key] = s
}

// Combine is the default appender. Strings concatenate with ", " unless the
// incoming value is already contained in the existing one, matching header
// append semantics. Slices append. Everything else overwrites when present
// and adopts when absent.
func Combine(dst map[string]any, key string, incoming any) {
	existing, ok := dst[key]
	if !ok || existing == nil {
		if incoming != nil {
			dst[key] = incoming
		}
		return
	}
	if incoming == nil {
		return
	}

	if es, ok := existing.(string); ok {
		if is, ok := incoming.(string); ok {
			if strings.Contains(es, is) {
				return
			}
			dst[key] = es + ", " + is
			return
		}
	}

	if es, ok := existing.([]any); ok {
		if is, ok := incoming.([]any); ok {
			joined := make([]any, 0, len(es)+len(is))
			joined = append(joined, es...)
			joined = append(joined, is...)
			dst[key] = joined
			return
		}
		dst[key] = append(append([]any{}, es...), incoming)
		return
	}

	dst[key] = incoming
}

// Remove deletes the property instead of setting anything.
func Remove(dst map[string]any, key string, incoming any) {
	delete(dst, key)
}

// Options configure a Merger. The zero value means: no per-property rules,
// Combine as the fallback, shallow copies, default logger.
type Options struct {
	// Rules maps property names (case-insensitively) to the rule applied
	// for that property.
	Rules map[string]Rule
	// Fallback is used for properties with no rule. Defaults to Combine.
	Fallback Rule
	// DeepCopy makes the accumulator a deep copy of the base object, so
	// nested maps and slices are never shared with the inputs.
	DeepCopy bool
	Logger   *slog.Logger
}

// Merger folds property maps together, left to right, applying a per-name
// rule to each incoming property.
//
// Merging is associative only when every applicable rule is Replace or
// Preserve. Combine concatenates left to right, so merging A, B, C in one
// call can differ from merging A with merge(B, C).
type Merger struct {
	rules    map[string]Rule
	fallback Rule
	deep     bool
	log      *slog.Logger
}

func New(opts *Options) *Merger {
	m := &Merger{
		rules:    make(map[string]Rule),
		fallback: Combine,
		log:      slog.Default(),
	}
	if opts == nil {
		return m
	}

	if opts.Logger != nil {
		m.log = opts.Logger
	}
	for name, rule := range opts.Rules {
		if rule == nil {
			// Unresolvable rules are dropped, not raised; the fallback
			// covers the property instead.
			m.log.Warn("ignoring nil merge rule", "property", name)
			continue
		}
		m.rules[strings.ToLower(name)] = rule
	}
	if opts.Fallback != nil {
		m.fallback = opts.Fallback
	}
	m.deep = opts.DeepCopy
	return m
}

// MergeProperties folds others onto a copy of base, left to right. The
// inputs are never modified. nil inputs are skipped.
func (m *Merger) MergeProperties(base map[string]any, others ...map[string]any) map[string]any {
	acc := m.copyOf(base)
	for _, other := range others {
		for _, key := range sortedKeys(other) {
			incoming := other[key]
			if m.deep {
				incoming = deepCopyValue(incoming)
			}
			m.ruleFor(key)(acc, key, incoming)
		}
	}
	return acc
}

func (m *Merger) ruleFor(key string) Rule {
	if rule, ok := m.rules[strings.ToLower(key)]; ok {
		return rule
	}
	return m.fallback
}

func (m *Merger) copyOf(base map[string]any) map[string]any {
	if m.deep {
		return deepCopyMap(base)
	}
	acc := make(map[string]any, len(base))
	for k, v := range base {
		acc[k] = v
	}
	return acc
}

// Stores folds header stores together with plain append semantics, leaving
// the inputs untouched. For rule-driven folding use Merger.Stores.
func Stores(base *header.Store, others ...*header.Store) *header.Store {
	if base == nil {
		base = header.New(nil)
	}
	return base.Merge(others...)
}

// Stores folds header stores together through the merger's rules, one field
// name at a time, leaving the inputs untouched. Each rule runs against a
// single-field view of the accumulator; whatever it leaves there becomes the
// field's value, and a deleted key deletes the field. Set-Cookie stays
// outside the rules: cookie lines accumulate across inputs and are never
// joined.
func (m *Merger) Stores(base *header.Store, others ...*header.Store) *header.Store {
	var acc *header.Store
	if base != nil {
		acc = base.Clone()
	} else {
		acc = header.New(nil)
	}

	for _, other := range others {
		if other == nil {
			continue
		}
		for _, name := range other.Names() {
			if strings.EqualFold(name, catalog.SetCookie) {
				for _, c := range other.SetCookies() {
					_ = acc.Append(catalog.SetCookie, c)
				}
				continue
			}
			incoming, _ := other.Get(name)
			m.applyField(acc, name, incoming)
		}
	}
	return acc
}

// applyField runs one rule over a single-field view and mirrors the outcome
// back into the store, going through the store's own value coercion and
// size checks.
func (m *Merger) applyField(acc *header.Store, name string, incoming any) {
	key := strings.ToLower(name)
	view := make(map[string]any, 1)
	if existing, ok := acc.Get(name); ok {
		view[key] = existing
	}

	m.ruleFor(key)(view, key, incoming)

	result, ok := view[key]
	if !ok || result == nil {
		acc.Delete(name)
		return
	}
	_ = acc.Set(name, result)
}

func deepCopyMap(m map[string]any) map[string]any {
	clone := make(map[string]any, len(m))
	for k, v := range m {
		clone[k] = deepCopyValue(v)
	}
	return clone
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		clone := make([]any, len(val))
		for i, item := range val {
			clone[i] = deepCopyValue(item)
		}
		return clone
	case []string:
		clone := make([]string, len(val))
		copy(clone, val)
		return clone
	}
	return v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

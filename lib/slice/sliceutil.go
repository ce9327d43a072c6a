// Package sliceutil provides small generic slice helpers.
package sliceutil

// Map returns a new slice holding f applied to each element of v in order.
func Map[From any, To any](v []From, f func(From) To) []To {
	out := make([]To, len(v))
	for idx, e := range v {
		out[idx] = f(e)
	}
	return out
}

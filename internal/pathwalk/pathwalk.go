// Package pathwalk resolves and assigns dotted paths over generic record
// trees (map[string]any objects, []any sequences). It has no dependency on
// the root package so schema execution can build on it freely.
package pathwalk

import (
	"strconv"
	"strings"
)

// Split breaks a dotted path into its segments. The empty path yields nil.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Leaf returns the final segment of a dotted path.
func Leaf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Resolve walks v segment by segment. ok reports whether the full segment
// chain exists; a missing key, an out-of-range index, or a non-container in
// the middle of the chain yields (nil, false) rather than an error.
func Resolve(v any, segs []string) (any, bool) {
	cur := v
	for _, seg := range segs {
		switch c := cur.(type) {
		case map[string]any:
			next, ok := c[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			cur = c[i]
		case []map[string]any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(c) {
				return nil, false
			}
			cur = c[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Assign stores val at the destination described by segs inside dst,
// creating intermediate maps as needed. An intermediate that is not a map
// (assigned earlier as a scalar) is replaced; the last writer wins.
func Assign(dst map[string]any, segs []string, val any) {
	if len(segs) == 0 {
		return
	}
	cur := dst
	for i := 0; i < len(segs)-1; i++ {
		next, ok := cur[segs[i]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[segs[i]] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = val
}

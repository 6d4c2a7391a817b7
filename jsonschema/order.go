package jsonschema

import (
	"sort"
	"strings"
)

// KeyOrder records the key order of every object in a decoded document,
// keyed by JSON Pointer ("" is the root, "/properties/safety" a nested
// object). Decoding into map[string]any loses this order; loaders that still
// see the raw bytes can fill it in.
type KeyOrder map[string][]string

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer appends one reference token to a JSON Pointer.
func Pointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

// Ordered returns the keys of m in the order recorded for ptr. Keys with no
// recorded position follow in lexical order, so the result is stable even
// for a nil KeyOrder.
func Ordered[V any](o KeyOrder, ptr string, m map[string]V) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range o[ptr] {
		if _, ok := m[k]; ok && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	if len(out) == len(m) {
		return out
	}
	rest := make([]string, 0, len(m)-len(out))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

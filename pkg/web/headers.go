package web

import (
	"net/http"
	"sort"
	"strings"
)

// Headers is an ordered string-to-string mapping with case-insensitive key
// lookup, modelling one response's header set.
type Headers struct {
	keys   []string
	values map[string]string
}

// NewHeaders builds a Headers from alternating key/value pairs.
func NewHeaders(pairs ...string) *Headers {
	h := &Headers{values: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

// HeadersFromHTTP converts a net/http header map, keeping the first value
// of each field. The source is an unordered map, so fields are inserted
// in sorted key order to keep the result deterministic.
func HeadersFromHTTP(src http.Header) *Headers {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	h := NewHeaders()
	for _, key := range keys {
		if vals := src[key]; len(vals) > 0 {
			h.Set(key, vals[0])
		}
	}
	return h
}

// Set stores a value, replacing any existing value for the same
// case-insensitive key. First-seen insertion order is preserved.
func (h *Headers) Set(key, value string) {
	ck := strings.ToLower(key)
	if _, ok := h.values[ck]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[ck] = value
}

// Get looks a value up by case-insensitive key.
func (h *Headers) Get(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h.values[strings.ToLower(key)]
	return v, ok
}

// Len returns the number of stored fields.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// Keys returns the field names in insertion order.
func (h *Headers) Keys() []string {
	if h == nil {
		return nil
	}
	keys := make([]string, len(h.keys))
	copy(keys, h.keys)
	return keys
}

package http

import "strings"

// Pair is an ordered key/value entry, used for headers and form fields.
type Pair struct {
	Key   string
	Value string
}

// Header is an ordered header list with case-insensitive, unique keys.
// Setting an existing key replaces its value in place.
type Header struct {
	pairs []Pair
}

// NewHeader builds a Header from pairs; later duplicates replace earlier ones.
func NewHeader(pairs ...Pair) Header {
	var h Header
	for _, p := range pairs {
		h.Set(p.Key, p.Value)
	}
	return h
}

func (h *Header) index(key string) int {
	for i, p := range h.pairs {
		if strings.EqualFold(p.Key, key) {
			return i
		}
	}
	return -1
}

// Set assigns value to key, keeping the original position if key exists.
func (h *Header) Set(key, value string) {
	if i := h.index(key); i >= 0 {
		h.pairs[i].Value = value
		return
	}
	h.pairs = append(h.pairs, Pair{Key: key, Value: value})
}

// SetDefault sets key only if it is not already present.
func (h *Header) SetDefault(key, value string) {
	if !h.Has(key) {
		h.pairs = append(h.pairs, Pair{Key: key, Value: value})
	}
}

func (h Header) Get(key string) string {
	if i := h.index(key); i >= 0 {
		return h.pairs[i].Value
	}
	return ""
}

func (h Header) Has(key string) bool {
	return h.index(key) >= 0
}

func (h Header) Len() int {
	return len(h.pairs)
}

// Pairs returns a copy of the entries in order.
func (h Header) Pairs() []Pair {
	out := make([]Pair, len(h.pairs))
	copy(out, h.pairs)
	return out
}

func (h Header) Clone() Header {
	return Header{pairs: h.Pairs()}
}

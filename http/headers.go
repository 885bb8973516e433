package http

import "strings"

// Header is one name/value pair.
type Header struct {
	Name  string
	Value string
}

// Headers keeps header fields in insertion order. Lookups are
// case-insensitive, names keep the casing they were added with.
type Headers struct {
	entries []Header
}

// Add appends a field, keeping any existing fields with the same name.
func (h *Headers) Add(name, value string) {
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

// Set replaces every field named name with a single field.
func (h *Headers) Set(name, value string) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if !strings.EqualFold(e.Name, name) {
			kept = append(kept, e)
		}
	}
	h.entries = append(kept, Header{Name: name, Value: value})
}

// Get returns the first value for name, or "".
func (h *Headers) Get(name string) string {
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			return e.Value
		}
	}
	return ""
}

// Has reports whether at least one field named name exists.
func (h *Headers) Has(name string) bool {
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			return true
		}
	}
	return false
}

// Values returns every value for name in insertion order.
func (h *Headers) Values(name string) []string {
	var values []string
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			values = append(values, e.Value)
		}
	}
	return values
}

// All returns the stored fields in insertion order.
func (h *Headers) All() []Header {
	return h.entries
}

// Len returns the number of stored fields.
func (h *Headers) Len() int {
	return len(h.entries)
}

// Contains reports whether any comma-separated token of the fields named
// name equals token, ignoring case. Used for fields like Connection and
// Upgrade which carry token lists.
func (h *Headers) Contains(name, token string) bool {
	for _, v := range h.Values(name) {
		for _, part := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), token) {
				return true
			}
		}
	}
	return false
}

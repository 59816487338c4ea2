package request

import (
	"sort"
	"strings"
)

// Headers maps header names to a single value. Names match
// case-insensitively but keep the spelling of the last write.
//
// The zero value is an empty set. Headers is copied on every write
// performed through Builder, so a value held by a Descriptor never changes.
type Headers struct {
	m map[string]string
}

// NewHeaders creates a header set from a plain map.
func NewHeaders(values map[string]string) Headers {
	var h Headers
	for k, v := range values {
		h = h.Set(k, v)
	}
	return h
}

// Get returns the value stored under name, matching case-insensitively.
func (h Headers) Get(name string) (string, bool) {
	if k, ok := h.key(name); ok {
		return h.m[k], true
	}
	return "", false
}

// Set returns a copy of h with name set to value, replacing any entry whose
// name differs only in case.
func (h Headers) Set(name, value string) Headers {
	out := h.Clone()
	if k, ok := out.key(name); ok {
		delete(out.m, k)
	}
	if out.m == nil {
		out.m = make(map[string]string, 1)
	}
	out.m[name] = value
	return out
}

// Del returns a copy of h without name.
func (h Headers) Del(name string) Headers {
	k, ok := h.key(name)
	if !ok {
		return h
	}
	out := h.Clone()
	delete(out.m, k)
	return out
}

// Merge returns a copy of h with every entry of other applied on top.
func (h Headers) Merge(other Headers) Headers {
	out := h.Clone()
	other.Each(func(name, value string) {
		if k, ok := out.key(name); ok {
			delete(out.m, k)
		}
		if out.m == nil {
			out.m = make(map[string]string, other.Len())
		}
		out.m[name] = value
	})
	return out
}

// Len returns the number of headers.
func (h Headers) Len() int { return len(h.m) }

// Each calls fn for every header in name order.
func (h Headers) Each(fn func(name, value string)) {
	names := make([]string, 0, len(h.m))
	for k := range h.m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fn(k, h.m[k])
	}
}

// Map returns a fresh map of the headers.
func (h Headers) Map() map[string]string {
	out := make(map[string]string, len(h.m))
	for k, v := range h.m {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	if h.m == nil {
		return Headers{}
	}
	return Headers{m: h.Map()}
}

func (h Headers) key(name string) (string, bool) {
	if _, ok := h.m[name]; ok {
		return name, true
	}
	for k := range h.m {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

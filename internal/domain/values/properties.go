package values

import (
	"sort"
	"strings"
)

// Properties is an ordered mapping from string keys to string values.
// Iteration follows insertion order; re-setting a key keeps its position.
// The zero value is an empty, usable Properties.
type Properties struct {
	index map[string]int
	keys  []string
	vals  []string
}

// NewProperties creates an empty Properties with room for n entries.
func NewProperties(n int) *Properties {
	return &Properties{
		index: make(map[string]int, n),
		keys:  make([]string, 0, n),
		vals:  make([]string, 0, n),
	}
}

// FromMap builds Properties from a plain map. Go maps carry no order,
// so keys are sorted lexicographically to keep output deterministic.
func FromMap(m map[string]string) *Properties {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := NewProperties(len(keys))
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

// FromPairs builds Properties from alternating key/value arguments.
// A trailing key without a value is stored with an empty value.
func FromPairs(kv ...string) *Properties {
	p := NewProperties(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		v := ""
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		p.Set(kv[i], v)
	}
	return p
}

// Set stores value under key.
func (p *Properties) Set(key, value string) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[key]; ok {
		p.vals[i] = value
		return
	}
	p.index[key] = len(p.keys)
	p.keys = append(p.keys, key)
	p.vals = append(p.vals, value)
}

// Get returns the value stored under key and whether it was present.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	i, ok := p.index[key]
	if !ok {
		return "", false
	}
	return p.vals[i], true
}

// Keys returns a copy of the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return []string{}
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
func (p *Properties) Range(fn func(key, value string) bool) {
	if p == nil {
		return
	}
	for i, k := range p.keys {
		if !fn(k, p.vals[i]) {
			return
		}
	}
}

// Clone returns an independent copy.
func (p *Properties) Clone() *Properties {
	c := NewProperties(p.Len())
	p.Range(func(k, v string) bool {
		c.Set(k, v)
		return true
	})
	return c
}

// ToMap returns the entries as a plain map, dropping order.
func (p *Properties) ToMap() map[string]string {
	m := make(map[string]string, p.Len())
	p.Range(func(k, v string) bool {
		m[k] = v
		return true
	})
	return m
}

// String renders the entries as {k1=v1, k2=v2}.
func (p *Properties) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	p.Range(func(k, v string) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}

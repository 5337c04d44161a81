package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CategoryMap is an ordered mapping of category name to amount.
// Insertion order is preserved for display; setting an existing key
// overwrites the amount but keeps the original position.
type CategoryMap struct {
	keys   []string
	values map[string]float64
}

// NewCategoryMap creates an empty category map
func NewCategoryMap() *CategoryMap {
	return &CategoryMap{values: make(map[string]float64)}
}

// Set adds or overwrites a category amount
func (m *CategoryMap) Set(name string, amount float64) {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = amount
}

// Get returns the amount for a category
func (m *CategoryMap) Get(name string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Len returns the number of categories
func (m *CategoryMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the category names in insertion order
func (m *CategoryMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Sum returns the total of all amounts. A nil map sums to 0.
func (m *CategoryMap) Sum() float64 {
	if m == nil {
		return 0
	}
	var total float64
	for _, k := range m.keys {
		total += m.values[k]
	}
	return total
}

// Each calls fn for every entry in insertion order
func (m *CategoryMap) Each(fn func(name string, amount float64)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// MarshalJSON encodes the map as a JSON object in insertion order
func (m *CategoryMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order
func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object for category map")
	}
	m.keys = nil
	m.values = make(map[string]float64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key in category map")
		}
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("invalid amount for category %q: %w", key, err)
		}
		m.Set(key, amount)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// FILE: lixenwraith/ini/section.go
package ini

import "slices"

// Section is a named, ordered group of keys. Each key holds a non-empty,
// ordered list of string values.
//
// A *Section obtained from Document.Section is a read view: mutation goes
// through the owning Document so that name validation and implicit section
// creation stay in one place.
type Section struct {
	name   string
	keys   []string            // insertion order
	values map[string][]string // never holds an empty slice
}

func newSection(name string) *Section {
	return &Section{
		name:   name,
		values: make(map[string][]string),
	}
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Len returns the number of keys in the section.
func (s *Section) Len() int {
	return len(s.keys)
}

// Keys returns the section keys in insertion order.
func (s *Section) Keys() []string {
	return slices.Clone(s.keys)
}

// HasKey reports whether key holds at least one value.
func (s *Section) HasKey(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Values returns a copy of the values bound to key, or nil if absent.
func (s *Section) Values(key string) []string {
	return slices.Clone(s.values[key])
}

// Value returns the first value bound to key, or def if absent.
func (s *Section) Value(key, def string) string {
	if vs, ok := s.values[key]; ok {
		return vs[0]
	}
	return def
}

// set replaces or extends the value list of key. An empty replacement
// removes the key; an empty append is a no-op.
func (s *Section) set(key string, values []string, appendValues bool) {
	if len(values) == 0 {
		if !appendValues {
			s.remove(key)
		}
		return
	}

	existing, ok := s.values[key]
	if !ok {
		s.keys = append(s.keys, key)
		s.values[key] = slices.Clone(values)
		return
	}

	if appendValues {
		s.values[key] = append(existing, values...)
	} else {
		s.values[key] = slices.Clone(values)
	}
}

func (s *Section) remove(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	if i := slices.Index(s.keys, key); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
	}
	return true
}

func (s *Section) clone() *Section {
	c := &Section{
		name:   s.name,
		keys:   slices.Clone(s.keys),
		values: make(map[string][]string, len(s.values)),
	}
	for k, vs := range s.values {
		c.values[k] = slices.Clone(vs)
	}
	return c
}

func (s *Section) equal(o *Section) bool {
	if s.name != o.name || !slices.Equal(s.keys, o.keys) {
		return false
	}
	for _, k := range s.keys {
		if !slices.Equal(s.values[k], o.values[k]) {
			return false
		}
	}
	return true
}

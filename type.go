// File: lixenwraith/ini/type.go
package ini

// Typed accessors. Reads coerce the first stored value and fall back to the
// caller's default when the key is absent or the value does not parse; they
// never modify the document. Writes store the canonical textual form.

// Int returns the first value of key as an int, or def.
func (d *Document) Int(section, key string, def int) int {
	return first(d, section, key, def, ParseInt)
}

// Int64 returns the first value of key as an int64, or def.
func (d *Document) Int64(section, key string, def int64) int64 {
	return first(d, section, key, def, ParseInt64)
}

// Float32 returns the first value of key as a float32, or def.
func (d *Document) Float32(section, key string, def float32) float32 {
	return first(d, section, key, def, ParseFloat32)
}

// Float64 returns the first value of key as a float64, or def.
func (d *Document) Float64(section, key string, def float64) float64 {
	return first(d, section, key, def, ParseFloat64)
}

// Bool returns the first value of key as a bool, or def.
// Only "true" and "false" (any case) are recognized.
func (d *Document) Bool(section, key string, def bool) bool {
	return first(d, section, key, def, ParseBool)
}

func (d *Document) SetInt(section, key string, v int) error {
	return d.SetValue(section, key, FormatInt(v))
}

func (d *Document) SetInt64(section, key string, v int64) error {
	return d.SetValue(section, key, FormatInt64(v))
}

func (d *Document) SetFloat32(section, key string, v float32) error {
	return d.SetValue(section, key, FormatFloat32(v))
}

func (d *Document) SetFloat64(section, key string, v float64) error {
	return d.SetValue(section, key, FormatFloat64(v))
}

func (d *Document) SetBool(section, key string, v bool) error {
	return d.SetValue(section, key, FormatBool(v))
}

// Ints returns all values of key that parse as int, in order.
// Values that fail to parse are dropped.
func (d *Document) Ints(section, key string) []int {
	return all(d, section, key, ParseInt)
}

// Float64s returns all values of key that parse as float64, in order.
// Values that fail to parse are dropped.
func (d *Document) Float64s(section, key string) []float64 {
	return all(d, section, key, ParseFloat64)
}

// SetInts formats values and stores them with SetValues semantics.
func (d *Document) SetInts(section, key string, values []int, appendValues bool) error {
	return d.SetValues(section, key, formatAll(values, FormatInt), appendValues)
}

// SetFloat64s formats values and stores them with SetValues semantics.
func (d *Document) SetFloat64s(section, key string, values []float64, appendValues bool) error {
	return d.SetValues(section, key, formatAll(values, FormatFloat64), appendValues)
}

func first[T any](d *Document, section, key string, def T, parse func(string) (T, error)) T {
	s, ok := d.index[section]
	if !ok {
		return def
	}
	vs, ok := s.values[key]
	if !ok {
		return def
	}
	v, err := parse(vs[0])
	if err != nil {
		return def
	}
	return v
}

func all[T any](d *Document, section, key string, parse func(string) (T, error)) []T {
	s, ok := d.index[section]
	if !ok {
		return nil
	}
	vs := s.values[key]
	out := make([]T, 0, len(vs))
	for _, raw := range vs {
		if v, err := parse(raw); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func formatAll[T any](values []T, format func(T) string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = format(v)
	}
	return out
}

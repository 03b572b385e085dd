// FILE: lixenwraith/ini/struct.go
package ini

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// SetStruct stores the exported fields of src (a struct or struct pointer)
// as keys of section, replacing existing values. Keys come from the `ini`
// tag or the field name; a tag of "-" skips the field. Slice and array
// fields become multi-valued keys, an empty slice removes the key. Nested
// structs are flattened into dotted keys. time.Duration and fmt.Stringer
// values use their String form.
func (d *Document) SetStruct(section string, src any) error {
	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("SetStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("SetStruct requires a struct or struct pointer, got %T", src)
	}

	var errs []error
	d.setFields(section, v, "", &errs)
	return errors.Join(errs...)
}

// structFields collects the keys and value lists SetStruct would store,
// without touching the document.
func structFields(v reflect.Value, prefix string, out map[string][]string, order *[]string, errs *[]error) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		key := field.Name
		if tag != "" {
			if name, _, _ := strings.Cut(tag, ","); name != "" {
				key = name
			}
		}
		if prefix != "" {
			key = prefix + "." + key
		}

		if isNestedStruct(fieldValue) {
			if fieldValue.Kind() == reflect.Ptr {
				if fieldValue.IsNil() {
					continue
				}
				fieldValue = fieldValue.Elem()
			}
			structFields(fieldValue, key, out, order, errs)
			continue
		}

		values, err := fieldStrings(fieldValue)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("field %s (key %s): %w", field.Name, key, err))
			continue
		}
		*order = append(*order, key)
		out[key] = values
	}
}

func (d *Document) setFields(section string, v reflect.Value, prefix string, errs *[]error) {
	values := make(map[string][]string)
	var order []string
	structFields(v, prefix, values, &order, errs)

	for _, key := range order {
		if err := d.SetValues(section, key, values[key], false); err != nil {
			*errs = append(*errs, err)
		}
	}
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

func isNestedStruct(v reflect.Value) bool {
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return false
	}
	return !t.Implements(stringerType) && !reflect.PointerTo(t).Implements(stringerType)
}

// fieldStrings renders one field value as a value list.
func fieldStrings(v reflect.Value) ([]string, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is a string, not a list of numbers
			s, err := scalarString(v)
			if err != nil {
				return nil, err
			}
			return []string{s}, nil
		}
		out := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			s, err := scalarString(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, s)
		}
		return out, nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
	}
	s, err := scalarString(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func scalarString(v reflect.Value) (string, error) {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String(), nil
	}
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", fmt.Errorf("nil element")
		}
		// *url.URL and friends implement Stringer on the pointer
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String(), nil
		}
		v = v.Elem()
	}
	if s, ok := formatAny(v.Interface()); ok {
		return s, nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FormatInt64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return FormatFloat32(float32(v.Float())), nil
	case reflect.Float64:
		return FormatFloat64(v.Float()), nil
	}
	return "", fmt.Errorf("cannot convert type %s to a value", v.Type())
}

// File: lixenwraith/ini/helper.go
package ini

import (
	"fmt"
	"strings"
)

// validateSectionName checks that name survives a write/parse cycle unchanged.
func validateSectionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: section name cannot be empty", ErrInvalidName)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: section name %q has surrounding whitespace", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, "]\r\n") {
		return fmt.Errorf("%w: section name %q contains ']' or a line break", ErrInvalidName, name)
	}
	return nil
}

// validateKey checks that key survives a write/parse cycle unchanged.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidName)
	}
	if strings.TrimSpace(key) != key {
		return fmt.Errorf("%w: key %q has surrounding whitespace", ErrInvalidName, key)
	}
	if strings.ContainsAny(key, "=\r\n") {
		return fmt.Errorf("%w: key %q contains '=' or a line break", ErrInvalidName, key)
	}
	switch key[0] {
	case ';', '#', '[':
		return fmt.Errorf("%w: key %q starts with %q", ErrInvalidName, key, key[0])
	}
	return nil
}

// validateValue checks that v reads back unchanged; the parser trims values.
func validateValue(v string) error {
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidValue, v)
	}
	if strings.TrimSpace(v) != v {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidValue, v)
	}
	return nil
}

// flattenMap converts a nested map[string]any to a flat map[string]any with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		// Check if the value is a map that can be further flattened
		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for _, segment := range segments[:len(segments)-1] {
		next, isMap := current[segment].(map[string]any)
		if !isMap {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}

	current[segments[len(segments)-1]] = value
}

// FILE: lixenwraith/ini/coerce.go
package ini

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Coercion between the stored string form and typed values.
// The textual format is fixed and locale-independent: base-10 integers with an
// optional sign, '.' as the decimal separator, and "true"/"false" for booleans.

// ParseInt parses a base-10 integer that fits in an int.
func ParseInt(s string) (int, error) {
	i, err := strconv.ParseInt(s, 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot convert %q to int: %w", ErrCoercion, s, err)
	}
	return int(i), nil
}

// ParseInt64 parses a base-10 64-bit integer.
func ParseInt64(s string) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot convert %q to int64: %w", ErrCoercion, s, err)
	}
	return i, nil
}

// ParseFloat32 parses a single precision decimal float.
func ParseFloat32(s string) (float32, error) {
	f, err := parseDecimalFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot convert %q to float32: %w", ErrCoercion, s, err)
	}
	return float32(f), nil
}

// ParseFloat64 parses a double precision decimal float.
func ParseFloat64(s string) (float64, error) {
	f, err := parseDecimalFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot convert %q to float64: %w", ErrCoercion, s, err)
	}
	return f, nil
}

// parseDecimalFloat is strconv.ParseFloat without the hexadecimal form.
// Underscores are only accepted by strconv after a base prefix, so they
// are rejected along with it.
func parseDecimalFloat(s string, bits int) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, errors.New("hexadecimal floats are not accepted")
	}
	return strconv.ParseFloat(s, bits)
}

// ParseBool accepts "true" and "false" in any letter case.
// Unlike strconv.ParseBool, "1", "t" and friends are rejected.
func ParseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return false, fmt.Errorf("%w: cannot convert %q to bool", ErrCoercion, s)
}

func FormatInt(i int) string {
	return strconv.Itoa(i)
}

func FormatInt64(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatFloat32 returns the shortest decimal form that parses back to f.
func FormatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// FormatFloat64 returns the shortest decimal form that parses back to f.
func FormatFloat64(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// formatAny renders scalar values of foreign origin (decoded TOML/YAML/JSON,
// struct fields) in the canonical textual form.
func formatAny(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return FormatBool(x), true
	case int:
		return FormatInt(x), true
	case int8:
		return FormatInt64(int64(x)), true
	case int16:
		return FormatInt64(int64(x)), true
	case int32:
		return FormatInt64(int64(x)), true
	case int64:
		return FormatInt64(x), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return FormatFloat32(x), true
	case float64:
		return FormatFloat64(x), true
	case time.Time:
		return x.Format(time.RFC3339Nano), true
	case fmt.Stringer:
		return x.String(), true
	case []byte:
		return string(x), true
	case nil:
		return "", false
	}
	return "", false
}

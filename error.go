// FILE: lixenwraith/ini/error.go
package ini

import "errors"

// Sentinel errors. Returned errors wrap one of these together with the
// underlying cause, so callers test them with errors.Is.
var (
	// ErrNotFound is returned when a settings file does not exist or cannot be opened for reading
	ErrNotFound = errors.New("settings file not found")
	// ErrIO is returned for any other I/O fault while reading or writing a settings file
	ErrIO = errors.New("settings file i/o failure")

	ErrInvalidName       = errors.New("invalid section or key name")
	ErrInvalidValue      = errors.New("invalid value")
	ErrCoercion          = errors.New("value coercion failed")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// File: lixenwraith/ini/builder.go
package ini

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
)

// ValidatorFunc defines the signature for a function that can validate a Document.
// It receives the fully loaded *Document and should return an error if validation fails.
type ValidatorFunc func(d *Document) error

type sectionDefaults struct {
	section string
	value   any
}

// Builder provides a fluent interface for loading a settings document with
// defaults and command-line overrides.
type Builder struct {
	file       string
	args       []string
	defaults   []sectionDefaults
	logger     *slog.Logger
	validators []ValidatorFunc
}

// NewBuilder creates a new document builder reading overrides from os.Args.
func NewBuilder() *Builder {
	return &Builder{
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the settings file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithArgs sets the command-line arguments.
// Arguments of the form "--section.key=value" or "--section.key value"
// replace that key; repeating a flag accumulates values. A flag without a
// value sets "true". Flags without a '.' are not settings and are ignored.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithDefaults registers a struct whose fields fill keys of section that the
// file does not provide. Fields map to keys as in SetStruct.
func (b *Builder) WithDefaults(section string, defaults any) *Builder {
	b.defaults = append(b.defaults, sectionDefaults{section: section, value: defaults})
	return b
}

// WithLogger sets the logger handed to the built Document.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads the file, fills defaults, applies argument overrides and runs
// validators, in that order.
// A missing file is not fatal: the document is returned together with an
// error wrapping ErrNotFound so callers can proceed with defaults.
func (b *Builder) Build() (*Document, error) {
	d := New(WithLogger(b.logger))

	var loadErr error
	if b.file != "" {
		loadErr = d.LoadFile(b.file)
		if loadErr != nil && !errors.Is(loadErr, ErrNotFound) {
			return nil, loadErr
		}
		if loadErr != nil {
			d.log().Debug("settings file not found, using defaults", "path", b.file)
		}
	}

	for _, def := range b.defaults {
		if err := d.fillDefaults(def.section, def.value); err != nil {
			return nil, fmt.Errorf("failed to apply defaults for section %q: %w", def.section, err)
		}
	}

	overrides, err := parseArgs(b.args)
	if err != nil {
		return nil, err
	}
	replaced := make(map[[2]string]bool)
	for _, o := range overrides {
		id := [2]string{o.section, o.key}
		if err := d.SetValues(o.section, o.key, []string{o.value}, replaced[id]); err != nil {
			return nil, fmt.Errorf("invalid command-line override --%s.%s: %w", o.section, o.key, err)
		}
		replaced[id] = true
	}

	for _, validator := range b.validators {
		if err := validator(d); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	// ErrNotFound or nil
	return d, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Document {
	d, err := b.Build()
	if err != nil {
		// A missing file is not fatal; the document holds defaults and overrides.
		if !errors.Is(err, ErrNotFound) {
			panic(fmt.Sprintf("settings build failed: %v", err))
		}
	}
	return d
}

// BuildAndScan builds the document and decodes section into target.
func (b *Builder) BuildAndScan(section string, target any) (*Document, error) {
	d, err := b.Build()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := d.Scan(section, target); err != nil {
		return nil, fmt.Errorf("failed to scan section %q into target: %w", section, err)
	}

	// ErrNotFound or nil
	return d, err
}

func (d *Document) fillDefaults(section string, defaults any) error {
	v := reflect.ValueOf(defaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("defaults must be a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("defaults must be a struct or struct pointer, got %T", defaults)
	}

	var errs []error
	values := make(map[string][]string)
	var order []string
	structFields(v, "", values, &order, &errs)

	for _, key := range order {
		if d.HasKey(section, key) {
			continue
		}
		if err := d.SetValues(section, key, values[key], false); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type override struct {
	section string
	key     string
	value   string
}

// parseArgs processes command-line arguments into section/key overrides.
func parseArgs(args []string) ([]override, error) {
	var result []override
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// "--" ends flag processing
			break
		}

		var path, valueStr string
		if p, v, ok := strings.Cut(argContent, "="); ok {
			path, valueStr = p, v
			i++
		} else {
			path = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true" // Assume boolean flag if no value provided
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		section, key, ok := strings.Cut(path, ".")
		if !ok {
			// Not a settings path (e.g. --config)
			continue
		}
		if section == "" || key == "" {
			return nil, fmt.Errorf("%w: command-line flag --%s needs both a section and a key", ErrInvalidName, path)
		}
		result = append(result, override{section: section, key: key, value: valueStr})
	}

	return result, nil
}

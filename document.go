// FILE: lixenwraith/ini/document.go
package ini

import (
	"fmt"
	"log/slog"
	"slices"
)

// Document is an in-memory settings document: an ordered sequence of uniquely
// named sections. Section and key insertion order is preserved through
// load, mutation and save; new sections and keys are appended at the end.
//
// The zero value is an empty Document ready to use, logging nowhere.
// A Document performs no internal locking. Callers sharing one instance
// between goroutines must serialize access themselves.
type Document struct {
	sections []*Section
	index    map[string]*Section
	logger   *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for parse diagnostics and file operations.
// A nil logger restores the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger == nil {
			logger = discardLogger()
		}
		d.logger = logger
	}
}

// New creates an empty Document.
func New(opts ...Option) *Document {
	d := &Document{
		index:  make(map[string]*Section),
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// log returns the configured logger, or a discarding one for a zero Document.
func (d *Document) log() *slog.Logger {
	if d.logger == nil {
		return discardLogger()
	}
	return d.logger
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.sections)
}

// Sections returns the section names in document order.
func (d *Document) Sections() []string {
	names := make([]string, len(d.sections))
	for i, s := range d.sections {
		names[i] = s.name
	}
	return names
}

// HasSection reports whether a section with the given name exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.index[name]
	return ok
}

// HasKey reports whether key exists in section.
func (d *Document) HasKey(section, key string) bool {
	s, ok := d.index[section]
	return ok && s.HasKey(key)
}

// Section looks up a section without creating it.
// An absent section is reported as an empty, detached *Section.
func (d *Document) Section(name string) *Section {
	if s, ok := d.index[name]; ok {
		return s
	}
	return newSection(name)
}

// EnsureSection returns the named section, appending a new empty one at the
// end of the document if it does not exist yet.
func (d *Document) EnsureSection(name string) (*Section, error) {
	if s, ok := d.index[name]; ok {
		return s, nil
	}
	if err := validateSectionName(name); err != nil {
		return nil, err
	}
	s := newSection(name)
	d.sections = append(d.sections, s)
	if d.index == nil {
		d.index = make(map[string]*Section)
	}
	d.index[name] = s
	return s, nil
}

// Values returns a copy of the values bound to key in section.
// The result is empty if either is absent.
func (d *Document) Values(section, key string) []string {
	if s, ok := d.index[section]; ok {
		return s.Values(key)
	}
	return nil
}

// Value returns the first value of key in section, or def if absent.
func (d *Document) Value(section, key, def string) string {
	if s, ok := d.index[section]; ok {
		return s.Value(key, def)
	}
	return def
}

// SetValues binds values to key in section.
// With appendValues false the key's value list is replaced, and an empty
// values removes the key. With appendValues true the values are added after
// the existing ones in order, and an empty values is a no-op.
// The section is created on first write.
func (d *Document) SetValues(section, key string, values []string, appendValues bool) error {
	if len(values) == 0 {
		if appendValues {
			return nil
		}
		d.RemoveKey(section, key)
		return nil
	}

	if err := validateKey(key); err != nil {
		return err
	}
	for _, v := range values {
		if err := validateValue(v); err != nil {
			return fmt.Errorf("%w (section %q, key %q)", err, section, key)
		}
	}

	s, err := d.EnsureSection(section)
	if err != nil {
		return err
	}
	s.set(key, values, appendValues)
	return nil
}

// SetValue replaces the value list of key in section with the single value.
func (d *Document) SetValue(section, key, value string) error {
	return d.SetValues(section, key, []string{value}, false)
}

// RemoveKey removes key from section, reporting whether it existed.
// The section itself is kept even when it becomes empty.
func (d *Document) RemoveKey(section, key string) bool {
	s, ok := d.index[section]
	if !ok {
		return false
	}
	return s.remove(key)
}

// RemoveSection removes a section and all its keys, reporting whether it existed.
func (d *Document) RemoveSection(name string) bool {
	s, ok := d.index[name]
	if !ok {
		return false
	}
	delete(d.index, name)
	if i := slices.Index(d.sections, s); i >= 0 {
		d.sections = slices.Delete(d.sections, i, i+1)
	}
	return true
}

// Clone returns a deep copy of the document sharing the logger.
func (d *Document) Clone() *Document {
	c := New(WithLogger(d.logger))
	for _, s := range d.sections {
		cs := s.clone()
		c.sections = append(c.sections, cs)
		c.index[cs.name] = cs
	}
	return c
}

// Equal reports whether both documents hold the same sections, keys and
// values in the same order.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.sections) != len(o.sections) {
		return false
	}
	for i, s := range d.sections {
		if !s.equal(o.sections[i]) {
			return false
		}
	}
	return true
}

// File: lixenwraith/ini/convenience.go
package ini

import (
	"fmt"
	"io"
	"strings"
)

// Require checks that every key is present in section.
func (d *Document) Require(section string, keys ...string) error {
	s := d.Section(section)

	var missing []string
	for _, key := range keys {
		if !s.HasKey(key) {
			missing = append(missing, section+"."+key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Merge copies every section and key of other into the document.
// With appendValues false, keys present in both take other's values;
// otherwise other's values are appended. New sections and keys keep other's
// order and are placed at the end.
func (d *Document) Merge(other *Document, appendValues bool) error {
	for _, s := range other.sections {
		if _, err := d.EnsureSection(s.name); err != nil {
			return err
		}
		for _, key := range s.keys {
			if err := d.SetValues(s.name, key, s.values[key], appendValues); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dump writes a debug view of the document: one line per key with its
// value count and values.
func (d *Document) Dump(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Settings Debug Info:\n")
	b.WriteString(fmt.Sprintf("Sections: %d\n", len(d.sections)))

	for _, s := range d.sections {
		b.WriteString(fmt.Sprintf("  [%s] (%d keys)\n", s.name, len(s.keys)))
		for _, key := range s.keys {
			vs := s.values[key]
			b.WriteString(fmt.Sprintf("    %s (%d): %q\n", key, len(vs), vs))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

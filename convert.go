// FILE: lixenwraith/ini/convert.go
package ini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a serialization a Document can be exported to or imported from.
type Format string

const (
	FormatINI  Format = "ini"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ini", "conf", "cfg":
		return FormatINI, nil
	case "toml", "tml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// DetectFormat determines format from file extension. Unknown extensions
// are treated as INI.
func DetectFormat(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatINI
}

// Export writes the document to w in the given format.
// Sections become top-level tables; a single-valued key becomes a string and
// a multi-valued key an array of strings. TOML output sorts keys within a
// section, YAML and JSON keep document order.
func (d *Document) Export(w io.Writer, format Format) error {
	switch format {
	case FormatINI:
		_, err := d.WriteTo(w)
		return err
	case FormatTOML:
		return d.exportTOML(w)
	case FormatJSON:
		return d.exportJSON(w)
	case FormatYAML:
		return d.exportYAML(w)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Import reads a document in the given format.
// Top-level tables become sections, nested tables are flattened into dotted
// keys, arrays become multi-valued keys and scalars take their canonical
// textual form. Top-level scalars have no section and are dropped, as are
// entries whose names cannot be stored.
func Import(r io.Reader, format Format, opts ...Option) (*Document, error) {
	switch format {
	case FormatINI:
		return Parse(r, opts...)
	case FormatTOML:
		return importTOML(r, opts...)
	case FormatJSON:
		return importJSON(r, opts...)
	case FormatYAML:
		return importYAML(r, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// exportValue is the format-neutral shape of one key.
func exportValue(vs []string) any {
	if len(vs) == 1 {
		return vs[0]
	}
	return slices.Clone(vs)
}

func (d *Document) exportTOML(w io.Writer) error {
	var buf bytes.Buffer
	for i, s := range d.sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString("[" + tomlKey(s.name) + "]\n")

		table := make(map[string]any, len(s.keys))
		for _, k := range s.keys {
			table[k] = exportValue(s.values[k])
		}
		if err := toml.NewEncoder(&buf).Encode(table); err != nil {
			return fmt.Errorf("failed to marshal section %q to TOML: %w", s.name, err)
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// tomlKey returns name as a bare TOML key when possible, quoted otherwise.
func tomlKey(name string) string {
	for _, r := range name {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			b, _ := json.Marshal(name)
			return string(b)
		}
	}
	return name
}

func (d *Document) exportJSON(w io.Writer) error {
	var raw bytes.Buffer
	raw.WriteByte('{')
	for i, s := range d.sections {
		if i > 0 {
			raw.WriteByte(',')
		}
		name, _ := json.Marshal(s.name)
		raw.Write(name)
		raw.WriteString(":{")
		for j, k := range s.keys {
			if j > 0 {
				raw.WriteByte(',')
			}
			key, _ := json.Marshal(k)
			val, err := json.Marshal(exportValue(s.values[k]))
			if err != nil {
				return fmt.Errorf("failed to marshal %s.%s to JSON: %w", s.name, k, err)
			}
			raw.Write(key)
			raw.WriteByte(':')
			raw.Write(val)
		}
		raw.WriteByte('}')
	}
	raw.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	out.WriteByte('\n')
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (d *Document) exportYAML(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range d.sections {
		table := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range s.keys {
			table.Content = append(table.Content, yamlString(k), yamlValue(s.values[k]))
		}
		root.Content = append(root.Content, yamlString(s.name), table)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlValue(vs []string) *yaml.Node {
	if len(vs) == 1 {
		return yamlString(vs[0])
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range vs {
		seq.Content = append(seq.Content, yamlString(v))
	}
	return seq
}

func importTOML(r io.Reader, opts ...Option) (*Document, error) {
	data := make(map[string]any)
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	d := New(opts...)
	for _, key := range md.Keys() {
		value, ok := lookupPath(data, key)
		if !ok {
			continue
		}
		_, isTable := value.(map[string]any)
		switch {
		case len(key) == 1 && isTable:
			d.importSection(key[0])
		case len(key) == 1:
			d.log().Debug("dropping top-level TOML value outside any table", "key", key.String())
		case !isTable:
			d.importValue(key[0], strings.Join(key[1:], "."), value)
		}
	}
	return d, nil
}

// lookupPath walks nested maps along path.
func lookupPath(data map[string]any, path toml.Key) (any, bool) {
	var current any = data
	for _, segment := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

func importJSON(r io.Reader, opts ...Option) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber() // Preserve number precision
	data := make(map[string]any)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	d := New(opts...)
	for _, name := range sortedKeys(data) {
		table, ok := data[name].(map[string]any)
		if !ok {
			d.log().Debug("dropping top-level JSON value outside any object", "key", name)
			continue
		}
		if !d.importSection(name) {
			continue
		}
		flat := flattenMap(table, "")
		for _, key := range sortedKeys(flat) {
			d.importValue(name, key, flat[key])
		}
	}
	return d, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func importYAML(r io.Reader, opts ...Option) (*Document, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return New(opts...), nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	d := New(opts...)
	if len(doc.Content) == 0 {
		return d, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse YAML: top level is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name, value := root.Content[i].Value, root.Content[i+1]
		if value.Kind != yaml.MappingNode {
			d.log().Debug("dropping top-level YAML value outside any mapping", "key", name)
			continue
		}
		if !d.importSection(name) {
			continue
		}
		d.importYAMLMapping(name, "", value)
	}
	return d, nil
}

func (d *Document) importYAMLMapping(section, prefix string, node *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if prefix != "" {
			key = prefix + "." + key
		}
		value := node.Content[i+1]

		switch value.Kind {
		case yaml.MappingNode:
			d.importYAMLMapping(section, key, value)
		case yaml.SequenceNode:
			items := make([]any, 0, len(value.Content))
			for _, item := range value.Content {
				if v, ok := yamlScalar(item); ok {
					items = append(items, v)
				}
			}
			d.importValue(section, key, items)
		default:
			if v, ok := yamlScalar(value); ok {
				d.importValue(section, key, v)
			}
		}
	}
}

func yamlScalar(n *yaml.Node) (any, bool) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return nil, false
	}
	if n.Tag == "!!str" {
		return n.Value, true
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value, true
	}
	return v, true
}

func (d *Document) importSection(name string) bool {
	if _, err := d.EnsureSection(name); err != nil {
		d.log().Debug("dropping section", "section", name, "error", err)
		return false
	}
	return true
}

// importValue stores a decoded scalar or array. Non-scalar array elements
// are dropped.
func (d *Document) importValue(section, key string, value any) {
	var values []string
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if s, ok := formatAny(item); ok {
				values = append(values, s)
			}
		}
	} else if s, ok := formatAny(value); ok {
		values = []string{s}
	}
	if len(values) == 0 {
		return
	}
	if err := d.SetValues(section, key, values, true); err != nil {
		d.log().Debug("dropping value", "section", section, "key", key, "error", err)
	}
}

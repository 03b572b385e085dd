// FILE: lixenwraith/ini/parse.go
package ini

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// maxLineSize bounds a single line; longer lines fail the read with ErrIO.
const maxLineSize = 1 << 20

const utf8BOM = "\ufeff"

// Parse reads a settings document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	d := New(opts...)
	if _, err := d.ReadFrom(r); err != nil {
		return nil, err
	}
	return d, nil
}

// Load reads the settings file at path into a new Document.
// It fails with ErrNotFound if the file is missing or unreadable and with
// ErrIO on any other I/O fault. Malformed lines never fail a load.
func Load(path string, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.LoadFile(path); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadFile merges the settings file at path into the document.
// Keys already present receive the file's values appended after their own.
func (d *Document) LoadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return classifyOpenError(path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return classifyOpenError(path, err)
	}
	defer f.Close()

	n, err := d.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}

	d.log().Debug("settings file loaded", "path", path, "bytes", n, "sections", len(d.sections))
	return nil
}

func classifyOpenError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: '%s': %w", ErrNotFound, path, err)
	}
	return fmt.Errorf("%w: failed to open settings file '%s': %w", ErrIO, path, err)
}

// ReadFrom parses lines from r into the document, implementing io.ReaderFrom.
//
// Lines are classified in order: blank lines and lines whose first
// non-space character is ';' or '#' are skipped; a trimmed "[name]" line
// selects (or creates) the current section; otherwise the first '=' splits
// the line into a key and a value, which is appended to that key's value
// list. Lines that fit none of these, and key/value lines seen before any
// section header, are skipped.
func (d *Document) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	scanner := bufio.NewScanner(cr)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var current *Section
	lineNo := 0
	skipped := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue

		case trimmed[0] == ';' || trimmed[0] == '#':
			continue

		case trimmed[0] == '[':
			name, ok := parseHeader(trimmed)
			if !ok {
				skipped++
				d.log().Debug("skipping malformed section header", "line", lineNo, "text", trimmed)
				continue
			}
			s, err := d.EnsureSection(name)
			if err != nil {
				skipped++
				d.log().Debug("skipping invalid section header", "line", lineNo, "error", err)
				continue
			}
			current = s

		default:
			key, value, ok := strings.Cut(trimmed, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				skipped++
				d.log().Debug("skipping line without key", "line", lineNo, "text", trimmed)
				continue
			}
			if current == nil {
				skipped++
				d.log().Debug("skipping key outside any section", "line", lineNo, "key", key)
				continue
			}
			current.set(key, []string{strings.TrimSpace(value)}, true)
		}
	}

	if err := scanner.Err(); err != nil {
		return cr.n, fmt.Errorf("%w: line %d: %w", ErrIO, lineNo+1, err)
	}

	if skipped > 0 {
		d.log().Debug("parse finished with skipped lines", "lines", lineNo, "skipped", skipped)
	}
	return cr.n, nil
}

// parseHeader extracts the name from a trimmed "[name]" line.
func parseHeader(line string) (string, bool) {
	if len(line) < 2 || line[len(line)-1] != ']' {
		return "", false
	}
	name := strings.TrimSpace(line[1 : len(line)-1])
	if name == "" {
		return "", false
	}
	return name, true
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

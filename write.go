// FILE: lixenwraith/ini/write.go
package ini

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteTo serializes the document to w, implementing io.WriterTo.
// Each section is written as a "[name]" header followed by one "key=value"
// line per value, so a key holding N values produces N lines. Sections are
// separated by a blank line; empty sections still get their header.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	for i, s := range d.sections {
		if i > 0 {
			bw.WriteByte('\n')
		}
		bw.WriteString("[" + s.name + "]\n")
		for _, key := range s.keys {
			for _, v := range s.values[key] {
				bw.WriteString(key)
				bw.WriteByte('=')
				bw.WriteString(v)
				bw.WriteByte('\n')
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return cw.n, nil
}

// String returns the serialized document.
func (d *Document) String() string {
	var buf bytes.Buffer
	d.WriteTo(&buf)
	return buf.String()
}

// Save writes the document to path atomically through a temporary file in
// the same directory. The parent directory must exist. An existing file
// keeps its permission bits; a new file is created with 0644.
// Any failure is reported as ErrIO.
func (d *Document) Save(path string) error {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return err
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: '%s' is a directory", ErrIO, path)
		}
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to stat settings file '%s': %w", ErrIO, path, err)
	}

	if err := atomicWriteFile(path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	d.log().Debug("settings file saved", "path", path, "bytes", buf.Len(), "sections", len(d.sections))
	return nil
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in '%s': %w", dir, err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}

	if err := os.Chmod(tempPath, mode); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename '%s' to '%s': %w", tempPath, path, err)
	}
	removed = true

	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

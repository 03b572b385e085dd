package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ini"
)

const sampleFile = `; app settings
[gui]
language=en

[mp3]
rating_conversion=0
rating_conversion=64
rating_conversion=255
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))
	return path
}

// TestGetCommand tests value lookup
func TestGetCommand(t *testing.T) {
	path := writeSample(t)

	out, _, err := runCLI(t, "get", path, "gui", "language")
	require.NoError(t, err)
	assert.Equal(t, "en\n", out)

	out, _, err = runCLI(t, "get", path, "mp3", "rating_conversion")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, _, err = runCLI(t, "get", "--all", path, "mp3", "rating_conversion")
	require.NoError(t, err)
	assert.Equal(t, "0\n64\n255\n", out)

	_, _, err = runCLI(t, "get", path, "gui", "missing")
	assert.ErrorContains(t, err, "gui.missing is not set")

	out, _, err = runCLI(t, "get", "--default", "", path, "gui", "missing")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)

	_, _, err = runCLI(t, "get", filepath.Join(t.TempDir(), "none.ini"), "gui", "language")
	assert.ErrorIs(t, err, ini.ErrNotFound)

	_, _, err = runCLI(t, "get", path, "gui")
	assert.Error(t, err)
}

// TestSetAndUnsetCommands tests editing a file in place
func TestSetAndUnsetCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.ini")

	_, _, err := runCLI(t, "set", path, "gui", "language", "de")
	require.NoError(t, err)
	_, _, err = runCLI(t, "set", path, "mp3", "rating", "1", "2")
	require.NoError(t, err)
	_, _, err = runCLI(t, "set", "--append", path, "mp3", "rating", "3")
	require.NoError(t, err)

	d, err := ini.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "de", d.Value("gui", "language", ""))
	assert.Equal(t, []int{1, 2, 3}, d.Ints("mp3", "rating"))

	_, _, err = runCLI(t, "set", path, "gui", "bad=key", "x")
	assert.ErrorIs(t, err, ini.ErrInvalidName)

	_, _, err = runCLI(t, "unset", path, "mp3", "rating")
	require.NoError(t, err)
	_, _, err = runCLI(t, "unset", path, "mp3", "rating")
	assert.ErrorContains(t, err, "mp3.rating is not set")

	_, _, err = runCLI(t, "unset", path, "gui")
	require.NoError(t, err)
	_, _, err = runCLI(t, "unset", path, "gui")
	assert.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[mp3]\n", string(data))
}

// TestListCommand tests the table view
func TestListCommand(t *testing.T) {
	path := writeSample(t)

	out, _, err := runCLI(t, "list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SECTION")
	assert.Contains(t, out, "language")
	assert.Contains(t, out, "0, 64, 255")

	out, _, err = runCLI(t, "list", path, "gui")
	require.NoError(t, err)
	assert.Contains(t, out, "language")
	assert.NotContains(t, out, "rating_conversion")

	_, _, err = runCLI(t, "list", path, "absent")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.ini")
	require.NoError(t, os.WriteFile(empty, []byte("; nothing\n"), 0o644))
	out, _, err = runCLI(t, "list", empty)
	require.NoError(t, err)
	assert.Equal(t, "No settings\n", out)
}

// TestConvertCommand tests format conversion through the CLI
func TestConvertCommand(t *testing.T) {
	path := writeSample(t)

	out, _, err := runCLI(t, "convert", path, "--to", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"language": "en"`)

	out, _, err = runCLI(t, "convert", path, "--to", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, `rating_conversion = ["0", "64", "255"]`)

	yamlPath := filepath.Join(t.TempDir(), "settings.yaml")
	out, _, err = runCLI(t, "convert", path, "-o", yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 sections")

	// And back again
	out, _, err = runCLI(t, "convert", yamlPath, "--to", "ini")
	require.NoError(t, err)
	assert.Equal(t, "[gui]\nlanguage=en\n\n[mp3]\nrating_conversion=0\nrating_conversion=64\nrating_conversion=255\n", out)

	_, _, err = runCLI(t, "convert", path)
	assert.Error(t, err)
	_, _, err = runCLI(t, "convert", path, "--to", "xml")
	assert.ErrorIs(t, err, ini.ErrUnsupportedFormat)

	missing := filepath.Join(t.TempDir(), "missing.ini")
	_, _, err = runCLI(t, "convert", missing, "--to", "json")
	assert.ErrorIs(t, err, ini.ErrNotFound)
	_, _, err = runCLI(t, "convert", filepath.Join(t.TempDir(), "missing.toml"), "--to", "ini")
	assert.ErrorIs(t, err, ini.ErrNotFound)
}

// TestFmtCommand tests canonical rewriting
func TestFmtCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messy.ini")
	messy := "; comment\n[b]\n  k = 1  \n\n[a]\nx=y\n[b]\nk=2\n"
	require.NoError(t, os.WriteFile(path, []byte(messy), 0o644))

	canonical := "[b]\nk=1\nk=2\n\n[a]\nx=y\n"

	out, _, err := runCLI(t, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, canonical, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, messy, string(data), "fmt without --write leaves the file alone")

	_, _, err = runCLI(t, "fmt", "--write", path)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, canonical, string(data))
}

// TestVerboseLogging tests that --verbose routes library debug logs to stderr
func TestVerboseLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("orphan=1\n[a]\nk=v\n"), 0o644))

	_, stderr, err := runCLI(t, "get", path, "a", "k")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = runCLI(t, "--verbose", "get", path, "a", "k")
	require.NoError(t, err)
	assert.True(t, strings.Contains(stderr, "level=DEBUG"), stderr)
}

// FILE: lixenwraith/ini/builder_test.go
package ini

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverSettings struct {
	Host string   `ini:"host"`
	Port int      `ini:"port"`
	Tags []string `ini:"tags"`
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("BasicBuilder", func(t *testing.T) {
		d, err := NewBuilder().
			WithArgs(nil).
			WithDefaults("server", &serverSettings{Host: "localhost", Port: 8080}).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "localhost", d.Value("server", "host", ""))
		assert.Equal(t, 8080, d.Int("server", "port", 0))
		assert.False(t, d.HasKey("server", "tags"), "empty slice default stores nothing")
	})

	t.Run("BuilderWithAllOptions", func(t *testing.T) {
		path := writeSettings(t, "[server]\nhost=filehost\ntags=file\n")

		d, err := NewBuilder().
			WithFile(path).
			WithDefaults("server", serverSettings{Host: "defaulthost", Port: 3000}).
			WithArgs([]string{
				"--server.port=9090",
				"--server.tags", "a",
				"--server.tags=b",
				"--debug", "positional",
				"--server.enabled",
			}).
			Build()

		require.NoError(t, err)

		// File beats defaults
		assert.Equal(t, "filehost", d.Value("server", "host", ""))
		// Arguments beat defaults; the first occurrence replaces, repeats append
		assert.Equal(t, 9090, d.Int("server", "port", 0))
		assert.Equal(t, []string{"a", "b"}, d.Values("server", "tags"))
		// Bare flag
		assert.True(t, d.Bool("server", "enabled", false))
		// Flags without a section are not settings
		assert.Equal(t, []string{"host", "tags", "port", "enabled"}, d.Section("server").Keys())
		assert.Equal(t, []string{"server"}, d.Sections())
	})

	t.Run("MissingFileIsNotFatal", func(t *testing.T) {
		d, err := NewBuilder().
			WithArgs(nil).
			WithFile(filepath.Join(t.TempDir(), "missing.ini")).
			WithDefaults("server", &serverSettings{Host: "localhost"}).
			Build()

		assert.ErrorIs(t, err, ErrNotFound)
		require.NotNil(t, d)
		assert.Equal(t, "localhost", d.Value("server", "host", ""))
	})

	t.Run("UnreadableFileIsFatal", func(t *testing.T) {
		path := writeSettings(t, "[a]\nk="+strings.Repeat("x", maxLineSize+1)+"\n")

		d, err := NewBuilder().WithArgs(nil).WithFile(path).Build()
		assert.ErrorIs(t, err, ErrIO)
		assert.Nil(t, d)
	})

	t.Run("InvalidDefaults", func(t *testing.T) {
		_, err := NewBuilder().WithArgs(nil).WithDefaults("server", "not a struct").Build()
		assert.Error(t, err)

		_, err = NewBuilder().WithArgs(nil).WithDefaults("", serverSettings{Host: "x"}).Build()
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("InvalidOverride", func(t *testing.T) {
		_, err := NewBuilder().WithArgs([]string{"--.key=v"}).Build()
		assert.ErrorIs(t, err, ErrInvalidName)

		_, err = NewBuilder().WithArgs([]string{"--server.key=a\nb"}).Build()
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("Validators", func(t *testing.T) {
		var calls []string
		first := func(d *Document) error {
			calls = append(calls, "first")
			return nil
		}
		second := func(d *Document) error {
			calls = append(calls, "second")
			if d.Int("server", "port", 0) < 1024 {
				return fmt.Errorf("port too low")
			}
			return nil
		}

		_, err := NewBuilder().
			WithArgs([]string{"--server.port=80"}).
			WithValidator(first).
			WithValidator(nil).
			WithValidator(second).
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "port too low")
		assert.Equal(t, []string{"first", "second"}, calls)

		d, err := NewBuilder().
			WithArgs([]string{"--server.port=8080"}).
			WithValidator(second).
			Build()
		require.NoError(t, err)
		assert.Equal(t, 8080, d.Int("server", "port", 0))
	})
}

// TestMustBuild tests panic behavior
func TestMustBuild(t *testing.T) {
	assert.NotPanics(t, func() {
		d := NewBuilder().
			WithArgs(nil).
			WithFile(filepath.Join(t.TempDir(), "missing.ini")).
			MustBuild()
		assert.NotNil(t, d)
	})

	assert.Panics(t, func() {
		NewBuilder().
			WithArgs(nil).
			WithValidator(func(*Document) error { return fmt.Errorf("boom") }).
			MustBuild()
	})
}

// TestBuildAndScan tests building straight into a struct
func TestBuildAndScan(t *testing.T) {
	path := writeSettings(t, "[server]\nhost=filehost\ntags=x\ntags=y\n")

	var target serverSettings
	d, err := NewBuilder().
		WithFile(path).
		WithDefaults("server", serverSettings{Port: 8080}).
		WithArgs([]string{"--server.port", "9000"}).
		BuildAndScan("server", &target)

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, serverSettings{Host: "filehost", Port: 9000, Tags: []string{"x", "y"}}, target)

	var missing serverSettings
	_, err = NewBuilder().
		WithArgs(nil).
		WithFile(filepath.Join(t.TempDir(), "missing.ini")).
		WithDefaults("server", serverSettings{Host: "localhost"}).
		BuildAndScan("server", &missing)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "localhost", missing.Host)

	_, err = NewBuilder().WithArgs(nil).BuildAndScan("server", serverSettings{})
	assert.Error(t, err)
}

// TestParseArgs tests command-line override parsing
func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []override
	}{
		{"Empty", nil, nil},
		{"Equals", []string{"--a.b=c"}, []override{{"a", "b", "c"}}},
		{"EqualsInValue", []string{"--db.dsn=user=x"}, []override{{"db", "dsn", "user=x"}}},
		{"Separate", []string{"--a.b", "c"}, []override{{"a", "b", "c"}}},
		{"BareFlag", []string{"--a.b", "--c.d=1"}, []override{{"a", "b", "true"}, {"c", "d", "1"}}},
		{"DottedKey", []string{"--server.tls.cert=/c"}, []override{{"server", "tls.cert", "/c"}}},
		{"SkipsPositional", []string{"run", "--a.b=1", "extra"}, []override{{"a", "b", "1"}}},
		{"SkipsUnsectioned", []string{"--config", "x.ini", "--a.b=1"}, []override{{"a", "b", "1"}}},
		{"DoubleDashStops", []string{"--a.b=1", "--", "--c.d=2"}, []override{{"a", "b", "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	for _, bad := range []string{"--.b=1", "--a.=1"} {
		_, err := parseArgs([]string{bad})
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

// TestFileDiscovery tests automatic settings file discovery
func TestFileDiscovery(t *testing.T) {
	isolate := func(t *testing.T) {
		t.Setenv("MYAPP_CONFIG", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	}

	t.Run("DiscoveryWithCLIFlag", func(t *testing.T) {
		isolate(t)
		path := writeSettings(t, "[app]\ntest=value\n")

		d, err := NewBuilder().
			WithArgs([]string{"--config", path}).
			WithFileDiscovery(DefaultDiscoveryOptions("myapp")).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "value", d.Value("app", "test", ""))
		assert.Equal(t, []string{"app"}, d.Sections(), "--config is not an override")

		assert.Equal(t, "/x.ini", DiscoverFile(DefaultDiscoveryOptions("myapp"), []string{"--config=/x.ini"}))
	})

	t.Run("DiscoveryWithEnvVar", func(t *testing.T) {
		isolate(t)
		path := writeSettings(t, "[app]\ntest=envvalue\n")
		t.Setenv("MYAPP_CONFIG", path)

		d, err := NewBuilder().
			WithArgs(nil).
			WithFileDiscovery(DefaultDiscoveryOptions("myapp")).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "envvalue", d.Value("app", "test", ""))
	})

	t.Run("DiscoveryPrecedence", func(t *testing.T) {
		isolate(t)
		cliFile := writeSettings(t, "[app]\ntest=clifile\n")
		envFile := writeSettings(t, "[app]\ntest=envfile\n")
		t.Setenv("MYAPP_CONFIG", envFile)

		d, err := NewBuilder().
			WithArgs([]string{"--config", cliFile}).
			WithFileDiscovery(DefaultDiscoveryOptions("myapp")).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "clifile", d.Value("app", "test", ""))
	})

	t.Run("DiscoveryInSearchPaths", func(t *testing.T) {
		isolate(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "myapp.conf"), []byte("[app]\ntest=conf\n"), 0644))

		opts := DefaultDiscoveryOptions("myapp")
		opts.Paths = []string{filepath.Join(dir, "empty"), dir}
		opts.UseCurrentDir = false

		assert.Equal(t, filepath.Join(dir, "myapp.conf"), DiscoverFile(opts, nil))

		// Earlier extensions win within a directory
		require.NoError(t, os.WriteFile(filepath.Join(dir, "myapp.ini"), []byte("[app]\ntest=ini\n"), 0644))
		assert.Equal(t, filepath.Join(dir, "myapp.ini"), DiscoverFile(opts, nil))
	})

	t.Run("DiscoveryInXDGHome", func(t *testing.T) {
		isolate(t)
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		require.NoError(t, os.MkdirAll(filepath.Join(home, "myapp"), 0755))
		path := filepath.Join(home, "myapp", "myapp.cfg")
		require.NoError(t, os.WriteFile(path, []byte("[app]\ntest=xdg\n"), 0644))

		opts := DefaultDiscoveryOptions("myapp")
		opts.UseCurrentDir = false
		assert.Equal(t, path, DiscoverFile(opts, nil))
	})

	t.Run("NothingFound", func(t *testing.T) {
		isolate(t)
		opts := DefaultDiscoveryOptions("myapp")
		opts.UseCurrentDir = false
		assert.Equal(t, "", DiscoverFile(opts, nil))

		b := NewBuilder().WithArgs(nil).WithFile("fallback.ini").WithFileDiscovery(opts)
		assert.Equal(t, "fallback.ini", b.file)
	})

	t.Run("XDGPaths", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/u")
		t.Setenv("XDG_CONFIG_DIRS", "")
		assert.Equal(t, []string{"/home/u/.config/myapp", "/etc/xdg/myapp", "/etc/myapp"}, getXDGConfigPaths("myapp"))

		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		t.Setenv("XDG_CONFIG_DIRS", "/d1"+string(os.PathListSeparator)+"/d2")
		assert.Equal(t, []string{"/xdg/myapp", "/d1/myapp", "/d2/myapp"}, getXDGConfigPaths("myapp"))
	})
}
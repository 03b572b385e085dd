// File: lixenwraith/ini/doc.go

// Package ini reads and writes application settings stored in a
// human-editable, INI-like text file: named sections of keys, where a key may
// hold one or many ordered string values, with typed accessors for integers,
// floats and booleans layered over the string form.
//
// Features:
//   - Ordered sections and keys, preserved through load, edit and save
//   - Multi-valued keys written as repeated "key=value" lines
//   - Typed accessors with default-on-failure reads and a fixed, locale-independent format
//   - Lenient parsing: malformed lines are skipped, never fatal
//   - Atomic saves through a temporary file
//   - Conversion to and from TOML, JSON and YAML
//   - Struct mapping with `ini` tags (Scan, SetStruct)
//   - Builder with defaults, command-line overrides and file discovery
//
// File format:
//
//	; comment
//	# comment
//	[gui]
//	language=en
//
//	[mp3]
//	rating_conversion=0
//	rating_conversion=1
//
// Quick Start:
//
//	doc, err := ini.Load("settings.ini")
//	if errors.Is(err, ini.ErrNotFound) {
//	    doc = ini.New()
//	} else if err != nil {
//	    log.Fatal(err)
//	}
//
//	lang := doc.Value("gui", "language", "en")
//	volume := doc.Int("audio", "volume", 80)
//	doc.SetBool("gui", "maximized", true)
//
//	if err := doc.Save("settings.ini"); err != nil {
//	    log.Fatal(err)
//	}
//
// Thread Safety:
// A Document has no internal locking. Confine it to one goroutine or guard
// it with a mutex. Nothing guards the file between Load and Save, so changes
// made to it by another process in between are overwritten.
package ini

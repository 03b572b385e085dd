// Package main hosts the inictl command, a small editor for INI settings
// files built on the ini package.
//
// Every subcommand takes the settings file as its first argument. Commands
// that modify the file (set, unset, fmt --write) rewrite it atomically in the
// canonical layout, so comments and blank lines in hand-edited files are not
// preserved. Conversion to and from TOML, JSON and YAML goes through the same
// document model and follows its flattening rules.
//
// Pass --verbose to route the library's debug logging (skipped lines, load
// and save events) to stderr.
package main

// Package ini tokenizes remapd config text into ordered sections of
// ordered key/value entries.
//
// The dialect is deliberately small: `[name]` section headers, `key =
// value` entries split on the first '=', '#' comment lines, and blank
// lines. A line with no '=' becomes an entry with no value (device-id
// sections rely on this). Entry order and line numbers are preserved;
// all interpretation of keys and values happens downstream in the
// compiler.
package ini

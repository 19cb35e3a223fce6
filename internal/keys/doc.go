// Package keys provides the physical keycode name table and the small
// parsers built on it: key sequences (`modifier+...+key`) and modifier
// set specs (`C-M-S` style).
//
// Keycodes follow the Linux input-event numbering. Each table entry has a
// primary name, an optional alternate name, and an optional shifted
// display name. Name lookup matches the primary or alternate name only;
// the shifted name exists solely for literal-text decoding in macros.
package keys

package keys

import (
	"strings"

	"github.com/remapd/remapd/internal/ir"
)

// ParseKeySequence parses `[modifier+...+]keyname` into a keycode and a
// modifier bitmask. Modifiers are referenced by canonical name (control,
// shift, meta, alt, altgr) or single-letter flag. Returns ok=false when
// the text is not a key sequence at all.
func ParseKeySequence(s string) (ir.Keycode, ir.Modifiers, bool) {
	if s == "" {
		return 0, 0, false
	}

	parts := strings.Split(s, "+")

	var mods ir.Modifiers
	for _, part := range parts[:len(parts)-1] {
		bit, ok := modifierName(part)
		if !ok {
			return 0, 0, false
		}
		mods |= bit
	}

	code, ok := Lookup(parts[len(parts)-1])
	if !ok {
		return 0, 0, false
	}
	return code, mods, true
}

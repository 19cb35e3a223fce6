package keys

import (
	"strings"

	"github.com/remapd/remapd/internal/ir"
)

// ModEntry describes one standard modifier: its canonical layer name,
// the single-letter flag used in modifier set specs, its bitmask bit,
// and the two physical keycodes conventionally bound to it.
type ModEntry struct {
	Name   string
	Letter byte
	Bit    ir.Modifiers
	Codes  [2]ir.Keycode
}

// ModifierTable lists the five standard modifiers in seeding order.
var ModifierTable = []ModEntry{
	{Name: "control", Letter: 'C', Bit: ir.ModCtrl, Codes: [2]ir.Keycode{29, 97}},
	{Name: "meta", Letter: 'M', Bit: ir.ModMeta, Codes: [2]ir.Keycode{125, 126}},
	{Name: "shift", Letter: 'S', Bit: ir.ModShift, Codes: [2]ir.Keycode{42, 54}},
	{Name: "altgr", Letter: 'G', Bit: ir.ModAltGr, Codes: [2]ir.Keycode{100, 100}},
	{Name: "alt", Letter: 'A', Bit: ir.ModAlt, Codes: [2]ir.Keycode{56, 56}},
}

// ParseModSet parses a modifier set spec: single-letter flags joined by
// '-', e.g. "C", "C-S", "M-A-G".
func ParseModSet(s string) (ir.Modifiers, bool) {
	if s == "" {
		return 0, false
	}

	var mods ir.Modifiers
	for _, part := range strings.Split(s, "-") {
		if len(part) != 1 {
			return 0, false
		}
		bit, ok := letterBit(part[0])
		if !ok {
			return 0, false
		}
		mods |= bit
	}
	return mods, true
}

// FormatModSet renders a modifier bitmask in modifier set spec form,
// e.g. "C-S". Empty for a zero mask.
func FormatModSet(mods ir.Modifiers) string {
	var b strings.Builder
	for _, m := range ModifierTable {
		if mods&m.Bit == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteByte(m.Letter)
	}
	return b.String()
}

// ModifierForCode reports the modifier bit a physical keycode is
// conventionally bound to, if any.
func ModifierForCode(code ir.Keycode) (ir.Modifiers, bool) {
	for _, m := range ModifierTable {
		if m.Codes[0] == code || m.Codes[1] == code {
			return m.Bit, true
		}
	}
	return 0, false
}

func letterBit(c byte) (ir.Modifiers, bool) {
	for _, m := range ModifierTable {
		if m.Letter == c {
			return m.Bit, true
		}
	}
	return 0, false
}

// modifierName resolves a modifier reference inside a key sequence:
// either the canonical name or its single-letter flag.
func modifierName(s string) (ir.Modifiers, bool) {
	for _, m := range ModifierTable {
		if s == m.Name {
			return m.Bit, true
		}
	}
	if len(s) == 1 {
		return letterBit(s[0])
	}
	return 0, false
}

package keys

import "github.com/remapd/remapd/internal/ir"

type entry struct {
	name    string
	alt     string
	shifted string
}

// table maps Linux input-event keycodes to names. Code 0 is reserved
// (no key); unnamed slots cannot be referenced from a config.
var table = [ir.NumKeycodes]entry{
	1:  {name: "esc", alt: "escape"},
	2:  {name: "1", shifted: "!"},
	3:  {name: "2", shifted: "@"},
	4:  {name: "3", shifted: "#"},
	5:  {name: "4", shifted: "$"},
	6:  {name: "5", shifted: "%"},
	7:  {name: "6", shifted: "^"},
	8:  {name: "7", shifted: "&"},
	9:  {name: "8", shifted: "*"},
	10: {name: "9", shifted: "("},
	11: {name: "0", shifted: ")"},
	12: {name: "-", alt: "minus", shifted: "_"},
	13: {name: "=", alt: "equal", shifted: "+"},
	14: {name: "backspace"},
	15: {name: "tab"},
	16: {name: "q", shifted: "Q"},
	17: {name: "w", shifted: "W"},
	18: {name: "e", shifted: "E"},
	19: {name: "r", shifted: "R"},
	20: {name: "t", shifted: "T"},
	21: {name: "y", shifted: "Y"},
	22: {name: "u", shifted: "U"},
	23: {name: "i", shifted: "I"},
	24: {name: "o", shifted: "O"},
	25: {name: "p", shifted: "P"},
	26: {name: "[", alt: "leftbrace", shifted: "{"},
	27: {name: "]", alt: "rightbrace", shifted: "}"},
	28: {name: "enter", alt: "return"},
	29: {name: "leftcontrol", alt: "leftctrl"},
	30: {name: "a", shifted: "A"},
	31: {name: "s", shifted: "S"},
	32: {name: "d", shifted: "D"},
	33: {name: "f", shifted: "F"},
	34: {name: "g", shifted: "G"},
	35: {name: "h", shifted: "H"},
	36: {name: "j", shifted: "J"},
	37: {name: "k", shifted: "K"},
	38: {name: "l", shifted: "L"},
	39: {name: ";", alt: "semicolon", shifted: ":"},
	40: {name: "'", alt: "apostrophe", shifted: "\""},
	41: {name: "`", alt: "grave", shifted: "~"},
	42: {name: "leftshift"},
	43: {name: "\\", alt: "backslash", shifted: "|"},
	44: {name: "z", shifted: "Z"},
	45: {name: "x", shifted: "X"},
	46: {name: "c", shifted: "C"},
	47: {name: "v", shifted: "V"},
	48: {name: "b", shifted: "B"},
	49: {name: "n", shifted: "N"},
	50: {name: "m", shifted: "M"},
	51: {name: ",", alt: "comma", shifted: "<"},
	52: {name: ".", alt: "dot", shifted: ">"},
	53: {name: "/", alt: "slash", shifted: "?"},
	54: {name: "rightshift"},
	55: {name: "kpasterisk"},
	56: {name: "leftalt"},
	57: {name: "space"},
	58: {name: "capslock"},
	59: {name: "f1"},
	60: {name: "f2"},
	61: {name: "f3"},
	62: {name: "f4"},
	63: {name: "f5"},
	64: {name: "f6"},
	65: {name: "f7"},
	66: {name: "f8"},
	67: {name: "f9"},
	68: {name: "f10"},
	69: {name: "numlock"},
	70: {name: "scrolllock"},
	71: {name: "kp7"},
	72: {name: "kp8"},
	73: {name: "kp9"},
	74: {name: "kpminus"},
	75: {name: "kp4"},
	76: {name: "kp5"},
	77: {name: "kp6"},
	78: {name: "kpplus"},
	79: {name: "kp1"},
	80: {name: "kp2"},
	81: {name: "kp3"},
	82: {name: "kp0"},
	83: {name: "kpdot"},
	87: {name: "f11"},
	88: {name: "f12"},

	96:  {name: "kpenter"},
	97:  {name: "rightcontrol", alt: "rightctrl"},
	98:  {name: "kpslash"},
	99:  {name: "sysrq", alt: "printscreen"},
	100: {name: "rightalt"},
	102: {name: "home"},
	103: {name: "up"},
	104: {name: "pageup"},
	105: {name: "left"},
	106: {name: "right"},
	107: {name: "end"},
	108: {name: "down"},
	109: {name: "pagedown"},
	110: {name: "insert"},
	111: {name: "delete"},
	113: {name: "mute"},
	114: {name: "volumedown"},
	115: {name: "volumeup"},
	116: {name: "power"},
	117: {name: "kpequal"},
	119: {name: "pause"},
	121: {name: "kpcomma"},
	125: {name: "leftmeta"},
	126: {name: "rightmeta"},
	127: {name: "compose", alt: "menu"},
}

// Lookup resolves a key name to its keycode, matching the primary or
// alternate name.
func Lookup(name string) (ir.Keycode, bool) {
	if name == "" {
		return 0, false
	}
	for code := 1; code < len(table); code++ {
		ent := &table[code]
		if ent.name == "" {
			continue
		}
		if ent.name == name || (ent.alt != "" && ent.alt == name) {
			return ir.Keycode(code), true
		}
	}
	return 0, false
}

// Name returns the primary name of a keycode, or "" if the code is
// unnamed.
func Name(code ir.Keycode) string {
	return table[code].name
}

// LookupChar resolves a single ASCII character against the table's
// single-character primary names and shifted display names. A shifted
// match carries ModShift. This is the literal-text decoding path for
// macros; ordinary name lookup never consults shifted names.
func LookupChar(ch byte) (ir.Keycode, ir.Modifiers, bool) {
	for code := 1; code < len(table); code++ {
		ent := &table[code]
		if len(ent.name) == 1 && ent.name[0] == ch {
			return ir.Keycode(code), 0, true
		}
		if len(ent.shifted) == 1 && ent.shifted[0] == ch {
			return ir.Keycode(code), ir.ModShift, true
		}
	}
	return 0, 0, false
}

package compiler

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/remapd/remapd/internal/compose"
	"github.com/remapd/remapd/internal/ini"
	"github.com/remapd/remapd/internal/ir"
	"github.com/remapd/remapd/internal/keys"
)

// errNotMacro marks text that is not recognizable as a macro expression
// at all. parseDescriptor relies on it to fall through to action-table
// dispatch; every other macro error is fatal.
var errNotMacro = errors.New("not a macro expression")

const macroPrefix = "macro("

// compileMacro compiles a macro expression into an ordered event
// sequence. The expression is either wrapped as `macro(...)` or bare; a
// bare expression must parse as a single key sequence or decode as
// exactly one literal character, otherwise it is not a macro.
func (c *Compiler) compileMacro(s string) (ir.Macro, error) {
	if len(s) >= ir.MaxMacroExprLen {
		return ir.Macro{}, newError(ErrCodeCapacity, "max macro expression length (%d) exceeded", ir.MaxMacroExprLen)
	}

	body := s
	if strings.HasPrefix(s, macroPrefix) && strings.HasSuffix(s, ")") {
		body = s[len(macroPrefix) : len(s)-1]
	} else {
		_, _, isSequence := keys.ParseKeySequence(s)
		if !isSequence && utf8.RuneCountInString(s) != 1 {
			return ir.Macro{}, errNotMacro
		}
	}

	body = ini.Unescape(body)

	var macro ir.Macro
	for _, tok := range strings.Fields(body) {
		if err := c.compileMacroToken(&macro, tok); err != nil {
			return ir.Macro{}, err
		}
	}
	return macro, nil
}

// compileMacroToken classifies one whitespace-delimited token. Ordered
// disjunction, first match wins:
//
//  1. key sequence        -> one KeySequence entry
//  2. contains '+'        -> chord: Hold/Timeout entries, then Release
//  3. integer + "ms"      -> one Timeout entry
//  4. otherwise           -> literal text, decoded per code point
func (c *Compiler) compileMacroToken(macro *ir.Macro, tok string) error {
	if code, mods, ok := keys.ParseKeySequence(tok); ok {
		return appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroKey, Code: code, Mods: mods})
	}

	if strings.Contains(tok, "+") {
		return c.compileChord(macro, tok)
	}

	if ms, ok := timeoutToken(tok); ok {
		return appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroTimeout, Duration: ms})
	}

	return c.compileLiteral(macro, tok)
}

// compileChord emits Hold entries (press order preserved) and inline
// Timeout entries for each `+`-separated part, then a single Release
// that drops everything the chord held.
func (c *Compiler) compileChord(macro *ir.Macro, tok string) error {
	for _, part := range strings.Split(tok, "+") {
		if part == "" {
			continue
		}

		if ms, ok := timeoutToken(part); ok {
			if err := appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroTimeout, Duration: ms}); err != nil {
				return err
			}
			continue
		}

		code, _, ok := keys.ParseKeySequence(part)
		if !ok {
			return newError(ErrCodeBadMacro, "%s is not a valid key", part)
		}
		if err := appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroHold, Code: code}); err != nil {
			return err
		}
	}

	return appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroRelease})
}

// compileLiteral decodes a token as Unicode code points. Single-byte
// ASCII goes through the keycode table's literal lookup (shifted names
// carry ModShift); everything else tries the compose table. Unresolved
// code points are silently skipped.
func (c *Compiler) compileLiteral(macro *ir.Macro, tok string) error {
	for _, r := range tok {
		if r < utf8.RuneSelf {
			if code, mods, ok := keys.LookupChar(byte(r)); ok {
				if err := appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroKey, Code: code, Mods: mods}); err != nil {
					return err
				}
			}
			continue
		}

		if idx, ok := compose.Lookup(r); ok {
			if err := appendMacroEntry(macro, ir.MacroEntry{Kind: ir.MacroUnicode, Compose: idx}); err != nil {
				return err
			}
		}
	}
	return nil
}

// timeoutToken recognizes an `ms`-suffixed integer. The numeric part is
// parsed leniently like every other integer in the config language.
func timeoutToken(s string) (ir.Milliseconds, bool) {
	if len(s) < 2 || !strings.HasSuffix(s, "ms") {
		return 0, false
	}
	return ir.Milliseconds(lenientInt(s[:len(s)-2])), true
}

func appendMacroEntry(macro *ir.Macro, ent ir.MacroEntry) error {
	if len(macro.Entries) >= ir.MaxMacroEntries {
		return newError(ErrCodeCapacity, "maximum macro size (%d) exceeded", ir.MaxMacroEntries)
	}
	macro.Entries = append(macro.Entries, ent)
	return nil
}

package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remapd/remapd/internal/ir"
)

func TestCompileMacroTimeoutToken(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(200ms)")
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, ir.MacroEntry{Kind: ir.MacroTimeout, Duration: 200}, m.Entries[0])
}

func TestCompileMacroChord(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(a+b)")
	require.NoError(t, err)
	assert.Equal(t, []ir.MacroEntry{
		{Kind: ir.MacroHold, Code: 30},
		{Kind: ir.MacroHold, Code: 48},
		{Kind: ir.MacroRelease},
	}, m.Entries)
}

func TestCompileMacroChordWithInlineTimeout(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(a+100ms+b)")
	require.NoError(t, err)
	assert.Equal(t, []ir.MacroEntry{
		{Kind: ir.MacroHold, Code: 30},
		{Kind: ir.MacroTimeout, Duration: 100},
		{Kind: ir.MacroHold, Code: 48},
		{Kind: ir.MacroRelease},
	}, m.Entries)
}

func TestCompileMacroChordEmptyPartsSkipped(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(a++b)")
	require.NoError(t, err)
	assert.Len(t, m.Entries, 3)
}

func TestCompileMacroChordInvalidKeyIsFatal(t *testing.T) {
	c := newTestCompiler()

	_, err := c.compileMacro("macro(a+bogus)")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeBadMacro, cerr.Code)
	assert.Contains(t, cerr.Message, "bogus")
}

func TestCompileMacroMixedTokens(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(C+c 100ms v)")
	require.NoError(t, err)
	assert.Equal(t, []ir.MacroEntry{
		{Kind: ir.MacroKey, Code: 46, Mods: ir.ModCtrl},
		{Kind: ir.MacroTimeout, Duration: 100},
		{Kind: ir.MacroKey, Code: 47},
	}, m.Entries)
}

func TestCompileMacroLiteralText(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(Hi!)")
	require.NoError(t, err)
	assert.Equal(t, []ir.MacroEntry{
		{Kind: ir.MacroKey, Code: 35, Mods: ir.ModShift},
		{Kind: ir.MacroKey, Code: 23},
		{Kind: ir.MacroKey, Code: 2, Mods: ir.ModShift},
	}, m.Entries)
}

func TestCompileMacroUnicodeLiteral(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("macro(¡)")
	require.NoError(t, err)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, ir.MacroEntry{Kind: ir.MacroUnicode, Compose: 0}, m.Entries[0])
}

func TestCompileMacroBareKeySequence(t *testing.T) {
	c := newTestCompiler()

	m, err := c.compileMacro("C+a")
	require.NoError(t, err)
	assert.Equal(t, []ir.MacroEntry{
		{Kind: ir.MacroKey, Code: 30, Mods: ir.ModCtrl},
	}, m.Entries)
}

func TestCompileMacroNotAMacro(t *testing.T) {
	c := newTestCompiler()

	for _, s := range []string{"notamacro", "swap(nav)", "hello world"} {
		_, err := c.compileMacro(s)
		assert.ErrorIs(t, err, errNotMacro, s)
	}
}

func TestCompileMacroExpressionLengthCap(t *testing.T) {
	c := newTestCompiler()

	_, err := c.compileMacro("macro(" + strings.Repeat("a", ir.MaxMacroExprLen) + ")")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeCapacity, cerr.Code)
}

func TestCompileMacroEntryCap(t *testing.T) {
	c := newTestCompiler()

	_, err := c.compileMacro("macro(" + strings.Repeat("a ", ir.MaxMacroEntries+1) + ")")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeCapacity, cerr.Code)
}

func TestCompileMacroEscapedWhitespace(t *testing.T) {
	// \t and \n unescape to control characters, which split as token
	// boundaries like any other whitespace.
	c := newTestCompiler()

	m, err := c.compileMacro(`macro(a\nb)`)
	require.NoError(t, err)
	assert.Equal(t, []ir.MacroEntry{
		{Kind: ir.MacroKey, Code: 30},
		{Kind: ir.MacroKey, Code: 48},
	}, m.Entries)
}

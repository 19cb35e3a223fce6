package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remapd/remapd/internal/ir"
)

func writeConf(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestReadFileBasic(t *testing.T) {
	c := newTestCompiler()
	dir := t.TempDir()
	path := writeConf(t, dir, "default.conf", "[main]\ncapslock = esc")

	text, err := c.readFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[main]\ncapslock = esc\n", text)
}

func TestReadFileMissing(t *testing.T) {
	c := newTestCompiler()

	_, err := c.readFile(filepath.Join(t.TempDir(), "absent.conf"))

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeFileRead, cerr.Code)
}

func TestReadFileIncludeAdjacent(t *testing.T) {
	c := newTestCompiler()
	dir := t.TempDir()
	writeConf(t, dir, "common", "[nav]\nh = left\n")
	path := writeConf(t, dir, "default.conf", "include common\n[main]\na = b\n")

	text, err := c.readFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "[nav]\nh = left\n")
	assert.Contains(t, text, "[main]\na = b\n")
	assert.Empty(t, c.diags)
}

func TestReadFileIncludeShareDir(t *testing.T) {
	c := newTestCompiler()
	share := t.TempDir()
	writeConf(t, share, "common", "[nav]\nh = left\n")
	c.ShareDir = share

	path := writeConf(t, t.TempDir(), "default.conf", "include common\n")

	text, err := c.readFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "[nav]")
}

func TestReadFileIncludeSingleLevel(t *testing.T) {
	// Included content is spliced verbatim; include lines inside it are
	// not expanded again.
	c := newTestCompiler()
	dir := t.TempDir()
	writeConf(t, dir, "inner", "[nav]\n")
	writeConf(t, dir, "outer", "include inner\n")
	path := writeConf(t, dir, "default.conf", "include outer\n")

	text, err := c.readFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "include inner")
	assert.NotContains(t, text, "[nav]")
}

func TestReadFileIncludeRejectsDottedPath(t *testing.T) {
	// A dotted include argument never resolves, even when the file
	// exists.
	c := newTestCompiler()
	dir := t.TempDir()
	writeConf(t, dir, "extra.conf", "[nav]\n")
	path := writeConf(t, dir, "default.conf", "include extra.conf\n")

	text, err := c.readFile(path)
	require.NoError(t, err)
	assert.NotContains(t, text, "[nav]")

	require.Len(t, c.diags, 1)
	assert.Equal(t, SeverityWarning, c.diags[0].Severity)
	assert.Contains(t, c.diags[0].Message, "extra.conf")
}

func TestReadFileIncludeUnresolvedWarns(t *testing.T) {
	c := newTestCompiler()
	dir := t.TempDir()
	c.ShareDir = filepath.Join(dir, "nosuchdir")
	path := writeConf(t, dir, "default.conf", "include missing\n[main]\n")

	text, err := c.readFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "[main]")
	require.Len(t, c.diags, 1)
	assert.Contains(t, c.diags[0].Message, "missing")
}

func TestReadFileLineTooLong(t *testing.T) {
	c := newTestCompiler()
	path := writeConf(t, t.TempDir(), "default.conf", strings.Repeat("x", ir.MaxLineLen)+"\n")

	_, err := c.readFile(path)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeLineTooLong, cerr.Code)
	assert.Equal(t, 1, cerr.Line)
}

func TestReadFileTooLarge(t *testing.T) {
	c := newTestCompiler()
	line := strings.Repeat("x", ir.MaxLineLen-1) + "\n"
	big := strings.Repeat(line, ir.MaxFileSize/ir.MaxLineLen+2)
	path := writeConf(t, t.TempDir(), "default.conf", big)

	_, err := c.readFile(path)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeFileTooLarge, cerr.Code)
}

func TestCompileWithInclude(t *testing.T) {
	c := newTestCompiler()
	dir := t.TempDir()
	writeConf(t, dir, "nav", "[nav]\nh = left\n")
	path := writeConf(t, dir, "default.conf", "include nav\n[main]\ncapslock = layer(nav)\n")

	res, err := c.Compile(path)
	require.NoError(t, err)
	assert.Empty(t, res.Errors())

	nav, ok := res.Config.LayerIndexByName("nav")
	require.True(t, ok)
	assert.Equal(t, ir.MomentaryLayer{Layer: nav}, res.Config.Layers[0].Keymap[58])
	assert.Equal(t, path, res.Config.Path)
}

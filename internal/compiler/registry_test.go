package compiler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remapd/remapd/internal/ir"
)

func TestNewConfigSeedsStandardLayers(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	require.Len(t, cfg.Layers, 6)
	names := make([]string, len(cfg.Layers))
	for i, l := range cfg.Layers {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"main", "control", "meta", "shift", "altgr", "alt"}, names)

	assert.Equal(t, ir.ModCtrl, cfg.Layers[1].Mods)
	assert.Equal(t, ir.ModMeta, cfg.Layers[2].Mods)
	assert.Equal(t, ir.ModShift, cfg.Layers[3].Mods)
	assert.Equal(t, ir.ModAltGr, cfg.Layers[4].Mods)
	assert.Equal(t, ir.ModAlt, cfg.Layers[5].Mods)
}

func TestNewConfigPreBindsModifierKeys(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	// Both control keys activate the control layer while held.
	assert.Equal(t, ir.MomentaryLayer{Layer: 1}, cfg.Layers[0].Keymap[29])
	assert.Equal(t, ir.MomentaryLayer{Layer: 1}, cfg.Layers[0].Keymap[97])
	assert.Equal(t, ir.MomentaryLayer{Layer: 3}, cfg.Layers[0].Keymap[42])
	assert.Equal(t, ir.MomentaryLayer{Layer: 3}, cfg.Layers[0].Keymap[54])

	assert.Equal(t, "control", cfg.Aliases[29])
	assert.Equal(t, "control", cfg.Aliases[97])
	assert.Equal(t, "meta", cfg.Aliases[125])
	assert.Equal(t, "alt", cfg.Aliases[56])
}

func TestNewConfigDefaults(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	assert.Equal(t, ir.Milliseconds(600), cfg.MacroTimeout)
	assert.Equal(t, ir.Milliseconds(50), cfg.MacroRepeatTimeout)
	assert.Equal(t, ir.Milliseconds(0), cfg.MacroSequenceTimeout)
	assert.Equal(t, "test.conf", cfg.Path)

	_, err := uuid.Parse(cfg.ID)
	assert.NoError(t, err)
}

func TestAddLayerIdempotent(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	require.NoError(t, c.addLayer(cfg, "nav", 0))
	require.NoError(t, c.addLayer(cfg, "nav", 0))
	require.NoError(t, c.addLayer(cfg, "nav:C", 0))
	assert.Len(t, cfg.Layers, 7)
}

func TestAddLayerModifierType(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	require.NoError(t, c.addLayer(cfg, "nav:C-M", 0))
	idx, ok := cfg.LayerIndexByName("nav")
	require.True(t, ok)
	assert.Equal(t, ir.LayerNormal, cfg.Layers[idx].Type)
	assert.Equal(t, ir.ModCtrl|ir.ModMeta, cfg.Layers[idx].Mods)
}

func TestAddLayerUnknownTypeWarns(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	require.NoError(t, c.addLayer(cfg, "nav:Q", 7))
	idx, ok := cfg.LayerIndexByName("nav")
	require.True(t, ok)
	assert.Equal(t, ir.LayerNormal, cfg.Layers[idx].Type)
	assert.Equal(t, ir.Modifiers(0), cfg.Layers[idx].Mods)

	require.Len(t, c.diags, 1)
	assert.Equal(t, SeverityWarning, c.diags[0].Severity)
	assert.Equal(t, 7, c.diags[0].Line)
}

func TestAddLayerComposite(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")
	require.NoError(t, c.addLayer(cfg, "nav", 0))

	require.NoError(t, c.addLayer(cfg, "control+nav", 0))
	idx, ok := cfg.LayerIndexByName("control+nav")
	require.True(t, ok)
	assert.Equal(t, ir.LayerComposite, cfg.Layers[idx].Type)
	assert.Equal(t, []ir.LayerIndex{1, 6}, cfg.Layers[idx].Constituents)
}

func TestAddLayerCompositeUnknownConstituent(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	err := c.addLayer(cfg, "control+nav", 0)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeUnknownLayer, cerr.Code)
	assert.Len(t, cfg.Layers, 6)
}

func TestAddLayerCompositeRejectsType(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")
	require.NoError(t, c.addLayer(cfg, "nav", 0))

	err := c.addLayer(cfg, "control+nav:C", 0)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeCompositeType, cerr.Code)
}

func TestAddLayerCap(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	for i := len(cfg.Layers); i < ir.MaxLayers; i++ {
		require.NoError(t, c.addLayer(cfg, fmt.Sprintf("l%d", i), 0))
	}

	err := c.addLayer(cfg, "overflow", 0)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeCapacity, cerr.Code)
	assert.Len(t, cfg.Layers, ir.MaxLayers)
}

func TestAddLayerNameLengthCap(t *testing.T) {
	c := newTestCompiler()
	cfg := c.newConfig("test.conf")

	err := c.addLayer(cfg, strings.Repeat("x", ir.MaxLayerNameLen+1), 0)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrCodeCapacity, cerr.Code)
}

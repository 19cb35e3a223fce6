package compiler

import (
	"strings"

	"github.com/google/uuid"

	"github.com/remapd/remapd/internal/ir"
	"github.com/remapd/remapd/internal/keys"
)

// Default global tunables, in ms.
const (
	defaultMacroTimeout       = 600
	defaultMacroRepeatTimeout = 50
)

// newConfig builds the seeded Config every compile starts from: the main
// layer, one layer per standard modifier, the conventional modifier keys
// pre-bound in main to their layers, and each of those keys aliased to
// the modifier's canonical name. User entries in main override the
// pre-bindings.
func (c *Compiler) newConfig(path string) *ir.Config {
	cfg := &ir.Config{
		ID:                 uuid.NewString(),
		Path:               path,
		MacroTimeout:       defaultMacroTimeout,
		MacroRepeatTimeout: defaultMacroRepeatTimeout,
	}

	c.addLayer(cfg, "main", 0)
	for _, mod := range keys.ModifierTable {
		c.addLayer(cfg, mod.Name+":"+string(mod.Letter), 0)
	}

	for _, mod := range keys.ModifierTable {
		idx, ok := cfg.LayerIndexByName(mod.Name)
		if !ok {
			continue
		}
		for _, code := range mod.Codes {
			cfg.Layers[0].Keymap[code] = ir.MomentaryLayer{Layer: idx}
			cfg.Aliases[code] = mod.Name
		}
	}

	return cfg
}

// addLayer registers a layer by its declaration spec: `name`,
// `name:type`, or the composite form `a+b+c`. Adding an existing name is
// an idempotent no-op so a layer may be referenced before its body
// section appears. line is used for advisory diagnostics, zero when
// unknown.
func (c *Compiler) addLayer(cfg *ir.Config, spec string, line int) error {
	name, _, _ := strings.Cut(spec, ":")

	if _, ok := cfg.LayerIndexByName(name); ok {
		return nil
	}

	if len(cfg.Layers) >= ir.MaxLayers {
		return newError(ErrCodeCapacity, "max layers (%d) exceeded", ir.MaxLayers)
	}

	layer, err := c.buildLayer(cfg, spec, line)
	if err != nil {
		return err
	}

	cfg.Layers = append(cfg.Layers, layer)
	return nil
}

func (c *Compiler) buildLayer(cfg *ir.Config, spec string, line int) (ir.Layer, error) {
	name, typ, hasType := strings.Cut(spec, ":")

	if len(name) > ir.MaxLayerNameLen {
		return ir.Layer{}, newError(ErrCodeCapacity, "max layer name length (%d) exceeded", ir.MaxLayerNameLen)
	}

	layer := ir.Layer{Name: name}

	switch {
	case strings.Contains(name, "+"):
		layer.Type = ir.LayerComposite
		if hasType {
			return ir.Layer{}, newError(ErrCodeCompositeType, "composite layers cannot have a type")
		}
		for _, constituent := range strings.Split(name, "+") {
			idx, ok := cfg.LayerIndexByName(constituent)
			if !ok {
				return ir.Layer{}, newError(ErrCodeUnknownLayer, "%s is not a valid layer", constituent)
			}
			if len(layer.Constituents) >= ir.MaxCompositeLayers {
				return ir.Layer{}, newError(ErrCodeCapacity, "max composite layers (%d) exceeded", ir.MaxCompositeLayers)
			}
			layer.Constituents = append(layer.Constituents, idx)
		}

	case hasType && typ == "layout":
		layer.Type = ir.LayerLayout

	case hasType:
		if mods, ok := keys.ParseModSet(typ); ok {
			layer.Type = ir.LayerNormal
			layer.Mods = mods
		} else {
			c.warnf(line, "%q is not a valid layer type, ignoring", typ)
			layer.Type = ir.LayerNormal
		}

	default:
		layer.Type = ir.LayerNormal
	}

	return layer, nil
}

package compiler

import (
	"strconv"
	"strings"

	"github.com/remapd/remapd/internal/ini"
	"github.com/remapd/remapd/internal/ir"
	"github.com/remapd/remapd/internal/keys"
)

// Section names with dedicated handlers; every other section declares a
// layer.
const (
	sectionIDs     = "ids"
	sectionAliases = "aliases"
	sectionGlobal  = "global"
)

// Result is one finished compile: the immutable Config plus every
// accumulated non-aborting diagnostic.
type Result struct {
	Config      *ir.Config
	Diagnostics []Diagnostic
}

// Errors returns the error-severity diagnostics (bindings that were
// skipped).
func (r *Result) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	return errs
}

// Compile loads, tokenizes, and assembles the config file at path.
func (c *Compiler) Compile(path string) (*Result, error) {
	c.diags = nil

	text, err := c.readFile(path)
	if err != nil {
		return nil, err
	}
	return c.assemble(path, text)
}

// CompileString compiles already-loaded config text. Include directives
// are not expanded; path is used for bookkeeping and messages only.
func (c *Compiler) CompileString(path, text string) (*Result, error) {
	c.diags = nil
	return c.assemble(path, text)
}

// assemble drives two passes over the tokenized sections. Pass 1
// registers every non-special section as a layer (pre-populating the
// namespace so forward references resolve) and dispatches the special
// sections. Pass 2 revisits the layer sections and binds their entries.
func (c *Compiler) assemble(path, text string) (*Result, error) {
	file, err := ini.Parse(text)
	if err != nil {
		return nil, &Error{Code: ErrCodeSyntax, Path: path, Message: err.Error()}
	}

	cfg := c.newConfig(path)

	for i := range file.Sections {
		sec := &file.Sections[i]
		switch sec.Name {
		case sectionIDs:
			c.parseIDSection(cfg, sec)
		case sectionAliases:
			c.parseAliasSection(cfg, sec)
		case sectionGlobal:
			c.parseGlobalSection(cfg, sec)
		default:
			if err := c.addLayer(cfg, sec.Name, sec.Line); err != nil {
				c.reportError(sec.Line, err)
			}
		}
	}

	for i := range file.Sections {
		sec := &file.Sections[i]
		switch sec.Name {
		case sectionIDs, sectionAliases, sectionGlobal:
			continue
		}

		layerName, _, _ := strings.Cut(sec.Name, ":")

		for _, ent := range sec.Entries {
			if !ent.HasValue {
				c.warnf(ent.Line, "invalid binding")
				continue
			}

			exp := layerName + "." + ent.Key + " = " + ent.Value
			if err := c.AddEntry(cfg, exp); err != nil {
				c.reportError(ent.Line, err)
			}
		}
	}

	return &Result{Config: cfg, Diagnostics: c.diags}, nil
}

// AddEntry binds one `[<layer>.]<key> = <expression>` string. The
// layer/key separator is the first '.' before the first '(', so dots
// inside argument lists are never mistaken for it; without a qualifying
// dot the layer defaults to main.
func (c *Compiler) AddEntry(cfg *ir.Config, exp string) error {
	if len(exp) >= ir.MaxExpLen {
		return newError(ErrCodeCapacity, "%s exceeds maximum expression length (%d)", exp, ir.MaxExpLen)
	}

	layerName := "main"
	s := exp

	dot := strings.IndexByte(s, '.')
	paren := strings.IndexByte(s, '(')
	if dot >= 0 && (paren < 0 || dot < paren) {
		layerName = s[:dot]
		s = s[dot+1:]
	}

	key, value := splitKVP(s)

	idx, ok := cfg.LayerIndexByName(layerName)
	if !ok {
		return newError(ErrCodeUnknownLayer, "%s is not a valid layer", layerName)
	}

	d, err := c.parseDescriptor(value, cfg)
	if err != nil {
		return err
	}

	return setLayerEntry(cfg, &cfg.Layers[idx], key, d)
}

// splitKVP splits `key = value` on the first '='; both halves are
// trimmed. A missing '=' yields an empty value, which compiles to an
// unbound slot.
func splitKVP(s string) (key, value string) {
	k, v, found := strings.Cut(s, "=")
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

// setLayerEntry assigns a compiled descriptor to the key's slot. An
// alias match wins over the keycode table and assigns every keycode
// sharing that alias.
func setLayerEntry(cfg *ir.Config, layer *ir.Layer, key string, d ir.Descriptor) error {
	found := false
	if key != "" {
		for code := range cfg.Aliases {
			if cfg.Aliases[code] == key {
				layer.Keymap[code] = d
				found = true
			}
		}
	}
	if found {
		return nil
	}

	code, ok := keys.Lookup(key)
	if !ok {
		return newError(ErrCodeUnknownKey, "%s is not a valid keycode or alias", key)
	}
	layer.Keymap[code] = d
	return nil
}

// parseIDSection handles [ids]: `*` sets the wildcard flag, `-vvvv:pppp`
// excludes a device, `vvvv:pppp` allow-lists one.
func (c *Compiler) parseIDSection(cfg *ir.Config, sec *ini.Section) {
	for _, ent := range sec.Entries {
		s := ent.Key

		if s == "*" {
			cfg.Wildcard = true
			continue
		}

		excluded := strings.HasPrefix(s, "-")
		id, ok := parseDeviceID(strings.TrimPrefix(s, "-"))
		if !ok {
			c.warnf(ent.Line, "%s is not a valid device id", s)
			continue
		}

		if excluded {
			if len(cfg.ExcludedIDs) >= ir.MaxDeviceIDs {
				c.reportError(ent.Line, newError(ErrCodeCapacity, "max excluded device ids (%d) exceeded", ir.MaxDeviceIDs))
				continue
			}
			cfg.ExcludedIDs = append(cfg.ExcludedIDs, id)
		} else {
			if len(cfg.DeviceIDs) >= ir.MaxDeviceIDs {
				c.reportError(ent.Line, newError(ErrCodeCapacity, "max device ids (%d) exceeded", ir.MaxDeviceIDs))
				continue
			}
			cfg.DeviceIDs = append(cfg.DeviceIDs, id)
		}
	}
}

func parseDeviceID(s string) (ir.DeviceID, bool) {
	vendorStr, productStr, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	vendor, err := strconv.ParseUint(vendorStr, 16, 16)
	if err != nil {
		return 0, false
	}
	product, err := strconv.ParseUint(productStr, 16, 16)
	if err != nil {
		return 0, false
	}
	return ir.NewDeviceID(uint16(vendor), uint16(product)), true
}

// parseAliasSection handles [aliases]: each key must name a real
// keycode; the value becomes its alias. When the alias text itself also
// names a keycode, main's default binding for the aliased key is
// additionally rewritten to emit that keycode, so an alias can double as
// a base-layer remap.
func (c *Compiler) parseAliasSection(cfg *ir.Config, sec *ini.Section) {
	for _, ent := range sec.Entries {
		if !ent.HasValue {
			c.warnf(ent.Line, "invalid binding")
			continue
		}

		code, ok := keys.Lookup(ent.Key)
		if !ok {
			c.warnf(ent.Line, "failed to define alias %s: %s is not a valid keycode", ent.Value, ent.Key)
			continue
		}

		if len(ent.Value) >= ir.MaxAliasLen {
			c.warnf(ent.Line, "%s exceeds the maximum alias length (%d)", ent.Value, ir.MaxAliasLen-1)
			continue
		}

		if target, ok := keys.Lookup(ent.Value); ok {
			cfg.Layers[0].Keymap[code] = ir.KeySequence{Code: target}
		}
		cfg.Aliases[code] = ent.Value
	}
}

// parseGlobalSection handles [global]. Numeric options parse leniently;
// unrecognized option names warn with their line.
func (c *Compiler) parseGlobalSection(cfg *ir.Config, sec *ini.Section) {
	for _, ent := range sec.Entries {
		switch ent.Key {
		case "macro_timeout":
			cfg.MacroTimeout = ir.Milliseconds(lenientInt(ent.Value))
		case "macro_sequence_timeout":
			cfg.MacroSequenceTimeout = ir.Milliseconds(lenientInt(ent.Value))
		case "macro_repeat_timeout":
			cfg.MacroRepeatTimeout = ir.Milliseconds(lenientInt(ent.Value))
		case "default_layout":
			cfg.DefaultLayout = ent.Value
		case "layer_indicator":
			cfg.LayerIndicator = ir.Keycode(lenientInt(ent.Value))
		default:
			c.warnf(ent.Line, "%s is not a valid global option", ent.Key)
		}
	}
}

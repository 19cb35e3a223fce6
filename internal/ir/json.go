package ir

import (
	"encoding/json"
	"strconv"
)

// JSON encoding of a compiled Config, used by the CLI's --format json and
// --output paths. Keymaps serialize sparsely (bound slots only, keyed by
// keycode) and actions serialize as op-tagged objects, since the sealed
// Descriptor interface has no natural encoding of its own.

type configJSON struct {
	ID                   string            `json:"id"`
	Path                 string            `json:"path"`
	Layers               []layerJSON       `json:"layers"`
	Aliases              map[string]string `json:"aliases,omitempty"`
	DeviceIDs            []string          `json:"device_ids,omitempty"`
	ExcludedIDs          []string          `json:"excluded_ids,omitempty"`
	Wildcard             bool              `json:"wildcard"`
	Commands             []Command         `json:"commands,omitempty"`
	Macros               []Macro           `json:"macros,omitempty"`
	Descriptors          []any             `json:"descriptors,omitempty"`
	MacroTimeout         Milliseconds      `json:"macro_timeout"`
	MacroSequenceTimeout Milliseconds      `json:"macro_sequence_timeout"`
	MacroRepeatTimeout   Milliseconds      `json:"macro_repeat_timeout"`
	DefaultLayout        string            `json:"default_layout,omitempty"`
	LayerIndicator       Keycode           `json:"layer_indicator,omitempty"`
}

type layerJSON struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Mods         Modifiers      `json:"mods,omitempty"`
	Constituents []LayerIndex   `json:"constituents,omitempty"`
	Keymap       map[string]any `json:"keymap,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c *Config) MarshalJSON() ([]byte, error) {
	out := configJSON{
		ID:                   c.ID,
		Path:                 c.Path,
		Wildcard:             c.Wildcard,
		Commands:             c.Commands,
		Macros:               c.Macros,
		MacroTimeout:         c.MacroTimeout,
		MacroSequenceTimeout: c.MacroSequenceTimeout,
		MacroRepeatTimeout:   c.MacroRepeatTimeout,
		DefaultLayout:        c.DefaultLayout,
		LayerIndicator:       c.LayerIndicator,
	}

	for code, alias := range c.Aliases {
		if alias == "" {
			continue
		}
		if out.Aliases == nil {
			out.Aliases = make(map[string]string)
		}
		out.Aliases[strconv.Itoa(code)] = alias
	}

	for _, id := range c.DeviceIDs {
		out.DeviceIDs = append(out.DeviceIDs, id.String())
	}
	for _, id := range c.ExcludedIDs {
		out.ExcludedIDs = append(out.ExcludedIDs, id.String())
	}

	for i := range c.Layers {
		out.Layers = append(out.Layers, encodeLayer(&c.Layers[i]))
	}
	for _, d := range c.Descriptors {
		out.Descriptors = append(out.Descriptors, EncodeAction(d))
	}

	return json.Marshal(out)
}

func encodeLayer(l *Layer) layerJSON {
	out := layerJSON{
		Name:         l.Name,
		Type:         l.Type.String(),
		Mods:         l.Mods,
		Constituents: l.Constituents,
	}
	for code, d := range l.Keymap {
		if d == nil {
			continue
		}
		if out.Keymap == nil {
			out.Keymap = make(map[string]any)
		}
		out.Keymap[strconv.Itoa(code)] = EncodeAction(d)
	}
	return out
}

// EncodeAction converts a Descriptor into a JSON-encodable, op-tagged
// value.
func EncodeAction(d Descriptor) any {
	out := map[string]any{"op": d.Op().String()}

	switch a := d.(type) {
	case KeySequence:
		out["code"] = a.Code
		if a.Mods != 0 {
			out["mods"] = a.Mods
		}
	case CommandRef:
		out["command"] = a.Index
	case MacroRef:
		out["macro"] = a.Index
	case Swap:
		out["layer"] = a.Layer
	case Swap2:
		out["layer"] = a.Layer
		out["macro"] = a.Macro
	case Clear:
	case Oneshot:
		out["layer"] = a.Layer
	case Toggle:
		out["layer"] = a.Layer
	case Toggle2:
		out["layer"] = a.Layer
		out["macro"] = a.Macro
	case MomentaryLayer:
		out["layer"] = a.Layer
	case Overload:
		out["layer"] = a.Layer
		out["action"] = a.Action
	case Timeout:
		out["action"] = a.Action
		out["wait"] = a.Wait
		out["timeout_action"] = a.TimeoutAction
	case Macro2:
		out["timeout"] = a.Timeout
		out["repeat_timeout"] = a.RepeatTimeout
		out["macro"] = a.Macro
	case SetLayout:
		out["layout"] = a.Layout
	}

	return out
}

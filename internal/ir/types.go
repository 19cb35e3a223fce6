package ir

// Keycode is a physical key identifier in the 0-255 input-event range.
type Keycode uint8

// Milliseconds is a timeout duration. Integer parsing for timeouts is
// deliberately lenient: non-numeric text compiles to zero.
type Milliseconds int

// Modifiers is a bitmask of held modifier flags.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModAltGr
	ModShift
	ModMeta
)

// Pool index types. Each index is valid into the pool it names on the
// Config that produced it.
type (
	LayerIndex      int
	LayoutIndex     int
	DescriptorIndex int
	MacroIndex      int
	CommandIndex    int
	ComposeIndex    int
)

// LayerType classifies a layer.
type LayerType int

const (
	// LayerNormal is a modifier-flagged overlay keymap.
	LayerNormal LayerType = iota
	// LayerLayout is a named alternate base keymap. It is only ever
	// referenced as a setlayout target, never toggled as a layer.
	LayerLayout
	// LayerComposite is an ordered union of other layers.
	LayerComposite
)

func (t LayerType) String() string {
	switch t {
	case LayerNormal:
		return "normal"
	case LayerLayout:
		return "layout"
	case LayerComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Layer is one named keymap. A nil Keymap slot means the key is unbound
// in this layer.
type Layer struct {
	Name         string
	Type         LayerType
	Mods         Modifiers    // LayerNormal only
	Constituents []LayerIndex // LayerComposite only, declaration order
	Keymap       [NumKeycodes]Descriptor
}

// MacroEntryKind tags one entry of a macro event sequence.
type MacroEntryKind int

const (
	// MacroKey emits one code+modifiers key tap.
	MacroKey MacroEntryKind = iota
	// MacroHold begins holding a code until the next MacroRelease.
	MacroHold
	// MacroRelease releases every code held so far by this macro.
	MacroRelease
	// MacroTimeout pauses emission for Duration.
	MacroTimeout
	// MacroUnicode emits a compose sequence by table index.
	MacroUnicode
)

func (k MacroEntryKind) String() string {
	switch k {
	case MacroKey:
		return "key"
	case MacroHold:
		return "hold"
	case MacroRelease:
		return "release"
	case MacroTimeout:
		return "timeout"
	case MacroUnicode:
		return "unicode"
	default:
		return "unknown"
	}
}

// MacroEntry is one event of a macro. Entry order reproduces emission
// order at runtime.
type MacroEntry struct {
	Kind     MacroEntryKind `json:"kind"`
	Code     Keycode        `json:"code,omitempty"`
	Mods     Modifiers      `json:"mods,omitempty"`
	Duration Milliseconds   `json:"duration,omitempty"`
	Compose  ComposeIndex   `json:"compose,omitempty"`
}

// Macro is an ordered, capacity-bounded event sequence.
type Macro struct {
	Entries []MacroEntry `json:"entries"`
}

// Command is a pool-resident, escape-decoded shell command.
type Command struct {
	Cmd string `json:"cmd"`
}

// Config is the root compiled value. It is owned exclusively by the
// compiler while being built and immutable once handed to the engine.
type Config struct {
	// ID uniquely identifies this compile. A reload produces a new
	// Config with a new ID; the engine swaps its reference atomically.
	ID string

	// Path is the root config file this was compiled from.
	Path string

	Layers []Layer

	// Aliases maps keycode to alias name; empty means no alias. One
	// alias name may label several physical keys.
	Aliases [NumKeycodes]string

	// Device matching (see MatchDevice).
	DeviceIDs   []DeviceID
	ExcludedIDs []DeviceID
	Wildcard    bool

	// Append-only pools referenced by descriptor indices.
	Commands    []Command
	Macros      []Macro
	Descriptors []Descriptor

	// Global tunables.
	MacroTimeout         Milliseconds
	MacroSequenceTimeout Milliseconds
	MacroRepeatTimeout   Milliseconds
	DefaultLayout        string
	LayerIndicator       Keycode
}

// LayerIndexByName resolves a layer name to its index.
func (c *Config) LayerIndexByName(name string) (LayerIndex, bool) {
	for i := range c.Layers {
		if c.Layers[i].Name == name {
			return LayerIndex(i), true
		}
	}
	return 0, false
}

package ir

// Op identifies a descriptor operation.
type Op int

const (
	OpKeySequence Op = iota
	OpCommand
	OpMacro
	OpSwap
	OpSwap2
	OpClear
	OpOneshot
	OpToggle
	OpToggle2
	OpLayer
	OpOverload
	OpTimeout
	OpMacro2
	OpLayout
)

func (op Op) String() string {
	switch op {
	case OpKeySequence:
		return "keysequence"
	case OpCommand:
		return "command"
	case OpMacro:
		return "macro"
	case OpSwap:
		return "swap"
	case OpSwap2:
		return "swap2"
	case OpClear:
		return "clear"
	case OpOneshot:
		return "oneshot"
	case OpToggle:
		return "toggle"
	case OpToggle2:
		return "toggle2"
	case OpLayer:
		return "layer"
	case OpOverload:
		return "overload"
	case OpTimeout:
		return "timeout"
	case OpMacro2:
		return "macro2"
	case OpLayout:
		return "setlayout"
	default:
		return "unknown"
	}
}

// Descriptor is a compiled action bound to one physical key.
//
// This is a sealed interface: only types in this package implement it.
// Each variant carries exactly the argument types its operation requires,
// so an ill-formed action cannot be represented. Nested descriptors are
// pool indices rather than owning references (arena-with-indices), which
// keeps the stored form flat.
//
// A nil Descriptor in a keymap slot means the key is unbound there.
type Descriptor interface {
	Op() Op
	descriptorNode() // marker method, seals the interface
}

// KeySequence emits a single code with a modifier bitmask.
type KeySequence struct {
	Code Keycode
	Mods Modifiers
}

// CommandRef executes the pooled shell command at Index.
type CommandRef struct {
	Index CommandIndex
}

// MacroRef plays the pooled macro at Index.
type MacroRef struct {
	Index MacroIndex
}

// Swap replaces the active layer with Layer while held.
type Swap struct {
	Layer LayerIndex
}

// Swap2 is Swap plus a macro emitted on activation.
type Swap2 struct {
	Layer LayerIndex
	Macro MacroIndex
}

// Clear deactivates all active layers and oneshots.
type Clear struct{}

// Oneshot activates Layer for the next key press only.
type Oneshot struct {
	Layer LayerIndex
}

// Toggle latches Layer on or off.
type Toggle struct {
	Layer LayerIndex
}

// Toggle2 is Toggle plus a macro emitted on activation.
type Toggle2 struct {
	Layer LayerIndex
	Macro MacroIndex
}

// MomentaryLayer activates Layer while the key is held. This is the
// `layer(...)` action of the config language and the default binding the
// seeded modifier keys get in main.
type MomentaryLayer struct {
	Layer LayerIndex
}

// Overload activates Layer while held, or performs the pooled action on
// tap.
type Overload struct {
	Layer  LayerIndex
	Action DescriptorIndex
}

// Timeout performs Action if the key is released within Wait, otherwise
// TimeoutAction.
type Timeout struct {
	Action        DescriptorIndex
	Wait          Milliseconds
	TimeoutAction DescriptorIndex
}

// Macro2 plays the pooled macro with explicit initial and repeat
// timeouts.
type Macro2 struct {
	Timeout       Milliseconds
	RepeatTimeout Milliseconds
	Macro         MacroIndex
}

// SetLayout switches the base keymap to the layout layer at Layout.
type SetLayout struct {
	Layout LayoutIndex
}

func (KeySequence) Op() Op    { return OpKeySequence }
func (CommandRef) Op() Op     { return OpCommand }
func (MacroRef) Op() Op       { return OpMacro }
func (Swap) Op() Op           { return OpSwap }
func (Swap2) Op() Op          { return OpSwap2 }
func (Clear) Op() Op          { return OpClear }
func (Oneshot) Op() Op        { return OpOneshot }
func (Toggle) Op() Op         { return OpToggle }
func (Toggle2) Op() Op        { return OpToggle2 }
func (MomentaryLayer) Op() Op { return OpLayer }
func (Overload) Op() Op       { return OpOverload }
func (Timeout) Op() Op        { return OpTimeout }
func (Macro2) Op() Op         { return OpMacro2 }
func (SetLayout) Op() Op      { return OpLayout }

func (KeySequence) descriptorNode()    {}
func (CommandRef) descriptorNode()     {}
func (MacroRef) descriptorNode()       {}
func (Swap) descriptorNode()           {}
func (Swap2) descriptorNode()          {}
func (Clear) descriptorNode()          {}
func (Oneshot) descriptorNode()        {}
func (Toggle) descriptorNode()         {}
func (Toggle2) descriptorNode()        {}
func (MomentaryLayer) descriptorNode() {}
func (Overload) descriptorNode()       {}
func (Timeout) descriptorNode()        {}
func (Macro2) descriptorNode()         {}
func (SetLayout) descriptorNode()      {}

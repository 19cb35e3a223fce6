package ir

// Fixed capacities. Exceeding any of these is a named fatal error at
// compile time, never a silent truncation.
const (
	// MaxLayers bounds the layer list, including the six seeded layers.
	MaxLayers = 32

	// MaxDescriptorArgs is the widest argument list in the action table.
	MaxDescriptorArgs = 3

	// MaxCompositeLayers bounds the constituent list of a composite layer.
	MaxCompositeLayers = 8

	// Pool capacities.
	MaxMacros      = 128
	MaxCommands    = 64
	MaxDescriptors = 128

	// MaxDeviceIDs bounds each of the allow and exclude lists.
	MaxDeviceIDs = 64

	// MaxMacroEntries bounds the event sequence of a single macro.
	MaxMacroEntries = 128

	// Text length caps.
	MaxLayerNameLen = 64
	MaxAliasLen     = 32
	MaxCommandLen   = 256
	MaxExpLen       = 512
	MaxMacroExprLen = 1024

	// File loader caps.
	MaxFileSize = 65536
	MaxLineLen  = 256
)

// NumKeycodes is the size of a keymap: one slot per physical keycode.
const NumKeycodes = 256

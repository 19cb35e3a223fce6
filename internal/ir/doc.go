// Package ir provides the compiled, immutable representation of a remapd
// configuration.
//
// This package contains type definitions and read-only queries only. All
// other internal packages import ir; ir imports nothing internal. This
// keeps it the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Actions are a sealed interface with one variant per operation, so
//     illegal argument combinations are unrepresentable.
//   - Nested descriptors, macros and commands live in append-only pools on
//     Config and are referenced by index, never by pointer. Pools never
//     shrink or reorder during a compile, so stored indices stay valid.
//   - A Config is mutated only by the compiler that is building it. Once
//     handed to the engine it is read-only; a reload builds a new Config.
package ir

// Package compiler turns remapd config text into an immutable ir.Config.
//
// The pipeline is a single synchronous pass: the file loader expands
// include directives, the ini tokenizer yields ordered sections, and the
// assembler drives the layer registry and the descriptor compiler over
// them. Nothing here is safe for concurrent use; a Compiler runs one
// compile at a time and the produced Config is immutable from then on.
//
// Errors come in two tiers. Fatal errors (typed *Error values) abort the
// enclosing compile step: a bad root file kills the whole compile, a bad
// expression kills that one binding. Everything else is an advisory
// Diagnostic: logged, accumulated on the Result, and the offending entry
// skipped, so a config with a few bad lines still yields a usable keymap.
package compiler

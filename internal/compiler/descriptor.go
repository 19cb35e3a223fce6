package compiler

import (
	"errors"
	"strings"

	"github.com/remapd/remapd/internal/ini"
	"github.com/remapd/remapd/internal/ir"
	"github.com/remapd/remapd/internal/keys"
)

// parseDescriptor compiles one expression into an action, appending any
// nested descriptors, macros, and commands it produces to cfg's pools.
//
// Classification is an ordered disjunction; first match wins. The order
// is a deliberate disambiguation policy, do not reorder:
//
//  1. empty string        -> unbound slot (nil)
//  2. bare key sequence   -> KeySequence
//  3. command(...)        -> CommandRef
//  4. macro expression    -> MacroRef
//  5. name(args...)       -> action table
//  6. anything else       -> fatal
func (c *Compiler) parseDescriptor(s string, cfg *ir.Config) (ir.Descriptor, error) {
	if s == "" {
		return nil, nil
	}

	if code, mods, ok := keys.ParseKeySequence(s); ok {
		if _, isMod := keys.ModifierForCode(code); isMod {
			c.warnf(0, "mapping modifier keycodes directly may produce unintended results")
		}
		return ir.KeySequence{Code: code, Mods: mods}, nil
	}

	if cmd, ok, err := parseCommand(s); err != nil {
		return nil, err
	} else if ok {
		if len(cfg.Commands) >= ir.MaxCommands {
			return nil, newError(ErrCodeCapacity, "max commands (%d) exceeded", ir.MaxCommands)
		}
		cfg.Commands = append(cfg.Commands, cmd)
		return ir.CommandRef{Index: ir.CommandIndex(len(cfg.Commands) - 1)}, nil
	}

	if macro, err := c.compileMacro(s); err == nil {
		if len(cfg.Macros) >= ir.MaxMacros {
			return nil, newError(ErrCodeCapacity, "max macros (%d) exceeded", ir.MaxMacros)
		}
		cfg.Macros = append(cfg.Macros, macro)
		return ir.MacroRef{Index: ir.MacroIndex(len(cfg.Macros) - 1)}, nil
	} else if !errors.Is(err, errNotMacro) {
		return nil, err
	}

	if name, args, ok := splitArgList(s); ok {
		return c.parseAction(name, args, cfg)
	}

	return nil, newError(ErrCodeBadExpression, "invalid key or action: %s", s)
}

// parseCommand recognizes `command(...)`. ok=false means the expression
// is not command-shaped at all; an error means it is but exceeds the
// command length cap.
func parseCommand(s string) (ir.Command, bool, error) {
	const prefix = "command("

	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return ir.Command{}, false, nil
	}

	body := ini.Unescape(s[len(prefix) : len(s)-1])
	if len(body) > ir.MaxCommandLen {
		return ir.Command{}, false, newError(ErrCodeCapacity, "max command length (%d) exceeded", ir.MaxCommandLen)
	}

	return ir.Command{Cmd: body}, true, nil
}

// splitArgList scans `name(arg1, arg2, ...)` in a single pass: '\'
// escapes exactly the next character (copied through, not a delimiter),
// parenthesis depth is tracked, arguments split on top-level commas
// only, and the list terminates at the top-level closing parenthesis.
// Leading spaces after '(' and after each comma are trimmed; an empty
// parenthesis pair yields zero arguments. ok=false when no balanced
// closing parenthesis is found before end of input.
func splitArgList(s string) (name string, args []string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", nil, false
	}
	name = s[:open]
	rest := s[open+1:]

	i := 0
	for i < len(rest) && rest[i] == ' ' {
		i++
	}
	start := i
	depth := 0

	for i < len(rest) {
		ch := rest[i]

		if ch == '\\' && i+1 < len(rest) {
			i += 2
			continue
		}

		switch ch {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				if start != i {
					args = append(args, rest[start:i])
				}
				return name, args, true
			}
			depth--
		case ',':
			if depth == 0 {
				if start != i {
					args = append(args, rest[start:i])
				}
				i++
				for i < len(rest) && rest[i] == ' ' {
					i++
				}
				start = i
				continue
			}
		}
		i++
	}

	return "", nil, false
}

// parseAction dispatches a `name(args...)` expression against the fixed
// action table. Each case checks arity, resolves its typed arguments in
// order, and constructs the matching variant.
func (c *Compiler) parseAction(name string, args []string, cfg *ir.Config) (ir.Descriptor, error) {
	switch name {
	case "swap":
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		return ir.Swap{Layer: layer}, nil

	case "swap2":
		if err := checkArity(name, args, 2); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		macro, err := c.resolveMacro(cfg, args[1])
		if err != nil {
			return nil, err
		}
		return ir.Swap2{Layer: layer, Macro: macro}, nil

	case "clear":
		if err := checkArity(name, args, 0); err != nil {
			return nil, err
		}
		return ir.Clear{}, nil

	case "oneshot":
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		return ir.Oneshot{Layer: layer}, nil

	case "toggle":
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		return ir.Toggle{Layer: layer}, nil

	case "toggle2":
		if err := checkArity(name, args, 2); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		macro, err := c.resolveMacro(cfg, args[1])
		if err != nil {
			return nil, err
		}
		return ir.Toggle2{Layer: layer, Macro: macro}, nil

	case "layer":
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		return ir.MomentaryLayer{Layer: layer}, nil

	case "overload":
		if err := checkArity(name, args, 2); err != nil {
			return nil, err
		}
		layer, err := resolveLayer(cfg, args[0])
		if err != nil {
			return nil, err
		}
		action, err := c.resolveNested(cfg, args[1])
		if err != nil {
			return nil, err
		}
		return ir.Overload{Layer: layer, Action: action}, nil

	case "timeout":
		if err := checkArity(name, args, 3); err != nil {
			return nil, err
		}
		action, err := c.resolveNested(cfg, args[0])
		if err != nil {
			return nil, err
		}
		wait := ir.Milliseconds(lenientInt(args[1]))
		timeoutAction, err := c.resolveNested(cfg, args[2])
		if err != nil {
			return nil, err
		}
		return ir.Timeout{Action: action, Wait: wait, TimeoutAction: timeoutAction}, nil

	case "macro2":
		if err := checkArity(name, args, 3); err != nil {
			return nil, err
		}
		timeout := ir.Milliseconds(lenientInt(args[0]))
		repeat := ir.Milliseconds(lenientInt(args[1]))
		macro, err := c.resolveMacro(cfg, args[2])
		if err != nil {
			return nil, err
		}
		return ir.Macro2{Timeout: timeout, RepeatTimeout: repeat, Macro: macro}, nil

	case "setlayout":
		if err := checkArity(name, args, 1); err != nil {
			return nil, err
		}
		layout, err := resolveLayout(cfg, args[0])
		if err != nil {
			return nil, err
		}
		return ir.SetLayout{Layout: layout}, nil
	}

	return nil, newError(ErrCodeBadExpression, "invalid key or action: %s", name)
}

func checkArity(name string, args []string, want int) error {
	if len(args) == want {
		return nil
	}
	noun := "arguments"
	if want == 1 {
		noun = "argument"
	}
	return newError(ErrCodeBadArity, "%s requires %d %s", name, want, noun)
}

// resolveLayer resolves a toggle-class layer argument: an existing,
// non-layout layer other than main.
func resolveLayer(cfg *ir.Config, s string) (ir.LayerIndex, error) {
	if s == "main" {
		return 0, newError(ErrCodeMainToggle, "the main layer cannot be toggled")
	}
	idx, ok := cfg.LayerIndexByName(s)
	if !ok || cfg.Layers[idx].Type == ir.LayerLayout {
		return 0, newError(ErrCodeUnknownLayer, "%s is not a valid layer", s)
	}
	return idx, nil
}

// resolveLayout resolves a layout argument: an existing layout-typed
// layer.
func resolveLayout(cfg *ir.Config, s string) (ir.LayoutIndex, error) {
	idx, ok := cfg.LayerIndexByName(s)
	if !ok || cfg.Layers[idx].Type != ir.LayerLayout {
		return 0, newError(ErrCodeUnknownLayout, "%s is not a valid layout", s)
	}
	return ir.LayoutIndex(idx), nil
}

// resolveNested recursively compiles a descriptor argument and appends
// the result to the descriptor pool, returning its index. The stored
// representation stays flat; nesting lives in the indices.
func (c *Compiler) resolveNested(cfg *ir.Config, s string) (ir.DescriptorIndex, error) {
	d, err := c.parseDescriptor(s, cfg)
	if err != nil {
		return 0, err
	}
	if len(cfg.Descriptors) >= ir.MaxDescriptors {
		return 0, newError(ErrCodeCapacity, "max descriptors (%d) exceeded", ir.MaxDescriptors)
	}
	cfg.Descriptors = append(cfg.Descriptors, d)
	return ir.DescriptorIndex(len(cfg.Descriptors) - 1), nil
}

// resolveMacro compiles a macro argument and appends it to the macro
// pool, returning its index. Unlike the classification fall-through in
// parseDescriptor, a macro argument that fails to compile is fatal.
func (c *Compiler) resolveMacro(cfg *ir.Config, s string) (ir.MacroIndex, error) {
	macro, err := c.compileMacro(s)
	if err != nil {
		if errors.Is(err, errNotMacro) {
			return 0, newError(ErrCodeBadMacro, "%s is not a valid macro", s)
		}
		return 0, err
	}
	if len(cfg.Macros) >= ir.MaxMacros {
		return 0, newError(ErrCodeCapacity, "max macros (%d) exceeded", ir.MaxMacros)
	}
	cfg.Macros = append(cfg.Macros, macro)
	return ir.MacroIndex(len(cfg.Macros) - 1), nil
}

package compiler

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// DefaultShareDir is the system-wide fallback directory for include
// resolution.
const DefaultShareDir = "/usr/share/remapd"

// Compiler compiles config files. Zero-value fields are filled with
// defaults by New. A Compiler is not safe for concurrent use; each
// Compile resets the accumulated diagnostics.
type Compiler struct {
	// Log receives advisory warnings and skipped-binding errors.
	Log *slog.Logger

	// ShareDir is the second include-resolution candidate directory.
	ShareDir string

	diags []Diagnostic
}

// New returns a Compiler with default logger and share directory.
func New() *Compiler {
	return &Compiler{
		Log:      slog.Default(),
		ShareDir: DefaultShareDir,
	}
}

func (c *Compiler) warnf(line int, format string, args ...any) {
	d := Diagnostic{Severity: SeverityWarning, Line: line, Message: fmt.Sprintf(format, args...)}
	c.diags = append(c.diags, d)
	c.Log.Warn(d.Message, "line", line)
}

func (c *Compiler) reportError(line int, err error) {
	d := Diagnostic{Severity: SeverityError, Line: line, Message: err.Error()}
	c.diags = append(c.diags, d)
	c.Log.Error(d.Message, "line", line)
}

// lenientInt parses a leading integer the permissive way the config
// language requires: optional sign, leading digits, and zero for
// anything non-numeric. Trailing garbage is ignored, never an error.
func lenientInt(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0
	}
	return n
}

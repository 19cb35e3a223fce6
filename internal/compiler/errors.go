package compiler

import "fmt"

// ErrorCode categorizes fatal compile errors.
type ErrorCode string

const (
	// ErrCodeFileRead indicates the root config file could not be opened
	// or read.
	ErrCodeFileRead ErrorCode = "FILE_READ"

	// ErrCodeLineTooLong indicates a line exceeded ir.MaxLineLen.
	ErrCodeLineTooLong ErrorCode = "LINE_TOO_LONG"

	// ErrCodeFileTooLarge indicates the accumulated text exceeded
	// ir.MaxFileSize.
	ErrCodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"

	// ErrCodeSyntax indicates the section tokenizer rejected the text.
	ErrCodeSyntax ErrorCode = "SYNTAX"

	// ErrCodeCapacity indicates a fixed capacity was exceeded.
	ErrCodeCapacity ErrorCode = "CAPACITY_EXCEEDED"

	// ErrCodeBadArity indicates an action got the wrong argument count.
	ErrCodeBadArity ErrorCode = "BAD_ARITY"

	// ErrCodeUnknownLayer indicates a layer reference did not resolve.
	ErrCodeUnknownLayer ErrorCode = "UNKNOWN_LAYER"

	// ErrCodeUnknownLayout indicates a layout reference did not resolve
	// to a layout-typed layer.
	ErrCodeUnknownLayout ErrorCode = "UNKNOWN_LAYOUT"

	// ErrCodeUnknownKey indicates a key name matched neither an alias
	// nor the keycode table.
	ErrCodeUnknownKey ErrorCode = "UNKNOWN_KEY"

	// ErrCodeMainToggle indicates main was named as a toggle-class
	// action target.
	ErrCodeMainToggle ErrorCode = "MAIN_TOGGLE"

	// ErrCodeCompositeType indicates a composite layer carried a :type
	// suffix.
	ErrCodeCompositeType ErrorCode = "COMPOSITE_TYPE"

	// ErrCodeBadExpression indicates an expression matched no
	// classification rule.
	ErrCodeBadExpression ErrorCode = "BAD_EXPRESSION"

	// ErrCodeBadMacro indicates a macro expression that was recognized
	// as a macro but failed to compile.
	ErrCodeBadMacro ErrorCode = "BAD_MACRO"
)

// Error is a fatal compile error. Path and Line are set when known.
type Error struct {
	Code    ErrorCode
	Message string
	Path    string
	Line    int
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %s", e.Path, e.Line, e.Code, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Severity distinguishes advisory diagnostics from binding-level errors
// the assembler demoted to skip-and-continue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one accumulated, non-aborting problem.
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Severity, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

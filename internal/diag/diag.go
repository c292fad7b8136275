// Package diag provides the structured diagnostic type shared by the
// lexer, parser, and generator, plus source-context formatting and a JSON
// codec for editor/IDE consumption.
package diag

import (
	"fmt"
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// Severity classifies a Diagnostic. Only Warning and Error exist per the
// language spec; there is no "info" tier.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Code identifies the diagnostic's class within its phase, e.g.
// "unexpected-character" or "missing-initializer".
type Code string

// Well-known diagnostic codes, grouped by the taxonomy in spec.md §7.
const (
	// Lexical
	CodeUnterminatedString Code = "unterminated-string"
	CodeInvalidEscape      Code = "invalid-escape"
	CodeUnexpectedChar     Code = "unexpected-character"
	CodeMalformedNumber    Code = "malformed-number"

	// Syntactic
	CodeUnexpectedToken    Code = "unexpected-token"
	CodeMissingTerminator  Code = "missing-terminator"
	CodeInvalidPattern     Code = "invalid-pattern"
	CodeMisplacedModifier  Code = "misplaced-modifier"
	CodeDuplicateParameter Code = "duplicate-parameter"

	// Structural
	CodeMissingInitializer Code = "missing-initializer"
	CodeExportWithoutTarget Code = "export-without-target"
	CodeInvalidControlFlow Code = "invalid-control-flow"
	CodeInvalidThisSuper   Code = "invalid-this-or-super"
	CodePrivateAccess      Code = "private-member-access"

	// Emission
	CodeUnresolvedImport  Code = "unresolved-import"
	CodeReservedName      Code = "reserved-name-collision"
	CodeSwallowedDeferErr Code = "deferred-expression-error-swallowed"

	// Internal
	CodeInternal Code = "internal-compiler-error"
)

// Diagnostic is a single structured message with severity, code, source
// location, and a human-readable message, matching spec.md §6's format.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Pos      token.Position
	Length   int // rune span for underlining; 0 means "just the caret"
}

// New builds a Diagnostic at Error severity, the common case.
func New(code Code, pos token.Position, message string) Diagnostic {
	return Diagnostic{Severity: Error, Code: code, Message: message, Pos: pos, Length: 1}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(code Code, pos token.Position, format string, args ...any) Diagnostic {
	return New(code, pos, fmt.Sprintf(format, args...))
}

// Warn builds a Diagnostic at Warning severity.
func Warn(code Code, pos token.Position, message string) Diagnostic {
	d := New(code, pos, message)
	d.Severity = Warning
	return d
}

// WithFile returns a copy of d with File set.
func (d Diagnostic) WithFile(file string) Diagnostic {
	d.File = file
	return d
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped directly where Go idiom expects an error.
func (d Diagnostic) Error() string {
	return d.Format(false, "")
}

// Format renders the diagnostic, optionally with ANSI color and source
// context (a single line with a caret/underline), matching the teacher's
// internal/errors.CompilerError.Format layout.
func (d Diagnostic) Format(color bool, source string) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s\n", strings.ToUpper(d.Severity.String()[:1])+d.Severity.String()[1:], d.File, d.Pos.Line, d.Pos.Column, d.Message)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s\n", strings.ToUpper(d.Severity.String()[:1])+d.Severity.String()[1:], d.Pos.Line, d.Pos.Column, d.Message)
	}

	line := sourceLine(source, d.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	underline := d.Length
	if underline < 1 {
		underline = 1
	}
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(strings.Repeat("^", underline))
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// List is a collection of diagnostics produced by one compiler phase.
type List []Diagnostic

// HasErrors reports whether any diagnostic in the list is Error severity
// or worse.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Format renders every diagnostic in the list, numbering them when there
// is more than one, matching the teacher's FormatErrors helper.
func (l List) Format(color bool, source string) string {
	if len(l) == 0 {
		return ""
	}
	if len(l) == 1 {
		return l[0].Format(color, source)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation produced %d diagnostic(s):\n\n", len(l))
	for i, d := range l {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(l))
		sb.WriteString(d.Format(color, source))
		if i < len(l)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

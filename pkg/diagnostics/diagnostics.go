// Package diagnostics defines badbasic diagnostic types for lex, parse, validation and runtime errors.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thomasrohde/badbasic/pkg/ast"
)

// Diagnostic code constants.
const (
	ELex           = "E_LEX"
	EMissingLabel  = "E_MISSING_LABEL"
	EBadAssign     = "E_BAD_ASSIGN"
	ENoRule        = "E_NO_RULE"
	EUnsupportedOp = "E_UNSUPPORTED_OP"
	EUnbound       = "E_UNBOUND"
	EFnArgs        = "E_FN_ARGS"
	EUnknownFn     = "E_UNKNOWN_FN"
	ENoLine        = "E_NO_LINE"
	EInternal      = "E_INTERNAL"
	EIO            = "E_IO"
	EConfig        = "E_CONFIG"
)

// Codes lists every diagnostic code, in the order they are documented.
var Codes = []string{
	ELex, EMissingLabel, EBadAssign, ENoRule,
	EUnsupportedOp, EUnbound, EFnArgs, EUnknownFn, ENoLine, EInternal,
	EIO, EConfig,
}

// IsKnown reports whether code is one of the diagnostic codes above.
func IsKnown(code string) bool {
	for _, c := range Codes {
		if c == code {
			return true
		}
	}
	return false
}

// IsParseCode reports whether code is produced by the lexer or the parser.
func IsParseCode(code string) bool {
	switch code {
	case ELex, EMissingLabel, EBadAssign, ENoRule:
		return true
	}
	return false
}

// Diagnostic represents a lex, parse, validation, or runtime diagnostic.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Span    *ast.Span `json:"span,omitempty"`
	Hint    string    `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, span *ast.Span, hint string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Span:    span,
		Hint:    hint,
	}
}

// FormatDiagnostic formats a single diagnostic for display.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	loc := "<unknown>"
	if d.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", d.Span.File, d.Span.StartLine, d.Span.StartCol)
	}
	out := fmt.Sprintf("error[%s]: %s\n  --> %s", d.Code, d.Message, loc)
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		if diags == nil {
			diags = []Diagnostic{}
		}
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n\n")
}

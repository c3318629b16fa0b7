package interpreter

import (
	"fmt"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
)

// RuntimeError represents an error raised while evaluating a statement.
// Label is set once the error has left the line that raised it.
type RuntimeError struct {
	Code     string
	Message  string
	Span     *ast.Span
	Label    ast.Label
	HasLabel bool
}

func (e *RuntimeError) Error() string {
	if e.HasLabel {
		return fmt.Sprintf("line %s: %s", e.Label, e.Message)
	}
	return e.Message
}

// Diag converts the error to a diagnostic.
func (e *RuntimeError) Diag() diagnostics.Diagnostic {
	msg := e.Message
	if e.HasLabel {
		msg = fmt.Sprintf("line %s: %s", e.Label, e.Message)
	}
	return diagnostics.MakeDiag(e.Code, msg, e.Span, "")
}

func runtimeErr(code string, node ast.Node, format string, args ...any) *RuntimeError {
	e := &RuntimeError{Code: code, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		span := node.NodeSpan()
		e.Span = &span
	}
	return e
}

package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
)

func TestMakeDiag(t *testing.T) {
	span := &ast.Span{File: "test.bas", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	d := diagnostics.MakeDiag(diagnostics.ENoRule, "no rule matched", span, "check syntax")

	assert.Equal(t, diagnostics.ENoRule, d.Code)
	assert.Equal(t, "no rule matched", d.Message)
	assert.Equal(t, "check syntax", d.Hint)
	assert.Same(t, span, d.Span)
}

func TestFormatDiagnosticPretty(t *testing.T) {
	span := &ast.Span{File: "test.bas", StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 10}
	d := diagnostics.MakeDiag(diagnostics.EUnbound, "variable 'X' not found", span, "assign it with LET first")

	out := diagnostics.FormatDiagnostic(d, true)
	assert.Contains(t, out, "error[E_UNBOUND]")
	assert.Contains(t, out, "test.bas:3:5")
	assert.Contains(t, out, "hint:")
}

func TestFormatDiagnosticPrettyNoSpan(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.EIO, "cannot read file", nil, "")
	out := diagnostics.FormatDiagnostic(d, true)
	assert.Contains(t, out, "<unknown>")
	assert.NotContains(t, out, "hint:")
}

func TestFormatDiagnosticJSON(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.ELex, "bad token", nil, "")
	out := diagnostics.FormatDiagnostic(d, false)
	assert.Contains(t, out, `"code":"E_LEX"`)
	assert.NotContains(t, out, `"span"`)
}

func TestFormatDiagnosticsJoin(t *testing.T) {
	diags := []diagnostics.Diagnostic{
		diagnostics.MakeDiag(diagnostics.EUnbound, "a", nil, ""),
		diagnostics.MakeDiag(diagnostics.EUnknownFn, "b", nil, ""),
	}
	pretty := diagnostics.FormatDiagnostics(diags, true)
	require.Equal(t, 2, strings.Count(pretty, "error["))

	assert.Equal(t, "[]", diagnostics.FormatDiagnostics(nil, false))
}

func TestCodeClassification(t *testing.T) {
	for _, code := range diagnostics.Codes {
		assert.True(t, diagnostics.IsKnown(code), code)
	}
	assert.False(t, diagnostics.IsKnown("E_NOPE"))

	assert.True(t, diagnostics.IsParseCode(diagnostics.ELex))
	assert.True(t, diagnostics.IsParseCode(diagnostics.EBadAssign))
	assert.False(t, diagnostics.IsParseCode(diagnostics.EUnbound))
}

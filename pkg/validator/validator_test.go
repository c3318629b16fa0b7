package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/parser"
	"github.com/thomasrohde/badbasic/pkg/stdlib"
	"github.com/thomasrohde/badbasic/pkg/validator"
)

// helper parses source and validates, returning diagnostics from validation only.
// It fatals on parse errors so test cases focus on validator behavior.
func mustParseAndValidate(t *testing.T, source string) []diagnostics.Diagnostic {
	t.Helper()
	prog, parseErrs := parser.Parse(source, "test.bas")
	require.Empty(t, parseErrs, "unexpected parse error")
	return validator.Validate(prog)
}

// assertNoDiags asserts zero diagnostics were produced.
func assertNoDiags(t *testing.T, diags []diagnostics.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Code+": "+d.Message)
		}
		t.Errorf("expected no diagnostics, got %d:\n  %s", len(diags), strings.Join(msgs, "\n  "))
	}
}

func codes(diags []diagnostics.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestValidPrograms(t *testing.T) {
	sources := []string{
		"",
		"10 LET X = 5\n20 PRINT(X)",
		"10 LET X = 5\n20 LET Y = 3\n30 LET Z = X + Y\n40 PRINT(Z)",
		"10 LET X = 10 - 2 - 3",
		"10 PRINT(LET X = 1)\n20 PRINT(X)",
		"10 42",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			assertNoDiags(t, mustParseAndValidate(t, src))
		})
	}
}

func TestUseBeforeAssignment(t *testing.T) {
	diags := mustParseAndValidate(t, "10 PRINT(X)\n20 LET X = 1")
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.EUnbound, diags[0].Code)
	assert.Contains(t, diags[0].Message, "line 10")
	assert.NotEmpty(t, diags[0].Hint)
}

func TestLabelOrderNotSourceOrder(t *testing.T) {
	// Line 5 runs first even though it is written last.
	assertNoDiags(t, mustParseAndValidate(t, "10 PRINT(X)\n5 LET X = 1"))
}

func TestSelfReferenceInAssignment(t *testing.T) {
	assert.Equal(t, []string{diagnostics.EUnbound}, codes(mustParseAndValidate(t, "10 LET X = X + 1")))
}

func TestCollectsEveryProblem(t *testing.T) {
	diags := mustParseAndValidate(t, "10 FOO(1)\n20 2 * 3\n30 PRINT(1, 2)\n40 PRINT(PRINT(1))\n50 Y")
	assert.Equal(t, []string{
		diagnostics.EUnknownFn,
		diagnostics.EUnsupportedOp,
		diagnostics.EFnArgs,
		diagnostics.EFnArgs,
		diagnostics.EUnbound,
	}, codes(diags))
}

func TestUnknownFunctionArgumentsAreChecked(t *testing.T) {
	assert.Equal(t, []string{diagnostics.EUnknownFn, diagnostics.EUnbound},
		codes(mustParseAndValidate(t, "10 FOO(Z)")))
}

func TestDiagnosticsCarrySpans(t *testing.T) {
	diags := mustParseAndValidate(t, "10 LET X = 1\n20 PRINT(Y)")
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Span)
	assert.Equal(t, 2, diags[0].Span.StartLine)
	assert.Equal(t, 10, diags[0].Span.StartCol)
}

func TestValidateWithEmptyRegistry(t *testing.T) {
	prog, _ := parser.Parse("10 PRINT(1)", "test.bas")
	diags := validator.ValidateWith(prog, stdlib.NewRegistry())
	assert.Equal(t, []string{diagnostics.EUnknownFn}, codes(diags))
}

func TestValidateNil(t *testing.T) {
	assert.Empty(t, validator.Validate(nil))
	assert.Empty(t, validator.Validate(ast.NewProgram()))
}

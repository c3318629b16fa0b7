package formatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/formatter"
	"github.com/thomasrohde/badbasic/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, diags := parser.Parse(src, "test.bas")
	require.Empty(t, diags)
	return prog
}

func TestFormatCanonicalises(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"assignment", "10 LET X=5", "10 LET X = 5\n"},
		{"term", "10 LET X = 10-2 -  3", "10 LET X = 10 - 2 - 3\n"},
		{"call", "20 PRINT ( X )", "20 PRINT(X)\n"},
		{"nested call", "10 FOO(BAR(1),X+1 ,LET Y=2)", "10 FOO(BAR(1), X + 1, LET Y = 2)\n"},
		{"empty call", "10 FOO( )", "10 FOO()\n"},
		{"bare values", "10 5\n20 X", "10 5\n20 X\n"},
		{"sorted labels", "20 B\n3 A\n100 C", "3 A\n20 B\n100 C\n"},
		{"blank lines dropped", "\n10 A\n   \n20 B\n", "10 A\n20 B\n"},
		{"compound operator kept", "10 1 +- 2", "10 1 +- 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.Format(mustParse(t, tt.src)))
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	sources := []string{
		"10 LET X = 5\n20 LET Y = 3\n30 LET Z = X + Y\n40 PRINT(Z)",
		"10 LET X = 10 - 2 - 3",
		"10 A + B * C - D",
		"10 FOO(BAR(BAZ(1, 2)), LET Q = R, 3)",
		"18446744073709551615 X",
	}

	for _, src := range sources {
		once := formatter.Format(mustParse(t, src))
		reparsed := mustParse(t, once)
		assert.Equal(t, once, formatter.Format(reparsed), "source %q", src)
		assert.Equal(t, mustParse(t, src).Labels(), reparsed.Labels())
	}
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", formatter.Format(nil))
	assert.Equal(t, "", formatter.Format(ast.NewProgram()))
}

func TestFormatStmt(t *testing.T) {
	assert.Equal(t, `"hi"`, formatter.FormatStmt(ast.NewString("hi", ast.Span{})))
	assert.Equal(t, "", formatter.FormatStmt(nil))

	call := ast.NewCall("PRINT", ast.Span{})
	call.AddArg(ast.NewBinary("-", ast.NewIdent("X", ast.Span{}), ast.NewNumber("1", ast.Span{}), ast.Span{}))
	assert.Equal(t, "PRINT(X - 1)", formatter.FormatStmt(call))
}

func TestStringLiteralDoesNotRoundTrip(t *testing.T) {
	prog := ast.NewProgram()
	prog.Set(10, ast.NewString("hi", ast.Span{}))

	out := formatter.Format(prog)
	assert.Equal(t, "10 \"hi\"\n", out)

	_, diags := parser.Parse(out, "fmt.bas")
	require.Len(t, diags, 1)
	assert.Equal(t, "E_LEX", diags[0].Code)
}

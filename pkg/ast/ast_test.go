package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/pkg/ast"
)

func TestNodeKinds(t *testing.T) {
	x := ast.NewIdent("X", ast.Span{})
	nodes := []ast.Node{
		ast.NewNumber("42", ast.Span{}),
		ast.NewString("hello", ast.Span{}),
		x,
		ast.NewAssignment(x, ast.NewNumber("1", ast.Span{}), ast.Span{}),
		ast.NewBinary("+", ast.NewNumber("1", ast.Span{}), ast.NewNumber("2", ast.Span{}), ast.Span{}),
		ast.NewCall("PRINT", ast.Span{}),
	}

	expected := []string{
		"NumberLiteral", "StringLiteral", "Identifier", "Assignment", "BinaryExpr", "FnCall",
	}

	for i, node := range nodes {
		assert.Equal(t, expected[i], node.Kind(), "node %d", i)
	}
}

func TestLookupBinaryOp(t *testing.T) {
	tests := []struct {
		text string
		want ast.BinaryOp
	}{
		{"+", ast.OpAdd},
		{"-", ast.OpSub},
		{"*", ast.OpMul},
		{"/", ast.OpDiv},
		{"+-", ast.OpUnknown},
		{"", ast.OpUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ast.LookupBinaryOp(tt.text), "op %q", tt.text)
	}
	for text, op := range map[string]ast.BinaryOp{"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv} {
		assert.Equal(t, text, op.String())
	}
}

func TestNewBinaryKeepsOperatorText(t *testing.T) {
	n := ast.NewBinary("**", ast.NewNumber("1", ast.Span{}), ast.NewNumber("2", ast.Span{}), ast.Span{})
	assert.Equal(t, ast.OpUnknown, n.Op)
	assert.Equal(t, "**", n.OpText)
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, ast.BuiltinPrint, ast.LookupBuiltin("PRINT"))
	assert.Equal(t, ast.BuiltinUnknown, ast.LookupBuiltin("print"))
	assert.Equal(t, ast.BuiltinUnknown, ast.LookupBuiltin("FOO"))

	for _, b := range ast.Builtins() {
		assert.Equal(t, b, ast.LookupBuiltin(b.String()))
	}
}

func TestCallArgs(t *testing.T) {
	call := ast.NewCall("FOO", ast.Span{})
	assert.Equal(t, ast.BuiltinUnknown, call.Builtin)
	call.AddArg(ast.NewNumber("1", ast.Span{}))
	call.AddArg(ast.NewIdent("Y", ast.Span{}))
	require.Len(t, call.Args, 2)
	assert.Equal(t, "Identifier", call.Args[1].Kind())
}

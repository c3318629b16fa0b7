package stdlib_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/stdlib"
)

func TestEveryBuiltinIsRegistered(t *testing.T) {
	r := stdlib.Defaults()
	assert.Empty(t, r.Missing())
	for _, b := range ast.Builtins() {
		fn := r.Get(b)
		require.NotNil(t, fn, "builtin %s has no implementation", b)
		assert.Equal(t, b.String(), fn.Name())
	}
	assert.Len(t, r.All(), len(ast.Builtins()))
}

func TestEmptyRegistry(t *testing.T) {
	r := stdlib.NewRegistry()
	assert.Nil(t, r.Get(ast.BuiltinPrint))
	assert.Equal(t, ast.Builtins(), r.Missing())
	assert.Empty(t, r.All())
}

func TestPrint(t *testing.T) {
	tests := []struct {
		arg  int64
		want string
	}{
		{0, "0\n"},
		{42, "42\n"},
		{-7, "-7\n"},
		{9223372036854775807, "9223372036854775807\n"},
	}

	printFn := stdlib.Defaults().Get(ast.BuiltinPrint)
	require.Equal(t, 1, printFn.Arity)

	for _, tt := range tests {
		var out bytes.Buffer
		v, ok, err := printFn.Execute(stdlib.Env{Out: &out}, []int64{tt.arg})
		require.NoError(t, err)
		assert.False(t, ok, "PRINT must not yield a value")
		assert.Zero(t, v)
		assert.Equal(t, tt.want, out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrintWriteError(t *testing.T) {
	printFn := stdlib.Defaults().Get(ast.BuiltinPrint)
	_, _, err := printFn.Execute(stdlib.Env{Out: failingWriter{}}, []int64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPrintWithoutOutput(t *testing.T) {
	printFn := stdlib.Defaults().Get(ast.BuiltinPrint)
	_, ok, err := printFn.Execute(stdlib.Env{}, []int64{1})
	require.NoError(t, err)
	assert.False(t, ok)
}

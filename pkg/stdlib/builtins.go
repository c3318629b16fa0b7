package stdlib

import (
	"fmt"

	"github.com/thomasrohde/badbasic/pkg/ast"
)

// RegisterDefaults adds all built-in functions.
func RegisterDefaults(r *Registry) {
	r.Register(Fn{Builtin: ast.BuiltinPrint, Arity: 1, Execute: builtinPrint})
}

// builtinPrint writes its argument in decimal followed by a newline. It
// yields no value.
func builtinPrint(env Env, args []int64) (int64, bool, error) {
	if env.Out == nil {
		return 0, false, nil
	}
	if _, err := fmt.Fprintf(env.Out, "%d\n", args[0]); err != nil {
		return 0, false, fmt.Errorf("PRINT: %w", err)
	}
	return 0, false, nil
}

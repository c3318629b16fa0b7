package interpreter

import "github.com/thomasrohde/badbasic/pkg/ast"

type binaryFn func(a, b int64) int64

// operators maps every supported operator to its implementation. Integer
// arithmetic wraps on overflow.
var operators = map[ast.BinaryOp]binaryFn{
	ast.OpAdd: func(a, b int64) int64 { return a + b },
	ast.OpSub: func(a, b int64) int64 { return a - b },
}

// Supported reports whether op has an implementation.
func Supported(op ast.BinaryOp) bool {
	_, ok := operators[op]
	return ok
}

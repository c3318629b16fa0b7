// Package validator implements static checks of badbasic programs.
//
// Lines are checked in label order, the order they run in. Every problem is
// reported; validation does not stop at the first one.
package validator

import (
	"fmt"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/interpreter"
	"github.com/thomasrohde/badbasic/pkg/stdlib"
)

type validator struct {
	diags    []diagnostics.Diagnostic
	assigned map[string]bool
	builtins *stdlib.Registry
	label    ast.Label
}

// Validate performs static analysis on a program with the default
// built-ins and returns diagnostics.
func Validate(program *ast.Program) []diagnostics.Diagnostic {
	return ValidateWith(program, stdlib.Defaults())
}

// ValidateWith validates against a specific built-in registry.
func ValidateWith(program *ast.Program, builtins *stdlib.Registry) []diagnostics.Diagnostic {
	v := &validator{
		assigned: make(map[string]bool),
		builtins: builtins,
	}
	if program == nil {
		return nil
	}
	program.Ascend(func(l ast.Line) bool {
		v.label = l.Label
		v.validateNode(l.Stmt)
		return true
	})
	return v.diags
}

func (v *validator) addDiag(code, msg string, node ast.Node, hint string) {
	span := node.NodeSpan()
	v.diags = append(v.diags, diagnostics.MakeDiag(code, fmt.Sprintf("line %s: %s", v.label, msg), &span, hint))
}

// validateNode walks node in evaluation order and reports whether it
// yields a value.
func (v *validator) validateNode(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return true

	case *ast.StringLiteral:
		return false

	case *ast.Identifier:
		if !v.assigned[n.Name] {
			v.addDiag(diagnostics.EUnbound,
				fmt.Sprintf("variable %s is read before any assignment", n.Name), n,
				fmt.Sprintf("assign it on an earlier line, e.g. LET %s = 0", n.Name))
		}
		return true

	case *ast.Assignment:
		v.validateNode(n.Value)
		v.assigned[n.Target.Name] = true
		return true

	case *ast.BinaryExpr:
		v.validateNode(n.Left)
		v.validateNode(n.Right)
		if !interpreter.Supported(n.Op) {
			v.addDiag(diagnostics.EUnsupportedOp,
				fmt.Sprintf("unsupported operator %q", n.OpText), n, "only + and - are implemented")
		}
		return true

	case *ast.FnCall:
		return v.validateCall(n)
	}
	return false
}

func (v *validator) validateCall(n *ast.FnCall) bool {
	fn := v.builtins.Get(n.Builtin)
	if fn == nil {
		v.addDiag(diagnostics.EUnknownFn, fmt.Sprintf("unknown function %s", n.Name), n, "")
		for _, a := range n.Args {
			v.validateNode(a)
		}
		return false
	}

	if len(n.Args) != fn.Arity {
		v.addDiag(diagnostics.EFnArgs,
			fmt.Sprintf("%s expects %d argument(s), got %d", n.Name, fn.Arity, len(n.Args)), n, "")
	}
	for i, a := range n.Args {
		if !v.validateNode(a) {
			v.addDiag(diagnostics.EFnArgs,
				fmt.Sprintf("argument %d of %s has no value", i+1, n.Name), a, "")
		}
	}
	// Every built-in yields no value.
	return false
}

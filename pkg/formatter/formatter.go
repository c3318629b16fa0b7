// Package formatter renders badbasic programs as canonical source.
package formatter

import (
	"strconv"
	"strings"

	"github.com/thomasrohde/badbasic/pkg/ast"
)

// Format prints one "<label> <statement>" line per label in ascending
// order. Parsing the output yields the same program for any program the
// parser produced. String literals never come from the parser; they print
// quoted and do not lex back.
func Format(program *ast.Program) string {
	if program == nil || program.Len() == 0 {
		return ""
	}
	var b strings.Builder
	program.Ascend(func(l ast.Line) bool {
		b.WriteString(l.Label.String())
		b.WriteByte(' ')
		b.WriteString(FormatStmt(l.Stmt))
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// FormatStmt prints a single statement without its label.
func FormatStmt(n ast.Node) string {
	switch s := n.(type) {
	case *ast.NumberLiteral:
		return s.Text
	case *ast.StringLiteral:
		return strconv.Quote(s.Value)
	case *ast.Identifier:
		return s.Name
	case *ast.Assignment:
		return "LET " + s.Target.Name + " = " + FormatStmt(s.Value)
	case *ast.BinaryExpr:
		// Terms group to the right, so a nested right operand needs no
		// parentheses.
		return FormatStmt(s.Left) + " " + s.OpText + " " + FormatStmt(s.Right)
	case *ast.FnCall:
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = FormatStmt(a)
		}
		return s.Name + "(" + strings.Join(args, ", ") + ")"
	case nil:
		return ""
	}
	return "<" + n.Kind() + ">"
}

// Package help holds the reference text shown by the shell and the CLI.
package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/policy"
)

// Version is the language version shown in the banner and QUICKREF.
const Version = "0.0.1"

// QUICKREF is the one-screen summary printed by a bare HELP.
var QUICKREF = `Bad Basic v` + Version + ` quick reference

  10 LET X = 5          assign an integer to X
  20 LET Y = X - 2      + and - chain right to left: 10 - 2 - 3 is 11
  30 PRINT(Y)           print a value on its own line
  40 Y                  a bare value is the line's result

Lines run in ascending numeric order. Re-entering a label replaces it.

Topics: ` + strings.Join(TopicList, ", ") + `
Use "help <topic>" for details. Topic names may be abbreviated.
`

// TopicList is the display order of Topics.
var TopicList = []string{"syntax", "builtins", "errors", "shell", "examples"}

// Topics maps a topic name to its text.
var Topics = map[string]string{
	"syntax": `SYNTAX

Every line starts with a numeric label followed by a single space or more:

  <label> <statement>

Statements:
  LET <name> = <value>    assignment; value is a number, a name or a term
  <operand> <op> <value>  term; operands are numbers or names
  <name>(<arg>, ...)      function call; arguments are statements
  <number> | <name>       bare value

Names are runs of letters and underscores. Numbers are runs of digits, so X1
is the name X followed by the number 1. LET is case sensitive.

Terms nest to the right: A - B - C means A - (B - C). There is no operator
precedence and there are no parentheses for grouping.
`,

	"builtins": builtinsText(),

	"errors": errorsText(),

	"shell": `SHELL

  ]10 LET X = 5       numbered lines are added to the program
  ]20 PRINT(X)
  ]LIST               show the program in label order
  ]RUN                run it, print "> <result>", then clear it
  ]NEW                clear the program without running it
  ]PRINT(2)           unnumbered input runs at once
  ]HELP [topic]       this help
  ]EXIT               leave the shell (end of input works too)

A fatal error ends the session unless shell.halt_on_fatal is false, in which
case the error is shown and the program is discarded.
`,

	"examples": `EXAMPLES

Sum two variables:
  10 LET X = 5
  20 LET Y = 3
  30 LET Z = X + Y
  40 PRINT(Z)         prints 8

Right to left chaining:
  10 LET X = 10 - 2 - 3
  20 PRINT(X)         prints 11

Recoverable error:
  10 FOO(1)           E_UNKNOWN_FN is reported
  20 5                RUN still prints "> 5"
`,
}

func builtinsText() string {
	var b strings.Builder
	b.WriteString("BUILTINS\n\n")
	for _, fn := range ast.Builtins() {
		fmt.Fprintf(&b, "  %s(value)\n", fn)
	}
	b.WriteString("\nPRINT writes its argument followed by a newline. It yields no value,\n")
	b.WriteString("so a line ending in PRINT has result 0 and PRINT(PRINT(1)) is an error.\n")
	b.WriteString("\nOperators: ")
	ops := make([]string, 0, len(ast.BinaryOps()))
	for _, op := range ast.BinaryOps() {
		ops = append(ops, op.String())
	}
	b.WriteString(strings.Join(ops, " "))
	b.WriteString("\nOnly + and - can be evaluated. * and / parse but fail at run time.\n")
	return b.String()
}

func errorsText() string {
	var b strings.Builder
	b.WriteString("ERRORS\n\n")
	for _, code := range diagnostics.Codes {
		fmt.Fprintf(&b, "  %s\n", code)
	}
	b.WriteString("\nRecoverable by policy: ")
	eligible := append([]string(nil), policy.Eligible...)
	sort.Strings(eligible)
	b.WriteString(strings.Join(eligible, ", "))
	b.WriteString("\nBy default only E_UNKNOWN_FN is recovered. See \"badbasic policy\".\n")
	return b.String()
}

// MatchTopic resolves an exact topic name or an unambiguous prefix.
func MatchTopic(query string) (string, string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", "", fmt.Errorf("empty help topic")
	}
	if content, ok := Topics[q]; ok {
		return q, content, nil
	}

	var matches []string
	for _, name := range TopicList {
		if strings.HasPrefix(name, q) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("unknown help topic %q", query)
	case 1:
		return matches[0], Topics[matches[0]], nil
	default:
		return "", "", fmt.Errorf("ambiguous help topic %q: %s", query, strings.Join(matches, ", "))
	}
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/lexer"
)

type tokenJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

func newTokensCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the tokens of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := a.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(source, filename)
			if err != nil {
				var le *lexer.LexError
				if errors.As(err, &le) {
					return a.fail(cmd, exitDiagnostics, le.Diag)
				}
				return a.fail(cmd, exitDiagnostics, diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, ""))
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				list := make([]tokenJSON, len(tokens))
				for i, t := range tokens {
					list[i] = tokenJSON{Type: t.Type.String(), Value: t.Value, Line: t.Span.StartLine, Col: t.Span.StartCol}
				}
				b, err := json.Marshal(list)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}
			for _, t := range tokens {
				fmt.Fprintf(out, "%d:%d\t%s\t%s\n", t.Span.StartLine, t.Span.StartCol, t.Type, strconv.Quote(t.Value))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print tokens as a JSON array")
	return cmd
}

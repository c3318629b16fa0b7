package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|->",
		Short: "Parse and validate a program without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, filename, err := a.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			diags := a.runtime(nil).Check(source, filename)
			if len(diags) > 0 {
				return a.fail(cmd, exitDiagnostics, diags...)
			}

			if a.pretty {
				fmt.Fprintln(cmd.OutOrStdout(), "No errors found.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "[]")
			}
			return nil
		},
	}
}

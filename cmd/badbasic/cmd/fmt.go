package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
)

func newFmtCmd(a *app) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Print a program in canonical form",
		Long: `Print a program with its lines in label order and canonical spacing.
With --write the file is rewritten in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if write && file == "-" {
				return errors.New("--write needs a file, not stdin")
			}
			source, filename, err := a.readSource(cmd, file)
			if err != nil {
				return err
			}

			formatted, err := a.runtime(nil).Format(source, filename)
			if err != nil {
				return a.failErr(cmd, err)
			}
			if write {
				return a.writeFile(cmd, file, formatted)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "rewrite the file in place")
	return cmd
}

func (a *app) writeFile(cmd *cobra.Command, path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return a.fail(cmd, exitUsage,
			diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot stat file: %s", path), nil, ""))
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return a.fail(cmd, exitUsage,
			diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot write file: %s", path), nil, ""))
	}
	a.log.Debug().Str("path", path).Msg("formatted in place")
	return nil
}

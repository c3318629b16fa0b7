package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
)

// readSource reads a program from file, or from stdin when file is "-".
func (a *app) readSource(cmd *cobra.Command, file string) (source, filename string, err error) {
	if file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", a.fail(cmd, exitUsage,
				diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read stdin: %v", err), nil, ""))
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", a.fail(cmd, exitUsage,
			diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, ""))
	}
	return string(data), file, nil
}

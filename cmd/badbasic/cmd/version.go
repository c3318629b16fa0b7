package cmd

import (
	"fmt"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/help"
)

var (
	GitCommit = "development"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bad Basic v%s\n", help.Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "  Go Version: %s\n", goruntime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", goruntime.GOOS, goruntime.GOARCH)
		},
	}
}

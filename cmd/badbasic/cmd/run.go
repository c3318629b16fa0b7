package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/interpreter"
	"github.com/thomasrohde/badbasic/pkg/runtime"
)

type runFlags struct {
	trace   string
	jsonOut bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Run a program",
		Long: `Run a program file, or standard input when the file is "-".

PRINT output goes to stdout, followed by "> <result>" for the last line.
Recoverable errors are reported on stderr and the run continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.trace, "trace", "", `write trace events as JSON lines to a file ("-" for stderr)`)
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "print the result as JSON")
	return cmd
}

func (a *app) run(cmd *cobra.Command, file string, f runFlags) error {
	source, filename, err := a.readSource(cmd, file)
	if err != nil {
		return err
	}

	var opts []runtime.Option
	if f.trace != "" {
		w, closeTrace, err := a.openTrace(cmd, f.trace)
		if err != nil {
			return err
		}
		defer closeTrace()
		enc := json.NewEncoder(w)
		opts = append(opts, runtime.WithTrace(func(ev interpreter.TraceEvent) {
			if err := enc.Encode(ev); err != nil {
				a.log.Warn().Err(err).Msg("writing trace event")
			}
		}))
	}

	out := cmd.OutOrStdout()
	rt := a.runtime(out, opts...)
	res, err := rt.Run(cmd.Context(), source, filename)
	if res != nil && len(res.Diagnostics) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), diagnostics.FormatDiagnostics(res.Diagnostics, a.pretty))
	}
	if err != nil {
		return a.failErr(cmd, err)
	}

	if f.jsonOut {
		b, err := json.Marshal(res)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error encoding result: %v\n", err)
			return exitWith(exitRuntime, err)
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	fmt.Fprintf(out, "> %d\n", res.Value)
	return nil
}

func (a *app) openTrace(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "-" {
		return cmd.ErrOrStderr(), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, a.fail(cmd, exitUsage,
			diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot create trace file: %s", path), nil, ""))
	}
	return file, func() {
		if err := file.Close(); err != nil {
			a.log.Warn().Err(err).Str("path", path).Msg("closing trace file")
		}
	}, nil
}

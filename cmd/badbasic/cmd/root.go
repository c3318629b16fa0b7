package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thomasrohde/badbasic/internal/logging"
	"github.com/thomasrohde/badbasic/pkg/config"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/policy"
	"github.com/thomasrohde/badbasic/pkg/runtime"
	"github.com/thomasrohde/badbasic/pkg/shell"
)

// Exit codes.
const (
	exitOK          = 0
	exitUsage       = 1
	exitDiagnostics = 2
	exitRuntime     = 4
)

// app holds the state shared by every subcommand.
type app struct {
	cfgFile  string
	logLevel string
	pretty   bool

	cfg     *config.Config
	cfgPath string
	policy  *policy.Policy
	log     zerolog.Logger
}

// exitError carries the process exit code for an error that has already
// been reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return exitUsage
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.Nop()}

	root := &cobra.Command{
		Use:   "badbasic",
		Short: "Bad Basic - a tiny line-numbered BASIC",
		Long: `Bad Basic runs line-numbered programs made of LET assignments,
+ and - terms and PRINT calls.

Without a subcommand it starts the interactive shell.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.runShell,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./badbasic.toml, then ~/.badbasic/config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides log.level")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "human-readable diagnostics instead of JSON")

	root.AddCommand(
		newRunCmd(a),
		newCheckCmd(a),
		newFmtCmd(a),
		newTokensCmd(a),
		newTraceCmd(a),
		newPolicyCmd(a),
		newVersionCmd(),
	)
	root.SetHelpCommand(newHelpCmd(root))
	return root
}

// setup loads the config and builds the logger and policy.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, path, err := config.Discover(a.cfgFile)
	if err != nil {
		return a.fail(cmd, exitUsage, diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, ""))
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return a.fail(cmd, exitUsage, diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, ""))
		}
	}
	p, err := cfg.BuildPolicy()
	if err != nil {
		return a.fail(cmd, exitUsage, diagnostics.MakeDiag(diagnostics.EConfig, err.Error(), nil, ""))
	}

	a.cfg, a.cfgPath, a.policy = cfg, path, p
	a.log = logging.New(cmd.ErrOrStderr(), cfg.Log, "cli")
	if path != "" {
		a.log.Debug().Str("path", path).Msg("config loaded")
	}
	return nil
}

// runtime builds a runtime from the loaded config.
func (a *app) runtime(out io.Writer, opts ...runtime.Option) *runtime.Runtime {
	base := []runtime.Option{
		runtime.WithOutput(out),
		runtime.WithPolicy(a.policy),
		runtime.WithLogger(a.log),
		runtime.WithTimeout(a.cfg.RunTimeout()),
	}
	return runtime.New(append(base, opts...)...)
}

// fail reports diags on stderr and returns an exitError with code.
func (a *app) fail(cmd *cobra.Command, code int, diags ...diagnostics.Diagnostic) error {
	fmt.Fprintln(cmd.ErrOrStderr(), diagnostics.FormatDiagnostics(diags, a.pretty))
	return exitWith(code, errors.New(diags[0].Message))
}

// failErr reports an error returned by the runtime with the matching exit
// code.
func (a *app) failErr(cmd *cobra.Command, err error) error {
	diags := runtime.Diagnose(err)
	return a.fail(cmd, exitCodeFor(err), diags...)
}

func exitCodeFor(err error) int {
	var de *runtime.DiagnosticError
	if errors.As(err, &de) {
		return exitDiagnostics
	}
	return exitRuntime
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(),
		shell.WithConfig(a.cfg.Shell),
		shell.WithLogger(logging.New(cmd.ErrOrStderr(), a.cfg.Log, "shell")),
		shell.WithRuntime(
			runtime.WithPolicy(a.policy),
			runtime.WithLogger(a.log),
			runtime.WithTimeout(a.cfg.RunTimeout()),
		),
	)
	if err := sh.Start(cmd.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return exitWith(exitCodeFor(err), err)
	}
	return nil
}

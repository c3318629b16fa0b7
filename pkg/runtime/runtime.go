// Package runtime provides the top-level badbasic orchestrator.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/formatter"
	"github.com/thomasrohde/badbasic/pkg/interpreter"
	"github.com/thomasrohde/badbasic/pkg/parser"
	"github.com/thomasrohde/badbasic/pkg/policy"
	"github.com/thomasrohde/badbasic/pkg/stdlib"
	"github.com/thomasrohde/badbasic/pkg/validator"
)

// Result holds the outcome of a program execution.
type Result struct {
	Value       int64                    `json:"value"`
	Variables   map[string]int64         `json:"variables"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`
	RunID       string                   `json:"runId"`
}

// Runtime wires together all badbasic components for program execution.
type Runtime struct {
	stdlib  *stdlib.Registry
	policy  *policy.Policy
	out     io.Writer
	log     zerolog.Logger
	timeout time.Duration
	runID   string
	trace   func(event interpreter.TraceEvent)
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdlib sets the built-in registry.
func WithStdlib(r *stdlib.Registry) Option {
	return func(rt *Runtime) {
		rt.stdlib = r
	}
}

// WithPolicy sets which runtime errors are recoverable.
func WithPolicy(p *policy.Policy) Option {
	return func(rt *Runtime) {
		rt.policy = p
	}
}

// WithOutput sets where PRINT writes.
func WithOutput(w io.Writer) Option {
	return func(rt *Runtime) {
		rt.out = w
	}
}

// WithLogger sets the logger handed to interpreters.
func WithLogger(l zerolog.Logger) Option {
	return func(rt *Runtime) {
		rt.log = l
	}
}

// WithTimeout bounds each Run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(rt *Runtime) {
		rt.timeout = d
	}
}

// WithRunID sets the run ID for trace events. By default every run gets a
// fresh ID.
func WithRunID(id string) Option {
	return func(rt *Runtime) {
		rt.runID = id
	}
}

// WithTrace sets the trace callback.
func WithTrace(fn func(event interpreter.TraceEvent)) Option {
	return func(rt *Runtime) {
		rt.trace = fn
	}
}

// New creates a new Runtime with the given options.
// By default PRINT writes to stdout and the default policy applies.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		stdlib: stdlib.Defaults(),
		policy: policy.Default(),
		out:    os.Stdout,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Parse parses source, returning a DiagnosticError on failure.
func (rt *Runtime) Parse(source, filename string) (*ast.Program, error) {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return nil, &DiagnosticError{Diagnostics: diags}
	}
	return program, nil
}

// Interpreter creates an interpreter for program configured like this
// runtime.
func (rt *Runtime) Interpreter(program *ast.Program) *interpreter.Interpreter {
	opts := []interpreter.Option{
		interpreter.WithOutput(rt.out),
		interpreter.WithLogger(rt.log),
		interpreter.WithPolicy(rt.policy),
		interpreter.WithBuiltins(rt.stdlib),
	}
	if rt.runID != "" {
		opts = append(opts, interpreter.WithRunID(rt.runID))
	}
	if rt.trace != nil {
		opts = append(opts, interpreter.WithTrace(rt.trace))
	}
	return interpreter.New(program, opts...)
}

// Run parses and executes a program. On a runtime error the partial result
// is returned together with the error.
func (rt *Runtime) Run(ctx context.Context, source, filename string) (*Result, error) {
	program, err := rt.Parse(source, filename)
	if err != nil {
		return nil, err
	}
	return rt.Execute(ctx, program)
}

// Execute runs an already parsed program.
func (rt *Runtime) Execute(ctx context.Context, program *ast.Program) (*Result, error) {
	if rt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.timeout)
		defer cancel()
	}

	it := rt.Interpreter(program)
	value, err := it.Run(ctx)
	res := &Result{
		Value:       value,
		Variables:   it.Variables(),
		Diagnostics: it.Diagnostics(),
		RunID:       it.RunID(),
	}
	return res, err
}

// Check parses and validates a program without executing it.
func (rt *Runtime) Check(source, filename string) []diagnostics.Diagnostic {
	program, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return diags
	}
	return validator.ValidateWith(program, rt.stdlib)
}

// Format parses and formats a program.
func (rt *Runtime) Format(source, filename string) (string, error) {
	program, err := rt.Parse(source, filename)
	if err != nil {
		return "", err
	}
	return formatter.Format(program), nil
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// Diagnose converts an error returned by this package into diagnostics.
func Diagnose(err error) []diagnostics.Diagnostic {
	if err == nil {
		return nil
	}
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Diagnostics
	}
	var re *interpreter.RuntimeError
	if errors.As(err, &re) {
		return []diagnostics.Diagnostic{re.Diag()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.EInternal, "run timed out", nil,
			"raise run.timeout in the config file")}
	}
	return []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.EInternal, err.Error(), nil, "")}
}

package interpreter

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/thomasrohde/badbasic/pkg/policy"
	"github.com/thomasrohde/badbasic/pkg/stdlib"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer PRINT writes to.
func WithOutput(w io.Writer) Option {
	return func(it *Interpreter) { it.out = w }
}

// WithLogger sets the logger used for line execution and recovered errors.
func WithLogger(l zerolog.Logger) Option {
	return func(it *Interpreter) { it.log = l }
}

// WithPolicy sets which runtime errors are recoverable.
func WithPolicy(p *policy.Policy) Option {
	return func(it *Interpreter) { it.policy = p }
}

// WithBuiltins replaces the built-in registry.
func WithBuiltins(r *stdlib.Registry) Option {
	return func(it *Interpreter) { it.builtins = r }
}

// WithTrace installs a trace sink.
func WithTrace(fn func(TraceEvent)) Option {
	return func(it *Interpreter) { it.trace = fn }
}

// WithRunID sets the run ID attached to trace events and log lines.
func WithRunID(id string) Option {
	return func(it *Interpreter) { it.runID = id }
}

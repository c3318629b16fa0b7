// Package interpreter executes badbasic programs line by line in ascending
// label order.
package interpreter

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/policy"
	"github.com/thomasrohde/badbasic/pkg/stdlib"
)

// Interpreter walks a program one line at a time. Before the first Step the
// cursor is the lowest label; afterwards it is the lowest label greater
// than the last executed one, so lines merged later are picked up.
type Interpreter struct {
	program  *ast.Program
	env      *Env
	started  bool
	last     ast.Label
	result   int64
	diags    []diagnostics.Diagnostic
	out      io.Writer
	log      zerolog.Logger
	policy   *policy.Policy
	builtins *stdlib.Registry
	trace    func(TraceEvent)
	runID    string
}

// New creates an interpreter for program. A nil program is empty.
func New(program *ast.Program, opts ...Option) *Interpreter {
	if program == nil {
		program = ast.NewProgram()
	}
	it := &Interpreter{
		program:  program,
		env:      NewEnv(),
		out:      os.Stdout,
		log:      zerolog.Nop(),
		policy:   policy.Default(),
		builtins: stdlib.Defaults(),
	}
	for _, opt := range opts {
		opt(it)
	}
	if it.runID == "" {
		it.runID = uuid.New().String()
	}
	it.log = it.log.With().Str("run_id", it.runID).Logger()
	return it
}

// RunID returns the ID attached to trace events.
func (it *Interpreter) RunID() string {
	return it.runID
}

// Merge adds the lines of program, replacing lines with the same label.
func (it *Interpreter) Merge(program *ast.Program) {
	it.program.Merge(program)
}

// Reset rewinds the cursor to the first label and clears variables,
// diagnostics and the last result.
func (it *Interpreter) Reset() {
	it.env = NewEnv()
	it.started = false
	it.last = 0
	it.result = 0
	it.diags = nil
}

// Cursor returns the label of the next line to run. ok is false once every
// line has run.
func (it *Interpreter) Cursor() (ast.Label, bool) {
	if !it.started {
		return it.program.First()
	}
	return it.program.Next(it.last)
}

// Lookup returns the value of a variable.
func (it *Interpreter) Lookup(name string) (int64, bool) {
	return it.env.Get(name)
}

// Variables returns a copy of every variable binding.
func (it *Interpreter) Variables() map[string]int64 {
	return it.env.Snapshot()
}

// Diagnostics returns the recoverable errors recorded so far.
func (it *Interpreter) Diagnostics() []diagnostics.Diagnostic {
	return it.diags
}

// RunLine evaluates the statement at the cursor without advancing. It
// returns the statement's value, or 0 when the statement yields none.
func (it *Interpreter) RunLine() (int64, error) {
	label, ok := it.Cursor()
	if !ok {
		return 0, &RuntimeError{Code: diagnostics.ENoLine, Message: "no line left to run"}
	}
	return it.runLine(label)
}

func (it *Interpreter) runLine(label ast.Label) (int64, error) {
	stmt, _ := it.program.Get(label)
	it.emitLine(TraceLineStart, label, stmt)
	it.log.Debug().Uint64("label", uint64(label)).Str("kind", stmt.Kind()).Msg("line")

	val, ok, err := it.Evaluate(stmt)
	if err != nil {
		var re *RuntimeError
		if !errors.As(err, &re) {
			re = &RuntimeError{Code: diagnostics.EInternal, Message: err.Error()}
		}
		re.Label, re.HasLabel = label, true

		if !it.policy.IsRecoverable(re.Code) {
			return 0, re
		}
		it.recovered(label, re)
		return 0, nil
	}
	if !ok {
		val = 0
	}

	if it.trace != nil {
		v := val
		span := stmt.NodeSpan()
		it.emit(TraceEvent{Event: TraceLineEnd, Label: &label, Span: &span, Value: &v})
	}
	return val, nil
}

func (it *Interpreter) recovered(label ast.Label, re *RuntimeError) {
	it.diags = append(it.diags, re.Diag())
	it.log.Warn().
		Uint64("label", uint64(label)).
		Str("code", re.Code).
		Msg(re.Message)
	var zero int64
	it.emit(TraceEvent{Event: TraceRecovered, Label: &label, Span: re.Span, Value: &zero, Code: re.Code, Message: re.Message})
}

// Step runs the line at the cursor and advances past it. ok is false when
// no line was left to run. A fatal error leaves the cursor on the failing
// line.
func (it *Interpreter) Step() (value int64, ok bool, err error) {
	label, ok := it.Cursor()
	if !ok {
		return 0, false, nil
	}
	val, err := it.runLine(label)
	if err != nil {
		return 0, true, err
	}
	it.started, it.last, it.result = true, label, val
	return val, true, nil
}

// Run steps through the remaining lines and returns the result of the last
// one, or 0 for an empty program. ctx is checked between lines.
func (it *Interpreter) Run(ctx context.Context) (int64, error) {
	it.emit(TraceEvent{Event: TraceRunStart})
	defer it.emit(TraceEvent{Event: TraceRunEnd})

	for {
		if err := ctx.Err(); err != nil {
			return it.result, err
		}
		_, ok, err := it.Step()
		if err != nil {
			return it.result, err
		}
		if !ok {
			return it.result, nil
		}
	}
}

// Evaluate computes the value of node against the current variables. ok is
// false for nodes that yield no value, such as PRINT.
func (it *Interpreter) Evaluate(node ast.Node) (value int64, ok bool, err error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		v, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil {
			return 0, false, runtimeErr(diagnostics.EInternal, n, "malformed number literal %q", n.Text)
		}
		return v, true, nil

	case *ast.StringLiteral:
		return 0, false, nil

	case *ast.Identifier:
		v, found := it.env.Get(n.Name)
		if !found {
			return 0, false, runtimeErr(diagnostics.EUnbound, n, "variable %s is not defined", n.Name)
		}
		return v, true, nil

	case *ast.Assignment:
		v, err := it.evalValue(n.Value, "value of "+n.Target.Name)
		if err != nil {
			return 0, false, err
		}
		it.env.Set(n.Target.Name, v)
		return v, true, nil

	case *ast.BinaryExpr:
		return it.evalBinary(n)

	case *ast.FnCall:
		return it.evalCall(n)

	case nil:
		return 0, false, &RuntimeError{Code: diagnostics.EInternal, Message: "nil statement"}
	}
	return 0, false, runtimeErr(diagnostics.EInternal, node, "cannot evaluate %s", node.Kind())
}

// evalValue evaluates a node that must yield a value.
func (it *Interpreter) evalValue(node ast.Node, what string) (int64, error) {
	v, ok, err := it.Evaluate(node)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, runtimeErr(diagnostics.EInternal, node, "%s has no value", what)
	}
	return v, nil
}

func (it *Interpreter) evalBinary(n *ast.BinaryExpr) (int64, bool, error) {
	left, err := it.evalValue(n.Left, "left operand of "+n.OpText)
	if err != nil {
		return 0, false, err
	}
	right, err := it.evalValue(n.Right, "right operand of "+n.OpText)
	if err != nil {
		return 0, false, err
	}
	fn, ok := operators[n.Op]
	if !ok {
		return 0, false, runtimeErr(diagnostics.EUnsupportedOp, n, "unsupported operator %q", n.OpText)
	}
	return fn(left, right), true, nil
}

func (it *Interpreter) evalCall(n *ast.FnCall) (int64, bool, error) {
	// Arguments are evaluated before the function is looked up.
	args := make([]int64, len(n.Args))
	var noValue ast.Node
	noValueAt := 0
	for i, a := range n.Args {
		v, ok, err := it.Evaluate(a)
		if err != nil {
			return 0, false, err
		}
		if !ok && noValue == nil {
			noValue, noValueAt = a, i+1
		}
		args[i] = v
	}

	fn := it.builtins.Get(n.Builtin)
	if n.Builtin == ast.BuiltinUnknown || fn == nil {
		return 0, false, runtimeErr(diagnostics.EUnknownFn, n, "unknown function %s", n.Name)
	}
	if len(n.Args) != fn.Arity {
		return 0, false, runtimeErr(diagnostics.EFnArgs, n,
			"%s expects %d argument(s), got %d", n.Name, fn.Arity, len(n.Args))
	}
	if noValue != nil {
		return 0, false, runtimeErr(diagnostics.EFnArgs, noValue, "argument %d of %s has no value", noValueAt, n.Name)
	}

	v, ok, err := fn.Execute(stdlib.Env{Out: it.out}, args)
	if err != nil {
		var re *RuntimeError
		if errors.As(err, &re) {
			return 0, false, re
		}
		return 0, false, runtimeErr(diagnostics.EIO, n, "%v", err)
	}
	return v, ok, nil
}

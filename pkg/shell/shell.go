// Package shell implements the interactive Bad Basic session.
//
// Numbered lines are collected into a program buffer; RUN executes the
// buffer in a fresh interpreter and then clears it. Anything else that is
// not a shell command runs immediately as a one-line program.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/config"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/formatter"
	"github.com/thomasrohde/badbasic/pkg/help"
	"github.com/thomasrohde/badbasic/pkg/runtime"
)

// Source name used in diagnostics for shell input.
const sourceName = "<shell>"

// Shell commands. They are matched case-sensitively, like LET.
const (
	cmdRun  = "RUN"
	cmdList = "LIST"
	cmdNew  = "NEW"
	cmdHelp = "HELP"
	cmdExit = "EXIT"
)

// Shell is one interactive session.
type Shell struct {
	in     *bufio.Scanner
	out    io.Writer
	log    zerolog.Logger
	rtOpts []runtime.Option
	rt     *runtime.Runtime
	cfg    config.ShellConfig
	style  styles
	buffer *ast.Program
}

// Option configures a Shell.
type Option func(*Shell)

// WithConfig applies the [shell] section of the config file.
func WithConfig(cfg config.ShellConfig) Option {
	return func(s *Shell) {
		s.cfg = cfg
	}
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Shell) {
		s.log = l
	}
}

// WithRuntime passes options to the runtime that executes programs.
// Output always goes to the shell's writer.
func WithRuntime(opts ...runtime.Option) Option {
	return func(s *Shell) {
		s.rtOpts = append(s.rtOpts, opts...)
	}
}

// New creates a shell reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:     bufio.NewScanner(in),
		out:    out,
		log:    zerolog.Nop(),
		cfg:    config.Default().Shell,
		buffer: ast.NewProgram(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.style = newStyles(out, s.cfg.Color)
	s.rt = runtime.New(append(s.rtOpts, runtime.WithOutput(out))...)
	return s
}

// Buffer returns the program entered so far.
func (s *Shell) Buffer() *ast.Program {
	return s.buffer
}

// Start runs the read-eval loop until EXIT, end of input or ctx is done.
// When halt_on_fatal is set, the first fatal error ends the session and is
// returned.
func (s *Shell) Start(ctx context.Context) error {
	s.log.Info().Msg("session started")
	defer s.log.Info().Msg("session ended")

	if s.cfg.Banner {
		s.printBanner()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.style.prompt.Render(s.cfg.Prompt))
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("shell: reading input: %w", err)
			}
			fmt.Fprintln(s.out)
			return nil
		}

		line := strings.TrimRight(s.in.Text(), "\r")
		done, err := s.handle(ctx, line)
		if err != nil {
			s.printError(err)
			if s.cfg.HaltOnFatal {
				s.log.Warn().Err(err).Msg("session halted")
				return err
			}
		}
		if done {
			return nil
		}
	}
}

func (s *Shell) printBanner() {
	fmt.Fprintln(s.out, s.style.banner.Render("Bad Basic [version "+help.Version+"]"))
	fmt.Fprintln(s.out, s.style.version.Render(`Type HELP for a quick reference, EXIT to leave.`))
}

// handle processes one input line. done reports that the session should end.
func (s *Shell) handle(ctx context.Context, line string) (done bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false, nil
	}

	fields := strings.Fields(trimmed)
	switch fields[0] {
	case cmdExit:
		return true, nil
	case cmdRun:
		return false, s.run(ctx)
	case cmdList:
		fmt.Fprint(s.out, formatter.Format(s.buffer))
		return false, nil
	case cmdNew:
		s.buffer = ast.NewProgram()
		return false, nil
	case cmdHelp:
		s.help(fields[1:])
		return false, nil
	}

	if isDigit(line[0]) {
		return false, s.enter(line)
	}
	return false, s.immediate(ctx, line)
}

// enter merges a numbered line into the buffer.
func (s *Shell) enter(line string) error {
	program, err := s.rt.Parse(line, sourceName)
	if err != nil {
		return err
	}
	s.buffer.Merge(program)
	s.log.Debug().Uints64("labels", labelsOf(program)).Msg("line entered")
	return nil
}

// run executes the buffer in a fresh interpreter. The buffer is cleared
// afterwards, also when the run fails.
func (s *Shell) run(ctx context.Context) error {
	program := s.buffer
	s.buffer = ast.NewProgram()

	res, err := s.rt.Execute(ctx, program)
	if res != nil {
		s.printWarnings(res.Diagnostics)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.style.result.Render(fmt.Sprintf("> %d", res.Value)))
	return nil
}

// immediate runs an unnumbered line on its own, under label 0.
func (s *Shell) immediate(ctx context.Context, line string) error {
	program, err := s.rt.Parse("0 "+line, sourceName)
	if err != nil {
		return err
	}
	res, err := s.rt.Execute(ctx, program)
	if res != nil {
		s.printWarnings(res.Diagnostics)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.style.result.Render(fmt.Sprintf("%d", res.Value)))
	return nil
}

func (s *Shell) help(args []string) {
	if len(args) == 0 {
		fmt.Fprint(s.out, help.QUICKREF)
		return
	}
	_, content, err := help.MatchTopic(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintln(s.out, s.style.warn.Render(err.Error()))
		fmt.Fprintf(s.out, "Available topics: %s\n", strings.Join(help.TopicList, ", "))
		return
	}
	fmt.Fprint(s.out, content)
}

func (s *Shell) printWarnings(diags []diagnostics.Diagnostic) {
	for _, d := range diags {
		s.printLines(s.style.warn, diagnostics.FormatDiagnostic(d, true))
	}
}

func (s *Shell) printError(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	for _, d := range runtime.Diagnose(err) {
		s.printLines(s.style.err, diagnostics.FormatDiagnostic(d, true))
	}
}

// printLines renders each line on its own so multi-line text is not padded.
func (s *Shell) printLines(style lipgloss.Style, text string) {
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintln(s.out, style.Render(line))
	}
}

func labelsOf(p *ast.Program) []uint64 {
	labels := p.Labels()
	out := make([]uint64, len(labels))
	for i, l := range labels {
		out[i] = uint64(l)
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

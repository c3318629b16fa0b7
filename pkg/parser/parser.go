// Package parser implements the badbasic parser.
//
// Each source line is a label followed by one statement. Statements are
// matched by trying a fixed list of alternatives in order; an alternative
// only matches when the cursor stands on a terminator afterwards.
package parser

import (
	"fmt"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/lexer"
)

// terminator selects which tokens end a statement.
type terminator int

const (
	topLevel terminator = iota // end of line or input
	argument                   // ',' or ')'
)

const letKeyword = "LET"

type parser struct {
	cur   *cursor
	prog  *ast.Program
	diags []diagnostics.Diagnostic
}

// Parse tokenizes source and parses it into a program.
func Parse(source, filename string) (*ast.Program, []diagnostics.Diagnostic) {
	tokens, err := lexer.Tokenize(source, filename)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, []diagnostics.Diagnostic{le.Diag}
		}
		return nil, []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.ELex, err.Error(), nil, "")}
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token stream produced by lexer.Tokenize. Parsing
// stops at the first error; the program is nil whenever diagnostics are
// returned. A label that appears twice keeps its last statement.
func ParseTokens(tokens []lexer.Token) (*ast.Program, []diagnostics.Diagnostic) {
	p := &parser{cur: newCursor(tokens), prog: ast.NewProgram()}
	p.parseProgram()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return p.prog, nil
}

func (p *parser) failed() bool {
	return len(p.diags) > 0
}

func (p *parser) addError(code, msg string, span ast.Span, hint string) {
	p.diags = append(p.diags, diagnostics.MakeDiag(code, msg, &span, hint))
}

func spanFromTo(start, end ast.Span) ast.Span {
	return ast.Span{
		File:      start.File,
		Offset:    start.Offset,
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// spanFrom covers everything from start up to the last consumed token.
func (p *parser) spanFrom(start ast.Span) ast.Span {
	return spanFromTo(start, p.cur.previous().Span)
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokEOF:
		return "end of input"
	case lexer.TokLinebreak:
		return "end of line"
	case lexer.TokWhitespace:
		return "whitespace"
	}
	return fmt.Sprintf("'%s'", tok.Value)
}

// --- Program ---

func (p *parser) parseProgram() {
	for !p.cur.at(lexer.TokEOF) {
		if p.cur.atLineEnd() {
			p.cur.skipWhitespace()
			p.cur.accept(lexer.TokLinebreak)
			continue
		}
		if !p.parseLine() {
			return
		}
	}
}

func (p *parser) parseLine() bool {
	labelTok, ok := p.cur.accept(lexer.TokNumber)
	if !ok {
		p.addError(diagnostics.EMissingLabel,
			fmt.Sprintf("expected line number, got %s", describe(labelTok)),
			labelTok.Span, "every line starts with a number, e.g. 10 PRINT(1)")
		return false
	}
	label, err := ast.ParseLabel(labelTok.Value)
	if err != nil {
		p.addError(diagnostics.EMissingLabel, err.Error(), labelTok.Span, "line numbers must fit in 64 bits")
		return false
	}
	if tok, ok := p.cur.accept(lexer.TokWhitespace); !ok {
		p.addError(diagnostics.EMissingLabel,
			fmt.Sprintf("expected whitespace after line number %s, got %s", labelTok.Value, describe(tok)),
			tok.Span, "")
		return false
	}

	start := p.cur.current()
	stmt, ok := p.parseStatement(topLevel)
	if p.failed() {
		return false
	}
	if !ok {
		p.addError(diagnostics.ENoRule,
			fmt.Sprintf("line %s: no statement matches %s", labelTok.Value, describe(start)),
			start.Span, "expected an assignment, a term, a function call, a number or an identifier")
		return false
	}

	p.prog.Set(label, stmt)
	p.cur.skipWhitespace()
	p.cur.accept(lexer.TokLinebreak)
	return true
}

// --- Statements ---

// parseStatement tries every alternative in priority order. It returns
// ok=false when nothing matched; a committed alternative that fails records a
// diagnostic instead.
func (p *parser) parseStatement(ctx terminator) (ast.Node, bool) {
	alternatives := []func(terminator) (ast.Node, bool){
		p.parseAssign,
		p.parseTerm,
		p.parseCall,
		p.parseNumber,
		p.parseIdent,
	}
	for _, alt := range alternatives {
		mark := p.cur.checkpoint()
		node, ok := alt(ctx)
		if p.failed() {
			return nil, false
		}
		if ok && p.atTerminator(ctx) {
			return node, true
		}
		p.cur.restore(mark)
	}
	return nil, false
}

// atTerminator skips trailing whitespace and reports whether the statement
// ends here. The terminator itself is left for the caller.
func (p *parser) atTerminator(ctx terminator) bool {
	p.cur.skipWhitespace()
	switch ctx {
	case argument:
		return p.cur.at(lexer.TokComma) || p.cur.at(lexer.TokRParen)
	default:
		return p.cur.at(lexer.TokLinebreak) || p.cur.at(lexer.TokEOF)
	}
}

// parseAssign parses LET <ident> = <term|number|ident>. Once LET and the
// target name are read the assignment is committed.
func (p *parser) parseAssign(ctx terminator) (ast.Node, bool) {
	p.cur.skipWhitespace()
	kw := p.cur.current()
	if kw.Type != lexer.TokIdent || kw.Value != letKeyword {
		return nil, false
	}
	p.cur.advance()
	p.cur.skipWhitespace()
	nameTok, ok := p.cur.accept(lexer.TokIdent)
	if !ok {
		return nil, false
	}
	target := ast.NewIdent(nameTok.Value, nameTok.Span)

	p.cur.skipWhitespace()
	eq := p.cur.current()
	if eq.Type != lexer.TokAssign || eq.Value != "=" {
		p.addError(diagnostics.EBadAssign,
			fmt.Sprintf("expected '=' after LET %s, got %s", nameTok.Value, describe(eq)),
			eq.Span, "write LET "+nameTok.Value+" = <value>")
		return nil, false
	}
	p.cur.advance()
	p.cur.skipWhitespace()

	rhsStart := p.cur.current()
	for _, alt := range []func(terminator) (ast.Node, bool){p.parseTerm, p.parseNumber, p.parseIdent} {
		mark := p.cur.checkpoint()
		value, ok := alt(ctx)
		if ok {
			span := p.spanFrom(kw.Span)
			if p.atTerminator(ctx) {
				return ast.NewAssignment(target, value, span), true
			}
		}
		p.cur.restore(mark)
	}

	p.addError(diagnostics.EBadAssign,
		fmt.Sprintf("invalid value for LET %s: %s", nameTok.Value, describe(rhsStart)),
		rhsStart.Span, "the value must be a number, a variable or a term such as X + 1")
	return nil, false
}

// parseOperand parses the number or identifier on either side of an operator.
func (p *parser) parseOperand() (ast.Node, bool) {
	p.cur.skipWhitespace()
	tok := p.cur.current()
	switch tok.Type {
	case lexer.TokNumber:
		p.cur.advance()
		return ast.NewNumber(tok.Value, tok.Span), true
	case lexer.TokIdent:
		p.cur.advance()
		return ast.NewIdent(tok.Value, tok.Span), true
	}
	return nil, false
}

// parseTerm parses <operand> <op> <operand|term>. The right side recurses
// first, so terms group to the right: 10 - 2 - 3 is 10 - (2 - 3).
func (p *parser) parseTerm(ctx terminator) (ast.Node, bool) {
	left, ok := p.parseOperand()
	if !ok {
		return nil, false
	}
	p.cur.skipWhitespace()
	opTok, ok := p.cur.accept(lexer.TokOperator)
	if !ok {
		return nil, false
	}

	mark := p.cur.checkpoint()
	right, ok := p.parseTerm(ctx)
	if !ok {
		p.cur.restore(mark)
		right, ok = p.parseOperand()
		if !ok {
			return nil, false
		}
	}
	return ast.NewBinary(opTok.Value, left, right, p.spanFrom(left.NodeSpan())), true
}

// parseCall parses <ident>(<stmt>, <stmt>, ...). Each argument uses the full
// statement grammar.
func (p *parser) parseCall(ctx terminator) (ast.Node, bool) {
	p.cur.skipWhitespace()
	nameTok, ok := p.cur.accept(lexer.TokIdent)
	if !ok {
		return nil, false
	}
	p.cur.skipWhitespace()
	if _, ok := p.cur.accept(lexer.TokLParen); !ok {
		return nil, false
	}
	call := ast.NewCall(nameTok.Value, nameTok.Span)

	p.cur.skipWhitespace()
	if _, ok := p.cur.accept(lexer.TokRParen); ok {
		call.Span = p.spanFrom(nameTok.Span)
		return call, true
	}

	for {
		arg, ok := p.parseStatement(argument)
		if !ok {
			return nil, false
		}
		call.AddArg(arg)
		if _, ok := p.cur.accept(lexer.TokComma); ok {
			continue
		}
		if _, ok := p.cur.accept(lexer.TokRParen); ok {
			break
		}
		return nil, false
	}
	call.Span = p.spanFrom(nameTok.Span)
	return call, true
}

func (p *parser) parseNumber(ctx terminator) (ast.Node, bool) {
	p.cur.skipWhitespace()
	tok, ok := p.cur.accept(lexer.TokNumber)
	if !ok {
		return nil, false
	}
	return ast.NewNumber(tok.Value, tok.Span), true
}

func (p *parser) parseIdent(ctx terminator) (ast.Node, bool) {
	p.cur.skipWhitespace()
	tok, ok := p.cur.accept(lexer.TokIdent)
	if !ok {
		return nil, false
	}
	return ast.NewIdent(tok.Value, tok.Span), true
}

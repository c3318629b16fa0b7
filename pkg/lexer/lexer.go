// Package lexer implements the badbasic tokenizer.
//
// Every character belongs to exactly one class and consecutive characters of
// the same class form one token, so concatenating the token values always
// reproduces the source.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	TokNumber TokenType = iota
	TokIdent
	TokAssign     // =
	TokOperator   // + - * /
	TokWhitespace // ' '
	TokLinebreak  // \n
	TokLParen     // (
	TokRParen     // )
	TokComma      // ,

	// Special
	TokEOF
)

func (t TokenType) String() string {
	switch t {
	case TokNumber:
		return "Number"
	case TokIdent:
		return "Identifier"
	case TokAssign:
		return "Assign"
	case TokOperator:
		return "Operator"
	case TokWhitespace:
		return "Whitespace"
	case TokLinebreak:
		return "Linebreak"
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	case TokComma:
		return "Comma"
	case TokEOF:
		return "EOF"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  ast.Span
}

type scanner struct {
	source   string
	filename string
	pos      int // byte offset
	index    int // code point offset
	line     int
	col      int
}

func newScanner(source, filename string) *scanner {
	return &scanner{
		source:   source,
		filename: filename,
		pos:      0,
		index:    0,
		line:     1,
		col:      1,
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() (rune, int) {
	return utf8.DecodeRuneInString(s.source[s.pos:])
}

func (s *scanner) advance() rune {
	r, size := s.peek()
	s.pos += size
	s.index++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) span(startIndex, startLine, startCol int) ast.Span {
	return ast.Span{
		File:      s.filename,
		Offset:    startIndex,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   s.line,
		EndCol:    s.col,
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// classify returns the class of r in precedence order. Digits are checked
// before word characters, so "X1" splits into an identifier and a number.
func classify(r rune, size int) (TokenType, bool) {
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	switch {
	case isDigit(r):
		return TokNumber, true
	case r == '=':
		return TokAssign, true
	case r == '+' || r == '-' || r == '*' || r == '/':
		return TokOperator, true
	case r == '\n':
		return TokLinebreak, true
	case isWord(r):
		return TokIdent, true
	case r == ' ':
		return TokWhitespace, true
	case r == '(':
		return TokLParen, true
	case r == ')':
		return TokRParen, true
	case r == ',':
		return TokComma, true
	}
	return 0, false
}

// merges reports whether runs of this class collapse into one token.
// Delimiters stay single so nested calls keep one token per parenthesis.
func merges(t TokenType) bool {
	switch t {
	case TokLParen, TokRParen, TokComma:
		return false
	}
	return true
}

func (s *scanner) lexError(index, line, col int, msg string) error {
	diag := diagnostics.MakeDiag(
		diagnostics.ELex,
		msg,
		&ast.Span{File: s.filename, Offset: index, StartLine: line, StartCol: col, EndLine: line, EndCol: col + 1},
		"",
	)
	return &LexError{Diag: diag, Index: index}
}

// LexError wraps a diagnostic for lex errors. Index is the code point offset
// of the character that could not be classified.
type LexError struct {
	Diag  diagnostics.Diagnostic
	Index int
}

func (e *LexError) Error() string {
	return e.Diag.Message
}

func (s *scanner) nextToken() (Token, error) {
	if s.atEnd() {
		return Token{
			Type:  TokEOF,
			Value: "",
			Span:  s.span(s.index, s.line, s.col),
		}, nil
	}

	startPos, startIndex := s.pos, s.index
	startLine, startCol := s.line, s.col

	r, size := s.peek()
	typ, ok := classify(r, size)
	if !ok {
		if r == utf8.RuneError && size <= 1 {
			return Token{}, s.lexError(startIndex, startLine, startCol,
				fmt.Sprintf("invalid UTF-8 at index %d", startIndex))
		}
		return Token{}, s.lexError(startIndex, startLine, startCol,
			fmt.Sprintf("unknown character %q at index %d", r, startIndex))
	}
	s.advance()

	if merges(typ) {
		for !s.atEnd() {
			next, ok := classify(s.peek())
			if !ok || next != typ {
				break
			}
			s.advance()
		}
	}

	return Token{
		Type:  typ,
		Value: s.source[startPos:s.pos],
		Span:  s.span(startIndex, startLine, startCol),
	}, nil
}

// Tokenize breaks source code into a slice of tokens ending with TokEOF.
func Tokenize(source, filename string) ([]Token, error) {
	s := newScanner(source, filename)
	var tokens []Token

	for {
		tok, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			break
		}
	}

	return tokens, nil
}

package parser

import (
	"github.com/thomasrohde/badbasic/pkg/ast"
	"github.com/thomasrohde/badbasic/pkg/lexer"
)

// cursor walks a token slice. Alternatives take a checkpoint before they
// consume anything and restore it when they do not match.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func newCursor(tokens []lexer.Token) *cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokEOF {
		var span ast.Span
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1].Span
			span = ast.Span{File: last.File, StartLine: last.EndLine, StartCol: last.EndCol, EndLine: last.EndLine, EndCol: last.EndCol}
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.Token{Type: lexer.TokEOF, Span: span})
	}
	return &cursor{tokens: tokens}
}

func (c *cursor) checkpoint() int { return c.pos }

func (c *cursor) restore(mark int) { c.pos = mark }

func (c *cursor) current() lexer.Token {
	return c.tokens[c.pos]
}

func (c *cursor) at(typ lexer.TokenType) bool {
	return c.current().Type == typ
}

// previous returns the last consumed token, or the current one at the start.
func (c *cursor) previous() lexer.Token {
	if c.pos == 0 {
		return c.tokens[0]
	}
	return c.tokens[c.pos-1]
}

func (c *cursor) advance() lexer.Token {
	tok := c.current()
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
	return tok
}

// accept consumes the current token if it has the given type.
func (c *cursor) accept(typ lexer.TokenType) (lexer.Token, bool) {
	if !c.at(typ) {
		return c.current(), false
	}
	return c.advance(), true
}

func (c *cursor) skipWhitespace() {
	for c.at(lexer.TokWhitespace) {
		c.advance()
	}
}

// atLineEnd reports whether only whitespace remains before the end of the
// line, without consuming anything.
func (c *cursor) atLineEnd() bool {
	mark := c.checkpoint()
	defer c.restore(mark)
	c.skipWhitespace()
	return c.at(lexer.TokLinebreak) || c.at(lexer.TokEOF)
}

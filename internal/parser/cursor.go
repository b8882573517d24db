// Package parser implements the precedence-climbing expression parser and
// the recursive-descent handlers for statements and definitions described
// in spec §4.5–§4.6.
package parser

import (
	"github.com/aolang/ao/internal/lexer"
	"github.com/aolang/ao/pkg/token"
)

// TokenCursor is an immutable cursor over a tokenizer's output: every
// navigation method returns a new cursor rather than mutating the
// receiver, and a buffered token slice is shared across the cursors
// derived from one tokenizer so repeated peeks never re-tokenize input.
// This is the lightweight, cursor-only backtracking mechanism spec §9
// calls for ("implement with a checkpoint/restore on the token iterator
// rather than a full multi-step undo log").
type TokenCursor struct {
	tz      *lexer.Tokenizer
	tokens  []token.Token
	errs    []error // not written: Peek returns a lexer error immediately instead of recording it
	index   int
	current token.Token
}

// NewTokenCursor buffers the first token from tz and returns a cursor
// positioned at it.
func NewTokenCursor(tz *lexer.Tokenizer) (*TokenCursor, error) {
	tok, err := tz.Next()
	if err != nil {
		return nil, err
	}
	return &TokenCursor{
		tz:      tz,
		tokens:  []token.Token{tok},
		current: tok,
	}, nil
}

func (c *TokenCursor) Current() token.Token { return c.current }

// Peek returns the token n positions ahead (Peek(0) == Current()),
// buffering further tokenizer output as needed. A lexer error surfaced
// while filling the buffer is fatal and returned immediately: the
// tokenizer, like the parser, never recovers past its first error.
func (c *TokenCursor) Peek(n int) (token.Token, error) {
	if n < 0 {
		return c.current, nil
	}
	target := c.index + n
	for target >= len(c.tokens) {
		last := c.tokens[len(c.tokens)-1]
		if last.Category == token.CatEOF {
			return last, nil
		}
		tok, err := c.tz.Next()
		if err != nil {
			return token.Token{}, err
		}
		c.tokens = append(c.tokens, tok)
	}
	return c.tokens[target], nil
}

// Advance returns a new cursor at the next token.
func (c *TokenCursor) Advance() (*TokenCursor, error) {
	if _, err := c.Peek(1); err != nil {
		return nil, err
	}
	newIndex := c.index + 1
	if newIndex >= len(c.tokens) {
		newIndex = len(c.tokens) - 1
	}
	return &TokenCursor{tz: c.tz, tokens: c.tokens, index: newIndex, current: c.tokens[newIndex]}, nil
}

// Is reports whether the current token is a reserved token of kind k.
func (c *TokenCursor) Is(k token.Kind) bool { return c.current.Is(k) }

// IsCategory reports whether the current token has the given category.
func (c *TokenCursor) IsCategory(cat token.Category) bool { return c.current.Category == cat }

// Mark is a lightweight saved cursor position (one integer) for
// speculative parsing, e.g. the identifier-followed-by-"(" call probe.
type Mark struct{ index int }

// Mark saves the current position.
func (c *TokenCursor) Mark() Mark { return Mark{index: c.index} }

// ResetTo rewinds to a previously saved Mark.
func (c *TokenCursor) ResetTo(m Mark) *TokenCursor {
	if m.index < 0 || m.index >= len(c.tokens) {
		return c
	}
	return &TokenCursor{tz: c.tz, tokens: c.tokens, index: m.index, current: c.tokens[m.index]}
}

// IsEOF reports whether the current token is end-of-file.
func (c *TokenCursor) IsEOF() bool { return c.current.Category == token.CatEOF }

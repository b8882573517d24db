// Package lexer implements the tokenizer state machine described in spec
// §4.4: a single-threaded loop over a PushBack character stream
// (internal/source) that yields one token per call to Next, annotated
// with source position, consuming reserved lexemes via the maximal-munch
// recognizer in pkg/token.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aolang/ao/internal/source"
	"github.com/aolang/ao/pkg/token"
)

// spacesPerIndentUnit resolves spec §6's "fixed expansion" for leading
// whitespace: four columns of space make one indentation unit. A lone
// tab also counts as one complete unit (TYPE_Script and its scripting-
// syntax ancestors near-universally treat a bare tab this way); mixing a
// tab into a partially-typed space unit is rejected per the conservative
// reading of the open question in spec §9.
const spacesPerIndentUnit = 4

// Tokenizer produces the lazy token sequence spec §2 describes. It owns
// its source stream for the duration of a tokenize; callers that abort
// early simply drop the Tokenizer.
type Tokenizer struct {
	src *source.Stream

	line, col int
	offset    int
	// colBeforeNewline is the column pop was at before the newline it
	// most recently consumed, so push can restore it.
	colBeforeNewline int

	atLineStart    bool
	pendingIndents int
	atEOF          bool
}

// New wraps src in a Tokenizer positioned at the start of the input.
func New(src *source.Stream) *Tokenizer {
	return &Tokenizer{src: src, line: 1, col: 1, atLineStart: true}
}

func (t *Tokenizer) pos() token.Position {
	return token.Position{Line: t.line, Column: t.col, Offset: t.offset}
}

// pop is the single point of contact with the underlying stream; every
// rune consumed by the tokenizer passes through here so position
// bookkeeping never drifts from what was actually read.
func (t *Tokenizer) pop() (rune, bool) {
	r, ok := t.src.Pop()
	if !ok {
		return 0, false
	}
	t.offset++
	if r == '\n' {
		t.colBeforeNewline = t.col
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return r, true
}

// push reverses pop. The maximal-munch recognizer pushes back the
// character it read past an operator, which is a newline when the
// operator ends the line (the ":" of an if header); for a newline the
// line counter and the column before it are restored. Only the most
// recent newline's column is kept, which covers the recognizer: it stops
// reading at the first character no operator continues with.
func (t *Tokenizer) push(r rune) {
	t.src.Push(r)
	t.offset--
	if r == '\n' {
		t.line--
		t.col = t.colBeforeNewline
		return
	}
	t.col--
}

// Pop and Push let *Tokenizer satisfy token.CharSource directly, so the
// maximal-munch recognizer can run straight off the tokenizer's own
// position-tracked stream.
func (t *Tokenizer) Pop() (rune, bool) { return t.pop() }
func (t *Tokenizer) Push(r rune)       { t.push(r) }

func (t *Tokenizer) errf(code, format string, args ...any) *TokenizerError {
	return &TokenizerError{Code: code, Pos: t.pos(), Message: fmt.Sprintf(format, args...)}
}

// Next yields the next token in the stream, or an error. Once end-of-file
// has been produced, every subsequent call returns the same EOF token
// rather than erroring, so callers (notably the token cursor's one-step
// lookahead) can peek past the end without special-casing it.
func (t *Tokenizer) Next() (token.Token, error) {
	if t.atEOF {
		return token.Token{Category: token.CatEOF, Pos: t.pos()}, nil
	}

	if t.pendingIndents > 0 {
		p := t.pos()
		t.pendingIndents--
		return token.Token{Category: token.CatIndent, Pos: p}, nil
	}

	if t.atLineStart {
		if tok, done, err := t.scanLineStart(); done {
			return tok, err
		}
	}

	for {
		r, ok := t.peek()
		if !ok {
			t.atEOF = true
			return token.Token{Category: token.CatEOF, Pos: t.pos()}, nil
		}

		switch {
		case r == ' ' || r == '\t':
			t.pop()
			continue
		case r == '#':
			t.skipComment()
			continue
		case r == '\n':
			p := t.pos()
			t.pop()
			t.atLineStart = true
			return token.Token{Category: token.CatNewline, Pos: p}, nil
		case isDigit(r):
			return t.scanNumber()
		case r == '"' || r == '\'':
			return t.scanString()
		case isIdentStart(r):
			return t.scanIdentOrKeyword()
		default:
			return t.scanOperator()
		}
	}
}

// scanLineStart consumes leading indentation at the start of a logical
// line per spec §4.4. If the line turns out to be blank or comment-only,
// no indentation markers are emitted for it at all — only the newline
// (or EOF) that ends it — matching the common scripting-language
// convention that blank lines never affect block structure.
func (t *Tokenizer) scanLineStart() (token.Token, bool, error) {
	units, err := t.scanIndent()
	if err != nil {
		return token.Token{}, true, err
	}

	r, ok := t.peek()
	if !ok {
		t.atLineStart = false
		t.atEOF = true
		return token.Token{Category: token.CatEOF, Pos: t.pos()}, true, nil
	}
	if r == '\n' || r == '#' {
		// Blank or comment-only line: stay at line start conceptually
		// (no indents queued) and let the main loop handle the comment
		// or newline directly.
		t.atLineStart = false
		return token.Token{}, false, nil
	}

	t.atLineStart = false
	if units > 0 {
		p := t.pos()
		t.pendingIndents = units - 1
		return token.Token{Category: token.CatIndent, Pos: p}, true, nil
	}
	return token.Token{}, false, nil
}

// scanIndent counts indentation units of leading whitespace, expanding a
// run of four spaces or a lone tab to one unit each. A tab encountered
// while a partial (incomplete) space run is pending is a mixed-
// indentation error; a trailing partial space run that never reaches
// four spaces is simply not counted as a unit.
func (t *Tokenizer) scanIndent() (int, error) {
	units := 0
	partial := 0
	for {
		r, ok := t.peek()
		if !ok {
			return units, nil
		}
		switch r {
		case ' ':
			t.pop()
			partial++
			if partial == spacesPerIndentUnit {
				units++
				partial = 0
			}
		case '\t':
			if partial > 0 {
				return 0, t.errf(ErrMixedIndentation, "tab follows %d space(s) within one indentation unit", partial)
			}
			t.pop()
			units++
		default:
			return units, nil
		}
	}
}

// peek reports the next rune without consuming it. It bypasses the
// position-tracking pop/push pair on purpose: a peek must leave line,
// column and offset completely unchanged, including when the peeked
// character is itself a newline (pop+push on '\n' would otherwise bump
// the line counter on the peek and again on the real pop that follows).
func (t *Tokenizer) peek() (rune, bool) {
	r, ok := t.src.Pop()
	if !ok {
		return 0, false
	}
	t.src.Push(r)
	return r, true
}

func (t *Tokenizer) skipComment() {
	for {
		r, ok := t.peek()
		if !ok || r == '\n' {
			return
		}
		t.pop()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool { return isIdentStart(r) || isDigit(r) }

// scanNumber reads an integer or floating-point literal: a run of digits,
// an optional fractional part, and an optional exponent. Hexadecimal and
// binary prefixes are not part of this grammar (see SPEC_FULL.md).
func (t *Tokenizer) scanNumber() (token.Token, error) {
	start := t.pos()
	var sb strings.Builder
	isFloat := false

	for {
		r, ok := t.peek()
		if !ok || !isDigit(r) {
			break
		}
		t.pop()
		sb.WriteRune(r)
	}

	if r, ok := t.peek(); ok && r == '.' {
		t.pop()
		sb.WriteRune('.')
		isFloat = true
		n := 0
		for {
			r, ok := t.peek()
			if !ok || !isDigit(r) {
				break
			}
			t.pop()
			sb.WriteRune(r)
			n++
		}
		if n == 0 {
			return token.Token{}, t.errf(ErrMalformedNumber, "expected digits after decimal point")
		}
	}

	if r, ok := t.peek(); ok && (r == 'e' || r == 'E') {
		t.pop()
		sb.WriteRune(r)
		isFloat = true
		if r, ok := t.peek(); ok && (r == '+' || r == '-') {
			t.pop()
			sb.WriteRune(r)
		}
		n := 0
		for {
			r, ok := t.peek()
			if !ok || !isDigit(r) {
				break
			}
			t.pop()
			sb.WriteRune(r)
			n++
		}
		if n == 0 {
			return token.Token{}, t.errf(ErrMalformedNumber, "expected digits in exponent")
		}
	}

	lit := sb.String()
	tok := token.Token{Category: token.CatNumber, Pos: start, Literal: lit, IsFloat: isFloat}
	if isFloat {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return token.Token{}, t.errf(ErrMalformedNumber, "%v", err)
		}
		tok.FloatValue = v
	} else {
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return token.Token{}, t.errf(ErrMalformedNumber, "%v", err)
		}
		tok.IntValue = v
	}
	return tok, nil
}

// scanString reads a quoted string literal, resolving the escape
// sequences \n \t \\ \" \' as it goes. A newline or end-of-input before
// the closing quote is an unterminated-string error: ao string literals
// do not span lines.
func (t *Tokenizer) scanString() (token.Token, error) {
	start := t.pos()
	quote, _ := t.pop()

	var sb strings.Builder
	raw := []rune{quote}
	for {
		r, ok := t.pop()
		if !ok || r == '\n' {
			return token.Token{}, t.errf(ErrUnterminatedString, "unterminated string literal")
		}
		raw = append(raw, r)
		if r == quote {
			break
		}
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		esc, ok := t.pop()
		if !ok {
			return token.Token{}, t.errf(ErrUnterminatedString, "unterminated string literal")
		}
		raw = append(raw, esc)
		switch esc {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		default:
			return token.Token{}, t.errf(ErrUnterminatedString, "unrecognized escape sequence \\%c", esc)
		}
	}

	return token.Token{Category: token.CatString, Pos: start, Literal: string(raw), StringValue: sb.String()}, nil
}

// scanIdentOrKeyword reads an identifier-shaped lexeme (ASCII letters,
// digits, underscore) and consults the reserved-keyword table; a match
// yields a reserved token, anything else an identifier.
func (t *Tokenizer) scanIdentOrKeyword() (token.Token, error) {
	start := t.pos()
	var sb strings.Builder
	for {
		r, ok := t.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		t.pop()
		sb.WriteRune(r)
	}
	lit := sb.String()
	if k := token.LookupKeyword(lit); k != token.Unknown {
		return token.Token{Category: token.CatReserved, Kind: k, Pos: start, Literal: lit}, nil
	}
	return token.Token{Category: token.CatIdent, Pos: start, Literal: lit}, nil
}

// scanOperator invokes the maximal-munch recognizer (pkg/token) on the
// tokenizer's own position-tracked stream.
func (t *Tokenizer) scanOperator() (token.Token, error) {
	start := t.pos()
	match, ok := token.LongestOperator(t)
	if !ok {
		r, _ := t.pop()
		return token.Token{}, t.errf(ErrUnrecognizedChar, "unrecognized character %q", string(r))
	}
	return token.Token{Category: token.CatReserved, Kind: match.Kind, Pos: start}, nil
}

package parser

import (
	"fmt"

	"github.com/aolang/ao/pkg/token"
)

// Stable diagnostic codes for the parser-error taxonomy named in spec §7.
const (
	ErrUnexpectedOperand = "E_PARSE_UNEXPECTED_OPERAND"
	ErrExpectingOperand  = "E_PARSE_EXPECTING_OPERAND"
	ErrExpectedToken     = "E_PARSE_EXPECTED_TOKEN"
	ErrArity             = "E_PARSE_ARITY"
	ErrInvalidOperator   = "E_PARSE_INVALID_OPERATOR"
)

// ParserError is the error type every parsing entry point returns on
// failure. Per spec §7, parsing is fatal at the first error: there is no
// panic-mode recovery, so a ParserError always means the parse has
// terminated.
type ParserError struct {
	Code     string
	Pos      token.Position
	Message  string
	Expected string // set only for ErrExpectedToken: the exact lexeme that was required
}

func (e *ParserError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s (expected %q) (at %s)", e.Code, e.Message, e.Expected, e.Pos)
	}
	return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Pos)
}

// DiagCode and DiagPos let internal/diag adapt a ParserError into a
// Diagnostic without the two packages importing each other.
func (e *ParserError) DiagCode() string { return e.Code }

func (e *ParserError) DiagPos() token.Position { return e.Pos }

func errExpectingOperand(pos token.Position) error {
	return &ParserError{Code: ErrExpectingOperand, Pos: pos, Message: "expecting an operand"}
}

func errUnexpectedOperand(pos token.Position) error {
	return &ParserError{Code: ErrUnexpectedOperand, Pos: pos, Message: "unexpected operand"}
}

func errExpectedLexeme(pos token.Position, lexeme string) error {
	return &ParserError{Code: ErrExpectedToken, Pos: pos, Message: "expected token", Expected: lexeme}
}

func errArity(pos token.Position, want, got int) error {
	return &ParserError{Code: ErrArity, Pos: pos, Message: fmt.Sprintf("expecting %d operands (%d given)", want, got)}
}

func errInvalidOperator(pos token.Position, lit string) error {
	return &ParserError{Code: ErrInvalidOperator, Pos: pos, Message: fmt.Sprintf("invalid token in operator position: %q", lit)}
}

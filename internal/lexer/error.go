package lexer

import (
	"fmt"

	"github.com/aolang/ao/pkg/token"
)

// Stable diagnostic codes for the tokenizer-error taxonomy named in spec
// §7. The driver (internal/driver) maps these to user-facing diagnostics;
// the lexer itself never formats for a terminal.
const (
	ErrUnrecognizedChar   = "E_LEX_UNRECOGNIZED_CHAR"
	ErrUnterminatedString = "E_LEX_UNTERMINATED_STRING"
	ErrMalformedNumber    = "E_LEX_MALFORMED_NUMBER"
	ErrMixedIndentation   = "E_LEX_MIXED_INDENTATION"
)

// TokenizerError is the error type returned by Tokenizer.Next. It is
// always fatal at the call site per spec §7: the tokenizer does not
// attempt to resynchronize after an error.
type TokenizerError struct {
	Code    string
	Pos     token.Position
	Message string
}

func (e *TokenizerError) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Pos)
}

// DiagCode and DiagPos let internal/diag adapt a TokenizerError into a
// Diagnostic without the two packages importing each other.
func (e *TokenizerError) DiagCode() string { return e.Code }

func (e *TokenizerError) DiagPos() token.Position { return e.Pos }

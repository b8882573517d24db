// Package diag formats tokenizer and parser errors with source context —
// the file:line:column header, the offending line, and a caret pointing
// at the column — for display on a terminal or in a build log.
package diag

import (
	"fmt"
	"strings"

	"github.com/aolang/ao/pkg/token"
)

// Diagnostic is the common shape every internal/lexer.TokenizerError and
// internal/parser.ParserError is adapted to before formatting: a stable
// code, a position, and a human-readable message.
type Diagnostic struct {
	Code    string
	Pos     token.Position
	Message string
	File    string
	Source  string
}

// New builds a Diagnostic from a code/position/message triple, the
// common shape of both TokenizerError and ParserError.
func New(code string, pos token.Position, message string) *Diagnostic {
	return &Diagnostic{Code: code, Pos: pos, Message: message}
}

// WithSource attaches the originating file name and full source text,
// enabling Format to render the offending line and a caret.
func (d *Diagnostic) WithSource(file, source string) *Diagnostic {
	d.File = file
	d.Source = source
	return d
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// Format renders the diagnostic as a header line, the offending source
// line (if source was attached via WithSource), a caret under the error
// column, and the message — matching the layout of compiler diagnostics
// in popular toolchains, one error per call.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%s: %s\n", d.Code, d.File, d.Pos, d.Message)
	} else {
		fmt.Fprintf(&sb, "%s at %s: %s\n", d.Code, d.Pos, d.Message)
	}

	line := d.sourceLine(d.Pos.Line)
	if line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

// Error implements the error interface so a Diagnostic can be returned
// or wrapped like any other Go error.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// FormatAll renders a batch of diagnostics, numbering them when there is
// more than one — the layout a build driver uses when a run surfaces
// several unrelated errors (e.g. across multiple input files).
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromError adapts a *lexer.TokenizerError or *parser.ParserError (both
// expose Code/Pos/Message via duck typing below) into a Diagnostic. Any
// other error is wrapped with a blank code, so callers can funnel every
// failure path through the same formatter.
func FromError(err error, file, source string) *Diagnostic {
	if ce, ok := err.(interface {
		Error() string
		DiagCode() string
		DiagPos() token.Position
	}); ok {
		return New(ce.DiagCode(), ce.DiagPos(), err.Error()).WithSource(file, source)
	}
	return New("", token.Position{}, err.Error()).WithSource(file, source)
}

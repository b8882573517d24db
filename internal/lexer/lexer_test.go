package lexer

import (
	"testing"

	"github.com/aolang/ao/internal/source"
	"github.com/aolang/ao/pkg/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	tz := New(source.NewFromString(src))
	var toks []token.Token
	for {
		tok, err := tz.Next()
		if err != nil {
			t.Fatalf("tokenize(%q): %v", src, err)
		}
		toks = append(toks, tok)
		if tok.Category == token.CatEOF {
			return toks
		}
	}
}

func categories(toks []token.Token) []token.Category {
	cs := make([]token.Category, len(toks))
	for i, tok := range toks {
		cs[i] = tok.Category
	}
	return cs
}

func TestEmptyInputYieldsEOF(t *testing.T) {
	toks := tokenize(t, "")
	if len(toks) != 1 || toks[0].Category != token.CatEOF {
		t.Fatalf("got %v, want single EOF", toks)
	}
}

func TestIdentifierAndKeyword(t *testing.T) {
	toks := tokenize(t, "if x")
	if toks[0].Category != token.CatReserved || toks[0].Kind != token.If {
		t.Fatalf("toks[0] = %v, want reserved If", toks[0])
	}
	if toks[1].Category != token.CatIdent || toks[1].Literal != "x" {
		t.Fatalf("toks[1] = %v, want ident x", toks[1])
	}
}

func TestMaximalMunchAssignExponent(t *testing.T) {
	toks := tokenize(t, "a**=b")
	kinds := []token.Kind{}
	for _, tok := range toks {
		if tok.Category == token.CatReserved {
			kinds = append(kinds, tok.Kind)
		}
	}
	if len(kinds) != 1 || kinds[0] != token.StarStarEq {
		t.Fatalf("operators seen = %v, want [StarStarEq]", kinds)
	}
	if toks[0].Literal != "a" || toks[2].Literal != "b" {
		t.Fatalf("idents = %q, %q; want a, b", toks[0].Literal, toks[2].Literal)
	}
}

func TestIntegerAndFloatLiterals(t *testing.T) {
	toks := tokenize(t, "1 2.5 3e2 4.0e-1")
	want := []struct {
		isFloat bool
		i       int64
		f       float64
	}{
		{false, 1, 0},
		{true, 0, 2.5},
		{true, 0, 300},
		{true, 0, 0.4},
	}
	for i, w := range want {
		tok := toks[i]
		if tok.Category != token.CatNumber {
			t.Fatalf("toks[%d] = %v, want number", i, tok)
		}
		if tok.IsFloat != w.isFloat {
			t.Fatalf("toks[%d].IsFloat = %v, want %v", i, tok.IsFloat, w.isFloat)
		}
		if w.isFloat && tok.FloatValue != w.f {
			t.Fatalf("toks[%d].FloatValue = %v, want %v", i, tok.FloatValue, w.f)
		}
		if !w.isFloat && tok.IntValue != w.i {
			t.Fatalf("toks[%d].IntValue = %v, want %v", i, tok.IntValue, w.i)
		}
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\tc\\d\"e"`)
	if toks[0].Category != token.CatString {
		t.Fatalf("got %v, want string", toks[0])
	}
	want := "a\nb\tc\\d\"e"
	if toks[0].StringValue != want {
		t.Fatalf("StringValue = %q, want %q", toks[0].StringValue, want)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	tz := New(source.NewFromString(`"abc`))
	_, err := tz.Next()
	te, ok := err.(*TokenizerError)
	if !ok || te.Code != ErrUnterminatedString {
		t.Fatalf("err = %v, want *TokenizerError(%s)", err, ErrUnterminatedString)
	}
}

func TestUnrecognizedCharacterIsError(t *testing.T) {
	tz := New(source.NewFromString("$"))
	_, err := tz.Next()
	te, ok := err.(*TokenizerError)
	if !ok || te.Code != ErrUnrecognizedChar {
		t.Fatalf("err = %v, want *TokenizerError(%s)", err, ErrUnrecognizedChar)
	}
}

func TestCommentSkippedToEndOfLine(t *testing.T) {
	toks := tokenize(t, "x # comment\ny")
	cats := categories(toks)
	wantPrefix := []token.Category{token.CatIdent, token.CatNewline, token.CatIdent, token.CatEOF}
	if len(cats) != len(wantPrefix) {
		t.Fatalf("categories = %v, want %v", cats, wantPrefix)
	}
	for i := range wantPrefix {
		if cats[i] != wantPrefix[i] {
			t.Fatalf("categories = %v, want %v", cats, wantPrefix)
		}
	}
}

func TestBlankAndCommentOnlyLinesEmitNoIndent(t *testing.T) {
	toks := tokenize(t, "x\n\n    # comment\ny\n")
	for _, tok := range toks {
		if tok.Category == token.CatIndent {
			t.Fatalf("unexpected indent token in %v", toks)
		}
	}
}

func TestIndentationUnitsOfFourSpaces(t *testing.T) {
	toks := tokenize(t, "if a:\n        b\n")
	var indents int
	for _, tok := range toks {
		if tok.Category == token.CatIndent {
			indents++
		}
	}
	if indents != 2 {
		t.Fatalf("indent markers = %d, want 2 for 8 leading spaces", indents)
	}
}

func TestLoneTabIsOneIndentUnit(t *testing.T) {
	toks := tokenize(t, "if a:\n\tb\n")
	var indents int
	for _, tok := range toks {
		if tok.Category == token.CatIndent {
			indents++
		}
	}
	if indents != 1 {
		t.Fatalf("indent markers = %d, want 1 for a lone leading tab", indents)
	}
}

func TestMixedIndentationIsError(t *testing.T) {
	tz := New(source.NewFromString("if a:\n  \tb\n"))
	for i := 0; i < 10; i++ {
		_, err := tz.Next()
		if err != nil {
			te, ok := err.(*TokenizerError)
			if !ok || te.Code != ErrMixedIndentation {
				t.Fatalf("err = %v, want *TokenizerError(%s)", err, ErrMixedIndentation)
			}
			return
		}
	}
	t.Fatal("expected a mixed-indentation error, got none")
}

func TestPositionsAdvanceAcrossLines(t *testing.T) {
	toks := tokenize(t, "x\ny")
	if toks[0].Pos.Line != 1 {
		t.Fatalf("first ident line = %d, want 1", toks[0].Pos.Line)
	}
	// toks: ident x, newline, ident y, eof
	var secondIdent token.Token
	found := false
	for i, tok := range toks {
		if i > 0 && tok.Category == token.CatIdent {
			secondIdent = tok
			found = true
			break
		}
	}
	if !found || secondIdent.Pos.Line != 2 {
		t.Fatalf("second ident = %v, want line 2", secondIdent)
	}
}

func TestEOFIsStableOnRepeatedCalls(t *testing.T) {
	tz := New(source.NewFromString(""))
	first, err := tz.Next()
	if err != nil {
		t.Fatal(err)
	}
	second, err := tz.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.Category != token.CatEOF || second.Category != token.CatEOF {
		t.Fatalf("expected EOF both times, got %v, %v", first, second)
	}
}

package lexer

import (
	"testing"

	"github.com/funvibe/funxy-check/internal/token"
)

func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func assertTypes(t *testing.T, toks []token.Token, want ...token.Type) {
	t.Helper()
	if len(toks) != len(want) {
		var got []token.Type
		for _, tok := range toks {
			got = append(got, tok.Type)
		}
		t.Fatalf("got %d tokens %v, want %d %v", len(toks), got, len(want), want)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestLexerSimpleAssignment(t *testing.T) {
	toks := collect(t, "x = 5")
	assertTypes(t, toks, token.IDENT, token.ASSIGN, token.INT, token.EOF)
}

func TestLexerArrowVsMinus(t *testing.T) {
	toks := collect(t, "a - b -> c")
	assertTypes(t, toks, token.IDENT, token.MINUS, token.IDENT, token.ARROW, token.IDENT, token.EOF)
}

func TestLexerDoubleStarVsStar(t *testing.T) {
	toks := collect(t, "a * b ** c")
	assertTypes(t, toks, token.IDENT, token.ASTERISK, token.IDENT, token.DOUBLE_STAR, token.IDENT, token.EOF)
}

func TestLexerFloorDivVsSlash(t *testing.T) {
	toks := collect(t, "a / b // c")
	assertTypes(t, toks, token.IDENT, token.SLASH, token.IDENT, token.FLOORDIV, token.IDENT, token.EOF)
}

func TestLexerKeywordsVsIdentifiers(t *testing.T) {
	toks := collect(t, "def foo")
	assertTypes(t, toks, token.DEF, token.IDENT, token.EOF)
}

func TestLexerFloatVsIntVsAttribute(t *testing.T) {
	toks := collect(t, "1.5 2 x.y")
	assertTypes(t, toks, token.FLOAT, token.INT, token.IDENT, token.DOT, token.IDENT, token.EOF)
}

func TestLexerStringLiteralHandlesEscapedQuote(t *testing.T) {
	l := New(`"a\"b"`)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Lexeme != `a"b` {
		t.Fatalf("got %+v, want STRING %q", tok, `a"b`)
	}
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	toks := collect(t, "x = 1 # a trailing comment\ny = 2")
	assertTypes(t, toks,
		token.IDENT, token.ASSIGN, token.INT,
		token.IDENT, token.ASSIGN, token.INT,
		token.EOF,
	)
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	toks := collect(t, "a\nb")
	if toks[0].Line != 1 {
		t.Fatalf("first token Line = %d, want 1", toks[0].Line)
	}
	if toks[1].Line != 2 {
		t.Fatalf("second token Line = %d, want 2", toks[1].Line)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	toks := collect(t, "@")
	assertTypes(t, toks, token.ILLEGAL, token.EOF)
}

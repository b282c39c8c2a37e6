package lexer

import (
	"testing"

	"github.com/cwbudde/numl/internal/token"
)

func collectKinds(src string) []token.Kind {
	l := NewFromString(src)
	var kinds []token.Kind
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestLexerSkipsWhitespaceAndComments(t *testing.T) {
	kinds := collectKinds("  \tx # a comment\n")
	want := []token.Kind{token.ID, token.EOL, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	src := "function if else for while return break continue local include"
	want := []token.Kind{
		token.FUNCTION, token.IF, token.ELSE, token.FOR, token.WHILE,
		token.RETURN, token.BREAK, token.CONTINUE, token.LOCAL, token.INCLUDE,
		token.EOF,
	}
	kinds := collectKinds(src)
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexerIdentifierNotKeyword(t *testing.T) {
	l := NewFromString("functions")
	tok := l.Next()
	if tok.Kind != token.ID || tok.Lexeme != "functions" {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	l := NewFromString("")
	for i := 0; i < 3; i++ {
		tok := l.Next()
		if tok.Kind != token.EOF {
			t.Fatalf("iteration %d: got %v, want EOF", i, tok.Kind)
		}
	}
}

package lexer

import (
	"testing"

	"github.com/cwbudde/numl/internal/token"
)

func TestLexerMultiCharOperators(t *testing.T) {
	cases := map[string]token.Kind{
		"==": token.EQ,
		"!=": token.NE,
		"<=": token.LE,
		">=": token.GE,
		"&&": token.AND,
		"||": token.OR,
		"=":  token.EQUALITY,
		"<":  token.LT,
		">":  token.GT,
		"!":  token.NOT,
	}
	for src, want := range cases {
		tok := firstToken(src)
		if tok.Kind != want {
			t.Fatalf("%s: got %v, want %v", src, tok.Kind, want)
		}
	}
}

func TestLexerSingleAmpersandIsUnknown(t *testing.T) {
	tok := firstToken("& x")
	if tok.Kind != token.UNKNOWN {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerSinglePipeIsUnknown(t *testing.T) {
	tok := firstToken("| x")
	if tok.Kind != token.UNKNOWN {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerBrackets(t *testing.T) {
	kinds := collectKinds("([{}])")
	want := []token.Kind{
		token.LPARENTH, token.LBRACKET, token.LBRACE,
		token.RBRACE, token.RBRACKET, token.RPARENTH, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, kinds[i], want[i])
		}
	}
}

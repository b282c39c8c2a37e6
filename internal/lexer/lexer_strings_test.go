package lexer

import (
	"testing"

	"github.com/cwbudde/numl/internal/token"
)

func TestLexerStringLiteral(t *testing.T) {
	tok := firstToken(`"hello world"`)
	if tok.Kind != token.STRING || tok.Str != "hello world" {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerUnterminatedStringIsUnknown(t *testing.T) {
	tok := firstToken("\"oops\nafter")
	if tok.Kind != token.UNKNOWN {
		t.Fatalf("got %+v, want UNKNOWN", tok)
	}
}

func TestLexerEmptyString(t *testing.T) {
	tok := firstToken(`""`)
	if tok.Kind != token.STRING || tok.Str != "" {
		t.Fatalf("got %+v", tok)
	}
}

package lexer

import (
	"math"
	"testing"

	"github.com/cwbudde/numl/internal/token"
)

func firstToken(src string) token.Token {
	return NewFromString(src).Next()
}

func TestLexerIntegerLiteral(t *testing.T) {
	tok := firstToken("42")
	if tok.Kind != token.DOUBLE || tok.Num != 42 {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerFractionalLiteral(t *testing.T) {
	tok := firstToken("3.25")
	if tok.Kind != token.DOUBLE || math.Abs(tok.Num-3.25) > 1e-9 {
		t.Fatalf("got %+v", tok)
	}
}

func TestLexerExponentLiteral(t *testing.T) {
	cases := map[string]float64{
		"1e2":    100,
		"1.5e2":  150,
		"1e-2":   0.01,
		"2.5E+1": 25,
	}
	for src, want := range cases {
		tok := firstToken(src)
		if tok.Kind != token.DOUBLE || math.Abs(tok.Num-want) > 1e-9 {
			t.Fatalf("%s: got %+v, want %v", src, tok, want)
		}
	}
}

func TestLexerUnaryMinusLiteral(t *testing.T) {
	l := NewFromString("-5 + 1")
	tok := l.Next()
	if tok.Kind != token.DOUBLE || tok.Num != -5 {
		t.Fatalf("got %+v", tok)
	}
	plus := l.Next()
	if plus.Kind != token.PLUS {
		t.Fatalf("expected +, got %v", plus.Kind)
	}
}

func TestLexerMinusOperatorWithoutDigit(t *testing.T) {
	l := NewFromString("x - y")
	l.Next() // x
	tok := l.Next()
	if tok.Kind != token.MINUS {
		t.Fatalf("got %+v", tok)
	}
}

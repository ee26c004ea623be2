package mython

import (
	"reflect"
	"testing"
)

func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func wantTypes(t *testing.T, src string, want []TokenType) {
	t.Helper()
	got := tokenTypes(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("\nsource:\n%s\nwant: %v\ngot:  %v", src, want, got)
	}
}

func Test_Lexer_SimplePrint(t *testing.T) {
	wantTypes(t, "print 1\n", []TokenType{PRINT, NUMBER, NEWLINE, EOF})
}

func Test_Lexer_IndentDedent(t *testing.T) {
	src := "if x:\n  print 1\nprint 2\n"
	wantTypes(t, src, []TokenType{
		IF, IDENT, CHAR, NEWLINE,
		INDENT, PRINT, NUMBER, NEWLINE,
		DEDENT, PRINT, NUMBER, NEWLINE,
		EOF,
	})
}

func Test_Lexer_NestedIndentDedent(t *testing.T) {
	src := "class A:\n  def f(self):\n    return 1\nprint 2\n"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	indents, dedents := 0, 0
	for _, tok := range tokens {
		switch tok.Type {
		case INDENT:
			indents++
		case DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced indent/dedent: %d INDENT vs %d DEDENT", indents, dedents)
	}
	if indents != 2 {
		t.Fatalf("expected 2 levels of nesting, got %d", indents)
	}
}

func Test_Lexer_TwoSpaceIndentUnit(t *testing.T) {
	// Four leading spaces is two indent levels (2 spaces/level), not one.
	src := "if x:\n    print 1\n"
	wantTypes(t, src, []TokenType{
		IF, IDENT, CHAR, NEWLINE,
		INDENT, INDENT, PRINT, NUMBER, NEWLINE,
		DEDENT, DEDENT, EOF,
	})
}

func Test_Lexer_OddIndentFloorDivides(t *testing.T) {
	// 5 spaces / 2 = floor(2.5) = 2, same depth as 4 spaces: no lex error.
	src := "if x:\n     print 1\n"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lex error for odd indentation: %v", err)
	}
	var depths []TokenType
	for _, tok := range tokens {
		if tok.Type == INDENT || tok.Type == DEDENT {
			depths = append(depths, tok.Type)
		}
	}
	if !reflect.DeepEqual(depths, []TokenType{INDENT, INDENT, DEDENT, DEDENT}) {
		t.Fatalf("want exactly two indent levels, got %v", depths)
	}
}

func Test_Lexer_StringEscapes(t *testing.T) {
	tokens, err := Tokenize(`print "a\nb\tc\"d\qend"` + "\n")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	str := tokens[1]
	if str.Type != STRING {
		t.Fatalf("expected STRING token, got %s", str.Type)
	}
	want := "a\nb\tc\"dqend"
	if str.Lexeme != want {
		t.Fatalf("escape handling: want %q, got %q", want, str.Lexeme)
	}
}

func Test_Lexer_UnterminatedStringIsLexError(t *testing.T) {
	_, err := Tokenize("print \"abc\n")
	if err == nil {
		t.Fatal("expected a LexError for an unterminated string literal")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("expected *LexError, got %T: %v", err, err)
	}
}

func Test_Lexer_Comparators(t *testing.T) {
	wantTypes(t, "a == b != c <= d >= e < f > g\n", []TokenType{
		IDENT, EQ, IDENT, NOT_EQ, IDENT, LESS_EQ, IDENT,
		GREATER_EQ, IDENT, CHAR, IDENT, CHAR, IDENT, NEWLINE, EOF,
	})
}

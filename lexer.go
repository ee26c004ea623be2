package mython

import (
	"strconv"
	"strings"
)

// Lexer turns Mython source text into a stream of Tokens, synthesizing
// Indent/Dedent/Newline/Eof markers from raw whitespace (spec.md §4.3).
// It exposes exactly the two operations spec.md §3 calls for: Current
// (idempotent) and Advance (loads and returns the next token).
//
// The indentation algorithm is ported from the original C++
// implementation's Lexer::LoadNextToken (original_source/mython/lexer.cpp):
// indentation is measured only at logical-line start, in units of two
// spaces, and the lexer emits one Indent or Dedent per Advance call until
// the current depth catches up with the depth just measured.
type Lexer struct {
	src  string
	pos  int
	line int

	atLineStart bool // "begin_" in the original
	desired     int  // indent depth measured at this line's start
	current_    int  // indent depth already emitted (Indents - Dedents)

	tok Token
}

// NewLexer creates a lexer over source and loads its first token.
func NewLexer(source string) (*Lexer, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	l := &Lexer{src: source, line: 1, atLineStart: true}
	if err := l.loadNext(); err != nil {
		return nil, err
	}
	return l, nil
}

// Current returns the most recently loaded token without consuming it.
func (l *Lexer) Current() Token {
	return l.tok
}

// Advance loads and returns the next token.
func (l *Lexer) Advance() (Token, error) {
	if err := l.loadNext(); err != nil {
		return Token{}, err
	}
	return l.tok, nil
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.src)
}

// skipLine consumes through (and including) the next '\n', or to EOF if
// none remains, then resets line-start bookkeeping the way the original's
// PassString does.
func (l *Lexer) skipLine() {
	for !l.atEOF() && l.src[l.pos] != '\n' {
		l.pos++
	}
	if !l.atEOF() {
		l.pos++ // consume the '\n'
	}
	l.line++
	l.atLineStart = true
	l.desired = 0
}

func (l *Lexer) skipComment() {
	for !l.atEOF() && l.src[l.pos] != '\n' {
		l.pos++
	}
}

// countSpaces measures leading spaces and, only at a logical line start,
// converts them to a desired indent depth (floor division by two, per
// the original and SPEC_FULL.md's resolution of the mixed-indent open
// question).
func (l *Lexer) countSpaces() {
	n := 0
	for l.peek() == ' ' {
		l.pos++
		n++
	}
	if l.atLineStart {
		l.desired = n / 2
	}
}

func (l *Lexer) loadNext() error {
	switch {
	case l.atEOF():
		if !l.atLineStart {
			l.skipLine()
			l.tok = Token{Type: NEWLINE, Line: l.line}
			return nil
		}
		if l.current_ > 0 {
			l.current_--
			l.tok = Token{Type: DEDENT, Line: l.line}
			return nil
		}
		l.tok = Token{Type: EOF, Line: l.line}
		return nil

	case l.peek() == '\n':
		if l.atLineStart {
			l.skipLine()
			return l.loadNext()
		}
		l.skipLine()
		l.tok = Token{Type: NEWLINE, Line: l.line - 1}
		return nil

	case l.peek() == '#':
		l.skipComment()
		return l.loadNext()

	case l.peek() == ' ':
		l.countSpaces()
		return l.loadNext()

	case l.current_ != l.desired && l.atLineStart:
		if l.current_ < l.desired {
			l.current_++
			l.tok = Token{Type: INDENT, Line: l.line}
		} else {
			l.current_--
			l.tok = Token{Type: DEDENT, Line: l.line}
		}
		return nil

	default:
		return l.scanToken()
	}
}

func (l *Lexer) scanToken() error {
	l.atLineStart = false
	ch := l.peek()

	switch {
	case isDigit(ch):
		return l.scanNumber()
	case isAlpha(ch):
		l.scanIdentOrKeyword()
		return nil
	case ch == '"' || ch == '\'':
		return l.scanString()
	default:
		return l.scanOperator()
	}
}

func (l *Lexer) scanNumber() error {
	start := l.pos
	for isDigit(l.peek()) {
		l.pos++
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return &LexError{Line: l.line, Msg: "invalid numeric literal " + strconv.Quote(text)}
	}
	l.tok = Token{Type: NUMBER, Lexeme: text, NumberVal: n, Line: l.line}
	return nil
}

func (l *Lexer) scanIdentOrKeyword() {
	start := l.pos
	for isAlphaNumeric(l.peek()) {
		l.pos++
	}
	name := l.src[start:l.pos]
	if typ, ok := keywords[name]; ok {
		l.tok = Token{Type: typ, Lexeme: name, Line: l.line}
		return
	}
	l.tok = Token{Type: IDENT, Lexeme: name, Line: l.line}
}

// scanString reads a quoted literal, supporting \" \' \n \t and dropping
// the backslash of any other escape (original_source/mython/lexer.cpp's
// ParseString, see SPEC_FULL.md §4).
func (l *Lexer) scanString() error {
	quote := l.peek()
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		if l.atEOF() {
			return &LexError{Line: l.line, Msg: "unterminated string literal"}
		}
		c := l.src[l.pos]
		if c == '\\' {
			l.pos++
			if l.atEOF() {
				return &LexError{Line: l.line, Msg: "unterminated string literal"}
			}
			esc := l.src[l.pos]
			l.pos++
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				// Unknown escape: drop the backslash, keep the char.
				sb.WriteByte(esc)
			}
			continue
		}
		if c == quote {
			l.pos++
			break
		}
		if c == '\n' {
			return &LexError{Line: l.line, Msg: "unterminated string literal"}
		}
		sb.WriteByte(c)
		l.pos++
	}
	l.tok = Token{Type: STRING, Lexeme: sb.String(), Line: l.line}
	return nil
}

func (l *Lexer) scanOperator() error {
	two := string([]byte{l.peek(), l.peekAt(1)})
	if typ, ok := dualSymbols[two]; ok {
		l.pos += 2
		l.tok = Token{Type: typ, Lexeme: two, Line: l.line}
		return nil
	}
	c := l.peek()
	l.pos++
	l.tok = Token{Type: CHAR, Lexeme: string(c), CharVal: c, Line: l.line}
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

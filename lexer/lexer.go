// Copyright 2026 The tombi Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer implements a byte-stream-to-token-stream scanner for TOML
// source, the first stage of the lex/parse/build pipeline.
// Every byte of the input is represented in the output token stream,
// including trivia, so that a red/green tree built from it can reproduce
// the source exactly (losslessness, P1).
package lexer

import (
	"unicode/utf8"

	"github.com/tombi-toml/tombi/token"
)

// Version selects the TOML dialect the lexer accepts, per §6's
// "toml-version" configuration option.
type Version int

const (
	V1_0_0 Version = iota
	V1_1_0_Preview
)

// Token is a single lexeme: its kind, its byte span, and (lazily) its
// line/column range once paired with a token.File.
type Token struct {
	Kind token.Kind
	Span token.ByteSpan
}

func (t Token) Text(src []byte) string { return string(src[t.Span.Start:t.Span.End]) }

// Lexer scans a byte slice into a Token stream. It is not reentrant; one
// Lexer scans exactly one source.
type Lexer struct {
	src     []byte
	version Version

	offset   int // current byte offset
	rdOffset int // offset of the next unread byte
	ch       rune
	chWidth  int

	tokens []Token
	errors []lexError
}

type lexError struct {
	span token.ByteSpan
	msg  string
}

// Lex scans src and returns the full token stream (trivia included) plus
// any lexical errors encountered. Malformed lexemes are still emitted as
// INVALID_TOKEN so the parser can continue (§7).
func Lex(src []byte, version Version) (tokens []Token, errs []error) {
	l := &Lexer{src: src, version: version}
	l.next()
	for {
		tok := l.scanOne()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	out := make([]error, len(l.errors))
	for i, e := range l.errors {
		out[i] = lexErr{e}
	}
	return l.tokens, out
}

// lexErr adapts the internal lexError to the standard error interface. Only
// the message is exposed: the parser wraps each one as an errors.LexError
// diagnostic with an empty position, so the recorded span does not reach
// the caller.
type lexErr struct{ lexError }

func (e lexErr) Error() string { return e.msg }

func (l *Lexer) next() {
	if l.rdOffset < len(l.src) {
		l.offset = l.rdOffset
		r, w := rune(l.src[l.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(l.src[l.rdOffset:])
		}
		l.rdOffset += w
		l.ch, l.chWidth = r, w
	} else {
		l.offset = len(l.src)
		l.ch, l.chWidth = -1, 0
	}
}

// peekByte returns the byte ahead positions past the byte right after the
// current character (ahead=0 is the byte immediately following l.ch).
func (l *Lexer) peekByte(ahead int) byte {
	i := l.rdOffset + ahead
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) errorf(span token.ByteSpan, msg string) {
	l.errors = append(l.errors, lexError{span: span, msg: msg})
}

func (l *Lexer) scanOne() Token {
	start := l.offset
	switch {
	case l.ch == -1:
		return Token{Kind: token.EOF, Span: token.ByteSpan{Start: start, End: start}}
	case l.ch == '\n':
		l.next()
		return Token{Kind: token.LINE_ENDING, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '\r' && l.peekByte(0) == '\n':
		l.next()
		l.next()
		return Token{Kind: token.LINE_ENDING, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == ' ' || l.ch == '\t':
		for l.ch == ' ' || l.ch == '\t' {
			l.next()
		}
		return Token{Kind: token.WHITESPACE, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '#':
		for l.ch != -1 && l.ch != '\n' && l.ch != '\r' {
			l.next()
		}
		return Token{Kind: token.COMMENT, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '.':
		l.next()
		return Token{Kind: token.DOT, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == ',':
		l.next()
		return Token{Kind: token.COMMA, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '=':
		l.next()
		return Token{Kind: token.EQUAL, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '[':
		l.next()
		if l.ch == '[' {
			l.next()
			return Token{Kind: token.LDOUBLE_BRACKET, Span: token.ByteSpan{Start: start, End: l.offset}}
		}
		return Token{Kind: token.LBRACKET, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == ']':
		l.next()
		if l.ch == ']' {
			l.next()
			return Token{Kind: token.RDOUBLE_BRACKET, Span: token.ByteSpan{Start: start, End: l.offset}}
		}
		return Token{Kind: token.RBRACKET, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '{':
		l.next()
		return Token{Kind: token.LBRACE, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '}':
		l.next()
		return Token{Kind: token.RBRACE, Span: token.ByteSpan{Start: start, End: l.offset}}
	case l.ch == '"':
		return l.scanBasicOrMultilineString(start)
	case l.ch == '\'':
		return l.scanLiteralOrMultilineString(start)
	default:
		return l.scanBareOrLiteral(start)
	}
}

// scanBasicOrMultilineString consumes a `"..."` or `"""..."""` string,
// returning an INVALID_TOKEN with a recorded error if it is unterminated.
func (l *Lexer) scanBasicOrMultilineString(start int) Token {
	l.next() // consume opening quote
	if l.ch == '"' && l.peekByte(0) == '"' {
		// Note: l.ch already advanced past the first quote, so l.ch is the
		// second quote and peekByte(0) is the byte after it, the third.
		l.next()
		l.next()
		return l.scanMultilineBody(start, '"', token.STRING_ML_BASIC)
	}
	for {
		switch l.ch {
		case -1, '\n', '\r':
			l.errorf(token.ByteSpan{Start: start, End: l.offset}, "unterminated basic string")
			return Token{Kind: token.INVALID_TOKEN, Span: token.ByteSpan{Start: start, End: l.offset}}
		case '\\':
			l.next()
			if l.ch != -1 {
				l.next()
			}
		case '"':
			l.next()
			return Token{Kind: token.STRING_BASIC, Span: token.ByteSpan{Start: start, End: l.offset}}
		default:
			l.next()
		}
	}
}

func (l *Lexer) scanLiteralOrMultilineString(start int) Token {
	l.next()
	if l.ch == '\'' && l.peekByte(0) == '\'' {
		l.next()
		l.next()
		return l.scanMultilineBody(start, '\'', token.STRING_ML_LITERAL)
	}
	for {
		switch l.ch {
		case -1, '\n', '\r':
			l.errorf(token.ByteSpan{Start: start, End: l.offset}, "unterminated literal string")
			return Token{Kind: token.INVALID_TOKEN, Span: token.ByteSpan{Start: start, End: l.offset}}
		case '\'':
			l.next()
			return Token{Kind: token.STRING_LITERAL, Span: token.ByteSpan{Start: start, End: l.offset}}
		default:
			l.next()
		}
	}
}

func (l *Lexer) scanMultilineBody(start int, quote byte, kind token.Kind) Token {
	for {
		switch {
		case l.ch == -1:
			l.errorf(token.ByteSpan{Start: start, End: l.offset}, "unterminated multi-line string")
			return Token{Kind: token.INVALID_TOKEN, Span: token.ByteSpan{Start: start, End: l.offset}}
		case quote == '"' && l.ch == '\\':
			l.next()
			if l.ch != -1 {
				l.next()
			}
		case l.ch == rune(quote) && l.peekByte(0) == quote && l.peekByte(1) == quote:
			l.next()
			l.next()
			l.next()
			return Token{Kind: kind, Span: token.ByteSpan{Start: start, End: l.offset}}
		default:
			l.next()
		}
	}
}

func isBareKeyRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// scanBareOrLiteral consumes a run of bare-key/number/boolean/datetime-like
// characters and classifies it. TOML's grammar is LL(1)-unfriendly here
// (numbers, dates, and bare keys share a character class), so this mirrors
// the source's approach of scanning the maximal run first and classifying
// it once complete, same as a value-position bare-key scan.
func (l *Lexer) scanBareOrLiteral(start int) Token {
	if !isBareKeyRune(l.ch) {
		l.next()
		l.errorf(token.ByteSpan{Start: start, End: l.offset}, "invalid character")
		return Token{Kind: token.INVALID_TOKEN, Span: token.ByteSpan{Start: start, End: l.offset}}
	}
	for {
		if isBareKeyRune(l.ch) || l.ch == ':' || l.ch == '+' {
			l.next()
			continue
		}
		// A '.' followed by a digit continues a number-like run (a float or
		// fractional seconds); elsewhere it separates dotted-key segments.
		if next := l.peekByte(0); l.ch == '.' && next >= '0' && next <= '9' && looksLikeNumber(string(l.src[start:l.offset])) {
			l.next()
			continue
		}
		break
	}
	text := string(l.src[start:l.offset])
	return Token{Kind: classify(text), Span: token.ByteSpan{Start: start, End: l.offset}}
}

func classify(text string) token.Kind {
	switch text {
	case "true", "false":
		return token.BOOLEAN
	}
	if looksLikeDateTime(text) {
		if hasTimeComponent(text) {
			if hasOffset(text) {
				return token.OFFSET_DATE_TIME
			}
			return token.LOCAL_DATE_TIME
		}
		if hasDateComponent(text) {
			return token.LOCAL_DATE
		}
		return token.LOCAL_TIME
	}
	if looksLikeNumber(text) {
		return classifyNumber(text)
	}
	return token.BARE_KEY
}

func hasDateComponent(s string) bool {
	return len(s) >= 8 && s[4] == '-' && s[7] == '-'
}

func hasTimeComponent(s string) bool {
	for _, r := range s {
		if r == 'T' || r == 't' {
			return true
		}
	}
	return hasDateComponent(s) && len(s) > 10
}

func hasOffset(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[len(s)-1] == 'Z' || s[len(s)-1] == 'z' {
		return true
	}
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '+' || (s[i] == '-' && i > 10) {
			return true
		}
	}
	return false
}

func looksLikeDateTime(s string) bool {
	if len(s) < 5 {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return (hasDateComponent(s) || (len(s) >= 2 && s[2] == ':')) && digits >= 4
}

func looksLikeNumber(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	if s[i] == 'i' || s[i] == 'n' { // inf / nan
		return s[i:] == "inf" || s[i:] == "nan"
	}
	return s[i] >= '0' && s[i] <= '9'
}

func classifyNumber(s string) token.Kind {
	body := s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	switch {
	case len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X'):
		return token.INTEGER_HEX
	case len(body) > 1 && body[0] == '0' && (body[1] == 'o' || body[1] == 'O'):
		return token.INTEGER_OCT
	case len(body) > 1 && body[0] == '0' && (body[1] == 'b' || body[1] == 'B'):
		return token.INTEGER_BIN
	}
	for _, r := range body {
		if r == '.' || r == 'e' || r == 'E' {
			return token.FLOAT
		}
	}
	if body == "inf" || body == "nan" {
		return token.FLOAT
	}
	return token.INTEGER_DEC
}

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

// Package parser implements a hand-written, recursive-descent, event-driven
// parser (the P component). It never builds a tree itself; instead it
// produces a flat Event list that the syntax package replays to build the
// green tree, so the source never needs to be re-scanned.
package parser

import (
	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/token"
)

// EventKind distinguishes the four event shapes the parser emits.
type EventKind int

const (
	StartNode EventKind = iota
	TokenEvent
	FinishNode
	ErrorEvent
)

// Event is one entry of the flat replay log consumed by the syntax package.
type Event struct {
	Kind  EventKind
	Node  token.Kind // valid for StartNode
	Tok   int        // valid for TokenEvent: index into Parsed.Tokens
	Msg   string     // valid for ErrorEvent
	Span  token.ByteSpan
}

// Parsed is the parser's public contract: the full token stream (including
// trivia) and the event log needed to build a lossless tree, plus any
// diagnostics raised during parsing.
type Parsed struct {
	Tokens []lexer.Token
	Events []Event
	Errors errors.List
}

// Parse scans and parses source, producing a flat event stream. Parsing
// never aborts: a syntax error is recorded and the parser resynchronizes at
// the next statement boundary (§4.2).
func Parse(file *token.File, src []byte, version lexer.Version) Parsed {
	tokens, lexErrs := lexer.Lex(src, version)
	p := &parser{file: file, src: src, tokens: tokens}
	for _, e := range lexErrs {
		p.errors.Add(errors.Newf(errors.LexError, token.Position{}, "%s", e.Error()))
	}

	p.start(token.ROOT)
	for !p.atEOF() {
		p.skipTrivia()
		if p.atEOF() {
			break
		}
		switch p.curKind() {
		case token.LDOUBLE_BRACKET:
			p.parseArrayOfTableHeader()
		case token.LBRACKET:
			p.parseTableHeader()
		default:
			p.parseKeyValueLine()
		}
	}
	p.skipTrivia()
	p.finish()

	return Parsed{Tokens: tokens, Events: p.events, Errors: p.errors}
}

type parser struct {
	file   *token.File
	src    []byte
	tokens []lexer.Token
	pos    int // index into tokens

	events []Event
	errors errors.List
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Kind == token.EOF
}

func (p *parser) curKind() token.Kind {
	if p.pos >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[p.pos].Kind
}

func (p *parser) curSpan() token.ByteSpan {
	if p.pos >= len(p.tokens) {
		n := len(p.src)
		return token.ByteSpan{Start: n, End: n}
	}
	return p.tokens[p.pos].Span
}

func (p *parser) start(kind token.Kind) {
	p.events = append(p.events, Event{Kind: StartNode, Node: kind})
}

func (p *parser) finish() {
	p.events = append(p.events, Event{Kind: FinishNode})
}

// bump consumes the current token unconditionally (trivia or not) and
// emits a TokenEvent for it.
func (p *parser) bump() {
	if p.pos >= len(p.tokens) {
		return
	}
	p.events = append(p.events, Event{Kind: TokenEvent, Tok: p.pos, Span: p.tokens[p.pos].Span})
	p.pos++
}

func (p *parser) skipTrivia() {
	for !p.atEOF() && p.curKind().IsTrivia() {
		p.bump()
	}
}

// skipInlineTrivia consumes whitespace and an optional trailing comment, but
// stops before a line ending so callers can decide whether to attach it as
// same-line trailing trivia or consume it themselves.
func (p *parser) skipInlineTrivia() {
	for !p.atEOF() && (p.curKind() == token.WHITESPACE || p.curKind() == token.COMMENT) {
		p.bump()
	}
}

func (p *parser) errorHere(msg string) {
	span := p.curSpan()
	p.events = append(p.events, Event{Kind: ErrorEvent, Msg: msg, Span: span})
	p.errors.Add(errors.Newf(errors.ParseError, p.file.Position(span.Start), "%s", msg))
}

// expect consumes the current token if it matches kind, else records a
// parse error and does not advance (so recovery can decide what to skip).
func (p *parser) expect(kind token.Kind, what string) bool {
	if p.curKind() == kind {
		p.bump()
		return true
	}
	p.errorHere("expected " + what)
	return false
}

// recoverToLineEnd skips tokens until a line ending/EOF, the top-level
// statement boundary (§4.2).
func (p *parser) recoverToLineEnd() {
	for !p.atEOF() && p.curKind() != token.LINE_ENDING {
		p.bump()
	}
	if !p.atEOF() {
		p.bump()
	}
}

// recoverInBraces skips tokens until ',', '}' or a line ending without
// consuming it,
// the inline-table statement boundary (§4.2).
func (p *parser) recoverInBraces() {
	for !p.atEOF() && p.curKind() != token.COMMA && p.curKind() != token.RBRACE && p.curKind() != token.LINE_ENDING {
		p.bump()
	}
}

// recoverInBrackets skips tokens until ',' or ']' without consuming it,
// the array statement boundary (§4.2).
func (p *parser) recoverInBrackets() {
	for !p.atEOF() && p.curKind() != token.COMMA && p.curKind() != token.RBRACKET {
		p.bump()
	}
}

// parseKey parses a dotted key sequence: one or more BARE_KEY/quoted-key
// tokens joined by '.'. One segment or several, the key is always wrapped
// in a DOTTED_KEYS node; no KEY node is emitted (§4.2).
func (p *parser) parseKey() {
	p.skipInlineTrivia()
	count := 0
	for {
		// The lexer tags a quoted key as a string; in key position it is
		// retagged as the matching quoted-key kind.
		switch p.curKind() {
		case token.STRING_BASIC:
			p.tokens[p.pos].Kind = token.QUOTED_KEY_BASIC
		case token.STRING_LITERAL:
			p.tokens[p.pos].Kind = token.QUOTED_KEY_LITERAL
		}
		if p.curKind().IsKeyToken() {
			if count == 0 {
				p.start(token.DOTTED_KEYS)
			}
			p.bump()
			count++
		} else {
			if count == 0 {
				p.errorHere("expected key")
			}
			break
		}
		p.skipInlineTrivia()
		if p.curKind() == token.DOT {
			p.bump()
			p.skipInlineTrivia()
			continue
		}
		break
	}
	if count > 0 {
		p.finish()
	}
}

func (p *parser) parseTableHeader() {
	p.start(token.TABLE)
	p.bump() // '['
	p.skipInlineTrivia()
	p.parseKey()
	p.skipInlineTrivia()
	p.expect(token.RBRACKET, "']'")
	p.skipInlineTrivia()
	if p.curKind() == token.COMMENT {
		p.bump()
	}
	if !p.atEOF() && p.curKind() == token.LINE_ENDING {
		p.bump()
	} else if !p.atEOF() {
		p.errorHere("expected end of line after table header")
		p.recoverToLineEnd()
	}
	p.finish()
}

func (p *parser) parseArrayOfTableHeader() {
	p.start(token.ARRAY_OF_TABLE)
	p.bump() // '[['
	p.skipInlineTrivia()
	p.parseKey()
	p.skipInlineTrivia()
	p.expect(token.RDOUBLE_BRACKET, "']]'")
	p.skipInlineTrivia()
	if p.curKind() == token.COMMENT {
		p.bump()
	}
	if !p.atEOF() && p.curKind() == token.LINE_ENDING {
		p.bump()
	} else if !p.atEOF() {
		p.errorHere("expected end of line after array-of-tables header")
		p.recoverToLineEnd()
	}
	p.finish()
}

func (p *parser) parseKeyValueLine() {
	p.start(token.KEY_VALUE)
	p.parseKey()
	p.skipInlineTrivia()
	if !p.expect(token.EQUAL, "'='") {
		p.recoverToLineEnd()
		p.finish()
		return
	}
	p.skipInlineTrivia()
	if !p.parseValue() {
		p.errorHere("expected value")
		p.recoverToLineEnd()
		p.finish()
		return
	}
	p.skipInlineTrivia()
	if p.curKind() == token.COMMENT {
		p.bump()
	}
	if !p.atEOF() && p.curKind() == token.LINE_ENDING {
		p.bump()
	} else if !p.atEOF() {
		p.errorHere("expected end of line after key/value pair")
		p.recoverToLineEnd()
	}
	p.finish()
}

// parseValue parses a single value: a scalar literal, an inline table, or
// an array. Returns false if the current token cannot start a value.
func (p *parser) parseValue() bool {
	switch k := p.curKind(); {
	case k.IsLiteral():
		p.start(token.VALUE)
		p.bump()
		p.finish()
		return true
	case k == token.LBRACE:
		p.parseInlineTable()
		return true
	case k == token.LBRACKET:
		p.parseArray()
		return true
	default:
		return false
	}
}

func (p *parser) parseInlineTable() {
	p.start(token.INLINE_TABLE)
	p.bump() // '{'
	for {
		p.skipInlineTrivia()
		if p.curKind() == token.RBRACE || p.atEOF() {
			break
		}
		p.start(token.KEY_VALUE)
		p.parseKey()
		p.skipInlineTrivia()
		if !p.expect(token.EQUAL, "'='") {
			p.recoverInBraces()
			p.finish()
		} else {
			p.skipInlineTrivia()
			if !p.parseValue() {
				p.errorHere("expected value")
				p.recoverInBraces()
			}
			p.finish()
		}
		p.skipInlineTrivia()
		if p.curKind() == token.COMMA {
			p.bump()
			continue
		}
		break
	}
	p.skipInlineTrivia()
	p.expect(token.RBRACE, "'}'")
	p.finish()
}

func (p *parser) parseArray() {
	p.start(token.ARRAY)
	p.bump() // '['
	for {
		p.skipTrivia()
		if p.curKind() == token.RBRACKET || p.atEOF() {
			break
		}
		if !p.parseValue() {
			p.errorHere("expected array element")
			p.recoverInBrackets()
		}
		p.skipTrivia()
		if p.curKind() == token.COMMA {
			p.bump()
			continue
		}
		break
	}
	p.skipTrivia()
	p.expect(token.RBRACKET, "']'")
	p.finish()
}

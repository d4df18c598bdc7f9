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

// Package ast declares the typed façade over the lossless red/green syntax
// tree (the A component). Each wrapper is a thin struct over a
// *syntax.RedNode exposing named child accessors; Cast/CanCast let callers
// recover a typed view from a bare node, mirroring how cue/ast casts
// syntax.Node into its concrete declaration/expression types.
package ast

import (
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

// Node is implemented by every typed AST wrapper.
type Node interface {
	Red() *syntax.RedNode
	Span() token.ByteSpan
}

type base struct{ red *syntax.RedNode }

func (b base) Red() *syntax.RedNode  { return b.red }
func (b base) Span() token.ByteSpan  { return b.red.Span() }

// Root is the typed view of the document root.
type Root struct{ base }

func CastRoot(n *syntax.RedNode) (Root, bool) {
	if n == nil || n.Kind() != token.ROOT {
		return Root{}, false
	}
	return Root{base{n}}, true
}

// Items returns the top-level declarations in source order: Table,
// ArrayOfTable, and KeyValue nodes.
func (r Root) Items() []Node {
	var out []Node
	for _, c := range r.red.ChildNodes() {
		switch c.Kind() {
		case token.TABLE:
			out = append(out, Table{base{c}})
		case token.ARRAY_OF_TABLE:
			out = append(out, ArrayOfTable{base{c}})
		case token.KEY_VALUE:
			out = append(out, KeyValue{base{c}})
		}
	}
	return out
}

// Table is a `[a.b.c]` header declaration.
type Table struct{ base }

func CastTable(n *syntax.RedNode) (Table, bool) {
	if n == nil || n.Kind() != token.TABLE {
		return Table{}, false
	}
	return Table{base{n}}, true
}

// Header returns the typed key following the opening bracket.
func (t Table) Header() (Key, bool) {
	for _, c := range t.red.ChildNodes() {
		if k, ok := CastKey(c); ok {
			return k, true
		}
	}
	return Key{}, false
}

// ArrayOfTable is a `[[a.b.c]]` header declaration.
type ArrayOfTable struct{ base }

func CastArrayOfTable(n *syntax.RedNode) (ArrayOfTable, bool) {
	if n == nil || n.Kind() != token.ARRAY_OF_TABLE {
		return ArrayOfTable{}, false
	}
	return ArrayOfTable{base{n}}, true
}

func (a ArrayOfTable) Header() (Key, bool) {
	for _, c := range a.red.ChildNodes() {
		if k, ok := CastKey(c); ok {
			return k, true
		}
	}
	return Key{}, false
}

// KeyValue is a single `key = value` declaration, at top level or nested
// inside an InlineTable.
type KeyValue struct{ base }

func CastKeyValue(n *syntax.RedNode) (KeyValue, bool) {
	if n == nil || n.Kind() != token.KEY_VALUE {
		return KeyValue{}, false
	}
	return KeyValue{base{n}}, true
}

func (kv KeyValue) Key() (Key, bool) {
	for _, c := range kv.red.ChildNodes() {
		if k, ok := CastKey(c); ok {
			return k, true
		}
	}
	return Key{}, false
}

func (kv KeyValue) Value() (Value, bool) {
	for _, c := range kv.red.ChildNodes() {
		if v, ok := CastValue(c); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Key is a tagged view over either a single key token (BARE_KEY or a
// quoted-key kind) or a DOTTED_KEYS composite.
type Key struct {
	base
	single *syntax.RedToken
}

func CastKey(n *syntax.RedNode) (Key, bool) {
	if n != nil && n.Kind() == token.DOTTED_KEYS {
		return Key{base: base{n}}, true
	}
	return Key{}, false
}

// CastKeyToken wraps a single key token (when the key has no dots) as a Key.
func CastKeyToken(t *syntax.RedToken) (Key, bool) {
	if t == nil || !t.Kind().IsKeyToken() {
		return Key{}, false
	}
	return Key{single: t}, true
}

// Segments returns the dotted path as raw (unescaped) strings.
func (k Key) Segments() []string {
	if k.single != nil {
		return []string{UnquoteKey(k.single.Kind(), k.single.Text())}
	}
	var out []string
	for _, t := range k.red.ChildTokens() {
		if t.Kind().IsKeyToken() {
			out = append(out, UnquoteKey(t.Kind(), t.Text()))
		}
	}
	return out
}

func (k Key) Span() token.ByteSpan {
	if k.single != nil {
		return k.single.Span()
	}
	return k.red.Span()
}

// UnquoteKey strips quoting from a raw key token's text, returning the
// segment's logical name. Escape processing for basic-quoted keys is
// delegated to the same routine used for basic strings.
func UnquoteKey(kind token.Kind, raw string) string {
	switch kind {
	case token.QUOTED_KEY_BASIC:
		return UnescapeBasicString(trimQuotes(raw, 1))
	case token.QUOTED_KEY_LITERAL:
		return trimQuotes(raw, 1)
	default:
		return raw
	}
}

func trimQuotes(s string, n int) string {
	if len(s) >= 2*n {
		return s[n : len(s)-n]
	}
	return s
}

// Value is a tagged view over one of TOML's value alternatives. Kind()
// reports which.
type Value struct {
	base
	token *syntax.RedToken
}

func CastValue(n *syntax.RedNode) (Value, bool) {
	switch {
	case n == nil:
		return Value{}, false
	case n.Kind() == token.INLINE_TABLE, n.Kind() == token.ARRAY, n.Kind() == token.VALUE:
		if n.Kind() == token.VALUE {
			for _, t := range n.ChildTokens() {
				if t.Kind().IsLiteral() {
					return Value{base: base{n}, token: t}, true
				}
			}
			return Value{}, false
		}
		return Value{base: base{n}}, true
	default:
		return Value{}, false
	}
}

// ValueKind identifies which TOML value alternative a Value wraps.
type ValueKind int

const (
	VBoolean ValueKind = iota
	VIntegerDec
	VIntegerHex
	VIntegerOct
	VIntegerBin
	VFloat
	VStringBasic
	VStringMLBasic
	VStringLiteral
	VStringMLLiteral
	VLocalDate
	VLocalDateTime
	VLocalTime
	VOffsetDateTime
	VInlineTable
	VArray
	VIncomplete
)

func (v Value) Kind() ValueKind {
	if v.token != nil {
		switch v.token.Kind() {
		case token.BOOLEAN:
			return VBoolean
		case token.INTEGER_DEC:
			return VIntegerDec
		case token.INTEGER_HEX:
			return VIntegerHex
		case token.INTEGER_OCT:
			return VIntegerOct
		case token.INTEGER_BIN:
			return VIntegerBin
		case token.FLOAT:
			return VFloat
		case token.STRING_BASIC:
			return VStringBasic
		case token.STRING_ML_BASIC:
			return VStringMLBasic
		case token.STRING_LITERAL:
			return VStringLiteral
		case token.STRING_ML_LITERAL:
			return VStringMLLiteral
		case token.LOCAL_DATE:
			return VLocalDate
		case token.LOCAL_DATE_TIME:
			return VLocalDateTime
		case token.LOCAL_TIME:
			return VLocalTime
		case token.OFFSET_DATE_TIME:
			return VOffsetDateTime
		}
	}
	if v.red != nil {
		switch v.red.Kind() {
		case token.INLINE_TABLE:
			return VInlineTable
		case token.ARRAY:
			return VArray
		}
	}
	return VIncomplete
}

// Text returns the raw source text of a scalar value token.
func (v Value) Text() string {
	if v.token != nil {
		return v.token.Text()
	}
	return ""
}

// Elements returns the typed array elements, in order, for an ARRAY value.
func (v Value) Elements() []Value {
	if v.red == nil || v.red.Kind() != token.ARRAY {
		return nil
	}
	var out []Value
	for _, c := range v.red.ChildNodes() {
		if e, ok := CastValue(c); ok {
			out = append(out, e)
		}
	}
	return out
}

// KeyValues returns the typed key/value children of an INLINE_TABLE value.
func (v Value) KeyValues() []KeyValue {
	if v.red == nil || v.red.Kind() != token.INLINE_TABLE {
		return nil
	}
	var out []KeyValue
	for _, c := range v.red.ChildNodes() {
		if kv, ok := CastKeyValue(c); ok {
			out = append(out, kv)
		}
	}
	return out
}

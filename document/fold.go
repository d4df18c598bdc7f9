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

package document

import (
	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

type builder struct {
	file    *token.File
	src     []byte
	tree    *Tree
	current *Table
	errors  errors.List
}

func (b *builder) errf(kind errors.Kind, span token.ByteSpan, format string, args ...any) {
	b.errors.Add(errors.Newf(kind, b.file.Position(span.Start), format, args...))
}

func findHeaderKey(n *syntax.RedNode) (ast.Key, bool) {
	for _, c := range n.ChildNodes() {
		if k, ok := ast.CastKey(c); ok {
			return k, true
		}
	}
	for _, t := range n.ChildTokens() {
		if k, ok := ast.CastKeyToken(t); ok {
			return k, true
		}
	}
	return ast.Key{}, false
}

func symbolRange(n *syntax.RedNode) token.ByteSpan {
	toks := n.ChildTokens()
	span := n.Span()
	for len(toks) > 0 && toks[len(toks)-1].Kind().IsTrivia() {
		span.End = toks[len(toks)-1].Span().Start
		toks = toks[:len(toks)-1]
	}
	return span
}

// foldHeader descends/creates ParentTable entries for all but the last key
// segment (rooted always at the document root, since TOML table headers
// are always absolute paths), then inserts or appends at the final segment
// (§4.5 steps 1–3). It returns the table that becomes the new "current"
// table for subsequent bare key/value lines.
func (b *builder) foldHeader(n *syntax.RedNode, isArray bool) *Table {
	header, ok := findHeaderKey(n)
	if !ok {
		return b.tree.Root
	}
	segs := header.Segments()
	if len(segs) == 0 {
		return b.tree.Root
	}
	cur := b.tree.Root
	for _, seg := range segs[:len(segs)-1] {
		next := b.descendParent(cur, seg, n.Span())
		if next == nil {
			return b.tree.Root
		}
		cur = next
	}
	last := segs[len(segs)-1]
	if isArray {
		return b.appendArrayOfTable(cur, last, n)
	}
	return b.insertTable(cur, last, n)
}

// descendParent implements the ParentTable column of §4.5's merge table
// for header path prefixes: an absent key creates a fresh ParentTable; an
// existing Table/ParentTable/ArrayOfTable is reused (a prefix through an
// array-of-tables continues into its most recent element, per TOML); a
// KeyValue/InlineTable prefix is a conflict.
func (b *builder) descendParent(cur *Table, seg string, headerSpan token.ByteSpan) *Table {
	existing, ok := cur.KeyValues[seg]
	if !ok {
		t := &Table{Kind: KindParentTable, Range: headerSpan, SymbolRange: headerSpan, KeyValues: map[string]*Value{}}
		cur.KeyValues[seg] = &Value{Kind: VTable, Range: headerSpan, Table: t}
		cur.Keys = append(cur.Keys, seg)
		return t
	}
	if existing.Kind != VTable {
		b.errf(errors.ConflictTable, headerSpan, "key %q is not a table", seg)
		return nil
	}
	switch existing.Table.Kind {
	case KindParentTable, KindTable, KindParentKey:
		return existing.Table
	case KindArrayOfTable:
		return lastArrayElement(existing)
	default:
		b.errf(errors.ConflictTable, headerSpan, "key %q conflicts with an existing declaration", seg)
		return nil
	}
}

// lastArrayElement returns the table body of the most recently appended
// element of an array-of-tables value.
func lastArrayElement(v *Value) *Table {
	if v == nil || len(v.Array) == 0 {
		return nil
	}
	return v.Array[len(v.Array)-1].Table
}

func (b *builder) insertTable(cur *Table, seg string, n *syntax.RedNode) *Table {
	header, _ := findHeaderKey(n)
	existing, ok := cur.KeyValues[seg]
	if !ok {
		t := &Table{Kind: KindTable, Range: n.Span(), SymbolRange: symbolRange(n), KeyValues: map[string]*Value{}}
		cur.KeyValues[seg] = &Value{Kind: VTable, Range: n.Span(), Table: t}
		cur.Keys = append(cur.Keys, seg)
		return t
	}
	if existing.Kind != VTable {
		b.errf(errors.ConflictTable, n.Span(), "table %q conflicts with an existing key", header.Segments())
		return cur
	}
	switch existing.Table.Kind {
	case KindParentTable:
		// Promote: this header supplies the body for a parent implicitly
		// created by a deeper header seen earlier (§4.5, Table×ParentTable).
		existing.Table.Kind = KindTable
		existing.Table.Range = existing.Table.Range.Cover(n.Span())
		return existing.Table
	case KindParentKey:
		b.errf(errors.ConflictTable, n.Span(), "table %q redeclares a dotted key", header.Segments())
		existing.Table.Kind = KindTable
		return existing.Table
	default:
		b.errf(errors.ConflictTable, n.Span(), "table %q is declared more than once", header.Segments())
		return existing.Table
	}
}

func (b *builder) appendArrayOfTable(cur *Table, seg string, n *syntax.RedNode) *Table {
	header, _ := findHeaderKey(n)
	existing, ok := cur.KeyValues[seg]
	t := &Table{Kind: KindArrayOfTable, Range: n.Span(), SymbolRange: symbolRange(n), KeyValues: map[string]*Value{}}
	if !ok {
		arr := &Value{Kind: VArray, Range: n.Span(), Array: []*Value{{Kind: VTable, Range: n.Span(), Table: t}}}
		cur.KeyValues[seg] = arr
		cur.Keys = append(cur.Keys, seg)
		return t
	}
	if existing.Kind != VArray {
		b.errf(errors.ConflictTable, n.Span(), "key %q is not an array of tables", header.Segments())
		return cur
	}
	existing.Array = append(existing.Array, &Value{Kind: VTable, Range: n.Span(), Table: t})
	existing.Range = existing.Range.Cover(n.Span())
	return t
}

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
	"github.com/tombi-toml/tombi/token"
)

// insertKeyValue folds one `key = value` declaration (top-level or nested
// inside an inline table) into cur, descending through dotted-key segments
// as ParentKey tables (§4.5's ParentKey column) before applying the final
// merge-rule row at the leaf segment.
func (b *builder) insertKeyValue(cur *Table, kv ast.KeyValue) {
	key, ok := kv.Key()
	if !ok {
		return
	}
	segs := key.Segments()
	if len(segs) == 0 {
		return
	}
	for _, seg := range segs[:len(segs)-1] {
		next := b.descendParentKey(cur, seg, key.Span())
		if next == nil {
			return
		}
		cur = next
	}
	b.insertLeaf(cur, segs[len(segs)-1], kv)
}

// descendParentKey implements the ParentKey column of §4.5's merge table:
// an absent segment creates a ParentKey table; an existing ParentTable or
// ParentKey is reused; a Table is reused (ok, no change); anything else
// conflicts.
func (b *builder) descendParentKey(cur *Table, seg string, span token.ByteSpan) *Table {
	existing, ok := cur.KeyValues[seg]
	if !ok {
		t := &Table{Kind: KindParentKey, Range: span, SymbolRange: span, KeyValues: map[string]*Value{}}
		cur.KeyValues[seg] = &Value{Kind: VTable, Range: span, Table: t}
		cur.Keys = append(cur.Keys, seg)
		return t
	}
	if existing.Kind != VTable {
		b.errf(errors.DuplicateKey, span, "key %q already has a value", seg)
		return nil
	}
	switch existing.Table.Kind {
	case KindParentTable, KindParentKey, KindTable:
		return existing.Table
	default:
		b.errf(errors.ConflictTable, span, "key %q conflicts with an existing declaration", seg)
		return nil
	}
}

// insertLeaf applies the final-segment merge rule: an absent key is a
// plain insert; an existing entry is merged per the KeyValue row of §4.5's
// table (scalar/scalar is a duplicate-key error with the first value kept;
// table/table recurses; array/array appends; anything else conflicts).
func (b *builder) insertLeaf(cur *Table, seg string, kv ast.KeyValue) {
	var newValue *Value
	if val, ok := kv.Value(); ok {
		newValue = b.convertValue(val)
	} else {
		// No value node survived parsing (e.g. `serde.workspace` with no
		// trailing `= ...`, recovered by parser.parseKeyValueLine). §4.5/§7:
		// an incomplete key-value still gets a document-tree entry — a
		// VIncomplete placeholder — rather than vanishing, so later stages
		// (completion's magic-trigger path, hover) still have a node to
		// attach to.
		newValue = &Value{Kind: VIncomplete, Range: kv.Span()}
	}

	existing, ok := cur.KeyValues[seg]
	if !ok {
		cur.KeyValues[seg] = newValue
		cur.Keys = append(cur.Keys, seg)
		return
	}

	switch {
	case existing.Kind == VTable && newValue.Kind == VTable:
		b.mergeTables(existing.Table, newValue.Table)
	case existing.Kind == VArray && newValue.Kind == VArray:
		existing.Array = append(existing.Array, newValue.Array...)
	case existing.Kind == VTable && (existing.Table.Kind == KindParentTable || existing.Table.Kind == KindParentKey):
		// A dotted/header-created parent is being given its scalar value
		// directly — treat like "ok" promotion rather than a conflict.
		cur.KeyValues[seg] = newValue
	default:
		b.errf(errors.DuplicateKey, newValue.Range, "duplicate key %q", seg)
	}
}

// mergeTables merges src's entries into dst, reporting a duplicate-key
// error for any scalar collision but always keeping dst's (first-seen)
// value — idempotent merge regardless of which side is visited first
// within one fold (P2).
func (b *builder) mergeTables(dst, src *Table) {
	for _, seg := range src.Keys {
		sv := src.KeyValues[seg]
		if dv, ok := dst.KeyValues[seg]; ok {
			if dv.Kind == VTable && sv.Kind == VTable {
				b.mergeTables(dv.Table, sv.Table)
				continue
			}
			b.errf(errors.DuplicateKey, sv.Range, "duplicate key %q", seg)
			continue
		}
		dst.KeyValues[seg] = sv
		dst.Keys = append(dst.Keys, seg)
	}
}

// convertValue builds a document Value from a typed AST value, recursing
// into arrays and inline tables.
func (b *builder) convertValue(v ast.Value) *Value {
	span := v.Span()
	switch v.Kind() {
	case ast.VBoolean:
		return &Value{Kind: VBoolean, Range: span, AST: v}
	case ast.VIntegerDec:
		return &Value{Kind: VInteger, Range: span, AST: v, Radix: 10}
	case ast.VIntegerHex:
		return &Value{Kind: VInteger, Range: span, AST: v, Radix: 16}
	case ast.VIntegerOct:
		return &Value{Kind: VInteger, Range: span, AST: v, Radix: 8}
	case ast.VIntegerBin:
		return &Value{Kind: VInteger, Range: span, AST: v, Radix: 2}
	case ast.VFloat:
		return &Value{Kind: VFloat, Range: span, AST: v}
	case ast.VStringBasic, ast.VStringMLBasic, ast.VStringLiteral, ast.VStringMLLiteral:
		return &Value{Kind: VString, Range: span, AST: v}
	case ast.VLocalDate:
		return &Value{Kind: VLocalDate, Range: span, AST: v}
	case ast.VLocalDateTime:
		return &Value{Kind: VLocalDateTime, Range: span, AST: v}
	case ast.VLocalTime:
		return &Value{Kind: VLocalTime, Range: span, AST: v}
	case ast.VOffsetDateTime:
		return &Value{Kind: VOffsetDateTime, Range: span, AST: v}
	case ast.VArray:
		elems := v.Elements()
		out := make([]*Value, 0, len(elems))
		for _, e := range elems {
			out = append(out, b.convertValue(e))
		}
		return &Value{Kind: VArray, Range: span, Array: out}
	case ast.VInlineTable:
		t := &Table{Kind: KindInlineTable, Range: span, SymbolRange: span, KeyValues: map[string]*Value{}}
		for _, kv := range v.KeyValues() {
			b.insertKeyValue(t, kv)
		}
		return &Value{Kind: VTable, Range: span, Table: t}
	default:
		return &Value{Kind: VIncomplete, Range: span, AST: v}
	}
}

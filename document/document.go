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

// Package document builds the semantic document tree over the typed AST:
// the D component. It folds top-level table/array-of-table headers and
// key/value pairs, in source order, into a single merged tree, applying
// the merge rules of §4.5 and reporting duplicate-key/conflicting-table
// diagnostics as it goes — the same shape as cue/internal/core folding
// multiple declarations of one field into a unified value while recording
// conflicts, just with TOML's simpler (non-lattice) merge semantics.
package document

import (
	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/token"
)

// TableKind is the closed set of table-node states from §4.5's merge-rule
// table and §4.9's state machine.
type TableKind int

const (
	KindRoot TableKind = iota
	KindTable
	KindArrayOfTable
	KindInlineTable
	KindParentTable
	KindParentKey
	KindKeyValue
)

// Table is a node of the merged document tree (§3's DocumentTree.Table).
type Table struct {
	Kind        TableKind
	Range       token.ByteSpan // full syntactic range
	SymbolRange token.ByteSpan // range excluding trailing trivia
	HasComment  bool           // InlineTable only: has a trailing comment

	Keys      []string // insertion order
	KeyValues map[string]*Value

	CommentDirectives      []Directive
	InnerCommentDirectives []Directive
}

// Value is a tagged document-tree value (§3's DocumentTree.Value). Exactly
// one of the typed fields is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Range token.ByteSpan
	AST   ast.Value // the scalar AST node this was built from, if any

	Table *Table   // Kind == VTable
	Array []*Value // Kind == VArray

	Radix int // Kind == VInteger: 10, 16, 8, or 2
}

type ValueKind int

const (
	VBoolean ValueKind = iota
	VInteger
	VFloat
	VString
	VLocalDate
	VLocalDateTime
	VLocalTime
	VOffsetDateTime
	VArray
	VTable
	VIncomplete
)

// Tree is the result of building a document: its root table plus every
// diagnostic raised while folding, and any file-level `#:schema` pin.
type Tree struct {
	Root   *Table
	Errors errors.List
	Schema string
}

// Build folds a parsed Root AST into a document Tree (§4.5's contract).
func Build(file *token.File, src []byte, root ast.Root, version lexer.Version) *Tree {
	tree := &Tree{Root: &Table{Kind: KindRoot, Range: root.Span(), SymbolRange: root.Span(), KeyValues: map[string]*Value{}}}
	b := &builder{file: file, src: src, tree: tree, current: tree.Root}
	b.scanLeadingDirectives(root)
	for _, item := range root.Items() {
		switch n := item.(type) {
		case ast.Table:
			b.current = b.foldHeader(n.Red(), false)
		case ast.ArrayOfTable:
			b.current = b.foldHeader(n.Red(), true)
		case ast.KeyValue:
			b.insertKeyValue(b.current, n)
		}
	}
	tree.Errors = b.errors
	return tree
}

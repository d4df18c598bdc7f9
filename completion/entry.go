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

package completion

import (
	"context"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

// Complete is the editor-facing entry point: given the parsed document's
// red root, its folded document tree, a byte offset, and the resolved
// root schema, it locates the enclosing table and dotted key path leading
// to the cursor and delegates to FindCompletionContents.
func Complete(ctx context.Context, cctx *Context, red *syntax.RedNode, tree *document.Tree, offset int, root *schema.DocumentSchema) []CompletionContent {
	hint := classifyHint(red, offset)
	keys := resolvedKeyPath(red, offset)

	if root == nil || root.ValueSchema == nil {
		return schemaFreeCandidates()
	}
	current := &schema.CurrentSchema{Value: root.ValueSchema, SchemaURI: root.SchemaURI, Definitions: root.Definitions}
	return FindCompletionContents(ctx, cctx, tree.Root, keys, nil, current, hint)
}

// classifyHint inspects the token immediately before offset to pick a
// completion hint (§4.8). This is a simplified but real classification:
// a `.` immediately before the cursor is a DotTrigger, a `=` is an
// EqualTrigger, and unclosed `[`/`{` ancestry upgrades the hint to
// InTableHeader/InArray.
func classifyHint(red *syntax.RedNode, offset int) Hint {
	tok := red.TokenAtOffset(offset)
	if tok == nil {
		return Hint{Kind: HintNone}
	}
	switch tok.Kind() {
	case token.DOT:
		return Hint{Kind: HintDotTrigger, Range: tok.Span()}
	case token.EQUAL:
		return Hint{Kind: HintEqualTrigger, Range: tok.Span()}
	case token.COMMA:
		return Hint{Kind: HintComma, Range: tok.Span()}
	}
	if p := tok.Parent(); p != nil {
		switch p.Kind() {
		case token.ARRAY:
			return Hint{Kind: HintInArray}
		case token.TABLE, token.ARRAY_OF_TABLE:
			return Hint{Kind: HintInTableHeader}
		}
	}
	return Hint{Kind: HintNone}
}

// resolvedKeyPath walks up from the token at offset to the nearest
// KEY_VALUE or header node and returns the full dotted key path from the
// document root to the cursor, the "keys_remaining" §4.8's walk consumes
// one segment at a time. A header (`[…]`/`[[…]]`) is always an absolute
// path (TOML table headers are never relative, per document/fold.go), so
// its own segments are the whole answer. A body KEY_VALUE's own Key() is
// only relative to its *enclosing* table — the red tree is flat, with the
// header and the key/value lines as plain ROOT siblings — so the enclosing
// header's path (headerPathAtOffset) must be prepended, or every body
// completion resolves against the root schema instead of the table the key
// actually lives in (spec.md §8 scenarios 3-5).
func resolvedKeyPath(red *syntax.RedNode, offset int) []string {
	tok := red.TokenAtOffset(offset)
	if tok == nil {
		return nil
	}
	for n := tok.Parent(); n != nil; n = n.Parent() {
		switch n.Kind() {
		case token.KEY_VALUE:
			if kv, ok := ast.CastKeyValue(n); ok {
				if k, ok := kv.Key(); ok {
					return append(headerPathAtOffset(red, n.Span().Start), k.Segments()...)
				}
			}
			return nil
		case token.TABLE, token.ARRAY_OF_TABLE:
			for _, c := range n.ChildNodes() {
				if k, ok := ast.CastKey(c); ok {
					return k.Segments()
				}
			}
			return nil
		case token.ROOT:
			return nil
		}
	}
	return nil
}

// headerPathAtOffset finds the table/array-of-table header most recently
// in effect before offset among red's (the document root's) top-level
// items — the same "current table" the document builder itself tracks
// while folding (document.Build's b.current) — and returns its absolute
// key path, or nil at the top level.
func headerPathAtOffset(red *syntax.RedNode, offset int) []string {
	var segs []string
	for _, n := range red.ChildNodes() {
		if n.Span().Start >= offset {
			break
		}
		switch n.Kind() {
		case token.TABLE, token.ARRAY_OF_TABLE:
			for _, c := range n.ChildNodes() {
				if k, ok := ast.CastKey(c); ok {
					segs = k.Segments()
				}
			}
		}
	}
	return segs
}

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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

func build(t *testing.T, src string) *Tree {
	t.Helper()
	file := token.NewFile("t.toml", len(src))
	p := parser.Parse(file, []byte(src), lexer.V1_0_0)
	green := syntax.Build([]byte(src), p)
	root, ok := ast.CastRoot(syntax.NewRoot(green))
	qt.Assert(t, qt.IsTrue(ok))
	return Build(file, []byte(src), root, lexer.V1_0_0)
}

func kindsOf(errs errors.List) []errors.Kind {
	out := make([]errors.Kind, len(errs))
	for i, e := range errs {
		out[i] = e.Kind()
	}
	return out
}

func containsKind(kinds []errors.Kind, want errors.Kind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// TestDuplicateTableConflict is spec.md §8 scenario 6, literally: a table
// redeclared raises one ConflictTable, the duplicate scalar key inside it
// raises one DuplicateKey, and the first value wins.
func TestDuplicateTableConflict(t *testing.T) {
	tree := build(t, "[a]\nx = 1\n[a]\nx = 2\n")

	gotKinds := kindsOf(tree.Errors)
	qt.Assert(t, qt.IsTrue(containsKind(gotKinds, errors.ConflictTable)))
	qt.Assert(t, qt.IsTrue(containsKind(gotKinds, errors.DuplicateKey)))

	aVal, ok := tree.Root.KeyValues["a"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(aVal.Kind, VTable))
	xVal, ok := aVal.Table.KeyValues["x"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(xVal.AST.Text(), "1"))
}

func TestNestedTableHeaderCreatesParents(t *testing.T) {
	tree := build(t, "[a.b.c]\nx = 1\n")
	a, ok := tree.Root.KeyValues["a"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(a.Table.Kind, KindParentTable))
	b, ok := a.Table.KeyValues["b"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(b.Table.Kind, KindParentTable))
	c, ok := b.Table.KeyValues["c"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(c.Table.Kind, KindTable))
}

func TestHeaderAfterImplicitParentPromotes(t *testing.T) {
	// [a.b] first creates a ParentTable at "a"; [a] itself should promote
	// that ParentTable to Table without a conflict (§4.5: Table x
	// ParentTable -> "ok (no change)"/"promote").
	tree := build(t, "[a.b]\nx = 1\n[a]\ny = 2\n")
	qt.Assert(t, qt.HasLen(tree.Errors, 0))
	a := tree.Root.KeyValues["a"]
	qt.Assert(t, qt.Equals(a.Table.Kind, KindTable))
	_, hasY := a.Table.KeyValues["y"]
	qt.Assert(t, qt.IsTrue(hasY))
}

func TestArrayOfTablesAppends(t *testing.T) {
	tree := build(t, "[[items]]\nname = \"a\"\n[[items]]\nname = \"b\"\n")
	items, ok := tree.Root.KeyValues["items"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(items.Kind, VArray))
	qt.Assert(t, qt.HasLen(items.Array, 2))
	qt.Assert(t, qt.Equals(items.Array[0].Table.KeyValues["name"].AST.Text(), `"a"`))
	qt.Assert(t, qt.Equals(items.Array[1].Table.KeyValues["name"].AST.Text(), `"b"`))
}

func TestSchemaDirectiveIsRecognized(t *testing.T) {
	tree := build(t, "#:schema https://example.com/s.json\nkey = 1\n")
	qt.Assert(t, qt.Equals(tree.Schema, "https://example.com/s.json"))
}

func TestRangeCoversSymbolRange(t *testing.T) {
	// P6: SymbolRange must be contained within Range for every table.
	tree := build(t, "[a]\nx = 1\n# dangling trailing comment\n")
	a := tree.Root.KeyValues["a"].Table
	qt.Assert(t, qt.IsTrue(a.SymbolRange.Start >= a.Range.Start))
	qt.Assert(t, qt.IsTrue(a.SymbolRange.End <= a.Range.End))
}

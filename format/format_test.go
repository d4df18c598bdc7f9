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

package format

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

func build(t *testing.T, src string) *document.Tree {
	t.Helper()
	file := token.NewFile("t.toml", len(src))
	p := parser.Parse(file, []byte(src), lexer.V1_0_0)
	green := syntax.Build([]byte(src), p)
	root, ok := ast.CastRoot(syntax.NewRoot(green))
	qt.Assert(t, qt.IsTrue(ok))
	return document.Build(file, []byte(src), root, lexer.V1_0_0)
}

func TestFormatPreservesDocumentOrder(t *testing.T) {
	tree := build(t, "b = 1\na = 2\nc = 3\n")
	out := Format(tree, nil, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "b = 1\na = 2\nc = 3\n"))
}

func TestFormatAscendingKeyOrder(t *testing.T) {
	tree := build(t, "b = 1\na = 2\nc = 3\n")
	sv := &schema.ValueSchema{Kind: schema.KindTable, Table: &schema.TableSchema{KeysOrder: "ascending"}}
	out := Format(tree, sv, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "a = 2\nb = 1\nc = 3\n"))
}

func TestFormatSchemaKeyOrder(t *testing.T) {
	tree := build(t, "b = 1\na = 2\nc = 3\n")
	sv := &schema.ValueSchema{Kind: schema.KindTable, Table: &schema.TableSchema{
		KeysOrder:     "schema",
		PropertyOrder: []string{"c", "b", "a"},
	}}
	out := Format(tree, sv, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "c = 3\nb = 1\na = 2\n"))
}

func TestFormatNestedTable(t *testing.T) {
	tree := build(t, "[a.b]\nx = 1\n")
	out := Format(tree, nil, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "[a.b]\nx = 1\n"))
}

func TestFormatArrayOfTables(t *testing.T) {
	tree := build(t, "[[items]]\nname = \"a\"\n[[items]]\nname = \"b\"\n")
	out := Format(tree, nil, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "[[items]]\nname = \"a\"\n[[items]]\nname = \"b\"\n"))
}

func TestFormatInlineScalarArray(t *testing.T) {
	tree := build(t, "arr = [3, 1, 2]\n")
	out := Format(tree, nil, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "arr = [3, 1, 2]\n"))
}

func TestFormatArrayAscendingOrder(t *testing.T) {
	tree := build(t, "arr = [3, 1, 2]\n")
	sv := &schema.ValueSchema{Kind: schema.KindTable, Table: &schema.TableSchema{
		Properties: map[string]*schema.Referable[schema.ValueSchema]{
			"arr": schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{
				Kind: schema.KindArray, Array: schema.ArrayConstraints{ValuesOrder: "ascending"},
			}),
		},
		PropertyOrder: []string{"arr"},
	}}
	out := Format(tree, sv, DefaultOptions())
	qt.Assert(t, qt.Equals(out, "arr = [1, 2, 3]\n"))
}

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

package ast

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

func buildRoot(t *testing.T, src string) Root {
	t.Helper()
	file := token.NewFile("t.toml", len(src))
	p := parser.Parse(file, []byte(src), lexer.V1_0_0)
	green := syntax.Build([]byte(src), p)
	root, ok := CastRoot(syntax.NewRoot(green))
	qt.Assert(t, qt.IsTrue(ok))
	return root
}

func TestUnescapeBasicStringHandlesCommonEscapes(t *testing.T) {
	qt.Assert(t, qt.Equals(UnescapeBasicString(`a\nb\tc`), "a\nb\tc"))
	qt.Assert(t, qt.Equals(UnescapeBasicString(`\"quoted\"`), `"quoted"`))
	qt.Assert(t, qt.Equals(UnescapeBasicString(`no escapes`), "no escapes"))
}

func TestUnescapeBasicStringHandlesUnicodeEscapes(t *testing.T) {
	qt.Assert(t, qt.Equals(UnescapeBasicString(`\u00E9`), "é"))
	qt.Assert(t, qt.Equals(UnescapeBasicString(`\U0001F600`), "\U0001F600"))
}

func TestUnescapeBasicStringPassesThroughUnrecognizedEscape(t *testing.T) {
	qt.Assert(t, qt.Equals(UnescapeBasicString(`\q`), `\q`))
}

func TestUnescapeBasicStringPassesThroughTruncatedUnicodeEscape(t *testing.T) {
	qt.Assert(t, qt.Equals(UnescapeBasicString(`\u12`), `\u12`))
}

func TestRootItemsCoversTopLevelDeclarations(t *testing.T) {
	root := buildRoot(t, "a = 1\n[b]\nc = 2\n[[d]]\ne = 3\n")
	items := root.Items()
	// The tree is flat: key/values under a header are ROOT siblings too.
	qt.Assert(t, qt.HasLen(items, 5))

	_, isKV := items[0].(KeyValue)
	qt.Assert(t, qt.IsTrue(isKV))
	_, isTable := items[1].(Table)
	qt.Assert(t, qt.IsTrue(isTable))
	_, isArrayOfTable := items[3].(ArrayOfTable)
	qt.Assert(t, qt.IsTrue(isArrayOfTable))
}

func TestKeyValueKeyAndValue(t *testing.T) {
	root := buildRoot(t, `name = "hi"` + "\n")
	items := root.Items()
	qt.Assert(t, qt.HasLen(items, 1))

	kv, ok := items[0].(KeyValue)
	qt.Assert(t, qt.IsTrue(ok))

	key, ok := kv.Key()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(key.Segments(), []string{"name"}))

	val, ok := kv.Value()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(val.Kind(), VStringBasic))
	qt.Assert(t, qt.Equals(val.Text(), `"hi"`))
}

func TestTableHeaderDottedSegments(t *testing.T) {
	root := buildRoot(t, "[a.b.c]\nx = 1\n")
	items := root.Items()
	qt.Assert(t, qt.HasLen(items, 2))

	table, ok := items[0].(Table)
	qt.Assert(t, qt.IsTrue(ok))

	header, ok := table.Header()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(header.Segments(), []string{"a", "b", "c"}))
}

func TestQuotedKeySegmentUnescapesText(t *testing.T) {
	root := buildRoot(t, `"a\tb" = 1` + "\n")
	items := root.Items()
	qt.Assert(t, qt.HasLen(items, 1))

	kv, ok := items[0].(KeyValue)
	qt.Assert(t, qt.IsTrue(ok))
	key, ok := kv.Key()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(key.Segments(), []string{"a\tb"}))
}

func TestValueArrayElements(t *testing.T) {
	root := buildRoot(t, "xs = [1, 2, 3]\n")
	items := root.Items()
	kv, ok := items[0].(KeyValue)
	qt.Assert(t, qt.IsTrue(ok))
	val, ok := kv.Value()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(val.Kind(), VArray))

	elems := val.Elements()
	qt.Assert(t, qt.HasLen(elems, 3))
	for _, e := range elems {
		qt.Assert(t, qt.Equals(e.Kind(), VIntegerDec))
	}
}

func TestValueInlineTableKeyValues(t *testing.T) {
	root := buildRoot(t, "t = { a = 1, b = 2 }\n")
	items := root.Items()
	kv, ok := items[0].(KeyValue)
	qt.Assert(t, qt.IsTrue(ok))
	val, ok := kv.Value()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(val.Kind(), VInlineTable))

	kvs := val.KeyValues()
	qt.Assert(t, qt.HasLen(kvs, 2))
}

func TestCastRootRejectsNonRootNode(t *testing.T) {
	_, ok := CastRoot(nil)
	qt.Assert(t, qt.IsFalse(ok))
}

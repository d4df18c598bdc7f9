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

package syntax

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/token"
)

// TestBuildLosslessRoundtrip is P1 at the tree level: rendering a built
// green tree's text must reproduce the source exactly, for both valid and
// invalid input (§8).
func TestBuildLosslessRoundtrip(t *testing.T) {
	cases := []string{
		"",
		"key = \"value\"\n# trailing\n",
		"[a.b]\nx = 1\n\n[a.c]\ny = 2\n",
		"arr = [1, 2, 3,]\n",
		"bad =\nok = 1\n",
		"[[items]]\nname = \"a\"\n[[items]]\nname = \"b\"\n",
	}
	for _, src := range cases {
		file := token.NewFile("t.toml", len(src))
		p := parser.Parse(file, []byte(src), lexer.V1_0_0)
		green := Build([]byte(src), p)
		qt.Assert(t, qt.Equals(green.Text(), src), qt.Commentf("source: %q", src))
	}
}

func TestRedNodeOffsetsAreAbsolute(t *testing.T) {
	src := "[a]\nx = 1\n"
	file := token.NewFile("t.toml", len(src))
	p := parser.Parse(file, []byte(src), lexer.V1_0_0)
	green := Build([]byte(src), p)
	root := NewRoot(green)

	qt.Assert(t, qt.Equals(root.Offset(), 0))
	qt.Assert(t, qt.Equals(root.Span().Len(), len(src)))

	var walk func(n *RedNode)
	seen := false
	walk = func(n *RedNode) {
		for _, c := range n.ChildNodes() {
			qt.Assert(t, qt.IsTrue(c.Offset() >= n.Offset()))
			seen = true
			walk(c)
		}
	}
	walk(root)
	qt.Assert(t, qt.IsTrue(seen))
}

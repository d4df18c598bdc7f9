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

package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/token"
)

func parse(src string) Parsed {
	file := token.NewFile("test.toml", len(src))
	return Parse(file, []byte(src), lexer.V1_0_0)
}

func TestParseWellFormedHasNoErrors(t *testing.T) {
	cases := []string{
		"",
		"key = \"value\"\n",
		"[a.b.c]\nx = 1\n",
		"[[arr]]\nx = 1\n[[arr]]\nx = 2\n",
		"inline = { a = 1, b = 2 }\n",
		"arr = [1, 2, 3]\n",
	}
	for _, src := range cases {
		p := parse(src)
		qt.Assert(t, qt.HasLen(p.Errors, 0), qt.Commentf("source: %q", src))
	}
}

func TestParseRecoversFromSyntaxError(t *testing.T) {
	// A missing `=` should not abort parsing the rest of the document:
	// §4.2 resynchronizes at the next line boundary.
	p := parse("bad\nok = 1\n")
	qt.Assert(t, qt.Not(qt.HasLen(p.Errors, 0)))

	// The event stream must still finish with a balanced Root node: one
	// FinishNode for every StartNode.
	depth := 0
	for _, e := range p.Events {
		switch e.Kind {
		case StartNode:
			depth++
		case FinishNode:
			depth--
		}
	}
	qt.Assert(t, qt.Equals(depth, 0))
}

func TestParseEventsBalanced(t *testing.T) {
	p := parse("[a]\nx = 1\ny = [1, 2]\nz = { w = 1 }\n")
	depth := 0
	for _, e := range p.Events {
		switch e.Kind {
		case StartNode:
			depth++
		case FinishNode:
			depth--
		}
		qt.Assert(t, qt.IsTrue(depth >= 0))
	}
	qt.Assert(t, qt.Equals(depth, 0))
}

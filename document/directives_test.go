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

	"github.com/tombi-toml/tombi/token"
)

func TestParseFileDirectiveSchema(t *testing.T) {
	d, ok := parseFileDirective("#:schema https://example.com/s.json", token.ByteSpan{})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(d.Kind, DirectiveSchema))
	qt.Assert(t, qt.Equals(d.Value, "https://example.com/s.json"))
}

func TestParseFileDirectiveTombiConfig(t *testing.T) {
	d, ok := parseFileDirective("#:tombi-config ../shared/tombi.toml", token.ByteSpan{})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(d.Kind, DirectiveTombiConfig))
	qt.Assert(t, qt.Equals(d.Value, "../shared/tombi.toml"))
}

func TestParseFileDirectiveTombiKeyValue(t *testing.T) {
	d, ok := parseFileDirective("# tombi: table-keys-order=schema", token.ByteSpan{})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(d.Kind, DirectiveTombi))
	qt.Assert(t, qt.Equals(d.Key, "table-keys-order"))
	qt.Assert(t, qt.Equals(d.Value, "schema"))
}

func TestParseFileDirectiveOrdinaryCommentIsNotADirective(t *testing.T) {
	_, ok := parseFileDirective("# just a comment", token.ByteSpan{})
	qt.Assert(t, qt.IsFalse(ok))
}

// TestFirstSchemaDirectiveWins: only the first #:schema directive before any
// non-trivia content pins Tree.Schema; a later one is still recorded as a
// CommentDirective but doesn't override it.
func TestFirstSchemaDirectiveWins(t *testing.T) {
	tree := build(t, "#:schema https://example.com/first.json\n#:schema https://example.com/second.json\nkey = 1\n")
	qt.Assert(t, qt.Equals(tree.Schema, "https://example.com/first.json"))

	var schemaDirectives int
	for _, d := range tree.Root.CommentDirectives {
		if d.Kind == DirectiveSchema {
			schemaDirectives++
		}
	}
	qt.Assert(t, qt.Equals(schemaDirectives, 2))
}

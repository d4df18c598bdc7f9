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
	"strings"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/token"
)

// DirectiveKind identifies which of the `#:`-prefixed magic comments (§6)
// a Directive records.
type DirectiveKind int

const (
	// DirectiveSchema is `#:schema <path-or-url>`, pinning the document's
	// schema independent of any catalog match.
	DirectiveSchema DirectiveKind = iota
	// DirectiveTombiConfig is `#:tombi-config <path>`, pointing at a
	// config file other than tombi.toml for this document alone.
	DirectiveTombiConfig
	// DirectiveTombi is a generic `# tombi: <key>=<value>` inline option
	// override, e.g. `# tombi: table-keys-order=schema`.
	DirectiveTombi
)

// Directive is one recognized magic comment, attached to the table whose
// leading (or inner) comment block it was found in.
type Directive struct {
	Kind  DirectiveKind
	Key   string // DirectiveTombi only
	Value string
	Range token.ByteSpan
}

// parseFileDirective recognizes the three `#:`/`# tombi:` directive forms
// from the body of a single comment token, returning false for an ordinary
// comment.
func parseFileDirective(text string, span token.ByteSpan) (Directive, bool) {
	text = strings.TrimPrefix(text, "#")
	trimmed := strings.TrimSpace(text)

	if rest, ok := cutPrefix(trimmed, ":schema"); ok {
		return Directive{Kind: DirectiveSchema, Value: strings.TrimSpace(rest), Range: span}, true
	}
	if rest, ok := cutPrefix(trimmed, ":tombi-config"); ok {
		return Directive{Kind: DirectiveTombiConfig, Value: strings.TrimSpace(rest), Range: span}, true
	}
	if rest, ok := cutPrefix(trimmed, "tombi:"); ok {
		kv := strings.SplitN(strings.TrimSpace(rest), "=", 2)
		d := Directive{Kind: DirectiveTombi, Range: span}
		d.Key = strings.TrimSpace(kv[0])
		if len(kv) == 2 {
			d.Value = strings.TrimSpace(kv[1])
		}
		return d, true
	}
	return Directive{}, false
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// scanLeadingDirectives walks every COMMENT token in the document once,
// recognizing `#:schema`/`#:tombi-config`/`# tombi:` directives. A
// `#:schema` directive found before the first non-trivia item pins
// Tree.Schema (§6); any directive is also attached to the root table's
// CommentDirectives so later components (format, completion) can look up
// per-table overrides without a second pass over the tree.
func (b *builder) scanLeadingDirectives(root ast.Root) {
	var leading = true
	firstItem := -1
	if nodes := root.Red().ChildNodes(); len(nodes) > 0 {
		firstItem = nodes[0].Offset()
	}
	for _, t := range root.Red().ChildTokens() {
		if firstItem >= 0 && t.Offset() > firstItem {
			leading = false
		}
		if t.Kind() == token.WHITESPACE || t.Kind() == token.LINE_ENDING {
			continue
		}
		if t.Kind() != token.COMMENT {
			leading = false
			continue
		}
		d, ok := parseFileDirective(t.Text(), t.Span())
		if !ok {
			continue
		}
		if leading && d.Kind == DirectiveSchema && b.tree.Schema == "" {
			b.tree.Schema = d.Value
		}
		b.tree.Root.CommentDirectives = append(b.tree.Root.CommentDirectives, d)
	}
}

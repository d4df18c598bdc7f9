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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tombi-toml/tombi/schema"
)

// ContentKind distinguishes a key completion from a value completion
// (§4.8's "Candidate production rules").
type ContentKind int

const (
	ContentKey ContentKind = iota
	ContentValue
)

// CompletionContent is one emitted candidate.
type CompletionContent struct {
	Kind          ContentKind
	Label         string
	Detail        string
	Documentation string
	Required      bool
	Deprecated    bool
	Snippet       string // with $1/$0-style tab stops
}

// newKeyCandidate builds a key completion: label, detail from the
// property's title/type, documentation from its description, and a
// snippet that's context-aware per §4.8 ("Snippet construction").
func newKeyCandidate(label string, v *schema.ValueSchema, required bool, hint Hint) CompletionContent {
	c := CompletionContent{Kind: ContentKey, Label: label, Required: required}
	if v != nil {
		c.Detail = detailFor(v)
		c.Documentation = v.Description
		c.Deprecated = v.Deprecated
	}
	c.Snippet = keySnippet(label, v, hint)
	return c
}

func detailFor(v *schema.ValueSchema) string {
	if v.Title != "" {
		return v.Title
	}
	return kindName(v.Kind)
}

func kindName(k schema.ValueKind) string {
	switch k {
	case schema.KindBoolean:
		return "boolean"
	case schema.KindInteger:
		return "integer"
	case schema.KindFloat:
		return "float"
	case schema.KindString:
		return "string"
	case schema.KindLocalDate:
		return "local-date"
	case schema.KindLocalDateTime:
		return "local-date-time"
	case schema.KindLocalTime:
		return "local-time"
	case schema.KindOffsetDateTime:
		return "offset-date-time"
	case schema.KindArray:
		return "array"
	case schema.KindTable:
		return "table"
	case schema.KindOneOf:
		return "oneOf"
	case schema.KindAnyOf:
		return "anyOf"
	case schema.KindAllOf:
		return "allOf"
	default:
		return "null"
	}
}

// keySnippet builds a key candidate's snippet from its label alone. A
// DotTrigger returns the bare label, extending the dotted path already
// typed (`key.` + "workspace" reads `key.workspace`). An EqualTrigger and
// no hint produce the same forms: `label = { $1 }$0` for a table-kind
// property, `label = $1` otherwise. The enclosing key is never part of the
// snippet, and the label is never placed inside the braces.
func keySnippet(label string, v *schema.ValueSchema, hint Hint) string {
	switch hint.Kind {
	case HintDotTrigger:
		return label
	case HintEqualTrigger:
		if v != nil && v.Kind == schema.KindTable {
			return fmt.Sprintf("%s = { $1 }$0", label)
		}
		return fmt.Sprintf("%s = $1", label)
	default:
		if v != nil && v.Kind == schema.KindTable {
			return fmt.Sprintf("%s = { $1 }$0", label)
		}
		return fmt.Sprintf("%s = $1", label)
	}
}

// newValueCandidate builds a literal value completion, e.g. "true"/"false"
// for a boolean-kind schema, or one label per enum/const entry.
func newValueCandidate(label string, deprecated bool) CompletionContent {
	return CompletionContent{Kind: ContentValue, Label: label, Snippet: label, Deprecated: deprecated}
}

// valueCandidatesFor renders §4.8's "Value candidates carry a label that is
// the rendered value" for a leaf (non-table, non-composite) schema node.
// `const`/`enum` take priority over the type-driven rendering, matching
// ValueSchema's own precedence (§3): a const- or enum-carrying schema still
// reports a base Kind, but completion must offer only the fixed member set,
// not every value of that kind. Plain KindBoolean is spec.md §8 scenario 4
// (`completion.enabled = █` -> `true, false`).
func valueCandidatesFor(v *schema.ValueSchema) []CompletionContent {
	if v == nil {
		return schemaFreeCandidates()
	}
	if v.Const != nil {
		return []CompletionContent{newValueCandidate(renderLiteral(v.Const), v.Deprecated)}
	}
	if len(v.Enum) > 0 {
		out := make([]CompletionContent, 0, len(v.Enum))
		for _, e := range v.Enum {
			out = append(out, newValueCandidate(renderLiteral(e), v.Deprecated))
		}
		return out
	}
	switch v.Kind {
	case schema.KindBoolean:
		return []CompletionContent{newValueCandidate("true", v.Deprecated), newValueCandidate("false", v.Deprecated)}
	case schema.KindInteger:
		return []CompletionContent{newValueCandidate("0", v.Deprecated)}
	case schema.KindFloat:
		return []CompletionContent{newValueCandidate("0.0", v.Deprecated)}
	case schema.KindString:
		return []CompletionContent{newValueCandidate(`""`, v.Deprecated)}
	case schema.KindLocalDate:
		return []CompletionContent{newValueCandidate(time.Now().Format("2006-01-02"), v.Deprecated)}
	case schema.KindLocalDateTime:
		return []CompletionContent{newValueCandidate(time.Now().Format("2006-01-02T15:04:05"), v.Deprecated)}
	case schema.KindLocalTime:
		return []CompletionContent{newValueCandidate(time.Now().Format("15:04:05"), v.Deprecated)}
	case schema.KindOffsetDateTime:
		return []CompletionContent{newValueCandidate(time.Now().Format(time.RFC3339), v.Deprecated)}
	case schema.KindArray:
		return []CompletionContent{newValueCandidate("[]", v.Deprecated)}
	default:
		return schemaFreeCandidates()
	}
}

// renderLiteral renders a decoded JSON scalar (the dynamic type behind an
// `enum`/`const` entry, always one of encoding/json's any-decode shapes)
// as TOML source text.
func renderLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// dedupeByLabel removes later duplicates, keeping first-seen order —
// §4.8's rule for oneOf/anyOf/allOf aggregation.
func dedupeByLabel(in []CompletionContent) []CompletionContent {
	seen := map[string]bool{}
	out := make([]CompletionContent, 0, len(in))
	for _, c := range in {
		if seen[c.Label] {
			continue
		}
		seen[c.Label] = true
		out = append(out, c)
	}
	return out
}

// sortCandidates orders candidates schema-order (as supplied) when order
// is non-empty, else lexicographically; `$key` placeholders always sort
// last (§4.8).
func sortCandidates(cands []CompletionContent, order []string) []CompletionContent {
	rank := map[string]int{}
	for i, k := range order {
		rank[k] = i
	}
	sort.SliceStable(cands, func(i, j int) bool {
		li, lj := cands[i].Label, cands[j].Label
		if li == "$key" {
			return false
		}
		if lj == "$key" {
			return true
		}
		ri, iok := rank[li]
		rj, jok := rank[lj]
		if iok && jok {
			return ri < rj
		}
		if iok != jok {
			return iok
		}
		return strings.Compare(li, lj) < 0
	})
	return cands
}

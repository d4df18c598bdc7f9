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
	"regexp"
	"strings"

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
)

// Context bundles the collaborators the walk needs beyond the document
// tree itself: the resolver (for oneOf/anyOf/allOf and $ref), the store
// (to fetch a sub-schema's document the first time it's routed into),
// the definitions map the current schema document was decoded with, and
// the source's sub-schema routing table.
type Context struct {
	Resolver *schema.Resolver
	Store    *schema.Store
	Defs     *schema.SchemaDefinitions
	Source   *schema.SourceSchema
}

// schemaFreeCandidates is §4.8 step 6's fixed type-hint list, emitted
// when no schema applies at all.
func schemaFreeCandidates() []CompletionContent {
	kinds := []string{"true", "false", `""`, "0", "0.0"}
	out := make([]CompletionContent, 0, len(kinds)+1)
	for _, k := range kinds {
		out = append(out, newValueCandidate(k, false))
	}
	out = append(out, CompletionContent{Kind: ContentKey, Label: "$key", Snippet: "$1"})
	return out
}

// magicTriggerCandidates is §4.8 step 4's fixed "type-hint magic trigger"
// pair offered in place of a property's own candidates when that property's
// document value is still Incomplete: `.` to continue a dotted key, `=` to
// assign a value (spec.md §8 scenario 3).
func magicTriggerCandidates() []CompletionContent {
	return []CompletionContent{
		{Kind: ContentKey, Label: ".", Snippet: "."},
		{Kind: ContentKey, Label: "=", Snippet: "="},
	}
}

// FindCompletionContents is §4.8's find_completion_contents, specialized
// to a table node (the overwhelmingly common case: TOML completion is
// almost always "what key/value goes here"). keysRemaining is the dotted
// path from this table down to the cursor; accessors is the path already
// walked from the document root.
func FindCompletionContents(
	ctx context.Context,
	cctx *Context,
	table *document.Table,
	keysRemaining []string,
	accessors []schema.SchemaAccessor,
	current *schema.CurrentSchema,
	hint Hint,
) []CompletionContent {
	// Step 3: sub-schema routing short-circuits the walk entirely.
	if cctx != nil && cctx.Source != nil && cctx.Store != nil {
		if uri, ok := cctx.Source.SubSchemaURIMap[joinAccessors(accessors)]; ok {
			if doc, err := cctx.Store.TryGetDocumentSchema(ctx, uri); err == nil && doc != nil {
				return FindCompletionContents(ctx, &Context{Resolver: cctx.Resolver, Store: cctx.Store, Defs: doc.Definitions, Source: cctx.Source},
					table, keysRemaining, accessors, &schema.CurrentSchema{Value: doc.ValueSchema, SchemaURI: doc.SchemaURI, Definitions: doc.Definitions}, hint)
			}
		}
	}

	if current == nil {
		return schemaFreeCandidates()
	}

	switch current.Value.Kind {
	case schema.KindOneOf, schema.KindAnyOf, schema.KindAllOf:
		return walkComposite(ctx, cctx, table, keysRemaining, accessors, current, hint)
	case schema.KindTable:
		return walkTable(ctx, cctx, table, keysRemaining, accessors, current, hint)
	default:
		// Every other Kind is a scalar (or array) leaf: there is no further
		// key to descend through, so keysRemaining must already be empty —
		// the cursor is at a value position (§4.8 step 4's EqualTrigger
		// case; spec.md §8 scenario 4). A non-empty keysRemaining here means
		// the document named a sub-key under a scalar schema, which has no
		// candidates.
		if len(keysRemaining) > 0 {
			return nil
		}
		return valueCandidatesFor(current.Value)
	}
}

func joinAccessors(accs []schema.SchemaAccessor) string {
	parts := make([]string, len(accs))
	for i, a := range accs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ".")
}

func walkComposite(
	ctx context.Context,
	cctx *Context,
	table *document.Table,
	keysRemaining []string,
	accessors []schema.SchemaAccessor,
	current *schema.CurrentSchema,
	hint Hint,
) []CompletionContent {
	alts, ok := cctx.Resolver.ResolveAndCollect(ctx, current.Definitions, current.Value.Composite)
	if !ok {
		// Cycle detected: §4.7/§7 says return silently, request still completes.
		return nil
	}
	var all []CompletionContent
	nonNullTotal, deprecatedCount := 0, 0
	for _, alt := range alts {
		if alt == nil || alt.Value == nil {
			continue
		}
		sub := FindCompletionContents(ctx, &Context{Resolver: cctx.Resolver, Store: cctx.Store, Defs: alt.Definitions, Source: cctx.Source},
			table, keysRemaining, accessors, alt, hint)
		all = append(all, sub...)
		if alt.Value.Kind != schema.KindNull {
			nonNullTotal++
			if alt.Value.Deprecated {
				deprecatedCount++
			}
		}
	}
	all = dedupeByLabel(all)
	if nonNullTotal > 0 && deprecatedCount == nonNullTotal {
		for i := range all {
			all[i].Deprecated = true
		}
	}
	return all
}

func walkTable(
	ctx context.Context,
	cctx *Context,
	table *document.Table,
	keysRemaining []string,
	accessors []schema.SchemaAccessor,
	current *schema.CurrentSchema,
	hint Hint,
) []CompletionContent {
	ts := current.Value.Table
	if ts == nil {
		return nil
	}

	if len(keysRemaining) > 0 {
		head := keysRemaining[0]
		rest := keysRemaining[1:]

		if ref, ok := ts.Property(head); ok {
			// §4.8 step 4's magic-trigger case: the document's own value for
			// this key is Incomplete (parsed with no `=` at all, e.g.
			// `serde.workspace` with the cursor right after `workspace`) and
			// nothing after it remains to descend into. Offer the type-hint
			// triggers for "continue the dotted path" / "assign a value"
			// instead of resolving into the property's schema (spec.md §8
			// scenario 3: `serde.workspace█` -> `., =`).
			if len(rest) == 0 && hint.Kind == HintNone {
				if dv, ok := table.KeyValues[head]; ok && dv.Kind == document.VIncomplete {
					return magicTriggerCandidates()
				}
			}
			cur, err := cctx.Resolver.ResolveItem(ctx, current.Definitions, ref)
			if err != nil || cur == nil {
				return nil
			}
			nextAccessors := append(append([]schema.SchemaAccessor{}, accessors...), schema.KeyAccessor(head))
			nextTable := table
			if v, ok := table.KeyValues[head]; ok && v.Kind == document.VTable {
				nextTable = v.Table
			}
			return FindCompletionContents(ctx, &Context{Resolver: cctx.Resolver, Store: cctx.Store, Defs: cur.Definitions, Source: cctx.Source},
				nextTable, rest, nextAccessors, cur, hint)
		}

		if len(keysRemaining) == 1 {
			var out []CompletionContent
			for _, name := range ts.PropertyOrder {
				if !strings.HasPrefix(name, head) || name == head {
					continue
				}
				if checkUsed(table, name) {
					continue
				}
				ref, _ := ts.Property(name)
				out = append(out, keyCandidateFor(ctx, cctx, current, name, ref, ts, hint))
			}
			for _, pp := range ts.PatternProperties {
				re, err := regexp.Compile(pp.Pattern)
				if err != nil {
					continue // §7: invalid regex is logged upstream and skipped
				}
				if re.MatchString(head) {
					out = append(out, keyCandidateFor(ctx, cctx, current, head, pp.Schema, ts, hint))
				}
			}
			return sortCandidates(dedupeByLabel(out), ts.PropertyOrder)
		}
		return nil
	}

	var out []CompletionContent
	for _, name := range ts.PropertyOrder {
		if checkUsed(table, name) {
			continue
		}
		ref, _ := ts.Property(name)
		if ref.Reference() != "" && isOnlineRef(ref.Reference()) {
			out = append(out, CompletionContent{Kind: ContentKey, Label: name, Detail: ref.Title, Documentation: ref.Description, Snippet: name})
			continue
		}
		out = append(out, keyCandidateFor(ctx, cctx, current, name, ref, ts, hint))
	}

	if cctx != nil && cctx.Source != nil {
		prefix := joinAccessors(accessors)
		for path := range cctx.Source.SubSchemaURIMap {
			parent := path
			if i := strings.LastIndex(path, "."); i >= 0 {
				parent = path[:i]
			}
			if parent == prefix {
				key := path[len(prefix):]
				key = strings.TrimPrefix(key, ".")
				if key != "" && !checkUsed(table, key) {
					out = append(out, CompletionContent{Kind: ContentKey, Label: key, Snippet: key})
				}
			}
		}
	}

	if ts.AdditionalProperties && ts.AdditionalPropertySchema == nil && len(ts.PatternProperties) == 0 {
		out = append(out, CompletionContent{Kind: ContentKey, Label: "$key", Snippet: "$1 = $2"})
	}

	return sortCandidates(dedupeByLabel(out), ts.PropertyOrder)
}

func keyCandidateFor(ctx context.Context, cctx *Context, current *schema.CurrentSchema, name string, ref *schema.Referable[schema.ValueSchema], ts *schema.TableSchema, hint Hint) CompletionContent {
	required := contains(ts.Required, name)
	cur, err := cctx.Resolver.ResolveItem(ctx, current.Definitions, ref)
	if err != nil || cur == nil {
		return CompletionContent{Kind: ContentKey, Label: name, Required: required, Snippet: name}
	}
	return newKeyCandidate(name, cur.Value, required, hint)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// checkUsed reports whether name already has a scalar value present in
// table, per §4.8's "used table value" check: a table-kind entry is never
// considered fully used since it may still accept more keys.
func checkUsed(table *document.Table, name string) bool {
	v, ok := table.KeyValues[name]
	if !ok {
		return false
	}
	return v.Kind != document.VTable
}

// isOnlineRef reports whether a $ref points at a network-fetched document
// (http/https), which §4.8 says to stub rather than eagerly resolve
// during key-listing.
func isOnlineRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

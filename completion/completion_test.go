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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
)

func labels(cands []CompletionContent) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Label
	}
	return out
}

func newTableContext() (*Context, *schema.SchemaDefinitions) {
	store := schema.NewStore("")
	defs := schema.NewSchemaDefinitions()
	return &Context{Resolver: schema.NewResolver(store), Store: store, Defs: defs}, defs
}

// TestFindCompletionContentsSchemaFree is P4/§4.8 step 6: an empty/unknown
// schema context still completes with the fixed type-hint list rather than
// nothing.
func TestFindCompletionContentsSchemaFree(t *testing.T) {
	cctx, _ := newTableContext()
	table := &document.Table{Kind: document.KindRoot, KeyValues: map[string]*document.Value{}}
	out := FindCompletionContents(context.Background(), cctx, table, nil, nil, nil, Hint{Kind: HintNone})
	qt.Assert(t, qt.DeepEquals(labels(out), []string{"true", "false", `""`, "0", "0.0", "$key"}))
}

// TestWalkTableOmitsUsedScalarKey is spec scenario 2: a key already present
// with a scalar value is not offered again, but a table-kind key stays
// offered since it may still accept more keys.
func TestWalkTableOmitsUsedScalarKey(t *testing.T) {
	cctx, defs := newTableContext()

	ts := &schema.TableSchema{Properties: map[string]*schema.Referable[schema.ValueSchema]{}, AdditionalProperties: false}
	ts.SetProperty("name", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindString}))
	ts.SetProperty("workspace", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindTable,
		Table: &schema.TableSchema{Properties: map[string]*schema.Referable[schema.ValueSchema]{}}}))
	current := &schema.CurrentSchema{Value: &schema.ValueSchema{Kind: schema.KindTable, Table: ts}, Definitions: defs}

	table := &document.Table{Kind: document.KindRoot, KeyValues: map[string]*document.Value{
		"name":      {Kind: document.VString},
		"workspace": {Kind: document.VTable, Table: &document.Table{KeyValues: map[string]*document.Value{}}},
	}}

	out := FindCompletionContents(context.Background(), cctx, table, nil, nil, current, Hint{Kind: HintNone})
	qt.Assert(t, qt.DeepEquals(labels(out), []string{"workspace"}))
}

// TestWalkTablePartialIdentifierPrefix is spec scenario 3: a dotted,
// partially typed key segment only offers properties sharing that prefix.
func TestWalkTablePartialIdentifierPrefix(t *testing.T) {
	cctx, defs := newTableContext()

	ts := &schema.TableSchema{Properties: map[string]*schema.Referable[schema.ValueSchema]{}}
	ts.SetProperty("workspace", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindString}))
	ts.SetProperty("workers", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindInteger}))
	ts.SetProperty("name", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindString}))
	current := &schema.CurrentSchema{Value: &schema.ValueSchema{Kind: schema.KindTable, Table: ts}, Definitions: defs}

	table := &document.Table{Kind: document.KindRoot, KeyValues: map[string]*document.Value{}}
	out := FindCompletionContents(context.Background(), cctx, table, []string{"work"}, nil, current, Hint{Kind: HintNone})
	qt.Assert(t, qt.DeepEquals(labels(out), []string{"workspace", "workers"}))
}

// TestNewKeyCandidateEqualTriggerSnippet is §4.8's snippet construction: a
// table-kind property opens braces, a scalar-kind property just opens a
// value placeholder.
func TestNewKeyCandidateEqualTriggerSnippet(t *testing.T) {
	hint := Hint{Kind: HintEqualTrigger}
	scalar := newKeyCandidate("count", &schema.ValueSchema{Kind: schema.KindInteger}, false, hint)
	qt.Assert(t, qt.Equals(scalar.Snippet, "count = $1"))

	table := newKeyCandidate("workspace", &schema.ValueSchema{Kind: schema.KindTable}, true, hint)
	qt.Assert(t, qt.Equals(table.Snippet, "workspace = { $1 }$0"))
	qt.Assert(t, qt.IsTrue(table.Required))
}

// TestWalkCompositeDeprecationPropagates is §4.8's oneOf/anyOf/allOf
// aggregation rule: when every non-null alternative is deprecated, the
// merged candidates inherit that.
func TestWalkCompositeDeprecationPropagates(t *testing.T) {
	cctx, defs := newTableContext()

	oldTS := &schema.TableSchema{Properties: map[string]*schema.Referable[schema.ValueSchema]{}}
	oldTS.SetProperty("legacy", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindString}))
	oldSchema := &schema.ValueSchema{Kind: schema.KindTable, Table: oldTS, Annotations: schema.Annotations{Deprecated: true}}

	newTS := &schema.TableSchema{Properties: map[string]*schema.Referable[schema.ValueSchema]{}}
	newTS.SetProperty("modern", schema.NewResolved[schema.ValueSchema]("test://root.json", &schema.ValueSchema{Kind: schema.KindString}))
	newSchema := &schema.ValueSchema{Kind: schema.KindTable, Table: newTS, Annotations: schema.Annotations{Deprecated: true}}

	composite := &schema.ValueSchema{Kind: schema.KindOneOf, Composite: []*schema.Referable[schema.ValueSchema]{
		schema.NewResolved[schema.ValueSchema]("test://root.json", oldSchema),
		schema.NewResolved[schema.ValueSchema]("test://root.json", newSchema),
	}}
	current := &schema.CurrentSchema{Value: composite, Definitions: defs}

	table := &document.Table{Kind: document.KindRoot, KeyValues: map[string]*document.Value{}}
	out := FindCompletionContents(context.Background(), cctx, table, nil, nil, current, Hint{Kind: HintNone})
	qt.Assert(t, qt.HasLen(out, 2))
	for _, c := range out {
		qt.Assert(t, qt.IsTrue(c.Deprecated))
	}
}
func TestConstraintsForTableSchema(t *testing.T) {
	minProps := 1
	ts := &schema.TableSchema{
		Properties:           map[string]*schema.Referable[schema.ValueSchema]{},
		Required:             []string{"name"},
		MinProperties:        &minProps,
		AdditionalProperties: true,
		PatternProperties:    []schema.PatternProperty{{Pattern: "^x-"}},
	}
	v := &schema.ValueSchema{Kind: schema.KindTable, Table: ts, Annotations: schema.Annotations{Enum: []any{"a", "b"}}}

	c := constraintsFor(v)
	qt.Assert(t, qt.DeepEquals(c.Required, []string{"name"}))
	qt.Assert(t, qt.Equals(*c.MinProperties, 1))
	qt.Assert(t, qt.IsTrue(c.AdditionalKeys))
	qt.Assert(t, qt.DeepEquals(c.PatternKeys, []string{"^x-"}))
	qt.Assert(t, qt.DeepEquals(c.Enum, []any{"a", "b"}))
}

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

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

// Constraints mirrors §4.8's HoverContent.Value.constraints payload.
type Constraints struct {
	Enum            []any
	Default         any
	Examples        []any
	Required        []string
	MinProperties   *int
	MaxProperties   *int
	KeyPatterns     []string
	AdditionalKeys  bool
	PatternKeys     []string
}

// HoverContent is §4.8's HoverContent::Value.
type HoverContent struct {
	Title       string
	Description string
	Accessors   []schema.SchemaAccessor
	ValueKind   schema.ValueKind
	Constraints Constraints
	SchemaURI   schema.SchemaUri
	Range       token.ByteSpan
}

// Hover reuses FindCompletionContents' traversal to locate the schema at
// offset, then renders a single HoverContent instead of a candidate list
// (§4.8: "Hover reuses the same walk").
func Hover(ctx context.Context, cctx *Context, red *syntax.RedNode, tree *document.Tree, offset int, root *schema.DocumentSchema) *HoverContent {
	if root == nil || root.ValueSchema == nil {
		return nil
	}
	keys := keyPathAtOffset(red, offset)
	tok := red.TokenAtOffset(offset)
	var span token.ByteSpan
	if tok != nil {
		span = tok.Span()
	}

	current := &schema.CurrentSchema{Value: root.ValueSchema, SchemaURI: root.SchemaURI, Definitions: root.Definitions}
	table := tree.Root
	var accessors []schema.SchemaAccessor
	for _, k := range keys {
		if current.Value.Kind != schema.KindTable || current.Value.Table == nil {
			return nil
		}
		ref, ok := current.Value.Table.Property(k)
		if !ok {
			return nil
		}
		cur, err := cctx.Resolver.ResolveItem(ctx, current.Definitions, ref)
		if err != nil || cur == nil {
			return nil
		}
		if v, ok := table.KeyValues[k]; ok && v.Kind == document.VTable {
			table = v.Table
		}
		accessors = append(accessors, schema.KeyAccessor(k))
		current = cur
	}

	return &HoverContent{
		Title:       current.Value.Title,
		Description: current.Value.Description,
		Accessors:   accessors,
		ValueKind:   current.Value.Kind,
		SchemaURI:   current.SchemaURI,
		Range:       span,
		Constraints: constraintsFor(current.Value),
	}
}

func constraintsFor(v *schema.ValueSchema) Constraints {
	c := Constraints{Enum: v.Enum, Default: v.Default, Examples: v.Examples}
	if v.Table != nil {
		c.Required = v.Table.Required
		c.MinProperties = v.Table.MinProperties
		c.MaxProperties = v.Table.MaxProperties
		c.AdditionalKeys = v.Table.AdditionalProperties
		for _, pp := range v.Table.PatternProperties {
			c.PatternKeys = append(c.PatternKeys, pp.Pattern)
		}
	}
	return c
}

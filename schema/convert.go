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

package schema

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// convertRoot turns the decoded wire schema into this module's lazy
// ValueSchema model, registering every named `$ref` target it discovers
// along the way into defs so resolveSchemaItem (schema/ref.go) can find
// them later without re-walking the document. This is the direct analogue
// of cue/encoding/jsonschema's decoder building a cue/ast tree from the
// same raw shape, except the target here is our own Referable graph
// instead of CUE syntax. ord carries this node's (and every descendant
// node's) source-order property list and x-tombi-*/x-taplo.* extensions,
// recovered from the raw JSON text alongside the typed decode (decode.go).
func convertRoot(uri SchemaUri, raw *jsonschema.Schema, ord *schemaOrder, defs *SchemaDefinitions) *ValueSchema {
	return convertSchema(uri, raw, ord, defs)
}

func convertSchema(uri SchemaUri, raw *jsonschema.Schema, ord *schemaOrder, defs *SchemaDefinitions) *ValueSchema {
	if raw == nil {
		return &ValueSchema{Kind: KindTable, Table: &TableSchema{Properties: map[string]*Referable[ValueSchema]{}, AdditionalProperties: true}}
	}

	vs := &ValueSchema{}
	vs.Title = raw.Title
	vs.Description = raw.Description
	vs.Deprecated = raw.Deprecated
	vs.Const = raw.Const
	vs.Default = raw.Default
	vs.Hidden = ord.hidden()
	for _, e := range raw.Enum {
		vs.Enum = append(vs.Enum, e)
	}

	switch {
	case len(raw.OneOf) > 0:
		vs.Kind = KindOneOf
		vs.Composite = convertList(uri, raw.OneOf, ord.oneOfOrder(), defs)
		return vs
	case len(raw.AnyOf) > 0:
		vs.Kind = KindAnyOf
		vs.Composite = convertList(uri, raw.AnyOf, ord.anyOfOrder(), defs)
		return vs
	case len(raw.AllOf) > 0:
		vs.Kind = KindAllOf
		vs.Composite = convertList(uri, raw.AllOf, ord.allOfOrder(), defs)
		return vs
	}

	switch primaryType(raw.Type) {
	case "object":
		vs.Kind = KindTable
		vs.Table = convertTable(uri, raw, ord, defs)
	case "array":
		vs.Kind = KindArray
		vs.Array = convertArray(uri, raw, ord, defs)
	case "string":
		vs.Kind = stringValueKind(raw.Format)
		vs.String = StringConstraints{Format: raw.Format, Pattern: raw.Pattern, MinLength: raw.MinLength, MaxLength: raw.MaxLength}
	case "integer":
		vs.Kind = KindInteger
		vs.Numeric = convertNumeric(raw)
	case "number":
		vs.Kind = KindFloat
		vs.Numeric = convertNumeric(raw)
	case "boolean":
		vs.Kind = KindBoolean
	case "null":
		vs.Kind = KindNull
	default:
		// No `type` keyword: properties/items presence still lets us infer
		// object/array, falling back to an untyped table (accepts anything).
		switch {
		case len(raw.Properties) > 0 || raw.AdditionalProperties != nil:
			vs.Kind = KindTable
			vs.Table = convertTable(uri, raw, ord, defs)
		case raw.Items != nil:
			vs.Kind = KindArray
			vs.Array = convertArray(uri, raw, ord, defs)
		default:
			vs.Kind = KindTable
			vs.Table = &TableSchema{Properties: map[string]*Referable[ValueSchema]{}, AdditionalProperties: true}
		}
	}
	return vs
}

// stringValueKind maps a string-typed schema's `format` keyword onto one
// of the date/time-kind value variants §3 singles out, falling back to the
// plain string kind for anything else.
func stringValueKind(format string) ValueKind {
	switch format {
	case "date-time":
		return KindOffsetDateTime
	case "date":
		return KindLocalDate
	case "time":
		return KindLocalTime
	default:
		return KindString
	}
}

func primaryType(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// convertList converts a oneOf/anyOf/allOf array. Its own order is already
// contractual (JSON array order survives the typed decode unchanged); orders
// pairs each element with the schemaOrder parsed from the same array slot
// so nested property order/extensions still reach convertReferable.
func convertList(uri SchemaUri, list []*jsonschema.Schema, orders []*schemaOrder, defs *SchemaDefinitions) []*Referable[ValueSchema] {
	out := make([]*Referable[ValueSchema], 0, len(list))
	for i, s := range list {
		out = append(out, convertReferable(uri, s, orderAt(orders, i), defs))
	}
	return out
}

func orderAt(orders []*schemaOrder, i int) *schemaOrder {
	if i < len(orders) {
		return orders[i]
	}
	return nil
}

// convertReferable converts one raw sub-schema into a Referable: a `$ref`
// stays unresolved (no recursive fetch at decode time, per §9's "lazy
// lookup vs. eager compilation"); anything else is eagerly converted since
// it carries no indirection.
func convertReferable(uri SchemaUri, raw *jsonschema.Schema, ord *schemaOrder, defs *SchemaDefinitions) *Referable[ValueSchema] {
	if raw == nil {
		return NewResolved(uri, &ValueSchema{Kind: KindTable, Table: &TableSchema{Properties: map[string]*Referable[ValueSchema]{}, AdditionalProperties: true}})
	}
	if raw.Ref != "" {
		r := NewRef[ValueSchema](raw.Ref)
		r.Title = raw.Title
		r.Description = raw.Description
		r.Deprecated = raw.Deprecated
		if existing, ok := defs.Get(raw.Ref); ok {
			return existing
		}
		defs.Set(raw.Ref, r)
		return r
	}
	return NewResolved(uri, convertSchema(uri, raw, ord, defs))
}

func convertTable(uri SchemaUri, raw *jsonschema.Schema, ord *schemaOrder, defs *SchemaDefinitions) *TableSchema {
	t := &TableSchema{
		Properties:    map[string]*Referable[ValueSchema]{},
		Required:      raw.Required,
		MinProperties: raw.MinProperties,
		MaxProperties: raw.MaxProperties,
		KeysOrder:     ord.tableKeysOrder(),
	}
	for _, name := range propertyOrderOf(raw.Properties, ord) {
		t.SetProperty(name, convertReferable(uri, raw.Properties[name], ord.propertyOf(name), defs))
	}
	for _, pattern := range patternPropertyOrderOf(raw.PatternProperties, ord) {
		prop := raw.PatternProperties[pattern]
		t.PatternProperties = append(t.PatternProperties, PatternProperty{Pattern: pattern, Schema: convertReferable(uri, prop, ord.patternPropertyOf(pattern), defs)})
	}
	switch ap := raw.AdditionalProperties.(type) {
	case nil:
		t.AdditionalProperties = true
	case bool:
		t.AdditionalProperties = ap
	case *jsonschema.Schema:
		t.AdditionalProperties = true
		t.AdditionalPropertySchema = convertReferable(uri, ap, ord.additionalPropertiesOrder(), defs)
	default:
		t.AdditionalProperties = true
	}
	return t
}

// propertyOrderOf returns raw.Properties' keys in the order they appeared
// in the schema's source JSON, recovered via ord (decode.go); when no order
// survived decoding it falls back to a lexicographic order so completion
// output is at least deterministic rather than randomized by Go's map
// iteration (§4.8's "schema-order for table keys" / spec.md §8 scenario 1).
func propertyOrderOf(props map[string]*jsonschema.Schema, ord *schemaOrder) []string {
	if ord != nil && len(ord.propertyOrder) > 0 {
		out := make([]string, 0, len(ord.propertyOrder))
		for _, k := range ord.propertyOrder {
			if _, ok := props[k]; ok {
				out = append(out, k)
			}
		}
		return out
	}
	return sortedKeys(props)
}

func patternPropertyOrderOf(props map[string]*jsonschema.Schema, ord *schemaOrder) []string {
	if ord != nil && len(ord.patternPropertyOrder) > 0 {
		out := make([]string, 0, len(ord.patternPropertyOrder))
		for _, k := range ord.patternPropertyOrder {
			if _, ok := props[k]; ok {
				out = append(out, k)
			}
		}
		return out
	}
	return sortedKeys(props)
}

func convertArray(uri SchemaUri, raw *jsonschema.Schema, ord *schemaOrder, defs *SchemaDefinitions) ArrayConstraints {
	return ArrayConstraints{
		Items:       convertReferable(uri, raw.Items, ord.itemsOrder(), defs),
		MinItems:    raw.MinItems,
		MaxItems:    raw.MaxItems,
		UniqueItems: raw.UniqueItems,
		ValuesOrder: ord.arrayValuesOrder(),
	}
}

func convertNumeric(raw *jsonschema.Schema) NumericConstraints {
	return NumericConstraints{
		Minimum:          numToString(raw.Minimum),
		Maximum:          numToString(raw.Maximum),
		ExclusiveMinimum: numToString(raw.ExclusiveMinimum),
		ExclusiveMaximum: numToString(raw.ExclusiveMaximum),
		MultipleOf:       numToString(raw.MultipleOf),
	}
}

// numToString renders a possibly-nil numeric constraint as decimal text so
// schema/numeric.go can parse it exactly with apd rather than through a
// lossy float round-trip.
func numToString(f *float64) *string {
	if f == nil {
		return nil
	}
	s := fmt.Sprintf("%v", *f)
	return &s
}

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

// Package format implements the F component: the formatter hook that
// consumes the document tree (and, when one is attached, the resolved
// schema) to emit ordered, consistently spaced TOML text. Grounded on
// cue/format's "re-render the AST, not the source" approach
// (cue/format/format.go), adapted to TOML's much simpler grammar: no
// comment-preserving re-indent pass is attempted here beyond what the
// key/array ordering directives need — out-of-scope surface per §1,
// carried only as far as §12's ordering-directive consumer requires.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/schema"
)

// Options is passed through rendering. Indent is not read by any renderer:
// output carries no indentation whatever its value, and DefaultOptions
// only fills it with two spaces. Keys are emitted in document order unless
// a schema ordering directive applies.
type Options struct {
	Indent string
}

func DefaultOptions() Options { return Options{Indent: "  "} }

// Format renders tree back to TOML text. When schemaRoot is non-nil, its
// x-tombi-table-keys-order/x-tombi-array-values-order directives (§12)
// reorder keys/array elements before emission.
func Format(tree *document.Tree, schemaRoot *schema.ValueSchema, opts Options) string {
	var b strings.Builder
	writeTableBody(&b, tree.Root, schemaRoot, "", opts)
	return b.String()
}

func writeTableBody(b *strings.Builder, t *document.Table, sv *schema.ValueSchema, prefix string, opts Options) {
	keys := orderedKeys(t, sv)
	for _, k := range keys {
		v := t.KeyValues[k]
		propSchema := propertySchema(sv, k)
		writeEntry(b, k, v, propSchema, prefix, opts)
	}
}

// orderedKeys applies x-tombi-table-keys-order: "ascending" sorts
// lexicographically, "schema" follows the schema's own property order
// (falling back to document order for keys the schema doesn't name),
// anything else (including no schema) preserves document/insertion order.
func orderedKeys(t *document.Table, sv *schema.ValueSchema) []string {
	keys := append([]string{}, t.Keys...)
	if sv == nil || sv.Table == nil {
		return keys
	}
	switch sv.Table.KeysOrder {
	case "ascending":
		sort.Strings(keys)
	case "schema":
		rank := map[string]int{}
		for i, name := range sv.Table.PropertyOrder {
			rank[name] = i
		}
		sort.SliceStable(keys, func(i, j int) bool {
			ri, iok := rank[keys[i]]
			rj, jok := rank[keys[j]]
			if iok && jok {
				return ri < rj
			}
			return iok
		})
	}
	return keys
}

func propertySchema(sv *schema.ValueSchema, key string) *schema.ValueSchema {
	if sv == nil || sv.Table == nil {
		return nil
	}
	ref, ok := sv.Table.Property(key)
	if !ok || !ref.IsResolved() {
		return nil
	}
	return ref.Value()
}

func writeEntry(b *strings.Builder, key string, v *document.Value, propSchema *schema.ValueSchema, prefix string, opts Options) {
	switch v.Kind {
	case document.VTable:
		path := joinKey(prefix, key)
		// An implicit parent (created only because a deeper dotted header
		// named it, e.g. "a" for "[a.b]") never got its own header in the
		// source and doesn't need one in the output either; only the
		// deepest explicitly declared table prints a "[...]" line.
		if v.Table.Kind != document.KindParentTable {
			fmt.Fprintf(b, "[%s]\n", path)
		}
		writeTableBody(b, v.Table, propSchema, path, opts)
	case document.VArray:
		writeArrayEntry(b, key, v, propSchema, prefix, opts)
	default:
		fmt.Fprintf(b, "%s = %s\n", key, renderScalar(v))
	}
}

func writeArrayEntry(b *strings.Builder, key string, v *document.Value, propSchema *schema.ValueSchema, prefix string, opts Options) {
	// An array of tables (every element is a table) renders as repeated
	// `[[path]]` headers; a scalar array renders inline.
	allTables := len(v.Array) > 0
	for _, e := range v.Array {
		if e.Kind != document.VTable {
			allTables = false
			break
		}
	}
	if allTables {
		path := joinKey(prefix, key)
		itemSchema := arrayItemSchema(propSchema)
		for _, e := range v.Array {
			fmt.Fprintf(b, "[[%s]]\n", path)
			writeTableBody(b, e.Table, itemSchema, path, opts)
		}
		return
	}

	elems := orderedArrayElements(v.Array, propSchema)
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = renderScalar(e)
	}
	fmt.Fprintf(b, "%s = [%s]\n", key, strings.Join(parts, ", "))
}

// orderedArrayElements applies x-tombi-array-values-order, "ascending"
// sorting by rendered text (TOML arrays are homogeneous enough in
// practice for this to be meaningful) and anything else preserving
// document order.
func orderedArrayElements(elems []*document.Value, propSchema *schema.ValueSchema) []*document.Value {
	out := append([]*document.Value{}, elems...)
	if propSchema == nil || propSchema.Array.ValuesOrder != "ascending" {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return renderScalar(out[i]) < renderScalar(out[j])
	})
	return out
}

func arrayItemSchema(propSchema *schema.ValueSchema) *schema.ValueSchema {
	if propSchema == nil || propSchema.Array.Items == nil || !propSchema.Array.Items.IsResolved() {
		return nil
	}
	return propSchema.Array.Items.Value()
}

func renderScalar(v *document.Value) string {
	if v.Kind == document.VArray {
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = renderScalar(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return v.AST.Text()
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

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

package config

import (
	"github.com/tombi-toml/tombi/document"
)

// lookupTable descends a chain of table keys from root, returning nil if
// any segment is absent or not a table.
func lookupTable(root *document.Table, keys ...string) *document.Table {
	cur := root
	for _, k := range keys {
		v, ok := cur.KeyValues[k]
		if !ok || v.Kind != document.VTable {
			return nil
		}
		cur = v.Table
	}
	return cur
}

func stringValue(t *document.Table, key string) (string, bool) {
	v, ok := t.KeyValues[key]
	if !ok || v.Kind != document.VString {
		return "", false
	}
	return unquote(v.AST.Text()), true
}

func boolValue(t *document.Table, key string) (bool, bool) {
	v, ok := t.KeyValues[key]
	if !ok || v.Kind != document.VBoolean {
		return false, false
	}
	return v.AST.Text() == "true", true
}

func stringArray(t *document.Table, key string) []string {
	v, ok := t.KeyValues[key]
	if !ok || v.Kind != document.VArray {
		return nil
	}
	var out []string
	for _, elem := range v.Array {
		if elem.Kind == document.VString {
			out = append(out, unquote(elem.AST.Text()))
		}
	}
	return out
}

func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// applyTable copies recognized keys (§6's option table) from a decoded
// root table into cfg, leaving defaults in place for anything absent.
func applyTable(cfg *Config, root *document.Table) {
	if v, ok := stringValue(root, "toml-version"); ok {
		cfg.TOMLVersion = v
	}

	if schema := lookupTable(root, "schema"); schema != nil {
		if v, ok := boolValue(schema, "enabled"); ok {
			cfg.SchemaEnabled = v
		}
		if v, ok := boolValue(schema, "strict"); ok {
			cfg.SchemaStrict = v
		}
		if v, ok := boolValue(schema, "offline"); ok {
			cfg.SchemaOffline = v
		}
		if cache := lookupTable(schema, "cache"); cache != nil {
			if v, ok := stringValue(cache, "ttl"); ok {
				cfg.SchemaCacheTTL = v
			}
		}
		if catalog := lookupTable(schema, "catalog"); catalog != nil {
			cfg.SchemaCatalogPaths = stringArray(catalog, "paths")
		}
	}

	if v, ok := root.KeyValues["schemas"]; ok && v.Kind == document.VArray {
		for _, elem := range v.Array {
			if elem.Kind != document.VTable {
				continue
			}
			opt := SchemaOption{}
			if p, ok := stringValue(elem.Table, "path"); ok {
				opt.Path = p
			}
			opt.Include = stringArray(elem.Table, "include")
			if r, ok := stringValue(elem.Table, "root"); ok {
				opt.Root = r
			}
			if tv, ok := stringValue(elem.Table, "toml-version"); ok {
				opt.TOMLVersion = tv
			}
			cfg.Schemas = append(cfg.Schemas, opt)
		}
	}
}

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
	"bytes"
	"encoding/json"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/token"
)

// rawExtensions captures the x-tombi-*/x-taplo.* extension keys §6 and §12
// name, which jsonschema.Schema itself has no field for. One rawExtensions
// applies per schema-object node, not just the document root, so it travels
// inside schemaOrder rather than being decoded once at the top.
type rawExtensions struct {
	TombiHidden         bool   `json:"x-taplo.hidden"`
	TombiTableKeysOrder string `json:"x-tombi-table-keys-order"`
	TombiArrayValsOrder string `json:"x-tombi-array-values-order"`
	TombiTOMLVersion    string `json:"x-tombi-toml-version"`
}

// schemaOrder mirrors the JSON-object shape of one schema node purely to
// recover the source's key order, which jsonschema.Schema's decoded
// map[string]*Schema fields throw away (Go map iteration is randomized).
// §4.8 says table-key completion candidates sort in "schema order when a
// schema is present"; that order can only come from the wire text itself,
// so this is decoded alongside (not instead of) the typed jsonschema.Schema,
// same spirit as cue/encoding/jsonschema/decode.go keeping the raw
// ast.Expr around next to its typed extraction for exactly this reason.
type schemaOrder struct {
	ext rawExtensions

	propertyOrder        []string
	properties           map[string]*schemaOrder
	patternPropertyOrder []string
	patternProperties    map[string]*schemaOrder
	additionalProperties *schemaOrder
	items                *schemaOrder
	oneOf, anyOf, allOf  []*schemaOrder
}

// orderedKeys decodes one JSON object's top-level keys, in source order,
// alongside their still-encoded values. Returns ok=false for anything that
// isn't a JSON object (a bare `true`/`false` schema, or malformed input).
func orderedKeys(data []byte) (keys []string, vals map[string]json.RawMessage, ok bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, false
	}
	delim, isDelim := tok.(json.Delim)
	if !isDelim || delim != '{' {
		return nil, nil, false
	}
	vals = map[string]json.RawMessage{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, false
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, false
		}
		keys = append(keys, key)
		vals[key] = raw
	}
	return keys, vals, true
}

// parseSchemaOrder recursively walks one schema node's raw JSON to capture
// the property/patternProperty key order and the per-node x-tombi-*/
// x-taplo.* extensions, so every nested schema — not just the document
// root — gets its own extension fields and its own property order.
func parseSchemaOrder(data json.RawMessage) *schemaOrder {
	if len(data) == 0 {
		return nil
	}
	_, vals, ok := orderedKeys(data)
	if !ok {
		return nil
	}
	so := &schemaOrder{}
	_ = json.Unmarshal(data, &so.ext)

	if raw, present := vals["properties"]; present {
		if pkeys, pvals, pok := orderedKeys(raw); pok {
			so.propertyOrder = pkeys
			so.properties = make(map[string]*schemaOrder, len(pkeys))
			for _, k := range pkeys {
				so.properties[k] = parseSchemaOrder(pvals[k])
			}
		}
	}
	if raw, present := vals["patternProperties"]; present {
		if pkeys, pvals, pok := orderedKeys(raw); pok {
			so.patternPropertyOrder = pkeys
			so.patternProperties = make(map[string]*schemaOrder, len(pkeys))
			for _, k := range pkeys {
				so.patternProperties[k] = parseSchemaOrder(pvals[k])
			}
		}
	}
	if raw, present := vals["additionalProperties"]; present {
		so.additionalProperties = parseSchemaOrder(raw)
	}
	if raw, present := vals["items"]; present {
		so.items = parseSchemaOrder(raw)
	}
	for _, kw := range [...]string{"oneOf", "anyOf", "allOf"} {
		raw, present := vals[kw]
		if !present {
			continue
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			continue
		}
		list := make([]*schemaOrder, len(elems))
		for i, e := range elems {
			list[i] = parseSchemaOrder(e)
		}
		switch kw {
		case "oneOf":
			so.oneOf = list
		case "anyOf":
			so.anyOf = list
		case "allOf":
			so.allOf = list
		}
	}
	return so
}

// The accessors below are all nil-receiver-safe: a schema node with no
// order information (malformed JSON, or a node synthesized in Go rather
// than decoded from text) behaves as if it carried no extensions and no
// nested order, falling back to convert.go's map-order/lexicographic path.

func (o *schemaOrder) hidden() bool {
	if o == nil {
		return false
	}
	return o.ext.TombiHidden
}

func (o *schemaOrder) tableKeysOrder() string {
	if o == nil {
		return ""
	}
	return o.ext.TombiTableKeysOrder
}

func (o *schemaOrder) arrayValuesOrder() string {
	if o == nil {
		return ""
	}
	return o.ext.TombiArrayValsOrder
}

func (o *schemaOrder) propertyOf(name string) *schemaOrder {
	if o == nil {
		return nil
	}
	return o.properties[name]
}

func (o *schemaOrder) patternPropertyOf(pattern string) *schemaOrder {
	if o == nil {
		return nil
	}
	return o.patternProperties[pattern]
}

func (o *schemaOrder) additionalPropertiesOrder() *schemaOrder {
	if o == nil {
		return nil
	}
	return o.additionalProperties
}

func (o *schemaOrder) itemsOrder() *schemaOrder {
	if o == nil {
		return nil
	}
	return o.items
}

func (o *schemaOrder) oneOfOrder() []*schemaOrder {
	if o == nil {
		return nil
	}
	return o.oneOf
}

func (o *schemaOrder) anyOfOrder() []*schemaOrder {
	if o == nil {
		return nil
	}
	return o.anyOf
}

func (o *schemaOrder) allOfOrder() []*schemaOrder {
	if o == nil {
		return nil
	}
	return o.allOf
}

// sortedKeys is the fallback used when no order information survived
// decoding (e.g. a schema fed in as an already-parsed map, or malformed
// JSON that still passed jsonschema.Schema's own decode) — deterministic,
// if not source-order, so completion output never varies run to run.
func sortedKeys(m map[string]*jsonschema.Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// decodeRaw unmarshals one schema document's bytes into the wire-shape
// jsonschema.Schema plus a parallel schemaOrder tree carrying per-node key
// order and x-tombi-*/x-taplo.* extensions, reporting a typed
// InvalidJSONFormat diagnostic (never a bare error) on malformed JSON —
// mirroring cue/encoding/jsonschema/decode.go's decodeSchema, which never
// panics on malformed input either.
func decodeRaw(uri SchemaUri, data []byte) (*jsonschema.Schema, *schemaOrder, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, nil, errors.Newf(errors.InvalidJSONFormat, token.Position{Filename: string(uri)},
			"invalid JSON in schema %s: %v", uri, err)
	}
	ord := parseSchemaOrder(data)
	return &s, ord, nil
}

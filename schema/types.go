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

// Package schema implements the S (schema store) and R (schema resolver)
// components: a JSON-Schema-subset model with lazy $ref resolution, a
// two-path (read-mostly / write-back) concurrent cache, and a catalog-aware
// source-to-schema router. Converted from the wire shape decoded by
// google/jsonschema-go (schema/decode.go), mirroring how cue/encoding/jsonschema
// converts a raw JSON Schema document into CUE values (cue/encoding/jsonschema
// /decode.go) — here the target is this module's own ValueSchema/TableSchema
// model instead of CUE ASTs.
package schema

import (
	"sync"
)

// SchemaUri identifies a schema document: a file://, http(s)://, or tombi:
// URI, or a bare filesystem path resolved relative to a config directory.
type SchemaUri string

// SchemaAccessor addresses one path segment inside a document or schema:
// either a table key or an array index.
type SchemaAccessor struct {
	Key      string
	Index    int
	IsIndex  bool
}

func KeyAccessor(k string) SchemaAccessor  { return SchemaAccessor{Key: k} }
func IndexAccessor(i int) SchemaAccessor   { return SchemaAccessor{Index: i, IsIndex: true} }

func (a SchemaAccessor) String() string {
	if a.IsIndex {
		return "[" + itoa(a.Index) + "]"
	}
	return a.Key
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}

// ValueKind is the closed set of schema value alternatives (§3).
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindLocalDate
	KindLocalDateTime
	KindLocalTime
	KindOffsetDateTime
	KindArray
	KindTable
	KindOneOf
	KindAnyOf
	KindAllOf
)

// Annotations are the documentation/metadata fields every ValueSchema
// variant carries, per §3.
type Annotations struct {
	Title       string
	Description string
	Deprecated  bool
	Const       any
	Enum        []any
	Default     any
	Examples    []any
}

// StringConstraints holds the `format`/length/pattern keywords for a
// string-kind schema.
type StringConstraints struct {
	Format    string
	MinLength *int
	MaxLength *int
	Pattern   string
}

// NumericConstraints holds the decimal-text constraint keywords for an
// integer/float-kind schema; evaluated exactly via schema/numeric.go rather
// than as floats.
type NumericConstraints struct {
	Minimum          *string
	Maximum          *string
	ExclusiveMinimum *string
	ExclusiveMaximum *string
	MultipleOf       *string
}

// ArrayConstraints holds the array-kind keywords.
type ArrayConstraints struct {
	Items       *Referable[ValueSchema]
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
	ValuesOrder string // x-tombi-array-values-order
}

// ValueSchema is the tagged schema-value variant of §3.
type ValueSchema struct {
	Kind ValueKind
	Annotations

	String  StringConstraints
	Numeric NumericConstraints
	Array   ArrayConstraints
	Table   *TableSchema

	// Composite holds the oneOf/anyOf/allOf alternative list when
	// Kind is KindOneOf/KindAnyOf/KindAllOf.
	Composite []*Referable[ValueSchema]

	// Hidden mirrors x-taplo.hidden: excluded from completion entirely.
	Hidden bool
}

// TableSchema is §3's TableSchema entity. Properties/PatternProperties are
// guarded by mu because references inside them are resolved lazily and
// mutated in place (Ref -> Resolved) by concurrent completion requests —
// the same reader-preferring discipline cue/encoding/jsonschema's decoder
// assumes of the CUE runtime's own value cache.
type TableSchema struct {
	mu sync.RWMutex

	PropertyOrder        []string
	Properties           map[string]*Referable[ValueSchema]
	PatternProperties    []PatternProperty
	AdditionalPropertySchema *Referable[ValueSchema]
	AdditionalProperties bool

	Required     []string
	MinProperties *int
	MaxProperties *int
	KeysOrder    string // x-tombi-table-keys-order
}

// PatternProperty pairs a compiled regex source (kept as the raw pattern;
// completion compiles it lazily and skips invalid patterns per §7) with its
// schema. Order matters: §9's open question on patternProperties tie-break
// is resolved by always trying patterns in this (insertion) order.
type PatternProperty struct {
	Pattern string
	Schema  *Referable[ValueSchema]
}

// Property looks up seg under a read lock, the hot path used by the
// completion walk (C) when most properties are already Resolved.
func (t *TableSchema) Property(seg string) (*Referable[ValueSchema], bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.Properties[seg]
	return r, ok
}

// SetProperty installs (or replaces) a property under a write lock, used
// when building the table and when resolving a Ref in place.
func (t *TableSchema) SetProperty(seg string, r *Referable[ValueSchema]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.Properties[seg]; !exists {
		t.PropertyOrder = append(t.PropertyOrder, seg)
	}
	t.Properties[seg] = r
}

// Referable is §3/§4.9's Ref -> Resolved lifecycle. Once Resolved, a
// Referable never regresses (P3); the zero value is an empty Ref.
type Referable[T any] struct {
	mu sync.RWMutex

	resolved   bool
	value      *T
	schemaURI  SchemaUri
	reference  string

	// Override annotations supplied by the referring node, which take
	// precedence over the referent's own (§4.7).
	Title       string
	Description string
	Deprecated  bool
}

// NewRef constructs an unresolved Referable pointing at reference.
func NewRef[T any](reference string) *Referable[T] {
	return &Referable[T]{reference: reference}
}

// NewResolved constructs an already-Resolved Referable.
func NewResolved[T any](uri SchemaUri, v *T) *Referable[T] {
	return &Referable[T]{resolved: true, value: v, schemaURI: uri}
}

// Snapshot returns a shallow copy safe to resolve without holding any lock
// across the resolution (§4.7 step 1/§9's async lock discipline).
func (r *Referable[T]) Snapshot() Referable[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Referable[T]{resolved: r.resolved, value: r.value, schemaURI: r.schemaURI, reference: r.reference,
		Title: r.Title, Description: r.Description, Deprecated: r.Deprecated}
}

// IsResolved reports whether this Referable has already transitioned.
func (r *Referable[T]) IsResolved() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolved
}

// Reference returns the raw `$ref` string of an unresolved Referable.
func (r *Referable[T]) Reference() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reference
}

// Resolve writes back a concrete value, transitioning Ref -> Resolved. The
// write is a no-op (idempotent) if another writer already resolved it —
// P3's "no regression" guarantee.
func (r *Referable[T]) Resolve(uri SchemaUri, v *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolved {
		return
	}
	r.resolved = true
	r.value = v
	r.schemaURI = uri
}

// Value returns the resolved value, or nil if still a Ref.
func (r *Referable[T]) Value() *T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// SchemaURI returns the resolved schema URI, or "" if still a Ref.
func (r *Referable[T]) SchemaURI() SchemaUri {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemaURI
}

// SchemaDefinitions maps a `$ref` string to its Referable, guarded for
// concurrent lazy resolution. Each fetched schema document gets its own
// map (Store.fetchDocumentSchema).
type SchemaDefinitions struct {
	mu   sync.RWMutex
	defs map[string]*Referable[ValueSchema]
}

func NewSchemaDefinitions() *SchemaDefinitions {
	return &SchemaDefinitions{defs: map[string]*Referable[ValueSchema]{}}
}

func (d *SchemaDefinitions) Get(ref string) (*Referable[ValueSchema], bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.defs[ref]
	return r, ok
}

func (d *SchemaDefinitions) Set(ref string, r *Referable[ValueSchema]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.defs[ref] = r
}

// DocumentSchema is §3's DocumentSchema: one fetched schema document.
type DocumentSchema struct {
	SchemaURI   SchemaUri
	ValueSchema *ValueSchema
	Definitions *SchemaDefinitions
}

// SourceSchema is §3's SourceSchema: the per-source mapping of root schema
// plus any attached sub-schemas.
type SourceSchema struct {
	RootSchema      *DocumentSchema
	SubSchemaURIMap map[string]SchemaUri // key: dotted accessor path joined by '.'
}

// CurrentSchema is the glossary's "triple that provides everything needed
// to navigate into a sub-schema".
type CurrentSchema struct {
	Value       *ValueSchema
	SchemaURI   SchemaUri
	Definitions *SchemaDefinitions
}

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
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/token"
)

// Resolver is the R component. It owns the per-request cycle guard
// (§4.7/§5's SchemaVisits) so concurrent oneOf/anyOf/allOf walks within
// one completion/hover request never recurse into themselves.
type Resolver struct {
	store *Store

	visitMu sync.Mutex
	visits  map[*[]*Referable[ValueSchema]]bool
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store, visits: map[*[]*Referable[ValueSchema]]bool{}}
}

// ResolveItem implements §4.7's resolve_schema_item: clone-under-read-lock,
// resolve-on-clone, write-back-under-write-lock, so no schema lock is ever
// held across the fetch (§9's async lock discipline).
func (r *Resolver) ResolveItem(ctx context.Context, defs *SchemaDefinitions, ref *Referable[ValueSchema]) (*CurrentSchema, error) {
	snap := ref.Snapshot()
	if snap.resolved {
		return &CurrentSchema{Value: snap.value, SchemaURI: snap.schemaURI, Definitions: defs}, nil
	}

	resolved, uri, newDefs, err := r.resolveReference(ctx, defs, snap.reference)
	if err != nil {
		return nil, err
	}
	if snap.Title != "" {
		resolved.Title = snap.Title
	}
	if snap.Description != "" {
		resolved.Description = snap.Description
	}
	if snap.Deprecated {
		resolved.Deprecated = true
	}

	ref.Resolve(uri, resolved)
	if newDefs != nil {
		defs = newDefs
	}
	return &CurrentSchema{Value: resolved, SchemaURI: uri, Definitions: defs}, nil
}

// ResolveAndCollect implements §4.7's resolve_and_collect_schemas for a
// oneOf/anyOf/allOf alternative list: cycle-guarded, with a read-mostly
// fast path when every alternative is already Resolved.
func (r *Resolver) ResolveAndCollect(ctx context.Context, defs *SchemaDefinitions, list []*Referable[ValueSchema]) ([]*CurrentSchema, bool) {
	key := &list
	r.visitMu.Lock()
	if r.visits[key] {
		r.visitMu.Unlock()
		return nil, false
	}
	r.visits[key] = true
	r.visitMu.Unlock()
	defer func() {
		r.visitMu.Lock()
		delete(r.visits, key)
		r.visitMu.Unlock()
	}()

	allResolved := true
	for _, ref := range list {
		if !ref.IsResolved() {
			allResolved = false
			break
		}
	}
	out := make([]*CurrentSchema, 0, len(list))
	if allResolved {
		for _, ref := range list {
			v := ref.Value()
			out = append(out, &CurrentSchema{Value: v, SchemaURI: ref.SchemaURI(), Definitions: defs})
		}
		return out, true
	}

	for _, ref := range list {
		cur, err := r.ResolveItem(ctx, defs, ref)
		if err != nil || cur == nil {
			continue
		}
		out = append(out, cur)
	}
	return out, true
}

// resolveReference dispatches a raw `$ref` string to a JSON Pointer
// (`#/...`), an absolute URI (delegated to the store), or reports
// UnsupportedReference — §4.7's three reference forms.
func (r *Resolver) resolveReference(ctx context.Context, defs *SchemaDefinitions, ref string) (*ValueSchema, SchemaUri, *SchemaDefinitions, error) {
	if ref == "" {
		return nil, "", nil, errors.Newf(errors.InvalidReference, token.Position{}, "empty $ref")
	}
	if strings.HasPrefix(ref, "#/") || ref == "#" {
		if existing, ok := defs.Get(ref); ok && existing.IsResolved() {
			return existing.Value(), existing.SchemaURI(), nil, nil
		}
		return nil, "", nil, errors.Newf(errors.InvalidReference, token.Position{}, "unresolved definitions pointer %q", ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, "", nil, errors.Newf(errors.InvalidReference, token.Position{}, "malformed $ref %q: %v", ref, err)
	}
	if u.Scheme == "" && u.Host == "" {
		return nil, "", nil, errors.Newf(errors.UnsupportedReference, token.Position{}, "unsupported $ref form %q", ref)
	}

	base := SchemaUri(strings.TrimSuffix(ref, "#"+u.Fragment))
	doc, err := r.store.TryGetDocumentSchema(ctx, base)
	if err != nil {
		return nil, "", nil, err
	}
	if doc == nil || doc.ValueSchema == nil {
		return nil, "", nil, errors.Newf(errors.SchemaFetchFailed, token.Position{}, "could not fetch referenced schema %q", base)
	}
	target := doc.ValueSchema
	if u.Fragment != "" && u.Fragment != "/" {
		target, err = lookupPointer(doc.ValueSchema, u.Fragment)
		if err != nil {
			return nil, "", nil, err
		}
	}
	return target, doc.SchemaURI, doc.Definitions, nil
}

// lookupPointer walks an RFC-6901 JSON Pointer into a root ValueSchema.
// Only `/properties/<name>` segment pairs are followed; any other segment,
// `/definitions/<name>` and `/$defs/<name>` included, reports
// InvalidReference. This is the fallback path §4.7 calls out for pointers
// that don't land in the shared `definitions` map.
func lookupPointer(root *ValueSchema, fragment string) (*ValueSchema, error) {
	cur := root
	segs := strings.Split(strings.TrimPrefix(fragment, "/"), "/")
	for i := 0; i < len(segs); i++ {
		if segs[i] == "" {
			continue
		}
		if unescapePointerToken(segs[i]) != "properties" || i+1 >= len(segs) {
			return nil, errors.Newf(errors.InvalidReference, token.Position{}, "unsupported pointer segment %q", segs[i])
		}
		i++
		seg := unescapePointerToken(segs[i])
		if cur.Kind != KindTable || cur.Table == nil {
			return nil, errors.Newf(errors.InvalidReference, token.Position{}, "pointer segment %q has no table to index into", seg)
		}
		ref, ok := cur.Table.Property(seg)
		if !ok {
			return nil, errors.Newf(errors.InvalidReference, token.Position{}, "pointer segment %q not found", seg)
		}
		if !ref.IsResolved() {
			return nil, errors.Newf(errors.InvalidReference, token.Position{}, "pointer segment %q is an unresolved $ref", seg)
		}
		cur = ref.Value()
	}
	return cur, nil
}

func unescapePointerToken(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// ParseArrayIndex is used by completion when walking into an array
// (document-tree array elements are indexed, not named).
func ParseArrayIndex(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	if len(seg) > 1 && seg[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

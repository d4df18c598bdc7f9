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
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/internal/obslog"
	"github.com/tombi-toml/tombi/token"
)

var storeLog = obslog.For("schema.store")

// RegisteredSchema is one `schemas[]` entry from config or a catalog
// (§6's option table), the unit resolve_source_schema matches against.
type RegisteredSchema struct {
	URI        SchemaUri
	Include    []string // glob patterns
	Root       []SchemaAccessor // empty means "attaches at document root"
	TOMLVersion string
}

// entry is the cached outcome of one fetch_document_schema call: either a
// resolved document or the error that prevented it, so repeated lookups
// of the same URI are O(1) either way (§4.6).
type entry struct {
	doc *DocumentSchema
	err error
}

// Store is the S component: §4.6's SchemaStore. It is explicitly passed
// rather than a process-wide singleton (§9's "Global state" design note),
// so tests can construct an isolated Store per case.
type Store struct {
	mu      sync.RWMutex
	schemas []RegisteredSchema

	docMu sync.RWMutex
	docs  map[SchemaUri]entry

	group singleflight.Group

	client  *http.Client
	cache   *BlobCache
	tombi   map[string][]byte // embedded tombi: scheme resources
	offline bool
	cacheTTL time.Duration

	generation uuid.UUID // bumped on Reload to invalidate long-lived readers
}

// NewStore constructs an empty Store. cacheDir may be empty to disable the
// on-disk HTTP blob cache.
func NewStore(cacheDir string) *Store {
	return &Store{
		docs:       map[SchemaUri]entry{},
		client:     &http.Client{Timeout: 15 * time.Second},
		cache:      NewBlobCache(cacheDir),
		tombi:      map[string][]byte{},
		generation: uuid.New(),
	}
}

// SetOffline toggles schema.offline (§6): when true, fetch_schema_value
// never performs an HTTP GET and serves stale cache (or nothing) instead.
func (s *Store) SetOffline(offline bool) { s.offline = offline }

// SetCacheTTL sets schema.cache.ttl (§6/§12).
func (s *Store) SetCacheTTL(ttl time.Duration) { s.cacheTTL = ttl }

// RegisterEmbedded installs a `tombi:` scheme resource, e.g. the bundled
// tombi.toml self-schema.
func (s *Store) RegisterEmbedded(name string, data []byte) {
	s.tombi[name] = data
}

// Reload clears every cached document and bumps the generation tag,
// implementing §9's "a configuration reload is an explicit operation"
// design note.
func (s *Store) Reload() {
	s.mu.Lock()
	s.schemas = nil
	s.mu.Unlock()
	s.docMu.Lock()
	s.docs = map[SchemaUri]entry{}
	s.docMu.Unlock()
	s.generation = uuid.New()
	storeLog.Info("reloaded", "generation", s.generation)
}

// Register appends one Schema entry to the registry (§4.6 load_config).
// The registry only grows within one config lifetime.
func (s *Store) Register(r RegisteredSchema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas = append(s.schemas, r)
}

// RegisterCatalogEntry registers one catalog-sourced schema with no root
// path (catalogs only ever attach at document root, §4.6).
func (s *Store) RegisterCatalogEntry(uri SchemaUri, fileMatch []string) {
	s.Register(RegisteredSchema{URI: uri, Include: fileMatch})
}

// ResolveSourceSchema implements §4.6's resolve_source_schema: glob-match
// sourcePath against every registered schema's Include patterns,
// partitioning by root-attachment. fileSchemaOverride is the `#:schema`
// directive value (document/directives.go's DirectiveSchema), which
// short-circuits the walk and takes precedence over every catalog/config
// match when non-empty.
func (s *Store) ResolveSourceSchema(sourcePath string, fileSchemaOverride SchemaUri) *SourceSchema {
	if fileSchemaOverride != "" {
		return &SourceSchema{RootSchema: &DocumentSchema{SchemaURI: fileSchemaOverride}}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ss := &SourceSchema{SubSchemaURIMap: map[string]SchemaUri{}}
	for _, reg := range s.schemas {
		if !matchesAny(reg.Include, sourcePath) {
			continue
		}
		if len(reg.Root) == 0 {
			ss.RootSchema = &DocumentSchema{SchemaURI: reg.URI}
			continue
		}
		ss.SubSchemaURIMap[joinAccessors(reg.Root)] = reg.URI
	}
	if ss.RootSchema == nil && len(ss.SubSchemaURIMap) == 0 {
		return nil
	}
	return ss
}

func joinAccessors(accs []SchemaAccessor) string {
	parts := make([]string, len(accs))
	for i, a := range accs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ".")
}

func matchesAny(patterns []string, path string) bool {
	base := filepath.Base(path)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// TryGetDocumentSchema implements §4.6's try_get_document_schema: cache
// lookup, then fetch-and-convert on miss, with singleflight de-duplication
// so N concurrent completion requests for the same unresolved schema share
// one fetch (§11's wiring of golang.org/x/sync/singleflight).
func (s *Store) TryGetDocumentSchema(ctx context.Context, uri SchemaUri) (*DocumentSchema, error) {
	s.docMu.RLock()
	if e, ok := s.docs[uri]; ok {
		s.docMu.RUnlock()
		storeLog.Debug("cache hit", "uri", uri)
		return e.doc, e.err
	}
	s.docMu.RUnlock()

	v, err, shared := s.group.Do(string(uri), func() (any, error) {
		storeLog.Debug("fetching", "uri", uri)
		doc, ferr := s.fetchDocumentSchema(ctx, uri)
		if ferr != nil {
			storeLog.Warn("fetch failed", "uri", uri, "err", ferr)
		}
		s.docMu.Lock()
		s.docs[uri] = entry{doc: doc, err: ferr}
		s.docMu.Unlock()
		return doc, ferr
	})
	if shared {
		storeLog.Debug("joined in-flight fetch", "uri", uri)
	}
	if v == nil {
		return nil, err
	}
	return v.(*DocumentSchema), err
}

func (s *Store) fetchDocumentSchema(ctx context.Context, uri SchemaUri) (*DocumentSchema, error) {
	data, err := s.fetchBytes(ctx, uri)
	if err != nil {
		if s.offline {
			// Offline failures are silent per §4.6/§7: caller sees "no schema".
			return nil, nil
		}
		return nil, err
	}
	raw, ord, err := decodeRaw(uri, data)
	if err != nil {
		return nil, err
	}
	defs := NewSchemaDefinitions()
	vs := convertRoot(uri, raw, ord, defs)
	return &DocumentSchema{SchemaURI: uri, ValueSchema: vs, Definitions: defs}, nil
}

// fetchBytes implements §4.6's fetch_schema_value for the file://,
// http(s)://, and tombi: schemes, consulting the blob cache for the
// network case (§12's CachedBlob/ETag).
func (s *Store) fetchBytes(ctx context.Context, uri SchemaUri) ([]byte, error) {
	raw := string(uri)
	if data, ok := s.tombi[raw]; ok {
		return data, nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		path := raw
		if err == nil && u.Scheme == "file" {
			path = u.Path
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, errors.Newf(errors.SchemaFileNotFound, token.Position{Filename: path}, "schema file not found: %v", rerr)
		}
		return data, nil
	}
	if u.Scheme == "tombi" {
		if data, ok := s.tombi[u.Opaque]; ok {
			return data, nil
		}
		return nil, errors.Newf(errors.SchemaFileNotFound, token.Position{Filename: raw}, "no embedded resource %q", u.Opaque)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: raw}, "unsupported schema URI scheme %q", u.Scheme)
	}

	if cached, ok := s.cache.Load(uri); ok && cached.Fresh(s.cacheTTL) {
		return cached.Body, nil
	}
	if s.offline {
		if cached, ok := s.cache.Load(uri); ok {
			return cached.Body, nil
		}
		return nil, errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: raw}, "offline and no cached copy of %s", raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: raw}, "building request: %v", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: raw}, "fetching %s: %v", raw, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: raw}, "fetching %s: status %s", raw, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: raw}, "reading %s: %v", raw, err)
	}
	s.cache.Store(uri, CachedBlob{Body: body, FetchedAt: time.Now(), ETag: resp.Header.Get("ETag")})
	return body, nil
}

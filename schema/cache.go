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
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// CachedBlob is the file-backed HTTP blob cache entry (§12): a simple
// fetched-at timestamp plus ETag sidecar so repeated lookups of the same
// schema.cache.ttl window don't refetch over the network.
type CachedBlob struct {
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetchedAt"`
	ETag      string    `json:"etag,omitempty"`
}

// Fresh reports whether the blob is still within ttl of being fetched.
// A zero ttl means "never expires" (schema.offline semantics, §6).
func (c *CachedBlob) Fresh(ttl time.Duration) bool {
	if c == nil {
		return false
	}
	if ttl <= 0 {
		return true
	}
	return time.Since(c.FetchedAt) < ttl
}

// BlobCache is a simple directory-backed cache keyed by schema URI,
// patterned on the Go module cache's one-file-per-key layout but
// trimmed to this module's narrower need: one blob plus ETag per URI.
type BlobCache struct {
	dir string
}

func NewBlobCache(dir string) *BlobCache {
	return &BlobCache{dir: dir}
}

func (c *BlobCache) pathFor(uri SchemaUri) string {
	return filepath.Join(c.dir, cacheFileName(uri)+".json")
}

func cacheFileName(uri SchemaUri) string {
	var b []byte
	for _, r := range string(uri) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b = append(b, byte(r))
		default:
			b = append(b, '_')
		}
	}
	if len(b) == 0 {
		return "schema"
	}
	if len(b) > 120 {
		b = b[:120]
	}
	return string(b)
}

// Load reads a cached blob, returning (nil, false) on any miss or
// corruption — a cache-read failure is never a hard error, it just means
// "go fetch".
func (c *BlobCache) Load(uri SchemaUri) (*CachedBlob, bool) {
	if c == nil || c.dir == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.pathFor(uri))
	if err != nil {
		return nil, false
	}
	var blob CachedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, false
	}
	return &blob, true
}

// Store writes through a freshly fetched blob. Best-effort: a write
// failure (e.g. read-only cache dir) doesn't fail the caller's fetch.
func (c *BlobCache) Store(uri SchemaUri, blob CachedBlob) {
	if c == nil || c.dir == "" {
		return
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.pathFor(uri), data, 0o644)
}

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
	"encoding/json"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/tombi-toml/tombi/errors"
	"github.com/tombi-toml/tombi/token"
)

// catalogManifest is the JSON-Schema-Store-shaped catalog document: a flat
// list of schema entries, each naming the file-match globs it applies to.
// A catalog may be supplied as JSON or YAML; both decode into this one
// struct, feeding the same internal value representation regardless of
// source syntax.
type catalogManifest struct {
	Schemas []catalogEntry `json:"schemas" yaml:"schemas"`
}

type catalogEntry struct {
	URL       string   `json:"url" yaml:"url"`
	FileMatch []string `json:"fileMatch" yaml:"fileMatch"`
}

// decodeCatalog parses a catalog document as YAML when its URI ends in
// .yaml/.yml and as JSON otherwise, and keeps only entries whose
// fileMatch plausibly applies to a TOML file (§4.6's "*.toml check", an
// §9 Open Question resolved in DESIGN.md).
func decodeCatalog(uri SchemaUri, data []byte) ([]catalogEntry, error) {
	var m catalogManifest
	var err error
	if strings.HasSuffix(string(uri), ".yaml") || strings.HasSuffix(string(uri), ".yml") {
		err = yaml.Unmarshal(data, &m)
	} else {
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, errors.Newf(errors.InvalidJSONFormat, token.Position{Filename: string(uri)},
			"invalid catalog %s: %v", uri, err)
	}
	var out []catalogEntry
	for _, e := range m.Schemas {
		if matchesTOML(e.FileMatch) {
			out = append(out, e)
		}
	}
	return out, nil
}

// matchesTOML decides whether a catalog entry's fileMatch patterns cover
// TOML files. Resolved per DESIGN.md's Open Question note: a pattern
// counts when it ends in ".toml" (a plain suffix check, no glob
// evaluation), so glob shapes such as `**/*.toml`, `Cargo.toml` and
// `*.toml` all register.
func matchesTOML(patterns []string) bool {
	for _, p := range patterns {
		if strings.HasSuffix(p, ".toml") {
			return true
		}
	}
	return false
}

// LoadCatalogs fetches and decodes every catalog URI concurrently,
// bounded by ctx, registering every matching entry as a Schema in the
// store. A single catalog's failure doesn't fail the others (§4.6's
// "errors... do not poison the store"); it is returned in the List for the
// caller to surface.
func (s *Store) LoadCatalogs(ctx context.Context, uris []SchemaUri) errors.List {
	var mu sync.Mutex
	var errs errors.List
	add := func(e error) {
		mu.Lock()
		errs.Add(e)
		mu.Unlock()
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, uri := range uris {
		uri := uri
		g.Go(func() error {
			data, err := s.fetchBytes(gctx, uri)
			if err != nil {
				add(errors.Newf(errors.SchemaFetchFailed, token.Position{Filename: string(uri)}, "fetching catalog %s: %v", uri, err))
				return nil
			}
			entries, err := decodeCatalog(uri, data)
			if err != nil {
				add(err)
				return nil
			}
			for _, e := range entries {
				s.RegisterCatalogEntry(SchemaUri(e.URL), e.FileMatch)
			}
			return nil
		})
	}
	_ = g.Wait()
	errs.Sort()
	return errs
}

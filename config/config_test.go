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
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	qt.Assert(t, qt.Equals(cfg.TOMLVersion, "v1.0.0"))
	qt.Assert(t, qt.IsTrue(cfg.SchemaEnabled))
	qt.Assert(t, qt.IsTrue(cfg.SchemaStrict))
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	qt.Assert(t, qt.IsNil(os.MkdirAll(nested, 0o755)))

	want := filepath.Join(root, "tombi.toml")
	qt.Assert(t, qt.IsNil(os.WriteFile(want, []byte(""), 0o644)))

	got, ok := Find(nested)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, want))
}

func TestFindReportsMissing(t *testing.T) {
	_, ok := Find(t.TempDir())
	qt.Assert(t, qt.IsFalse(ok))
}

func TestLoadTombiToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tombi.toml")
	src := `toml-version = "v1.1.0-preview"

[schema]
enabled = true
strict = false
offline = true

[schema.cache]
ttl = "1h"

[schema.catalog]
paths = ["https://example.com/catalog.json"]

[[schemas]]
path = "schemas/app.json"
include = ["*.toml"]
root = "tool.myapp"
`
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(src), 0o644)))

	cfg, err := Load(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(cfg.TOMLVersion, "v1.1.0-preview"))
	qt.Assert(t, qt.IsFalse(cfg.SchemaStrict))
	qt.Assert(t, qt.IsTrue(cfg.SchemaOffline))
	qt.Assert(t, qt.Equals(cfg.SchemaCacheTTL, "1h"))
	qt.Assert(t, qt.DeepEquals(cfg.SchemaCatalogPaths, []string{"https://example.com/catalog.json"}))
	qt.Assert(t, qt.HasLen(cfg.Schemas, 1))
	qt.Assert(t, qt.Equals(cfg.Schemas[0].Path, "schemas/app.json"))
	qt.Assert(t, qt.Equals(cfg.Schemas[0].Root, "tool.myapp"))
	qt.Assert(t, qt.Equals(cfg.Dir, dir))
}

func TestLoadPyprojectNarrowsToToolTombi(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	src := `[project]
name = "demo"

[tool.tombi]
toml-version = "v1.0.0"

[tool.tombi.schema]
enabled = false
`
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(src), 0o644)))

	cfg, err := Load(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(cfg.SchemaEnabled))
}

func TestLoadPyprojectWithoutToolTombiReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pyproject.toml")
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte("[project]\nname = \"demo\"\n"), 0o644)))

	cfg, err := Load(path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(cfg.SchemaEnabled))
}

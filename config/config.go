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

// Package config loads tombi.toml (or the [tool.tombi] table of a
// pyproject.toml-shaped document) into the option set §6 names. It decodes
// with this module's own parser/document packages rather than a generic
// unmarshaler — eating its own dog food the way cue/load reads its own
// cue.mod/module.cue with the cue/parser it ships, grounded on
// cue/internal/cueconfig/config.go's file-discovery conventions. Find only
// walks upward from a start directory; no environment variable and no
// user config directory is consulted.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
)

// SchemaOption is one `schemas[]` entry (§6).
type SchemaOption struct {
	Path        string
	Include     []string
	Root        string
	TOMLVersion string
}

// Config is the decoded option set relevant to the core (§6's table).
type Config struct {
	TOMLVersion string

	SchemaEnabled     bool
	SchemaCatalogPaths []string
	SchemaStrict      bool
	SchemaOffline     bool
	SchemaCacheTTL    string

	Schemas []SchemaOption

	// Dir is the directory the config file was loaded from, used to
	// resolve relative schema/include paths.
	Dir string
}

// Default returns the option set's documented defaults.
func Default() Config {
	return Config{
		TOMLVersion:   "v1.0.0",
		SchemaEnabled: true,
		SchemaStrict:  true,
	}
}

// FileNames are the recognized config file names, checked in order,
// matching how cue/load looks for cue.mod/module.cue before falling back.
var FileNames = []string{"tombi.toml", "pyproject.toml"}

// Find locates a config file starting at dir and walking up to the
// filesystem root, mirroring CUE's module-root discovery
// (cue/load/search.go walks upward looking for cue.mod).
func Find(dir string) (string, bool) {
	for {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads and decodes a config file at path. A pyproject.toml is
// decoded the same way, then narrowed to the `[tool.tombi]` sub-table.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	cfg.Dir = filepath.Dir(path)

	file := token.NewFile(path, len(src))
	recordLines(file, src)

	parsed := parser.Parse(file, src, lexer.V1_0_0)
	green := syntax.Build(src, parsed)
	red := syntax.NewRoot(green)
	astRoot, ok := ast.CastRoot(red)
	if !ok {
		return Config{}, fmt.Errorf("malformed config document %s", path)
	}
	tree := document.Build(file, src, astRoot, lexer.V1_0_0)

	root := tree.Root
	if filepath.Base(path) == "pyproject.toml" {
		if sub := lookupTable(root, "tool", "tombi"); sub != nil {
			root = sub
		} else {
			return cfg, nil
		}
	}
	applyTable(&cfg, root)
	return cfg, nil
}

func recordLines(file *token.File, src []byte) {
	for i, b := range src {
		if b == '\n' {
			file.AddLine(i + 1)
		}
	}
}

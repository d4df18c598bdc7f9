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

package cmd

import (
	"fmt"
	"os"

	"github.com/tombi-toml/tombi/ast"
	"github.com/tombi-toml/tombi/document"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/syntax"
	"github.com/tombi-toml/tombi/token"
	"github.com/tombi-toml/tombi/tomlver"
)

// loadDocument runs the full L->P->G->A->D pipeline over one file. Its TOML
// version comes from tomlver.Resolve with no schema override and no
// document directive passed, so configVersion alone decides it.
func loadDocument(path, configVersion string) (*token.File, *document.Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	file := token.NewFile(path, len(src))
	for i, b := range src {
		if b == '\n' {
			file.AddLine(i + 1)
		}
	}

	version := tomlver.Resolve(configVersion, "", "")
	parsed := parser.Parse(file, src, version)
	green := syntax.Build(src, parsed)
	red := syntax.NewRoot(green)
	root, ok := ast.CastRoot(red)
	if !ok {
		return file, nil, fmt.Errorf("%s: malformed document", path)
	}
	tree := document.Build(file, src, root, version)
	return file, tree, nil
}

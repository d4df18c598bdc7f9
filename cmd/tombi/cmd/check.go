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

	charmlog "charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/tombi-toml/tombi/config"
	"github.com/tombi-toml/tombi/internal/obslog"
)

// newCheckCmd builds `tombi check <files...>`, a thin shell that runs the
// L->P->G/A->D pipeline over each file and prints its diagnostics — the
// out-of-scope CLI surface named in §1, nothing more than file discovery
// and error formatting around document.Build.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "parse and validate TOML documents against the document-tree merge rules",
		RunE: func(c *cobra.Command, args []string) error {
			log := obslog.For("check")
			cfg := loadConfigOrDefault(log)

			failed := false
			for _, path := range args {
				_, tree, err := loadDocument(path, cfg.TOMLVersion)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					failed = true
					continue
				}
				for _, e := range tree.Errors {
					fmt.Printf("%s: %s\n", path, e.Error())
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("check found errors")
			}
			return nil
		},
	}
}

// loadConfigOrDefault looks for tombi.toml/pyproject.toml starting at the
// working directory, falling back to config.Default() if none is found —
// §6's config file is optional, never a hard requirement to run the core.
func loadConfigOrDefault(log *charmlog.Logger) config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.Default()
	}
	path, ok := config.Find(wd)
	if !ok {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Debugf("config load failed for %s: %v", path, err)
		return config.Default()
	}
	return cfg
}

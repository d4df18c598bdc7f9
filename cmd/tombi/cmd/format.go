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

	"github.com/spf13/cobra"

	tombifmt "github.com/tombi-toml/tombi/format"
	"github.com/tombi-toml/tombi/internal/obslog"
)

// newFormatCmd builds `tombi format <files...>`, which parses each file,
// reformats it via the F component, and either rewrites the file in place
// (-w) or prints the result to stdout.
func newFormatCmd() *cobra.Command {
	var write bool
	c := &cobra.Command{
		Use:   "format [files...]",
		Short: "reformat TOML documents",
		RunE: func(cc *cobra.Command, args []string) error {
			log := obslog.For("format")
			cfg := loadConfigOrDefault(log)

			for _, path := range args {
				_, tree, err := loadDocument(path, cfg.TOMLVersion)
				if err != nil {
					return err
				}
				out := tombifmt.Format(tree, nil, tombifmt.DefaultOptions())
				if write {
					if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
						return err
					}
					continue
				}
				fmt.Print(out)
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	return c
}

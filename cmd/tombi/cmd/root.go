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

// Package cmd wires the core packages (parser, document, schema,
// completion, format) to a cobra command tree, the way cmd/cue/cmd/root.go
// wires the CUE evaluator to its own subcommands. This layer is the
// explicitly out-of-scope CLI surface named in §1: everything here is
// file discovery and wire formatting around the core, not core logic.
package cmd

import (
	"fmt"
	"os"

	charmlog "charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/tombi-toml/tombi/internal/obslog"
)

var verbose int

// New builds the root `tombi` command.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "tombi",
		Short:         "a schema-aware TOML toolchain",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (-v, -vv)")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		switch {
		case verbose >= 2:
			obslog.SetLevel(charmlog.DebugLevel)
		case verbose == 1:
			obslog.SetLevel(charmlog.InfoLevel)
		}
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newLSPCmd())
	return root
}

// Main runs tombi and returns the process exit code.
func Main() int {
	root := New()
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

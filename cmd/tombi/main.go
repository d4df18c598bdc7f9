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

// Command tombi is the CLI front-end: a thin wrapper over the check,
// format, and lsp pipelines, explicitly out of scope as functionality
// (the wire formats and file discovery aren't load-bearing for the
// underlying packages) but carried as the ambient entry point a reader
// would expect alongside them.
package main

import (
	"os"

	"github.com/tombi-toml/tombi/cmd/tombi/cmd"
)

func main() {
	os.Exit(cmd.Main())
}

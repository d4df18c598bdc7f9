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

// Package tomlver resolves the `toml-version` config value and its
// per-schema/per-document overrides into this module's lexer.Version,
// using golang.org/x/mod/semver for comparison the same way Go module
// paths compare semantic version strings.
package tomlver

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/tombi-toml/tombi/lexer"
)

const (
	V1_0_0        = "v1.0.0"
	V1_1_0Preview = "v1.1.0-preview"
)

// Parse maps a config/schema/directive version string onto a
// lexer.Version, defaulting to V1_0_0 for anything unrecognized (the
// lenient, "everything recoverable" posture of §7).
func Parse(s string) lexer.Version {
	s = strings.TrimSpace(s)
	if s == "" {
		return lexer.V1_0_0
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	switch {
	case semver.Compare(canonical(s), canonical(V1_1_0Preview)) >= 0:
		return lexer.V1_1_0_Preview
	default:
		return lexer.V1_0_0
	}
}

// canonical strips a `-preview` prerelease suffix for the purposes of
// semver.Compare, which treats any prerelease as "less than" the release
// version — not what we want when resolving "is this at least 1.1".
func canonical(s string) string {
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i]
	}
	return s
}

// Resolve applies §12's precedence rule: a per-schema `x-tombi-toml-version`
// override wins over the document's own `toml-version` comment directive,
// which in turn wins over the config-level default.
func Resolve(configVersion, documentDirective, schemaOverride string) lexer.Version {
	if schemaOverride != "" {
		return Parse(schemaOverride)
	}
	if documentDirective != "" {
		return Parse(documentDirective)
	}
	return Parse(configVersion)
}

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

package tomlver

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/lexer"
)

func TestParseDefaultsToV1_0_0(t *testing.T) {
	qt.Assert(t, qt.Equals(Parse(""), lexer.V1_0_0))
	qt.Assert(t, qt.Equals(Parse("not-a-version"), lexer.V1_0_0))
}

func TestParseRecognizesPreview(t *testing.T) {
	qt.Assert(t, qt.Equals(Parse("v1.1.0-preview"), lexer.V1_1_0_Preview))
	qt.Assert(t, qt.Equals(Parse("1.1.0-preview"), lexer.V1_1_0_Preview))
}

func TestParseStableStaysBelowPreview(t *testing.T) {
	qt.Assert(t, qt.Equals(Parse("v1.0.0"), lexer.V1_0_0))
}

// TestResolvePrecedence is §12's precedence rule: schema override beats
// document directive beats config default.
func TestResolvePrecedence(t *testing.T) {
	qt.Assert(t, qt.Equals(Resolve("v1.0.0", "", ""), lexer.V1_0_0))
	qt.Assert(t, qt.Equals(Resolve("v1.0.0", "v1.1.0-preview", ""), lexer.V1_1_0_Preview))
	qt.Assert(t, qt.Equals(Resolve("v1.1.0-preview", "v1.1.0-preview", "v1.0.0"), lexer.V1_0_0))
}

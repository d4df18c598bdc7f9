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

// Package completion implements the C component: the schema-directed
// completion/hover resolver. The cursor walk (walk.go) mirrors
// cue/encoding/jsonschema's composition-flattening recursion in shape —
// recurse into a sub-schema, accumulate candidates, deduplicate — applied
// to TOML's document tree instead of a CUE export tree.
package completion

import "github.com/tombi-toml/tombi/token"

// HintKind is the closed set of completion triggers from §4.8.
type HintKind int

const (
	HintNone HintKind = iota
	HintDotTrigger
	HintEqualTrigger
	HintInArray
	HintInTableHeader
	HintComma
)

// Hint carries the editor-supplied disambiguating context for one
// completion request.
type Hint struct {
	Kind  HintKind
	Range token.ByteSpan

	// ArrayValueKind narrows HintInArray to the element kind already
	// present in the array, when known (e.g. all-string arrays prefer
	// string-kind candidates).
	ArrayValueKind string
}

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

package errors

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/token"
)

func TestNewfFormatsMessage(t *testing.T) {
	e := Newf(DuplicateKey, token.Position{}, "key %q declared twice", "a")
	qt.Assert(t, qt.Equals(e.Kind(), DuplicateKey))
	qt.Assert(t, qt.Equals(e.Error(), `key "a" declared twice`))
}

func TestNewfWithValidPositionPrefixesMessage(t *testing.T) {
	pos := token.Position{Filename: "t.toml", Line: 3, Column: 1, Offset: 10}
	e := Newf(ConflictTable, pos, "conflict")
	qt.Assert(t, qt.Equals(e.Error(), pos.String()+": conflict"))
}

func TestListSortOrdersByFileThenOffset(t *testing.T) {
	var l List
	l.Add(Newf(ParseError, token.Position{Filename: "b.toml", Offset: 5}, "x"))
	l.Add(Newf(ParseError, token.Position{Filename: "a.toml", Offset: 9}, "y"))
	l.Add(Newf(ParseError, token.Position{Filename: "a.toml", Offset: 1}, "z"))
	l.Sort()

	qt.Assert(t, qt.Equals(l[0].Position().Filename, "a.toml"))
	qt.Assert(t, qt.Equals(l[0].Position().Offset, 1))
	qt.Assert(t, qt.Equals(l[1].Position().Offset, 9))
	qt.Assert(t, qt.Equals(l[2].Position().Filename, "b.toml"))
}

func TestListDedupeRemovesAdjacentDuplicates(t *testing.T) {
	pos := token.Position{Filename: "t.toml", Offset: 1}
	var l List
	l.Add(Newf(DuplicateKey, pos, "dup"))
	l.Add(Newf(DuplicateKey, pos, "dup"))
	l.Add(Newf(ConflictTable, pos, "other"))

	deduped := l.Dedupe()
	qt.Assert(t, qt.HasLen(deduped, 2))
}

func TestListAddIgnoresNil(t *testing.T) {
	var l List
	l.Add(nil)
	qt.Assert(t, qt.HasLen(l, 0))
}

func TestKindStringIsHumanReadable(t *testing.T) {
	qt.Assert(t, qt.Equals(DuplicateKey.String(), "duplicate key"))
	qt.Assert(t, qt.Equals(CycleDetected.String(), "cycle detected"))
}

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

package token

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestFilePositionTracksLines(t *testing.T) {
	src := "a = 1\nb = 2\nc = 3\n"
	f := NewFile("t.toml", len(src))
	for i, b := range src {
		if b == '\n' {
			f.AddLine(i + 1)
		}
	}

	p := f.Position(0)
	qt.Assert(t, qt.Equals(p.Line, 1))
	qt.Assert(t, qt.Equals(p.Column, 1))

	// offset 6 is the start of "b = 2\n", the second line.
	p2 := f.Position(6)
	qt.Assert(t, qt.Equals(p2.Line, 2))
	qt.Assert(t, qt.Equals(p2.Column, 1))
}

func TestFilePositionClampsOutOfRangeOffsets(t *testing.T) {
	f := NewFile("t.toml", 5)
	p := f.Position(-1)
	qt.Assert(t, qt.Equals(p.Offset, 0))
	p2 := f.Position(100)
	qt.Assert(t, qt.Equals(p2.Offset, 5))
}

func TestByteSpanCover(t *testing.T) {
	a := ByteSpan{Start: 2, End: 5}
	b := ByteSpan{Start: 0, End: 3}
	got := a.Cover(b)
	qt.Assert(t, qt.Equals(got, ByteSpan{Start: 0, End: 5}))
	qt.Assert(t, qt.Equals(got.Len(), 5))
}

func TestPositionStringFormats(t *testing.T) {
	qt.Assert(t, qt.Equals(Position{}.String(), "-"))
	qt.Assert(t, qt.Equals(Position{Filename: "t.toml", Line: 2, Column: 3}.String(), "t.toml:2:3"))
	qt.Assert(t, qt.Equals(Position{Line: 2, Column: 3}.String(), "2:3"))
}

func TestUTF16ColumnASCII(t *testing.T) {
	line := []byte("key = 1")
	qt.Assert(t, qt.Equals(UTF16Column(line, 1), 1))
	qt.Assert(t, qt.Equals(UTF16Column(line, 5), 5))
}

func TestUTF16ColumnMultiByteRune(t *testing.T) {
	// "é" encodes as 2 UTF-8 bytes but 1 UTF-16 code unit, so a byte column
	// past it must compress relative to the raw byte count.
	line := []byte("é = 1")
	byteColumn := len([]byte("é = ")) + 1 // column just before "1"
	got := UTF16Column(line, byteColumn)
	qt.Assert(t, qt.IsTrue(got < byteColumn))
}

func TestKindPredicates(t *testing.T) {
	qt.Assert(t, qt.IsTrue(COMMENT.IsTrivia()))
	qt.Assert(t, qt.IsFalse(BARE_KEY.IsTrivia()))

	qt.Assert(t, qt.IsTrue(STRING_BASIC.IsLiteral()))
	qt.Assert(t, qt.IsTrue(INTEGER_HEX.IsLiteral()))
	qt.Assert(t, qt.IsFalse(DOT.IsLiteral()))

	qt.Assert(t, qt.IsTrue(BARE_KEY.IsKeyToken()))
	qt.Assert(t, qt.IsTrue(QUOTED_KEY_BASIC.IsKeyToken()))
	qt.Assert(t, qt.IsFalse(STRING_BASIC.IsKeyToken()))
}

func TestKindStringFallsBackForUnknown(t *testing.T) {
	qt.Assert(t, qt.Equals(Kind(9999).String(), "Kind(9999)"))
	qt.Assert(t, qt.Equals(EOF.String(), "EOF"))
}

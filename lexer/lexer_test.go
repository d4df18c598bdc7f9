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

package lexer

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tombi-toml/tombi/token"
)

// reassemble concatenates every token's slice of src, the P1 losslessness
// check restated for the lexer alone: the token stream must cover every
// byte with no gaps or overlaps.
func reassemble(src []byte, tokens []Token) string {
	out := make([]byte, 0, len(src))
	for _, t := range tokens {
		out = append(out, src[t.Span.Start:t.Span.End]...)
	}
	return string(out)
}

func TestLexLossless(t *testing.T) {
	cases := []string{
		"",
		"key = \"value\"\n",
		"[a.b.c]\nx = 1\n# comment\n",
		"arr = [1, 2, 3]\n",
		"inline = { a = 1, b = 2 }\n",
		"bad = \n",
		"dt = 1979-05-27T07:32:00Z\n",
		"hex = 0xFF\noct = 0o17\nbin = 0b101\n",
	}
	for _, src := range cases {
		tokens, _ := Lex([]byte(src), V1_0_0)
		qt.Assert(t, qt.Equals(reassemble([]byte(src), tokens), src))
		qt.Assert(t, qt.Equals(tokens[len(tokens)-1].Kind, token.EOF))
	}
}

func TestLexMalformedStillTerminates(t *testing.T) {
	// An unterminated basic string must not hang the scanner; it should
	// still reach EOF, recovering per §7 rather than aborting.
	src := []byte(`s = "unterminated`)
	tokens, errs := Lex(src, V1_0_0)
	qt.Assert(t, qt.Equals(tokens[len(tokens)-1].Kind, token.EOF))
	qt.Assert(t, qt.Equals(reassemble(src, tokens), string(src)))
	_ = errs
}

func TestClassifyNumberKinds(t *testing.T) {
	tokens, _ := Lex([]byte("a = 0xFF\nb = 0o17\nc = 0b101\nd = 1.5\ne = 10\n"), V1_0_0)
	var got []token.Kind
	for _, tok := range tokens {
		if tok.Kind.IsLiteral() {
			got = append(got, tok.Kind)
		}
	}
	qt.Assert(t, qt.DeepEquals(got, []token.Kind{
		token.INTEGER_HEX, token.INTEGER_OCT, token.INTEGER_BIN, token.FLOAT, token.INTEGER_DEC,
	}))
}

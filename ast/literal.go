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

package ast

import "strings"

// UnescapeBasicString processes TOML basic-string escape sequences
// (\b \t \n \f \r \" \\ \uXXXX \UXXXXXXXX) in the body of a basic string
// or quoted-basic key, i.e. the text between (but excluding) the quotes.
// Unrecognized escapes are passed through verbatim rather than causing a
// failure, consistent with this module's everything-is-recoverable policy
// (§7): malformed escapes surface as a lex/parse diagnostic upstream, not
// here.
func UnescapeBasicString(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'u':
			if n, ok := writeUnicodeEscape(&b, body[i+1:], 4); ok {
				i += n
				continue
			}
			b.WriteString(`\u`)
		case 'U':
			if n, ok := writeUnicodeEscape(&b, body[i+1:], 8); ok {
				i += n
				continue
			}
			b.WriteString(`\U`)
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func writeUnicodeEscape(b *strings.Builder, rest string, digits int) (consumed int, ok bool) {
	if len(rest) < digits {
		return 0, false
	}
	var r rune
	for i := 0; i < digits; i++ {
		c := rest[i]
		var v rune
		switch {
		case c >= '0' && c <= '9':
			v = rune(c - '0')
		case c >= 'a' && c <= 'f':
			v = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = rune(c-'A') + 10
		default:
			return 0, false
		}
		r = r<<4 | v
	}
	b.WriteRune(r)
	return digits, true
}

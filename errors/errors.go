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

// Package errors defines the shared diagnostic type used throughout the
// lexer, parser, document tree builder, schema engine, and completion
// engine. Every diagnostic in this module is a value of this interface, not
// a bare fmt.Errorf string, so that callers can recover position and kind
// information uniformly (§7).
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tombi-toml/tombi/token"
)

// Kind classifies a diagnostic by which component produced it.
type Kind int

const (
	LexError Kind = iota
	ParseError
	IncompleteNode
	DuplicateKey
	ConflictTable
	SchemaFetchFailed
	SchemaFileNotFound
	SchemaFileParseFailed
	InvalidJSONFormat
	InvalidReference
	UnsupportedReference
	CycleDetected
	InvalidPattern
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case IncompleteNode:
		return "incomplete node"
	case DuplicateKey:
		return "duplicate key"
	case ConflictTable:
		return "conflicting table"
	case SchemaFetchFailed:
		return "schema fetch failed"
	case SchemaFileNotFound:
		return "schema file not found"
	case SchemaFileParseFailed:
		return "schema file parse failed"
	case InvalidJSONFormat:
		return "invalid JSON format"
	case InvalidReference:
		return "invalid reference"
	case UnsupportedReference:
		return "unsupported reference"
	case CycleDetected:
		return "cycle detected"
	case InvalidPattern:
		return "invalid pattern"
	default:
		return "error"
	}
}

// Error is the common diagnostic interface. Every recoverable failure mode
// described in §7 is reported through a value implementing this interface.
type Error interface {
	error
	Kind() Kind
	Position() token.Position
	Msg() (format string, args []any)
}

type diagnostic struct {
	kind   Kind
	pos    token.Position
	format string
	args   []any
}

// Newf builds a diagnostic of the given kind at the given position.
func Newf(kind Kind, pos token.Position, format string, args ...any) Error {
	return &diagnostic{kind: kind, pos: pos, format: format, args: args}
}

func (d *diagnostic) Kind() Kind               { return d.kind }
func (d *diagnostic) Position() token.Position  { return d.pos }
func (d *diagnostic) Msg() (string, []any)      { return d.format, d.args }
func (d *diagnostic) Error() string {
	msg := fmt.Sprintf(d.format, d.args...)
	if d.pos.IsValid() {
		return fmt.Sprintf("%s: %s", d.pos, msg)
	}
	return msg
}

// List is a sortable, de-duplicating collection of diagnostics. It
// implements error so a List can be returned anywhere a single error is
// expected.
type List []Error

func (l List) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Add appends a diagnostic, ignoring a nil error.
func (l *List) Add(e Error) {
	if e == nil {
		return
	}
	*l = append(*l, e)
}

// Sort orders the list by position, file name first, then offset.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		pi, pj := l[i].Position(), l[j].Position()
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		return pi.Offset < pj.Offset
	})
}

// Dedupe removes adjacent diagnostics (after Sort) with identical position
// and message.
func (l List) Dedupe() List {
	if len(l) == 0 {
		return l
	}
	out := make(List, 0, len(l))
	var lastKey string
	for _, e := range l {
		key := fmt.Sprintf("%v|%s", e.Position(), e.Error())
		if key == lastKey {
			continue
		}
		out = append(out, e)
		lastKey = key
	}
	return out
}

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

// Package lspshim is a deliberately thin seam between the core pipeline and
// an LSP wire implementation, described only as interfaces the core exposes
// to its collaborators. It carries request identity and cancellation,
// patterned on gopls' jsonrpc2 request-ID handling, without importing
// gopls' request dispatch itself.
package lspshim

import (
	"context"

	"github.com/google/uuid"

	"github.com/tombi-toml/tombi/token"
)

// RequestID uniquely identifies one in-flight editor request; the request
// params and TraceRequest carry it. No code in this module cancels by it,
// and the schema store's cache-generation tag is a separate uuid.
type RequestID uuid.UUID

func NewRequestID() RequestID { return RequestID(uuid.New()) }

func (id RequestID) String() string { return uuid.UUID(id).String() }

// PositionEncoding mirrors §6's negotiated UTF-8/UTF-16 position encoding.
type PositionEncoding = token.PositionEncoding

// CompletionParams is the thin request shape a wire adapter constructs
// from a `textDocument/completion` RPC before handing off to the
// completion package's core walk.
type CompletionParams struct {
	ID       RequestID
	URI      string
	Source   []byte
	Offset   int // byte offset, already converted from the wire's line/column
	Encoding PositionEncoding
}

// HoverParams is the analogous shape for `textDocument/hover`.
type HoverParams struct {
	ID       RequestID
	URI      string
	Source   []byte
	Offset   int
	Encoding PositionEncoding
}

// Cancellable is satisfied by a context carrying the editor's cancellation
// signal (§5); core operations that suspend (schema fetch) must select on
// ctx.Done() at every await point.
type Cancellable interface {
	context.Context
}

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

package syntax

import "github.com/tombi-toml/tombi/token"

// RedNode pairs a GreenNode with its absolute byte offset and parent
// pointer. Red nodes are cheap to create on demand and are never shared
// back into the green tree; two RedNodes referencing the same GreenNode at
// different offsets are distinct values (position identity, per §3).
type RedNode struct {
	green  *GreenNode
	offset int
	parent *RedNode
}

// RedToken is the red counterpart of a GreenToken.
type RedToken struct {
	green  *GreenToken
	offset int
	parent *RedNode
}

// NewRoot creates the red root of a tree rooted at green, at offset 0.
func NewRoot(green *GreenNode) *RedNode {
	return &RedNode{green: green, offset: 0, parent: nil}
}

func (r *RedNode) Kind() token.Kind { return r.green.Kind }
func (r *RedNode) Green() *GreenNode { return r.green }
func (r *RedNode) Parent() *RedNode  { return r.parent }
func (r *RedNode) Offset() int       { return r.offset }
func (r *RedNode) Span() token.ByteSpan {
	return token.ByteSpan{Start: r.offset, End: r.offset + r.green.Len()}
}
func (r *RedNode) Text() string { return r.green.Text() }

// RedChild is either a *RedNode or a *RedToken, mirroring GreenChild.
type RedChild interface {
	Offset() int
}

func (t *RedToken) Offset() int       { return t.offset }
func (t *RedToken) Kind() token.Kind  { return t.green.Kind }
func (t *RedToken) Text() string      { return t.green.Text }
func (t *RedToken) Parent() *RedNode  { return t.parent }
func (t *RedToken) Span() token.ByteSpan {
	return token.ByteSpan{Start: t.offset, End: t.offset + t.green.Len()}
}

// Children materializes the immediate children of r as red views, each
// positioned at its cumulative offset within r.
func (r *RedNode) Children() []RedChild {
	out := make([]RedChild, 0, len(r.green.Children))
	off := r.offset
	for _, c := range r.green.Children {
		switch v := c.(type) {
		case *GreenNode:
			out = append(out, &RedNode{green: v, offset: off, parent: r})
		case *GreenToken:
			out = append(out, &RedToken{green: v, offset: off, parent: r})
		}
		off += c.Len()
	}
	return out
}

// ChildNodes returns only the RedNode children, in order.
func (r *RedNode) ChildNodes() []*RedNode {
	var out []*RedNode
	for _, c := range r.Children() {
		if n, ok := c.(*RedNode); ok {
			out = append(out, n)
		}
	}
	return out
}

// ChildTokens returns only the RedToken children, in order.
func (r *RedNode) ChildTokens() []*RedToken {
	var out []*RedToken
	for _, c := range r.Children() {
		if t, ok := c.(*RedToken); ok {
			out = append(out, t)
		}
	}
	return out
}

// PreorderWithTokens walks r and every descendant (nodes and tokens) in
// document order, depth-first, calling visit for each. Returning false
// from visit for any descendant ends the whole walk; the value returned
// for r itself is ignored.
func (r *RedNode) PreorderWithTokens(visit func(RedChild) bool) {
	var walk func(n *RedNode) bool
	walk = func(n *RedNode) bool {
		for _, c := range n.Children() {
			if !visit(c) {
				return false
			}
			if child, ok := c.(*RedNode); ok {
				if !walk(child) {
					return false
				}
			}
		}
		return true
	}
	visit(r)
	walk(r)
}

// TokenAtOffset returns the token whose span contains offset, preferring
// the token ending at offset when two tokens are adjacent (so a cursor
// sitting right after a key still resolves to that key, not the following
// trivia) — this matters for completion's cursor walk (§4.8).
func (r *RedNode) TokenAtOffset(offset int) *RedToken {
	var found *RedToken
	r.PreorderWithTokens(func(c RedChild) bool {
		t, ok := c.(*RedToken)
		if !ok {
			return true
		}
		span := t.Span()
		if offset >= span.Start && offset <= span.End {
			found = t
			return false
		}
		return true
	})
	return found
}

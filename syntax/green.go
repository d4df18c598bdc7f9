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

// Package syntax implements the lossless concrete syntax tree: an immutable,
// position-less, shareable "green" tree built once from a parser's event
// log, and a cheap, position-bearing "red" view created on demand for
// traversal (the G component).
package syntax

import (
	"github.com/tombi-toml/tombi/lexer"
	"github.com/tombi-toml/tombi/parser"
	"github.com/tombi-toml/tombi/token"
)

// GreenToken is an immutable leaf: a kind and its exact source text. Two
// GreenTokens with equal Kind and Text are semantically interchangeable;
// Build does not intern them, each TokenEvent yields its own GreenToken.
type GreenToken struct {
	Kind token.Kind
	Text string
}

func (t *GreenToken) Len() int { return len(t.Text) }

// GreenChild is either a GreenNode or a GreenToken. Using an interface
// keeps the children slice homogeneous without a tagged union, matching
// how the AST layer (package ast) distinguishes them by type switch.
type GreenChild interface {
	Len() int
}

// GreenNode is an immutable, shareable composite. It knows its own total
// byte length (the sum of its children's) but, by design, not its absolute
// offset in any particular document — that is the red tree's job.
type GreenNode struct {
	Kind     token.Kind
	Children []GreenChild
	textLen  int
}

func (n *GreenNode) Len() int { return n.textLen }

// NewGreenNode builds a GreenNode from already-built children, computing
// its cached length.
func NewGreenNode(kind token.Kind, children []GreenChild) *GreenNode {
	n := &GreenNode{Kind: kind, Children: children}
	for _, c := range children {
		n.textLen += c.Len()
	}
	return n
}

// Text reconstructs this node's exact source text by concatenating all
// descendant tokens left to right. Used to verify losslessness (P1) and by
// RedNode.Text.
func (n *GreenNode) Text() string {
	var b []byte
	n.appendText(&b)
	return string(b)
}

func (n *GreenNode) appendText(b *[]byte) {
	for _, c := range n.Children {
		switch v := c.(type) {
		case *GreenToken:
			*b = append(*b, v.Text...)
		case *GreenNode:
			v.appendText(b)
		}
	}
}

// Build replays a parser.Parsed event log into a single GreenNode tree.
// It never re-scans the source: every TokenEvent already carries the
// token's span, resolved here against the original token/source slices.
func Build(src []byte, p parser.Parsed) *GreenNode {
	b := &builder{src: src, tokens: p.Tokens}
	for _, ev := range p.Events {
		switch ev.Kind {
		case parser.StartNode:
			b.stack = append(b.stack, &frame{kind: ev.Node})
		case parser.TokenEvent:
			tok := b.tokens[ev.Tok]
			gt := &GreenToken{Kind: tok.Kind, Text: string(src[tok.Span.Start:tok.Span.End])}
			b.push(gt)
		case parser.FinishNode:
			if len(b.stack) == 1 {
				// ROOT's own FinishNode: its frame stays open and is closed
				// after the loop.
				continue
			}
			top := b.stack[len(b.stack)-1]
			b.stack = b.stack[:len(b.stack)-1]
			node := NewGreenNode(top.kind, top.children)
			b.push(node)
		case parser.ErrorEvent:
			// Errors don't affect tree shape; they're already collected in
			// p.Errors by the parser.
		}
	}
	if len(b.stack) != 1 {
		// A well-formed event log always leaves exactly the ROOT frame open
		// until its FinishNode; this indicates a parser bug, not bad input.
		panic("syntax: unbalanced event log")
	}
	return NewGreenNode(b.stack[0].kind, b.stack[0].children)
}

type frame struct {
	kind     token.Kind
	children []GreenChild
}

type builder struct {
	src    []byte
	tokens []lexer.Token
	stack  []*frame
}

func (b *builder) push(c GreenChild) {
	top := b.stack[len(b.stack)-1]
	top.children = append(top.children, c)
}

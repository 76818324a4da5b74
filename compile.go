// Copyright 2025 The Restive Authors
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

package router

import (
	"restive.dev/router/strpool"
	"restive.dev/router/token"
)

// segKind discriminates parsed pattern segments.
type segKind uint8

const (
	segLitString segKind = iota
	segLitNumber
	segParam
	segWildcard
)

// segment is one parsed element of a pattern expression.
type segment struct {
	kind segKind
	text string   // literal spelling (segLitString)
	num  int64    // literal value (segLitNumber)
	name string   // parameter name (segParam)
	mask TypeMask // parameter type mask (segParam)
}

// parsePattern lexes and parses a pattern expression into segments.
// Parsing is pure: grammar errors are reported without touching the
// graph.
//
// Grammar:
//
//	pattern     = ['/'] segment ('/' segment)*
//	segment     = literal-seg | param-seg | wildcard-seg
//	literal-seg = identifier | integer | string
//	param-seg   = ':' identifier '(' type ('|' type)* ')'
//	wildcard-seg= '*'
func parsePattern(pattern string) ([]segment, Status) {
	sc := token.NewScanner(pattern, token.Pattern)
	var segs []segment

	atBoundary := true // start of pattern counts as a segment boundary
	for {
		tok := sc.Next()

		switch tok.Kind {
		case token.EOF:
			return segs, 0

		case token.Sep:
			atBoundary = true
			continue

		case token.Error:
			return nil, Syntax
		}

		if !atBoundary {
			return nil, ExpectedPathSeparator
		}
		atBoundary = false

		switch tok.Kind {
		case token.Identifier, token.String:
			segs = append(segs, segment{kind: segLitString, text: tok.Text})

		case token.Integer:
			segs = append(segs, segment{kind: segLitNumber, num: tok.Int})

		case token.Colon:
			seg, status := parseParam(sc)
			if status < 0 {
				return nil, status
			}
			segs = append(segs, seg)

		case token.Wildcard:
			segs = append(segs, segment{kind: segWildcard})
			// The wildcard consumes the remainder; anything after it is
			// trailing garbage.
			if sc.Next().Kind != token.EOF {
				return nil, ExpectedEof
			}
			return segs, 0

		default:
			return nil, Syntax
		}
	}
}

// parseParam parses the remainder of a param-seg after the ':'.
func parseParam(sc *token.Scanner) (segment, Status) {
	name := sc.Next()
	if name.Kind != token.Identifier {
		return segment{}, ExpectedIdentifier
	}
	if sc.Next().Kind != token.LParen {
		return segment{}, Syntax
	}

	var mask TypeMask
	for {
		tname := sc.Next()
		if tname.Kind != token.Identifier {
			return segment{}, ExpectedIdentifier
		}
		tm, ok := ParseTypeName(tname.Text)
		if !ok {
			return segment{}, InvalidType
		}
		mask |= tm

		switch sc.Next().Kind {
		case token.Pipe:
			continue
		case token.RParen:
			return segment{kind: segParam, name: name.Text, mask: mask}, 0
		default:
			return segment{}, Syntax
		}
	}
}

// compile extends the decision graph rooted at start so the pattern is
// represented, returning the node where the pattern terminated, the
// number of named parameters along the pattern, and whether the pattern
// is literal-only (eligible for the static fast path).
//
// Compilation is idempotent: literal edges deduplicate and parameter
// slots are shared, so recompiling a pattern allocates nothing new.
// A slot conflict reports AmbiguousParameter and leaves the graph exactly
// as it was: conflicts can only occur on nodes reached through
// deduplicated edges, before any allocation for the offending segment.
func (r *Router) compile(start *node, pattern string) (end *node, nargs int, staticOnly bool, status Status) {
	segs, status := parsePattern(pattern)
	if status < 0 {
		return nil, 0, false, status
	}

	cur := start
	staticOnly = true
	for _, seg := range segs {
		switch seg.kind {
		case segLitString:
			cur = r.extendLiteralString(cur, seg.text)

		case segLitNumber:
			cur = r.extendLiteralNumber(cur, seg.num)

		case segParam:
			next, st := r.extendParam(cur, seg.name, seg.mask)
			if st < 0 {
				return nil, 0, false, st
			}
			cur = next
			nargs++
			staticOnly = false

		case segWildcard:
			if cur.wild == nil {
				cur.wild = r.newNode()
			}
			cur = cur.wild
			staticOnly = false
		}
	}

	return cur, nargs, staticOnly, 0
}

// extendLiteralString follows or creates the string literal edge for a
// segment spelling. Identifiers are interned case-insensitively, so
// "Devices" and "devices" share one edge.
func (r *Router) extendLiteralString(n *node, text string) *node {
	id := r.strings.InsertDistinct(text, strpool.NoCase)
	if l := n.findLiteralString(id); l != nil {
		return l.next
	}

	l := r.lits.Make()
	l.id = id
	l.next = r.newNode()
	n.appendLiteral(l)

	return l.next
}

// extendLiteralNumber follows or creates the numeric literal edge for a
// segment value.
func (r *Router) extendLiteralNumber(n *node, v int64) *node {
	if l := n.findLiteralNumber(v); l != nil {
		return l.next
	}

	l := r.lits.Make()
	l.num = v
	l.numeric = true
	l.next = r.newNode()
	n.appendLiteral(l)

	return l.next
}

// extendParam places a typed parameter on the node, sharing slots with
// previously compiled patterns. Every slot the mask touches points at the
// same forward node.
//
// Conflict rules: a touched slot already holding a different parameter —
// different name or different mask — is AmbiguousParameter. So is an
// untouched slot holding the same parameter name under a different mask
// (the same-position parameter re-declared with another type).
func (r *Router) extendParam(n *node, name string, mask TypeMask) (*node, Status) {
	classes := slotClasses(mask)

	var forward *node
	for _, class := range classes {
		s := *n.slotFor(class)
		if s == nil {
			continue
		}
		if s.name != name || s.mask != mask {
			return nil, AmbiguousParameter
		}
		forward = s.next
	}

	// The same parameter name must not live in an untouched slot with a
	// conflicting mask.
	for _, class := range []slotClass{slotString, slotNumeric, slotBoolean} {
		s := *n.slotFor(class)
		if s != nil && s.name == name && s.mask != mask {
			return nil, AmbiguousParameter
		}
	}

	if forward == nil {
		forward = r.newNode()
	}
	for _, class := range classes {
		sp := n.slotFor(class)
		if *sp == nil {
			s := r.slots.Make()
			s.name = name
			s.mask = mask
			s.next = forward
			*sp = s
		}
	}

	return forward, 0
}

// newNode allocates a graph node from the arena.
func (r *Router) newNode() *node { return r.nodes.Make() }

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

// WildcardArg is the argument name under which a trailing '*' exposes the
// verbatim URI remainder.
const WildcardArg = "_url"

// resolveMode selects the resolver intent.
type resolveMode uint8

const (
	// modeResolve is normal resolution: find a handler.
	modeResolve resolveMode = iota
	// modeAccept only asks whether the path prefix could be handled here.
	modeAccept
)

// resolveState is the walking state for one resolution. It is stack-local
// to the resolving goroutine; the graph itself is never written.
type resolveState struct {
	req  *Request
	sc   *token.Scanner
	mode resolveMode

	// atSegment marks that the cursor already sits on a segment — the
	// separator was consumed by a delegating parent — so the first walk
	// iteration must not demand one.
	atSegment bool
}

// resolveFrom walks the graph from n, consuming request tokens, capturing
// typed arguments, and selecting a handler.
//
// Per-node matching order is strict: literal edges in insertion order,
// then the typed slot for the token's kind, then the wildcard, then
// external delegates. First match wins.
func (r *Router) resolveFrom(st *resolveState, n *node) (Handler, Status) {
	if n == nil {
		return Handler{}, NullRoot
	}

	for {
		// Accept-queries succeed the moment an accepting node is reached,
		// regardless of remaining path or content-type exclusivity.
		if st.mode == modeAccept && n.acceptTerminal {
			return Handler{}, UriAccepted
		}

		// The content-type gate is checked on node entry so an exclusive
		// filter rejects before a handler can be selected.
		if st.mode == modeResolve && n.ctExclusive && n.contentType != "" &&
			strpool.NoCase(n.contentType, st.req.ContentType) != 0 {
			return Handler{}, UnsupportedContentType
		}

		tok := st.sc.Peek()
		if tok.Kind == token.EOF {
			if st.mode == modeAccept {
				return Handler{}, UriAccepted
			}
			h := n.handler(st.req.Method)
			if !h.IsSet() {
				return Handler{}, NoHandler
			}
			return h, UriMatched
		}

		if st.atSegment {
			st.atSegment = false
		} else {
			if tok.Kind != token.Sep {
				return Handler{}, ExpectedPathSeparator
			}
			st.sc.Next()
		}

		seg := st.sc.Peek()
		if seg.Kind == token.EOF {
			// Trailing slash: resolve as if the path ended at this node.
			continue
		}

		next, status := r.matchSegment(st, n, seg)
		if status != 0 {
			return st.finish(status)
		}
		if next == nil {
			// Terminal outcome (wildcard or external) already wrote the
			// request state.
			return st.req.Handler, st.req.Status
		}
		n = next
	}
}

// matchSegment applies the per-node matching order to one segment token.
// It returns the next node to walk, or a non-zero failure status, or
// (nil, 0) when a terminal outcome (wildcard, external delegation) has
// been recorded on the request.
func (r *Router) matchSegment(st *resolveState, n *node, seg token.Token) (*node, Status) {
	// 1. Literal edges, insertion order. Strings compare
	// case-insensitively, numbers by value.
	if seg.Kind == token.Identifier || seg.Kind == token.String {
		for l := n.literals; l != nil; l = l.nextLit {
			if !l.numeric && strpool.NoCase(r.strings.Get(l.id), seg.Text) == 0 {
				st.sc.Next()
				return l.next, 0
			}
		}
	} else if seg.Kind == token.Integer {
		if l := n.findLiteralNumber(seg.Int); l != nil {
			st.sc.Next()
			return l.next, 0
		}
	}

	// 2. Typed parameter slots, keyed by the token's kind.
	typeMismatch := false
	switch {
	case seg.Kind == token.Integer || seg.Kind == token.Real:
		if s := n.numSlot; s != nil {
			if val, ok := numericCapture(s.mask, seg); ok {
				st.capture(s.name, val)
				st.sc.Next()
				return s.next, 0
			}
			typeMismatch = true
		}

	case seg.Kind == token.Bool:
		if s := n.boolSlot; s != nil {
			st.capture(s.name, BoolValue(seg.Bool))
			st.sc.Next()
			return s.next, 0
		}

	case seg.IsTextual():
		if s := n.strSlot; s != nil {
			// Raw segment capture: everything up to the next '/',
			// preserving spaces and bytes the lexer cannot classify.
			st.capture(s.name, StringValue(st.sc.CaptureSegment(seg.Pos)))
			return s.next, 0
		}
	}

	// 3. Wildcard catch-all: the verbatim remainder becomes _url.
	if n.wild != nil {
		st.capture(WildcardArg, StringValue(st.sc.Rest(seg.Pos)))
		if st.mode == modeAccept {
			st.req.Status = UriAccepted
			return nil, 0
		}
		h := n.wild.handler(st.req.Method)
		if !h.IsSet() {
			st.req.Status = NoHandler
			return nil, 0
		}
		st.req.Handler = h
		st.req.Status = UriMatchedWildcard
		return nil, 0
	}

	// 4. External delegates, registration order, only after every local
	// edge failed.
	if n.externals != nil {
		if done := r.delegate(st, n); done {
			return nil, 0
		}
	}

	if typeMismatch {
		return nil, InvalidParameterType
	}
	return nil, NoEndpoint
}

// delegate tries each external in order with a copy of the parser state:
// same tokens, same captured arguments, cursor at the current segment.
// The first delegate that resolves wins. A delegate failing with a
// not-found status is undone and the next is tried; any other failure
// short-circuits. Returns whether the request state was written.
func (r *Router) delegate(st *resolveState, n *node) bool {
	for e := n.externals; e != nil; e = e.next {
		sub := e.router(st.req)
		if sub == nil || sub.root == nil {
			continue
		}

		scSnap := *st.sc
		argSnap := st.req.Args.Len()

		// Delegated parser state: same tokens, same captured arguments,
		// cursor at the current (already separated) segment.
		sst := &resolveState{req: st.req, sc: st.sc, mode: st.mode, atSegment: true}
		h, status := sub.resolveFrom(sst, sub.root)
		if status.OK() {
			st.req.Handler = h
			st.req.Status = status
			return true
		}
		if status != NoEndpoint && status != NoHandler {
			st.req.Status = status
			return true
		}

		// Undo this delegate's consumption before trying the next.
		*st.sc = scSnap
		st.req.Args.truncate(argSnap)
	}
	return false
}

// finish records a failure status on the request.
func (st *resolveState) finish(status Status) (Handler, Status) {
	st.req.Status = status
	return Handler{}, status
}

// capture appends a named argument in capture order.
func (st *resolveState) capture(name string, v Value) {
	st.req.Args.append(Argument{Name: name, Value: v})
}

// numericCapture coerces a numeric token against a slot mask.
// A Number mask accepts both integers and reals; an Unsigned mask accepts
// non-negative integers only; a real-only mask widens integer tokens.
func numericCapture(mask TypeMask, seg token.Token) (Value, bool) {
	if seg.Kind == token.Integer {
		switch {
		case mask.IsUnsigned():
			if seg.Int < 0 {
				return Value{}, false
			}
			return UintValue(uint64(seg.Int)), true
		case mask.IsInteger():
			return IntValue(seg.Int), true
		case mask.IsReal():
			return RealValue(float64(seg.Int)), true
		}
		return Value{}, false
	}

	// Real token: the mask must accept reals; integer-only slots reject.
	if mask.IsReal() {
		return RealValue(seg.Real), true
	}
	return Value{}, false
}

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

// literal is an exact-match edge for a constant path segment. Literals
// form an intrusive singly-linked list on their node, in insertion order;
// the list order is the match order.
type literal struct {
	id      int      // string pool ID when !numeric
	num     int64    // literal value when numeric
	numeric bool     // discriminates id vs num
	next    *node    // node reached when this literal matches
	nextLit *literal // next literal edge on the owning node
}

// paramSlot is a typed parameter edge: a parameter name plus the declared
// type mask, and the node reached after capturing. Two patterns sharing
// prefix and parameter position share the same slot.
type paramSlot struct {
	name string
	mask TypeMask
	next *node
}

// external is a sub-router delegate descriptor. Delegates are tried, in
// registration order, only after every local edge has failed. target
// selects the sub-router; for With it is fixed, for WithFunc it is chosen
// per request.
type external struct {
	target *Router
	choose func(*Request) *Router
	next   *external
}

// router returns the delegate's sub-router for this request.
func (e *external) router(req *Request) *Router {
	if e.choose != nil {
		return e.choose(req)
	}
	return e.target
}

// node is a point in the decision graph representing a specific path
// prefix.
//
// Matching order at a node is strict: literal edges in insertion order,
// then the typed parameter slot for the token's kind, then the wildcard,
// then externals. All node memory comes from the router's arena; a node's
// lifetime equals the router's.
//
// Thread safety: nodes are mutated only during the single-threaded build
// phase. Resolution reads them without locks from any number of
// goroutines.
type node struct {
	literals *literal // head of the literal edge list
	litTail  *literal

	// Typed parameter slots, discriminated by acceptable token kind.
	strSlot  *paramSlot
	numSlot  *paramSlot
	boolSlot *paramSlot

	wild *node // '*' catch-all terminal

	externals *external // head of the delegate list
	extTail   *external

	handlers [numMethods]Handler

	contentType    string // media-type filter, empty means unfiltered
	ctExclusive    bool   // reject non-matching content types at this node
	acceptTerminal bool   // accept-queries succeed here even mid-path
}

// handler returns the handler bound for a concrete method.
func (n *node) handler(m Method) Handler {
	if i := m.slot(); i >= 0 {
		return n.handlers[i]
	}
	return Handler{}
}

// attach binds a handler. MethodAny fills every currently-unbound slot
// and never overwrites. Re-attaching the same handler is a no-op;
// attaching a different handler to an occupied slot reports Duplicate.
func (n *node) attach(m Method, h Handler) Status {
	if m == MethodAny {
		for i := range n.handlers {
			if !n.handlers[i].IsSet() {
				n.handlers[i] = h
			}
		}
		return 0
	}

	i := m.slot()
	if i < 0 {
		return Internal
	}
	if n.handlers[i].IsSet() {
		if n.handlers[i].same(h) {
			return 0
		}
		return Duplicate
	}
	n.handlers[i] = h

	return 0
}

// findLiteralString returns the string literal edge with the given pool
// ID, or nil.
func (n *node) findLiteralString(id int) *literal {
	for l := n.literals; l != nil; l = l.nextLit {
		if !l.numeric && l.id == id {
			return l
		}
	}
	return nil
}

// findLiteralNumber returns the numeric literal edge with the given
// value, or nil.
func (n *node) findLiteralNumber(v int64) *literal {
	for l := n.literals; l != nil; l = l.nextLit {
		if l.numeric && l.num == v {
			return l
		}
	}
	return nil
}

// appendLiteral links a literal edge at the tail of the match list.
func (n *node) appendLiteral(l *literal) {
	if n.litTail == nil {
		n.literals = l
	} else {
		n.litTail.nextLit = l
	}
	n.litTail = l
}

// appendExternal links a delegate descriptor at the tail of the list.
func (n *node) appendExternal(e *external) {
	if n.extTail == nil {
		n.externals = e
	} else {
		n.extTail.next = e
	}
	n.extTail = e
}

// slotFor returns the address of the parameter slot field for a token
// kind class.
func (n *node) slotFor(class slotClass) **paramSlot {
	switch class {
	case slotNumeric:
		return &n.numSlot
	case slotBoolean:
		return &n.boolSlot
	default:
		return &n.strSlot
	}
}

// slotClass discriminates the three typed parameter buckets.
type slotClass uint8

const (
	slotString slotClass = iota
	slotNumeric
	slotBoolean
)

// slotClasses returns the buckets a type mask touches. A parameter
// declared (integer|string) occupies both the numeric and string slots,
// pointing at the same forward node.
func slotClasses(mask TypeMask) []slotClass {
	classes := make([]slotClass, 0, 3)
	if mask&MaskNumber != 0 {
		classes = append(classes, slotNumeric)
	}
	if mask&MaskBoolean != 0 {
		classes = append(classes, slotBoolean)
	}
	if mask&MaskString != 0 {
		classes = append(classes, slotString)
	}
	return classes
}

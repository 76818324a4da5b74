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

import "strings"

// NodeHandle is the build-time DSL handle on a graph node.
//
// Handles carry a sticky error: the first failing operation records its
// status and every later chained operation becomes a no-op preserving
// it, so a builder block reports exactly one failure. Catch is the
// inspect-and-clear recovery point — it is a helper, not control flow.
type NodeHandle struct {
	r   *Router
	n   *node
	err Status
}

// Valid reports whether the handle points at a node.
func (h *NodeHandle) Valid() bool { return h != nil && h.n != nil && h.err == 0 }

// Error returns the sticky error status, zero when none.
func (h *NodeHandle) Error() Status { return h.err }

// Catch invokes f with the sticky status exactly once if one is set,
// then clears it.
func (h *NodeHandle) Catch(f func(Status)) *NodeHandle {
	if h.err != 0 {
		if f != nil {
			f(h.err)
		}
		h.err = 0
	}
	return h
}

// On compiles a pattern relative to this node and returns the terminal
// node's handle. A leading '/' restarts from the router's root, so
// builder chains can mix absolute and relative patterns:
//
//	devs := r.On("/api/devices")
//	devs.On("lights").GET(listLights)
//	devs.On("/api/doors").GET(listDoors) // absolute, same router
func (h *NodeHandle) On(pattern string) *NodeHandle {
	if h.err != 0 {
		return h
	}
	if h.r == nil || h.n == nil {
		return h.fail(NullRoot)
	}

	start := h.n
	absolute := strings.HasPrefix(pattern, "/")
	if absolute {
		start = h.r.root
	}

	end, nargs, staticOnly, status := h.r.compile(start, pattern)
	if status < 0 {
		h.r.diag(DiagPatternRejected, "pattern rejected", map[string]any{
			"pattern": pattern,
			"status":  status.String(),
		})
		return h.fail(status)
	}

	if nargs > h.r.maxArgs {
		h.r.maxArgs = nargs
		if nargs > highArgCount {
			h.r.diag(DiagHighArgCount, "route parameter count high", map[string]any{
				"pattern": pattern,
				"count":   nargs,
			})
		}
	}
	if staticOnly && absolute && start == h.r.root {
		h.r.static.Add(pattern, end)
	}

	return &NodeHandle{r: h.r, n: end}
}

// Method binds a handler for the given method at this node. MethodAny
// fills every currently-unbound method slot and never overwrites.
func (h *NodeHandle) Method(m Method, handler any) *NodeHandle {
	if h.err != 0 {
		return h
	}
	if h.r == nil || h.n == nil {
		return h.fail(NullRoot)
	}

	hd, ok := asHandler(handler)
	if !ok {
		return h.fail(InvalidType)
	}
	if status := h.n.attach(m, hd); status < 0 {
		return h.fail(status)
	}

	h.r.routes++
	h.r.metrics.recordRoute()
	h.r.diag(DiagRouteRegistered, "route registered", map[string]any{
		"method": m.String(),
	})

	return h
}

// GET binds a handler for HTTP GET.
func (h *NodeHandle) GET(handler any) *NodeHandle { return h.Method(MethodGet, handler) }

// POST binds a handler for HTTP POST.
func (h *NodeHandle) POST(handler any) *NodeHandle { return h.Method(MethodPost, handler) }

// PUT binds a handler for HTTP PUT.
func (h *NodeHandle) PUT(handler any) *NodeHandle { return h.Method(MethodPut, handler) }

// PATCH binds a handler for HTTP PATCH.
func (h *NodeHandle) PATCH(handler any) *NodeHandle { return h.Method(MethodPatch, handler) }

// DELETE binds a handler for HTTP DELETE.
func (h *NodeHandle) DELETE(handler any) *NodeHandle { return h.Method(MethodDelete, handler) }

// OPTIONS binds a handler for HTTP OPTIONS.
func (h *NodeHandle) OPTIONS(handler any) *NodeHandle { return h.Method(MethodOptions, handler) }

// ANY binds a handler for every currently-unbound method.
func (h *NodeHandle) ANY(handler any) *NodeHandle { return h.Method(MethodAny, handler) }

// Accept marks the node as an accept terminal: accept-queries reaching
// it succeed even when more path remains.
func (h *NodeHandle) Accept() *NodeHandle {
	if h.err != 0 {
		return h
	}
	if h.n == nil {
		return h.fail(NullRoot)
	}
	h.n.acceptTerminal = true

	return h
}

// WithContentType sets the node's media-type filter. With exclusive set,
// requests whose content type does not match are rejected at this node
// with UnsupportedContentType.
func (h *NodeHandle) WithContentType(contentType string, exclusive bool) *NodeHandle {
	if h.err != 0 {
		return h
	}
	if h.n == nil {
		return h.fail(NullRoot)
	}
	h.n.contentType = contentType
	h.n.ctExclusive = exclusive

	return h
}

// With registers a sub-router delegate at this node. When local matching
// fails, the remaining path is offered to sub from its root. The
// returned handle points at sub's root so chains continue building the
// sub-router:
//
//	routerA.On("/api").With(routerB).On("echo/:msg(string)").GET(echo)
func (h *NodeHandle) With(sub *Router) *NodeHandle {
	if h.err != 0 {
		return h
	}
	if h.n == nil || sub == nil {
		return h.fail(NullRoot)
	}

	e := h.r.exts.Make()
	e.target = sub
	h.n.appendExternal(e)
	h.r.diag(DiagExternalRegistered, "external delegate registered", nil)

	return sub.Root()
}

// WithFunc registers a delegate whose sub-router is chosen per request —
// the instance-resolver form of With. Returning nil skips the delegate
// for that request. The handle itself is returned; there is no single
// sub-router to chain onto.
func (h *NodeHandle) WithFunc(choose func(*Request) *Router) *NodeHandle {
	if h.err != 0 {
		return h
	}
	if h.n == nil || choose == nil {
		return h.fail(NullRoot)
	}

	e := h.r.exts.Make()
	e.choose = choose
	h.n.appendExternal(e)
	h.r.diag(DiagExternalRegistered, "external delegate registered", nil)

	return h
}

// fail returns a handle carrying the sticky status.
func (h *NodeHandle) fail(status Status) *NodeHandle {
	return &NodeHandle{r: h.r, err: status}
}

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
	"context"
	"time"

	"restive.dev/router/arena"
	"restive.dev/router/compiler"
	"restive.dev/router/strpool"
	"restive.dev/router/token"
)

// Option defines functional options for router configuration.
type Option func(*Router)

// Router compiles URI-pattern endpoints into a decision graph and
// resolves incoming (method, uri, content-type) tuples against it.
//
// The router follows a build-once, resolve-forever model:
//
//   - Build phase: calls to On, the method attachers, With, Accept and
//     WithContentType mutate the graph and must come from one goroutine.
//   - Resolve phase: Resolve and QueryAccept treat the graph as
//     immutable; any number of goroutines may resolve concurrently.
//     All per-request state lives in the returned Request.
//
// Mixing the phases concurrently is not supported; to change routes,
// build a new Router and swap the reference.
//
// All graph memory — nodes, literal edges, parameter slots, delegate
// descriptors, interned strings — is owned by the router's arena and
// released together when the router becomes garbage.
type Router struct {
	nodes *arena.Of[node]
	slots *arena.Of[paramSlot]
	lits  *arena.Of[literal]
	exts  *arena.Of[external]

	strings *strpool.Pool
	root    *node
	static  *compiler.Table

	maxArgs int // widest named-parameter count across all patterns
	routes  int // handlers attached

	pageSize           int
	defaultContentType string
	defaultHandler     Handler

	diagnostics DiagnosticHandler
	metrics     *MetricsConfig
	tracing     *TracingConfig
}

// New creates an empty router. Construction cannot fail: the router is a
// plain data structure with no I/O, so New returns *Router without an
// error. Options that do initialize external resources (metrics
// providers) panic on invalid configuration, surfacing mistakes during
// development.
func New(opts ...Option) *Router {
	r := &Router{
		pageSize:           arena.DefaultPageSize,
		defaultContentType: DefaultContentType,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.nodes = arena.NewOf[node](arena.DefaultPerPage)
	r.slots = arena.NewOf[paramSlot](arena.DefaultPerPage)
	r.lits = arena.NewOf[literal](arena.DefaultPerPage)
	r.exts = arena.NewOf[external](arena.DefaultPerPage)
	r.strings = strpool.NewWithPageSize(r.pageSize)
	r.static = compiler.NewTable()
	r.root = r.nodes.Make()

	return r
}

// Root returns a handle on the root node.
func (r *Router) Root() *NodeHandle { return &NodeHandle{r: r, n: r.root} }

// On compiles a pattern from the root and returns the terminal node's
// handle. The handle carries a sticky error status: after a failure,
// chained operations are no-ops that preserve the first error, so a
// builder block reports one failure. Inspect with Error or Catch.
func (r *Router) On(pattern string) *NodeHandle { return r.Root().On(pattern) }

// OnDefault sets the fallback handler placed on requests that fail to
// resolve, so hosts can serve error bodies uniformly.
func (r *Router) OnDefault(handler any) *Router {
	if h, ok := asHandler(handler); ok {
		r.defaultHandler = h
	}
	return r
}

// GET is shorthand for On(pattern).GET(handler).
func (r *Router) GET(pattern string, handler any) *NodeHandle {
	return r.On(pattern).GET(handler)
}

// POST is shorthand for On(pattern).POST(handler).
func (r *Router) POST(pattern string, handler any) *NodeHandle {
	return r.On(pattern).POST(handler)
}

// PUT is shorthand for On(pattern).PUT(handler).
func (r *Router) PUT(pattern string, handler any) *NodeHandle {
	return r.On(pattern).PUT(handler)
}

// PATCH is shorthand for On(pattern).PATCH(handler).
func (r *Router) PATCH(pattern string, handler any) *NodeHandle {
	return r.On(pattern).PATCH(handler)
}

// DELETE is shorthand for On(pattern).DELETE(handler).
func (r *Router) DELETE(pattern string, handler any) *NodeHandle {
	return r.On(pattern).DELETE(handler)
}

// OPTIONS is shorthand for On(pattern).OPTIONS(handler).
func (r *Router) OPTIONS(pattern string, handler any) *NodeHandle {
	return r.On(pattern).OPTIONS(handler)
}

// ANY is shorthand for On(pattern).ANY(handler).
func (r *Router) ANY(pattern string, handler any) *NodeHandle {
	return r.On(pattern).ANY(handler)
}

// Resolve matches a request URI against the compiled graph using the
// router's default content type.
func (r *Router) Resolve(method Method, uri string) *Request {
	return r.ResolveCtx(context.Background(), method, uri, r.defaultContentType)
}

// ResolveContent matches a request URI, gating exclusive content-type
// filters against the given media type.
func (r *Router) ResolveContent(method Method, uri, contentType string) *Request {
	return r.ResolveCtx(context.Background(), method, uri, contentType)
}

// ResolveCtx is Resolve with a caller context for trace propagation.
// The context does not cancel resolution — matching is CPU-bound and
// returns in time proportional to the path segment count.
func (r *Router) ResolveCtx(ctx context.Context, method Method, uri, contentType string) *Request {
	req := &Request{
		Method:      method,
		URI:         uri,
		ContentType: contentType,
		Args:        newArgs(r.maxArgs + 1),
	}

	var began time.Time
	if r.metrics.on() {
		began = time.Now()
	}
	ctx, span := r.tracing.start(ctx, method, uri)

	h, status := r.resolveRequest(req, uri)
	req.Status = status
	if h.IsSet() {
		req.Handler = h
	} else if status < 0 && r.defaultHandler.IsSet() {
		req.Handler = r.defaultHandler
	}

	r.tracing.end(span, status)
	if r.metrics.on() {
		r.metrics.recordResolve(ctx, method, status, time.Since(began))
	}

	return req
}

// resolveRequest runs the static fast path, then the graph walk.
func (r *Router) resolveRequest(req *Request, uri string) (Handler, Status) {
	if n, ok := r.static.Lookup(uri).(*node); ok {
		// Literal-only endpoint: only the terminal checks remain.
		if n.ctExclusive && n.contentType != "" &&
			strpool.NoCase(n.contentType, req.ContentType) != 0 {
			return Handler{}, UnsupportedContentType
		}
		h := n.handler(req.Method)
		if !h.IsSet() {
			return Handler{}, NoHandler
		}
		return h, UriMatched
	}

	st := &resolveState{
		req:  req,
		sc:   token.NewScanner(uri, token.URI),
		mode: modeResolve,
	}
	return r.resolveFrom(st, r.root)
}

// QueryAccept asks whether the URI's path prefix could be handled by
// this router without committing to a handler. Nodes marked with
// Accept succeed even when more path remains, and — matching the
// long-standing resolver behaviour — content-type exclusivity is not
// checked under accept intent.
func (r *Router) QueryAccept(method Method, uri string) Status {
	req := &Request{
		Method:      method,
		URI:         uri,
		ContentType: r.defaultContentType,
		Args:        newArgs(r.maxArgs + 1),
	}
	st := &resolveState{
		req:  req,
		sc:   token.NewScanner(uri, token.URI),
		mode: modeAccept,
	}
	_, status := r.resolveFrom(st, r.root)

	return status
}

// Routes reports the number of attached handlers.
func (r *Router) Routes() int { return r.routes }

// MaxArgs reports the widest named-parameter count across all compiled
// patterns; resolve-time argument buffers are pre-sized to it (plus one
// for a wildcard capture).
func (r *Router) MaxArgs() int { return r.maxArgs }

// PoolInfo is a snapshot of the router's arena usage, for embedded hosts
// watching memory.
type PoolInfo struct {
	Strings   arena.Info // interned-string arena
	Nodes     int
	Literals  int
	Slots     int
	Externals int
}

// PoolInfo returns the current arena usage snapshot.
func (r *Router) PoolInfo() PoolInfo {
	return PoolInfo{
		Strings:   r.strings.Info(),
		Nodes:     r.nodes.Len(),
		Literals:  r.lits.Len(),
		Slots:     r.slots.Len(),
		Externals: r.exts.Len(),
	}
}

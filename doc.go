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

// Package router is a REST URI routing core: it compiles URI-pattern
// endpoints with typed path parameters into a compact decision graph,
// and at request time matches a (method, uri, content-type) tuple to a
// handler while extracting typed arguments from the path.
//
// It is designed for embedded and server-side environments where
// allocation must be bounded, the routing tree is built once and queried
// many times, and the routing decision is O(path segments) with no
// per-request regex work.
//
// # Key Features
//
//   - Typed path parameters: /api/bus/:id(integer|string)/devices
//   - Trailing '*' wildcard capturing the URI remainder as _url
//   - Case-insensitive segment matching
//   - Arena-backed graph: all router memory in pool pages, bounded and
//     released together
//   - Per-method handler tables with an ANY filler
//   - Sub-router delegation (externals) and accept-queries
//   - Exclusive content-type gating per node
//   - Static fast path for literal-only endpoints
//   - Optional OpenTelemetry metrics and tracing
//   - Declarative YAML route manifests
//
// # Constructor Pattern
//
// New() returns *Router without an error: the router is a plain data
// structure and construction cannot fail. Options that do stand up
// external resources (metrics exporters) panic on invalid configuration,
// surfacing mistakes during development. All options use the "With"
// prefix.
//
// # Quick Start
//
//	r := router.New()
//
//	r.On("/api/devices").GET(func(req *router.Request) int {
//	    // list devices
//	    return 200
//	})
//
//	r.On("/api/bus/i2c/:bus(integer)/devices").GET(func(req *router.Request) int {
//	    bus, _ := req.Args.Int("bus")
//	    _ = bus
//	    return 200
//	})
//
//	req := r.Resolve(router.MethodGet, "/api/bus/i2c/3/devices")
//	if req.OK() {
//	    req.Dispatch()
//	}
//
// # Error Handling
//
// The routing surface never panics and never returns Go errors: every
// outcome is a Status on a returned structure. Build-time pattern errors
// stick to the NodeHandle — chained calls after a failure are no-ops —
// and are inspected with Error or cleared with Catch:
//
//	r.On("/api/bus/:id(integer)").GET(h1)
//	r.On("/api/bus/:id(string)").GET(h2).Catch(func(s router.Status) {
//	    // s == router.AmbiguousParameter
//	})
//
// # Concurrency
//
// Build on one goroutine, then resolve from any number of goroutines.
// The graph is immutable after building; per-request state lives in the
// returned Request. To change routes, build a new Router and swap the
// reference.
package router

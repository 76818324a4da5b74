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
	"io"
	"log/slog"
)

// highArgCount is the parameter count above which a diagnostic is
// emitted: routes this wide usually indicate an API design problem, and
// they widen every resolve-time argument buffer.
const highArgCount = 8

// noopLogger is a singleton no-op logger for hosts that want a
// *slog.Logger but have logging disabled. The router itself never logs.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger { return noopLogger }

// DiagnosticEvent represents a router diagnostic or anomaly.
//
// Diagnostic events are optional — the router functions correctly
// whether they are collected or not. They provide visibility into build
// edge cases for observability systems; the core itself never logs.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered fires when a handler is attached.
	DiagRouteRegistered DiagnosticKind = "route_registered"
	// DiagPatternRejected fires when a pattern fails to compile.
	DiagPatternRejected DiagnosticKind = "pattern_rejected"
	// DiagHighArgCount fires when a pattern pushes the router's maximum
	// parameter count above highArgCount.
	DiagHighArgCount DiagnosticKind = "route_arg_count_high"
	// DiagExternalRegistered fires when a sub-router delegate is added.
	DiagExternalRegistered DiagnosticKind = "external_registered"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, trace events, or ignore them.
type DiagnosticHandler interface {
	HandleDiagnostic(event DiagnosticEvent)
}

// DiagnosticHandlerFunc adapts a function to DiagnosticHandler.
type DiagnosticHandlerFunc func(event DiagnosticEvent)

// HandleDiagnostic calls the function.
func (f DiagnosticHandlerFunc) HandleDiagnostic(event DiagnosticEvent) { f(event) }

// diag emits a diagnostic event if a handler is configured.
func (r *Router) diag(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.HandleDiagnostic(DiagnosticEvent{
		Kind:    kind,
		Message: message,
		Fields:  fields,
	})
}

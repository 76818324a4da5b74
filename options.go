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

// WithPageSize sets the arena page size in bytes for the router's
// interned-string storage. Embedded hosts tune this to their memory
// budget; the default is arena.DefaultPageSize (512).
func WithPageSize(bytes int) Option {
	return func(r *Router) {
		if bytes > 0 {
			r.pageSize = bytes
		}
	}
}

// WithDefaultContentType sets the media type assumed for requests that
// do not state one. The default is "application/json".
func WithDefaultContentType(contentType string) Option {
	return func(r *Router) {
		if contentType != "" {
			r.defaultContentType = contentType
		}
	}
}

// WithDefaultHandler sets the fallback handler placed on requests that
// fail to resolve. Accepts the same callable shapes as the method
// attachers.
func WithDefaultHandler(handler any) Option {
	return func(r *Router) {
		if h, ok := asHandler(handler); ok {
			r.defaultHandler = h
		}
	}
}

// WithDiagnostics sets a diagnostic handler for the router.
//
// Diagnostic events are optional informational events that may indicate
// configuration issues. The router functions correctly whether
// diagnostics are collected or not.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.New(router.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}

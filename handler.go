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

import "reflect"

// HandlerFunc is the typical handler shape: it receives the resolved
// request and returns an HTTP status code for the embedding bridge to
// answer with.
type HandlerFunc func(*Request) int

type handlerKind uint8

const (
	handlerNone handlerKind = iota
	handlerZeroArg
	handlerWithRequest
	handlerWithArgs
)

// Handler is a tag-dispatched callable bound to a (node, method) pair.
// Three callable shapes are accepted:
//
//	func() int                  — zero-argument
//	func(*Request) int          — request-aware (the common case)
//	func(*Request, Args) int    — request plus captured arguments
//
// The zero Handler is unset.
type Handler struct {
	kind   handlerKind
	fn0    func() int
	fnReq  HandlerFunc
	fnArgs func(*Request, Args) int
}

// IsSet reports whether the handler holds a callable.
func (h Handler) IsSet() bool { return h.kind != handlerNone }

// Call invokes the handler for the given request and returns its HTTP
// status code. Calling an unset handler returns the request status's
// HTTP mapping.
func (h Handler) Call(r *Request) int {
	switch h.kind {
	case handlerZeroArg:
		return h.fn0()
	case handlerWithRequest:
		return h.fnReq(r)
	case handlerWithArgs:
		return h.fnArgs(r, r.Args)
	default:
		return r.Status.HTTPStatus()
	}
}

// asHandler normalizes the callable shapes accepted by the attachment
// DSL into a Handler. The boolean reports whether v was acceptable.
func asHandler(v any) (Handler, bool) {
	switch fn := v.(type) {
	case nil:
		return Handler{}, false
	case Handler:
		return fn, fn.IsSet()
	case func() int:
		return Handler{kind: handlerZeroArg, fn0: fn}, true
	case func(*Request) int:
		return Handler{kind: handlerWithRequest, fnReq: fn}, true
	case HandlerFunc:
		return Handler{kind: handlerWithRequest, fnReq: fn}, true
	case func(*Request, Args) int:
		return Handler{kind: handlerWithArgs, fnArgs: fn}, true
	default:
		return Handler{}, false
	}
}

// same reports whether two handlers are the same attachment. Go function
// values only compare against nil, so identity uses the code pointer —
// re-attaching the same function to an occupied slot is idempotent while
// a different function reports Duplicate.
func (h Handler) same(rhs Handler) bool {
	if h.kind != rhs.kind {
		return false
	}
	switch h.kind {
	case handlerZeroArg:
		return reflect.ValueOf(h.fn0).Pointer() == reflect.ValueOf(rhs.fn0).Pointer()
	case handlerWithRequest:
		return reflect.ValueOf(h.fnReq).Pointer() == reflect.ValueOf(rhs.fnReq).Pointer()
	case handlerWithArgs:
		return reflect.ValueOf(h.fnArgs).Pointer() == reflect.ValueOf(rhs.fnArgs).Pointer()
	default:
		return true
	}
}

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

import "net/http"

// Status is the complete observable result surface of the router.
// Positive values are successes, negative values are failures, zero means
// "not yet resolved". The router never panics and never returns errors
// through any other channel: every outcome is a Status on a returned
// structure.
type Status int16

const (
	// UriMatched: the URI resolved to a node with a handler for the
	// request method.
	UriMatched Status = 1
	// UriMatchedWildcard: a trailing '*' consumed the URI remainder.
	UriMatchedWildcard Status = 2
	// UriAccepted: an accept-query succeeded.
	UriAccepted Status = 3

	// NoHandler: the path matched a node but no handler is bound for the
	// request method.
	NoHandler Status = -403
	// NoEndpoint: no node matches the path.
	NoEndpoint Status = -404
	// UnsupportedContentType: an exclusive content-type filter rejected
	// the request.
	UnsupportedContentType Status = -405
	// Duplicate: a handler is already bound for this (node, method).
	Duplicate Status = -406

	// InvalidParameterType: a path value does not satisfy the declared
	// parameter type mask.
	InvalidParameterType Status = -501
	// MissingParameter: a required argument was not captured.
	MissingParameter Status = -502
	// AmbiguousParameter: two patterns disagree on the type of the
	// same-position parameter.
	AmbiguousParameter Status = -503
	// ExpectedPathSeparator: a '/' was expected between segments.
	ExpectedPathSeparator Status = -504
	// ExpectedEof: trailing input after a complete pattern (for example
	// segments after a wildcard).
	ExpectedEof Status = -505
	// InvalidType: a parameter declares an unknown type name.
	InvalidType Status = -506
	// Syntax: the pattern violates the pattern grammar.
	Syntax Status = -507
	// Internal: a bug in the router.
	Internal Status = -508
	// BadString: a string pool reference is invalid.
	BadString Status = -509
	// NullRoot: an operation was invoked on a handle with no node.
	NullRoot Status = -510
	// ExpectedIdentifier: a parameter or type name was expected.
	ExpectedIdentifier Status = -511
	// ExpectedString: a textual segment was expected.
	ExpectedString Status = -512
)

// OK reports whether the status is a success.
func (s Status) OK() bool { return s > 0 }

// String describes the status for humans.
func (s Status) String() string {
	switch s {
	case UriMatched:
		return "matched"
	case UriMatchedWildcard:
		return "matched wildcard"
	case UriAccepted:
		return "accepted"
	case NoHandler:
		return "endpoint doesnt support requests for given http verb"
	case NoEndpoint:
		return "no matching endpoint"
	case UnsupportedContentType:
		return "unsupported content type"
	case Duplicate:
		return "endpoint already exists"
	case InvalidParameterType:
		return "parameter type mismatch"
	case MissingParameter:
		return "missing expected parameter"
	case AmbiguousParameter:
		return "ambiguous parameter type in endpoint declaration"
	case ExpectedPathSeparator:
		return "expected path separator"
	case ExpectedEof:
		return "expected end of input"
	case InvalidType:
		return "invalid type"
	case Syntax:
		return "syntax error"
	case Internal:
		return "internal error"
	case BadString:
		return "internal error: bad string reference"
	case NullRoot:
		return "invalid root node"
	case ExpectedIdentifier:
		return "expected identifier"
	case ExpectedString:
		return "expected string"
	default:
		return "unspecified error"
	}
}

// HTTPStatus maps a routing status to the HTTP status code an embedding
// bridge should answer with.
func (s Status) HTTPStatus() int {
	switch s {
	case UriMatched, UriMatchedWildcard, UriAccepted:
		return http.StatusOK
	case NoEndpoint, NoHandler:
		return http.StatusNotFound
	case InvalidParameterType, MissingParameter:
		return http.StatusBadRequest
	case UnsupportedContentType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

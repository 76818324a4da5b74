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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusiveContentTypeRejectsMismatch(t *testing.T) {
	r := New()
	h := r.On("/api/config/cloud-init").
		WithContentType("application/x-yaml", true).
		GET(handlerReturning(200))
	require.Zero(t, h.Error())

	// Default content type is application/json — rejected.
	req := r.Resolve(MethodGet, "/api/config/cloud-init")
	assert.Equal(t, UnsupportedContentType, req.Status)
	assert.False(t, req.OK())
	assert.Equal(t, 415, req.Status.HTTPStatus())
}

func TestExclusiveContentTypeAcceptsMatch(t *testing.T) {
	r := New()
	r.On("/api/config/cloud-init").
		WithContentType("application/x-yaml", true).
		GET(handlerReturning(200))

	req := r.ResolveContent(MethodGet, "/api/config/cloud-init", "application/x-yaml")
	assert.Equal(t, UriMatched, req.Status)

	// Media types compare case-insensitively.
	req = r.ResolveContent(MethodGet, "/api/config/cloud-init", "Application/X-YAML")
	assert.Equal(t, UriMatched, req.Status)
}

func TestNonExclusiveContentTypeIsAdvisory(t *testing.T) {
	r := New()
	r.On("/api/report").
		WithContentType("text/csv", false).
		GET(handlerReturning(200))

	// Without the exclusive flag the filter never rejects.
	req := r.Resolve(MethodGet, "/api/report")
	assert.Equal(t, UriMatched, req.Status)
}

func TestExclusiveContentTypeOnIntermediateNode(t *testing.T) {
	r := New()
	h := r.On("/api/yaml").WithContentType("application/x-yaml", true)
	require.Zero(t, h.Error())
	h.On("doc").GET(handlerReturning(200))

	// The gate applies when the walk passes through the filtered node.
	req := r.Resolve(MethodGet, "/api/yaml/doc")
	assert.Equal(t, UnsupportedContentType, req.Status)

	req = r.ResolveContent(MethodGet, "/api/yaml/doc", "application/x-yaml")
	assert.Equal(t, UriMatched, req.Status)
}

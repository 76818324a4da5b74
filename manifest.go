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
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Static errors for manifest loading.
var (
	// ErrManifestPath is returned for a route entry with no path.
	ErrManifestPath = errors.New("manifest route missing path")

	// ErrManifestHandler is returned when a route names a handler absent
	// from the registry.
	ErrManifestHandler = errors.New("manifest references unknown handler")

	// ErrManifestPattern is returned when a route's pattern fails to
	// compile.
	ErrManifestPattern = errors.New("manifest pattern rejected")
)

// Manifest is a declarative route table, typically loaded from a YAML
// document shipped next to the host's configuration:
//
//	default_content_type: application/json
//	routes:
//	  - path: /api/devices
//	    method: GET
//	    handler: list_devices
//	  - path: /api/config/cloud-init
//	    method: GET
//	    handler: cloud_init
//	    content_type: application/x-yaml
//	    exclusive: true
//	  - path: /api
//	    accept: true
type Manifest struct {
	DefaultContentType string          `yaml:"default_content_type"`
	Routes             []ManifestRoute `yaml:"routes"`
}

// ManifestRoute is one declarative endpoint.
type ManifestRoute struct {
	Path        string `yaml:"path"`
	Method      string `yaml:"method"`  // empty or ANY binds all unbound methods
	Handler     string `yaml:"handler"` // registry key; empty configures the node only
	ContentType string `yaml:"content_type"`
	Exclusive   bool   `yaml:"exclusive"`
	Accept      bool   `yaml:"accept"`
}

// LoadManifest parses a YAML route manifest and builds its routes
// against the handler registry. Loading stops at the first failing
// entry; entries built before the failure remain registered.
func (r *Router) LoadManifest(data []byte, handlers map[string]HandlerFunc) error {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	if m.DefaultContentType != "" {
		r.defaultContentType = m.DefaultContentType
	}

	for _, route := range m.Routes {
		if route.Path == "" {
			return ErrManifestPath
		}

		h := r.On(route.Path)
		if route.ContentType != "" {
			h.WithContentType(route.ContentType, route.Exclusive)
		}
		if route.Accept {
			h.Accept()
		}
		if route.Handler != "" {
			fn, ok := handlers[route.Handler]
			if !ok {
				return fmt.Errorf("%w: %q", ErrManifestHandler, route.Handler)
			}
			h.Method(ParseMethod(route.Method), fn)
		}

		if status := h.Error(); status < 0 {
			return fmt.Errorf("%w: %s: %s", ErrManifestPattern, route.Path, status)
		}
	}

	return nil
}

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

// Package compiler provides the static fast path for literal-only
// endpoints: a case-folded full-path hash table guarded by a bloom
// filter.
//
// Endpoints whose pattern contains no parameters and no wildcard are
// indexed here at build time in addition to the decision graph. At
// resolve time the router consults the table before walking the graph;
// a hit skips the per-segment walk entirely, a bloom-filter miss skips
// even the map probe.
package compiler

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

package compiler

import "strings"

// FNV-1a constants for inline hashing.
//
// The hash is computed inline instead of through hash/fnv to keep the
// lookup path allocation-free: no hash.Hash64 interface dispatch, no
// []byte conversion of the path, and case folding happens during the
// same pass over the bytes.
const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

// bloomThreshold is the table size below which the bloom filter is
// skipped: for a handful of routes the filter costs more than the map
// probe it saves.
const bloomThreshold = 10

// Table is the exact full-path lookup for literal-only endpoints.
// Paths are hashed ASCII case-folded, matching the router's
// case-insensitive segment comparison; hash collisions chain and verify
// with a fold compare.
//
// The table is written only during the build phase and read without
// locks afterwards, same as the rest of the routing graph.
type Table struct {
	entries map[uint64]*entry
	bloom   *BloomFilter
	count   int
}

type entry struct {
	path  string // registration spelling, fold-compared on hit
	value any
	next  *entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[uint64]*entry, 8)}
}

// Len reports the number of registered paths.
func (t *Table) Len() int { return t.count }

// Add registers a value under a full path. Re-adding a path (in any
// case spelling) replaces its value.
func (t *Table) Add(path string, value any) {
	h := foldHash(path)

	for e := t.entries[h]; e != nil; e = e.next {
		if strings.EqualFold(e.path, path) {
			e.value = value
			return
		}
	}

	t.entries[h] = &entry{path: path, value: value, next: t.entries[h]}
	t.count++

	if t.count == bloomThreshold {
		// Crossing the threshold: build the filter over everything seen.
		t.bloom = NewBloomFilter(1024, 3)
		for hash := range t.entries {
			t.bloom.Add(hash)
		}
	} else if t.bloom != nil {
		t.bloom.Add(h)
	}
}

// Lookup returns the value registered under the path, or nil. Matching
// is ASCII case-insensitive.
func (t *Table) Lookup(path string) any {
	if t.count == 0 {
		return nil
	}

	h := foldHash(path)

	if t.bloom != nil && !t.bloom.Test(h) {
		return nil
	}
	for e := t.entries[h]; e != nil; e = e.next {
		if strings.EqualFold(e.path, path) {
			return e.value
		}
	}
	return nil
}

// foldHash computes the FNV-1a hash of the ASCII-lowercased path in one
// pass, no allocation.
func foldHash(path string) uint64 {
	hash := uint64(fnvOffsetBasis)
	for i := range len(path) {
		c := path[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		hash ^= uint64(c)
		hash *= fnvPrime
	}
	return hash
}

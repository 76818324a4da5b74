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

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAddLookup(t *testing.T) {
	table := NewTable()
	table.Add("/api/devices", 1)
	table.Add("/api/status", 2)

	assert.Equal(t, 1, table.Lookup("/api/devices"))
	assert.Equal(t, 2, table.Lookup("/api/status"))
	assert.Nil(t, table.Lookup("/api/missing"))
	assert.Equal(t, 2, table.Len())
}

func TestTableCaseInsensitive(t *testing.T) {
	table := NewTable()
	table.Add("/API/Devices", "v")

	assert.Equal(t, "v", table.Lookup("/api/devices"))
	assert.Equal(t, "v", table.Lookup("/API/DEVICES"))
}

func TestTableReplaceOnReAdd(t *testing.T) {
	table := NewTable()
	table.Add("/api/devices", 1)
	table.Add("/API/DEVICES", 2)

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 2, table.Lookup("/api/devices"))
}

func TestTableEmptyLookup(t *testing.T) {
	table := NewTable()
	assert.Nil(t, table.Lookup("/anything"))
}

func TestTableBloomEngagesAtThreshold(t *testing.T) {
	table := NewTable()
	paths := make([]string, 0, 25)
	for i := range 25 {
		p := fmt.Sprintf("/api/route/%02d", i)
		paths = append(paths, p)
		table.Add(p, i)
	}
	require.NotNil(t, table.bloom, "filter builds once the threshold is crossed")

	// Every registered path still resolves after the filter engages.
	for i, p := range paths {
		assert.Equal(t, i, table.Lookup(p), p)
	}
	assert.Nil(t, table.Lookup("/api/route/99"))
}

func TestBloomFilterNegatives(t *testing.T) {
	bf := NewBloomFilter(1024, 3)

	in := []uint64{foldHash("/a"), foldHash("/b"), foldHash("/c")}
	for _, h := range in {
		bf.Add(h)
	}
	for _, h := range in {
		assert.True(t, bf.Test(h), "added hashes always test positive")
	}

	misses := 0
	for i := range 1000 {
		if !bf.Test(foldHash(fmt.Sprintf("/miss/%d", i))) {
			misses++
		}
	}
	// A 1024-bit filter with 3 entries gives a vanishing false-positive
	// rate; the overwhelming majority must be rejected.
	assert.Greater(t, misses, 990)
}

func TestBloomFilterDefaults(t *testing.T) {
	bf := NewBloomFilter(0, 0)
	bf.Add(1)
	assert.True(t, bf.Test(1))
}

func TestFoldHash(t *testing.T) {
	assert.Equal(t, foldHash("/API/Devices"), foldHash("/api/devices"))
	assert.NotEqual(t, foldHash("/a"), foldHash("/b"))
}

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

// BloomFilter answers negative membership queries for the static path
// table:
//   - "definitely NOT in the set" (100% accurate)
//   - "possibly in the set" (may have false positives)
//
// Resolution consults it before the hash map so URIs that cannot be
// static endpoints skip the map probe entirely. Derived hash functions
// are produced by XOR-folding seeds into one precomputed base hash, so
// membership tests cost no additional hashing.
type BloomFilter struct {
	bits  []uint64 // bit array, 64 bits per word
	size  uint64   // total number of bits
	seeds []uint64 // per-function fold seeds
}

// NewBloomFilter creates a filter with the given bit count and number of
// derived hash functions.
func NewBloomFilter(size uint64, numHashFuncs int) *BloomFilter {
	if size == 0 {
		size = 1024
	}
	if numHashFuncs <= 0 {
		numHashFuncs = 3
	}

	bf := &BloomFilter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := range numHashFuncs {
		bf.seeds[i] = uint64(i + 1)
	}

	return bf
}

// position folds a seed into the base hash and maps it onto the bit
// array.
func (bf *BloomFilter) position(baseHash, seed uint64) uint64 {
	return (baseHash ^ seed) % bf.size
}

// Add records a precomputed base hash in the filter.
func (bf *BloomFilter) Add(baseHash uint64) {
	for _, seed := range bf.seeds {
		pos := bf.position(baseHash, seed)
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether the base hash might be in the set. The first
// unset bit exits early — misses are the common case in routing, and a
// miss is a guaranteed true negative.
func (bf *BloomFilter) Test(baseHash uint64) bool {
	for _, seed := range bf.seeds {
		pos := bf.position(baseHash, seed)
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}

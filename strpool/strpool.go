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

// Package strpool implements a deduplicating string store backed by the
// arena.
//
// Each inserted string receives a stable integer ID. IDs are monotonic,
// never reused, and deletion is not supported — the pool only grows during
// the router's build phase. Literal identifiers throughout the routing
// graph carry pool IDs instead of string values, so segment comparison
// during compilation is an integer compare.
//
// Case-insensitive lookup is a first-class operation because HTTP paths
// and pattern identifiers match case-insensitively.
package strpool

import (
	"unsafe"

	"restive.dev/router/arena"
)

// NotFound is returned by Find when no entry matches.
const NotFound = -1

// Split flags.
const (
	// SplitKeepEmpty keeps zero-length substrings between consecutive
	// separators.
	SplitKeepEmpty uint = 0
	// SplitIgnoreEmpty drops zero-length substrings.
	SplitIgnoreEmpty uint = 1
)

// Compare is a string ordering function in the strcmp style: negative,
// zero, or positive. Only the zero/non-zero distinction matters to the
// pool.
type Compare func(a, b string) int

// Exact compares byte-for-byte.
func Exact(a, b string) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// NoCase compares ASCII case-insensitively. URI segments and pattern
// identifiers are ASCII; non-ASCII bytes compare verbatim.
func NoCase(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := range n {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			return int(ca) - int(cb)
		}
	}
	return len(a) - len(b)
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Pool is the deduplicating string store.
type Pool struct {
	data    *arena.Pool
	entries []string // views into arena pages, indexed by ID
}

// New creates a pool with the default arena page size.
func New() *Pool { return NewWithPageSize(arena.DefaultPageSize) }

// NewWithPageSize creates a pool whose backing arena uses the given page
// size.
func NewWithPageSize(pageSize int) *Pool {
	return &Pool{data: arena.New(pageSize)}
}

// Insert stores s and returns its fresh ID. No dedup check is performed;
// repeated inserts of equal strings get distinct IDs.
func (p *Pool) Insert(s string) int {
	id := len(p.entries)
	p.entries = append(p.entries, p.store(s))

	return id
}

// InsertDistinct returns the ID of an existing entry comparing equal to s
// under cmp, or inserts s and returns the fresh ID.
func (p *Pool) InsertDistinct(s string, cmp Compare) int {
	if id := p.Find(s, cmp); id != NotFound {
		return id
	}
	return p.Insert(s)
}

// Get returns the string with the given ID. The returned string is valid
// for the lifetime of the pool. Out-of-range IDs return "".
func (p *Pool) Get(id int) string {
	if id < 0 || id >= len(p.entries) {
		return ""
	}
	return p.entries[id]
}

// Strlen returns the length of the interned string, or 0 for an
// out-of-range ID.
func (p *Pool) Strlen(id int) int { return len(p.Get(id)) }

// Find scans for an entry comparing equal to s under cmp and returns its
// ID, or NotFound.
func (p *Pool) Find(s string, cmp Compare) int {
	for id, e := range p.entries {
		if cmp(e, s) == 0 {
			return id
		}
	}
	return NotFound
}

// FindExact finds a byte-for-byte match.
func (p *Pool) FindExact(s string) int { return p.Find(s, Exact) }

// FindNoCase finds an ASCII case-insensitive match.
func (p *Pool) FindNoCase(s string) int { return p.Find(s, NoCase) }

// Count reports the number of interned strings.
func (p *Pool) Count() int { return len(p.entries) }

// ByteLength reports the bytes used by all interned strings combined.
func (p *Pool) ByteLength() int { return p.data.Bytes() }

// Info returns the backing arena's usage snapshot.
func (p *Pool) Info() arena.Info { return p.data.Info() }

// Split produces a new pool containing the substrings of s delimited by
// sep. With SplitIgnoreEmpty, zero-length substrings (leading, trailing,
// or between consecutive separators) are dropped.
func Split(sep byte, flags uint, s string) *Pool {
	p := New()
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != sep {
			continue
		}
		if i > start || flags&SplitIgnoreEmpty == 0 {
			p.Insert(s[start:i])
		}
		start = i + 1
	}
	return p
}

// store copies s into the arena and returns a string view of the arena
// bytes. Arena pages never move, so the view stays valid for the pool's
// lifetime.
func (p *Pool) store(s string) string {
	if len(s) == 0 {
		return ""
	}
	buf, _ := p.data.Alloc(len(s))
	copy(buf, s)

	return unsafe.String(&buf[0], len(buf))
}

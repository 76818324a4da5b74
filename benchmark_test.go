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
	"fmt"
	"testing"
)

func benchRouter() *Router {
	r := New()
	r.On("/api/devices").GET(handlerReturning(200))
	r.On("/api/status").GET(handlerReturning(200))
	r.On("/api/bus/i2c/:bus(integer)/devices").GET(handlerReturning(200))
	r.On("/api/echo/:msg(string)").GET(handlerReturning(200))
	r.On("/api/files/*").GET(handlerReturning(200))
	for i := range 20 {
		r.On(fmt.Sprintf("/api/sensors/s%02d", i)).GET(handlerReturning(200))
	}
	return r
}

func BenchmarkResolveStatic(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if r.Resolve(MethodGet, "/api/devices").Status != UriMatched {
			b.Fatal("no match")
		}
	}
}

func BenchmarkResolveParam(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if r.Resolve(MethodGet, "/api/bus/i2c/3/devices").Status != UriMatched {
			b.Fatal("no match")
		}
	}
}

func BenchmarkResolveWildcard(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if r.Resolve(MethodGet, "/api/files/css/app.css").Status != UriMatchedWildcard {
			b.Fatal("no match")
		}
	}
}

func BenchmarkResolveMiss(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if r.Resolve(MethodGet, "/api/not/here").Status != NoEndpoint {
			b.Fatal("unexpected match")
		}
	}
}

func BenchmarkResolveParallel(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r.Resolve(MethodGet, "/api/bus/i2c/3/devices")
		}
	})
}

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for range b.N {
		r := New()
		r.On("/api/bus/i2c/:bus(integer)/devices").GET(handlerReturning(200))
	}
}

func BenchmarkQueryAccept(b *testing.B) {
	r := New()
	r.On("/api").Accept().On("echo/:msg(string)").GET(handlerReturning(200))
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if r.QueryAccept(MethodGet, "/api/anything/below") != UriAccepted {
			b.Fatal("not accepted")
		}
	}
}

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
	"github.com/stretchr/testify/suite"
)

// handlerReturning builds a handler with a distinguishable result code.
func handlerReturning(code int) func(*Request) int {
	return func(*Request) int { return code }
}

// RouterTestSuite covers endpoint building and resolution end to end.
type RouterTestSuite struct {
	suite.Suite

	r *Router
}

func (suite *RouterTestSuite) SetupTest() {
	suite.r = New()
}

func (suite *RouterTestSuite) TestStaticEndpoint() {
	suite.r.On("/api/devices").GET(handlerReturning(200))

	req := suite.r.Resolve(MethodGet, "/api/devices")
	suite.Equal(UriMatched, req.Status)
	suite.True(req.OK())
	suite.Zero(req.Args.Len())
	suite.Equal(200, req.Dispatch())
}

func (suite *RouterTestSuite) TestStringParameterKeepsRawSegment() {
	suite.r.On("/api/echo/:msg(string)").GET(handlerReturning(200))

	// Spaces are preserved as-is; the router does not percent-decode.
	req := suite.r.Resolve(MethodGet, "/api/echo/Colin MacKenzie")
	suite.Equal(UriMatched, req.Status)

	msg, err := req.Args.String("msg")
	suite.NoError(err)
	suite.Equal("Colin MacKenzie", msg)
}

func (suite *RouterTestSuite) TestIntegerParameter() {
	suite.r.On("/api/bus/i2c/:bus(integer)/devices").GET(handlerReturning(200))

	req := suite.r.Resolve(MethodGet, "/api/bus/i2c/3/devices")
	suite.Equal(UriMatched, req.Status)

	bus, err := req.Args.Int("bus")
	suite.NoError(err)
	suite.Equal(int64(3), bus)
}

func (suite *RouterTestSuite) TestDottedVersionSegment() {
	suite.r.On("/api/v1.0/echo/:msg(string)").GET(handlerReturning(200))

	req := suite.r.Resolve(MethodGet, "/api/v1.0/echo/x")
	suite.Equal(UriMatched, req.Status)

	msg, err := req.Args.String("msg")
	suite.NoError(err)
	suite.Equal("x", msg)
}

func (suite *RouterTestSuite) TestPrefixWithoutHandlerIsNoHandler() {
	suite.r.On("/api/bus/i2c/:bus(integer)/devices").GET(handlerReturning(200))

	req := suite.r.Resolve(MethodGet, "/api/bus/i2c")
	suite.Equal(NoHandler, req.Status)
	suite.False(req.OK())
}

func (suite *RouterTestSuite) TestUnknownPathIsNoEndpoint() {
	suite.r.On("/api/devices").GET(handlerReturning(200))

	req := suite.r.Resolve(MethodGet, "/api/unknown")
	suite.Equal(NoEndpoint, req.Status)
}

func (suite *RouterTestSuite) TestCaseInsensitiveSegments() {
	suite.r.On("/API/Devices").GET(handlerReturning(200))

	suite.Equal(UriMatched, suite.r.Resolve(MethodGet, "/api/devices").Status)
	suite.Equal(UriMatched, suite.r.Resolve(MethodGet, "/ApI/DEVICES").Status)
}

func (suite *RouterTestSuite) TestRelativeChaining() {
	devs := suite.r.On("/api/devices")
	devs.On("lights").GET(handlerReturning(201))
	devs.On("doors").GET(handlerReturning(202))
	// A leading '/' restarts from the root.
	devs.On("/api/status").GET(handlerReturning(203))

	suite.Equal(201, suite.r.Resolve(MethodGet, "/api/devices/lights").Dispatch())
	suite.Equal(202, suite.r.Resolve(MethodGet, "/api/devices/doors").Dispatch())
	suite.Equal(203, suite.r.Resolve(MethodGet, "/api/status").Dispatch())
}

func (suite *RouterTestSuite) TestMethodTable() {
	suite.r.On("/api/led").
		GET(handlerReturning(200)).
		PUT(handlerReturning(201)).
		DELETE(handlerReturning(202))

	suite.Equal(200, suite.r.Resolve(MethodGet, "/api/led").Dispatch())
	suite.Equal(201, suite.r.Resolve(MethodPut, "/api/led").Dispatch())
	suite.Equal(202, suite.r.Resolve(MethodDelete, "/api/led").Dispatch())
	suite.Equal(NoHandler, suite.r.Resolve(MethodPost, "/api/led").Status)
}

func (suite *RouterTestSuite) TestAnyFillsUnboundMethods() {
	suite.r.On("/api/led").GET(handlerReturning(200))
	suite.r.On("/api/led").ANY(handlerReturning(299))

	// ANY never overwrites an existing binding.
	suite.Equal(200, suite.r.Resolve(MethodGet, "/api/led").Dispatch())
	suite.Equal(299, suite.r.Resolve(MethodPost, "/api/led").Dispatch())
	suite.Equal(299, suite.r.Resolve(MethodOptions, "/api/led").Dispatch())
}

func (suite *RouterTestSuite) TestRouterLevelSugar() {
	suite.r.GET("/a", handlerReturning(200))
	suite.r.POST("/a", handlerReturning(201))
	suite.r.PUT("/b", handlerReturning(202))
	suite.r.PATCH("/b", handlerReturning(203))
	suite.r.DELETE("/c", handlerReturning(204))
	suite.r.OPTIONS("/c", handlerReturning(205))
	suite.r.ANY("/d", handlerReturning(206))

	suite.Equal(200, suite.r.Resolve(MethodGet, "/a").Dispatch())
	suite.Equal(201, suite.r.Resolve(MethodPost, "/a").Dispatch())
	suite.Equal(202, suite.r.Resolve(MethodPut, "/b").Dispatch())
	suite.Equal(203, suite.r.Resolve(MethodPatch, "/b").Dispatch())
	suite.Equal(204, suite.r.Resolve(MethodDelete, "/c").Dispatch())
	suite.Equal(205, suite.r.Resolve(MethodOptions, "/c").Dispatch())
	suite.Equal(206, suite.r.Resolve(MethodPatch, "/d").Dispatch())
}

func (suite *RouterTestSuite) TestDefaultHandler() {
	suite.r.OnDefault(handlerReturning(500))
	suite.r.On("/api/devices").GET(handlerReturning(200))

	req := suite.r.Resolve(MethodGet, "/api/missing")
	suite.Equal(NoEndpoint, req.Status)
	suite.True(req.Handler.IsSet(), "failed requests carry the default handler")
	suite.Equal(500, req.Dispatch())
}

func (suite *RouterTestSuite) TestHandlerShapes() {
	called := 0
	suite.r.On("/zero").GET(func() int { called++; return 200 })
	suite.r.On("/req").GET(func(req *Request) int { return req.Status.HTTPStatus() })
	suite.r.On("/args/:id(integer)").GET(func(_ *Request, args Args) int {
		id, err := args.Int("id")
		suite.NoError(err)
		return int(id)
	})

	suite.Equal(200, suite.r.Resolve(MethodGet, "/zero").Dispatch())
	suite.Equal(1, called)
	suite.Equal(200, suite.r.Resolve(MethodGet, "/req").Dispatch())
	suite.Equal(42, suite.r.Resolve(MethodGet, "/args/42").Dispatch())
}

func (suite *RouterTestSuite) TestIntrospection() {
	suite.r.On("/api/devices").GET(handlerReturning(200))
	suite.r.On("/api/bus/:bus(integer)/dev/:dev(integer)").GET(handlerReturning(200))

	suite.Equal(2, suite.r.Routes())
	suite.Equal(2, suite.r.MaxArgs())

	info := suite.r.PoolInfo()
	suite.Positive(info.Nodes)
	suite.Positive(info.Literals)
	suite.Equal(2, info.Slots)
	suite.Positive(info.Strings.Bytes)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func TestTrailingSlashResolvesTerminal(t *testing.T) {
	r := New()
	r.On("/api/devices").GET(handlerReturning(200))

	req := r.Resolve(MethodGet, "/api/devices/")
	assert.Equal(t, UriMatched, req.Status)
}

func TestNumericLiteralSegment(t *testing.T) {
	r := New()
	r.On("/api/v2/42/info").GET(handlerReturning(200))

	// "v2" is an identifier, "42" a numeric literal matched by value.
	assert.Equal(t, UriMatched, r.Resolve(MethodGet, "/api/v2/42/info").Status)
	assert.Equal(t, NoEndpoint, r.Resolve(MethodGet, "/api/v2/41/info").Status)
}

func TestResolveOnEmptyRouter(t *testing.T) {
	r := New()

	req := r.Resolve(MethodGet, "/anything")
	assert.Equal(t, NoEndpoint, req.Status)
	assert.False(t, req.OK())
}

func TestRootResolve(t *testing.T) {
	r := New()
	r.On("/").GET(handlerReturning(200))

	require.Equal(t, UriMatched, r.Resolve(MethodGet, "/").Status)
}

func TestStaticFastPathAgreesWithWalk(t *testing.T) {
	r := New()
	r.On("/api/devices").GET(handlerReturning(200))
	r.On("/api/:kind(string)").PUT(handlerReturning(201))

	// The static table serves the literal-only endpoint; the graph walk
	// must agree for every method.
	assert.Equal(t, 200, r.Resolve(MethodGet, "/api/devices").Dispatch())
	assert.Equal(t, NoHandler, r.Resolve(MethodPost, "/api/devices").Status)
	assert.Equal(t, 201, r.Resolve(MethodPut, "/api/things").Dispatch())
}

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
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig struct {
	enabled     bool
	serviceName string
	tracer      trace.Tracer
	owned       *sdktrace.TracerProvider // shut down via ShutdownTracing
}

// WithTracing enables OpenTelemetry tracing. Each resolution runs inside
// a span carrying the method, URI and final routing status. The global
// tracer provider is used; pair with WithTracingTracerProvider or
// WithTracingProviderStdout to direct the spans elsewhere.
func WithTracing() Option {
	return func(r *Router) {
		r.tracing = &TracingConfig{
			enabled:     true,
			serviceName: "restive-router",
			tracer:      otel.Tracer(instrumentationName),
		}
	}
}

// WithTracingTracerProvider uses an externally managed TracerProvider.
// Implies WithTracing.
func WithTracingTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Router) {
		r.tracing = &TracingConfig{
			enabled:     true,
			serviceName: "restive-router",
			tracer:      tp.Tracer(instrumentationName),
		}
	}
}

// WithTracingProviderStdout traces to a stdout exporter
// (development/testing). Implies WithTracing.
func WithTracingProviderStdout() Option {
	return func(r *Router) {
		exporter, err := stdouttrace.New()
		if err != nil {
			panic(fmt.Sprintf("router: failed to initialize stdout tracing: %v", err))
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		r.tracing = &TracingConfig{
			enabled:     true,
			serviceName: "restive-router",
			tracer:      tp.Tracer(instrumentationName),
			owned:       tp,
		}
	}
}

// WithTracingServiceName sets the service name recorded on spans.
func WithTracingServiceName(name string) Option {
	return func(r *Router) {
		if r.tracing != nil && name != "" {
			r.tracing.serviceName = name
		}
	}
}

// start opens a resolution span, nil-safely. The returned span is nil
// when tracing is disabled.
func (t *TracingConfig) start(ctx context.Context, method Method, uri string) (context.Context, trace.Span) {
	if t == nil || !t.enabled {
		return ctx, nil
	}
	return t.tracer.Start(ctx, "router.resolve",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("service.name", t.serviceName),
			attribute.String("http.method", method.String()),
			attribute.String("url.path", uri),
		),
	)
}

// end closes a resolution span with the routing outcome.
func (t *TracingConfig) end(span trace.Span, status Status) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.Int("router.status", int(status)))
	if status.OK() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, status.String())
	}
	span.End()
}

// ShutdownTracing flushes and stops a router-owned tracer provider.
// No-op when tracing is disabled or externally managed.
func (r *Router) ShutdownTracing(ctx context.Context) error {
	if r.tracing == nil || r.tracing.owned == nil {
		return nil
	}
	return r.tracing.owned.Shutdown(ctx)
}

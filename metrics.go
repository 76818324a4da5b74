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
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsProvider represents the available metrics providers.
type MetricsProvider string

const (
	// PrometheusProvider exposes metrics through a Prometheus registry
	// (default). The router stays passive: it never starts a server —
	// mount MetricsHandler on the host's mux.
	PrometheusProvider MetricsProvider = "prometheus"
	// OTLPProvider pushes metrics over OTLP HTTP.
	OTLPProvider MetricsProvider = "otlp"
	// StdoutProvider periodically prints metrics to stdout
	// (development/testing).
	StdoutProvider MetricsProvider = "stdout"
)

// instrumentationName identifies this library to OpenTelemetry.
const instrumentationName = "restive.dev/router"

// MetricsConfig holds OpenTelemetry metrics configuration.
type MetricsConfig struct {
	enabled        bool
	serviceName    string
	serviceVersion string
	provider       MetricsProvider
	endpoint       string
	exportInterval time.Duration

	meterProvider metric.MeterProvider
	owned         *sdkmetric.MeterProvider // shut down via ShutdownMetrics
	registry      *promclient.Registry
	handler       http.Handler

	resolveCount    metric.Int64Counter
	resolveDuration metric.Float64Histogram
	routeCount      metric.Int64Counter
}

// WithMetrics enables OpenTelemetry metrics with the Prometheus
// provider. Resolution outcomes are counted and timed per method and
// status; route registrations are counted at build time.
func WithMetrics() Option {
	return func(r *Router) {
		config := &MetricsConfig{
			enabled:        true,
			serviceName:    "restive-router",
			serviceVersion: "1.0.0",
			provider:       PrometheusProvider,
			exportInterval: 30 * time.Second,
		}
		if err := config.initializeProvider(); err != nil {
			panic(fmt.Sprintf("router: failed to initialize metrics: %v", err))
		}
		r.metrics = config
	}
}

// WithMetricsProviderStdout switches the metrics provider to the stdout
// exporter. Implies WithMetrics.
func WithMetricsProviderStdout() Option {
	return func(r *Router) {
		if r.metrics == nil {
			WithMetrics()(r)
		}
		r.metrics.provider = StdoutProvider
		if err := r.metrics.initializeProvider(); err != nil {
			panic(fmt.Sprintf("router: failed to initialize stdout metrics: %v", err))
		}
	}
}

// WithMetricsProviderOTLP switches the metrics provider to the OTLP
// HTTP exporter with an optional endpoint URL (default
// http://localhost:4318). Implies WithMetrics.
func WithMetricsProviderOTLP(endpoint ...string) Option {
	return func(r *Router) {
		if r.metrics == nil {
			WithMetrics()(r)
		}
		r.metrics.provider = OTLPProvider
		if len(endpoint) > 0 && endpoint[0] != "" {
			r.metrics.endpoint = endpoint[0]
		} else if r.metrics.endpoint == "" {
			r.metrics.endpoint = "http://localhost:4318"
		}
		if err := r.metrics.initializeProvider(); err != nil {
			panic(fmt.Sprintf("router: failed to initialize OTLP metrics: %v", err))
		}
	}
}

// WithMetricsMeterProvider uses an externally managed MeterProvider
// instead of constructing one. Implies WithMetrics; useful in tests and
// hosts that own their telemetry pipeline.
func WithMetricsMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Router) {
		config := &MetricsConfig{
			enabled:        true,
			serviceName:    "restive-router",
			serviceVersion: "1.0.0",
			meterProvider:  mp,
		}
		if err := config.createInstruments(); err != nil {
			panic(fmt.Sprintf("router: failed to create metric instruments: %v", err))
		}
		r.metrics = config
	}
}

// WithMetricsServiceName sets the service name reported with metrics.
func WithMetricsServiceName(name string) Option {
	return func(r *Router) {
		if r.metrics != nil && name != "" {
			r.metrics.serviceName = name
		}
	}
}

// initializeProvider builds the configured exporter pipeline and the
// instruments.
func (m *MetricsConfig) initializeProvider() error {
	switch m.provider {
	case OTLPProvider:
		exporter, err := otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpointURL(m.endpoint))
		if err != nil {
			return fmt.Errorf("create otlp exporter: %w", err)
		}
		m.owned = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
				sdkmetric.WithInterval(m.exportInterval))),
		)
		m.registry = nil
		m.handler = nil

	case StdoutProvider:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("create stdout exporter: %w", err)
		}
		m.owned = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
				sdkmetric.WithInterval(m.exportInterval))),
		)
		m.registry = nil
		m.handler = nil

	default: // PrometheusProvider
		registry := promclient.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("create prometheus exporter: %w", err)
		}
		m.owned = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		m.registry = registry
		m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	m.meterProvider = m.owned

	return m.createInstruments()
}

// createInstruments builds the router's instruments on the configured
// provider.
func (m *MetricsConfig) createInstruments() error {
	meter := m.meterProvider.Meter(instrumentationName)

	var err error
	if m.resolveCount, err = meter.Int64Counter("router.resolve.count",
		metric.WithDescription("URI resolutions performed"),
	); err != nil {
		return err
	}
	if m.resolveDuration, err = meter.Float64Histogram("router.resolve.duration",
		metric.WithDescription("URI resolution latency"),
		metric.WithUnit("ms"),
	); err != nil {
		return err
	}
	if m.routeCount, err = meter.Int64Counter("router.routes.registered",
		metric.WithDescription("Handlers attached at build time"),
	); err != nil {
		return err
	}
	return nil
}

// on reports whether metrics are enabled, nil-safely.
func (m *MetricsConfig) on() bool { return m != nil && m.enabled }

// recordResolve records one resolution outcome.
func (m *MetricsConfig) recordResolve(ctx context.Context, method Method, status Status, d time.Duration) {
	if !m.on() {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("service.name", m.serviceName),
		attribute.String("http.method", method.String()),
		attribute.Int("router.status", int(status)),
	)
	m.resolveCount.Add(ctx, 1, attrs)
	m.resolveDuration.Record(ctx, float64(d.Microseconds())/1000.0, attrs)
}

// recordRoute counts one build-time handler attachment.
func (m *MetricsConfig) recordRoute() {
	if !m.on() {
		return
	}
	m.routeCount.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("service.name", m.serviceName)))
}

// MetricsHandler returns the Prometheus scrape handler for the host to
// mount, or nil when metrics are disabled or use another provider.
func (r *Router) MetricsHandler() http.Handler {
	if r.metrics == nil {
		return nil
	}
	return r.metrics.handler
}

// ShutdownMetrics flushes and stops a router-owned metrics provider.
// No-op when metrics are disabled or externally managed.
func (r *Router) ShutdownMetrics(ctx context.Context) error {
	if r.metrics == nil || r.metrics.owned == nil {
		return nil
	}
	return r.metrics.owned.Shutdown(ctx)
}

// Copyright 2025 Tom Barlow
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

package tracing

import (
	"context"
	"errors"
	"fmt"

	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider wraps the OpenTelemetry SDK providers for one process.
type Provider struct {
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	session *SessionMetrics
}

// NewProvider creates the tracer and meter providers described by cfg.
// Extra tracer provider options, such as a test span recorder, are applied
// after the configured ones.
func NewProvider(cfg Config, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Console != nil {
		exporterOpts := []stdouttrace.Option{stdouttrace.WithWriter(cfg.Console)}
		if cfg.PrettyPrint {
			exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
		}
		exporter, err := stdouttrace.New(exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create console exporter: %w", err)
		}
		// Lines are dispatched one at a time; export each span as it ends.
		traceOpts = append(traceOpts, sdktrace.WithSyncer(exporter))
	}
	tp := sdktrace.NewTracerProvider(append(traceOpts, opts...)...)

	metricOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.Registerer != nil {
		promExporter, err := otelprom.New(otelprom.WithRegisterer(cfg.Registerer))
		if err != nil {
			_ = tp.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(promExporter))
	}
	mp := sdkmetric.NewMeterProvider(metricOpts...)

	session, err := NewSessionMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create session metrics: %w", err)
	}

	return &Provider{tp: tp, mp: mp, session: session}, nil
}

// TracerProvider returns the provider to hand to instrumented components.
func (p *Provider) TracerProvider() trace.TracerProvider { return p.tp }

// MeterProvider returns the provider backing SessionMetrics.
func (p *Provider) MeterProvider() metric.MeterProvider { return p.mp }

// SessionMetrics returns the session-level instruments.
func (p *Provider) SessionMetrics() *SessionMetrics { return p.session }

// Shutdown flushes pending spans and releases both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	return errors.Join(p.tp.Shutdown(ctx), p.mp.Shutdown(ctx))
}

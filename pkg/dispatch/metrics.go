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

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dispatcher's Prometheus collectors.
type Metrics struct {
	// lines tracks dispatched lines by command and route
	lines *prometheus.CounterVec

	// notFound tracks lines naming an unknown command. Unlabelled since the
	// name is arbitrary user input.
	notFound prometheus.Counter

	// failures tracks handler errors by command and error type
	failures *prometheus.CounterVec

	// duration tracks handler run time by command
	duration *prometheus.HistogramVec
}

// NewMetrics creates the dispatcher collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics
// handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teemu_dispatch_lines_total",
				Help: "Total dispatched lines by command and route",
			},
			[]string{"command", "route"},
		),
		notFound: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "teemu_dispatch_not_found_total",
				Help: "Total lines naming an unregistered command",
			},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teemu_dispatch_handler_errors_total",
				Help: "Total handler errors by command and error type",
			},
			[]string{"command", "error_type"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "teemu_dispatch_handler_duration_seconds",
				Help:    "Handler run time in seconds by command",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"command"},
		),
	}
}

func (m *Metrics) recordLine(command, route string) {
	if m == nil {
		return
	}
	m.lines.WithLabelValues(command, route).Inc()
}

func (m *Metrics) recordNotFound() {
	if m == nil {
		return
	}
	m.notFound.Inc()
}

func (m *Metrics) recordFailure(command, errorType string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(command, errorType).Inc()
}

func (m *Metrics) observeDuration(command string, seconds float64) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(command).Observe(seconds)
}

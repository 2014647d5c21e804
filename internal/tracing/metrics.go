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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Session modes recorded by SessionMetrics.
const (
	ModeShell  = "shell"
	ModeExec   = "exec"
	ModeScript = "script"
)

// SessionMetrics records how teemu is driven: sessions started per mode and
// scripts completed per outcome.
type SessionMetrics struct {
	sessions metric.Int64Counter
	scripts  metric.Int64Counter
}

// NewSessionMetrics creates the instruments on meterProvider.
func NewSessionMetrics(meterProvider metric.MeterProvider) (*SessionMetrics, error) {
	meter := meterProvider.Meter("github.com/tombee/teemu")

	sessions, err := meter.Int64Counter(
		"teemu_sessions",
		metric.WithDescription("Sessions started, by mode"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	scripts, err := meter.Int64Counter(
		"teemu_scripts",
		metric.WithDescription("Script files run, by outcome"),
		metric.WithUnit("{script}"),
	)
	if err != nil {
		return nil, err
	}

	return &SessionMetrics{sessions: sessions, scripts: scripts}, nil
}

// RecordSession counts a session started in mode.
func (m *SessionMetrics) RecordSession(ctx context.Context, mode string) {
	if m == nil {
		return
	}
	m.sessions.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// RecordScript counts a finished script.
func (m *SessionMetrics) RecordScript(ctx context.Context, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.scripts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

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

// Package host assembles a teemu runtime from configuration: logger,
// registry with built-in and configured commands, dispatcher, output
// windows, metrics and tracing.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"

	"github.com/tombee/teemu/internal/builtin"
	"github.com/tombee/teemu/internal/config"
	"github.com/tombee/teemu/internal/declarative"
	"github.com/tombee/teemu/internal/log"
	"github.com/tombee/teemu/internal/tracing"
	"github.com/tombee/teemu/pkg/command"
	"github.com/tombee/teemu/pkg/dispatch"
	"github.com/tombee/teemu/pkg/output"
)

// Options are the command-line overrides and streams for a Host.
type Options struct {
	// ConfigPath is the config file to load. Empty means the XDG default.
	ConfigPath string

	Prompt    string
	LogLevel  string
	LogFormat string
	Verbose   bool
	Quiet     bool
	Trace     bool

	Version string

	Stdout io.Writer
	Stderr io.Writer
}

// Host is an assembled runtime. Close releases what New opened.
type Host struct {
	Config     *config.Config
	Logger     *slog.Logger
	SessionID  string
	Registry   *command.Registry
	Dispatcher *dispatch.Dispatcher
	Telemetry  *tracing.Provider
	Metrics    *prometheus.Registry

	metricsAddr string
	closers     []func(context.Context) error
}

// New loads configuration and builds the runtime. On error everything opened
// so far is released.
func New(ctx context.Context, opts Options) (*Host, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Prompt != "" {
		cfg.Prompt = opts.Prompt
	}
	if opts.Quiet {
		cfg.Banner = ""
	}
	if opts.Trace {
		cfg.Observability.Trace = true
	}

	h := &Host{Config: cfg}
	if err := h.build(opts); err != nil {
		_ = h.Close(ctx)
		return nil, err
	}
	return h, nil
}

func (h *Host) build(opts Options) error {
	cfg := h.Config

	h.SessionID = uuid.NewString()
	h.Logger = log.WithSession(newLogger(cfg, opts), h.SessionID)

	h.Metrics = prometheus.NewRegistry()
	h.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	dispatchMetrics := dispatch.NewMetrics(h.Metrics)

	traceCfg := tracing.Config{
		ServiceName:    "teemu",
		ServiceVersion: opts.Version,
		Registerer:     h.Metrics,
	}
	if cfg.Observability.Trace {
		traceCfg.Console = opts.Stderr
	}
	telemetry, err := tracing.NewProvider(traceCfg)
	if err != nil {
		return err
	}
	h.Telemetry = telemetry
	h.closers = append(h.closers, telemetry.Shutdown)

	if cfg.Observability.MetricsAddr != "" {
		if err := h.serveMetrics(cfg.Observability.MetricsAddr); err != nil {
			return err
		}
	}

	out, err := h.openOutput(opts.Stdout)
	if err != nil {
		return err
	}

	th := theme(cfg.Output.Color, opts.Stdout)
	h.Registry = command.NewRegistry(out, command.WithLogger(log.WithComponent(h.Logger, "registry")))
	if err := builtin.Register(h.Registry, th); err != nil {
		return err
	}
	if err := declarative.Load(h.Registry, cfg.Commands); err != nil {
		return err
	}

	h.Dispatcher = dispatch.New(h.Registry,
		dispatch.WithLogger(log.WithComponent(h.Logger, "dispatch")),
		dispatch.WithMetrics(dispatchMetrics),
		dispatch.WithTracerProvider(telemetry.TracerProvider()),
		dispatch.WithNotFoundStyle(th.Error),
	)

	h.Logger.Debug("host ready",
		"commands", h.Registry.Len(),
		"windows", len(cfg.Output.Windows),
		"metrics_addr", h.metricsAddr,
		"trace", cfg.Observability.Trace)
	return nil
}

// MetricsAddr returns the address the metrics endpoint listens on, or empty
// when it is disabled.
func (h *Host) MetricsAddr() string { return h.metricsAddr }

// Close releases resources in reverse order of acquisition.
func (h *Host) Close(ctx context.Context) error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		errs = append(errs, h.closers[i](ctx))
	}
	h.closers = nil
	return errors.Join(errs...)
}

func newLogger(cfg *config.Config, opts Options) *slog.Logger {
	logCfg := log.FromEnvWithDefaults(cfg.Log.Level, log.Format(cfg.Log.Format))
	switch {
	case opts.LogLevel != "":
		logCfg.Level = opts.LogLevel
	case opts.Verbose:
		logCfg.Level = "debug"
	case opts.Quiet:
		logCfg.Level = "error"
	}
	if opts.LogFormat != "" {
		logCfg.Format = log.Format(opts.LogFormat)
	}
	logCfg.Output = opts.Stderr
	return log.New(logCfg)
}

func (h *Host) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen for metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(h.Metrics, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.Logger.Error("metrics server stopped", log.Error(err))
		}
	}()

	h.metricsAddr = ln.Addr().String()
	h.closers = append(h.closers, srv.Shutdown)
	return nil
}

// openOutput returns stdout plus one appending writer per configured window.
// Windows are files, so they get the lines without styling or terminal
// control sequences.
func (h *Host) openOutput(stdout io.Writer) (output.Sink, error) {
	sinks := []output.Sink{output.NewWriter(stdout)}
	for _, path := range h.Config.Output.Windows {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open output window %s: %w", path, err)
		}
		h.closers = append(h.closers, func(context.Context) error { return f.Close() })
		sinks = append(sinks, output.Plain(output.NewWriter(f)))
	}
	return output.Multi(sinks...), nil
}

func theme(mode string, stdout io.Writer) builtin.Theme {
	switch mode {
	case config.ColorNever:
		return builtin.PlainTheme()
	case config.ColorAlways:
		r := lipgloss.NewRenderer(stdout)
		r.SetColorProfile(termenv.ANSI256)
		return builtin.DefaultTheme(r)
	default:
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return builtin.DefaultTheme(lipgloss.NewRenderer(stdout))
		}
		return builtin.PlainTheme()
	}
}

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

// Package dispatch turns raw input lines into command invocations.
//
// A line is split on whitespace. The first token names the command. For
// commands that are not flat the next token, whatever it looks like, is taken
// as the subcommand name. The remaining tokens are split into positional
// arguments and flags (tokens starting with a hyphen), each keeping the order
// it was typed in.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/teemu/pkg/command"
	teemuerrors "github.com/tombee/teemu/pkg/errors"
	"github.com/tombee/teemu/pkg/output"
)

const tracerName = "github.com/tombee/teemu/pkg/dispatch"

// ErrEmptyLine is returned by Resolve for a line with no tokens.
var ErrEmptyLine = errors.New("dispatch: empty line")

// Invocation is a resolved line, ready to be invoked.
type Invocation struct {
	Command *command.Command

	// Subcommand is empty for flat commands and when the line has no second
	// token.
	Subcommand string

	Args  []string
	Flags []string
}

// Route returns what invoking inv will do.
func (inv Invocation) Route() command.Route {
	return inv.Command.Resolve(inv.Subcommand, inv.Flags)
}

// Dispatcher resolves lines against a registry and invokes the result.
type Dispatcher struct {
	registry *command.Registry
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer

	notFoundStyle *lipgloss.Style
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records dispatch counters and handler durations in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithNotFoundStyle renders the command-not-found line with style. It is
// still written in a single call.
func WithNotFoundStyle(style lipgloss.Style) Option {
	return func(d *Dispatcher) { d.notFoundStyle = &style }
}

// WithTracerProvider sets the provider dispatch spans are created from.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) {
		if tp != nil {
			d.tracer = tp.Tracer(tracerName)
		}
	}
}

// New creates a dispatcher for registry.
func New(registry *command.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry lines are resolved against.
func (d *Dispatcher) Registry() *command.Registry {
	return d.registry
}

// Resolve tokenizes line and looks up its command. It returns ErrEmptyLine
// for a blank line and a *errors.CommandNotFoundError for an unknown command.
func (d *Dispatcher) Resolve(line string) (Invocation, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Invocation{}, ErrEmptyLine
	}

	name, rest := tokens[0], tokens[1:]
	cmd, ok := d.registry.Lookup(name)
	if !ok {
		return Invocation{}, &teemuerrors.CommandNotFoundError{Name: name}
	}

	inv := Invocation{Command: cmd}
	if !cmd.IsFlat() && len(rest) > 0 {
		inv.Subcommand, rest = rest[0], rest[1:]
	}
	inv.Args, inv.Flags = Partition(rest)
	return inv, nil
}

// Parse resolves and invokes one line. A blank line does nothing. An
// unknown command is reported to the registry's output sink and Parse returns
// nil, leaving the dispatcher ready for the next line. Any error a handler
// returns is passed back unchanged.
func (d *Dispatcher) Parse(ctx context.Context, line string) error {
	ctx, span := d.tracer.Start(ctx, "dispatch.parse")
	defer span.End()

	inv, err := d.Resolve(line)
	if errors.Is(err, ErrEmptyLine) {
		span.SetAttributes(attribute.Bool("teemu.empty", true))
		return nil
	}
	var notFound *teemuerrors.CommandNotFoundError
	if errors.As(err, &notFound) {
		d.logger.Debug("command not found", "command", notFound.Name)
		d.metrics.recordNotFound()
		span.AddEvent("command not found", trace.WithAttributes(attribute.String("teemu.command", notFound.Name)))
		out := d.registry.Output()
		if d.notFoundStyle != nil {
			out = output.Styled(out, *d.notFoundStyle)
		}
		out.Write(notFound.Error())
		return nil
	}
	if err != nil {
		return err
	}

	name := inv.Command.Name()
	route := inv.Route().String()
	span.SetAttributes(
		attribute.String("teemu.command", name),
		attribute.String("teemu.subcommand", inv.Subcommand),
		attribute.String("teemu.route", route),
		attribute.Int("teemu.args", len(inv.Args)),
		attribute.Int("teemu.flags", len(inv.Flags)),
	)
	d.metrics.recordLine(name, route)
	d.logger.Debug("dispatching", "command", name, "subcommand", inv.Subcommand, "route", route,
		"args", len(inv.Args), "flags", len(inv.Flags))

	start := time.Now()
	err = inv.Command.Invoke(ctx, inv.Subcommand, inv.Args, inv.Flags)
	d.metrics.observeDuration(name, time.Since(start).Seconds())

	if err != nil {
		d.metrics.recordFailure(name, teemuerrors.Classify(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.Debug("handler failed", "command", name, "subcommand", inv.Subcommand, "error", err)
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

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

// Package command implements the command registry: named commands, their
// subcommand tables with declared flags, validation at registration time and
// generated help.
//
// A Registry is not safe for concurrent use. Register and AddSubcommand must
// not run while lines are being dispatched.
package command

import (
	"fmt"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tombee/teemu/pkg/errors"
	"github.com/tombee/teemu/pkg/output"
)

// CommandSpec is the registration payload for a command. Default may be nil,
// in which case the command lists its subcommands (or says it is flat).
type CommandSpec struct {
	Name        string
	Description string
	Default     HandlerFunc
	Flat        bool
}

// Option modifies a single Register or AddSubcommand call.
type Option func(*options)

type options struct {
	force bool
}

// Force allows a registration to replace an existing entry of the same name.
func Force() Option {
	return func(o *options) { o.force = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Registry owns the registered commands.
type Registry struct {
	commands *orderedmap.OrderedMap[string, *Command]
	out      output.Sink
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry whose commands write to out.
// A nil out discards output.
func NewRegistry(out output.Sink, opts ...RegistryOption) *Registry {
	if out == nil {
		out = output.Discard
	}
	r := &Registry{
		commands: orderedmap.New[string, *Command](),
		out:      out,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Output returns the sink shared by every command in the registry.
func (r *Registry) Output() output.Sink { return r.out }

// Register validates spec and adds a new command. An existing name is only
// replaced when Force is given; the replacement starts with an empty
// subcommand table but keeps the old listing position. On error the registry
// is unchanged.
func (r *Registry) Register(spec CommandSpec, opts ...Option) (*Command, error) {
	o := applyOptions(opts)

	if !validName(spec.Name) {
		err := &errors.ValidationError{
			Field:      "name",
			Message:    fmt.Sprintf("command name %q must be a non-empty word", spec.Name),
			Suggestion: "use a single token without whitespace",
		}
		r.logger.Warn("command rejected", "error", err)
		return nil, err
	}

	if _, exists := r.commands.Get(spec.Name); exists && !o.force {
		err := &errors.DuplicateCommandError{Name: spec.Name}
		r.logger.Warn("command rejected", "error", err)
		return nil, err
	}

	cmd := newCommand(spec, r.out, r.logger)
	r.commands.Set(spec.Name, cmd)
	r.logger.Debug("command registered", "command", spec.Name, "flat", spec.Flat, "force", o.force)
	return cmd, nil
}

// MustRegister is like Register but panics on error. It is meant for
// built-in commands whose specs are fixed at compile time.
func (r *Registry) MustRegister(spec CommandSpec, opts ...Option) *Command {
	cmd, err := r.Register(spec, opts...)
	if err != nil {
		panic(fmt.Sprintf("registering %s: %v", spec.Name, err))
	}
	return cmd
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	return r.commands.Get(name)
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, r.commands.Len())
	for p := r.commands.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Names returns the registered command names in registration order.
func (r *Registry) Names() []string {
	cmds := r.Commands()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.name
	}
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return r.commands.Len()
}

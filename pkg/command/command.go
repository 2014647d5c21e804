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

package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/tombee/teemu/pkg/errors"
	"github.com/tombee/teemu/pkg/output"
)

// HandlerFunc runs a command or subcommand. cmd is the owning command, args
// are the positional tokens and flags the hyphen-prefixed tokens, both in the
// order they were typed. Errors are returned to whoever dispatched the line.
type HandlerFunc func(ctx context.Context, cmd *Command, args, flags []string) error

// SubcommandSpec is the registration payload for a subcommand.
type SubcommandSpec struct {
	Name        string
	Handler     HandlerFunc
	Usage       string
	Description string
	Flags       *FlagMap

	// RawFlags is an undecoded YAML flag mapping, used when flags come from
	// configuration. Set Flags or RawFlags, not both.
	RawFlags *yaml.Node
}

// Subcommand is a registered, immutable subcommand.
type Subcommand struct {
	name        string
	usage       string
	description string
	handler     HandlerFunc
	flags       *FlagMap
}

// Name returns the subcommand name.
func (s *Subcommand) Name() string { return s.name }

// Usage returns the usage line given at registration, possibly empty.
func (s *Subcommand) Usage() string { return s.usage }

// Description returns the one-line description, possibly empty.
func (s *Subcommand) Description() string { return s.description }

// Flags returns the declared flags in declaration order.
func (s *Subcommand) Flags() []Flag { return s.flags.Flags() }

// Route is the outcome of resolving a subcommand name and flags against a
// command.
type Route int

const (
	// RouteDefault runs the command's default handler.
	RouteDefault Route = iota
	// RouteHelp renders help for the resolved subcommand.
	RouteHelp
	// RouteSubcommand runs the resolved subcommand's handler.
	RouteSubcommand
)

// String returns the route name.
func (r Route) String() string {
	switch r {
	case RouteHelp:
		return "help"
	case RouteSubcommand:
		return "subcommand"
	default:
		return "default"
	}
}

// Command is a registered command. Flat commands have no subcommand table
// and always run their default handler.
type Command struct {
	name        string
	description string
	flat        bool
	defaultFx   HandlerFunc
	subcommands *orderedmap.OrderedMap[string, *Subcommand]
	out         output.Sink
	logger      *slog.Logger
}

func newCommand(spec CommandSpec, out output.Sink, logger *slog.Logger) *Command {
	c := &Command{
		name:        spec.Name,
		description: spec.Description,
		flat:        spec.Flat,
		defaultFx:   spec.Default,
		out:         out,
		logger:      logger.With("command", spec.Name),
	}
	if c.defaultFx == nil {
		c.defaultFx = listSubcommands
	}
	if !c.flat {
		c.subcommands = orderedmap.New[string, *Subcommand]()
	}
	return c
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Description returns the one-line description, possibly empty.
func (c *Command) Description() string { return c.description }

// IsFlat reports whether the command ignores subcommands.
func (c *Command) IsFlat() bool { return c.flat }

// Output returns the sink handlers should write to.
func (c *Command) Output() output.Sink { return c.out }

// AddSubcommand validates spec and stores it under spec.Name. Checks run in a
// fixed order and the first failure is returned; a failed call leaves the
// command unchanged. An existing name is only replaced when Force is given.
func (c *Command) AddSubcommand(spec SubcommandSpec, opts ...Option) error {
	o := applyOptions(opts)

	if c.flat {
		return c.reject(&errors.FlatCommandError{Command: c.name, Subcommand: spec.Name})
	}
	if !validName(spec.Name) {
		return c.reject(&errors.ValidationError{
			Field:      "name",
			Message:    fmt.Sprintf("subcommand name %q must be a non-empty word", spec.Name),
			Suggestion: "use a single token without whitespace",
		})
	}
	if spec.Handler == nil {
		return c.reject(&errors.ValidationError{
			Field:      "fx",
			Message:    fmt.Sprintf("subcommand %s has no handler", spec.Name),
			Suggestion: "pass a HandlerFunc",
		})
	}

	flags := spec.Flags
	if spec.RawFlags != nil {
		if spec.Flags != nil {
			return c.reject(&errors.ValidationError{
				Field:   "flags",
				Message: "both Flags and RawFlags are set",
			})
		}
		decoded, err := FlagMapFromYAML(spec.RawFlags)
		if err != nil {
			return c.reject(err)
		}
		flags = decoded
	}

	declared := flags.Flags()
	for _, f := range declared {
		if !ValidFlagSyntax(f.Name) {
			return c.reject(&errors.FlagSyntaxError{Command: c.name, Subcommand: spec.Name, Flag: f.Name})
		}
	}
	for _, f := range declared {
		if IsReservedFlag(f.Name) {
			return c.reject(&errors.ReservedFlagError{Command: c.name, Subcommand: spec.Name, Flag: f.Name})
		}
	}

	if _, exists := c.subcommands.Get(spec.Name); exists && !o.force {
		return c.reject(&errors.DuplicateSubcommandError{Command: c.name, Name: spec.Name})
	}

	c.subcommands.Set(spec.Name, &Subcommand{
		name:        spec.Name,
		usage:       spec.Usage,
		description: spec.Description,
		handler:     spec.Handler,
		flags:       NewFlagMap(declared...),
	})
	c.logger.Debug("subcommand registered", "subcommand", spec.Name, "flags", len(declared), "force", o.force)
	return nil
}

func (c *Command) reject(err error) error {
	c.logger.Warn("subcommand rejected", "error", err)
	return err
}

// Subcommand returns the registered subcommand called name.
func (c *Command) Subcommand(name string) (*Subcommand, bool) {
	if c.flat {
		return nil, false
	}
	return c.subcommands.Get(name)
}

// Subcommands returns the registered subcommands in registration order.
// Flat commands return nil.
func (c *Command) Subcommands() []*Subcommand {
	if c.flat {
		return nil
	}
	out := make([]*Subcommand, 0, c.subcommands.Len())
	for p := c.subcommands.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// SubcommandNames returns the registered subcommand names in registration order.
func (c *Command) SubcommandNames() []string {
	subs := c.Subcommands()
	names := make([]string, len(subs))
	for i, s := range subs {
		names[i] = s.name
	}
	return names
}

// Resolve decides what Invoke would do for sub and flags without running
// anything. Flat commands always resolve to RouteDefault, as do empty or
// unknown subcommand names.
func (c *Command) Resolve(sub string, flags []string) Route {
	if c.flat || sub == "" {
		return RouteDefault
	}
	if _, ok := c.subcommands.Get(sub); !ok {
		return RouteDefault
	}
	if HelpRequested(flags) {
		return RouteHelp
	}
	return RouteSubcommand
}

// Invoke runs the handler that Resolve selects. Help is written to the
// command's sink. Handler errors are returned unchanged.
func (c *Command) Invoke(ctx context.Context, sub string, args, flags []string) error {
	if args == nil {
		args = []string{}
	}
	if flags == nil {
		flags = []string{}
	}

	route := c.Resolve(sub, flags)
	c.logger.Debug("invoking", "subcommand", sub, "route", route.String())

	switch route {
	case RouteHelp:
		lines, _ := c.HelpLines(sub)
		c.out.Write(lines...)
		return nil
	case RouteSubcommand:
		s, _ := c.subcommands.Get(sub)
		return s.handler(ctx, c, args, flags)
	default:
		return c.defaultFx(ctx, c, args, flags)
	}
}

// listSubcommands is the default handler used when a command is registered
// without one.
func listSubcommands(_ context.Context, c *Command, _, _ []string) error {
	if c.flat {
		c.out.Write("Command is flat; no subcommands attached")
		return nil
	}
	listing := "(none)"
	if names := c.SubcommandNames(); len(names) > 0 {
		listing = strings.Join(names, ", ")
	}
	c.out.Write("Available subcommands:", listing)
	return nil
}

func validName(name string) bool {
	return name != "" && !strings.ContainsFunc(name, unicode.IsSpace)
}

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

// Package builtin provides the commands every teemu session starts with:
// help, clear, echo and exit.
package builtin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tombee/teemu/pkg/command"
)

// ErrExit is returned by the exit command. Sessions stop reading lines when
// they see it.
var ErrExit = errors.New("exit requested")

// ClearSequence moves the cursor home and clears the terminal.
const ClearSequence = "\033[H\033[2J"

const nameColumn = 12

// Theme styles help output. Error is not used by the built-ins; the host
// hands it to the dispatcher for the command-not-found line.
type Theme struct {
	Header lipgloss.Style
	Name   lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
}

// PlainTheme renders text unchanged.
func PlainTheme() Theme {
	return Theme{
		Header: lipgloss.NewStyle(),
		Name:   lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle(),
		Error:  lipgloss.NewStyle(),
	}
}

// DefaultTheme is the colored theme. Styles come from r, so its color
// profile decides whether escape codes are emitted.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Name:   r.NewStyle().Foreground(lipgloss.Color("42")),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
		Error:  r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Register adds the built-in commands to reg. Existing commands with the
// same names are an error.
func Register(reg *command.Registry, theme Theme) error {
	specs := []command.CommandSpec{
		{
			Name:        "help",
			Description: "List commands, or show one command's subcommands",
			Flat:        true,
			Default:     helpHandler(reg, theme),
		},
		{
			Name:        "clear",
			Description: "Clear the screen",
			Flat:        true,
			Default:     clearHandler,
		},
		{
			Name:        "echo",
			Description: "Print the arguments",
			Flat:        true,
			Default:     echoHandler,
		},
		{
			Name:        "exit",
			Description: "End the session",
			Flat:        true,
			Default:     exitHandler,
		},
	}

	for _, spec := range specs {
		if _, err := reg.Register(spec); err != nil {
			return fmt.Errorf("registering built-in %s: %w", spec.Name, err)
		}
	}
	return nil
}

func helpHandler(reg *command.Registry, theme Theme) command.HandlerFunc {
	return func(_ context.Context, self *command.Command, args, _ []string) error {
		var lines []string
		switch len(args) {
		case 0:
			lines = listCommands(reg, theme)
		case 1:
			lines = describeCommand(reg, theme, args[0])
		default:
			lines = describeSubcommand(reg, args[0], args[1])
		}
		self.Output().Write(lines...)
		return nil
	}
}

func listCommands(reg *command.Registry, theme Theme) []string {
	lines := []string{theme.Header.Render("Available commands:")}
	for _, c := range reg.Commands() {
		lines = append(lines, entry(theme, c.Name(), c.Description()))
	}
	return lines
}

func describeCommand(reg *command.Registry, theme Theme, name string) []string {
	c, ok := reg.Lookup(name)
	if !ok {
		return []string{name + ": command not found"}
	}

	title := c.Name()
	if c.Description() != "" {
		title += " - " + c.Description()
	}
	lines := []string{theme.Header.Render(title)}

	if c.IsFlat() {
		return append(lines, "Command is flat; no subcommands attached")
	}

	subs := c.Subcommands()
	if len(subs) == 0 {
		return append(lines, "Available subcommands:", "(none)")
	}
	lines = append(lines, "Available subcommands:")
	for _, s := range subs {
		lines = append(lines, entry(theme, s.Name(), s.Description()))
	}
	return append(lines, theme.Muted.Render(fmt.Sprintf("Run '%s <subcommand> --help' for flags", c.Name())))
}

func describeSubcommand(reg *command.Registry, name, sub string) []string {
	c, ok := reg.Lookup(name)
	if !ok {
		return []string{name + ": command not found"}
	}
	lines, ok := c.HelpLines(sub)
	if !ok {
		return []string{fmt.Sprintf("%s: no subcommand %s", name, sub)}
	}
	return lines
}

func entry(theme Theme, name, description string) string {
	padded := fmt.Sprintf("  %-*s", nameColumn, name)
	if len(name) >= nameColumn {
		padded = "  " + name + "  "
	}
	if description == "" {
		return theme.Name.Render(strings.TrimRight(padded, " "))
	}
	return theme.Name.Render(padded) + theme.Muted.Render(description)
}

func clearHandler(_ context.Context, self *command.Command, _, _ []string) error {
	self.Output().Write(ClearSequence)
	return nil
}

func echoHandler(_ context.Context, self *command.Command, args, _ []string) error {
	self.Output().Write(strings.Join(args, " "))
	return nil
}

func exitHandler(context.Context, *command.Command, []string, []string) error {
	return ErrExit
}

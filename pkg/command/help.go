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
	"fmt"
	"strings"
)

// helpColumn is the width flag names are padded to in help output.
const helpColumn = 24

// HelpLines renders help for the named subcommand: the usage line, the
// description when present, a rule and the declared flags in declaration
// order. It returns false when sub is not registered.
func (c *Command) HelpLines(sub string) ([]string, bool) {
	s, ok := c.Subcommand(sub)
	if !ok {
		return nil, false
	}

	usage := s.usage
	if usage == "" {
		usage = c.name + " " + s.name
	}

	lines := []string{"Usage: " + usage}
	if s.description != "" {
		lines = append(lines, s.description)
	}
	lines = append(lines, strings.Repeat("-", helpColumn), "Available flags:")

	flags := s.flags.Flags()
	if len(flags) == 0 {
		lines = append(lines, "(none)")
	}
	for _, f := range flags {
		lines = append(lines, formatFlag(f))
	}
	return lines, true
}

func formatFlag(f Flag) string {
	if len(f.Name) >= helpColumn {
		return f.Name + "  " + f.Description
	}
	return fmt.Sprintf("%-*s%s", helpColumn, f.Name, f.Description)
}

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

package completion

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/teemu/pkg/command"
)

// CompleteLine completes the words of a command line for exec: command
// names first, then subcommand names, then the subcommand's declared flags.
func CompleteLine(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		return completeLine(LoadRegistryForCompletion(), args, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func completeLine(reg *command.Registry, args []string, toComplete string) []string {
	if len(args) == 0 {
		var out []string
		for _, c := range reg.Commands() {
			out = appendMatch(out, toComplete, c.Name(), c.Description())
		}
		return out
	}

	c, ok := reg.Lookup(args[0])
	if !ok || c.IsFlat() {
		return nil
	}

	if len(args) == 1 {
		var out []string
		for _, s := range c.Subcommands() {
			out = appendMatch(out, toComplete, s.Name(), s.Description())
		}
		return out
	}

	s, ok := c.Subcommand(args[1])
	if !ok || !strings.HasPrefix(toComplete, "-") {
		return nil
	}
	var out []string
	for _, f := range s.Flags() {
		out = appendMatch(out, toComplete, f.Name, f.Description)
	}
	return appendMatch(out, toComplete, command.HelpLong, "Show help")
}

func appendMatch(out []string, prefix, name, description string) []string {
	if !strings.HasPrefix(name, prefix) {
		return out
	}
	if description == "" {
		return append(out, name)
	}
	return append(out, name+"\t"+description)
}

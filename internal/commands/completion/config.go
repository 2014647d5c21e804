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
	"github.com/spf13/cobra"

	"github.com/tombee/teemu/internal/builtin"
	"github.com/tombee/teemu/internal/commands/shared"
	"github.com/tombee/teemu/internal/config"
	"github.com/tombee/teemu/internal/declarative"
	"github.com/tombee/teemu/pkg/command"
)

// LoadRegistryForCompletion builds a registry holding the built-in commands
// and whatever configured commands load cleanly. Nothing is opened or
// served; output is discarded.
func LoadRegistryForCompletion() *command.Registry {
	reg := command.NewRegistry(nil)
	_ = builtin.Register(reg, builtin.PlainTheme())

	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return reg
	}
	for _, def := range cfg.Commands {
		// One broken definition should not hide the rest.
		_ = declarative.Load(reg, []config.CommandConfig{def})
	}
	return reg
}

// SafeCompletionWrapper wraps a completion function with panic recovery.
// Returns empty completion list on panic or error.
func SafeCompletionWrapper(fn func() ([]string, cobra.ShellCompDirective)) (results []string, directive cobra.ShellCompDirective) {
	// Set defaults for panic recovery
	results = []string{}
	directive = cobra.ShellCompDirectiveNoFileComp

	defer func() {
		if r := recover(); r != nil {
			results = []string{}
			directive = cobra.ShellCompDirectiveNoFileComp
		}
	}()

	results, directive = fn()
	if results == nil {
		return []string{}, cobra.ShellCompDirectiveNoFileComp
	}
	return results, directive
}

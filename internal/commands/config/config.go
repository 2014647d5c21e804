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

package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tombee/teemu/internal/builtin"
	"github.com/tombee/teemu/internal/commands/shared"
	"github.com/tombee/teemu/internal/config"
	"github.com/tombee/teemu/internal/declarative"
	"github.com/tombee/teemu/pkg/command"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and check configuration",
		Long: `View and check teemu configuration.

Subcommands:
  show     - Display the effective configuration
  path     - Show config file location
  validate - Load the configuration and register its commands`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())
	cmd.AddCommand(newConfigValidateCommand())

	// If no subcommand provided, default to 'show'
	cmd.RunE = runConfigShow

	return cmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration after defaults, the config file and
environment overrides are merged. Use --json for machine-readable output.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file location",
		Long:  `Display the path to the configuration file.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration and command definitions",
		Long: `Load the configuration and register every configured command alongside
the built-in ones, reporting the first problem found. Nothing is run.`,
		Args: cobra.NoArgs,
		RunE: runConfigValidate,
	}
}

// runConfigShow displays the effective configuration
func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return shared.NewConfigError("failed to load config", err)
	}

	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if shared.GetJSON() {
		var generic any
		if err := node.Decode(&generic); err != nil {
			return fmt.Errorf("failed to convert config: %w", err)
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(generic)
	}

	path, err := resolvePath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", shared.RenderLabel("Configuration:"), path)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out)

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}

// runConfigPath displays the config file path
func runConfigPath(cmd *cobra.Command, _ []string) error {
	path, err := resolvePath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// runConfigValidate registers the configured commands into a scratch registry
func runConfigValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(shared.GetConfigPath())
	if err != nil {
		return shared.NewConfigError("failed to load config", err)
	}

	reg := command.NewRegistry(nil)
	if err := builtin.Register(reg, builtin.PlainTheme()); err != nil {
		return err
	}
	if err := declarative.Load(reg, cfg.Commands); err != nil {
		return shared.NewConfigError("invalid command definitions", err)
	}

	subs := 0
	for _, c := range reg.Commands() {
		subs += len(c.Subcommands())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK: %d commands (%d configured), %d subcommands\n",
		reg.Len(), len(cfg.Commands), subs)
	return nil
}

func resolvePath() (string, error) {
	if path := shared.GetConfigPath(); path != "" {
		return path, nil
	}
	path, err := config.ConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to determine config path: %w", err)
	}
	return path, nil
}

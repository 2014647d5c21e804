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

// Package config loads the teemu host configuration: prompt, output, logging,
// observability and declaratively defined commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	teemuerrors "github.com/tombee/teemu/pkg/errors"
)

// Color modes for OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete teemu configuration.
type Config struct {
	// Prompt is printed before each line in interactive mode.
	// Environment: TEEMU_PROMPT
	Prompt string `yaml:"prompt"`

	// Banner is written once when an interactive session starts. Empty
	// disables it.
	Banner string `yaml:"banner,omitempty"`

	Output        OutputConfig        `yaml:"output"`
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`

	// Commands are registered on top of the built-in commands.
	Commands []CommandConfig `yaml:"commands,omitempty"`
}

// OutputConfig configures where command output goes.
type OutputConfig struct {
	// Color is auto, always or never. Auto colors only when stdout is a
	// terminal. Environment: NO_COLOR forces never.
	Color string `yaml:"color"`

	// Windows are extra files every output line is appended to, in addition
	// to stdout.
	Windows []string `yaml:"windows,omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is trace, debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// ObservabilityConfig configures metrics and tracing.
type ObservabilityConfig struct {
	// MetricsAddr, when set, serves Prometheus metrics on this address
	// (e.g., "127.0.0.1:9464"). Environment: TEEMU_METRICS_ADDR
	MetricsAddr string `yaml:"metrics_addr,omitempty"`

	// Trace writes one span per dispatched line to stderr.
	Trace bool `yaml:"trace"`
}

// CommandConfig declares a command in configuration.
type CommandConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Flat        bool   `yaml:"flat,omitempty"`

	// Default is an expression run when no subcommand resolves (or always,
	// for flat commands). Empty keeps the built-in listing behavior.
	Default string `yaml:"default,omitempty"`

	Subcommands []SubcommandConfig `yaml:"subcommands,omitempty"`
}

// SubcommandConfig declares a subcommand in configuration.
type SubcommandConfig struct {
	Name        string `yaml:"name"`
	Usage       string `yaml:"usage,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Flags is kept as a raw node so declaration order survives decoding.
	// It must be a mapping of flag to description.
	Flags yaml.Node `yaml:"flags,omitempty"`

	// Run is the expression evaluated when the subcommand is invoked.
	Run string `yaml:"run"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt: "$ ",
		Banner: "teemu - type help to list commands",
		Output: OutputConfig{
			Color: ColorAuto,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from path, merged over Default. An empty path
// means the XDG config file, which may be absent. An explicit path must
// exist. Environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, &teemuerrors.ConfigError{Reason: "cannot locate config directory", Cause: err}
		}
		path = p
	}

	base, err := encode(Default())
	if err != nil {
		return nil, err
	}

	merged := base
	override, err := readFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, &teemuerrors.ConfigError{Reason: fmt.Sprintf("cannot read %s", path), Cause: err}
	case override != nil:
		merged = Merge(base, override)
	}

	var cfg Config
	if err := merged.Decode(&cfg); err != nil {
		return nil, &teemuerrors.ConfigError{Reason: fmt.Sprintf("cannot decode %s", path), Cause: err}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes YAML data merged over Default, without touching the
// filesystem or environment.
func Parse(data []byte) (*Config, error) {
	base, err := encode(Default())
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &teemuerrors.ConfigError{Reason: "invalid YAML", Cause: err}
	}

	merged := base
	if doc.Kind != 0 {
		merged = Merge(base, &doc)
	}

	var cfg Config
	if err := merged.Decode(&cfg); err != nil {
		return nil, &teemuerrors.ConfigError{Reason: "cannot decode configuration", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string) (*yaml.Node, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return &doc, nil
}

func encode(cfg *Config) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	return &node, nil
}

// loadFromEnv applies environment overrides.
func (c *Config) loadFromEnv() {
	if val := os.Getenv("TEEMU_PROMPT"); val != "" {
		c.Prompt = val
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Output.Color = ColorNever
	}
	if val := os.Getenv("TEEMU_METRICS_ADDR"); val != "" {
		c.Observability.MetricsAddr = val
	}
}

// Validate checks the configuration for values the host cannot use.
// Command payloads are only checked for shape here; the registry applies
// the full registration rules when they are loaded.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &teemuerrors.ConfigError{
			Key:    "output.color",
			Reason: fmt.Sprintf("must be %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Output.Color),
		}
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return &teemuerrors.ConfigError{
			Key:    "log.format",
			Reason: fmt.Sprintf("must be text or json, got %q", c.Log.Format),
		}
	}

	seen := make(map[string]bool, len(c.Commands))
	for i, cmd := range c.Commands {
		key := fmt.Sprintf("commands[%d]", i)
		if cmd.Name == "" {
			return &teemuerrors.ConfigError{Key: key + ".name", Reason: "is required"}
		}
		if seen[cmd.Name] {
			return &teemuerrors.ConfigError{Key: key + ".name", Reason: fmt.Sprintf("%s is declared twice", cmd.Name)}
		}
		seen[cmd.Name] = true

		for j, sub := range cmd.Subcommands {
			if sub.Run == "" {
				return &teemuerrors.ConfigError{
					Key:    fmt.Sprintf("%s.subcommands[%d].run", key, j),
					Reason: "is required",
				}
			}
		}
	}

	return nil
}

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
	"errors"
	"os"
	"path/filepath"
	"testing"

	teemuerrors "github.com/tombee/teemu/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TEEMU_PROMPT", "NO_COLOR", "TEEMU_METRICS_ADDR"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Prompt != "$ " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("Output.Color = %q", cfg.Output.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
prompt: "teemu> "
log:
  level: debug
output:
  windows: [/tmp/a.log]
commands:
  - name: greet
    flat: true
    default: '"hello " + join(args, " ")'
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Prompt != "teemu> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format should keep its default, got %q", cfg.Log.Format)
	}
	if cfg.Output.Color != ColorAuto {
		t.Errorf("Output.Color should keep its default, got %q", cfg.Output.Color)
	}
	if cfg.Banner == "" {
		t.Error("Banner should keep its default")
	}
	if len(cfg.Output.Windows) != 1 || cfg.Output.Windows[0] != "/tmp/a.log" {
		t.Errorf("Output.Windows = %v", cfg.Output.Windows)
	}
	if len(cfg.Commands) != 1 || cfg.Commands[0].Name != "greet" || !cfg.Commands[0].Flat {
		t.Errorf("Commands = %+v", cfg.Commands)
	}
}

func TestLoad_KeepsFlagNodes(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
commands:
  - name: git
    subcommands:
      - name: commit
        run: '"ok"'
        flags:
          --message: the message
          -a: all
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	flags := cfg.Commands[0].Subcommands[0].Flags
	if len(flags.Content) != 4 || flags.Content[0].Value != "--message" || flags.Content[2].Value != "-a" {
		t.Errorf("flag node lost order: %+v", flags.Content)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	clearEnv(t)

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		var cfgErr *teemuerrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})

	t.Run("xdg file is optional", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Prompt != Default().Prompt {
			t.Errorf("expected defaults, got prompt %q", cfg.Prompt)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Prompt != Default().Prompt {
			t.Errorf("expected defaults, got prompt %q", cfg.Prompt)
		}
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEEMU_PROMPT", "> ")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("TEEMU_METRICS_ADDR", "127.0.0.1:9464")

	cfg, err := Load(writeConfig(t, "prompt: ignored\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Prompt != "> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("Output.Color = %q", cfg.Output.Color)
	}
	if cfg.Observability.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("MetricsAddr = %q", cfg.Observability.MetricsAddr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantKey string
	}{
		{"bad color", "output:\n  color: sometimes\n", "output.color"},
		{"bad log format", "log:\n  format: xml\n", "log.format"},
		{"missing command name", "commands:\n  - flat: true\n", "commands[0].name"},
		{"duplicate command", "commands:\n  - name: a\n  - name: a\n", "commands[1].name"},
		{"missing run", "commands:\n  - name: a\n    subcommands:\n      - name: b\n", "commands[0].subcommands[0].run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			var cfgErr *teemuerrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", cfgErr.Key, tt.wantKey)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("prompt: [unterminated"))
	var cfgErr *teemuerrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := ConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "teemu", "config.yaml"); path != want {
		t.Errorf("ConfigPath() = %q, want %q", path, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "teemu")); !os.IsNotExist(err) {
		t.Error("ConfigDir() must not create the directory")
	}
}

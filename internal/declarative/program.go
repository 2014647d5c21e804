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

// Package declarative turns command definitions from configuration into
// registered commands whose bodies are expr programs.
//
// A body is evaluated against an environment with:
//   - args: positional tokens ([]string)
//   - flags: flag tokens as typed ([]string)
//   - command: the command name
//   - subcommand: the subcommand name, empty for default bodies
//   - has(flag): whether flag was passed
//
// The result is written to the command's output: a string is one line, a
// list is one line per element and nil writes nothing. Other values are
// formatted with fmt.
package declarative

import (
	"context"
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tombee/teemu/pkg/command"
	"github.com/tombee/teemu/pkg/errors"
)

// Program is a compiled command body.
type Program struct {
	source  string
	program *vm.Program
}

// Source returns the expression the program was compiled from.
func (p *Program) Source() string { return p.source }

// Compile compiles source for use as a command body. Syntax errors and
// references to unknown names are reported as a ValidationError on "run".
func Compile(source string) (*Program, error) {
	prog, err := expr.Compile(source, expr.Env(newEnv("", "", nil, nil)))
	if err != nil {
		return nil, &errors.ValidationError{
			Field:      "run",
			Message:    fmt.Sprintf("failed to compile expression: %s", err.Error()),
			Suggestion: "reference only args, flags, command, subcommand and has(flag)",
		}
	}
	return &Program{source: source, program: prog}, nil
}

// Eval runs the program and returns the lines it produced.
func (p *Program) Eval(cmd, sub string, args, flags []string) ([]string, error) {
	result, err := expr.Run(p.program, newEnv(cmd, sub, args, flags))
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", p.source, err)
	}
	return toLines(result), nil
}

// Handler returns a command handler that evaluates the program with sub as
// the subcommand name and writes the result to the command's output in a
// single call.
func (p *Program) Handler(sub string) command.HandlerFunc {
	return func(_ context.Context, cmd *command.Command, args, flags []string) error {
		lines, err := p.Eval(cmd.Name(), sub, args, flags)
		if err != nil {
			return err
		}
		if len(lines) > 0 {
			cmd.Output().Write(lines...)
		}
		return nil
	}
}

func newEnv(cmd, sub string, args, flags []string) map[string]any {
	if args == nil {
		args = []string{}
	}
	if flags == nil {
		flags = []string{}
	}
	return map[string]any{
		"args":       args,
		"flags":      flags,
		"command":    cmd,
		"subcommand": sub,
		"has": func(flag string) bool {
			return slices.Contains(flags, flag)
		},
	}
}

func toLines(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return slices.Clone(v)
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			lines = append(lines, fmt.Sprint(item))
		}
		return lines
	default:
		return []string{fmt.Sprint(v)}
	}
}

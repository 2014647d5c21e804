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

package declarative

import (
	"fmt"

	"github.com/tombee/teemu/internal/config"
	"github.com/tombee/teemu/pkg/command"
)

type compiledSub struct {
	cfg     config.SubcommandConfig
	program *Program
}

type compiledCommand struct {
	cfg  config.CommandConfig
	def  *Program
	subs []compiledSub
}

// Load compiles every definition in defs and registers the commands on reg.
// All bodies are compiled before anything is registered, so a syntax error
// leaves reg untouched. Registration errors from the registry are returned
// wrapped with the offending command name.
func Load(reg *command.Registry, defs []config.CommandConfig) error {
	compiled := make([]compiledCommand, 0, len(defs))
	for _, def := range defs {
		cc, err := compile(def)
		if err != nil {
			return err
		}
		compiled = append(compiled, cc)
	}

	for _, cc := range compiled {
		spec := command.CommandSpec{
			Name:        cc.cfg.Name,
			Description: cc.cfg.Description,
			Flat:        cc.cfg.Flat,
		}
		if cc.def != nil {
			spec.Default = cc.def.Handler("")
		}

		cmd, err := reg.Register(spec)
		if err != nil {
			return fmt.Errorf("loading command %s: %w", cc.cfg.Name, err)
		}

		for _, sub := range cc.subs {
			err := cmd.AddSubcommand(command.SubcommandSpec{
				Name:        sub.cfg.Name,
				Usage:       sub.cfg.Usage,
				Description: sub.cfg.Description,
				RawFlags:    &sub.cfg.Flags,
				Handler:     sub.program.Handler(sub.cfg.Name),
			})
			if err != nil {
				return fmt.Errorf("loading command %s: %w", cc.cfg.Name, err)
			}
		}
	}
	return nil
}

func compile(def config.CommandConfig) (compiledCommand, error) {
	cc := compiledCommand{cfg: def}

	if def.Default != "" {
		p, err := Compile(def.Default)
		if err != nil {
			return cc, fmt.Errorf("command %s default: %w", def.Name, err)
		}
		cc.def = p
	}

	for _, sub := range def.Subcommands {
		p, err := Compile(sub.Run)
		if err != nil {
			return cc, fmt.Errorf("command %s %s: %w", def.Name, sub.Name, err)
		}
		cc.subs = append(cc.subs, compiledSub{cfg: sub, program: p})
	}
	return cc, nil
}

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

// Package exec implements the one-shot line command.
package exec

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/teemu/internal/builtin"
	"github.com/tombee/teemu/internal/commands/completion"
	"github.com/tombee/teemu/internal/commands/shared"
	"github.com/tombee/teemu/internal/tracing"
)

// NewCommand creates the exec command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec [--] <line...>",
		Short: "Dispatch a single line and exit",
		Long: `Exec joins its arguments into one line and dispatches it, as if it had
been typed into a session.

Put the line after -- when it contains flags, so teemu does not read them:

  teemu exec -- git commit -m --amend`,
		Example: `  teemu exec echo hello
  teemu exec -- git commit --help`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completion.CompleteLine,
		RunE:              run,
	}
}

func run(cmd *cobra.Command, args []string) (err error) {
	h, err := shared.NewHost(cmd)
	if err != nil {
		return err
	}
	defer shared.CloseHost(cmd, h, &err)

	ctx := cmd.Context()
	h.Telemetry.SessionMetrics().RecordSession(ctx, tracing.ModeExec)

	line := strings.Join(args, " ")
	if err := h.Dispatcher.Parse(ctx, line); err != nil && !errors.Is(err, builtin.ErrExit) {
		return shared.NewExecutionError(line, err)
	}
	return nil
}

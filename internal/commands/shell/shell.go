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

// Package shell implements the interactive session command.
package shell

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/tombee/teemu/internal/commands/shared"
	"github.com/tombee/teemu/internal/repl"
	"github.com/tombee/teemu/internal/tracing"
)

// NewCommand creates the shell command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Shell reads lines from standard input and dispatches each one to the
registered commands. A prompt and banner are shown when standard input is
a terminal. Type 'help' to list commands and 'exit' to leave.

This is the default when teemu is run without a subcommand.`,
		Args: cobra.NoArgs,
		RunE: Run,
	}
}

// Run starts a session on cmd's input and output streams.
func Run(cmd *cobra.Command, _ []string) (err error) {
	h, err := shared.NewHost(cmd)
	if err != nil {
		return err
	}
	defer shared.CloseHost(cmd, h, &err)

	ctx := cmd.Context()
	h.Telemetry.SessionMetrics().RecordSession(ctx, tracing.ModeShell)

	in := cmd.InOrStdin()
	session := repl.New(h.Dispatcher, repl.Config{
		Prompt:      h.Config.Prompt,
		Banner:      h.Config.Banner,
		Interactive: shared.IsInteractive(in),
		Console:     cmd.OutOrStdout(),
		Errors:      cmd.ErrOrStderr(),
		Logger:      h.Logger,
	})

	h.Logger.Debug("session started")
	if err := session.Run(ctx, in); err != nil && !errors.Is(err, context.Canceled) {
		return shared.NewExecutionError("session failed", err)
	}
	return nil
}

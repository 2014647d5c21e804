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

// Package run implements the script command.
package run

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/tombee/teemu/internal/commands/completion"
	"github.com/tombee/teemu/internal/commands/shared"
	"github.com/tombee/teemu/internal/host"
	"github.com/tombee/teemu/internal/repl"
	"github.com/tombee/teemu/internal/tracing"
)

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script|glob>...",
		Short: "Dispatch every line of one or more script files",
		Long: `Run dispatches each line of the given script files in order. Blank
lines and lines starting with # are skipped.

Arguments may be doublestar globs, such as 'scripts/**/*.teemu'. Matches
are run in lexical order, each file once. The first failing line stops the
run; 'exit' ends the current script early.`,
		Example: `  teemu run setup.teemu
  teemu run 'scripts/**/*.teemu'`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completion.CompleteScripts,
		RunE:              runScripts,
	}
}

func runScripts(cmd *cobra.Command, args []string) (err error) {
	scripts, err := expand(args)
	if err != nil {
		return err
	}

	h, err := shared.NewHost(cmd)
	if err != nil {
		return err
	}
	defer shared.CloseHost(cmd, h, &err)

	ctx := cmd.Context()
	h.Telemetry.SessionMetrics().RecordSession(ctx, tracing.ModeScript)

	session := repl.New(h.Dispatcher, repl.Config{Logger: h.Logger})
	for _, path := range scripts {
		if err := runScript(ctx, h, session, path); err != nil {
			return err
		}
	}
	return nil
}

func runScript(ctx context.Context, h *host.Host, session *repl.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return shared.NewScriptError("failed to open script", err)
	}
	defer f.Close()

	h.Logger.Debug("running script", "script", path)
	err = session.RunScript(ctx, path, f)
	h.Telemetry.SessionMetrics().RecordScript(ctx, err)
	if err != nil {
		return shared.NewScriptError("script failed", err)
	}
	return nil
}

// expand resolves each argument as a doublestar glob. A pattern that matches
// no file is an error. The result is sorted and free of duplicates.
func expand(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, shared.NewNoScriptsError(fmt.Sprintf("invalid pattern %q: %v", pattern, err))
		}
		if len(matches) == 0 {
			return nil, shared.NewNoScriptsError(fmt.Sprintf("no scripts match %q", pattern))
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

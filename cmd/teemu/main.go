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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tombee/teemu/internal/cli"
	"github.com/tombee/teemu/internal/commands/completion"
	configcmd "github.com/tombee/teemu/internal/commands/config"
	"github.com/tombee/teemu/internal/commands/exec"
	"github.com/tombee/teemu/internal/commands/run"
	"github.com/tombee/teemu/internal/commands/shell"
	versioncmd "github.com/tombee/teemu/internal/commands/version"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version information from build-time ldflags
	cli.SetVersion(version, commit, buildDate)

	// Create root command; a bare 'teemu' starts a shell
	rootCmd := cli.NewRootCommand()
	rootCmd.RunE = shell.Run
	rootCmd.Args = shell.NewCommand().Args

	rootCmd.AddCommand(shell.NewCommand())
	rootCmd.AddCommand(exec.NewCommand())
	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(configcmd.NewConfigCommand())
	rootCmd.AddCommand(completion.NewCommand())
	rootCmd.AddCommand(versioncmd.NewVersionCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.HandleExitError(err)
	}
}

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

package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tombee/teemu/internal/commands/completion"
	"github.com/tombee/teemu/internal/commands/shared"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for teemu
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teemu",
		Short: "teemu - a line-oriented command shell",
		Long: `teemu reads lines, splits them into a command, an optional subcommand,
positional arguments and flags, and dispatches them to registered commands.

Commands are built in (help, clear, echo, exit) or declared in the config
file (~/.config/teemu/config.yaml). Run 'teemu' for an interactive session,
'teemu exec' for a single line or 'teemu run' for script files.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	addGlobalFlags(cmd.PersistentFlags(), shared.RegisterFlagPointers())

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	_ = cmd.RegisterFlagCompletionFunc("log-level", completion.CompleteLogLevels)
	_ = cmd.RegisterFlagCompletionFunc("log-format", completion.CompleteLogFormats)

	return cmd
}

// addGlobalFlags binds the flags shared by every subcommand.
func addGlobalFlags(fs *pflag.FlagSet, f shared.Flags) {
	fs.StringVar(f.Config, "config", "", "Path to config file (default: ~/.config/teemu/config.yaml)")
	fs.BoolVarP(f.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.BoolVarP(f.Quiet, "quiet", "q", false, "Hide the banner and log errors only")
	fs.BoolVar(f.JSON, "json", false, "Output in JSON format")
	fs.BoolVar(f.Trace, "trace", false, "Write dispatch spans to stderr")
	fs.StringVar(f.Prompt, "prompt", "", "Override the interactive prompt")
	fs.StringVar(f.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(f.LogFormat, "log-format", "", "Log format (text, json)")
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}

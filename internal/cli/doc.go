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

/*
Package cli provides the root command for teemu's CLI.

The command tree is:

	teemu
	├── shell      Interactive session (default)
	├── exec       Dispatch a single line
	├── run        Dispatch script files
	└── version    Show version

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewRootCommand()
	// ... add commands ...
	if err := rootCmd.Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

	--config         Path to config file
	--verbose, -v    Debug logging
	--quiet, -q      No banner; errors only in logs
	--prompt         Override the interactive prompt
	--log-level      trace, debug, info, warn or error
	--log-format     text or json
	--trace          Write dispatch spans to stderr
	--json           JSON output where supported

# Exit Codes

  - 0: Success
  - 1: A line or session failed
  - 2: Configuration could not be loaded
  - 3: A script stopped on a failing line
  - 4: No script matched
*/
package cli

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

package completion

import (
	"io/fs"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

const maxScriptFiles = 100

// CompleteLogLevels provides completion for --log-level flag values.
func CompleteLogLevels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		levels := []string{
			"trace\tPer-token dispatch detail",
			"debug\tRegistration and dispatch decisions",
			"info\tInformational messages",
			"warn\tRejected registrations (default)",
			"error\tErrors only",
		}
		return levels, cobra.ShellCompDirectiveNoFileComp
	})
}

// CompleteLogFormats provides completion for --log-format flag values.
func CompleteLogFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		return []string{"text\tHuman-readable", "json\tOne JSON object per line"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// CompleteScripts suggests *.teemu files below the current directory. When
// none exist it falls back to the shell's file completion.
func CompleteScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		scripts := findScripts(os.DirFS("."), toComplete)
		if len(scripts) == 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return scripts, cobra.ShellCompDirectiveNoFileComp
	})
}

func findScripts(fsys fs.FS, prefix string) []string {
	matches, err := doublestar.Glob(fsys, "**/*.teemu", doublestar.WithFilesOnly())
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range matches {
		if strings.HasPrefix(m, prefix) {
			out = append(out, m)
		}
		if len(out) == maxScriptFiles {
			break
		}
	}
	return out
}

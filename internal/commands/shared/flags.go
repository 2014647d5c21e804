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

package shared

// Global flag values - set by root command
var (
	verboseFlag   bool
	quietFlag     bool
	jsonFlag      bool
	traceFlag     bool
	configFlag    string
	promptFlag    string
	logLevelFlag  string
	logFormatFlag string

	// Build-time version information
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Flags holds pointers to the global flag variables for binding.
type Flags struct {
	Verbose   *bool
	Quiet     *bool
	JSON      *bool
	Trace     *bool
	Config    *string
	Prompt    *string
	LogLevel  *string
	LogFormat *string
}

// RegisterFlagPointers returns pointers to flag variables for binding.
// Called by root command to register flags.
func RegisterFlagPointers() Flags {
	return Flags{
		Verbose:   &verboseFlag,
		Quiet:     &quietFlag,
		JSON:      &jsonFlag,
		Trace:     &traceFlag,
		Config:    &configFlag,
		Prompt:    &promptFlag,
		LogLevel:  &logLevelFlag,
		LogFormat: &logFormatFlag,
	}
}

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verboseFlag
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quietFlag
}

// GetJSON returns the JSON output flag value
func GetJSON() bool {
	return jsonFlag
}

// GetTrace returns whether span export to stderr was requested
func GetTrace() bool {
	return traceFlag
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return configFlag
}

// GetPrompt returns the prompt override, empty when unset
func GetPrompt() string {
	return promptFlag
}

// GetLogLevel returns the log level override, empty when unset
func GetLogLevel() string {
	return logLevelFlag
}

// GetLogFormat returns the log format override, empty when unset
func GetLogFormat() string {
	return logFormatFlag
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return version, commit, buildDate
}

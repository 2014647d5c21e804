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

package errors

import (
	"fmt"
)

// ValidationError represents a registration payload with a missing or
// wrongly typed field.
type ValidationError struct {
	// Field identifies which payload field failed validation
	// (e.g., "name", "fx", "flags").
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return "validation" }

// FlagSyntaxError is returned when a declared flag does not start with one or
// two hyphens followed by a letter or digit.
type FlagSyntaxError struct {
	Command    string
	Subcommand string
	Flag       string
}

// Error implements the error interface.
func (e *FlagSyntaxError) Error() string {
	return fmt.Sprintf("invalid flag %q on %s: flags start with - or -- followed by a letter or digit",
		e.Flag, qualify(e.Command, e.Subcommand))
}

func (e *FlagSyntaxError) ErrorType() string   { return "flag_syntax" }
func (e *FlagSyntaxError) IsUserVisible() bool { return true }
func (e *FlagSyntaxError) UserMessage() string { return e.Error() }
func (e *FlagSyntaxError) Suggestion() string {
	return "write flags as -x or --name"
}

// ReservedFlagError is returned when a caller tries to declare -h or --help.
type ReservedFlagError struct {
	Command    string
	Subcommand string
	Flag       string
}

// Error implements the error interface.
func (e *ReservedFlagError) Error() string {
	return fmt.Sprintf("flag %q on %s is reserved: -h and --help always render help",
		e.Flag, qualify(e.Command, e.Subcommand))
}

func (e *ReservedFlagError) ErrorType() string   { return "reserved_flag" }
func (e *ReservedFlagError) IsUserVisible() bool { return true }
func (e *ReservedFlagError) UserMessage() string { return e.Error() }
func (e *ReservedFlagError) Suggestion() string {
	return "remove the flag; help output is generated automatically"
}

// DuplicateCommandError is returned when a command name is already registered
// and the caller did not ask to overwrite it.
type DuplicateCommandError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %s already registered", e.Name)
}

func (e *DuplicateCommandError) ErrorType() string   { return "duplicate_command" }
func (e *DuplicateCommandError) IsUserVisible() bool { return true }
func (e *DuplicateCommandError) UserMessage() string { return e.Error() }
func (e *DuplicateCommandError) Suggestion() string {
	return "pick another name or register with the force option"
}

// DuplicateSubcommandError is returned when a subcommand name is already
// registered under the same command and the caller did not ask to overwrite it.
type DuplicateSubcommandError struct {
	Command string
	Name    string
}

// Error implements the error interface.
func (e *DuplicateSubcommandError) Error() string {
	return fmt.Sprintf("subcommand %s already registered", qualify(e.Command, e.Name))
}

func (e *DuplicateSubcommandError) ErrorType() string   { return "duplicate_subcommand" }
func (e *DuplicateSubcommandError) IsUserVisible() bool { return true }
func (e *DuplicateSubcommandError) UserMessage() string { return e.Error() }
func (e *DuplicateSubcommandError) Suggestion() string {
	return "pick another name or register with the force option"
}

// FlatCommandError is returned when a subcommand is added to a flat command.
type FlatCommandError struct {
	Command    string
	Subcommand string
}

// Error implements the error interface.
func (e *FlatCommandError) Error() string {
	return fmt.Sprintf("command %s is flat; cannot add subcommand %q", e.Command, e.Subcommand)
}

func (e *FlatCommandError) ErrorType() string   { return "flat_command" }
func (e *FlatCommandError) IsUserVisible() bool { return true }
func (e *FlatCommandError) UserMessage() string { return e.Error() }
func (e *FlatCommandError) Suggestion() string {
	return "register the command without flat to attach subcommands"
}

// CommandNotFoundError is returned at dispatch time when the first token of a
// line does not name a registered command.
type CommandNotFoundError struct {
	Name string
}

// Error implements the error interface. The text doubles as the line written
// to the output sink.
func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Name)
}

func (e *CommandNotFoundError) ErrorType() string   { return "not_found" }
func (e *CommandNotFoundError) IsUserVisible() bool { return true }
func (e *CommandNotFoundError) UserMessage() string { return e.Error() }
func (e *CommandNotFoundError) Suggestion() string {
	return "run help to list the registered commands"
}

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "prompt", "commands[0].name")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func (e *ConfigError) ErrorType() string { return "config" }

func qualify(command, sub string) string {
	if sub == "" {
		return command
	}
	if command == "" {
		return sub
	}
	return command + " " + sub
}

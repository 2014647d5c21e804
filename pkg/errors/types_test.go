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

package errors_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	teemuerrors "github.com/tombee/teemu/pkg/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *teemuerrors.ValidationError
		wantMsg string
	}{
		{
			name: "with field",
			err: &teemuerrors.ValidationError{
				Field:      "fx",
				Message:    "handler is required",
				Suggestion: "pass a handler function",
			},
			wantMsg: "validation failed on fx: handler is required",
		},
		{
			name: "without field",
			err: &teemuerrors.ValidationError{
				Message: "payload is empty",
			},
			wantMsg: "validation failed: payload is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestCommandNotFoundError_Error(t *testing.T) {
	err := &teemuerrors.CommandNotFoundError{Name: "nosuch"}
	if got, want := err.Error(), "nosuch: command not found"; got != want {
		t.Errorf("CommandNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestRegistrationErrors_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "flag syntax",
			err:      &teemuerrors.FlagSyntaxError{Command: "git", Subcommand: "commit", Flag: "m"},
			contains: []string{`"m"`, "git commit"},
		},
		{
			name:     "reserved flag",
			err:      &teemuerrors.ReservedFlagError{Command: "git", Subcommand: "commit", Flag: "--help"},
			contains: []string{`"--help"`, "reserved"},
		},
		{
			name:     "duplicate command",
			err:      &teemuerrors.DuplicateCommandError{Name: "git"},
			contains: []string{"command git already registered"},
		},
		{
			name:     "duplicate subcommand",
			err:      &teemuerrors.DuplicateSubcommandError{Command: "git", Name: "commit"},
			contains: []string{"subcommand git commit already registered"},
		},
		{
			name:     "flat command",
			err:      &teemuerrors.FlatCommandError{Command: "clear", Subcommand: "all"},
			contains: []string{"clear is flat", `"all"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q should contain %q", msg, want)
				}
			}

			var visible teemuerrors.UserVisibleError
			if !errors.As(tt.err, &visible) {
				t.Fatalf("%T should implement UserVisibleError", tt.err)
			}
			if !visible.IsUserVisible() {
				t.Error("expected IsUserVisible() to be true")
			}
			if visible.Suggestion() == "" {
				t.Error("expected a suggestion")
			}
		})
	}
}

func TestConfigError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &teemuerrors.ConfigError{Key: "prompt", Reason: "unreadable", Cause: cause}

	if got, want := err.Error(), "config error at prompt: unreadable"; got != want {
		t.Errorf("ConfigError.Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("ConfigError should unwrap to its cause")
	}

	noKey := &teemuerrors.ConfigError{Reason: "empty file"}
	if got, want := noKey.Error(), "config error: empty file"; got != want {
		t.Errorf("ConfigError.Error() = %q, want %q", got, want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "unknown"},
		{"plain", errors.New("boom"), "unknown"},
		{"direct", &teemuerrors.DuplicateCommandError{Name: "x"}, "duplicate_command"},
		{"wrapped", fmt.Errorf("registering: %w", &teemuerrors.ReservedFlagError{Flag: "-h"}), "reserved_flag"},
		{"config cause", &teemuerrors.ConfigError{Reason: "bad", Cause: &teemuerrors.ValidationError{Field: "name"}}, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := teemuerrors.Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

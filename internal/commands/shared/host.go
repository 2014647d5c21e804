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

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tombee/teemu/internal/host"
)

// NewHost builds the teemu runtime for cmd from the global flags, writing to
// the command's output streams. Failures are returned as config exit errors.
func NewHost(cmd *cobra.Command) (*host.Host, error) {
	v, _, _ := GetVersion()
	h, err := host.New(cmd.Context(), host.Options{
		ConfigPath: GetConfigPath(),
		Prompt:     GetPrompt(),
		LogLevel:   GetLogLevel(),
		LogFormat:  GetLogFormat(),
		Verbose:    GetVerbose(),
		Quiet:      GetQuiet(),
		Trace:      GetTrace(),
		Version:    v,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, NewConfigError("failed to start teemu", err)
	}
	return h, nil
}

// CloseHost releases h, reporting a shutdown failure through errp when no
// earlier error is set. Meant for defer.
func CloseHost(cmd *cobra.Command, h *host.Host, errp *error) {
	if err := h.Close(context.WithoutCancel(cmd.Context())); err != nil && *errp == nil {
		*errp = NewExecutionError("failed to shut down", err)
	}
}

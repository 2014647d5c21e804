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
	"os"
	"strings"
	"testing"
)

func clearInteractiveEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TEEMU_NON_INTERACTIVE", "CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "JENKINS_HOME"} {
		t.Setenv(key, "")
	}
}

func TestIsInteractive_NonFileReader(t *testing.T) {
	clearInteractiveEnv(t)

	if IsInteractive(strings.NewReader("echo hi\n")) {
		t.Error("a string reader is never interactive")
	}
}

func TestIsInteractive_RegularFile(t *testing.T) {
	clearInteractiveEnv(t)

	f, err := os.CreateTemp(t.TempDir(), "script")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsInteractive(f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestIsCIEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected bool
	}{
		{"none", map[string]string{}, false},
		{"CI=true", map[string]string{"CI": "true"}, true},
		{"CI=1", map[string]string{"CI": "1"}, true},
		{"CI=false", map[string]string{"CI": "false"}, false},
		{"GITHUB_ACTIONS", map[string]string{"GITHUB_ACTIONS": "true"}, true},
		{"GITLAB_CI", map[string]string{"GITLAB_CI": "true"}, true},
		{"CIRCLECI", map[string]string{"CIRCLECI": "true"}, true},
		{"JENKINS_HOME path", map[string]string{"JENKINS_HOME": "/var/jenkins"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearInteractiveEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			if got := isCIEnvironment(); got != tt.expected {
				t.Errorf("isCIEnvironment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

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

package dispatch

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"git commit -m", []string{"git", "commit", "-m"}},
		{"  padded   line  ", []string{"padded", "line"}},
		{"echo 'not quoted'", []string{"echo", "'not", "quoted'"}},
		{"tabs\tand\nnewlines", []string{"tabs", "and", "newlines"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Tokenize(tt.line)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	args, flags := Partition([]string{"a", "-x", "b", "--yy", "-", "c"})

	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(args, want) {
		t.Errorf("args = %q, want %q", args, want)
	}
	if want := []string{"-x", "--yy", "-"}; !reflect.DeepEqual(flags, want) {
		t.Errorf("flags = %q, want %q", flags, want)
	}

	args, flags = Partition(nil)
	if args == nil || flags == nil {
		t.Error("Partition should return non-nil slices")
	}
}

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

import "strings"

// Tokenize splits a raw line on whitespace. There is no quoting, escaping or
// expansion: "a 'b c'" yields three tokens. Runs of whitespace count as one
// separator and leading or trailing whitespace is ignored.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// IsFlag reports whether a token is a flag, meaning it starts with a hyphen.
func IsFlag(token string) bool {
	return strings.HasPrefix(token, "-")
}

// Partition splits tokens into positional arguments and flags, keeping the
// original relative order within each. Both results are non-nil.
func Partition(tokens []string) (args, flags []string) {
	args = make([]string, 0, len(tokens))
	flags = make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if IsFlag(tok) {
			flags = append(flags, tok)
		} else {
			args = append(args, tok)
		}
	}
	return args, flags
}

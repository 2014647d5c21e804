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

package command

import (
	"fmt"
	"regexp"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/tombee/teemu/pkg/errors"
)

// flagPattern is the syntax every declared flag must match: one or two
// hyphens followed by a letter or digit.
var flagPattern = regexp.MustCompile(`^-{1,2}[A-Za-z0-9]`)

// Reserved help flags. They can never be declared and always trigger help
// rendering for a resolved subcommand.
const (
	HelpShort = "-h"
	HelpLong  = "--help"
)

// ValidFlagSyntax reports whether name is an acceptable flag declaration,
// ignoring the reserved check.
func ValidFlagSyntax(name string) bool {
	return flagPattern.MatchString(name)
}

// IsReservedFlag reports whether name is one of the help flags.
func IsReservedFlag(name string) bool {
	return name == HelpShort || name == HelpLong
}

// HelpRequested reports whether any of the dispatched flag tokens asks for help.
func HelpRequested(flags []string) bool {
	for _, f := range flags {
		if IsReservedFlag(f) {
			return true
		}
	}
	return false
}

// Flag is one declared flag and its description.
type Flag struct {
	Name        string
	Description string
}

// FlagMap maps flag tokens to descriptions and remembers declaration order,
// which help output follows. The zero value and a nil *FlagMap are both empty.
type FlagMap struct {
	pairs *orderedmap.OrderedMap[string, string]
}

// NewFlagMap returns a FlagMap holding flags in the given order. A repeated
// name keeps its first position and takes the last description.
func NewFlagMap(flags ...Flag) *FlagMap {
	m := &FlagMap{}
	for _, f := range flags {
		m.Set(f.Name, f.Description)
	}
	return m
}

// Set adds or updates a flag and returns m for chaining.
func (m *FlagMap) Set(name, description string) *FlagMap {
	if m.pairs == nil {
		m.pairs = orderedmap.New[string, string]()
	}
	m.pairs.Set(name, description)
	return m
}

// Get returns the description of name.
func (m *FlagMap) Get(name string) (string, bool) {
	if m == nil || m.pairs == nil {
		return "", false
	}
	return m.pairs.Get(name)
}

// Len returns the number of declared flags.
func (m *FlagMap) Len() int {
	if m == nil || m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Flags returns the declared flags in declaration order.
func (m *FlagMap) Flags() []Flag {
	if m.Len() == 0 {
		return nil
	}
	out := make([]Flag, 0, m.pairs.Len())
	for p := m.pairs.Oldest(); p != nil; p = p.Next() {
		out = append(out, Flag{Name: p.Key, Description: p.Value})
	}
	return out
}

// Names returns the declared flag tokens in declaration order.
func (m *FlagMap) Names() []string {
	flags := m.Flags()
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = f.Name
	}
	return names
}

// Clone returns an independent copy of m.
func (m *FlagMap) Clone() *FlagMap {
	return NewFlagMap(m.Flags()...)
}

// FlagMapFromYAML decodes a YAML mapping of flag -> description, keeping the
// document order. A missing or null node yields an empty map. Anything other
// than a mapping of scalars is rejected with a ValidationError on "flags".
func FlagMapFromYAML(node *yaml.Node) (*FlagMap, error) {
	if node == nil || node.Kind == 0 {
		return &FlagMap{}, nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return &FlagMap{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &errors.ValidationError{
			Field:      "flags",
			Message:    fmt.Sprintf("expected a mapping of flag to description, got %s", kindName(node.Kind)),
			Suggestion: `write flags as "--name: description" pairs`,
		}
	}

	m := &FlagMap{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, &errors.ValidationError{
				Field:      "flags",
				Message:    fmt.Sprintf("flag entry at line %d must map a string to a string", key.Line),
				Suggestion: "flag descriptions must be plain strings",
			}
		}
		m.Set(key.Value, value.Value)
	}
	return m, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an unknown node"
	}
}

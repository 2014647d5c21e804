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

package config

import "gopkg.in/yaml.v3"

// Merge returns a new node holding override layered over base. Mappings are
// merged key by key, recursing into nested mappings; the override's value
// wins for every key it sets. Sequences and scalars in override replace the
// base value as a whole. Keys keep base order, with new keys appended in
// override order. Neither input is modified.
func Merge(base, override *yaml.Node) *yaml.Node {
	base, override = unwrapDocument(base), unwrapDocument(override)

	switch {
	case override == nil:
		return clone(base)
	case base == nil:
		return clone(override)
	case base.Kind != yaml.MappingNode || override.Kind != yaml.MappingNode:
		return clone(override)
	}

	out := clone(base)
	index := make(map[string]int, len(out.Content)/2)
	for i := 0; i+1 < len(out.Content); i += 2 {
		index[out.Content[i].Value] = i + 1
	}

	for i := 0; i+1 < len(override.Content); i += 2 {
		key, value := override.Content[i], override.Content[i+1]
		if at, ok := index[key.Value]; ok {
			out.Content[at] = Merge(out.Content[at], value)
			continue
		}
		out.Content = append(out.Content, clone(key), clone(value))
		index[key.Value] = len(out.Content) - 1
	}
	return out
}

func unwrapDocument(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}

// clone deep-copies n. Alias targets are shared, not copied.
func clone(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = clone(child)
		}
	}
	return &c
}

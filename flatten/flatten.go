// Copyright 2026 The Bda Authors
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

// Package flatten turns an arbitrary JSON document into the two sequences
// the inverted index is built from: a stream of (dotted field path, leaf
// Value) pairs, and a stream of every distinct field path the document
// touches, root included.
package flatten

import (
	"sort"
	"strings"

	"github.com/catalogdb/bda/bql"
)

// pathNode pairs a dotted path with the still-undecoded value sitting at
// it, used internally to drive the breadth-first walk.
type pathNode struct {
	path string
	val  any
}

func joinPath(parent, child string) string {
	if parent == "." {
		return "." + child
	}
	return parent + "." + child
}

// Values walks doc breadth-first and returns every (path, Value) leaf
// pair. An object contributes one entry per key; an array contributes one
// entry per element, each inheriting the array's own path (so sibling
// elements of an array collide on path, by design — the field is
// multi-valued). A JSON null leaf becomes bql.Bottom rather than being
// skipped, so "field is null" can still match it.
func Values(doc any) []FieldValue {
	var out []FieldValue
	queue := []pathNode{{path: ".", val: doc}}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		switch v := node.val.(type) {
		case map[string]any:
			for _, k := range sortedKeys(v) {
				queue = append(queue, pathNode{path: joinPath(node.path, k), val: v[k]})
			}
		case []any:
			for _, elem := range v {
				queue = append(queue, pathNode{path: node.path, val: elem})
			}
		default:
			out = append(out, FieldValue{Path: node.path, Value: bql.FromJSON(v)})
		}
	}
	return out
}

// FieldValue is one leaf produced by Values.
type FieldValue struct {
	Path  string
	Value bql.Value
}

// Fields walks doc breadth-first and returns every distinct path touched,
// including every strict prefix of every leaf path and the root "." path,
// each exactly once, in first-visit order.
func Fields(doc any) []string {
	seen := make(map[string]bool)
	var order []string
	mark := func(p string) {
		if !seen[p] {
			seen[p] = true
			order = append(order, p)
		}
	}
	queue := []pathNode{{path: ".", val: doc}}
	mark(".")
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		switch v := node.val.(type) {
		case map[string]any:
			for _, k := range sortedKeys(v) {
				childPath := joinPath(node.path, k)
				mark(childPath)
				queue = append(queue, pathNode{path: childPath, val: v[k]})
			}
		case []any:
			for _, elem := range v {
				queue = append(queue, pathNode{path: node.path, val: elem})
			}
		}
	}
	return order
}

// sortedKeys returns m's keys in a stable order so Values/Fields are
// deterministic regardless of Go's randomized map iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Prefixes returns every prefix of path, shallowest first, ending with
// path itself — ".a.b.c" yields [".", ".a", ".a.b", ".a.b.c"]. The
// index's field-presence bookkeeping does not call it; it records the
// paths Fields returns.
func Prefixes(path string) []string {
	if path == "." {
		return []string{"."}
	}
	parts := strings.Split(strings.TrimPrefix(path, "."), ".")
	out := make([]string, 0, len(parts)+1)
	out = append(out, ".")
	cur := ""
	for _, p := range parts {
		cur += "." + p
		out = append(out, cur)
	}
	return out
}

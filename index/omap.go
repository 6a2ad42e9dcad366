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

// Package index implements the catalog's inverted index: an ordered-map
// primitive, the world/field/value indexes built on it, the set-iterator
// algebra used to combine query results, and the query executor that
// turns a bql.Ast into an iterator over matching entity ids.
package index

import "github.com/google/btree"

// degree is the B-tree branching factor. google/btree recommends values
// in the low tens for in-memory workloads; this is not tuned further.
const degree = 32

type omapEntry[K any, V any] struct {
	key K
	val V
}

// LessFunc orders keys of type K. It must be a strict weak order (the
// same contract sort.Interface.Less requires).
type LessFunc[K any] func(a, b K) bool

// OMap is a persistent ordered map: mutating one copy (via Clone) never
// affects another, and Clone itself is O(1) thanks to google/btree's
// copy-on-write node sharing. This is the ordered-map primitive the
// world/field/value indexes are built from, standing in for the
// catalog's reference implementation's persistent B-tree.
type OMap[K any, V any] struct {
	less LessFunc[K]
	tree *btree.BTreeG[omapEntry[K, V]]
}

// NewOMap creates an empty ordered map ordered by less.
func NewOMap[K any, V any](less LessFunc[K]) *OMap[K, V] {
	entryLess := func(a, b omapEntry[K, V]) bool { return less(a.key, b.key) }
	return &OMap[K, V]{less: less, tree: btree.NewG(degree, entryLess)}
}

// Get returns the value stored at k, if any.
func (m *OMap[K, V]) Get(k K) (V, bool) {
	e, ok := m.tree.Get(omapEntry[K, V]{key: k})
	return e.val, ok
}

// Set inserts or overwrites the value at k.
func (m *OMap[K, V]) Set(k K, v V) {
	m.tree.ReplaceOrInsert(omapEntry[K, V]{key: k, val: v})
}

// Delete removes k, if present.
func (m *OMap[K, V]) Delete(k K) {
	m.tree.Delete(omapEntry[K, V]{key: k})
}

// Len reports the number of entries.
func (m *OMap[K, V]) Len() int { return m.tree.Len() }

// Clone returns a new OMap sharing m's current nodes until one of the two
// is mutated, at which point only the touched path is copied.
func (m *OMap[K, V]) Clone() *OMap[K, V] {
	return &OMap[K, V]{less: m.less, tree: m.tree.Clone()}
}

// Ascend visits every entry in ascending key order, stopping early if fn
// returns false.
func (m *OMap[K, V]) Ascend(fn func(k K, v V) bool) {
	m.tree.Ascend(func(e omapEntry[K, V]) bool { return fn(e.key, e.val) })
}

// AscendGreaterOrEqual visits every entry whose key is >= pivot, in
// ascending order, stopping early if fn returns false.
func (m *OMap[K, V]) AscendGreaterOrEqual(pivot K, fn func(k K, v V) bool) {
	m.tree.AscendGreaterOrEqual(omapEntry[K, V]{key: pivot}, func(e omapEntry[K, V]) bool {
		return fn(e.key, e.val)
	})
}

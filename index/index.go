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

package index

import (
	"sync"
	"sync/atomic"

	"github.com/catalogdb/bda/bql"
	"github.com/catalogdb/bda/flatten"
)

type entitySet = *OMap[EntityID, struct{}]

func newEntitySet() entitySet { return NewOMap[EntityID, struct{}](entityIDLess) }

// wrappedValue adapts bql.Value to the ordered-map key contract using the
// language's total order (bql.Compare) rather than Go's native equality,
// so that e.g. NaN buckets collate and dedupe the way the query language
// requires.
type wrappedValue struct{ v bql.Value }

func wrap(v bql.Value) wrappedValue { return wrappedValue{v} }

func wrappedValueLess(a, b wrappedValue) bool { return bql.Less(a.v, b.v) }

type valueMap = *OMap[wrappedValue, entitySet]

func newValueMap() valueMap { return NewOMap[wrappedValue, entitySet](wrappedValueLess) }

// state is one immutable snapshot of the three indexes: the world index
// (kind -> every entity of that kind), the field index (kind+path ->
// every entity where that path is present, at every prefix depth) and
// the value index (kind+path -> value -> every entity holding that exact
// value at that path).
type state struct {
	world *OMap[EntityKind, entitySet]
	field *OMap[fieldKey, entitySet]
	value *OMap[fieldKey, valueMap]
}

func emptyState() *state {
	return &state{
		world: NewOMap[EntityKind, entitySet](entityKindLess),
		field: NewOMap[fieldKey, entitySet](fieldKeyLess),
		value: NewOMap[fieldKey, valueMap](fieldKeyLess),
	}
}

// Index is the catalog's inverted index. Writers are serialized (mu);
// readers load the current snapshot atomically and never block, and any
// in-flight Search continues to see the snapshot it started with even if
// a concurrent Insert/Remove publishes a new one — each mutation builds
// a new state by cloning only the ordered-map nodes it touches.
type Index struct {
	mu  sync.Mutex
	cur atomic.Pointer[state]
}

// New returns an empty Index.
func New() *Index {
	ix := &Index{}
	ix.cur.Store(emptyState())
	return ix
}

// Insert records doc's leaves and field paths under id in kind's indexes.
// Re-inserting the same (id, path, value) triple is a no-op, matching the
// idempotence the catalog facade's put-same-record case relies on.
func (ix *Index) Insert(kind EntityKind, id EntityID, doc any) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	st := ix.cur.Load()
	next := &state{world: st.world.Clone(), field: st.field.Clone(), value: st.value.Clone()}

	worldSet := cloneOrNew(next.world, kind, newEntitySet)
	worldSet.Set(id, struct{}{})
	next.world.Set(kind, worldSet)

	for _, path := range flatten.Fields(doc) {
		fk := fieldKey{Kind: kind, Path: path}
		fset := cloneOrNew(next.field, fk, newEntitySet)
		fset.Set(id, struct{}{})
		next.field.Set(fk, fset)
	}

	for _, fv := range flatten.Values(doc) {
		fk := fieldKey{Kind: kind, Path: fv.Path}
		vm := cloneOrNew(next.value, fk, newValueMap)
		bucket := cloneOrNewV(vm, wrap(fv.Value), newEntitySet)
		bucket.Set(id, struct{}{})
		vm.Set(wrap(fv.Value), bucket)
		next.value.Set(fk, vm)
	}

	ix.cur.Store(next)
}

// Remove undoes exactly what Insert(kind, id, doc) recorded, pruning any
// set or map that becomes empty as a result. doc must be the same
// document that was last inserted for id; the catalog facade is
// responsible for passing the prior record's body on update/delete.
func (ix *Index) Remove(kind EntityKind, id EntityID, doc any) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	st := ix.cur.Load()
	next := &state{world: st.world.Clone(), field: st.field.Clone(), value: st.value.Clone()}

	if worldSet, ok := next.world.Get(kind); ok {
		worldSet = worldSet.Clone()
		worldSet.Delete(id)
		if worldSet.Len() == 0 {
			next.world.Delete(kind)
		} else {
			next.world.Set(kind, worldSet)
		}
	}

	for _, path := range flatten.Fields(doc) {
		fk := fieldKey{Kind: kind, Path: path}
		if fset, ok := next.field.Get(fk); ok {
			fset = fset.Clone()
			fset.Delete(id)
			if fset.Len() == 0 {
				next.field.Delete(fk)
			} else {
				next.field.Set(fk, fset)
			}
		}
	}

	for _, fv := range flatten.Values(doc) {
		fk := fieldKey{Kind: kind, Path: fv.Path}
		vm, ok := next.value.Get(fk)
		if !ok {
			continue
		}
		vm = vm.Clone()
		wv := wrap(fv.Value)
		if bucket, ok2 := vm.Get(wv); ok2 {
			bucket = bucket.Clone()
			bucket.Delete(id)
			if bucket.Len() == 0 {
				vm.Delete(wv)
			} else {
				vm.Set(wv, bucket)
			}
		}
		if vm.Len() == 0 {
			next.value.Delete(fk)
		} else {
			next.value.Set(fk, vm)
		}
	}

	ix.cur.Store(next)
}

// cloneOrNew fetches m[k], cloning it if present or building a fresh one
// via zero otherwise, so the caller always mutates a copy no other
// snapshot can observe.
func cloneOrNew[K any](m *OMap[K, entitySet], k K, zero func() entitySet) entitySet {
	if v, ok := m.Get(k); ok {
		return v.Clone()
	}
	return zero()
}

func cloneOrNewV(m valueMap, k wrappedValue, zero func() entitySet) entitySet {
	if v, ok := m.Get(k); ok {
		return v.Clone()
	}
	return zero()
}

// Search compiles ast into an EntityIDIter over the entities of kind that
// match it, against the snapshot current at the time Search is called.
func (ix *Index) Search(kind EntityKind, ast bql.Ast) EntityIDIter {
	return ix.cur.Load().search(kind, ast)
}

// Values returns every distinct value stored at (kind, field), ascending.
func (ix *Index) Values(kind EntityKind, field string) []bql.Value {
	st := ix.cur.Load()
	vm, ok := st.value.Get(fieldKey{Kind: kind, Path: field})
	if !ok {
		return nil
	}
	var out []bql.Value
	vm.Ascend(func(v wrappedValue, _ entitySet) bool {
		out = append(out, v.v)
		return true
	})
	return out
}

func (st *state) kindIter(kind EntityKind) EntityIDIter {
	s, ok := st.world.Get(kind)
	if !ok {
		return emptyIter{}
	}
	return entitySetIter(s)
}

func (st *state) fieldPresenceIter(kind EntityKind, field string) EntityIDIter {
	s, ok := st.field.Get(fieldKey{Kind: kind, Path: field})
	if !ok {
		return emptyIter{}
	}
	return entitySetIter(s)
}

func (st *state) valueEqIter(kind EntityKind, field string, pivot bql.Value) EntityIDIter {
	vm, ok := st.value.Get(fieldKey{Kind: kind, Path: field})
	if !ok {
		return emptyIter{}
	}
	s, ok := vm.Get(wrap(pivot))
	if !ok {
		return emptyIter{}
	}
	return entitySetIter(s)
}

// valueBucketsBelow returns the entity-set iterators for every value
// bucket strictly (or, if orEqual, non-strictly) below pivot, ascending.
func (st *state) valueBucketsBelow(kind EntityKind, field string, pivot bql.Value, orEqual bool) []EntityIDIter {
	vm, ok := st.value.Get(fieldKey{Kind: kind, Path: field})
	if !ok {
		return nil
	}
	var out []EntityIDIter
	vm.Ascend(func(v wrappedValue, s entitySet) bool {
		cmp := bql.Compare(v.v, pivot)
		if cmp < 0 || (orEqual && cmp == 0) {
			out = append(out, entitySetIter(s))
			return true
		}
		return false
	})
	return out
}

// valueBucketsAbove returns the entity-set iterators for every value
// bucket above pivot, ascending. The ascent starts at the first bucket
// >= pivot; when orEqual is false the bucket that compares equal to pivot
// (at most one, since buckets are keyed by the value order) is skipped
// and the scan continues past it — the off-by-one a "greater than" test
// needs.
func (st *state) valueBucketsAbove(kind EntityKind, field string, pivot bql.Value, orEqual bool) []EntityIDIter {
	vm, ok := st.value.Get(fieldKey{Kind: kind, Path: field})
	if !ok {
		return nil
	}
	var out []EntityIDIter
	vm.AscendGreaterOrEqual(wrap(pivot), func(v wrappedValue, s entitySet) bool {
		cmp := bql.Compare(v.v, pivot)
		if cmp == 0 && !orEqual {
			return true
		}
		out = append(out, entitySetIter(s))
		return true
	})
	return out
}

func entitySetIter(s entitySet) EntityIDIter {
	if s == nil || s.Len() == 0 {
		return emptyIter{}
	}
	var ids []EntityID
	s.Ascend(func(k EntityID, _ struct{}) bool {
		ids = append(ids, k)
		return true
	})
	return newSliceIter(ids)
}

// search pattern-matches every bql.Ast variant into an iterator
// composition. This is the query executor: it never touches storage
// directly, only the three ordered maps above, combined through And/Or/
// Diff/foldOr/foldAnd.
func (st *state) search(kind EntityKind, ast bql.Ast) EntityIDIter {
	switch n := ast.(type) {
	case bql.All:
		return st.kindIter(kind)

	case bql.Intersection:
		return And(st.search(kind, n.Left), st.search(kind, n.Right))

	case bql.Union:
		return Or(st.search(kind, n.Left), st.search(kind, n.Right))

	case bql.Difference:
		return Diff(st.search(kind, n.Left), st.search(kind, n.Right))

	case bql.Defined:
		pres := st.fieldPresenceIter(kind, n.FieldName)
		if n.Negate {
			return Diff(st.kindIter(kind), pres)
		}
		return pres

	case bql.Equal:
		pivot := bql.Bottom
		if n.FieldValue != nil {
			pivot = *n.FieldValue
		}
		eq := st.valueEqIter(kind, n.FieldName, pivot)
		if n.Negate {
			return Diff(st.kindIter(kind), eq)
		}
		return eq

	case bql.LessThan:
		return foldOr(st.valueBucketsBelow(kind, n.FieldName, n.FieldValue, false))

	case bql.LessThanOrEqual:
		return foldOr(st.valueBucketsBelow(kind, n.FieldName, n.FieldValue, true))

	case bql.GreaterThan:
		return foldOr(st.valueBucketsAbove(kind, n.FieldName, n.FieldValue, false))

	case bql.GreaterThanOrEqual:
		return foldOr(st.valueBucketsAbove(kind, n.FieldName, n.FieldValue, true))

	case bql.ContainsAll:
		iters := make([]EntityIDIter, 0, len(n.FieldValues))
		for _, fv := range n.FieldValues {
			pivot := bql.Bottom
			if fv != nil {
				pivot = *fv
			}
			iters = append(iters, st.valueEqIter(kind, n.FieldName, pivot))
		}
		all := foldAnd(iters, st.kindIter(kind))
		if n.Negate {
			return Diff(st.fieldPresenceIter(kind, n.FieldName), all)
		}
		return all

	case bql.ContainsAny:
		iters := make([]EntityIDIter, 0, len(n.FieldValues))
		for _, fv := range n.FieldValues {
			pivot := bql.Bottom
			if fv != nil {
				pivot = *fv
			}
			iters = append(iters, st.valueEqIter(kind, n.FieldName, pivot))
		}
		any := foldOr(iters)
		if n.Negate {
			return Diff(st.fieldPresenceIter(kind, n.FieldName), any)
		}
		return any

	default:
		return emptyIter{}
	}
}

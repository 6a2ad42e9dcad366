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

// EntityIDIter yields entity ids in strictly ascending, duplicate-free
// order. Every iterator in this package, leaf or combined, upholds that
// contract, which is what lets And/Or/Diff run as a single ascending
// merge pass instead of re-sorting or de-duplicating their inputs.
type EntityIDIter interface {
	// Next returns the next id, or ok == false once exhausted.
	Next() (id EntityID, ok bool)
}

type emptyIter struct{}

func (emptyIter) Next() (EntityID, bool) { return "", false }

// sliceIter adapts a pre-sorted, de-duplicated slice to EntityIDIter. The
// index's leaf sets are small enough in practice to materialize eagerly;
// the merge combinators below are where the single-pass, O(1)-extra-state
// discipline actually matters, since they compose arbitrarily deep.
type sliceIter struct {
	ids []EntityID
	pos int
}

func newSliceIter(ids []EntityID) *sliceIter { return &sliceIter{ids: ids} }

func (s *sliceIter) Next() (EntityID, bool) {
	if s.pos >= len(s.ids) {
		return "", false
	}
	id := s.ids[s.pos]
	s.pos++
	return id, true
}

type mergeOp int

const (
	opAnd mergeOp = iota
	opOr
	opDiff
)

// mergeIter drives the And/Or/Diff combinators over two ascending,
// duplicate-free sources. It holds at most one buffered id per side and
// advances whichever side is behind, emitting according to op whenever
// the two sides meet or diverge — the same state machine as a classic
// sorted-merge join.
type mergeIter struct {
	a, b         EntityIDIter
	op           mergeOp
	curA, curB   EntityID
	okA, okB     bool
	needA, needB bool
}

func newMergeIter(a, b EntityIDIter, op mergeOp) *mergeIter {
	return &mergeIter{a: a, b: b, op: op, needA: true, needB: true}
}

func (m *mergeIter) fill() {
	if m.needA {
		m.curA, m.okA = m.a.Next()
		m.needA = false
	}
	if m.needB {
		m.curB, m.okB = m.b.Next()
		m.needB = false
	}
}

func (m *mergeIter) Next() (EntityID, bool) {
	for {
		m.fill()
		switch m.op {
		case opAnd:
			switch {
			case !m.okA || !m.okB:
				return "", false
			case m.curA == m.curB:
				m.needA, m.needB = true, true
				return m.curA, true
			case m.curA < m.curB:
				m.needA = true
			default:
				m.needB = true
			}
		case opOr:
			switch {
			case !m.okA && !m.okB:
				return "", false
			case !m.okA:
				m.needB = true
				return m.curB, true
			case !m.okB:
				m.needA = true
				return m.curA, true
			case m.curA == m.curB:
				m.needA, m.needB = true, true
				return m.curA, true
			case m.curA < m.curB:
				m.needA = true
				return m.curA, true
			default:
				m.needB = true
				return m.curB, true
			}
		case opDiff:
			switch {
			case !m.okA:
				return "", false
			case !m.okB:
				m.needA = true
				return m.curA, true
			case m.curA == m.curB:
				m.needA, m.needB = true, true
			case m.curA < m.curB:
				m.needA = true
				return m.curA, true
			default:
				m.needB = true
			}
		}
	}
}

// And yields ids present in both a and b.
func And(a, b EntityIDIter) EntityIDIter { return newMergeIter(a, b, opAnd) }

// Or yields ids present in either a or b.
func Or(a, b EntityIDIter) EntityIDIter { return newMergeIter(a, b, opOr) }

// Diff yields ids present in a but not in b.
func Diff(a, b EntityIDIter) EntityIDIter { return newMergeIter(a, b, opDiff) }

// foldOr combines iters pairwise with Or using a small stack, collapsing
// the top two elements whenever the stack holds more than one — the same
// shape as the executor's range-scan folding, which Or-folds however many
// value buckets a range test spans.
func foldOr(iters []EntityIDIter) EntityIDIter {
	return fold(iters, Or, emptyIter{})
}

// foldAnd combines iters pairwise with And the same way foldOr does with
// Or; an empty input folds to base rather than emptyIter, since an
// "all of nothing" test is vacuously true over the full set.
func foldAnd(iters []EntityIDIter, base EntityIDIter) EntityIDIter {
	if len(iters) == 0 {
		return base
	}
	return fold(iters, And, emptyIter{})
}

func fold(iters []EntityIDIter, op func(a, b EntityIDIter) EntityIDIter, zero EntityIDIter) EntityIDIter {
	if len(iters) == 0 {
		return zero
	}
	stack := make([]EntityIDIter, 0, len(iters))
	for _, it := range iters {
		stack = append(stack, it)
		for len(stack) > 1 {
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, op(a, b))
		}
	}
	return stack[0]
}

// Collect drains it into a slice, for tests and for callers that need a
// materialized result (e.g. counting matches).
func Collect(it EntityIDIter) []EntityID {
	var out []EntityID
	for {
		id, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, id)
	}
}

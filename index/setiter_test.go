package index

import "testing"

func sl(ids ...string) EntityIDIter {
	out := make([]EntityID, len(ids))
	for i, id := range ids {
		out[i] = EntityID(id)
	}
	return newSliceIter(out)
}

func collectStrings(it EntityIDIter) []string {
	raw := Collect(it)
	out := make([]string, len(raw))
	for i, id := range raw {
		out[i] = string(id)
	}
	return out
}

func TestAndIsSortedMergeIntersection(t *testing.T) {
	got := collectStrings(And(sl("a", "b", "d"), sl("b", "c", "d", "e")))
	eqStrings(t, got, []string{"b", "d"})
}

func TestOrIsSortedMergeUnionDeduped(t *testing.T) {
	got := collectStrings(Or(sl("a", "b", "d"), sl("b", "c", "d", "e")))
	eqStrings(t, got, []string{"a", "b", "c", "d", "e"})
}

func TestDiffRemovesRightFromLeft(t *testing.T) {
	got := collectStrings(Diff(sl("a", "b", "c", "d"), sl("b", "d")))
	eqStrings(t, got, []string{"a", "c"})
}

func TestEmptySides(t *testing.T) {
	eqStrings(t, collectStrings(And(sl(), sl("a"))), nil)
	eqStrings(t, collectStrings(Or(sl(), sl("a"))), []string{"a"})
	eqStrings(t, collectStrings(Diff(sl(), sl("a"))), nil)
	eqStrings(t, collectStrings(Diff(sl("a"), sl())), []string{"a"})
}

func TestFoldOrMatchesPairwiseOr(t *testing.T) {
	got := collectStrings(foldOr([]EntityIDIter{sl("a", "c"), sl("b"), sl("c", "d")}))
	eqStrings(t, got, []string{"a", "b", "c", "d"})
}

func TestFoldAndVacuousTrueOnEmptyInput(t *testing.T) {
	base := sl("a", "b")
	got := collectStrings(foldAnd(nil, base))
	eqStrings(t, got, []string{"a", "b"})
}

func TestOrIsCommutative(t *testing.T) {
	a := collectStrings(Or(sl("a", "c"), sl("b", "c")))
	b := collectStrings(Or(sl("b", "c"), sl("a", "c")))
	eqStrings(t, a, b)
}

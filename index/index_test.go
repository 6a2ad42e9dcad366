package index

import (
	"testing"

	"github.com/catalogdb/bda/bql"
)

const kindWidget EntityKind = "widget"

func ids(it EntityIDIter) []string {
	raw := Collect(it)
	out := make([]string, len(raw))
	for i, id := range raw {
		out[i] = string(id)
	}
	return out
}

func eqStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func seedIndex() *Index {
	ix := New()
	ix.Insert(kindWidget, "a", map[string]any{"name": "alpha", "rank": float64(1), "tags": []any{"x", "y"}})
	ix.Insert(kindWidget, "b", map[string]any{"name": "beta", "rank": float64(2), "tags": []any{"y", "z"}})
	ix.Insert(kindWidget, "c", map[string]any{"name": "gamma", "rank": float64(3)})
	return ix
}

func TestSearchAll(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse("all")
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a", "b", "c"})
}

func TestSearchDefined(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(".tags")
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a", "b"})
}

func TestSearchDefinedNegated(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse("not .tags")
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"c"})
}

func TestSearchEqual(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(`.name == "beta"`)
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"b"})
}

func TestSearchEqualNegated(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(`.name != "beta"`)
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a", "c"})
}

func TestSearchRangeLessThan(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(".rank < 3")
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a", "b"})
}

func TestSearchRangeGreaterThanExcludesPivotBucket(t *testing.T) {
	ix := New()
	ix.Insert(kindWidget, "a", map[string]any{"rank": float64(1)})
	ix.Insert(kindWidget, "b", map[string]any{"rank": float64(2)})
	ix.Insert(kindWidget, "c", map[string]any{"rank": float64(2)})
	ix.Insert(kindWidget, "d", map[string]any{"rank": float64(3)})

	node, _ := bql.Parse(".rank > 2")
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"d"})

	node2, _ := bql.Parse(".rank >= 2")
	eqStrings(t, ids(ix.Search(kindWidget, node2)), []string{"b", "c", "d"})
}

func TestSearchContainsAll(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(`.tags in all ["x","y"]`)
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a"})
}

func TestSearchContainsAny(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(`.tags in any ["x","z"]`)
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a", "b"})
}

func TestSearchUnionIntersection(t *testing.T) {
	ix := seedIndex()
	node, _ := bql.Parse(`.name == "alpha" or .name == "gamma"`)
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a", "c"})

	node2, _ := bql.Parse(`.tags and .rank < 2`)
	eqStrings(t, ids(ix.Search(kindWidget, node2)), []string{"a"})
}

func TestRemoveIsExactInverseOfInsert(t *testing.T) {
	ix := seedIndex()
	ix.Remove(kindWidget, "a", map[string]any{"name": "alpha", "rank": float64(1), "tags": []any{"x", "y"}})

	node, _ := bql.Parse("all")
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"b", "c"})

	node2, _ := bql.Parse(".tags")
	eqStrings(t, ids(ix.Search(kindWidget, node2)), []string{"b"})
}

func TestInsertIsIdempotent(t *testing.T) {
	ix := New()
	doc := map[string]any{"name": "alpha"}
	ix.Insert(kindWidget, "a", doc)
	ix.Insert(kindWidget, "a", doc)
	node, _ := bql.Parse(`.name == "alpha"`)
	eqStrings(t, ids(ix.Search(kindWidget, node)), []string{"a"})
}

func TestSnapshotIsolation(t *testing.T) {
	ix := New()
	ix.Insert(kindWidget, "a", map[string]any{"name": "alpha"})
	allNode, _ := bql.Parse("all")
	before := ix.Search(kindWidget, allNode)

	ix.Insert(kindWidget, "b", map[string]any{"name": "beta"})

	eqStrings(t, ids(before), []string{"a"})
	after := ix.Search(kindWidget, allNode)
	eqStrings(t, ids(after), []string{"a", "b"})
}

// seedSpecRecords builds the A/B/C records straight out of the
// specification's own seed-test table and returns an index with all
// three inserted under a single kind. The queries-to-expected-ids table
// lives in TestSearchSpecScenarioTable.
func seedSpecRecords(t *testing.T) *Index {
	t.Helper()
	ix := New()
	ix.Insert(kindWidget, "a", map[string]any{
		"name":       "name",
		"namespace":  "namespace",
		"tags":       []any{"a", "b", "c", "d"},
		"attributes": map[string]any{"key4": nil},
		"function":   map[string]any{"runtime": "go1.x"},
	})
	ix.Insert(kindWidget, "b", map[string]any{
		"name":      "nameb",
		"namespace": "namespace",
		"tags":      []any{"a", "b", "c", "d", "e"},
		"function":  map[string]any{"runtime": "go1.x"},
	})
	ix.Insert(kindWidget, "c", map[string]any{
		"name":      "namec",
		"namespace": "namespace",
		"tags":      []any{"a", "b", "c", "d", "e"},
		"runtime":   map[string]any{"container": map[string]any{"dockerfile": "MyDockerfile"}},
	})
	return ix
}

func TestSearchSpecScenarioTable(t *testing.T) {
	ix := seedSpecRecords(t)
	cases := []struct {
		query string
		want  []string
	}{
		{".name", []string{"a", "b", "c"}},
		{`.name == 'name'`, []string{"a"}},
		{`.name != 'name'`, []string{"b", "c"}},
		{`.name > 'name'`, []string{"b", "c"}},
		{`.name >= 'name'`, []string{"a", "b", "c"}},
		{`.tags @all ['a','b','c','d','e']`, []string{"b", "c"}},
		{`.tags !@all ['a','b','c','d','e']`, []string{"a"}},
		{`.tags @any ['a','b','c','d','e']`, []string{"a", "b", "c"}},
		{`.attributes.key4 is null`, []string{"a"}},
		{`.runtime`, []string{"c"}},
		{`.function`, []string{"a", "b"}},
		{`.name > 'name' and .name == 'nameb'`, []string{"b"}},
		{`.name > 'name' or .name == 'name'`, []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		node, err := bql.Parse(tc.query)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.query, err)
		}
		eqStrings(t, ids(ix.Search(kindWidget, node)), tc.want)
	}
}

func TestValuesReturnsDistinctAscending(t *testing.T) {
	ix := seedIndex()
	vals := ix.Values(kindWidget, ".rank")
	if len(vals) != 3 {
		t.Fatalf("got %v", vals)
	}
	for i := 1; i < len(vals); i++ {
		if !bql.Less(vals[i-1], vals[i]) {
			t.Fatalf("values not ascending: %v", vals)
		}
	}
}

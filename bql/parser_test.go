package bql

import "testing"

func mustParse(t *testing.T, s string) Ast {
	t.Helper()
	node, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	return node
}

func TestParseAll(t *testing.T) {
	if _, ok := mustParse(t, "all").(All); !ok {
		t.Fatalf("expected All")
	}
	if _, ok := mustParse(t, "").(All); !ok {
		t.Fatalf("expected empty string to parse as All")
	}
}

func TestParseBareFieldIsDefined(t *testing.T) {
	n, ok := mustParse(t, ".a.b").(Defined)
	if !ok || n.Negate {
		t.Fatalf("got %#v", n)
	}
	if n.FieldName != ".a.b" {
		t.Fatalf("field = %q", n.FieldName)
	}
}

func TestParseNegatedField(t *testing.T) {
	for _, s := range []string{"!field", "not field"} {
		n, ok := mustParse(t, s).(Defined)
		if !ok || !n.Negate {
			t.Fatalf("%q: got %#v", s, n)
		}
	}
}

func TestParseEqualsDefined(t *testing.T) {
	n, ok := mustParse(t, "field == defined").(Defined)
	if !ok || n.Negate {
		t.Fatalf("got %#v", n)
	}
	n2, ok := mustParse(t, "field != defined").(Defined)
	if !ok || !n2.Negate {
		t.Fatalf("got %#v", n2)
	}
}

func TestParseIsNull(t *testing.T) {
	for _, kw := range []string{"null", "nil", "nothing", "none"} {
		n, ok := mustParse(t, "field is "+kw).(Equal)
		if !ok || n.FieldValue != nil || n.Negate {
			t.Fatalf("%q: got %#v", kw, n)
		}
	}
}

func TestParseEqNe(t *testing.T) {
	n, ok := mustParse(t, `field == "abc"`).(Equal)
	if !ok || n.FieldValue == nil || n.FieldValue.Str() != "abc" || n.Negate {
		t.Fatalf("got %#v", n)
	}
	n2, ok := mustParse(t, "field ne 42").(Equal)
	if !ok || n2.FieldValue == nil || n2.FieldValue.Int() != 42 || !n2.Negate {
		t.Fatalf("got %#v", n2)
	}
	n3, ok := mustParse(t, "field eq true").(Equal)
	if !ok || n3.FieldValue == nil || n3.FieldValue.Bool() != true {
		t.Fatalf("got %#v", n3)
	}
}

func TestParseRelations(t *testing.T) {
	if n, ok := mustParse(t, "field < 1").(LessThan); !ok || n.FieldValue.Int() != 1 {
		t.Fatalf("lt: %#v", n)
	}
	if n, ok := mustParse(t, "field lte 1").(LessThanOrEqual); !ok || n.FieldValue.Int() != 1 {
		t.Fatalf("lte: %#v", n)
	}
	if n, ok := mustParse(t, "field > 1").(GreaterThan); !ok || n.FieldValue.Int() != 1 {
		t.Fatalf("gt: %#v", n)
	}
	if n, ok := mustParse(t, "field gte 1").(GreaterThanOrEqual); !ok || n.FieldValue.Int() != 1 {
		t.Fatalf("gte: %#v", n)
	}
}

func TestParseInAllAny(t *testing.T) {
	n, ok := mustParse(t, "field in all [1,2,3]").(ContainsAll)
	if !ok || len(n.FieldValues) != 3 || n.Negate {
		t.Fatalf("got %#v", n)
	}
	n2, ok := mustParse(t, "field#all[1,2]").(ContainsAll)
	if !ok || len(n2.FieldValues) != 2 {
		t.Fatalf("got %#v", n2)
	}
	n3, ok := mustParse(t, "field in any [1,2]").(ContainsAny)
	if !ok || len(n3.FieldValues) != 2 {
		t.Fatalf("got %#v", n3)
	}
	n4, ok := mustParse(t, "field @any[1,2]").(ContainsAny)
	if !ok || len(n4.FieldValues) != 2 {
		t.Fatalf("got %#v", n4)
	}
	n5, ok := mustParse(t, "not field in all [1]").(ContainsAll)
	if !ok || !n5.Negate {
		t.Fatalf("got %#v", n5)
	}
	n6, ok := mustParse(t, `field!@all["a",42.05,true,nil]`).(ContainsAll)
	if !ok || !n6.Negate || len(n6.FieldValues) != 4 {
		t.Fatalf("got %#v", n6)
	}
}

func TestParseInWithNull(t *testing.T) {
	n, ok := mustParse(t, "field in any [1, null, 3]").(ContainsAny)
	if !ok || len(n.FieldValues) != 3 || n.FieldValues[1] != nil {
		t.Fatalf("got %#v", n)
	}
}

// TestParseNotInPostfix covers the postfix negation spelling `field not
// in any [...]`: `not` here appears between the field and the relation
// and, like the prefix `not`/`!` form on a membership test, toggles the
// node's own Negate.
func TestParseNotInPostfix(t *testing.T) {
	n, ok := mustParse(t, `field not in any ["x"]`).(ContainsAny)
	if !ok || !n.Negate || len(n.FieldValues) != 1 {
		t.Fatalf("got %#v", n)
	}
}

func TestParseUnionAndIntersection(t *testing.T) {
	n, ok := mustParse(t, "a and b or c").(Union)
	if !ok {
		t.Fatalf("expected top-level Union (or binds loosest), got %#v", n)
	}
	if _, ok := n.Left.(Intersection); !ok {
		t.Fatalf("expected left side to be the Intersection, got %#v", n.Left)
	}
}

func TestParseParenPrecedence(t *testing.T) {
	n := mustParse(t, "(field == defined) and (field == null or field == 42)")
	inter, ok := n.(Intersection)
	if !ok {
		t.Fatalf("expected Intersection, got %#v", n)
	}
	if _, ok := inter.Left.(Defined); !ok {
		t.Fatalf("left: %#v", inter.Left)
	}
	if _, ok := inter.Right.(Union); !ok {
		t.Fatalf("right: %#v", inter.Right)
	}
}

func TestParseThreeWayUnion(t *testing.T) {
	n := mustParse(t, "a or b or c")
	outer, ok := n.(Union)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	if _, ok := outer.Left.(Union); !ok {
		t.Fatalf("expected left-associative nesting, got %#v", outer.Left)
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"field =", "field in maybe [1]", "(field == 1", `"unterminated`} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) expected error", s)
		}
	}
}

package catalog

import (
	"errors"
	"testing"

	"github.com/catalogdb/bda/resource"
)

func newFunc(name string) *resource.Resource {
	return &resource.Resource{
		Name: name,
		Kind: resource.KindFunction,
		Function: &resource.Function{
			Runtime:    "go1.x",
			Entrypoint: "main.Handle",
		},
	}
}

func TestPutCreate(t *testing.T) {
	c := New(nil)
	op, err := c.Put(newFunc("fn1"))
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != OpCreate {
		t.Fatalf("op = %v", op.Kind)
	}
	if _, ok := c.Get(op.ID); !ok {
		t.Fatalf("Get(%q) not found after create", op.ID)
	}
}

func TestPutMissingKindIsSchemaError(t *testing.T) {
	c := New(nil)
	_, err := c.Put(&resource.Resource{Name: "fn1"})
	if err != resource.ErrMissingKind {
		t.Fatalf("got %v, want ErrMissingKind", err)
	}
}

func TestPutSameIsNoop(t *testing.T) {
	c := New(nil)
	r := newFunc("fn1")
	if _, err := c.Put(r); err != nil {
		t.Fatal(err)
	}
	op, err := c.Put(newFunc("fn1"))
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != OpNone {
		t.Fatalf("expected no-op put, got %v", op.Kind)
	}
}

func TestPutChangeIsUpdate(t *testing.T) {
	c := New(nil)
	if _, err := c.Put(newFunc("fn1")); err != nil {
		t.Fatal(err)
	}
	changed := newFunc("fn1")
	changed.Description = "now with a description"
	op, err := c.Put(changed)
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != OpUpdate {
		t.Fatalf("op = %v", op.Kind)
	}
	if op.Old == nil || op.Old.Description != "" {
		t.Fatalf("old record wrong: %+v", op.Old)
	}
}

func TestDelExistent(t *testing.T) {
	c := New(nil)
	op, _ := c.Put(newFunc("fn1"))
	delOp, err := c.Del(op.ID)
	if err != nil {
		t.Fatal(err)
	}
	if delOp.Kind != OpDelete {
		t.Fatalf("op = %v", delOp.Kind)
	}
	if _, ok := c.Get(op.ID); ok {
		t.Fatalf("record still present after delete")
	}
}

func TestDelNonexistentIsNoop(t *testing.T) {
	c := New(nil)
	op, err := c.Del("/latest/default/function/missing")
	if err != nil {
		t.Fatal(err)
	}
	if op.Kind != OpNone {
		t.Fatalf("op = %v", op.Kind)
	}
}

func TestSearchByFilter(t *testing.T) {
	c := New(nil)
	c.Put(newFunc("fn1"))
	c.Put(newFunc("fn2"))

	q, err := QueryFromFilter(Filter{Bql: `.name == "fn2"`})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Search(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "fn2" {
		t.Fatalf("got %+v", got)
	}
}

func TestSearchDefaultsToAllRegisteredKinds(t *testing.T) {
	c := New(nil)
	c.Put(newFunc("fn1"))

	q, err := QueryFromFilter(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.Search(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
}

func TestSearchLookupMissIsFatal(t *testing.T) {
	c := New(nil)
	op, err := c.Put(newFunc("fn1"))
	if err != nil {
		t.Fatal(err)
	}
	c.kv.del(op.ID) // drift the kvstore out of sync with the index directly

	q, err := QueryFromFilter(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Search(q)
	if !errors.Is(err, ErrLookupMiss) {
		t.Fatalf("got %v, want ErrLookupMiss", err)
	}
}

func TestValues(t *testing.T) {
	c := New(nil)
	c.Put(newFunc("fn1"))
	c.Put(newFunc("fn2"))
	vals := c.Values(EntityKind("function"), ".name")
	if len(vals) != 2 {
		t.Fatalf("got %v", vals)
	}
}

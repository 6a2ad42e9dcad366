package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/resource"
	"github.com/catalogdb/bda/server"
)

func newTestPair(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	cat := catalog.New(nil)
	srv := server.New(cat, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL, nil), ts
}

func newFunc(name string) resource.Resource {
	return resource.Resource{
		Name: name,
		Kind: resource.KindFunction,
		Function: &resource.Function{
			Runtime:    "go1.x",
			Entrypoint: "main.Handle",
		},
	}
}

func TestClientPutAndGet(t *testing.T) {
	c, _ := newTestPair(t)
	ctx := context.Background()

	putResp, err := c.PutResource(ctx, newFunc("fn1"))
	if err != nil {
		t.Fatal(err)
	}
	if putResp.Op != "create" {
		t.Fatalf("op = %q", putResp.Op)
	}

	got, err := c.GetResources(ctx, catalog.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "fn1" {
		t.Fatalf("got %+v", got)
	}
}

func TestClientGetKinds(t *testing.T) {
	c, _ := newTestPair(t)
	ctx := context.Background()
	c.PutResource(ctx, newFunc("fn1"))

	kinds, err := c.GetKinds(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 1 || kinds[0] != "function" {
		t.Fatalf("got %v", kinds)
	}
}

func TestClientDelResource(t *testing.T) {
	c, _ := newTestPair(t)
	ctx := context.Background()
	putResp, _ := c.PutResource(ctx, newFunc("fn1"))

	delResp, err := c.DelResource(ctx, putResp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if delResp.Op != "delete" {
		t.Fatalf("op = %q", delResp.Op)
	}
}

func TestClientStreamResources(t *testing.T) {
	c, _ := newTestPair(t)
	ctx := context.Background()
	c.PutResource(ctx, newFunc("fn1"))
	c.PutResource(ctx, newFunc("fn2"))

	var names []string
	err := c.StreamResources(ctx, catalog.Filter{}, func(r resource.Resource) error {
		names = append(names, r.Name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("got %v", names)
	}
}

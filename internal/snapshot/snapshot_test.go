package snapshot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/catalogdb/bda/resource"
)

func TestNewObjectKeyIsUniquePerCall(t *testing.T) {
	a := NewObjectKey("snapshots")
	b := NewObjectKey("snapshots")
	if a == b {
		t.Fatalf("expected distinct keys, got %q twice", a)
	}
	if !strings.HasPrefix(a, "snapshots/") || !strings.HasSuffix(a, ".ndjson") {
		t.Fatalf("got %q", a)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	rec := record{Resource: resource.Resource{Name: "fn1", Kind: resource.KindFunction}}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var got record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Resource.Name != rec.Resource.Name {
		t.Fatalf("got %+v", got)
	}
}

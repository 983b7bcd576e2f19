package memory_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/storage/memory"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	if _, ok, err := store.Get(ctx, "1", "color"); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "1", "color", "red"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "1", "tags", []string{"a"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "2", "color", "blue"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get(ctx, "1", "color")
	if err != nil || !ok || value != "red" {
		t.Fatalf("get = %v, %v, %v", value, ok, err)
	}

	all, err := store.All(ctx, "1")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	want := map[string]any{"color": "red", "tags": []string{"a"}}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("all mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete(ctx, "2", "color"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "missing", "color"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if diff := cmp.Diff([]string{"1"}, store.ContentIDs()); diff != "" {
		t.Fatalf("content ids mismatch (-want +got):\n%s", diff)
	}
}

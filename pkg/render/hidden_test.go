package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/render"
)

func TestSortedHiddenFields(t *testing.T) {
	sorted := render.SortedHiddenFields(
		render.Hidden(" mb_details_submitted ", 1),
		render.NonceField("mb_details_nonce", "first"),
		render.NonceField("mb_details_nonce", "token123"),
		render.Hidden("  ", "skip"),
	)

	want := []render.HiddenField{
		{Name: "mb_details_nonce", Value: "token123"},
		{Name: "mb_details_submitted", Value: "1"},
	}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}

	if got := render.SortedHiddenFields(render.Hidden("", "x")); got != nil {
		t.Fatalf("expected nil for unnamed fields, got %v", got)
	}
}

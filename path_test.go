package skema_test

import (
	"testing"

	"github.com/reoring/skema"
)

func TestPath_Rendering(t *testing.T) {
	cases := []struct {
		p       skema.Path
		str     string
		pointer string
	}{
		{skema.Root(), "", "/"},
		{skema.Root().Field("items").Index(1).Index(0).Field("kind"), "items[1][0].kind", "/items/1/0/kind"},
		{skema.Root().Index(2), "[2]", "/2"},
		{skema.Root().Field("meta").Field("a.b"), `meta["a.b"]`, "/meta/a.b"},
		{skema.Root().Field("x/y~z"), `["x/y~z"]`, "/x~1y~0z"},
	}
	for _, tc := range cases {
		if got := tc.p.String(); got != tc.str {
			t.Fatalf("String: got %q want %q", got, tc.str)
		}
		if got := tc.p.Pointer(); got != tc.pointer {
			t.Fatalf("Pointer: got %q want %q", got, tc.pointer)
		}
		if got := skema.PathFromPointer(tc.pointer).Pointer(); got != tc.pointer {
			t.Fatalf("PathFromPointer(%q) round trip: %q", tc.pointer, got)
		}
	}
}

func TestPath_Immutable(t *testing.T) {
	base := skema.Root().Field("items")
	a := base.Index(0)
	b := base.Index(1)
	if a.String() != "items[0]" || b.String() != "items[1]" || base.String() != "items" {
		t.Fatalf("extending a path must not alter siblings: %s %s %s", base, a, b)
	}
	if base.Len() != 1 || b.Len() != 2 || b.Last() != "1" || !skema.Root().IsRoot() {
		t.Fatalf("unexpected shape")
	}
}

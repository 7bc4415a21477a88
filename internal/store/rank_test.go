package store

import "testing"

func TestRankBetween_PrefixAdjacent_NoSpace(t *testing.T) {
	// "y" < "y0" but no string sorts strictly between them in this alphabet,
	// since '0' is the minimal digit and end-of-string sorts before any digit.
	if _, err := RankBetween("y", "y0"); err == nil {
		t.Fatalf("expected error for prefix-adjacent bounds (no space), got nil")
	}
}

func TestRankBetween_OrdersStrictly(t *testing.T) {
	cases := []struct{ a, b string }{
		{"", ""},
		{"", "m"},
		{"m", ""},
		{"a", "b"},
		{"h", "h1"},
		{"3", "x"},
	}
	for _, tc := range cases {
		r, err := RankBetween(tc.a, tc.b)
		if err != nil {
			t.Fatalf("RankBetween(%q, %q): %v", tc.a, tc.b, err)
		}
		if tc.a != "" && !(tc.a < r) {
			t.Fatalf("RankBetween(%q, %q) = %q; not above lower bound", tc.a, tc.b, r)
		}
		if tc.b != "" && !(r < tc.b) {
			t.Fatalf("RankBetween(%q, %q) = %q; not below upper bound", tc.a, tc.b, r)
		}
	}
}

func TestRankBetween_RejectsInvertedBounds(t *testing.T) {
	if _, err := RankBetween("q", "d"); err == nil {
		t.Fatalf("expected error for inverted bounds")
	}
}

func TestRankBetweenUnique_AvoidsCollisionByTighteningLowerBound(t *testing.T) {
	existing := map[string]bool{
		"p": true,
	}
	// RankBetween("m","t") commonly yields "p". Ensure we never return an existing rank.
	r, err := RankBetweenUnique(existing, "m", "t")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if existing[r] {
		t.Fatalf("expected returned rank to be unique; got existing rank %q", r)
	}
}

func TestRankBetweenUnique_OpenEndedUpper_IsUnique(t *testing.T) {
	existing := map[string]bool{
		"h0":  true,
		"h00": true,
	}
	r, err := RankBetweenUnique(existing, "h", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if existing[r] {
		t.Fatalf("expected returned rank to be unique; got existing rank %q", r)
	}
}

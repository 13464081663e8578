package label

import "testing"

// TestLabelMatchingScenario implements spec §8 scenario 1: pattern
// "//foo/...:ic_*" against three labels.
func TestLabelMatchingScenario(t *testing.T) {
	p, err := Parse("//foo/...:ic_*")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		label Label
		want  bool
	}{
		{New("foo/a", "ic_star"), true},
		{New("foo/b/c", "ic_home"), true},
		{New("bar", "ic_star"), false},
	}
	for _, c := range cases {
		if got := Matches(p, c.label, ""); got != c.want {
			t.Errorf("Matches(%v) = %v, want %v", c.label, got, c.want)
		}
	}
}

// TestComposedPatternScenario implements spec §8 scenario 2.
func TestComposedPatternScenario(t *testing.T) {
	c, err := ParseComposed([]string{"//foo/...", "-//foo/bar/..."})
	if err != nil {
		t.Fatal(err)
	}

	if !MatchesComposed(c, New("foo/x", "a"), "") {
		t.Error("expected //foo/x:a to match")
	}
	if MatchesComposed(c, New("foo/bar/y", "a"), "") {
		t.Error("expected //foo/bar/y:a to be excluded")
	}
}

// TestRoundTripParseFormat implements the round-trip law from spec §8.
func TestRoundTripParseFormat(t *testing.T) {
	patterns := []string{"//foo:bar", "//foo/...", "//foo:*", "-//foo/bar:baz"}
	for _, s := range patterns {
		p, err := Parse(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		reparsed, err := Parse(p.String())
		if err != nil {
			t.Fatalf("reparse %q: %v", p.String(), err)
		}
		l := New("foo/bar", "baz")
		if Matches(p, l, "") != Matches(reparsed, l, "") {
			t.Errorf("round-trip mismatch for %q -> %q", s, p.String())
		}
	}
}

// TestComposedLaw implements the compose([p, -q]) law from spec §8.
func TestComposedLaw(t *testing.T) {
	p, _ := Parse("//foo/...")
	q, _ := Parse("//foo/bar:*")
	neg, _ := Parse("-//foo/bar:*")
	composed := ComposedPattern{p, neg}

	labels := []Label{New("foo/bar", "x"), New("foo/baz", "x")}
	for _, l := range labels {
		got := MatchesComposed(composed, l, "")
		want := Matches(p, l, "") && !Matches(q, l, "")
		if got != want {
			t.Errorf("label %v: got %v want %v", l, got, want)
		}
	}
}

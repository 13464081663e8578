package label

import "testing"

func TestParseNameRejectsEmpty(t *testing.T) {
	if _, err := ParseName(""); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestParseNameRejectsBadChars(t *testing.T) {
	if _, err := ParseName("foo/bar"); err == nil {
		t.Fatal("expected error for name with slash")
	}
}

func TestLabelString(t *testing.T) {
	l := New(Package("foo/bar"), Name("ic_star"))
	if got, want := l.String(), "//foo/bar:ic_star"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLabelTruncate(t *testing.T) {
	l := New(Package("a/b/c/d/e"), Name("ic_star"))
	for _, n := range []int{100, 20, 12, 5} {
		out := l.Truncate(n)
		if n >= len(l.String()) {
			if out != l.String() {
				t.Fatalf("n=%d: expected full string, got %q", n, out)
			}
			continue
		}
		if out == "" {
			t.Fatalf("n=%d: truncation produced empty string", n)
		}
	}
}

func TestPackageJoin(t *testing.T) {
	var root Package
	if got := root.Join("foo"); got != "foo" {
		t.Fatalf("got %q", got)
	}
	if got := Package("foo").Join("bar/baz"); got != "foo/bar/baz" {
		t.Fatalf("got %q", got)
	}
}

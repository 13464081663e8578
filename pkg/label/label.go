package label

import "fmt"

// Label is the primary identity of a resource: a (Package, Name) pair,
// printed as "//package:name". Labels are the key used for deduplication
// in the action dependency graph.
type Label struct {
	Package Package
	Name    Name
}

// New constructs a Label from an already-validated package and name.
func New(pkg Package, name Name) Label {
	return Label{Package: pkg, Name: name}
}

// String renders the label in canonical //package:name form.
func (l Label) String() string {
	return fmt.Sprintf("//%s:%s", l.Package, l.Name)
}

// Truncate renders the label into at most n characters, replacing a prefix
// of its package path segments with ".../" until it fits, degenerating to
// "//...:name" and finally "//:name" if nothing else fits.
func (l Label) Truncate(n int) string {
	full := l.String()
	if n <= 0 || len(full) <= n {
		return full
	}

	segs := l.Package.Segments()
	for drop := 1; drop <= len(segs); drop++ {
		remaining := segs[drop:]
		var candidate string
		if len(remaining) == 0 {
			candidate = fmt.Sprintf("//...:%s", l.Name)
		} else {
			candidate = fmt.Sprintf("//.../%s:%s", joinSlash(remaining), l.Name)
		}
		if len(candidate) <= n {
			return candidate
		}
	}

	last := fmt.Sprintf("//:%s", l.Name)
	return last
}

func joinSlash(segs []string) string {
	out := segs[0]
	for _, s := range segs[1:] {
		out += "/" + s
	}
	return out
}

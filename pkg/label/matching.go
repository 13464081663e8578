package label

import "strings"

// Matches reports whether l matches p, relative to currentDir when p is not
// absolute. See spec §4.1:
//   - package matches: absolute patterns compare against l.Package directly;
//     relative patterns compare against currentDir.Join(l.Package); wildcard
//     patterns glob-match with "..." translated to "**".
//   - target matches: exact, All, or glob against the target name.
//   - the whole match is negated if p.Negative is set.
func Matches(p LabelPattern, l Label, currentDir Package) bool {
	ok := matchPackage(p, l.Package, currentDir) && matchTarget(p, l.Name)
	if p.Negative {
		return !ok
	}
	return ok
}

func matchPackage(p LabelPattern, pkg, currentDir Package) bool {
	switch p.PackageKind {
	case PackageAll:
		return true
	case PackageExact:
		target := Package(p.PackagePath)
		if !p.Absolute {
			target = currentDir.Join(p.PackagePath)
		}
		return target == pkg
	case PackageWildcard:
		pattern := p.PackagePath
		if !p.Absolute {
			pattern = string(currentDir.Join(pattern))
		}
		return globMatch(translateEllipsis(pattern), string(pkg))
	}
	return false
}

func matchTarget(p LabelPattern, name Name) bool {
	switch p.TargetKind {
	case TargetAll:
		return true
	case TargetExact:
		return string(name) == p.TargetName
	case TargetWildcard:
		return globMatch(p.TargetName, string(name))
	}
	return false
}

// translateEllipsis rewrites Bazel-style "..." segments into a "**"
// glob-wildcard equivalent understood by globMatch.
func translateEllipsis(pattern string) string {
	return strings.ReplaceAll(pattern, "...", "**")
}

// globMatch implements a small glob matcher supporting "*" (any run of
// characters, not crossing "/") and "**" (any run of characters, including
// "/"). It is sufficient for label package/target patterns and avoids a
// regexp-compile per match.
func globMatch(pattern, s string) bool {
	return globMatchRec(pattern, s)
}

func globMatchRec(pattern, s string) bool {
	for {
		if pattern == "" {
			return s == ""
		}
		if strings.HasPrefix(pattern, "**") {
			rest := pattern[2:]
			if rest == "" {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if globMatchRec(rest, s[i:]) {
					return true
				}
			}
			return false
		}
		if strings.HasPrefix(pattern, "*") {
			rest := pattern[1:]
			for i := 0; i <= len(s); i++ {
				if s[:i] != "" && strings.Contains(s[:i], "/") {
					break
				}
				if globMatchRec(rest, s[i:]) {
					return true
				}
			}
			return false
		}
		if s == "" {
			return false
		}
		if pattern[0] != s[0] {
			return false
		}
		pattern = pattern[1:]
		s = s[1:]
	}
}

// MatchesComposed implements the composed-pattern law from spec §8:
// matches iff at least one positive element matches and no negative
// element matches.
func MatchesComposed(c ComposedPattern, l Label, currentDir Package) bool {
	matchedPositive := false
	for _, p := range c {
		if p.Negative {
			if matchNoNegate(p, l, currentDir) {
				return false
			}
			continue
		}
		if matchNoNegate(p, l, currentDir) {
			matchedPositive = true
		}
	}
	return matchedPositive
}

// matchNoNegate evaluates the underlying package/target match without
// applying the element's own Negative flag, so callers can implement the
// composed semantics (rather than double-negating).
func matchNoNegate(p LabelPattern, l Label, currentDir Package) bool {
	return matchPackage(p, l.Package, currentDir) && matchTarget(p, l.Name)
}

// PackagePatternMatches reports whether a package alone (ignoring target)
// could possibly match the pattern. Used by the loader to skip whole
// packages before iterating their resources (spec §4.2 Filtering).
func PackagePatternMatches(c ComposedPattern, pkg Package, currentDir Package) bool {
	matchedPositive := false
	for _, p := range c {
		if matchPackage(p, pkg, currentDir) {
			if p.Negative {
				// A negative package-level match doesn't rule the package
				// out entirely (it may still negate only some targets), so
				// it never blocks traversal on its own.
				continue
			}
			matchedPositive = true
		}
	}
	return matchedPositive || len(c) == 0
}

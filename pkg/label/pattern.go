package label

import (
	"fmt"
	"strings"
)

// PackageKind distinguishes the three shapes a package pattern can take.
type PackageKind int

const (
	// PackageAll matches any package ("...").
	PackageAll PackageKind = iota
	// PackageExact matches exactly one package path.
	PackageExact
	// PackageWildcard matches a package path containing "...".
	PackageWildcard
)

// TargetKind distinguishes the three shapes a target pattern can take.
type TargetKind int

const (
	// TargetAll matches any target name ("*" or "all", or an absent ":name").
	TargetAll TargetKind = iota
	// TargetExact matches exactly one target name.
	TargetExact
	// TargetWildcard matches a target name containing "*".
	TargetWildcard
)

// LabelPattern is one positive or negative element of a composed pattern.
// It selects labels by package shape and target shape.
type LabelPattern struct {
	PackageKind PackageKind
	PackagePath string // meaningful for PackageExact and PackageWildcard

	TargetKind TargetKind
	TargetName string // meaningful for TargetExact and TargetWildcard

	Absolute bool // true if the pattern began with "//"
	Negative bool // true if the pattern began with "-"

	raw string // the original pattern string, for error/round-trip purposes
}

// ParseError records the offending pattern string and substring for
// span-highlighted reporting.
type ParseError struct {
	Pattern   string
	Offending string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s near %q", e.Pattern, e.Reason, e.Offending)
}

// Parse parses a single pattern string into a LabelPattern.
//
// Grammar (see spec §4.1):
//   - a leading "-" sets Negative and is stripped
//   - a leading "//" sets Absolute and is stripped
//   - the pattern is split at the rightmost ":"; left is the package
//     pattern, right is the target pattern. No ":" means TargetAll.
//   - package pattern: "..." -> PackageAll; contains "..." -> PackageWildcard;
//     else PackageExact after per-segment character validation.
//   - target pattern: empty -> error; "*" or "all" -> TargetAll;
//     contains "*" -> TargetWildcard; else TargetExact after validation.
func Parse(pattern string) (LabelPattern, error) {
	raw := pattern
	p := LabelPattern{raw: raw}

	s := pattern
	if strings.HasPrefix(s, "-") {
		p.Negative = true
		s = s[1:]
	}
	if strings.HasPrefix(s, "//") {
		p.Absolute = true
		s = s[2:]
	}

	pkgPart, targetPart, hasColon := cutLast(s, ":")
	if !hasColon {
		targetPart = ""
	}

	if err := p.parsePackagePart(pkgPart, raw); err != nil {
		return LabelPattern{}, err
	}
	if err := p.parseTargetPart(targetPart, hasColon, raw); err != nil {
		return LabelPattern{}, err
	}

	return p, nil
}

// cutLast splits s at the rightmost occurrence of sep, returning before,
// after, and whether sep was found.
func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

func (p *LabelPattern) parsePackagePart(pkgPart, raw string) error {
	switch {
	case pkgPart == "..." || pkgPart == "":
		p.PackageKind = PackageAll
	case strings.Contains(pkgPart, "..."):
		p.PackageKind = PackageWildcard
		p.PackagePath = pkgPart
	default:
		for _, seg := range strings.Split(pkgPart, "/") {
			if !charClassOK(seg) || seg == "" {
				return &ParseError{Pattern: raw, Offending: seg, Reason: "bad package segment"}
			}
		}
		p.PackageKind = PackageExact
		p.PackagePath = pkgPart
	}
	return nil
}

func (p *LabelPattern) parseTargetPart(targetPart string, hasColon bool, raw string) error {
	if !hasColon {
		p.TargetKind = TargetAll
		return nil
	}
	switch {
	case targetPart == "":
		return &ParseError{Pattern: raw, Offending: targetPart, Reason: "empty target"}
	case targetPart == "*" || targetPart == "all":
		p.TargetKind = TargetAll
	case strings.Contains(targetPart, "*"):
		p.TargetKind = TargetWildcard
		p.TargetName = targetPart
	default:
		if !charClassOK(targetPart) {
			return &ParseError{Pattern: raw, Offending: targetPart, Reason: "bad target"}
		}
		p.TargetKind = TargetExact
		p.TargetName = targetPart
	}
	return nil
}

// String reconstructs the pattern string from its parsed form (round-trip
// with Parse, modulo redundant default forms like "//...:all" vs "//...").
func (p LabelPattern) String() string {
	var b strings.Builder
	if p.Negative {
		b.WriteByte('-')
	}
	if p.Absolute {
		b.WriteString("//")
	}
	switch p.PackageKind {
	case PackageAll:
		b.WriteString("...")
	default:
		b.WriteString(p.PackagePath)
	}
	switch p.TargetKind {
	case TargetAll:
		// omitted: default
	case TargetExact, TargetWildcard:
		b.WriteByte(':')
		b.WriteString(p.TargetName)
	}
	return b.String()
}

// ComposedPattern is a sequence of LabelPatterns evaluated together: a label
// matches iff at least one positive element matches and no negative element
// matches.
type ComposedPattern []LabelPattern

// ParseComposed parses a slice of pattern strings into a ComposedPattern.
func ParseComposed(patterns []string) (ComposedPattern, error) {
	out := make(ComposedPattern, 0, len(patterns))
	for _, s := range patterns {
		p, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

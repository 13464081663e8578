// Package config loads and validates the two configuration file classes —
// one workspace file and many per-package files — into a typed Workspace
// graph of remotes, profiles, and resources (spec §3-§4.2).
package config

import "github.com/matzehuels/figx/pkg/label"

// ProfileKind discriminates the built-in profile variants a Profile can
// extend. Every user-defined profile's `extends` field must name one of
// these.
type ProfileKind string

const (
	ProfilePng             ProfileKind = "png"
	ProfileSvg             ProfileKind = "svg"
	ProfilePdf             ProfileKind = "pdf"
	ProfileWebp            ProfileKind = "webp"
	ProfileCompose         ProfileKind = "compose"
	ProfileAndroidWebp     ProfileKind = "android-webp"
	ProfileAndroidDrawable ProfileKind = "android-drawable"
)

// Variant is one named dimension of a multi-output resource (e.g. a night
// theme or an icon size), rewriting both the output file name and the
// Figma node name looked up for that variant.
type Variant struct {
	ID                string
	OutputNamePattern string // contains "{base}" and optionally "{variant}"
	FigmaNamePattern  string
	Scale             *float64
}

// ColorMapping rewrites one fill color when emitting a Compose ImageVector;
// From is either a literal "#RRGGBB" or the wildcard "*".
type ColorMapping struct {
	From string
	To   string
}

// Profile is a named transformation preset. Only the fields relevant to
// Kind are populated by the loader; the rest stay at their zero value.
// Extend implements the field-by-field deep merge described in spec §9:
// "Some in the extension wins; None retains the base".
type Profile struct {
	Name  string
	Kind  ProfileKind
	Extends string // raw `extends` value as written, for error messages

	RemoteID string
	Scale    *float64
	Quality  *int

	OutputDir      string // Png/Svg/Pdf/Webp
	SrcDir         string // Compose
	AndroidResDir  string // AndroidWebp/AndroidDrawable

	// Compose-specific.
	Package            string
	KotlinExplicitAPI  *bool
	ExtensionTarget    string
	FileSuppressLint   []string
	ColorMappings      []ColorMapping
	Preview            *bool
	ComposableGet      *bool

	// AndroidWebp-specific.
	Densities []string
	Night     *bool

	Variants []Variant
	Use      []string // restricts active variant ids, empty = all
}

// mergeFloat returns override if set, else base.
func mergeFloat(base, override *float64) *float64 {
	if override != nil {
		return override
	}
	return base
}

func mergeInt(base, override *int) *int {
	if override != nil {
		return override
	}
	return base
}

func mergeBool(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
}

func mergeString(base, override string) string {
	if override != "" {
		return override
	}
	return base
}

func mergeSlice[T any](base, override []T) []T {
	if override != nil {
		return override
	}
	return base
}

// Extend returns a new Profile formed by deep-merging override onto the
// receiver (the base): fields set in override win, unset fields fall back
// to the base. Name and Kind always come from the base (the referenced
// built-in or named profile); Extends is not propagated since the result
// is not itself a declared profile.
func (base Profile) Extend(override Profile) Profile {
	return Profile{
		Name:     base.Name,
		Kind:     base.Kind,
		RemoteID: mergeString(base.RemoteID, override.RemoteID),
		Scale:    mergeFloat(base.Scale, override.Scale),
		Quality:  mergeInt(base.Quality, override.Quality),

		OutputDir:     mergeString(base.OutputDir, override.OutputDir),
		SrcDir:        mergeString(base.SrcDir, override.SrcDir),
		AndroidResDir: mergeString(base.AndroidResDir, override.AndroidResDir),

		Package:           mergeString(base.Package, override.Package),
		KotlinExplicitAPI: mergeBool(base.KotlinExplicitAPI, override.KotlinExplicitAPI),
		ExtensionTarget:   mergeString(base.ExtensionTarget, override.ExtensionTarget),
		FileSuppressLint:  mergeSlice(base.FileSuppressLint, override.FileSuppressLint),
		ColorMappings:     mergeSlice(base.ColorMappings, override.ColorMappings),
		Preview:           mergeBool(base.Preview, override.Preview),
		ComposableGet:     mergeBool(base.ComposableGet, override.ComposableGet),

		Densities: mergeSlice(base.Densities, override.Densities),
		Night:     mergeBool(base.Night, override.Night),

		Variants: mergeSlice(base.Variants, override.Variants),
		Use:      mergeSlice(base.Use, override.Use),
	}
}

// RemoteSource is a declared remote design source: a Figma file key plus the
// set of top-level container node ids to index, and how to resolve its
// access token.
type RemoteSource struct {
	ID                string
	FileKey           string
	ContainerNodeIDs  []ContainerNodeID
	AccessToken       AccessToken
	Default           bool
}

// ContainerNodeID is one entry of a remote's container_node_ids list: a
// bare node id, optionally paired with a caller-chosen tag (the TOML table
// form `{ "id" = "tag" }`).
type ContainerNodeID struct {
	ID  string
	Tag string
}

// Resource is one declared asset: a Figma node, bound to a remote and a
// profile (inherited or locally overridden), destined for package_dir.
type Resource struct {
	Label      label.Label
	RemoteID   string
	NodeName   string
	PackageDir label.Package
	Profile    Profile
	// Span locates the resource's definition for error messages (spec's
	// FindNode{node_name, file, span}).
	Span Span
}

// InvocationContext records where in the workspace this run was invoked
// from, and what the loader discovered.
type InvocationContext struct {
	WorkspaceRoot      string
	CurrentDir         label.Package
	CacheDir           string
	PackageFiles       []string
	CurrentPackageLabel *label.Package
}

// Workspace is the fully loaded, typed configuration graph: remotes and
// profiles declared at the workspace root, the packages discovered under
// it, and the invocation context that produced it. Slices preserve
// insertion (declaration/discovery) order throughout so that ADG node order
// and output ordering stay reproducible (spec §3).
type Workspace struct {
	Remotes  []RemoteSource
	Profiles []Profile
	Packages []Package
	Context  InvocationContext
}

// Package is one loaded package file's contents: its directory and the
// resources it declares, in declaration order.
type Package struct {
	Dir       label.Package
	Resources []Resource
}

// DefaultRemote returns the workspace's default remote. When there is
// exactly one remote it is always the default, regardless of its Default
// field (spec §4.2: "default = true ... required when >1 remote").
func (w *Workspace) DefaultRemote() (RemoteSource, bool) {
	if len(w.Remotes) == 1 {
		return w.Remotes[0], true
	}
	for _, r := range w.Remotes {
		if r.Default {
			return r, true
		}
	}
	return RemoteSource{}, false
}

// Remote looks up a declared remote by id.
func (w *Workspace) Remote(id string) (RemoteSource, bool) {
	for _, r := range w.Remotes {
		if r.ID == id {
			return r, true
		}
	}
	return RemoteSource{}, false
}

// BuiltinProfile returns the zero-configured base Profile for a built-in
// kind, used as the starting point when a user profile `extends` it.
func BuiltinProfile(kind ProfileKind) Profile {
	return Profile{Kind: kind, Name: string(kind)}
}

package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/figx/pkg/label"
)

// rawResourceOverride mirrors the long-form resource table's override
// fields: the same keys a Profile carries, applied field-by-field on top
// of the referenced profile (spec §4.2).
type rawResourceOverride struct {
	Name              string            `toml:"name"`
	Remote            string            `toml:"remote"`
	Scale             *float64          `toml:"scale"`
	Quality           *int              `toml:"quality"`
	OutputDir         string            `toml:"output_dir"`
	SrcDir            string            `toml:"src_dir"`
	AndroidResDir     string            `toml:"android_res_dir"`
	Package           string            `toml:"package"`
	KotlinExplicitAPI *bool             `toml:"kotlin_explicit_api"`
	ExtensionTarget   string            `toml:"extension_target"`
	FileSuppressLint  []string          `toml:"file_suppress_lint"`
	ColorMappings     map[string]string `toml:"color_mappings"`
	Preview           *bool             `toml:"preview"`
	ComposableGet     *bool             `toml:"composable_get"`
	Densities         []string          `toml:"densities"`
	Night             *bool             `toml:"night"`
	Use               []string          `toml:"use"`
}

func (o rawResourceOverride) toProfile() Profile {
	mappings := make([]ColorMapping, 0, len(o.ColorMappings))
	for from, to := range o.ColorMappings {
		mappings = append(mappings, ColorMapping{From: from, To: to})
	}
	return Profile{
		RemoteID:          o.Remote,
		Scale:             o.Scale,
		Quality:           o.Quality,
		OutputDir:         o.OutputDir,
		SrcDir:            o.SrcDir,
		AndroidResDir:     o.AndroidResDir,
		Package:           o.Package,
		KotlinExplicitAPI: o.KotlinExplicitAPI,
		ExtensionTarget:   o.ExtensionTarget,
		FileSuppressLint:  o.FileSuppressLint,
		ColorMappings:     mappings,
		Preview:           o.Preview,
		ComposableGet:     o.ComposableGet,
		Densities:         o.Densities,
		Night:             o.Night,
		Use:               o.Use,
	}
}

// ParsePackageFile reads and validates a `.fig.toml` package file at path,
// resolving each declared resource's profile by extending profiles[section]
// with any per-resource overrides. dir is the package's directory relative
// to the workspace root.
func ParsePackageFile(path string, dir label.Package, profiles map[string]Profile) ([]Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(CodeFigRead, Span{File: path}, "read package file: %v", err)
	}

	var raw map[string]map[string]toml.Primitive
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, wrapParseError(CodeFigParse, path, err)
	}

	var resources []Resource
	seen := make(map[string]bool)
	for _, k := range meta.Keys() {
		if len(k) != 2 {
			continue
		}
		section, resourceName := k[0], k[1]
		compound := section + "." + resourceName
		if seen[compound] {
			continue
		}
		seen[compound] = true

		base, ok := profiles[section]
		if !ok {
			return nil, newError(CodeFigInvalidProfileName, Span{File: path}, "package %q: resource %q refers to undeclared profile %q", dir, resourceName, section)
		}

		name, err := label.ParseName(resourceName)
		if err != nil {
			return nil, newError(CodeFigInvalidResourceName, Span{File: path}, "package %q: invalid resource name %q: %v", dir, resourceName, err)
		}

		prim := raw[section][resourceName]

		var nodeName string
		var resolved Profile
		var short string
		if err := meta.PrimitiveDecode(prim, &short); err == nil {
			nodeName = short
			resolved = base
		} else {
			var override rawResourceOverride
			if err := meta.PrimitiveDecode(prim, &override); err != nil {
				return nil, newError(CodeFigParse, Span{File: path}, "package %q: resource %q: %v", dir, resourceName, err)
			}
			nodeName = override.Name
			if nodeName == "" {
				nodeName = resourceName
			}
			resolved = base.Extend(override.toProfile())
		}

		remoteID := resolved.RemoteID
		if remoteID == "" {
			remoteID = base.RemoteID
		}

		resources = append(resources, Resource{
			Label:      label.New(dir, name),
			RemoteID:   remoteID,
			NodeName:   nodeName,
			PackageDir: dir,
			Profile:    resolved,
			Span:       Span{File: path},
		})
	}

	return resources, nil
}

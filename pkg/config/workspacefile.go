package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// rawWorkspaceFile mirrors the on-disk workspace TOML shape (spec §6).
// Sub-tables are decoded into maps since remote/profile ids are free-form
// keys; declaration order is recovered separately via MetaData.Keys.
type rawWorkspaceFile struct {
	Remotes  map[string]rawRemote  `toml:"remotes"`
	Profiles map[string]rawProfile `toml:"profiles"`
}

type rawRemote struct {
	FileKey          string      `toml:"file_key"`
	ContainerNodeIDs toml.Primitive `toml:"container_node_ids"`
	AccessToken      toml.Primitive `toml:"access_token"`
	Default          bool        `toml:"default"`
}

type rawProfile struct {
	Extends           string          `toml:"extends"`
	Remote            string          `toml:"remote"`
	OutputDir         string          `toml:"output_dir"`
	SrcDir            string          `toml:"src_dir"`
	AndroidResDir     string          `toml:"android_res_dir"`
	Scale             *float64        `toml:"scale"`
	Quality           *int            `toml:"quality"`
	Package           string          `toml:"package"`
	KotlinExplicitAPI *bool           `toml:"kotlin_explicit_api"`
	ExtensionTarget   string          `toml:"extension_target"`
	FileSuppressLint  []string        `toml:"file_suppress_lint"`
	ColorMappings     map[string]string `toml:"color_mappings"`
	Preview           *bool           `toml:"preview"`
	ComposableGet     *bool           `toml:"composable_get"`
	Densities         []string        `toml:"densities"`
	Night             *bool           `toml:"night"`
	Variants          map[string]rawVariant `toml:"variants"`
	Use               []string        `toml:"use"`
}

type rawVariant struct {
	OutputNamePattern string   `toml:"output_name_pattern"`
	FigmaNamePattern  string   `toml:"figma_name_pattern"`
	Scale             *float64 `toml:"scale"`
}

// ParseWorkspaceFile reads and validates the workspace TOML file at path,
// returning the declared remotes and profiles in declaration order.
func ParseWorkspaceFile(path string) ([]RemoteSource, []Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, newError(CodeWorkspaceRead, Span{File: path}, "read workspace file: %v", err)
	}

	var raw rawWorkspaceFile
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, nil, wrapParseError(CodeWorkspaceParse, path, err)
	}

	remoteOrder := orderedSubkeys(meta, "remotes")
	profileOrder := orderedSubkeys(meta, "profiles")

	remotes := make([]RemoteSource, 0, len(remoteOrder))
	defaultCount := 0
	for _, id := range remoteOrder {
		r := raw.Remotes[id]
		if r.FileKey == "" {
			return nil, nil, newError(CodeWorkspaceRead, Span{File: path}, "remote %q: file_key is required", id)
		}

		ids, err := decodeContainerNodeIDs(meta, r.ContainerNodeIDs)
		if err != nil {
			return nil, nil, newError(CodeWorkspaceRemoteEmptyNodeID, Span{File: path}, "remote %q: %v", id, err)
		}
		if len(ids) == 0 {
			return nil, nil, newError(CodeWorkspaceRemoteEmptyNodeID, Span{File: path}, "remote %q: container_node_ids must be nonempty", id)
		}
		for _, n := range ids {
			if n.ID == "" {
				return nil, nil, newError(CodeWorkspaceRemoteEmptyNodeID, Span{File: path}, "remote %q: container node id must be nonempty", id)
			}
		}

		token, err := decodeAccessToken(meta, r.AccessToken)
		if err != nil {
			return nil, nil, newError(CodeWorkspaceRemoteNoAccessToken, Span{File: path}, "remote %q: access_token: %v", id, err)
		}

		if r.Default {
			defaultCount++
		}

		remotes = append(remotes, RemoteSource{
			ID:               id,
			FileKey:          r.FileKey,
			ContainerNodeIDs: ids,
			AccessToken:      token,
			Default:          r.Default,
		})
	}

	if len(remotes) == 0 {
		return nil, nil, newError(CodeWorkspaceAtLeastOneDefault, Span{File: path}, "workspace must declare at least one remote")
	}
	if len(remotes) > 1 {
		if defaultCount == 0 {
			return nil, nil, newError(CodeWorkspaceAtLeastOneDefault, Span{File: path}, "exactly one remote must set default = true when more than one remote is declared")
		}
		if defaultCount > 1 {
			return nil, nil, newError(CodeWorkspaceMoreThanOneDefault, Span{File: path}, "only one remote may set default = true")
		}
	}

	profiles := make([]Profile, 0, len(profileOrder))
	for _, name := range profileOrder {
		p := raw.Profiles[name]
		if p.Extends == "" {
			return nil, nil, newError(CodeInvalidProfileToExtend, Span{File: path}, "profile %q: extends is required", name)
		}
		kind := ProfileKind(p.Extends)
		switch kind {
		case ProfilePng, ProfileSvg, ProfilePdf, ProfileWebp, ProfileCompose, ProfileAndroidWebp, ProfileAndroidDrawable:
		default:
			return nil, nil, newError(CodeInvalidProfileToExtend, Span{File: path}, "profile %q: unknown extends kind %q", name, p.Extends)
		}

		profiles = append(profiles, buildProfile(name, kind, p))
	}

	return remotes, profiles, nil
}

func buildProfile(name string, kind ProfileKind, p rawProfile) Profile {
	variants := make([]Variant, 0, len(p.Variants))
	for id, v := range p.Variants {
		variants = append(variants, Variant{
			ID:                id,
			OutputNamePattern: v.OutputNamePattern,
			FigmaNamePattern:  v.FigmaNamePattern,
			Scale:             v.Scale,
		})
	}

	mappings := make([]ColorMapping, 0, len(p.ColorMappings))
	for from, to := range p.ColorMappings {
		mappings = append(mappings, ColorMapping{From: from, To: to})
	}

	return Profile{
		Name:              name,
		Kind:              kind,
		Extends:           p.Extends,
		RemoteID:          p.Remote,
		Scale:             p.Scale,
		Quality:           p.Quality,
		OutputDir:         p.OutputDir,
		SrcDir:            p.SrcDir,
		AndroidResDir:     p.AndroidResDir,
		Package:           p.Package,
		KotlinExplicitAPI: p.KotlinExplicitAPI,
		ExtensionTarget:   p.ExtensionTarget,
		FileSuppressLint:  p.FileSuppressLint,
		ColorMappings:     mappings,
		Preview:           p.Preview,
		ComposableGet:     p.ComposableGet,
		Densities:         p.Densities,
		Night:             p.Night,
		Variants:          variants,
		Use:               p.Use,
	}
}

// decodeContainerNodeIDs accepts either a plain string list or a table
// mapping id -> tag (spec §6: `container_node_ids = ["id", ...]` or
// `{ "id" = "tag", ... }`).
func decodeContainerNodeIDs(meta toml.MetaData, prim toml.Primitive) ([]ContainerNodeID, error) {
	var asList []string
	if err := meta.PrimitiveDecode(prim, &asList); err == nil {
		out := make([]ContainerNodeID, len(asList))
		for i, id := range asList {
			out[i] = ContainerNodeID{ID: id}
		}
		return out, nil
	}

	var asTable map[string]string
	if err := meta.PrimitiveDecode(prim, &asTable); err == nil {
		out := make([]ContainerNodeID, 0, len(asTable))
		for id, tag := range asTable {
			out = append(out, ContainerNodeID{ID: id, Tag: tag})
		}
		return out, nil
	}

	return nil, fmt.Errorf("must be a list of strings or a table of id to tag")
}

// decodeAccessToken accepts a literal string, an {env=...} or {keychain=...}
// table, or a list of any of those (spec §4.2's priority list).
func decodeAccessToken(meta toml.MetaData, prim toml.Primitive) (AccessToken, error) {
	var lit string
	if err := meta.PrimitiveDecode(prim, &lit); err == nil {
		return AccessToken{Sources: []AccessTokenSource{{Kind: AccessTokenLiteral, Literal: lit}}}, nil
	}

	if src, err := decodeAccessTokenTable(meta, prim); err == nil {
		return AccessToken{Sources: []AccessTokenSource{src}}, nil
	}

	var rawList []toml.Primitive
	if err := meta.PrimitiveDecode(prim, &rawList); err == nil {
		sources := make([]AccessTokenSource, 0, len(rawList))
		for _, item := range rawList {
			var itemLit string
			if err := meta.PrimitiveDecode(item, &itemLit); err == nil {
				sources = append(sources, AccessTokenSource{Kind: AccessTokenLiteral, Literal: itemLit})
				continue
			}
			src, err := decodeAccessTokenTable(meta, item)
			if err != nil {
				return AccessToken{}, fmt.Errorf("invalid access_token list entry: %v", err)
			}
			sources = append(sources, src)
		}
		return AccessToken{Sources: sources}, nil
	}

	return AccessToken{}, fmt.Errorf("must be a string, {env=...}/{keychain=...} table, or a list of those")
}

func decodeAccessTokenTable(meta toml.MetaData, prim toml.Primitive) (AccessTokenSource, error) {
	var table struct {
		Env      string `toml:"env"`
		Keychain bool   `toml:"keychain"`
	}
	if err := meta.PrimitiveDecode(prim, &table); err != nil {
		return AccessTokenSource{}, err
	}
	if table.Env != "" {
		return AccessTokenSource{Kind: AccessTokenEnv, EnvVar: table.Env}, nil
	}
	if table.Keychain {
		return AccessTokenSource{Kind: AccessTokenKeychain}, nil
	}
	return AccessTokenSource{}, fmt.Errorf("table must set env or keychain")
}

// orderedSubkeys returns the immediate subkeys of a top-level table
// (e.g. "remotes.<id>") in first-declared order, recovering the document
// order that decoding into a Go map would otherwise lose.
func orderedSubkeys(meta toml.MetaData, section string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, k := range meta.Keys() {
		if len(k) >= 2 && k[0] == section && !seen[k[1]] {
			seen[k[1]] = true
			order = append(order, k[1])
		}
	}
	return order
}

// wrapParseError converts a BurntSushi/toml decode error into a
// LoadingError, carrying its byte span when the error is a *toml.ParseError
// (spec §4.2's "byte span within the source file").
func wrapParseError(code Code, path string, err error) *LoadingError {
	if pe, ok := err.(toml.ParseError); ok {
		pos := pe.Position()
		return newError(code, Span{File: path, Line: pos.Line, Col: pos.Col, Start: pos.Start, Len: pos.Len}, "%s", pe.Message)
	}
	return newError(code, Span{File: path}, "%v", err)
}

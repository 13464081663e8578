package evaluator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/figx/pkg/actions"
	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/graph"
	"github.com/matzehuels/figx/pkg/label"
	"github.com/matzehuels/figx/pkg/svg2compose"
)

// Target names one Materialize node in a built graph: the resource (and
// variant/density, if any) it was built from, and the file it writes —
// enough for the CLI to report what a run did without re-walking the
// graph.
type Target struct {
	Label   label.Label
	Variant string
	Density string
	Path    string
	Node    graph.NodeID
}

// Build turns a filtered list of resources into an executable graph. One
// FetchRemoteAction node is shared by every resource using the same remote
// (spec §4.5: "Dedup across resources is natural: all resources sharing a
// remote share this node"); each resource contributes one dependency chain
// per active variant, following one of the six pipeline shapes named in
// spec §4.6, ending in a MaterializeAction.
func Build(ws *config.Workspace, resources []config.Resource, opts Options) (*graph.Configured, []Target, error) {
	b := graph.NewBuilder()
	fetchNodes := make(map[string]graph.NodeID)
	var targets []Target

	for _, res := range resources {
		remote, token, err := resolveRemote(ws, res, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("resource %s: %w", res.Label, err)
		}

		fetchID, ok := fetchNodes[remote.ID]
		if !ok {
			fetchID = b.AddNode(&actions.FetchRemoteAction{
				RemoteName:   remote.ID,
				FileKey:      remote.FileKey,
				AccessToken:  token,
				ContainerIDs: containerIDs(remote),
				ForceRefetch: opts.ForceRefetch,
			})
			fetchNodes[remote.ID] = fetchID
		}

		instances, err := expandVariants(res)
		if err != nil {
			return nil, nil, fmt.Errorf("resource %s: %w", res.Label, err)
		}

		for _, inst := range instances {
			built, err := buildInstance(b, fetchID, ws, res, remote, token, inst)
			if err != nil {
				return nil, nil, fmt.Errorf("resource %s: %w", res.Label, err)
			}
			targets = append(targets, built...)
		}
	}

	conf, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return conf, targets, nil
}

// resolveRemote finds the RemoteSource a resource targets (an explicit
// remote id, or the workspace default when the resource names none) and
// its already-resolved access token.
func resolveRemote(ws *config.Workspace, res config.Resource, opts Options) (config.RemoteSource, string, error) {
	var remote config.RemoteSource
	var ok bool
	if res.RemoteID != "" {
		remote, ok = ws.Remote(res.RemoteID)
	} else {
		remote, ok = ws.DefaultRemote()
	}
	if !ok {
		return config.RemoteSource{}, "", fmt.Errorf("no remote resolves for this resource")
	}
	token := opts.Tokens[remote.ID]
	return remote, token, nil
}

func containerIDs(remote config.RemoteSource) []string {
	ids := make([]string, len(remote.ContainerNodeIDs))
	for i, c := range remote.ContainerNodeIDs {
		ids[i] = c.ID
	}
	return ids
}

// variantInstance is one concrete (figma node, output file) pair a
// resource expands to: the resource itself when it declares no variants,
// or one entry per active variant id otherwise.
type variantInstance struct {
	ID       string // empty for a resource with no variants
	NodeName string
	FileBase string
	Scale    float64
}

// expandVariants resolves a resource's Profile.Variants against its Use
// allow-list (spec §3: "a use list restricts the active subset") and
// substitutes each variant's {base}/{variant} patterns.
func expandVariants(res config.Resource) ([]variantInstance, error) {
	p := res.Profile
	base := res.Label.Name.String()
	effScale := defaultScale
	if p.Scale != nil {
		effScale = *p.Scale
	}

	if len(p.Variants) == 0 {
		return []variantInstance{{NodeName: res.NodeName, FileBase: base, Scale: effScale}}, nil
	}

	active := make(map[string]bool, len(p.Use))
	for _, id := range p.Use {
		active[id] = true
	}

	var out []variantInstance
	for _, v := range p.Variants {
		if len(p.Use) > 0 && !active[v.ID] {
			continue
		}
		scale := effScale
		if v.Scale != nil {
			scale = *v.Scale
		}
		figmaName := res.NodeName
		if v.FigmaNamePattern != "" {
			figmaName = applyPattern(v.FigmaNamePattern, res.NodeName, v.ID)
		}
		out = append(out, variantInstance{
			ID:       v.ID,
			NodeName: figmaName,
			FileBase: applyPattern(v.OutputNamePattern, base, v.ID),
			Scale:    scale,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("profile's use list %v selects no declared variant", p.Use)
	}
	return out, nil
}

func applyPattern(pattern, base, variant string) string {
	r := strings.NewReplacer("{base}", base, "{variant}", variant)
	return r.Replace(pattern)
}

// buildInstance appends one variant's dependency chain to b, dispatching
// on the resource's profile kind (spec §4.6).
func buildInstance(b *graph.Builder, fetchID graph.NodeID, ws *config.Workspace, res config.Resource, remote config.RemoteSource, token string, inst variantInstance) ([]Target, error) {
	p := res.Profile
	outDir := resolveDir(ws, res, p.OutputDir)

	findID := b.AddNode(&actions.FindNodeAction{
		NodeName:      inst.NodeName,
		Span:          res.Span,
		VectorProfile: isVectorProfile(p.Kind),
	})
	mustEdge(b, findID, fetchID)

	switch p.Kind {
	case config.ProfilePng:
		return []Target{buildRasterTarget(b, findID, res, remote, token, inst, outDir, "png", "png", inst.Scale)}, nil

	case config.ProfileSvg:
		return []Target{buildVectorPassthrough(b, findID, res, remote, token, inst, outDir, "svg")}, nil

	case config.ProfilePdf:
		return []Target{buildVectorPassthrough(b, findID, res, remote, token, inst, outDir, "pdf")}, nil

	case config.ProfileWebp:
		return []Target{buildWebpTarget(b, findID, res, remote, token, inst, outDir, p)}, nil

	case config.ProfileCompose:
		return []Target{buildComposeTarget(b, findID, res, remote, token, inst, ws, p)}, nil

	case config.ProfileAndroidWebp:
		return buildAndroidWebpTargets(b, findID, res, remote, token, inst, ws, p)

	case config.ProfileAndroidDrawable:
		return []Target{buildAndroidDrawableTarget(b, findID, res, remote, token, inst, ws, p)}, nil

	default:
		return nil, fmt.Errorf("unknown profile kind %q", p.Kind)
	}
}

func isVectorProfile(kind config.ProfileKind) bool {
	switch kind {
	case config.ProfileSvg, config.ProfilePdf, config.ProfileCompose, config.ProfileAndroidDrawable:
		return true
	default:
		return false
	}
}

// resolveDir joins a profile's declared directory (relative to the
// resource's own package, matching the label system's package-relative
// addressing) onto the workspace root.
func resolveDir(ws *config.Workspace, res config.Resource, dir string) string {
	return filepath.Join(ws.Context.WorkspaceRoot, string(res.PackageDir), dir)
}

func mustEdge(b *graph.Builder, node, dep graph.NodeID) {
	if err := b.AddEdge(node, dep); err != nil {
		panic(err) // both ids were just returned by AddNode on this builder
	}
}

func buildRasterTarget(b *graph.Builder, findID graph.NodeID, res config.Resource, remote config.RemoteSource, token string, inst variantInstance, outDir, format, ext string, scale float64) Target {
	exportID := b.AddNode(&actions.ExportImageAction{FileKey: remote.FileKey, AccessToken: token, Format: format, Scale: scale})
	mustEdge(b, exportID, findID)

	downloadID := b.AddNode(&actions.DownloadImgAction{})
	mustEdge(b, downloadID, exportID)

	matID := b.AddNode(&actions.MaterializeAction{OutputDir: outDir, FileName: inst.FileBase, Extension: ext})
	mustEdge(b, matID, downloadID)

	return Target{Label: res.Label, Variant: inst.ID, Path: filepath.Join(outDir, inst.FileBase+"."+ext), Node: matID}
}

func buildVectorPassthrough(b *graph.Builder, findID graph.NodeID, res config.Resource, remote config.RemoteSource, token string, inst variantInstance, outDir, ext string) Target {
	exportID := b.AddNode(&actions.ExportImageAction{FileKey: remote.FileKey, AccessToken: token, Format: ext, Scale: inst.Scale})
	mustEdge(b, exportID, findID)

	downloadID := b.AddNode(&actions.DownloadImgAction{})
	mustEdge(b, downloadID, exportID)

	matID := b.AddNode(&actions.MaterializeAction{OutputDir: outDir, FileName: inst.FileBase, Extension: ext})
	mustEdge(b, matID, downloadID)

	return Target{Label: res.Label, Variant: inst.ID, Path: filepath.Join(outDir, inst.FileBase+"."+ext), Node: matID}
}

func buildWebpTarget(b *graph.Builder, findID graph.NodeID, res config.Resource, remote config.RemoteSource, token string, inst variantInstance, outDir string, p config.Profile) Target {
	exportID := b.AddNode(&actions.ExportImageAction{FileKey: remote.FileKey, AccessToken: token, Format: "png", Scale: inst.Scale})
	mustEdge(b, exportID, findID)

	downloadID := b.AddNode(&actions.DownloadImgAction{})
	mustEdge(b, downloadID, exportID)

	webpID := b.AddNode(&actions.TransformWebpAction{Quality: resolveQuality(p)})
	mustEdge(b, webpID, downloadID)

	matID := b.AddNode(&actions.MaterializeAction{OutputDir: outDir, FileName: inst.FileBase, Extension: "webp"})
	mustEdge(b, matID, webpID)

	return Target{Label: res.Label, Variant: inst.ID, Path: filepath.Join(outDir, inst.FileBase+".webp"), Node: matID}
}

func buildComposeTarget(b *graph.Builder, findID graph.NodeID, res config.Resource, remote config.RemoteSource, token string, inst variantInstance, ws *config.Workspace, p config.Profile) Target {
	exportID := b.AddNode(&actions.ExportImageAction{FileKey: remote.FileKey, AccessToken: token, Format: "svg", Scale: inst.Scale})
	mustEdge(b, exportID, findID)

	downloadID := b.AddNode(&actions.DownloadImgAction{})
	mustEdge(b, downloadID, exportID)

	srcDir := resolveDir(ws, res, p.SrcDir)
	kotlinPkgID := b.AddNode(&actions.GetKotlinPackageAction{OutputDir: srcDir, Default: p.Package})

	explicitAPI := false
	if p.KotlinExplicitAPI != nil {
		explicitAPI = *p.KotlinExplicitAPI
	}
	preview := true
	if p.Preview != nil {
		preview = *p.Preview
	}
	composableGet := false
	if p.ComposableGet != nil {
		composableGet = *p.ComposableGet
	}

	svgToComposeID := b.AddNode(&actions.TransformSvgToComposeAction{
		ImageName:         imageName(inst.FileBase),
		KotlinExplicitAPI: explicitAPI,
		ExtensionTarget:   p.ExtensionTarget,
		FileSuppressLint:  p.FileSuppressLint,
		ColorMappings:     configColorMappings(p.ColorMappings),
		SkipPreview:       !preview,
		ComposableGet:     composableGet,
	})
	mustEdge(b, svgToComposeID, downloadID)
	mustEdge(b, svgToComposeID, kotlinPkgID)

	matID := b.AddNode(&actions.MaterializeAction{OutputDir: srcDir, FileName: imageName(inst.FileBase), Extension: "kt"})
	mustEdge(b, matID, svgToComposeID)

	return Target{Label: res.Label, Variant: inst.ID, Path: filepath.Join(srcDir, imageName(inst.FileBase)+".kt"), Node: matID}
}

func buildAndroidWebpTargets(b *graph.Builder, findID graph.NodeID, res config.Resource, remote config.RemoteSource, token string, inst variantInstance, ws *config.Workspace, p config.Profile) ([]Target, error) {
	exportID := b.AddNode(&actions.ExportImageAction{FileKey: remote.FileKey, AccessToken: token, Format: "png", Scale: androidMasterScale})
	mustEdge(b, exportID, findID)

	downloadID := b.AddNode(&actions.DownloadImgAction{})
	mustEdge(b, downloadID, exportID)

	densities := p.Densities
	if len(densities) == 0 {
		densities = []string{"mdpi", "hdpi", "xhdpi", "xxhdpi", "xxxhdpi"}
	}
	night := p.Night != nil && *p.Night
	resDir := resolveDir(ws, res, p.AndroidResDir)

	var targets []Target
	quality := resolveQuality(p)
	for _, density := range densities {
		factor, ok := actions.DensityFactors[density]
		if !ok {
			return nil, fmt.Errorf("unknown android density %q", density)
		}

		scaleID := b.AddNode(&actions.TransformScaleAction{Density: density, Factor: factor / androidMasterScale})
		mustEdge(b, scaleID, downloadID)

		webpID := b.AddNode(&actions.TransformWebpAction{Quality: quality})
		mustEdge(b, webpID, scaleID)

		dirName := "drawable-" + density
		if night {
			dirName = "drawable-night-" + density
		}
		dir := filepath.Join(resDir, dirName)
		matID := b.AddNode(&actions.MaterializeAction{OutputDir: dir, FileName: inst.FileBase, Extension: "webp"})
		mustEdge(b, matID, webpID)

		targets = append(targets, Target{
			Label: res.Label, Variant: inst.ID, Density: density,
			Path: filepath.Join(dir, inst.FileBase+".webp"), Node: matID,
		})
	}
	return targets, nil
}

func buildAndroidDrawableTarget(b *graph.Builder, findID graph.NodeID, res config.Resource, remote config.RemoteSource, token string, inst variantInstance, ws *config.Workspace, p config.Profile) Target {
	exportID := b.AddNode(&actions.ExportImageAction{FileKey: remote.FileKey, AccessToken: token, Format: "svg", Scale: inst.Scale})
	mustEdge(b, exportID, findID)

	downloadID := b.AddNode(&actions.DownloadImgAction{})
	mustEdge(b, downloadID, exportID)

	drawableID := b.AddNode(&actions.TransformSvgToDrawableAction{XMLDeclaration: true})
	mustEdge(b, drawableID, downloadID)

	night := p.Night != nil && *p.Night
	dirName := "drawable"
	if night {
		dirName = "drawable-night"
	}
	dir := filepath.Join(resolveDir(ws, res, p.AndroidResDir), dirName)
	matID := b.AddNode(&actions.MaterializeAction{OutputDir: dir, FileName: inst.FileBase, Extension: "xml"})
	mustEdge(b, matID, drawableID)

	return Target{Label: res.Label, Variant: inst.ID, Path: filepath.Join(dir, inst.FileBase+".xml"), Node: matID}
}

func resolveQuality(p config.Profile) int {
	if p.Quality != nil {
		return *p.Quality
	}
	return defaultQuality
}

// imageName derives a Kotlin-legal PascalCase identifier from a resource's
// output-file base name (e.g. "ic_star" -> "IcStar"), matching the naming
// convention spec §6's Compose output expects.
func imageName(base string) string {
	parts := strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	if sb.Len() == 0 {
		return "Image"
	}
	return sb.String()
}

func configColorMappings(in []config.ColorMapping) []svg2compose.ColorMapping {
	out := make([]svg2compose.ColorMapping, len(in))
	for i, m := range in {
		out[i] = svg2compose.ColorMapping{From: m.From, To: m.To}
	}
	return out
}

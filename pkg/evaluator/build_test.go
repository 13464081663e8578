package evaluator

import (
	"strings"
	"testing"

	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/label"
)

func testWorkspace(t *testing.T, kind config.ProfileKind) (*config.Workspace, config.Resource) {
	t.Helper()
	pkg, err := label.ParsePackage("icons")
	if err != nil {
		t.Fatal(err)
	}
	name, err := label.ParseName("star")
	if err != nil {
		t.Fatal(err)
	}

	ws := &config.Workspace{
		Remotes: []config.RemoteSource{{
			ID:               "default",
			FileKey:          "FILEKEY",
			ContainerNodeIDs: []config.ContainerNodeID{{ID: "1:1"}},
			Default:          true,
		}},
		Context: config.InvocationContext{WorkspaceRoot: "/ws"},
	}
	res := config.Resource{
		Label:      label.New(pkg, name),
		NodeName:   "Icon / Star",
		PackageDir: pkg,
		Profile:    config.Profile{Kind: kind, OutputDir: "out"},
	}
	return ws, res
}

func TestBuildPngSingleChain(t *testing.T) {
	ws, res := testWorkspace(t, config.ProfilePng)
	conf, targets, err := Build(ws, []config.Resource{res}, Options{Tokens: map[string]string{"default": "tok"}})
	if err != nil {
		t.Fatal(err)
	}
	// FetchRemote, FindNode, ExportImage, DownloadImg, Materialize.
	if conf.NodeCount() != 5 {
		t.Fatalf("expected 5 nodes, got %d", conf.NodeCount())
	}
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if !strings.HasSuffix(targets[0].Path, "out/star.png") {
		t.Fatalf("unexpected target path: %s", targets[0].Path)
	}
}

func TestBuildSharesFetchRemoteAcrossResources(t *testing.T) {
	ws, res1 := testWorkspace(t, config.ProfilePng)
	_, res2 := testWorkspace(t, config.ProfilePng)
	name2, _ := label.ParseName("heart")
	res2.Label = label.New(res2.PackageDir, name2)
	res2.NodeName = "Icon / Heart"

	conf, targets, err := Build(ws, []config.Resource{res1, res2}, Options{Tokens: map[string]string{"default": "tok"}})
	if err != nil {
		t.Fatal(err)
	}
	// One shared FetchRemote + 2*(FindNode, Export, Download, Materialize).
	if conf.NodeCount() != 9 {
		t.Fatalf("expected 9 nodes (shared fetch), got %d", conf.NodeCount())
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
}

func TestBuildAndroidWebpFansOutPerDensity(t *testing.T) {
	ws, res := testWorkspace(t, config.ProfileAndroidWebp)
	res.Profile.AndroidResDir = "res"
	res.Profile.Densities = []string{"mdpi", "xxxhdpi"}

	conf, targets, err := Build(ws, []config.Resource{res}, Options{Tokens: map[string]string{"default": "tok"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 density targets, got %d", len(targets))
	}
	if conf.NodeCount() == 0 {
		t.Fatal("expected a non-empty graph")
	}
	var sawMdpi, sawXxxhdpi bool
	for _, tg := range targets {
		if strings.Contains(tg.Path, "drawable-mdpi") {
			sawMdpi = true
		}
		if strings.Contains(tg.Path, "drawable-xxxhdpi") {
			sawXxxhdpi = true
		}
	}
	if !sawMdpi || !sawXxxhdpi {
		t.Fatalf("expected both density directories among targets: %+v", targets)
	}
}

func TestBuildVariantsExpandAndRespectUseFilter(t *testing.T) {
	ws, res := testWorkspace(t, config.ProfilePng)
	res.Profile.Variants = []config.Variant{
		{ID: "light", OutputNamePattern: "{base}_{variant}", FigmaNamePattern: "{base} / Light"},
		{ID: "dark", OutputNamePattern: "{base}_{variant}", FigmaNamePattern: "{base} / Dark"},
	}
	res.Profile.Use = []string{"dark"}
	res.NodeName = "Icon"

	_, targets, err := Build(ws, []config.Resource{res}, Options{Tokens: map[string]string{"default": "tok"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 1 {
		t.Fatalf("expected exactly 1 target (use=[dark]), got %d", len(targets))
	}
	if !strings.Contains(targets[0].Path, "star_dark.png") {
		t.Fatalf("unexpected variant output path: %s", targets[0].Path)
	}
}

func TestBuildUnknownRemoteErrors(t *testing.T) {
	ws, res := testWorkspace(t, config.ProfilePng)
	res.RemoteID = "does-not-exist"
	if _, _, err := Build(ws, []config.Resource{res}, Options{}); err == nil {
		t.Fatal("expected an error for an unresolvable remote")
	}
}

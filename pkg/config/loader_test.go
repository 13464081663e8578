package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/figx/pkg/label"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	mustWrite(t, filepath.Join(root, WorkspaceFileName), `
[remotes.main]
file_key = "abc123"
container_node_ids = ["1:1"]
access_token = "literal-token"

[profiles.icons]
extends = "png"
output_dir = "assets/icons"
scale = 2.0
`)

	mustMkdir(t, filepath.Join(root, "ui", "icons"))
	mustWrite(t, filepath.Join(root, "ui", "icons", PackageFileName), `
[icons]
ic_star = "Icon / Star"
ic_heart = "Icon / Heart"
`)

	mustMkdir(t, filepath.Join(root, "ui", "buttons"))
	mustWrite(t, filepath.Join(root, "ui", "buttons", PackageFileName), `
[icons]
btn_primary = "Button / Primary"
`)

	return root
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func TestFindWorkspaceRootWalksAncestors(t *testing.T) {
	root := writeWorkspace(t)
	sub := filepath.Join(root, "ui", "icons")

	got, err := FindWorkspaceRoot(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != root {
		t.Fatalf("got %q, want %q", got, root)
	}
}

func TestFindWorkspaceRootErrorsOutsideWorkspace(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindWorkspaceRoot(dir); err == nil {
		t.Fatal("expected error outside any workspace")
	}
}

func TestLoadWorkspaceDiscoversPackagesInOrder(t *testing.T) {
	root := writeWorkspace(t)

	ws, err := LoadWorkspace(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Packages) != 2 {
		t.Fatalf("expected 2 packages, got %d: %+v", len(ws.Packages), ws.Packages)
	}
	// lexical order: ui/buttons before ui/icons
	if ws.Packages[0].Dir != label.Package("ui/buttons") {
		t.Fatalf("expected ui/buttons first, got %q", ws.Packages[0].Dir)
	}
	if len(ws.Packages[1].Resources) != 2 {
		t.Fatalf("expected 2 resources in ui/icons, got %d", len(ws.Packages[1].Resources))
	}
}

func TestLoadWorkspaceSelectResourcesByPattern(t *testing.T) {
	root := writeWorkspace(t)
	ws, err := LoadWorkspace(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pattern, err := label.ParseComposed([]string{"//ui/icons:all"})
	if err != nil {
		t.Fatalf("unexpected pattern error: %v", err)
	}

	selected := SelectResources(ws, pattern)
	if len(selected) != 2 {
		t.Fatalf("expected 2 selected resources, got %d: %+v", len(selected), selected)
	}
	for _, r := range selected {
		if r.PackageDir != label.Package("ui/icons") {
			t.Fatalf("unexpected package in selection: %q", r.PackageDir)
		}
	}
}

func TestLoadWorkspaceRespectsGitignore(t *testing.T) {
	root := writeWorkspace(t)
	mustMkdir(t, filepath.Join(root, "ui", "excluded"))
	mustWrite(t, filepath.Join(root, "ui", "excluded", PackageFileName), `
[icons]
ic_ignored = "Icon / Ignored"
`)
	mustWrite(t, filepath.Join(root, "ui", ".gitignore"), "excluded/\n")

	ws, err := LoadWorkspace(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pkg := range ws.Packages {
		if pkg.Dir == label.Package("ui/excluded") {
			t.Fatalf("expected ui/excluded to be ignored, found packages: %+v", ws.Packages)
		}
	}
}

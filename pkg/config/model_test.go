package config

import "testing"

func TestProfileExtendOverrideWins(t *testing.T) {
	baseScale := 1.0
	overrideScale := 2.0
	base := Profile{Name: "icons", Kind: ProfilePng, OutputDir: "assets/icons", Scale: &baseScale}
	override := Profile{Scale: &overrideScale}

	got := base.Extend(override)
	if got.Name != "icons" || got.Kind != ProfilePng {
		t.Fatalf("expected Name/Kind from base, got %+v", got)
	}
	if got.Scale == nil || *got.Scale != 2.0 {
		t.Fatalf("expected override scale 2.0, got %+v", got.Scale)
	}
	if got.OutputDir != "assets/icons" {
		t.Fatalf("expected base output_dir retained, got %q", got.OutputDir)
	}
}

func TestProfileExtendUnsetFieldsFallBackToBase(t *testing.T) {
	base := Profile{Name: "compose", Kind: ProfileCompose, Package: "com.example.icons"}
	got := base.Extend(Profile{})
	if got.Package != "com.example.icons" {
		t.Fatalf("expected package retained from base, got %q", got.Package)
	}
}

func TestWorkspaceDefaultRemoteSingleRemoteIsImplicit(t *testing.T) {
	ws := Workspace{Remotes: []RemoteSource{{ID: "main", FileKey: "abc"}}}
	r, ok := ws.DefaultRemote()
	if !ok || r.ID != "main" {
		t.Fatalf("expected single remote to be implicit default, got %+v ok=%v", r, ok)
	}
}

func TestWorkspaceDefaultRemoteMultipleUsesFlag(t *testing.T) {
	ws := Workspace{Remotes: []RemoteSource{
		{ID: "a", FileKey: "a"},
		{ID: "b", FileKey: "b", Default: true},
	}}
	r, ok := ws.DefaultRemote()
	if !ok || r.ID != "b" {
		t.Fatalf("expected remote b as default, got %+v ok=%v", r, ok)
	}
}

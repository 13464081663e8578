package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseWorkspaceFileSingleRemoteIsImplicitDefault(t *testing.T) {
	path := writeTemp(t, "figx.toml", `
[remotes.main]
file_key = "abc123"
container_node_ids = ["1:1", "1:2"]
access_token = "literal-token"

[profiles.icons]
extends = "png"
output_dir = "assets/icons"
scale = 2.0
`)

	remotes, profiles, err := ParseWorkspaceFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remotes) != 1 || remotes[0].ID != "main" {
		t.Fatalf("unexpected remotes: %+v", remotes)
	}
	if len(profiles) != 1 || profiles[0].Kind != ProfilePng {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
	if got := remotes[0].ContainerNodeIDs; len(got) != 2 || got[0].ID != "1:1" || got[1].ID != "1:2" {
		t.Fatalf("unexpected container node ids: %+v", got)
	}
}

func TestParseWorkspaceFileContainerNodeIDsTableForm(t *testing.T) {
	path := writeTemp(t, "figx.toml", `
[remotes.main]
file_key = "abc123"
container_node_ids = { "1:1" = "icons", "1:2" = "illustrations" }
access_token = { env = "FIGMA_TOKEN" }
`)

	remotes, _, err := ParseWorkspaceFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remotes[0].ContainerNodeIDs) != 2 {
		t.Fatalf("expected 2 container node ids, got %+v", remotes[0].ContainerNodeIDs)
	}
	src := remotes[0].AccessToken.Sources
	if len(src) != 1 || src[0].Kind != AccessTokenEnv || src[0].EnvVar != "FIGMA_TOKEN" {
		t.Fatalf("unexpected access token sources: %+v", src)
	}
}

func TestParseWorkspaceFileAccessTokenPriorityList(t *testing.T) {
	path := writeTemp(t, "figx.toml", `
[remotes.main]
file_key = "abc123"
container_node_ids = ["1:1"]
access_token = [{ env = "FIGMA_TOKEN" }, { keychain = true }, "fallback-literal"]
`)

	remotes, _, err := ParseWorkspaceFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := remotes[0].AccessToken.Sources
	if len(src) != 3 {
		t.Fatalf("expected 3 sources, got %+v", src)
	}
	if src[0].Kind != AccessTokenEnv || src[1].Kind != AccessTokenKeychain || src[2].Kind != AccessTokenLiteral {
		t.Fatalf("unexpected source kinds: %+v", src)
	}
}

func TestParseWorkspaceFileRequiresDefaultWhenMultipleRemotes(t *testing.T) {
	path := writeTemp(t, "figx.toml", `
[remotes.a]
file_key = "a"
container_node_ids = ["1:1"]
access_token = "x"

[remotes.b]
file_key = "b"
container_node_ids = ["1:1"]
access_token = "y"
`)

	_, _, err := ParseWorkspaceFile(path)
	if err == nil {
		t.Fatal("expected error when >1 remote with no default")
	}
	le, ok := err.(*LoadingError)
	if !ok || le.Code != CodeWorkspaceAtLeastOneDefault {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestParseWorkspaceFileRejectsMultipleDefaults(t *testing.T) {
	path := writeTemp(t, "figx.toml", `
[remotes.a]
file_key = "a"
container_node_ids = ["1:1"]
access_token = "x"
default = true

[remotes.b]
file_key = "b"
container_node_ids = ["1:1"]
access_token = "y"
default = true
`)

	_, _, err := ParseWorkspaceFile(path)
	le, ok := err.(*LoadingError)
	if !ok || le.Code != CodeWorkspaceMoreThanOneDefault {
		t.Fatalf("expected CodeWorkspaceMoreThanOneDefault, got %+v", err)
	}
}

func TestParseWorkspaceFileRejectsUnknownProfileKind(t *testing.T) {
	path := writeTemp(t, "figx.toml", `
[remotes.main]
file_key = "abc123"
container_node_ids = ["1:1"]
access_token = "x"

[profiles.icons]
extends = "bmp"
`)

	_, _, err := ParseWorkspaceFile(path)
	le, ok := err.(*LoadingError)
	if !ok || le.Code != CodeInvalidProfileToExtend {
		t.Fatalf("expected CodeInvalidProfileToExtend, got %+v", err)
	}
}

func TestParseWorkspaceFileParseErrorCarriesSpan(t *testing.T) {
	path := writeTemp(t, "figx.toml", "[remotes.main\nfile_key = \"abc\"\n")

	_, _, err := ParseWorkspaceFile(path)
	le, ok := err.(*LoadingError)
	if !ok {
		t.Fatalf("expected *LoadingError, got %T: %v", err, err)
	}
	if le.Span.File != path {
		t.Fatalf("expected span file %q, got %q", path, le.Span.File)
	}
	if le.Span.Line == 0 {
		t.Fatalf("expected nonzero line in span: %+v", le.Span)
	}
}

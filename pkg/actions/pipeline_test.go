package actions

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/figma"
	"github.com/matzehuels/figx/pkg/graph"
)

// fakeDoer serves the handful of URLs this test's pipeline touches: the
// figma nodes/images endpoints and a "download" URL standing in for
// cloud-storage image hosting.
type fakeDoer struct{}

func (fakeDoer) Do(req *http.Request) (*http.Response, error) {
	switch {
	case strings.Contains(req.URL.Path, "/v1/files/"):
		body := `{"nodes":{"1:1":{"document":{"id":"1:1","name":"frame","type":"FRAME","children":[{"id":"1:2","name":"Icon / Star","type":"VECTOR"}]}}}}`
		return okResponse(body), nil
	case strings.Contains(req.URL.Path, "/v1/images/"):
		body := `{"images":{"1:2":"https://cdn.example.com/star.png"}}`
		return okResponse(body), nil
	case strings.Contains(req.URL.Path, "/star.png"):
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader([]byte("fake-png-bytes")))}, nil
	default:
		return &http.Response{StatusCode: 404, Body: io.NopCloser(bytes.NewReader(nil))}, nil
	}
}

func okResponse(body string) *http.Response {
	return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(body))}
}

type passthroughImages struct{}

func (passthroughImages) ScalePNG(ctx context.Context, png []byte, factor float64) ([]byte, error) {
	return append([]byte(nil), png...), nil
}

func (passthroughImages) EncodeWebp(ctx context.Context, png []byte, quality int) ([]byte, error) {
	return append([]byte("webp:"), png...), nil
}

func newTestState(t *testing.T) *EvalState {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	doer := fakeDoer{}
	return &EvalState{
		Cache:  c,
		Figma:  figma.NewClient(doer),
		HTTP:   doer,
		Images: passthroughImages{},
	}
}

func TestPngPipelineEndToEnd(t *testing.T) {
	ctx := context.Background()
	state := newTestState(t)

	fetch := &FetchRemoteAction{RemoteName: "icons", FileKey: "FILEKEY", AccessToken: "tok", ContainerIDs: []string{"1:1"}}
	fetchKey, err := fetch.Execute(ctx, &graph.ExecContext{State: state})
	if err != nil {
		t.Fatalf("fetch-remote: %v", err)
	}

	find := &FindNodeAction{NodeName: "Icon / Star"}
	findKey, err := find.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{fetchKey}, State: state})
	if err != nil {
		t.Fatalf("find-node: %v", err)
	}

	export := &ExportImageAction{FileKey: "FILEKEY", AccessToken: "tok", Format: "png", Scale: 1}
	exportKey, err := export.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{findKey}, State: state})
	if err != nil {
		t.Fatalf("export-image: %v", err)
	}

	download := &DownloadImgAction{}
	downloadKey, err := download.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{exportKey}, State: state})
	if err != nil {
		t.Fatalf("download-img: %v", err)
	}

	materialize := &MaterializeAction{OutputDir: t.TempDir(), FileName: "star", Extension: "png"}
	if _, err := materialize.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{downloadKey}, State: state}); err != nil {
		t.Fatalf("materialize: %v", err)
	}

	data, ok, err := state.Cache.GetBytes(ctx, downloadKey)
	if err != nil || !ok {
		t.Fatalf("expected downloaded bytes in cache, ok=%v err=%v", ok, err)
	}
	if string(data) != "fake-png-bytes" {
		t.Fatalf("unexpected downloaded bytes: %q", data)
	}
}

// countingDoer forwards to fakeDoer and counts the requests it serves.
type countingDoer struct {
	calls *int
}

func (d countingDoer) Do(req *http.Request) (*http.Response, error) {
	*d.calls++
	return fakeDoer{}.Do(req)
}

func TestFetchRemoteSkipsRefetchWhenStableKeyUnchanged(t *testing.T) {
	ctx := context.Background()
	state := newTestState(t)
	var calls int
	state.Figma = figma.NewClient(countingDoer{calls: &calls})
	fetch := &FetchRemoteAction{RemoteName: "icons", FileKey: "FILEKEY", AccessToken: "tok", ContainerIDs: []string{"1:1"}}

	first, err := fetch.Execute(ctx, &graph.ExecContext{State: state})
	if err != nil {
		t.Fatal(err)
	}
	second, err := fetch.Execute(ctx, &graph.ExecContext{State: state})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected identical volatile key on repeat fetch, got %v vs %v", first, second)
	}
	if calls != 1 {
		t.Fatalf("expected one remote request across both executions, got %d", calls)
	}
}

func TestFindNodeMissingNameErrors(t *testing.T) {
	ctx := context.Background()
	state := newTestState(t)

	fetch := &FetchRemoteAction{RemoteName: "icons", FileKey: "FILEKEY", AccessToken: "tok", ContainerIDs: []string{"1:1"}}
	fetchKey, err := fetch.Execute(ctx, &graph.ExecContext{State: state})
	if err != nil {
		t.Fatal(err)
	}

	find := &FindNodeAction{NodeName: "does-not-exist"}
	_, err = find.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{fetchKey}, State: state})
	if err == nil {
		t.Fatal("expected an error for a missing node name")
	}
	evalErr, ok := err.(*EvaluationError)
	if !ok || evalErr.Kind != KindFindNode {
		t.Fatalf("expected a KindFindNode EvaluationError, got %#v", err)
	}
}

func TestMaterializeSkipsRewriteWhenContentUnchanged(t *testing.T) {
	ctx := context.Background()
	state := newTestState(t)

	contentKey := cache.NewBuilder().SetTag(TagDownloadImg).WriteStr("content").Build()
	if err := state.Cache.PutBytes(ctx, contentKey, []byte("hello")); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	m := &MaterializeAction{OutputDir: dir, FileName: "f", Extension: "txt"}
	first, err := m.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{contentKey}, State: state})
	if err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(filepath.Join(dir, "f.txt"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Execute(ctx, &graph.ExecContext{Inputs: []cache.CacheKey{contentKey}, State: state})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected same volatile key across repeat materialize, got %v vs %v", first, second)
	}
	after, err := os.Stat(filepath.Join(dir, "f.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatalf("expected no rewrite, mod time changed from %v to %v", before.ModTime(), after.ModTime())
	}
}

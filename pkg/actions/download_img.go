package actions

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/codec"
	"github.com/matzehuels/figx/pkg/graph"
)

// DownloadImgAction fetches the raw bytes an ExportImageAction's URL points
// to (typically a cloud-storage URL, not the remote design service itself).
type DownloadImgAction struct{}

func (a *DownloadImgAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "download-img: missing evaluation state")
	}
	if len(ec.Inputs) == 0 {
		return cache.CacheKey{}, newEvalError(KindIO, "download-img: no export-image dependency")
	}
	exportKey := ec.Inputs[0]

	stable := cache.NewBuilder().SetTag(TagDownloadImg).WriteBytes(exportKey.Bytes()).Build()

	if volatile, hit, err := lookupVolatile(ctx, state.Cache, stable); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	} else if hit {
		return volatile, nil
	}

	var url string
	hit, err := state.Cache.Get(ctx, exportKey, &url)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, newEvalError(KindCache, "download-img: export-image url missing from cache")
	}

	data, err := downloadBytes(ctx, state.HTTP, url)
	if err != nil {
		return cache.CacheKey{}, newEvalError(KindIO, "%s", err.Error())
	}

	digest := contentDigest(data)
	volatile := cache.NewBuilder().SetTag(TagDownloadImg).WriteBytes(stable.Bytes()).WriteU64(digest).Build()

	if err := state.Cache.PutBytes(ctx, volatile, data); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if err := storeVolatileLink(ctx, state.Cache, stable, volatile); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	return volatile, nil
}

func (a *DownloadImgAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{Name: "DownloadImg"}
}

func downloadBytes(ctx context.Context, doer codec.HTTPDoer, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

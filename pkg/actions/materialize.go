package actions

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/graph"
)

// materializeRecord is stored under a path's fingerprint key so a later
// run can skip rewriting a file whose content hasn't changed (spec §4.5
// Materialize: "a fingerprint (path + size + mtime, cheap) and a digest
// (xxhash of content, exact)").
type materializeRecord struct {
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
	Digest  uint64 `json:"digest"`
}

// MaterializeAction is the terminal node of every pipeline: it writes its
// dependency's bytes to OutputDir/FileName.Extension, atomically and only
// if the file's on-disk state doesn't already match.
type MaterializeAction struct {
	OutputDir string
	FileName  string
	Extension string
}

func (a *MaterializeAction) path() string {
	return filepath.Join(a.OutputDir, a.FileName+"."+a.Extension)
}

func (a *MaterializeAction) Execute(ctx context.Context, ec *graph.ExecContext) (cache.CacheKey, error) {
	state, ok := ec.State.(*EvalState)
	if !ok {
		return cache.CacheKey{}, newEvalError(KindIO, "materialize: missing evaluation state")
	}
	if len(ec.Inputs) == 0 {
		return cache.CacheKey{}, newEvalError(KindIO, "materialize: no content dependency")
	}
	contentKey := ec.Inputs[0]
	path := a.path()

	data, hit, err := state.Cache.GetBytes(ctx, contentKey)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}
	if !hit {
		return cache.CacheKey{}, newEvalError(KindCache, "materialize: content missing from cache")
	}

	fpKey := cache.NewBuilder().SetTag(TagMaterializeFingerprint).WriteStr(path).Build()
	digest := contentDigest(data)

	var prev materializeRecord
	hadPrev, err := state.Cache.Get(ctx, fpKey, &prev)
	if err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}

	info, statErr := os.Stat(path)
	upToDate := hadPrev && statErr == nil && (prev.Digest == digest ||
		(info.Size() == prev.Size && info.ModTime().UnixNano() == prev.ModTime))

	if !upToDate {
		if err := atomicWriteFile(path, data); err != nil {
			return cache.CacheKey{}, newEvalError(KindIO, "%s", err.Error())
		}
		info, statErr = os.Stat(path)
		if statErr != nil {
			return cache.CacheKey{}, newEvalError(KindIO, "%s", statErr.Error())
		}
	}

	rec := materializeRecord{Size: info.Size(), ModTime: info.ModTime().UnixNano(), Digest: digest}
	if err := state.Cache.Put(ctx, fpKey, rec); err != nil {
		return cache.CacheKey{}, wrapCacheErr(err)
	}

	volatile := cache.NewBuilder().SetTag(TagMaterializeFingerprint).WriteBytes(fpKey.Bytes()).WriteU64(digest).Build()
	return volatile, nil
}

func (a *MaterializeAction) DiagnosticsInfo() graph.DiagnosticsInfo {
	return graph.DiagnosticsInfo{
		Name:   "Materialize",
		Params: []graph.Param{{Key: "path", Value: a.path()}},
	}
}

// atomicWriteFile writes data to a uuid-suffixed temp file in path's
// directory, then renames it into place — the same atomic-write idiom
// pkg/cache's FileCache uses for its own entries.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

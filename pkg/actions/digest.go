package actions

import "github.com/cespare/xxhash/v2"

// digestSeed seeds the content-digest domain used by download/transform
// outputs and by Materialize's exact-content check. Distinct from
// pkg/cache's key-builder seed and pkg/figma's node-hash seed so the three
// hash domains never collide by construction.
const digestSeed = uint64(0x666967782d6f7574)

// contentDigest hashes output bytes for use in a volatile key or a
// materialize fingerprint (spec §4.5 Materialize: "digest: xxhash of
// content, exact").
func contentDigest(data []byte) uint64 {
	d := xxhash.NewWithSeed(digestSeed)
	_, _ = d.Write(data)
	return d.Sum64()
}

package figma

import (
	"github.com/cespare/xxhash/v2"
)

// indexSeed fixes the digest seed for node-content hashing, independent of
// pkg/cache's own key seed.
const indexSeed = uint64(0x66696778666967)

// buildIndex walks the document trees rooted at each top-level container
// node and flattens every descendant into a name-keyed index. Later nodes
// with a duplicate name overwrite earlier ones, consistent with the remote
// service treating node names as non-unique but resources as referring to
// "the" node of that name within the fetched containers.
func buildIndex(containers []Node) *NodeIndex {
	idx := &NodeIndex{Entries: make(map[string]NodeIndexEntry)}
	for _, c := range containers {
		walk(c, idx)
	}
	return idx
}

func walk(n Node, idx *NodeIndex) bool {
	rasterSelf := hasRasterFill(n.Fills)
	rasterDescendant := false
	for _, child := range n.Children {
		if walk(child, idx) {
			rasterDescendant = true
		}
	}

	uses := rasterSelf || rasterDescendant
	if n.Name != "" {
		idx.Entries[n.Name] = NodeIndexEntry{
			ID:               n.ID,
			Hash:             contentHash(n),
			UsesRasterPaints: uses,
		}
	}
	return uses
}

func hasRasterFill(fills []Fill) bool {
	for _, f := range fills {
		if f.Type == "IMAGE" {
			return true
		}
	}
	return false
}

// contentHash digests the fields of a node that determine its exported
// output: type, visibility, and fill kinds. It intentionally ignores
// Children's identities (captured by their own index entries) so a rename
// deep in the tree doesn't spuriously invalidate an ancestor's hash.
func contentHash(n Node) uint64 {
	d := xxhash.NewWithSeed(indexSeed)
	_, _ = d.WriteString(n.Type)
	if n.IsVisible() {
		_, _ = d.Write([]byte{1})
	} else {
		_, _ = d.Write([]byte{0})
	}
	for _, f := range n.Fills {
		_, _ = d.WriteString(f.Type)
	}
	return d.Sum64()
}

// CombineHashes xor-folds a set of per-node content hashes into a single
// digest, used to derive FetchRemote's volatile key from the whole index
// (spec §4.5: "xor/combine of per-node content hashes").
func CombineHashes(idx *NodeIndex) uint64 {
	var combined uint64
	for _, e := range idx.Entries {
		combined ^= e.Hash
	}
	return combined
}

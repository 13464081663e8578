package figma

import "testing"

func TestBuildIndexFlattensTreeByName(t *testing.T) {
	tree := Node{
		ID:   "1:1",
		Name: "Container",
		Type: "FRAME",
		Children: []Node{
			{ID: "1:2", Name: "Icon / Star", Type: "VECTOR"},
			{ID: "1:3", Name: "Icon / Heart", Type: "VECTOR", Fills: []Fill{{Type: "IMAGE"}}},
		},
	}

	idx := buildIndex([]Node{tree})
	if len(idx.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(idx.Entries), idx.Entries)
	}

	star, ok := idx.Entries["Icon / Star"]
	if !ok || star.ID != "1:2" || star.UsesRasterPaints {
		t.Fatalf("unexpected entry for Icon / Star: %+v ok=%v", star, ok)
	}

	heart, ok := idx.Entries["Icon / Heart"]
	if !ok || heart.ID != "1:3" || !heart.UsesRasterPaints {
		t.Fatalf("unexpected entry for Icon / Heart: %+v ok=%v", heart, ok)
	}

	container, ok := idx.Entries["Container"]
	if !ok || !container.UsesRasterPaints {
		t.Fatalf("expected Container to inherit raster paint from descendant, got %+v ok=%v", container, ok)
	}
}

func TestBuildIndexSameFieldsProduceSameHash(t *testing.T) {
	a := Node{ID: "1:1", Name: "Icon", Type: "VECTOR"}
	b := Node{ID: "9:9", Name: "Icon", Type: "VECTOR"}

	idxA := buildIndex([]Node{a})
	idxB := buildIndex([]Node{b})
	if idxA.Entries["Icon"].Hash != idxB.Entries["Icon"].Hash {
		t.Fatal("expected identical type/visibility/fills to hash the same regardless of id")
	}
}

func TestChunkIDsSplitsAtSize(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	batches := chunkIDs(ids, 2)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d: %+v", len(batches), batches)
	}
	if len(batches[0]) != 2 || len(batches[2]) != 1 {
		t.Fatalf("unexpected batch sizes: %+v", batches)
	}
}

func TestChunkIDsEmpty(t *testing.T) {
	if batches := chunkIDs(nil, 10); batches != nil {
		t.Fatalf("expected nil batches for empty input, got %+v", batches)
	}
}

func TestCombineHashesIsOrderIndependent(t *testing.T) {
	idx := &NodeIndex{Entries: map[string]NodeIndexEntry{
		"a": {Hash: 0xAAAA},
		"b": {Hash: 0xBBBB},
	}}
	got := CombineHashes(idx)
	want := uint64(0xAAAA) ^ uint64(0xBBBB)
	if got != want {
		t.Fatalf("got %x, want %x", got, want)
	}
}

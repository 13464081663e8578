// Package figma is the REST client for the remote design service: fetching
// a container's node tree, indexing it by node name, and requesting image
// export URLs. It knows nothing about caching or the ADG; pkg/actions wires
// its calls into cached, graph-scheduled steps.
package figma

// Fill is one paint entry on a node. Type "IMAGE" marks a raster paint.
type Fill struct {
	Type string `json:"type"`
}

// Node is one entry of the remote document tree, as returned by
// GET /v1/files/<key>/nodes.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Visible  *bool  `json:"visible"`
	Fills    []Fill `json:"fills"`
	Children []Node `json:"children"`
}

// IsVisible reports whether the node is visible, defaulting to true when
// the remote document omits the field (Figma's own convention).
func (n Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

type nodeWrapper struct {
	Document Node `json:"document"`
}

type nodesResponse struct {
	Nodes map[string]nodeWrapper `json:"nodes"`
}

type imagesResponse struct {
	Images map[string]*string `json:"images"`
	Err    string             `json:"err"`
}

// NodeIndexEntry is one indexed node: its remote id, a content digest
// covering everything that would change its exported output, and whether
// it (or a descendant) paints with a raster image.
type NodeIndexEntry struct {
	ID               string `json:"id"`
	Hash             uint64 `json:"hash"`
	UsesRasterPaints bool   `json:"uses_raster_paints"`
}

// NodeIndex maps a node's display name to its indexed entry. Built once per
// FetchRemote action and shared by every FindNode lookup against the same
// remote.
type NodeIndex struct {
	Entries map[string]NodeIndexEntry `json:"entries"`
}

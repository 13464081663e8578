package imagevector

import "testing"

const sampleSVG = `<svg width="24" height="24" viewBox="0 0 24 24">
  <path d="M6,6 L18,6 L18,18 Z" fill="#FF0000"/>
  <g id="group">
    <path d="M0,0 L12,12" stroke="#00FF00" stroke-width="2"/>
  </g>
</svg>`

func TestParseExtractsViewportAndNodes(t *testing.T) {
	iv, err := Parse([]byte(sampleSVG))
	if err != nil {
		t.Fatal(err)
	}
	if iv.ViewportWidth != 24 || iv.ViewportHeight != 24 {
		t.Fatalf("unexpected viewport: %+v", iv)
	}
	if len(iv.Nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d: %+v", len(iv.Nodes), iv.Nodes)
	}

	path, ok := iv.Nodes[0].(PathNode)
	if !ok {
		t.Fatalf("expected first node to be a path, got %T", iv.Nodes[0])
	}
	if path.FillColor == nil || path.FillColor.R != 0xFF || path.FillColor.G != 0 {
		t.Fatalf("unexpected fill color: %+v", path.FillColor)
	}

	group, ok := iv.Nodes[1].(GroupNode)
	if !ok {
		t.Fatalf("expected second node to be a group, got %T", iv.Nodes[1])
	}
	if group.Name != "group" || len(group.Nodes) != 1 {
		t.Fatalf("unexpected group: %+v", group)
	}
}

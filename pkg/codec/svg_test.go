package codec

import (
	"bytes"
	"context"
	"image/png"
	"testing"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <rect x="2" y="2" width="20" height="20" fill="#ff0000"/>
</svg>`

func TestOksvgRasterizerRasterizeSVG(t *testing.T) {
	rasterizer := NewOksvgRasterizer()

	out, err := rasterizer.RasterizeSVG(context.Background(), []byte(sampleSVG), 1.0)
	if err != nil {
		t.Fatalf("RasterizeSVG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode rasterized png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 24 || b.Dy() != 24 {
		t.Errorf("rasterized bounds = %dx%d, want 24x24", b.Dx(), b.Dy())
	}
}

func TestOksvgRasterizerZoomScalesOutput(t *testing.T) {
	rasterizer := NewOksvgRasterizer()

	out, err := rasterizer.RasterizeSVG(context.Background(), []byte(sampleSVG), 2.0)
	if err != nil {
		t.Fatalf("RasterizeSVG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode rasterized png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("rasterized bounds at zoom 2 = %dx%d, want 48x48", b.Dx(), b.Dy())
	}
}

func TestOksvgRasterizerInvalidInput(t *testing.T) {
	rasterizer := NewOksvgRasterizer()
	if _, err := rasterizer.RasterizeSVG(context.Background(), []byte("not svg"), 1.0); err == nil {
		t.Error("RasterizeSVG() with invalid input should error")
	}
}

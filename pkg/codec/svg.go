package codec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// OksvgRasterizer implements SVGRasterizer on top of srwiley/oksvg
// (parsing) and srwiley/rasterx (scan conversion), the concrete
// collaborator internal/cli wires into EvalState.SVG.
type OksvgRasterizer struct{}

// NewOksvgRasterizer returns the default SVGRasterizer.
func NewOksvgRasterizer() *OksvgRasterizer { return &OksvgRasterizer{} }

// RasterizeSVG renders svg to PNG bytes, scaling its viewBox by zoom.
func (OksvgRasterizer) RasterizeSVG(_ context.Context, svg []byte, zoom float64) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("codec: parse svg: %w", err)
	}

	w := int(icon.ViewBox.W*zoom + 0.5)
	h := int(icon.ViewBox.H*zoom + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

var _ SVGRasterizer = OksvgRasterizer{}

package codec

import (
	"bytes"
	"context"
	"fmt"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ImagingCodec implements ImageCodec on top of disintegration/imaging for
// resizing and chai2010/webp for re-encoding, the concrete collaborator
// internal/cli wires into EvalState.Images (spec §1: codecs live outside
// the core, behind the ImageCodec interface).
type ImagingCodec struct{}

// NewImagingCodec returns the default ImageCodec.
func NewImagingCodec() *ImagingCodec { return &ImagingCodec{} }

// ScalePNG resizes png by factor using a Lanczos3 filter, matching the
// density-scaling step of the AndroidWebp pipeline shape (spec §4.6).
func (ImagingCodec) ScalePNG(_ context.Context, data []byte, factor float64) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("codec: decode png: %w", err)
	}

	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	resized := imaging.Resize(img, w, h, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("codec: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebp re-encodes png at quality (0-100). Quality 100 requests
// lossless encoding, matching spec §4.5's "quality 100 -> lossless".
func (ImagingCodec) EncodeWebp(_ context.Context, data []byte, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: decode png: %w", err)
	}

	opts := &webp.Options{Quality: float32(quality)}
	if quality >= 100 {
		opts = &webp.Options{Lossless: true}
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("codec: encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

var _ ImageCodec = ImagingCodec{}

package codec

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode sample png: %v", err)
	}
	return buf.Bytes()
}

func TestImagingCodecScalePNG(t *testing.T) {
	codec := NewImagingCodec()
	input := samplePNG(t, 10, 20)

	out, err := codec.ScalePNG(context.Background(), input, 2.0)
	if err != nil {
		t.Fatalf("ScalePNG() error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode scaled png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 20 || b.Dy() != 40 {
		t.Errorf("scaled bounds = %dx%d, want 20x40", b.Dx(), b.Dy())
	}
}

func TestImagingCodecScalePNGMinimumOnePixel(t *testing.T) {
	codec := NewImagingCodec()
	input := samplePNG(t, 10, 10)

	out, err := codec.ScalePNG(context.Background(), input, 0.01)
	if err != nil {
		t.Fatalf("ScalePNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode scaled png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		t.Errorf("scaled bounds = %dx%d, want at least 1x1", b.Dx(), b.Dy())
	}
}

func TestImagingCodecEncodeWebpLossy(t *testing.T) {
	codec := NewImagingCodec()
	input := samplePNG(t, 8, 8)

	out, err := codec.EncodeWebp(context.Background(), input, 80)
	if err != nil {
		t.Fatalf("EncodeWebp() error: %v", err)
	}
	if len(out) == 0 {
		t.Error("EncodeWebp() returned empty output")
	}
}

func TestImagingCodecEncodeWebpLossless(t *testing.T) {
	codec := NewImagingCodec()
	input := samplePNG(t, 8, 8)

	out, err := codec.EncodeWebp(context.Background(), input, 100)
	if err != nil {
		t.Fatalf("EncodeWebp() lossless error: %v", err)
	}
	if len(out) == 0 {
		t.Error("EncodeWebp() lossless returned empty output")
	}
}

func TestImagingCodecScalePNGInvalidInput(t *testing.T) {
	codec := NewImagingCodec()
	if _, err := codec.ScalePNG(context.Background(), []byte("not a png"), 1.0); err == nil {
		t.Error("ScalePNG() with invalid input should error")
	}
}

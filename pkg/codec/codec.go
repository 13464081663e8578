// Package codec declares the narrow interfaces for every external
// collaborator spec §1 places outside the core: image codecs, the SVG
// parser, the HTTP client, and keychain access. The core packages (config,
// actions, evaluator) depend only on these interfaces; concrete
// implementations live alongside them in this package or in internal/cli.
package codec

import (
	"context"
	"net/http"
)

// Keychain resolves and optionally clears a stored access token, backing
// the `{keychain = true}` access-token source (spec §4.2) and the `auth
// --delete` subcommand.
type Keychain interface {
	// Get returns the token stored under service/account, or ok=false if
	// none is stored.
	Get(service, account string) (token string, ok bool, err error)

	// Delete removes the stored token, if any. Deleting an absent entry is
	// not an error.
	Delete(service, account string) error
}

// HTTPDoer is the minimal surface the Figma client needs from an HTTP
// client, satisfied by *http.Client and by test doubles.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ImageCodec performs the raster transforms listed in spec §4.5: resizing
// by Android density and re-encoding PNG to WEBP.
type ImageCodec interface {
	// ScalePNG resizes a PNG image (Lanczos3) by factor, returning
	// re-encoded PNG bytes.
	ScalePNG(ctx context.Context, png []byte, factor float64) ([]byte, error)

	// EncodeWebp converts PNG bytes to WEBP at the given quality
	// (0-100); quality 100 requests lossless encoding.
	EncodeWebp(ctx context.Context, png []byte, quality int) ([]byte, error)
}

// SVGRasterizer rasterises an SVG document to PNG at a given zoom factor
// (spec's "Render SVG→PNG").
type SVGRasterizer interface {
	RasterizeSVG(ctx context.Context, svg []byte, zoom float64) ([]byte, error)
}

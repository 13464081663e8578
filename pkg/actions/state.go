// Package actions implements the concrete graph.Action payloads that make
// up an import run: fetching a remote's node tree, locating a node by
// name, exporting and downloading its rendered image, transforming it, and
// materialising the result to disk.
package actions

import (
	"github.com/matzehuels/figx/pkg/cache"
	"github.com/matzehuels/figx/pkg/codec"
	"github.com/matzehuels/figx/pkg/figma"
)

// EvalState is the shared handle every action receives via
// graph.ExecContext.State — a cheap, read-mostly bundle of the
// collaborators an action needs (spec §3: "cache and API-client handles
// are shared by all actions").
type EvalState struct {
	Cache  cache.Cache
	Figma  *figma.Client
	HTTP   codec.HTTPDoer
	Images codec.ImageCodec
	SVG    codec.SVGRasterizer

	// Strict, when true, turns a vector-profile resource whose node uses
	// raster paints into a FindNode error (spec §9's open question, resolved
	// as a --strict flag). When false such a node passes without a warning.
	Strict bool
}

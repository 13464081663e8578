// Package pkg provides the core libraries for figx, a tool that imports
// design assets from a remote design service into a source repository.
//
// # Overview
//
// figx addresses design resources with Bazel-style labels and materializes
// them as PNG/WEBP images, Kotlin ImageVector sources, or Android drawable
// XML, each driven by a TOML-declared profile. The pkg directory is
// organized into four main areas:
//
//  1. Addressing and configuration ([label], [config])
//  2. Evaluation ([graph], [cache], [actions], [evaluator])
//  3. External collaborators ([codec], [figma])
//  4. Output generation ([imagevector], [svg2compose], [svg2drawable])
//
// # Architecture
//
// The typical data flow through figx:
//
//	figx.toml + .fig.toml
//	         ↓
//	    [config] package (parse workspace, resolve resources)
//	         ↓
//	    [evaluator] package (build the Action Dependency Graph)
//	         ↓
//	    [graph] package (topological execution, memoized via [cache])
//	         ↓
//	    [actions] package (fetch, find, export, download, transform, write)
//	         ↓
//	    PNG/WEBP/Kotlin/XML output on disk
//
// # Main Packages
//
// ## Addressing and configuration
//
// [label] - Bazel-style label parsing and pattern matching
// (`//package:target`).
//
// [config] - TOML workspace/package loading, profile inheritance, and
// access-token resolution.
//
// ## Evaluation
//
// [graph] - The Action Dependency Graph: a generic builder and topological
// executor over any [graph.Action].
//
// [cache] - Content-addressed caching keyed by a tagged xxhash64 digest,
// with file, Redis, MongoDB, and null backends.
//
// [actions] - The concrete [graph.Action] implementations: fetching a
// remote's node index, finding a node by name, exporting and downloading
// an image, and the per-profile transform/materialize steps.
//
// [evaluator] - Builds the graph for a set of resolved resources and
// drives its execution, reporting progress through a plain Go channel.
//
// ## External collaborators
//
// [codec] - Narrow interfaces for every collaborator the core depends on
// (image codec, SVG rasterizer, HTTP client, keychain), plus the concrete
// [codec.ImagingCodec] and [codec.OksvgRasterizer] implementations.
//
// [figma] - The thin HTTP client for the remote design service's REST API.
//
// ## Output generation
//
// [imagevector] - Parses SVG into the vector model (groups, paths,
// strokes) shared by svg2compose and svg2drawable.
//
// [svg2compose] - Converts SVG path data to a Jetpack Compose-friendly
// ImageVector, with optional preview code generation.
//
// [svg2drawable] - Converts SVG path data to Android vector drawable XML.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...       # All tests
//	go test ./pkg/evaluator # Specific package
//
// [label]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/label
// [config]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/config
// [graph]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/cache
// [actions]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/actions
// [evaluator]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/evaluator
// [codec]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/codec
// [figma]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/figma
// [imagevector]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/imagevector
// [svg2compose]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/svg2compose
// [svg2drawable]: https://pkg.go.dev/github.com/matzehuels/figx/pkg/svg2drawable
package pkg

// Package imagevector is the vector-graphics model shared by pkg/svg2compose
// and pkg/svg2drawable: a minimal SVG document parsed into a flat tree of
// groups and paths, independent of either output format.
package imagevector

// ImageVector is a parsed vector image: its declared size, its viewport
// (the coordinate space path data is expressed in), and its node tree.
type ImageVector struct {
	Name           string
	Width          float64
	Height         float64
	ViewportWidth  float64
	ViewportHeight float64
	Nodes          []Node
}

// Node is either a GroupNode or a PathNode.
type Node interface{ isNode() }

// GroupNode corresponds to an SVG <g>: a named subtree with an optional
// rotate/scale/translate transform flattened from the element's `transform`
// attribute.
type GroupNode struct {
	Name        string
	Nodes       []Node
	Rotate      float64
	Pivot       Point
	Translation Point
	Scale       Scale
}

func (GroupNode) isNode() {}

// PathNode corresponds to an SVG <path>: its drawing commands plus fill and
// stroke style.
type PathNode struct {
	FillType  FillType
	FillColor *Color
	Commands  []Command
	Alpha     float64
	Stroke    Stroke
}

func (PathNode) isNode() {}

// FillType mirrors the SVG fill-rule attribute.
type FillType int

const (
	FillTypeNonZero FillType = iota
	FillTypeEvenOdd
)

// Point is a 2D coordinate.
type Point struct{ X, Y float64 }

// Scale is a pair of per-axis scale factors.
type Scale struct{ X, Y float64 }

// CommandKind discriminates a path Command's drawing operation.
type CommandKind int

const (
	CommandMoveTo CommandKind = iota
	CommandLineTo
	CommandCurveTo
	CommandQuadraticBezierTo
	CommandClose
)

// Command is one drawing instruction. Only the points relevant to Kind are
// populated: MoveTo/LineTo use P1; QuadraticBezierTo uses P1/P2;
// CurveTo uses P1/P2/P3; Close uses none.
type Command struct {
	Kind CommandKind
	P1   Point
	P2   Point
	P3   Point
}

// Cap mirrors the SVG stroke-linecap attribute. CapButt is the default.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join mirrors the SVG stroke-linejoin attribute. JoinBevel is the default
// for Android vector drawables, matching what this package's callers emit.
type Join int

const (
	JoinBevel Join = iota
	JoinMiter
	JoinRound
)

// Stroke is a path's stroke style. Its zero value is not the default
// style; DefaultStroke returns that (width 1, alpha 1, miter 1, butt cap,
// bevel join).
type Stroke struct {
	Color *Color
	Alpha float64
	Width float64
	Cap   Cap
	Join  Join
	Miter float64
}

// DefaultStroke returns the attribute defaults svg2drawable suppresses when
// writing a <path> element (spec §4.5/§6: "default-suppressed attributes").
func DefaultStroke() Stroke {
	return Stroke{Alpha: 1, Width: 1, Cap: CapButt, Join: JoinBevel, Miter: 1}
}

// Color is an RGB color, either taken verbatim from the source document or
// substituted by a color mapping (see pkg/svg2compose's ColorMapping).
type Color struct {
	R, G, B uint8
	// Mapped holds a caller-supplied Kotlin expression (e.g. a named
	// color constant) when a color mapping matched; Mapped takes
	// precedence over R/G/B whenever non-empty.
	Mapped string
}

package imagevector

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Parse reads an SVG document and builds an ImageVector from its <svg>
// root, <g> groups, and <path> elements. Arc ("A"/"a") path commands are
// approximated as a straight line to the arc's endpoint: no library in the
// dependency set models elliptical-arc flattening, and the source images
// this tool targets (icon-scale vector assets) rarely rely on arcs for
// anything a line-to approximation would visibly distort.
func Parse(svg []byte) (*ImageVector, error) {
	var root svgElement
	if err := xml.Unmarshal(svg, &root); err != nil {
		return nil, fmt.Errorf("imagevector: parse svg: %w", err)
	}

	width, height := root.dimensions()
	vbWidth, vbHeight := root.viewBox()
	if vbWidth == 0 {
		vbWidth = width
	}
	if vbHeight == 0 {
		vbHeight = height
	}

	nodes, err := convertChildren(root.Children)
	if err != nil {
		return nil, err
	}

	return &ImageVector{
		Width:          width,
		Height:         height,
		ViewportWidth:  vbWidth,
		ViewportHeight: vbHeight,
		Nodes:          nodes,
	}, nil
}

// svgElement is a generic XML element used to walk the document without
// committing to a full SVG schema — only the attributes/children this
// package's model needs are read.
type svgElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []svgElement `xml:",any"`
	CharData string       `xml:",chardata"`
}

func (e *svgElement) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *svgElement) floatAttr(name string, def float64) float64 {
	v, ok := e.attr(name)
	if !ok {
		return def
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (e *svgElement) dimensions() (float64, float64) {
	return e.floatAttr("width", 24), e.floatAttr("height", 24)
}

func (e *svgElement) viewBox() (float64, float64) {
	vb, ok := e.attr("viewBox")
	if !ok {
		return 0, 0
	}
	parts := strings.Fields(vb)
	if len(parts) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(parts[2], 64)
	h, errH := strconv.ParseFloat(parts[3], 64)
	if errW != nil || errH != nil {
		return 0, 0
	}
	return w, h
}

func convertChildren(children []svgElement) ([]Node, error) {
	var nodes []Node
	for _, c := range children {
		switch c.XMLName.Local {
		case "g":
			g, err := convertGroup(c)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, g)
		case "path":
			p, err := convertPath(c)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, p)
		default:
			// defs, metadata, title, etc. carry no drawable content.
		}
	}
	return nodes, nil
}

func convertGroup(e svgElement) (GroupNode, error) {
	children, err := convertChildren(e.Children)
	if err != nil {
		return GroupNode{}, err
	}
	id, _ := e.attr("id")
	rotate, pivot, translation, scale := parseTransform(e)
	return GroupNode{
		Name:        id,
		Nodes:       children,
		Rotate:      rotate,
		Pivot:       pivot,
		Translation: translation,
		Scale:       scale,
	}, nil
}

// parseTransform handles the single-function rotate(a cx cy) / translate(x y)
// / scale(x y) forms most vector icon exporters emit; compound transform
// lists fall back to the identity transform.
func parseTransform(e svgElement) (rotate float64, pivot, translation Point, scale Scale) {
	scale = Scale{X: 1, Y: 1}
	raw, ok := e.attr("transform")
	if !ok {
		return
	}
	raw = strings.TrimSpace(raw)
	open := strings.Index(raw, "(")
	shut := strings.LastIndex(raw, ")")
	if open < 0 || shut < 0 || shut < open {
		return
	}
	fn := strings.TrimSpace(raw[:open])
	args := splitTransformArgs(raw[open+1 : shut])
	switch fn {
	case "rotate":
		if len(args) >= 1 {
			rotate = args[0]
		}
		if len(args) >= 3 {
			pivot = Point{X: args[1], Y: args[2]}
		}
	case "translate":
		if len(args) >= 1 {
			translation.X = args[0]
		}
		if len(args) >= 2 {
			translation.Y = args[1]
		}
	case "scale":
		if len(args) >= 1 {
			scale.X, scale.Y = args[0], args[0]
		}
		if len(args) >= 2 {
			scale.Y = args[1]
		}
	}
	return
}

func splitTransformArgs(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func convertPath(e svgElement) (PathNode, error) {
	d, _ := e.attr("d")
	commands, err := parsePathData(d)
	if err != nil {
		return PathNode{}, err
	}

	fillType := FillTypeNonZero
	if rule, ok := e.attr("fill-rule"); ok && rule == "evenodd" {
		fillType = FillTypeEvenOdd
	}

	stroke := DefaultStroke()
	if c, ok := e.attr("stroke"); ok && c != "none" {
		col, err := parseColor(c)
		if err == nil {
			stroke.Color = col
		}
	}
	if w, ok := e.attr("stroke-width"); ok {
		if v, err := strconv.ParseFloat(w, 64); err == nil {
			stroke.Width = v
		}
	}
	if a, ok := e.attr("stroke-opacity"); ok {
		if v, err := strconv.ParseFloat(a, 64); err == nil {
			stroke.Alpha = v
		}
	}
	switch v, _ := e.attr("stroke-linecap"); v {
	case "round":
		stroke.Cap = CapRound
	case "square":
		stroke.Cap = CapSquare
	}
	switch v, _ := e.attr("stroke-linejoin"); v {
	case "miter":
		stroke.Join = JoinMiter
	case "round":
		stroke.Join = JoinRound
	}
	if m, ok := e.attr("stroke-miterlimit"); ok {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			stroke.Miter = v
		}
	}

	var fillColor *Color
	if c, ok := e.attr("fill"); ok && c != "none" {
		if col, err := parseColor(c); err == nil {
			fillColor = col
		}
	} else if !ok {
		fillColor = &Color{R: 0, G: 0, B: 0}
	}

	alpha := 1.0
	if a, ok := e.attr("fill-opacity"); ok {
		if v, err := strconv.ParseFloat(a, 64); err == nil {
			alpha = v
		}
	}

	return PathNode{
		FillType:  fillType,
		FillColor: fillColor,
		Commands:  commands,
		Alpha:     alpha,
		Stroke:    stroke,
	}, nil
}

func parseColor(s string) (*Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("imagevector: unsupported color paint %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("imagevector: unsupported color format %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("imagevector: invalid color %q: %w", s, err)
	}
	return &Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Package svg2drawable converts a parsed SVG (pkg/imagevector) into an
// Android vector drawable XML document.
package svg2drawable

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/figx/pkg/imagevector"
)

// Options configures drawable XML generation.
type Options struct {
	// XMLDeclaration adds `<?xml version="1.0" encoding="UTF-8"?>` above
	// the root element.
	XMLDeclaration bool
}

// Generate parses svg and renders it as an Android <vector> drawable,
// suppressing attributes that equal Android's own defaults (spec §4.5/§6).
func Generate(svg []byte, opts Options) ([]byte, error) {
	iv, err := imagevector.Parse(svg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if opts.XMLDeclaration {
		buf.WriteString(xml.Header)
	}

	w := newIndentWriter(&buf)
	w.openTag("vector", []attr{
		{"xmlns:android", "http://schemas.android.com/apk/res/android"},
		{"android:width", fmt.Sprintf("%sdp", formatFloat(iv.Width))},
		{"android:height", fmt.Sprintf("%sdp", formatFloat(iv.Height))},
		{"android:viewportWidth", formatFloat(iv.ViewportWidth)},
		{"android:viewportHeight", formatFloat(iv.ViewportHeight)},
	})
	for _, n := range iv.Nodes {
		writeNode(w, n)
	}
	w.closeTag("vector")

	return buf.Bytes(), nil
}

func writeNode(w *indentWriter, n imagevector.Node) {
	switch v := n.(type) {
	case imagevector.GroupNode:
		writeGroup(w, v)
	case imagevector.PathNode:
		writePath(w, v)
	}
}

func writeGroup(w *indentWriter, g imagevector.GroupNode) {
	attrs := []attr{}
	if g.Name != "" {
		attrs = append(attrs, attr{"android:name", g.Name})
	}
	if g.Rotate != 0 {
		attrs = append(attrs,
			attr{"android:rotation", formatFloat(g.Rotate)},
			attr{"android:pivotX", formatFloat(g.Pivot.X)},
			attr{"android:pivotY", formatFloat(g.Pivot.Y)},
		)
	}
	if g.Scale.X != 1 || g.Scale.Y != 1 {
		attrs = append(attrs,
			attr{"android:scaleX", formatFloat(g.Scale.X)},
			attr{"android:scaleY", formatFloat(g.Scale.Y)},
		)
	}
	if g.Translation.X != 0 || g.Translation.Y != 0 {
		attrs = append(attrs,
			attr{"android:translateX", formatFloat(g.Translation.X)},
			attr{"android:translateY", formatFloat(g.Translation.Y)},
		)
	}
	w.openTag("group", attrs)
	for _, n := range g.Nodes {
		writeNode(w, n)
	}
	w.closeTag("group")
}

func writePath(w *indentWriter, p imagevector.PathNode) {
	attrs := []attr{{"android:pathData", pathData(p.Commands)}}

	if p.FillColor != nil {
		attrs = append(attrs, attr{"android:fillColor", colorHex(*p.FillColor)})
	}
	if p.FillType == imagevector.FillTypeEvenOdd {
		attrs = append(attrs, attr{"android:fillType", "evenOdd"})
	}
	if p.Alpha != 1 {
		attrs = append(attrs, attr{"android:fillAlpha", formatFloat(p.Alpha)})
	}
	if p.Stroke.Color != nil {
		attrs = append(attrs, attr{"android:strokeColor", colorHex(*p.Stroke.Color)})
	}
	switch p.Stroke.Cap {
	case imagevector.CapRound:
		attrs = append(attrs, attr{"android:strokeLineCap", "round"})
	case imagevector.CapSquare:
		attrs = append(attrs, attr{"android:strokeLineCap", "square"})
	}
	switch p.Stroke.Join {
	case imagevector.JoinMiter:
		attrs = append(attrs, attr{"android:strokeLineJoin", "miter"})
	case imagevector.JoinRound:
		attrs = append(attrs, attr{"android:strokeLineJoin", "round"})
	}
	if p.Stroke.Width != 1 {
		attrs = append(attrs, attr{"android:strokeWidth", formatFloat(p.Stroke.Width)})
	}
	if p.Stroke.Alpha != 1 {
		attrs = append(attrs, attr{"android:strokeAlpha", formatFloat(p.Stroke.Alpha)})
	}
	if p.Stroke.Miter != 1 {
		attrs = append(attrs, attr{"android:strokeMiterLimit", formatFloat(p.Stroke.Miter)})
	}

	w.selfClosingTag("path", attrs)
}

func pathData(commands []imagevector.Command) string {
	var b bytes.Buffer
	for _, c := range commands {
		switch c.Kind {
		case imagevector.CommandMoveTo:
			fmt.Fprintf(&b, "M%s,%s", formatFloat(c.P1.X), formatFloat(c.P1.Y))
		case imagevector.CommandLineTo:
			fmt.Fprintf(&b, "L%s,%s", formatFloat(c.P1.X), formatFloat(c.P1.Y))
		case imagevector.CommandCurveTo:
			fmt.Fprintf(&b, "C%s,%s %s,%s %s,%s",
				formatFloat(c.P1.X), formatFloat(c.P1.Y),
				formatFloat(c.P2.X), formatFloat(c.P2.Y),
				formatFloat(c.P3.X), formatFloat(c.P3.Y))
		case imagevector.CommandQuadraticBezierTo:
			fmt.Fprintf(&b, "Q%s,%s %s,%s",
				formatFloat(c.P1.X), formatFloat(c.P1.Y),
				formatFloat(c.P2.X), formatFloat(c.P2.Y))
		case imagevector.CommandClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func colorHex(c imagevector.Color) string {
	if c.Mapped != "" {
		return c.Mapped
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}

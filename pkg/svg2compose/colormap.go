// Package svg2compose converts a parsed SVG (pkg/imagevector) into Kotlin
// source declaring a Jetpack Compose ImageVector property.
package svg2compose

import (
	"fmt"
	"strings"

	"github.com/matzehuels/figx/pkg/imagevector"
)

// ColorMapping substitutes a source hex color with a Kotlin expression
// (e.g. a theme color reference). From "*" matches every remaining
// unmapped color (spec §6's wildcard color-mapping entry).
type ColorMapping struct {
	From string
	To   string
}

// applyColorMappings rewrites every path's fill color in place against
// mappings, in order (stroke colors are not mapped), mirroring the original's "first
// matching mapping wins, '*' matches anything" semantics.
func applyColorMappings(iv *imagevector.ImageVector, mappings []ColorMapping) error {
	return mapNodes(iv.Nodes, mappings)
}

func mapNodes(nodes []imagevector.Node, mappings []ColorMapping) error {
	for i, n := range nodes {
		switch v := n.(type) {
		case imagevector.GroupNode:
			if err := mapNodes(v.Nodes, mappings); err != nil {
				return err
			}
		case imagevector.PathNode:
			if v.FillColor != nil {
				if err := replaceColorIfNeeded(v.FillColor, mappings); err != nil {
					return err
				}
			}
			nodes[i] = v
		}
	}
	return nil
}

func replaceColorIfNeeded(c *imagevector.Color, mappings []ColorMapping) error {
	if c.Mapped != "" {
		return nil
	}
	for _, m := range mappings {
		if m.From == "*" || strings.EqualFold(m.From, hexOf(*c)) {
			c.Mapped = m.To
			return nil
		}
	}
	return nil
}

func hexOf(c imagevector.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

package svg2compose

import (
	"strings"
	"testing"
)

const starSVG = `<svg width="24" height="24" viewBox="0 0 24 24">
  <path d="M12,2 L15,9 L22,9 Z" fill="#112233"/>
</svg>`

func TestGenerateProducesBackingFieldShape(t *testing.T) {
	out, err := Generate([]byte(starSVG), Options{ImageName: "Star", Package: "com.example.icons"})
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	for _, want := range []string{
		"package com.example.icons",
		"val Star: ImageVector",
		"private var _star: ImageVector? = null",
		"import androidx.compose.ui.graphics.vector.ImageVector",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, src)
		}
	}
}

func TestGenerateAppliesColorMappingWildcard(t *testing.T) {
	out, err := Generate([]byte(starSVG), Options{
		ImageName:     "Star",
		Package:       "com.example.icons",
		ColorMappings: []ColorMapping{{From: "*", To: "MaterialTheme.colorScheme.primary"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "SolidColor(MaterialTheme.colorScheme.primary)") {
		t.Fatalf("expected wildcard color mapping to apply, got:\n%s", out)
	}
}

func TestGenerateExplicitAPIAndComposableGet(t *testing.T) {
	out, err := Generate([]byte(starSVG), Options{
		ImageName:         "Star",
		Package:           "com.example.icons",
		KotlinExplicitAPI: true,
		ComposableGet:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	if !strings.Contains(src, "public val Star: ImageVector") {
		t.Fatalf("expected public modifier, got:\n%s", src)
	}
	if !strings.Contains(src, "@Composable get()") {
		t.Fatalf("expected composable getter, got:\n%s", src)
	}
}

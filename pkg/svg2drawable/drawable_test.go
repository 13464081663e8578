package svg2drawable

import (
	"strings"
	"testing"
)

const triangleSVG = `<svg width="24" height="24" viewBox="0 0 24 24">
  <path d="M12,2 L22,20 L2,20 Z" fill="#112233"/>
</svg>`

func TestGenerateEmitsVectorRoot(t *testing.T) {
	out, err := Generate([]byte(triangleSVG), Options{})
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	for _, want := range []string{
		"<vector",
		`android:width="24dp"`,
		`android:viewportWidth="24"`,
		`android:fillColor="#112233"`,
		`android:pathData="M12,2L22,20L2,20Z"`,
		"</vector>",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, src)
		}
	}
}

func TestGenerateSuppressesDefaultStrokeAttributes(t *testing.T) {
	out, err := Generate([]byte(triangleSVG), Options{})
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	for _, notWanted := range []string{"strokeLineCap", "strokeLineJoin", "strokeWidth", "strokeAlpha", "strokeMiterLimit"} {
		if strings.Contains(src, notWanted) {
			t.Fatalf("did not expect default-valued attribute %q in output:\n%s", notWanted, src)
		}
	}
}

func TestGenerateAddsXMLDeclarationWhenRequested(t *testing.T) {
	out, err := Generate([]byte(triangleSVG), Options{XMLDeclaration: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("expected xml declaration prefix, got:\n%s", out)
	}
}

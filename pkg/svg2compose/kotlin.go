package svg2compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/figx/pkg/imagevector"
)

// Preview overrides the generated `@Preview` composable. Code may contain
// the placeholder "{name}", substituted with Options.ImageName.
type Preview struct {
	Code    string
	Imports []string
}

// Options configures the generated Kotlin source (spec §4.5/§6).
type Options struct {
	ImageName         string
	Package           string
	KotlinExplicitAPI bool
	ExtensionTarget   string
	FileSuppressLint  []string
	ColorMappings     []ColorMapping
	Preview           *Preview
	SkipPreview       bool
	ComposableGet     bool
}

// Generate parses svg and renders it as Kotlin source declaring a single
// lazily-initialized ImageVector property with a private nullable backing
// field (spec §4.5's "backing field" Compose codegen shape).
func Generate(svg []byte, opts Options) ([]byte, error) {
	iv, err := imagevector.Parse(svg)
	if err != nil {
		return nil, err
	}
	iv.Name = opts.ImageName

	if err := applyColorMappings(iv, opts.ColorMappings); err != nil {
		return nil, err
	}

	imports := newImportSet()
	body := renderBuilder(iv, imports)

	backingField := uncapitalize(opts.ImageName)
	publicName, extensionImport := resolveExtensionTarget(opts.ExtensionTarget, opts.ImageName)
	if extensionImport != "" {
		imports.add(extensionImport)
	}
	imports.add("androidx.compose.ui.graphics.vector.ImageVector")

	var out strings.Builder
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	fmt.Fprint(&out, "IMPORTS_PLACEHOLDER\n")

	for _, lint := range opts.FileSuppressLint {
		fmt.Fprintf(&out, "@Suppress(%q)\n", lint)
	}

	visibility := ""
	if opts.KotlinExplicitAPI {
		visibility = "public "
	}

	getterKeyword := "get()"
	if opts.ComposableGet {
		imports.add("androidx.compose.runtime.Composable")
		getterKeyword = "@Composable get()"
	}

	fmt.Fprintf(&out, "%sval %s: ImageVector\n", visibility, publicName)
	fmt.Fprintf(&out, "    %s {\n", getterKeyword)
	fmt.Fprintf(&out, "        if (_%s != null) {\n", backingField)
	fmt.Fprintf(&out, "            return _%s!!\n", backingField)
	fmt.Fprintf(&out, "        }\n")
	fmt.Fprintf(&out, "        _%s = %s\n", backingField, indentContinuation(body))
	fmt.Fprintf(&out, "        return _%s!!\n", backingField)
	fmt.Fprintf(&out, "    }\n\n")

	fmt.Fprintf(&out, "private var _%s: ImageVector? = null\n\n", backingField)

	writePreview(&out, opts, publicName, imports)

	rendered := out.String()
	rendered = strings.Replace(rendered, "IMPORTS_PLACEHOLDER\n", renderImports(imports), 1)
	return []byte(rendered), nil
}

func writePreview(out *strings.Builder, opts Options, publicName string, imports *importSet) {
	if opts.SkipPreview {
		return
	}
	if opts.Preview != nil {
		imports.addAll(opts.Preview.Imports)
		code := strings.ReplaceAll(opts.Preview.Code, "{name}", opts.ImageName)
		out.WriteString(code)
		out.WriteString("\n")
		return
	}
	imports.addAll([]string{
		"androidx.compose.material3.Icon",
		"androidx.compose.runtime.Composable",
		"androidx.compose.ui.tooling.preview.Preview",
	})
	fmt.Fprintf(out, "@Preview(showBackground = true)\n")
	fmt.Fprintf(out, "@Composable\n")
	fmt.Fprintf(out, "private fun %sPreview() {\n", opts.ImageName)
	fmt.Fprintf(out, "    Icon(\n")
	fmt.Fprintf(out, "        imageVector = %s,\n", publicName)
	fmt.Fprintf(out, "        contentDescription = null,\n")
	fmt.Fprintf(out, "    )\n")
	fmt.Fprintf(out, "}\n")
}

func resolveExtensionTarget(fqName, imageName string) (publicName string, additionalImport string) {
	if fqName == "" {
		return imageName, ""
	}
	if i := strings.LastIndex(fqName, "."); i >= 0 {
		return fqName[i+1:] + "." + imageName, ""
	}
	return fqName + "." + imageName, fqName
}

func indentContinuation(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = "        " + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderBuilder emits `ImageVector.Builder(...).apply { ... }.build()`,
// registering every Compose symbol it references in imports.
func renderBuilder(iv *imagevector.ImageVector, imports *importSet) string {
	imports.add("androidx.compose.ui.graphics.vector.ImageVector")
	var b strings.Builder
	fmt.Fprintf(&b, "ImageVector.Builder(\n")
	fmt.Fprintf(&b, "    name = %q,\n", iv.Name)
	fmt.Fprintf(&b, "    defaultWidth = %s.dp,\n", formatFloat(iv.Width))
	fmt.Fprintf(&b, "    defaultHeight = %s.dp,\n", formatFloat(iv.Height))
	fmt.Fprintf(&b, "    viewportWidth = %sf,\n", formatFloat(iv.ViewportWidth))
	fmt.Fprintf(&b, "    viewportHeight = %sf,\n", formatFloat(iv.ViewportHeight))
	fmt.Fprintf(&b, ").apply {\n")
	imports.add("androidx.compose.ui.unit.dp")
	renderNodes(&b, iv.Nodes, 1, imports)
	fmt.Fprintf(&b, "}.build()\n")
	return b.String()
}

func renderNodes(b *strings.Builder, nodes []imagevector.Node, depth int, imports *importSet) {
	for _, n := range nodes {
		switch v := n.(type) {
		case imagevector.GroupNode:
			renderGroup(b, v, depth, imports)
		case imagevector.PathNode:
			renderPath(b, v, depth, imports)
		}
	}
}

func renderGroup(b *strings.Builder, g imagevector.GroupNode, depth int, imports *importSet) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(b, "%sgroup(\n", indent)
	if g.Name != "" {
		fmt.Fprintf(b, "%s    name = %q,\n", indent, g.Name)
	}
	if g.Rotate != 0 {
		fmt.Fprintf(b, "%s    rotate = %sf,\n", indent, formatFloat(g.Rotate))
		fmt.Fprintf(b, "%s    pivotX = %sf,\n", indent, formatFloat(g.Pivot.X))
		fmt.Fprintf(b, "%s    pivotY = %sf,\n", indent, formatFloat(g.Pivot.Y))
	}
	if g.Scale.X != 1 || g.Scale.Y != 1 {
		fmt.Fprintf(b, "%s    scaleX = %sf,\n", indent, formatFloat(g.Scale.X))
		fmt.Fprintf(b, "%s    scaleY = %sf,\n", indent, formatFloat(g.Scale.Y))
	}
	if g.Translation.X != 0 || g.Translation.Y != 0 {
		fmt.Fprintf(b, "%s    translationX = %sf,\n", indent, formatFloat(g.Translation.X))
		fmt.Fprintf(b, "%s    translationY = %sf,\n", indent, formatFloat(g.Translation.Y))
	}
	fmt.Fprintf(b, "%s) {\n", indent)
	renderNodes(b, g.Nodes, depth+1, imports)
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderPath(b *strings.Builder, p imagevector.PathNode, depth int, imports *importSet) {
	indent := strings.Repeat("    ", depth)
	imports.add("androidx.compose.ui.graphics.SolidColor")
	imports.add("androidx.compose.ui.graphics.Color")

	fmt.Fprintf(b, "%spath(\n", indent)
	if p.FillColor != nil {
		fmt.Fprintf(b, "%s    fill = %s,\n", indent, solidColorExpr(*p.FillColor))
	}
	if p.Alpha != 1 {
		fmt.Fprintf(b, "%s    fillAlpha = %sf,\n", indent, formatFloat(p.Alpha))
	}
	if p.FillType == imagevector.FillTypeEvenOdd {
		imports.add("androidx.compose.ui.graphics.PathFillType")
		fmt.Fprintf(b, "%s    pathFillType = PathFillType.EvenOdd,\n", indent)
	}
	if p.Stroke.Color != nil {
		fmt.Fprintf(b, "%s    stroke = %s,\n", indent, solidColorExpr(*p.Stroke.Color))
	}
	if p.Stroke.Width != 1 {
		fmt.Fprintf(b, "%s    strokeLineWidth = %sf,\n", indent, formatFloat(p.Stroke.Width))
	}
	if p.Stroke.Alpha != 1 {
		fmt.Fprintf(b, "%s    strokeAlpha = %sf,\n", indent, formatFloat(p.Stroke.Alpha))
	}
	if p.Stroke.Cap != imagevector.CapButt {
		imports.add("androidx.compose.ui.graphics.StrokeCap")
		fmt.Fprintf(b, "%s    strokeLineCap = StrokeCap.%s,\n", indent, capName(p.Stroke.Cap))
	}
	if p.Stroke.Join != imagevector.JoinBevel {
		imports.add("androidx.compose.ui.graphics.StrokeJoin")
		fmt.Fprintf(b, "%s    strokeLineJoin = StrokeJoin.%s,\n", indent, joinName(p.Stroke.Join))
	}
	if p.Stroke.Miter != 1 {
		fmt.Fprintf(b, "%s    strokeLineMiter = %sf,\n", indent, formatFloat(p.Stroke.Miter))
	}
	fmt.Fprintf(b, "%s) {\n", indent)
	renderCommands(b, p.Commands, depth+1)
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderCommands(b *strings.Builder, commands []imagevector.Command, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, c := range commands {
		switch c.Kind {
		case imagevector.CommandMoveTo:
			fmt.Fprintf(b, "%smoveTo(%sf, %sf)\n", indent, formatFloat(c.P1.X), formatFloat(c.P1.Y))
		case imagevector.CommandLineTo:
			fmt.Fprintf(b, "%slineTo(%sf, %sf)\n", indent, formatFloat(c.P1.X), formatFloat(c.P1.Y))
		case imagevector.CommandCurveTo:
			fmt.Fprintf(b, "%scurveTo(%sf, %sf, %sf, %sf, %sf, %sf)\n", indent,
				formatFloat(c.P1.X), formatFloat(c.P1.Y),
				formatFloat(c.P2.X), formatFloat(c.P2.Y),
				formatFloat(c.P3.X), formatFloat(c.P3.Y))
		case imagevector.CommandQuadraticBezierTo:
			fmt.Fprintf(b, "%squadTo(%sf, %sf, %sf, %sf)\n", indent,
				formatFloat(c.P1.X), formatFloat(c.P1.Y),
				formatFloat(c.P2.X), formatFloat(c.P2.Y))
		case imagevector.CommandClose:
			fmt.Fprintf(b, "%sclose()\n", indent)
		}
	}
}

func solidColorExpr(c imagevector.Color) string {
	if c.Mapped != "" {
		return fmt.Sprintf("SolidColor(%s)", c.Mapped)
	}
	return fmt.Sprintf("SolidColor(Color(0xFF%02X%02X%02X))", c.R, c.G, c.B)
}

func capName(c imagevector.Cap) string {
	switch c {
	case imagevector.CapRound:
		return "Round"
	case imagevector.CapSquare:
		return "Square"
	default:
		return "Butt"
	}
}

func joinName(j imagevector.Join) string {
	switch j {
	case imagevector.JoinMiter:
		return "Miter"
	case imagevector.JoinRound:
		return "Round"
	default:
		return "Bevel"
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func uncapitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// importSet collects Kotlin import paths, deduplicated and sorted for
// reproducible output.
type importSet struct{ set map[string]struct{} }

func newImportSet() *importSet { return &importSet{set: make(map[string]struct{})} }

func (s *importSet) add(path string) {
	if path != "" {
		s.set[path] = struct{}{}
	}
}

func (s *importSet) addAll(paths []string) {
	for _, p := range paths {
		s.add(p)
	}
}

func renderImports(s *importSet) string {
	names := make([]string, 0, len(s.set))
	for n := range s.set {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "import %s\n", n)
	}
	if len(names) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

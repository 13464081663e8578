package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/evaluator"
	"github.com/matzehuels/figx/pkg/graph"
	"github.com/matzehuels/figx/pkg/label"
)

// explainCommand implements `figx explain <pattern...> [--dot]`, printing
// the Action Dependency Graph built for the matched resources: one line
// per node in topological order with its DiagnosticsInfo (spec's
// supplemented aquery-style diagnostics), or a Graphviz dot rendering.
func (c *CLI) explainCommand() *cobra.Command {
	var dot bool

	cmd := &cobra.Command{
		Use:   "explain <pattern...>",
		Short: "Print the Action Dependency Graph for matching resources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, resources, err := selectResourcesForPatterns(args)
			if err != nil {
				return err
			}

			kc, err := NewFileKeychain()
			if err != nil {
				return err
			}
			conf, targets, err := evaluator.Build(ws, resources, evaluator.Options{
				Tokens: resolveAllTokens(ws, kc),
			})
			if err != nil {
				return fmt.Errorf("explain: %w", err)
			}

			if dot {
				return renderExplainDot(conf)
			}
			return printExplainTree(conf, targets)
		},
	}

	cmd.Flags().BoolVar(&dot, "dot", false, "render the graph as Graphviz dot instead of a text listing")
	return cmd
}

// selectResourcesForPatterns loads the workspace and filters its resources
// by a composed label pattern, the selection logic every pattern-driven
// command (query, explain, fetch, import) shares.
func selectResourcesForPatterns(patterns []string) (*config.Workspace, []config.Resource, error) {
	ws, err := loadWorkspace()
	if err != nil {
		return nil, nil, err
	}
	composed, err := label.ParseComposed(patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid pattern: %w", err)
	}
	resources := config.SelectResources(ws, composed)
	if len(resources) == 0 {
		return nil, nil, fmt.Errorf("no resources matched %v", patterns)
	}
	return ws, resources, nil
}

// resolveAllTokens resolves every remote's access token, best-effort: a
// remote whose token can't be resolved is simply omitted (explain only
// reports graph shape and doesn't require a token).
func resolveAllTokens(ws *config.Workspace, kc *FileKeychain) map[string]string {
	tokens := make(map[string]string, len(ws.Remotes))
	for _, r := range ws.Remotes {
		if tok, err := resolveToken(r, kc, true); err == nil && tok != "" {
			tokens[r.ID] = tok
		}
	}
	return tokens
}

func printExplainTree(conf *graph.Configured, targets []evaluator.Target) error {
	for _, id := range conf.TopoOrder() {
		info := conf.Diagnostics(id)
		deps := conf.Dependencies(id)

		line := fmt.Sprintf("[%d] %s", id, StyleHighlight.Render(info.Name))
		for _, p := range info.Params {
			line += fmt.Sprintf(" %s=%s", StyleDim.Render(p.Key), p.Value)
		}
		fmt.Println(line)
		if len(deps) > 0 {
			depStrs := make([]string, len(deps))
			for i, d := range deps {
				depStrs[i] = fmt.Sprintf("%d", d)
			}
			printDetail("depends on: %v", depStrs)
		}
	}
	printNewline()
	printStats(conf.NodeCount(), len(targets), false)
	return nil
}

// explainDOT renders conf as Graphviz DOT source, one node per action
// labeled with its DiagnosticsInfo, with an edge from each dependency to
// its dependent.
func explainDOT(conf *graph.Configured) string {
	var buf bytes.Buffer
	buf.WriteString("digraph figx {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=11];\n\n")

	for _, id := range conf.TopoOrder() {
		info := conf.Diagnostics(id)
		parts := []string{info.Name}
		for _, p := range info.Params {
			parts = append(parts, fmt.Sprintf("%s=%s", p.Key, p.Value))
		}
		nodeLabel := strings.Join(parts, "\\n")
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", id, nodeLabel)
	}

	buf.WriteString("\n")
	for _, id := range conf.TopoOrder() {
		for _, dep := range conf.Dependencies(id) {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", dep, id)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func renderExplainDot(conf *graph.Configured) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("explain --dot: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(explainDOT(conf)))
	if err != nil {
		return fmt.Errorf("explain --dot: parse dot: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.DOT, &buf); err != nil {
		return fmt.Errorf("explain --dot: render: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}

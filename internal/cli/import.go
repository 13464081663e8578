package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/actions"
	"github.com/matzehuels/figx/pkg/evaluator"
	"github.com/matzehuels/figx/pkg/figma"
	"github.com/matzehuels/figx/pkg/graph"
)

// importCommand implements `figx import <pattern...> [--refetch] [--strict]`
// (spec §6): builds the full Action Dependency Graph for the matched
// resources and executes it, materializing every target file.
func (c *CLI) importCommand() *cobra.Command {
	var refetch, strict bool

	cmd := &cobra.Command{
		Use:   "import <pattern...>",
		Short: "Fetch and materialize matching resources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			ws, resources, err := selectResourcesForPatterns(args)
			if err != nil {
				return err
			}

			kc, err := NewFileKeychain()
			if err != nil {
				return err
			}
			coll, err := newCollaborators()
			if err != nil {
				return err
			}
			coll.keychain = kc

			tokens := make(map[string]string, len(ws.Remotes))
			for _, r := range ws.Remotes {
				tok, err := resolveToken(r, coll.keychain, false)
				if err != nil {
					return fmt.Errorf("import: resolve token for remote %s: %w", r.ID, err)
				}
				tokens[r.ID] = tok
			}

			conf, targets, err := evaluator.Build(ws, resources, evaluator.Options{
				Strict:       strict,
				ForceRefetch: refetch,
				Tokens:       tokens,
			})
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			fileCache, err := newCache(ws)
			if err != nil {
				return fmt.Errorf("import: open cache: %w", err)
			}
			defer fileCache.Close()

			state := &actions.EvalState{
				Cache:  fileCache,
				Figma:  figma.NewClient(coll.doer),
				HTTP:   coll.doer,
				Images: coll.images,
				SVG:    coll.svg,
				Strict: strict,
			}

			jobs, _ := cmd.Flags().GetInt("jobs")

			prog := newProgress(logger)
			var runErr error
			if isTerminal() {
				runErr = runWithDashboard(ctx, func(p graph.Progress) error {
					return evaluator.Run(ctx, conf, state, jobs, p)
				}, conf.NodeCount())
			} else {
				runErr = evaluator.Run(ctx, conf, state, jobs, graph.NoProgress{})
			}
			if runErr != nil {
				return fmt.Errorf("import: %w", runErr)
			}
			prog.done(fmt.Sprintf("Imported %d targets", len(targets)))

			for _, t := range targets {
				printFile(t.Path)
			}
			printNewline()
			printStats(conf.NodeCount(), len(targets), false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refetch, "refetch", false, "bypass the cached node index and re-fetch from the remote")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat raster paints on a vector profile as an error")
	return cmd
}

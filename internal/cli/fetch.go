package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/actions"
	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/figma"
	"github.com/matzehuels/figx/pkg/graph"
)

// fetchCommand implements `figx fetch <pattern...> [--strict] [--refetch]`
// (spec §6): it warms the remote node index and reports which nodes
// resolve, without running Export/Download/Materialize. A dedicated,
// smaller graph (FetchRemote -> FindNode only) keeps a `fetch` invocation
// from touching the network for image bytes or writing any file.
func (c *CLI) fetchCommand() *cobra.Command {
	var strict, refetch bool

	cmd := &cobra.Command{
		Use:   "fetch <pattern...>",
		Short: "Warm the remote node index for matching resources",
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

			fileCache, err := newCache(ws)
			if err != nil {
				return fmt.Errorf("fetch: open cache: %w", err)
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

			conf, err := buildFetchOnlyGraph(ws, resources, coll.keychain, refetch)
			if err != nil {
				return fmt.Errorf("fetch: %w", err)
			}

			jobs, _ := cmd.Flags().GetInt("jobs")

			prog := newProgress(logger)
			if err := graph.Execute(ctx, conf, state, jobs, graph.NoProgress{}); err != nil {
				return fmt.Errorf("fetch: %w", err)
			}
			prog.done(fmt.Sprintf("Resolved %d resources", len(resources)))

			for _, res := range resources {
				printDetail("%s — %s", res.Label.String(), res.NodeName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat raster paints on a vector profile as an error")
	cmd.Flags().BoolVar(&refetch, "refetch", false, "bypass the cached node index and re-fetch from the remote")
	return cmd
}

// buildFetchOnlyGraph mirrors evaluator.Build's remote-sharing and
// vector-profile logic, but stops after FindNode: no Export, Download,
// Transform, or Materialize node is ever added.
func buildFetchOnlyGraph(ws *config.Workspace, resources []config.Resource, kc *FileKeychain, refetch bool) (*graph.Configured, error) {
	b := graph.NewBuilder()
	fetchNodes := make(map[string]graph.NodeID)

	for _, res := range resources {
		var remote config.RemoteSource
		var ok bool
		if res.RemoteID != "" {
			remote, ok = ws.Remote(res.RemoteID)
		} else {
			remote, ok = ws.DefaultRemote()
		}
		if !ok {
			return nil, fmt.Errorf("resource %s: no remote resolves", res.Label)
		}

		token, err := resolveToken(remote, kc, false)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", res.Label, err)
		}

		fetchID, ok := fetchNodes[remote.ID]
		if !ok {
			ids := make([]string, len(remote.ContainerNodeIDs))
			for i, c := range remote.ContainerNodeIDs {
				ids[i] = c.ID
			}
			fetchID = b.AddNode(&actions.FetchRemoteAction{
				RemoteName:   remote.ID,
				FileKey:      remote.FileKey,
				AccessToken:  token,
				ContainerIDs: ids,
				ForceRefetch: refetch,
			})
			fetchNodes[remote.ID] = fetchID
		}

		findID := b.AddNode(&actions.FindNodeAction{
			NodeName:      res.NodeName,
			Span:          res.Span,
			VectorProfile: res.Profile.Kind != config.ProfilePng && res.Profile.Kind != config.ProfileWebp && res.Profile.Kind != config.ProfileAndroidWebp,
		})
		b.AddEdge(fetchID, findID)
	}

	return b.Build()
}

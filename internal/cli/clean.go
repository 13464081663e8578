package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/actions"
	"github.com/matzehuels/figx/pkg/cache"
)

// cleanCommand implements `figx clean [--all]` (spec §6). Without --all it
// only clears cached remote node indexes (actions.TagFetchRemote), forcing
// the next fetch/import to re-resolve node names against the design
// service; --all wipes the entire on-disk cache, including exported image
// bytes and rendered transforms.
func (c *CLI) cleanCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace()
			if err != nil {
				return err
			}

			fileCache, err := newCache(ws)
			if err != nil {
				return fmt.Errorf("clean: open cache: %w", err)
			}
			defer fileCache.Close()

			fc, ok := fileCache.(*cache.FileCache)
			if !ok {
				return fmt.Errorf("clean: cache backend does not support clearing")
			}

			if all {
				if err := fc.Clean(); err != nil {
					return fmt.Errorf("clean: %w", err)
				}
				printSuccess("Cleared entire cache at %s", ws.Context.CacheDir)
				return nil
			}

			if err := fc.CleanTag(actions.TagFetchRemote); err != nil {
				return fmt.Errorf("clean: %w", err)
			}
			printSuccess("Cleared cached remote node indexes")
			printNextStep("wipe exported images and transforms too", "figx clean --all")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "remove every cached entry, not just remote node indexes")
	return cmd
}

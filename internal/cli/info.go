package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/config"
)

// infoCommand implements `figx info <workspace|package>` (spec §6).
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [workspace|package]",
		Short: "Describe the workspace or the current package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "workspace"
			if len(args) == 1 {
				target = args[0]
			}

			ws, err := loadWorkspace()
			if err != nil {
				return err
			}

			switch target {
			case "workspace":
				return printWorkspaceInfo(ws)
			case "package":
				return printPackageInfo(ws)
			default:
				return fmt.Errorf("info: unknown target %q (want %q or %q)", target, "workspace", "package")
			}
		},
	}
}

func printWorkspaceInfo(ws *config.Workspace) error {
	printSuccess("Workspace")
	printKeyValue("Root", ws.Context.WorkspaceRoot)
	printKeyValue("Cache dir", ws.Context.CacheDir)
	printKeyValue("Packages", fmt.Sprintf("%d", len(ws.Packages)))
	printKeyValue("Remotes", fmt.Sprintf("%d", len(ws.Remotes)))
	printNewline()
	for _, r := range ws.Remotes {
		label := r.ID
		if r.Default {
			label += " (default)"
		}
		printDetail("%s — file %s, %d containers", label, r.FileKey, len(r.ContainerNodeIDs))
	}
	return nil
}

func printPackageInfo(ws *config.Workspace) error {
	if ws.Context.CurrentPackageLabel == nil {
		return fmt.Errorf("info package: current directory is not a declared package")
	}
	for _, pkg := range ws.Packages {
		if pkg.Dir != *ws.Context.CurrentPackageLabel {
			continue
		}
		printSuccess("Package %s", pkg.Dir.String())
		printKeyValue("Resources", fmt.Sprintf("%d", len(pkg.Resources)))
		printNewline()
		for _, res := range pkg.Resources {
			printDetail("%s — %s (%s)", res.Label.String(), res.NodeName, res.Profile.Kind)
		}
		return nil
	}
	return fmt.Errorf("info package: package %s has no resources", ws.Context.CurrentPackageLabel.String())
}

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figx/pkg/config"
	"github.com/matzehuels/figx/pkg/label"
)

// queryCommand implements `figx query <pattern...> --output label|profile|package|tree`
// (spec §6, with --output tree supplementing the distilled spec's output kinds).
func (c *CLI) queryCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "query <pattern...>",
		Short: "List resources matching one or more label patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace()
			if err != nil {
				return err
			}
			composed, err := label.ParseComposed(args)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			resources := config.SelectResources(ws, composed)

			switch output {
			case "label":
				for _, r := range resources {
					fmt.Println(r.Label.String())
				}
			case "profile":
				for _, r := range resources {
					fmt.Printf("%s\t%s\n", r.Label.String(), r.Profile.Kind)
				}
			case "package":
				printPackagesOf(resources)
			case "tree":
				printResourceTree(resources)
			default:
				return fmt.Errorf("query: unknown --output %q (want label, profile, package, or tree)", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "label", "output format: label, profile, package, or tree")
	return cmd
}

func printPackagesOf(resources []config.Resource) {
	seen := make(map[string]bool)
	var pkgs []string
	for _, r := range resources {
		dir := r.PackageDir.String()
		if !seen[dir] {
			seen[dir] = true
			pkgs = append(pkgs, dir)
		}
	}
	sort.Strings(pkgs)
	for _, p := range pkgs {
		fmt.Println(p)
	}
}

func printResourceTree(resources []config.Resource) {
	byPkg := make(map[string][]config.Resource)
	var order []string
	for _, r := range resources {
		dir := r.PackageDir.String()
		if _, ok := byPkg[dir]; !ok {
			order = append(order, dir)
		}
		byPkg[dir] = append(byPkg[dir], r)
	}
	for _, dir := range order {
		name := dir
		if name == "" {
			name = "//"
		}
		fmt.Println(name)
		for _, r := range byPkg[dir] {
			fmt.Printf("  %s  %s\n", r.Label.Truncate(40), r.Profile.Kind)
		}
	}
}

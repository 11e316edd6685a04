package cmd

import (
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/api"
)

var branchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the branches of a project",
	Example: `neonctl branches list --project-id young-frog-123456
neonctl branches list --name 'preview/*'`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		projectID := mustProjectID(cmd)
		pattern := flagValue(cmd, "name")
		client := getClient()
		branches, err := client.ListProjectBranches(cmd.Context(), projectID)
		if err != nil {
			DieErr(err)
		}
		branches, err = filterBranches(branches, pattern)
		if err != nil {
			DieFmt("invalid --name pattern %q: %s", pattern, err)
		}
		printBranches(branches)
	},
}

// filterBranches keeps the branches whose name matches the glob pattern.
// An empty pattern keeps all of them.
func filterBranches(branches []api.Branch, pattern string) ([]api.Branch, error) {
	if pattern == "" {
		return branches, nil
	}
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	filtered := make([]api.Branch, 0, len(branches))
	for _, b := range branches {
		if matcher.Match(b.Name) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

//nolint:gochecknoinits
func init() {
	branchesListCmd.Flags().String("name", "", "only list branches whose name matches this glob pattern")
	branchesCmd.AddCommand(branchesListCmd)
}

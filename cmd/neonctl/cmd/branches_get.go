package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/api/helpers"
)

var branchesGetCmd = &cobra.Command{
	Use:   "get [id|name]",
	Short: "Show a branch",
	Long:  "Show a branch. Without an argument the branch saved by set-context is shown.",
	Example: `neonctl branches get main
neonctl branches get`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectID := mustProjectID(cmd)
		args, err := branchArgs(cfg.ContextFile, projectID, args, 1)
		if err != nil {
			DieErr(err)
		}
		branch, err := getBranch(cmd.Context(), getClient(), projectID, args[0])
		if err != nil {
			DieErr(err)
		}
		printBranch(branch)
	},
}

func getBranch(ctx context.Context, client *api.Client, projectID, branch string) (*api.Branch, error) {
	branchID, err := helpers.ResolveBranchID(ctx, client, projectID, branch)
	if err != nil {
		return nil, err
	}
	return client.GetProjectBranch(ctx, projectID, branchID)
}

//nolint:gochecknoinits
func init() {
	branchesCmd.AddCommand(branchesGetCmd)
}

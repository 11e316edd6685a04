package cmd

import (
	"context"

	"github.com/go-openapi/swag"
	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/api/helpers"
	"github.com/zthreefires/neonctl/pkg/logging"
	"github.com/zthreefires/neonctl/pkg/pointintime"
)

var branchesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a branch",
	Long: `Create a branch from the head of a parent branch, or from the default
branch at an LSN or timestamp given as --parent.`,
	Example: `neonctl branches create --name dev --parent main
neonctl branches create --name before-migration --parent 2024-12-31T00:00:00Z
neonctl branches create --name at-lsn --parent 0/1F2A3B4C`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		projectID := mustProjectID(cmd)
		client := getClient()
		req, err := branchCreateRequest(cmd.Context(), client, projectID, flagValue(cmd, "name"), flagValue(cmd, "parent"))
		if err != nil {
			DieErr(err)
		}
		branch, err := client.CreateProjectBranch(cmd.Context(), projectID, req)
		if err != nil {
			DieErr(err)
		}
		printBranch(branch)
	},
}

// branchCreateRequest builds the create request for a --parent value. An LSN
// or a timestamp points into the history of the default branch, anything else
// names the parent branch. No parent lets the server pick the default branch.
func branchCreateRequest(ctx context.Context, client *api.Client, projectID, name, parent string) (api.BranchCreateRequest, error) {
	req := api.BranchCreateRequest{}
	if name != "" {
		req.Branch.Name = swag.String(name)
	}

	switch {
	case parent == "":
		return req, nil
	case pointintime.LooksLikeLSN(parent), pointintime.LooksLikeTimestamp(parent):
		defaultBranch, err := helpers.DefaultBranch(ctx, client, projectID)
		if err != nil {
			return req, err
		}
		req.Branch.ParentID = swag.String(defaultBranch.ID)
		if pointintime.LooksLikeLSN(parent) {
			req.Branch.ParentLSN = swag.String(parent)
		} else {
			req.Branch.ParentTimestamp = swag.String(parent)
		}
	default:
		parentID, err := helpers.ResolveBranchID(ctx, client, projectID, parent)
		if err != nil {
			return req, err
		}
		req.Branch.ParentID = swag.String(parentID)
	}

	logging.FromContext(ctx).
		WithFields(logging.Fields{logging.BranchFieldKey: swag.StringValue(req.Branch.ParentID), "parent": parent}).
		Debug("Creating branch")
	return req, nil
}

//nolint:gochecknoinits
func init() {
	branchesCreateCmd.Flags().String("name", "", "branch name (generated by the server when empty)")
	branchesCreateCmd.Flags().String("parent", "", "parent branch id or name, or an LSN or timestamp on the default branch")
	branchesCmd.AddCommand(branchesCreateCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/go-openapi/swag"
	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/api/helpers"
	"github.com/zthreefires/neonctl/pkg/logging"
	"github.com/zthreefires/neonctl/pkg/pointintime"
)

const branchRestoreArgs = 2

var branchesRestoreCmd = &cobra.Command{
	Use:   "restore [target id|name] <source>[@(timestamp|lsn)]",
	Short: "Restore a branch to a point in time",
	Long: `Restore the target branch to the state of a source branch.

The source is a branch id or name, optionally at a point of its history
(<branch>@<lsn> or <branch>@<timestamp>), ^self for the target itself or
^parent for the target's parent. When only the source is given the target
is the branch saved by set-context.`,
	Example: `neonctl branches restore main br-cool-rain-123456@0/1F2A3B4C
neonctl branches restore main ^parent
neonctl branches restore dev main@2024-12-31T00:00:00Z --preserve-under-name dev-backup
neonctl branches restore ^parent`,
	Args: cobra.RangeArgs(branchRestoreArgs-1, branchRestoreArgs),
	Run: func(cmd *cobra.Command, args []string) {
		projectID := mustProjectID(cmd)
		args, err := branchArgs(cfg.ContextFile, projectID, args, branchRestoreArgs)
		if err != nil {
			DieErr(err)
		}
		mustConfirm(cmd, fmt.Sprintf("Restore branch %s to %s", args[0], args[1]))
		client := getClient()
		branch, err := restoreBranch(cmd.Context(), client, pointintime.NewParser(nil), restoreParams{
			ProjectID:         projectID,
			Target:            args[0],
			Source:            args[1],
			PreserveUnderName: flagValue(cmd, "preserve-under-name"),
		})
		if err != nil {
			DieErr(err)
		}
		printBranch(branch)
	},
}

type restoreParams struct {
	ProjectID         string
	Target            string
	Source            string
	PreserveUnderName string
}

// restoreBranch resolves the target branch and the source point in time, then
// restores the target.
func restoreBranch(ctx context.Context, client *api.Client, parser *pointintime.Parser, params restoreParams) (*api.Branch, error) {
	targetID, err := helpers.ResolveBranchID(ctx, client, params.ProjectID, params.Target)
	if err != nil {
		return nil, err
	}
	ctx = logging.AddFields(ctx, logging.Fields{
		logging.BranchFieldKey:      targetID,
		logging.PointInTimeFieldKey: params.Source,
	})

	resolver := pointintime.NewResolver(client, helpers.NewBranchResolver(client), parser)
	source, err := resolver.ParsePointInTime(ctx, pointintime.Params{
		PointInTime:    params.Source,
		TargetBranchID: targetID,
		ProjectID:      params.ProjectID,
	})
	if err != nil {
		return nil, err
	}
	req := api.BranchRestoreRequest{SourceBranchID: source.BranchID}
	switch source.Tag {
	case pointintime.TagLSN:
		req.SourceLSN = swag.String(source.LSN)
	case pointintime.TagTimestamp:
		req.SourceTimestamp = swag.String(source.Timestamp)
	}
	if params.PreserveUnderName != "" {
		req.PreserveUnderName = swag.String(params.PreserveUnderName)
	}
	logging.FromContext(ctx).
		WithFields(logging.Fields{"source_branch_id": source.BranchID, "tag": source.Tag}).
		Debug("Restoring branch")
	return client.RestoreProjectBranch(ctx, params.ProjectID, targetID, req)
}

//nolint:gochecknoinits
func init() {
	branchesRestoreCmd.Flags().BoolP(yesFlagName, "y", false, "do not ask for confirmation")
	branchesRestoreCmd.Flags().String("preserve-under-name", "", "name under which to preserve the old state of the target branch")
	branchesCmd.AddCommand(branchesRestoreCmd)
}

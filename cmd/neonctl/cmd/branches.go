package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/contextfile"
	"github.com/zthreefires/neonctl/pkg/logging"
)

const (
	projectIDFlagName = "project-id"
	branchIDFlagName  = "branch-id"
)

var errNoContextBranch = errors.New(`missing branch, pass it as an argument or run "neonctl set-context --branch-id <id>"`)

// branchesCmd represents the branches command
var branchesCmd = &cobra.Command{
	Use:     "branches",
	Aliases: []string{"branch"},
	Short:   "Manage project branches",
}

// mustProjectID returns the --project-id flag, falling back to the context
// file written by set-context.
func mustProjectID(cmd *cobra.Command) string {
	projectID := flagValue(cmd, projectIDFlagName)
	if projectID == "" {
		c, err := contextfile.Read(cfg.ContextFile)
		if err != nil {
			DieErr(err)
		}
		projectID = c.ProjectID
	}
	if projectID == "" {
		Die("missing project id, use --project-id or run \"neonctl set-context --project-id <id>\"", 1)
	}
	cmd.SetContext(logging.AddFields(cmd.Context(), logging.Fields{logging.ProjectFieldKey: projectID}))
	return projectID
}

// branchArgs returns args with the branch saved by set-context prepended when
// the leading branch argument is omitted, so that it holds n values. The saved
// branch is used only while it belongs to projectID.
func branchArgs(contextPath, projectID string, args []string, n int) ([]string, error) {
	if len(args) >= n {
		return args, nil
	}
	c, err := contextfile.Read(contextPath)
	if err != nil {
		return nil, err
	}
	if c.BranchID == "" || c.ProjectID != projectID {
		return nil, errNoContextBranch
	}
	return append([]string{c.BranchID}, args...), nil
}

//nolint:gochecknoinits
func init() {
	branchesCmd.PersistentFlags().String(projectIDFlagName, "", "project ID (default is the project in the context file)")
	rootCmd.AddCommand(branchesCmd)
}

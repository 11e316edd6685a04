package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/contextfile"
)

const setContextTemplate = `Context written to {{ .File | bold }}
Project ID: {{ .Context.ProjectID | green }}
{{- if .Context.BranchID }}
Branch ID: {{ .Context.BranchID | green }}
{{- end }}
`

var setContextCmd = &cobra.Command{
	Use:   "set-context",
	Short: "Set the project and branch used by commands when they are not given",
	Long: `Set the project used when --project-id is not given and the branch used when
the branch argument of "branches get" or the target of "branches restore" is
omitted. Changing the project clears the saved branch.`,
	Example: `neonctl set-context --project-id young-frog-123456
neonctl set-context --branch-id br-cool-rain-123456`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := contextfile.Update(cfg.ContextFile, contextfile.Context{
			ProjectID: flagValue(cmd, projectIDFlagName),
			BranchID:  flagValue(cmd, branchIDFlagName),
		})
		if err != nil {
			DieErr(err)
		}
		Write(setContextTemplate, struct {
			File    string
			Context *contextfile.Context
		}{File: cfg.ContextFile, Context: c})
	},
}

//nolint:gochecknoinits
func init() {
	setContextCmd.Flags().String(projectIDFlagName, "", "project ID")
	setContextCmd.Flags().String(branchIDFlagName, "", "branch ID or name")
	setContextCmd.MarkFlagsOneRequired(projectIDFlagName, branchIDFlagName)
	rootCmd.AddCommand(setContextCmd)
}

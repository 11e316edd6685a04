package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zthreefires/neonctl/pkg/pointintime"
)

const parsePITTemplate = `Branch:    {{ .Branch | bold }}
Tag:       {{ .Tag | yellow }}
{{- if .LSN }}
LSN:       {{ .LSN }}
{{- end }}
{{- if .Timestamp }}
Timestamp: {{ .Timestamp }}
{{- end }}
`

var branchesParsePITCmd = &cobra.Command{
	Use:   "parse-pit <branch>[@(timestamp|lsn)]",
	Short: "Parse a point in time branch reference without calling the API",
	Long: `Parse a point in time branch reference without calling the API.

The ^self and ^parent markers are relative to a target branch and are only
accepted by commands that take one, such as restore.`,
	Example: `neonctl branches parse-pit main@0/1F2A3B4C
neonctl branches parse-pit main@2024-12-31T00:00:00Z -o json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pit, err := pointintime.ParsePITBranch(args[0])
		if err != nil {
			DieErr(err)
		}
		if err := writePITBranch(os.Stdout, cfg.Output, pit); err != nil {
			DieErr(err)
		}
	},
}

func writePITBranch(w io.Writer, format string, pit pointintime.PITBranch) error {
	return writeOutput(w, format, pit, func(w io.Writer) {
		WriteTo(parsePITTemplate, pit, w)
	})
}

//nolint:gochecknoinits
func init() {
	branchesCmd.AddCommand(branchesParsePITCmd)
}

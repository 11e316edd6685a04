package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/go-openapi/swag"
	"github.com/zthreefires/neonctl/pkg/api"
	"github.com/zthreefires/neonctl/pkg/config"
	"gopkg.in/yaml.v3"
)

var branchHeaders = []interface{}{"Branch ID", "Name", "Default", "Parent", "Current State", "Created At"}

func branchRow(b api.Branch) []interface{} {
	return []interface{}{b.ID, b.Name, b.Default, swag.StringValue(b.ParentID), b.CurrentState, b.CreatedAt.Format("2006-01-02 15:04:05")}
}

// writeOutput renders v in the configured output format. renderTable is used
// for the table format.
func writeOutput(w io.Writer, format string, v interface{}, renderTable func(w io.Writer)) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		renderTable(w)
		return nil
	}
}

func printBranches(branches []api.Branch) {
	err := writeOutput(os.Stdout, cfg.Output, branches, func(w io.Writer) {
		renderBranches(w, branches)
	})
	if err != nil {
		DieErr(err)
	}
}

func printBranch(branch *api.Branch) {
	err := writeOutput(os.Stdout, cfg.Output, branch, func(w io.Writer) {
		renderBranches(w, []api.Branch{*branch})
	})
	if err != nil {
		DieErr(err)
	}
}

func renderBranches(w io.Writer, branches []api.Branch) {
	rows := make([][]interface{}, len(branches))
	for i, b := range branches {
		rows[i] = branchRow(b)
	}
	PrintTableTo(w, rows, branchHeaders)
}

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/zthreefires/neonctl/pkg/api"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

var (
	// isTerminal selects table rendering and color for stdout
	isTerminal       = true
	noColorRequested = false
	// isInteractive allows prompting the user for confirmation, independent
	// of output coloring
	isInteractive    = true
)

const (
	NeonctlInteractive        = "NEONCTL_INTERACTIVE"
	NeonctlInteractiveDisable = "no"
	DeathMessage              = "Error executing command: {{.Error|red}}\n"
)

const resourceListTemplate = `{{.Table | table -}}`

//nolint:gochecknoinits
func init() {
	// disable colors if we're not attached to interactive TTY
	if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv(NeonctlInteractive) == NeonctlInteractiveDisable {
		DisableColors()
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || os.Getenv(NeonctlInteractive) == NeonctlInteractiveDisable {
		isInteractive = false
	}
}

func DisableColors() {
	text.DisableColors()
	isTerminal = false
}

type Table struct {
	Headers []interface{}
	Rows    [][]interface{}
}

var templateFuncs = template.FuncMap{
	"red": func(arg interface{}) string {
		return text.FgHiRed.Sprint(arg)
	},
	"yellow": func(arg interface{}) string {
		return text.FgHiYellow.Sprint(arg)
	},
	"green": func(arg interface{}) string {
		return text.FgHiGreen.Sprint(arg)
	},
	"bold": func(arg interface{}) string {
		return text.Bold.Sprint(arg)
	},
	"date": func(ts time.Time) string {
		if ts.IsZero() {
			return ""
		}
		return ts.Format(time.RFC3339)
	},
	"json": func(v interface{}) string {
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			panic(fmt.Sprintf("failed to encode JSON: %s", err.Error()))
		}
		return string(encoded)
	},
	"yaml": func(v interface{}) string {
		encoded, err := yaml.Marshal(v)
		if err != nil {
			panic(fmt.Sprintf("failed to encode YAML: %s", err.Error()))
		}
		return string(encoded)
	},
	"lower": strings.ToLower,
	"join": func(sep string, args []string) string {
		return strings.Join(args, sep)
	},
	"table": func(tab *Table) string {
		if isTerminal {
			buf := new(bytes.Buffer)
			t := table.NewWriter()
			t.SetOutputMirror(buf)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(tab.Headers)
			for _, row := range tab.Rows {
				t.AppendRow(row)
			}
			t.Render()
			return buf.String()
		}
		var b strings.Builder
		for _, row := range tab.Rows {
			for ic, cell := range row {
				b.WriteString(fmt.Sprint(cell))
				if ic < len(row)-1 {
					b.WriteString("\t")
				}
			}
			b.WriteString("\n")
		}
		return b.String()
	},
}

func WriteTo(tpl string, data interface{}, w io.Writer) {
	t := template.Must(template.New("output").Funcs(templateFuncs).Parse(tpl))
	err := t.Execute(w, data)
	if err != nil {
		panic(err)
	}
}

func Write(tpl string, data interface{}) {
	WriteTo(tpl, data, os.Stdout)
}

func Die(err string, code int) {
	WriteTo(DeathMessage, struct{ Error string }{err}, os.Stderr)
	os.Exit(code)
}

func DieFmt(msg string, args ...interface{}) {
	Die(fmt.Sprintf(msg, args...), 1)
}

func DieErr(err error) {
	Die(errorMessage(err), 1)
}

// errorMessage prefers the message sent by the API server.
func errorMessage(err error) string {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		msg := respErr.Message
		if respErr.RequestID != "" {
			msg += " (request id " + respErr.RequestID + ")"
		}
		return msg
	}
	return err.Error()
}

// Must returns v or dies on err.
func Must[T any](v T, err error) T {
	if err != nil {
		DieErr(err)
	}
	return v
}

func PrintTable(rows [][]interface{}, headers []interface{}) {
	PrintTableTo(os.Stdout, rows, headers)
}

func PrintTableTo(w io.Writer, rows [][]interface{}, headers []interface{}) {
	ctx := struct {
		Table *Table
	}{
		Table: &Table{
			Headers: headers,
			Rows:    rows,
		},
	}
	WriteTo(resourceListTemplate, ctx, w)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"thumbcache/internal/batch"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type resultJSON struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Path    string `json:"path,omitempty"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

type reportJSON struct {
	Results []resultJSON  `json:"results"`
	Summary batch.Summary `json:"summary"`
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable lays rows out under headers. Column widths account for
// double-width characters in item names.
func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// printReport writes one row per result in input order, then the summary.
// Terminals get a table; anything else gets tab-separated lines.
func printReport(cmd *cobra.Command, report batch.Report, asJSON bool) error {
	if asJSON {
		out := reportJSON{Results: make([]resultJSON, 0, len(report.Results)), Summary: report.Summary}
		for _, res := range report.Results {
			r := resultJSON{
				Name:    res.Item.DisplayName,
				Locator: res.Item.Locator,
				Path:    res.Path,
				Outcome: res.Outcome.String(),
			}
			if res.Err != nil {
				r.Error = res.Err.Error()
			}
			out.Results = append(out.Results, r)
		}
		return writeJSON(cmd, out)
	}

	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		path := res.Path
		if path == "" {
			path = "-"
		}
		rows = append(rows, []string{res.Item.DisplayName, res.Outcome.String(), path})
	}

	w := cmd.OutOrStdout()
	if isTerminal(w) {
		if len(rows) > 0 {
			fmt.Fprintln(w, renderTable([]string{"Name", "Outcome", "Path"}, rows))
		}
	} else {
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	}

	s := report.Summary
	_, err := fmt.Fprintf(w, "%d items: %d cached, %d built, %d skipped\n", s.Total, s.Cached, s.Built, s.Skipped)
	return err
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func outputFormat() (string, error) {
	switch format := strings.ToLower(strings.TrimSpace(cfg.OutputFormat)); format {
	case "", "table":
		return "table", nil
	case "json":
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be table or json)", cfg.OutputFormat)
	}
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	// Keep column names as written (snake_case), no upper-casing.
	table.Options(tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
	}))
	if cfg.Plain {
		table.Options(tablewriter.WithSymbols(&tw.SymbolASCII{}))
	}
	return table
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := newTable(w)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		values := make([]any, len(row))
		for i, cell := range row {
			values[i] = cell
		}
		if err := table.Append(values...); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"reelstore/internal/ingest"
)

func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range header {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// renderStats formats batch counters as a two-column table, with the error
// count highlighted when stdout is a terminal.
func renderStats(stats ingest.Stats) string {
	errorCell := strconv.Itoa(stats.Errors)
	if stats.Errors > 0 && isatty.IsTerminal(os.Stdout.Fd()) {
		errorCell = text.FgRed.Sprint(errorCell)
	}

	return renderTable(
		[]string{"Metric", "Count"},
		[][]string{
			{"Total", strconv.Itoa(stats.Total)},
			{"Imported", strconv.Itoa(stats.Imported)},
			{"Skipped", strconv.Itoa(stats.Skipped)},
			{"Errors", errorCell},
			{"Ratings added", strconv.Itoa(stats.RatingsAdded)},
		},
	)
}

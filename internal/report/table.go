// Package report renders pipeline run summaries as aligned markdown tables.
package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"restokb/internal/pipeline"
	"restokb/pkg/utils"
)

const maxSourceWidth = 60

// FormatTable renders one row per scrape job, columns padded by display
// width so wide characters in restaurant names keep the table aligned.
func FormatTable(results []pipeline.JobResult) string {
	helper := utils.NewStringHelper()

	rows := [][]string{{"RESTAURANT", "SOURCE", "ITEMS", "REVIEWS", "STATUS"}}

	for _, r := range results {
		name := r.Name
		if name == "" {
			name = "-"
		}

		status := "ok"
		if r.Err != nil {
			status = "failed: " + helper.TruncateString(r.Err.Error(), maxSourceWidth)
		}

		rows = append(rows, []string{
			name,
			helper.TruncateString(r.Source, maxSourceWidth),
			strconv.Itoa(r.Items),
			strconv.Itoa(r.Reviews),
			status,
		})
	}

	widths := make([]int, len(rows[0]))

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for rowIdx, row := range rows {
		b.WriteString("|")

		for i, cell := range row {
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			b.WriteString(" |")
		}

		b.WriteString("\n")

		if rowIdx == 0 {
			b.WriteString("|")

			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("|")
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}

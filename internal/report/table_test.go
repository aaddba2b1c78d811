package report

import (
	"errors"
	"strings"
	"testing"

	"restokb/internal/pipeline"
)

func TestFormatTable(t *testing.T) {
	results := []pipeline.JobResult{
		{Name: "The Big Grill", Source: "https://example.com/big-grill", Items: 42, Reviews: 7},
		{Source: "https://example.com/broken", Err: errors.New("unexpected status code: 503")},
	}

	table := FormatTable(results)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + separator + 2 rows", len(lines))
	}

	if !strings.Contains(lines[0], "RESTAURANT") {
		t.Errorf("header = %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "|--") {
		t.Errorf("separator = %q", lines[1])
	}

	if !strings.Contains(lines[2], "The Big Grill") || !strings.Contains(lines[2], "42") {
		t.Errorf("row = %q", lines[2])
	}

	if !strings.Contains(lines[3], "failed: unexpected status code: 503") {
		t.Errorf("failed row = %q", lines[3])
	}

	// Failed jobs have no extracted name.
	if !strings.Contains(lines[3], "| -") {
		t.Errorf("failed row should use a dash for the name: %q", lines[3])
	}
}

func TestFormatTable_AlignsColumns(t *testing.T) {
	results := []pipeline.JobResult{
		{Name: "A", Source: "s", Items: 1, Reviews: 1},
		{Name: "Much Longer Restaurant Name", Source: "s", Items: 1, Reviews: 1},
	}

	table := FormatTable(results)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("line %d width %d differs from header width %d", i, len(lines[i]), len(lines[0]))
		}
	}
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/morozRed/cratemap/internal/fileutil"
	"github.com/morozRed/cratemap/internal/graph"
)

type StatsSummary struct {
	Crate       string         `json:"crate"`
	Version     string         `json:"crate_version,omitempty"`
	Format      int            `json:"format_version"`
	Index       string         `json:"index"`
	IndexHash   string         `json:"index_hash"`
	IndexBytes  int64          `json:"index_bytes"`
	Items       int            `json:"items"`
	Paths       int            `json:"paths"`
	Modules     int            `json:"modules"`
	Edges       int            `json:"edges"`
	Dropped     int            `json:"dropped"`
	Roots       int            `json:"roots"`
	EdgesByKind map[string]int `json:"edges_by_label"`
	DurationMS  int64          `json:"duration_ms"`
}

func PrintStatsSummary(out io.Writer, summary StatsSummary, asJSON bool) error {
	if out == nil {
		out = os.Stdout
	}
	if asJSON {
		return fileutil.FprintJSON(out, summary)
	}

	fmt.Fprintf(out, "crate %s", summary.Crate)
	if summary.Version != "" {
		fmt.Fprintf(out, " %s", summary.Version)
	}
	fmt.Fprintf(out, " (format %d)\n", summary.Format)
	fmt.Fprintf(out, "index: %s (%s, sha %s)\n", summary.Index, humanize.Bytes(uint64(summary.IndexBytes)), summary.IndexHash)
	fmt.Fprintf(out, "items: %s paths=%s modules=%s\n",
		humanize.Comma(int64(summary.Items)), humanize.Comma(int64(summary.Paths)), humanize.Comma(int64(summary.Modules)))
	fmt.Fprintf(out, "edges: %s dropped=%s roots=%s\n",
		humanize.Comma(int64(summary.Edges)), humanize.Comma(int64(summary.Dropped)), humanize.Comma(int64(summary.Roots)))
	for _, label := range graph.Labels() {
		if n := summary.EdgesByKind[label.String()]; n > 0 {
			fmt.Fprintf(out, "  %s=%s\n", label, humanize.Comma(int64(n)))
		}
	}
	fmt.Fprintf(out, "duration: %dms\n", summary.DurationMS)
	return nil
}

// PrintWarnings writes one summary line for selection warnings.
func PrintWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(out, "warnings (%d): %s\n", len(warnings), SummarizeList(warnings, 5))
}

func SummarizeList(values []string, max int) string {
	if len(values) <= max {
		return strings.Join(values, "; ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(values[:max], "; "), len(values)-max)
}

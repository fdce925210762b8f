package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/flightdq/internal/analysis"
	"github.com/dbsmedya/flightdq/internal/config"
)

// Section headers of the Markdown report, in report order.
const (
	SectionMissing          = "Missing Values Summary"
	SectionDuration         = "Flight Duration Outliers"
	SectionDurationDetailed = "Flight Duration Outliers (Detailed)"
	SectionExactDuplicates  = "Exact Duplicate Rows"
	SectionDuplicateIDs     = "Duplicate Flight Numbers"
)

// Limits caps the rows printed by the long Markdown sections. Negative means no cap.
type Limits struct {
	Detailed   int
	Duplicates int
}

// LimitsFromConfig maps the report config section to Markdown limits.
func LimitsFromConfig(cfg *config.ReportConfig) Limits {
	return Limits{Detailed: cfg.DetailedLimit, Duplicates: cfg.DuplicateLimit}
}

// WriteMarkdown renders the Markdown report. It fails without writing anything
// if an analysis the report needs has failed.
func WriteMarkdown(w io.Writer, res *Result, limits Limits) error {
	for _, name := range []string{analysis.NameFlightDurationOutliers, analysis.NameDuplicateFlightNumbers} {
		if err := res.Err(name); err != nil {
			return fmt.Errorf("cannot build report: %w", err)
		}
	}

	var b bytes.Buffer
	b.WriteString("# Analysis Report\n\n")
	fmt.Fprintf(&b, "_Table %s, %d rows, run %s, generated %s_\n",
		res.Table, res.Rows, res.RunID, res.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	writeMarkdownSection(&b, SectionMissing, MissingGrid(res.Missing))
	writeMarkdownSection(&b, SectionDuration, OutlierGrid(*res.Duration))
	writeMarkdownSection(&b, SectionDurationDetailed, RowsGrid(res.DurationRows.Head(limits.Detailed)))
	writeMarkdownSection(&b, SectionExactDuplicates, RowsGrid(res.ExactDuplicates))

	dups := res.DuplicateIDs
	if limits.Duplicates >= 0 && len(dups) > limits.Duplicates {
		dups = dups[:limits.Duplicates]
	}
	writeMarkdownSection(&b, SectionDuplicateIDs, DuplicateIDGrid(res.Options.IDColumn, dups))

	_, err := w.Write(b.Bytes())
	return err
}

// SaveMarkdown writes the Markdown report to path. An existing file is only
// replaced once the whole report has rendered.
func SaveMarkdown(path string, res *Result, limits Limits) error {
	var b bytes.Buffer
	if err := WriteMarkdown(&b, res, limits); err != nil {
		return err
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

func writeMarkdownSection(b *bytes.Buffer, title string, g *Grid) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	writePipeTable(b, g)
}

// writePipeTable writes g as a Markdown pipe table with padded columns.
func writePipeTable(b *bytes.Buffer, g *Grid) {
	cells := make([][]string, len(g.Rows))
	widths := make([]int, len(g.Headers))
	for i, h := range g.Headers {
		widths[i] = max(3, runewidth.StringWidth(h))
	}
	for r, row := range g.Rows {
		cells[r] = make([]string, len(row))
		for i, c := range row {
			s := escapePipe(cellText(c))
			cells[r][i] = s
			widths[i] = max(widths[i], runewidth.StringWidth(s))
		}
	}

	writeRow := func(values []string) {
		b.WriteString("|")
		for i, v := range values {
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(v, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(g.Headers)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(":" + strings.Repeat("-", w+1) + "|")
	}
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row)
	}
}

func escapePipe(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/flightdq/internal/analysis"
	"github.com/dbsmedya/flightdq/internal/table"
)

// ConsoleOptions controls the console renderer.
type ConsoleOptions struct {
	Color  bool
	Limits Limits
}

// console writes aligned text sections. Write errors are sticky.
type console struct {
	w    io.Writer
	opts ConsoleOptions
	err  error
}

// WriteConsole prints every analysis. A failed analysis prints its error in place
// of its section; the rest of the report is still printed.
func WriteConsole(w io.Writer, res *Result, opts ConsoleOptions) error {
	c := &console{w: w, opts: opts}

	c.header(fmt.Sprintf("Data Quality Report: %s", res.Table))
	c.printf("  Run:   %s\n", res.RunID)
	c.printf("  Rows:  %d\n", res.Rows)

	c.section("Missing Values")
	c.printGrid(MissingGrid(res.Missing))

	c.section("Outliers")
	if !c.failed(res, analysis.NameOutliers) {
		c.printGrid(OutlierGrid(res.Outliers...))
		c.printf("  Rows flagged: %d\n", res.OutlierRows.Len())
	}

	c.section("Flight Duration Outliers")
	if !c.failed(res, analysis.NameFlightDurationOutliers) {
		c.printGrid(OutlierGrid(*res.Duration))
		c.rows(res.DurationRows, opts.Limits.Detailed)
	}

	c.section("Exact Duplicate Rows")
	c.printf("  Count: %d\n", res.ExactDuplicates.Len())
	c.rows(res.ExactDuplicates, opts.Limits.Duplicates)

	c.section("Duplicate Flight Numbers")
	if !c.failed(res, analysis.NameDuplicateFlightNumbers) {
		c.printf("  Count: %d\n", len(res.DuplicateIDs))
		dups := res.DuplicateIDs
		if opts.Limits.Duplicates >= 0 && len(dups) > opts.Limits.Duplicates {
			dups = dups[:opts.Limits.Duplicates]
		}
		if len(dups) > 0 {
			c.printGrid(DuplicateIDGrid(res.Options.IDColumn, dups))
		}
	}

	c.section("Invalid Codes")
	if !c.failed(res, analysis.NameValidation) {
		c.printGrid(InvalidCountGrid(res.Validation))
		for _, r := range res.Validation {
			if r.Count == 0 {
				continue
			}
			c.printf("\n  Invalid values in %s (%d)\n", r.Column, r.Count)
			c.rows(r.Invalid, opts.Limits.Detailed)
		}
	}

	c.section("Summary Statistics")
	if !c.failed(res, analysis.NameSummaryStats) {
		c.printGrid(SummaryGrid(res.Summary))
		c.printf("\n")
		c.printGrid(FrequencyGrid("Arrival Country", res.Summary.FlightsPerCountry))
		c.printf("\n")
		c.printGrid(FrequencyGrid("Arrival City", res.Summary.FlightsPerCity))
	}

	return c.err
}

func (c *console) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, args...)
}

func (c *console) paint(style color.Style, s string) string {
	if !c.opts.Color {
		return s
	}
	return style.Sprint(s)
}

func (c *console) header(title string) {
	line := strings.Repeat("=", runewidth.StringWidth(title)+4)
	c.printf("%s\n  %s\n%s\n", line, c.paint(color.Style{color.OpBold}, title), line)
}

func (c *console) section(title string) {
	c.printf("\n%s\n%s\n", c.paint(color.Style{color.FgCyan, color.OpBold}, "["+title+"]"), strings.Repeat("-", len(title)+2))
}

// failed prints the analysis error, if any, and reports whether there was one.
func (c *console) failed(res *Result, name string) bool {
	err := res.Err(name)
	if err == nil {
		return false
	}
	c.printf("  %s\n", c.paint(color.Style{color.FgRed}, "error: "+err.Error()))
	return true
}

// rows prints at most limit rows of t, noting how many were left out.
func (c *console) rows(t *table.Table, limit int) {
	if t.Len() == 0 {
		return
	}
	c.printGrid(RowsGrid(t.Head(limit)))
	if limit >= 0 && t.Len() > limit {
		c.printf("  ... %d more\n", t.Len()-limit)
	}
}

// printGrid prints g as space-aligned columns. Cells carrying the warning marker are
// highlighted.
func (c *console) printGrid(g *Grid) {
	widths := make([]int, len(g.Headers))
	for i, h := range g.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	text := make([][]string, len(g.Rows))
	for r, row := range g.Rows {
		text[r] = make([]string, len(row))
		for i, cell := range row {
			text[r][i] = cellText(cell)
			widths[i] = max(widths[i], runewidth.StringWidth(text[r][i]))
		}
	}

	line := func(values []string, style *color.Style) {
		var b strings.Builder
		b.WriteString(" ")
		for i, v := range values {
			cell := runewidth.FillRight(v, widths[i])
			switch {
			case style != nil:
				cell = c.paint(*style, cell)
			case strings.HasPrefix(v, "🚨"):
				cell = c.paint(color.Style{color.FgRed, color.OpBold}, cell)
			}
			b.WriteString(" ")
			b.WriteString(cell)
		}
		c.printf("%s\n", strings.TrimRight(b.String(), " "))
	}

	line(g.Headers, &color.Style{color.OpBold})
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	line(rule, nil)
	for _, row := range text {
		line(row, nil)
	}
}

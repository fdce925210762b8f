package dashboard

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"github.com/dbsmedya/flightdq/internal/analysis"
	"github.com/dbsmedya/flightdq/internal/report"
	"github.com/dbsmedya/flightdq/internal/table"
)

// Query parameters of the sidebar filters.
const (
	ParamCity    = "city"
	ParamCountry = "country"
	ParamAirline = "airline"
	ParamAirport = "airport"
)

// ParseFilters reads the sidebar selections from query values.
func ParseFilters(q url.Values) table.Filters {
	pick := func(key string) []string {
		var out []string
		for _, v := range q[key] {
			if v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	return table.Filters{
		Cities:    pick(ParamCity),
		Countries: pick(ParamCountry),
		Airlines:  pick(ParamAirline),
		Airports:  pick(ParamAirport),
	}
}

// previewRows is the number of leading rows shown above the tabs.
const previewRows = 5

type indexPage struct {
	Table        string
	TotalRows    int
	FilteredRows int
	Filters      []filterView
	Preview      *report.Grid
	Tabs         []tabView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilters(r.URL.Query())
	derived := filters.Apply(s.table)

	runID := uuid.NewString()
	log := s.logger.WithRun(runID)
	log.Debugw("Dashboard analysis", "rows", derived.Len(), "filtered", !filters.Empty())

	res := report.Run(derived, s.opts.TableName, runID, s.opts.Analysis, log)

	s.render(w, http.StatusOK, "index.html", indexPage{
		Table:        s.opts.TableName,
		TotalRows:    s.table.Len(),
		FilteredRows: derived.Len(),
		Filters:      filterViews(s.table, filters),
		Preview:      report.RowsGrid(derived.Head(previewRows)),
		Tabs:         tabViews(res),
	})
}

type reportPage struct {
	Path    string
	Content template.HTML
	Output  string
	Err     string
	Missing bool
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	page := reportPage{Path: s.opts.ReportPath}

	data, err := os.ReadFile(s.opts.ReportPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		page.Missing = true
		s.render(w, http.StatusNotFound, "report.html", page)
		return
	case err != nil:
		page.Err = err.Error()
		s.render(w, http.StatusInternalServerError, "report.html", page)
		return
	}

	page.Content = RenderMarkdown(data)
	s.render(w, http.StatusOK, "report.html", page)
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	page := reportPage{Path: s.opts.ReportPath}
	if s.opts.Trigger == nil {
		page.Err = "report generation is not configured"
		s.render(w, http.StatusServiceUnavailable, "report.html", page)
		return
	}

	out, err := s.opts.Trigger.Generate(r.Context())
	page.Output = out
	if err != nil {
		s.logger.Warnf("Report generation failed: %v", err)
		page.Err = err.Error()
		s.render(w, http.StatusInternalServerError, "report.html", page)
		return
	}

	if data, err := os.ReadFile(s.opts.ReportPath); err == nil {
		page.Content = RenderMarkdown(data)
	}
	s.render(w, http.StatusOK, "report.html", page)
}

// RenderMarkdown converts a Markdown report to HTML.
func RenderMarkdown(md []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.ToHTML(md, p, renderer))
}

// ============================================================================
// View models
// ============================================================================

type optionView struct {
	Value    string
	Selected bool
}

type filterView struct {
	Param   string
	Label   string
	Options []optionView
}

func filterViews(t *table.Table, f table.Filters) []filterView {
	specs := []struct {
		param, label, column string
		selected             []string
	}{
		{ParamCity, "Arrival City", table.ColArrivalCity, f.Cities},
		{ParamCountry, "Arrival Country", table.ColArrivalCountry, f.Countries},
		{ParamAirline, "Airline", table.ColAirlineCode, f.Airlines},
		{ParamAirport, "Airport Code", table.ColAirportCode, f.Airports},
	}

	views := make([]filterView, 0, len(specs))
	for _, spec := range specs {
		selected := make(map[string]bool, len(spec.selected))
		for _, v := range spec.selected {
			selected[v] = true
		}
		fv := filterView{Param: spec.param, Label: spec.label}
		for _, v := range table.Options(t, spec.column) {
			fv.Options = append(fv.Options, optionView{Value: v, Selected: selected[v]})
		}
		views = append(views, fv)
	}
	return views
}

type barView struct {
	Label   string
	Value   float64
	Percent float64 // bar length relative to the largest value
}

type blockView struct {
	Title string
	Note  string
	Err   string
	Grid  *report.Grid
	Bars  []barView
}

type tabView struct {
	ID     string
	Title  string
	Blocks []blockView
}

func errBlock(title string, err error) blockView {
	return blockView{Title: title, Err: err.Error()}
}

func tabViews(res *report.Result) []tabView {
	return []tabView{
		{ID: "missing", Title: "Missing Values", Blocks: missingBlocks(res)},
		{ID: "outliers", Title: "Outliers", Blocks: outlierBlocks(res)},
		{ID: "duplicates", Title: "Duplicates", Blocks: duplicateBlocks(res)},
		{ID: "invalid", Title: "Invalid Codes", Blocks: invalidBlocks(res)},
		{ID: "summary", Title: "Summary Stats", Blocks: summaryBlocks(res)},
	}
}

func missingBlocks(res *report.Result) []blockView {
	bars := make([]barView, len(res.Missing))
	for i, s := range res.Missing {
		bars[i] = barView{Label: s.Column, Value: s.Value, Percent: s.Value}
	}
	return []blockView{
		{Title: "Missing Values", Grid: report.MissingGrid(res.Missing), Bars: bars},
	}
}

func outlierBlocks(res *report.Result) []blockView {
	if err := res.Err(analysis.NameFlightDurationOutliers); err != nil {
		return []blockView{errBlock("Flight Duration Outliers", err)}
	}
	return []blockView{
		{Title: "Flight Duration Outliers", Grid: report.OutlierGrid(*res.Duration)},
		{Title: "Detailed Outliers", Grid: report.RowsGrid(res.DurationRows)},
	}
}

func duplicateBlocks(res *report.Result) []blockView {
	blocks := []blockView{{
		Title: "Exact Duplicate Rows",
		Note:  pluralRows(res.ExactDuplicates.Len()),
		Grid:  report.RowsGrid(res.ExactDuplicates),
	}}
	if err := res.Err(analysis.NameDuplicateFlightNumbers); err != nil {
		return append(blocks, errBlock("Duplicate Flight Numbers", err))
	}
	return append(blocks, blockView{
		Title: "Duplicate Flight Numbers",
		Note:  pluralRows(len(res.DuplicateIDs)),
		Grid:  report.DuplicateIDGrid(res.Options.IDColumn, res.DuplicateIDs),
	})
}

func invalidBlocks(res *report.Result) []blockView {
	if err := res.Err(analysis.NameValidation); err != nil {
		return []blockView{errBlock("Invalid Codes", err)}
	}
	blocks := []blockView{{Title: "Invalid Codes", Grid: report.InvalidCountGrid(res.Validation)}}
	for _, r := range res.Validation {
		b := blockView{Title: "Invalid values in " + r.Column, Note: pluralRows(r.Count)}
		if r.Count == 0 {
			b.Note = "No invalid values found."
		} else {
			b.Grid = report.RowsGrid(r.Invalid)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func summaryBlocks(res *report.Result) []blockView {
	if err := res.Err(analysis.NameSummaryStats); err != nil {
		return []blockView{errBlock("Summary Statistics", err)}
	}
	countries := report.FrequencyGrid("Arrival Country", res.Summary.FlightsPerCountry)
	cities := report.FrequencyGrid("Arrival City", res.Summary.FlightsPerCity)
	return []blockView{
		{Title: "Summary Statistics", Grid: report.SummaryGrid(res.Summary)},
		{Title: "Flights per Arrival Country", Grid: countries, Bars: frequencyBars(countries)},
		{Title: "Flights per Arrival City", Grid: cities, Bars: frequencyBars(cities)},
	}
}

func frequencyBars(g *report.Grid) []barView {
	var top float64
	bars := make([]barView, len(g.Rows))
	for i, row := range g.Rows {
		label, _ := row[0].(string)
		n, _ := row[1].(int)
		bars[i] = barView{Label: label, Value: float64(n)}
		top = max(top, float64(n))
	}
	for i := range bars {
		if top > 0 {
			bars[i].Percent = bars[i].Value / top * 100
		}
	}
	return bars
}

func pluralRows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return strconv.Itoa(n) + " rows"
}

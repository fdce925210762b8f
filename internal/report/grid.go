package report

import (
	"strconv"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/flightdq/internal/analysis"
	"github.com/dbsmedya/flightdq/internal/table"
)

// Grid is the renderer-neutral form of one result table.
// Cells are string, int, float64 or table.Value.
type Grid struct {
	Headers []string
	Rows    [][]any
}

func (g *Grid) add(cells ...any) {
	g.Rows = append(g.Rows, cells)
}

// Cells returns the rows formatted as text.
func (g *Grid) Cells() [][]string {
	out := make([][]string, len(g.Rows))
	for r, row := range g.Rows {
		out[r] = make([]string, len(row))
		for i, c := range row {
			out[r][i] = cellText(c)
		}
	}
	return out
}

// cellText formats a cell for text renderers. Floats get two decimals.
func cellText(c any) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case table.Value:
		return v.String()
	default:
		return ""
	}
}

// cellNative converts a cell to the value a spreadsheet should hold.
func cellNative(c any) any {
	v, ok := c.(table.Value)
	if !ok {
		return c
	}
	switch v.Kind {
	case table.KindInteger:
		return v.Int
	case table.KindReal:
		return v.Real
	case table.KindText:
		return v.Text
	default:
		return nil
	}
}

// MissingGrid lists the missing-value records.
func MissingGrid(stats []analysis.ColumnStat) *Grid {
	g := &Grid{Headers: []string{"Column", "Missing Percentage", "Display"}}
	for _, s := range stats {
		g.add(s.Column, s.Value, s.Display)
	}
	return g
}

// OutlierGrid lists outlier summaries with their fences.
func OutlierGrid(stats ...analysis.OutlierStat) *Grid {
	g := &Grid{Headers: []string{"Column", "Outlier Count", "Outlier Percentage", "Display", "Lower Bound", "Upper Bound"}}
	for _, s := range stats {
		var lower, upper any
		if s.Bounds != nil {
			lower, upper = s.Bounds.Lower, s.Bounds.Upper
		}
		g.add(s.Column, s.Count, s.Percentage, s.Display, lower, upper)
	}
	return g
}

// RowsGrid copies a table.
func RowsGrid(t *table.Table) *Grid {
	g := &Grid{Headers: t.Names()}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		g.Rows = append(g.Rows, cells)
	}
	return g
}

// DuplicateIDGrid lists repeated identifiers with their counts.
func DuplicateIDGrid(idColumn string, groups []analysis.DuplicateGroup) *Grid {
	g := &Grid{Headers: []string{idColumn, "Count"}}
	for _, d := range groups {
		g.add(d.Value, d.Count)
	}
	return g
}

// InvalidCountGrid lists the invalid-value count of each validated column.
func InvalidCountGrid(results []analysis.FieldResult) *Grid {
	g := &Grid{Headers: []string{"Column", "Invalid Count"}}
	for _, r := range results {
		g.add(r.Column, r.Count)
	}
	return g
}

// SummaryGrid lists the scalar summary statistics.
func SummaryGrid(s *analysis.Stats) *Grid {
	g := &Grid{Headers: []string{"Statistic", "Value"}}
	g.add("Unique Airlines", s.UniqueAirlines)
	g.add("Shortest Flight Duration", optional(s.ShortestDuration))
	g.add("Longest Flight Duration", optional(s.LongestDuration))
	return g
}

// FrequencyGrid lists counts in map order.
func FrequencyGrid(label string, counts *orderedmap.OrderedMap[string, int]) *Grid {
	g := &Grid{Headers: []string{label, "Flights"}}
	for el := counts.Front(); el != nil; el = el.Next() {
		g.add(el.Key, el.Value)
	}
	return g
}

// optional renders a missing statistic as an empty cell.
func optional(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

package analysis

import (
	"fmt"
	"strconv"

	"github.com/dbsmedya/flightdq/internal/table"
)

// DefaultMissingThreshold is the missing percentage above which a column is flagged.
const DefaultMissingThreshold = 10.0

// ColumnStat is the missing-value record of one column.
type ColumnStat struct {
	Column  string
	Value   float64 // missing percentage, 0..100
	Display string
}

// Flagged reports whether the display carries the high-missing marker.
func (s ColumnStat) Flagged(threshold float64) bool {
	return s.Value > threshold
}

// AnalyzeMissingValues returns one record per column, in column order.
func AnalyzeMissingValues(t *table.Table, threshold float64) []ColumnStat {
	cols := t.Columns()
	missing := make([]int, len(cols))
	for i := 0; i < t.Len(); i++ {
		for c, v := range t.Row(i) {
			if v.IsNull() {
				missing[c]++
			}
		}
	}

	out := make([]ColumnStat, len(cols))
	for c, col := range cols {
		pct := percentOf(missing[c], t.Len())
		out[c] = ColumnStat{
			Column:  col.Name,
			Value:   pct,
			Display: missingDisplay(pct, threshold),
		}
	}
	return out
}

func missingDisplay(pct, threshold float64) string {
	if pct > threshold {
		return "🚨 higher than " + strconv.FormatFloat(threshold, 'g', -1, 64) + "% missing"
	}
	return fmt.Sprintf("%.2f%%", pct)
}

package analysis

import (
	"fmt"

	"github.com/dbsmedya/flightdq/internal/table"
)

// DefaultOutlierThreshold is the IQR multiplier used when none is configured.
const DefaultOutlierThreshold = 1.5

// FlightDurationReason annotates every row reported by DetectFlightDurationOutliers.
const FlightDurationReason = "Flight Duration outside IQR bounds"

// ColOutlierReason is the column DetectFlightDurationOutliers appends to its detailed rows.
const ColOutlierReason = "Outlier Reason"

// OutlierStat summarizes the outliers of one column.
type OutlierStat struct {
	Column     string
	Count      int
	Percentage float64
	Display    string
	// Bounds is nil when the column has no numeric values.
	Bounds *Bounds
}

// DetectOutliers flags values strictly outside [Q1 - k*IQR, Q3 + k*IQR] in each column.
// A nil columns slice analyzes every numeric column. It returns one stat per column
// and the rows flagged in any analyzed column, in table order.
func DetectOutliers(t *table.Table, columns []string, threshold float64) ([]OutlierStat, *table.Table, error) {
	if columns == nil {
		columns = numericColumns(t)
	}

	flagged := make([]bool, t.Len())
	stats := make([]OutlierStat, 0, len(columns))
	for _, name := range columns {
		stat, flags, err := columnOutliers(t, name, threshold)
		if err != nil {
			return nil, nil, err
		}
		for i, f := range flags {
			flagged[i] = flagged[i] || f
		}
		stats = append(stats, stat)
	}

	return stats, t.Subset(flaggedIndexes(flagged)), nil
}

// DetectFlightDurationOutliers runs the IQR check on the Flight Duration column only.
// The detailed rows carry an extra Outlier Reason column.
func DetectFlightDurationOutliers(t *table.Table, threshold float64) (OutlierStat, *table.Table, error) {
	if !t.HasColumn(table.ColFlightDuration) {
		return OutlierStat{}, nil, &SchemaError{Analysis: NameFlightDurationOutliers, Column: table.ColFlightDuration}
	}

	stat, flags, err := columnOutliers(t, table.ColFlightDuration, threshold)
	if err != nil {
		return OutlierStat{}, nil, err
	}

	rows := t.Subset(flaggedIndexes(flags))
	reasons := make([]table.Value, rows.Len())
	for i := range reasons {
		reasons[i] = table.Text(FlightDurationReason)
	}
	detailed, err := rows.WithColumn(table.Column{Name: ColOutlierReason, Kind: table.KindText}, reasons)
	if err != nil {
		return OutlierStat{}, nil, fmt.Errorf("failed to annotate outliers: %w", err)
	}
	return stat, detailed, nil
}

func columnOutliers(t *table.Table, name string, threshold float64) (OutlierStat, []bool, error) {
	values, ok := t.Values(name)
	if !ok {
		return OutlierStat{}, nil, &SchemaError{Analysis: NameOutliers, Column: name}
	}

	var present []float64
	for _, v := range values {
		if f, ok := v.Float(); ok {
			present = append(present, f)
		}
	}

	flags := make([]bool, len(values))
	stat := OutlierStat{Column: name}
	if b, ok := iqrBounds(present, threshold); ok {
		stat.Bounds = &b
		for i, v := range values {
			if f, ok := v.Float(); ok && !b.Contains(f) {
				flags[i] = true
				stat.Count++
			}
		}
	}

	stat.Percentage = percentOf(stat.Count, t.Len())
	stat.Display = outlierDisplay(stat.Percentage)
	return stat, flags, nil
}

// numericColumns lists columns of numeric kind whose present values are all numbers.
func numericColumns(t *table.Table) []string {
	var names []string
	for c, col := range t.Columns() {
		if !col.Numeric() {
			continue
		}
		numeric := true
		for i := 0; i < t.Len() && numeric; i++ {
			v := t.Value(i, c)
			if _, ok := v.Float(); !ok && !v.IsNull() {
				numeric = false
			}
		}
		if numeric {
			names = append(names, col.Name)
		}
	}
	return names
}

func flaggedIndexes(flags []bool) []int {
	var idx []int
	for i, f := range flags {
		if f {
			idx = append(idx, i)
		}
	}
	return idx
}

// outlierDisplay marks any nonzero outlier share, unlike the missing-value threshold.
func outlierDisplay(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("🚨 **%.2f%%**", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// Package analysis implements the data-quality checks run over a flight table.
// Every analyzer is a pure function of its input table; none of them modify it.
package analysis

import "fmt"

// SchemaError reports that an analysis needs a column the table does not have.
// It fails only the analysis that returned it.
type SchemaError struct {
	Analysis string
	Column   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q not found", e.Analysis, e.Column)
}

// Analysis names, used in errors, logs and report sections.
const (
	NameMissingValues          = "missing values"
	NameOutliers               = "outliers"
	NameFlightDurationOutliers = "flight duration outliers"
	NameExactDuplicates        = "exact duplicates"
	NameDuplicateFlightNumbers = "duplicate flight numbers"
	NameValidation             = "validation"
	NameSummaryStats           = "summary stats"
)

// percentOf returns count as a percentage of total; an empty table is 0%.
func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

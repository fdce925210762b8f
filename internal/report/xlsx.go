package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dbsmedya/flightdq/internal/analysis"
)

// Sheet names of the XLSX workbook.
const (
	SheetMissing    = "Missing Values"
	SheetOutliers   = "Outliers"
	SheetDuration   = "Duration Outliers"
	SheetDuplicates = "Exact Duplicates"
	SheetIDs        = "Duplicate Flight Numbers"
	SheetInvalid    = "Invalid Codes"
	SheetSummary    = "Summary Stats"
	SheetCountries  = "Flights per Country"
	SheetCities     = "Flights per City"
)

// WriteXLSX saves every section to its own sheet. Failed analyses get a sheet
// holding their error.
func WriteXLSX(path string, res *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	type sheet struct {
		name     string
		analysis string
		build    func() *Grid
	}
	sheets := []sheet{
		{SheetMissing, "", func() *Grid { return MissingGrid(res.Missing) }},
		{SheetOutliers, analysis.NameOutliers, func() *Grid { return OutlierGrid(res.Outliers...) }},
		{SheetDuration, analysis.NameFlightDurationOutliers, func() *Grid { return RowsGrid(res.DurationRows) }},
		{SheetDuplicates, "", func() *Grid { return RowsGrid(res.ExactDuplicates) }},
		{SheetIDs, analysis.NameDuplicateFlightNumbers, func() *Grid { return DuplicateIDGrid(res.Options.IDColumn, res.DuplicateIDs) }},
		{SheetInvalid, analysis.NameValidation, func() *Grid { return InvalidCountGrid(res.Validation) }},
		{SheetSummary, analysis.NameSummaryStats, func() *Grid { return SummaryGrid(res.Summary) }},
		{SheetCountries, analysis.NameSummaryStats, func() *Grid { return FrequencyGrid("Arrival Country", res.Summary.FlightsPerCountry) }},
		{SheetCities, analysis.NameSummaryStats, func() *Grid { return FrequencyGrid("Arrival City", res.Summary.FlightsPerCity) }},
	}

	for i, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if i == 0 {
			if err := f.DeleteSheet("Sheet1"); err != nil {
				return fmt.Errorf("failed to remove default sheet: %w", err)
			}
		}

		g := &Grid{Headers: []string{"Error"}}
		if err := res.Err(s.analysis); err != nil {
			g.add(err.Error())
		} else {
			g = s.build()
		}
		if err := writeSheet(f, s.name, g); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, g *Grid) error {
	for i, h := range g.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", name, cell, err)
		}
	}
	for r, row := range g.Rows {
		for i, c := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(name, cell, cellNative(c)); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", name, cell, err)
			}
		}
	}
	return nil
}

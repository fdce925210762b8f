package analysis

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/montanaflynn/stats"

	"github.com/dbsmedya/flightdq/internal/table"
)

// Stats bundles the summary statistics of a flight table.
type Stats struct {
	// FlightsPerCountry and FlightsPerCity iterate by descending count.
	FlightsPerCountry *orderedmap.OrderedMap[string, int]
	FlightsPerCity    *orderedmap.OrderedMap[string, int]
	UniqueAirlines    int
	// ShortestDuration and LongestDuration are nil when every duration is missing.
	ShortestDuration *float64
	LongestDuration  *float64
}

// SummaryStats aggregates arrival countries, arrival cities, airlines and flight durations.
func SummaryStats(t *table.Table) (*Stats, error) {
	cols := make(map[string][]table.Value, 4)
	for _, name := range []string{table.ColArrivalCountry, table.ColArrivalCity, table.ColAirlineCode, table.ColFlightDuration} {
		values, ok := t.Values(name)
		if !ok {
			return nil, &SchemaError{Analysis: NameSummaryStats, Column: name}
		}
		cols[name] = values
	}

	s := &Stats{
		FlightsPerCountry: frequencies(cols[table.ColArrivalCountry]),
		FlightsPerCity:    frequencies(cols[table.ColArrivalCity]),
		UniqueAirlines:    len(countValues(cols[table.ColAirlineCode])),
	}

	var durations stats.Float64Data
	for _, v := range cols[table.ColFlightDuration] {
		if f, ok := v.Float(); ok {
			durations = append(durations, f)
		}
	}
	if lo, err := stats.Min(durations); err == nil {
		s.ShortestDuration = &lo
	}
	if hi, err := stats.Max(durations); err == nil {
		s.LongestDuration = &hi
	}
	return s, nil
}

func frequencies(values []table.Value) *orderedmap.OrderedMap[string, int] {
	m := orderedmap.NewOrderedMap[string, int]()
	for _, g := range countValues(values) {
		m.Set(g.Value, g.Count)
	}
	return m
}

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFlights() *Table {
	return MustNew(FlightSchema(), []Row{
		{Text("JFK"), Text("KJFK"), Text("US-NY"), Text("USA"), Text("New York"), Int(180), Text("AA100"), Text("LAX"), Text("AA")},
		{Text("LHR"), Text("EGLL"), Text("GB-ENG"), Text("UK"), Text("London"), Int(420), Text("BA200"), Text("JFK"), Text("BA")},
		{Text("CDG"), Text("LFPG"), Text("FR-IDF"), Text("France"), Null(), Null(), Text("AF300"), Text("LHR"), Text("AF")},
		{Text("JFK"), Text("KJFK"), Text("US-NY"), Text("USA"), Text("Boston"), Int(60), Null(), Text("BOS"), Null()},
	})
}

func TestValueBasics(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.False(t, Text("").IsNull())

	f, ok := Int(7).Float()
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	f, ok = Real(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = Text("7").Float()
	assert.False(t, ok)

	assert.Equal(t, "", Null().String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "2.5", Real(2.5).String())
	assert.Equal(t, "JFK", Text("JFK").String())

	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "null", KindNull.String())
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]Column{{Name: "a"}, {Name: "a"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")

	_, err = New([]Column{{Name: "a"}, {Name: "b"}}, []Row{{Int(1)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0 has 1 values")

	assert.Panics(t, func() { MustNew([]Column{{Name: "a"}}, []Row{{}}) })
}

func TestTableAccessors(t *testing.T) {
	tbl := sampleFlights()

	assert.Equal(t, 4, tbl.Len())
	assert.Len(t, tbl.Columns(), 9)
	assert.Equal(t, ColAirportCode, tbl.Names()[0])
	assert.True(t, tbl.HasColumn(ColFlightDuration))
	assert.False(t, tbl.HasColumn("Gate"))

	idx, ok := tbl.ColumnIndex(ColFlightDuration)
	require.True(t, ok)
	assert.Equal(t, 5, idx)
	assert.Equal(t, Int(420), tbl.Value(1, idx))

	col, ok := tbl.Column(ColFlightDuration)
	require.True(t, ok)
	assert.True(t, col.Numeric())

	values, ok := tbl.Values(ColArrivalCity)
	require.True(t, ok)
	assert.Equal(t, []Value{Text("New York"), Text("London"), Null(), Text("Boston")}, values)

	_, ok = tbl.Values("Gate")
	assert.False(t, ok)
}

func TestTableDerivations(t *testing.T) {
	tbl := sampleFlights()

	sub := tbl.Subset([]int{3, 0})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, Text("Boston"), sub.Row(0)[4])
	assert.Equal(t, 4, tbl.Len(), "source table is unchanged")

	head := tbl.Head(2)
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, 4, tbl.Head(10).Len())
	assert.Equal(t, 4, tbl.Head(-1).Len())

	sel, err := tbl.Select(ColFlightNumber, ColAirlineCode)
	require.NoError(t, err)
	assert.Equal(t, []string{ColFlightNumber, ColAirlineCode}, sel.Names())
	assert.Equal(t, Row{Text("BA200"), Text("BA")}, sel.Row(1))

	_, err = tbl.Select("Gate")
	assert.Error(t, err)

	extra, err := tbl.WithColumn(Column{Name: "Note", Kind: KindText},
		[]Value{Text("a"), Text("b"), Text("c"), Text("d")})
	require.NoError(t, err)
	assert.Len(t, extra.Columns(), 10)
	assert.Equal(t, Text("c"), extra.Row(2)[9])
	assert.Len(t, tbl.Row(2), 9, "source rows are not extended")

	_, err = tbl.WithColumn(Column{Name: "Note"}, []Value{Text("a")})
	assert.Error(t, err)
}

func TestFilters(t *testing.T) {
	tbl := sampleFlights()

	assert.True(t, Filters{}.Empty())
	assert.Same(t, tbl, Filters{}.Apply(tbl))

	tests := []struct {
		name    string
		filters Filters
		want    []string // flight numbers
	}{
		{"by country", Filters{Countries: []string{"USA"}}, []string{"AA100", ""}},
		{"by city skips missing", Filters{Cities: []string{"London", "Paris"}}, []string{"BA200"}},
		{"by airline", Filters{Airlines: []string{"AF", "BA"}}, []string{"BA200", "AF300"}},
		{"by airport", Filters{Airports: []string{"JFK"}}, []string{"AA100", ""}},
		{"combined", Filters{Countries: []string{"USA"}, Cities: []string{"Boston"}}, []string{""}},
		{"no match", Filters{Airlines: []string{"ZZ"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.filters.Apply(tbl)
			var got []string
			values, _ := out.Values(ColFlightNumber)
			for _, v := range values {
				got = append(got, v.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilters_MissingColumnMatchesNothing(t *testing.T) {
	tbl := MustNew([]Column{{Name: "x", Kind: KindInteger}}, []Row{{Int(1)}})
	assert.Equal(t, 0, Filters{Cities: []string{"London"}}.Apply(tbl).Len())
}

func TestOptions(t *testing.T) {
	tbl := sampleFlights()
	assert.Equal(t, []string{"JFK", "LHR", "CDG"}, Options(tbl, ColAirportCode))
	assert.Equal(t, []string{"New York", "London", "Boston"}, Options(tbl, ColArrivalCity))
	assert.Nil(t, Options(tbl, "Gate"))
}

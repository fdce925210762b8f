package table

// Column names of the airport flight table.
const (
	ColAirportCode      = "Airport Code"
	ColGPSCode          = "Airport GPS Code"
	ColRegionCode       = "Airport Region Code"
	ColArrivalCountry   = "Flight Arrival Country"
	ColArrivalCity      = "Flight Arrival City"
	ColFlightDuration   = "Flight Duration"
	ColFlightNumber     = "Flight Number"
	ColDepartureAirport = "Flight Departure Airport"
	ColAirlineCode      = "Flight Airline Code"
)

// FlightSchema returns the columns of the flight table in source order.
func FlightSchema() []Column {
	return []Column{
		{Name: ColAirportCode, Kind: KindText},
		{Name: ColGPSCode, Kind: KindText},
		{Name: ColRegionCode, Kind: KindText},
		{Name: ColArrivalCountry, Kind: KindText},
		{Name: ColArrivalCity, Kind: KindText},
		{Name: ColFlightDuration, Kind: KindInteger},
		{Name: ColFlightNumber, Kind: KindText},
		{Name: ColDepartureAirport, Kind: KindText},
		{Name: ColAirlineCode, Kind: KindText},
	}
}

package entity

// RawFlightPoint is one side (departure or arrival) of a raw API flight item
type RawFlightPoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
	Timezone  string `json:"timezone"`
}

// RawAirline is the marketing carrier as reported by the API
type RawAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

// RawCodeshare is the operating carrier override on codeshared legs
type RawCodeshare struct {
	AirlineName  string `json:"airline_name"`
	AirlineIATA  string `json:"airline_iata"`
	FlightNumber string `json:"flight_number"`
}

// RawFlightIdent carries the flight number and the optional codeshare block
type RawFlightIdent struct {
	Number     string        `json:"number"`
	IATA       string        `json:"iata"`
	Codeshared *RawCodeshare `json:"codeshared"`
}

// RawFlight is one flight leg as returned by the external flight API.
// Ephemeral: only used as input to the record builder.
type RawFlight struct {
	FlightDate string         `json:"flight_date"`
	Departure  RawFlightPoint `json:"departure"`
	Arrival    RawFlightPoint `json:"arrival"`
	Airline    RawAirline     `json:"airline"`
	Flight     RawFlightIdent `json:"flight"`
}

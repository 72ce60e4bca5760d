// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// AirportInfo is the airport identity embedded in a flight record
type AirportInfo struct {
	Name     string `bson:"name" json:"name"`
	IATACode string `bson:"iataCode" json:"iataCode"`
}

// FlightRecord is the canonical flight document stored in the flights collection.
// Times are ISO-8601 strings, timezone-adjusted when the reference store knows
// the airport's zone, otherwise kept as reported by the API.
type FlightRecord struct {
	ID               string      `bson:"_id,omitempty" json:"-"`
	DepartureAirport AirportInfo `bson:"departureAirport" json:"departureAirport"`
	ArrivalAirport   AirportInfo `bson:"arrivalAirport" json:"arrivalAirport"`
	DepartureTime    string      `bson:"departureTime" json:"departureTime"`
	ArrivalTime      string      `bson:"arrivalTime" json:"arrivalTime"`
	Airline          string      `bson:"airline" json:"airline"`
	FlightNumber     string      `bson:"flightNumber" json:"flightNumber"`
	DayOfWeek        string      `bson:"dayOfWeek" json:"dayOfWeek"`
	TimeOfDay        string      `bson:"timeOfDay,omitempty" json:"timeOfDay,omitempty"`
	CreatedAt        time.Time   `bson:"createdAt" json:"-"`
	UpdatedAt        time.Time   `bson:"updatedAt" json:"-"`
}

// FlightKey identifies one flight occurrence for deduplication and upsert.
type FlightKey struct {
	DepartureCode string
	ArrivalCode   string
	DepartureTime string
	DayOfWeek     string
}

// Key returns the identity key of the record
func (r *FlightRecord) Key() FlightKey {
	return FlightKey{
		DepartureCode: r.DepartureAirport.IATACode,
		ArrivalCode:   r.ArrivalAirport.IATACode,
		DepartureTime: r.DepartureTime,
		DayOfWeek:     r.DayOfWeek,
	}
}

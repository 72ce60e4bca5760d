package usecase

import (
	"context"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/pkg/logger"
)

// RecordBuilder converts one raw API flight item into a canonical flight
// record, enriching it via the reference resolver. Items missing required
// fields produce nil (dropped, not an error).
type RecordBuilder struct {
	resolver *ReferenceResolver
	logger   logger.Logger
}

// NewRecordBuilder creates a new record builder
func NewRecordBuilder(resolver *ReferenceResolver, logger logger.Logger) *RecordBuilder {
	return &RecordBuilder{
		resolver: resolver,
		logger:   logger,
	}
}

// Build produces zero or one canonical record from a raw item
func (b *RecordBuilder) Build(ctx context.Context, raw entity.RawFlight) *entity.FlightRecord {
	depTime := raw.Departure.Scheduled
	arrTime := raw.Arrival.Scheduled
	if depTime == "" || arrTime == "" {
		b.logger.Debug("Dropping item without scheduled times",
			"depIata", raw.Departure.IATA, "arrIata", raw.Arrival.IATA)
		return nil
	}

	depAirport, err := b.resolver.LookupAirport(ctx, raw.Departure.IATA)
	if err != nil {
		b.logger.Error("Failed to look up departure airport", "code", raw.Departure.IATA, "error", err)
	}
	arrAirport, err := b.resolver.LookupAirport(ctx, raw.Arrival.IATA)
	if err != nil {
		b.logger.Error("Failed to look up arrival airport", "code", raw.Arrival.IATA, "error", err)
	}

	// Prefer reference identity; fall back to the raw API fields with no
	// timezone adjustment when the airport is unknown.
	depName, depCode := raw.Departure.Airport, raw.Departure.IATA
	if depAirport != nil {
		depName, depCode = depAirport.Name, depAirport.IATACode
		depTime = adjustToZone(depTime, depAirport.TzName)
	}
	arrName, arrCode := raw.Arrival.Airport, raw.Arrival.IATA
	if arrAirport != nil {
		arrName, arrCode = arrAirport.Name, arrAirport.IATACode
		arrTime = adjustToZone(arrTime, arrAirport.TzName)
	}

	// Day-of-week and time-of-day derive from the adjusted departure time
	dayOfWeek := ""
	timeOfDay := ""
	if dt, err := time.Parse(time.RFC3339, depTime); err == nil {
		dayOfWeek = dt.Weekday().String()
		timeOfDay = dt.Format("15:04")
	}

	// Operating carrier takes precedence over the marketing carrier
	airlineName := raw.Airline.Name
	flightNumber := raw.Flight.Number
	if cs := raw.Flight.Codeshared; cs != nil && cs.AirlineName != "" {
		airlineName = cs.AirlineName
		flightNumber = cs.FlightNumber
	}
	airlineName = b.resolver.CanonicalizeAirline(ctx, airlineName)

	if depName == "" || arrName == "" || depTime == "" || arrTime == "" {
		b.logger.Debug("Dropping item with missing required fields",
			"depIata", raw.Departure.IATA, "arrIata", raw.Arrival.IATA)
		return nil
	}

	return &entity.FlightRecord{
		DepartureAirport: entity.AirportInfo{Name: depName, IATACode: depCode},
		ArrivalAirport:   entity.AirportInfo{Name: arrName, IATACode: arrCode},
		DepartureTime:    depTime,
		ArrivalTime:      arrTime,
		Airline:          airlineName,
		FlightNumber:     flightNumber,
		DayOfWeek:        dayOfWeek,
		TimeOfDay:        timeOfDay,
	}
}

// adjustToZone re-expresses an ISO-8601 timestamp in the airport's IANA zone.
// The instant is unchanged. Unparseable values and unknown zones keep the
// reported string verbatim.
func adjustToZone(value, tzName string) string {
	if tzName == "" {
		return value
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return value
	}
	return t.In(loc).Format(time.RFC3339)
}

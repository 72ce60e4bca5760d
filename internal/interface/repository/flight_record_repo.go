package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRecordRepository implements FlightRecordRepository
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database) repository.FlightRecordRepository {
	collection := db.Collection("flights")

	// Unique compound index on the identity key
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "departureAirport.iataCode", Value: 1},
			{Key: "arrivalAirport.iataCode", Value: 1},
			{Key: "departureTime", Value: 1},
			{Key: "dayOfWeek", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoFlightRecordRepository{
		collection: collection,
	}
}

func keyFilter(key entity.FlightKey) bson.M {
	return bson.M{
		"departureAirport.iataCode": key.DepartureCode,
		"arrivalAirport.iataCode":   key.ArrivalCode,
		"departureTime":             key.DepartureTime,
		"dayOfWeek":                 key.DayOfWeek,
	}
}

// FindByKey finds a flight record by its identity key
func (r *MongoFlightRecordRepository) FindByKey(ctx context.Context, key entity.FlightKey) (*entity.FlightRecord, error) {
	var record entity.FlightRecord
	err := r.collection.FindOne(ctx, keyFilter(key)).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// UpsertBatch writes-or-replaces each record by its identity key. Re-running
// with identical input yields identical stored state. Partial failure is not
// rolled back: the written count covers records persisted before the error.
func (r *MongoFlightRecordRepository) UpsertBatch(ctx context.Context, records []*entity.FlightRecord) (int, error) {
	written := 0
	for _, record := range records {
		record.UpdatedAt = time.Now()
		if record.CreatedAt.IsZero() {
			record.CreatedAt = record.UpdatedAt
		}

		updateDoc := bson.M{
			"departureAirport": record.DepartureAirport,
			"arrivalAirport":   record.ArrivalAirport,
			"departureTime":    record.DepartureTime,
			"arrivalTime":      record.ArrivalTime,
			"airline":          record.Airline,
			"flightNumber":     record.FlightNumber,
			"dayOfWeek":        record.DayOfWeek,
			"timeOfDay":        record.TimeOfDay,
			"createdAt":        record.CreatedAt,
			"updatedAt":        record.UpdatedAt,
		}

		opts := options.Update().SetUpsert(true)
		_, err := r.collection.UpdateOne(ctx, keyFilter(record.Key()), bson.M{"$set": updateDoc}, opts)
		if err != nil {
			return written, fmt.Errorf("failed to upsert flight record: %w", err)
		}
		written++
	}
	return written, nil
}

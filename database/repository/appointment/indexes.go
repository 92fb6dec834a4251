package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointment collections.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: per-day countable lookups.
		{
			Keys:    bson.D{{Key: "service", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("service_date_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "service", Value: 1}, {Key: "date", Value: 1}, {Key: "startMinute", Value: 1}},
			Options: options.Index().SetName("service_date_start_idx"),
		},
	}
	if _, err := repo.apptColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	guardIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "service", Value: 1}, {Key: "branchId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("guard_key_idx"),
	}
	if _, err := repo.guardColl.Indexes().CreateOne(ctx, guardIdx); err != nil {
		return fmt.Errorf("failed to create reservation guard index: %w", err)
	}
	return nil
}

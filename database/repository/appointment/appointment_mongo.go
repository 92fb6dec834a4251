package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	apptColl  *mongo.Collection
	guardColl *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAppointmentRepo{
		apptColl:  db.Collection("appointments"),
		guardColl: db.Collection("reservation_guards"),
	}
}

// FindCountable fetches all appointments on a date for a service (and branch,
// when given) whose status still occupies capacity.
func (repo *MongoAppointmentRepo) FindCountable(ctx context.Context, date, service, branchID string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":    date,
		"service": service,
		"status":  bson.M{"$in": models.CountableStatuses()},
	}
	if branchID != "" {
		filter["branchId"] = branchID
	}

	cursor, err := repo.apptColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding countable appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// CancelAppointment marks an appointment cancelled so it stops counting
// toward capacity.
func (repo *MongoAppointmentRepo) CancelAppointment(ctx context.Context, appointmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID}
	update := bson.M{"$set": bson.M{"status": models.StatusCancelled}}
	res, err := repo.apptColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error cancelling appointment %s: %w", appointmentID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", appointmentID)
	}
	return nil
}

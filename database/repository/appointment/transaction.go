package appointmentRepo

import (
	"context"
	"fmt"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReserveTransactionally inserts the appointment only if the overlap count,
// re-evaluated inside the transaction, still satisfies staffCapacity.
//
// A plain count-then-insert inside a snapshot transaction would still admit
// write skew: two racing reservations read the same count and both commit. To
// prevent that, the transaction first bumps a guard document keyed by
// (service, branch, date); concurrent transactions for the same day then
// conflict on that write and Mongo aborts all but one.
//
// Overlap uses the half-open test with the requested duration applied to
// every existing appointment: existing.start < cand.end AND cand.start <
// existing.start + duration, which reduces to a single range filter on
// startMinute.
func (repo *MongoAppointmentRepo) ReserveTransactionally(
	ctx context.Context,
	appt *models.Appointment,
	durationMinutes, staffCapacity int,
) error {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	candStart := appt.StartMinute
	candEnd := appt.StartMinute + durationMinutes

	txnFn := func(sc mongo.SessionContext) error {
		guardFilter := bson.M{
			"service":  appt.Service,
			"branchId": appt.BranchID,
			"date":     appt.Date,
		}
		guardUpdate := bson.M{"$inc": bson.M{"seq": 1}}
		if _, err := repo.guardColl.UpdateOne(sc, guardFilter, guardUpdate, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("guard update failed: %w", err)
		}

		overlapFilter := bson.M{
			"service": appt.Service,
			"date":    appt.Date,
			"status":  bson.M{"$in": models.CountableStatuses()},
			"startMinute": bson.M{
				"$gt": candStart - durationMinutes,
				"$lt": candEnd,
			},
		}
		if appt.BranchID != "" {
			overlapFilter["branchId"] = appt.BranchID
		}

		overlapCount, err := repo.apptColl.CountDocuments(sc, overlapFilter)
		if err != nil {
			return fmt.Errorf("overlap count failed: %w", err)
		}
		if overlapCount >= int64(staffCapacity) {
			return ErrCapacityExhausted
		}

		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrCapacityExhausted {
			return ErrCapacityExhausted
		}
		return fmt.Errorf("reservation transaction failed: %w", err)
	}

	return nil
}

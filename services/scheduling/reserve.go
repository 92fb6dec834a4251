package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "slotwise/database/repository/appointment"
	"slotwise/models"
	"slotwise/utils"

	"github.com/google/uuid"
)

// Reserve runs the availability check and, on success, creates the
// appointment with a single atomic conditional insert. A positive check alone
// never holds the slot; capacity lost between check and insert comes back as
// a fully-booked result with fresh suggestions, not as an error.
func (se *DefaultSchedulingEngine) Reserve(ctx context.Context, req CheckRequest, userID string) (*models.Appointment, models.AvailabilityResult, error) {
	result, err := se.Check(ctx, req)
	if err != nil {
		return nil, models.AvailabilityResult{}, err
	}
	if !result.IsAvailable {
		return nil, result, nil
	}

	rules, err := se.Resolver.Resolve(ctx, req.Service, req.BranchID, req.Date)
	if err != nil {
		return nil, models.AvailabilityResult{}, err
	}
	startMinute, _ := utils.MinuteOfDay(req.Time) // validated by Check

	appt := &models.Appointment{
		ID:          uuid.New().String(),
		Service:     req.Service,
		BranchID:    req.BranchID,
		UserID:      userID,
		Date:        req.Date,
		Time:        req.Time,
		StartMinute: startMinute,
		Status:      models.StatusBooked,
		CreatedAt:   time.Now(),
	}

	err = se.Appointments.ReserveTransactionally(ctx, appt, req.DurationMinutes, rules.StaffCapacity)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrCapacityExhausted) {
			// A concurrent reservation won the race after our check.
			return nil, models.AvailabilityResult{
				Reason:         models.ReasonFullyBooked,
				Message:        fmt.Sprintf("the %s slot on %s was taken while confirming", req.Time, req.Date),
				SuggestedSlots: se.suggest(ctx, req, req.Date, req.Time),
			}, nil
		}
		return nil, models.AvailabilityResult{}, fmt.Errorf("reservation failed: %w", err)
	}

	return appt, result, nil
}

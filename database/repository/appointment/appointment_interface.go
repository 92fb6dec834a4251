package appointmentRepo

import (
	"context"
	"errors"

	"slotwise/models"
)

// ErrCapacityExhausted is returned by ReserveTransactionally when the
// pre-insert overlap count no longer satisfies staff capacity. Callers treat
// it as business unavailability, not a system failure.
var ErrCapacityExhausted = errors.New("slot capacity exhausted")

// AppointmentRepository is the engine's read/reserve contract against the
// appointment store. FindCountable is restricted server-side to the statuses
// that occupy capacity; the engine issues it once per distinct day evaluated.
type AppointmentRepository interface {
	FindCountable(ctx context.Context, date, service, branchID string) ([]models.Appointment, error)

	// ReserveTransactionally atomically re-checks the overlap count and inserts
	// the appointment in a single Mongo transaction. Concurrent reservations
	// for the same (service, branch, date) write-conflict on a shared guard
	// document, so at most one of two racing inserts for the last unit of
	// capacity can commit.
	ReserveTransactionally(ctx context.Context, appt *models.Appointment, durationMinutes, staffCapacity int) error

	CancelAppointment(ctx context.Context, appointmentID string) error
	EnsureIndexes() error
}

package scheduling

import (
	"context"

	appointmentRepo "slotwise/database/repository/appointment"
	"slotwise/models"
)

// CheckRequest is a fully specified availability question: can this service
// be booked at this date and time?
type CheckRequest struct {
	Service         string `json:"service" binding:"required"`
	BranchID        string `json:"branchId,omitempty"`
	Date            string `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time            string `json:"time" binding:"required"` // "HH:MM"
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
}

// SearchRequest asks for up to MaxSuggestions open slots at or after
// (StartDate, StartTime), scanning at most MaxDaysScanned days. Zero bounds
// fall back to configured defaults. An empty StartTime means the whole first
// day is considered; a non-empty one excludes slots at or before it on the
// first day.
type SearchRequest struct {
	Service         string `json:"service" binding:"required"`
	BranchID        string `json:"branchId,omitempty"`
	StartDate       string `json:"startDate" binding:"required"`
	StartTime       string `json:"startTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
	MaxSuggestions  int    `json:"maxSuggestions,omitempty"`
	MaxDaysScanned  int    `json:"maxDaysScanned,omitempty"`
}

// SchedulingEngine is the availability and reservation engine. Check and
// Search are read-only and stateless; Reserve performs the atomic
// conditional insert that turns a positive check into an appointment.
type SchedulingEngine interface {
	Check(ctx context.Context, req CheckRequest) (models.AvailabilityResult, error)
	Search(ctx context.Context, req SearchRequest) ([]models.SlotSuggestion, error)
	Reserve(ctx context.Context, req CheckRequest, userID string) (*models.Appointment, models.AvailabilityResult, error)
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Appointments appointmentRepo.AppointmentRepository
	Resolver     RuleResolver

	// Defaults applied when a SearchRequest leaves its bounds unset.
	DefaultMaxSuggestions int
	DefaultMaxDaysScanned int
}

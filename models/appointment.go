package models

import "time"

// AppointmentStatus enumerates the lifecycle states of an appointment.
type AppointmentStatus string

const (
	StatusBooked              AppointmentStatus = "booked"
	StatusPendingConfirmation AppointmentStatus = "pending_confirmation"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelled           AppointmentStatus = "cancelled"
	StatusRescheduled         AppointmentStatus = "rescheduled"
)

// CountableStatuses are the statuses that occupy capacity. Completed and
// cancelled appointments free their slot.
func CountableStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusBooked, StatusPendingConfirmation, StatusRescheduled}
}

// Appointment represents a booked appointment record.
type Appointment struct {
	ID          string            `bson:"id" json:"id"`                             // Unique appointment identifier (UUID)
	Service     string            `bson:"service" json:"service"`                   // Service being booked
	BranchID    string            `bson:"branchId,omitempty" json:"branchId,omitempty"`
	UserID      string            `bson:"userId,omitempty" json:"userId,omitempty"`
	Date        string            `bson:"date" json:"date"`                         // "YYYY-MM-DD"
	Time        string            `bson:"time" json:"time"`                         // "HH:MM" slot start
	StartMinute int               `bson:"startMinute" json:"startMinute"`           // minutes from midnight, derived from Time
	Status      AppointmentStatus `bson:"status" json:"status"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}

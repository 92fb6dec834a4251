package models

// ReminderPayload is the task body queued for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	UserID        string `json:"userId,omitempty"`
}

package models

// BookingSession is the short-lived state cached in Redis between an
// availability check and the booking confirmation.
type BookingSession struct {
	SessionID       string             `json:"sessionId"`
	Service         string             `json:"service"`
	BranchID        string             `json:"branchId,omitempty"`
	UserID          string             `json:"userId,omitempty"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	DurationMinutes int                `json:"durationMinutes"`
	Result          AvailabilityResult `json:"result"`
}

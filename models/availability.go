package models

// SlotSuggestion is one open slot offered as an alternative to a rejected
// request. Suggestions are ordered chronologically: by date, then by the
// configured slot order within a day.
type SlotSuggestion struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:MM"
}

// Rejection reason codes. The calling layer renders these into user-facing
// text; the engine never localizes.
const (
	ReasonInvalidInput         = "invalid-input"
	ReasonDayOff               = "day-off"
	ReasonNoCapacityConfigured = "no-capacity-configured"
	ReasonInvalidSlot          = "invalid-slot"
	ReasonFullyBooked          = "fully-booked"
)

// AvailabilityResult is the outcome of an availability check. Constructed once
// per call and immutable afterwards. Business unavailability lives here;
// system failures travel as errors instead.
type AvailabilityResult struct {
	IsAvailable    bool             `json:"isAvailable"`
	Reason         string           `json:"reason,omitempty"`  // one of the Reason* codes
	Message        string           `json:"message,omitempty"` // short human-readable detail
	SuggestedSlots []SlotSuggestion `json:"suggestedSlots,omitempty"`
}

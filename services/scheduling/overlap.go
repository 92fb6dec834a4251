package scheduling

import "slotwise/models"

// countOverlapping counts appointments whose interval overlaps the candidate
// interval [candStart, candEnd), using the strict half-open test:
// existing.start < candidate.end AND candidate.start < existing.end.
//
// Every existing appointment's interval is computed with the *requested*
// duration, not a per-record historical one. The source business rules never
// stored per-booking durations, so this uniform-duration assumption is kept
// deliberately; changing it would change booking semantics.
func countOverlapping(appts []models.Appointment, candStart, candEnd, durationMinutes int) int {
	count := 0
	for _, a := range appts {
		start := a.StartMinute
		end := start + durationMinutes
		if start < candEnd && candStart < end {
			count++
		}
	}
	return count
}

func containsSlot(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}

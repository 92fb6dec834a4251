package scheduling

import (
	"context"
	"fmt"

	"slotwise/models"
	"slotwise/utils"
)

// Search scans forward from (StartDate, StartTime) for open slots, up to
// MaxSuggestions results across at most MaxDaysScanned days. Results are
// strictly chronological: day order, then configured slot order within a day.
// Exhausting the window with fewer results than asked for is not an error.
func (se *DefaultSchedulingEngine) Search(ctx context.Context, req SearchRequest) ([]models.SlotSuggestion, error) {
	startDay, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	startMinute := -1
	if req.StartTime != "" {
		if startMinute, err = utils.MinuteOfDay(req.StartTime); err != nil {
			return nil, NewValidationError(err.Error())
		}
	}
	if req.DurationMinutes <= 0 {
		return nil, NewValidationError(fmt.Sprintf("invalid duration %d: must be positive", req.DurationMinutes))
	}

	maxSuggestions := req.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = se.DefaultMaxSuggestions
	}
	maxDays := req.MaxDaysScanned
	if maxDays <= 0 {
		maxDays = se.DefaultMaxDaysScanned
	}

	var suggestions []models.SlotSuggestion
	for dayOffset := 0; dayOffset < maxDays; dayOffset++ {
		day := startDay.AddDate(0, 0, dayOffset)
		dateStr := day.Format(utils.DateLayout)

		rules, err := se.Resolver.Resolve(ctx, req.Service, req.BranchID, dateStr)
		if err != nil {
			return nil, err
		}
		if !rules.Bookable() {
			continue
		}

		// One batched query per day, reused for every slot of that day.
		appts, err := se.Appointments.FindCountable(ctx, dateStr, req.Service, req.BranchID)
		if err != nil {
			return nil, fmt.Errorf("slot search failed on %s: %w", dateStr, err)
		}

		for _, slot := range rules.WorkingSlots {
			slotMinute, err := utils.MinuteOfDay(slot)
			if err != nil {
				utils.GetLogger().Warn("skipping malformed configured slot: " + slot)
				continue
			}
			// Never offer the rejected slot itself or an earlier one.
			if dayOffset == 0 && startMinute >= 0 && slotMinute <= startMinute {
				continue
			}

			overlap := countOverlapping(appts, slotMinute, slotMinute+req.DurationMinutes, req.DurationMinutes)
			if overlap < rules.StaffCapacity {
				suggestions = append(suggestions, models.SlotSuggestion{Date: dateStr, Time: slot})
				if len(suggestions) >= maxSuggestions {
					return suggestions, nil
				}
			}
		}
	}

	return suggestions, nil
}

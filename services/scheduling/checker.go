package scheduling

import (
	"context"
	"fmt"
	"strings"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// Check decides whether the requested service/date/time can be booked.
// Business unavailability comes back as a result with a reason code and
// best-effort alternative slots; only infrastructure failures return an error.
func (se *DefaultSchedulingEngine) Check(ctx context.Context, req CheckRequest) (models.AvailabilityResult, error) {
	day, err := utils.ParseDate(req.Date)
	if err != nil {
		return invalidInput(err.Error()), nil
	}
	startMinute, err := utils.MinuteOfDay(req.Time)
	if err != nil {
		return invalidInput(err.Error()), nil
	}
	if req.DurationMinutes <= 0 {
		return invalidInput(fmt.Sprintf("invalid duration %d: must be positive", req.DurationMinutes)), nil
	}

	rules, err := se.Resolver.Resolve(ctx, req.Service, req.BranchID, req.Date)
	if err != nil {
		return models.AvailabilityResult{}, err
	}

	if !rules.Bookable() {
		reason := models.ReasonDayOff
		msg := fmt.Sprintf("%s is not a working day for %s", req.Date, req.Service)
		if !rules.IsDayOff {
			reason = models.ReasonNoCapacityConfigured
			msg = fmt.Sprintf("no bookable schedule is configured for %s on %s", req.Service, req.Date)
		}
		// Day is closed entirely, so the search starts the day after.
		nextDay := day.AddDate(0, 0, 1).Format(utils.DateLayout)
		return models.AvailabilityResult{
			Reason:         reason,
			Message:        msg,
			SuggestedSlots: se.suggest(ctx, req, nextDay, ""),
		}, nil
	}

	if !containsSlot(rules.WorkingSlots, req.Time) {
		return models.AvailabilityResult{
			Reason:         models.ReasonInvalidSlot,
			Message:        fmt.Sprintf("%s is not an offered slot; valid slots: %s", req.Time, strings.Join(rules.WorkingSlots, ", ")),
			SuggestedSlots: se.suggest(ctx, req, req.Date, req.Time),
		}, nil
	}

	appts, err := se.Appointments.FindCountable(ctx, req.Date, req.Service, req.BranchID)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("availability check failed: %w", err)
	}

	candEnd := startMinute + req.DurationMinutes
	overlap := countOverlapping(appts, startMinute, candEnd, req.DurationMinutes)
	if overlap >= rules.StaffCapacity {
		return models.AvailabilityResult{
			Reason:         models.ReasonFullyBooked,
			Message:        fmt.Sprintf("all %d staff are booked around %s on %s", rules.StaffCapacity, req.Time, req.Date),
			SuggestedSlots: se.suggest(ctx, req, req.Date, req.Time),
		}, nil
	}

	return models.AvailabilityResult{IsAvailable: true}, nil
}

// suggest runs the forward search with configured bounds. Suggestions are
// best effort: a failed search degrades the rejection to one without
// alternatives rather than turning it into a system error.
func (se *DefaultSchedulingEngine) suggest(ctx context.Context, req CheckRequest, startDate, startTime string) []models.SlotSuggestion {
	slots, err := se.Search(ctx, SearchRequest{
		Service:         req.Service,
		BranchID:        req.BranchID,
		StartDate:       startDate,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		utils.GetLogger().Warn("slot search for suggestions failed",
			zap.String("service", req.Service), zap.String("startDate", startDate), zap.Error(err))
		return nil
	}
	return slots
}

func invalidInput(detail string) models.AvailabilityResult {
	return models.AvailabilityResult{
		Reason:  models.ReasonInvalidInput,
		Message: detail,
	}
}

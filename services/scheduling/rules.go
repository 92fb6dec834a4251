package scheduling

import (
	"context"
	"fmt"

	rulesRepo "slotwise/database/repository/rules"
	"slotwise/models"
	"slotwise/utils"
)

// RuleResolver merges the global, service-level and day-specific rule layers
// into one EffectiveRuleSet for a (service, branch, date) triple.
type RuleResolver interface {
	Resolve(ctx context.Context, service, branchID, date string) (models.EffectiveRuleSet, error)
}

// DefaultRuleResolver resolves against the rule repository.
type DefaultRuleResolver struct {
	Rules rulesRepo.RuleRepository
}

// Resolve fetches both layers and runs the pure merge. The merge itself never
// touches the repository, so identical layers and date always produce an
// identical result.
func (r *DefaultRuleResolver) Resolve(ctx context.Context, service, branchID, date string) (models.EffectiveRuleSet, error) {
	global, err := r.Rules.GetGlobalLayer(ctx)
	if err != nil {
		return models.EffectiveRuleSet{}, fmt.Errorf("rule resolution failed for %s on %s: %w", service, date, err)
	}
	svc, err := r.Rules.GetServiceLayer(ctx, service, branchID)
	if err != nil {
		return models.EffectiveRuleSet{}, fmt.Errorf("rule resolution failed for %s on %s: %w", service, date, err)
	}
	return MergeRuleLayers(global, svc, date)
}

// MergeRuleLayers computes the effective rule set for one calendar date from
// the global layer (always complete) and the service layer (possibly partial).
//
// Precedence, highest first:
//  1. A specific-day rule matching the date exactly, service layer before
//     global. IsOff wins outright; otherwise its fields override lower layers
//     field by field.
//  2. Weekly off weekdays (service set when supplied, global otherwise) and
//     one-time off dates from the service layer.
//  3. Global one-time off dates, applied even when the service layer has no
//     opinion on the date.
//  4. Remaining fields fall through: specific-day, then service, then global.
func MergeRuleLayers(global, service models.RuleLayer, date string) (models.EffectiveRuleSet, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return models.EffectiveRuleSet{}, err
	}

	dayRule := service.SpecificRuleFor(date)
	if dayRule == nil {
		dayRule = global.SpecificRuleFor(date)
	}
	if dayRule != nil && dayRule.IsOff {
		return models.EffectiveRuleSet{IsDayOff: true}, nil
	}

	weekly := global.WeeklyOffWeekdays
	if service.WeeklyOffWeekdays != nil {
		weekly = service.WeeklyOffWeekdays
	}
	off := models.RuleLayer{WeeklyOffWeekdays: weekly}.HasWeeklyOff(day.Weekday()) ||
		service.HasOneTimeOff(date) ||
		global.HasOneTimeOff(date)
	if off {
		return models.EffectiveRuleSet{IsDayOff: true}, nil
	}

	capacity := *global.StaffCapacity
	if service.StaffCapacity != nil {
		capacity = *service.StaffCapacity
	}
	if dayRule != nil && dayRule.StaffCapacity != nil {
		capacity = *dayRule.StaffCapacity
	}

	slots := global.WorkingSlots
	if service.WorkingSlots != nil {
		slots = service.WorkingSlots
	}
	if dayRule != nil && dayRule.WorkingSlots != nil {
		slots = dayRule.WorkingSlots
	}

	return models.EffectiveRuleSet{
		StaffCapacity: capacity,
		WorkingSlots:  slots,
	}, nil
}

package models

import "time"

// SpecificDayRule pins scheduling behaviour to one exact calendar date.
// It has the highest precedence: IsOff wins outright, otherwise its
// WorkingSlots/StaffCapacity override lower layers field by field.
type SpecificDayRule struct {
	Date          string   `bson:"date" json:"date"` // "YYYY-MM-DD"
	IsOff         bool     `bson:"isOff" json:"isOff"`
	WorkingSlots  []string `bson:"workingSlots,omitempty" json:"workingSlots,omitempty"`
	StaffCapacity *int     `bson:"staffCapacity,omitempty" json:"staffCapacity,omitempty"`
}

// RuleLayer is one source of scheduling configuration. The global layer is
// always complete; the service layer may leave any field unset (nil) to fall
// through to the layer below.
type RuleLayer struct {
	StaffCapacity     *int              `bson:"staffCapacity,omitempty" json:"staffCapacity,omitempty"`
	WorkingSlots      []string          `bson:"workingSlots,omitempty" json:"workingSlots,omitempty"`
	WeeklyOffWeekdays []time.Weekday    `bson:"weeklyOffWeekdays,omitempty" json:"weeklyOffWeekdays,omitempty"`
	OneTimeOffDates   []string          `bson:"oneTimeOffDates,omitempty" json:"oneTimeOffDates,omitempty"`
	SpecificDayRules  []SpecificDayRule `bson:"specificDayRules,omitempty" json:"specificDayRules,omitempty"`
}

// SpecificRuleFor returns the layer's specific-day rule matching date, if any.
func (l RuleLayer) SpecificRuleFor(date string) *SpecificDayRule {
	for i := range l.SpecificDayRules {
		if l.SpecificDayRules[i].Date == date {
			return &l.SpecificDayRules[i]
		}
	}
	return nil
}

// HasOneTimeOff reports whether date appears in the layer's one-time off list.
func (l RuleLayer) HasOneTimeOff(date string) bool {
	for _, d := range l.OneTimeOffDates {
		if d == date {
			return true
		}
	}
	return false
}

// HasWeeklyOff reports whether the weekday appears in the layer's weekly off set.
func (l RuleLayer) HasWeeklyOff(day time.Weekday) bool {
	for _, w := range l.WeeklyOffWeekdays {
		if w == day {
			return true
		}
	}
	return false
}

// EffectiveRuleSet is the fully merged scheduling configuration for one
// (service, branch, date). Derived per request, never persisted.
type EffectiveRuleSet struct {
	StaffCapacity int      `json:"staffCapacity"`
	WorkingSlots  []string `json:"workingSlots"`
	IsDayOff      bool     `json:"isDayOff"`
}

// Bookable reports whether the day can accept any booking at all. A day marked
// off, with no working slots, or with zero capacity is unbookable; both the
// checker and the search engine use this single condition.
func (rs EffectiveRuleSet) Bookable() bool {
	return !rs.IsDayOff && len(rs.WorkingSlots) > 0 && rs.StaffCapacity > 0
}

package scheduling

import (
	"context"
	"errors"
	"sync"

	appointmentRepo "slotwise/database/repository/appointment"
	"slotwise/models"
)

// fakeRuleSource serves rule layers from memory.
type fakeRuleSource struct {
	global   models.RuleLayer
	services map[string]models.RuleLayer
	err      error
}

func (f *fakeRuleSource) GetGlobalLayer(context.Context) (models.RuleLayer, error) {
	if f.err != nil {
		return models.RuleLayer{}, f.err
	}
	return f.global, nil
}

func (f *fakeRuleSource) GetServiceLayer(_ context.Context, service, _ string) (models.RuleLayer, error) {
	if f.err != nil {
		return models.RuleLayer{}, f.err
	}
	return f.services[service], nil
}

// fakeAppointmentRepo keeps appointments in memory and mimics the conditional
// reserve of the Mongo repository.
type fakeAppointmentRepo struct {
	mu         sync.Mutex
	appts      []models.Appointment
	findCalls  int
	findErr    error
	reserveErr error // forces ReserveTransactionally to fail, simulating a lost race
}

func (f *fakeAppointmentRepo) FindCountable(_ context.Context, date, service, branchID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Date != date || a.Service != service {
			continue
		}
		if branchID != "" && a.BranchID != branchID {
			continue
		}
		if !isCountable(a.Status) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ReserveTransactionally(_ context.Context, appt *models.Appointment, durationMinutes, staffCapacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return f.reserveErr
	}
	candStart := appt.StartMinute
	candEnd := appt.StartMinute + durationMinutes
	overlap := 0
	for _, a := range f.appts {
		if a.Date != appt.Date || a.Service != appt.Service || !isCountable(a.Status) {
			continue
		}
		if appt.BranchID != "" && a.BranchID != appt.BranchID {
			continue
		}
		if a.StartMinute < candEnd && candStart < a.StartMinute+durationMinutes {
			overlap++
		}
	}
	if overlap >= staffCapacity {
		return appointmentRepo.ErrCapacityExhausted
	}
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeAppointmentRepo) CancelAppointment(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts[i].Status = models.StatusCancelled
			return nil
		}
	}
	return errors.New("appointment not found")
}

func (f *fakeAppointmentRepo) EnsureIndexes() error { return nil }

func isCountable(status models.AppointmentStatus) bool {
	for _, s := range models.CountableStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func intPtr(n int) *int { return &n }

func testGlobalLayer() models.RuleLayer {
	return models.RuleLayer{
		StaffCapacity: intPtr(2),
		WorkingSlots:  []string{"09:00", "10:00", "11:00"},
	}
}

func newTestEngine(rules *fakeRuleSource, repo *fakeAppointmentRepo) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Appointments:          repo,
		Resolver:              &DefaultRuleResolver{Rules: rules},
		DefaultMaxSuggestions: 3,
		DefaultMaxDaysScanned: 7,
	}
}

func booked(service, date, timeStr string, startMinute int) models.Appointment {
	return models.Appointment{
		ID:          service + date + timeStr,
		Service:     service,
		Date:        date,
		Time:        timeStr,
		StartMinute: startMinute,
		Status:      models.StatusBooked,
	}
}

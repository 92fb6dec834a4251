package scheduling

import (
	"context"
	"testing"

	appointmentRepo "slotwise/database/repository/appointment"
	"slotwise/models"
)

func TestReserveCreatesAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, repo)

	appt, result, err := engine.Reserve(context.Background(), checkReq("2024-07-22", "09:00"), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt == nil {
		t.Fatalf("expected an appointment, got rejection %+v", result)
	}
	if appt.Status != models.StatusBooked {
		t.Errorf("expected status %q, got %q", models.StatusBooked, appt.Status)
	}
	if appt.StartMinute != 540 {
		t.Errorf("expected start minute 540 for 09:00, got %d", appt.StartMinute)
	}
	if appt.UserID != "user-1" || appt.ID == "" {
		t.Errorf("appointment identity not populated: %+v", appt)
	}
	if len(repo.appts) != 1 {
		t.Errorf("expected the appointment to be persisted, repo holds %d", len(repo.appts))
	}
}

func TestReserveRejectedByCheck(t *testing.T) {
	global := testGlobalLayer()
	global.OneTimeOffDates = []string{"2024-07-22"}
	repo := &fakeAppointmentRepo{}
	engine := newTestEngine(&fakeRuleSource{global: global}, repo)

	appt, result, err := engine.Reserve(context.Background(), checkReq("2024-07-22", "09:00"), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt != nil {
		t.Fatal("a rejected check must not create an appointment")
	}
	if result.Reason != models.ReasonDayOff {
		t.Errorf("expected reason %q, got %q", models.ReasonDayOff, result.Reason)
	}
	if len(repo.appts) != 0 {
		t.Errorf("nothing should be persisted, repo holds %d", len(repo.appts))
	}
}

func TestReserveLosesRace(t *testing.T) {
	// The check passes against a stale view but the conditional insert finds
	// the capacity gone.
	repo := &fakeAppointmentRepo{reserveErr: appointmentRepo.ErrCapacityExhausted}
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, repo)

	appt, result, err := engine.Reserve(context.Background(), checkReq("2024-07-22", "09:00"), "user-1")
	if err != nil {
		t.Fatalf("a lost race is unavailability, not an error: %v", err)
	}
	if appt != nil {
		t.Fatal("a lost race must not hand back an appointment")
	}
	if result.Reason != models.ReasonFullyBooked {
		t.Errorf("expected reason %q, got %q", models.ReasonFullyBooked, result.Reason)
	}
	if len(result.SuggestedSlots) == 0 {
		t.Error("expected fresh suggestions after losing the race")
	}
}

func TestReserveAtCapacityBoundary(t *testing.T) {
	// Capacity 2: the second reservation for the same slot succeeds, the third
	// is turned away by the conditional insert.
	repo := &fakeAppointmentRepo{}
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, repo)
	req := checkReq("2024-07-22", "11:00")

	for i := 0; i < 2; i++ {
		appt, result, err := engine.Reserve(context.Background(), req, "user-1")
		if err != nil {
			t.Fatalf("unexpected error on reservation %d: %v", i+1, err)
		}
		if appt == nil {
			t.Fatalf("reservation %d should fit within capacity, got %+v", i+1, result)
		}
	}

	appt, result, err := engine.Reserve(context.Background(), req, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt != nil {
		t.Fatal("third reservation must be rejected at capacity 2")
	}
	if result.Reason != models.ReasonFullyBooked {
		t.Errorf("expected reason %q, got %q", models.ReasonFullyBooked, result.Reason)
	}
}

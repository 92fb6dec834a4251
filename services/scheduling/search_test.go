package scheduling

import (
	"context"
	"reflect"
	"testing"
	"time"

	"slotwise/models"
)

func searchReq(startDate, startTime string) SearchRequest {
	return SearchRequest{
		Service:         "haircut",
		StartDate:       startDate,
		StartTime:       startTime,
		DurationMinutes: 60,
	}
}

func TestSearchChronologicalAndBounded(t *testing.T) {
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, &fakeAppointmentRepo{})

	slots, err := engine.Search(context.Background(), searchReq("2024-07-22", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.SlotSuggestion{
		{Date: "2024-07-22", Time: "09:00"},
		{Date: "2024-07-22", Time: "10:00"},
		{Date: "2024-07-22", Time: "11:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("expected %v, got %v", want, slots)
	}
}

func TestSearchSkipsSlotsAtOrBeforeStartTime(t *testing.T) {
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, &fakeAppointmentRepo{})

	slots, err := engine.Search(context.Background(), searchReq("2024-07-22", "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.SlotSuggestion{
		{Date: "2024-07-22", Time: "11:00"},
		{Date: "2024-07-23", Time: "09:00"},
		{Date: "2024-07-23", Time: "10:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("the 10:00 slot itself must be excluded on the first day only; got %v", slots)
	}
}

func TestSearchSkipsDaysOff(t *testing.T) {
	global := testGlobalLayer()
	global.WeeklyOffWeekdays = []time.Weekday{time.Tuesday}
	engine := newTestEngine(&fakeRuleSource{global: global}, &fakeAppointmentRepo{})

	req := searchReq("2024-07-22", "")
	req.MaxSuggestions = 4
	slots, err := engine.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Monday fills three slots; Tuesday 2024-07-23 is skipped entirely and the
	// fourth suggestion lands on Wednesday.
	want := []models.SlotSuggestion{
		{Date: "2024-07-22", Time: "09:00"},
		{Date: "2024-07-22", Time: "10:00"},
		{Date: "2024-07-22", Time: "11:00"},
		{Date: "2024-07-24", Time: "09:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("expected %v, got %v", want, slots)
	}
}

func TestSearchSkipsFullSlots(t *testing.T) {
	global := testGlobalLayer()
	global.StaffCapacity = intPtr(1)
	repo := &fakeAppointmentRepo{
		appts: []models.Appointment{booked("haircut", "2024-07-22", "10:00", 600)},
	}
	engine := newTestEngine(&fakeRuleSource{global: global}, repo)

	slots, err := engine.Search(context.Background(), searchReq("2024-07-22", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.SlotSuggestion{
		{Date: "2024-07-22", Time: "09:00"},
		{Date: "2024-07-22", Time: "11:00"},
		{Date: "2024-07-23", Time: "09:00"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("expected the booked 10:00 slot to be skipped, got %v", slots)
	}
}

func TestSearchEmptyWindowIsNotAnError(t *testing.T) {
	global := testGlobalLayer()
	global.WeeklyOffWeekdays = []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	engine := newTestEngine(&fakeRuleSource{global: global}, &fakeAppointmentRepo{})

	slots, err := engine.Search(context.Background(), searchReq("2024-07-22", ""))
	if err != nil {
		t.Fatalf("an exhausted window must not error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no suggestions, got %v", slots)
	}
}

func TestSearchOneQueryPerDay(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, repo)

	req := searchReq("2024-07-22", "")
	req.MaxSuggestions = 9 // three full days at three slots each
	slots, err := engine.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected 9 suggestions, got %d", len(slots))
	}
	if repo.findCalls != 3 {
		t.Errorf("expected one appointment query per scanned day (3), got %d", repo.findCalls)
	}
}

func TestSearchHonorsMaxDaysScanned(t *testing.T) {
	global := testGlobalLayer()
	global.OneTimeOffDates = []string{"2024-07-22", "2024-07-23"}
	engine := newTestEngine(&fakeRuleSource{global: global}, &fakeAppointmentRepo{})

	req := searchReq("2024-07-22", "")
	req.MaxDaysScanned = 2
	slots, err := engine.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("the scan must stop at the day bound even with suggestions missing, got %v", slots)
	}
}

func TestSearchRejectsBadStart(t *testing.T) {
	engine := newTestEngine(&fakeRuleSource{global: testGlobalLayer()}, &fakeAppointmentRepo{})

	if _, err := engine.Search(context.Background(), searchReq("July 22", "")); err == nil {
		t.Fatal("expected an error for a malformed start date")
	}
	if _, err := engine.Search(context.Background(), searchReq("2024-07-22", "noon")); err == nil {
		t.Fatal("expected an error for a malformed start time")
	}
}

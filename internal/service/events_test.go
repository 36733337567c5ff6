package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wellcampus/internal/store"
)

func seedEvent42(t *testing.T) (*Dashboard, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	seedSlot(t, backend, store.SlotEvents, []Event{
		{ID: 42, Title: "Yoga on the Lawn", Category: "Fitness", StartDate: "2026-10-20"},
	})
	return newTestDashboard(t, backend, 0), backend
}

func TestToggleRegistrationKeepsHistory(t *testing.T) {
	d, backend := seedEvent42(t)
	ctx := context.Background()
	user := Profile{Role: RoleStudent, Name: "Sam", Email: "sam@uni.edu"}

	first, err := d.ToggleRegistration(ctx, 42, user)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !first.Registered || first.Registration == nil {
		t.Fatalf("expected registration, got %+v", first)
	}
	if first.Registration.Timestamp != "10/14/2026, 9:05:07 AM" {
		t.Fatalf("unexpected timestamp: %s", first.Registration.Timestamp)
	}

	second, err := d.ToggleRegistration(ctx, 42, user)
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if second.Registered {
		t.Fatalf("expected unregister, got %+v", second)
	}

	state := d.Snapshot()
	if len(state.Registered) != 0 {
		t.Fatalf("expected empty registered set, got %v", state.Registered)
	}
	if len(state.Registrations) != 1 {
		t.Fatalf("expected one registration record, got %d", len(state.Registrations))
	}
	record := state.Registrations[0]
	if record.EventID != 42 || record.UserEmail != "sam@uni.edu" || record.UserName != "Sam" {
		t.Fatalf("unexpected record: %+v", record)
	}

	if got := readSlot[[]int64](t, backend, store.SlotRegistered); len(got) != 0 {
		t.Fatalf("expected persisted empty set, got %v", got)
	}
	if got := readSlot[[]Registration](t, backend, store.SlotRegistrations); len(got) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(got))
	}
}

func TestReRegistrationAppendsSecondRecord(t *testing.T) {
	d, _ := seedEvent42(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := d.ToggleRegistration(ctx, 42, Profile{}); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}

	records := d.RegistrationsForEvent(42)
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if records[0].UserName != "Member" || records[0].UserEmail != "Unknown" {
		t.Fatalf("expected anonymous fallbacks, got %+v", records[0])
	}
	if records[0].ID == records[1].ID {
		t.Fatalf("expected distinct record ids")
	}
}

func TestToggleRegistrationUnknownEvent(t *testing.T) {
	d := newTestDashboard(t, nil, 0)

	_, err := d.ToggleRegistration(context.Background(), 999, Profile{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(d.Snapshot().Registrations) != 0 {
		t.Fatalf("expected no records for unknown event")
	}
}

func TestToggleReminder(t *testing.T) {
	d, backend := seedEvent42(t)
	ctx := context.Background()

	set, err := d.ToggleReminder(ctx, 42)
	if err != nil {
		t.Fatalf("set reminder: %v", err)
	}
	if !set.Set || set.Message != ReminderMessage {
		t.Fatalf("unexpected reminder result: %+v", set)
	}
	if got := readSlot[[]int64](t, backend, store.SlotReminders); len(got) != 1 || got[0] != 42 {
		t.Fatalf("unexpected persisted reminders: %v", got)
	}

	unset, err := d.ToggleReminder(ctx, 42)
	if err != nil {
		t.Fatalf("unset reminder: %v", err)
	}
	if unset.Set || unset.Message != "" {
		t.Fatalf("unexpected reminder result: %+v", unset)
	}
	if len(d.Snapshot().Registrations) != 0 {
		t.Fatalf("reminders must not create registration records")
	}
}

func TestDeleteEventKeepsRegistrations(t *testing.T) {
	d, _ := seedEvent42(t)
	ctx := context.Background()

	if _, err := d.ToggleRegistration(ctx, 42, Profile{Name: "Sam"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	d.DeleteEvent(ctx, 42)

	if len(d.Snapshot().Events) != 0 {
		t.Fatalf("expected event removed")
	}
	if records := d.RegistrationsForEvent(42); len(records) != 1 {
		t.Fatalf("expected registration to survive deletion, got %d", len(records))
	}

	unregistered, err := d.ToggleRegistration(ctx, 42, Profile{})
	if err != nil {
		t.Fatalf("unregister deleted event: %v", err)
	}
	if unregistered.Registered {
		t.Fatalf("expected toggle off for deleted event")
	}
}

func TestAddEvent(t *testing.T) {
	d := newTestDashboard(t, nil, 0)
	ctx := context.Background()

	tests := []struct {
		name   string
		input  EventInput
		reason string
	}{
		{name: "missing title", input: EventInput{StartDate: "2026-11-01"}, reason: ReasonMissingTitle},
		{name: "blank title", input: EventInput{Title: "   ", StartDate: "2026-11-01"}, reason: ReasonMissingTitle},
		{name: "missing start date", input: EventInput{Title: "Blood Drive"}, reason: ReasonMissingRequiredField},
	}
	for _, tt := range tests {
		if _, err := d.AddEvent(ctx, tt.input); ReasonOf(err) != tt.reason {
			t.Fatalf("%s: expected %s, got %v", tt.name, tt.reason, err)
		}
	}
	if len(d.Snapshot().Events) != 3 {
		t.Fatalf("rejected inputs must not change events")
	}

	event, err := d.AddEvent(ctx, EventInput{Title: " Blood Drive ", StartDate: "2026-11-01"})
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if event.Title != "Blood Drive" || event.Category != "General" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if first := d.Snapshot().Events[0]; first.ID != event.ID {
		t.Fatalf("expected new event first, got %+v", first)
	}
}

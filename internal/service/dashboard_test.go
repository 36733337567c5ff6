package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wellcampus/internal/store"
)

var fixedNow = time.Date(2026, time.October, 14, 9, 5, 7, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type recordingNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (n *recordingNotifier) SlotChanged(slot string) {
	n.mu.Lock()
	n.topics = append(n.topics, slot)
	n.mu.Unlock()
}

func (n *recordingNotifier) seen(topic string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range n.topics {
		if t == topic {
			return true
		}
	}
	return false
}

func newTestDashboard(t *testing.T, backend store.Backend, delay time.Duration) *Dashboard {
	t.Helper()
	if backend == nil {
		backend = store.NewMemoryBackend()
	}
	d := NewDashboard(context.Background(), store.New(backend), Options{
		Clock:           fixedClock,
		GenerationDelay: delay,
	})
	t.Cleanup(d.Close)
	return d
}

func seedSlot(t *testing.T, backend store.Backend, key string, value any) {
	t.Helper()
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := backend.Put(context.Background(), key, raw); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func readSlot[T any](t *testing.T, backend store.Backend, key string) T {
	t.Helper()
	var out T
	raw, ok, err := backend.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("slot %s missing: ok=%v err=%v", key, ok, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", key, err)
	}
	return out
}

func TestNewDashboardUsesDefaultsForEmptyStore(t *testing.T) {
	d := newTestDashboard(t, nil, 0)
	state := d.Snapshot()

	if len(state.Videos) != 3 || len(state.Meals) != 3 || len(state.Events) != 3 {
		t.Fatalf("unexpected default sizes: videos=%d meals=%d events=%d", len(state.Videos), len(state.Meals), len(state.Events))
	}
	if len(state.Posts) != 2 || len(state.Resources) != 2 {
		t.Fatalf("unexpected default sizes: posts=%d resources=%d", len(state.Posts), len(state.Resources))
	}
	if state.WellnessScore != 59 {
		t.Fatalf("expected initial score 59, got %d", state.WellnessScore)
	}
	if state.StressLevel != StressModerate {
		t.Fatalf("expected moderate stress, got %s", state.StressLevel)
	}
	if state.DailyCalories != 0 {
		t.Fatalf("expected no logged calories, got %d", state.DailyCalories)
	}
	if state.MapQuery != DefaultMapQuery {
		t.Fatalf("unexpected map query: %s", state.MapQuery)
	}
}

func TestNewDashboardFallsBackOnCorruptedSlot(t *testing.T) {
	backend := store.NewMemoryBackend()
	if err := backend.Put(context.Background(), store.SlotEvents, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	d := newTestDashboard(t, backend, 0)
	events := d.Snapshot().Events
	if len(events) != 3 || events[0].Title != "Mindfulness Monday" {
		t.Fatalf("expected default events, got %+v", events)
	}
}

func TestNewDashboardDerivesCaloriesFromMeals(t *testing.T) {
	backend := store.NewMemoryBackend()
	seedSlot(t, backend, store.SlotMeals, []Meal{
		{ID: 10, Type: MealVeg, Title: "Oatmeal", Cal: 300, Tags: []string{TagUserLog}},
		{ID: 11, Type: MealVeg, Title: "Salad", Cal: 200, Tags: []string{"New"}},
	})
	seedSlot(t, backend, store.SlotCalories, 9999)

	d := newTestDashboard(t, backend, 0)
	if got := d.Snapshot().DailyCalories; got != 300 {
		t.Fatalf("expected derived calories 300, got %d", got)
	}
}

func TestDashboardStatePersistsAcrossReload(t *testing.T) {
	backend := store.NewMemoryBackend()
	ctx := context.Background()

	first := newTestDashboard(t, backend, 0)
	post, err := first.SubmitPost(ctx, "Stretching before class helps")
	if err != nil {
		t.Fatalf("submit post: %v", err)
	}
	if _, err := first.ToggleChecklist(ctx, "water"); err != nil {
		t.Fatalf("toggle checklist: %v", err)
	}

	second := newTestDashboard(t, backend, 0)
	state := second.Snapshot()
	if state.Posts[0].ID != post.ID {
		t.Fatalf("expected reloaded post first, got %+v", state.Posts[0])
	}
	if !state.Checklist.Water {
		t.Fatalf("expected checklist to survive reload")
	}

	next, err := second.SubmitPost(ctx, "Another one")
	if err != nil {
		t.Fatalf("submit post: %v", err)
	}
	if next.ID <= post.ID {
		t.Fatalf("expected id after %d, got %d", post.ID, next.ID)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	d := newTestDashboard(t, nil, 0)

	state := d.Snapshot()
	state.Meals[0].Tags[0] = "mutated"
	state.Events[0].Title = "mutated"

	fresh := d.Snapshot()
	if fresh.Meals[0].Tags[0] == "mutated" || fresh.Events[0].Title == "mutated" {
		t.Fatalf("snapshot shares memory with dashboard")
	}
}

func TestIDsAreUniqueWithinSameMillisecond(t *testing.T) {
	d := newTestDashboard(t, nil, 0)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		post, err := d.SubmitPost(ctx, "hello")
		if err != nil {
			t.Fatalf("submit post: %v", err)
		}
		if seen[post.ID] {
			t.Fatalf("duplicate id %d", post.ID)
		}
		seen[post.ID] = true
	}
}

func TestActionsNotifySlotListeners(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDashboard(context.Background(), store.New(store.NewMemoryBackend()), Options{
		Clock:    fixedClock,
		Notifier: notifier,
	})

	if _, err := d.SubmitPost(context.Background(), "hi"); err != nil {
		t.Fatalf("submit post: %v", err)
	}
	d.UpdateMetrics(MetricsUpdate{})

	if !notifier.seen(store.SlotPosts) {
		t.Fatalf("expected %s notification", store.SlotPosts)
	}
	if !notifier.seen(MetricsTopic) {
		t.Fatalf("expected %s notification", MetricsTopic)
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := invalid(ReasonMissingTitle, "Title")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation sentinel")
	}
	if ReasonOf(err) != ReasonMissingTitle {
		t.Fatalf("unexpected reason: %s", ReasonOf(err))
	}
	if ReasonOf(errors.New("other")) != "" {
		t.Fatalf("expected empty reason for plain errors")
	}
}

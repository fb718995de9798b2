package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/remote"
	"github.com/saadjs/gymbro/internal/service"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func TestShouldUseRemote(t *testing.T) {
	t.Parallel()
	configured := remote.Resolve("http://localhost:54321", "key", "", nil)
	cases := []struct {
		name string
		paid bool
		conn remote.Connection
		want bool
	}{
		{name: "free unconfigured", paid: false, conn: remote.Unconfigured{}, want: false},
		{name: "free configured", paid: false, conn: configured, want: false},
		{name: "paid unconfigured", paid: true, conn: remote.Unconfigured{}, want: false},
		{name: "paid configured", paid: true, conn: configured, want: true},
	}
	for _, tc := range cases {
		if got := service.ShouldUseRemote(model.UserProfile{ID: "u", IsPaid: tc.paid}, tc.conn); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestFreeTierNeverTouchesBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, forbiddenBackend(t), false)

	if _, err := service.AddExerciseToDraft(ctx, s.Local, service.ExerciseDraft{Name: "Squat", Sets: "3", Reps: "5", Weight: "100", RPE: "8"}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	workouts, err := service.SaveWorkout(ctx, s, testNow)
	if err != nil {
		t.Fatalf("save workout: %v", err)
	}
	if len(workouts) != 1 || len(workouts[0].Exercises) != 1 {
		t.Fatalf("expected one saved workout, got %+v", workouts)
	}
	if workouts[0].Date != "2026-03-10T09:30:00Z" {
		t.Fatalf("unexpected workout date %q", workouts[0].Date)
	}
	if draft := service.WorkoutDraft(ctx, s.Local); len(draft) != 0 {
		t.Fatalf("expected draft cleared after save, got %+v", draft)
	}

	if _, err := service.SaveBodyMetric(ctx, s, service.BodyMetricDraft{Weight: "80"}, testNow); err != nil {
		t.Fatalf("save body metric: %v", err)
	}
	if _, err := service.ToggleFavorite(ctx, s, 3); err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
}

func TestUnconfiguredPaidProfileStaysLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, remote.Unconfigured{}, true)

	if _, err := service.AddMealToDraft(ctx, s.Local, service.MealDraft{Name: "Oats", Calories: "300", Protein: "10"}); err != nil {
		t.Fatalf("add meal: %v", err)
	}
	logs, err := service.SaveNutritionLog(ctx, s, testNow)
	if err != nil {
		t.Fatalf("save nutrition: %v", err)
	}
	if len(logs) != 1 || logs[0].Calories != 300 || logs[0].Date != "2026-03-10" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
}

func TestNutritionLogsDoNotMergeSameDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, remote.Unconfigured{}, false)
	for i := 0; i < 2; i++ {
		if _, err := service.AddMealToDraft(ctx, s.Local, service.MealDraft{Name: "Snack", Calories: "100"}); err != nil {
			t.Fatalf("add meal: %v", err)
		}
		if _, err := service.SaveNutritionLog(ctx, s, testNow); err != nil {
			t.Fatalf("save nutrition: %v", err)
		}
	}
	logs, err := service.LoadNutritionLogs(ctx, s)
	if err != nil {
		t.Fatalf("load nutrition: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected two logs for the same day, got %d", len(logs))
	}
}

func TestSaveWorkoutRejectsEmptyDraft(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, remote.Unconfigured{}, false)
	if _, err := service.SaveWorkout(context.Background(), s, testNow); err == nil {
		t.Fatalf("expected empty draft error")
	}
}

func TestDraftRemoveAndParseFallbacks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, remote.Unconfigured{}, false)
	if _, err := service.AddExerciseToDraft(ctx, s.Local, service.ExerciseDraft{Name: " "}); err == nil {
		t.Fatalf("expected name required error")
	}
	if _, err := service.AddExerciseToDraft(ctx, s.Local, service.ExerciseDraft{Name: "Row", Sets: "abc", Weight: "NaN"}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	draft, err := service.AddExerciseToDraft(ctx, s.Local, service.ExerciseDraft{Name: "Curl", Sets: "3"})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if draft[0].Sets != 0 || draft[0].Weight != 0 {
		t.Fatalf("expected unparseable numbers to become 0, got %+v", draft[0])
	}
	draft, err = service.RemoveExerciseFromDraft(ctx, s.Local, 0)
	if err != nil {
		t.Fatalf("remove exercise: %v", err)
	}
	if len(draft) != 1 || draft[0].ExerciseName != "Curl" {
		t.Fatalf("unexpected draft after removal: %+v", draft)
	}
	if _, err := service.RemoveExerciseFromDraft(ctx, s.Local, 5); err == nil {
		t.Fatalf("expected out of range error")
	}
}

// recordingBackend answers PostgREST-style calls from an in-memory table.
type recordingBackend struct {
	mu   sync.Mutex
	rows map[string][]json.RawMessage
	fail bool
}

func (b *recordingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"backend down"}`)
		return
	}
	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	switch r.Method {
	case http.MethodPost:
		var rows []json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.rows[table] = append(b.rows[table], rows...)
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		out := b.rows[table]
		if out == nil {
			out = []json.RawMessage{}
		}
		_ = json.NewEncoder(w).Encode(out)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestPaidConfiguredProfileUsesBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &recordingBackend{rows: map[string][]json.RawMessage{}}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	s := newTestSession(t, remote.Resolve(srv.URL, "anon", "", srv.Client()), true)

	if _, err := service.AddExerciseToDraft(ctx, s.Local, service.ExerciseDraft{Name: "Deadlift", Sets: "1", Reps: "3", Weight: "180"}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	workouts, err := service.SaveWorkout(ctx, s, testNow)
	if err != nil {
		t.Fatalf("save workout: %v", err)
	}
	if len(workouts) != 1 || workouts[0].Exercises[0].ExerciseName != "Deadlift" {
		t.Fatalf("expected workout loaded back from backend, got %+v", workouts)
	}
	if len(backend.rows["workouts"]) != 1 {
		t.Fatalf("expected one remote workout row, got %d", len(backend.rows["workouts"]))
	}
	if raw, _ := s.Local.GetRaw(ctx, "workouts"); raw != nil {
		t.Fatalf("expected nothing written locally, got %s", raw)
	}
}

func TestRemoteFailureKeepsDraft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := &recordingBackend{rows: map[string][]json.RawMessage{}, fail: true}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	s := newTestSession(t, remote.Resolve(srv.URL, "anon", "", srv.Client()), true)

	if _, err := service.AddExerciseToDraft(ctx, s.Local, service.ExerciseDraft{Name: "Press"}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	_, err := service.SaveWorkout(ctx, s, testNow)
	var apiErr *remote.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected backend api error, got %v", err)
	}
	if draft := service.WorkoutDraft(ctx, s.Local); len(draft) != 1 {
		t.Fatalf("expected draft kept after failed save, got %+v", draft)
	}
}

func TestPhotosRequireRemoteTier(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, forbiddenBackend(t), false)
	_, err := service.UploadProgressPhoto(context.Background(), s, "front.jpg", strings.NewReader("img"), testNow)
	if !errors.Is(err, service.ErrRemoteRequired) {
		t.Fatalf("expected ErrRemoteRequired, got %v", err)
	}
}

func TestBodyMetricValidationAndFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, remote.Unconfigured{}, false)
	if _, err := service.SaveBodyMetric(ctx, s, service.BodyMetricDraft{Weight: ""}, testNow); !errors.Is(err, service.ErrWeightRequired) {
		t.Fatalf("expected ErrWeightRequired, got %v", err)
	}
	if _, err := service.SaveBodyMetric(ctx, s, service.BodyMetricDraft{Weight: "80", BodyFatPct: "120"}, testNow); err == nil {
		t.Fatalf("expected body-fat range error")
	}
	entries, err := service.SaveBodyMetric(ctx, s, service.BodyMetricDraft{Weight: "176.37", Unit: "lb", Waist: "82"}, testNow)
	if err != nil {
		t.Fatalf("save body metric: %v", err)
	}
	if entries[0].Weight < 79.9 || entries[0].Weight > 80.1 {
		t.Fatalf("expected ~80 kg, got %v", entries[0].Weight)
	}
	if entries[0].Chest != nil || entries[0].Waist == nil || *entries[0].Waist != 82 {
		t.Fatalf("unexpected optional fields: %+v", entries[0])
	}

	all := []model.BodyMetricEntry{
		{Date: testNow.AddDate(0, 0, -40).Format(time.RFC3339), Weight: 82},
		{Date: testNow.AddDate(0, 0, -3).Format(time.RFC3339), Weight: 81},
		{Date: testNow.AddDate(0, 0, -1).Format(time.RFC3339), Weight: 80},
	}
	week := service.FilterBodyMetrics(all, 7, testNow)
	if len(week) != 2 || week[0].Weight != 80 {
		t.Fatalf("expected two entries newest first, got %+v", week)
	}
	if got := service.FilterBodyMetrics(all, 0, testNow); len(got) != 3 {
		t.Fatalf("expected all entries, got %d", len(got))
	}
	if _, err := service.ParseMetricWindow("14"); err == nil {
		t.Fatalf("expected invalid window error")
	}
}

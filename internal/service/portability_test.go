package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := newTestSession(t, nil, true)
	if _, err := service.AddExerciseToDraft(ctx, src.Local, service.ExerciseDraft{Name: "Squat", Sets: "3", Reps: "5", Weight: "100"}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if _, err := service.SaveWorkout(ctx, src, testNow); err != nil {
		t.Fatalf("save workout: %v", err)
	}
	if _, err := service.AddWater(ctx, src, "400", testNow); err != nil {
		t.Fatalf("add water: %v", err)
	}

	doc := service.Export(ctx, src.Local, testNow)
	if doc.Version != service.ExportVersion || doc.ExportedAt != "2026-03-10T09:30:00Z" {
		t.Fatalf("unexpected export header: %+v", doc)
	}
	if doc.User == nil || !doc.User.IsPaid {
		t.Fatalf("expected profile in export, got %+v", doc.User)
	}
	raw, err := service.MarshalExport(doc)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	dst := newTestSession(t, nil, false)
	summary, err := service.Import(ctx, dst.Local, raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Workouts != 1 || summary.WaterLogs != 1 || summary.NutritionLogs != 0 || summary.BodyMetrics != 0 {
		t.Fatalf("unexpected import summary: %+v", summary)
	}
	workouts, err := service.LoadWorkouts(ctx, dst)
	if err != nil {
		t.Fatalf("load workouts: %v", err)
	}
	if len(workouts) != 1 || workouts[0].Exercises[0].Weight != 100 {
		t.Fatalf("unexpected imported workouts: %+v", workouts)
	}
	if profile := service.LoadProfile(ctx, dst.Local); profile.IsPaid || profile.ID != "user-1" {
		t.Fatalf("expected destination profile untouched, got %+v", profile)
	}
}

func TestImportRequiresVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, store := newTestStore(t)
	store.Set(ctx, localstore.KeyWorkouts, []model.WorkoutSession{{Date: "2026-01-01T00:00:00Z"}})

	_, err := service.Import(ctx, store, []byte(`{"workouts":[]}`))
	if !errors.Is(err, service.ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport, got %v", err)
	}
	if _, err := service.Import(ctx, store, []byte(`not json`)); !errors.Is(err, service.ErrInvalidImport) {
		t.Fatalf("expected ErrInvalidImport for bad json, got %v", err)
	}
	if got := localstore.GetSlice[model.WorkoutSession](ctx, store, localstore.KeyWorkouts); len(got) != 1 {
		t.Fatalf("expected existing workouts untouched, got %+v", got)
	}
}

func TestImportOnlyReplacesPresentCollections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, store := newTestStore(t)
	store.Set(ctx, localstore.KeyWaterLogs, []model.WaterLog{{Date: "2026-01-01", Amount: 500}})
	store.Set(ctx, localstore.KeyWorkouts, []model.WorkoutSession{{Date: "2026-01-01T00:00:00Z"}})

	summary, err := service.Import(ctx, store, []byte(`{"version":"1.0","workouts":[]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Workouts != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := localstore.GetSlice[model.WorkoutSession](ctx, store, localstore.KeyWorkouts); len(got) != 0 {
		t.Fatalf("expected workouts replaced with empty list, got %+v", got)
	}
	if got := localstore.GetSlice[model.WaterLog](ctx, store, localstore.KeyWaterLogs); len(got) != 1 {
		t.Fatalf("expected water logs kept, got %+v", got)
	}
}

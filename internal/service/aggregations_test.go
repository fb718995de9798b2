package service_test

import (
	"math"
	"testing"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

func TestDailyTotals(t *testing.T) {
	t.Parallel()
	totals := service.DailyTotals([]model.Meal{
		{Name: "Oats", Calories: 300, Protein: 10, Carbs: 50, Fats: 5},
		{Name: "Shake", Calories: 200, Protein: 20, Carbs: 10, Fats: 3},
	})
	if totals.Calories != 500 || totals.Protein != 30 || totals.Carbs != 60 || totals.Fats != 8 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if empty := service.DailyTotals(nil); empty != (model.MacroTotals{}) {
		t.Fatalf("expected zero totals for no meals, got %+v", empty)
	}
}

func TestEstimateOneRepMax(t *testing.T) {
	t.Parallel()
	cases := []struct {
		weight float64
		reps   int
		want   int
	}{
		{weight: 100, reps: 5, want: 117},
		{weight: 0, reps: 5, want: 0},
		{weight: 100, reps: 0, want: 0},
		{weight: 60, reps: 1, want: 62},
	}
	for _, tc := range cases {
		if got := service.EstimateOneRepMax(tc.weight, tc.reps); got != tc.want {
			t.Fatalf("EstimateOneRepMax(%v, %d) = %d, want %d", tc.weight, tc.reps, got, tc.want)
		}
	}
}

func TestTrainingVolumeAndRPE(t *testing.T) {
	t.Parallel()
	sets := []model.ExerciseSet{{ExerciseName: "Squat", Sets: 3, Reps: 5, Weight: 100, RPE: 8}}
	if got := service.TrainingVolume(sets); got != 1500 {
		t.Fatalf("expected volume 1500, got %v", got)
	}
	if got := service.TrainingVolume(nil); got != 0 {
		t.Fatalf("expected volume 0, got %v", got)
	}
	sets = append(sets, model.ExerciseSet{ExerciseName: "Bench", Sets: 3, Reps: 8, Weight: 60, RPE: 7})
	if got := service.AverageRPE(sets); got != 7.5 {
		t.Fatalf("expected average rpe 7.5, got %v", got)
	}
	if got := service.AverageRPE(nil); got != 0 {
		t.Fatalf("expected average rpe 0 for no sets, got %v", got)
	}
	if got := service.BestOneRepMax(sets); got != 117 {
		t.Fatalf("expected best 1RM 117, got %d", got)
	}
}

func TestWeightTrend(t *testing.T) {
	t.Parallel()
	if got := service.WeightTrend(nil); got != 0 {
		t.Fatalf("expected 0 for no entries, got %v", got)
	}
	if got := service.WeightTrend([]model.BodyMetricEntry{{Date: "2026-01-01", Weight: 80}}); got != 0 {
		t.Fatalf("expected 0 for a single entry, got %v", got)
	}

	entries := make([]model.BodyMetricEntry, 0, 10)
	for i := 0; i < 10; i++ {
		w := 100.0
		if i >= 5 {
			w = 90
		}
		// Stored newest first to make sure the trend sorts by date.
		entries = append([]model.BodyMetricEntry{{Date: "2026-01-1" + string(rune('0'+i)), Weight: w}}, entries...)
	}
	if got := service.WeightTrend(entries); math.Abs(got-(-10)) > 1e-9 {
		t.Fatalf("expected -10%% trend, got %v", got)
	}

	short := []model.BodyMetricEntry{{Date: "2026-01-01", Weight: 80}, {Date: "2026-01-02", Weight: 81}}
	if got := service.WeightTrend(short); !math.IsNaN(got) {
		t.Fatalf("expected NaN without an older window, got %v", got)
	}
}

func TestGenerateShoppingListScalesAndKeepsDuplicates(t *testing.T) {
	t.Parallel()
	recipes := map[int64]model.Recipe{
		1: {ID: 1, Name: "Oats", Servings: 2, Ingredients: []model.RecipeIngredient{{Name: "oats", Amount: 100, Unit: "g"}}},
		2: {ID: 2, Name: "Porridge", Servings: 1, Ingredients: []model.RecipeIngredient{{Name: "oats", Amount: 50, Unit: "g"}}},
	}
	plan := []model.MealPlanItem{
		{RecipeID: 1, Servings: 1},
		{RecipeID: 2, Servings: 2},
		{RecipeID: 99, Servings: 1},
	}
	items := service.GenerateShoppingList(plan, recipes)
	if len(items) != 2 {
		t.Fatalf("expected two separate oats lines, got %+v", items)
	}
	if items[0].Amount != 50 || items[1].Amount != 100 {
		t.Fatalf("unexpected scaled amounts: %+v", items)
	}
	for _, it := range items {
		if it.IngredientName != "oats" || it.Category != "Uncategorized" || it.IsChecked {
			t.Fatalf("unexpected item: %+v", it)
		}
	}
}

func TestPersonalRecordsAndSeries(t *testing.T) {
	t.Parallel()
	workouts := []model.WorkoutSession{
		{Date: "2026-02-02T10:00:00Z", Exercises: []model.ExerciseSet{{ExerciseName: "Squat", Sets: 3, Reps: 5, Weight: 110}}},
		{Date: "2026-02-01T10:00:00Z", Exercises: []model.ExerciseSet{
			{ExerciseName: "Squat", Sets: 3, Reps: 5, Weight: 100},
			{ExerciseName: "Bench", Sets: 3, Reps: 5, Weight: 70},
		}},
	}
	prs := service.PersonalRecords(workouts)
	if prs["Squat"] != 110 || prs["Bench"] != 70 {
		t.Fatalf("unexpected records: %+v", prs)
	}

	series := service.StrengthSeries(workouts, "squat")
	if len(series) != 2 {
		t.Fatalf("expected 2 squat points, got %+v", series)
	}
	if series[0].Date > series[1].Date {
		t.Fatalf("expected ascending dates, got %+v", series)
	}
	if series[0].Value != 100 || series[1].Value != 110 {
		t.Fatalf("unexpected strength series: %+v", series)
	}
}

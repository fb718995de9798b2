package service_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/provider/openfoodfacts"
	"github.com/saadjs/gymbro/internal/provider/wger"
	"github.com/saadjs/gymbro/internal/service"
)

type stubFoods struct {
	items []openfoodfacts.FoodLookup
	err   error
}

func (s stubFoods) SearchFoods(context.Context, string, int) ([]openfoodfacts.FoodLookup, error) {
	return s.items, s.err
}

type stubExercises struct {
	items []wger.Exercise
	err   error
}

func (s stubExercises) SearchExercises(context.Context, string, int) ([]wger.Exercise, error) {
	return s.items, s.err
}

func TestSearchFoodsMapsAndSwallowsErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	got := service.SearchFoods(ctx, stubFoods{items: []openfoodfacts.FoodLookup{{Description: "Greek yogurt", Brand: "Fage", Calories: 97, ProteinG: 9}}}, "yogurt", logger)
	if len(got) != 1 || got[0].Name != "Greek yogurt" || got[0].Protein != 9 {
		t.Fatalf("unexpected foods: %+v", got)
	}

	got = service.SearchFoods(ctx, stubFoods{err: errors.New("boom")}, "yogurt", logger)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result on failure, got %#v", got)
	}
	if !strings.Contains(logs.String(), "food search failed") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
	if got := service.SearchFoods(ctx, stubFoods{err: errors.New("unused")}, "  ", logger); len(got) != 0 {
		t.Fatalf("expected blank query to return nothing")
	}
}

func TestSearchExercises(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := zerolog.New(&bytes.Buffer{})
	got := service.SearchExercises(ctx, stubExercises{items: []wger.Exercise{{ID: 9, Name: "Bench Press", Category: "Chest"}}}, "bench", logger)
	if len(got) != 1 || got[0] != (model.ExerciseResult{ID: 9, Name: "Bench Press", Category: "Chest"}) {
		t.Fatalf("unexpected exercises: %+v", got)
	}
	if got := service.SearchExercises(ctx, stubExercises{err: errors.New("down")}, "bench", logger); len(got) != 0 {
		t.Fatalf("expected empty result on failure, got %+v", got)
	}
}

func TestMealFromFoodScalesPer100g(t *testing.T) {
	t.Parallel()
	meal := service.MealFromFood(model.FoodResult{Name: "Rice", Calories: 130, Carbs: 28}, 250)
	if math.Abs(meal.Calories-325) > 1e-9 || math.Abs(meal.Carbs-70) > 1e-9 {
		t.Fatalf("unexpected meal: %+v", meal)
	}
}

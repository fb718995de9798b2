package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/provider/openfoodfacts"
	"github.com/saadjs/gymbro/internal/provider/wger"
)

type FoodSearcher interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]openfoodfacts.FoodLookup, error)
}

type ExerciseSearcher interface {
	SearchExercises(ctx context.Context, query string, limit int) ([]wger.Exercise, error)
}

// SearchFoods never fails: lookup errors are logged and, like an empty
// result, come back as an empty list.
func SearchFoods(ctx context.Context, client FoodSearcher, query string, logger zerolog.Logger) []model.FoodResult {
	out := make([]model.FoodResult, 0)
	if strings.TrimSpace(query) == "" {
		return out
	}
	items, err := client.SearchFoods(ctx, query, 0)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("food search failed")
		return out
	}
	for _, it := range items {
		out = append(out, model.FoodResult{
			Name:     it.Description,
			Brand:    it.Brand,
			Calories: it.Calories,
			Protein:  it.ProteinG,
			Carbs:    it.CarbsG,
			Fats:     it.FatG,
		})
	}
	return out
}

func SearchExercises(ctx context.Context, client ExerciseSearcher, query string, logger zerolog.Logger) []model.ExerciseResult {
	out := make([]model.ExerciseResult, 0)
	if strings.TrimSpace(query) == "" {
		return out
	}
	items, err := client.SearchExercises(ctx, query, 0)
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("exercise search failed")
		return out
	}
	for _, it := range items {
		out = append(out, model.ExerciseResult{ID: it.ID, Name: it.Name, Category: it.Category})
	}
	return out
}

// MealFromFood turns a per-100 g lookup into a meal scaled to grams eaten.
func MealFromFood(food model.FoodResult, grams float64) model.Meal {
	if grams <= 0 {
		grams = 100
	}
	f := grams / 100
	return model.Meal{
		Name:     food.Name,
		Calories: food.Calories * f,
		Protein:  food.Protein * f,
		Carbs:    food.Carbs * f,
		Fats:     food.Fats * f,
	}
}

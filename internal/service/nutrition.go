package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

// DailyTargets are the fixed macro targets shown next to the totals.
var DailyTargets = model.MacroTotals{Calories: 2000, Protein: 150, Carbs: 250, Fats: 70}

type MealDraft struct {
	Name     string
	Calories string
	Protein  string
	Carbs    string
	Fats     string
}

func (d MealDraft) build() model.Meal {
	return model.Meal{
		Name:     strings.TrimSpace(d.Name),
		Calories: ParseNumber(d.Calories),
		Protein:  ParseNumber(d.Protein),
		Carbs:    ParseNumber(d.Carbs),
		Fats:     ParseNumber(d.Fats),
	}
}

func NutritionDraft(ctx context.Context, store *localstore.Store) []model.Meal {
	return localstore.GetSlice[model.Meal](ctx, store, localstore.KeyNutritionDraft)
}

func AddMealToDraft(ctx context.Context, store *localstore.Store, in MealDraft) ([]model.Meal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("meal name is required")
	}
	draft := append(NutritionDraft(ctx, store), in.build())
	if err := store.SetE(ctx, localstore.KeyNutritionDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func RemoveMealFromDraft(ctx context.Context, store *localstore.Store, index int) ([]model.Meal, error) {
	draft := NutritionDraft(ctx, store)
	if index < 0 || index >= len(draft) {
		return nil, fmt.Errorf("draft has no meal at position %d", index+1)
	}
	draft = append(draft[:index], draft[index+1:]...)
	if err := store.SetE(ctx, localstore.KeyNutritionDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveNutritionLog records today's drafted meals with their totals. A second
// save on the same day adds another log rather than merging into the first.
func SaveNutritionLog(ctx context.Context, s Session, now time.Time) ([]model.NutritionLog, error) {
	meals := NutritionDraft(ctx, s.Local)
	if len(meals) == 0 {
		return nil, fmt.Errorf("nutrition draft is empty")
	}
	totals := DailyTotals(meals)
	log := model.NutritionLog{
		Date:     now.UTC().Format(time.DateOnly),
		Meals:    meals,
		Calories: totals.Calories,
		Protein:  totals.Protein,
		Carbs:    totals.Carbs,
		Fats:     totals.Fats,
	}
	logs, err := saveRecord(ctx, s, nutritionLogsKind, log)
	if err != nil {
		return nil, err
	}
	s.Local.Delete(ctx, localstore.KeyNutritionDraft)
	return logs, nil
}

func LoadNutritionLogs(ctx context.Context, s Session) ([]model.NutritionLog, error) {
	return loadRecords[model.NutritionLog](ctx, s, nutritionLogsKind)
}
